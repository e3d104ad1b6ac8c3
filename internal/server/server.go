// Package server wires the database, services, handlers and middleware into
// one HTTP server.
//
// COMPOSITION ROOT:
// Every dependency is assembled here, in New and setupRoutes:
//
//	config → sqlite.DB → services → handlers → chi routes
//
// Each layer only receives what it needs. Services get repository
// interfaces (the concrete *sqlite.DB satisfies all of them), handlers get
// services, and nothing below this package knows about HTTP routing.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/workoutify/internal/config"
	"github.com/sakif/workoutify/internal/handler"
	"github.com/sakif/workoutify/internal/middleware"
	sqliteRepo "github.com/sakif/workoutify/internal/repository/sqlite"
	"github.com/sakif/workoutify/internal/service"
)

// Server owns the router and the database connection. The connection is
// closed when Start returns or Close is called.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database (running migrations) and registers every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and routes.
//
// MIDDLEWARE ORDER:
//  1. RequestID: unique id per request, echoed in logs
//  2. RealIP: client address from proxy headers
//  3. Logger: one structured line per request
//  4. Recoverer: a panic becomes a 500 instead of killing the process
//  5. SecurityHeaders, CORS, MaxBody
//  6. Session: resolves X-Session-ID into the request context
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders)
	s.router.Use(middleware.CORS(s.config.AllowedOrigins))
	s.router.Use(middleware.MaxBody(s.config.MaxBodyBytes))

	// === Services ===
	// s.db implements every repository interface.
	users := service.NewUserService(s.db, s.logger)
	sleep := service.NewSleepService(s.db, s.logger)
	workouts := service.NewWorkoutService(s.db, s.logger)
	meals := service.NewMealService(s.db, s.logger)
	catalog := service.NewCatalogService(s.db, s.db, s.logger)
	summary := service.NewSummaryService(s.db, s.logger)
	sessions := service.NewSessionService(users, s.db, s.config.SessionTTL, s.logger)

	s.router.Use(middleware.Session(sessions, s.logger))

	// === Handlers ===
	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	userHandler := handler.NewUserHandler(users, s.logger)
	sleepHandler := handler.NewSleepHandler(sleep, s.logger)
	workoutHandler := handler.NewWorkoutHandler(workouts, summary, s.logger)
	mealHandler := handler.NewMealHandler(meals, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalog, s.logger)
	summaryHandler := handler.NewSummaryHandler(summary, s.config.SummaryDefaultDays, s.logger)
	sessionHandler := handler.NewSessionHandler(sessions, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.HandleCreate)
		r.Post("/login", userHandler.HandleLogin)

		r.Route("/{user_id}", func(r chi.Router) {
			r.Get("/", userHandler.HandleGet)
			r.Delete("/", userHandler.HandleDelete)

			r.Post("/sleep", sleepHandler.HandleCreate)
			r.Get("/sleep", sleepHandler.HandleList)

			r.Post("/workouts", workoutHandler.HandleCreate)
			r.Post("/workouts/with_sets", workoutHandler.HandleCreateWithSets)
			r.Get("/workouts", workoutHandler.HandleList)
			r.Get("/workouts/recent", workoutHandler.HandleRecent)

			r.Post("/meals", mealHandler.HandleCreate)
			r.Post("/meals/with_items", mealHandler.HandleCreateWithItems)
			r.Get("/meals", mealHandler.HandleList)
			r.Get("/meals/day", mealHandler.HandleDay)

			r.Get("/summary", summaryHandler.HandleSummary)
			r.Get("/exercise_prs", summaryHandler.HandleExercisePRs)
			r.Get("/muscle_balance", summaryHandler.HandleMuscleBalance)
		})
	})

	s.router.Get("/sleep/{sleep_id}", sleepHandler.HandleGet)
	s.router.Delete("/sleep/{sleep_id}", sleepHandler.HandleDelete)

	s.router.Get("/workouts/{workout_id}", workoutHandler.HandleGet)
	s.router.Delete("/workouts/{workout_id}", workoutHandler.HandleDelete)
	s.router.Post("/workouts/{workout_id}/sets", workoutHandler.HandleAddSet)
	s.router.Delete("/workout_sets/{set_id}", workoutHandler.HandleDeleteSet)

	s.router.Get("/meals/{meal_id}", mealHandler.HandleGet)
	s.router.Delete("/meals/{meal_id}", mealHandler.HandleDelete)
	s.router.Post("/meals/{meal_id}/items", mealHandler.HandleAddItem)
	s.router.Delete("/meal_items/{meal_item_id}", mealHandler.HandleDeleteItem)

	s.router.Route("/foods", func(r chi.Router) {
		r.Get("/all", catalogHandler.HandleListFoods)
		r.Get("/search", catalogHandler.HandleSearchFoods)
		r.Post("/", catalogHandler.HandleCreateFood)
		r.Get("/{food_id}", catalogHandler.HandleGetFood)
		r.Delete("/{food_id}", catalogHandler.HandleDeleteFood)
	})

	s.router.Route("/exercises", func(r chi.Router) {
		r.Get("/all", catalogHandler.HandleListExercises)
		r.Post("/", catalogHandler.HandleCreateExercise)
		r.Get("/{exercise_id}", catalogHandler.HandleGetExercise)
		r.Delete("/{exercise_id}", catalogHandler.HandleDeleteExercise)
	})

	s.router.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.HandleStart)
		r.Get("/current", sessionHandler.HandleCurrent)
		r.Put("/current/page", sessionHandler.HandleNavigate)
		r.Delete("/current", sessionHandler.HandleEnd)
	})
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
