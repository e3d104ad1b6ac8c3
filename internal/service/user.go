// Package service contains the business logic of the tracker: input
// validation, the write and read operations over the repositories, and the
// aggregation engine that turns raw rows into dashboard series.
//
// LAYERING:
// Handlers call services; services call repository interfaces. A service
// never sees HTTP and never sees SQL, so the same code backs the API, the
// admin CLI, and the seeder.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

// UserInput carries the fields a client may supply for a user.
type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Location string `json:"location"`
}

type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// LoginOrRegister returns the user with the given email, creating it on
// first sight. The bool reports whether a new user was created.
//
// LOGIN SEMANTICS:
// Email alone identifies a user. On a repeat login the stored row is
// returned unchanged; name, surname and location in the input are ignored.
// If two first logins race, the loser's insert hits the UNIQUE constraint
// and it falls back to reading the winner's row.
func (s *UserService) LoginOrRegister(ctx context.Context, in UserInput) (*model.User, bool, error) {
	user, err := s.buildUser(in)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			existing, getErr := s.repo.GetUserByEmail(ctx, user.Email)
			if getErr != nil {
				return nil, false, fmt.Errorf("looking up user after conflict: %w", getErr)
			}
			return existing, false, nil
		}
		s.logger.Error("failed to register user", slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, true, nil
}

// Register is the explicit create path: a duplicate email is a Conflict,
// not a login.
func (s *UserService) Register(ctx context.Context, in UserInput) (*model.User, error) {
	user, err := s.buildUser(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ConflictMessage(fmt.Sprintf("a user with email %s already exists", user.Email))
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) buildUser(in UserInput) (*model.User, error) {
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email}
	if u.Name, err = optionalName("name", in.Name); err != nil {
		return nil, err
	}
	if u.Surname, err = optionalName("surname", in.Surname); err != nil {
		return nil, err
	}
	if u.Location, err = optionalName("location", in.Location); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an email and checks its rough shape.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperror.ValidationFailed("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return "", apperror.ValidationFailed("email", fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return "", apperror.ValidationFailed("email", "email must look like name@domain")
	}
	return email, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if err := requireID("user_id", id); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// Delete removes a user and everything the user owns.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := requireID("user_id", id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
