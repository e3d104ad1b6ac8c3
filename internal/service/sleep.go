package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

const (
	MinQualityScore = 1
	MaxQualityScore = 10
)

type SleepInput struct {
	UserID       int64
	StartTime    time.Time
	EndTime      time.Time
	QualityScore *int
}

type SleepService struct {
	repo   repository.SleepRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewSleepService(repo repository.SleepRepository, logger *slog.Logger) *SleepService {
	return &SleepService{repo: repo, logger: logger, now: time.Now}
}

// Create records a sleep session. The end is not required to follow the
// start; Hours on such a row is simply negative.
func (s *SleepService) Create(ctx context.Context, in SleepInput) (*model.Sleep, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireTime("start_time", in.StartTime); err != nil {
		return nil, err
	}
	if err := requireTime("end_time", in.EndTime); err != nil {
		return nil, err
	}
	if q := in.QualityScore; q != nil && (*q < MinQualityScore || *q > MaxQualityScore) {
		return nil, apperror.ValidationFailed("quality_score",
			fmt.Sprintf("quality_score must be between %d and %d", MinQualityScore, MaxQualityScore))
	}

	sleep := &model.Sleep{
		UserID:       in.UserID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		QualityScore: in.QualityScore,
	}
	if err := s.repo.CreateSleep(ctx, sleep); err != nil {
		return nil, fmt.Errorf("recording sleep: %w", err)
	}

	s.logger.Info("sleep recorded",
		slog.Int64("sleep_id", sleep.ID),
		slog.Int64("user_id", sleep.UserID),
	)
	return sleep, nil
}

func (s *SleepService) Get(ctx context.Context, id int64) (*model.Sleep, error) {
	if err := requireID("sleep_id", id); err != nil {
		return nil, err
	}
	return s.repo.GetSleepByID(ctx, id)
}

func (s *SleepService) ListForUser(ctx context.Context, userID int64, q ListQuery) ([]model.Sleep, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	filter, err := q.filter(s.now())
	if err != nil {
		return nil, err
	}
	return s.repo.ListSleepForUser(ctx, userID, filter)
}

func (s *SleepService) Delete(ctx context.Context, id int64) error {
	if err := requireID("sleep_id", id); err != nil {
		return err
	}
	return s.repo.DeleteSleep(ctx, id)
}
