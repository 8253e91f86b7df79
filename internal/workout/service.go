package workout

import (
	"context"
	"fmt"

	"github.com/DanielaGutierrez38/Fitness-App/internal/observability"
	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"

	"github.com/sirupsen/logrus"
)

// Service is the pipeline facade: fetch, normalize, then aggregate or rank.
// It performs no retries; source failures surface as apperr.ErrDataUnavailable.
type Service struct {
	source Source
	log    logrus.FieldLogger
}

func NewService(source Source) *Service {
	return &Service{
		source: source,
		log:    logrus.WithField("component", "workout"),
	}
}

func (s *Service) Workouts(ctx context.Context, userID string) ([]Workout, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id required", apperr.ErrInvalidArgument)
	}
	rows, err := s.source.WorkoutRows(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch workouts for %s: %w: %w", userID, apperr.ErrDataUnavailable, err)
	}

	workouts, rejected := NormalizeAll(rows)
	s.reportRejected("workout", userID, rejected)
	observability.RecordRows("workout", len(workouts), len(rejected))

	anomalous := 0
	for _, w := range workouts {
		if issues := w.Anomalies(); len(issues) > 0 {
			anomalous++
			s.log.WithFields(logrus.Fields{
				"user_id":    userID,
				"workout_id": w.WorkoutID,
				"anomalies":  issues,
			}).Warn("accepted workout with inconsistent values")
		}
	}
	observability.RecordAnomalous(anomalous)
	return workouts, nil
}

func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	workouts, err := s.Workouts(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(workouts), nil
}

func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]Workout, error) {
	workouts, err := s.Workouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RankRecent(workouts, limit), nil
}

// Dashboard computes summary and recent feed from a single fetch.
func (s *Service) Dashboard(ctx context.Context, userID string, limit int) (Dashboard, error) {
	workouts, err := s.Workouts(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Summary: Summarize(workouts),
		Recent:  RankRecent(workouts, limit),
		Empty:   len(workouts) == 0,
	}, nil
}

func (s *Service) SensorData(ctx context.Context, userID, workoutID string) ([]SensorReading, error) {
	if userID == "" || workoutID == "" {
		return nil, fmt.Errorf("%w: user_id and workout_id required", apperr.ErrInvalidArgument)
	}
	rows, err := s.source.SensorRows(ctx, userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("fetch sensor data for %s/%s: %w: %w", userID, workoutID, apperr.ErrDataUnavailable, err)
	}

	readings, rejected := NormalizeSensors(rows)
	s.reportRejected("sensor", userID, rejected)
	observability.RecordRows("sensor", len(readings), len(rejected))
	return readings, nil
}

func (s *Service) reportRejected(kind, userID string, rejected []RowError) {
	for _, re := range rejected {
		s.log.WithFields(logrus.Fields{
			"kind":    kind,
			"user_id": userID,
			"row":     re.Index,
		}).WithError(re.Err).Warn("skipped malformed row")
	}
}
