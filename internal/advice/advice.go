package advice

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"
	"github.com/DanielaGutierrez38/Fitness-App/internal/workout"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02 15:04:05"

// Advice is a motivational message for the dashboard. Image is nil when none was picked.
type Advice struct {
	ID        string  `json:"advice_id"`
	Timestamp string  `json:"timestamp"`
	Content   string  `json:"content"`
	Image     *string `json:"image"`
}

// Generator produces free text from a user's workouts. Its output is shown as is.
type Generator interface {
	Generate(ctx context.Context, userID string, workouts []workout.Workout) (string, error)
}

// WorkoutLoader is the slice of the workout pipeline advice needs.
type WorkoutLoader interface {
	Workouts(ctx context.Context, userID string) ([]workout.Workout, error)
}

type Service struct {
	workouts  WorkoutLoader
	generator Generator
	images    []string
	location  *time.Location
	now       func() time.Time
	newID     func() string
	pick      func(n int) int
	log       logrus.FieldLogger
}

func NewService(workouts WorkoutLoader, generator Generator, images []string) *Service {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Service{
		workouts:  workouts,
		generator: generator,
		images:    images,
		location:  loc,
		now:       time.Now,
		newID:     uuid.NewString,
		pick:      rand.Intn,
		log:       logrus.WithField("component", "advice"),
	}
}

func (s *Service) Advice(ctx context.Context, userID string) (Advice, error) {
	if userID == "" {
		return Advice{}, fmt.Errorf("%w: user_id required", apperr.ErrInvalidArgument)
	}
	workouts, err := s.workouts.Workouts(ctx, userID)
	if err != nil {
		return Advice{}, err
	}

	content, err := s.generator.Generate(ctx, userID, workouts)
	if err != nil {
		s.log.WithField("user_id", userID).WithError(err).Error("advice generation failed")
		return Advice{}, fmt.Errorf("generate advice for %s: %w", userID, err)
	}

	return Advice{
		ID:        s.newID(),
		Timestamp: s.now().In(s.location).Format(timestampLayout),
		Content:   content,
		Image:     s.pickImage(),
	}, nil
}

// pickImage chooses one of the configured images or none at all, each with
// equal chance.
func (s *Service) pickImage() *string {
	if len(s.images) == 0 {
		return nil
	}
	i := s.pick(len(s.images) + 1)
	if i >= len(s.images) {
		return nil
	}
	image := s.images[i]
	return &image
}

// SummaryGenerator writes a motivational line from the workout totals. It is
// used when no text model is wired in.
type SummaryGenerator struct{}

func (SummaryGenerator) Generate(_ context.Context, _ string, workouts []workout.Workout) (string, error) {
	if len(workouts) == 0 {
		return "Every journey starts with a single step. Log your first workout today!", nil
	}

	sum := workout.Summarize(workouts)
	var b strings.Builder
	fmt.Fprintf(&b, "You've logged %d %s", len(workouts), plural(len(workouts), "workout", "workouts"))
	if sum.TotalDistance > 0 {
		fmt.Fprintf(&b, ", covered %.1f miles", sum.TotalDistance)
	}
	if sum.TotalSteps > 0 {
		fmt.Fprintf(&b, ", taken %d steps", sum.TotalSteps)
	}
	if sum.TotalCalories > 0 {
		fmt.Fprintf(&b, " and burned %d calories", sum.TotalCalories)
	}
	b.WriteString(". Keep showing up, your future self will thank you!")
	return b.String(), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
