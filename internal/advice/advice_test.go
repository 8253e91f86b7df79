package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"
	"github.com/DanielaGutierrez38/Fitness-App/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	workouts []workout.Workout
	err      error
}

func (f fakeLoader) Workouts(context.Context, string) ([]workout.Workout, error) {
	return f.workouts, f.err
}

type staticGenerator struct {
	text string
	err  error
	seen []workout.Workout
}

func (g *staticGenerator) Generate(_ context.Context, _ string, workouts []workout.Workout) (string, error) {
	g.seen = workouts
	return g.text, g.err
}

func fixedService(loader WorkoutLoader, gen Generator, images []string, pick int) *Service {
	svc := NewService(loader, gen, images)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "advice-1" }
	svc.pick = func(int) int { return pick }
	return svc
}

func TestAdvice(t *testing.T) {
	workouts := []workout.Workout{{WorkoutID: "w1", UserID: "user1", Distance: 3}}
	gen := &staticGenerator{text: "  You are doing great!  "}
	svc := fixedService(fakeLoader{workouts: workouts}, gen, []string{"https://img/1", "https://img/2"}, 1)

	advice, err := svc.Advice(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, "advice-1", advice.ID)
	assert.Equal(t, "2024-01-15 12:00:00", advice.Timestamp)
	assert.Equal(t, "  You are doing great!  ", advice.Content)
	require.NotNil(t, advice.Image)
	assert.Equal(t, "https://img/2", *advice.Image)
	assert.Equal(t, workouts, gen.seen)
}

func TestAdviceImageMayBeAbsent(t *testing.T) {
	gen := &staticGenerator{text: "go"}

	advice, err := fixedService(fakeLoader{}, gen, []string{"https://img/1"}, 1).Advice(context.Background(), "user1")
	require.NoError(t, err)
	assert.Nil(t, advice.Image)

	advice, err = fixedService(fakeLoader{}, gen, nil, 0).Advice(context.Background(), "user1")
	require.NoError(t, err)
	assert.Nil(t, advice.Image)
}

func TestAdviceErrors(t *testing.T) {
	gen := &staticGenerator{text: "go"}

	_, err := fixedService(fakeLoader{}, gen, nil, 0).Advice(context.Background(), "")
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = fixedService(fakeLoader{err: apperr.ErrDataUnavailable}, gen, nil, 0).Advice(context.Background(), "user1")
	require.ErrorIs(t, err, apperr.ErrDataUnavailable)

	boom := errors.New("model offline")
	_, err = fixedService(fakeLoader{}, &staticGenerator{err: boom}, nil, 0).Advice(context.Background(), "user1")
	require.ErrorIs(t, err, boom)
}

func TestSummaryGenerator(t *testing.T) {
	text, err := SummaryGenerator{}.Generate(context.Background(), "user1", nil)
	require.NoError(t, err)
	assert.Contains(t, text, "first workout")

	text, err = SummaryGenerator{}.Generate(context.Background(), "user1", []workout.Workout{
		{WorkoutID: "w1", Distance: 2.5, Steps: 4000, Calories: 200},
		{WorkoutID: "w2", Distance: 1.5, Steps: 2000, Calories: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, "You've logged 2 workouts, covered 4.0 miles, taken 6000 steps and burned 300 calories. Keep showing up, your future self will thank you!", text)

	text, err = SummaryGenerator{}.Generate(context.Background(), "user1", []workout.Workout{{WorkoutID: "w1"}})
	require.NoError(t, err)
	assert.Equal(t, "You've logged 1 workout. Keep showing up, your future self will thank you!", text)
}
