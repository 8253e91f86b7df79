package workout

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(src Source) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/workouts"), NewService(src), 2)
	return app
}

func TestWorkoutHandlersDashboard(t *testing.T) {
	app := newTestApp(&fakeSource{workouts: []Row{
		MapRow{
			"WorkoutId": "w1", "UserId": "user1", "StartTimestamp": "2024-01-01T07:00:00",
			"StartLocationLat": 37.7749, "StartLocationLong": -122.4194,
			"EndLocationLat": 37.8044, "EndLocationLong": -122.2712,
			"TotalDistance": 9.0,
		},
		MapRow{"WorkoutId": "w2", "UserId": "user1", "StartTimestamp": "2024-01-02T07:00:00"},
		MapRow{"WorkoutId": "w3", "UserId": "user1"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/workouts/user1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status: %v", err)
	}

	var body struct {
		Summary Summary `json:"summary"`
		Recent  []struct {
			WorkoutID         string   `json:"workout_id"`
			StartTime         *string  `json:"start_time"`
			DisplacementMiles *float64 `json:"displacement_miles"`
		} `json:"recent"`
		Empty bool `json:"empty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Empty || body.Summary.TotalDistance != 9.0 {
		t.Fatalf("unexpected dashboard: %+v", body)
	}
	if len(body.Recent) != 2 || body.Recent[0].WorkoutID != "w2" || body.Recent[1].WorkoutID != "w1" {
		t.Fatalf("unexpected recent order: %+v", body.Recent)
	}
	if body.Recent[0].DisplacementMiles != nil || body.Recent[1].DisplacementMiles == nil {
		t.Fatalf("expected displacement only for located workout")
	}
}

func TestWorkoutHandlersRecentLimitAll(t *testing.T) {
	app := newTestApp(&fakeSource{workouts: sampleRows()})

	req := httptest.NewRequest(http.MethodGet, "/workouts/user1/recent?limit=-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("recent status: %v", err)
	}
	var recent []Workout
	if err := json.NewDecoder(resp.Body).Decode(&recent); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recent) != 3 || recent[0].WorkoutID != "w4" {
		t.Fatalf("unexpected recent: %+v", recent)
	}
}

func TestWorkoutHandlersEmptyState(t *testing.T) {
	app := newTestApp(&fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/workouts/user1/summary", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"total_distance":0,"total_steps":0,"total_calories":0}` {
		t.Fatalf("unexpected summary body: %s", raw)
	}

	req = httptest.NewRequest(http.MethodGet, "/workouts/user1/recent", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("recent status: %v", err)
	}
	raw, _ = io.ReadAll(resp.Body)
	if string(raw) != `[]` {
		t.Fatalf("expected explicit empty list, got %s", raw)
	}
}

func TestWorkoutHandlersListAndSensors(t *testing.T) {
	app := newTestApp(&fakeSource{
		workouts: sampleRows(),
		sensors:  []Row{MapRow{"UserId": "user1", "SensorId": "hr", "SensorValue": 72}},
	})

	req := httptest.NewRequest(http.MethodGet, "/workouts/user1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/workouts/user1/w1/sensors", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("sensors status: %v", err)
	}
	var readings []SensorReading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil || len(readings) != 1 {
		t.Fatalf("unexpected readings: %v", err)
	}
}

func TestWorkoutHandlersSourceDown(t *testing.T) {
	app := newTestApp(&fakeSource{err: errors.New("timeout")})

	for _, path := range []string{
		"/workouts/user1",
		"/workouts/user1/summary",
		"/workouts/user1/recent",
		"/workouts/user1/dashboard",
		"/workouts/user1/w1/sensors",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil || resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %v", path, err)
		}
	}
}
