package workout

import (
	"encoding/json"
	"time"

	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/geo"
)

// Timestamp is a source timestamp in canonical text form. At holds the parsed
// instant when the text could be read; the zero Timestamp means "absent".
type Timestamp struct {
	Text string
	At   time.Time
}

func (t Timestamp) IsZero() bool {
	return t.Text == ""
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Text)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var text *string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	if text == nil {
		*t = Timestamp{}
		return nil
	}
	*t = timestampFromText(*text)
	return nil
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Workout is one completed exercise session. Values are never mutated after
// normalization; copies share Location pointers.
type Workout struct {
	WorkoutID     string    `json:"workout_id"`
	UserID        string    `json:"user_id"`
	StartTime     Timestamp `json:"start_time"`
	EndTime       Timestamp `json:"end_time"`
	StartLocation *Location `json:"start_location"`
	EndLocation   *Location `json:"end_location"`
	Distance      float64   `json:"distance"`
	Steps         int64     `json:"steps"`
	Calories      int64     `json:"calories"`
}

// Anomalies lists the inconsistencies the normalizer lets through.
func (w Workout) Anomalies() []string {
	var out []string
	if !w.StartTime.At.IsZero() && !w.EndTime.At.IsZero() && w.EndTime.At.Before(w.StartTime.At) {
		out = append(out, "end_time before start_time")
	}
	if w.Distance < 0 {
		out = append(out, "negative distance")
	}
	if w.Steps < 0 {
		out = append(out, "negative steps")
	}
	if w.Calories < 0 {
		out = append(out, "negative calories")
	}
	return out
}

// Displacement is the straight-line distance in miles between start and end locations.
func (w Workout) Displacement() (float64, bool) {
	if w.StartLocation == nil || w.EndLocation == nil {
		return 0, false
	}
	return geo.HaversineMiles(w.StartLocation.Lat, w.StartLocation.Lng, w.EndLocation.Lat, w.EndLocation.Lng), true
}

type Summary struct {
	TotalDistance float64 `json:"total_distance"`
	TotalSteps    int64   `json:"total_steps"`
	TotalCalories int64   `json:"total_calories"`
}

// SensorReading is one sample recorded during a workout.
type SensorReading struct {
	UserID    string    `json:"user_id"`
	SensorID  string    `json:"sensor_id"`
	Name      string    `json:"name"`
	Units     string    `json:"units"`
	Timestamp Timestamp `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Dashboard bundles what the activity tab renders. Empty is set when the user
// has no workouts so the front end can show a "no data" state.
type Dashboard struct {
	Summary Summary   `json:"summary"`
	Recent  []Workout `json:"recent"`
	Empty   bool      `json:"empty"`
}
