package workout

import (
	"context"

	"github.com/DanielaGutierrez38/Fitness-App/internal/db"

	"github.com/jackc/pgx/v5"
)

// Source supplies raw warehouse rows. A nil or empty result means no match.
type Source interface {
	WorkoutRows(ctx context.Context, userID string) ([]Row, error)
	SensorRows(ctx context.Context, userID, workoutID string) ([]Row, error)
}

var workoutColumns = []string{
	FieldWorkoutID, FieldUserID,
	FieldStartTimestamp, FieldEndTimestamp,
	FieldStartLat, FieldStartLng, FieldEndLat, FieldEndLng,
	FieldDistance, FieldSteps, FieldCalories,
}

var sensorColumns = []string{
	FieldUserID, FieldSensorID, FieldSensorName, FieldSensorUnits, FieldSensorTime, FieldSensorValue,
}

// PostgresSource reads the warehouse tables. Columns are scanned untyped so
// NULLs reach the normalizer as nil instead of failing the scan.
type PostgresSource struct {
	db db.Querier
}

func NewPostgresSource(db db.Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) WorkoutRows(ctx context.Context, userID string) ([]Row, error) {
	rows, err := s.db.Query(ctx, `
		SELECT workout_id, user_id, start_timestamp, end_timestamp,
		       start_location_lat, start_location_long, end_location_lat, end_location_long,
		       total_distance, total_steps, calories_burned
		FROM workouts
		WHERE user_id=$1
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, workoutColumns)
}

func (s *PostgresSource) SensorRows(ctx context.Context, userID, workoutID string) ([]Row, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.user_id, COALESCE(st.sensor_id, sd.sensor_id), st.name, st.units, sd.recorded_at, sd.sensor_value
		FROM workouts w
		INNER JOIN sensor_data sd ON w.workout_id = sd.workout_id
		LEFT JOIN sensor_types st ON sd.sensor_id = st.sensor_id
		WHERE w.user_id=$1 AND w.workout_id=$2
		ORDER BY sd.recorded_at
	`, userID, workoutID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, sensorColumns)
}

func collectRows(rows pgx.Rows, columns []string) ([]Row, error) {
	defer rows.Close()

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(MapRow, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
