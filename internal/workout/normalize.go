package workout

import (
	"fmt"

	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"
)

// Warehouse column names, as exposed by the Workouts and SensorData tables.
const (
	FieldWorkoutID      = "WorkoutId"
	FieldUserID         = "UserId"
	FieldStartTimestamp = "StartTimestamp"
	FieldEndTimestamp   = "EndTimestamp"
	FieldStartLat       = "StartLocationLat"
	FieldStartLng       = "StartLocationLong"
	FieldEndLat         = "EndLocationLat"
	FieldEndLng         = "EndLocationLong"
	FieldDistance       = "TotalDistance"
	FieldSteps          = "TotalSteps"
	FieldCalories       = "CaloriesBurned"

	FieldSensorID    = "SensorId"
	FieldSensorName  = "Name"
	FieldSensorUnits = "Units"
	FieldSensorTime  = "Timestamp"
	FieldSensorValue = "SensorValue"
)

// RowError reports a row that was skipped during batch normalization.
type RowError struct {
	Index int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Normalize turns one warehouse row into a Workout. Missing numeric fields
// become 0 and half-present coordinates are dropped entirely; only missing
// identifiers or unreadable values reject the row.
func Normalize(row Row) (Workout, error) {
	if row == nil {
		return Workout{}, fmt.Errorf("%w: nil row", apperr.ErrMalformedRow)
	}

	var (
		w   Workout
		err error
	)
	if w.WorkoutID, err = textField(row, FieldWorkoutID); err != nil {
		return Workout{}, malformed(err)
	}
	if w.WorkoutID == "" {
		return Workout{}, fmt.Errorf("%w: %s is required", apperr.ErrMalformedRow, FieldWorkoutID)
	}
	if w.UserID, err = textField(row, FieldUserID); err != nil {
		return Workout{}, malformed(err)
	}
	if w.UserID == "" {
		return Workout{}, fmt.Errorf("%w: %s is required for workout %s", apperr.ErrMalformedRow, FieldUserID, w.WorkoutID)
	}

	if w.StartTime, err = timestampField(row, FieldStartTimestamp); err != nil {
		return Workout{}, malformed(err)
	}
	if w.EndTime, err = timestampField(row, FieldEndTimestamp); err != nil {
		return Workout{}, malformed(err)
	}
	if w.StartLocation, err = locationFields(row, FieldStartLat, FieldStartLng); err != nil {
		return Workout{}, malformed(err)
	}
	if w.EndLocation, err = locationFields(row, FieldEndLat, FieldEndLng); err != nil {
		return Workout{}, malformed(err)
	}

	if w.Distance, err = floatField(row, FieldDistance); err != nil {
		return Workout{}, malformed(err)
	}
	if w.Steps, err = intField(row, FieldSteps); err != nil {
		return Workout{}, malformed(err)
	}
	if w.Calories, err = intField(row, FieldCalories); err != nil {
		return Workout{}, malformed(err)
	}
	return w, nil
}

// NormalizeAll normalizes a batch. A bad row is reported and skipped; it never
// stops the rows after it.
func NormalizeAll(rows []Row) ([]Workout, []RowError) {
	workouts := make([]Workout, 0, len(rows))
	var rejected []RowError
	for i, row := range rows {
		w, err := Normalize(row)
		if err != nil {
			rejected = append(rejected, RowError{Index: i, Err: err})
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, rejected
}

// NormalizeSensor turns one sensor-data row into a SensorReading.
func NormalizeSensor(row Row) (SensorReading, error) {
	if row == nil {
		return SensorReading{}, fmt.Errorf("%w: nil row", apperr.ErrMalformedRow)
	}

	var (
		r   SensorReading
		err error
	)
	if r.UserID, err = textField(row, FieldUserID); err != nil {
		return SensorReading{}, malformed(err)
	}
	if r.SensorID, err = textField(row, FieldSensorID); err != nil {
		return SensorReading{}, malformed(err)
	}
	if r.Name, err = textField(row, FieldSensorName); err != nil {
		return SensorReading{}, malformed(err)
	}
	if r.Units, err = textField(row, FieldSensorUnits); err != nil {
		return SensorReading{}, malformed(err)
	}
	if r.Timestamp, err = timestampField(row, FieldSensorTime); err != nil {
		return SensorReading{}, malformed(err)
	}
	if r.Value, err = floatField(row, FieldSensorValue); err != nil {
		return SensorReading{}, malformed(err)
	}
	return r, nil
}

// NormalizeSensors is the sensor counterpart of NormalizeAll.
func NormalizeSensors(rows []Row) ([]SensorReading, []RowError) {
	readings := make([]SensorReading, 0, len(rows))
	var rejected []RowError
	for i, row := range rows {
		r, err := NormalizeSensor(row)
		if err != nil {
			rejected = append(rejected, RowError{Index: i, Err: err})
			continue
		}
		readings = append(readings, r)
	}
	return readings, rejected
}

func locationFields(row Row, latField, lngField string) (*Location, error) {
	lat, latOK := value(row, latField)
	lng, lngOK := value(row, lngField)
	if !latOK || !lngOK {
		return nil, nil
	}
	latF, err := toFloat(lat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", latField, err)
	}
	lngF, err := toFloat(lng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lngField, err)
	}
	return &Location{Lat: latF, Lng: lngF}, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrMalformedRow, err)
}
