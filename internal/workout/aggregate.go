package workout

import "sort"

// Summarize totals distance, steps and calories. Distances are added in
// ascending order so the float result is the same for any input order.
func Summarize(workouts []Workout) Summary {
	var s Summary
	distances := make([]float64, 0, len(workouts))
	for _, w := range workouts {
		distances = append(distances, w.Distance)
		s.TotalSteps += w.Steps
		s.TotalCalories += w.Calories
	}
	sort.Float64s(distances)
	for _, d := range distances {
		s.TotalDistance += d
	}
	return s
}
