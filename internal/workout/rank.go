package workout

import "sort"

// NoLimit makes RankRecent return every workout.
const NoLimit = -1

// RankRecent returns a new slice ordered by start time, most recent first.
// Ties keep their input order. Start times that could not be parsed rank below
// parsed ones (ordered by text), and absent start times come last. A negative
// limit means no limit.
func RankRecent(workouts []Workout, limit int) []Workout {
	ranked := make([]Workout, len(workouts))
	copy(ranked, workouts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return newer(ranked[i].StartTime, ranked[j].StartTime)
	})

	if limit >= 0 && limit < len(ranked) {
		ranked = ranked[:limit:limit]
	}
	return ranked
}

func tier(t Timestamp) int {
	switch {
	case !t.At.IsZero():
		return 0
	case !t.IsZero():
		return 1
	default:
		return 2
	}
}

func newer(a, b Timestamp) bool {
	ta, tb := tier(a), tier(b)
	if ta != tb {
		return ta < tb
	}
	switch ta {
	case 0:
		return a.At.After(b.At)
	case 1:
		return a.Text > b.Text
	default:
		return false
	}
}
