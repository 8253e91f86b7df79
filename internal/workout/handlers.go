package workout

import (
	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"

	"github.com/gofiber/fiber/v2"
)

// RecentWorkout is a ranked workout as the activity feed renders it.
type RecentWorkout struct {
	Workout
	DisplacementMiles *float64 `json:"displacement_miles,omitempty"`
}

type dashboardResponse struct {
	Summary Summary         `json:"summary"`
	Recent  []RecentWorkout `json:"recent"`
	Empty   bool            `json:"empty"`
}

func RegisterRoutes(r fiber.Router, svc *Service, defaultLimit int) {
	r.Get("/:userID", func(c *fiber.Ctx) error {
		workouts, err := svc.Workouts(c.Context(), c.Params("userID"))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(workouts)
	})

	r.Get("/:userID/summary", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context(), c.Params("userID"))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(summary)
	})

	r.Get("/:userID/recent", func(c *fiber.Ctx) error {
		recent, err := svc.Recent(c.Context(), c.Params("userID"), limitParam(c, defaultLimit))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(recentView(recent))
	})

	r.Get("/:userID/dashboard", func(c *fiber.Ctx) error {
		dash, err := svc.Dashboard(c.Context(), c.Params("userID"), limitParam(c, defaultLimit))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(dashboardResponse{
			Summary: dash.Summary,
			Recent:  recentView(dash.Recent),
			Empty:   dash.Empty,
		})
	})

	r.Get("/:userID/:workoutID/sensors", func(c *fiber.Ctx) error {
		readings, err := svc.SensorData(c.Context(), c.Params("userID"), c.Params("workoutID"))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(readings)
	})
}

// limitParam reads ?limit=; any negative value means "all".
func limitParam(c *fiber.Ctx, fallback int) int {
	limit := c.QueryInt("limit", fallback)
	if limit < 0 {
		return NoLimit
	}
	return limit
}

func recentView(workouts []Workout) []RecentWorkout {
	out := make([]RecentWorkout, 0, len(workouts))
	for _, w := range workouts {
		view := RecentWorkout{Workout: w}
		if miles, ok := w.Displacement(); ok {
			view.DisplacementMiles = &miles
		}
		out = append(out, view)
	}
	return out
}
