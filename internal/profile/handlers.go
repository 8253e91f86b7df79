package profile

import (
	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:userID", func(c *fiber.Ctx) error {
		profile, err := svc.Get(c.Context(), c.Params("userID"))
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(profile)
	})
}
