package social

import (
	"errors"

	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, sharer *Sharer) {
	r.Post("/share", func(c *fiber.Ctx) error {
		var req ShareRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		var value any
		if req.Value != nil {
			value = *req.Value
		}
		result, err := sharer.Share(c.Context(), req.UserID, req.StatType, value)
		switch {
		case err == nil:
			return c.Status(fiber.StatusCreated).JSON(result)
		case errors.Is(err, apperr.ErrInvalidArgument):
			return c.Status(fiber.StatusBadRequest).JSON(result)
		default:
			return c.Status(fiber.StatusBadGateway).JSON(result)
		}
	})

	r.Post("/follow", func(c *fiber.Ctx) error {
		var req Follow
		if err := c.BodyParser(&req); err != nil || req.FollowerID == "" || req.FollowingID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "follower_id and following_id required")
		}
		if req.FollowerID == req.FollowingID {
			return fiber.NewError(fiber.StatusBadRequest, "cannot follow yourself")
		}
		if err := svc.Follow(c.Context(), req.FollowerID, req.FollowingID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Get("/posts", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		posts, err := svc.Posts(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Get("/feed", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		feed, err := svc.Feed(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(feed)
	})
}
