package follow

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var req EdgeRequest
		if err := c.BodyParser(&req); err != nil || req.FollowerID == "" || req.FollowingID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "followerId and followingId required")
		}
		result, err := svc.Toggle(c.Context(), req.FollowerID, req.FollowingID)
		if err != nil {
			return err
		}
		status := fiber.StatusOK
		if result.Following {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{"message": result.Message})
	})

	r.Post("/unfollow", authMiddleware, func(c *fiber.Ctx) error {
		var req EdgeRequest
		if err := c.BodyParser(&req); err != nil || req.FollowerID == "" || req.FollowingID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "followerId and followingId required")
		}
		if err := svc.Unfollow(c.Context(), req.FollowerID, req.FollowingID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "unfollowed"})
	})

	r.Get("/:userId/followers", func(c *fiber.Ctx) error {
		followers, err := svc.Followers(c.Context(), c.Params("userId"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"followers": followers})
	})

	r.Get("/:userId/followings", func(c *fiber.Ctx) error {
		followings, err := svc.Followings(c.Context(), c.Params("userId"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"followings": followings})
	})
}
