package auth

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, tokens, err := svc.Register(c.Context(), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "tokens": tokens})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}
		user, tokens, err := svc.Login(c.Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user": user, "tokens": tokens})
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		var req RefreshRequest
		if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
			return fiber.NewError(fiber.StatusBadRequest, "refresh_token required")
		}

		userID, err := svc.ValidateRefreshToken(c.Context(), req.RefreshToken)
		if err != nil {
			return err
		}

		tokens, err := svc.GenerateTokens(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(tokens)
	})

	r.Post("/logout", authMiddleware, func(c *fiber.Ctx) error {
		token, _ := c.Locals("access_token").(string)
		if err := svc.Logout(c.Context(), token); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "logged out"})
	})

	r.Post("/edit-profile", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		userID, _ := c.Locals("user_id").(string)
		user, err := svc.UpdateProfile(c.Context(), userID, req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "profile updated", "user": user})
	})

	r.Post("/delete-account", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.DeleteAccount(c.Context(), userID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "account deleted"})
	})
}
