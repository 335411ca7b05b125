package interaction

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/interactions/create", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.UserID == "" || req.PoiID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId and poiId required")
		}
		result, err := svc.Create(c.Context(), req)
		if err != nil {
			return err
		}
		status := fiber.StatusCreated
		if result.Status == StatusRemoved {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(result)
	})

	r.Get("/interactions/:poiId", func(c *fiber.Ctx) error {
		interactions, err := svc.List(c.Context(), c.Params("poiId"))
		if err != nil {
			return err
		}
		return c.JSON(interactions)
	})
}
