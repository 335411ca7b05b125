package poi

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/create", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		p, err := svc.Create(c.Context(), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"poiId":       p.ID,
			"contentUrls": p.Content,
		})
	})

	r.Patch("/update/:poiId", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		res, err := svc.Update(c.Context(), c.Params("poiId"), req)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	r.Patch("/delete/:poiId", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.SoftDelete(c.Context(), c.Params("poiId")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "poi deleted"})
	})

	r.Patch("/recover/:poiId", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Recover(c.Context(), c.Params("poiId")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "poi recovered"})
	})

	r.Get("/get/:userId", func(c *fiber.Ctx) error {
		result, err := svc.Query(c.Context(), c.Params("userId"), filtersFromQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(result)
	})
}

// filtersFromQuery tolerates malformed page numbers: anything that does not
// parse falls back to page 1 / the default size rather than erroring.
func filtersFromQuery(c *fiber.Ctx) QueryFilters {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil {
		pageSize = 0
	}

	view := c.Query("view")
	if view == "" {
		view = ViewList
	}

	return QueryFilters{
		Tags:     splitTags(c.Query("tags")),
		View:     view,
		Page:     page,
		PageSize: pageSize,
		MinLat:   c.Query("minLat"),
		MaxLat:   c.Query("maxLat"),
		MinLon:   c.Query("minLon"),
		MaxLon:   c.Query("maxLon"),
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
