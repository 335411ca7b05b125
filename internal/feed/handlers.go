package feed

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/feed/:userId", func(c *fiber.Ctx) error {
		result, err := svc.GetFeed(c.Context(), c.Params("userId"), filtersFromQuery(c))
		if err != nil {
			return err
		}
		if result.Pagination == nil {
			return c.JSON(fiber.Map{"pois": result.Items})
		}
		return c.JSON(result)
	})
}

func filtersFromQuery(c *fiber.Ctx) Filters {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil {
		pageSize = 0
	}

	viewType := c.Query("viewType")
	if viewType == "" {
		viewType = ViewList
	}

	var tags []string
	for _, t := range strings.Split(c.Query("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return Filters{
		ViewType: viewType,
		Tags:     tags,
		Page:     page,
		PageSize: pageSize,
		MinLat:   c.Query("minLat"),
		MaxLat:   c.Query("maxLat"),
		MinLon:   c.Query("minLon"),
		MaxLon:   c.Query("maxLon"),
	}
}
