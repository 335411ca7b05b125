package server

import (
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/auth"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/config"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/feed"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/follow"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/interaction"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/poi"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Store storage.ObjectStore
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, store storage.ObjectStore) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Store: store,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret, s.Redis)
	contentStore := storage.NewService(s.DB, s.Store)

	users := s.App.Group("/users")
	auth.RegisterRoutes(users, auth.NewService(s.Cfg.JWTSecret, s.DB, s.Redis), jwtMiddleware)
	follow.RegisterRoutes(users, follow.NewService(s.DB), jwtMiddleware)

	pois := s.App.Group("/pois")
	poi.RegisterRoutes(pois, poi.NewService(s.DB, contentStore), jwtMiddleware)
	interaction.RegisterRoutes(pois, interaction.NewService(s.DB), jwtMiddleware)
	feed.RegisterRoutes(pois, feed.NewService(s.DB))
}
