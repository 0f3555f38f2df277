package server

import (
	"encoding/json"
	"log"

	"backend-trainingsplan/internal/auth"
	"backend-trainingsplan/internal/config"
	"backend-trainingsplan/internal/favorites"
	"backend-trainingsplan/internal/filter"
	"backend-trainingsplan/internal/plan"
	"backend-trainingsplan/internal/position"
	"backend-trainingsplan/internal/stream"
	"backend-trainingsplan/internal/training"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Store  *training.Store
	Loader *training.Loader
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	store := training.NewStore()
	loader := training.NewLoader(cfg.TrainingsURL, redisClient, store, func(snap training.Snapshot) {
		payload, err := json.Marshal(fiber.Map{
			"version": snap.Version,
			"hash":    snap.Hash,
			"total":   len(snap.Trainings),
		})
		if err != nil {
			log.Printf("change notification marshal failed: %v", err)
			return
		}
		hub.Broadcast(stream.TopicTrainings, payload)
	})

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Store:  store,
		Loader: loader,
		Stream: hub,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	clientMiddleware := auth.ClientMiddleware(s.Cfg.JWTSecret)
	optionalClient := auth.OptionalClient(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret))

	favoriteSvc := favorites.NewService(s.DB)
	positionSvc := position.NewService(s.Redis)
	filterStore := filter.NewStore(s.Redis)
	view := plan.NewView(s.Store, s.Loader, favoriteSvc, positionSvc, filterStore, s.Cfg.DefaultRadiusKm)

	api := s.App.Group("/api")
	plan.RegisterRoutes(api.Group("/trainings"), view, optionalClient)
	plan.RegisterExport(api.Group("/export"), view, optionalClient)
	favorites.RegisterRoutes(api.Group("/favorites"), favoriteSvc, clientMiddleware)
	position.RegisterRoutes(api.Group("/position"), positionSvc, clientMiddleware)
	filter.RegisterRoutes(api.Group("/filters"), filterStore, clientMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
