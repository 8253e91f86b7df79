package server

import (
	"errors"

	"github.com/DanielaGutierrez38/Fitness-App/internal/advice"
	"github.com/DanielaGutierrez38/Fitness-App/internal/config"
	"github.com/DanielaGutierrez38/Fitness-App/internal/db"
	"github.com/DanielaGutierrez38/Fitness-App/internal/events"
	"github.com/DanielaGutierrez38/Fitness-App/internal/profile"
	"github.com/DanielaGutierrez38/Fitness-App/internal/social"
	"github.com/DanielaGutierrez38/Fitness-App/internal/stream"
	"github.com/DanielaGutierrez38/Fitness-App/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Stream    *stream.Hub
	Publisher *events.KafkaPublisher
}

// NewServer wires every feature onto one fiber app. pg, redisClient and
// publisher may each be nil; the matching feature then degrades instead of
// failing at startup.
func NewServer(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client, publisher *events.KafkaPublisher) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:       app,
		Cfg:       cfg,
		DB:        pg,
		Redis:     redisClient,
		Stream:    stream.NewHub(redisClient),
		Publisher: publisher,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	querier := db.OrUnavailable(s.DB)
	workouts := workout.NewService(workout.NewPostgresSource(querier))
	posts := social.NewService(querier)

	observers := []social.PostObserver{social.BroadcastObserver{Hub: s.Stream}}
	if s.Publisher != nil {
		observers = append(observers, social.EventObserver{Publisher: s.Publisher})
	}

	workout.RegisterRoutes(s.App.Group("/workouts"), workouts, s.Cfg.RecentLimit)
	social.RegisterRoutes(s.App.Group("/social"), posts, social.NewSharer(posts, observers...))
	advice.RegisterRoutes(s.App.Group("/advice"), advice.NewService(workouts, advice.SummaryGenerator{}, s.Cfg.AdviceImages()))
	profile.RegisterRoutes(s.App.Group("/profiles"), profile.NewService(querier))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// Close releases the live feed subscription and the event writer.
func (s *Server) Close() error {
	return errors.Join(s.Stream.Close(), s.Publisher.Close())
}
