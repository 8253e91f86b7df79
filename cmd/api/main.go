package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielaGutierrez38/Fitness-App/internal/config"
	"github.com/DanielaGutierrez38/Fitness-App/internal/db"
	"github.com/DanielaGutierrez38/Fitness-App/internal/events"
	"github.com/DanielaGutierrez38/Fitness-App/internal/logging"
	"github.com/DanielaGutierrez38/Fitness-App/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const postSharedEvent = "post.shared"

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	setupLogging    func(config.Config)
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	connectKafka    func(config.Config) *events.KafkaPublisher
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, Backends, <-chan os.Signal, ListenFunc) error
}

// Backends are the external connections the server runs on. Any may be nil.
type Backends struct {
	Postgres  *pgxpool.Pool
	Redis     *redis.Client
	Publisher *events.KafkaPublisher
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		setupLogging:    setupLogging,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		connectKafka: func(cfg config.Config) *events.KafkaPublisher {
			return events.NewKafkaPublisher(cfg.KafkaBrokers(), cfg.KafkaPostsTopic, postSharedEvent)
		},
		notify: signal.Notify,
		run:    Run,
	}
}

func setupLogging(cfg config.Config) {
	logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()
	deps.setupLogging(cfg)

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.WithError(err).Error("postgres connection failed")
	}

	rdb := deps.connectRedis(cfg)
	if err := db.PingRedis(rdb); err != nil {
		log.WithError(err).Warn("redis unreachable, live feed is local only")
	}

	publisher := deps.connectKafka(cfg)
	if publisher == nil {
		log.Info("no kafka brokers configured, post events disabled")
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	backends := Backends{Postgres: pg, Redis: rdb, Publisher: publisher}
	if err := deps.run(context.Background(), cfg, backends, signals, nil); err != nil {
		log.WithError(err).Error("server exited with error")
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, b Backends, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, b.Postgres, b.Redis, b.Publisher)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if err := srv.Close(); err != nil {
		log.WithError(err).Warn("closing feed and event writers")
	}
	if b.Postgres != nil {
		b.Postgres.Close()
	}
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
	return nil
}
