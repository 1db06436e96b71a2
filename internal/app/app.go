package app

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/lycanstats/engine/internal/bootstrap"
	"github.com/lycanstats/engine/internal/config"
	"github.com/lycanstats/engine/internal/ingest"
	"github.com/lycanstats/engine/internal/output"
	"github.com/lycanstats/engine/internal/server"
	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/incremental"
	"github.com/lycanstats/engine/pkg/state"
	"github.com/sirupsen/logrus"
)

const metricsEndpoint = "/metrics"

// App holds all application dependencies and manages the service lifecycle.
type App struct {
	cfg           *config.Config
	metricsServer *server.MetricsServer
	redisClient   *redis.Client
	store         state.Store
	loader        *ingest.Loader
	writer        *output.Writer
	adapter       *incremental.Adapter
}

// New creates and initializes a new application instance. Components are
// initialized in dependency order: Redis, definition files, engines,
// servers.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	redisClient, err := state.InitRedisClient(ctx, state.RedisClientOptions{
		Host:       cfg.RedisHost,
		Port:       cfg.RedisPort,
		Password:   cfg.RedisPassword,
		MaxRetries: cfg.RedisMaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	app.redisClient = redisClient
	app.store = state.NewRedisStore(redisClient)

	achievementConfig, err := achievement.LoadConfig(cfg.AchievementsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement definitions from %s: %w", cfg.AchievementsPath, err)
	}
	logrus.Infof("loaded %d achievement definitions from %s", len(achievementConfig.Achievements), cfg.AchievementsPath)

	zones, err := bootstrap.InitZoneLocator(cfg.ZonesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init zone locator: %w", err)
	}

	names, err := bootstrap.InitNameRegistry(cfg.NamesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init name registry: %w", err)
	}

	engine, err := bootstrap.InitAchievementEngine(achievementConfig, zones, cfg.EvalWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to init achievement engine: %w", err)
	}

	app.adapter = incremental.NewAdapter(engine, names)
	app.loader = ingest.NewLoader(cfg.SyncDir)
	app.writer = output.NewWriter(cfg.OutputDir)

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, metricsEndpoint)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized")
	return app, nil
}

// Shutdown gracefully shuts down all application components, servers first,
// then external connections.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
