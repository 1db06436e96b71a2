package config

import "time"

// Config holds all application configuration loaded from environment
// variables, parsed with github.com/caarlos0/env.
type Config struct {
	// Server configuration
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"LycanStatsEngine"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis configuration (incremental snapshot store)
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`

	// Sync configuration
	SyncDir      string        `env:"SYNC_DIR" envDefault:"data/sync"`
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"5m"`
	RunOnce      bool          `env:"RUN_ONCE" envDefault:"false"`
	OutputDir    string        `env:"OUTPUT_DIR" envDefault:"data/out"`

	// Definition files
	AchievementsPath string `env:"ACHIEVEMENTS_PATH" envDefault:"config/achievements.yaml"`
	ZonesPath        string `env:"ZONES_PATH" envDefault:"config/zones.yaml"`
	NamesPath        string `env:"NAMES_PATH"`

	// Engine configuration
	EvalWorkers int `env:"EVAL_WORKERS" envDefault:"4"`
}
