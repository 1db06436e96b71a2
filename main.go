package main

import (
	"context"
	"os"

	"github.com/lycanstats/engine/internal/app"
	"github.com/lycanstats/engine/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	logrus.Infof("starting %s (%s)", cfg.ServiceName, cfg.Environment)

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		logrus.Errorf("application exited with error: %v", err)
		os.Exit(1)
	}
}
