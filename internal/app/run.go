package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Run starts the service: the metrics server, an immediate sync pass, then
// a pass on every sync interval until a shutdown signal arrives. In
// run-once mode a single pass is performed and the service exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.Info("application started successfully")

	if err := a.syncPass(ctx); err != nil {
		if a.cfg.RunOnce {
			a.Shutdown(context.Background())
			return err
		}
		logrus.Errorf("sync pass failed: %v", err)
	}

	if a.cfg.RunOnce {
		logrus.Info("run-once mode, exiting after single pass")
		return a.Shutdown(context.Background())
	}

	ticker := time.NewTicker(a.cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("shutdown signal received")
			return a.Shutdown(context.Background())
		case <-ticker.C:
			// A failed pass has no persisted side effects to roll back; the
			// next tick simply retries from the stored snapshot.
			if err := a.syncPass(ctx); err != nil {
				logrus.Errorf("sync pass failed: %v", err)
			}
		}
	}
}

// syncPass performs one batch pass: ingest new files, fold them into the
// carried-forward snapshot, persist the snapshot and write the outputs.
func (a *App) syncPass(ctx context.Context) error {
	passID := uuid.NewString()
	log := logrus.WithField("pass", passID)
	log.Info("starting sync pass")

	files, err := a.loader.ListFiles()
	if err != nil {
		return err
	}

	var newGames []*game.GameRecord
	var newFiles []string
	for _, file := range files {
		ingested, err := a.store.IsIngested(ctx, file)
		if err != nil {
			return err
		}
		if ingested {
			continue
		}

		games, err := a.loader.LoadFile(file)
		if err != nil {
			log.Warnf("skipping unreadable sync file %s: %v", file, err)
			continue
		}
		newGames = append(newGames, games...)
		newFiles = append(newFiles, file)
	}

	snapshot, err := a.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	if len(newGames) == 0 && snapshot != nil {
		log.Info("no new games, skipping pass")
		return nil
	}

	mode := "incremental"
	if snapshot == nil {
		mode = "full"
	}

	outputs, next, err := a.adapter.Update(ctx, snapshot, newGames)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if err := a.store.SaveSnapshot(ctx, next); err != nil {
		return err
	}
	for _, file := range newFiles {
		if err := a.store.MarkIngested(ctx, file); err != nil {
			return err
		}
	}

	if err := a.writer.Write(outputs); err != nil {
		return err
	}

	metrics.SyncPassesTotal.WithLabelValues(mode).Inc()
	metrics.GamesIngestedTotal.Add(float64(len(newGames)))
	metrics.GamesAnalyzed.Set(float64(next.GameCount))
	metrics.PlayersTracked.Set(float64(len(next.States)))

	log.Infof("sync pass complete: %d new games, %d total, %d players",
		len(newGames), next.GameCount, len(next.States))
	return nil
}
