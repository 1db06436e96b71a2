// Package bootstrap wires configuration into the engine components.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/achievement/builtin"
	"github.com/lycanstats/engine/pkg/zone"
	"github.com/sirupsen/logrus"
)

// InitAchievementEngine builds the evaluator registry, registers the
// builtin evaluator set and creates the engine over the loaded definitions.
func InitAchievementEngine(cfg *achievement.Config, zones zone.Locator, workers int) (*achievement.Engine, error) {
	registry := achievement.NewRegistry()
	if err := builtin.Register(registry, builtin.Dependencies{Zones: zones}); err != nil {
		return nil, fmt.Errorf("failed to register builtin evaluators: %w", err)
	}

	// Definitions naming an unregistered evaluator are a per-player runtime
	// warning, not a startup failure; surface them once here as well.
	for _, def := range cfg.Achievements {
		if registry.Get(def.Evaluator) == nil {
			logrus.Warnf("achievement %s references unknown evaluator %q and will be skipped", def.ID, def.Evaluator)
		}
	}

	engine := achievement.NewEngine(registry, cfg.Achievements, workers)
	logrus.Infof("initialized achievement engine: %d definitions, %d evaluators, %d workers",
		len(cfg.Achievements), registry.Count(), workers)
	return engine, nil
}

// InitZoneLocator loads the zone table. A missing file degrades to no
// locator: the zone-death evaluator then scores zero for everyone.
func InitZoneLocator(path string) (zone.Locator, error) {
	if path == "" {
		logrus.Warnf("no zone table configured, zone evaluators disabled")
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.Warnf("zone table %s not found, zone evaluators disabled", path)
		return nil, nil
	}

	table, err := zone.LoadTable(path)
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded zone table from %s", path)
	return table, nil
}
