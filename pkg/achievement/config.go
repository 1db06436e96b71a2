package achievement

import (
	"fmt"
	"os"

	"github.com/lycanstats/engine/pkg/common"
	"gopkg.in/yaml.v3"
)

// Level is one unlockable tier of an achievement definition.
type Level struct {
	Tier      string `yaml:"tier" json:"tier"`
	Threshold int    `yaml:"threshold" json:"threshold"`
}

// Definition is the static configuration of one achievement: which
// evaluator scores it, with which parameters, and the ordered level ladder.
// Definitions are authored out of band and never mutated by the engine.
type Definition struct {
	ID        string  `yaml:"id" json:"id"`
	Name      string  `yaml:"name" json:"name"`
	Evaluator string  `yaml:"evaluator" json:"evaluator"`
	Params    Params  `yaml:"params,omitempty" json:"params,omitempty"`
	Levels    []Level `yaml:"levels" json:"levels"`
}

// Config is the full achievement definition file.
type Config struct {
	Achievements []Definition `yaml:"achievements"`
}

// LoadConfig loads achievement definitions from a YAML file. Environment
// variables in the form ${VAR} or ${VAR:default} are expanded before
// parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := common.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the definition list for structural errors: duplicate or
// empty ids, missing evaluator names, empty ladders and thresholds that are
// not strictly increasing.
func (c *Config) Validate() error {
	ids := make(map[string]bool, len(c.Achievements))
	for _, def := range c.Achievements {
		if def.ID == "" {
			return fmt.Errorf("achievement with empty ID found")
		}
		if ids[def.ID] {
			return fmt.Errorf("duplicate achievement ID: %s", def.ID)
		}
		ids[def.ID] = true

		if def.Evaluator == "" {
			return fmt.Errorf("achievement %s has empty evaluator", def.ID)
		}
		if len(def.Levels) == 0 {
			return fmt.Errorf("achievement %s has no levels", def.ID)
		}

		prev := 0
		for _, level := range def.Levels {
			if level.Tier == "" {
				return fmt.Errorf("achievement %s has a level with an empty tier", def.ID)
			}
			if level.Threshold <= prev {
				return fmt.Errorf("achievement %s thresholds must be strictly increasing (got %d after %d)",
					def.ID, level.Threshold, prev)
			}
			prev = level.Threshold
		}
	}

	return nil
}
