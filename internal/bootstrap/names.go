package bootstrap

import (
	"fmt"
	"os"

	"github.com/lycanstats/engine/pkg/common"
	"github.com/lycanstats/engine/pkg/index"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// StaticNames is a name registry backed by a YAML file mapping player id to
// canonical display name.
type StaticNames struct {
	names map[string]string
}

// DisplayName implements index.NameRegistry.
func (s *StaticNames) DisplayName(playerID string) (string, bool) {
	name, ok := s.names[playerID]
	return name, ok
}

type namesFile struct {
	Players map[string]string `yaml:"players"`
}

// InitNameRegistry loads the optional player name registry. Absence
// degrades gracefully: the index falls back to in-log usernames.
func InitNameRegistry(path string) (index.NameRegistry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Warnf("name registry %s not found, falling back to in-log usernames", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read name registry %s: %w", path, err)
	}

	var file namesFile
	if err := yaml.Unmarshal([]byte(common.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse name registry %s: %w", path, err)
	}

	logrus.Infof("loaded %d player names from %s", len(file.Players), path)
	return &StaticNames{names: file.Players}, nil
}
