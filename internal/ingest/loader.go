// Package ingest loads game-log JSON files from the sync directory. It is a
// collaborator of the core: the engines only ever see the decoded records.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Loader reads game-log files from a sync directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader over a sync directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// ListFiles returns the .json files in the sync directory, sorted by name
// so ingestion order is deterministic.
func (l *Loader) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync directory %s: %w", l.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile decodes one game-log file, a JSON array of game records. A
// record that fails to decode is logged and skipped; a single bad record
// never aborts the batch.
func (l *Loader) LoadFile(name string) ([]*game.GameRecord, error) {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game log %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse game log %s: %w", path, err)
	}

	games := make([]*game.GameRecord, 0, len(raw))
	for i, entry := range raw {
		var g game.GameRecord
		if err := json.Unmarshal(entry, &g); err != nil {
			logrus.Warnf("skipping malformed record %d in %s: %v", i, name, err)
			metrics.MalformedRecordsTotal.Inc()
			continue
		}
		if g.ID == "" {
			logrus.Warnf("skipping record %d in %s: empty game id", i, name)
			metrics.MalformedRecordsTotal.Inc()
			continue
		}
		games = append(games, &g)
	}

	logrus.Infof("loaded %d games from %s", len(games), name)
	return games, nil
}
