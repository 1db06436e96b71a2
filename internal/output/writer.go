// Package output writes the result documents for the presentation layer.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lycanstats/engine/pkg/incremental"
	"github.com/sirupsen/logrus"
)

const (
	achievementsFile = "achievements.json"
	streaksFile      = "streaks.json"
)

// Writer persists the two output documents as JSON files. Go's JSON encoder
// writes map keys in sorted order, so repeated runs over the same log
// produce byte-identical files.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting an output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write emits achievements.json and streaks.json.
func (w *Writer) Write(outputs *incremental.Outputs) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	if err := w.writeFile(achievementsFile, outputs.Achievements); err != nil {
		return err
	}
	if err := w.writeFile(streaksFile, outputs.Streaks); err != nil {
		return err
	}

	logrus.Infof("wrote results to %s", w.dir)
	return nil
}

func (w *Writer) writeFile(name string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
