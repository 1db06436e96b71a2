// Package zone maps raw death coordinates to named map zones. The lookup is
// pure and stateless; the engine only consumes it through the Locator
// interface, from the zone-death evaluator.
package zone

import (
	"fmt"
	"os"

	"github.com/lycanstats/engine/pkg/common"
	"github.com/lycanstats/engine/pkg/game"
	"gopkg.in/yaml.v3"
)

// Locator resolves a position on a map to a named zone.
type Locator interface {
	// ZoneAt returns the zone containing pos on the given map, or false if
	// the position is outside every known zone.
	ZoneAt(mapName string, pos game.Position) (string, bool)

	// Zones returns the zone names defined for a map, in definition order.
	Zones(mapName string) []string
}

// Rect is an axis-aligned zone rectangle on the X/Z ground plane.
type Rect struct {
	Name string  `yaml:"name"`
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	MinZ float64 `yaml:"minZ"`
	MaxZ float64 `yaml:"maxZ"`
}

func (r Rect) contains(pos game.Position) bool {
	return pos.X >= r.MinX && pos.X <= r.MaxX && pos.Z >= r.MinZ && pos.Z <= r.MaxZ
}

// Table is a rectangle-table Locator loaded from YAML configuration.
type Table struct {
	maps map[string][]Rect
}

type tableFile struct {
	Maps map[string][]Rect `yaml:"maps"`
}

// LoadTable reads a zone table from a YAML file. Environment variables in
// the form ${VAR} or ${VAR:default} are expanded before parsing.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone table %s: %w", path, err)
	}

	var file tableFile
	if err := yaml.Unmarshal([]byte(common.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse zone table %s: %w", path, err)
	}

	table := &Table{maps: file.Maps}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("invalid zone table %s: %w", path, err)
	}
	return table, nil
}

// NewTable builds a Table directly from rectangles, keyed by map name.
func NewTable(maps map[string][]Rect) *Table {
	return &Table{maps: maps}
}

func (t *Table) validate() error {
	for mapName, rects := range t.maps {
		seen := make(map[string]bool, len(rects))
		for _, r := range rects {
			if r.Name == "" {
				return fmt.Errorf("map %s has a zone with an empty name", mapName)
			}
			if seen[r.Name] {
				return fmt.Errorf("map %s has duplicate zone %s", mapName, r.Name)
			}
			seen[r.Name] = true
			if r.MinX > r.MaxX || r.MinZ > r.MaxZ {
				return fmt.Errorf("map %s zone %s has inverted bounds", mapName, r.Name)
			}
		}
	}
	return nil
}

// ZoneAt implements Locator. The first rectangle containing the position
// wins, so overlapping zones resolve by definition order.
func (t *Table) ZoneAt(mapName string, pos game.Position) (string, bool) {
	for _, r := range t.maps[mapName] {
		if r.contains(pos) {
			return r.Name, true
		}
	}
	return "", false
}

// Zones implements Locator.
func (t *Table) Zones(mapName string) []string {
	rects := t.maps[mapName]
	names := make([]string, len(rects))
	for i, r := range rects {
		names[i] = r.Name
	}
	return names
}
