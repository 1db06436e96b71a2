package zone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lycanstats/engine/pkg/game"
)

func testTable() *Table {
	return NewTable(map[string][]Rect{
		"Village": {
			{Name: "place", MinX: -10, MaxX: 10, MinZ: -10, MaxZ: 10},
			{Name: "ferme", MinX: 10, MaxX: 50, MinZ: -10, MaxZ: 10},
		},
	})
}

func TestTable_ZoneAt(t *testing.T) {
	table := testTable()

	name, ok := table.ZoneAt("Village", game.Position{X: 0, Z: 0})
	if !ok || name != "place" {
		t.Errorf("ZoneAt(0,0) = %s/%v, expected place", name, ok)
	}

	name, ok = table.ZoneAt("Village", game.Position{X: 30, Z: 5})
	if !ok || name != "ferme" {
		t.Errorf("ZoneAt(30,5) = %s/%v, expected ferme", name, ok)
	}

	if _, ok := table.ZoneAt("Village", game.Position{X: 999, Z: 999}); ok {
		t.Error("expected no zone outside every rectangle")
	}
	if _, ok := table.ZoneAt("Inconnu", game.Position{}); ok {
		t.Error("expected no zone on unknown map")
	}
}

func TestTable_ZoneAt_OverlapResolvesByOrder(t *testing.T) {
	table := testTable()

	// X=10 sits on the shared edge of place and ferme; place is defined first.
	name, ok := table.ZoneAt("Village", game.Position{X: 10, Z: 0})
	if !ok || name != "place" {
		t.Errorf("ZoneAt(10,0) = %s/%v, expected first-defined zone place", name, ok)
	}
}

func TestTable_Zones(t *testing.T) {
	table := testTable()

	zones := table.Zones("Village")
	if len(zones) != 2 || zones[0] != "place" || zones[1] != "ferme" {
		t.Errorf("Zones() = %v, expected definition order [place ferme]", zones)
	}
	if len(table.Zones("Inconnu")) != 0 {
		t.Error("expected no zones for unknown map")
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zones.yaml")
	content := `maps:
  Village:
    - { name: place, minX: -10, maxX: 10, minZ: -10, maxZ: 10 }
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(table.Zones("Village")) != 1 {
		t.Errorf("expected 1 zone, got %d", len(table.Zones("Village")))
	}
}

func TestLoadTable_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "duplicate zone",
			content: `maps:
  Village:
    - { name: place, minX: 0, maxX: 1, minZ: 0, maxZ: 1 }
    - { name: place, minX: 2, maxX: 3, minZ: 0, maxZ: 1 }
`,
		},
		{
			name: "inverted bounds",
			content: `maps:
  Village:
    - { name: place, minX: 10, maxX: 0, minZ: 0, maxZ: 1 }
`,
		},
		{
			name: "empty name",
			content: `maps:
  Village:
    - { name: "", minX: 0, maxX: 1, minZ: 0, maxZ: 1 }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}
			if _, err := LoadTable(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
