package index

import (
	"testing"
	"time"

	"github.com/lycanstats/engine/pkg/game"
)

type staticRegistry map[string]string

func (r staticRegistry) DisplayName(playerID string) (string, bool) {
	name, ok := r[playerID]
	return name, ok
}

func testLog() []*game.GameRecord {
	return []*game.GameRecord{
		{
			ID:        "20240101120000",
			StartDate: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			Participations: []game.ParticipationRecord{
				{Username: "alice_old", AccountID: "1"},
				{Username: "bob", AccountID: "2"},
			},
			DisplayedID: 1,
		},
		{
			ID:        "20240102120000",
			StartDate: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			Participations: []game.ParticipationRecord{
				{Username: "alice", AccountID: "1"},
			},
			DisplayedID: 2,
		},
	}
}

func TestBuild_GroupsChronologically(t *testing.T) {
	idx := Build(testLog(), nil)

	games := idx.Games("1")
	if len(games) != 2 {
		t.Fatalf("expected 2 games for player 1, got %d", len(games))
	}
	if games[0].Game.ID != "20240101120000" || games[1].Game.ID != "20240102120000" {
		t.Error("player games are not in chronological order")
	}

	if len(idx.Games("2")) != 1 {
		t.Errorf("expected 1 game for player 2, got %d", len(idx.Games("2")))
	}
	if idx.Games("99") != nil {
		t.Error("expected nil slice for unknown player")
	}
}

func TestBuild_NameFallbackIsMostRecentUsername(t *testing.T) {
	idx := Build(testLog(), nil)

	if name := idx.DisplayName("1"); name != "alice" {
		t.Errorf("DisplayName(1) = %s, expected most recent username alice", name)
	}
}

func TestBuild_NameRegistryWins(t *testing.T) {
	idx := Build(testLog(), staticRegistry{"1": "Alice la Vaillante"})

	if name := idx.DisplayName("1"); name != "Alice la Vaillante" {
		t.Errorf("DisplayName(1) = %s, expected registry name", name)
	}
	if name := idx.DisplayName("2"); name != "bob" {
		t.Errorf("DisplayName(2) = %s, expected in-log fallback", name)
	}
}

func TestPlayerIDs_Sorted(t *testing.T) {
	idx := Build(testLog(), nil)

	ids := idx.PlayerIDs()
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Errorf("PlayerIDs() = %v, expected sorted [1 2]", ids)
	}
	if idx.PlayerCount() != 2 {
		t.Errorf("PlayerCount() = %d, expected 2", idx.PlayerCount())
	}
}
