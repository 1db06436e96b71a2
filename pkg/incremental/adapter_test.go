package incremental

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/achievement/builtin"
	"github.com/lycanstats/engine/pkg/game"
)

func testAdapter(t *testing.T) *Adapter {
	t.Helper()

	registry := achievement.NewRegistry()
	if err := builtin.Register(registry, builtin.Dependencies{}); err != nil {
		t.Fatalf("failed to register evaluators: %v", err)
	}

	defs := []achievement.Definition{
		{ID: "veteran", Evaluator: builtin.NameGamesPlayed, Levels: []achievement.Level{
			{Tier: "bronze", Threshold: 2}, {Tier: "silver", Threshold: 5},
		}},
		{ID: "winner", Evaluator: builtin.NameWins, Levels: []achievement.Level{
			{Tier: "bronze", Threshold: 1}, {Tier: "silver", Threshold: 3},
		}},
		{ID: "voter", Evaluator: builtin.NameVotesCast, Levels: []achievement.Level{
			{Tier: "bronze", Threshold: 3},
		}},
	}

	return NewAdapter(achievement.NewEngine(registry, defs, 2), nil)
}

// testLog builds a deterministic multi-player log. Regenerated for every
// computation because ordering mutates DisplayedID in place.
func testLog(n int) []*game.GameRecord {
	games := make([]*game.GameRecord, 0, n)
	for i := 0; i < n; i++ {
		aliceWins := i%3 != 0
		role := "Villageois"
		if i%4 == 0 {
			role = "Loup"
		}

		games = append(games, &game.GameRecord{
			ID:        fmt.Sprintf("202401%02d120000", i+1),
			StartDate: time.Date(2024, 1, i+1, 12, 0, 0, 0, time.UTC),
			MapName:   "Village",
			Participations: []game.ParticipationRecord{
				{Username: "alice", AccountID: "1", Role: role, Victorious: aliceWins,
					Votes: []string{"bob", "carol"}},
				{Username: "bob", AccountID: "2", Role: "Villageois", Victorious: !aliceWins},
			},
		})
	}
	return games
}

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(data)
}

func TestUpdate_EquivalentToFullRecompute(t *testing.T) {
	const total = 9
	ctx := context.Background()

	for split := 0; split <= total; split++ {
		split := split
		t.Run(fmt.Sprintf("split_%d", split), func(t *testing.T) {
			adapter := testAdapter(t)

			fullOutputs, fullSnapshot, err := adapter.Full(ctx, testLog(total))
			if err != nil {
				t.Fatalf("Full() error = %v", err)
			}

			log := testLog(total)
			_, snapshot, err := adapter.Full(ctx, log[:split])
			if err != nil {
				t.Fatalf("Full(prefix) error = %v", err)
			}
			incOutputs, incSnapshot, err := adapter.Update(ctx, snapshot, log[split:])
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			if got, want := marshal(t, incOutputs), marshal(t, fullOutputs); got != want {
				t.Errorf("outputs diverge at split %d:\nincremental: %s\nfull:        %s", split, got, want)
			}
			if got, want := marshal(t, incSnapshot.States), marshal(t, fullSnapshot.States); got != want {
				t.Errorf("serialized states diverge at split %d", split)
			}
			if incSnapshot.GameCount != fullSnapshot.GameCount {
				t.Errorf("GameCount = %d, expected %d", incSnapshot.GameCount, fullSnapshot.GameCount)
			}
		})
	}
}

func TestUpdate_SurvivesSerializationRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := testAdapter(t)

	log := testLog(6)
	_, snapshot, err := adapter.Full(ctx, log[:4])
	if err != nil {
		t.Fatalf("Full() error = %v", err)
	}

	// Round-trip the snapshot through JSON, as the persistence layer does.
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("snapshot marshal failed: %v", err)
	}
	var restored Snapshot
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("snapshot unmarshal failed: %v", err)
	}

	restoredOutputs, _, err := adapter.Update(ctx, &restored, log[4:])
	if err != nil {
		t.Fatalf("Update(restored) error = %v", err)
	}

	fullOutputs, _, err := adapter.Full(ctx, testLog(6))
	if err != nil {
		t.Fatalf("Full() error = %v", err)
	}

	if got, want := marshal(t, restoredOutputs), marshal(t, fullOutputs); got != want {
		t.Errorf("outputs diverge after serialization round trip:\n%s\n%s", got, want)
	}
}

func TestUpdate_NilSnapshotDegradesToFull(t *testing.T) {
	ctx := context.Background()
	adapter := testAdapter(t)

	outputs, snapshot, err := adapter.Update(ctx, nil, testLog(3))
	if err != nil {
		t.Fatalf("Update(nil) error = %v", err)
	}
	if snapshot.GameCount != 3 {
		t.Errorf("GameCount = %d, expected 3", snapshot.GameCount)
	}
	if outputs.Streaks.TotalGamesAnalyzed != 3 {
		t.Errorf("TotalGamesAnalyzed = %d, expected 3", outputs.Streaks.TotalGamesAnalyzed)
	}
}

func TestFull_RejectsGameWithoutParticipations(t *testing.T) {
	ctx := context.Background()
	adapter := testAdapter(t)

	games := []*game.GameRecord{{ID: "20240101120000"}}
	if _, _, err := adapter.Full(ctx, games); err == nil {
		t.Error("expected error for game with no participations")
	}
}

func TestFull_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	adapter := testAdapter(t)

	first, _, err := adapter.Full(ctx, testLog(5))
	if err != nil {
		t.Fatalf("Full() error = %v", err)
	}
	second, _, err := adapter.Full(ctx, testLog(5))
	if err != nil {
		t.Fatalf("Full() error = %v", err)
	}

	if marshal(t, first) != marshal(t, second) {
		t.Error("re-running the full computation over the same log must be byte-identical")
	}
}
