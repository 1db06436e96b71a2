package streak

import (
	"fmt"
	"testing"
	"time"

	"github.com/lycanstats/engine/pkg/game"
)

// seriesLog builds a chronological single-player log from per-game specs:
// "V" villageois win, "v" villageois loss, "L" loup win, "l" loup loss,
// "S" solo win, "s" solo loss.
func seriesLog(specs string) []*game.GameRecord {
	games := make([]*game.GameRecord, 0, len(specs))
	for i, c := range specs {
		part := game.ParticipationRecord{Username: "alice"}
		switch c {
		case 'V', 'v':
			part.Role = "Villageois"
		case 'L', 'l':
			part.Role = "Loup"
		case 'S', 's':
			part.Role = "Agent"
		}
		part.Victorious = c == 'V' || c == 'L' || c == 'S'

		games = append(games, &game.GameRecord{
			ID:             fmt.Sprintf("2024010112%04d", i),
			StartDate:      time.Date(2024, 1, 1, 12, 0, i, 0, time.UTC),
			DisplayedID:    i + 1,
			Participations: []game.ParticipationRecord{part},
		})
	}
	return games
}

func foldAlice(specs string) *PlayerSeriesState {
	states := ComputeAll(seriesLog(specs))
	return states["alice"]
}

func TestApply_CampStreakBreak(t *testing.T) {
	// Villageois, Villageois, Loup, Villageois: best villageois run is the
	// first two games, not three.
	state := foldAlice("vvlv")

	best := state.Villageois.Best
	if best == nil {
		t.Fatal("expected a villageois record")
	}
	if best.SeriesLength != 2 {
		t.Errorf("SeriesLength = %d, expected 2", best.SeriesLength)
	}
	if len(best.GameIDs) != 2 {
		t.Errorf("GameIDs = %v, expected the first two games", best.GameIDs)
	}
	if best.StartGameID != "20240101120000" || best.EndGameID != "20240101120001" {
		t.Errorf("record spans %s..%s, expected games 1-2", best.StartGameID, best.EndGameID)
	}
}

func TestApply_SoloBreaksBothCampStreaks(t *testing.T) {
	state := foldAlice("vlsv")

	if state.Villageois.Current.Length != 1 {
		t.Errorf("villageois current = %d, expected restart after solo game", state.Villageois.Current.Length)
	}
	if state.Loups.Current.Length != 0 {
		t.Errorf("loups current = %d, expected idle after solo game", state.Loups.Current.Length)
	}
}

func TestApply_WinLossExclusivity(t *testing.T) {
	// Alternating win, loss, win, loss never yields a run above 1.
	state := foldAlice("VvVv")

	if state.Win.Best.SeriesLength != 1 {
		t.Errorf("win best = %d, expected 1", state.Win.Best.SeriesLength)
	}
	if state.Loss.Best.SeriesLength != 1 {
		t.Errorf("loss best = %d, expected 1", state.Loss.Best.SeriesLength)
	}
	if state.Win.Current.Length > 0 && state.Loss.Current.Length > 0 {
		t.Error("win and loss streaks must never be simultaneously active")
	}
}

func TestApply_TieBreakPrefersLatestRun(t *testing.T) {
	// Two win runs of length 2; the later one must hold the record.
	state := foldAlice("VVvVV")

	best := state.Win.Best
	if best.SeriesLength != 2 {
		t.Fatalf("SeriesLength = %d, expected 2", best.SeriesLength)
	}
	if best.StartGameID != "20240101120003" {
		t.Errorf("record starts at %s, expected the later run", best.StartGameID)
	}
	if best.EndOrdinal != 5 {
		t.Errorf("EndOrdinal = %d, expected 5", best.EndOrdinal)
	}
}

func TestApply_OngoingFlag(t *testing.T) {
	// Career-best win streak of 5, still running at the end of the log.
	stillRunning := foldAlice("vVVVVV")
	cs := stillRunning.Win
	if cs.Current.Length != cs.Best.SeriesLength || cs.Current.Length != 5 {
		t.Fatalf("current = %d, best = %d, expected both 5", cs.Current.Length, cs.Best.SeriesLength)
	}

	// All-time best of 7 set earlier, since broken: not ongoing.
	broken := foldAlice("VVVVVVVvVVVVV")
	cs = broken.Win
	if cs.Best.SeriesLength != 7 {
		t.Fatalf("best = %d, expected 7", cs.Best.SeriesLength)
	}
	if cs.Current.Length == cs.Best.SeriesLength {
		t.Error("current run must be shorter than the broken record")
	}
}

func TestFold_CreatesStatesOnFirstAppearance(t *testing.T) {
	games := seriesLog("VV")
	games[1].Participations = append(games[1].Participations, game.ParticipationRecord{
		Username: "bob", Role: "Loup", Victorious: false,
	})

	states := ComputeAll(games)
	if len(states) != 2 {
		t.Fatalf("expected 2 player states, got %d", len(states))
	}
	if states["bob"].Loss.Current.Length != 1 {
		t.Errorf("bob loss current = %d, expected 1", states["bob"].Loss.Current.Length)
	}
}

func TestFold_ResumesFromCarriedState(t *testing.T) {
	games := seriesLog("VVVV")

	// Full fold over everything.
	full := ComputeAll(games)

	// Split fold: first half from scratch, second half resumed.
	partial := ComputeAll(games[:2])
	Fold(partial, games[2:])

	if partial["alice"].Win.Best.SeriesLength != full["alice"].Win.Best.SeriesLength {
		t.Errorf("resumed best = %d, full best = %d",
			partial["alice"].Win.Best.SeriesLength, full["alice"].Win.Best.SeriesLength)
	}
	if partial["alice"].Win.Current.Length != 4 {
		t.Errorf("resumed current = %d, expected 4", partial["alice"].Win.Current.Length)
	}
}
