package streak

import (
	"testing"
)

func TestBuildSummary_OngoingFlag(t *testing.T) {
	states := map[string]*PlayerSeriesState{
		"alice": foldAliceState(t, "vVVVVV"),
	}

	summary := BuildSummary(states, 6, nil)
	if len(summary.AllWinSeries) != 1 {
		t.Fatalf("expected 1 win record, got %d", len(summary.AllWinSeries))
	}
	if !summary.AllWinSeries[0].IsOngoing {
		t.Error("record holder still extending their best streak must be ongoing")
	}

	broken := map[string]*PlayerSeriesState{
		"alice": foldAliceState(t, "VVVVVVVvVVVVV"),
	}
	summary = BuildSummary(broken, 13, nil)
	if summary.AllWinSeries[0].IsOngoing {
		t.Error("a broken record must not be ongoing")
	}
}

func foldAliceState(t *testing.T, specs string) *PlayerSeriesState {
	t.Helper()
	state := foldAlice(specs)
	if state == nil {
		t.Fatal("expected a state for alice")
	}
	return state
}

func TestBuildSummary_SortsDescendingByLength(t *testing.T) {
	states := map[string]*PlayerSeriesState{
		"alice": foldAliceState(t, "VVV"),
		"bob":   foldAliceState(t, "VVVVV"),
	}
	states["bob"].PlayerID = "bob"
	states["bob"].Win.Best.PlayerID = "bob"

	summary := BuildSummary(states, 8, nil)
	if len(summary.AllWinSeries) != 2 {
		t.Fatalf("expected 2 win records, got %d", len(summary.AllWinSeries))
	}
	if summary.AllWinSeries[0].PlayerID != "bob" {
		t.Errorf("longest streak must sort first, got %s", summary.AllWinSeries[0].PlayerID)
	}
	if summary.AllWinSeries[0].SeriesLength < summary.AllWinSeries[1].SeriesLength {
		t.Error("records are not in descending length order")
	}
}

func TestBuildSummary_Totals(t *testing.T) {
	states := map[string]*PlayerSeriesState{
		"alice": foldAliceState(t, "Vv"),
	}

	summary := BuildSummary(states, 2, func(string) string { return "Alice" })
	if summary.TotalGamesAnalyzed != 2 {
		t.Errorf("TotalGamesAnalyzed = %d, expected 2", summary.TotalGamesAnalyzed)
	}
	if summary.TotalPlayersCount != 1 {
		t.Errorf("TotalPlayersCount = %d, expected 1", summary.TotalPlayersCount)
	}
	if summary.AllWinSeries[0].PlayerName != "Alice" {
		t.Errorf("PlayerName = %s, expected resolved name", summary.AllWinSeries[0].PlayerName)
	}
}

func TestBuildSummary_OmitsPlayersWithoutRecords(t *testing.T) {
	// Alice never played loup: no loup record for her.
	states := map[string]*PlayerSeriesState{
		"alice": foldAliceState(t, "Vv"),
	}

	summary := BuildSummary(states, 2, nil)
	if len(summary.AllLoupsSeries) != 0 {
		t.Errorf("expected empty loup series, got %+v", summary.AllLoupsSeries)
	}
	if len(summary.AllVillageoisSeries) != 1 {
		t.Errorf("expected 1 villageois record, got %d", len(summary.AllVillageoisSeries))
	}
}
