package streak

import (
	"sort"
)

// Summary is the streak output document: every player's best record per
// category, sorted descending by series length, plus log-wide totals.
type Summary struct {
	AllVillageoisSeries []StreakRecord `json:"allVillageoisSeries"`
	AllLoupsSeries      []StreakRecord `json:"allLoupsSeries"`
	AllWinSeries        []StreakRecord `json:"allWinSeries"`
	AllLossSeries       []StreakRecord `json:"allLossSeries"`
	TotalGamesAnalyzed  int            `json:"totalGamesAnalyzed"`
	TotalPlayersCount   int            `json:"totalPlayersCount"`
}

// NameResolver maps a player id to a display name. May be nil.
type NameResolver func(playerID string) string

// BuildSummary assembles the output document from the per-player states.
// A record is flagged ongoing iff the player's current run length in that
// category still equals the best length and is greater than zero, i.e. the
// record holder is actively extending their best streak as of the last game.
func BuildSummary(states map[string]*PlayerSeriesState, totalGames int, names NameResolver) *Summary {
	summary := &Summary{
		AllVillageoisSeries: []StreakRecord{},
		AllLoupsSeries:      []StreakRecord{},
		AllWinSeries:        []StreakRecord{},
		AllLossSeries:       []StreakRecord{},
		TotalGamesAnalyzed:  totalGames,
		TotalPlayersCount:   len(states),
	}

	playerIDs := make([]string, 0, len(states))
	for id := range states {
		playerIDs = append(playerIDs, id)
	}
	sort.Strings(playerIDs)

	for _, id := range playerIDs {
		state := states[id]
		for _, cat := range Categories() {
			cs := state.Category(cat)
			if cs.Best == nil {
				continue
			}

			record := *cs.Best
			record.IsOngoing = cs.Current.Length > 0 && cs.Current.Length == cs.Best.SeriesLength
			if names != nil {
				record.PlayerName = names(id)
			}
			record.GameIDs = append([]string(nil), cs.Best.GameIDs...)

			switch cat {
			case CategoryVillageois:
				summary.AllVillageoisSeries = append(summary.AllVillageoisSeries, record)
			case CategoryLoups:
				summary.AllLoupsSeries = append(summary.AllLoupsSeries, record)
			case CategoryWin:
				summary.AllWinSeries = append(summary.AllWinSeries, record)
			case CategoryLoss:
				summary.AllLossSeries = append(summary.AllLossSeries, record)
			}
		}
	}

	sortRecords(summary.AllVillageoisSeries)
	sortRecords(summary.AllLoupsSeries)
	sortRecords(summary.AllWinSeries)
	sortRecords(summary.AllLossSeries)

	return summary
}

// sortRecords orders a category list descending by series length, then by
// most recent end game, then by player id, so output is byte-stable across
// runs.
func sortRecords(records []StreakRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SeriesLength != records[j].SeriesLength {
			return records[i].SeriesLength > records[j].SeriesLength
		}
		if records[i].EndOrdinal != records[j].EndOrdinal {
			return records[i].EndOrdinal > records[j].EndOrdinal
		}
		return records[i].PlayerID < records[j].PlayerID
	})
}
