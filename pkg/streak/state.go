// Package streak tracks the longest consecutive runs — camp, win, loss — a
// player has ever produced over their chronologically ordered games.
package streak

import (
	"time"
)

// Category identifies one of the four independent streak automata.
type Category string

const (
	CategoryVillageois Category = "villageois"
	CategoryLoups      Category = "loups"
	CategoryWin        Category = "win"
	CategoryLoss       Category = "loss"
)

// Categories returns every streak category in stable order.
func Categories() []Category {
	return []Category{CategoryVillageois, CategoryLoups, CategoryWin, CategoryLoss}
}

// StreakRecord is one best-ever run for a player in one category.
type StreakRecord struct {
	PlayerID     string    `json:"playerId"`
	PlayerName   string    `json:"playerName,omitempty"`
	SeriesLength int       `json:"seriesLength"`
	StartGameID  string    `json:"startGameId"`
	StartDate    time.Time `json:"startDate"`
	EndGameID    string    `json:"endGameId"`
	EndDate      time.Time `json:"endDate"`

	// EndOrdinal is the DisplayedID of the run's closing game. It makes the
	// "latest equal run wins" tie-break and the summary ordering stable.
	EndOrdinal int `json:"endOrdinal"`

	IsOngoing bool     `json:"isOngoing"`
	GameIDs   []string `json:"gameIds"`
}

// RunState is the live counter for one category: the length of the current
// run and the markers of where it started.
type RunState struct {
	Length      int       `json:"length"`
	StartGameID string    `json:"startGameId,omitempty"`
	StartDate   time.Time `json:"startDate,omitempty"`
	GameIDs     []string  `json:"gameIds,omitempty"`
}

// CategoryState pairs a category's current run with the best run seen so far.
type CategoryState struct {
	Current RunState      `json:"current"`
	Best    *StreakRecord `json:"best,omitempty"`
}

// PlayerSeriesState is the mutable accumulator for one player: four run
// counters plus the best record per category. It is created once on the
// player's first appearance, mutated on every subsequent game in
// chronological order, never deleted, and serialized as the incremental
// cache between runs.
type PlayerSeriesState struct {
	PlayerID   string        `json:"playerId"`
	Villageois CategoryState `json:"villageois"`
	Loups      CategoryState `json:"loups"`
	Win        CategoryState `json:"win"`
	Loss       CategoryState `json:"loss"`
}

// NewPlayerSeriesState returns the idle starting state for a player.
func NewPlayerSeriesState(playerID string) *PlayerSeriesState {
	return &PlayerSeriesState{PlayerID: playerID}
}

// Category returns the state for one category.
func (s *PlayerSeriesState) Category(cat Category) *CategoryState {
	switch cat {
	case CategoryVillageois:
		return &s.Villageois
	case CategoryLoups:
		return &s.Loups
	case CategoryWin:
		return &s.Win
	case CategoryLoss:
		return &s.Loss
	}
	return nil
}
