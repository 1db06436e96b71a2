package streak

import (
	"github.com/lycanstats/engine/pkg/game"
)

// Apply folds one game into the player's state. All four automata update
// together: the camp streaks from the participation's derived camp (a solo
// camp breaks both), the win and loss streaks complementarily from the
// victorious flag. Games must arrive in ascending chronological order; the
// automaton performs no re-sort of its own.
func (s *PlayerSeriesState) Apply(g *game.GameRecord, p *game.ParticipationRecord) {
	camp := game.CampOf(p)

	s.Villageois.apply(s.PlayerID, g, camp == game.CampVillageois)
	s.Loups.apply(s.PlayerID, g, camp == game.CampLoups)
	s.Win.apply(s.PlayerID, g, p.Victorious)
	s.Loss.apply(s.PlayerID, g, !p.Victorious)
}

// apply advances one automaton: extend the current run when the game has
// the category's property, otherwise fall back to idle. On every increment
// the run is compared against the best with >=, so a later run of equal
// length replaces the earlier record holder.
func (cs *CategoryState) apply(playerID string, g *game.GameRecord, extends bool) {
	if !extends {
		cs.Current = RunState{}
		return
	}

	if cs.Current.Length == 0 {
		cs.Current.StartGameID = g.ID
		cs.Current.StartDate = g.StartDate
	}
	cs.Current.Length++
	cs.Current.GameIDs = append(cs.Current.GameIDs, g.ID)

	if cs.Best == nil || cs.Current.Length >= cs.Best.SeriesLength {
		gameIDs := make([]string, len(cs.Current.GameIDs))
		copy(gameIDs, cs.Current.GameIDs)

		cs.Best = &StreakRecord{
			PlayerID:     playerID,
			SeriesLength: cs.Current.Length,
			StartGameID:  cs.Current.StartGameID,
			StartDate:    cs.Current.StartDate,
			EndGameID:    g.ID,
			EndDate:      g.StartDate,
			EndOrdinal:   g.DisplayedID,
			GameIDs:      gameIDs,
		}
	}
}

// Fold runs every game's participations through the per-player automata,
// creating states on first appearance. It serves both the full-batch path
// (empty states map) and the incremental path (states carried forward from
// the previous run); the transition rules are identical, which is what
// makes the two paths equivalent for append-only ingestion.
func Fold(states map[string]*PlayerSeriesState, ordered []*game.GameRecord) {
	for _, g := range ordered {
		for i := range g.Participations {
			p := &g.Participations[i]
			id := p.PlayerID()

			state, ok := states[id]
			if !ok {
				state = NewPlayerSeriesState(id)
				states[id] = state
			}
			state.Apply(g, p)
		}
	}
}

// ComputeAll folds the full ordered log from scratch.
func ComputeAll(ordered []*game.GameRecord) map[string]*PlayerSeriesState {
	states := make(map[string]*PlayerSeriesState)
	Fold(states, ordered)
	return states
}
