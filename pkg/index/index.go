// Package index groups the ordered game log by player for single-pass
// consumption by the achievement engine and the streak automaton.
package index

import (
	"sort"

	"github.com/lycanstats/engine/pkg/game"
	"github.com/sirupsen/logrus"
)

// NameRegistry resolves a player id to a canonical display name. Absence is
// fine; the index falls back to the most recent in-log username.
type NameRegistry interface {
	DisplayName(playerID string) (string, bool)
}

// PlayerGame pairs a game with one player's participation row in it.
type PlayerGame struct {
	Game *game.GameRecord
	Part *game.ParticipationRecord
}

// Index is the per-player view of the game log. Games within each player's
// slice appear in ascending DisplayedID order, matching the input.
type Index struct {
	games map[string][]PlayerGame
	names map[string]string
}

// Build produces the per-player index from an ordered game log in a single
// pass. It is a pure function of the log plus the optional name registry.
func Build(ordered []*game.GameRecord, registry NameRegistry) *Index {
	idx := &Index{
		games: make(map[string][]PlayerGame),
		names: make(map[string]string),
	}

	for _, g := range ordered {
		for i := range g.Participations {
			p := &g.Participations[i]
			id := p.PlayerID()
			idx.games[id] = append(idx.games[id], PlayerGame{Game: g, Part: p})
			// Later games overwrite, keeping the most recent username.
			idx.names[id] = p.Username
		}
	}

	if registry != nil {
		for id := range idx.names {
			if name, ok := registry.DisplayName(id); ok {
				idx.names[id] = name
			}
		}
	}

	logrus.Debugf("indexed %d games into %d player histories", len(ordered), len(idx.games))
	return idx
}

// Games returns the chronologically ordered (game, participation) slice for
// a player, or nil for an unknown player.
func (idx *Index) Games(playerID string) []PlayerGame {
	return idx.games[playerID]
}

// DisplayName returns the resolved display name for a player.
func (idx *Index) DisplayName(playerID string) string {
	return idx.names[playerID]
}

// PlayerIDs returns every player id that appears in at least one game, in
// sorted order so iteration never leaks map ordering into output.
func (idx *Index) PlayerIDs() []string {
	ids := make([]string, 0, len(idx.games))
	for id := range idx.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlayerCount returns the number of distinct players in the log.
func (idx *Index) PlayerCount() int {
	return len(idx.games)
}
