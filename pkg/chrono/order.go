// Package chrono assigns every game a stable, total chronological order
// derived only from its id. The dense rank it produces (DisplayedID) is the
// sort and tie-break key everywhere order matters downstream.
package chrono

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lycanstats/engine/pkg/game"
	"github.com/sirupsen/logrus"
)

// fallbackTimestamp is the last-resort ordering key for ids that do not
// match the expected shape. Malformed ids must never crash the sort; they
// may only be misordered.
const fallbackTimestamp = "0"

// delimiter separates the timestamp segment from the optional trailing
// sequence number in a game id, e.g. "20240512203145_2".
const delimiter = "_"

// Key is the parsed ordering key of a game id: a fixed-width timestamp
// segment whose lexicographic order matches chronological order, plus a
// numeric disambiguator for games started the same second.
type Key struct {
	Timestamp string
	Sequence  int
}

// ParseKey splits a game id into its ordering key. Ids without a leading
// numeric timestamp segment fall back to the fallback key.
func ParseKey(id string) Key {
	parts := strings.Split(id, delimiter)
	if len(parts) == 0 || !isDigits(parts[0]) {
		logrus.Warnf("game id %q does not parse as timestamp, using fallback ordering key", id)
		return Key{Timestamp: fallbackTimestamp}
	}

	key := Key{Timestamp: parts[0]}
	if len(parts) > 1 {
		if seq, err := strconv.Atoi(parts[1]); err == nil {
			key.Sequence = seq
		}
	}
	return key
}

// Less reports whether k orders strictly before other.
func (k Key) Less(other Key) bool {
	if k.Timestamp != other.Timestamp {
		return k.Timestamp < other.Timestamp
	}
	return k.Sequence < other.Sequence
}

// Order sorts games chronologically in place and assigns dense DisplayedIDs
// 1..N. The sort is stable so repeated runs over the same log are
// byte-identical.
func Order(games []*game.GameRecord) {
	keys := make(map[string]Key, len(games))
	for _, g := range games {
		keys[g.ID] = ParseKey(g.ID)
	}

	sort.SliceStable(games, func(i, j int) bool {
		return keys[games[i].ID].Less(keys[games[j].ID])
	})

	for i, g := range games {
		g.DisplayedID = i + 1
	}
}

// Extend orders newGames among themselves with the same rule and assigns
// DisplayedIDs offset+1, offset+2, … where offset is the size of the already
// ordered history. Existing games are never renumbered; the result matches a
// full re-ordering only when every new game is chronologically after all old
// games.
func Extend(offset int, newGames []*game.GameRecord) {
	Order(newGames)
	for _, g := range newGames {
		g.DisplayedID += offset
	}
}

// LastKey returns the ordering key of the chronologically last game in an
// already ordered slice, or the zero Key for an empty history.
func LastKey(ordered []*game.GameRecord) Key {
	if len(ordered) == 0 {
		return Key{}
	}
	return ParseKey(ordered[len(ordered)-1].ID)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
