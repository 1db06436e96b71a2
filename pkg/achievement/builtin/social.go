package builtin

import (
	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
)

// VotesCast sums the player's votes across all games. The game list holds
// one entry per game with at least one vote, so it is shorter than the
// value whenever a player voted more than once in a game; attribution
// degrades to the last contributing game past that point.
func VotesCast(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	var result achievement.Result
	for _, pg := range playerGames {
		if n := len(pg.Part.Votes); n > 0 {
			result.Value += n
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// TalkativeGames counts games where the player's talk time reached
// params.minSeconds.
func TalkativeGames(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
	minSeconds := params.GetFloat("minSeconds", 60)

	var result achievement.Result
	for _, pg := range playerGames {
		if pg.Part.TalkSeconds >= minSeconds {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// ActionsOfKind counts action events of the kind named by params.kind
// (transform, potion, gadget, hunter_shot). Events are summed per game, so
// the game list carries one entry per contributing game and may be shorter
// than the value.
func ActionsOfKind(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
	kind := params.GetString("kind", "")

	var result achievement.Result
	for _, pg := range playerGames {
		count := 0
		for _, action := range pg.Part.Actions {
			if action.Kind == kind {
				count++
			}
		}
		if count > 0 {
			result.Value += count
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}
