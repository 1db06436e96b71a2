package builtin

import (
	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
)

// AllMapsWon scores 1 once the player has won at least once on every map
// anyone has ever played, else 0. This is the cross-player evaluator: the
// map universe comes from the full log, not the player's own history. The
// game list holds the first winning game per map, in chronological order.
func AllMapsWon(playerGames []index.PlayerGame, allGames []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	universe := make(map[string]bool)
	for _, g := range allGames {
		if g.MapName != "" {
			universe[g.MapName] = true
		}
	}
	if len(universe) == 0 {
		return achievement.Result{}
	}

	firstWin := make(map[string]string, len(universe))
	var order []string
	for _, pg := range playerGames {
		if !pg.Part.Victorious || pg.Game.MapName == "" {
			continue
		}
		if _, ok := firstWin[pg.Game.MapName]; !ok {
			firstWin[pg.Game.MapName] = pg.Game.ID
			order = append(order, pg.Game.MapName)
		}
	}

	for mapName := range universe {
		if _, ok := firstWin[mapName]; !ok {
			return achievement.Result{}
		}
	}

	result := achievement.Result{Value: 1}
	for _, mapName := range order {
		result.GameIDs = append(result.GameIDs, firstWin[mapName])
	}
	return result
}
