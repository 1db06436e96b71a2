package builtin

import (
	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
)

// GamesPlayed counts every game in the player's history.
func GamesPlayed(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	result := achievement.Result{Value: len(playerGames)}
	for _, pg := range playerGames {
		result.GameIDs = append(result.GameIDs, pg.Game.ID)
	}
	return result
}

// Wins counts the player's victorious games.
func Wins(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	var result achievement.Result
	for _, pg := range playerGames {
		if pg.Part.Victorious {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// CampWins counts victorious games played in the camp named by params.camp.
func CampWins(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
	camp := game.Camp(params.GetString("camp", string(game.CampVillageois)))

	var result achievement.Result
	for _, pg := range playerGames {
		if pg.Part.Victorious && game.CampOf(pg.Part) == camp {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// CampGames counts games played in the camp named by params.camp, win or lose.
func CampGames(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
	camp := game.Camp(params.GetString("camp", string(game.CampVillageois)))

	var result achievement.Result
	for _, pg := range playerGames {
		if game.CampOf(pg.Part) == camp {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// Survivals counts games the player finished alive.
func Survivals(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	var result achievement.Result
	for _, pg := range playerGames {
		if pg.Part.Survived() {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// HarvestWins counts victorious Villageois games where the harvest goal was
// reached, i.e. wins earned through the resource-race end condition.
func HarvestWins(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, _ achievement.Params) achievement.Result {
	var result achievement.Result
	for _, pg := range playerGames {
		if !pg.Part.Victorious || game.CampOf(pg.Part) != game.CampVillageois {
			continue
		}
		if pg.Game.HarvestGoal > 0 && pg.Game.HarvestDone >= pg.Game.HarvestGoal {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}
