package builtin

import (
	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
	"github.com/lycanstats/engine/pkg/zone"
)

// DeathsByType counts deaths whose type matches params.deathType.
func DeathsByType(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
	deathType := params.GetString("deathType", "")

	var result achievement.Result
	for _, pg := range playerGames {
		if pg.Part.Death != nil && pg.Part.Death.Type == deathType {
			result.Value++
			result.GameIDs = append(result.GameIDs, pg.Game.ID)
		}
	}
	return result
}

// ZoneDeathsMin scores "died at least N times in every zone" of the map
// named by params.map: the value is the minimum death count across the
// map's zones, so every zone must contribute before the value climbs. The
// game list carries the limiting zones' contributions, merged and
// deduplicated in chronological order.
func ZoneDeathsMin(zones zone.Locator) achievement.Evaluator {
	return func(playerGames []index.PlayerGame, _ []*game.GameRecord, _ string, params achievement.Params) achievement.Result {
		if zones == nil {
			return achievement.Result{}
		}

		mapName := params.GetString("map", "")
		zoneNames := zones.Zones(mapName)
		if len(zoneNames) == 0 {
			return achievement.Result{}
		}

		counts := make(map[string]int, len(zoneNames))
		gamesByZone := make(map[string][]string, len(zoneNames))

		for _, pg := range playerGames {
			death := pg.Part.Death
			if pg.Game.MapName != mapName || death == nil || death.Position == nil {
				continue
			}
			name, ok := zones.ZoneAt(mapName, *death.Position)
			if !ok {
				continue
			}
			counts[name]++
			gamesByZone[name] = append(gamesByZone[name], pg.Game.ID)
		}

		min := -1
		for _, name := range zoneNames {
			if min == -1 || counts[name] < min {
				min = counts[name]
			}
		}
		if min <= 0 {
			return achievement.Result{}
		}

		// Merge the game lists of every zone sitting at the minimum,
		// deduplicated, preserving chronological order within each zone's
		// contribution.
		var merged []string
		seen := make(map[string]bool)
		for _, name := range zoneNames {
			if counts[name] != min {
				continue
			}
			for _, id := range gamesByZone[name] {
				if !seen[id] {
					seen[id] = true
					merged = append(merged, id)
				}
			}
		}

		return achievement.Result{Value: min, GameIDs: merged}
	}
}
