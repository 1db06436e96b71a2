// Package builtin provides the closed set of named achievement evaluators.
// Adding achievement logic means adding a function here and registering it;
// there is no runtime extension mechanism.
package builtin

import (
	"fmt"

	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/zone"
	"github.com/sirupsen/logrus"
)

// Evaluator names referenced by achievement definitions.
const (
	NameGamesPlayed    = "games_played"
	NameWins           = "wins"
	NameCampWins       = "camp_wins"
	NameCampGames      = "camp_games"
	NameSurvivals      = "survivals"
	NameHarvestWins    = "harvest_wins"
	NameDeathsByType   = "deaths_by_type"
	NameZoneDeathsMin  = "zone_deaths_min"
	NameVotesCast      = "votes_cast"
	NameTalkativeGames = "talkative_games"
	NameActionsOfKind  = "actions_of_kind"
	NameAllMapsWon     = "all_maps_won"
)

// Dependencies holds the external collaborators evaluators may use. Zones
// is the stateless coordinate-to-zone lookup consumed by zone_deaths_min;
// it may be nil, in which case that evaluator always scores zero.
type Dependencies struct {
	Zones zone.Locator
}

// Register adds every builtin evaluator to the registry.
func Register(registry *achievement.Registry, deps Dependencies) error {
	evaluators := map[string]achievement.Evaluator{
		NameGamesPlayed:    GamesPlayed,
		NameWins:           Wins,
		NameCampWins:       CampWins,
		NameCampGames:      CampGames,
		NameSurvivals:      Survivals,
		NameHarvestWins:    HarvestWins,
		NameDeathsByType:   DeathsByType,
		NameZoneDeathsMin:  ZoneDeathsMin(deps.Zones),
		NameVotesCast:      VotesCast,
		NameTalkativeGames: TalkativeGames,
		NameActionsOfKind:  ActionsOfKind,
		NameAllMapsWon:     AllMapsWon,
	}

	for name, fn := range evaluators {
		if err := registry.Register(name, fn); err != nil {
			return fmt.Errorf("failed to register evaluator %s: %w", name, err)
		}
	}

	logrus.Infof("registered %d builtin evaluators", len(evaluators))
	return nil
}
