package achievement

import (
	"context"
	"sync"

	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
	"github.com/lycanstats/engine/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxClimbProgress caps progress strictly below 1.0 while a player is still
// climbing: a maxed achievement is only ever represented by an absent
// NextLevel, never by progress reaching 1.0 early.
const maxClimbProgress = 0.99

// UnlockedLevel is a reached level annotated with the game at which the
// threshold was first crossed.
type UnlockedLevel struct {
	Tier      string `json:"tier"`
	Threshold int    `json:"threshold"`
	GameID    string `json:"gameId,omitempty"`
}

// Progress is one player's standing against one achievement definition.
type Progress struct {
	AchievementID  string          `json:"achievementId"`
	Name           string          `json:"name,omitempty"`
	Value          int             `json:"value"`
	UnlockedLevels []UnlockedLevel `json:"unlockedLevels"`
	NextLevel      *Level          `json:"nextLevel,omitempty"`
	Progress       float64         `json:"progress"`
}

// PlayerAchievements is the full achievement output for one player.
type PlayerAchievements struct {
	PlayerID      string     `json:"playerId"`
	PlayerName    string     `json:"playerName"`
	TotalUnlocked int        `json:"totalUnlocked"`
	Achievements  []Progress `json:"achievements"`
}

// Engine turns evaluator scores into unlocked levels, attribution and
// progress-to-next-level for every (player, definition) pair.
type Engine struct {
	registry *Registry
	defs     []Definition
	workers  int
}

// NewEngine creates an achievement engine over a registry and a validated
// definition list. workers bounds the per-player fan-out; values below 1
// mean sequential.
func NewEngine(registry *Registry, defs []Definition, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		registry: registry,
		defs:     defs,
		workers:  workers,
	}
}

// Compute evaluates every definition for every player in the index. Players
// are independent, so they are evaluated concurrently; output content per
// player does not depend on scheduling, so results are deterministic.
// Players whose every evaluator scores zero are absent from the result map.
func (e *Engine) Compute(ctx context.Context, idx *index.Index, allGames []*game.GameRecord) (map[string]*PlayerAchievements, error) {
	results := make(map[string]*PlayerAchievements)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, playerID := range idx.PlayerIDs() {
		playerID := playerID
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry := e.computePlayer(idx, allGames, playerID)
			if entry == nil {
				return nil
			}

			mu.Lock()
			results[playerID] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// computePlayer runs every definition for one player. Definitions appear in
// the output in configuration order; sparse (zero-value) definitions are
// skipped entirely.
func (e *Engine) computePlayer(idx *index.Index, allGames []*game.GameRecord, playerID string) *PlayerAchievements {
	playerGames := idx.Games(playerID)

	var achievements []Progress
	totalUnlocked := 0

	for _, def := range e.defs {
		fn := e.registry.Get(def.Evaluator)
		if fn == nil {
			logrus.Warnf("achievement %s references unknown evaluator %q, skipping for player %s",
				def.ID, def.Evaluator, playerID)
			metrics.EvaluatorWarningsTotal.WithLabelValues("unknown_evaluator").Inc()
			continue
		}

		result := fn(playerGames, allGames, playerID, def.Params)
		if result.Value < 0 {
			logrus.Warnf("evaluator %s returned negative value %d for player %s, clamping to 0",
				def.Evaluator, result.Value, playerID)
			metrics.EvaluatorWarningsTotal.WithLabelValues("negative_value").Inc()
			result.Value = 0
		}
		if result.Value == 0 {
			// Sparse representation: absence means zero, not unlock-at-zero.
			continue
		}

		progress := buildProgress(def, result)
		totalUnlocked += len(progress.UnlockedLevels)
		achievements = append(achievements, progress)
	}

	if len(achievements) == 0 {
		return nil
	}

	return &PlayerAchievements{
		PlayerID:      playerID,
		PlayerName:    idx.DisplayName(playerID),
		TotalUnlocked: totalUnlocked,
		Achievements:  achievements,
	}
}

// buildProgress walks a definition's level ladder against an evaluator
// result: unlock every level whose threshold the value has reached,
// attribute the crossing game best-effort, then derive next level and
// climb progress.
func buildProgress(def Definition, result Result) Progress {
	progress := Progress{
		AchievementID:  def.ID,
		Name:           def.Name,
		Value:          result.Value,
		UnlockedLevels: []UnlockedLevel{},
	}

	for i, level := range def.Levels {
		if result.Value < level.Threshold {
			next := def.Levels[i]
			progress.NextLevel = &next
			break
		}

		progress.UnlockedLevels = append(progress.UnlockedLevels, UnlockedLevel{
			Tier:      level.Tier,
			Threshold: level.Threshold,
			GameID:    attributeGame(result.GameIDs, level.Threshold),
		})
	}

	if progress.NextLevel == nil {
		progress.Progress = 1.0
	} else {
		ratio := float64(result.Value) / float64(progress.NextLevel.Threshold)
		if ratio > maxClimbProgress {
			ratio = maxClimbProgress
		}
		progress.Progress = ratio
	}

	return progress
}

// attributeGame picks the game that crossed a threshold: the threshold-th
// progress entry when enough entries exist, else the last available one.
// Evaluators whose game list is shorter than their value cannot point at an
// exact game and degrade to the most recent contributor.
func attributeGame(gameIDs []string, threshold int) string {
	if len(gameIDs) == 0 {
		return ""
	}
	if threshold-1 < len(gameIDs) {
		return gameIDs[threshold-1]
	}
	return gameIDs[len(gameIDs)-1]
}
