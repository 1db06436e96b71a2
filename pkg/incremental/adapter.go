// Package incremental wraps the achievement engine and the streak automaton
// so that cached per-player state plus only newly appended games reproduce
// the same output as a full recompute over the whole log.
package incremental

import (
	"context"
	"fmt"

	"github.com/lycanstats/engine/pkg/achievement"
	"github.com/lycanstats/engine/pkg/chrono"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
	"github.com/lycanstats/engine/pkg/streak"
	"github.com/sirupsen/logrus"
)

// Snapshot is the state carried between runs: the ordered log ingested so
// far, its size, and every player's serialized streak accumulator.
// Achievement progress is never cached — it is recomputed fully each run
// from the (incrementally extended) log.
type Snapshot struct {
	GameCount int                                  `json:"gameCount"`
	Games     []*game.GameRecord                   `json:"games"`
	States    map[string]*streak.PlayerSeriesState `json:"states"`
}

// Outputs are the two result documents consumed by the presentation layer.
type Outputs struct {
	Achievements map[string]*achievement.PlayerAchievements `json:"achievements"`
	Streaks      *streak.Summary                            `json:"streaks"`
}

// Adapter runs both engines over full or incrementally extended logs.
type Adapter struct {
	engine *achievement.Engine
	names  index.NameRegistry
}

// NewAdapter creates an adapter around an achievement engine and an
// optional name registry.
func NewAdapter(engine *achievement.Engine, names index.NameRegistry) *Adapter {
	return &Adapter{
		engine: engine,
		names:  names,
	}
}

// Full recomputes everything from scratch: order the log, fold every streak
// state from idle, evaluate every achievement.
func (a *Adapter) Full(ctx context.Context, games []*game.GameRecord) (*Outputs, *Snapshot, error) {
	if err := validate(games); err != nil {
		return nil, nil, err
	}

	chrono.Order(games)
	states := streak.ComputeAll(games)

	outputs, err := a.compute(ctx, games, states)
	if err != nil {
		return nil, nil, err
	}

	snapshot := &Snapshot{
		GameCount: len(games),
		Games:     games,
		States:    states,
	}
	return outputs, snapshot, nil
}

// Update folds only newGames into the carried-forward snapshot. New games
// are ordered among themselves and numbered after the existing history;
// streak states resume from where the previous run left them. For
// append-only ingestion the result is identical to Full over the
// concatenated log.
//
// A nil prior snapshot degrades to Full. The prior snapshot is absorbed
// into the returned one and must not be reused by the caller.
func (a *Adapter) Update(ctx context.Context, prior *Snapshot, newGames []*game.GameRecord) (*Outputs, *Snapshot, error) {
	if prior == nil {
		return a.Full(ctx, newGames)
	}
	if err := validate(newGames); err != nil {
		return nil, nil, err
	}

	a.checkAppendOnly(prior, newGames)

	chrono.Extend(prior.GameCount, newGames)
	games := append(prior.Games, newGames...)

	states := prior.States
	if states == nil {
		states = make(map[string]*streak.PlayerSeriesState)
	}
	streak.Fold(states, newGames)

	outputs, err := a.compute(ctx, games, states)
	if err != nil {
		return nil, nil, err
	}

	snapshot := &Snapshot{
		GameCount: len(games),
		Games:     games,
		States:    states,
	}
	return outputs, snapshot, nil
}

// compute rebuilds the per-player index over the full ordered log and runs
// both output assemblies.
func (a *Adapter) compute(ctx context.Context, ordered []*game.GameRecord, states map[string]*streak.PlayerSeriesState) (*Outputs, error) {
	idx := index.Build(ordered, a.names)

	achievements, err := a.engine.Compute(ctx, idx, ordered)
	if err != nil {
		return nil, fmt.Errorf("achievement computation failed: %w", err)
	}

	summary := streak.BuildSummary(states, len(ordered), idx.DisplayName)

	return &Outputs{
		Achievements: achievements,
		Streaks:      summary,
	}, nil
}

// checkAppendOnly flags new games that chronologically predate the existing
// history. The incremental path never renumbers old games, so a backfilled
// import diverges from a full recompute; the operator is warned to force a
// full recompute rather than trust the incremental numbering.
func (a *Adapter) checkAppendOnly(prior *Snapshot, newGames []*game.GameRecord) {
	lastKey := chrono.LastKey(prior.Games)
	for _, g := range newGames {
		if chrono.ParseKey(g.ID).Less(lastKey) {
			logrus.Warnf("game %s predates the already-ordered history; incremental numbering kept, a full recompute is recommended", g.ID)
		}
	}
}

func validate(games []*game.GameRecord) error {
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("invalid game record: %w", err)
		}
	}
	return nil
}
