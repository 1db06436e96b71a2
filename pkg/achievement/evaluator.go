package achievement

import (
	"fmt"
	"sync"

	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/index"
)

// Params is the opaque parameter bag a definition passes to its evaluator.
// Values come from YAML, so numbers may arrive as int or float64.
type Params map[string]interface{}

// GetInt retrieves an integer parameter with a default.
func (p Params) GetInt(key string, defaultValue int) int {
	if val, ok := p[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetFloat retrieves a float parameter with a default.
func (p Params) GetFloat(key string, defaultValue float64) float64 {
	if val, ok := p[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return defaultValue
}

// GetString retrieves a string parameter with a default.
func (p Params) GetString(key string, defaultValue string) string {
	if val, ok := p[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// Result is an evaluator's raw score for one player: the value compared
// against level thresholds, plus one game id per unit of progress in the
// chronological order the progress was earned. The list may be shorter than
// the value for evaluators that sum several sub-events per game or report a
// minimum across categories; the engine degrades attribution gracefully.
type Result struct {
	Value   int
	GameIDs []string
}

// Evaluator scores one player's full history against one achievement rule.
// playerGames is the player's slice of the per-player index; allGames is the
// full ordered log, for evaluators that need cross-player context.
// Evaluators are pure: no I/O, no clock, no mutation of their inputs.
type Evaluator func(playerGames []index.PlayerGame, allGames []*game.GameRecord, playerID string, params Params) Result

// Registry is the closed map of named evaluators. The set is fixed at
// startup; definitions reference evaluators by name.
type Registry struct {
	evaluators map[string]Evaluator
	mu         sync.RWMutex
}

// NewRegistry creates a new empty evaluator registry.
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[string]Evaluator),
	}
}

// Register adds an evaluator to the registry.
// Returns an error if an evaluator with the same name already exists.
func (r *Registry) Register(name string, fn Evaluator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[name]; exists {
		return fmt.Errorf("evaluator %s already registered", name)
	}

	r.evaluators[name] = fn
	return nil
}

// Get returns an evaluator by name.
// Returns nil if no evaluator with that name is registered.
func (r *Registry) Get(name string) Evaluator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.evaluators[name]
}

// Count returns the number of registered evaluators.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.evaluators)
}
