package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/lycanstats/engine/pkg/game"
	"github.com/lycanstats/engine/pkg/incremental"
	"github.com/lycanstats/engine/pkg/streak"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix = "lycan_stats:"

	// gamesKey is the ordered ingested log, one JSON game per list entry.
	gamesKey = keyPrefix + "games"
	// metaKey holds the snapshot metadata blob.
	metaKey = keyPrefix + "meta"
	// playersKey is the set of player ids with serialized series state.
	playersKey = keyPrefix + "players"
	// seriesKeyPrefix prefixes the per-player series state keys.
	seriesKeyPrefix = keyPrefix + "series_state:"
	// ingestedKey is the set of sync files already absorbed.
	ingestedKey = keyPrefix + "ingested_files"
)

// RedisClientOptions configures the initial Redis connection.
type RedisClientOptions struct {
	Host       string
	Port       string
	Password   string
	MaxRetries int
}

// InitRedisClient initializes a Redis client, retrying the initial ping
// with exponential backoff.
func InitRedisClient(ctx context.Context, opts RedisClientOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Host + ":" + opts.Port,
		Password:     opts.Password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(opts.MaxRetries)),
		ctx,
	)
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if _, err := client.Ping(ctx).Result(); err != nil {
			logrus.Warnf("redis connection failed (attempt %d): %v", attempt, err)
			return err
		}
		return nil
	}, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s:%s: %w", opts.Host, opts.Port, err)
	}

	logrus.Infof("connected to Redis at %s:%s", opts.Host, opts.Port)
	return client, nil
}

// RedisStore persists the incremental snapshot in Redis: the game log as a
// list, each player's series state as its own JSON key, and snapshot
// metadata as a blob.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

type snapshotMeta struct {
	GameCount int       `json:"gameCount"`
	SavedAt   time.Time `json:"savedAt"`
}

// LoadSnapshot implements Store. A missing metadata key means no snapshot
// has ever been saved and yields (nil, nil).
func (s *RedisStore) LoadSnapshot(ctx context.Context) (*incremental.Snapshot, error) {
	data, err := s.client.Get(ctx, metaKey).Result()
	if err == redis.Nil {
		logrus.Infof("no existing snapshot, starting from an empty history")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot metadata: %w", err)
	}

	var meta snapshotMeta
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot metadata: %w", err)
	}

	games, err := s.loadGames(ctx)
	if err != nil {
		return nil, err
	}
	if len(games) != meta.GameCount {
		return nil, fmt.Errorf("snapshot is inconsistent: metadata says %d games, log holds %d", meta.GameCount, len(games))
	}

	states, err := s.loadStates(ctx)
	if err != nil {
		return nil, err
	}

	logrus.Infof("loaded snapshot: %d games, %d player states", len(games), len(states))
	return &incremental.Snapshot{
		GameCount: meta.GameCount,
		Games:     games,
		States:    states,
	}, nil
}

func (s *RedisStore) loadGames(ctx context.Context) ([]*game.GameRecord, error) {
	entries, err := s.client.LRange(ctx, gamesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load game log: %w", err)
	}

	games := make([]*game.GameRecord, 0, len(entries))
	for _, entry := range entries {
		var g game.GameRecord
		if err := json.Unmarshal([]byte(entry), &g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored game: %w", err)
		}
		games = append(games, &g)
	}
	return games, nil
}

func (s *RedisStore) loadStates(ctx context.Context) (map[string]*streak.PlayerSeriesState, error) {
	players, err := s.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	sort.Strings(players)

	states := make(map[string]*streak.PlayerSeriesState, len(players))
	for _, id := range players {
		data, err := s.client.Get(ctx, seriesKeyPrefix+id).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get series state for player %s: %w", id, err)
		}

		var state streak.PlayerSeriesState
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			return nil, fmt.Errorf("failed to unmarshal series state for player %s: %w", id, err)
		}
		states[id] = &state
	}
	return states, nil
}

// SaveSnapshot implements Store. The game log is append-only, so only the
// tail beyond the already stored length is pushed.
func (s *RedisStore) SaveSnapshot(ctx context.Context, snapshot *incremental.Snapshot) error {
	stored, err := s.client.LLen(ctx, gamesKey).Result()
	if err != nil {
		return fmt.Errorf("failed to measure stored log: %w", err)
	}
	if int(stored) > len(snapshot.Games) {
		return fmt.Errorf("stored log holds %d games but snapshot only %d", stored, len(snapshot.Games))
	}

	for _, g := range snapshot.Games[stored:] {
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("failed to marshal game %s: %w", g.ID, err)
		}
		if err := s.client.RPush(ctx, gamesKey, data).Err(); err != nil {
			return fmt.Errorf("failed to append game %s: %w", g.ID, err)
		}
	}

	for id, state := range snapshot.States {
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal series state for player %s: %w", id, err)
		}
		if err := s.client.Set(ctx, seriesKeyPrefix+id, data, 0).Err(); err != nil {
			return fmt.Errorf("failed to set series state for player %s: %w", id, err)
		}
		if err := s.client.SAdd(ctx, playersKey, id).Err(); err != nil {
			return fmt.Errorf("failed to register player %s: %w", id, err)
		}
	}

	meta := snapshotMeta{GameCount: snapshot.GameCount, SavedAt: time.Now().UTC()}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot metadata: %w", err)
	}
	if err := s.client.Set(ctx, metaKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot metadata: %w", err)
	}

	logrus.Infof("saved snapshot: %d games, %d player states", snapshot.GameCount, len(snapshot.States))
	return nil
}

// MarkIngested implements Store.
func (s *RedisStore) MarkIngested(ctx context.Context, file string) error {
	if err := s.client.SAdd(ctx, ingestedKey, file).Err(); err != nil {
		return fmt.Errorf("failed to mark file %s as ingested: %w", file, err)
	}
	return nil
}

// IsIngested implements Store.
func (s *RedisStore) IsIngested(ctx context.Context, file string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, ingestedKey, file).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check file %s: %w", file, err)
	}
	return ok, nil
}
