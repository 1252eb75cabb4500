package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 15 * time.Minute
}

// errGenerationChanged aborts a cache fill that raced with a write
var errGenerationChanged = errors.New("game log generation changed")

// CachedStore wraps a primary Store with a Redis read-through cache of
// per-player game logs. Writes go to the primary, bump the affected
// players' generation counters and invalidate their entries. A reader only
// fills the cache when the generation it saw before reading the primary is
// still current.
type CachedStore struct {
	primary Store
	client  *redis.Client
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewCachedStore creates a cached wrapper around a primary store
func NewCachedStore(primary Store, config RedisConfig, logger zerolog.Logger) *CachedStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &CachedStore{
		primary: primary,
		client:  client,
		ttl:     config.TTL,
		logger:  logger.With().Str("component", "redis_cache").Logger(),
	}
}

// PlayerGames implements GameLogSource, checking Redis first
func (s *CachedStore) PlayerGames(ctx context.Context, player string) ([]models.GameRecord, error) {
	key := gameLogKey(player)
	genKey := generationKey(player)

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var games []models.GameRecord
		uerr := json.Unmarshal(data, &games)
		if uerr == nil {
			return games, nil
		}
		s.logger.Warn().Err(uerr).Str("key", key).Msg("failed to unmarshal cached game logs")
	case err != redis.Nil:
		// Don't fail the read on cache errors
		s.logger.Warn().Err(err).Str("key", key).Msg("cache error, reading primary store")
	}

	// Read before the primary so a concurrent write is detectable
	gen, genErr := s.generation(ctx, s.client, genKey)

	games, err := s.primary.PlayerGames(ctx, player)
	if err != nil {
		return nil, err
	}

	if len(games) > 0 && genErr == nil {
		s.cache(ctx, key, genKey, gen, games)
	}
	return games, nil
}

// AppendGames implements GameLogWriter
func (s *CachedStore) AppendGames(ctx context.Context, records []models.GameRecord) error {
	if err := s.primary.AppendGames(ctx, records); err != nil {
		return err
	}

	players := make([]string, 0, len(records))
	seen := make(map[string]bool)
	for _, r := range records {
		pk := PlayerKey(r.Player)
		if !seen[pk] {
			seen[pk] = true
			players = append(players, r.Player)
		}
	}
	if len(players) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range players {
			pipe.Incr(ctx, generationKey(p))
			pipe.Del(ctx, gameLogKey(p))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate cached game logs: %w", err)
	}

	s.logger.Debug().
		Int("players", len(players)).
		Msg("invalidated cached game logs")

	return nil
}

// Ping checks Redis connection
func (s *CachedStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *CachedStore) Close() error {
	return s.client.Close()
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation returns the player's write generation; a missing counter is 0
func (s *CachedStore) generation(ctx context.Context, c stringGetter, genKey string) (int64, error) {
	gen, err := c.Get(ctx, genKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", genKey).Msg("failed to read game log generation")
		return 0, err
	}
	return gen, nil
}

// cache stores games under key unless genKey moved past gen
func (s *CachedStore) cache(ctx context.Context, key, genKey string, gen int64, games []models.GameRecord) {
	data, err := json.Marshal(games)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to marshal game logs")
		return
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.generation(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errGenerationChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case errors.Is(err, errGenerationChanged), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug().Str("key", key).Msg("game logs changed during read, not caching")
		return
	case err != nil:
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache game logs")
		return
	}

	s.logger.Debug().
		Str("key", key).
		Int("games", len(games)).
		Dur("ttl", s.ttl).
		Msg("cached game logs")
}

func gameLogKey(player string) string {
	return fmt.Sprintf("gamelogs:%s", PlayerKey(player))
}

func generationKey(player string) string {
	return fmt.Sprintf("gamelogs_gen:%s", PlayerKey(player))
}
