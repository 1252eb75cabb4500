package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// snapshot is an immutable view of every stored record
type snapshot struct {
	byPlayer map[string][]models.GameRecord
	version  uint64
}

// MemoryStore implements Store in memory. Writers publish a new snapshot
// (copy-on-write), so concurrent readers never see a partial update.
type MemoryStore struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[snapshot]
}

// NewMemoryStore creates a store seeded with records. It panics if a seed
// record is invalid; load untrusted data through AppendGames instead.
func NewMemoryStore(records ...models.GameRecord) *MemoryStore {
	s := &MemoryStore{}
	s.current.Store(&snapshot{byPlayer: map[string][]models.GameRecord{}})
	if len(records) > 0 {
		if err := s.AppendGames(context.Background(), records); err != nil {
			panic(fmt.Sprintf("store: invalid seed records: %v", err))
		}
	}
	return s
}

// PlayerGames implements GameLogSource
func (s *MemoryStore) PlayerGames(ctx context.Context, player string) ([]models.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.current.Load()
	games := snap.byPlayer[PlayerKey(player)]

	out := make([]models.GameRecord, len(games))
	copy(out, games)
	return out, nil
}

// AppendGames implements GameLogWriter. A record whose ID is already stored
// replaces the stored one, so redelivered batches are idempotent.
func (s *MemoryStore) AppendGames(ctx context.Context, records []models.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, r := range records {
		if PlayerKey(r.Player) == "" {
			return fmt.Errorf("record %d: player is required", i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current.Load()
	next := &snapshot{
		byPlayer: make(map[string][]models.GameRecord, len(old.byPlayer)),
		version:  old.version + 1,
	}
	for k, v := range old.byPlayer {
		next.byPlayer[k] = v
	}

	touched := make(map[string]bool)
	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		key := PlayerKey(r.Player)
		if !touched[key] {
			// Copy the slice once before mutating it; the old snapshot keeps
			// its own backing array.
			games := make([]models.GameRecord, len(next.byPlayer[key]), len(next.byPlayer[key])+len(records))
			copy(games, next.byPlayer[key])
			next.byPlayer[key] = games
			touched[key] = true
		}
		next.byPlayer[key] = upsert(next.byPlayer[key], r)
	}

	s.current.Store(next)
	return nil
}

// Version returns the number of published snapshots
func (s *MemoryStore) Version() uint64 {
	return s.current.Load().version
}

// PlayerCount returns the number of distinct players stored
func (s *MemoryStore) PlayerCount() int {
	return len(s.current.Load().byPlayer)
}

func upsert(games []models.GameRecord, r models.GameRecord) []models.GameRecord {
	for i := range games {
		if games[i].ID == r.ID {
			games[i] = r
			return games
		}
	}
	return append(games, r)
}
