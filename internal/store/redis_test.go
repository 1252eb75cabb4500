package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// testCachedStoreSetup is a helper struct to hold test dependencies
type testCachedStoreSetup struct {
	store     *CachedStore
	primary   *MemoryStore
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestCachedStore creates a cached store over miniredis and a memory primary
func setupTestCachedStore(t *testing.T, records ...models.GameRecord) *testCachedStoreSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	primary := NewMemoryStore(records...)
	config := RedisConfig{
		Addr: mr.Addr(),
		TTL:  15 * time.Minute,
	}

	return &testCachedStoreSetup{
		store:     NewCachedStore(primary, config, zerolog.Nop()),
		primary:   primary,
		miniRedis: mr,
		ctx:       context.Background(),
	}
}

// cleanup cleans up test resources
func (s *testCachedStoreSetup) cleanup() {
	s.store.Close()
	s.miniRedis.Close()
}

// TestNewCachedStore tests store creation
func TestNewCachedStore(t *testing.T) {
	setup := setupTestCachedStore(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.store.client)
	assert.Equal(t, 15*time.Minute, setup.store.ttl)
	assert.NoError(t, setup.store.Ping(setup.ctx))
}

// TestPlayerGames_CacheMissPopulates tests read-through population
func TestPlayerGames_CacheMissPopulates(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.cleanup()

	games, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")

	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.True(t, setup.miniRedis.Exists("gamelogs:stephen curry"))
}

// TestPlayerGames_CacheHit tests that cached logs are served from Redis
func TestPlayerGames_CacheHit(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.cleanup()

	_, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)

	// Write behind the cache's back: the cached copy is still served
	require.NoError(t, setup.primary.AppendGames(setup.ctx, []models.GameRecord{testGame("Stephen Curry", 0, 40)}))

	games, err := setup.store.PlayerGames(setup.ctx, "STEPHEN CURRY")
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, 30.0, *games[0].Points)
}

// TestPlayerGames_UnknownNotCached tests that empty results are not cached
func TestPlayerGames_UnknownNotCached(t *testing.T) {
	setup := setupTestCachedStore(t)
	defer setup.cleanup()

	games, err := setup.store.PlayerGames(setup.ctx, "Nobody")

	require.NoError(t, err)
	assert.Empty(t, games)
	assert.False(t, setup.miniRedis.Exists("gamelogs:nobody"))
}

// TestAppendGames_Invalidates tests that writes invalidate affected players
func TestAppendGames_Invalidates(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.cleanup()

	_, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)

	err = setup.store.AppendGames(setup.ctx, []models.GameRecord{testGame("Stephen Curry", 0, 40)})
	require.NoError(t, err)
	assert.False(t, setup.miniRedis.Exists("gamelogs:stephen curry"))

	games, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

// TestPlayerGames_ExpiredKey tests TTL expiry
func TestPlayerGames_ExpiredKey(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.cleanup()

	_, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)

	setup.miniRedis.FastForward(20 * time.Minute)

	assert.False(t, setup.miniRedis.Exists("gamelogs:stephen curry"))
}

// TestPlayerGames_RedisDown tests fallback to the primary store
func TestPlayerGames_RedisDown(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.store.Close()

	setup.miniRedis.Close()

	games, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Error(t, setup.store.Ping(setup.ctx))
}

// TestPlayerGames_CorruptCacheEntry tests that undecodable entries fall through
func TestPlayerGames_CorruptCacheEntry(t *testing.T) {
	setup := setupTestCachedStore(t, testGame("Stephen Curry", 1, 30))
	defer setup.cleanup()

	require.NoError(t, setup.miniRedis.Set("gamelogs:stephen curry", "not json"))

	games, err := setup.store.PlayerGames(setup.ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

// interleavingStore runs onRead once after each primary read, before the
// caller gets the result back
type interleavingStore struct {
	*MemoryStore
	onRead func()
}

func (s *interleavingStore) PlayerGames(ctx context.Context, player string) ([]models.GameRecord, error) {
	games, err := s.MemoryStore.PlayerGames(ctx, player)
	if s.onRead != nil {
		hook := s.onRead
		s.onRead = nil
		hook()
	}
	return games, err
}

// TestPlayerGames_WriteDuringReadNotCached tests that a write landing between
// the primary read and the cache fill leaves no stale entry behind
func TestPlayerGames_WriteDuringReadNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	primary := &interleavingStore{MemoryStore: NewMemoryStore(testGame("Stephen Curry", 1, 30))}
	cs := NewCachedStore(primary, RedisConfig{Addr: mr.Addr(), TTL: 30 * time.Minute}, zerolog.Nop())
	defer cs.Close()
	ctx := context.Background()

	primary.onRead = func() {
		require.NoError(t, cs.AppendGames(ctx, []models.GameRecord{testGame("Stephen Curry", 0, 40)}))
	}

	games, err := cs.PlayerGames(ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.False(t, mr.Exists("gamelogs:stephen curry"))

	games, err = cs.PlayerGames(ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.True(t, mr.Exists("gamelogs:stephen curry"))

	cached, err := cs.PlayerGames(ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

// TestAppendGames_BumpsGeneration tests the per-player write counter
func TestAppendGames_BumpsGeneration(t *testing.T) {
	setup := setupTestCachedStore(t)
	defer setup.cleanup()

	for i := 0; i < 2; i++ {
		err := setup.store.AppendGames(setup.ctx, []models.GameRecord{
			testGame("Stephen Curry", i, 30),
			testGame("STEPHEN CURRY", i+5, 31),
		})
		require.NoError(t, err)
	}

	gen, err := setup.miniRedis.Get("gamelogs_gen:stephen curry")
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}
