package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSeedFile tests loading records into a memory store
func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"player":"Tyrese Haliburton","date":"2024-01-03T00:00:00Z","opponent":"BOS","points":22,"assists":13},
		{"player":"Tyrese Haliburton","date":"2024-01-05T00:00:00Z","opponent":"MIL","points":31,"assists":10}
	]`), 0o600))

	records, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "BOS", records[0].Opponent)
	require.NotNil(t, records[1].Assists)
	assert.Equal(t, 10.0, *records[1].Assists)
	assert.Nil(t, records[0].Rebounds)

	s := NewMemoryStore(records...)
	games, err := s.PlayerGames(context.Background(), "tyrese haliburton")
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

// TestLoadSeedFile_Errors tests missing and malformed files
func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read seed file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"player":`), 0o600))
	_, err = LoadSeedFile(path)
	assert.ErrorContains(t, err, "failed to parse seed file")
}
