package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/pkg/adjustment"
)

type stubTeamLoader struct {
	teams []models.TeamStats
	err   error
}

func (l stubTeamLoader) TeamStats(context.Context) ([]models.TeamStats, error) {
	return l.teams, l.err
}

// TestTeamTableCache_Refresh tests loading and lookups
func TestTeamTableCache_Refresh(t *testing.T) {
	loader := stubTeamLoader{teams: []models.TeamStats{{Code: "bos", DefRating: 108.0, Pace: 100.0}}}
	c := NewTeamTableCache(loader, adjustment.DefaultTeamTable(), time.Hour, zerolog.Nop())

	require.NoError(t, c.Refresh(context.Background()))

	ts, ok := c.Lookup("BOS")
	require.True(t, ok)
	assert.Equal(t, 108.0, ts.DefRating)
	assert.Equal(t, 1, c.Len())
}

// TestTeamTableCache_Fallback tests lookups for teams not loaded
func TestTeamTableCache_Fallback(t *testing.T) {
	c := NewTeamTableCache(stubTeamLoader{}, adjustment.DefaultTeamTable(), time.Hour, zerolog.Nop())

	ts, ok := c.Lookup("okc")
	require.True(t, ok)
	assert.Equal(t, 111.0, ts.DefRating)

	_, ok = c.Lookup("SEA")
	assert.False(t, ok)
}

// TestTeamTableCache_NoFallback tests a cache without a fallback table
func TestTeamTableCache_NoFallback(t *testing.T) {
	c := NewTeamTableCache(stubTeamLoader{}, nil, time.Hour, zerolog.Nop())

	_, ok := c.Lookup("BOS")
	assert.False(t, ok)
}

// TestTeamTableCache_RefreshError tests loader failures
func TestTeamTableCache_RefreshError(t *testing.T) {
	c := NewTeamTableCache(stubTeamLoader{err: errors.New("db down")}, nil, time.Hour, zerolog.Nop())

	err := c.Refresh(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
