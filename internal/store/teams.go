package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/pkg/adjustment"
)

// TeamLoader loads the full team reference table
type TeamLoader interface {
	TeamStats(ctx context.Context) ([]models.TeamStats, error)
}

// TeamTableCache is an adjustment.TeamTable backed by an in-process TTL
// cache. Teams missing from the cache (never loaded, or expired) resolve
// through the fallback table.
type TeamTableCache struct {
	loader   TeamLoader
	cache    *gocache.Cache
	fallback adjustment.TeamTable
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewTeamTableCache creates an empty cache; call Refresh to populate it
func NewTeamTableCache(loader TeamLoader, fallback adjustment.TeamTable, ttl time.Duration, logger zerolog.Logger) *TeamTableCache {
	return &TeamTableCache{
		loader:   loader,
		cache:    gocache.New(ttl, ttl*2),
		fallback: fallback,
		ttl:      ttl,
		logger:   logger.With().Str("component", "team_table").Logger(),
	}
}

// Refresh reloads every team from the loader
func (c *TeamTableCache) Refresh(ctx context.Context) error {
	teams, err := c.loader.TeamStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load team stats: %w", err)
	}

	for _, ts := range teams {
		ts.Code = strings.ToUpper(strings.TrimSpace(ts.Code))
		c.cache.Set(ts.Code, ts, c.ttl)
	}

	c.logger.Info().Int("teams", len(teams)).Msg("refreshed team table")
	return nil
}

// Lookup implements adjustment.TeamTable
func (c *TeamTableCache) Lookup(code string) (models.TeamStats, bool) {
	if v, found := c.cache.Get(strings.ToUpper(strings.TrimSpace(code))); found {
		if ts, ok := v.(models.TeamStats); ok {
			return ts, true
		}
	}
	if c.fallback == nil {
		return models.TeamStats{}, false
	}
	return c.fallback.Lookup(code)
}

// Len returns the number of cached teams
func (c *TeamTableCache) Len() int {
	return c.cache.ItemCount()
}
