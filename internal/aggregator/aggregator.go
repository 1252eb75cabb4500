// Package aggregator reduces a player's historical game records to per-stat
// summaries over a recency window.
package aggregator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/internal/store"
)

// DefaultRecentGames is the window used for recent-form comparisons
const DefaultRecentGames = 10

// Aggregator summarizes game records read from an injected source
type Aggregator struct {
	source store.GameLogSource
	logger zerolog.Logger
}

// NewAggregator creates an aggregator over a game log source
func NewAggregator(source store.GameLogSource, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		logger: logger.With().Str("component", "aggregator").Logger(),
	}
}

// Summarize computes mean, sample std, min and max of stat over window.
// Games without a value for stat are skipped rather than counted as zero.
func (a *Aggregator) Summarize(ctx context.Context, player string, st models.StatType, window models.Window) (*models.StatSummary, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatType, st)
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	games, err := a.recentGames(ctx, player, window)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(games))
	for _, g := range games {
		if v, ok := g.Value(st); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no %s values for %s in %s", models.ErrPlayerNotFound, st, player, window)
	}

	summary := &models.StatSummary{
		Player:        games[0].Player,
		Stat:          st,
		Window:        window,
		GamesAnalyzed: len(values),
		Min:           floats.Min(values),
		Max:           floats.Max(values),
	}
	if len(values) >= 2 {
		summary.Mean, summary.Std = stat.MeanStdDev(values, nil)
	} else {
		summary.Mean = values[0]
	}

	a.logger.Debug().
		Str("player", summary.Player).
		Str("stat", string(st)).
		Str("window", window.String()).
		Int("games", summary.GamesAnalyzed).
		Float64("mean", summary.Mean).
		Float64("std", summary.Std).
		Msg("summarized player stat")

	return summary, nil
}

// MatchupHistory returns the player's games and average for stat against
// opponent. No games against the opponent is not an error.
func (a *Aggregator) MatchupHistory(ctx context.Context, player, opponent string, st models.StatType) (*models.MatchupHistory, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatType, st)
	}

	games, err := a.recentGames(ctx, player, models.FullHistory())
	if err != nil {
		return nil, err
	}

	opponent = strings.ToUpper(strings.TrimSpace(opponent))
	var values []float64
	for _, g := range games {
		if !strings.EqualFold(g.Opponent, opponent) {
			continue
		}
		if v, ok := g.Value(st); ok {
			values = append(values, v)
		}
	}

	history := &models.MatchupHistory{Opponent: opponent, Games: len(values)}
	if len(values) > 0 {
		history.Average = stat.Mean(values, nil)
	}
	return history, nil
}

// CompareRecent compares the mean of the last n games with the full history
func (a *Aggregator) CompareRecent(ctx context.Context, player string, st models.StatType, n int) (*models.RecentComparison, error) {
	if n <= 0 {
		n = DefaultRecentGames
	}

	season, err := a.Summarize(ctx, player, st, models.FullHistory())
	if err != nil {
		return nil, err
	}
	recent, err := a.Summarize(ctx, player, st, models.LastGames(n))
	if err != nil {
		return nil, err
	}

	diff := recent.Mean - season.Mean
	return &models.RecentComparison{
		Player:      season.Player,
		Stat:        st,
		SeasonMean:  season.Mean,
		RecentMean:  recent.Mean,
		Difference:  diff,
		Trend:       TrendFor(diff),
		SeasonGames: season.GamesAnalyzed,
		RecentGames: recent.GamesAnalyzed,
	}, nil
}

// TrendFor bands the difference between recent and season means
func TrendFor(diff float64) models.Trend {
	switch {
	case diff > 3:
		return models.TrendVeryHot
	case diff > 1.5:
		return models.TrendHot
	case diff < -3:
		return models.TrendVeryCold
	case diff < -1.5:
		return models.TrendCold
	default:
		return models.TrendSteady
	}
}

// recentGames returns the player's games most recent first, truncated to
// the window. It fails with ErrPlayerNotFound when nothing matches.
func (a *Aggregator) recentGames(ctx context.Context, player string, window models.Window) ([]models.GameRecord, error) {
	if store.PlayerKey(player) == "" {
		return nil, fmt.Errorf("%w: empty player name", models.ErrPlayerNotFound)
	}

	games, err := a.source.PlayerGames(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to load game logs for %s: %w", player, err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrPlayerNotFound, player)
	}

	// The source may hand back its own slice; sort a copy.
	games = slices.Clone(games)
	slices.SortStableFunc(games, func(x, y models.GameRecord) int {
		return y.Date.Compare(x.Date)
	})

	if window.LastN > 0 && len(games) > window.LastN {
		games = games[:window.LastN]
	}
	return games, nil
}
