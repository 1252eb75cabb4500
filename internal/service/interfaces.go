package service

import (
	"context"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_service.go -package=mocks

// Summarizer resolves baselines and head-to-head history for a player.
// Implemented by aggregator.Aggregator.
type Summarizer interface {
	Summarize(ctx context.Context, player string, stat models.StatType, window models.Window) (*models.StatSummary, error)
	MatchupHistory(ctx context.Context, player, opponent string, stat models.StatType) (*models.MatchupHistory, error)
}

// TrendReader exposes the read-only player views served over HTTP
type TrendReader interface {
	Summarize(ctx context.Context, player string, stat models.StatType, window models.Window) (*models.StatSummary, error)
	CompareRecent(ctx context.Context, player string, stat models.StatType, n int) (*models.RecentComparison, error)
}

// LegScorer evaluates a single leg
type LegScorer interface {
	EvaluateLeg(ctx context.Context, req models.LegRequest) (*models.LegResult, error)
}

// ParlayScorer composes and compares parlays
type ParlayScorer interface {
	ComposeParlay(ctx context.Context, legs []models.LegRequest) (*models.ParlayResult, error)
	CompareParlays(ctx context.Context, a, b []models.LegRequest) (*models.ParlayComparison, error)
}
