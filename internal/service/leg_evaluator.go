package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/prop-probability-service/internal/metrics"
	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/pkg/adjustment"
	"github.com/cypherlabdev/prop-probability-service/pkg/distribution"
)

// EvaluatorParams tunes the leg evaluator
type EvaluatorParams struct {
	ConfidenceLevel     float64 // narrow interval, 0.80
	WideConfidenceLevel float64 // wide interval, 0.95
	RecentGames         int     // games in the recent-form mean
	MinGames            int     // below this the sample std is not trusted
}

// DefaultEvaluatorParams returns the production defaults
func DefaultEvaluatorParams() EvaluatorParams {
	return EvaluatorParams{
		ConfidenceLevel:     0.80,
		WideConfidenceLevel: 0.95,
		RecentGames:         10,
		MinGames:            2,
	}
}

// LegEvaluator turns a LegRequest into a LegResult. A leg moves through
// received, baseline_resolved, adjusted and scored before it is done; a
// failure at any point is reported as a *models.LegError carrying the last
// stage reached.
type LegEvaluator struct {
	summarizer Summarizer
	engine     *adjustment.Engine
	validate   *validator.Validate
	params     EvaluatorParams
	logger     zerolog.Logger
}

// NewLegEvaluator creates a new leg evaluator
func NewLegEvaluator(
	summarizer Summarizer,
	engine *adjustment.Engine,
	params EvaluatorParams,
	logger zerolog.Logger,
) *LegEvaluator {
	return &LegEvaluator{
		summarizer: summarizer,
		engine:     engine,
		validate:   validator.New(),
		params:     params,
		logger:     logger.With().Str("component", "leg_evaluator").Logger(),
	}
}

// EvaluateLeg scores one leg. The result depends only on the request and
// the records visible to the summarizer, so repeated calls agree.
func (e *LegEvaluator) EvaluateLeg(ctx context.Context, req models.LegRequest) (*models.LegResult, error) {
	start := time.Now()
	defer func() {
		metrics.LegLatency.Observe(time.Since(start).Seconds())
	}()

	req = req.Normalize()
	stage := models.StageReceived
	fail := func(err error) (*models.LegResult, error) {
		metrics.LegEvaluations.WithLabelValues(outcomeLabel(err)).Inc()
		e.logger.Debug().
			Err(err).
			Str("player", req.Player).
			Str("stat", string(req.Stat)).
			Str("stage", string(stage)).
			Msg("leg evaluation failed")
		return nil, &models.LegError{Stage: stage, Player: req.Player, Stat: req.Stat, Err: err}
	}

	stat, err := models.ParseStatType(string(req.Stat))
	if err != nil {
		return fail(err)
	}
	req.Stat = stat
	if err := e.validate.Struct(req); err != nil {
		return fail(fmt.Errorf("%w: %v", models.ErrInvalidRequest, err))
	}

	summary, err := e.summarizer.Summarize(ctx, req.Player, req.Stat, models.FullHistory())
	if err != nil {
		return fail(err)
	}
	stage = models.StageBaselineResolved

	result := &models.LegResult{
		Request:       req,
		GamesAnalyzed: summary.GamesAnalyzed,
		BaselineMean:  summary.Mean,
		BaselineStd:   summary.Std,
	}

	std := summary.Std
	if summary.GamesAnalyzed < e.params.MinGames || !distribution.UsableStd(std) {
		std = distribution.EffectiveStd(summary.Mean, 0)
		result.Warnings = append(result.Warnings, models.WarningInsufficientData)
		metrics.InsufficientData.Inc()
	}
	result.EffectiveStd = std

	adjCtx := adjustment.Context{Location: req.Location, Opponent: req.Opponent}
	if req.Opponent != "" {
		history, err := e.summarizer.MatchupHistory(ctx, req.Player, req.Opponent, req.Stat)
		if err != nil {
			return fail(fmt.Errorf("matchup history: %w", err))
		}
		adjCtx.Matchup = history
	}
	adjusted := e.engine.Apply(summary.Mean, std, adjCtx)
	result.AdjustedMean = adjusted.Mean
	result.AdjustedStd = adjusted.Std
	result.Adjustments = adjusted.Factors
	stage = models.StageAdjusted

	probs := distribution.Evaluate(adjusted.Mean, adjusted.Std, req.Line)
	result.ProbabilityOver = probs.Over
	result.ProbabilityUnder = probs.Under
	if req.Direction == models.DirectionUnder {
		result.Probability, result.Complement = probs.Under, probs.Over
	} else {
		result.Probability, result.Complement = probs.Over, probs.Under
	}
	result.Edge = Edge(result.Probability)
	result.Recommendation = RecommendLeg(result.Probability)
	result.Verdict = VerdictFor(result.Probability)

	if result.Confidence80, err = interval(adjusted.Mean, adjusted.Std, e.params.ConfidenceLevel); err != nil {
		return fail(err)
	}
	if result.Confidence95, err = interval(adjusted.Mean, adjusted.Std, e.params.WideConfidenceLevel); err != nil {
		return fail(err)
	}
	stage = models.StageScored

	e.attachRecentForm(ctx, result)

	metrics.LegEvaluations.WithLabelValues("ok").Inc()
	e.logger.Debug().
		Str("player", req.Player).
		Str("stat", string(req.Stat)).
		Float64("line", req.Line).
		Str("direction", string(req.Direction)).
		Float64("probability", result.Probability).
		Str("recommendation", string(result.Recommendation)).
		Str("stage", string(models.StageDone)).
		Msg("leg evaluated")

	return result, nil
}

// attachRecentForm adds the recent-games mean. Failures are logged and
// leave the fields unset.
func (e *LegEvaluator) attachRecentForm(ctx context.Context, result *models.LegResult) {
	if e.params.RecentGames <= 0 {
		return
	}
	recent, err := e.summarizer.Summarize(ctx, result.Request.Player, result.Request.Stat, models.LastGames(e.params.RecentGames))
	if err != nil {
		e.logger.Debug().Err(err).Str("player", result.Request.Player).Msg("recent form unavailable")
		return
	}
	mean := recent.Mean
	result.RecentMean = &mean
	result.RecentGames = recent.GamesAnalyzed
}

func interval(mean, std, level float64) (models.Interval, error) {
	low, high, err := distribution.ConfidenceInterval(mean, std, level)
	if err != nil {
		return models.Interval{}, fmt.Errorf("confidence interval: %w", err)
	}
	return models.Interval{Low: low, High: high}, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, models.ErrPlayerNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidRequest), errors.Is(err, models.ErrInvalidStatType):
		return "invalid"
	default:
		return "error"
	}
}
