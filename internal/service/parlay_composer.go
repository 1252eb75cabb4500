package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/prop-probability-service/internal/metrics"
	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// ComposerParams tunes the parlay composer
type ComposerParams struct {
	MaxConcurrentLegs int // <= 0 means unbounded
}

// ParlayComposer evaluates legs concurrently and combines them into a
// parlay decision. Valid legs are treated as independent events.
type ParlayComposer struct {
	legs   LegScorer
	params ComposerParams
	logger zerolog.Logger
}

// NewParlayComposer creates a new parlay composer
func NewParlayComposer(legs LegScorer, params ComposerParams, logger zerolog.Logger) *ParlayComposer {
	return &ParlayComposer{
		legs:   legs,
		params: params,
		logger: logger.With().Str("component", "parlay_composer").Logger(),
	}
}

// ComposeParlay evaluates every leg and combines the valid ones. Leg
// outcomes keep the input order. When no leg is valid the returned error is
// a *models.ParlayError wrapping models.ErrAllLegsFailed.
func (c *ParlayComposer) ComposeParlay(ctx context.Context, reqs []models.LegRequest) (*models.ParlayResult, error) {
	metrics.ParlayLegs.Observe(float64(len(reqs)))
	if len(reqs) == 0 {
		return nil, &models.ParlayError{}
	}

	outcomes := make([]models.LegOutcome, len(reqs))
	var g errgroup.Group
	if c.params.MaxConcurrentLegs > 0 {
		g.SetLimit(c.params.MaxConcurrentLegs)
	}
	for i, req := range reqs {
		g.Go(func() error {
			outcome := models.LegOutcome{Index: i, Request: req}
			result, err := c.legs.EvaluateLeg(ctx, req)
			if err != nil {
				outcome.Err = err
				outcome.Error = err.Error()
			} else {
				outcome.Result = result
				outcome.Request = result.Request
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = g.Wait() // leg failures are recorded per outcome

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := combine(outcomes)
	if err != nil {
		c.logger.Debug().Err(err).Int("legs", len(reqs)).Msg("parlay has no valid legs")
		return nil, err
	}

	metrics.Parlays.WithLabelValues(string(result.Recommendation)).Inc()
	c.logger.Info().
		Int("total_legs", result.TotalLegs).
		Int("valid_legs", result.ValidLegs).
		Float64("combined_probability", result.CombinedProbability).
		Str("payout", result.PayoutMultiplier.String()).
		Str("recommendation", string(result.Recommendation)).
		Msg("parlay composed")

	return result, nil
}

// CompareParlays composes both parlays and picks the one more likely to hit.
// Ties go to A.
func (c *ParlayComposer) CompareParlays(ctx context.Context, a, b []models.LegRequest) (*models.ParlayComparison, error) {
	resultA, err := c.ComposeParlay(ctx, a)
	if err != nil {
		return nil, err
	}
	resultB, err := c.ComposeParlay(ctx, b)
	if err != nil {
		return nil, err
	}

	better := "A"
	if resultB.CombinedProbability > resultA.CombinedProbability {
		better = "B"
	}
	return &models.ParlayComparison{
		ParlayA:               resultA,
		ParlayB:               resultB,
		BetterOption:          better,
		ProbabilityDifference: math.Abs(resultA.CombinedProbability - resultB.CombinedProbability),
	}, nil
}

// combine reduces ordered leg outcomes to a parlay result
func combine(outcomes []models.LegOutcome) (*models.ParlayResult, error) {
	combined := 1.0
	valid := 0
	var weakest *models.WeakestLeg
	for _, o := range outcomes {
		if !o.Valid() {
			continue
		}
		valid++
		p := o.Result.Probability
		combined *= p
		if weakest == nil || p < weakest.Probability {
			weakest = &models.WeakestLeg{
				Index:       o.Index,
				Player:      o.Result.Request.Player,
				Stat:        o.Result.Request.Stat,
				Probability: p,
			}
		}
	}
	if valid == 0 {
		return nil, &models.ParlayError{Legs: outcomes}
	}

	payout := PayoutMultiplier(valid)
	recommendation, threshold := RecommendParlay(combined, valid)
	return &models.ParlayResult{
		Legs:                outcomes,
		TotalLegs:           len(outcomes),
		ValidLegs:           valid,
		CombinedProbability: combined,
		PayoutMultiplier:    payout,
		AmericanOdds:        AmericanOdds(payout),
		ExpectedValue:       ExpectedValue(combined, payout),
		Threshold:           threshold,
		Recommendation:      recommendation,
		WeakestLeg:          weakest,
	}, nil
}
