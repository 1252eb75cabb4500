package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// Leg bands
const (
	strongHitAt   = 0.60
	leanHitAt     = 0.55
	tossUpAbove   = 0.45
	leanMissAbove = 0.40
)

// Parlay threshold: 0.15 for two legs, +0.02 per additional leg
const (
	baseParlayThreshold = 0.15
	perLegThreshold     = 0.02
)

// payoutTable holds the profit multiplier for n legs at flat -110 pricing
var payoutTable = map[int]decimal.Decimal{
	1:  decimal.RequireFromString("0.91"),
	2:  decimal.RequireFromString("2.64"),
	3:  decimal.RequireFromString("5.96"),
	4:  decimal.RequireFromString("12.28"),
	5:  decimal.RequireFromString("24.35"),
	6:  decimal.RequireFromString("47.41"),
	7:  decimal.RequireFromString("91.42"),
	8:  decimal.RequireFromString("175.45"),
	9:  decimal.RequireFromString("335.85"),
	10: decimal.RequireFromString("642.08"),
}

var hundred = decimal.NewFromInt(100)

// RecommendLeg maps a probability to the five-band leg recommendation
func RecommendLeg(p float64) models.Recommendation {
	switch {
	case p >= strongHitAt:
		return models.RecommendationStrongHit
	case p >= leanHitAt:
		return models.RecommendationLeanHit
	case p > tossUpAbove:
		return models.RecommendationTossUp
	case p > leanMissAbove:
		return models.RecommendationLeanMiss
	default:
		return models.RecommendationStrongMiss
	}
}

// VerdictFor maps a probability to the two-band verdict
func VerdictFor(p float64) models.Verdict {
	switch {
	case p >= leanHitAt:
		return models.VerdictHit
	case p <= tossUpAbove:
		return models.VerdictMiss
	default:
		return models.VerdictTossUp
	}
}

// Edge is the advantage over a coin flip.
// TODO: measure against the vig-implied break-even once a market price is carried on the request.
func Edge(p float64) float64 {
	return p - 0.5
}

// PayoutMultiplier returns the profit multiplier for n legs. Beyond the
// table it doubles per leg.
func PayoutMultiplier(n int) decimal.Decimal {
	if m, ok := payoutTable[n]; ok {
		return m
	}
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(2).Pow(decimal.NewFromInt(int64(n)))
}

// AmericanOdds formats a profit multiplier as American odds: +100·m when
// m >= 1, otherwise -100/m.
func AmericanOdds(payout decimal.Decimal) string {
	if !payout.IsPositive() {
		return ""
	}
	if payout.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return "+" + payout.Mul(hundred).Round(0).String()
	}
	return "-" + hundred.Div(payout).Round(0).String()
}

// ParlayThreshold is the combined probability a parlay of n legs needs to be playable
func ParlayThreshold(n int) float64 {
	return baseParlayThreshold + float64(n-2)*perLegThreshold
}

// RecommendParlay bands a combined probability against the n-leg threshold
func RecommendParlay(combined float64, n int) (models.ParlayRecommendation, float64) {
	t := ParlayThreshold(n)
	// products of band-edge probabilities can land a hair under t
	const eps = 1e-12
	switch {
	case combined+eps >= 1.5*t:
		return models.ParlayStrongPlay, t
	case combined+eps >= t:
		return models.ParlayPlayable, t
	case combined+eps >= 0.7*t:
		return models.ParlayMarginal, t
	default:
		return models.ParlayAvoid, t
	}
}

// ExpectedValue returns the expected profit per unit staked
func ExpectedValue(combined float64, payout decimal.Decimal) float64 {
	ev := combined*payout.InexactFloat64() - 1
	if math.IsNaN(ev) {
		return 0
	}
	return ev
}
