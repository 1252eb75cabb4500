package models

import "github.com/shopspring/decimal"

// LegOutcome is one leg of a parlay: either a result or the error that
// stopped it. Failed legs stay in the list in their input position.
type LegOutcome struct {
	Index   int        `json:"index"`
	Request LegRequest `json:"request"`
	Result  *LegResult `json:"result,omitempty"`
	Err     error      `json:"-"`
	Error   string     `json:"error,omitempty"`
}

// Valid reports whether the leg produced a result
func (o LegOutcome) Valid() bool {
	return o.Err == nil && o.Result != nil
}

// WeakestLeg identifies the valid leg with the lowest probability
type WeakestLeg struct {
	Index       int      `json:"index"`
	Player      string   `json:"player"`
	Stat        StatType `json:"stat_type"`
	Probability float64  `json:"probability"`
}

// ParlayRecommendation is the parlay-level call
type ParlayRecommendation string

const (
	ParlayStrongPlay ParlayRecommendation = "STRONG PLAY"
	ParlayPlayable   ParlayRecommendation = "PLAYABLE"
	ParlayMarginal   ParlayRecommendation = "MARGINAL"
	ParlayAvoid      ParlayRecommendation = "AVOID"
)

// ParlayResult aggregates an ordered list of legs. CombinedProbability
// assumes the valid legs are statistically independent.
type ParlayResult struct {
	Legs                []LegOutcome         `json:"legs"`
	TotalLegs           int                  `json:"total_legs"`
	ValidLegs           int                  `json:"valid_legs"`
	CombinedProbability float64              `json:"combined_probability"`
	PayoutMultiplier    decimal.Decimal      `json:"payout_multiplier"`
	AmericanOdds        string               `json:"american_odds"`
	ExpectedValue       float64              `json:"expected_value"`
	Threshold           float64              `json:"threshold"`
	Recommendation      ParlayRecommendation `json:"recommendation"`
	WeakestLeg          *WeakestLeg          `json:"weakest_leg,omitempty"`
}

// ParlayComparison puts two parlays side by side
type ParlayComparison struct {
	ParlayA               *ParlayResult `json:"parlay_a"`
	ParlayB               *ParlayResult `json:"parlay_b"`
	BetterOption          string        `json:"better_option"` // "A" or "B"
	ProbabilityDifference float64       `json:"probability_difference"`
}
