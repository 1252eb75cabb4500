package models

import (
	"fmt"
	"strings"
)

// Direction is the side of the line a leg is placed on
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
)

// Location is where the player's team plays the game
type Location string

const (
	LocationHome    Location = "home"
	LocationAway    Location = "away"
	LocationNeutral Location = "neutral"
)

// LegRequest is the input to one probability evaluation
type LegRequest struct {
	Player    string    `json:"player" validate:"required"`
	Stat      StatType  `json:"stat_type" validate:"required"`
	Line      float64   `json:"line" validate:"gte=0"`
	Direction Direction `json:"direction" validate:"required,oneof=over under"`
	Location  Location  `json:"location,omitempty" validate:"omitempty,oneof=home away neutral"`
	Opponent  string    `json:"opponent,omitempty" validate:"omitempty,alpha,min=2,max=4"`
}

// Normalize lowercases enumerated fields, uppercases the opponent code and
// defaults the direction to over.
func (r LegRequest) Normalize() LegRequest {
	r.Player = strings.TrimSpace(r.Player)
	r.Stat = StatType(strings.ToLower(strings.TrimSpace(string(r.Stat))))
	r.Direction = Direction(strings.ToLower(strings.TrimSpace(string(r.Direction))))
	if r.Direction == "" {
		r.Direction = DirectionOver
	}
	r.Location = Location(strings.ToLower(strings.TrimSpace(string(r.Location))))
	r.Opponent = strings.ToUpper(strings.TrimSpace(r.Opponent))
	return r
}

// AdjustmentKind names the situational factor behind an adjustment
type AdjustmentKind string

const (
	AdjustmentLocation       AdjustmentKind = "location"
	AdjustmentDefense        AdjustmentKind = "defense"
	AdjustmentPace           AdjustmentKind = "pace"
	AdjustmentMatchupHistory AdjustmentKind = "matchup_history"
)

// AdjustmentFactor is one applied multiplier with its rationale. For the
// matchup-history blend Multiplier is the resulting ratio of means.
type AdjustmentFactor struct {
	Kind        AdjustmentKind `json:"kind"`
	Multiplier  float64        `json:"multiplier"`
	Description string         `json:"description"`
}

// Interval is a closed confidence interval
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Recommendation is the five-band call for a single leg
type Recommendation string

const (
	RecommendationStrongHit  Recommendation = "STRONG HIT"
	RecommendationLeanHit    Recommendation = "LEAN HIT"
	RecommendationTossUp     Recommendation = "TOSS-UP"
	RecommendationLeanMiss   Recommendation = "LEAN MISS"
	RecommendationStrongMiss Recommendation = "STRONG MISS"
)

// Verdict is the two-band call used when presenting parlay legs
type Verdict string

const (
	VerdictHit    Verdict = "HIT"
	VerdictTossUp Verdict = "TOSS-UP"
	VerdictMiss   Verdict = "MISS"
)

// Warning flags a non-fatal condition that lowers confidence in a result
type Warning string

const (
	// WarningInsufficientData means the sample std was unusable and the
	// coefficient-of-variation floor was used instead.
	WarningInsufficientData Warning = "insufficient_data"
)

// LegResult is the output of evaluating a LegRequest
type LegResult struct {
	Request          LegRequest         `json:"request"`
	GamesAnalyzed    int                `json:"games_analyzed"`
	BaselineMean     float64            `json:"baseline_mean"`
	BaselineStd      float64            `json:"baseline_std"`
	EffectiveStd     float64            `json:"effective_std"` // BaselineStd or the fallback
	AdjustedMean     float64            `json:"adjusted_mean"`
	AdjustedStd      float64            `json:"adjusted_std"`
	Adjustments      []AdjustmentFactor `json:"adjustments"`
	Probability      float64            `json:"probability"` // requested direction
	Complement       float64            `json:"complement"`
	ProbabilityOver  float64            `json:"probability_over"`
	ProbabilityUnder float64            `json:"probability_under"`
	Edge             float64            `json:"edge"` // probability - 0.5
	Confidence80     Interval           `json:"confidence_80"`
	Confidence95     Interval           `json:"confidence_95"`
	Recommendation   Recommendation     `json:"recommendation"`
	Verdict          Verdict            `json:"verdict"`
	RecentMean       *float64           `json:"recent_mean,omitempty"`
	RecentGames      int                `json:"recent_games,omitempty"`
	Warnings         []Warning          `json:"warnings,omitempty"`
}

// HasWarning reports whether w was raised for this result
func (r *LegResult) HasWarning(w Warning) bool {
	for _, got := range r.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

// ParseDirection resolves "over"/"under" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionOver, DirectionUnder:
		return d, nil
	}
	return "", fmt.Errorf("%w: direction must be over or under, got %q", ErrInvalidRequest, s)
}
