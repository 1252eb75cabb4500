// Package distribution converts a per-game mean and standard deviation into
// over/under probabilities using a normal approximation.
package distribution

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// MinProbability and MaxProbability bound every reported probability;
	// game-to-game variance never allows certainty.
	MinProbability = 0.01
	MaxProbability = 0.99

	// DefaultCoefficientOfVariation is the fallback std as a fraction of the mean.
	DefaultCoefficientOfVariation = 0.3

	// MinFallbackStd keeps the fallback away from zero for near-zero means.
	MinFallbackStd = 0.1

	// stdFloor is the smallest std treated as usable.
	stdFloor = 1e-9
)

// ErrInvalidConfidenceLevel is returned for levels outside (0, 1)
var ErrInvalidConfidenceLevel = errors.New("distribution: confidence level must be in (0, 1)")

// Probabilities holds both sides of a line. Over + Under == 1.
type Probabilities struct {
	Over  float64
	Under float64
}

// EffectiveStd returns std, or the coefficient-of-variation fallback when
// std is zero, non-finite or too small to divide by.
func EffectiveStd(mean, std float64) float64 {
	if UsableStd(std) {
		return std
	}
	return math.Max(mean*DefaultCoefficientOfVariation, MinFallbackStd)
}

// UsableStd reports whether std can be used without the fallback
func UsableStd(std float64) bool {
	return !math.IsNaN(std) && !math.IsInf(std, 0) && std >= stdFloor
}

// Evaluate returns P(over) and P(under) for line under N(mean, std²)
func Evaluate(mean, std, line float64) Probabilities {
	std = EffectiveStd(mean, std)
	z := (line - mean) / std

	under := clamp(distuv.UnitNormal.CDF(z), MinProbability, MaxProbability)
	return Probabilities{
		Over:  1 - under,
		Under: under,
	}
}

// ProbabilityOver returns P(X > line), clamped to [0.01, 0.99]
func ProbabilityOver(mean, std, line float64) float64 {
	return Evaluate(mean, std, line).Over
}

// ProbabilityUnder returns P(X < line), clamped to [0.01, 0.99]
func ProbabilityUnder(mean, std, line float64) float64 {
	return Evaluate(mean, std, line).Under
}

// CriticalValue returns the two-tailed standard normal quantile for level,
// e.g. ~1.2816 for 0.80 and ~1.9600 for 0.95.
func CriticalValue(level float64) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, ErrInvalidConfidenceLevel
	}
	return distuv.UnitNormal.Quantile((1 + level) / 2), nil
}

// ConfidenceInterval returns mean ± z*·std with the lower bound floored at 0,
// since counting stats cannot be negative.
func ConfidenceInterval(mean, std, level float64) (low, high float64, err error) {
	zStar, err := CriticalValue(level)
	if err != nil {
		return 0, 0, err
	}
	std = EffectiveStd(mean, std)
	margin := zStar * std
	return math.Max(0, mean-margin), mean + margin, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
