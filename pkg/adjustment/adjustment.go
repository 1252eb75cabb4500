// Package adjustment scales a player's baseline mean for game context:
// location, opponent defense, opponent pace and head-to-head history.
package adjustment

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

const (
	defenseScale = 200.0
	defenseMin   = 0.85
	defenseMax   = 1.15

	paceWeight = 0.3
	paceMin    = 0.95
	paceMax    = 1.05

	matchupFullWeightGames = 10.0
	matchupMaxWeight       = 0.4
)

// Params holds the reference constants of the adjustment model. Location
// factors are fixed assumptions, not fitted from data.
type Params struct {
	LeagueAvgDefRating float64
	LeagueAvgPace      float64
	HomeFactor         float64
	AwayFactor         float64
	NeutralFactor      float64
}

// DefaultParams returns the 2023-24 reference values
func DefaultParams() Params {
	return Params{
		LeagueAvgDefRating: LeagueAvgDefRating,
		LeagueAvgPace:      LeagueAvgPace,
		HomeFactor:         1.10,
		AwayFactor:         0.95,
		NeutralFactor:      1.00,
	}
}

// Context is the situational information available for one leg. Zero
// values skip the corresponding factor.
type Context struct {
	Location models.Location
	Opponent string
	Matchup  *models.MatchupHistory
}

// Result is an adjusted mean and std with the factors that produced it
type Result struct {
	BaselineMean float64
	BaselineStd  float64
	Mean         float64
	Std          float64
	Factors      []models.AdjustmentFactor
}

// Engine applies adjustments in the fixed order
// location -> defense -> pace -> matchup blend.
type Engine struct {
	params Params
	teams  TeamTable
	logger zerolog.Logger
}

// NewEngine creates an adjustment engine backed by a team table
func NewEngine(params Params, teams TeamTable, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		teams:  teams,
		logger: logger.With().Str("component", "adjustment_engine").Logger(),
	}
}

// Apply adjusts baselineMean for ctx and rescales baselineStd so the
// coefficient of variation is preserved.
func (e *Engine) Apply(baselineMean, baselineStd float64, ctx Context) Result {
	mean := baselineMean
	factors := make([]models.AdjustmentFactor, 0, 4)

	if ctx.Location != "" {
		f := e.LocationFactor(ctx.Location)
		mean *= f
		factors = append(factors, models.AdjustmentFactor{
			Kind:        models.AdjustmentLocation,
			Multiplier:  f,
			Description: describeLocation(ctx.Location, f),
		})
	}

	if ctx.Opponent != "" {
		team, known := e.teams.Lookup(ctx.Opponent)
		if !known {
			team = models.TeamStats{
				Code:      ctx.Opponent,
				DefRating: e.params.LeagueAvgDefRating,
				Pace:      e.params.LeagueAvgPace,
			}
			e.logger.Debug().Str("opponent", ctx.Opponent).Msg("unknown opponent, using league averages")
		}

		def := e.DefenseFactor(team.DefRating)
		mean *= def
		factors = append(factors, models.AdjustmentFactor{
			Kind:        models.AdjustmentDefense,
			Multiplier:  def,
			Description: e.describeDefense(team, def, known),
		})

		pace := e.PaceFactor(team.Pace)
		mean *= pace
		factors = append(factors, models.AdjustmentFactor{
			Kind:        models.AdjustmentPace,
			Multiplier:  pace,
			Description: e.describePace(team, known),
		})
	}

	// The blend is not a pure multiplier, so it must come after every
	// multiplicative factor.
	if m := ctx.Matchup; m != nil && m.Games > 0 {
		w := MatchupWeight(m.Games)
		before := mean
		mean = mean*(1-w) + m.Average*w

		ratio := 1.0
		if before != 0 {
			ratio = mean / before
		}
		factors = append(factors, models.AdjustmentFactor{
			Kind:       models.AdjustmentMatchupHistory,
			Multiplier: ratio,
			Description: fmt.Sprintf("Last %d games vs %s averaged %.2f (%.0f%% weight)",
				m.Games, m.Opponent, m.Average, w*100),
		})
	}

	std := baselineStd
	if baselineMean != 0 {
		std = baselineStd * (mean / baselineMean)
	}

	return Result{
		BaselineMean: baselineMean,
		BaselineStd:  baselineStd,
		Mean:         mean,
		Std:          std,
		Factors:      factors,
	}
}

// LocationFactor returns the multiplier for a game location
func (e *Engine) LocationFactor(loc models.Location) float64 {
	switch loc {
	case models.LocationHome:
		return e.params.HomeFactor
	case models.LocationAway:
		return e.params.AwayFactor
	default:
		return e.params.NeutralFactor
	}
}

// DefenseFactor maps an opponent defensive rating to a multiplier. A
// better (lower) rating lowers the factor.
func (e *Engine) DefenseFactor(opponentDefRating float64) float64 {
	f := 1 - (e.params.LeagueAvgDefRating-opponentDefRating)/defenseScale
	return clamp(f, defenseMin, defenseMax)
}

// PaceFactor maps an opponent pace to a multiplier. Faster pace raises it.
func (e *Engine) PaceFactor(opponentPace float64) float64 {
	avg := e.params.LeagueAvgPace
	f := 1 + (opponentPace-avg)/avg*paceWeight
	return clamp(f, paceMin, paceMax)
}

// MatchupWeight is the weight given to head-to-head history: games/10,
// capped at 0.4.
func MatchupWeight(games int) float64 {
	if games <= 0 {
		return 0
	}
	return math.Min(float64(games)/matchupFullWeightGames, matchupMaxWeight)
}

func describeLocation(loc models.Location, f float64) string {
	switch loc {
	case models.LocationHome:
		return fmt.Sprintf("Home game (%+.0f%%)", (f-1)*100)
	case models.LocationAway:
		return fmt.Sprintf("Away game (%+.0f%%)", (f-1)*100)
	default:
		return "Neutral court"
	}
}

func (e *Engine) describeDefense(team models.TeamStats, f float64, known bool) string {
	if !known {
		return fmt.Sprintf("Unknown opponent %s, league average defense (%.1f) assumed", team.Code, team.DefRating)
	}
	switch {
	case f < 0.95:
		return fmt.Sprintf("Elite defense (%s %.1f) - harder matchup", team.Code, team.DefRating)
	case f > 1.05:
		return fmt.Sprintf("Weak defense (%s %.1f) - easier matchup", team.Code, team.DefRating)
	case team.DefRating < e.params.LeagueAvgDefRating:
		return fmt.Sprintf("Above average defense (%s %.1f)", team.Code, team.DefRating)
	case team.DefRating > e.params.LeagueAvgDefRating:
		return fmt.Sprintf("Below average defense (%s %.1f)", team.Code, team.DefRating)
	default:
		return fmt.Sprintf("Average defense (%s %.1f)", team.Code, team.DefRating)
	}
}

func (e *Engine) describePace(team models.TeamStats, known bool) string {
	if !known {
		return fmt.Sprintf("Unknown opponent %s, league average pace (%.1f) assumed", team.Code, team.Pace)
	}
	switch diff := team.Pace - e.params.LeagueAvgPace; {
	case diff > 1.5:
		return fmt.Sprintf("Fast pace (%s %.1f) - more possessions", team.Code, team.Pace)
	case diff < -1.5:
		return fmt.Sprintf("Slow pace (%s %.1f) - fewer possessions", team.Code, team.Pace)
	default:
		return fmt.Sprintf("Average pace (%s %.1f)", team.Code, team.Pace)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
