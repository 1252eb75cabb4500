package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatType identifies a per-game statistic a line can be posted against
type StatType string

const (
	StatPoints                StatType = "points"
	StatAssists               StatType = "assists"
	StatRebounds              StatType = "rebounds"
	StatThreePointers         StatType = "three_pointers"
	StatSteals                StatType = "steals"
	StatBlocks                StatType = "blocks"
	StatTurnovers             StatType = "turnovers"
	StatPointsAssists         StatType = "points_assists"
	StatPointsReboundsAssists StatType = "points_rebounds_assists"
)

// statAliases maps box-score abbreviations onto stat types
var statAliases = map[string]StatType{
	"pts":     StatPoints,
	"ast":     StatAssists,
	"reb":     StatRebounds,
	"trb":     StatRebounds,
	"3p":      StatThreePointers,
	"three_p": StatThreePointers,
	"threes":  StatThreePointers,
	"stl":     StatSteals,
	"blk":     StatBlocks,
	"tov":     StatTurnovers,
	"pa":      StatPointsAssists,
	"pra":     StatPointsReboundsAssists,
}

// AllStatTypes returns every supported stat type in display order
func AllStatTypes() []StatType {
	return []StatType{
		StatPoints, StatAssists, StatRebounds, StatThreePointers,
		StatSteals, StatBlocks, StatTurnovers,
		StatPointsAssists, StatPointsReboundsAssists,
	}
}

// ParseStatType resolves a stat name or abbreviation (case-insensitive)
func ParseStatType(s string) (StatType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if st := StatType(key); st.Valid() {
		return st, nil
	}
	if st, ok := statAliases[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatType, s)
}

// Valid reports whether s is a supported stat type
func (s StatType) Valid() bool {
	switch s {
	case StatPoints, StatAssists, StatRebounds, StatThreePointers,
		StatSteals, StatBlocks, StatTurnovers,
		StatPointsAssists, StatPointsReboundsAssists:
		return true
	}
	return false
}

// Components returns the single stats summed to build a composite stat.
// A non-composite stat is its own only component.
func (s StatType) Components() []StatType {
	switch s {
	case StatPointsAssists:
		return []StatType{StatPoints, StatAssists}
	case StatPointsReboundsAssists:
		return []StatType{StatPoints, StatRebounds, StatAssists}
	default:
		return []StatType{s}
	}
}

// IsComposite reports whether s is the per-game sum of several stats
func (s StatType) IsComposite() bool {
	return len(s.Components()) > 1
}

// GameRecord is one player-game observation. Nil stat values mean the
// stat was not recorded for that game, which is not the same as zero.
type GameRecord struct {
	ID            uuid.UUID `json:"id"`
	Player        string    `json:"player"`
	Date          time.Time `json:"date"`
	Opponent      string    `json:"opponent"`
	Points        *float64  `json:"points,omitempty"`
	Assists       *float64  `json:"assists,omitempty"`
	Rebounds      *float64  `json:"rebounds,omitempty"`
	ThreePointers *float64  `json:"three_pointers,omitempty"`
	Steals        *float64  `json:"steals,omitempty"`
	Blocks        *float64  `json:"blocks,omitempty"`
	Turnovers     *float64  `json:"turnovers,omitempty"`
	Minutes       *float64  `json:"minutes,omitempty"`
}

// Value returns the record's value for stat. Composite stats are summed
// from this game's components and are absent if any component is absent.
func (g GameRecord) Value(stat StatType) (float64, bool) {
	if stat.IsComposite() {
		var sum float64
		for _, c := range stat.Components() {
			v, ok := g.Value(c)
			if !ok {
				return 0, false
			}
			sum += v
		}
		return sum, true
	}

	var v *float64
	switch stat {
	case StatPoints:
		v = g.Points
	case StatAssists:
		v = g.Assists
	case StatRebounds:
		v = g.Rebounds
	case StatThreePointers:
		v = g.ThreePointers
	case StatSteals:
		v = g.Steals
	case StatBlocks:
		v = g.Blocks
	case StatTurnovers:
		v = g.Turnovers
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Float64 returns a pointer to v, for building records with present stats
func Float64(v float64) *float64 {
	return &v
}

// Window selects how much history a summary covers
type Window struct {
	LastN int `json:"last_n"` // 0 = full history
}

// FullHistory covers every stored game
func FullHistory() Window { return Window{} }

// LastGames covers the n most recent games
func LastGames(n int) Window { return Window{LastN: n} }

// Validate rejects negative game counts
func (w Window) Validate() error {
	if w.LastN < 0 {
		return fmt.Errorf("%w: last_n must be >= 0, got %d", ErrInvalidWindow, w.LastN)
	}
	return nil
}

func (w Window) String() string {
	if w.LastN == 0 {
		return "full_history"
	}
	return fmt.Sprintf("last_%d_games", w.LastN)
}

// StatSummary aggregates one stat for one player over a window
type StatSummary struct {
	Player        string   `json:"player"`
	Stat          StatType `json:"stat_type"`
	Window        Window   `json:"window"`
	GamesAnalyzed int      `json:"games_analyzed"`
	Mean          float64  `json:"mean"`
	Std           float64  `json:"std"` // sample std, 0 when fewer than 2 games
	Min           float64  `json:"min"`
	Max           float64  `json:"max"`
}

// MatchupHistory is a player's record for one stat against one opponent
type MatchupHistory struct {
	Opponent string  `json:"opponent"`
	Games    int     `json:"games"`
	Average  float64 `json:"average"`
}

// Trend labels recent form relative to the full history
type Trend string

const (
	TrendVeryHot  Trend = "VERY HOT"
	TrendHot      Trend = "HOT"
	TrendSteady   Trend = "STEADY"
	TrendCold     Trend = "COLD"
	TrendVeryCold Trend = "VERY COLD"
)

// RecentComparison compares a player's last-N mean against the full history
type RecentComparison struct {
	Player      string   `json:"player"`
	Stat        StatType `json:"stat_type"`
	SeasonMean  float64  `json:"season_mean"`
	RecentMean  float64  `json:"recent_mean"`
	Difference  float64  `json:"difference"`
	Trend       Trend    `json:"trend"`
	SeasonGames int      `json:"season_games"`
	RecentGames int      `json:"recent_games"`
}

// TeamStats is the reference defensive rating and pace of one team
type TeamStats struct {
	Code      string  `json:"code"`
	DefRating float64 `json:"def_rating"` // points allowed per 100 possessions
	Pace      float64 `json:"pace"`       // possessions per 48 minutes
}

// GameLogBatchMessage is the ingestion message published by the data collector
type GameLogBatchMessage struct {
	Records   []GameRecord `json:"records"`
	Timestamp time.Time    `json:"timestamp"`
	BatchID   string       `json:"batch_id"`
}
