package adjustment

import (
	"strings"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// League reference values for the 2023-24 season
const (
	LeagueAvgDefRating = 115.0
	LeagueAvgPace      = 98.9
)

// TeamTable looks up reference defensive rating and pace by team code
type TeamTable interface {
	Lookup(code string) (models.TeamStats, bool)
}

// StaticTeamTable is an in-memory TeamTable keyed by upper-case team code
type StaticTeamTable map[string]models.TeamStats

// Lookup implements TeamTable
func (t StaticTeamTable) Lookup(code string) (models.TeamStats, bool) {
	ts, ok := t[strings.ToUpper(strings.TrimSpace(code))]
	return ts, ok
}

// NewStaticTeamTable builds a table from a list of team stats
func NewStaticTeamTable(teams []models.TeamStats) StaticTeamTable {
	t := make(StaticTeamTable, len(teams))
	for _, ts := range teams {
		ts.Code = strings.ToUpper(ts.Code)
		t[ts.Code] = ts
	}
	return t
}

// DefaultTeamTable returns 2023-24 defensive ratings and pace
func DefaultTeamTable() StaticTeamTable {
	return NewStaticTeamTable([]models.TeamStats{
		{Code: "ATL", DefRating: 116.4, Pace: 99.2},
		{Code: "BKN", DefRating: 114.9, Pace: 99.6},
		{Code: "BOS", DefRating: 110.6, Pace: 99.8},
		{Code: "CHA", DefRating: 118.2, Pace: 99.7},
		{Code: "CHI", DefRating: 115.7, Pace: 99.1},
		{Code: "CLE", DefRating: 111.4, Pace: 96.5},
		{Code: "DAL", DefRating: 115.2, Pace: 97.8},
		{Code: "DEN", DefRating: 114.9, Pace: 98.9},
		{Code: "DET", DefRating: 119.2, Pace: 98.6},
		{Code: "GSW", DefRating: 114.5, Pace: 99.6},
		{Code: "HOU", DefRating: 112.9, Pace: 99.4},
		{Code: "IND", DefRating: 117.7, Pace: 101.5},
		{Code: "LAC", DefRating: 113.2, Pace: 98.2},
		{Code: "LAL", DefRating: 115.6, Pace: 99.2},
		{Code: "MEM", DefRating: 116.8, Pace: 100.8},
		{Code: "MIA", DefRating: 113.4, Pace: 98.7},
		{Code: "MIL", DefRating: 112.7, Pace: 98.9},
		{Code: "MIN", DefRating: 110.9, Pace: 99.0},
		{Code: "NOP", DefRating: 113.8, Pace: 99.3},
		{Code: "NYK", DefRating: 112.8, Pace: 96.3},
		{Code: "OKC", DefRating: 111.0, Pace: 99.5},
		{Code: "ORL", DefRating: 110.8, Pace: 98.4},
		{Code: "PHI", DefRating: 112.5, Pace: 98.1},
		{Code: "PHX", DefRating: 116.4, Pace: 99.8},
		{Code: "POR", DefRating: 119.3, Pace: 97.2},
		{Code: "SAC", DefRating: 117.8, Pace: 100.2},
		{Code: "SAS", DefRating: 118.6, Pace: 99.6},
		{Code: "TOR", DefRating: 117.1, Pace: 97.8},
		{Code: "UTA", DefRating: 118.4, Pace: 99.1},
		{Code: "WAS", DefRating: 119.5, Pace: 98.5},
	})
}
