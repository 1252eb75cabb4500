package models

import (
	"errors"
	"fmt"
)

var (
	// ErrPlayerNotFound means no historical records matched the player
	// (or the requested window/stat left nothing to aggregate).
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidStatType means the requested stat has no mapping.
	ErrInvalidStatType = errors.New("invalid stat type")

	// ErrInvalidRequest means a leg request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidWindow means a summary window was malformed.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrAllLegsFailed means no leg of a parlay could be evaluated.
	ErrAllLegsFailed = errors.New("no valid legs in parlay")
)

// LegStage is a state of the leg evaluation pipeline
type LegStage string

const (
	StageReceived         LegStage = "received"
	StageBaselineResolved LegStage = "baseline_resolved"
	StageAdjusted         LegStage = "adjusted"
	StageScored           LegStage = "scored"
	StageDone             LegStage = "done"
)

// LegError records the failure of one leg. Stage is the last state the leg
// reached before failing.
type LegError struct {
	Stage  LegStage
	Player string
	Stat   StatType
	Err    error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("leg %s/%s failed after %s: %v", e.Player, e.Stat, e.Stage, e.Err)
}

func (e *LegError) Unwrap() error {
	return e.Err
}

// ParlayError is returned when every leg of a parlay failed
type ParlayError struct {
	Legs []LegOutcome
}

func (e *ParlayError) Error() string {
	if len(e.Legs) == 0 {
		return ErrAllLegsFailed.Error() + ": no legs supplied"
	}
	return fmt.Sprintf("%s: %d of %d legs failed, first: %v",
		ErrAllLegsFailed, len(e.Legs), len(e.Legs), e.Legs[0].Err)
}

func (e *ParlayError) Unwrap() error {
	return ErrAllLegsFailed
}

// AllNotFound reports whether every leg failed because its player was unknown
func (e *ParlayError) AllNotFound() bool {
	if len(e.Legs) == 0 {
		return false
	}
	for _, leg := range e.Legs {
		if !errors.Is(leg.Err, ErrPlayerNotFound) {
			return false
		}
	}
	return true
}
