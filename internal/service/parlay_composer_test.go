package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/prop-probability-service/internal/mocks"
	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// testParlayComposerSetup is a helper struct to hold test dependencies
type testParlayComposerSetup struct {
	composer      *ParlayComposer
	mockLegScorer *mocks.MockLegScorer
	ctrl          *gomock.Controller
}

func setupTestParlayComposer(t *testing.T, maxConcurrent int) *testParlayComposerSetup {
	ctrl := gomock.NewController(t)
	mockLegScorer := mocks.NewMockLegScorer(ctrl)

	return &testParlayComposerSetup{
		composer:      NewParlayComposer(mockLegScorer, ComposerParams{MaxConcurrentLegs: maxConcurrent}, zerolog.Nop()),
		mockLegScorer: mockLegScorer,
		ctrl:          ctrl,
	}
}

func (s *testParlayComposerSetup) cleanup() {
	s.ctrl.Finish()
}

// legsByPlayer answers EvaluateLeg from a player -> probability table.
// Players missing from the table are not found.
func (s *testParlayComposerSetup) legsByPlayer(probs map[string]float64) {
	s.mockLegScorer.EXPECT().
		EvaluateLeg(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.LegRequest) (*models.LegResult, error) {
			p, ok := probs[req.Player]
			if !ok {
				return nil, &models.LegError{
					Stage:  models.StageReceived,
					Player: req.Player,
					Stat:   req.Stat,
					Err:    models.ErrPlayerNotFound,
				}
			}
			return &models.LegResult{Request: req, Probability: p, Complement: 1 - p}, nil
		}).
		AnyTimes()
}

func legs(players ...string) []models.LegRequest {
	reqs := make([]models.LegRequest, len(players))
	for i, p := range players {
		reqs[i] = models.LegRequest{Player: p, Stat: models.StatPoints, Line: 20.5, Direction: models.DirectionOver}
	}
	return reqs
}

// TestComposeParlay_ThreeLegs tests the reference three-leg parlay
func TestComposeParlay_ThreeLegs(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.60, "B": 0.55, "C": 0.58})

	result, err := setup.composer.ComposeParlay(context.Background(), legs("A", "B", "C"))

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalLegs)
	assert.Equal(t, 3, result.ValidLegs)
	assert.InDelta(t, 0.1914, result.CombinedProbability, 1e-9)
	assert.True(t, result.PayoutMultiplier.Equal(decimal.RequireFromString("5.96")))
	assert.Equal(t, "+596", result.AmericanOdds)
	assert.InDelta(t, 0.1914*5.96-1, result.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.17, result.Threshold, 1e-12)
	assert.Equal(t, models.ParlayPlayable, result.Recommendation)

	require.NotNil(t, result.WeakestLeg)
	assert.Equal(t, 1, result.WeakestLeg.Index)
	assert.Equal(t, "B", result.WeakestLeg.Player)
	assert.Equal(t, 0.55, result.WeakestLeg.Probability)
}

// TestComposeParlay_FailedLegExcluded tests that a failed leg is kept but not counted
func TestComposeParlay_FailedLegExcluded(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.60, "C": 0.58})

	result, err := setup.composer.ComposeParlay(context.Background(), legs("A", "Ghost", "C"))

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalLegs)
	assert.Equal(t, 2, result.ValidLegs)
	assert.InDelta(t, 0.60*0.58, result.CombinedProbability, 1e-12)
	assert.True(t, result.PayoutMultiplier.Equal(decimal.RequireFromString("2.64")))
	assert.InDelta(t, 0.15, result.Threshold, 1e-12)
	assert.Equal(t, models.ParlayStrongPlay, result.Recommendation)

	failed := result.Legs[1]
	assert.False(t, failed.Valid())
	assert.Equal(t, "Ghost", failed.Request.Player)
	assert.ErrorIs(t, failed.Err, models.ErrPlayerNotFound)
	assert.NotEmpty(t, failed.Error)
	assert.Nil(t, failed.Result)
}

// TestComposeParlay_SingleValidLeg tests a two-leg parlay where one player is unknown
func TestComposeParlay_SingleValidLeg(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.60})

	result, err := setup.composer.ComposeParlay(context.Background(), legs("A", "Ghost"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalLegs)
	assert.Equal(t, 1, result.ValidLegs)
	assert.InDelta(t, 0.60, result.CombinedProbability, 1e-12)
	assert.True(t, result.PayoutMultiplier.Equal(decimal.RequireFromString("0.91")))
	assert.Equal(t, "-110", result.AmericanOdds)
	assert.InDelta(t, 0.60*0.91-1, result.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.13, result.Threshold, 1e-12)
	assert.Equal(t, models.ParlayStrongPlay, result.Recommendation)

	require.NotNil(t, result.WeakestLeg)
	assert.Equal(t, 0, result.WeakestLeg.Index)
	assert.Equal(t, "A", result.WeakestLeg.Player)
	assert.ErrorIs(t, result.Legs[1].Err, models.ErrPlayerNotFound)
}

// TestComposeParlay_AllLegsFailed tests the aggregate error
func TestComposeParlay_AllLegsFailed(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{})

	result, err := setup.composer.ComposeParlay(context.Background(), legs("X", "Y"))

	assert.Nil(t, result)
	require.ErrorIs(t, err, models.ErrAllLegsFailed)
	var parlayErr *models.ParlayError
	require.ErrorAs(t, err, &parlayErr)
	assert.Len(t, parlayErr.Legs, 2)
	assert.True(t, parlayErr.AllNotFound())
}

// TestComposeParlay_Empty tests that an empty parlay is rejected
func TestComposeParlay_Empty(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()

	result, err := setup.composer.ComposeParlay(context.Background(), nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrAllLegsFailed)
}

// TestComposeParlay_PreservesOrder tests that concurrent legs come back in input order
func TestComposeParlay_PreservesOrder(t *testing.T) {
	setup := setupTestParlayComposer(t, 3)
	defer setup.cleanup()

	var inFlight, peak atomic.Int32
	delays := map[string]time.Duration{"A": 30 * time.Millisecond, "B": 0, "C": 15 * time.Millisecond, "D": 5 * time.Millisecond, "E": 0, "F": 10 * time.Millisecond}
	setup.mockLegScorer.EXPECT().
		EvaluateLeg(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.LegRequest) (*models.LegResult, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(delays[req.Player])
			inFlight.Add(-1)
			return &models.LegResult{Request: req, Probability: 0.6}, nil
		}).
		Times(6)

	result, err := setup.composer.ComposeParlay(context.Background(), legs("A", "B", "C", "D", "E", "F"))

	require.NoError(t, err)
	for i, want := range []string{"A", "B", "C", "D", "E", "F"} {
		assert.Equal(t, i, result.Legs[i].Index)
		assert.Equal(t, want, result.Legs[i].Request.Player)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

// TestComposeParlay_ContextCanceled tests that a canceled request returns the context error
func TestComposeParlay_ContextCanceled(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.6, "B": 0.6})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := setup.composer.ComposeParlay(ctx, legs("A", "B"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestComposeParlay_Idempotent tests that the same legs give the same result
func TestComposeParlay_Idempotent(t *testing.T) {
	setup := setupTestParlayComposer(t, 2)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.62, "B": 0.51, "C": 0.57, "D": 0.66})

	first, err := setup.composer.ComposeParlay(context.Background(), legs("A", "B", "C", "D"))
	require.NoError(t, err)
	second, err := setup.composer.ComposeParlay(context.Background(), legs("A", "B", "C", "D"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestCompareParlays tests picking the more likely parlay
func TestCompareParlays(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.legsByPlayer(map[string]float64{"A": 0.60, "B": 0.55, "C": 0.70, "D": 0.65})

	cmp, err := setup.composer.CompareParlays(context.Background(), legs("A", "B"), legs("C", "D"))

	require.NoError(t, err)
	assert.Equal(t, "B", cmp.BetterOption)
	assert.InDelta(t, 0.70*0.65-0.60*0.55, cmp.ProbabilityDifference, 1e-12)
	assert.Equal(t, 2, cmp.ParlayA.ValidLegs)
	assert.Equal(t, 2, cmp.ParlayB.ValidLegs)
}

// TestCompareParlays_Error tests that a failing side fails the comparison
func TestCompareParlays_Error(t *testing.T) {
	setup := setupTestParlayComposer(t, 0)
	defer setup.cleanup()
	setup.mockLegScorer.EXPECT().
		EvaluateLeg(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom")).
		AnyTimes()

	cmp, err := setup.composer.CompareParlays(context.Background(), legs("A"), legs("B"))

	assert.Nil(t, cmp)
	assert.ErrorIs(t, err, models.ErrAllLegsFailed)
}
