package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBreakdownComposition(t *testing.T) {
	cfg := testConfig()
	cfg.Boosts = SegmentBoostTable{"foodie": {"food_tour": 1.2}}

	adapter := fakeAdapter{popularity: 0.8, quality: 0.6, contextual: 0.4}
	eng := newTestEngine(t, adapter, cfg)

	user := uniformVector(0.5)
	cands := []candidate{{
		item:   fakeItem{id: "a", category: "food_tour"},
		vector: uniformVector(0.5),
	}}

	trip := &TripContext{DurationDays: 5}
	scored, errs, err := eng.scoreCandidates(user, "foodie", cands, trip)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, scored, 1)

	bd := scored[0].Breakdown
	assert.InDelta(t, 1.0, bd.Similarity, 1e-9)
	assert.Equal(t, 0.8, bd.Popularity)
	assert.Equal(t, 0.6, bd.Quality)
	assert.Equal(t, 0.4, bd.Contextual)
	assert.Equal(t, 1.2, bd.SegmentBoost)

	w := cfg.Scoring.Weights
	base := w.Similarity*bd.Similarity + w.Popularity*bd.Popularity +
		w.Quality*bd.Quality + w.Contextual*bd.Contextual
	assert.InDelta(t, base*1.2, bd.Final, 1e-9)
}

func TestScoreNeutralContextualWithoutTrip(t *testing.T) {
	adapter := fakeAdapter{popularity: 0.5, quality: 0.5, contextual: 0.9}
	eng := newTestEngine(t, adapter, testConfig())

	cands := []candidate{{item: fakeItem{id: "a"}, vector: uniformVector(0.5)}}
	scored, _, err := eng.scoreCandidates(uniformVector(0.5), "", cands, nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)

	// With no trip the adapter is not consulted; the score is neutral.
	assert.Equal(t, neutralContextual, scored[0].Breakdown.Contextual)
}

func TestScoreFinalCappedAtOne(t *testing.T) {
	cfg := testConfig()
	cfg.Boosts = SegmentBoostTable{"luxury_seeker": {"first": 1.5}}

	adapter := fakeAdapter{popularity: 1.0, quality: 1.0, contextual: 1.0}
	eng := newTestEngine(t, adapter, cfg)

	cands := []candidate{{
		item:   fakeItem{id: "a", category: "first"},
		vector: uniformVector(0.9),
	}}
	scored, _, err := eng.scoreCandidates(uniformVector(0.9), "luxury_seeker", cands, &TripContext{})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, 1.0, scored[0].Breakdown.Final)
}

func TestScoreThresholdDropsNotZeroes(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.MinSimilarity = 0.5

	eng := newTestEngine(t, fakeAdapter{popularity: 0.9, quality: 0.9}, cfg)

	low := NewVector()
	low[DimClimate] = 1.0
	high := uniformVector(0.5)
	user := uniformVector(0.5)

	scored, errs, err := eng.scoreCandidates(user, "", []candidate{
		{item: fakeItem{id: "low"}, vector: low},
		{item: fakeItem{id: "high"}, vector: high},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// The below-threshold candidate is absent entirely, not ranked last.
	require.Len(t, scored, 1)
	assert.Equal(t, "high", scored[0].Item.Meta().ID)
}

func TestScoreSortedDescendingStable(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{popularity: 0.5, quality: 0.5}, testConfig())

	user := uniformVector(0.5)
	aligned := uniformVector(0.5)
	skewed := uniformVector(0.5)
	skewed[DimClimate] = 1.0

	scored, _, err := eng.scoreCandidates(user, "", []candidate{
		{item: fakeItem{id: "skewed"}, vector: skewed},
		{item: fakeItem{id: "aligned-1"}, vector: aligned},
		{item: fakeItem{id: "aligned-2"}, vector: aligned},
	}, nil)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "aligned-1", scored[0].Item.Meta().ID)
	assert.Equal(t, "aligned-2", scored[1].Item.Meta().ID)
	assert.Equal(t, "skewed", scored[2].Item.Meta().ID)
}

func TestScoreDimensionMismatchIsFatal(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{}, testConfig())

	_, _, err := eng.scoreCandidates(uniformVector(0.5), "", []candidate{
		{item: fakeItem{id: "a"}, vector: Vector{0.5, 0.5}},
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
