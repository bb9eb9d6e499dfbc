package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
)

func vectorizeCfg() engine.VectorizationConfig {
	return DefaultConfig().Vectorization
}

func TestVectorizeExperienceAxesNeutral(t *testing.T) {
	f := Features{OfferID: "flt-1", CabinClass: "economy", Price: 320}

	v, err := Adapter{}.Vectorize(f, vectorizeCfg(), 320)
	require.NoError(t, err)
	require.NoError(t, v.Validate())

	// A flight says nothing about climate, culture or food tastes.
	for _, dim := range []int{engine.DimClimate, engine.DimCulture, engine.DimActivity,
		engine.DimGroup, engine.DimUrban, engine.DimGastronomy} {
		assert.Equal(t, 0.5, v[dim], engine.DimensionName(dim))
	}
}

func TestVectorizeBudgetBlendsCabin(t *testing.T) {
	economy := Features{OfferID: "a", CabinClass: "economy", Price: 320}
	first := Features{OfferID: "b", CabinClass: "first", Price: 320}

	ve, err := Adapter{}.Vectorize(economy, vectorizeCfg(), 320)
	require.NoError(t, err)
	vf, err := Adapter{}.Vectorize(first, vectorizeCfg(), 320)
	require.NoError(t, err)

	// Same fare, but the cabin component pushes first class up the axis.
	assert.Greater(t, vf[engine.DimBudget], ve[engine.DimBudget])

	// price_weight 0.7 * 0.5 + cabin_weight 0.3 * 0.2 for economy at par.
	assert.InDelta(t, 0.41, ve[engine.DimBudget], 1e-9)
}

func TestVectorizeUnknownCabinNeutral(t *testing.T) {
	v, err := Adapter{}.Vectorize(Features{OfferID: "a", CabinClass: "suite", Price: 320}, vectorizeCfg(), 320)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v[engine.DimBudget], 1e-9)
}

func TestVectorizeRejectsWrongItemType(t *testing.T) {
	type otherItem struct{ Features }
	_, err := Adapter{}.Vectorize(otherItem{}, vectorizeCfg(), 320)
	assert.Error(t, err)
}

func TestQualityScorePresenceGuards(t *testing.T) {
	weights := DefaultConfig().Scoring.Quality

	full := Features{OfferID: "a", OnTimeRate: 0.95, Stops: 0, Refundable: true, SeatPitchInches: 38}
	fs := Adapter{}.QualityScore(full, weights)
	assert.InDelta(t, 0.98, fs, 0.02)

	// Unknown on-time rate and pitch drop out of the weighting rather
	// than counting as zero.
	sparse := Features{OfferID: "b", Stops: 0, Refundable: true}
	ss := Adapter{}.QualityScore(sparse, weights)
	assert.InDelta(t, 1.0, ss, 1e-9)
}

func TestQualityScoreStops(t *testing.T) {
	weights := engine.QualityWeights{"directness": 1.0}

	assert.Equal(t, 1.0, Adapter{}.QualityScore(Features{OfferID: "a", Stops: 0}, weights))
	assert.InDelta(t, 0.6, Adapter{}.QualityScore(Features{OfferID: "b", Stops: 1}, weights), 1e-9)
	assert.InDelta(t, 0.2, Adapter{}.QualityScore(Features{OfferID: "c", Stops: 3}, weights), 1e-9)
}

func TestContextualScoreBusinessPurpose(t *testing.T) {
	weights := DefaultConfig().Scoring.Contextual
	trip := &engine.TripContext{DurationDays: 3, BudgetPerDay: 400, Purpose: "business"}

	business := Features{OfferID: "a", CabinClass: "business", Price: 600, DurationMinutes: 180}
	economyMultiStop := Features{OfferID: "b", CabinClass: "economy", Price: 600, DurationMinutes: 180, Stops: 2}

	bs := Adapter{}.ContextualScore(business, trip, weights)
	es := Adapter{}.ContextualScore(economyMultiStop, trip, weights)
	assert.Greater(t, bs, es)
}

func TestContextualScoreFamilyAvoidsMultiStop(t *testing.T) {
	weights := engine.ContextualWeights{Companion: 1.0}
	trip := &engine.TripContext{DurationDays: 7, Companions: "family"}

	direct := Features{OfferID: "a", CabinClass: "economy", Stops: 0}
	twoStops := Features{OfferID: "b", CabinClass: "economy", Stops: 2}

	assert.Greater(t,
		Adapter{}.ContextualScore(direct, trip, weights),
		Adapter{}.ContextualScore(twoStops, trip, weights))
}

func TestBudgetFitAgainstTripTotal(t *testing.T) {
	trip := &engine.TripContext{DurationDays: 10, BudgetPerDay: 100}

	// 1000 total budget: a 150 fare is comfortable, an 800 fare is not.
	assert.Equal(t, 1.0, budgetFit(150, trip))
	assert.Equal(t, 0.2, budgetFit(800, trip))
	assert.Equal(t, 0.5, budgetFit(300, &engine.TripContext{}))
}

func TestSeatPitchScore(t *testing.T) {
	assert.Equal(t, 0.0, seatPitchScore(28))
	assert.InDelta(t, 0.3, seatPitchScore(31), 1e-9)
	assert.Equal(t, 1.0, seatPitchScore(40))
}

func TestHighlights(t *testing.T) {
	f := Features{OfferID: "a", Stops: 0, OnTimeRate: 0.9, Refundable: true}
	hs := Adapter{}.Highlights(f, nil)
	require.Len(t, hs, 2)
	assert.Equal(t, "Direct flight, no layovers", hs[0])
	assert.Equal(t, "Strong on-time record", hs[1])

	refundableOnly := Features{OfferID: "b", Stops: 1, Refundable: true}
	hs = Adapter{}.Highlights(refundableOnly, nil)
	require.Len(t, hs, 1)
	assert.Equal(t, "Fully refundable fare", hs[0])
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.6, cfg.Scoring.MMRLambda)
}
