package engine

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeItem carries its own vector so tests control the geometry exactly.
type fakeItem struct {
	id       string
	category string
	price    float64
	vec      Vector
}

func (f fakeItem) Meta() ItemMeta {
	return ItemMeta{ID: f.id, Category: f.category, Price: f.price}
}

// fakeAdapter returns fixed sub-scores unless overridden per test.
type fakeAdapter struct {
	vectorize  func(Item, VectorizationConfig, float64) (Vector, error)
	popularity float64
	quality    float64
	contextual float64
	highlights []string
}

func (a fakeAdapter) Domain() string { return "fake" }

func (a fakeAdapter) Vectorize(it Item, cfg VectorizationConfig, ref float64) (Vector, error) {
	if a.vectorize != nil {
		return a.vectorize(it, cfg, ref)
	}
	return it.(fakeItem).vec, nil
}

func (a fakeAdapter) PopularityScore(Item, ScoringConfig) float64 { return a.popularity }

func (a fakeAdapter) QualityScore(Item, QualityWeights) float64 { return a.quality }

func (a fakeAdapter) ContextualScore(Item, *TripContext, ContextualWeights) float64 {
	return a.contextual
}

func (a fakeAdapter) Highlights(Item, *TripContext) []string { return a.highlights }

func testConfig() Config {
	return Config{
		Scoring:       DefaultScoringConfig(),
		Vectorization: VectorizationConfig{ReferencePrice: 100},
	}
}

func newTestEngine(t *testing.T, adapter DomainAdapter, cfg Config) *Engine {
	t.Helper()
	eng, err := New(adapter, cfg, zerolog.Nop())
	require.NoError(t, err)
	return eng
}

func uniformVector(v float64) Vector {
	vec := NewVector()
	for i := range vec {
		vec[i] = v
	}
	return vec
}

func TestNewRejectsNilAdapter(t *testing.T) {
	_, err := New(nil, testConfig(), zerolog.Nop())
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.Weights.Similarity = 0.9 // breaks the sum invariant

	_, err := New(fakeAdapter{}, cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRecommendEmptyBatch(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{}, testConfig())

	resp, err := eng.Recommend(Request{UserVector: uniformVector(0.5)})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, 0, resp.TotalCandidates)
}

func TestRecommendInvalidUserVector(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{}, testConfig())

	_, err := eng.Recommend(Request{
		UserVector: Vector{0.5, 0.5}, // wrong dimensionality
		Items:      []Item{fakeItem{id: "a", vec: uniformVector(0.5)}},
	})
	require.Error(t, err)
	assert.True(t, IsPipelineError(err))
}

func TestRecommendFullPipeline(t *testing.T) {
	adapter := fakeAdapter{popularity: 0.8, quality: 0.9}
	eng := newTestEngine(t, adapter, testConfig())

	items := make([]Item, 0, 6)
	for i := 0; i < 6; i++ {
		vec := uniformVector(0.5)
		vec[DimCulture] = float64(i) / 10.0
		items = append(items, fakeItem{id: fmt.Sprintf("item-%d", i), vec: vec})
	}

	resp, err := eng.Recommend(Request{
		UserVector: uniformVector(0.5),
		Segment:    "cultural_explorer",
		Items:      items,
		Limit:      3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 6, resp.TotalCandidates)

	for i, r := range resp.Results {
		assert.Equal(t, i+1, r.Rank)
		assert.GreaterOrEqual(t, r.Breakdown.Final, 0.0)
		assert.LessOrEqual(t, r.Breakdown.Final, 1.0)
	}
}

func TestRecommendAllFilteredOut(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.MinSimilarity = 0.99

	eng := newTestEngine(t, fakeAdapter{popularity: 0.5, quality: 0.5}, cfg)

	// Orthogonal to the user vector: similarity 0, under the threshold.
	itemVec := NewVector()
	itemVec[DimClimate] = 1.0
	userVec := NewVector()
	userVec[DimCulture] = 1.0

	resp, err := eng.Recommend(Request{
		UserVector: userVec,
		Items:      []Item{fakeItem{id: "a", vec: itemVec}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 1, resp.Filtered)
}

func TestRecommendLambdaOverride(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{popularity: 0.5, quality: 0.5}, testConfig())

	items := []Item{
		fakeItem{id: "a", vec: uniformVector(0.9)},
		fakeItem{id: "b", vec: uniformVector(0.8)},
	}

	lambda := 1.0
	resp, err := eng.Recommend(Request{
		UserVector: uniformVector(0.9),
		Items:      items,
		Lambda:     &lambda,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
}
