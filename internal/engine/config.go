package engine

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// weightSumTolerance is the allowed drift of the top-level weight sum
// from 1.0. Configs outside this band are rejected at load time.
const weightSumTolerance = 0.01

var validate = validator.New()

// ComponentWeights are the top-level score weights. They must sum to
// 1.0 within weightSumTolerance.
type ComponentWeights struct {
	Similarity float64 `koanf:"similarity" validate:"gte=0,lte=1"`
	Popularity float64 `koanf:"popularity" validate:"gte=0,lte=1"`
	Quality    float64 `koanf:"quality" validate:"gte=0,lte=1"`
	Contextual float64 `koanf:"contextual" validate:"gte=0,lte=1"`
}

// Sum returns the total of the four weights.
func (w ComponentWeights) Sum() float64 {
	return w.Similarity + w.Popularity + w.Quality + w.Contextual
}

// PopularityWeights are the sub-weights of the popularity score.
type PopularityWeights struct {
	Rating  float64 `koanf:"rating" validate:"gte=0"`
	Reviews float64 `koanf:"reviews" validate:"gte=0"`
	Flag    float64 `koanf:"flag" validate:"gte=0"`
}

// QualityWeights map domain-specific reliability signals to sub-weights.
// The signal names are owned by each domain adapter.
type QualityWeights map[string]float64

// ContextualWeights are the sub-weights of the contextual score.
type ContextualWeights struct {
	Duration  float64 `koanf:"duration" validate:"gte=0"`
	Budget    float64 `koanf:"budget" validate:"gte=0"`
	Companion float64 `koanf:"companion" validate:"gte=0"`
}

// ScoringConfig holds every weight and threshold used to turn a
// vectorized candidate into a final score. It is validated once at
// construction and never mutated afterwards.
type ScoringConfig struct {
	Weights    ComponentWeights  `koanf:"weights"`
	Popularity PopularityWeights `koanf:"popularity"`
	Quality    QualityWeights    `koanf:"quality"`
	Contextual ContextualWeights `koanf:"contextual"`

	// MMRLambda balances relevance against novelty during
	// diversification. 1.0 is pure relevance, 0.0 pure novelty.
	MMRLambda float64 `koanf:"mmr_lambda" validate:"gte=0,lte=1"`

	// MinSimilarity and MinQuality drop candidates entirely instead of
	// scoring them to zero.
	MinSimilarity float64 `koanf:"min_similarity" validate:"gte=0,lte=1"`
	MinQuality    float64 `koanf:"min_quality" validate:"gte=0,lte=1"`

	// RatingBaseline rebases the linear rating sub-score so that a
	// rating equal to the baseline is neutral (0.5). Zero keeps the
	// plain rating/5 scale.
	RatingBaseline float64 `koanf:"rating_baseline" validate:"gte=0,lte=5"`
}

// Validate checks ranges and the weight-sum invariant.
func (c *ScoringConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("scoring config: %w", err)
	}
	if diff := math.Abs(c.Weights.Sum() - 1.0); diff > weightSumTolerance {
		return fmt.Errorf("scoring config: component weights sum to %.4f, want 1.0 +/- %.2f",
			c.Weights.Sum(), weightSumTolerance)
	}
	for name, w := range c.Quality {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("scoring config: quality weight %q must be non-negative, got %f", name, w)
		}
	}
	return nil
}

// VectorizationConfig holds the tunables of a domain vectorizer.
type VectorizationConfig struct {
	// ReferencePrice is the market-average fallback used when a batch
	// carries no usable prices. Batch vectorization computes the actual
	// average per call and never writes it back here.
	ReferencePrice float64 `koanf:"reference_price" validate:"gt=0"`

	// Indicators are per-domain indicator weights, keyed by the names
	// each adapter documents in its default config.
	Indicators map[string]float64 `koanf:"indicators"`
}

// Indicator returns the configured weight for name, or def when the
// config does not override it.
func (c VectorizationConfig) Indicator(name string, def float64) float64 {
	if w, ok := c.Indicators[name]; ok {
		return w
	}
	return def
}

// Validate checks the vectorization tunables.
func (c *VectorizationConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("vectorization config: %w", err)
	}
	for name, w := range c.Indicators {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("vectorization config: indicator %q must be non-negative, got %f", name, w)
		}
	}
	return nil
}

// SegmentBoostTable maps (user segment, item category) to a static
// multiplier. Absent entries are neutral (1.0).
type SegmentBoostTable map[string]map[string]float64

// Lookup returns the multiplier for a segment/category pair, 1.0 when
// no entry exists.
func (t SegmentBoostTable) Lookup(segment, category string) float64 {
	if cats, ok := t[segment]; ok {
		if boost, ok := cats[category]; ok {
			return boost
		}
	}
	return 1.0
}

// Validate rejects multipliers outside the supported band.
func (t SegmentBoostTable) Validate() error {
	for segment, cats := range t {
		for category, boost := range cats {
			if boost < 0.3 || boost > 1.5 || math.IsNaN(boost) {
				return fmt.Errorf("segment boost [%s][%s] must be in [0.3,1.5], got %f",
					segment, category, boost)
			}
		}
	}
	return nil
}

// Config is the full per-domain engine configuration.
type Config struct {
	Scoring       ScoringConfig       `koanf:"scoring"`
	Vectorization VectorizationConfig `koanf:"vectorization"`
	Boosts        SegmentBoostTable   `koanf:"boosts"`
}

// Validate checks every config group. A config that fails here is never
// activated.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if err := c.Vectorization.Validate(); err != nil {
		return err
	}
	return c.Boosts.Validate()
}

// DefaultScoringConfig is the shared baseline every domain starts from.
// Domains override pieces of it in their own defaults and config files.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: ComponentWeights{
			Similarity: 0.40,
			Popularity: 0.25,
			Quality:    0.20,
			Contextual: 0.15,
		},
		Popularity: PopularityWeights{
			Rating:  0.5,
			Reviews: 0.3,
			Flag:    0.2,
		},
		Contextual: ContextualWeights{
			Duration:  0.35,
			Budget:    0.40,
			Companion: 0.25,
		},
		MMRLambda:     0.7,
		MinSimilarity: 0.1,
		MinQuality:    0.0,
	}
}
