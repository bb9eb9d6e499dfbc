package engine

import "math"

// ItemMeta is the minimum every domain item must expose to the engine.
// Everything else about an item stays opaque and is only seen by the
// domain's own adapter.
type ItemMeta struct {
	ID       string
	Category string
	// Rating is in [0,5]; Rated is false when the item has none.
	Rating   float64
	Rated    bool
	Reviews  int
	Price    float64
	Currency string
}

// Item is a domain inventory record the engine can rank.
type Item interface {
	Meta() ItemMeta
}

// TripContext carries request-specific constraints. It is optional;
// without one every contextual sub-factor scores neutral (0.5).
type TripContext struct {
	DurationDays int
	BudgetPerDay float64
	// Companions is one of "solo", "couple", "family", "group".
	Companions string
	// Purpose is "leisure" or "business".
	Purpose string
	Season  string
}

// DomainAdapter supplies the per-domain rules that instantiate the
// generic engine for one inventory type. Adapters are plain values, the
// engine never retains mutable state in them.
type DomainAdapter interface {
	// Domain returns the inventory type name ("activity", "flight", ...).
	Domain() string

	// Vectorize maps one item into the canonical preference space.
	// referencePrice is the batch market average, threaded explicitly so
	// concurrent batches never observe each other's value.
	Vectorize(item Item, cfg VectorizationConfig, referencePrice float64) (Vector, error)

	// PopularityScore combines rating, review volume and the domain's
	// popularity flag into [0,1].
	PopularityScore(item Item, cfg ScoringConfig) float64

	// QualityScore combines the domain's reliability and comfort
	// signals into [0,1].
	QualityScore(item Item, weights QualityWeights) float64

	// ContextualScore rates how well the item fits the trip. Only
	// called with a non-nil trip.
	ContextualScore(item Item, trip *TripContext, weights ContextualWeights) float64

	// Highlights returns up to two domain-specific reason strings for
	// the explanation generator.
	Highlights(item Item, trip *TripContext) []string
}

// ScoreParts accumulates weighted sub-scores and normalizes by the sum
// of the weights that were actually active, so a missing input never
// drags the result toward zero.
type ScoreParts struct {
	sum     float64
	weights float64
}

// Add records one sub-score with its weight.
func (p *ScoreParts) Add(value, weight float64) {
	if weight <= 0 {
		return
	}
	p.sum += Clamp01(value) * weight
	p.weights += weight
}

// Score returns the normalized result, or fallback when nothing was
// active.
func (p *ScoreParts) Score(fallback float64) float64 {
	if p.weights == 0 {
		return fallback
	}
	return Clamp01(p.sum / p.weights)
}

// IndicatorSet accumulates boolean indicators for one vector dimension.
// The value is the attained weight divided by the maximum attainable
// weight, which keeps the dimension in [0,1] by construction.
type IndicatorSet struct {
	attained float64
	max      float64
}

// Add registers an indicator; active indicators contribute their weight.
func (s *IndicatorSet) Add(active bool, weight float64) {
	if weight <= 0 {
		return
	}
	s.max += weight
	if active {
		s.attained += weight
	}
}

// Value returns the normalized dimension value, neutral (0.5) when no
// indicator was registered.
func (s *IndicatorSet) Value() float64 {
	if s.max == 0 {
		return 0.5
	}
	return Clamp01(s.attained / s.max)
}

// RatingScore maps a [0,5] rating to [0,1]. With a positive baseline the
// scale is rebased so a rating equal to the baseline lands on 0.5.
func RatingScore(rating, baseline float64) float64 {
	if baseline <= 0 {
		return Clamp01(rating / 5.0)
	}
	span := 5.0 - baseline
	if span <= 0 {
		return Clamp01(rating / 5.0)
	}
	return Clamp01(0.5 + (rating-baseline)/(2*span))
}

// ReviewScore maps a review count to [0,1] on a log scale, saturating
// around a thousand reviews.
func ReviewScore(count int) float64 {
	if count <= 0 {
		return 0
	}
	return Clamp01(math.Log1p(float64(count)) / math.Log1p(1000))
}
