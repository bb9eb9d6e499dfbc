package stay

import "github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"

// DefaultConfig is the hand-authored baseline for the accommodation
// engine. configs/engine/accommodation.yaml overrides pieces of it at
// load time.
func DefaultConfig() engine.Config {
	scoring := engine.DefaultScoringConfig()
	scoring.Quality = engine.QualityWeights{
		"stars":             0.30,
		"amenities":         0.30,
		"free_cancellation": 0.25,
		"top_rated":         0.15,
	}
	scoring.MMRLambda = 0.65
	scoring.MinSimilarity = 0.15
	// Accommodations carry dense guest ratings; rebase so the scale
	// midpoint is neutral instead of "better than nothing".
	scoring.RatingBaseline = 3.0

	return engine.Config{
		Scoring: scoring,
		Vectorization: engine.VectorizationConfig{
			ReferencePrice: 140, // EUR per night
		},
		Boosts: engine.SegmentBoostTable{
			"luxury_seeker": {
				"resort":   1.4,
				"boutique": 1.3,
				"hotel":    1.1,
				"hostel":   0.3,
			},
			"budget_backpacker": {
				"hostel":     1.5,
				"guesthouse": 1.3,
				"apartment":  1.1,
				"resort":     0.5,
			},
			"family_traveler": {
				"apartment": 1.3,
				"resort":    1.2,
				"hostel":    0.6,
			},
			"cultural_explorer": {
				"boutique":   1.3,
				"guesthouse": 1.2,
			},
			"adventurer": {
				"chalet": 1.3,
				"hostel": 1.1,
			},
			"foodie": {
				"boutique": 1.1,
			},
		},
	}
}
