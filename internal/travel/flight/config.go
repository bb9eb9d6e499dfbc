package flight

import "github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"

// DefaultConfig is the hand-authored baseline for the flight engine.
// configs/engine/flight.yaml overrides pieces of it at load time.
func DefaultConfig() engine.Config {
	scoring := engine.DefaultScoringConfig()
	scoring.Weights = engine.ComponentWeights{
		Similarity: 0.30,
		Popularity: 0.20,
		Quality:    0.30,
		Contextual: 0.20,
	}
	scoring.Quality = engine.QualityWeights{
		"on_time":    0.40,
		"directness": 0.30,
		"refundable": 0.15,
		"seat_pitch": 0.15,
	}
	// Flight vectors cluster tightly, so lean harder on novelty.
	scoring.MMRLambda = 0.6
	scoring.MinSimilarity = 0.1

	return engine.Config{
		Scoring: scoring,
		Vectorization: engine.VectorizationConfig{
			ReferencePrice: 320, // EUR, typical medium-haul return
		},
		Boosts: engine.SegmentBoostTable{
			"luxury_seeker": {
				"first":           1.5,
				"business":        1.4,
				"premium_economy": 1.1,
				"economy":         0.7,
			},
			"budget_backpacker": {
				"economy":  1.3,
				"business": 0.5,
				"first":    0.4,
			},
			"family_traveler": {
				"economy":         1.2,
				"premium_economy": 1.1,
			},
		},
	}
}
