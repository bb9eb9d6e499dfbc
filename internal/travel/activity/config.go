package activity

import "github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"

// DefaultConfig is the hand-authored baseline for the activity engine.
// configs/engine/activity.yaml overrides pieces of it at load time.
func DefaultConfig() engine.Config {
	scoring := engine.DefaultScoringConfig()
	scoring.Quality = engine.QualityWeights{
		"free_cancellation":    0.40,
		"instant_confirmation": 0.25,
		"well_reviewed":        0.20,
		"top_rated":            0.15,
	}
	scoring.MMRLambda = 0.7
	scoring.MinSimilarity = 0.15

	return engine.Config{
		Scoring: scoring,
		Vectorization: engine.VectorizationConfig{
			ReferencePrice: 55, // EUR, typical city activity
		},
		Boosts: engine.SegmentBoostTable{
			"adventurer": {
				"extreme_sport": 1.5,
				"hiking":        1.4,
				"water_sport":   1.3,
				"safari":        1.3,
				"museum":        0.7,
				"spa":           0.6,
			},
			"cultural_explorer": {
				"museum":        1.5,
				"historical":    1.4,
				"gallery":       1.4,
				"theater":       1.3,
				"extreme_sport": 0.6,
			},
			"foodie": {
				"food_tour":     1.5,
				"cooking_class": 1.45,
				"wine_tasting":  1.4,
			},
			"family_traveler": {
				"wildlife":      1.3,
				"beach":         1.3,
				"boat_trip":     1.2,
				"extreme_sport": 0.5,
			},
			"luxury_seeker": {
				"spa":          1.4,
				"wine_tasting": 1.3,
				"city_tour":    1.1,
			},
			"budget_backpacker": {
				"hiking": 1.3,
				"beach":  1.2,
				"spa":    0.5,
			},
		},
	}
}
