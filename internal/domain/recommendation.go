package domain

import "time"

// RecommendationItem is one ranked result with its score breakdown,
// flattened for storage and serialization.
type RecommendationItem struct {
	ItemID       string   `json:"item_id"`
	Domain       string   `json:"domain"`
	Rank         int      `json:"rank"`
	Score        float64  `json:"score"`
	Similarity   float64  `json:"similarity"`
	Popularity   float64  `json:"popularity"`
	Quality      float64  `json:"quality"`
	Contextual   float64  `json:"contextual"`
	SegmentBoost float64  `json:"segment_boost"`
	Reasons      []string `json:"reasons,omitempty"`
}

// RecommendationResult is the full ranked list produced for one user
// in one domain.
type RecommendationResult struct {
	UserID      int64                `json:"user_id"`
	Domain      string               `json:"domain"`
	Items       []RecommendationItem `json:"items"`
	GeneratedAt time.Time            `json:"generated_at"`
	FromCache   bool                 `json:"from_cache"`
}

// BatchUserResult records the outcome of precomputing one user's
// recommendations during a batch run.
type BatchUserResult struct {
	UserID int64
	Domain string
	Count  int
	Err    error
}

// BatchSummary aggregates a full precompute run.
type BatchSummary struct {
	Users     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}
