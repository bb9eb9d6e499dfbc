package domain

import "time"

// UserVector is a user's learned taste profile: an 8-dimensional
// preference vector plus the dominant behavioral segment assigned by
// the profiling pipeline.
type UserVector struct {
	UserID            int64     `json:"user_id"`
	Vector            []float64 `json:"vector"`
	PrimarySegment    string    `json:"primary_segment"`
	SegmentConfidence float64   `json:"segment_confidence"`
	UpdatedAt         time.Time `json:"updated_at"`
}
