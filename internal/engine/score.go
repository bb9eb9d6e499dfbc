package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ScoreBreakdown is the immutable component view of one final score.
// It is the sole input to explanation generation.
type ScoreBreakdown struct {
	Similarity   float64 `json:"similarity"`
	Popularity   float64 `json:"popularity"`
	Quality      float64 `json:"quality"`
	Contextual   float64 `json:"contextual"`
	SegmentBoost float64 `json:"segment_boost"`
	Final        float64 `json:"final"`
}

// ScoredCandidate is a ranked item with its vector, score breakdown and
// reasons. Rank and Reasons are assigned exactly once, after
// diversification.
type ScoredCandidate struct {
	Item      Item
	Vector    Vector
	Breakdown ScoreBreakdown
	Rank      int
	Reasons   []string
}

// neutralContextual is the contextual score used when no trip context is
// supplied. Never zero: absence of context is not a bad fit.
const neutralContextual = 0.5

// scoreCandidates computes the breakdown for every vectorized candidate,
// drops the ones under the similarity/quality thresholds, and returns
// the survivors sorted by final score descending (stable, so ties keep
// input order). A user-vector shape problem is fatal for the call; a
// single misbehaving candidate only removes itself.
func (e *Engine) scoreCandidates(user Vector, segment string, cands []candidate, trip *TripContext) ([]ScoredCandidate, []ItemError, error) {
	if err := user.Validate(); err != nil {
		return nil, nil, fmt.Errorf("user vector: %w", err)
	}

	cfg := e.cfg.Scoring
	scored := make([]ScoredCandidate, 0, len(cands))
	var errs []ItemError

	for _, c := range cands {
		bd, err := e.safeScore(user, segment, c, trip)
		if err != nil {
			// A dimension mismatch is a systemic bug, not bad item data.
			if errors.Is(err, ErrDimensionMismatch) {
				return nil, nil, err
			}
			errs = append(errs, ItemError{ItemID: c.item.Meta().ID, Stage: StageScoring, Err: err})
			continue
		}

		// Threshold filter: dropped, not scored to zero.
		if bd.Similarity < cfg.MinSimilarity || bd.Quality < cfg.MinQuality {
			continue
		}

		scored = append(scored, ScoredCandidate{
			Item:      c.item,
			Vector:    c.vector,
			Breakdown: bd,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Final > scored[j].Breakdown.Final
	})

	return scored, errs, nil
}

// safeScore computes one breakdown, converting a panicking adapter into
// a per-item error.
func (e *Engine) safeScore(user Vector, segment string, c candidate, trip *TripContext) (bd ScoreBreakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("score panic: %v", r)
		}
	}()

	cfg := e.cfg.Scoring

	similarity, err := Cosine(user, c.vector)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	popularity := Clamp01(e.adapter.PopularityScore(c.item, cfg))
	quality := Clamp01(e.adapter.QualityScore(c.item, cfg.Quality))

	contextual := neutralContextual
	if trip != nil {
		contextual = Clamp01(e.adapter.ContextualScore(c.item, trip, cfg.Contextual))
	}

	base := cfg.Weights.Similarity*similarity +
		cfg.Weights.Popularity*popularity +
		cfg.Weights.Quality*quality +
		cfg.Weights.Contextual*contextual

	boost := e.cfg.Boosts.Lookup(segment, c.item.Meta().Category)
	final := math.Min(1.0, base*boost)

	return ScoreBreakdown{
		Similarity:   similarity,
		Popularity:   popularity,
		Quality:      quality,
		Contextual:   contextual,
		SegmentBoost: boost,
		Final:        final,
	}, nil
}
