package engine

import (
	"fmt"
	"math"
)

// maxReasons caps the explanation list. The list is truncated, never
// re-sorted: rule priority is the only ordering mechanism.
const maxReasons = 5

// Explanation rule thresholds, in priority order.
const (
	excellentMatchThreshold = 0.90
	greatMatchThreshold     = 0.75
	boostReasonThreshold    = 1.15
	popularReasonThreshold  = 0.75
	dimHighAgreement        = 0.7
	dimLowAgreement         = 0.3
	activityPaceTolerance   = 0.15
)

// explain derives the ordered reason list for one selected candidate
// from its score breakdown and vector. Rules run in a fixed priority
// order; each either appends one string or is skipped.
func (e *Engine) explain(c *ScoredCandidate, user Vector, segment string, trip *TripContext) []string {
	reasons := make([]string, 0, maxReasons)
	bd := c.Breakdown

	switch {
	case bd.Similarity >= excellentMatchThreshold:
		reasons = append(reasons, "Excellent match for your travel preferences")
	case bd.Similarity >= greatMatchThreshold:
		reasons = append(reasons, "Great match for your travel style")
	}

	if bd.SegmentBoost >= boostReasonThreshold && segment != "" {
		reasons = append(reasons, fmt.Sprintf("A favorite among %s travelers", segmentLabel(segment)))
	}

	if bd.Popularity >= popularReasonThreshold {
		reasons = append(reasons, "Highly rated by other travelers")
	}

	for _, h := range e.adapter.Highlights(c.Item, trip) {
		if h != "" {
			reasons = append(reasons, h)
		}
	}

	reasons = append(reasons, dimensionReasons(user, c.Vector)...)

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// dimensionReasons checks user/item agreement on individual axes, in a
// fixed order so fixtures stay reproducible.
func dimensionReasons(user, item Vector) []string {
	if len(user) != Dimensions || len(item) != Dimensions {
		return nil
	}

	var out []string

	if user[DimGastronomy] > dimHighAgreement && item[DimGastronomy] > dimHighAgreement {
		out = append(out, "Excellent culinary scene for a food lover like you")
	}

	if user[DimActivity] >= 0.6 && math.Abs(user[DimActivity]-item[DimActivity]) <= activityPaceTolerance {
		out = append(out, "Matches your active travel pace")
	}

	switch {
	case user[DimCulture] > dimHighAgreement && item[DimCulture] > dimHighAgreement:
		out = append(out, "Rich cultural experience to match your interests")
	case user[DimCulture] < dimLowAgreement && item[DimCulture] < dimLowAgreement:
		out = append(out, "Strong nature focus, just the way you like it")
	}

	switch {
	case user[DimUrban] > dimHighAgreement && item[DimUrban] > dimHighAgreement:
		out = append(out, "Right in the urban buzz you enjoy")
	case user[DimUrban] < dimLowAgreement && item[DimUrban] < dimLowAgreement:
		out = append(out, "A quiet spot away from the crowds")
	}

	return out
}

// segmentLabel turns a snake_case segment name into display text.
func segmentLabel(segment string) string {
	out := make([]rune, 0, len(segment))
	for _, r := range segment {
		if r == '_' {
			out = append(out, ' ')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
