package engine

import (
	"fmt"
	"math"
)

// Dimensions is the size of the shared preference space. Users and items
// are compared in the same 8 axes, in this fixed order.
const Dimensions = 8

const (
	DimClimate = iota
	DimCulture
	DimBudget
	DimActivity
	DimGroup
	DimUrban
	DimGastronomy
	DimPopularity
)

var dimensionNames = [Dimensions]string{
	"climate",
	"culture",
	"budget",
	"activity",
	"group",
	"urban",
	"gastronomy",
	"popularity",
}

// DimensionName returns the canonical name of a vector axis.
func DimensionName(dim int) string {
	if dim < 0 || dim >= Dimensions {
		return "unknown"
	}
	return dimensionNames[dim]
}

// Vector is a point in the canonical preference space. Every component
// must be in [0,1]; producers are expected to clamp before handing a
// vector to the engine.
type Vector []float64

// NewVector returns a zero vector of the canonical size.
func NewVector() Vector {
	return make(Vector, Dimensions)
}

// Validate checks dimensionality and component range.
func (v Vector) Validate() error {
	if len(v) != Dimensions {
		return fmt.Errorf("%w: got %d dimensions, want %d", ErrDimensionMismatch, len(v), Dimensions)
	}
	for i, c := range v {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return fmt.Errorf("dimension %s out of range: %f", DimensionName(i), c)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Cosine computes cosine similarity between two vectors, clamped to [0,1].
// A zero-norm vector yields 0. Mismatched lengths are a caller bug and
// surface as ErrDimensionMismatch rather than a silent skip.
func Cosine(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return Clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// Clamp01 bounds a value to [0,1]. NaN clamps to 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
