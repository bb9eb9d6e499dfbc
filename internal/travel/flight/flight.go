// Package flight adapts flight inventory to the generic
// personalization engine.
package flight

import (
	"fmt"
	"strings"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
)

// Features is one flight offer as fetched from inventory search.
type Features struct {
	OfferID         string
	Carrier         string
	FlightNumber    string
	CabinClass      string // economy, premium_economy, business, first
	Origin          string
	Destination     string
	Price           float64
	Currency        string
	Stops           int
	DurationMinutes int
	OnTimeRate      float64 // [0,1], 0 means unknown
	SeatPitchInches float64
	CarrierRating   float64 // [0,5], 0 means unrated
	ReviewCount     int
	Refundable      bool
	LoyaltyProgram  bool
	PopularRoute    bool
}

// Meta implements engine.Item. Flights are categorized by cabin class
// for segment boosts.
func (f Features) Meta() engine.ItemMeta {
	return engine.ItemMeta{
		ID:       f.OfferID,
		Category: strings.ToLower(f.CabinClass),
		Rating:   f.CarrierRating,
		Rated:    f.CarrierRating > 0,
		Reviews:  f.ReviewCount,
		Price:    f.Price,
		Currency: f.Currency,
	}
}

// cabinLevel places a cabin class on the budget/comfort scale.
var cabinLevel = map[string]float64{
	"economy":         0.2,
	"premium_economy": 0.5,
	"business":        0.8,
	"first":           0.95,
}

// Adapter implements engine.DomainAdapter for flights.
type Adapter struct{}

func (Adapter) Domain() string { return "flight" }

// Vectorize maps a flight into the shared space. A flight says little
// about experience preferences, so most axes stay neutral; the budget
// and popularity axes carry the real signal.
func (Adapter) Vectorize(item engine.Item, cfg engine.VectorizationConfig, referencePrice float64) (engine.Vector, error) {
	f, ok := item.(Features)
	if !ok {
		return nil, fmt.Errorf("flight: unexpected item type %T", item)
	}

	v := engine.NewVector()
	v[engine.DimClimate] = 0.5
	v[engine.DimCulture] = 0.5
	v[engine.DimActivity] = 0.5
	v[engine.DimGroup] = 0.5
	v[engine.DimUrban] = 0.5
	v[engine.DimGastronomy] = 0.5

	level, ok := cabinLevel[strings.ToLower(f.CabinClass)]
	if !ok {
		level = 0.5
	}
	priceWeight := cfg.Indicator("price_weight", 0.7)
	cabinWeight := cfg.Indicator("cabin_weight", 0.3)
	total := priceWeight + cabinWeight
	if total == 0 {
		total, priceWeight, cabinWeight = 1, 1, 0
	}
	v[engine.DimBudget] = engine.Clamp01(
		(priceWeight*engine.PriceLevel(f.Price, referencePrice) + cabinWeight*level) / total)

	var pop engine.ScoreParts
	pop.Add(boolScore(f.PopularRoute), cfg.Indicator("popular_route", 0.5))
	pop.Add(engine.ReviewScore(f.ReviewCount), cfg.Indicator("reviews", 0.5))
	v[engine.DimPopularity] = pop.Score(0.5)

	return v, nil
}

// PopularityScore blends carrier rating, review volume and the
// popular-route flag.
func (Adapter) PopularityScore(item engine.Item, cfg engine.ScoringConfig) float64 {
	meta := item.Meta()
	var parts engine.ScoreParts
	if meta.Rated {
		parts.Add(engine.RatingScore(meta.Rating, cfg.RatingBaseline), cfg.Popularity.Rating)
	}
	if meta.Reviews > 0 {
		parts.Add(engine.ReviewScore(meta.Reviews), cfg.Popularity.Reviews)
	}
	if f, ok := item.(Features); ok {
		parts.Add(boolScore(f.PopularRoute), cfg.Popularity.Flag)
	}
	return parts.Score(0)
}

// QualityScore rates operational reliability and comfort.
func (Adapter) QualityScore(item engine.Item, weights engine.QualityWeights) float64 {
	f, ok := item.(Features)
	if !ok {
		return 0
	}
	var parts engine.ScoreParts
	if f.OnTimeRate > 0 {
		parts.Add(f.OnTimeRate, weights["on_time"])
	}
	parts.Add(directnessScore(f.Stops), weights["directness"])
	parts.Add(boolScore(f.Refundable), weights["refundable"])
	if f.SeatPitchInches > 0 {
		parts.Add(seatPitchScore(f.SeatPitchInches), weights["seat_pitch"])
	}
	return parts.Score(0.5)
}

// ContextualScore rates the offer against the trip constraints.
func (Adapter) ContextualScore(item engine.Item, trip *engine.TripContext, weights engine.ContextualWeights) float64 {
	f, ok := item.(Features)
	if !ok || trip == nil {
		return 0.5
	}

	var parts engine.ScoreParts
	parts.Add(durationFit(f.DurationMinutes, trip), weights.Duration)
	parts.Add(budgetFit(f.Price, trip), weights.Budget)
	parts.Add(purposeFit(f, trip), weights.Companion)
	return parts.Score(0.5)
}

// Highlights returns flight reason strings for the explainer.
func (Adapter) Highlights(item engine.Item, trip *engine.TripContext) []string {
	f, ok := item.(Features)
	if !ok {
		return nil
	}
	var out []string
	if f.Stops == 0 {
		out = append(out, "Direct flight, no layovers")
	}
	if f.OnTimeRate >= 0.85 {
		out = append(out, "Strong on-time record")
	}
	if len(out) < 2 && f.Refundable {
		out = append(out, "Fully refundable fare")
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

// durationFit discourages very long itineraries on short trips.
func durationFit(minutes int, trip *engine.TripContext) float64 {
	if minutes <= 0 || trip.DurationDays <= 0 {
		return 0.5
	}
	hours := float64(minutes) / 60.0
	if trip.DurationDays <= 3 && hours > 8 {
		return 0.2
	}
	switch {
	case hours <= 4:
		return 1.0
	case hours <= 10:
		return 1.0 - (hours-4)/6*0.4
	default:
		return 0.5
	}
}

// budgetFit compares the fare against the whole trip budget; flights
// are a one-off cost, not a daily one.
func budgetFit(price float64, trip *engine.TripContext) float64 {
	if trip.BudgetPerDay <= 0 || trip.DurationDays <= 0 {
		return 0.5
	}
	tripBudget := trip.BudgetPerDay * float64(trip.DurationDays)
	ratio := price / tripBudget
	switch {
	case ratio <= 0.2:
		return 1.0
	case ratio <= 0.5:
		return 1.0 - (ratio-0.2)/0.3*0.6
	default:
		return 0.2
	}
}

func purposeFit(f Features, trip *engine.TripContext) float64 {
	class := strings.ToLower(f.CabinClass)
	if trip.Purpose == "business" {
		switch {
		case class == "business" || class == "first":
			return 1.0
		case f.Stops == 0:
			return 0.8
		default:
			return 0.4
		}
	}
	// Leisure and family trips favor cheap, simple itineraries.
	if trip.Companions == "family" && f.Stops > 1 {
		return 0.3
	}
	if class == "economy" || class == "premium_economy" {
		return 0.8
	}
	return 0.5
}

func directnessScore(stops int) float64 {
	switch {
	case stops <= 0:
		return 1.0
	case stops == 1:
		return 0.6
	default:
		return 0.2
	}
}

// seatPitchScore maps seat pitch to comfort, 28" cramped to 38" roomy.
func seatPitchScore(inches float64) float64 {
	return engine.Clamp01((inches - 28) / 10)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

var _ engine.DomainAdapter = Adapter{}
