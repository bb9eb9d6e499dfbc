// Package activity adapts the bookable-activity inventory to the
// generic personalization engine.
package activity

import (
	"fmt"
	"strings"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
)

// Features is one activity as fetched from inventory. The engine only
// sees it through the adapter.
type Features struct {
	ActivityID         string
	Title              string
	Category           string
	UserRating         float64 // [0,5], 0 means unrated
	ReviewCount        int
	Price              float64
	Currency           string
	DurationHours      float64
	Indoor             bool
	GroupFriendly      bool
	FamilyFriendly     bool
	Tags               []string
	PopularChoice      bool
	FreeCancellation   bool
	InstantConfirmation bool
	Bookings           int
}

// Meta implements engine.Item.
func (f Features) Meta() engine.ItemMeta {
	return engine.ItemMeta{
		ID:       f.ActivityID,
		Category: f.Category,
		Rating:   f.UserRating,
		Rated:    f.UserRating > 0,
		Reviews:  f.ReviewCount,
		Price:    f.Price,
		Currency: f.Currency,
	}
}

// HasTag reports whether the activity carries a tag, case-insensitive.
func (f Features) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Categorical axis buckets. Unknown categories land on the neutral 0.5.
var categoryCulture = map[string]float64{
	"museum":         1.0,
	"gallery":        0.95,
	"historical":     0.9,
	"city_tour":      0.8,
	"theater":        0.85,
	"food_tour":      0.6,
	"cooking_class":  0.55,
	"wine_tasting":   0.5,
	"boat_trip":      0.35,
	"beach":          0.15,
	"water_sport":    0.1,
	"wildlife":       0.05,
	"hiking":         0.0,
	"safari":         0.05,
	"extreme_sport":  0.1,
	"skiing":         0.1,
	"spa":            0.4,
}

var categoryActivityLevel = map[string]float64{
	"extreme_sport": 1.0,
	"hiking":        0.9,
	"skiing":        0.9,
	"water_sport":   0.85,
	"safari":        0.6,
	"city_tour":     0.5,
	"boat_trip":     0.4,
	"food_tour":     0.4,
	"wildlife":      0.45,
	"beach":         0.3,
	"museum":        0.3,
	"gallery":       0.25,
	"theater":       0.2,
	"historical":    0.35,
	"cooking_class": 0.3,
	"wine_tasting":  0.2,
	"spa":           0.05,
}

var categoryUrban = map[string]float64{
	"museum":        0.9,
	"gallery":       0.9,
	"theater":       0.95,
	"city_tour":     1.0,
	"food_tour":     0.85,
	"cooking_class": 0.7,
	"wine_tasting":  0.5,
	"historical":    0.6,
	"spa":           0.5,
	"boat_trip":     0.3,
	"beach":         0.2,
	"water_sport":   0.2,
	"wildlife":      0.05,
	"hiking":        0.0,
	"safari":        0.0,
	"skiing":        0.1,
	"extreme_sport": 0.2,
}

var categoryGastronomy = map[string]float64{
	"food_tour":     1.0,
	"cooking_class": 1.0,
	"wine_tasting":  0.95,
	"city_tour":     0.5,
	"boat_trip":     0.4,
}

func categoryAxis(table map[string]float64, category string) float64 {
	if v, ok := table[strings.ToLower(category)]; ok {
		return v
	}
	return 0.5
}

// Adapter implements engine.DomainAdapter for activities.
type Adapter struct{}

func (Adapter) Domain() string { return "activity" }

// Vectorize maps one activity into the shared preference space.
func (Adapter) Vectorize(item engine.Item, cfg engine.VectorizationConfig, referencePrice float64) (engine.Vector, error) {
	f, ok := item.(Features)
	if !ok {
		return nil, fmt.Errorf("activity: unexpected item type %T", item)
	}

	v := engine.NewVector()

	// Outdoor activities lean warm; winter sports override the axis.
	if f.Category == "skiing" || f.HasTag("winter") {
		v[engine.DimClimate] = 0.1
	} else {
		var climate engine.IndicatorSet
		climate.Add(!f.Indoor, cfg.Indicator("outdoor", 0.5))
		climate.Add(f.HasTag("beach") || f.Category == "beach" || f.Category == "water_sport",
			cfg.Indicator("warm_weather", 0.3))
		v[engine.DimClimate] = climate.Value()
	}

	v[engine.DimCulture] = categoryAxis(categoryCulture, f.Category)
	v[engine.DimBudget] = engine.PriceLevel(f.Price, referencePrice)
	v[engine.DimActivity] = categoryAxis(categoryActivityLevel, f.Category)

	var group engine.IndicatorSet
	group.Add(f.GroupFriendly, cfg.Indicator("group_friendly", 0.6))
	group.Add(f.FamilyFriendly, cfg.Indicator("family_friendly", 0.4))
	v[engine.DimGroup] = group.Value()

	v[engine.DimUrban] = categoryAxis(categoryUrban, f.Category)

	gastro := categoryAxis(categoryGastronomy, f.Category)
	if gastro == 0.5 && f.HasTag("food") {
		gastro = 0.75
	}
	v[engine.DimGastronomy] = gastro

	var pop engine.ScoreParts
	pop.Add(boolScore(f.PopularChoice), cfg.Indicator("popular_choice", 0.6))
	pop.Add(engine.ReviewScore(f.Bookings), cfg.Indicator("bookings", 0.4))
	v[engine.DimPopularity] = pop.Score(0.5)

	return v, nil
}

// PopularityScore blends rating, review volume and the popular-choice
// flag, normalized by the active sub-weights.
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
		parts.Add(boolScore(f.PopularChoice), cfg.Popularity.Flag)
	}
	return parts.Score(0)
}

// QualityScore rates booking reliability signals.
func (Adapter) QualityScore(item engine.Item, weights engine.QualityWeights) float64 {
	f, ok := item.(Features)
	if !ok {
		return 0
	}
	var parts engine.ScoreParts
	parts.Add(boolScore(f.FreeCancellation), weights["free_cancellation"])
	parts.Add(boolScore(f.InstantConfirmation), weights["instant_confirmation"])
	parts.Add(boolScore(f.ReviewCount >= 100), weights["well_reviewed"])
	parts.Add(boolScore(f.UserRating >= 4.5), weights["top_rated"])
	return parts.Score(0.5)
}

// ContextualScore rates how an activity fits the trip at hand.
func (Adapter) ContextualScore(item engine.Item, trip *engine.TripContext, weights engine.ContextualWeights) float64 {
	f, ok := item.(Features)
	if !ok || trip == nil {
		return 0.5
	}

	var parts engine.ScoreParts
	parts.Add(durationFit(f.DurationHours, trip.DurationDays), weights.Duration)
	parts.Add(budgetFit(f.Price, trip.BudgetPerDay), weights.Budget)
	parts.Add(companionFit(f, trip), weights.Companion)
	return parts.Score(0.5)
}

// Highlights returns domain reason strings for the explainer.
func (Adapter) Highlights(item engine.Item, trip *engine.TripContext) []string {
	f, ok := item.(Features)
	if !ok {
		return nil
	}
	var out []string
	if f.FreeCancellation {
		out = append(out, "Free cancellation up to 24 hours before")
	}
	if trip != nil && trip.Companions == "family" && f.FamilyFriendly {
		out = append(out, "Great for the whole family")
	}
	if len(out) == 0 && f.InstantConfirmation {
		out = append(out, "Instant confirmation, no waiting")
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

// durationFit penalizes activities that eat a large share of a short
// trip. Half-day and shorter activities always fit.
func durationFit(hours float64, tripDays int) float64 {
	if tripDays <= 0 || hours <= 0 {
		return 0.5
	}
	if hours <= 4 {
		return 1.0
	}
	// Full-day and multi-day activities need room in the itinerary.
	days := hours / 8.0
	share := days / float64(tripDays)
	switch {
	case share <= 0.15:
		return 1.0
	case share <= 0.5:
		return 1.0 - (share-0.15)/0.35*0.6
	default:
		return 0.2
	}
}

// budgetFit compares the activity price against the daily budget.
func budgetFit(price, budgetPerDay float64) float64 {
	if budgetPerDay <= 0 {
		return 0.5
	}
	ratio := price / budgetPerDay
	switch {
	case ratio <= 0.3:
		return 1.0
	case ratio <= 1.0:
		return 1.0 - (ratio-0.3)/0.7*0.5
	case ratio <= 2.0:
		return 0.5 - (ratio-1.0)*0.4
	default:
		return 0.1
	}
}

func companionFit(f Features, trip *engine.TripContext) float64 {
	switch trip.Companions {
	case "family":
		if f.FamilyFriendly {
			return 1.0
		}
		return 0.3
	case "group":
		if f.GroupFriendly {
			return 1.0
		}
		return 0.4
	case "solo":
		if f.Category == "extreme_sport" || f.Category == "hiking" || f.GroupFriendly {
			return 0.8
		}
		return 0.6
	case "couple":
		if f.Category == "wine_tasting" || f.Category == "spa" || f.Category == "food_tour" {
			return 1.0
		}
		return 0.6
	default:
		return 0.5
	}
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

var _ engine.DomainAdapter = Adapter{}
