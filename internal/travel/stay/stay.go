// Package stay adapts accommodation inventory to the generic
// personalization engine.
package stay

import (
	"fmt"
	"strings"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
)

// Features is one accommodation as fetched from inventory.
type Features struct {
	PropertyID         string
	Name               string
	Kind               string // hotel, resort, apartment, guesthouse, boutique, hostel, chalet
	Stars              int    // [0,5], 0 means unclassified
	GuestRating        float64
	ReviewCount        int
	PricePerNight      float64
	Currency           string
	Amenities          []string
	DistanceToCenterKm float64
	MaxGuests          int
	BreakfastIncluded  bool
	FreeCancellation   bool
	GuestFavorite      bool
}

// Meta implements engine.Item.
func (f Features) Meta() engine.ItemMeta {
	return engine.ItemMeta{
		ID:       f.PropertyID,
		Category: strings.ToLower(f.Kind),
		Rating:   f.GuestRating,
		Rated:    f.GuestRating > 0,
		Reviews:  f.ReviewCount,
		Price:    f.PricePerNight,
		Currency: f.Currency,
	}
}

// HasAmenity reports whether the property lists an amenity,
// case-insensitive.
func (f Features) HasAmenity(name string) bool {
	for _, a := range f.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

var kindClimate = map[string]float64{
	"resort": 0.85,
	"chalet": 0.15,
}

var kindCulture = map[string]float64{
	"boutique":   0.75,
	"guesthouse": 0.7,
	"resort":     0.3,
	"hostel":     0.55,
}

func kindAxis(table map[string]float64, kind string) float64 {
	if v, ok := table[strings.ToLower(kind)]; ok {
		return v
	}
	return 0.5
}

// Adapter implements engine.DomainAdapter for accommodations.
type Adapter struct{}

func (Adapter) Domain() string { return "accommodation" }

// Vectorize maps a property into the shared preference space.
func (Adapter) Vectorize(item engine.Item, cfg engine.VectorizationConfig, referencePrice float64) (engine.Vector, error) {
	f, ok := item.(Features)
	if !ok {
		return nil, fmt.Errorf("stay: unexpected item type %T", item)
	}

	v := engine.NewVector()
	v[engine.DimClimate] = kindAxis(kindClimate, f.Kind)
	v[engine.DimCulture] = kindAxis(kindCulture, f.Kind)

	starsWeight := cfg.Indicator("stars_weight", 0.2)
	priceWeight := cfg.Indicator("price_weight", 0.8)
	total := starsWeight + priceWeight
	if total == 0 {
		total, priceWeight, starsWeight = 1, 1, 0
	}
	v[engine.DimBudget] = engine.Clamp01(
		(priceWeight*engine.PriceLevel(f.PricePerNight, referencePrice) +
			starsWeight*float64(f.Stars)/5.0) / total)

	var active engine.IndicatorSet
	active.Add(f.HasAmenity("gym"), cfg.Indicator("gym", 0.4))
	active.Add(f.HasAmenity("bike_rental"), cfg.Indicator("bike_rental", 0.3))
	active.Add(f.HasAmenity("ski_storage"), cfg.Indicator("ski_storage", 0.3))
	v[engine.DimActivity] = active.Value()

	v[engine.DimGroup] = groupCapacity(f.MaxGuests)
	v[engine.DimUrban] = urbanProximity(f.DistanceToCenterKm)

	var gastro engine.IndicatorSet
	gastro.Add(f.BreakfastIncluded, cfg.Indicator("breakfast", 0.4))
	gastro.Add(f.HasAmenity("restaurant"), cfg.Indicator("restaurant", 0.4))
	gastro.Add(f.HasAmenity("kitchen"), cfg.Indicator("kitchen", 0.2))
	v[engine.DimGastronomy] = gastro.Value()

	var pop engine.ScoreParts
	pop.Add(boolScore(f.GuestFavorite), cfg.Indicator("guest_favorite", 0.5))
	pop.Add(engine.ReviewScore(f.ReviewCount), cfg.Indicator("reviews", 0.5))
	v[engine.DimPopularity] = pop.Score(0.5)

	return v, nil
}

// PopularityScore blends guest rating, review volume and the
// guest-favorite flag.
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
		parts.Add(boolScore(f.GuestFavorite), cfg.Popularity.Flag)
	}
	return parts.Score(0)
}

// QualityScore rates classification, flexibility and amenity coverage.
func (Adapter) QualityScore(item engine.Item, weights engine.QualityWeights) float64 {
	f, ok := item.(Features)
	if !ok {
		return 0
	}
	var parts engine.ScoreParts
	if f.Stars > 0 {
		parts.Add(float64(f.Stars)/5.0, weights["stars"])
	}
	parts.Add(boolScore(f.FreeCancellation), weights["free_cancellation"])
	parts.Add(amenityCoverage(f), weights["amenities"])
	parts.Add(boolScore(f.GuestRating >= 4.5), weights["top_rated"])
	return parts.Score(0.5)
}

// coreAmenities is the checklist used for the amenity-coverage signal.
var coreAmenities = []string{"wifi", "air_conditioning", "parking", "pool", "restaurant", "gym"}

func amenityCoverage(f Features) float64 {
	hits := 0
	for _, a := range coreAmenities {
		if f.HasAmenity(a) {
			hits++
		}
	}
	return float64(hits) / float64(len(coreAmenities))
}

// ContextualScore rates how the property fits the trip.
func (Adapter) ContextualScore(item engine.Item, trip *engine.TripContext, weights engine.ContextualWeights) float64 {
	f, ok := item.(Features)
	if !ok || trip == nil {
		return 0.5
	}

	var parts engine.ScoreParts
	parts.Add(stayLengthFit(f, trip.DurationDays), weights.Duration)
	parts.Add(budgetFit(f.PricePerNight, trip.BudgetPerDay), weights.Budget)
	parts.Add(companionFit(f, trip), weights.Companion)
	return parts.Score(0.5)
}

// Highlights returns accommodation reason strings for the explainer.
func (Adapter) Highlights(item engine.Item, trip *engine.TripContext) []string {
	f, ok := item.(Features)
	if !ok {
		return nil
	}
	var out []string
	if f.GuestFavorite {
		out = append(out, "A consistent guest favorite")
	}
	if f.DistanceToCenterKm <= 1.0 {
		out = append(out, "Steps from the city center")
	}
	if len(out) < 2 && f.BreakfastIncluded {
		out = append(out, "Breakfast included")
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

// stayLengthFit: apartments and kitchens suit longer stays, hotels suit
// short ones.
func stayLengthFit(f Features, tripDays int) float64 {
	if tripDays <= 0 {
		return 0.5
	}
	longStay := tripDays >= 7
	kind := strings.ToLower(f.Kind)
	selfCatering := kind == "apartment" || f.HasAmenity("kitchen")
	switch {
	case longStay && selfCatering:
		return 1.0
	case longStay && !selfCatering:
		return 0.5
	case !longStay && kind == "apartment":
		return 0.6
	default:
		return 0.9
	}
}

func budgetFit(pricePerNight, budgetPerDay float64) float64 {
	if budgetPerDay <= 0 {
		return 0.5
	}
	// Lodging typically claims about half the daily spend.
	ratio := pricePerNight / (budgetPerDay * 0.5)
	switch {
	case ratio <= 0.8:
		return 1.0
	case ratio <= 1.2:
		return 0.8
	case ratio <= 2.0:
		return 0.8 - (ratio-1.2)/0.8*0.6
	default:
		return 0.1
	}
}

func companionFit(f Features, trip *engine.TripContext) float64 {
	needed := guestsNeeded(trip.Companions)
	if f.MaxGuests > 0 && f.MaxGuests < needed {
		return 0.1
	}
	switch trip.Companions {
	case "family":
		if f.HasAmenity("family_rooms") || f.HasAmenity("kitchen") {
			return 1.0
		}
		return 0.6
	case "group":
		if f.MaxGuests >= 4 {
			return 0.9
		}
		return 0.5
	case "solo":
		if strings.EqualFold(f.Kind, "hostel") || strings.EqualFold(f.Kind, "guesthouse") {
			return 0.9
		}
		return 0.7
	default:
		return 0.7
	}
}

func guestsNeeded(companions string) int {
	switch companions {
	case "solo":
		return 1
	case "couple":
		return 2
	case "family":
		return 3
	case "group":
		return 4
	default:
		return 1
	}
}

// groupCapacity scales sleeping capacity onto the group axis: 1 guest
// is solo territory, 6+ comfortably hosts a group.
func groupCapacity(maxGuests int) float64 {
	if maxGuests <= 0 {
		return 0.5
	}
	return engine.Clamp01(float64(maxGuests-1) / 5.0)
}

// urbanProximity maps distance to center onto the urban axis.
func urbanProximity(km float64) float64 {
	if km < 0 {
		return 0.5
	}
	return engine.Clamp01(1.0 - km/10.0)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

var _ engine.DomainAdapter = Adapter{}
