package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Segment archetype vectors over the 8 preference dimensions:
// climate, culture, budget, activity, group, urban, gastronomy,
// popularity. Seeded users get a jittered copy of their segment's
// archetype.
var segmentArchetypes = map[string][]float64{
	"adventurer":        {0.6, 0.3, 0.5, 0.9, 0.3, 0.2, 0.4, 0.3},
	"cultural_explorer": {0.5, 0.9, 0.5, 0.4, 0.4, 0.7, 0.6, 0.5},
	"luxury_seeker":     {0.8, 0.5, 0.9, 0.3, 0.4, 0.6, 0.8, 0.7},
	"budget_backpacker": {0.6, 0.5, 0.1, 0.7, 0.5, 0.4, 0.4, 0.3},
	"family_traveler":   {0.7, 0.5, 0.5, 0.5, 0.9, 0.5, 0.5, 0.7},
	"foodie":            {0.5, 0.6, 0.6, 0.3, 0.4, 0.7, 0.95, 0.5},
}

var segmentNames = []string{
	"adventurer", "cultural_explorer", "luxury_seeker",
	"budget_backpacker", "family_traveler", "foodie",
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE interactions, accommodations, flights, activities, user_vectors RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting user vectors")
	if err := seedUserVectors(ctx, pool, rng, 30); err != nil {
		return fmt.Errorf("seed user vectors: %w", err)
	}

	log.Println("[seed] inserting activities")
	if err := seedActivities(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}

	log.Println("[seed] inserting flights")
	if err := seedFlights(ctx, pool, rng, 40); err != nil {
		return fmt.Errorf("seed flights: %w", err)
	}

	log.Println("[seed] inserting accommodations")
	if err := seedAccommodations(ctx, pool, rng, 40); err != nil {
		return fmt.Errorf("seed accommodations: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUserVectors(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		segment := segmentNames[i%len(segmentNames)]
		archetype := segmentArchetypes[segment]

		vector := make([]float64, len(archetype))
		for d, v := range archetype {
			vector[d] = clamp01(v + (rng.Float64()-0.5)*0.2)
		}
		confidence := 0.6 + rng.Float64()*0.35

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, int64(i+1), vector, segment, math.Round(confidence*100)/100)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO user_vectors (user_id, vector, primary_segment, segment_confidence) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedActivities(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	categories := []string{"museum", "hiking", "food_tour", "water_sport", "nightlife", "sightseeing", "skiing", "wellness"}
	titles := map[string][]string{
		"museum":      {"Modern Art Museum", "National History Museum", "Science Discovery Center"},
		"hiking":      {"Coastal Cliff Trail", "Sunrise Volcano Hike", "Forest Canopy Walk"},
		"food_tour":   {"Old Town Street Food Tour", "Market & Tapas Walk", "Chocolate & Wine Pairing"},
		"water_sport": {"Catamaran Snorkel Cruise", "Sea Kayak Expedition", "Sunset Paddleboarding"},
		"nightlife":   {"Rooftop Bar Crawl", "Jazz Club Evening", "Flamenco Night Show"},
		"sightseeing": {"Hop-On Hop-Off City Tour", "Old Quarter Walking Tour", "Panoramic Cable Car"},
		"skiing":      {"Beginner Ski Day Pass", "Off-Piste Guided Tour", "Snowshoe Trek"},
		"wellness":    {"Thermal Spa Day", "Beachfront Yoga Session", "Hammam Ritual"},
	}
	tagPool := []string{"outdoor", "family", "small_group", "local_cuisine", "adrenaline", "romantic", "scenic"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		category := categories[i%len(categories)]
		titleList := titles[category]
		title := titleList[i%len(titleList)]
		if i >= len(categories)*len(titleList) {
			title = fmt.Sprintf("%s %d", title, i/len(categories)+1)
		}

		price := 15 + math.Round(math.Pow(rng.Float64(), 1.5)*185)
		rating := 0.0
		reviews := 0
		if rng.Float64() < 0.85 {
			rating = math.Round((3.2+rng.Float64()*1.8)*10) / 10
			reviews = rng.Intn(800)
		}

		tags := []string{tagPool[rng.Intn(len(tagPool))]}
		if category == "food_tour" {
			tags = append(tags, "local_cuisine")
		}

		base := len(args)
		ph := make([]string, 16)
		for p := range ph {
			ph[p] = fmt.Sprintf("$%d", base+p+1)
		}
		rows = append(rows, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			fmt.Sprintf("act-%04d", i+1), title, category, rating, reviews,
			price, "EUR", math.Round(rng.Float64()*7*10)/10+1, category == "museum",
			rng.Float64() < 0.6, rng.Float64() < 0.4, tags,
			powerLaw(rng) > 0.5, rng.Float64() < 0.7, rng.Float64() < 0.5,
			int(powerLaw(rng)*5000),
		)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO activities (id, title, category, user_rating, review_count, price,
		currency, duration_hours, indoor, group_friendly, family_friendly, tags,
		popular_choice, free_cancellation, instant_confirmation, bookings) VALUES ` +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedFlights(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	carriers := []string{"AF", "LH", "BA", "IB", "KL", "LX"}
	routes := [][2]string{
		{"CDG", "JFK"}, {"CDG", "BKK"}, {"ORY", "LIS"}, {"CDG", "NRT"},
		{"LYS", "BCN"}, {"CDG", "CUN"}, {"NCE", "LHR"}, {"CDG", "MRU"},
	}
	cabins := []string{"economy", "premium_economy", "business", "first"}
	cabinWeights := []float64{0.6, 0.2, 0.15, 0.05}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		route := routes[i%len(routes)]
		carrier := carriers[rng.Intn(len(carriers))]
		cabin := weightedChoice(rng, cabins, cabinWeights)

		basePrice := 120 + math.Pow(rng.Float64(), 1.3)*900
		switch cabin {
		case "premium_economy":
			basePrice *= 1.8
		case "business":
			basePrice *= 3.5
		case "first":
			basePrice *= 6
		}

		rating := 0.0
		reviews := 0
		if rng.Float64() < 0.7 {
			rating = math.Round((3.0+rng.Float64()*2.0)*10) / 10
			reviews = rng.Intn(2000)
		}

		base := len(args)
		ph := make([]string, 17)
		for p := range ph {
			ph[p] = fmt.Sprintf("$%d", base+p+1)
		}
		rows = append(rows, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			fmt.Sprintf("flt-%04d", i+1), carrier, fmt.Sprintf("%s%d", carrier, 100+rng.Intn(900)),
			cabin, route[0], route[1], math.Round(basePrice), "EUR", rng.Intn(3),
			90+rng.Intn(700), math.Round(rng.Float64()*100)/100, 28+rng.Float64()*8,
			rating, reviews, rng.Float64() < 0.3, rng.Float64() < 0.5, powerLaw(rng) > 0.4,
		)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO flights (id, carrier, flight_number, cabin_class, origin, destination,
		price, currency, stops, duration_minutes, on_time_rate, seat_pitch_inches,
		carrier_rating, review_count, refundable, loyalty_program, popular_route) VALUES ` +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedAccommodations(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	kinds := []string{"hotel", "resort", "apartment", "guesthouse", "boutique", "hostel", "chalet"}
	names := []string{
		"Grand Palace", "Seaside Escape", "Old Town Loft", "Mountain View Lodge",
		"Riverside Inn", "Botanical Garden Suites", "Harbor Lights", "Sunset Terrace",
	}
	amenityPool := []string{"wifi", "air_conditioning", "parking", "pool", "restaurant", "gym", "kitchen", "bike_rental", "ski_storage", "spa"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		kind := kinds[i%len(kinds)]
		name := fmt.Sprintf("%s %s", names[i%len(names)], capitalize(kind))

		stars := 0
		if kind != "apartment" && kind != "guesthouse" {
			stars = 2 + rng.Intn(4)
		}
		price := 40 + math.Pow(rng.Float64(), 1.4)*360
		if kind == "hostel" {
			price = 15 + rng.Float64()*40
		}

		rating := 0.0
		reviews := 0
		if rng.Float64() < 0.9 {
			rating = math.Round((3.0+rng.Float64()*2.0)*10) / 10
			reviews = rng.Intn(3000)
		}

		amenities := []string{"wifi"}
		for _, a := range amenityPool[1:] {
			if rng.Float64() < 0.35 {
				amenities = append(amenities, a)
			}
		}

		base := len(args)
		ph := make([]string, 15)
		for p := range ph {
			ph[p] = fmt.Sprintf("$%d", base+p+1)
		}
		rows = append(rows, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			fmt.Sprintf("acc-%04d", i+1), name, kind, stars, rating, reviews,
			math.Round(price), "EUR", amenities, math.Round(rng.Float64()*12*10)/10,
			1+rng.Intn(6), rng.Float64() < 0.4, rng.Float64() < 0.6, powerLaw(rng) > 0.6,
		)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO accommodations (id, name, kind, stars, guest_rating, review_count,
		price_per_night, currency, amenities, distance_to_center_km, max_guests,
		breakfast_included, free_cancellation, guest_favorite) VALUES ` +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func powerLaw(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
