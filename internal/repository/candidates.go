package repository

import (
	"context"
	"fmt"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/domain"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/activity"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/flight"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/stay"
)

// ListCandidates loads the candidate pool for one user in one domain.
// Items the user has already booked or rejected are excluded.
func (r *Repository) ListCandidates(ctx context.Context, dom string, userID int64, limit int) ([]engine.Item, error) {
	switch dom {
	case "activity":
		return r.listActivities(ctx, userID, limit)
	case "flight":
		return r.listFlights(ctx, userID, limit)
	case "accommodation":
		return r.listAccommodations(ctx, userID, limit)
	}
	return nil, fmt.Errorf("list candidates: %w: %s", domain.ErrUnknownDomain, dom)
}

func (r *Repository) listActivities(ctx context.Context, userID int64, limit int) ([]engine.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.title, a.category, a.user_rating, a.review_count, a.price,
			a.currency, a.duration_hours, a.indoor, a.group_friendly, a.family_friendly,
			a.tags, a.popular_choice, a.free_cancellation, a.instant_confirmation, a.bookings
		FROM activities a
		LEFT JOIN interactions i
			ON i.item_id = a.id AND i.user_id = $1 AND i.domain = 'activity'
			AND i.type IN ('BOOKED', 'REJECTED')
		WHERE i.item_id IS NULL
		ORDER BY a.bookings DESC
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query activities for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []engine.Item
	for rows.Next() {
		var f activity.Features
		err := rows.Scan(&f.ActivityID, &f.Title, &f.Category, &f.UserRating, &f.ReviewCount,
			&f.Price, &f.Currency, &f.DurationHours, &f.Indoor, &f.GroupFriendly,
			&f.FamilyFriendly, &f.Tags, &f.PopularChoice, &f.FreeCancellation,
			&f.InstantConfirmation, &f.Bookings)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return items, nil
}

func (r *Repository) listFlights(ctx context.Context, userID int64, limit int) ([]engine.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.carrier, f.flight_number, f.cabin_class, f.origin, f.destination,
			f.price, f.currency, f.stops, f.duration_minutes, f.on_time_rate,
			f.seat_pitch_inches, f.carrier_rating, f.review_count, f.refundable,
			f.loyalty_program, f.popular_route
		FROM flights f
		LEFT JOIN interactions i
			ON i.item_id = f.id AND i.user_id = $1 AND i.domain = 'flight'
			AND i.type IN ('BOOKED', 'REJECTED')
		WHERE i.item_id IS NULL
		ORDER BY f.price ASC
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query flights for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []engine.Item
	for rows.Next() {
		var f flight.Features
		err := rows.Scan(&f.OfferID, &f.Carrier, &f.FlightNumber, &f.CabinClass, &f.Origin,
			&f.Destination, &f.Price, &f.Currency, &f.Stops, &f.DurationMinutes,
			&f.OnTimeRate, &f.SeatPitchInches, &f.CarrierRating, &f.ReviewCount,
			&f.Refundable, &f.LoyaltyProgram, &f.PopularRoute)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flights: %w", err)
	}
	return items, nil
}

func (r *Repository) listAccommodations(ctx context.Context, userID int64, limit int) ([]engine.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.kind, s.stars, s.guest_rating, s.review_count,
			s.price_per_night, s.currency, s.amenities, s.distance_to_center_km,
			s.max_guests, s.breakfast_included, s.free_cancellation, s.guest_favorite
		FROM accommodations s
		LEFT JOIN interactions i
			ON i.item_id = s.id AND i.user_id = $1 AND i.domain = 'accommodation'
			AND i.type IN ('BOOKED', 'REJECTED')
		WHERE i.item_id IS NULL
		ORDER BY s.review_count DESC
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query accommodations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []engine.Item
	for rows.Next() {
		var f stay.Features
		err := rows.Scan(&f.PropertyID, &f.Name, &f.Kind, &f.Stars, &f.GuestRating,
			&f.ReviewCount, &f.PricePerNight, &f.Currency, &f.Amenities,
			&f.DistanceToCenterKm, &f.MaxGuests, &f.BreakfastIncluded,
			&f.FreeCancellation, &f.GuestFavorite)
		if err != nil {
			return nil, fmt.Errorf("scan accommodation: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accommodations: %w", err)
	}
	return items, nil
}
