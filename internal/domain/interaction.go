package domain

import "time"

// Interaction types recognized by the tracking pipeline.
const (
	InteractionViewed   = "VIEWED"
	InteractionClicked  = "CLICKED"
	InteractionBooked   = "BOOKED"
	InteractionRejected = "REJECTED"
)

// Interaction is a single user action against a recommended item.
// Booked and rejected items are excluded from future candidate pools.
type Interaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Domain    string    `json:"domain"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidInteractionType reports whether t is a recognized interaction type.
func ValidInteractionType(t string) bool {
	switch t {
	case InteractionViewed, InteractionClicked, InteractionBooked, InteractionRejected:
		return true
	}
	return false
}
