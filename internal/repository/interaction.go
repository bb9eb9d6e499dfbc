package repository

import (
	"context"
	"fmt"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/domain"
)

// AddInteraction records a user action against an item.
func (r *Repository) AddInteraction(ctx context.Context, in domain.Interaction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO interactions (user_id, item_id, domain, type)
		 VALUES ($1, $2, $3, $4)`,
		in.UserID, in.ItemID, in.Domain, in.Type,
	)
	if err != nil {
		return fmt.Errorf("insert interaction user=%d item=%s: %w", in.UserID, in.ItemID, err)
	}
	return nil
}
