package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/domain"
)

// Get a user's preference vector produced by the profiling pipeline
func (r *Repository) GetUserVector(ctx context.Context, userID int64) (*domain.UserVector, error) {
	uv := &domain.UserVector{}

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, vector, primary_segment, segment_confidence, updated_at
		 FROM user_vectors WHERE user_id = $1`,
		userID,
	).Scan(&uv.UserID, &uv.Vector, &uv.PrimarySegment, &uv.SegmentConfidence, &uv.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVectorNotFound
		}
		return nil, fmt.Errorf("query user vector user_id=%d: %w", userID, err)
	}

	return uv, nil
}

// Get user ids for page
func (r *Repository) GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM user_vectors ORDER BY user_id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query user ids for page %d: %w", page, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

// Count users with a computed vector
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_vectors`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count user vectors: %w", err)
	}
	return total, nil
}
