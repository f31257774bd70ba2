package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// FollowRepository stores the follow graph as (follower_id, followee_id)
// rows; the primary key keeps edges unique.
type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) ports.FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert follow: %w", translate(err))
	}
	return nil
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC, u.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return collectUsers(rows)
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return collectUsers(rows)
}
