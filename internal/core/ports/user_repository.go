package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// UserRepository persists accounts. Create and Update return
// domain.ErrEmailTaken / domain.ErrUsernameTaken on uniqueness violations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// FollowRepository stores the directed follow graph. Follow and Unfollow are
// idempotent: adding an existing edge or removing a missing one is not an
// error.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64) ([]*domain.User, error)
	ListFollowing(ctx context.Context, userID int64) ([]*domain.User, error)
}
