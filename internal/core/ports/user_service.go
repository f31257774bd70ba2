package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// UpdateProfileInput is a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Password  *string
}

// UserService covers profiles and the follow graph.
type UserService interface {
	Profile(ctx context.Context, current *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, current *domain.User, input UpdateProfileInput) (*domain.User, error)
	Detail(ctx context.Context, viewer *domain.User, username string) (*domain.UserDetail, error)

	Follow(ctx context.Context, current *domain.User, username string) error
	Unfollow(ctx context.Context, current *domain.User, username string) error
	Followers(ctx context.Context, username string) ([]*domain.User, error)
	Following(ctx context.Context, username string) ([]*domain.User, error)

	Activity(ctx context.Context, username string, limit int) ([]*domain.Activity, error)
}
