package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// AnswerService covers answers and likes.
type AnswerService interface {
	List(ctx context.Context, viewer *domain.User, slug string) ([]*domain.Answer, error)
	Create(ctx context.Context, owner *domain.User, slug, body string) (*domain.Answer, error)
	Get(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Answer, error)
	Update(ctx context.Context, current *domain.User, id uuid.UUID, body string) (*domain.Answer, error)
	Delete(ctx context.Context, current *domain.User, id uuid.UUID) error

	ToggleLike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error)
	Like(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error)
	Unlike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error)
}
