package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// AnswerRepository defines persistence operations for answers and their
// like-sets. viewerID is used to compute Answer.UserHasLiked; 0 = anonymous.
type AnswerRepository interface {
	// Create returns domain.ErrAlreadyAnswered when the owner already has an
	// answer on the question.
	Create(ctx context.Context, a *domain.Answer) error
	FindByID(ctx context.Context, id uuid.UUID, viewerID int64) (*domain.Answer, error)
	// ListByQuestion returns answers in creation order.
	ListByQuestion(ctx context.Context, questionID, viewerID int64) ([]*domain.Answer, error)
	ListByOwner(ctx context.Context, ownerID, viewerID int64) ([]*domain.Answer, error)
	Update(ctx context.Context, a *domain.Answer) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleLike flips userID's membership in the like-set atomically.
	ToggleLike(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error)
	Like(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error)
	Unlike(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error)
}
