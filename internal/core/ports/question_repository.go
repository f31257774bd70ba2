package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// ListQuestionsFilter carries the query parameters for listing questions.
type ListQuestionsFilter struct {
	OwnerID  int64  // 0 = any owner
	Search   string // optional: partial match on title or body
	ViewerID int64  // used for UserHasAnswered; 0 = anonymous
	Page     int    // 1-based
	Limit    int
}

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	// Create inserts q and fills its ID and timestamps. A slug collision
	// returns ErrSlugTaken so the caller can retry with a new suffix.
	Create(ctx context.Context, q *domain.Question) error
	FindBySlug(ctx context.Context, slug string, viewerID int64) (*domain.Question, error)
	List(ctx context.Context, filter ListQuestionsFilter) ([]*domain.Question, int64, error)
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id int64) error
}
