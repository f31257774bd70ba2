package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// ListQuestionsInput carries all parameters for the list endpoint. Viewer may
// be nil for anonymous callers.
type ListQuestionsInput struct {
	Viewer *domain.User
	Owner  string // optional username filter
	Search string
	Page   int
	Limit  int
}

// ListQuestionsResult is returned by QuestionService.List.
type ListQuestionsResult struct {
	Items      []*domain.Question
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateQuestionInput is a partial update; the slug is never changed.
type UpdateQuestionInput struct {
	Title *string
	Body  *string
}

// QuestionService covers question CRUD. Reads are open; writes are limited
// to the owner.
type QuestionService interface {
	List(ctx context.Context, input ListQuestionsInput) (*ListQuestionsResult, error)
	Get(ctx context.Context, viewer *domain.User, slug string) (*domain.Question, error)
	Create(ctx context.Context, owner *domain.User, title, body string) (*domain.Question, error)
	Update(ctx context.Context, current *domain.User, slug string, input UpdateQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, current *domain.User, slug string) error
}
