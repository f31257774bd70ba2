package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// ActivityRepository is the append-only activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	// ListByActor returns at most limit entries of the user actorID, newest first.
	ListByActor(ctx context.Context, actorID int64, limit int) ([]*domain.Activity, error)
}
