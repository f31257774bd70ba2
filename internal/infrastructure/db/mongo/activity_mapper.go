package mongo

import (
	"time"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// created_at is stored as unix milliseconds.
func toActivityDoc(a *domain.Activity) activityDoc {
	return activityDoc{
		ActorID:   a.ActorID,
		Actor:     a.Actor,
		Kind:      string(a.Kind),
		Target:    a.Target,
		CreatedAt: a.CreatedAt.UTC().UnixMilli(),
	}
}

func (d activityDoc) toDomain() *domain.Activity {
	return &domain.Activity{
		ActorID:   d.ActorID,
		Actor:     d.Actor,
		Kind:      domain.ActivityKind(d.Kind),
		Target:    d.Target,
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
	}
}
