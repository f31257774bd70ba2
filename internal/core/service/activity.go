package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// activityLog writes to the activity repository without ever failing the
// calling operation.
type activityLog struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func newActivityLog(repo ports.ActivityRepository, log zerolog.Logger) activityLog {
	return activityLog{repo: repo, log: log}
}

func (a activityLog) record(ctx context.Context, actor *domain.User, kind domain.ActivityKind, target string) {
	if a.repo == nil {
		return
	}
	entry := &domain.Activity{
		ActorID:   actor.ID,
		Actor:     actor.Username,
		Kind:      kind,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.repo.Insert(ctx, entry); err != nil {
		a.log.Warn().Err(err).Int64("actor_id", actor.ID).Str("kind", string(kind)).Msg("failed to record activity")
	}
}
