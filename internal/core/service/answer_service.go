package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

type AnswerService struct {
	answers   ports.AnswerRepository
	questions ports.QuestionRepository
	activity  activityLog
	logger    zerolog.Logger
}

func NewAnswerService(
	answers ports.AnswerRepository,
	questions ports.QuestionRepository,
	activity ports.ActivityRepository,
	logger zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		answers:   answers,
		questions: questions,
		activity:  newActivityLog(activity, logger),
		logger:    logger,
	}
}

// List returns the answers of a question in creation order.
func (s *AnswerService) List(ctx context.Context, viewer *domain.User, slug string) ([]*domain.Answer, error) {
	q, err := s.questions.FindBySlug(ctx, slug, viewerID(viewer))
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.ListByQuestion(ctx, q.ID, viewerID(viewer))
	if err != nil {
		return nil, fmt.Errorf("list answers of %s: %w", slug, err)
	}
	if answers == nil {
		answers = []*domain.Answer{}
	}
	return answers, nil
}

// Create attaches a new answer to the question identified by slug. A user may
// answer a given question once.
func (s *AnswerService) Create(ctx context.Context, owner *domain.User, slug, body string) (*domain.Answer, error) {
	if owner == nil {
		return nil, domain.ErrUnauthorized
	}
	body, err := checkAnswerBody(body)
	if err != nil {
		return nil, err
	}

	q, err := s.questions.FindBySlug(ctx, slug, owner.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Answer{
		ID:           uuid.New(),
		Body:         body,
		QuestionID:   q.ID,
		QuestionSlug: q.Slug,
		OwnerID:      owner.ID,
		Owner:        owner.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.answers.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info().Str("answer_id", a.ID.String()).Str("slug", slug).Str("owner", owner.Username).Msg("answer created")
	s.activity.record(ctx, owner, domain.ActivityAnswerCreate, a.ID.String())
	return a, nil
}

func (s *AnswerService) Get(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Answer, error) {
	return s.answers.FindByID(ctx, id, viewerID(viewer))
}

func (s *AnswerService) Update(ctx context.Context, current *domain.User, id uuid.UUID, body string) (*domain.Answer, error) {
	a, err := s.ownedAnswer(ctx, current, id)
	if err != nil {
		return nil, err
	}
	if a.Body, err = checkAnswerBody(body); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.answers.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update answer %s: %w", id, err)
	}
	return a, nil
}

func (s *AnswerService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	a, err := s.ownedAnswer(ctx, current, id)
	if err != nil {
		return err
	}
	if err := s.answers.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("delete answer %s: %w", id, err)
	}

	s.activity.record(ctx, current, domain.ActivityAnswerDelete, id.String())
	return nil
}

// ToggleLike adds user to the answer's like-set if absent and removes them
// otherwise. Two calls restore the original state.
func (s *AnswerService) ToggleLike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	if user == nil {
		return domain.LikeState{}, domain.ErrUnauthorized
	}
	state, err := s.answers.ToggleLike(ctx, id, user.ID)
	if err != nil {
		return domain.LikeState{}, err
	}
	s.recordLike(ctx, user, id, state)
	return state, nil
}

func (s *AnswerService) Like(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	if user == nil {
		return domain.LikeState{}, domain.ErrUnauthorized
	}
	state, err := s.answers.Like(ctx, id, user.ID)
	if err != nil {
		return domain.LikeState{}, err
	}
	s.recordLike(ctx, user, id, state)
	return state, nil
}

func (s *AnswerService) Unlike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	if user == nil {
		return domain.LikeState{}, domain.ErrUnauthorized
	}
	state, err := s.answers.Unlike(ctx, id, user.ID)
	if err != nil {
		return domain.LikeState{}, err
	}
	s.recordLike(ctx, user, id, state)
	return state, nil
}

func (s *AnswerService) recordLike(ctx context.Context, user *domain.User, id uuid.UUID, state domain.LikeState) {
	kind := domain.ActivityUnlike
	if state.Liked {
		kind = domain.ActivityLike
	}
	s.activity.record(ctx, user, kind, id.String())
}

func (s *AnswerService) ownedAnswer(ctx context.Context, current *domain.User, id uuid.UUID) (*domain.Answer, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	a, err := s.answers.FindByID(ctx, id, current.ID)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(current.ID) {
		return nil, domain.ErrForbidden
	}
	return a, nil
}

func checkAnswerBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", domain.NewValidationError("body", "this field may not be blank")
	}
	return body, nil
}
