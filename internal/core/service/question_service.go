package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxPage          = 1_000_000

	maxTitleLength = 255
	slugAttempts   = 3
)

type QuestionService struct {
	questions ports.QuestionRepository
	users     ports.UserRepository
	activity  activityLog
	logger    zerolog.Logger
}

func NewQuestionService(
	questions ports.QuestionRepository,
	users ports.UserRepository,
	activity ports.ActivityRepository,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questions: questions,
		users:     users,
		activity:  newActivityLog(activity, logger),
		logger:    logger,
	}
}

// List returns a page of questions, newest first. Limit defaults to 20 and is
// capped at 100. Page is clamped so the row offset cannot overflow.
func (s *QuestionService) List(ctx context.Context, in ports.ListQuestionsInput) (*ports.ListQuestionsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListQuestionsFilter{
		Search:   strings.TrimSpace(in.Search),
		ViewerID: viewerID(in.Viewer),
		Page:     page,
		Limit:    limit,
	}
	if in.Owner != "" {
		owner, err := s.users.FindByUsername(ctx, in.Owner)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = owner.ID
	}

	items, total, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if items == nil {
		items = []*domain.Question{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListQuestionsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *QuestionService) Get(ctx context.Context, viewer *domain.User, slug string) (*domain.Question, error) {
	return s.questions.FindBySlug(ctx, slug, viewerID(viewer))
}

// Create stores a new question owned by owner. The slug is derived from the
// title; on the rare suffix collision a fresh suffix is drawn.
func (s *QuestionService) Create(ctx context.Context, owner *domain.User, title, body string) (*domain.Question, error) {
	if owner == nil {
		return nil, domain.ErrUnauthorized
	}
	title, body, err := checkQuestion(title, body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	q := &domain.Question{
		Title:     title,
		Body:      body,
		OwnerID:   owner.ID,
		Owner:     owner.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 1; ; attempt++ {
		q.Slug = newSlug(title)
		err = s.questions.Create(ctx, q)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSlugTaken) || attempt == slugAttempts {
			s.logger.Error().Err(err).Str("slug", q.Slug).Msg("failed to create question")
			return nil, fmt.Errorf("create question: %w", err)
		}
	}

	s.logger.Info().Str("slug", q.Slug).Str("owner", owner.Username).Msg("question created")
	s.activity.record(ctx, owner, domain.ActivityQuestionCreate, q.Slug)
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, current *domain.User, slug string, in ports.UpdateQuestionInput) (*domain.Question, error) {
	q, err := s.ownedQuestion(ctx, current, slug)
	if err != nil {
		return nil, err
	}

	title, body := q.Title, q.Body
	if in.Title != nil {
		title = *in.Title
	}
	if in.Body != nil {
		body = *in.Body
	}
	if q.Title, q.Body, err = checkQuestion(title, body); err != nil {
		return nil, err
	}
	q.UpdatedAt = time.Now().UTC()

	if err := s.questions.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question %s: %w", slug, err)
	}
	return q, nil
}

// Delete removes the question and, through the store, its answers.
func (s *QuestionService) Delete(ctx context.Context, current *domain.User, slug string) error {
	q, err := s.ownedQuestion(ctx, current, slug)
	if err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, q.ID); err != nil {
		return fmt.Errorf("delete question %s: %w", slug, err)
	}

	s.logger.Info().Str("slug", slug).Str("owner", current.Username).Msg("question deleted")
	s.activity.record(ctx, current, domain.ActivityQuestionDelete, slug)
	return nil
}

func (s *QuestionService) ownedQuestion(ctx context.Context, current *domain.User, slug string) (*domain.Question, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	q, err := s.questions.FindBySlug(ctx, slug, current.ID)
	if err != nil {
		return nil, err
	}
	if !q.IsOwnedBy(current.ID) {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func checkQuestion(title, body string) (string, string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return "", "", domain.NewValidationError("title", "this field may not be blank")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", "", domain.NewValidationError("title", fmt.Sprintf("ensure this field has no more than %d characters", maxTitleLength))
	}
	if body == "" {
		return "", "", domain.NewValidationError("body", "this field may not be blank")
	}
	return title, body, nil
}
