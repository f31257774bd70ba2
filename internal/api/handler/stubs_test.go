package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/questionhub/qa-api/internal/api/middleware"
	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

var alice = &domain.User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}

// newContext builds an echo context with the production validator installed.
// Pass body == "" for requests without a payload.
func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, u *domain.User) {
	c.Set(middleware.UserKey, u)
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

// --- Auth ---

type stubAuthService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	signinFn  func(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error)
	refreshFn func(ctx context.Context, token string) (*ports.TokenPair, error)
	signoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Signout(ctx context.Context, token string) error {
	return s.signoutFn(ctx, token)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

// --- Users ---

type stubUserService struct {
	detailFn   func(ctx context.Context, viewer *domain.User, username string) (*domain.UserDetail, error)
	updateFn   func(ctx context.Context, current *domain.User, in ports.UpdateProfileInput) (*domain.User, error)
	followFn   func(ctx context.Context, current *domain.User, username string) error
	unfollowFn func(ctx context.Context, current *domain.User, username string) error
	listFn     func(ctx context.Context, username string) ([]*domain.User, error)
	activityFn func(ctx context.Context, username string, limit int) ([]*domain.Activity, error)
}

func (s *stubUserService) Profile(_ context.Context, current *domain.User) (*domain.User, error) {
	return current, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, current *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, current, in)
}

func (s *stubUserService) Detail(ctx context.Context, viewer *domain.User, username string) (*domain.UserDetail, error) {
	return s.detailFn(ctx, viewer, username)
}

func (s *stubUserService) Follow(ctx context.Context, current *domain.User, username string) error {
	return s.followFn(ctx, current, username)
}

func (s *stubUserService) Unfollow(ctx context.Context, current *domain.User, username string) error {
	return s.unfollowFn(ctx, current, username)
}

func (s *stubUserService) Followers(ctx context.Context, username string) ([]*domain.User, error) {
	return s.listFn(ctx, username)
}

func (s *stubUserService) Following(ctx context.Context, username string) ([]*domain.User, error) {
	return s.listFn(ctx, username)
}

func (s *stubUserService) Activity(ctx context.Context, username string, limit int) ([]*domain.Activity, error) {
	return s.activityFn(ctx, username, limit)
}

// --- Questions ---

type stubQuestionService struct {
	listFn   func(ctx context.Context, in ports.ListQuestionsInput) (*ports.ListQuestionsResult, error)
	getFn    func(ctx context.Context, viewer *domain.User, slug string) (*domain.Question, error)
	createFn func(ctx context.Context, owner *domain.User, title, body string) (*domain.Question, error)
	updateFn func(ctx context.Context, current *domain.User, slug string, in ports.UpdateQuestionInput) (*domain.Question, error)
	deleteFn func(ctx context.Context, current *domain.User, slug string) error
}

func (s *stubQuestionService) List(ctx context.Context, in ports.ListQuestionsInput) (*ports.ListQuestionsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubQuestionService) Get(ctx context.Context, viewer *domain.User, slug string) (*domain.Question, error) {
	return s.getFn(ctx, viewer, slug)
}

func (s *stubQuestionService) Create(ctx context.Context, owner *domain.User, title, body string) (*domain.Question, error) {
	return s.createFn(ctx, owner, title, body)
}

func (s *stubQuestionService) Update(ctx context.Context, current *domain.User, slug string, in ports.UpdateQuestionInput) (*domain.Question, error) {
	return s.updateFn(ctx, current, slug, in)
}

func (s *stubQuestionService) Delete(ctx context.Context, current *domain.User, slug string) error {
	return s.deleteFn(ctx, current, slug)
}

// --- Answers ---

type stubAnswerService struct {
	listFn   func(ctx context.Context, viewer *domain.User, slug string) ([]*domain.Answer, error)
	createFn func(ctx context.Context, owner *domain.User, slug, body string) (*domain.Answer, error)
	getFn    func(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Answer, error)
	updateFn func(ctx context.Context, current *domain.User, id uuid.UUID, body string) (*domain.Answer, error)
	deleteFn func(ctx context.Context, current *domain.User, id uuid.UUID) error
	likeFn   func(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error)
}

func (s *stubAnswerService) List(ctx context.Context, viewer *domain.User, slug string) ([]*domain.Answer, error) {
	return s.listFn(ctx, viewer, slug)
}

func (s *stubAnswerService) Create(ctx context.Context, owner *domain.User, slug, body string) (*domain.Answer, error) {
	return s.createFn(ctx, owner, slug, body)
}

func (s *stubAnswerService) Get(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Answer, error) {
	return s.getFn(ctx, viewer, id)
}

func (s *stubAnswerService) Update(ctx context.Context, current *domain.User, id uuid.UUID, body string) (*domain.Answer, error) {
	return s.updateFn(ctx, current, id, body)
}

func (s *stubAnswerService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	return s.deleteFn(ctx, current, id)
}

func (s *stubAnswerService) ToggleLike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	return s.likeFn(ctx, user, id)
}

func (s *stubAnswerService) Like(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	return s.likeFn(ctx, user, id)
}

func (s *stubAnswerService) Unlike(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
	return s.likeFn(ctx, user, id)
}
