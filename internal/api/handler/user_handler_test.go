package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

func TestUserHandler_Profile(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, rec := newContext(t, http.MethodGet, "/profile", "")
	asUser(c, alice)
	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := map[string]any{"id": float64(1), "username": "alice", "email": "alice@example.com", "firstName": "Alice", "lastName": ""}
	if len(resp) != len(want) {
		t.Fatalf("unexpected fields: %+v", resp)
	}
	for k, v := range want {
		if resp[k] != v {
			t.Fatalf("field %s: expected %v, got %v", k, v, resp[k])
		}
	}
}

func TestUserHandler_Profile_Anonymous(t *testing.T) {
	c, _ := newContext(t, http.MethodGet, "/profile", "")
	if err := NewUserHandler(&stubUserService{}).Profile(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, current *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
			if in.Email != nil || in.FirstName == nil || *in.FirstName != "Ally" {
				t.Fatalf("unexpected input: %+v", in)
			}
			updated := *current
			updated.FirstName = *in.FirstName
			return &updated, nil
		},
	}

	c, rec := newContext(t, http.MethodPatch, "/profile", `{"firstName":"Ally"}`)
	asUser(c, alice)
	if err := NewUserHandler(stub).UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.FirstName != "Ally" {
		t.Fatalf("expected updated first name, got %+v", resp)
	}

	c, _ = newContext(t, http.MethodPatch, "/profile", `{"email":"not-an-email"}`)
	asUser(c, alice)
	if err := NewUserHandler(stub).UpdateProfile(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserHandler_Detail(t *testing.T) {
	stub := &stubUserService{
		detailFn: func(_ context.Context, viewer *domain.User, username string) (*domain.UserDetail, error) {
			if username != "bob" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.UserDetail{
				User:      &domain.User{ID: 2, Username: "bob", Email: "bob@example.com", FirstName: "Bob", PasswordHash: "hash"},
				Questions: []*domain.Question{},
				Answers:   []*domain.Answer{},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/users/bob", "")
	asUser(c, alice)
	withParam(c, "username", "bob")
	if err := handler.Detail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := map[string]any{"id": float64(2), "username": "bob", "email": "bob@example.com", "firstName": "Bob", "lastName": ""}
	if len(resp) != len(want)+2 {
		t.Fatalf("unexpected keys in payload: %+v", resp)
	}
	for k, v := range want {
		if resp[k] != v {
			t.Fatalf("expected %s=%v, got %v", k, v, resp[k])
		}
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password must not be serialized: %+v", resp)
	}
	if qs, ok := resp["questions"].([]any); !ok || len(qs) != 0 {
		t.Fatalf("expected empty questions array, got %#v", resp["questions"])
	}
	if as, ok := resp["answers"].([]any); !ok || len(as) != 0 {
		t.Fatalf("expected empty answers array, got %#v", resp["answers"])
	}

	c, _ = newContext(t, http.MethodGet, "/users/ghost", "")
	withParam(c, "username", "ghost")
	if err := handler.Detail(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_FollowUnfollow(t *testing.T) {
	var followed, unfollowed string
	stub := &stubUserService{
		followFn: func(_ context.Context, current *domain.User, username string) error {
			if username == current.Username {
				return domain.ErrSelfFollow
			}
			followed = username
			return nil
		},
		unfollowFn: func(_ context.Context, _ *domain.User, username string) error {
			unfollowed = username
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/users/bob/follow", "")
	asUser(c, alice)
	withParam(c, "username", "bob")
	if err := handler.Follow(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || followed != "bob" {
		t.Fatalf("expected 200 following bob, got %d %q", rec.Code, followed)
	}

	c, _ = newContext(t, http.MethodPost, "/users/alice/follow", "")
	asUser(c, alice)
	withParam(c, "username", "alice")
	if err := handler.Follow(c); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}

	c, rec = newContext(t, http.MethodDelete, "/users/bob/follow", "")
	asUser(c, alice)
	withParam(c, "username", "bob")
	if err := handler.Unfollow(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || unfollowed != "bob" {
		t.Fatalf("expected 204 unfollowing bob, got %d %q", rec.Code, unfollowed)
	}
}

func TestUserHandler_Followers(t *testing.T) {
	stub := &stubUserService{
		listFn: func(context.Context, string) ([]*domain.User, error) {
			return []*domain.User{{ID: 2, Username: "bob", Email: "bob@example.com"}}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/users/alice/followers", "")
	withParam(c, "username", "alice")
	if err := NewUserHandler(stub).Followers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "bob" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp[0]["email"]; ok {
		t.Fatalf("follower lists must not expose email")
	}
}

func TestUserHandler_Activity(t *testing.T) {
	var gotLimit int
	stub := &stubUserService{
		activityFn: func(_ context.Context, _ string, limit int) ([]*domain.Activity, error) {
			gotLimit = limit
			return []*domain.Activity{{
				Actor:     "alice",
				Kind:      domain.ActivityFollow,
				Target:    "bob",
				CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/users/alice/activity?limit=5", "")
	withParam(c, "username", "alice")
	if err := handler.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit 5, got %d", gotLimit)
	}
	var resp []activityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].Kind != "follow" || resp[0].CreatedAt != "2024-05-01T10:00:00Z" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newContext(t, http.MethodGet, "/users/alice/activity?limit=many", "")
	withParam(c, "username", "alice")
	var ve *domain.ValidationError
	if err := handler.Activity(c); !errors.As(err, &ve) || ve.Field != "limit" {
		t.Fatalf("expected validation error on limit, got %v", err)
	}
}
