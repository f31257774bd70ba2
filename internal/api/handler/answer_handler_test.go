package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questionhub/qa-api/internal/core/domain"
)

var answerUUID = uuid.MustParse("6f1c2c1e-8d4b-4c1a-9d55-2b8f0f7e4a10")

func sampleAnswer() *domain.Answer {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Answer{
		ID:           answerUUID,
		Body:         "Use goroutines",
		QuestionID:   3,
		QuestionSlug: "what-is-go-a1b2c3",
		OwnerID:      2,
		Owner:        "bob",
		CreatedAt:    ts,
		UpdatedAt:    ts,
		LikesCount:   1,
	}
}

func TestAnswerHandler_List(t *testing.T) {
	stub := &stubAnswerService{
		listFn: func(_ context.Context, _ *domain.User, slug string) ([]*domain.Answer, error) {
			if slug != "what-is-go-a1b2c3" {
				return nil, domain.ErrQuestionNotFound
			}
			return []*domain.Answer{sampleAnswer()}, nil
		},
	}
	handler := NewAnswerHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/questions-answers/what-is-go-a1b2c3", "")
	withParam(c, "slug", "what-is-go-a1b2c3")
	require.NoError(t, handler.List(c))

	var resp []answerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, answerUUID.String(), resp[0].UUID)
	assert.Equal(t, "what-is-go-a1b2c3", resp[0].QuestionSlug)
	assert.Equal(t, "bob", resp[0].Author)

	c, _ = newContext(t, http.MethodGet, "/questions-answers/missing", "")
	withParam(c, "slug", "missing")
	assert.ErrorIs(t, handler.List(c), domain.ErrQuestionNotFound)
}

func TestAnswerHandler_Create(t *testing.T) {
	stub := &stubAnswerService{
		createFn: func(_ context.Context, owner *domain.User, slug, body string) (*domain.Answer, error) {
			if owner.ID == alice.ID {
				return nil, domain.ErrAlreadyAnswered
			}
			a := sampleAnswer()
			a.Body = body
			return a, nil
		},
	}
	handler := NewAnswerHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/questions-new-answer/what-is-go-a1b2c3", `{"body":"Channels"}`)
	asUser(c, &domain.User{ID: 2, Username: "bob"})
	withParam(c, "slug", "what-is-go-a1b2c3")
	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"body":"Channels"`)

	c, _ = newContext(t, http.MethodPost, "/questions-new-answer/what-is-go-a1b2c3", `{"body":"again"}`)
	asUser(c, alice)
	withParam(c, "slug", "what-is-go-a1b2c3")
	assert.ErrorIs(t, handler.Create(c), domain.ErrAlreadyAnswered)

	c, _ = newContext(t, http.MethodPost, "/questions-new-answer/what-is-go-a1b2c3", `{}`)
	asUser(c, alice)
	withParam(c, "slug", "what-is-go-a1b2c3")
	assert.ErrorIs(t, handler.Create(c), domain.ErrValidation)
}

func TestAnswerHandler_Get_InvalidUUID(t *testing.T) {
	stub := &stubAnswerService{
		getFn: func(context.Context, *domain.User, uuid.UUID) (*domain.Answer, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}

	c, _ := newContext(t, http.MethodGet, "/answers-detail/not-a-uuid", "")
	asUser(c, alice)
	withParam(c, "uuid", "not-a-uuid")
	assert.ErrorIs(t, NewAnswerHandler(stub).Get(c), domain.ErrAnswerNotFound)
}

func TestAnswerHandler_UpdateAndDelete(t *testing.T) {
	stub := &stubAnswerService{
		updateFn: func(_ context.Context, current *domain.User, id uuid.UUID, body string) (*domain.Answer, error) {
			if current.ID != 2 {
				return nil, domain.ErrForbidden
			}
			a := sampleAnswer()
			a.Body = body
			return a, nil
		},
		deleteFn: func(_ context.Context, current *domain.User, id uuid.UUID) error {
			if id != answerUUID {
				return domain.ErrAnswerNotFound
			}
			return nil
		},
	}
	handler := NewAnswerHandler(stub)
	bob := &domain.User{ID: 2, Username: "bob"}

	c, rec := newContext(t, http.MethodPut, "/answers-detail/"+answerUUID.String(), `{"body":"edited"}`)
	asUser(c, bob)
	withParam(c, "uuid", answerUUID.String())
	require.NoError(t, handler.Update(c))
	assert.Contains(t, rec.Body.String(), `"body":"edited"`)

	c, _ = newContext(t, http.MethodPatch, "/answers-detail/"+answerUUID.String(), `{"body":"edited"}`)
	asUser(c, alice)
	withParam(c, "uuid", answerUUID.String())
	assert.ErrorIs(t, handler.Update(c), domain.ErrForbidden)

	c, rec = newContext(t, http.MethodDelete, "/answers-detail/"+answerUUID.String(), "")
	asUser(c, bob)
	withParam(c, "uuid", answerUUID.String())
	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	other := uuid.New().String()
	c, _ = newContext(t, http.MethodDelete, "/answers-detail/"+other, "")
	asUser(c, bob)
	withParam(c, "uuid", other)
	assert.ErrorIs(t, handler.Delete(c), domain.ErrAnswerNotFound)
}

func TestAnswerHandler_ToggleLike(t *testing.T) {
	liked := map[int64]bool{}
	stub := &stubAnswerService{
		likeFn: func(_ context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error) {
			liked[user.ID] = !liked[user.ID]
			count := 0
			for _, v := range liked {
				if v {
					count++
				}
			}
			return domain.LikeState{Liked: liked[user.ID], LikeCount: count}, nil
		},
	}
	handler := NewAnswerHandler(stub)

	toggle := func() likeResponse {
		c, rec := newContext(t, http.MethodPost, "/answers-like/"+answerUUID.String(), "")
		asUser(c, alice)
		withParam(c, "uuid", answerUUID.String())
		require.NoError(t, handler.ToggleLike(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp likeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	assert.Equal(t, likeResponse{Liked: true, LikeCount: 1}, toggle())
	assert.Equal(t, likeResponse{Liked: false, LikeCount: 0}, toggle())
}

func TestAnswerHandler_LikeRequiresUser(t *testing.T) {
	c, _ := newContext(t, http.MethodDelete, "/answers-like/"+answerUUID.String(), "")
	withParam(c, "uuid", answerUUID.String())
	assert.ErrorIs(t, NewAnswerHandler(&stubAnswerService{}).Unlike(c), domain.ErrUnauthorized)
}
