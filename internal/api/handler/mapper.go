package handler

import (
	"time"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// --- Request → Service input ---

func toSignupInput(req signupRequest) ports.SignupInput {
	return ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
}

// --- Domain → Response ---

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toUserDetailResponse(d *domain.UserDetail) userDetailResponse {
	return userDetailResponse{
		profileResponse: toProfileResponse(d.User),
		Questions:       toQuestionResponses(d.Questions),
		Answers:         toAnswerResponses(d.Answers),
	}
}

func toPublicUserResponses(users []*domain.User) []publicUserResponse {
	out := make([]publicUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, publicUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	return out
}

func toActivityResponses(entries []*domain.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(entries))
	for _, a := range entries {
		out = append(out, activityResponse{
			Kind:      string(a.Kind),
			Target:    a.Target,
			CreatedAt: formatTime(a.CreatedAt),
		})
	}
	return out
}

func toQuestionResponse(q *domain.Question) questionResponse {
	return questionResponse{
		ID:              q.ID,
		Slug:            q.Slug,
		Title:           q.Title,
		Body:            q.Body,
		Author:          q.Owner,
		CreatedAt:       formatTime(q.CreatedAt),
		UpdatedAt:       formatTime(q.UpdatedAt),
		AnswersCount:    q.AnswersCount,
		UserHasAnswered: q.UserHasAnswered,
	}
}

func toQuestionResponses(qs []*domain.Question) []questionResponse {
	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

func toAnswerResponse(a *domain.Answer) answerResponse {
	return answerResponse{
		UUID:         a.ID.String(),
		Body:         a.Body,
		Author:       a.Owner,
		QuestionSlug: a.QuestionSlug,
		CreatedAt:    formatTime(a.CreatedAt),
		UpdatedAt:    formatTime(a.UpdatedAt),
		LikesCount:   a.LikesCount,
		UserHasLiked: a.UserHasLiked,
	}
}

func toAnswerResponses(as []*domain.Answer) []answerResponse {
	out := make([]answerResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAnswerResponse(a))
	}
	return out
}
