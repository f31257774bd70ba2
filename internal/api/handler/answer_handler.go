package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/questionhub/qa-api/internal/api/metrics"
	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

type AnswerHandler struct {
	answerService ports.AnswerService
}

func NewAnswerHandler(answerService ports.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// List returns the answers to a question in the order they were posted.
//
// @Summary      List answers
// @Tags         answers
// @Produce      json
// @Param        slug  path      string  true  "Question slug"
// @Success      200   {array}   answerResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions-answers/{slug} [get]
func (h *AnswerHandler) List(c echo.Context) error {
	answers, err := h.answerService.List(c.Request().Context(), viewer(c), pathParam(c, "slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnswerResponses(answers))
}

// Create answers a question. A user may answer each question once.
//
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string         true  "Question slug"
// @Param        body  body      answerRequest  true  "Answer"
// @Success      201   {object}  answerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions-new-answer/{slug} [post]
func (h *AnswerHandler) Create(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answerService.Create(c.Request().Context(), current, pathParam(c, "slug"), req.Body)
	if err != nil {
		return err
	}

	metrics.AnswersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toAnswerResponse(a))
}

// Get returns a single answer.
//
// @Summary      Get an answer
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Answer id"
// @Success      200   {object}  answerResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /answers-detail/{uuid} [get]
func (h *AnswerHandler) Get(c echo.Context) error {
	id, err := answerID(c)
	if err != nil {
		return err
	}

	a, err := h.answerService.Get(c.Request().Context(), viewer(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnswerResponse(a))
}

// Update replaces the answer body. Only the owner may call it.
//
// @Summary      Update an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string         true  "Answer id"
// @Param        body  body      answerRequest  true  "Answer"
// @Success      200   {object}  answerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /answers-detail/{uuid} [put]
// @Router       /answers-detail/{uuid} [patch]
func (h *AnswerHandler) Update(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := answerID(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answerService.Update(c.Request().Context(), current, id, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnswerResponse(a))
}

// Delete removes an answer. Only the owner may call it.
//
// @Summary      Delete an answer
// @Tags         answers
// @Security     BearerAuth
// @Param        uuid  path  string  true  "Answer id"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /answers-detail/{uuid} [delete]
func (h *AnswerHandler) Delete(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := answerID(c)
	if err != nil {
		return err
	}

	if err := h.answerService.Delete(c.Request().Context(), current, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike likes the answer, or removes the like when already present.
//
// @Summary      Toggle like
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Answer id"
// @Success      200   {object}  likeResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /answers-like/{uuid} [post]
func (h *AnswerHandler) ToggleLike(c echo.Context) error {
	return h.like(c, h.answerService.ToggleLike)
}

// Like adds the caller's like. Liking twice is a no-op.
//
// @Summary      Like an answer
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Answer id"
// @Success      200   {object}  likeResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /answers-like/{uuid} [put]
func (h *AnswerHandler) Like(c echo.Context) error {
	return h.like(c, h.answerService.Like)
}

// Unlike removes the caller's like. Unliking twice is a no-op.
//
// @Summary      Unlike an answer
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Answer id"
// @Success      200   {object}  likeResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /answers-like/{uuid} [delete]
func (h *AnswerHandler) Unlike(c echo.Context) error {
	return h.like(c, h.answerService.Unlike)
}

type likeFunc func(ctx context.Context, user *domain.User, id uuid.UUID) (domain.LikeState, error)

func (h *AnswerHandler) like(c echo.Context, fn likeFunc) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := answerID(c)
	if err != nil {
		return err
	}

	state, err := fn(c.Request().Context(), current, id)
	if err != nil {
		return err
	}

	metrics.LikesTotal.WithLabelValues(metrics.LikeState(state.Liked)).Inc()
	return c.JSON(http.StatusOK, likeResponse{Liked: state.Liked, LikeCount: state.LikeCount})
}
