package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/questionhub/qa-api/internal/api/metrics"
	"github.com/questionhub/qa-api/internal/core/ports"
)

type QuestionHandler struct {
	questionService ports.QuestionService
}

func NewQuestionHandler(questionService ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List returns a page of questions, newest first.
//
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Param        search  query     string  false  "Substring of title or body"
// @Param        owner   query     string  false  "Author username"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  questionListResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	var page, limit int
	if err := bindQueryInts(c, map[string]*int{"page": &page, "limit": &limit}); err != nil {
		return err
	}

	result, err := h.questionService.List(c.Request().Context(), ports.ListQuestionsInput{
		Viewer: viewer(c),
		Owner:  c.QueryParam("owner"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionListResponse{
		Count:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		Results:    toQuestionResponses(result.Items),
	})
}

// Create posts a new question. The slug is derived from the title.
//
// @Summary      Ask a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      questionRequest  true  "Question"
// @Success      201   {object}  questionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	var req questionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.questionService.Create(c.Request().Context(), current, req.Title, req.Body)
	if err != nil {
		return err
	}

	metrics.QuestionsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toQuestionResponse(q))
}

// Get returns a single question.
//
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Param        slug  path      string  true  "Question slug"
// @Success      200   {object}  questionResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions/{slug} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	q, err := h.questionService.Get(c.Request().Context(), viewer(c), pathParam(c, "slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuestionResponse(q))
}

// Replace overwrites title and body. Only the owner may call it.
//
// @Summary      Replace a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string           true  "Question slug"
// @Param        body  body      questionRequest  true  "Question"
// @Success      200   {object}  questionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions/{slug} [put]
func (h *QuestionHandler) Replace(c echo.Context) error {
	var req questionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.update(c, ports.UpdateQuestionInput{Title: &req.Title, Body: &req.Body})
}

// Patch changes the supplied fields only. The slug never changes.
//
// @Summary      Update a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string                true  "Question slug"
// @Param        body  body      questionPatchRequest  true  "Fields to change"
// @Success      200   {object}  questionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /questions/{slug} [patch]
func (h *QuestionHandler) Patch(c echo.Context) error {
	var req questionPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.update(c, ports.UpdateQuestionInput{Title: req.Title, Body: req.Body})
}

func (h *QuestionHandler) update(c echo.Context, in ports.UpdateQuestionInput) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	q, err := h.questionService.Update(c.Request().Context(), current, pathParam(c, "slug"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuestionResponse(q))
}

// Delete removes a question together with its answers.
//
// @Summary      Delete a question
// @Tags         questions
// @Security     BearerAuth
// @Param        slug  path  string  true  "Question slug"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{slug} [delete]
func (h *QuestionHandler) Delete(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.questionService.Delete(c.Request().Context(), current, pathParam(c, "slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
