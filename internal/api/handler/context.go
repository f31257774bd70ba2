package handler

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/questionhub/qa-api/internal/api/middleware"
	"github.com/questionhub/qa-api/internal/core/domain"
)

// currentUser returns the authenticated user or ErrUnauthorized. Routes
// behind middleware.Auth always have one; the check guards misrouted
// handlers.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// viewer returns the authenticated user or nil for anonymous requests.
func viewer(c echo.Context) *domain.User {
	return middleware.CurrentUser(c)
}

func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// answerID parses the :uuid path parameter. A malformed id cannot name an
// existing answer, so it is reported as not found.
func answerID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return uuid.Nil, domain.ErrAnswerNotFound
	}
	return id, nil
}
