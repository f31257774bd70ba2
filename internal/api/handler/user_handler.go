package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/questionhub/qa-api/internal/api/metrics"
	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile returns the caller's own profile.
//
// @Summary      Current profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), current)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile applies a partial update to the caller's profile.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), current, toUpdateProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// Detail returns a user's profile with the questions and answers they wrote.
//
// @Summary      User detail
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userDetailResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) Detail(c echo.Context) error {
	detail, err := h.userService.Detail(c.Request().Context(), viewer(c), pathParam(c, "username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail))
}

// Follow adds the caller to the user's followers. Following twice is a no-op.
//
// @Summary      Follow a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/{username}/follow [post]
func (h *UserHandler) Follow(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	username := pathParam(c, "username")
	if err := h.userService.Follow(c.Request().Context(), current, username); err != nil {
		return err
	}

	metrics.FollowEdgesTotal.WithLabelValues(metrics.ActionFollow).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("you are now following %s", username)})
}

// Unfollow removes the caller from the user's followers.
//
// @Summary      Unfollow a user
// @Tags         users
// @Security     BearerAuth
// @Param        username  path  string  true  "Username"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/follow [delete]
func (h *UserHandler) Unfollow(c echo.Context) error {
	current, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Unfollow(c.Request().Context(), current, pathParam(c, "username")); err != nil {
		return err
	}

	metrics.FollowEdgesTotal.WithLabelValues(metrics.ActionUnfollow).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Followers lists the users following username.
//
// @Summary      List followers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   publicUserResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/{username}/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	users, err := h.userService.Followers(c.Request().Context(), pathParam(c, "username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicUserResponses(users))
}

// Following lists the users username follows.
//
// @Summary      List followed users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   publicUserResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/{username}/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	users, err := h.userService.Following(c.Request().Context(), pathParam(c, "username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicUserResponses(users))
}

// Activity returns the user's most recent activity, newest first.
//
// @Summary      User activity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true   "Username"
// @Param        limit     query     int     false  "Maximum entries (default 50)"
// @Success      200       {array}   activityResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/{username}/activity [get]
func (h *UserHandler) Activity(c echo.Context) error {
	var limit int
	if err := bindQueryInts(c, map[string]*int{"limit": &limit}); err != nil {
		return err
	}

	entries, err := h.userService.Activity(c.Request().Context(), pathParam(c, "username"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponses(entries))
}

// bindQueryInts reads optional integer query parameters. Absent parameters
// leave their target untouched.
func bindQueryInts(c echo.Context, targets map[string]*int) error {
	b := echo.QueryParamsBinder(c)
	for name, dest := range targets {
		b = b.Int(name, dest)
	}
	if err := b.BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return domain.NewValidationError(be.Field, "a valid integer is required")
		}
		return err
	}
	return nil
}
