package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/questionhub/qa-api/docs"
	"github.com/questionhub/qa-api/internal/api/handler"
	"github.com/questionhub/qa-api/internal/api/middleware"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built over.
type Dependencies struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Questions ports.QuestionService
	Answers   ports.AnswerService
	Checks    map[string]handler.Check
	Logger    zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the metrics package.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "qa",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	questionHandler := handler.NewQuestionHandler(deps.Questions)
	answerHandler := handler.NewAnswerHandler(deps.Answers)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	requireAuth := middleware.Auth(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/signin", authHandler.Signin)
	e.POST("/token/refresh", authHandler.Refresh)
	e.POST("/signout", authHandler.Signout)

	// --- Users ---
	e.GET("/profile", userHandler.Profile, requireAuth)
	e.PATCH("/profile", userHandler.UpdateProfile, requireAuth)

	users := e.Group("/users/:username", requireAuth)
	users.GET("", userHandler.Detail)
	users.POST("/follow", userHandler.Follow)
	users.DELETE("/follow", userHandler.Unfollow)
	users.GET("/followers", userHandler.Followers)
	users.GET("/following", userHandler.Following)
	users.GET("/activity", userHandler.Activity)

	// --- Questions ---
	e.GET("/questions", questionHandler.List, optionalAuth)
	e.POST("/questions", questionHandler.Create, requireAuth)
	e.GET("/questions/:slug", questionHandler.Get, optionalAuth)
	e.PUT("/questions/:slug", questionHandler.Replace, requireAuth)
	e.PATCH("/questions/:slug", questionHandler.Patch, requireAuth)
	e.DELETE("/questions/:slug", questionHandler.Delete, requireAuth)

	// --- Answers ---
	e.GET("/questions-answers/:slug", answerHandler.List, optionalAuth)
	e.POST("/questions-new-answer/:slug", answerHandler.Create, requireAuth)

	answers := e.Group("/answers-detail/:uuid", requireAuth)
	answers.GET("", answerHandler.Get)
	answers.PUT("", answerHandler.Update)
	answers.PATCH("", answerHandler.Update)
	answers.DELETE("", answerHandler.Delete)

	likes := e.Group("/answers-like/:uuid", requireAuth)
	likes.POST("", answerHandler.ToggleLike)
	likes.PUT("", answerHandler.Like)
	likes.DELETE("", answerHandler.Unlike)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
