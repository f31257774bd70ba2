// Package metrics defines the custom Prometheus metrics of the Q&A API. It is
// the single source of truth for metric names, labels and help strings.
//
// Metrics register with the default registry on import (promauto); HTTP RED
// metrics come from the echoprometheus middleware installed by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qa"

// Label values shared by the counters below.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"

	LikeLiked   = "liked"
	LikeUnliked = "unliked"
)

// ── Accounts ─────────────────────────────────────────────────────────────────

// SignupsTotal counts accounts created.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "success" or "failure"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "failure" (expired, revoked or reused token)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Social graph ─────────────────────────────────────────────────────────────

// FollowEdgesTotal counts follow graph mutations.
// Label:
//   - action: "follow" or "unfollow"
var FollowEdgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follow_edges_total",
		Help:      "Total number of follow and unfollow requests that succeeded.",
	},
	[]string{"action"},
)

// ── Questions and answers ────────────────────────────────────────────────────

var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions created.",
	},
)

var AnswersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_created_total",
		Help:      "Total number of answers created.",
	},
)

// LikesTotal counts like-set changes requested through the API.
// Label:
//   - state: the resulting state for the caller, "liked" or "unliked"
var LikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of like, unlike and toggle requests, by resulting state.",
	},
	[]string{"state"},
)

// LikeState returns the LikesTotal label for liked.
func LikeState(liked bool) string {
	if liked {
		return LikeLiked
	}
	return LikeUnliked
}
