package domain

import "time"

// ActivityKind names an entry in the activity log.
type ActivityKind string

const (
	ActivitySignup         ActivityKind = "signup"
	ActivityFollow         ActivityKind = "follow"
	ActivityUnfollow       ActivityKind = "unfollow"
	ActivityQuestionCreate ActivityKind = "question_created"
	ActivityQuestionDelete ActivityKind = "question_deleted"
	ActivityAnswerCreate   ActivityKind = "answer_created"
	ActivityAnswerDelete   ActivityKind = "answer_deleted"
	ActivityLike           ActivityKind = "answer_liked"
	ActivityUnlike         ActivityKind = "answer_unliked"
)

// Activity is an audit record of something a user did. Target is the
// username, question slug or answer id the action applied to.
// Activity is keyed by ActorID so entries survive a rename. Actor is the
// username at the time of the event.
type Activity struct {
	ActorID   int64
	Actor     string
	Kind      ActivityKind
	Target    string
	CreatedAt time.Time
}
