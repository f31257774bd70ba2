package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer belongs to exactly one question and one owner.
type Answer struct {
	ID           uuid.UUID
	Body         string
	QuestionID   int64
	QuestionSlug string
	OwnerID      int64
	Owner        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LikesCount   int
	UserHasLiked bool
}

func (a *Answer) IsOwnedBy(userID int64) bool {
	return a != nil && a.OwnerID == userID
}

// LikeState is the like-set membership of one user on one answer after a
// like, unlike or toggle.
type LikeState struct {
	Liked     bool
	LikeCount int
}
