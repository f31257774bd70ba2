package domain

import "time"

// Question is owned by a user and addressed by its slug. The slug is derived
// from the title at creation time and never changes afterwards.
type Question struct {
	ID        int64
	Slug      string
	Title     string
	Body      string
	OwnerID   int64
	Owner     string // owner username, filled on reads
	CreatedAt time.Time
	UpdatedAt time.Time

	// Computed on reads relative to the viewing user.
	AnswersCount    int
	UserHasAnswered bool
}

// IsOwnedBy reports whether userID owns the question.
func (q *Question) IsOwnedBy(userID int64) bool {
	return q != nil && q.OwnerID == userID
}
