package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/questionhub/qa-api/internal/core/domain"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"email", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintUserEmail}, domain.ErrEmailTaken},
		{"username", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintUserUsername}, domain.ErrUsernameTaken},
		{"slug", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintQuestionSlug}, domain.ErrSlugTaken},
		{"answer per owner", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintAnswerPerOwner}, domain.ErrAlreadyAnswered},
		{"self follow", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: constraintNoSelfFollow}, domain.ErrSelfFollow},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintUserEmail}), domain.ErrEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tc.err), tc.want)
		})
	}
}

func TestTranslate_PassesThroughUnknown(t *testing.T) {
	other := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "something_else"}
	assert.Same(t, other, translate(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, translate(plain))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: codeForeignKeyViolation}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, isForeignKeyViolation(errors.New("x")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%go%", likePattern("go"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, likePattern(`c:\dir`))
}
