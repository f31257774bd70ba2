package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// answerSelect expects the viewer id as its first placeholder.
const answerSelect = `
	SELECT a.id, a.body, a.question_id, q.slug, a.owner_id, u.username, a.created_at, a.updated_at,
		(SELECT COUNT(*) FROM answer_likes l WHERE l.answer_id = a.id),
		EXISTS (SELECT 1 FROM answer_likes l WHERE l.answer_id = a.id AND l.user_id = $1)
	FROM answers a
	JOIN questions q ON q.id = a.question_id
	JOIN users u ON u.id = a.owner_id`

// AnswerRepository implements ports.AnswerRepository on PostgreSQL. Likes
// live in answer_likes keyed by (answer_id, user_id).
type AnswerRepository struct {
	pool *pgxpool.Pool
}

func NewAnswerRepository(pool *pgxpool.Pool) ports.AnswerRepository {
	return &AnswerRepository{pool: pool}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO answers (id, body, question_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		a.ID, a.Body, a.QuestionID, a.OwnerID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrQuestionNotFound
		}
		if translated := translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id uuid.UUID, viewerID int64) (*domain.Answer, error) {
	a, err := scanAnswer(r.pool.QueryRow(ctx, answerSelect+` WHERE a.id = $2`, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer %s: %w", id, err)
	}
	return a, nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID, viewerID int64) ([]*domain.Answer, error) {
	return r.list(ctx, answerSelect+` WHERE a.question_id = $2 ORDER BY a.created_at, a.id`, viewerID, questionID)
}

func (r *AnswerRepository) ListByOwner(ctx context.Context, ownerID, viewerID int64) ([]*domain.Answer, error) {
	return r.list(ctx, answerSelect+` WHERE a.owner_id = $2 ORDER BY a.created_at DESC, a.id`, viewerID, ownerID)
}

func (r *AnswerRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Answer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	answers := []*domain.Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

func (r *AnswerRepository) Update(ctx context.Context, a *domain.Answer) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE answers SET body = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Body,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAnswerNotFound
		}
		return fmt.Errorf("update answer: %w", err)
	}
	return nil
}

func (r *AnswerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}

// ToggleLike removes the like when present and adds it otherwise. The answer
// row is locked for the duration so concurrent toggles serialize.
func (r *AnswerRepository) ToggleLike(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	var state domain.LikeState
	err := WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockAnswer(ctx, tx, answerID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM answer_likes WHERE answer_id = $1 AND user_id = $2`, answerID, userID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			if err := insertLike(ctx, tx, answerID, userID); err != nil {
				return err
			}
			state.Liked = true
		}

		state.LikeCount, err = countLikes(ctx, tx, answerID)
		return err
	})
	if err != nil {
		return domain.LikeState{}, err
	}
	return state, nil
}

func (r *AnswerRepository) Like(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	state := domain.LikeState{Liked: true}
	err := WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockAnswer(ctx, tx, answerID); err != nil {
			return err
		}
		if err := insertLike(ctx, tx, answerID, userID); err != nil {
			return err
		}
		var err error
		state.LikeCount, err = countLikes(ctx, tx, answerID)
		return err
	})
	if err != nil {
		return domain.LikeState{}, err
	}
	return state, nil
}

func (r *AnswerRepository) Unlike(ctx context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	var state domain.LikeState
	err := WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockAnswer(ctx, tx, answerID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM answer_likes WHERE answer_id = $1 AND user_id = $2`, answerID, userID); err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		var err error
		state.LikeCount, err = countLikes(ctx, tx, answerID)
		return err
	})
	if err != nil {
		return domain.LikeState{}, err
	}
	return state, nil
}

func lockAnswer(ctx context.Context, q DBTX, answerID uuid.UUID) error {
	var one int
	err := q.QueryRow(ctx, `SELECT 1 FROM answers WHERE id = $1 FOR UPDATE`, answerID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAnswerNotFound
		}
		return fmt.Errorf("lock answer: %w", err)
	}
	return nil
}

func insertLike(ctx context.Context, q DBTX, answerID uuid.UUID, userID int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO answer_likes (answer_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (answer_id, user_id) DO NOTHING`,
		answerID, userID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func countLikes(ctx context.Context, q DBTX, answerID uuid.UUID) (int, error) {
	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM answer_likes WHERE answer_id = $1`, answerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return int(n), nil
}

func scanAnswer(row pgx.Row) (*domain.Answer, error) {
	a := &domain.Answer{}
	var likes int64
	err := row.Scan(
		&a.ID,
		&a.Body,
		&a.QuestionID,
		&a.QuestionSlug,
		&a.OwnerID,
		&a.Owner,
		&a.CreatedAt,
		&a.UpdatedAt,
		&likes,
		&a.UserHasLiked,
	)
	if err != nil {
		return nil, err
	}
	a.LikesCount = int(likes)
	return a, nil
}
