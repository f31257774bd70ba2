package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// questionSelect expects the viewer id as its first placeholder.
const questionSelect = `
	SELECT q.id, q.slug, q.title, q.body, q.owner_id, u.username, q.created_at, q.updated_at,
		(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id),
		EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id AND a.owner_id = $1)
	FROM questions q
	JOIN users u ON u.id = q.owner_id`

// QuestionRepository implements ports.QuestionRepository on PostgreSQL.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) ports.QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (slug, title, body, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		q.Slug, q.Title, q.Body, q.OwnerID,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert question: %w", translate(err))
	}
	return nil
}

func (r *QuestionRepository) FindBySlug(ctx context.Context, slug string, viewerID int64) (*domain.Question, error) {
	q, err := scanQuestion(r.pool.QueryRow(ctx, questionSelect+` WHERE q.slug = $2`, viewerID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question %s: %w", slug, err)
	}
	return q, nil
}

// List returns questions newest first with the total number of matches.
// A non-positive Limit returns every match.
func (r *QuestionRepository) List(ctx context.Context, f ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	where, filterArgs := questionFilter(f, 0)
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions q`+where, filterArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	where, filterArgs = questionFilter(f, 1)
	args := append([]any{f.ViewerID}, filterArgs...)
	query := questionSelect + where + ` ORDER BY q.created_at DESC, q.id DESC`
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		args = append(args, f.Limit, (page-1)*f.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	items := []*domain.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate questions: %w", err)
	}
	return items, total, nil
}

// questionFilter builds the WHERE clause for f. Placeholders are numbered
// from offset+1.
func questionFilter(f ports.ListQuestionsFilter, offset int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.OwnerID != 0 {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("q.owner_id = $%d", offset+len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := offset + len(args)
		conds = append(conds, fmt.Sprintf("(q.title ILIKE $%d OR q.body ILIKE $%d)", n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update writes title and body. The slug is immutable.
func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE questions SET title = $2, body = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		q.ID, q.Title, q.Body,
	).Scan(&q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrQuestionNotFound
		}
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

// Delete removes the question; answers and their likes go with it through
// ON DELETE CASCADE.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	q := &domain.Question{}
	var answers int64
	err := row.Scan(
		&q.ID,
		&q.Slug,
		&q.Title,
		&q.Body,
		&q.OwnerID,
		&q.Owner,
		&q.CreatedAt,
		&q.UpdatedAt,
		&answers,
		&q.UserHasAnswered,
	)
	if err != nil {
		return nil, err
	}
	q.AnswersCount = int(answers)
	return q, nil
}
