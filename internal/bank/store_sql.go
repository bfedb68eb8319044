package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/questbank/qmlbank/internal/question"
)

// ErrNotFound is returned when a question id is unknown.
var ErrNotFound = errors.New("question not found")

// SQLStore stores questions as JSON payloads keyed by kind, one row per
// question.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutQuestion(ctx context.Context, categoryID string, q question.Question) (string, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	var cat any
	if categoryID != "" {
		cat = categoryID
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,category_id,name,kind,payload_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		id, cat, q.Head().Name, string(q.Kind()), string(payload), time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) PutCategory(ctx context.Context, name string) (string, error) {
	// Re-importing the same file should land questions in the same
	// category, so the name is the natural key.
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM categories WHERE name=$1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	_, err = s.db.ExecContext(ctx, `INSERT INTO categories (id,name,created_at) VALUES ($1,$2,$3)`,
		id, name, time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (question.Question, error) {
	var kind, payload string
	err := s.db.QueryRowContext(ctx, `SELECT kind,payload_json FROM questions WHERE id=$1`, id).
		Scan(&kind, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return question.Decode(question.Kind(kind), []byte(payload))
}

func (s *SQLStore) ListQuestions(ctx context.Context, opts ListOpts) ([]Summary, error) {
	q := `SELECT id,COALESCE(category_id,''),name,kind,created_at FROM questions WHERE 1=1`
	args := []any{}
	n := 1
	if opts.CategoryID != "" {
		q += ` AND category_id=$` + itoa(n)
		args = append(args, opts.CategoryID)
		n++
	}
	if opts.Kind != "" {
		q += ` AND kind=$` + itoa(n)
		args = append(args, opts.Kind)
		n++
	}
	q += ` ORDER BY created_at DESC`
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q += ` LIMIT $` + itoa(n)
	args = append(args, limit)
	n++
	if opts.Offset > 0 {
		q += ` OFFSET $` + itoa(n)
		args = append(args, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var kind string
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &kind, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Kind = question.Kind(kind)
		out = append(out, s)
	}
	return out, rows.Err()
}

func itoa(n int) string { return strconv.Itoa(n) }
