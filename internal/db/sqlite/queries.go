// Package sqlite implements the trivia queries on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// Open opens the SQLite database at path with foreign keys enforced.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "trivia.db"
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps in-memory databases shared and serializes writers.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// Queries runs the trivia statements against SQLite.
type Queries struct {
	db *sql.DB
}

func New(conn *sql.DB) *Queries {
	return &Queries{db: conn}
}

const questionColumns = `id, question, answer, difficulty, category`

func (q *Queries) ListCategoriesByID(ctx context.Context) ([]db.Category, error) {
	return q.listCategories(ctx, `SELECT id, type FROM categories ORDER BY id`)
}

func (q *Queries) ListCategoriesByType(ctx context.Context) ([]db.Category, error) {
	return q.listCategories(ctx, `SELECT id, type FROM categories ORDER BY type, id`)
}

func (q *Queries) listCategories(ctx context.Context, query string) ([]db.Category, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Category
	for rows.Next() {
		var c db.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (q *Queries) ListQuestions(ctx context.Context) ([]db.Question, error) {
	return q.listQuestions(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

func (q *Queries) GetQuestion(ctx context.Context, id int32) (db.Question, error) {
	var i db.Question
	err := q.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id).
		Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Question{}, db.ErrNoRows
	}
	return i, err
}

func (q *Queries) InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (int32, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, difficulty, category) VALUES (?, ?, ?, ?)`,
		arg.Question, arg.Answer, arg.Difficulty, arg.Category)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func (q *Queries) DeleteQuestion(ctx context.Context, id int32) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNoRows
	}
	return nil
}

// instr keeps the match a literal, case-sensitive substring test.
func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]db.Question, error) {
	return q.listQuestions(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE instr(question, ?) > 0 ORDER BY id`, term)
}

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]db.Question, error) {
	return q.listQuestions(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, category)
}

func (q *Queries) ListQuestionsExcluding(ctx context.Context, exclude []int32) ([]db.Question, error) {
	ids, err := idSet(exclude)
	if err != nil {
		return nil, err
	}
	return q.listQuestions(ctx,
		`SELECT `+questionColumns+` FROM questions
		WHERE id NOT IN (SELECT value FROM json_each(?))
		ORDER BY id`, ids)
}

func (q *Queries) ListQuestionsByCategoryExcluding(ctx context.Context, category int32, exclude []int32) ([]db.Question, error) {
	ids, err := idSet(exclude)
	if err != nil {
		return nil, err
	}
	return q.listQuestions(ctx,
		`SELECT `+questionColumns+` FROM questions
		WHERE category = ? AND id NOT IN (SELECT value FROM json_each(?))
		ORDER BY id`, category, ids)
}

func (q *Queries) listQuestions(ctx context.Context, query string, args ...interface{}) ([]db.Question, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []db.Question
	for rows.Next() {
		var i db.Question
		if err := rows.Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// idSet encodes ids as a JSON array for json_each.
func idSet(ids []int32) (string, error) {
	if len(ids) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
