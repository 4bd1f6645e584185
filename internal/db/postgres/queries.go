// Package postgres implements the trivia queries on top of pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries runs the trivia statements against Postgres.
type Queries struct {
	db DBTX
}

func New(conn DBTX) *Queries {
	return &Queries{db: conn}
}

const questionColumns = `id, question, answer, difficulty, category`

const listCategoriesByID = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategoriesByID(ctx context.Context) ([]db.Category, error) {
	return q.listCategories(ctx, listCategoriesByID)
}

const listCategoriesByType = `SELECT id, type FROM categories ORDER BY type, id`

func (q *Queries) ListCategoriesByType(ctx context.Context) ([]db.Category, error) {
	return q.listCategories(ctx, listCategoriesByType)
}

func (q *Queries) listCategories(ctx context.Context, query string) ([]db.Category, error) {
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Category, error) {
		var c db.Category
		err := row.Scan(&c.ID, &c.Type)
		return c, err
	})
}

const listQuestions = `SELECT ` + questionColumns + ` FROM questions ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context) ([]db.Question, error) {
	return q.listQuestions(ctx, listQuestions)
}

const getQuestion = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int32) (db.Question, error) {
	var i db.Question
	err := q.db.QueryRow(ctx, getQuestion, id).Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Question{}, db.ErrNoRows
	}
	return i, err
}

const insertQuestion = `INSERT INTO questions (question, answer, difficulty, category)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (q *Queries) InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (int32, error) {
	var id int32
	err := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Difficulty, arg.Category).Scan(&id)
	return id, err
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

func (q *Queries) DeleteQuestion(ctx context.Context, id int32) error {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNoRows
	}
	return nil
}

// strpos keeps the match a literal, case-sensitive substring test.
const searchQuestions = `SELECT ` + questionColumns + ` FROM questions
WHERE strpos(question, $1) > 0
ORDER BY id`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]db.Question, error) {
	return q.listQuestions(ctx, searchQuestions, term)
}

const listQuestionsByCategory = `SELECT ` + questionColumns + ` FROM questions
WHERE category = $1
ORDER BY id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]db.Question, error) {
	return q.listQuestions(ctx, listQuestionsByCategory, category)
}

const listQuestionsExcluding = `SELECT ` + questionColumns + ` FROM questions
WHERE NOT (id = ANY($1::int[]))
ORDER BY id`

func (q *Queries) ListQuestionsExcluding(ctx context.Context, exclude []int32) ([]db.Question, error) {
	return q.listQuestions(ctx, listQuestionsExcluding, nonNil(exclude))
}

const listQuestionsByCategoryExcluding = `SELECT ` + questionColumns + ` FROM questions
WHERE category = $1 AND NOT (id = ANY($2::int[]))
ORDER BY id`

func (q *Queries) ListQuestionsByCategoryExcluding(ctx context.Context, category int32, exclude []int32) ([]db.Question, error) {
	return q.listQuestions(ctx, listQuestionsByCategoryExcluding, category, nonNil(exclude))
}

func (q *Queries) listQuestions(ctx context.Context, query string, args ...interface{}) ([]db.Question, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Question, error) {
		var i db.Question
		err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Difficulty, &i.Category)
		return i, err
	})
}

// A nil slice encodes as SQL NULL, and id = ANY(NULL) excludes every row.
func nonNil(ids []int32) []int32 {
	if ids == nil {
		return []int32{}
	}
	return ids
}
