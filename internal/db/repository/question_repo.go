package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

var errOutOfRange = errors.New("value exceeds the 32-bit column range")

type questionStore interface {
	ListQuestions(ctx context.Context) ([]db.Question, error)
	GetQuestion(ctx context.Context, id int32) (db.Question, error)
	InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (int32, error)
	DeleteQuestion(ctx context.Context, id int32) error
	SearchQuestions(ctx context.Context, term string) ([]db.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]db.Question, error)
	ListQuestionsExcluding(ctx context.Context, exclude []int32) ([]db.Question, error)
	ListQuestionsByCategoryExcluding(ctx context.Context, category int32, exclude []int32) ([]db.Question, error)
}

// QuestionRepository adapts the SQL query layer to trivia.QuestionStore.
type QuestionRepository struct {
	store questionStore
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]trivia.Question, error) {
	return toQuestions(r.store.ListQuestions(ctx))
}

// Get fetches one question, returning trivia.ErrNotFound when it does not exist.
func (r *QuestionRepository) Get(ctx context.Context, id int) (trivia.Question, error) {
	key, ok := narrow(id)
	if !ok {
		return trivia.Question{}, fmt.Errorf("get question %d: %w", id, trivia.ErrNotFound)
	}
	row, err := r.store.GetQuestion(ctx, key)
	if err != nil {
		return trivia.Question{}, mapErr(err, "get question %d", id)
	}
	return toQuestion(row), nil
}

// Create inserts a question and returns its new id.
func (r *QuestionRepository) Create(ctx context.Context, q trivia.NewQuestion) (int, error) {
	difficulty, okDifficulty := narrow(q.Difficulty)
	category, okCategory := narrow(q.Category)
	if !okDifficulty || !okCategory {
		return 0, fmt.Errorf("insert question: %w", errOutOfRange)
	}
	id, err := r.store.InsertQuestion(ctx, db.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: difficulty,
		Category:   category,
	})
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return int(id), nil
}

// Delete removes a question, returning trivia.ErrNotFound when nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	key, ok := narrow(id)
	if !ok {
		return fmt.Errorf("delete question %d: %w", id, trivia.ErrNotFound)
	}
	if err := r.store.DeleteQuestion(ctx, key); err != nil {
		return mapErr(err, "delete question %d", id)
	}
	return nil
}

// Search returns questions whose text contains term.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]trivia.Question, error) {
	return toQuestions(r.store.SearchQuestions(ctx, term))
}

// ListByCategory returns the questions of one category.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	category, ok := narrow(categoryID)
	if !ok {
		return []trivia.Question{}, nil
	}
	return toQuestions(r.store.ListQuestionsByCategory(ctx, category))
}

// ListExcluding returns every question whose id is not in exclude.
func (r *QuestionRepository) ListExcluding(ctx context.Context, exclude []int) ([]trivia.Question, error) {
	return toQuestions(r.store.ListQuestionsExcluding(ctx, toInt32s(exclude)))
}

// ListByCategoryExcluding returns the questions of a category whose id is not in exclude.
func (r *QuestionRepository) ListByCategoryExcluding(ctx context.Context, categoryID int, exclude []int) ([]trivia.Question, error) {
	category, ok := narrow(categoryID)
	if !ok {
		return []trivia.Question{}, nil
	}
	return toQuestions(r.store.ListQuestionsByCategoryExcluding(ctx, category, toInt32s(exclude)))
}

func toQuestion(row db.Question) trivia.Question {
	return trivia.Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   int(row.Category),
	}
}

func toQuestions(rows []db.Question, err error) ([]trivia.Question, error) {
	if err != nil {
		return nil, err
	}
	out := make([]trivia.Question, len(rows))
	for i, row := range rows {
		out[i] = toQuestion(row)
	}
	return out, nil
}

// toInt32s keeps only the ids that fit a stored id; the rest cannot match a row.
func toInt32s(ids []int) []int32 {
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if key, ok := narrow(id); ok {
			out = append(out, key)
		}
	}
	return out
}

func narrow(n int) (int32, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func mapErr(err error, format string, args ...interface{}) error {
	if errors.Is(err, db.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, trivia.ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
