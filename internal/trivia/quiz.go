package trivia

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// QuizCategory is the category selection of a quiz turn.
// A Type of AllCategoriesType selects every category and ignores ID.
type QuizCategory struct {
	ID   int
	Type string
}

// AllCategories reports whether the selection spans every category.
func (c QuizCategory) AllCategories() bool {
	return c.Type == AllCategoriesType
}

type quizStore interface {
	ListExcluding(ctx context.Context, exclude []int) ([]Question, error)
	ListByCategoryExcluding(ctx context.Context, categoryID int, exclude []int) ([]Question, error)
}

// Selector picks a random question that the client has not seen yet.
// It keeps no session state; the previous ids come from the client on every call.
type Selector struct {
	store quizStore
	intn  func(n int) int
}

// NewSelector builds a selector. A nil intn uses math/rand/v2.
func NewSelector(store quizStore, intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{store: store, intn: intn}
}

// Next returns a uniformly random member of the eligible set, or nil once it is empty.
func (s *Selector) Next(ctx context.Context, category QuizCategory, previous []int) (*Question, error) {
	var (
		eligible []Question
		err      error
	)
	if category.AllCategories() {
		eligible, err = s.store.ListExcluding(ctx, previous)
	} else {
		eligible, err = s.store.ListByCategoryExcluding(ctx, category.ID, previous)
	}
	if err != nil {
		return nil, fmt.Errorf("load eligible quiz questions: %w", err)
	}

	next := pick(eligible, s.intn)
	if next == nil {
		quizzesExhausted.Inc()
		return nil, nil
	}
	quizQuestionsServed.Inc()
	return next, nil
}

func pick(eligible []Question, intn func(n int) int) *Question {
	if len(eligible) == 0 {
		return nil
	}
	q := eligible[intn(len(eligible))]
	return &q
}
