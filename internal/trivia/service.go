package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// QuestionStore is the persistence contract for questions.
type QuestionStore interface {
	List(ctx context.Context) ([]Question, error)
	Get(ctx context.Context, id int) (Question, error)
	Create(ctx context.Context, q NewQuestion) (int, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, term string) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)
	ListExcluding(ctx context.Context, exclude []int) ([]Question, error)
	ListByCategoryExcluding(ctx context.Context, categoryID int, exclude []int) ([]Question, error)
}

// CategoryStore lists the read-only categories.
type CategoryStore interface {
	ListByID(ctx context.Context) ([]Category, error)
	ListByType(ctx context.Context) ([]Category, error)
}

// Category listing orders, also used as cache keys.
const (
	OrderByID   = "id"
	OrderByType = "type"
)

// CategoryCache stores category listings (implemented by the Redis-backed Cache).
// Get reports a miss with a nil slice and a nil error.
type CategoryCache interface {
	Get(ctx context.Context, order string) ([]Category, error)
	Set(ctx context.Context, order string, categories []Category) error
}

// QuestionPage is one page of the question listing plus its surrounding metadata.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories []Category
}

// SearchResult holds the matches of a text search.
type SearchResult struct {
	Questions []Question
	Total     int
}

// Service composes the stores, the paginator and the quiz selector.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	cache      CategoryCache
	selector   *Selector
}

// ServiceOptions configures optional collaborators.
type ServiceOptions struct {
	Cache CategoryCache
	// Intn overrides the random source used by the quiz selector.
	Intn func(n int) int
}

func NewService(questions QuestionStore, categories CategoryStore, opts ServiceOptions) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      opts.Cache,
		selector:   NewSelector(questions, opts.Intn),
	}
}

// Categories lists every category ordered by id. An empty store is a missing resource.
func (s *Service) Categories(ctx context.Context) (Lookup[[]Category], error) {
	categories, err := s.listCategories(ctx, OrderByID)
	if err != nil {
		return NotFound[[]Category](), err
	}
	if len(categories) == 0 {
		return NotFound[[]Category](), nil
	}
	return Found(categories), nil
}

// QuestionPage returns the requested page of questions ordered by id.
// A page with no questions is a missing resource.
func (s *Service) QuestionPage(ctx context.Context, page int) (Lookup[QuestionPage], error) {
	all, err := s.questions.List(ctx)
	if err != nil {
		return NotFound[QuestionPage](), fmt.Errorf("list questions: %w", err)
	}
	current := Paginate(all, page)

	categories, err := s.listCategories(ctx, OrderByType)
	if err != nil {
		return NotFound[QuestionPage](), err
	}

	if len(current) == 0 {
		return NotFound[QuestionPage](), nil
	}
	return Found(QuestionPage{
		Questions:  current,
		Total:      len(all),
		Categories: categories,
	}), nil
}

// DeleteQuestion removes a question. It returns ErrNotFound when the id is unknown.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if _, err := s.questions.Get(ctx, id); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	questionsDeleted.Inc()
	return nil
}

// CreateQuestion inserts a question and returns its store-assigned id.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion) (int, error) {
	id, err := s.questions.Create(ctx, q)
	if err != nil {
		return 0, err
	}
	questionsCreated.Inc()
	return id, nil
}

// Search matches questions whose text contains term. An empty term lists every question,
// and no matches is still a successful result.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	var (
		questions []Question
		err       error
	)
	if term == "" {
		questions, err = s.questions.List(ctx)
	} else {
		questions, err = s.questions.Search(ctx, term)
	}
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}
	if questions == nil {
		questions = []Question{}
	}
	return SearchResult{Questions: questions, Total: len(questions)}, nil
}

// QuestionsByCategory lists the questions of a category. An empty result is a missing resource.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (Lookup[[]Question], error) {
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return NotFound[[]Question](), fmt.Errorf("list category %d questions: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return NotFound[[]Question](), nil
	}
	return Found(questions), nil
}

// NextQuizQuestion picks the next quiz question; nil means the quiz is complete.
func (s *Service) NextQuizQuestion(ctx context.Context, category QuizCategory, previous []int) (*Question, error) {
	return s.selector.Next(ctx, category, previous)
}

func (s *Service) listCategories(ctx context.Context, order string) ([]Category, error) {
	logger := logging.FromContext(ctx)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, order)
		if err != nil {
			logger.Warn().Err(err).Str("order", order).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	var (
		categories []Category
		err        error
	)
	switch order {
	case OrderByType:
		categories, err = s.categories.ListByType(ctx)
	default:
		categories, err = s.categories.ListByID(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list categories by %s: %w", order, err)
	}

	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, order, categories); err != nil {
			logger.Warn().Err(err).Str("order", order).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// IsNotFound reports whether err marks a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
