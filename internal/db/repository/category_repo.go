package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategoriesByID(ctx context.Context) ([]db.Category, error)
	ListCategoriesByType(ctx context.Context) ([]db.Category, error)
}

// CategoryRepository adapts the SQL query layer to trivia.CategoryStore.
type CategoryRepository struct {
	store categoryStore
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListByID returns every category ordered by id.
func (r *CategoryRepository) ListByID(ctx context.Context) ([]trivia.Category, error) {
	return toCategories(r.store.ListCategoriesByID(ctx))
}

// ListByType returns every category ordered by its type label.
func (r *CategoryRepository) ListByType(ctx context.Context) ([]trivia.Category, error) {
	return toCategories(r.store.ListCategoriesByType(ctx))
}

func toCategories(rows []db.Category, err error) ([]trivia.Category, error) {
	if err != nil {
		return nil, err
	}
	out := make([]trivia.Category, len(rows))
	for i, row := range rows {
		out[i] = trivia.Category{ID: int(row.ID), Type: row.Type}
	}
	return out, nil
}
