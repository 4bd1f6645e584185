// Package importer seeds the question store from an external trivia source.
package importer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Source yields raw external questions.
type Source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer maps external questions onto local categories and stores them.
type Importer struct {
	source     Source
	categories trivia.CategoryStore
	questions  trivia.QuestionStore
	logger     zerolog.Logger
}

func New(source Source, categories trivia.CategoryStore, questions trivia.QuestionStore, logger zerolog.Logger) *Importer {
	return &Importer{
		source:     source,
		categories: categories,
		questions:  questions,
		logger:     logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount questions and inserts those whose category matches a local one.
// Questions from unmatched categories are skipped, not created.
func (i *Importer) Run(ctx context.Context, amount int, difficulty string) (Result, error) {
	var res Result
	if amount <= 0 {
		return res, fmt.Errorf("amount must be positive, got %d", amount)
	}

	categories, err := i.categories.ListByID(ctx)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}

	incoming, err := i.source.Fetch(ctx, amount, difficulty)
	if err != nil {
		return res, err
	}

	for _, q := range incoming {
		categoryID, ok := matchCategory(categories, html.UnescapeString(q.Category))
		if !ok {
			res.Skipped++
			i.logger.Debug().Str("category", q.Category).Msg("no local category; skipping")
			continue
		}
		if _, err := i.questions.Create(ctx, trivia.NewQuestion{
			Question:   html.UnescapeString(q.Question),
			Answer:     html.UnescapeString(q.CorrectAnswer),
			Difficulty: difficultyScore(q.Difficulty),
			Category:   categoryID,
		}); err != nil {
			return res, fmt.Errorf("store imported question: %w", err)
		}
		res.Imported++
	}

	i.logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

// matchCategory finds the local category whose name starts the external one,
// so "Science & Nature" and "Entertainment: Film" land in Science and Entertainment.
func matchCategory(categories []trivia.Category, external string) (int, bool) {
	name := strings.ToLower(strings.TrimSpace(external))
	for _, c := range categories {
		if strings.HasPrefix(name, strings.ToLower(c.Type)) {
			return c.ID, true
		}
	}
	return 0, false
}

// difficultyScore maps easy/medium/hard onto the 1..5 scale used locally.
func difficultyScore(d string) int {
	switch strings.ToLower(d) {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}
