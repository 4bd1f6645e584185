// Package db holds the row types shared by the Postgres and SQLite query layers
// and the embedded goose migrations for both.
package db

import "errors"

// ErrNoRows is returned by the query layers when a single-row lookup matches nothing.
var ErrNoRows = errors.New("no rows in result set")

// Question is a row of the questions table.
type Question struct {
	ID         int32
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}

// Category is a row of the categories table.
type Category struct {
	ID   int32
	Type string
}

// InsertQuestionParams holds the columns of a new question row.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}
