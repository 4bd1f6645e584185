package repository

import "github.com/gokatarajesh/trivia-api/internal/db"

func questionRow(id, category int32) db.Question {
	return db.Question{
		ID:         id,
		Question:   "Question " + string(rune('A'+id)),
		Answer:     "Answer",
		Difficulty: 2,
		Category:   category,
	}
}
