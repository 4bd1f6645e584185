package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_created_total",
		Help:      "Questions inserted through the API.",
	})
	questionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_deleted_total",
		Help:      "Questions deleted through the API.",
	})
	quizQuestionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_questions_served_total",
		Help:      "Quiz turns answered with a question.",
	})
	quizzesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_exhausted_total",
		Help:      "Quiz turns with no eligible question left.",
	})
)
