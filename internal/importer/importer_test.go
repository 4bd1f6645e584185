package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const samplePayload = `{
  "response_code": 0,
  "results": [
    {"category": "Science &amp; Nature", "type": "multiple", "difficulty": "hard",
     "question": "What is the chemical symbol for &quot;gold&quot;?", "correct_answer": "Au",
     "incorrect_answers": ["Ag", "Gd", "Go"]},
    {"category": "Entertainment: Video Games", "type": "boolean", "difficulty": "easy",
     "question": "Mario first appeared in Donkey Kong.", "correct_answer": "True",
     "incorrect_answers": ["False"]},
    {"category": "Mythology", "type": "multiple", "difficulty": "medium",
     "question": "Who is the Norse god of thunder?", "correct_answer": "Thor",
     "incorrect_answers": ["Odin", "Loki", "Freyr"]}
  ]
}`

func newStores(t *testing.T) (*repository.CategoryRepository, *repository.QuestionRepository) {
	t.Helper()
	conn, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, "sqlite", db.CommandUp, zerolog.Nop()))

	q := sqlite.New(conn)
	return repository.NewCategoryRepository(q), repository.NewQuestionRepository(q)
}

func TestOpenTDBClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("amount"))
		assert.Equal(t, "hard", r.URL.Query().Get("difficulty"))
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	got, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 3, "hard")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Au", got[0].CorrectAnswer)
}

func TestOpenTDBClientRejectsErrorCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer srv.Close()

	_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 5, "")
	assert.Error(t, err)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	_, err = NewOpenTDBClient(down.URL, down.Client()).Fetch(context.Background(), 5, "")
	assert.Error(t, err)
}

func TestImporterStoresMatchedQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	categories, questions := newStores(t)
	imp := New(NewOpenTDBClient(srv.URL, srv.Client()), categories, questions, zerolog.Nop())

	res, err := imp.Run(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2, Skipped: 1}, res)

	stored, err := questions.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, `What is the chemical symbol for "gold"?`, stored[0].Question)
	assert.Equal(t, 5, stored[0].Difficulty)
	assert.Equal(t, 1, stored[0].Category)

	assert.Equal(t, 1, stored[1].Difficulty)
	assert.Equal(t, 5, stored[1].Category)
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, int, string) ([]OpenTDBQuestion, error) {
	return nil, errors.New("offline")
}

func TestImporterPropagatesSourceErrors(t *testing.T) {
	categories, questions := newStores(t)
	imp := New(failingSource{}, categories, questions, zerolog.Nop())

	_, err := imp.Run(context.Background(), 5, "")
	assert.EqualError(t, err, "offline")

	_, err = imp.Run(context.Background(), 0, "")
	assert.Error(t, err)
}

func TestMatchCategoryAndDifficulty(t *testing.T) {
	cats := []trivia.Category{{ID: 1, Type: "Science"}, {ID: 4, Type: "History"}}

	id, ok := matchCategory(cats, "History")
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	_, ok = matchCategory(cats, "Politics")
	assert.False(t, ok)

	assert.Equal(t, 3, difficultyScore("medium"))
	assert.Equal(t, 3, difficultyScore(""))
}
