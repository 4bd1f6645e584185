package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

func migratedSQLite(t *testing.T) config.Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trivia.db")
	conn, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), conn, config.DriverSQLite, db.CommandUp, zerolog.Nop()))
	require.NoError(t, conn.Close())
	return config.Database{Driver: config.DriverSQLite, SQLitePath: path}
}

func TestRunImportReturnsSourceErrors(t *testing.T) {
	cfg := migratedSQLite(t)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	err := runImport(context.Background(), cfg, down.URL, 5, "")
	assert.ErrorContains(t, err, "opentdb non-200: 503")
}

func TestRunImportStoresQuestions(t *testing.T) {
	cfg := migratedSQLite(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"category":"History","difficulty":"easy","question":"Q","correct_answer":"A"}]}`))
	}))
	defer srv.Close()

	require.NoError(t, runImport(context.Background(), cfg, srv.URL, 1, ""))

	conn, err := sqlite.Open(cfg.SQLitePath)
	require.NoError(t, err)
	defer conn.Close()
	rows, err := sqlite.New(conn).ListQuestionsByCategory(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
