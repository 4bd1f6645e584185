package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/importer"
)

// commandImport pulls questions from Open Trivia DB instead of migrating.
const commandImport = "import"

func main() {
	var (
		command    = flag.StringP("command", "c", db.CommandUp, "Command: up, down, status, or import")
		envFile    = flag.String("env-file", "configs/.env", "Optional dotenv file loaded before reading the environment")
		timeout    = flag.Duration("timeout", time.Minute, "Overall command timeout")
		amount     = flag.IntP("amount", "n", 20, "Questions to request when importing")
		difficulty = flag.String("difficulty", "", "Import difficulty filter: easy, medium, hard (empty for any)")
		sourceURL  = flag.String("source-url", importer.DefaultOpenTDBURL, "Open Trivia DB base URL")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", "migrator").Logger()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug().Err(err).Str("file", *envFile).Msg("env file not loaded")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if *command == commandImport {
		if err := runImport(ctx, cfg.Database, *sourceURL, *amount, *difficulty); err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
		return
	}

	conn, err := open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open database connection")
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("command", *command).
		Msg("connected to database")

	if err := db.Migrate(ctx, conn, cfg.Database.Driver, *command, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migration finished")
}

func open(cfg config.Database) (*sql.DB, error) {
	if cfg.Driver == config.DriverSQLite {
		return sqlite.Open(cfg.SQLitePath)
	}
	// pgx via stdlib (database/sql compatible) for goose.
	return sql.Open("pgx", cfg.PostgresDSN())
}

func runImport(ctx context.Context, cfg config.Database, sourceURL string, amount int, difficulty string) error {
	var (
		categories *repository.CategoryRepository
		questions  *repository.QuestionRepository
	)
	if cfg.Driver == config.DriverSQLite {
		conn, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer conn.Close()
		q := sqlite.New(conn)
		categories, questions = repository.NewCategoryRepository(q), repository.NewQuestionRepository(q)
	} else {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN())
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		q := postgres.New(pool)
		categories, questions = repository.NewCategoryRepository(q), repository.NewQuestionRepository(q)
	}

	imp := importer.New(importer.NewOpenTDBClient(sourceURL, nil), categories, questions, log.Logger)
	res, err := imp.Run(ctx, amount, difficulty)
	if err != nil {
		return fmt.Errorf("after %d imported: %w", res.Imported, err)
	}
	return nil
}
