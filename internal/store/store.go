package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const attemptsTable = "attempts"

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	sequence        INTEGER PRIMARY KEY,
	session_id      TEXT    NOT NULL DEFAULT '',
	user            TEXT    NOT NULL,
	question_id     TEXT    NOT NULL,
	topic           TEXT    NOT NULL,
	chapter         TEXT    NOT NULL,
	difficulty      TEXT    NOT NULL,
	correct_numeric INTEGER NOT NULL CHECK (correct_numeric IN (0, 1)),
	time_taken      REAL,
	timestamp       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS attempts_user ON attempts (user);
`

// SQLite stores attempts in a SQLite database.
type SQLite struct {
	db     *sql.DB
	drv    *entsql.Driver
	seq    *sequencer
	logger *slog.Logger
}

var _ AttemptRepo = (*SQLite)(nil)

// OpenSQLite connects to the SQLite database at dsn, applies pragmas and
// creates the attempts table if needed.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequencer(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{
		db:     db,
		drv:    entsql.OpenDB(dialect.SQLite, db),
		seq:    seq,
		logger: logger,
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.drv.Close()
}

func (s *SQLite) Append(ctx context.Context, r attempt.Record) error {
	var timeTaken any
	if r.HasTime() {
		timeTaken = r.TimeTaken
	}

	return s.seq.with(ctx, func(seq int64) error {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(attemptsTable).
			Columns("sequence", "session_id", "user", "question_id", "topic", "chapter",
				"difficulty", "correct_numeric", "time_taken", "timestamp").
			Values(seq, r.SessionID, strings.TrimSpace(r.User), strings.TrimSpace(r.QuestionID), r.Topic, r.Chapter,
				string(r.Difficulty), r.Correct.Int(), timeTaken, r.Timestamp).
			Query()

		if err := s.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}
		return nil
	})
}

func (s *SQLite) LoadAll(ctx context.Context) ([]attempt.Record, error) {
	return s.load(ctx, "")
}

// LoadUser returns one learner's records in write order.
func (s *SQLite) LoadUser(ctx context.Context, user string) ([]attempt.Record, error) {
	return s.load(ctx, user)
}

func (s *SQLite) load(ctx context.Context, user string) ([]attempt.Record, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("session_id", "user", "question_id", "topic", "chapter",
			"difficulty", "correct_numeric", "time_taken", "timestamp").
		From(entsql.Table(attemptsTable)).
		OrderBy("sequence")
	if user != "" {
		sel.Where(entsql.EQ("user", user))
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []attempt.Record
	for rows.Next() {
		var (
			r          attempt.Record
			difficulty string
			correct    int
			timeTaken  sql.NullFloat64
		)
		if err := rows.Scan(&r.SessionID, &r.User, &r.QuestionID, &r.Topic, &r.Chapter,
			&difficulty, &correct, &timeTaken, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		r.Difficulty = questionbank.Difficulty(difficulty)
		r.Correct = attempt.FromBool(correct == 1)
		r.TimeTaken = math.NaN()
		if timeTaken.Valid {
			r.TimeTaken = timeTaken.Float64
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return records, nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DataDir resolves the application data directory:
// 1. $XDG_DATA_HOME/learntwin
// 2. ~/.local/share/learntwin
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "learntwin"), nil
}

// DefaultDBPath returns the SQLite file inside DataDir.
func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "learntwin.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// Open opens the backend named by b at path.
func Open(b Backend, path string, logger *slog.Logger) (AttemptRepo, error) {
	switch b {
	case BackendCSV, "":
		return OpenCSV(path, logger), nil
	case BackendSQLite:
		if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", b)
	}
}
