package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequencer orders attempts across every writer of one database file.
// The counter row is bumped with UPDATE ... RETURNING, which SQLite runs
// atomically, so separate processes never share a number. Within the
// process the mutex also keeps the insert that consumes a number ahead of
// the next call, making file order match call order.
type sequencer struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequencer(ctx context.Context, db *sql.DB) (*sequencer, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempt_sequence (
			id   INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL
		)`,
		// Resume after any rows written before the counter existed.
		`INSERT OR IGNORE INTO attempt_sequence (id, next_val)
			SELECT 1, COALESCE(MAX(sequence), 0) + 1 FROM attempts`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return nil, fmt.Errorf("init attempt sequence: %w", err)
		}
	}
	return &sequencer{db: db}, nil
}

// next reserves one sequence number.
func (s *sequencer) next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE attempt_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return n, nil
}

// with reserves a number and runs write with it while holding the lock.
func (s *sequencer) with(ctx context.Context, write func(seq int64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.next(ctx)
	if err != nil {
		return err
	}
	return write(n)
}
