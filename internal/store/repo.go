package store

import (
	"context"

	"github.com/abhisek/learntwin/internal/attempt"
)

// Columns is the persisted attempt header, in write order.
var Columns = []string{
	"user",
	"question_id",
	"topic",
	"chapter",
	"difficulty",
	"correct_numeric",
	"time_taken",
	"timestamp",
}

// legacyCorrectColumn is the boolean-like column older logs carry instead
// of correct_numeric.
const legacyCorrectColumn = "correct"

// AttemptRepo is an append-only log of attempt records.
type AttemptRepo interface {
	// Append writes one record as a single atomic unit.
	Append(ctx context.Context, r attempt.Record) error

	// LoadAll returns every record in write order. A log that does not
	// exist yet is empty, not an error.
	LoadAll(ctx context.Context) ([]attempt.Record, error)

	// Close releases the backend.
	Close() error
}

// Backend names a persisted store implementation.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

// ForUser filters records down to one learner, keeping order.
func ForUser(records []attempt.Record, user string) []attempt.Record {
	var out []attempt.Record
	for _, r := range records {
		if r.User == user {
			out = append(out, r)
		}
	}
	return out
}
