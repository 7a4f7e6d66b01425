package attempt

import (
	"math"
	"time"

	"github.com/abhisek/learntwin/internal/questionbank"
)

// TimestampLayout is the ISO-8601 form used for persisted timestamps.
const TimestampLayout = "2006-01-02T15:04:05"

// FormatTimestamp formats t for persistence.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Entry is an attempt as held in the in-memory session log.
type Entry struct {
	QuestionID string
	Topic      string
	Chapter    string
	Difficulty questionbank.Difficulty
	Correct    bool
	TimeTaken  float64 // seconds

	// Timestamp is the persisted record's timestamp, empty if the entry
	// was never written to the store.
	Timestamp string
}

// Record is a persisted attempt row.
type Record struct {
	User       string
	QuestionID string
	Topic      string
	Chapter    string
	Difficulty questionbank.Difficulty
	Correct    Correctness
	TimeTaken  float64 // seconds; NaN when the stored value was unreadable
	Timestamp  string

	// SessionID is only kept by backends that have a column for it.
	SessionID string
}

// NewEntry builds a session entry for an answer to q.
func NewEntry(q *questionbank.Question, correct bool, timeTaken float64) Entry {
	return Entry{
		QuestionID: q.ID,
		Topic:      q.Topic,
		Chapter:    q.Chapter,
		Difficulty: q.Difficulty,
		Correct:    correct,
		TimeTaken:  timeTaken,
	}
}

// Record converts a session entry into the persisted row shape for user.
func (e Entry) Record(user string) Record {
	return Record{
		User:       user,
		QuestionID: e.QuestionID,
		Topic:      e.Topic,
		Chapter:    e.Chapter,
		Difficulty: e.Difficulty,
		Correct:    FromBool(e.Correct),
		TimeTaken:  e.TimeTaken,
		Timestamp:  e.Timestamp,
	}
}

// HasTime reports whether the record carries a usable time value.
func (r Record) HasTime() bool {
	return !math.IsNaN(r.TimeTaken)
}

// Key identifies a persisted attempt for merge purposes.
type Key struct {
	User       string
	QuestionID string
	Timestamp  string
}

// Key returns the record's identity.
func (r Record) Key() Key {
	return Key{User: r.User, QuestionID: r.QuestionID, Timestamp: r.Timestamp}
}

// SeenIDs returns the set of question ids present in logs.
func SeenIDs(logs []Entry) map[string]bool {
	seen := make(map[string]bool, len(logs))
	for _, e := range logs {
		seen[e.QuestionID] = true
	}
	return seen
}
