// Package session drives one learner's quiz: it asks the selector for a
// question, times the answer, records the attempt and hands the history to
// analytics.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learntwin/internal/analytics"
	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"
	"github.com/abhisek/learntwin/internal/selector"
	"github.com/abhisek/learntwin/internal/store"
)

var (
	// ErrNoSelection is returned when the submitted option is empty or not
	// one of the current question's options.
	ErrNoSelection = errors.New("session: no option selected")

	// ErrNotActive is returned when Submit is called with no question shown.
	ErrNotActive = errors.New("session: no active question")

	// ErrExhausted is returned by CurrentQuestion once every question has
	// been attempted.
	ErrExhausted = errors.New("session: all questions answered")
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSelector sets the question selector.
func WithSelector(s *selector.Selector) Option {
	return func(c *Controller) { c.sel = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// Controller holds the state of one learner's session. It is safe for use
// from multiple goroutines, though a UI normally drives it from one.
type Controller struct {
	bank   *questionbank.Bank
	repo   store.AttemptRepo
	sel    *selector.Selector
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	user      string
	sessionID string
	phase     Phase
	current   *questionbank.Question
	startTime time.Time // zero until the current question is shown
	log       []attempt.Entry
	correct   int
	startedAt time.Time
}

// New creates a controller for user over bank, persisting to repo.
func New(bank *questionbank.Bank, repo store.AttemptRepo, user string, opts ...Option) *Controller {
	c := &Controller{
		bank:  bank,
		repo:  repo,
		user:  strings.TrimSpace(user),
		now:   time.Now,
		phase: PhaseAwaitingQuestion,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sel == nil {
		c.sel = selector.NewSeeded(0)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.New().String()
	}
	c.logger = c.logger.With("session_id", c.sessionID, "user", c.user)
	return c
}

// User returns the learner identity.
func (c *Controller) User() string { return c.user }

// SessionID returns the session's UUID.
func (c *Controller) SessionID() string { return c.sessionID }

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Log returns a copy of the session log.
func (c *Controller) Log() []attempt.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.log)
}

// Start selects the first question if none is selected. The session moves
// to PhaseExhausted when nothing is left to ask.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.startedAt.IsZero() {
		c.startedAt = c.now()
	}
	if c.current == nil && c.phase != PhaseExhausted {
		c.advance()
	}
}

// CurrentQuestion returns the question to display and starts its timer.
// Calling it again for the same question keeps the original start time.
func (c *Controller) CurrentQuestion() (questionbank.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil && c.phase != PhaseExhausted {
		if c.startedAt.IsZero() {
			c.startedAt = c.now()
		}
		c.advance()
	}
	if c.current == nil {
		return questionbank.Question{}, ErrExhausted
	}
	if c.startTime.IsZero() {
		c.startTime = c.now()
	}
	c.phase = PhaseQuestionActive
	return *c.current, nil
}

// Submit records the learner's answer to the current question and selects
// the next one. If the store rejects the attempt the error is returned and
// the session is left exactly as it was.
func (c *Controller) Submit(ctx context.Context, option string) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.startTime.IsZero() {
		return nil, ErrNotActive
	}
	q := c.current
	idx := slices.Index(q.Options, option)
	if option == "" || idx < 0 {
		return nil, ErrNoSelection
	}

	now := c.now()
	timeTaken := math.Round(now.Sub(c.startTime).Seconds()*100) / 100
	correct := idx == q.Answer

	entry := attempt.NewEntry(q, correct, timeTaken)
	entry.Timestamp = attempt.FormatTimestamp(now)
	rec := entry.Record(c.user)
	rec.SessionID = c.sessionID

	if err := c.repo.Append(ctx, rec); err != nil {
		c.logger.Error("failed to record attempt", "question_id", q.ID, "error", err)
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	c.log = append(c.log, entry)
	if correct {
		c.correct++
	}
	c.startTime = time.Time{}
	c.current = nil
	c.phase = PhaseAnswerSubmitted

	c.logger.Debug("attempt recorded",
		"question_id", q.ID,
		"difficulty", q.Difficulty,
		"correct", correct,
		"time_taken", timeTaken)

	res := &Result{
		Question:  *q,
		Selected:  option,
		Correct:   correct,
		TimeTaken: timeTaken,
		Timestamp: entry.Timestamp,
	}
	c.advance()
	if c.current != nil {
		next := *c.current
		res.Next = &next
	}
	return res, nil
}

// advance asks the selector for the next question. Callers hold c.mu.
func (c *Controller) advance() {
	c.current = c.sel.Next(c.log, c.bank)
	if c.current == nil {
		c.phase = PhaseExhausted
		c.logger.Info("question bank exhausted", "answered", len(c.log))
		return
	}
	if c.phase != PhaseAnswerSubmitted {
		c.phase = PhaseAwaitingQuestion
	}
}

// Report loads the persisted history and analyzes it together with this
// session's log.
func (c *Controller) Report(ctx context.Context) (*analytics.Report, error) {
	persisted, err := c.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return analytics.Analyze(c.user, persisted, c.Log()), nil
}

// Summary returns totals for this session only.
func (c *Controller) Summary() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	var accuracy float64
	if len(c.log) > 0 {
		accuracy = float64(c.correct) / float64(len(c.log))
	}
	var d time.Duration
	if !c.startedAt.IsZero() {
		d = c.now().Sub(c.startedAt)
	}
	return &Summary{
		SessionID:      c.sessionID,
		User:           c.user,
		TotalQuestions: len(c.log),
		TotalCorrect:   c.correct,
		Accuracy:       accuracy,
		Duration:       d,
	}
}
