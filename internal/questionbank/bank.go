package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadError reports a question source that is missing or malformed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Bank is an immutable, validated set of questions indexed by tier.
type Bank struct {
	questions    []Question
	byID         map[string]*Question
	byDifficulty map[Difficulty][]Question
}

// Load reads and validates the question document at path.
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	b, err := parse(f)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return b, nil
}

// Parse reads and validates a question document from r.
func Parse(r io.Reader) (*Bank, error) {
	b, err := parse(r)
	if err != nil {
		return nil, &LoadError{Source: "reader", Err: err}
	}
	return b, nil
}

func parse(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var questions []Question
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(questions)
}

// New builds a bank from already-decoded questions, validating them first.
// An empty list is a valid, already exhausted bank.
func New(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		questions:    make([]Question, len(questions)),
		byID:         make(map[string]*Question, len(questions)),
		byDifficulty: make(map[Difficulty][]Question),
	}
	copy(b.questions, questions)
	for i := range b.questions {
		q := &b.questions[i]
		b.byID[q.ID] = q
		b.byDifficulty[q.Difficulty] = append(b.byDifficulty[q.Difficulty], *q)
	}
	return b, nil
}

// All returns every question in source order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// ByDifficulty returns the questions of one tier in source order.
func (b *Bank) ByDifficulty(d Difficulty) []Question {
	src := b.byDifficulty[d]
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// Lookup returns the question with the given id.
func (b *Bank) Lookup(id string) (Question, bool) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return *q, true
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Counts returns the number of questions per tier.
func (b *Bank) Counts() map[Difficulty]int {
	counts := make(map[Difficulty]int, len(b.byDifficulty))
	for d, qs := range b.byDifficulty {
		counts[d] = len(qs)
	}
	return counts
}
