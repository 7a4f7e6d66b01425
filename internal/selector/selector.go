// Package selector picks the next question for a learner from recent
// in-session performance.
package selector

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"
)

const (
	// RecentWindow is the number of most recent session answers that drive
	// tier selection.
	RecentWindow = 3

	// HardThreshold is the accuracy at or above which hard questions are served.
	HardThreshold = 0.8

	// EasyThreshold is the accuracy at or below which easy questions are served.
	EasyThreshold = 0.5
)

// RecentAccuracy returns the fraction of correct answers among the last
// window entries of logs. ok is false when logs is empty.
func RecentAccuracy(logs []attempt.Entry, window int) (acc float64, ok bool) {
	if len(logs) == 0 || window <= 0 {
		return 0, false
	}
	recent := logs[max(0, len(logs)-window):]
	correct := 0
	for _, e := range recent {
		if e.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(recent)), true
}

// TargetTier maps recent accuracy to a difficulty tier. Without any
// accuracy the learner starts at medium.
func TargetTier(acc float64, ok bool) questionbank.Difficulty {
	switch {
	case !ok:
		return questionbank.Medium
	case acc >= HardThreshold:
		return questionbank.Hard
	case acc <= EasyThreshold:
		return questionbank.Easy
	default:
		return questionbank.Medium
	}
}

// Candidates returns the pool the next question is drawn from: unseen
// questions of tier, or unseen questions of any tier when the tier is
// used up. An empty result means the bank is exhausted for this session.
func Candidates(logs []attempt.Entry, bank *questionbank.Bank, tier questionbank.Difficulty) []questionbank.Question {
	seen := attempt.SeenIDs(logs)

	pool := unseen(bank.ByDifficulty(tier), seen)
	if len(pool) == 0 {
		pool = unseen(bank.All(), seen)
	}
	return pool
}

func unseen(questions []questionbank.Question, seen map[string]bool) []questionbank.Question {
	var out []questionbank.Question
	for _, q := range questions {
		if !seen[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// PickNext chooses the next question given the session log, or nil if
// every question has been answered this session. The choice is uniform
// over the candidate pool.
func PickNext(logs []attempt.Entry, bank *questionbank.Bank, rng *rand.Rand) *questionbank.Question {
	tier := TargetTier(RecentAccuracy(logs, RecentWindow))
	pool := Candidates(logs, bank, tier)
	if len(pool) == 0 {
		return nil
	}
	q := pool[rng.IntN(len(pool))]
	return &q
}

// Selector holds the random source used for picks.
type Selector struct {
	rng *rand.Rand
}

// New creates a Selector drawing from rng.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// NewSeeded creates a Selector with a deterministic PCG source.
// A zero seed seeds from the clock.
func NewSeeded(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Next picks the next question for the session log.
func (s *Selector) Next(logs []attempt.Entry, bank *questionbank.Bank) *questionbank.Question {
	return PickNext(logs, bank, s.rng)
}
