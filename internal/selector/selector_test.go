package selector

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func q(id string, d questionbank.Difficulty) questionbank.Question {
	return questionbank.Question{
		ID:         id,
		Question:   "Question " + id,
		Options:    []string{"a", "b"},
		Answer:     0,
		Topic:      "topic",
		Chapter:    "chapter",
		Difficulty: d,
	}
}

func mustBank(t *testing.T, qs ...questionbank.Question) *questionbank.Bank {
	t.Helper()
	b, err := questionbank.New(qs)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return b
}

func threeTierBank(t *testing.T) *questionbank.Bank {
	return mustBank(t,
		q("e1", questionbank.Easy),
		q("m1", questionbank.Medium),
		q("h1", questionbank.Hard),
	)
}

func entries(ids []string, correct ...bool) []attempt.Entry {
	out := make([]attempt.Entry, len(correct))
	for i, c := range correct {
		id := fmt.Sprintf("x%d", i)
		if i < len(ids) {
			id = ids[i]
		}
		out[i] = attempt.Entry{QuestionID: id, Correct: c}
	}
	return out
}

func TestRecentAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    float64
		wantOK  bool
	}{
		{"empty", nil, 0, false},
		{"one correct", []bool{true}, 1, true},
		{"two of two uses both", []bool{true, false}, 0.5, true},
		{"window of three", []bool{false, false, true, true, true}, 1, true},
		{"one of last three", []bool{true, true, false, true, false}, 1.0 / 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecentAccuracy(entries(nil, tt.correct...), RecentWindow)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("accuracy = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("accuracy %v out of [0,1]", got)
			}
		})
	}
}

func TestTargetTier(t *testing.T) {
	tests := []struct {
		acc  float64
		ok   bool
		want questionbank.Difficulty
	}{
		{0, false, questionbank.Medium},
		{1.0, true, questionbank.Hard},
		{0.8, true, questionbank.Hard},
		{0.79, true, questionbank.Medium},
		{2.0 / 3, true, questionbank.Medium},
		{0.51, true, questionbank.Medium},
		{0.5, true, questionbank.Easy},
		{1.0 / 3, true, questionbank.Easy},
		{0, true, questionbank.Easy},
	}

	for _, tt := range tests {
		if got := TargetTier(tt.acc, tt.ok); got != tt.want {
			t.Errorf("TargetTier(%v, %v) = %q, want %q", tt.acc, tt.ok, got, tt.want)
		}
	}
}

// Scenario A: an empty session starts at medium.
func TestPickNext_EmptySessionPicksMedium(t *testing.T) {
	bank := threeTierBank(t)
	for i := 0; i < 20; i++ {
		got := PickNext(nil, bank, testRNG())
		if got == nil || got.Difficulty != questionbank.Medium {
			t.Fatalf("pick %d = %+v, want medium", i, got)
		}
	}
}

// Scenario B: three correct answers move the learner to hard.
func TestPickNext_AllCorrectPicksHard(t *testing.T) {
	bank := mustBank(t,
		q("e1", questionbank.Easy), q("m1", questionbank.Medium), q("h1", questionbank.Hard),
		q("a", questionbank.Medium), q("b", questionbank.Medium), q("c", questionbank.Medium),
	)
	logs := entries([]string{"a", "b", "c"}, true, true, true)

	got := PickNext(logs, bank, testRNG())
	if got == nil || got.ID != "h1" {
		t.Fatalf("got %+v, want h1", got)
	}
}

// Scenario C: one of three correct drops the learner to easy.
func TestPickNext_OneOfThreePicksEasy(t *testing.T) {
	bank := mustBank(t,
		q("e1", questionbank.Easy), q("m1", questionbank.Medium), q("h1", questionbank.Hard),
		q("a", questionbank.Medium), q("b", questionbank.Medium), q("c", questionbank.Medium),
	)
	logs := entries([]string{"a", "b", "c"}, true, false, false)

	got := PickNext(logs, bank, testRNG())
	if got == nil || got.ID != "e1" {
		t.Fatalf("got %+v, want e1", got)
	}
}

// Scenario D: the chosen tier is used up, so any unseen question is served.
func TestPickNext_FallsBackToAnyUnseen(t *testing.T) {
	bank := threeTierBank(t)
	// One correct answer on the medium question -> accuracy 1.0 -> hard,
	// and the hard question is already answered too.
	logs := []attempt.Entry{
		{QuestionID: "h1", Correct: true},
		{QuestionID: "m1", Correct: true},
	}

	got := PickNext(logs, bank, testRNG())
	if got == nil {
		t.Fatal("expected fallback question, got nil")
	}
	if got.ID != "e1" {
		t.Errorf("got %q, want e1", got.ID)
	}
}

// Scenario E: nothing left to ask.
func TestPickNext_Exhausted(t *testing.T) {
	bank := threeTierBank(t)
	logs := entries([]string{"e1", "m1", "h1"}, true, false, true)

	if got := PickNext(logs, bank, testRNG()); got != nil {
		t.Errorf("expected nil when every question was answered, got %+v", got)
	}
}

func TestPickNext_NeverRepeatsWithinSession(t *testing.T) {
	var qs []questionbank.Question
	for i := 0; i < 12; i++ {
		d := questionbank.AllDifficulties()[i%3]
		qs = append(qs, q(fmt.Sprintf("q%d", i), d))
	}
	bank := mustBank(t, qs...)
	rng := testRNG()

	var logs []attempt.Entry
	for i := 0; i < len(qs); i++ {
		next := PickNext(logs, bank, rng)
		if next == nil {
			t.Fatalf("ran out after %d picks, want %d", i, len(qs))
		}
		if attempt.SeenIDs(logs)[next.ID] {
			t.Fatalf("question %q served twice", next.ID)
		}
		logs = append(logs, attempt.Entry{QuestionID: next.ID, Correct: i%2 == 0})
	}

	if next := PickNext(logs, bank, rng); next != nil {
		t.Errorf("expected exhaustion, got %q", next.ID)
	}
}

func TestPickNext_UniformOverPool(t *testing.T) {
	bank := mustBank(t,
		q("m1", questionbank.Medium),
		q("m2", questionbank.Medium),
		q("m3", questionbank.Medium),
		q("m4", questionbank.Medium),
		q("h1", questionbank.Hard),
	)
	rng := testRNG()

	const draws = 40000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[PickNext(nil, bank, rng).ID]++
	}

	if counts["h1"] != 0 {
		t.Errorf("hard question drawn %d times from a medium pool", counts["h1"])
	}
	expected := draws / 4
	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		// 5% tolerance is far outside sampling noise at this size.
		if diff := counts[id] - expected; diff > expected/20 || diff < -expected/20 {
			t.Errorf("%s drawn %d times, want about %d", id, counts[id], expected)
		}
	}
}

func TestPickNext_DeterministicWithSeed(t *testing.T) {
	bank := mustBank(t,
		q("m1", questionbank.Medium), q("m2", questionbank.Medium), q("m3", questionbank.Medium),
	)
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 10; i++ {
		if a.Next(nil, bank).ID != b.Next(nil, bank).ID {
			t.Fatal("same seed produced different picks")
		}
	}
}
