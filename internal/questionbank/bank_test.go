package questionbank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `[
  {"id": 1, "question": "2 + 2?", "options": ["3", "4"], "answer": 1,
   "topic": "arithmetic", "chapter": "numbers", "difficulty": "easy"},
  {"id": "q2", "question": "Derivative of x^2?", "options": ["x", "2x", "x^2"], "answer": 1,
   "topic": "calculus", "chapter": "derivatives", "difficulty": "medium"},
  {"id": 3, "question": "Integral of 1/x?", "options": ["ln|x|", "1/x^2"], "answer": 0,
   "topic": "calculus", "chapter": "integrals", "difficulty": "hard"}
]`

func TestParse_Valid(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 3, b.Len())
	assert.Len(t, b.ByDifficulty(Easy), 1)
	assert.Len(t, b.ByDifficulty(Medium), 1)
	assert.Len(t, b.ByDifficulty(Hard), 1)

	q, ok := b.Lookup("1")
	require.True(t, ok, "numeric id should be addressable by its string form")
	assert.Equal(t, "4", q.CorrectOption())

	_, ok = b.Lookup("q2")
	assert.True(t, ok)
}

func TestParse_Counts(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	want := map[Difficulty]int{Easy: 1, Medium: 1, Hard: 1}
	assert.Equal(t, want, b.Counts())
}

func TestParse_EmptyArray(t *testing.T) {
	b, err := Parse(strings.NewReader(`[]`))
	require.NoError(t, err)

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.All())
	assert.Empty(t, b.ByDifficulty(Easy))
}

func TestBank_ReturnsCopies(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	all := b.All()
	all[0].ID = "mutated"

	_, ok := b.Lookup("1")
	assert.True(t, ok, "mutating the returned slice must not affect the bank")
	assert.Equal(t, "1", b.All()[0].ID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{`},
		{"not an array", `{"id": 1}`},
		{"null", `null`},
		{"one option", `[{"id":1,"question":"q","options":["a"],"answer":0,"topic":"t","chapter":"c","difficulty":"easy"}]`},
		{"answer out of range", `[{"id":1,"question":"q","options":["a","b"],"answer":2,"topic":"t","chapter":"c","difficulty":"easy"}]`},
		{"bad difficulty", `[{"id":1,"question":"q","options":["a","b"],"answer":0,"topic":"t","chapter":"c","difficulty":"expert"}]`},
		{"missing chapter", `[{"id":1,"question":"q","options":["a","b"],"answer":0,"topic":"t","difficulty":"easy"}]`},
		{"duplicate id", `[
			{"id":1,"question":"q","options":["a","b"],"answer":0,"topic":"t","chapter":"c","difficulty":"easy"},
			{"id":"1","question":"r","options":["a","b"],"answer":1,"topic":"t","chapter":"c","difficulty":"hard"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)

			var le *LoadError
			assert.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range AllDifficulties() {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if Difficulty("expert").Valid() {
		t.Error("expert should not be valid")
	}
}
