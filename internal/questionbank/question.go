package questionbank

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Difficulty is the tier a question belongs to.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Label returns the display label for a tier.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// Question is a single multiple-choice question.
type Question struct {
	ID         string     `json:"id" validate:"required"`
	Question   string     `json:"question" validate:"required"`
	Options    []string   `json:"options" validate:"min=2,dive,required"`
	Answer     int        `json:"answer" validate:"gte=0"`
	Topic      string     `json:"topic" validate:"required"`
	Chapter    string     `json:"chapter" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=easy medium hard"`
}

// CorrectOption returns the text of the correct option.
func (q *Question) CorrectOption() string {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return ""
	}
	return q.Options[q.Answer]
}

// questionJSON mirrors Question but accepts numeric or string ids.
type questionJSON struct {
	ID         json.RawMessage `json:"id"`
	Question   string          `json:"question"`
	Options    []string        `json:"options"`
	Answer     int             `json:"answer"`
	Topic      string          `json:"topic"`
	Chapter    string          `json:"chapter"`
	Difficulty Difficulty      `json:"difficulty"`
}

func (q *Question) UnmarshalJSON(b []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*q = Question{
		ID:         id,
		Question:   raw.Question,
		Options:    raw.Options,
		Answer:     raw.Answer,
		Topic:      raw.Topic,
		Chapter:    raw.Chapter,
		Difficulty: raw.Difficulty,
	}
	return nil
}

// decodeID keeps the id's textual form so 7 and "7" refer to the same question.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number: %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
