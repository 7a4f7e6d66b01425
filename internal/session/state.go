package session

import (
	"time"

	"github.com/abhisek/learntwin/internal/questionbank"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseAwaitingQuestion Phase = iota // No question selected yet
	PhaseQuestionActive                // A question is displayed and timed
	PhaseAnswerSubmitted               // Answer recorded, next question not yet shown
	PhaseExhausted                     // Every question has been attempted
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting_question"
	case PhaseQuestionActive:
		return "question_active"
	case PhaseAnswerSubmitted:
		return "answer_submitted"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is the outcome of one submitted answer.
type Result struct {
	Question  questionbank.Question
	Selected  string
	Correct   bool
	TimeTaken float64 // seconds, rounded to 2 decimals
	Timestamp string

	// Next is the question now current, nil when the bank is exhausted.
	Next *questionbank.Question
}

// Summary holds in-session totals for the end screen.
type Summary struct {
	SessionID      string
	User           string
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Duration       time.Duration
}
