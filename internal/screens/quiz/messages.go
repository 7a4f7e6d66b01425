package quiz

import "github.com/abhisek/learntwin/internal/session"

// answerRecordedMsg is sent when Submit returns.
type answerRecordedMsg struct {
	Result *session.Result
	Err    error
}
