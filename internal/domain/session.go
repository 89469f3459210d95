package domain

import "time"

// SessionStatus is the current phase of an active session.
type SessionStatus string

const (
	SessionRinging     SessionStatus = "ringing"
	SessionQuestioning SessionStatus = "questioning"
	SessionEnded       SessionStatus = "ended"
)

// SessionResult is the terminal outcome of a session.
type SessionResult string

const (
	ResultWin     SessionResult = "win"
	ResultKill    SessionResult = "kill"
	ResultFail    SessionResult = "fail"
	ResultTimeout SessionResult = "timeout"
)

// FailReason qualifies a failed session.
type FailReason string

const (
	FailWrongAnswers FailReason = "wrong_answers"
	FailTimeout      FailReason = "timeout"
)

// Session is the ephemeral in-memory record of one ringing-to-resolution
// episode. Exactly one may be active at a time.
type Session struct {
	AlarmID   string
	StartedAt time.Time
	Status    SessionStatus

	QuestionsAnswered int
	QuestionsCorrect  int
	WrongAnswers      int
}

// SessionSummary is handed to the stats/reschedule step when a session
// closes. The in-memory session record is discarded afterwards.
type SessionSummary struct {
	AlarmID           string
	StartedAt         time.Time
	EndedAt           time.Time
	Result            SessionResult
	Reason            FailReason
	QuestionsAnswered int
	QuestionsCorrect  int
	WrongAnswers      int
}

// Duration is the wall-clock length of the session.
func (s SessionSummary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}
