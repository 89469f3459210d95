package domain

// Stats are monotonically accumulating session-outcome counters. They
// are mutated only by session resolution and never decremented except
// by an explicit reset.
type Stats struct {
	TotalAlarms       int `json:"totalAlarms"`
	Wins              int `json:"wins"`
	Kills             int `json:"kills"`
	Fails             int `json:"fails"`
	QuestionsAnswered int `json:"totalQuestionsAnswered"`
	QuestionsCorrect  int `json:"totalQuestionsCorrect"`

	// Streak counts consecutive wins. Any non-win outcome resets it.
	Streak int `json:"streak"`
}

// RecordWin folds a winning session into the counters.
func (s *Stats) RecordWin(answered, correct int) {
	s.Wins++
	s.TotalAlarms++
	s.QuestionsAnswered += answered
	s.QuestionsCorrect += correct
	s.Streak++
}

// RecordFail folds a failed (wrong answers or timeout) session in.
func (s *Stats) RecordFail(answered, correct int) {
	s.Fails++
	s.TotalAlarms++
	s.QuestionsAnswered += answered
	s.QuestionsCorrect += correct
	s.Streak = 0
}

// RecordKill folds a kill-switch exit in. Counts only; no question
// totals are attributed to an aborted session.
func (s *Stats) RecordKill() {
	s.Kills++
	s.TotalAlarms++
	s.Streak = 0
}

// WinRate returns the percentage of alarms dismissed by answering.
func (s *Stats) WinRate() float64 {
	if s.TotalAlarms == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalAlarms) * 100
}

// Accuracy returns the percentage of questions answered correctly.
func (s *Stats) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.QuestionsCorrect) / float64(s.QuestionsAnswered) * 100
}
