package domain

import "time"

// Difficulty controls how many correct answers are required to dismiss
// a ringing alarm.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy: true, DifficultyMedium: true, DifficultyHard: true,
}

// RequiredCorrect returns the number of correct answers needed for the
// difficulty. Unknown values fall back to the easy requirement.
func (d Difficulty) RequiredCorrect() int {
	switch d {
	case DifficultyMedium:
		return 3
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// MaxWrongAnswers is the failure ceiling for a session, independent of
// difficulty.
const MaxWrongAnswers = 5

// MaxRingDuration is the hard wall-clock timeout for a ringing session.
const MaxRingDuration = 20 * time.Minute

// Tone identifies an alarm sound.
type Tone string

const (
	ToneGentle  Tone = "gentle"
	ToneClassic Tone = "classic"
	ToneIntense Tone = "intense"
)

// PremiumTones marks tones gated behind the premium flag. The flag is
// consumed elsewhere; the engine only carries the marker.
var PremiumTones = map[Tone]bool{ToneClassic: true, ToneIntense: true}

// FiredDateLayout is the calendar-date format stored in LastFiredDate.
const FiredDateLayout = "2006-01-02"

// Alarm is the single persisted wake configuration. At most one record
// exists system-wide; creating a new one supersedes the prior one.
type Alarm struct {
	ID         string     `json:"id"`
	Time       TimeOfDay  `json:"time"`
	Difficulty Difficulty `json:"difficulty"`
	Enabled    bool       `json:"enabled"`
	Tone       Tone       `json:"tone"`
	Vibration  bool       `json:"vibration"`

	// LastFiredDate is the calendar date (FiredDateLayout) of the last
	// session start, or empty if the alarm has never fired. A same-day
	// value makes every redundant firing path inert for the rest of
	// the day.
	LastFiredDate string `json:"lastFiredDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FiredToday reports whether the alarm already started a session on the
// calendar day of now.
func (a *Alarm) FiredToday(now time.Time) bool {
	return a.LastFiredDate != "" && a.LastFiredDate == now.Format(FiredDateLayout)
}

// TimeOfDay is a wall-clock trigger time with no date and no zone.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) String() string {
	return formatTwoDigit(t.Hour) + ":" + formatTwoDigit(t.Minute)
}

func formatTwoDigit(n int) string {
	if n < 0 {
		n = 0
	}
	return string([]byte{byte('0' + n/10%10), byte('0' + n%10)})
}
