package domain

// Settings holds user preferences consumed by the alarm engine. Callers
// apply DefaultSettings on read; there is no migration support.
type Settings struct {
	Difficulty Difficulty `json:"difficulty"`
	Categories []Category `json:"selectedCategories"`
	Tone       Tone       `json:"alarmTone"`
	Vibration  bool       `json:"vibration"`

	// KillCode is the 4-digit emergency override. Empty means never
	// configured, in which case any code is accepted at the check site.
	KillCode string `json:"killCode,omitempty"`

	OnboardingComplete bool `json:"onboardingComplete"`
	ModelDownloaded    bool `json:"modelDownloaded"`
}

// DefaultSettings returns the settings applied when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Difficulty: DifficultyEasy,
		Categories: []Category{CategoryMath},
		Tone:       ToneGentle,
		Vibration:  true,
	}
}

// HasKillCode reports whether an override code was ever configured.
func (s Settings) HasKillCode() bool {
	return s.KillCode != ""
}
