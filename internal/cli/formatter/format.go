// Package formatter renders engine state for terminal display.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"clarion/internal/clock"
	"clarion/internal/domain"
	"clarion/internal/genai"
)

// FormatAlarm renders the alarm record with its countdown.
func FormatAlarm(alarm *domain.Alarm, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Alarm") + "\n")

	if alarm == nil {
		b.WriteString(Dim("  No alarm configured. Run 'clarion alarm set HH:MM'.") + "\n")
		return b.String()
	}

	state := StyleGreen.Render("enabled")
	if !alarm.Enabled {
		state = StyleDim.Render("disabled")
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n", Bold(alarm.Time.String()), state))
	b.WriteString(fmt.Sprintf("  Difficulty   %s\n",
		DifficultyColor(alarm.Difficulty).Render(string(alarm.Difficulty))))
	b.WriteString(fmt.Sprintf("  Tone         %s\n", string(alarm.Tone)))
	vib := "off"
	if alarm.Vibration {
		vib = "on"
	}
	b.WriteString(fmt.Sprintf("  Vibration    %s\n", vib))

	if alarm.Enabled {
		at := clock.NextFireTime(now, alarm.Time, alarm.LastFiredDate)
		b.WriteString(fmt.Sprintf("  Rings in     %s\n",
			StyleBlue.Render(clock.HumanCountdown(now, at))))
	}
	if alarm.LastFiredDate != "" {
		b.WriteString(Dim(fmt.Sprintf("  Last fired   %s", alarm.LastFiredDate)) + "\n")
	}
	return b.String()
}

// FormatStats renders the outcome counters.
func FormatStats(stats domain.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Stats") + "\n")

	if stats.TotalAlarms == 0 {
		b.WriteString(Dim("  No alarms recorded yet.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  Alarms       %d\n", stats.TotalAlarms))
	b.WriteString(fmt.Sprintf("  Wins         %s\n", StyleGreen.Render(fmt.Sprintf("%d", stats.Wins))))
	b.WriteString(fmt.Sprintf("  Kills        %s\n", StyleYellow.Render(fmt.Sprintf("%d", stats.Kills))))
	b.WriteString(fmt.Sprintf("  Fails        %s\n", StyleRed.Render(fmt.Sprintf("%d", stats.Fails))))
	b.WriteString(fmt.Sprintf("  Win rate     %.0f%%\n", stats.WinRate()))
	if stats.QuestionsAnswered > 0 {
		b.WriteString(fmt.Sprintf("  Questions    %d answered, %.0f%% correct\n",
			stats.QuestionsAnswered, stats.Accuracy()))
	}
	if stats.Streak > 0 {
		b.WriteString(fmt.Sprintf("  Streak       %s\n",
			StylePurple.Render(fmt.Sprintf("%d", stats.Streak))))
	}
	return b.String()
}

// FormatPool renders the standing question buffer status.
func FormatPool(size, target int, generating bool) string {
	var b strings.Builder
	b.WriteString(Header("Question Pool") + "\n")

	style := StyleYellow
	if size >= target {
		style = StyleGreen
	}
	b.WriteString(fmt.Sprintf("  Ready        %s\n", style.Render(fmt.Sprintf("%d / %d", size, target))))
	if generating {
		b.WriteString("  Generating   " + StyleBlue.Render("in progress") + "\n")
	}
	return b.String()
}

// FormatModelState renders the generator adapter status line.
func FormatModelState(state genai.State, model string) string {
	var b strings.Builder
	b.WriteString(Header("Model") + "\n")

	switch state.Status {
	case genai.StatusReady:
		b.WriteString("  Status       " + StyleGreen.Render("ready") + "\n")
	case genai.StatusDownloading:
		b.WriteString(fmt.Sprintf("  Status       %s (%d%%)\n",
			StyleBlue.Render("downloading"), state.Progress.Percent))
	case genai.StatusLoading:
		b.WriteString("  Status       " + StyleBlue.Render("loading") + "\n")
	case genai.StatusError:
		b.WriteString("  Status       " + StyleRed.Render("error") + "\n")
		if state.Err != "" {
			b.WriteString(Dim("  "+state.Err) + "\n")
		}
	default:
		b.WriteString("  Status       " + StyleDim.Render("not loaded") + "\n")
	}

	if model != "" {
		b.WriteString(fmt.Sprintf("  Variant      %s\n", model))
	}
	return b.String()
}

// FormatSummary renders a terminal session outcome.
func FormatSummary(s *domain.SessionSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n  %s  %s\n", ResultIndicator(s.Result),
		Dim(fmt.Sprintf("after %s", s.Duration().Round(time.Second)))))
	if s.QuestionsAnswered > 0 {
		b.WriteString(fmt.Sprintf("  Answered %d, correct %d, wrong %d\n",
			s.QuestionsAnswered, s.QuestionsCorrect, s.WrongAnswers))
	}
	return b.String()
}
