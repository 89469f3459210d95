// Package clock provides the pure time computations behind alarm
// scheduling: next-fire resolution, countdowns, and the in-process
// polling predicate. Every function takes an explicit "now" so callers
// and tests control the wall clock.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clarion/internal/domain"
)

// Clock abstracts time.Now for components that need an injectable
// wall clock.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// ParseTimeOfDay parses "HH:MM". Malformed fields clamp into valid
// ranges (0-23 / 0-59) rather than failing; a missing field reads as 0.
func ParseTimeOfDay(s string) domain.TimeOfDay {
	var hour, minute int
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return domain.TimeOfDay{Hour: clamp(hour, 0, 23), Minute: clamp(minute, 0, 59)}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// NextFireTime computes the next instant the alarm should ring.
// If lastFiredDate equals today's calendar date the trigger is already
// consumed and the result is tomorrow at tod; otherwise today at tod if
// that instant is still in the future, else tomorrow at tod.
func NextFireTime(now time.Time, tod domain.TimeOfDay, lastFiredDate string) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())

	if lastFiredDate != "" && lastFiredDate == now.Format(domain.FiredDateLayout) {
		return today.AddDate(0, 0, 1)
	}
	if today.After(now) {
		return today
	}
	return today.AddDate(0, 0, 1)
}

// MsUntil returns the non-negative millisecond distance from now to at.
func MsUntil(now, at time.Time) int64 {
	ms := at.Sub(now).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// HumanCountdown renders the positive difference between now and at as
// days/hours/minutes. At or past the boundary it returns "Now"; under a
// minute it returns "Less than a minute".
func HumanCountdown(now, at time.Time) string {
	diff := at.Sub(now)
	if diff <= 0 {
		return "Now"
	}

	minutes := int(diff.Minutes())
	hours := minutes / 60
	days := hours / 24
	remHours := hours % 24
	remMinutes := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if remHours > 0 {
		parts = append(parts, plural(remHours, "hour"))
	}
	if remMinutes > 0 && days == 0 {
		parts = append(parts, plural(remMinutes, "minute"))
	}
	if len(parts) == 0 {
		return "Less than a minute"
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DefaultPollWindow is how far into the trigger minute the in-process
// poll still counts as a match. Wide enough that a busy 1-second ticker
// cannot miss the exact tick; treated as a tunable, not a contract.
const DefaultPollWindow = 3 * time.Second

// MatchesAlarmTime reports whether now falls on the alarm's trigger
// minute, within the leading window. Used by the polling firing path.
func MatchesAlarmTime(now time.Time, tod domain.TimeOfDay, window time.Duration) bool {
	if window <= 0 {
		window = DefaultPollWindow
	}
	if now.Hour() != tod.Hour || now.Minute() != tod.Minute {
		return false
	}
	return time.Duration(now.Second())*time.Second <= window
}

// PreloadWindow is how long before the trigger questions should be
// ready in the pool.
const PreloadWindow = 30 * time.Minute

// WithinPreloadWindow reports whether at is coming up soon enough that
// the question pool should be topped up now.
func WithinPreloadWindow(now, at time.Time) bool {
	diff := at.Sub(now)
	return diff > 0 && diff <= PreloadWindow
}
