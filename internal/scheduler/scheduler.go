// Package scheduler translates an alarm record into redundant external
// triggers. Two independent paths are armed per alarm; a third in-process
// polling path is owned by the session lifecycle, not by this package.
package scheduler

import (
	"errors"
	"fmt"
	"io"

	"clarion/internal/clock"
	"clarion/internal/domain"
)

// Payload carries everything a firing path needs to resume a session
// without re-reading storage.
type Payload struct {
	AlarmID    string            `json:"alarmId"`
	Time       string            `json:"time"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Tone       domain.Tone       `json:"tone"`
	Vibration  bool              `json:"vibration"`
	TriggerAt  int64             `json:"triggerAt"` // unix millis
}

// NativeAlarm is the exact OS alarm path. One alarm slot per process.
type NativeAlarm interface {
	Schedule(p Payload) error
	Cancel(alarmID string) error
}

// Notifier is the local-notification path, addressed by a numeric id
// derived from the alarm id.
type Notifier interface {
	Schedule(id uint32, p Payload) error
	Cancel(id uint32) error
}

// NotificationID folds an alarm id into a stable non-negative 32-bit
// notification id.
func NotificationID(alarmID string) uint32 {
	var hash int32
	for _, c := range alarmID {
		hash = hash<<5 - hash + int32(c)
	}
	if hash < 0 {
		hash = -hash
	}
	return uint32(hash)
}

// Scheduler arms and disarms the two external firing paths. Each path
// is attempted independently; a single surviving path is enough.
type Scheduler struct {
	native   NativeAlarm
	notifier Notifier
	clock    clock.Clock
	logw     io.Writer
}

func New(native NativeAlarm, notifier Notifier, clk clock.Clock, logw io.Writer) *Scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	if logw == nil {
		logw = io.Discard
	}
	return &Scheduler{native: native, notifier: notifier, clock: clk, logw: logw}
}

// Arm cancels any previously armed triggers for the alarm, then
// registers both paths for the next fire instant. Cancel-before-arm
// keeps a window with two live triggers from ever existing. Returns an
// error only when no path could be armed.
func (s *Scheduler) Arm(alarm *domain.Alarm) error {
	if alarm == nil || alarm.ID == "" {
		return fmt.Errorf("arm: missing alarm")
	}

	s.disarm(alarm.ID)

	at := clock.NextFireTime(s.clock.Now(), alarm.Time, alarm.LastFiredDate)
	p := Payload{
		AlarmID:    alarm.ID,
		Time:       alarm.Time.String(),
		Difficulty: alarm.Difficulty,
		Tone:       alarm.Tone,
		Vibration:  alarm.Vibration,
		TriggerAt:  at.UnixMilli(),
	}

	var nativeErr, notifyErr error
	if s.native != nil {
		if nativeErr = s.native.Schedule(p); nativeErr != nil {
			fmt.Fprintf(s.logw, "scheduler: native path failed for %s: %v\n", alarm.ID, nativeErr)
		}
	}
	if s.notifier != nil {
		if notifyErr = s.notifier.Schedule(NotificationID(alarm.ID), p); notifyErr != nil {
			fmt.Fprintf(s.logw, "scheduler: notification path failed for %s: %v\n", alarm.ID, notifyErr)
		}
	}

	if s.native != nil && s.notifier != nil && nativeErr != nil && notifyErr != nil {
		return fmt.Errorf("arm %s: no firing path armed: %w", alarm.ID, errors.Join(nativeErr, notifyErr))
	}
	return nil
}

// Disarm cancels both paths. Each cancellation is attempted even if the
// other fails.
func (s *Scheduler) Disarm(alarmID string) error {
	if alarmID == "" {
		return fmt.Errorf("disarm: missing alarm id")
	}
	return s.disarm(alarmID)
}

func (s *Scheduler) disarm(alarmID string) error {
	var errs []error
	if s.native != nil {
		if err := s.native.Cancel(alarmID); err != nil {
			fmt.Fprintf(s.logw, "scheduler: native cancel failed for %s: %v\n", alarmID, err)
			errs = append(errs, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Cancel(NotificationID(alarmID)); err != nil {
			fmt.Fprintf(s.logw, "scheduler: notification cancel failed for %s: %v\n", alarmID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
