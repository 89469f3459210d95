// Package alarm owns the alarm record lifecycle and the ringing session
// state machine.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clarion/internal/clock"
	"clarion/internal/domain"
	"clarion/internal/storage"
)

var (
	// ErrNoAlarm is returned when an operation needs an alarm record
	// and none exists.
	ErrNoAlarm = errors.New("no alarm configured")
)

// QuestionBuffer is how many extra questions a session draws beyond the
// difficulty requirement, covering wrong-answer re-asks.
const QuestionBuffer = 5

// Armer registers and cancels external firing paths.
// Satisfied by *scheduler.Scheduler.
type Armer interface {
	Arm(alarm *domain.Alarm) error
	Disarm(alarmID string) error
}

// SetGenerator produces a verified question batch for preloading.
// Satisfied by *question.Generator.
type SetGenerator interface {
	GenerateSet(ctx context.Context, categories []domain.Category, count int) ([]domain.Question, domain.Provenance)
}

// Service manages the single alarm record: creation supersedes, edits
// re-arm, deletion disarms first.
type Service struct {
	alarms   *storage.AlarmStore
	settings *storage.SettingsStore
	sets     *storage.QuestionSetStore
	armer    Armer
	gen      SetGenerator
	clock    clock.Clock

	lastPreloadCheck time.Time
}

func NewService(alarms *storage.AlarmStore, settings *storage.SettingsStore, sets *storage.QuestionSetStore, armer Armer, gen SetGenerator, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{
		alarms:   alarms,
		settings: settings,
		sets:     sets,
		armer:    armer,
		gen:      gen,
		clock:    clk,
	}
}

// Get returns the alarm record, or nil if none is configured.
func (s *Service) Get() (*domain.Alarm, error) {
	return s.alarms.Get()
}

// Create stores a new alarm at the given time, superseding any prior
// record, and arms it. Difficulty, tone, and vibration come from the
// current settings.
func (s *Service) Create(tod domain.TimeOfDay) (*domain.Alarm, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}

	if prior, err := s.alarms.Get(); err == nil && prior != nil {
		s.armer.Disarm(prior.ID)
	}

	alarm := &domain.Alarm{
		ID:         uuid.NewString(),
		Time:       tod,
		Difficulty: settings.Difficulty,
		Enabled:    true,
		Tone:       settings.Tone,
		Vibration:  settings.Vibration,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.alarms.Save(alarm); err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}
	if err := s.sets.Delete(); err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}
	if err := s.armer.Arm(alarm); err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}
	return alarm, nil
}

// Update applies fn to the stored alarm and re-arms it. Changing the
// alarm time clears lastFiredDate so the new time can fire today.
func (s *Service) Update(fn func(*domain.Alarm)) (*domain.Alarm, error) {
	alarm, err := s.alarms.Get()
	if err != nil {
		return nil, fmt.Errorf("update alarm: %w", err)
	}
	if alarm == nil {
		return nil, ErrNoAlarm
	}

	before := alarm.Time
	fn(alarm)
	if alarm.Time != before {
		alarm.LastFiredDate = ""
	}

	if err := s.alarms.Save(alarm); err != nil {
		return nil, fmt.Errorf("update alarm: %w", err)
	}
	if alarm.Enabled {
		if err := s.armer.Arm(alarm); err != nil {
			return alarm, fmt.Errorf("update alarm: %w", err)
		}
	} else {
		s.armer.Disarm(alarm.ID)
	}
	return alarm, nil
}

// Toggle enables or disables the alarm without touching its record
// otherwise. Disabling cancels all scheduled paths.
func (s *Service) Toggle(enabled bool) (*domain.Alarm, error) {
	return s.Update(func(a *domain.Alarm) { a.Enabled = enabled })
}

// Delete disarms and removes the alarm record plus its prepared
// question set.
func (s *Service) Delete() error {
	alarm, err := s.alarms.Get()
	if err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	if alarm == nil {
		return ErrNoAlarm
	}
	s.armer.Disarm(alarm.ID)
	if err := s.alarms.Delete(); err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	if err := s.sets.Delete(); err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	return nil
}

// NextFire returns the next trigger instant for the armed alarm.
func (s *Service) NextFire() (time.Time, error) {
	alarm, err := s.alarms.Get()
	if err != nil {
		return time.Time{}, err
	}
	if alarm == nil || !alarm.Enabled {
		return time.Time{}, ErrNoAlarm
	}
	return clock.NextFireTime(s.clock.Now(), alarm.Time, alarm.LastFiredDate), nil
}

// PrepareQuestions builds and persists a question set sized for the
// alarm's difficulty. A stored set matching the current configuration
// is kept as-is.
func (s *Service) PrepareQuestions(ctx context.Context) error {
	alarm, err := s.alarms.Get()
	if err != nil {
		return fmt.Errorf("prepare questions: %w", err)
	}
	if alarm == nil || !alarm.Enabled {
		return ErrNoAlarm
	}
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("prepare questions: %w", err)
	}

	if existing, err := s.sets.Get(); err == nil && existing != nil {
		if existing.MatchesConfig(alarm.Difficulty, settings.Categories) {
			return nil
		}
	}

	count := alarm.Difficulty.RequiredCorrect()*2 + QuestionBuffer
	questions, prov := s.gen.GenerateSet(ctx, settings.Categories, count)
	set := &domain.QuestionSet{
		AlarmID:     alarm.ID,
		Difficulty:  alarm.Difficulty,
		Categories:  settings.Categories,
		Questions:   questions,
		GeneratedAt: s.clock.Now().UnixMilli(),
		Source:      prov,
	}
	if err := s.sets.Save(set); err != nil {
		return fmt.Errorf("prepare questions: %w", err)
	}
	return nil
}

// CheckPreload runs PrepareQuestions when the alarm is inside the
// preload window. Checks are throttled to once per minute.
func (s *Service) CheckPreload(ctx context.Context) error {
	now := s.clock.Now()
	if !s.lastPreloadCheck.IsZero() && now.Sub(s.lastPreloadCheck) < time.Minute {
		return nil
	}
	s.lastPreloadCheck = now

	alarm, err := s.alarms.Get()
	if err != nil || alarm == nil || !alarm.Enabled {
		return err
	}
	at := clock.NextFireTime(now, alarm.Time, alarm.LastFiredDate)
	if !clock.WithinPreloadWindow(now, at) {
		return nil
	}
	return s.PrepareQuestions(ctx)
}
