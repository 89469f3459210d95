package storage

import (
	"database/sql"
	"errors"

	"clarion/internal/domain"
)

// Storage keys. Values are JSON blobs in the kv table.
const (
	keyAlarm       = "alarm"
	keySettings    = "settings"
	keyStats       = "stats"
	keyPool        = "question_pool"
	keyQuestionSet = "question_set"
)

// AlarmStore persists the single alarm record.
type AlarmStore struct{ kv *KV }

func NewAlarmStore(db *sql.DB) *AlarmStore { return &AlarmStore{kv: NewKV(db)} }

// Get returns the stored alarm, or nil if none exists.
func (s *AlarmStore) Get() (*domain.Alarm, error) {
	var a domain.Alarm
	if err := s.kv.Get(keyAlarm, &a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Save stores the alarm, superseding any prior record.
func (s *AlarmStore) Save(a *domain.Alarm) error { return s.kv.Set(keyAlarm, a) }

// Delete removes the alarm record.
func (s *AlarmStore) Delete() error { return s.kv.Remove(keyAlarm) }

// SettingsStore persists user preferences. Get applies defaults when
// nothing is stored, so callers never see a zero-value Settings.
type SettingsStore struct{ kv *KV }

func NewSettingsStore(db *sql.DB) *SettingsStore { return &SettingsStore{kv: NewKV(db)} }

func (s *SettingsStore) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if err := s.kv.Get(keySettings, &settings); err != nil && !errors.Is(err, ErrNotFound) {
		return domain.DefaultSettings(), err
	}
	if len(settings.Categories) == 0 {
		settings.Categories = domain.DefaultSettings().Categories
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings domain.Settings) error {
	return s.kv.Set(keySettings, settings)
}

// Update applies fn to the current settings and saves the result.
func (s *SettingsStore) Update(fn func(*domain.Settings)) (domain.Settings, error) {
	settings, err := s.Get()
	if err != nil {
		return settings, err
	}
	fn(&settings)
	if err := s.Save(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// StatsStore persists the accumulating outcome counters.
type StatsStore struct{ kv *KV }

func NewStatsStore(db *sql.DB) *StatsStore { return &StatsStore{kv: NewKV(db)} }

func (s *StatsStore) Get() (domain.Stats, error) {
	var stats domain.Stats
	if err := s.kv.Get(keyStats, &stats); err != nil && !errors.Is(err, ErrNotFound) {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (s *StatsStore) Save(stats domain.Stats) error { return s.kv.Set(keyStats, stats) }

// Reset clears all counters. The only sanctioned decrement.
func (s *StatsStore) Reset() error { return s.kv.Remove(keyStats) }

// PoolState is the persisted standing buffer of ready-to-serve
// questions plus the configuration it was built for.
type PoolState struct {
	Questions   []domain.Question `json:"questions"`
	Categories  []domain.Category `json:"categories"`
	GeneratedAt int64             `json:"generatedAt"` // unix millis
}

// PoolStore persists the question pool.
type PoolStore struct{ kv *KV }

func NewPoolStore(db *sql.DB) *PoolStore { return &PoolStore{kv: NewKV(db)} }

// Get returns the stored pool state, or an empty state if none exists.
func (s *PoolStore) Get() (PoolState, error) {
	var state PoolState
	if err := s.kv.Get(keyPool, &state); err != nil && !errors.Is(err, ErrNotFound) {
		return PoolState{}, err
	}
	return state, nil
}

func (s *PoolStore) Save(state PoolState) error { return s.kv.Set(keyPool, state) }

func (s *PoolStore) Clear() error { return s.kv.Remove(keyPool) }

// QuestionSetStore persists the per-alarm prepared question set.
type QuestionSetStore struct{ kv *KV }

func NewQuestionSetStore(db *sql.DB) *QuestionSetStore { return &QuestionSetStore{kv: NewKV(db)} }

// Get returns the stored set, or nil if none exists.
func (s *QuestionSetStore) Get() (*domain.QuestionSet, error) {
	var set domain.QuestionSet
	if err := s.kv.Get(keyQuestionSet, &set); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

func (s *QuestionSetStore) Save(set *domain.QuestionSet) error {
	return s.kv.Set(keyQuestionSet, set)
}

func (s *QuestionSetStore) Delete() error { return s.kv.Remove(keyQuestionSet) }
