package alarm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarion/internal/domain"
	"clarion/internal/storage"
	"clarion/internal/testutil"
)

type fakeSetGen struct {
	calls []int
	prov  domain.Provenance
}

func (f *fakeSetGen) GenerateSet(_ context.Context, categories []domain.Category, count int) ([]domain.Question, domain.Provenance) {
	f.calls = append(f.calls, count)
	qs := make([]domain.Question, count)
	for i := range qs {
		qs[i] = poolQuestion("gen")
		qs[i].Category = categories[0]
	}
	prov := f.prov
	if prov == "" {
		prov = domain.ProvenanceLLM
	}
	return qs, prov
}

type serviceFixture struct {
	svc      *Service
	alarms   *storage.AlarmStore
	settings *storage.SettingsStore
	sets     *storage.QuestionSetStore
	armer    *fakeArmer
	gen      *fakeSetGen
	clk      *testutil.FakeClock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &serviceFixture{
		alarms:   storage.NewAlarmStore(db),
		settings: storage.NewSettingsStore(db),
		sets:     storage.NewQuestionSetStore(db),
		armer:    &fakeArmer{},
		gen:      &fakeSetGen{},
		clk:      testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)),
	}
	f.svc = NewService(f.alarms, f.settings, f.sets, f.armer, f.gen, f.clk)
	return f
}

func TestCreate_StoresAndArms(t *testing.T) {
	f := newServiceFixture(t)

	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, alarm.ID)
	assert.True(t, alarm.Enabled)
	assert.Equal(t, domain.DifficultyEasy, alarm.Difficulty)
	assert.Equal(t, domain.ToneGentle, alarm.Tone)
	assert.Equal(t, []string{alarm.ID}, f.armer.armed)

	stored, err := f.alarms.Get()
	require.NoError(t, err)
	assert.Equal(t, alarm.ID, stored.ID)
}

func TestCreate_SupersedesPriorAlarm(t *testing.T) {
	f := newServiceFixture(t)

	first, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)
	second, err := f.svc.Create(domain.TimeOfDay{Hour: 8, Minute: 0})
	require.NoError(t, err)

	assert.Contains(t, f.armer.disarmed, first.ID)
	stored, err := f.alarms.Get()
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
}

func TestCreate_UsesSettingsForDefaults(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.settings.Update(func(s *domain.Settings) {
		s.Difficulty = domain.DifficultyHard
		s.Tone = domain.ToneIntense
		s.Vibration = false
	})
	require.NoError(t, err)

	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, alarm.Difficulty)
	assert.Equal(t, domain.ToneIntense, alarm.Tone)
	assert.False(t, alarm.Vibration)
}

func TestUpdate_TimeChangeClearsLastFiredDate(t *testing.T) {
	f := newServiceFixture(t)
	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	alarm.LastFiredDate = "2026-03-01"
	require.NoError(t, f.alarms.Save(alarm))

	updated, err := f.svc.Update(func(a *domain.Alarm) {
		a.Time = domain.TimeOfDay{Hour: 9, Minute: 15}
	})
	require.NoError(t, err)
	assert.Empty(t, updated.LastFiredDate)
}

func TestUpdate_UnrelatedEditKeepsLastFiredDate(t *testing.T) {
	f := newServiceFixture(t)
	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	alarm.LastFiredDate = "2026-03-01"
	require.NoError(t, f.alarms.Save(alarm))

	updated, err := f.svc.Update(func(a *domain.Alarm) {
		a.Tone = domain.ToneClassic
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", updated.LastFiredDate)
}

func TestToggle_DisableDisarms(t *testing.T) {
	f := newServiceFixture(t)
	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	updated, err := f.svc.Toggle(false)
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Contains(t, f.armer.disarmed, alarm.ID)

	updated, err = f.svc.Toggle(true)
	require.NoError(t, err)
	assert.True(t, updated.Enabled)
}

func TestDelete_DisarmsAndRemoves(t *testing.T) {
	f := newServiceFixture(t)
	alarm, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)
	require.NoError(t, f.svc.PrepareQuestions(context.Background()))

	require.NoError(t, f.svc.Delete())
	assert.Contains(t, f.armer.disarmed, alarm.ID)

	stored, err := f.alarms.Get()
	require.NoError(t, err)
	assert.Nil(t, stored)

	set, err := f.sets.Get()
	require.NoError(t, err)
	assert.Nil(t, set)
}

func TestDelete_NoAlarm(t *testing.T) {
	f := newServiceFixture(t)
	assert.ErrorIs(t, f.svc.Delete(), ErrNoAlarm)
}

func TestNextFire(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 30})
	require.NoError(t, err)

	at, err := f.svc.NextFire()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC), at)

	_, err = f.svc.Toggle(false)
	require.NoError(t, err)
	_, err = f.svc.NextFire()
	assert.ErrorIs(t, err, ErrNoAlarm)
}

func TestPrepareQuestions_SizesForDifficulty(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.settings.Update(func(s *domain.Settings) { s.Difficulty = domain.DifficultyMedium })
	require.NoError(t, err)
	_, err = f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	require.NoError(t, f.svc.PrepareQuestions(context.Background()))
	// MEDIUM: 3 required, doubled, plus the buffer.
	assert.Equal(t, []int{3*2 + QuestionBuffer}, f.gen.calls)

	set, err := f.sets.Get()
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, domain.DifficultyMedium, set.Difficulty)
	assert.Equal(t, domain.ProvenanceLLM, set.Source)
}

func TestPrepareQuestions_SkipsMatchingSet(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	require.NoError(t, f.svc.PrepareQuestions(context.Background()))
	require.NoError(t, f.svc.PrepareQuestions(context.Background()))
	assert.Len(t, f.gen.calls, 1)
}

func TestPrepareQuestions_RegeneratesOnConfigChange(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)
	require.NoError(t, f.svc.PrepareQuestions(context.Background()))

	_, err = f.svc.Update(func(a *domain.Alarm) { a.Difficulty = domain.DifficultyHard })
	require.NoError(t, err)
	require.NoError(t, f.svc.PrepareQuestions(context.Background()))

	assert.Len(t, f.gen.calls, 2)
	set, err := f.sets.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, set.Difficulty)
}

func TestCheckPreload_OnlyInsideWindow(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	// 06:00, alarm at 07:00: outside the preload window.
	require.NoError(t, f.svc.CheckPreload(context.Background()))
	assert.Empty(t, f.gen.calls)

	f.clk.SetNow(time.Date(2026, 3, 1, 6, 40, 0, 0, time.UTC))
	require.NoError(t, f.svc.CheckPreload(context.Background()))
	assert.Len(t, f.gen.calls, 1)
}

func TestCheckPreload_Throttled(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.svc.Create(domain.TimeOfDay{Hour: 7, Minute: 0})
	require.NoError(t, err)

	f.clk.SetNow(time.Date(2026, 3, 1, 6, 40, 0, 0, time.UTC))
	require.NoError(t, f.svc.CheckPreload(context.Background()))
	require.NoError(t, f.svc.PrepareQuestions(context.Background()))

	// A second check inside the same minute is skipped even though the
	// stored set no longer matters for it.
	f.clk.Advance(10 * time.Second)
	require.NoError(t, f.svc.CheckPreload(context.Background()))
	assert.Len(t, f.gen.calls, 1)
}
