package alarm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarion/internal/audio"
	"clarion/internal/domain"
	"clarion/internal/storage"
	"clarion/internal/testutil"
)

type fakeArmer struct {
	armed    []string
	disarmed []string
	armErr   error
}

func (f *fakeArmer) Arm(a *domain.Alarm) error {
	if f.armErr != nil {
		return f.armErr
	}
	f.armed = append(f.armed, a.ID)
	return nil
}

func (f *fakeArmer) Disarm(alarmID string) error {
	f.disarmed = append(f.disarmed, alarmID)
	return nil
}

type fakeSource struct {
	draws []int
	cap   int // when > 0, never return more than this many
}

func (f *fakeSource) Draw(count int, categories []domain.Category) []domain.Question {
	f.draws = append(f.draws, count)
	if f.cap > 0 && count > f.cap {
		count = f.cap
	}
	qs := make([]domain.Question, count)
	for i := range qs {
		qs[i] = poolQuestion(fmt.Sprintf("pool-%d-%d", len(f.draws), i))
	}
	return qs
}

// All test questions put the correct answer at index 1 so answers stay
// predictable after the queue shuffle.
func poolQuestion(id string) domain.Question {
	return domain.Question{
		ID: id, Category: domain.CategoryMath, Text: "What is 3+4?",
		Options: []string{"6", "7", "8", "9"}, CorrectIndex: 1,
		Source: domain.SourceBank,
	}
}

type sessionFixture struct {
	mgr      *SessionManager
	alarms   *storage.AlarmStore
	settings *storage.SettingsStore
	stats    *storage.StatsStore
	sets     *storage.QuestionSetStore
	armer    *fakeArmer
	source   *fakeSource
	player   *audio.LogPlayer
	clk      *testutil.FakeClock
}

func newSessionFixture(t *testing.T, difficulty domain.Difficulty) *sessionFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &sessionFixture{
		alarms:   storage.NewAlarmStore(db),
		settings: storage.NewSettingsStore(db),
		stats:    storage.NewStatsStore(db),
		sets:     storage.NewQuestionSetStore(db),
		armer:    &fakeArmer{},
		source:   &fakeSource{},
		player:   audio.NewLogPlayer(nil),
		clk:      testutil.NewFakeClock(time.Date(2026, 3, 1, 7, 0, 1, 0, time.UTC)),
	}
	require.NoError(t, f.alarms.Save(&domain.Alarm{
		ID:         "alarm-1",
		Time:       domain.TimeOfDay{Hour: 7, Minute: 0},
		Difficulty: difficulty,
		Enabled:    true,
		Tone:       domain.ToneGentle,
		Vibration:  true,
	}))
	f.mgr = NewSessionManager(f.alarms, f.settings, f.stats, f.sets, f.source, f.armer, f.player, f.clk, nil)
	return f
}

func TestHandleFired_StartsRingingSession(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))

	session := f.mgr.Active()
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionRinging, session.Status)
	assert.True(t, f.player.Playing())

	alarm, err := f.alarms.Get()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", alarm.LastFiredDate)
}

func TestHandleFired_RejectsWhileSessionActive(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	assert.ErrorIs(t, f.mgr.HandleFired("alarm-1"), ErrSessionActive)
}

func TestHandleFired_RejectsSameDayRefire(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	_, err := f.mgr.Kill("0000")
	require.NoError(t, err)

	// The session is closed but lastFiredDate still gates the day.
	assert.ErrorIs(t, f.mgr.HandleFired("alarm-1"), ErrAlreadyFired)
}

func TestHandleFired_UnknownAlarmID(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)
	assert.ErrorIs(t, f.mgr.HandleFired("other-alarm"), ErrNoAlarm)
}

func TestBeginQuestioning_DrawsRequiredPlusBuffer(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyMedium)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	session := f.mgr.Active()
	assert.Equal(t, domain.SessionQuestioning, session.Status)
	// MEDIUM needs 3 correct, plus the wrong-answer buffer.
	assert.Equal(t, []int{3 + QuestionBuffer}, f.source.draws)
	assert.NotNil(t, f.mgr.CurrentQuestion())
}

func TestBeginQuestioning_PrefersPreparedSet(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	set := &domain.QuestionSet{
		AlarmID:    "alarm-1",
		Difficulty: domain.DifficultyEasy,
		Categories: []domain.Category{domain.CategoryMath},
		Source:     domain.ProvenanceLLM,
	}
	for i := 0; i < 1+QuestionBuffer; i++ {
		set.Questions = append(set.Questions, poolQuestion(fmt.Sprintf("set-%d", i)))
	}
	require.NoError(t, f.sets.Save(set))

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	// The prepared set covered the need; the pool was never touched.
	assert.Empty(t, f.source.draws)
}

func TestAnswer_WinAtRequiredCorrect(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyMedium)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	for i := 0; i < 2; i++ {
		out, err := f.mgr.Answer(1)
		require.NoError(t, err)
		assert.True(t, out.Correct)
		assert.Nil(t, out.Summary)
	}

	out, err := f.mgr.Answer(1)
	require.NoError(t, err)
	require.NotNil(t, out.Summary)
	assert.Equal(t, domain.ResultWin, out.Summary.Result)
	assert.Equal(t, 3, out.Summary.QuestionsCorrect)
	assert.Nil(t, f.mgr.Active())
	assert.False(t, f.player.Playing())

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 3, stats.QuestionsAnswered)
}

func TestAnswer_FailAtWrongAnswerCeiling(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyHard)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	var out AnswerOutcome
	var err error
	for i := 0; i < domain.MaxWrongAnswers; i++ {
		out, err = f.mgr.Answer(0)
		require.NoError(t, err)
		assert.False(t, out.Correct)
	}

	require.NotNil(t, out.Summary)
	assert.Equal(t, domain.ResultFail, out.Summary.Result)
	assert.Equal(t, domain.FailWrongAnswers, out.Summary.Reason)

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Fails)
	assert.Zero(t, stats.Streak)
}

func TestAnswer_ExhaustedQueueRefills(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyHard)
	f.source.cap = 2 // starve the initial load so answering outruns it

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	// Hard requires 5 correct but only 2 questions were loaded; the
	// manager must keep drawing rather than running out.
	var out AnswerOutcome
	var err error
	for i := 0; i < 5; i++ {
		out, err = f.mgr.Answer(1)
		require.NoError(t, err)
		assert.True(t, out.Correct)
	}
	require.NotNil(t, out.Summary)
	assert.Equal(t, domain.ResultWin, out.Summary.Result)
	assert.Greater(t, len(f.source.draws), 1)
}

func TestKill_NoCodeConfiguredAcceptsAnything(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	summary, err := f.mgr.Kill("9999")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultKill, summary.Result)

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Kills)
	assert.Zero(t, stats.QuestionsAnswered)
}

func TestKill_WrongCodeRejected(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)
	_, err := f.settings.Update(func(s *domain.Settings) { s.KillCode = "1234" })
	require.NoError(t, err)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	_, err = f.mgr.Kill("0000")
	assert.ErrorIs(t, err, ErrWrongCode)
	require.NotNil(t, f.mgr.Active())

	summary, err := f.mgr.Kill("1234")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultKill, summary.Result)
}

func TestKill_ReachableFromQuestioning(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyMedium)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())
	_, err := f.mgr.Answer(0)
	require.NoError(t, err)

	summary, err := f.mgr.Kill("any")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultKill, summary.Result)
}

func TestResolve_RearmsForTomorrow(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	_, err := f.mgr.Kill("0000")
	require.NoError(t, err)

	assert.Equal(t, []string{"alarm-1"}, f.armer.armed)
}

func TestTick_TimesOutPastDeadline(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyMedium)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	require.NoError(t, f.mgr.BeginQuestioning())

	f.clk.Advance(domain.MaxRingDuration + time.Second)
	result := f.mgr.Tick(f.clk.Now())

	require.NotNil(t, result.TimedOut)
	assert.Equal(t, domain.ResultTimeout, result.TimedOut.Result)
	assert.Equal(t, domain.FailTimeout, result.TimedOut.Reason)
	assert.Nil(t, f.mgr.Active())
	assert.False(t, f.player.Playing())

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Fails)
}

func TestTick_NoTimeoutBeforeDeadline(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)

	require.NoError(t, f.mgr.HandleFired("alarm-1"))
	f.clk.Advance(domain.MaxRingDuration - time.Minute)

	result := f.mgr.Tick(f.clk.Now())
	assert.Nil(t, result.TimedOut)
	require.NotNil(t, f.mgr.Active())
}

func TestTick_PollPathFiresInsideWindow(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)
	f.clk.SetNow(time.Date(2026, 3, 2, 6, 59, 58, 0, time.UTC))

	// Two seconds before the minute: nothing.
	assert.False(t, f.mgr.Tick(f.clk.Now()).Fired)

	f.clk.Advance(3 * time.Second) // 07:00:01
	result := f.mgr.Tick(f.clk.Now())
	assert.True(t, result.Fired)

	session := f.mgr.Active()
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionRinging, session.Status)
}

func TestTick_PollPathInertAfterSameDayFire(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)
	f.clk.SetNow(time.Date(2026, 3, 2, 7, 0, 1, 0, time.UTC))

	require.True(t, f.mgr.Tick(f.clk.Now()).Fired)
	_, err := f.mgr.Kill("0000")
	require.NoError(t, err)

	assert.False(t, f.mgr.Tick(f.clk.Now()).Fired)
}

func TestTick_DisabledAlarmNeverFires(t *testing.T) {
	f := newSessionFixture(t, domain.DifficultyEasy)
	alarm, err := f.alarms.Get()
	require.NoError(t, err)
	alarm.Enabled = false
	require.NoError(t, f.alarms.Save(alarm))

	f.clk.SetNow(time.Date(2026, 3, 2, 7, 0, 1, 0, time.UTC))
	assert.False(t, f.mgr.Tick(f.clk.Now()).Fired)
}
