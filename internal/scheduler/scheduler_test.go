package scheduler

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarion/internal/domain"
	"clarion/internal/testutil"
)

type fakeNative struct {
	scheduled []Payload
	cancels   []string
	schedErr  error
	cancelErr error
}

func (f *fakeNative) Schedule(p Payload) error {
	if f.schedErr != nil {
		return f.schedErr
	}
	f.scheduled = append(f.scheduled, p)
	return nil
}

func (f *fakeNative) Cancel(alarmID string) error {
	f.cancels = append(f.cancels, alarmID)
	return f.cancelErr
}

type fakeNotifier struct {
	scheduled map[uint32]Payload
	cancels   []uint32
	schedErr  error
	cancelErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{scheduled: map[uint32]Payload{}}
}

func (f *fakeNotifier) Schedule(id uint32, p Payload) error {
	if f.schedErr != nil {
		return f.schedErr
	}
	f.scheduled[id] = p
	return nil
}

func (f *fakeNotifier) Cancel(id uint32) error {
	f.cancels = append(f.cancels, id)
	return f.cancelErr
}

func testAlarm() *domain.Alarm {
	return &domain.Alarm{
		ID:         "alarm-1",
		Time:       domain.TimeOfDay{Hour: 7, Minute: 30},
		Difficulty: domain.DifficultyMedium,
		Enabled:    true,
		Tone:       domain.ToneGentle,
		Vibration:  true,
	}
}

func TestArm_SchedulesBothPaths(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	native := &fakeNative{}
	notifier := newFakeNotifier()
	s := New(native, notifier, clk, nil)

	require.NoError(t, s.Arm(testAlarm()))

	require.Len(t, native.scheduled, 1)
	p := native.scheduled[0]
	assert.Equal(t, "alarm-1", p.AlarmID)
	assert.Equal(t, "07:30", p.Time)
	assert.Equal(t, domain.DifficultyMedium, p.Difficulty)
	assert.Equal(t, domain.ToneGentle, p.Tone)
	assert.True(t, p.Vibration)

	want := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, p.TriggerAt)

	require.Len(t, notifier.scheduled, 1)
	assert.Equal(t, p, notifier.scheduled[NotificationID("alarm-1")])
}

func TestArm_CancelsBeforeScheduling(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	native := &fakeNative{}
	notifier := newFakeNotifier()
	s := New(native, notifier, clk, nil)

	require.NoError(t, s.Arm(testAlarm()))
	require.NoError(t, s.Arm(testAlarm()))

	assert.Equal(t, []string{"alarm-1", "alarm-1"}, native.cancels)
	assert.Len(t, native.scheduled, 2)
}

func TestArm_FiredTodayLandsOnTomorrow(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	native := &fakeNative{}
	s := New(native, newFakeNotifier(), clk, nil)

	alarm := testAlarm()
	alarm.LastFiredDate = "2026-03-01"
	require.NoError(t, s.Arm(alarm))

	want := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, native.scheduled[0].TriggerAt)
}

func TestArm_OnePathFailingIsTolerated(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	native := &fakeNative{schedErr: fmt.Errorf("exact alarms unavailable")}
	notifier := newFakeNotifier()
	var logbuf bytes.Buffer
	s := New(native, notifier, clk, &logbuf)

	require.NoError(t, s.Arm(testAlarm()))
	assert.Len(t, notifier.scheduled, 1)
	assert.Contains(t, logbuf.String(), "native path failed")
}

func TestArm_BothPathsFailing(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	native := &fakeNative{schedErr: fmt.Errorf("native down")}
	notifier := newFakeNotifier()
	notifier.schedErr = fmt.Errorf("notifications down")
	s := New(native, notifier, clk, nil)

	assert.Error(t, s.Arm(testAlarm()))
}

func TestDisarm_CancelsBothPathsIndependently(t *testing.T) {
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	native := &fakeNative{cancelErr: fmt.Errorf("nothing scheduled")}
	notifier := newFakeNotifier()
	s := New(native, notifier, clk, nil)

	err := s.Disarm("alarm-1")
	assert.Error(t, err)
	// The native failure did not stop the notification cancel.
	assert.Equal(t, []uint32{NotificationID("alarm-1")}, notifier.cancels)
}

func TestNotificationID_StableAndNonNegative(t *testing.T) {
	a := NotificationID("alarm-1")
	assert.Equal(t, a, NotificationID("alarm-1"))
	assert.NotEqual(t, a, NotificationID("alarm-2"))
	assert.NotZero(t, NotificationID("9fdd5fab-71bc-4a01-9d2c-9e0a2f58c9ee"))
}
