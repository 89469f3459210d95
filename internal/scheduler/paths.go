package scheduler

import (
	"fmt"
	"io"
	"time"
)

// LogNative is a NativeAlarm that records scheduling intent to a writer.
// Stands in on platforms without an exact-alarm facility.
type LogNative struct {
	w io.Writer
}

func NewLogNative(w io.Writer) *LogNative {
	if w == nil {
		w = io.Discard
	}
	return &LogNative{w: w}
}

func (n *LogNative) Schedule(p Payload) error {
	at := time.UnixMilli(p.TriggerAt).Local().Format(time.RFC3339)
	fmt.Fprintf(n.w, "native_alarm scheduled id=%s time=%s trigger_at=%s tone=%s\n",
		p.AlarmID, p.Time, at, p.Tone)
	return nil
}

func (n *LogNative) Cancel(alarmID string) error {
	fmt.Fprintf(n.w, "native_alarm cancelled id=%s\n", alarmID)
	return nil
}

// LogNotifier is a Notifier that records scheduling intent to a writer.
type LogNotifier struct {
	w io.Writer
}

func NewLogNotifier(w io.Writer) *LogNotifier {
	if w == nil {
		w = io.Discard
	}
	return &LogNotifier{w: w}
}

func (n *LogNotifier) Schedule(id uint32, p Payload) error {
	at := time.UnixMilli(p.TriggerAt).Local().Format(time.RFC3339)
	fmt.Fprintf(n.w, "notification scheduled id=%d alarm=%s trigger_at=%s\n", id, p.AlarmID, at)
	return nil
}

func (n *LogNotifier) Cancel(id uint32) error {
	fmt.Fprintf(n.w, "notification cancelled id=%d\n", id)
	return nil
}
