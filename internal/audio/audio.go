// Package audio abstracts ring-tone playback and vibration. Playback is
// best-effort: a missing backend degrades to silence, never to an error
// the session has to handle.
package audio

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"clarion/internal/domain"
)

// Vibration patterns in on/off millisecond pairs.
var (
	DefaultVibrationPattern = []int{500, 200, 500, 200, 500}
	AlarmVibrationPattern   = []int{1000, 500, 1000, 500, 1000, 500}
)

// Player drives tone playback and vibration during a ringing session.
type Player interface {
	// Play starts the given tone, looping until Stop.
	Play(tone domain.Tone, loop bool) error
	// Vibrate starts the given on/off pattern, repeating until Stop.
	Vibrate(pattern []int) error
	// Stop halts playback and vibration. Safe to call when idle.
	Stop()
}

// LogPlayer records playback intent to a writer. Used on hosts without
// an audio backend; the session machine treats it the same as a real
// player.
type LogPlayer struct {
	w io.Writer

	mu      sync.Mutex
	playing bool
}

func NewLogPlayer(w io.Writer) *LogPlayer {
	if w == nil {
		w = io.Discard
	}
	return &LogPlayer{w: w}
}

func (p *LogPlayer) Play(tone domain.Tone, loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	fmt.Fprintf(p.w, "audio play tone=%s loop=%t\n", tone, loop)
	return nil
}

func (p *LogPlayer) Vibrate(pattern []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	parts := make([]string, len(pattern))
	for i, ms := range pattern {
		parts[i] = fmt.Sprintf("%d", ms)
	}
	fmt.Fprintf(p.w, "audio vibrate pattern=%s\n", strings.Join(parts, ","))
	return nil
}

func (p *LogPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.playing = false
	fmt.Fprintf(p.w, "audio stop\n")
}

// Playing reports whether Play has been called without a matching Stop.
func (p *LogPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
