// Package genai wraps a slow-to-initialize generative model behind a
// readiness state machine. Loading is deduplicated across concurrent
// callers, progress is observable with replay-on-subscribe, and
// completion calls fail fast with ErrNotReady instead of queuing.
package genai

import (
	"context"
	"errors"
	"sync"
	"time"

	"clarion/internal/device"
	"clarion/internal/retry"
)

// Status is the adapter's lifecycle state.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusDownloading   Status = "downloading"
	StatusLoading       Status = "loading"
	StatusReady         Status = "ready"
	StatusError         Status = "error"
)

// State is the full observable adapter state delivered to progress
// subscribers.
type State struct {
	Status   Status
	Progress Progress
	Err      string
}

// Adapter owns the model lifecycle and is the only entry point for
// completions.
type Adapter struct {
	engine   Engine
	cfg      Config
	observer Observer
	prober   device.Prober
	policy   retry.Policy

	mu        sync.Mutex
	state     State
	model     string // chosen variant, fixed after first selection
	inflight  chan struct{}
	listeners map[int]func(State)
	nextID    int
	onReady   []func()
}

// NewAdapter creates an Adapter around the given engine. A nil observer
// or prober falls back to no-op defaults.
func NewAdapter(engine Engine, cfg Config, observer Observer, prober device.Prober) *Adapter {
	if observer == nil {
		observer = NoopObserver{}
	}
	if prober == nil {
		prober = device.HostProber{}
	}
	backoff := cfg.LoadBackoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	return &Adapter{
		engine:   engine,
		cfg:      cfg,
		observer: observer,
		prober:   prober,
		policy: retry.Policy{
			MaxAttempts: cfg.LoadMaxAttempts,
			Backoff:     retry.Linear(backoff),
		},
		state:     State{Status: StatusUninitialized},
		listeners: make(map[int]func(State)),
	}
}

// Ready reports whether completions can be served right now.
func (a *Adapter) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Status == StatusReady
}

// CurrentState returns a snapshot of the adapter state.
func (a *Adapter) CurrentState() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Model returns the selected model variant, choosing one on first use.
// The choice is made once per cold start and never revisited.
func (a *Adapter) Model() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chooseModelLocked()
}

func (a *Adapter) chooseModelLocked() string {
	if a.model != "" {
		return a.model
	}
	if a.cfg.Model != "" {
		a.model = a.cfg.Model
		return a.model
	}
	info := a.prober.Probe()
	if info.RAMMB >= LargeModelRAMThresholdMB {
		a.model = LargeModel
	} else {
		a.model = SmallModel
	}
	return a.model
}

// Initialize loads the model. It is idempotent: if already ready it
// returns true immediately, and concurrent callers share a single
// in-flight attempt rather than starting parallel loads. On failure it
// retries with linear backoff up to the configured bound, then settles
// into the error state and returns false.
func (a *Adapter) Initialize(ctx context.Context) bool {
	a.mu.Lock()
	if a.state.Status == StatusReady {
		a.mu.Unlock()
		return true
	}
	if a.inflight != nil {
		// First-caller-wins: wait for the attempt already running.
		done := a.inflight
		a.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return false
		}
		return a.Ready()
	}

	done := make(chan struct{})
	a.inflight = done
	model := a.chooseModelLocked()
	a.mu.Unlock()

	err := a.policy.Do(ctx, func(ctx context.Context) error {
		a.setState(State{
			Status:   StatusDownloading,
			Progress: Progress{Percent: 0, Message: "Starting download"},
		})
		return a.engine.Load(ctx, model, func(p Progress) {
			status := StatusDownloading
			if p.Percent >= 100 {
				status = StatusLoading
			}
			a.setState(State{Status: status, Progress: p})
		})
	})

	if err != nil {
		a.setState(State{
			Status:   StatusError,
			Progress: Progress{Message: "Failed to load model"},
			Err:      errors.Join(ErrLoadFailed, err).Error(),
		})
	} else {
		a.setState(State{
			Status:   StatusReady,
			Progress: Progress{Percent: 100, Message: "Model ready"},
		})
	}

	a.mu.Lock()
	a.inflight = nil
	a.mu.Unlock()
	close(done)

	return err == nil
}

// Complete runs one prompt through the model. Fails with ErrNotReady
// while the model is not loaded; readiness checks are the caller's
// responsibility.
func (a *Adapter) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	a.mu.Lock()
	if a.state.Status != StatusReady {
		a.mu.Unlock()
		return "", ErrNotReady
	}
	model := a.model
	a.mu.Unlock()

	start := time.Now()
	text, err := a.engine.Complete(ctx, model, prompt, opts)
	a.observer.OnCallComplete(CallEvent{
		Purpose:   opts.Purpose,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return text, err
}

// Unload releases the model and returns the adapter to uninitialized.
func (a *Adapter) Unload(ctx context.Context) {
	if err := a.engine.Unload(ctx); err != nil {
		// Best effort; the state reset below still applies.
		a.observer.OnCallComplete(CallEvent{Purpose: "unload", Model: a.Model(), ErrorCode: "UNLOAD_FAILED"})
	}
	a.setState(State{Status: StatusUninitialized})
}

// Subscribe registers a progress listener and immediately replays the
// current state to it, so a late subscriber cannot miss the initial
// transition. The returned function unsubscribes.
func (a *Adapter) Subscribe(fn func(State)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	current := a.state
	a.mu.Unlock()

	fn(current)

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// OnReady registers a one-shot callback fired on the ready transition.
// If the adapter is already ready the callback fires immediately.
// Each callback fires at most once and is then discarded.
func (a *Adapter) OnReady(fn func()) {
	a.mu.Lock()
	if a.state.Status == StatusReady {
		a.mu.Unlock()
		fn()
		return
	}
	a.onReady = append(a.onReady, fn)
	a.mu.Unlock()
}

// setState updates the state and notifies listeners outside the lock.
func (a *Adapter) setState(next State) {
	a.mu.Lock()
	a.state = next
	listeners := make([]func(State), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	var ready []func()
	if next.Status == StatusReady {
		ready = a.onReady
		a.onReady = nil
	}
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	for _, fn := range ready {
		fn()
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotReady):
		return "NOT_READY"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
