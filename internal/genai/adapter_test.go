package genai

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"clarion/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine scripts load outcomes and records completions.
type fakeEngine struct {
	mu          sync.Mutex
	loadCalls   int32
	failLoads   int // fail this many loads before succeeding
	loadStarted chan struct{}
	loadRelease chan struct{}
	completions []string
	response    string
	completeErr error
}

func (e *fakeEngine) Load(ctx context.Context, model string, progress func(Progress)) error {
	atomic.AddInt32(&e.loadCalls, 1)
	if e.loadStarted != nil {
		e.loadStarted <- struct{}{}
	}
	if e.loadRelease != nil {
		<-e.loadRelease
	}
	e.mu.Lock()
	shouldFail := e.failLoads > 0
	if shouldFail {
		e.failLoads--
	}
	e.mu.Unlock()
	if shouldFail {
		return errors.New("scripted load failure")
	}
	if progress != nil {
		progress(Progress{Percent: 50, Message: "Downloading"})
		progress(Progress{Percent: 100, Message: "Initializing model"})
	}
	return nil
}

func (e *fakeEngine) Complete(ctx context.Context, model, prompt string, opts Options) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completions = append(e.completions, prompt)
	return e.response, e.completeErr
}

func (e *fakeEngine) Unload(ctx context.Context) error { return nil }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Model = SmallModel
	cfg.LoadMaxAttempts = 3
	cfg.LoadBackoff = 0
	return cfg
}

func newTestAdapter(engine *fakeEngine) *Adapter {
	return NewAdapter(engine, testConfig(), NoopObserver{}, device.StaticProber{})
}

func TestInitialize_TransitionsToReady(t *testing.T) {
	engine := &fakeEngine{}
	a := newTestAdapter(engine)

	var states []Status
	a.Subscribe(func(s State) { states = append(states, s.Status) })

	ok := a.Initialize(context.Background())
	require.True(t, ok)
	assert.True(t, a.Ready())

	// Replayed initial state, then download, loading, ready.
	assert.Equal(t, StatusUninitialized, states[0])
	assert.Contains(t, states, StatusDownloading)
	assert.Contains(t, states, StatusLoading)
	assert.Equal(t, StatusReady, states[len(states)-1])
}

func TestInitialize_IdempotentWhenReady(t *testing.T) {
	engine := &fakeEngine{}
	a := newTestAdapter(engine)

	require.True(t, a.Initialize(context.Background()))
	require.True(t, a.Initialize(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt32(&engine.loadCalls), "second call must not reload")
}

func TestInitialize_ConcurrentCallersShareOneAttempt(t *testing.T) {
	engine := &fakeEngine{
		loadStarted: make(chan struct{}, 1),
		loadRelease: make(chan struct{}),
	}
	a := newTestAdapter(engine)

	results := make(chan bool, 3)
	go func() { results <- a.Initialize(context.Background()) }()
	<-engine.loadStarted // first caller is inside Load

	for i := 0; i < 2; i++ {
		go func() { results <- a.Initialize(context.Background()) }()
	}
	close(engine.loadRelease)

	for i := 0; i < 3; i++ {
		assert.True(t, <-results)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&engine.loadCalls), "all callers await the single in-flight load")
}

func TestInitialize_RetriesThenError(t *testing.T) {
	engine := &fakeEngine{failLoads: 10}
	a := newTestAdapter(engine)

	ok := a.Initialize(context.Background())
	assert.False(t, ok)
	assert.False(t, a.Ready())
	assert.Equal(t, StatusError, a.CurrentState().Status)
	assert.EqualValues(t, 3, atomic.LoadInt32(&engine.loadCalls), "bounded retry")
}

func TestInitialize_RetryableAfterError(t *testing.T) {
	engine := &fakeEngine{failLoads: 3}
	a := newTestAdapter(engine)

	require.False(t, a.Initialize(context.Background()))
	require.Equal(t, StatusError, a.CurrentState().Status)

	// Error is not terminal: a fresh call may succeed.
	require.True(t, a.Initialize(context.Background()))
	assert.True(t, a.Ready())
}

func TestComplete_FailsWhenNotReady(t *testing.T) {
	a := newTestAdapter(&fakeEngine{})
	_, err := a.Complete(context.Background(), "prompt", Options{})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestComplete_PassesThroughWhenReady(t *testing.T) {
	engine := &fakeEngine{response: "four"}
	a := newTestAdapter(engine)
	require.True(t, a.Initialize(context.Background()))

	text, err := a.Complete(context.Background(), "What is 2+2?", Options{MaxTokens: 16})
	require.NoError(t, err)
	assert.Equal(t, "four", text)
	assert.Equal(t, []string{"What is 2+2?"}, engine.completions)
}

func TestOnReady_FiresImmediatelyWhenAlreadyReady(t *testing.T) {
	a := newTestAdapter(&fakeEngine{})
	require.True(t, a.Initialize(context.Background()))

	fired := 0
	a.OnReady(func() { fired++ })
	assert.Equal(t, 1, fired)
}

func TestOnReady_FiresExactlyOnceOnTransition(t *testing.T) {
	engine := &fakeEngine{failLoads: 1}
	a := newTestAdapter(engine)
	a.policy.MaxAttempts = 1

	fired := 0
	a.OnReady(func() { fired++ })

	require.False(t, a.Initialize(context.Background()))
	assert.Zero(t, fired, "not fired on error")

	require.True(t, a.Initialize(context.Background()))
	assert.Equal(t, 1, fired)

	// A second ready transition must not re-fire the discarded callback.
	a.Unload(context.Background())
	require.True(t, a.Initialize(context.Background()))
	assert.Equal(t, 1, fired)
}

func TestSubscribe_ReplaysCurrentState(t *testing.T) {
	a := newTestAdapter(&fakeEngine{})
	require.True(t, a.Initialize(context.Background()))

	var got []State
	unsub := a.Subscribe(func(s State) { got = append(got, s) })
	require.Len(t, got, 1, "current state replayed on subscribe")
	assert.Equal(t, StatusReady, got[0].Status)

	unsub()
	a.Unload(context.Background())
	assert.Len(t, got, 1, "no events after unsubscribe")
}

func TestModel_SelectedByDeviceMemory(t *testing.T) {
	cfg := testConfig()
	cfg.Model = ""

	small := NewAdapter(&fakeEngine{}, cfg, nil, device.StaticProber{Info: device.Info{RAMMB: 4000}})
	assert.Equal(t, SmallModel, small.Model())

	large := NewAdapter(&fakeEngine{}, cfg, nil, device.StaticProber{Info: device.Info{RAMMB: 8000}})
	assert.Equal(t, LargeModel, large.Model())

	// Choice is made once per cold start.
	assert.Equal(t, LargeModel, large.Model())
}
