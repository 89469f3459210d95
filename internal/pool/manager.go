// Package pool keeps a persisted standing buffer of questions so a
// session can always start synchronously, whatever state the model is in.
package pool

import (
	"context"
	"sync"
	"time"

	"clarion/internal/bank"
	"clarion/internal/clock"
	"clarion/internal/domain"
	"clarion/internal/storage"
)

// Phase targets. Each phase covers the answer requirement of one
// difficulty tier plus slack for wrong-answer draws.
var phaseTargets = []int{5, 7, 9}

// FullSize is the phase-3 target. A pool at this size needs no work.
const FullSize = 9

// Retention is how long a generated pool stays usable before the next
// fill-check pass discards it.
const Retention = 24 * time.Hour

// SetGenerator produces a batch of verified questions.
// Satisfied by *question.Generator.
type SetGenerator interface {
	GenerateSet(ctx context.Context, categories []domain.Category, count int) ([]domain.Question, domain.Provenance)
}

// Unloader releases the model after a generation run.
// Satisfied by *genai.Adapter.
type Unloader interface {
	Unload(ctx context.Context)
}

// Manager owns the pool lifecycle. Draw never blocks and never fails;
// generation runs in the background and only ever improves the pool.
type Manager struct {
	store *storage.PoolStore
	bank  *bank.Catalog
	gen   SetGenerator
	model Unloader
	clock clock.Clock

	phasePause time.Duration

	mu         sync.Mutex
	generating bool
	aborted    bool
}

func NewManager(store *storage.PoolStore, catalog *bank.Catalog, gen SetGenerator, model Unloader, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.System{}
	}
	return &Manager{
		store:      store,
		bank:       catalog,
		gen:        gen,
		model:      model,
		clock:      clk,
		phasePause: 500 * time.Millisecond,
	}
}

// Size reports the current pool size after applying retention.
func (m *Manager) Size() int {
	state, err := m.store.Get()
	if err != nil || m.expired(state) {
		return 0
	}
	return len(state.Questions)
}

// EnsureFilled discards an expired pool and tops the remainder up to
// the full size from the bank. Always leaves a usable pool behind.
func (m *Manager) EnsureFilled(categories []domain.Category) error {
	state, err := m.store.Get()
	if err != nil {
		state = storage.PoolState{}
	}
	if m.expired(state) {
		state = storage.PoolState{}
	}

	if len(state.Questions) >= FullSize {
		return nil
	}

	shortfall := FullSize - len(state.Questions)
	state.Questions = append(state.Questions, m.bank.Sample(categories, shortfall)...)
	state.Categories = categories
	state.GeneratedAt = m.clock.Now().UnixMilli()
	return m.store.Save(state)
}

// UpgradeWithGenerated rebuilds the pool from model output in three
// ascending phases. Only one run may be in flight; a second trigger is
// a no-op. The abort flag is honored between phases, and the model is
// released when the run ends.
func (m *Manager) UpgradeWithGenerated(ctx context.Context, categories []domain.Category) {
	m.mu.Lock()
	if m.generating {
		m.mu.Unlock()
		return
	}
	m.generating = true
	m.aborted = false
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.generating = false
		m.mu.Unlock()
		if m.model != nil {
			m.model.Unload(ctx)
		}
	}()

	state := storage.PoolState{
		Categories:  categories,
		GeneratedAt: m.clock.Now().UnixMilli(),
	}
	if err := m.store.Save(state); err != nil {
		return
	}

	for i, target := range phaseTargets {
		if m.isAborted() || ctx.Err() != nil {
			return
		}

		needed := target - len(state.Questions)
		if needed <= 0 {
			continue
		}

		batch, _ := m.gen.GenerateSet(ctx, categories, needed)
		state.Questions = append(state.Questions, batch...)
		state.GeneratedAt = m.clock.Now().UnixMilli()
		if err := m.store.Save(state); err != nil {
			return
		}

		if i < len(phaseTargets)-1 && m.phasePause > 0 {
			select {
			case <-time.After(m.phasePause):
			case <-ctx.Done():
				return
			}
		}
	}
}

// Abort requests that an in-flight generation run stop at the next
// phase boundary.
func (m *Manager) Abort() {
	m.mu.Lock()
	m.aborted = true
	m.mu.Unlock()
}

// Generating reports whether an upgrade run is in flight.
func (m *Manager) Generating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generating
}

// Draw returns exactly count questions, preferring pool entries and
// supplementing from the bank. Never blocks, never fails.
func (m *Manager) Draw(count int, categories []domain.Category) []domain.Question {
	if count <= 0 {
		return nil
	}

	state, err := m.store.Get()
	if err != nil || m.expired(state) {
		state = storage.PoolState{}
	}

	out := make([]domain.Question, 0, count)
	if len(state.Questions) > count {
		out = append(out, state.Questions[:count]...)
	} else {
		out = append(out, state.Questions...)
	}

	if needed := count - len(out); needed > 0 {
		out = append(out, m.bank.Sample(categories, needed)...)
	}
	return out
}

func (m *Manager) expired(state storage.PoolState) bool {
	if len(state.Questions) == 0 || state.GeneratedAt == 0 {
		return false
	}
	age := m.clock.Now().UnixMilli() - state.GeneratedAt
	return age > Retention.Milliseconds()
}

func (m *Manager) isAborted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aborted
}
