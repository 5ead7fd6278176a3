// Package monitor drives the poll cycle: fetch, classify, render,
// announce, reschedule. One monitor owns its state; independent monitors
// never interfere, so tests can run several side by side.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/polar-ai/taskpurge/internal/classify"
	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/settings"
	"github.com/polar-ai/taskpurge/internal/source"
)

// Announcer is the slice of the notifier the monitor drives
type Announcer interface {
	AnnounceAll(ctx context.Context, tasks []model.UrgentTask) error
}

// Monitor is the scheduler state machine
type Monitor struct {
	cfg       *settings.Settings
	src       source.Source
	params    classify.Params
	announcer Announcer
	interval  time.Duration
	now       func() time.Time

	events chan Event

	mu       sync.Mutex
	state    State
	checking bool
	baseCtx  context.Context
	cancel   context.CancelFunc // cancels the scheduling loop only
	loopDone chan struct{}
}

// New creates a stopped monitor
func New(cfg *settings.Settings, src source.Source, params classify.Params, announcer Announcer) *Monitor {
	return &Monitor{
		cfg:       cfg,
		src:       src,
		params:    params,
		announcer: announcer,
		interval:  cfg.PollInterval(),
		now:       time.Now,
		events:    make(chan Event, 64),
		state:     State{Phase: PhaseStopped},
	}
}

// Events is the monitor's single notification channel. Events are
// dropped rather than block the monitor when the consumer lags.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// State returns a copy of the current state
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start validates the settings, runs one cycle synchronously, then arms
// the repeating poll timer and the 1-second countdown timer. Starting an
// already-running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state.Phase != PhaseStopped {
		m.mu.Unlock()
		return nil
	}
	m.state.Phase = PhaseRunning
	m.baseCtx = ctx
	loopCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loopDone = make(chan struct{})
	m.mu.Unlock()

	m.runCycle(ctx)

	go m.loop(loopCtx)
	return nil
}

// Stop cancels future scheduling. An in-flight cycle runs to completion
// and its result is still rendered, but nothing is scheduled afterwards.
// Safe to call when already stopped.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.cancel == nil {
		m.mu.Unlock()
		return
	}
	m.cancel()
	m.cancel = nil
	done := m.loopDone
	if !m.checking {
		m.state.Phase = PhaseStopped
	}
	m.state.NextCheckAt = time.Time{}
	m.mu.Unlock()

	<-done
	m.publish(Stopped{})
}

// CheckNow triggers an immediate cycle. A no-op while one is in flight
// or when the monitor is stopped.
func (m *Monitor) CheckNow() {
	m.mu.Lock()
	if m.cancel == nil {
		m.mu.Unlock()
		return
	}
	ctx := m.baseCtx
	m.mu.Unlock()
	go m.runCycle(ctx)
}

// loop owns the two timers. Their lifetimes are scoped to the running
// phase and released deterministically on Stop.
func (m *Monitor) loop(ctx context.Context) {
	defer close(m.loopDone)

	poll := time.NewTicker(m.interval)
	defer poll.Stop()
	display := time.NewTicker(time.Second)
	defer display.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			// The single-flight guard turns an overlapping tick
			// into a no-op.
			go m.runCycle(m.base())
		case <-display.C:
			m.publishCountdown()
		}
	}
}

func (m *Monitor) base() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.baseCtx != nil {
		return m.baseCtx
	}
	return context.Background()
}

// runCycle executes one fetch→classify→render→announce pass. Errors from
// anywhere in the cycle are caught here, recorded as LastError and
// published; they never stop the timers.
func (m *Monitor) runCycle(ctx context.Context) {
	m.mu.Lock()
	if m.checking {
		m.mu.Unlock()
		return
	}
	m.checking = true
	m.state.Phase = PhaseChecking
	m.mu.Unlock()

	err := m.cycle(ctx)

	m.mu.Lock()
	if err != nil {
		m.state.LastError = err.Error()
	} else {
		m.state.LastError = ""
	}
	m.checking = false
	if m.cancel != nil {
		m.state.Phase = PhaseRunning
		m.state.NextCheckAt = m.now().Add(m.interval)
	} else {
		// Stop was requested while this cycle was in flight.
		m.state.Phase = PhaseStopped
		m.state.NextCheckAt = time.Time{}
	}
	m.mu.Unlock()

	if err != nil {
		m.publish(CycleFailed{Err: err})
	}
}

func (m *Monitor) cycle(ctx context.Context) error {
	raw, err := m.src.Fetch(ctx)
	if err != nil {
		return err
	}

	var urgent []model.UrgentTask
	for _, task := range raw {
		if u := classify.Classify(task, m.params); u != nil {
			urgent = append(urgent, *u)
		}
	}

	m.publish(CycleCompleted{Tasks: urgent, Failures: m.boardFailures()})

	if len(urgent) > 0 {
		// Announcement latency can dominate the cycle; the
		// single-flight guard covers it.
		if err := m.announcer.AnnounceAll(ctx, urgent); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) boardFailures() []source.BoardFailure {
	if ab, ok := m.src.(*source.AllBoards); ok {
		return ab.Failures()
	}
	return nil
}

func (m *Monitor) publishCountdown() {
	m.mu.Lock()
	checking := m.checking
	next := m.state.NextCheckAt
	m.mu.Unlock()

	remaining := time.Duration(0)
	if !checking && !next.IsZero() {
		remaining = next.Sub(m.now())
		if remaining < 0 {
			remaining = 0
		}
	}
	m.publish(Countdown{Remaining: remaining, Checking: checking || (remaining == 0 && !next.IsZero())})
}

func (m *Monitor) publish(ev Event) {
	select {
	case m.events <- ev:
	default:
		// Consumer lagging; drop rather than stall the scheduler.
	}
}
