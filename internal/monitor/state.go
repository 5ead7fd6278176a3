package monitor

import (
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/source"
)

// Phase is the monitor's lifecycle state
type Phase string

const (
	PhaseStopped  Phase = "stopped"
	PhaseRunning  Phase = "running"
	PhaseChecking Phase = "checking"
)

// Label returns the Japanese status badge text for the phase
func (p Phase) Label() string {
	switch p {
	case PhaseRunning:
		return "監視中"
	case PhaseChecking:
		return "確認中"
	default:
		return "停止中"
	}
}

// State is the monitor's published state. It is owned exclusively by the
// monitor; callers receive copies.
type State struct {
	Phase       Phase
	NextCheckAt time.Time // zero means no check is scheduled
	LastError   string
}

// Event is delivered on the monitor's notification channel. Exactly one
// of the concrete types below is sent per occurrence.
type Event interface{ event() }

// CycleCompleted carries the rendered result set of a finished fetch and
// classify pass, before announcements begin.
type CycleCompleted struct {
	Tasks    []model.UrgentTask
	Failures []source.BoardFailure // per-board errors swallowed by the aggregator
}

// CycleFailed reports an error caught at the cycle boundary. The timer
// keeps running; the next scheduled cycle still fires.
type CycleFailed struct {
	Err error
}

// Countdown reports the remaining time until the next check, emitted
// once per second while the monitor runs. Checking is true while a cycle
// is in flight (remaining is then zero).
type Countdown struct {
	Remaining time.Duration
	Checking  bool
}

// Stopped reports that Stop completed and no further cycle is scheduled
type Stopped struct{}

func (CycleCompleted) event() {}
func (CycleFailed) event()    {}
func (Countdown) event()      {}
func (Stopped) event()        {}
