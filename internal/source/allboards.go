package source

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/polar-ai/taskpurge/internal/model"
)

// BoardFailure records one board's swallowed fetch error
type BoardFailure struct {
	Board string
	Err   error
}

// AllBoards aggregates tasks across every visible board. Board fetches
// run concurrently; one misconfigured or retired board must not blind the
// monitor to the others, so per-board failures are swallowed here and
// only exposed for diagnostics.
type AllBoards struct {
	api      BoardAPI
	excluded []string

	mu       sync.Mutex
	failures []BoardFailure
}

// NewAllBoards creates the aggregator. Boards whose name contains any of
// the excluded substrings are skipped (sub-item boards duplicate parent
// data).
func NewAllBoards(api BoardAPI, excluded []string) *AllBoards {
	return &AllBoards{api: api, excluded: excluded}
}

// Name returns the display name
func (a *AllBoards) Name() string {
	return "全ボード"
}

// Fetch lists the eligible boards, fetches them concurrently and merges
// the results by concatenation in board-listing order. Only the listing
// call itself can fail the fetch.
func (a *AllBoards) Fetch(ctx context.Context) ([]model.RawTask, error) {
	boards, err := a.api.ListBoards(ctx)
	if err != nil {
		return nil, err
	}

	eligible := boards[:0]
	for _, b := range boards {
		if !a.excludedBoard(b.Name) {
			eligible = append(eligible, b)
		}
	}

	a.mu.Lock()
	a.failures = nil
	a.mu.Unlock()

	// No concurrency cap: the board count is naturally small (tens).
	results := make([][]model.RawTask, len(eligible))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range eligible {
		g.Go(func() error {
			tasks, err := a.api.BoardItems(ctx, b.ID)
			if err != nil {
				a.mu.Lock()
				a.failures = append(a.failures, BoardFailure{Board: b.Name, Err: err})
				a.mu.Unlock()
				return nil
			}
			for j := range tasks {
				if tasks[j].BoardName == "" {
					tasks[j].BoardName = b.Name
				}
			}
			results[i] = tasks
			return nil
		})
	}
	// Goroutines never return errors; Wait is a join point.
	_ = g.Wait()

	var merged []model.RawTask
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// Failures returns the per-board errors swallowed by the last Fetch
func (a *AllBoards) Failures() []BoardFailure {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]BoardFailure, len(a.failures))
	copy(out, a.failures)
	return out
}

func (a *AllBoards) excludedBoard(name string) bool {
	for _, pattern := range a.excluded {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
