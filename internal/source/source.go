// Package source fetches raw tasks from the remote board service, either
// across every visible board or from one configured board.
package source

import (
	"context"

	"github.com/polar-ai/taskpurge/internal/classify"
	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/settings"
)

// Source yields one cycle's worth of raw tasks
type Source interface {
	// Name returns the display name of the source
	Name() string

	// Fetch returns the raw tasks for one poll cycle
	Fetch(ctx context.Context) ([]model.RawTask, error)
}

// BoardAPI is the slice of the monday client the sources need
type BoardAPI interface {
	ListBoards(ctx context.Context) ([]monday.Board, error)
	BoardItems(ctx context.Context, boardID string) ([]model.RawTask, error)
}

// New creates the source matching the settings: single-board mode when a
// board is configured, otherwise the all-boards aggregator.
func New(s *settings.Settings, api BoardAPI, rules classify.Rules) Source {
	if s.SingleBoard() {
		return NewSingleBoard(api, s.BoardID)
	}
	return NewAllBoards(api, rules.ExcludedBoardPatterns)
}
