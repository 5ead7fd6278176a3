package source

import (
	"context"

	"github.com/polar-ai/taskpurge/internal/model"
)

// SingleBoard fetches one configured board. There is no isolation
// concern here: a fetch failure propagates directly to the caller.
type SingleBoard struct {
	api     BoardAPI
	boardID string
}

// NewSingleBoard creates a source for one board
func NewSingleBoard(api BoardAPI, boardID string) *SingleBoard {
	return &SingleBoard{api: api, boardID: boardID}
}

// Name returns the display name
func (s *SingleBoard) Name() string {
	return "単一ボード"
}

// Fetch returns the board's tasks
func (s *SingleBoard) Fetch(ctx context.Context) ([]model.RawTask, error) {
	return s.api.BoardItems(ctx, s.boardID)
}
