// Package notify turns urgent tasks into spoken reminders.
package notify

import (
	"context"
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/speech"
)

// utterancePause lets the previous utterance's audio tail clear before
// the next one starts.
const utterancePause = 500 * time.Millisecond

// Announcer speaks reminders for urgent tasks, one at a time
type Announcer struct {
	gen    *GenClient // nil skips generation and always uses the template
	player speech.Player
	pause  time.Duration
}

// NewAnnouncer creates an announcer. gen may be nil when no generation
// credential is configured.
func NewAnnouncer(gen *GenClient, player speech.Player) *Announcer {
	return &Announcer{gen: gen, player: player, pause: utterancePause}
}

// Message returns the reminder text for a task: the generation backend's
// phrasing when available, otherwise the deterministic template.
func (a *Announcer) Message(ctx context.Context, task model.UrgentTask) string {
	if a.gen != nil {
		if msg, err := a.gen.Generate(ctx, task); err == nil {
			return msg
		}
		// Timeouts and bad responses degrade silently to the template.
	}
	return FallbackMessage(task)
}

// FallbackMessage is the deterministic reminder template
func FallbackMessage(task model.UrgentTask) string {
	phrase := "今日が期限です。"
	if task.Overdue {
		phrase = "期限が過ぎています。"
	}
	if task.BoardName == "" {
		return task.Name + "、" + phrase
	}
	return task.BoardName + " — " + task.Name + "、" + phrase
}

// Announce speaks one task's reminder and waits for it to finish
func (a *Announcer) Announce(ctx context.Context, task model.UrgentTask) error {
	return a.player.Speak(ctx, a.Message(ctx, task))
}

// AnnounceAll speaks the tasks strictly in the order given, one at a
// time, with a fixed pause between utterances. A playback failure does
// not stop the batch; the first failure is returned after every task had
// its turn.
func (a *Announcer) AnnounceAll(ctx context.Context, tasks []model.UrgentTask) error {
	var firstErr error
	for i, task := range tasks {
		if err := a.Announce(ctx, task); err != nil && firstErr == nil {
			firstErr = err
		}
		if i < len(tasks)-1 {
			select {
			case <-time.After(a.pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return firstErr
}
