// Package speech plays spoken text through a platform speech command.
package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Player enqueues one utterance and waits for it to finish
type Player interface {
	Speak(ctx context.Context, text string) error
}

// ExecPlayer shells out to a text-to-speech command, appending the text
// as the final argument. The default is `say` on macOS and `espeak`
// elsewhere; TASKPURGE_SPEECH_CMD overrides the whole argv.
type ExecPlayer struct {
	argv []string
}

// NewExecPlayer creates a player using the platform default command
func NewExecPlayer() *ExecPlayer {
	if v := os.Getenv("TASKPURGE_SPEECH_CMD"); v != "" {
		return &ExecPlayer{argv: strings.Fields(v)}
	}
	if runtime.GOOS == "darwin" {
		return &ExecPlayer{argv: []string{"say"}}
	}
	return &ExecPlayer{argv: []string{"espeak"}}
}

// NewCommandPlayer creates a player for a specific argv
func NewCommandPlayer(argv ...string) *ExecPlayer {
	return &ExecPlayer{argv: argv}
}

// Speak runs the speech command and waits for the utterance to complete
func (p *ExecPlayer) Speak(ctx context.Context, text string) error {
	if len(p.argv) == 0 {
		return fmt.Errorf("no speech command configured")
	}

	args := append(append([]string(nil), p.argv[1:]...), text)
	cmd := exec.CommandContext(ctx, p.argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
