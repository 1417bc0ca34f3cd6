package privileged

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/helwan-linux/helstore/pkg/core"
	"github.com/helwan-linux/helstore/pkg/progress"
	"github.com/helwan-linux/helstore/pkg/runner"
)

// SuccessMessage is the summary carried by every Completed event
const SuccessMessage = "Operation completed successfully!"

// events buffered per operation before the producer blocks on the consumer
const eventBuffer = 64

// StreamRunner spawns a command and streams its output
type StreamRunner interface {
	Stream(ctx context.Context, command string, onStdout, onStderr runner.ChunkFunc) (int, error)
}

// Config configures how privileged commands are wrapped
type Config struct {
	Terminal    string      // Terminal prefix taking one script argument, e.g. "xterm -e sh -c"; empty runs without a window
	Escalate    string      // Privilege escalation command, e.g. "sudo"; empty runs unprivileged
	ConfirmFlag string      // Appended to the command, e.g. "--noconfirm"
	PausePrompt string      // Printed before the terminal waits for Enter
	Logger      *log.Logger // Custom logger
}

// Executor runs one mutating command per call and reports its progress
type Executor struct {
	runner StreamRunner
	config *Config
	logger *log.Logger
}

// New creates an executor. A nil config runs commands directly.
func New(r StreamRunner, cfg *Config) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Executor{runner: r, config: cfg, logger: logger}
}

// Execute starts command on behalf of label and returns its event stream.
// The Started event is already queued when Execute returns. The stream ends
// with exactly one Completed or Failed event and is then closed.
func (e *Executor) Execute(ctx context.Context, command, label string) <-chan progress.Event {
	events := make(chan progress.Event, eventBuffer)
	events <- progress.Started(label, command)

	go e.run(ctx, command, label, events)
	return events
}

func (e *Executor) run(ctx context.Context, command, label string, events chan<- progress.Event) {
	defer close(events)

	wrapped := e.Wrap(command)
	e.logger.Printf("Attempting to execute privileged command: %s", wrapped)

	tracker := progress.NewTracker(label)
	var stderr strings.Builder

	code, err := e.runner.Stream(ctx, wrapped,
		func(chunk []byte) {
			for _, ev := range tracker.Feed(string(chunk)) {
				events <- ev
			}
		},
		func(chunk []byte) {
			stderr.Write(chunk)
			events <- progress.Output(label, string(chunk), true)
		},
	)

	if errors.Is(err, runner.ErrSpawn) {
		e.logger.Printf("⚠️ Spawn error for privileged command %q: %v", wrapped, err)
		events <- progress.Failed(label, runner.Message(err))
		return
	}

	for _, ev := range tracker.Flush() {
		events <- ev
	}

	if err != nil || code != 0 {
		reason := stderr.String()
		if reason == "" {
			reason = runner.Message(fmt.Errorf("%w %d", runner.ErrNonZeroExit, code))
		}
		e.logger.Printf("⚠️ Privileged command %q exited with code %d: %s", wrapped, code, stderr.String())
		events <- progress.Failed(label, reason)
		return
	}

	e.logger.Printf("Privileged command success for %s", label)
	events <- progress.Completed(label, SuccessMessage)
}

// Run executes command and blocks until it finishes, passing every event to
// handler (which may be nil).
func (e *Executor) Run(ctx context.Context, command, label string, handler progress.Handler) core.Result {
	return Collect(e.Execute(ctx, command, label), handler)
}

// Collect drains an event stream and returns the result carried by its
// terminal event.
func Collect(events <-chan progress.Event, handler progress.Handler) core.Result {
	result := core.Result{Message: "operation ended without a result"}

	for ev := range events {
		if handler != nil {
			handler(ev)
		}
		switch ev.Kind {
		case progress.KindCompleted:
			result = core.Result{
				Success: true,
				Message: fmt.Sprintf("Operation completed successfully for %s.", ev.Package),
			}
		case progress.KindFailed:
			result = core.Result{Message: ev.Text}
		}
	}

	return result
}
