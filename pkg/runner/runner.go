package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/sourcegraph/conc"
)

const readSize = 4096

// Runner spawns shell commands and reports their exit status
type Runner struct {
	shell  string
	logger *log.Logger
}

// New creates a runner. A nil config uses /bin/sh and discards logs.
func New(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	shell := cfg.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Runner{shell: shell, logger: logger}
}

func (r *Runner) command(ctx context.Context, command string) *exec.Cmd {
	return exec.CommandContext(ctx, r.shell, "-c", command)
}

// Run executes command through the shell and buffers stdout and stderr
// until the process exits.
func (r *Runner) Run(ctx context.Context, command string) Result {
	var stdout, stderr bytes.Buffer

	cmd := r.command(ctx, command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Printf("Running: %s", command)

	if err := cmd.Start(); err != nil {
		r.logger.Printf("⚠️ Spawn error for command %q: %v", command, err)
		return Result{
			Message:  Message(fmt.Errorf("%w: %v", ErrSpawn, err)),
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %v", ErrSpawn, err),
		}
	}

	if err := cmd.Wait(); err != nil {
		code := exitCode(err)
		msg := stderr.String()
		if msg == "" {
			msg = Message(fmt.Errorf("%w %d", ErrNonZeroExit, code))
		}
		r.logger.Printf("⚠️ Command %q exited with code %d: %s", command, code, stderr.String())
		return Result{
			Output:   stdout.String(),
			Stderr:   stderr.String(),
			Message:  msg,
			ExitCode: code,
			Err:      fmt.Errorf("%w %d", ErrNonZeroExit, code),
		}
	}

	return Result{
		Success: true,
		Output:  stdout.String(),
		Stderr:  stderr.String(),
	}
}

// Stream executes command through the shell and hands every chunk read from
// stdout and stderr to the given callbacks. Each callback is invoked from a
// single goroutine. Stream returns once both pipes are drained and the
// process has exited.
func (r *Runner) Stream(ctx context.Context, command string, onStdout, onStderr ChunkFunc) (int, error) {
	cmd := r.command(ctx, command)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("%w: creating stdout pipe: %v", ErrSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("%w: creating stderr pipe: %v", ErrSpawn, err)
	}

	r.logger.Printf("Streaming: %s", command)

	if err := cmd.Start(); err != nil {
		r.logger.Printf("⚠️ Spawn error for command %q: %v", command, err)
		return -1, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	var wg conc.WaitGroup
	wg.Go(func() { pump(stdout, onStdout) })
	wg.Go(func() { pump(stderr, onStderr) })
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		code := exitCode(err)
		r.logger.Printf("⚠️ Command %q exited with code %d", command, code)
		return code, fmt.Errorf("%w %d", ErrNonZeroExit, code)
	}

	return 0, nil
}

// pump reads r until EOF or error, forwarding each read as one chunk
func pump(r io.Reader, fn ChunkFunc) {
	buf := make([]byte, readSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && fn != nil {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			fn(chunk)
		}
		if err != nil {
			return
		}
	}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Message renders err for display, capitalising its first letter
func Message(err error) string {
	text := err.Error()
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
