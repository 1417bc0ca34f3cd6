package runner

import (
	"errors"
	"log"
)

var (
	// ErrSpawn indicates the shell could not be launched
	ErrSpawn = errors.New("command execution failed")

	// ErrNonZeroExit indicates the command ran but reported failure
	ErrNonZeroExit = errors.New("command exited with non-zero code")
)

// Config configures the process runner
type Config struct {
	Shell  string      // Interpreter for command strings (default /bin/sh)
	Logger *log.Logger // Custom logger
}

// Result is the outcome of a buffered command run
type Result struct {
	Success  bool
	Output   string // Captured stdout
	Stderr   string // Captured stderr
	Message  string // Failure description, empty on success
	ExitCode int    // -1 when the process never ran or was killed
	Err      error  // Wraps ErrSpawn or ErrNonZeroExit on failure
}

// ChunkFunc receives raw output as it is read from a pipe.
// The slice is owned by the callee.
type ChunkFunc func(chunk []byte)
