package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	r := New(nil)
	ctx := context.Background()

	t.Run("captures stdout and stderr separately", func(t *testing.T) {
		res := r.Run(ctx, "echo out; echo err 1>&2")
		require.True(t, res.Success)
		assert.Equal(t, "out\n", res.Output)
		assert.Equal(t, "err\n", res.Stderr)
		assert.Empty(t, res.Message)
		assert.NoError(t, res.Err)
	})

	t.Run("honours pipes", func(t *testing.T) {
		res := r.Run(ctx, "printf 'b\\na\\n' | sort")
		require.True(t, res.Success)
		assert.Equal(t, "a\nb\n", res.Output)
	})

	t.Run("non-zero exit reports stderr", func(t *testing.T) {
		res := r.Run(ctx, "echo 'database locked' 1>&2; exit 2")
		assert.False(t, res.Success)
		assert.Equal(t, 2, res.ExitCode)
		assert.Equal(t, "database locked\n", res.Message)
		assert.ErrorIs(t, res.Err, ErrNonZeroExit)
	})

	t.Run("non-zero exit without stderr gets a generic message", func(t *testing.T) {
		res := r.Run(ctx, "exit 3")
		assert.False(t, res.Success)
		assert.Equal(t, "Command exited with non-zero code 3", res.Message)
	})
}

func TestRunSpawnError(t *testing.T) {
	r := New(&Config{Shell: "/nonexistent/helstore-sh"})

	res := r.Run(context.Background(), "echo hi")
	assert.False(t, res.Success)
	assert.Empty(t, res.Output)
	assert.Equal(t, -1, res.ExitCode)
	assert.ErrorIs(t, res.Err, ErrSpawn)
	assert.True(t, strings.HasPrefix(res.Message, "Command execution failed: "))
}

func TestStream(t *testing.T) {
	r := New(nil)

	var mu sync.Mutex
	var stdout, stderr strings.Builder
	code, err := r.Stream(context.Background(), "printf 'one\\ntwo\\n'; printf 'oops' 1>&2",
		func(chunk []byte) {
			mu.Lock()
			defer mu.Unlock()
			stdout.Write(chunk)
		},
		func(chunk []byte) {
			mu.Lock()
			defer mu.Unlock()
			stderr.Write(chunk)
		})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "one\ntwo\n", stdout.String())
	assert.Equal(t, "oops", stderr.String())
}

func TestStreamExitCode(t *testing.T) {
	r := New(nil)

	code, err := r.Stream(context.Background(), "exit 7", nil, nil)
	assert.Equal(t, 7, code)
	assert.ErrorIs(t, err, ErrNonZeroExit)

	r = New(&Config{Shell: "/nonexistent/helstore-sh"})
	code, err = r.Stream(context.Background(), "true", nil, nil)
	assert.Equal(t, -1, code)
	assert.ErrorIs(t, err, ErrSpawn)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Command exited with non-zero code 2", Message(fmt.Errorf("%w %d", ErrNonZeroExit, 2)))
	assert.Equal(t, "Already Capital", Message(errors.New("Already Capital")))
	assert.Equal(t, "", Message(errors.New("")))
}
