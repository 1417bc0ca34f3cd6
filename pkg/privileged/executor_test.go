package privileged

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helwan-linux/helstore/pkg/progress"
	"github.com/helwan-linux/helstore/pkg/runner"
)

func drain(events <-chan progress.Event) []progress.Event {
	var out []progress.Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func kinds(events []progress.Event) []progress.Kind {
	out := make([]progress.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// requireOneTerminal checks the stream ends with its only terminal event
func requireOneTerminal(t *testing.T, events []progress.Event) progress.Event {
	t.Helper()
	require.NotEmpty(t, events)
	terminals := 0
	for _, e := range events {
		if e.Kind.Terminal() {
			terminals++
		}
	}
	require.Equal(t, 1, terminals, "exactly one terminal event")
	last := events[len(events)-1]
	require.True(t, last.Kind.Terminal(), "terminal event must be last")
	return last
}

func direct() *Executor {
	return New(runner.New(nil), nil)
}

func TestExecuteInstallScenario(t *testing.T) {
	events := drain(direct().Execute(context.Background(), `printf 'Total Download Size: 12 MiB\n'`, "foo"))

	assert.Equal(t, []progress.Kind{
		progress.KindStarted,
		progress.KindOutput,
		progress.KindInfo,
		progress.KindCompleted,
	}, kinds(events))
	assert.Equal(t, "foo", events[0].Package)
	assert.Equal(t, `printf 'Total Download Size: 12 MiB\n'`, events[0].Command)
	assert.Equal(t, "Total Download Size: 12 MiB", events[2].Text)
	assert.Equal(t, SuccessMessage, requireOneTerminal(t, events).Text)
}

func TestRunResultOnSuccess(t *testing.T) {
	var seen []progress.Event
	res := direct().Run(context.Background(), `printf '[3/10] installing foo\n'`, "foo", func(e progress.Event) {
		seen = append(seen, e)
	})

	require.True(t, res.Success)
	assert.Equal(t, "Operation completed successfully for foo.", res.Message)
	assert.Contains(t, seen, progress.Percentage("foo", 30))
	requireOneTerminal(t, seen)
}

func TestExecuteNonZeroExitWithStderr(t *testing.T) {
	var seen []progress.Event
	res := direct().Run(context.Background(), `echo 'error: target not found: nope' 1>&2; exit 1`, "nope", func(e progress.Event) {
		seen = append(seen, e)
	})

	assert.False(t, res.Success)
	assert.Equal(t, "error: target not found: nope\n", res.Message)

	last := requireOneTerminal(t, seen)
	assert.Equal(t, progress.KindFailed, last.Kind)
	assert.Contains(t, seen, progress.Output("nope", "error: target not found: nope\n", true))
}

func TestExecuteNonZeroExitWithoutStderr(t *testing.T) {
	res := direct().Run(context.Background(), "exit 4", "foo", nil)

	assert.False(t, res.Success)
	assert.Equal(t, "Command exited with non-zero code 4", res.Message)
}

func TestExecuteSpawnFailure(t *testing.T) {
	ex := New(runner.New(&runner.Config{Shell: "/nonexistent/helstore-sh"}), nil)

	events := drain(ex.Execute(context.Background(), "pacman -S foo", "foo"))

	assert.Equal(t, []progress.Kind{progress.KindStarted, progress.KindFailed}, kinds(events))
	assert.True(t, strings.HasPrefix(events[1].Text, "Command execution failed: "), events[1].Text)
}

func TestExecuteStartedIsQueuedBeforeSpawn(t *testing.T) {
	events := direct().Execute(context.Background(), "sleep 0.2", "foo")

	select {
	case ev := <-events:
		assert.Equal(t, progress.KindStarted, ev.Kind)
	default:
		t.Fatal("started event must be available as soon as Execute returns")
	}
	drain(events)
}

func TestExecuteTrailingLineIsFlushed(t *testing.T) {
	events := drain(direct().Execute(context.Background(), `printf '[1/2] a\n[2/2] b'`, "foo"))

	var percents []int
	for _, e := range events {
		if e.Kind == progress.KindPercentage {
			percents = append(percents, e.Percent)
		}
	}
	assert.Equal(t, []int{50, 100}, percents)
	requireOneTerminal(t, events)
}

func TestExecuteConcurrentStreamsStayWellFormed(t *testing.T) {
	ex := direct()

	var wg sync.WaitGroup
	results := make([][]progress.Event, 2)
	for i, label := range []string{"alpha", "beta"} {
		i, label := i, label
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = drain(ex.Execute(context.Background(), `printf '[1/1] x\n'`, label))
		}()
	}
	wg.Wait()

	for i, label := range []string{"alpha", "beta"} {
		requireOneTerminal(t, results[i])
		for _, e := range results[i] {
			assert.Equal(t, label, e.Package)
		}
	}
}

func TestCollectWithoutTerminal(t *testing.T) {
	ch := make(chan progress.Event, 1)
	ch <- progress.Started("foo", "x")
	close(ch)

	res := Collect(ch, nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestWrap(t *testing.T) {
	ex := New(nil, &Config{
		Terminal:    "xterm -e sh -c",
		Escalate:    "sudo",
		ConfirmFlag: "--noconfirm",
		PausePrompt: "Press Enter to close...",
	})

	assert.Equal(t,
		`xterm -e sh -c 'sudo pacman -S foo --noconfirm; echo '\''Press Enter to close...'\''; read _'`,
		ex.Wrap("pacman -S foo"))

	ex = New(nil, &Config{Escalate: "sudo", ConfirmFlag: "--noconfirm"})
	assert.Equal(t, "sudo yay -R foo --noconfirm", ex.Wrap("yay -R foo"))

	assert.Equal(t, "pacman -Syy", direct().Wrap("pacman -Syy"))
}
