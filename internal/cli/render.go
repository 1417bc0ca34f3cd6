// internal/cli/render.go
package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gookit/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/helwan-linux/helstore/pkg/progress"
)

// color helpers
var (
	colInfo    = color.Info
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
)

// renderer prints progress events. On a TTY percentages drive a progress
// bar, otherwise they are printed as plain lines.
type renderer struct {
	mu  sync.Mutex
	out io.Writer
	tty bool
	bar *progressbar.ProgressBar
}

func newRenderer(out io.Writer) *renderer {
	r := &renderer{out: out}
	if f, ok := out.(*os.File); ok {
		r.tty = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// Handle renders one event
func (r *renderer) Handle(e progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e.Kind {
	case progress.KindStarted:
		fmt.Fprintf(r.out, "%s %s\n", colArrow.Sprint("==>"), colInfo.Sprintf("%s: %s", e.Package, e.Command))
	case progress.KindOutput:
		r.clearBar()
		if e.IsError {
			fmt.Fprint(r.out, colWarn.Sprint(e.Text))
		} else {
			fmt.Fprint(r.out, e.Text)
		}
	case progress.KindPercentage:
		r.percent(e)
	case progress.KindInfo:
		r.clearBar()
		fmt.Fprintln(r.out, colInfo.Sprint(e.Text))
	case progress.KindCompleted:
		r.finishBar()
		fmt.Fprintln(r.out, colSuccess.Sprintf("✓ %s: %s", e.Package, e.Text))
	case progress.KindFailed:
		r.finishBar()
		fmt.Fprintln(r.out, colError.Sprintf("✗ %s: %s", e.Package, e.Text))
	}
}

func (r *renderer) percent(e progress.Event) {
	if !r.tty {
		fmt.Fprintf(r.out, "[%3d%%] %s\n", e.Percent, e.Package)
		return
	}

	if r.bar == nil {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription(e.Package),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionFullWidth(),
		)
	}
	_ = r.bar.Set(e.Percent)
}

func (r *renderer) clearBar() {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
}

func (r *renderer) finishBar() {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(r.out)
		r.bar = nil
	}
}
