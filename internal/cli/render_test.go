package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helwan-linux/helstore/pkg/progress"
)

func TestRendererPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)

	r.Handle(progress.Started("foo", "pacman -S foo"))
	r.Handle(progress.Output("foo", "resolving dependencies...\n", false))
	r.Handle(progress.Percentage("foo", 30))
	r.Handle(progress.Info("foo", "Total Download Size: 12 MiB"))
	r.Handle(progress.Failed("foo", "target not found"))

	out := buf.String()
	assert.Contains(t, out, "foo: pacman -S foo")
	assert.Contains(t, out, "resolving dependencies...")
	assert.Contains(t, out, "[ 30%] foo")
	assert.Contains(t, out, "Total Download Size: 12 MiB")
	assert.Contains(t, out, "✗ foo: target not found")
}
