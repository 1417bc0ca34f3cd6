package platform

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func present(names ...string) func(string) bool {
	return func(cmd string) bool {
		return slices.Contains(names, cmd)
	}
}

func TestDetectPrefersYayAndXterm(t *testing.T) {
	p, err := detect("linux", "amd64", present("pacman", "paru", "yay", "kitty", "xterm"))
	require.NoError(t, err)

	assert.True(t, p.Pacman)
	assert.Equal(t, []string{"yay", "paru"}, p.Helpers)
	assert.Equal(t, "yay", p.Helper)
	assert.Equal(t, "xterm -e sh -c", p.Terminal)
	assert.Equal(t, []string{"xterm", "kitty"}, p.Terminals)
	assert.True(t, p.HasHelper("paru"))
}

func TestDetectFallbacks(t *testing.T) {
	p, err := detect("linux", "arm64", present("paru", "konsole"))
	require.NoError(t, err)

	assert.False(t, p.Pacman)
	assert.Equal(t, "paru", p.Helper)
	assert.Equal(t, "konsole -e sh -c", p.Terminal)
}

func TestDetectNothingFound(t *testing.T) {
	p, err := detect("linux", "amd64", present())
	require.NoError(t, err)

	assert.Empty(t, p.Helper)
	assert.Empty(t, p.Terminal)
	assert.Contains(t, p.String(), "linux/amd64")
}

func TestDetectUnsupportedOS(t *testing.T) {
	_, err := detect("windows", "amd64", present())
	assert.Error(t, err)
}
