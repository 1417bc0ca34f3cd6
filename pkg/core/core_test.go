package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"", SourceRepository},
		{"Arch", SourceRepository},
		{"repo", SourceRepository},
		{"AUR", SourceCommunity},
		{" community ", SourceCommunity},
	}

	for _, tt := range tests {
		got, err := ParseSource(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSource("flatpak")
	assert.Error(t, err)
}

func TestParseUpdate(t *testing.T) {
	u, ok := ParseUpdate("linux 6.1.1-1 -> 6.2.0-1")
	require.True(t, ok)
	assert.Equal(t, Update{Name: "linux", From: "6.1.1-1", To: "6.2.0-1"}, u)

	_, ok = ParseUpdate("linux 6.2.0-1")
	assert.False(t, ok)
}

func TestRuleSetParse(t *testing.T) {
	upper := func(line string) (Package, bool) {
		if !strings.HasPrefix(line, "pkg ") {
			return Package{}, false
		}
		return Package{Name: strings.TrimPrefix(line, "pkg ")}, true
	}

	pkgs, err := RuleSet{upper}.Parse(strings.NewReader("pkg a\r\n\n  \nnoise\npkg b"))
	require.NoError(t, err)
	assert.Equal(t, []Package{{Name: "a"}, {Name: "b"}}, pkgs)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("helper: paru\nterminal: none\ncommands:\n  sync: pacman -Sy\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "paru", cfg.Helper)
	assert.Equal(t, Disabled, cfg.Terminal)
	assert.Equal(t, "pacman -Sy", cfg.Commands.Sync)
	assert.Equal(t, "pacman -Syu", cfg.Commands.Upgrade)
	assert.Equal(t, "sudo", cfg.Escalate)
	assert.Equal(t, "paru -Sl", cfg.CommunityListCommand())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "yay", cfg.HelperCommand())
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("helper: [unterminated"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Exclusive = true

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
