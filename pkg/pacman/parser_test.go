package pacman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helwan-linux/helstore/pkg/core"
)

func TestListingRule(t *testing.T) {
	tests := []struct {
		line string
		want core.Package
		ok   bool
	}{
		{
			line: "core bash 5.2.026-2 [installed]",
			want: core.Package{Source: core.SourceRepository, Repo: "core", Name: "bash", Version: "5.2.026-2", Installed: true},
			ok:   true,
		},
		{
			line: "extra firefox 124.0.1-1",
			want: core.Package{Source: core.SourceRepository, Repo: "extra", Name: "firefox", Version: "124.0.1-1"},
			ok:   true,
		},
		{
			line: "extra vim 9.1.0-1 [installed: 9.0.2-1]",
			want: core.Package{Source: core.SourceRepository, Repo: "extra", Name: "vim", Version: "9.1.0-1", Installed: true},
			ok:   true,
		},
		{line: "core glibc", ok: false},
		{line: "core glibc [installed]", ok: false},
		{line: ":: Synchronizing package databases...", ok: false},
		{line: "warning: database file for 'foo' does not exist", ok: false},
		{line: "error: failed to init transaction (unable to lock database)", ok: false},
		{line: "core bash 5.2-1 [installed] trailing", ok: false},
		{line: "core bash 5.2-1 extra-field", ok: false},
		{
			line: "extra python-pip 24.0-1 [installed]  ",
			want: core.Package{Source: core.SourceRepository, Repo: "extra", Name: "python-pip", Version: "24.0-1", Installed: true},
			ok:   true,
		},
		{
			line: "extra gtk3 1:3.24.41-1",
			want: core.Package{Source: core.SourceRepository, Repo: "extra", Name: "gtk3", Version: "1:3.24.41-1"},
			ok:   true,
		},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ListingRule(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestListingRuleInstalledMarker(t *testing.T) {
	for _, line := range []string{"core a 1", "core a 1 [installed]", "multilib lib32-a 2.0-1", "multilib lib32-a 2.0-1 [installed]"} {
		pkg, ok := ListingRule(line)
		require.True(t, ok, line)
		assert.Equal(t, strings.Contains(line, InstalledMarker), pkg.Installed, line)
	}
}

func TestParseListing(t *testing.T) {
	out := ":: Synchronizing package databases...\ncore bash 5.2-1 [installed]\n\nwarning: database file for 'foo' does not exist\ncore zlib 1.3-1\r\n"

	pkgs, err := ListingRules().Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "bash", pkgs[0].Name)
	assert.Equal(t, "zlib", pkgs[1].Name)
	assert.Equal(t, "1.3-1", pkgs[1].Version)
}

func TestParseUpdates(t *testing.T) {
	lines, updates := ParseUpdates("pkg1 1.0 -> 1.1\n  \npkg2 2.0 -> 2.1\nlinux 6.8 -> 6.9 [ignored]\n")

	assert.Equal(t, []string{"pkg1 1.0 -> 1.1", "pkg2 2.0 -> 2.1", "linux 6.8 -> 6.9 [ignored]"}, lines)
	assert.Equal(t, []core.Update{
		{Name: "pkg1", From: "1.0", To: "1.1"},
		{Name: "pkg2", From: "2.0", To: "2.1"},
		{Name: "linux", From: "6.8", To: "6.9"},
	}, updates)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"bash", "lib32-glibc", "python-pip", "gtk+3", "c++utilities", "xorg-server@1", "0ad"} {
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "-Syu", ".hidden", "foo; touch /tmp/x", "$(id)", "a&&b", "foo bar", "name\n"} {
		assert.False(t, ValidName(name), name)
	}
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "pacman -S htop", InstallCommand("htop"))
	assert.Equal(t, "pacman -R htop", RemoveCommand("htop"))
}
