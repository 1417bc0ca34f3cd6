// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"slices"

	"github.com/helwan-linux/helstore/pkg/aur"
)

// Terminal describes a terminal emulator able to run a shell script
type Terminal struct {
	Binary string // Executable looked up in PATH
	Prefix string // Prefix taking one script argument
}

// KnownTerminals lists supported terminal emulators in order of preference
var KnownTerminals = []Terminal{
	{Binary: "xterm", Prefix: "xterm -e sh -c"},
	{Binary: "konsole", Prefix: "konsole -e sh -c"},
	{Binary: "alacritty", Prefix: "alacritty -e sh -c"},
	{Binary: "kitty", Prefix: "kitty sh -c"},
	{Binary: "gnome-terminal", Prefix: "gnome-terminal -- sh -c"},
	{Binary: "xfce4-terminal", Prefix: "xfce4-terminal -x sh -c"},
}

// Platform represents the detected system tools
type Platform struct {
	OS        string   // linux
	Arch      string   // amd64, arm64
	Pacman    bool     // pacman found in PATH
	Helpers   []string // Community helpers found in PATH
	Helper    string   // Preferred community helper
	Terminal  string   // Preferred terminal prefix, empty if none found
	Terminals []string // Terminal binaries found in PATH
}

// Detect detects the current platform and the tools available to the engine
func Detect() (*Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH, commandExists)
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func detect(goos, goarch string, exists func(string) bool) (*Platform, error) {
	if goos != "linux" {
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}

	p := &Platform{
		OS:      goos,
		Arch:    goarch,
		Pacman:  exists("pacman"),
		Helpers: []string{},
	}

	for _, h := range aur.KnownHelpers {
		if exists(h) {
			p.Helpers = append(p.Helpers, h)
		}
	}
	if len(p.Helpers) > 0 {
		p.Helper = p.Helpers[0]
	}

	for _, t := range KnownTerminals {
		if exists(t.Binary) {
			p.Terminals = append(p.Terminals, t.Binary)
			if p.Terminal == "" {
				p.Terminal = t.Prefix
			}
		}
	}

	return p, nil
}

// HasHelper reports whether the named community helper was found
func (p *Platform) HasHelper(name string) bool {
	return slices.Contains(p.Helpers, name)
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (pacman: %t, helpers: %v, terminal: %q)",
		p.OS, p.Arch, p.Pacman, p.Helpers, p.Terminal)
}
