// pkg/core/package.go
package core

import (
	"fmt"
	"strings"
)

// Source identifies which listing a package record came from
type Source string

const (
	// SourceRepository marks packages from the official repositories (pacman)
	SourceRepository Source = "Arch"
	// SourceCommunity marks packages from the community repository (AUR helper)
	SourceCommunity Source = "AUR"
)

// ParseSource converts user input such as "aur" or "repo" into a Source
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "arch", "repo", "repository", "pacman":
		return SourceRepository, nil
	case "aur", "community":
		return SourceCommunity, nil
	default:
		return "", fmt.Errorf("unknown package source: %q", s)
	}
}

// Package represents one entry in the unified catalog
type Package struct {
	Source    Source `json:"source" yaml:"source" toml:"source"`
	Repo      string `json:"repo" yaml:"repo" toml:"repo"`             // core, extra, aur, ...
	Name      string `json:"name" yaml:"name" toml:"name"`             // Dedup key
	Version   string `json:"version" yaml:"version" toml:"version"`    // Trimmed, as reported by the tool
	Installed bool   `json:"installed" yaml:"installed" toml:"installed"`
}

// Intent is the mutating action requested for a single package
type Intent string

const (
	IntentInstall Intent = "install"
	IntentRemove  Intent = "remove"
)

// OperationRequest asks for a package to be installed or removed.
// Command overrides the derived shell command when set.
type OperationRequest struct {
	PackageName string
	Source      Source
	Intent      Intent
	Command     string
}

// Result is the final outcome of an operation
type Result struct {
	Success bool
	Message string
}

// Update describes one upgradable package, decoded from "name old -> new"
type Update struct {
	Name string
	From string
	To   string
}

// ParseUpdate decodes a single update descriptor line.
// Returns false when the line does not have the "name old -> new" shape.
func ParseUpdate(line string) (Update, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[2] != "->" {
		return Update{}, false
	}
	return Update{Name: fields[0], From: fields[1], To: fields[3]}, true
}
