package pacman

import (
	"regexp"
	"strings"

	"github.com/helwan-linux/helstore/pkg/core"
)

// Token patterns shared by the listing rules of both tools
var (
	// RepoPattern matches a sync repository name such as core or multilib
	RepoPattern = `[A-Za-z0-9._-]+`

	// NamePattern matches a package name: alphanumerics and @._+-, never
	// starting with a hyphen or a dot
	NamePattern = `[A-Za-z0-9@_+][A-Za-z0-9@._+-]*`

	// VersionPattern matches the rest of a listing line: a single version
	// token and an optional installed marker. It captures both.
	VersionPattern = `([^\s\[\]]+)(?:\s+(` +
		regexp.QuoteMeta(strings.TrimSuffix(InstalledMarker, "]")) +
		`(?::[^\]]*)?\]))?\s*$`
)

var (
	// <repo> <name> <version>[ [installed]]
	listingRe = regexp.MustCompile(`^(` + RepoPattern + `)\s+(` + NamePattern + `)\s+` + VersionPattern)

	nameRe = regexp.MustCompile(`^` + NamePattern + `$`)
)

// ValidName reports whether name is a well-formed package name
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// ListingRule parses a "pacman -Sl" line: <repo> <name> <version>[ [installed]].
// Banners, warnings and anything else not shaped like a record are rejected.
func ListingRule(line string) (core.Package, bool) {
	m := listingRe.FindStringSubmatch(line)
	if m == nil {
		return core.Package{}, false
	}

	return core.Package{
		Source:    core.SourceRepository,
		Repo:      m[1],
		Name:      m[2],
		Version:   m[3],
		Installed: m[4] != "",
	}, true
}

// ListingRules is the rule set for repository listing output
func ListingRules() core.RuleSet {
	return core.RuleSet{ListingRule}
}

// ParseUpdates splits "pacman -Qu" output into its non-blank descriptor lines
// and decodes the ones shaped "name old -> new".
func ParseUpdates(output string) ([]string, []core.Update) {
	var lines []string
	var updates []core.Update

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if u, ok := core.ParseUpdate(line); ok {
			updates = append(updates, u)
		}
	}

	return lines, updates
}

// InstallCommand returns the repository install command for a package
func InstallCommand(name string) string {
	return Binary + " -S " + name
}

// RemoveCommand returns the repository removal command for a package
func RemoveCommand(name string) string {
	return Binary + " -R " + name
}
