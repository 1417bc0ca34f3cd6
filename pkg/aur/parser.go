package aur

import (
	"regexp"

	"github.com/helwan-linux/helstore/pkg/core"
	"github.com/helwan-linux/helstore/pkg/pacman"
)

var (
	// aur <name> <version>[ [installed]]
	nativeRe = regexp.MustCompile(`^` + RepoName + `\s+(` + pacman.NamePattern + `)\s+` + pacman.VersionPattern)

	// <repo>/<name> <version>[ [installed]]
	echoedRe = regexp.MustCompile(`^(` + pacman.RepoPattern + `)/(` + pacman.NamePattern + `)\s+` + pacman.VersionPattern)
)

// NativeRule parses a community package line: aur <name> <version>[ [installed]]
func NativeRule(line string) (core.Package, bool) {
	m := nativeRe.FindStringSubmatch(line)
	if m == nil {
		return core.Package{}, false
	}

	return core.Package{
		Source:    core.SourceCommunity,
		Repo:      RepoName,
		Name:      m[1],
		Version:   m[2],
		Installed: m[3] != "",
	}, true
}

// EchoedRule parses a repository package echoed by the helper:
// <repo>/<name> <version>[ [installed]]. Lines naming the community
// repository are rejected so AUR packages are only represented once.
func EchoedRule(line string) (core.Package, bool) {
	m := echoedRe.FindStringSubmatch(line)
	if m == nil || m[1] == RepoName {
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

// ListingRules is the rule set for community listing output
func ListingRules() core.RuleSet {
	return core.RuleSet{NativeRule, EchoedRule}
}

// InstallCommand returns the helper install command for a package
func InstallCommand(helper, name string) string {
	return helper + " -S " + name
}

// RemoveCommand returns the helper removal command for a package
func RemoveCommand(helper, name string) string {
	return helper + " -R " + name
}
