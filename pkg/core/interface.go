// pkg/core/interface.go
package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineRule parses one line of tool output into a package record.
// It returns false when the line does not have the rule's shape.
type LineRule func(line string) (Package, bool)

// RuleSet tries each rule in order and returns the first match
type RuleSet []LineRule

// Match applies the rules to a line
func (rs RuleSet) Match(line string) (Package, bool) {
	for _, rule := range rs {
		if pkg, ok := rule(line); ok {
			return pkg, true
		}
	}
	return Package{}, false
}

// Parse scans r line by line and collects every record matched by the rules.
// Lines no rule matches are skipped.
func (rs RuleSet) Parse(r io.Reader) ([]Package, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var packages []Package
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if pkg, ok := rs.Match(line); ok {
			packages = append(packages, pkg)
		}
	}

	if err := scanner.Err(); err != nil {
		return packages, fmt.Errorf("scanning listing: %w", err)
	}
	return packages, nil
}
