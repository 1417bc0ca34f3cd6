package catalog

import "github.com/helwan-linux/helstore/pkg/core"

// Catalog maps package names to records. Adding a name that is already
// present replaces the record (last write wins) but keeps its position.
type Catalog struct {
	order  []string
	byName map[string]core.Package
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{byName: make(map[string]core.Package)}
}

// Merge builds a catalog from record lists applied in order
func Merge(lists ...[]core.Package) *Catalog {
	c := New()
	for _, list := range lists {
		for _, pkg := range list {
			c.Add(pkg)
		}
	}
	return c
}

// Add inserts or replaces the record for pkg.Name
func (c *Catalog) Add(pkg core.Package) {
	if _, ok := c.byName[pkg.Name]; !ok {
		c.order = append(c.order, pkg.Name)
	}
	c.byName[pkg.Name] = pkg
}

// Get looks up a package by name
func (c *Catalog) Get(name string) (core.Package, bool) {
	pkg, ok := c.byName[name]
	return pkg, ok
}

// Len returns the number of unique packages
func (c *Catalog) Len() int {
	return len(c.order)
}

// Packages returns the records in first-seen order
func (c *Catalog) Packages() []core.Package {
	out := make([]core.Package, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Installed returns the records marked installed, in first-seen order
func (c *Catalog) Installed() []core.Package {
	var out []core.Package
	for _, name := range c.order {
		if pkg := c.byName[name]; pkg.Installed {
			out = append(out, pkg)
		}
	}
	return out
}

// CountBySource returns how many records came from each source
func (c *Catalog) CountBySource() map[core.Source]int {
	counts := make(map[core.Source]int)
	for _, pkg := range c.byName {
		counts[pkg.Source]++
	}
	return counts
}
