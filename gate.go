// gate.go
package helstore

import "sync"

// Gate admits at most one privileged operation at a time. A Manager
// without a gate lets operations overlap.
type Gate struct {
	mu     sync.Mutex
	holder string
	busy   bool
}

// NewGate creates an open gate
func NewGate() *Gate {
	return &Gate{}
}

// TryAcquire claims the gate for label, reporting false if it is held
func (g *Gate) TryAcquire(label string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy {
		return false
	}
	g.busy = true
	g.holder = label
	return true
}

// Release opens the gate
func (g *Gate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	g.holder = ""
}

// Holder returns the label of the operation holding the gate, if any
func (g *Gate) Holder() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder
}
