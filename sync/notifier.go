package sync

import (
	"sync"
	"sync/atomic"
)

// Hooks is the start/end callback pair a UI registers to drive a busy indicator.
type Hooks struct {
	Start func()
	End   func()
}

// Notifier brackets remote operations with the registered hooks.
//
// Brackets are flat: there is no reference counting, so two overlapping
// operations produce start, start, end, end and an observer may see "end"
// while the other operation is still running.
type Notifier struct {
	mu       sync.RWMutex
	hooks    Hooks
	inFlight atomic.Int64
}

// NewNotifier creates a notifier with no hooks registered
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Register replaces the hook pair. Either hook may be nil.
func (n *Notifier) Register(h Hooks) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks = h
}

// Track calls Start, runs fn and calls End exactly once, even if fn fails or panics.
func (n *Notifier) Track(fn func() error) error {
	if n == nil {
		return fn()
	}

	n.mu.RLock()
	h := n.hooks
	n.mu.RUnlock()

	n.inFlight.Add(1)
	if h.Start != nil {
		h.Start()
	}
	defer func() {
		n.inFlight.Add(-1)
		if h.End != nil {
			h.End()
		}
	}()

	return fn()
}

// InFlight returns the number of brackets currently open. Diagnostics only:
// hooks are still called once per bracket regardless of this count.
func (n *Notifier) InFlight() int64 {
	if n == nil {
		return 0
	}
	return n.inFlight.Load()
}

// Chain combines hook pairs; starts run in order, ends run in reverse order.
func Chain(hooks ...Hooks) Hooks {
	return Hooks{
		Start: func() {
			for _, h := range hooks {
				if h.Start != nil {
					h.Start()
				}
			}
		},
		End: func() {
			for i := len(hooks) - 1; i >= 0; i-- {
				if hooks[i].End != nil {
					hooks[i].End()
				}
			}
		},
	}
}
