//go:build windows

// Package eventpool caches manual-reset event handles so overlapped I/O does
// not pay a CreateEvent/CloseHandle pair on every read or write.
package eventpool

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

// Pool is a mutex-guarded stack of manual-reset event handles. It grows only
// to the number of operations that are concurrently in flight, which in this
// program's relay is at most one per pump direction, so a LIFO stack under a
// single mutex is simpler and cheaper than anything lock-free at this depth.
type Pool struct {
	mu     sync.Mutex
	events []windows.Handle
}

// New returns an empty Pool. Handles are created lazily by Get.
func New() *Pool {
	return &Pool{}
}

// Get returns a manual-reset event handle in the non-signaled state. If the
// pool holds a cached handle it is reset and returned; manual-reset events
// stay signaled after a wait is satisfied, so the reset here is what makes
// a reused handle safe for the next operation. Otherwise a fresh handle is
// created with no name and default security.
func (p *Pool) Get() (windows.Handle, error) {
	p.mu.Lock()
	n := len(p.events)
	if n > 0 {
		h := p.events[n-1]
		p.events = p.events[:n-1]
		p.mu.Unlock()
		if err := windows.ResetEvent(h); err != nil {
			return 0, fmt.Errorf("eventpool: reset cached event: %w", err)
		}
		return h, nil
	}
	p.mu.Unlock()

	h, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return 0, fmt.Errorf("eventpool: create event: %w", err)
	}
	return h, nil
}

// Put returns a handle to the pool for reuse. Callers must not use h again
// after calling Put; ownership transfers back to the pool.
func (p *Pool) Put(h windows.Handle) {
	p.mu.Lock()
	p.events = append(p.events, h)
	p.mu.Unlock()
}

// Close releases every handle currently cached in the pool. It does not
// affect handles that are checked out at the time of the call; callers are
// expected to have returned every handle via Put before closing.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, h := range p.events {
		if err := windows.CloseHandle(h); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("eventpool: close event: %w", err)
		}
	}
	p.events = nil
	return firstErr
}
