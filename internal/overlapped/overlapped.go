//go:build windows

// Package overlapped implements synchronous-looking read/write on top of
// Windows OVERLAPPED I/O: acquire a pooled event, issue ReadFile/WriteFile,
// and block until the kernel signals completion.
package overlapped

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/iainh/baton/internal/eventpool"
)

// Handle is an opaque, copyable wrapper around a handle that has been opened
// with FILE_FLAG_OVERLAPPED. The type exists to carry, at the type level,
// the precondition Read and Write require; only the code that actually
// opened the handle in overlapped mode should construct one.
type Handle struct {
	raw windows.Handle
}

// NewHandleUnchecked wraps raw as an overlapped handle without verifying
// that it was opened with FILE_FLAG_OVERLAPPED. Callers must have opened it
// that way themselves.
func NewHandleUnchecked(raw windows.Handle) Handle {
	return Handle{raw: raw}
}

// Raw returns the underlying OS handle.
func (h Handle) Raw() windows.Handle {
	return h.raw
}

// Read performs a blocking read of up to len(buf) bytes from h, returning
// the number of bytes transferred. It looks synchronous to the caller but is
// built on an in-flight OVERLAPPED operation underneath.
func Read(h Handle, buf []byte, pool *eventpool.Pool) (int, error) {
	return do(h, pool, func(ov *windows.Overlapped, n *uint32) error {
		return windows.ReadFile(h.raw, buf, n, ov)
	})
}

// Write performs a blocking write of buf to h, returning the number of bytes
// transferred. A zero-length buf is a valid, supported call.
func Write(h Handle, buf []byte, pool *eventpool.Pool) (int, error) {
	return do(h, pool, func(ov *windows.Overlapped, n *uint32) error {
		return windows.WriteFile(h.raw, buf, n, ov)
	})
}

// do runs a single overlapped operation: acquire an event from pool
// (guaranteed to be returned on every exit path), build the OVERLAPPED
// record, invoke op, and resolve the three possible outcomes:
//
//  1. op returns nil: it completed inline, n is authoritative.
//  2. op returns ERROR_IO_PENDING: wait on the event, then collect the
//     final count with GetOverlappedResult.
//  3. op returns anything else: surface it.
func do(h Handle, pool *eventpool.Pool, op func(ov *windows.Overlapped, n *uint32) error) (int, error) {
	event, err := pool.Get()
	if err != nil {
		return 0, fmt.Errorf("overlapped: acquire event: %w", err)
	}
	defer pool.Put(event)

	ov := windows.Overlapped{HEvent: event}

	var n uint32
	err = op(&ov, &n)
	if err == nil {
		return int(n), nil
	}
	if err != windows.ERROR_IO_PENDING {
		return 0, err
	}

	waitResult, err := windows.WaitForSingleObject(event, windows.INFINITE)
	if err != nil {
		return 0, fmt.Errorf("overlapped: wait for completion: %w", err)
	}
	if waitResult != windows.WAIT_OBJECT_0 {
		return 0, fmt.Errorf("overlapped: unexpected wait result %d", waitResult)
	}

	var transferred uint32
	if err := windows.GetOverlappedResult(h.raw, &ov, &transferred, false); err != nil {
		return 0, fmt.Errorf("overlapped: get overlapped result: %w", err)
	}
	return int(transferred), nil
}
