//go:build windows

// Package pipeclient connects to an existing Windows named pipe server,
// retrying past the transient errors a not-yet-ready server produces, and
// exposes the resulting handle as a synchronous byte stream.
package pipeclient

import (
	"time"

	"golang.org/x/sys/windows"

	"github.com/iainh/baton/internal/batonerr"
	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/eventpool"
	"github.com/iainh/baton/internal/overlapped"
	"github.com/iainh/baton/internal/winlog"
)

const (
	errorFileNotFound = 2
	errorPipeBusy     = 231

	pollInterval     = 200 * time.Millisecond
	maxPollAttempts  = 300
	unlimitedAttempt = ^uint32(0)

	// SQOS flags requested on the client handle so the pipe server cannot
	// impersonate this process (winbase.h SECURITY_SQOS_PRESENT /
	// SECURITY_ANONYMOUS). golang.org/x/sys/windows does not export these
	// under those names, so they are reproduced here as the well-known
	// Win32 constants they are.
	securitySQOSPresent = 0x00100000
	securityAnonymous   = 0 // SecurityAnonymous (0) << 16
)

// Client owns a single overlapped pipe handle and a shared EventPool. It is
// created by a successful Connect and releases its handle exactly once,
// on Close.
type Client struct {
	handle overlapped.Handle
	pool   *eventpool.Pool
}

// Connect opens the named pipe described by cfg.Target. If the pipe does
// not yet exist or is busy, and cfg.Poll is set, it retries every 200ms; if
// cfg.LimitedPoll is also set, it gives up after 300 attempts.
func Connect(cfg config.Config) (*Client, error) {
	path := NormalizePath(cfg.Target)
	widePath, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &batonerr.PipeConnectionError{Err: err}
	}

	maxAttempts := unlimitedAttempt
	if cfg.LimitedPoll {
		maxAttempts = maxPollAttempts
	}

	var attempts uint32
	for {
		handle, err := windows.CreateFile(
			widePath,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			0,
			nil,
			windows.OPEN_EXISTING,
			windows.FILE_FLAG_OVERLAPPED|securitySQOSPresent|securityAnonymous,
			0,
		)
		if err == nil {
			winlog.Debugf("pipeclient: connected to %s", path)
			return &Client{
				handle: overlapped.NewHandleUnchecked(handle),
				pool:   eventpool.New(),
			}, nil
		}

		if !shouldRetryConnect(err, cfg.Poll) {
			return nil, &batonerr.PipeConnectionError{Err: err}
		}

		attempts++
		if attempts >= maxAttempts {
			return nil, &batonerr.PollingLimitError{Attempts: attempts}
		}

		winlog.Debugf("pipeclient: pipe not available (%s), attempt %d, retrying in %s", err, attempts, pollInterval)
		time.Sleep(pollInterval)
	}
}

// shouldRetryConnect reports whether a CreateFile failure should be retried:
// only FILE_NOT_FOUND and PIPE_BUSY are retryable, and only when polling is
// enabled at all. A retryable error with polling disabled must still fail.
func shouldRetryConnect(err error, poll bool) bool {
	if !poll {
		return false
	}
	errno, ok := err.(windows.Errno)
	if !ok {
		return false
	}
	return errno == errorFileNotFound || errno == errorPipeBusy
}

// Read implements io.Reader over the pipe handle.
func (c *Client) Read(p []byte) (int, error) {
	return overlapped.Read(c.handle, p, c.pool)
}

// Write implements io.Writer over the pipe handle.
func (c *Client) Write(p []byte) (int, error) {
	return overlapped.Write(c.handle, p, c.pool)
}

// Close releases the pipe handle and then the event pool's cached handles.
// It is safe to call exactly once per successful Connect.
func (c *Client) Close() error {
	err := windows.CloseHandle(c.handle.Raw())
	if poolErr := c.pool.Close(); err == nil {
		err = poolErr
	}
	return err
}
