// Package batonerr holds the typed error kinds connect and relay can
// return, mirroring the Rust original's BatonError enum (see
// _examples/original_source/src/errors.rs) in Go's idiomatic error-value
// style rather than as an exception type.
package batonerr

import "fmt"

// PipeConnectionError reports that CreateFile failed with a non-retryable
// error, or with a retryable error while polling was disabled.
type PipeConnectionError struct {
	Err error
}

func (e *PipeConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to named pipe: %s", e.Err)
}

func (e *PipeConnectionError) Unwrap() error { return e.Err }

// PollingLimitError reports that the connect retry cap was reached.
type PollingLimitError struct {
	Attempts uint32
}

func (e *PollingLimitError) Error() string {
	return fmt.Sprintf("Polling limit reached after %d attempts", e.Attempts)
}

// AssuanParseError reports that the rendezvous file was missing, unreadable,
// malformed, or short.
type AssuanParseError struct {
	Reason string
}

func (e *AssuanParseError) Error() string {
	return fmt.Sprintf("failed to parse Assuan socket file: %s", e.Reason)
}

// AssuanConnectionError reports that the TCP connect or nonce write failed.
type AssuanConnectionError struct {
	Err error
}

func (e *AssuanConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to Assuan TCP socket: %s", e.Err)
}

func (e *AssuanConnectionError) Unwrap() error { return e.Err }
