package batonerr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipeConnectionErrorMessage(t *testing.T) {
	inner := errors.New("file not found")
	err := &PipeConnectionError{Err: inner}
	assert.Contains(t, err.Error(), "failed to connect to named pipe")
	assert.ErrorIs(t, err, inner)
}

func TestPollingLimitErrorMessage(t *testing.T) {
	err := &PollingLimitError{Attempts: 300}
	msg := err.Error()
	assert.Contains(t, msg, "300")
	assert.Contains(t, msg, "Polling limit reached")
}

func TestAssuanParseErrorMessage(t *testing.T) {
	err := &AssuanParseError{Reason: "invalid port"}
	msg := err.Error()
	assert.Contains(t, msg, "invalid port")
	assert.Contains(t, msg, "Assuan socket file")
}

func TestAssuanConnectionErrorMessage(t *testing.T) {
	err := &AssuanConnectionError{Err: io.ErrClosedPipe}
	assert.Contains(t, err.Error(), "Assuan TCP socket")
}

func TestAssuanConnectionErrorUnwraps(t *testing.T) {
	inner := io.ErrClosedPipe
	err := &AssuanConnectionError{Err: inner}
	assert.ErrorIs(t, err, inner)
}
