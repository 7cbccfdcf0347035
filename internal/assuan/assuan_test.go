package assuan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iainh/baton/internal/batonerr"
)

func writeRendezvousFile(t *testing.T, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rendezvous")
	require.NoError(t, os.WriteFile(path, contents, 0o600))
	return path
}

func TestParseRendezvousFileRoundTrip(t *testing.T) {
	nonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	contents := append([]byte("17591\n"), nonce...)
	path := writeRendezvousFile(t, contents)

	port, got, err := ParseRendezvousFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 17591, port)
	assert.Equal(t, nonce, got)
}

func TestParseRendezvousFileCRLF(t *testing.T) {
	nonce := make([]byte, 16)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	contents := append([]byte("8080\r\n"), nonce...)
	path := writeRendezvousFile(t, contents)

	port, got, err := ParseRendezvousFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 8080, port)
	assert.Equal(t, nonce, got)
}

func TestParseRendezvousFileNonNumericPort(t *testing.T) {
	path := writeRendezvousFile(t, []byte("not_a_number\n0000000000000000"))

	_, _, err := ParseRendezvousFile(path)
	require.Error(t, err)
	var parseErr *batonerr.AssuanParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseRendezvousFileShortNonce(t *testing.T) {
	path := writeRendezvousFile(t, []byte("8080\n\x01\x02\x03"))

	_, _, err := ParseRendezvousFile(path)
	require.Error(t, err)
	var parseErr *batonerr.AssuanParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseRendezvousFileMissing(t *testing.T) {
	_, _, err := ParseRendezvousFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	var parseErr *batonerr.AssuanParseError
	require.ErrorAs(t, err, &parseErr)
}
