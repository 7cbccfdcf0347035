// Package assuan implements the client side of GnuPG's Assuan-over-TCP
// rendezvous: a local server atomically writes a (port, nonce) pair to a
// file; the client reads the file, connects to the port, and proves
// possession of the nonce by sending it as the first message.
package assuan

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iainh/baton/internal/batonerr"
	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/winlog"
)

const (
	nonceSize       = 16
	pollInterval    = 200 * time.Millisecond
	maxPollAttempts = 300
)

// ParseRendezvousFile reads path, which must start with a decimal TCP port
// in ASCII terminated by \n or \r\n, immediately followed by exactly 16
// bytes of binary nonce. Any failure to open, read, or parse the file
// surfaces as an AssuanParseError.
func ParseRendezvousFile(path string) (port uint16, nonce []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, &batonerr.AssuanParseError{Reason: fmt.Sprintf("cannot open file: %s", err)}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, nil, &batonerr.AssuanParseError{Reason: fmt.Sprintf("cannot read port line: %s", err)}
	}

	portStr := strings.TrimRight(line, "\r\n")
	parsed, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0, nil, &batonerr.AssuanParseError{Reason: fmt.Sprintf("invalid port number %q: %s", portStr, err)}
	}

	nonce = make([]byte, nonceSize)
	if _, err := readFull(r, nonce); err != nil {
		return 0, nil, &batonerr.AssuanParseError{Reason: fmt.Sprintf("cannot read nonce (need %d bytes): %s", nonceSize, err)}
	}

	return uint16(parsed), nonce, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Connect parses cfg.Target as a rendezvous file, opens a TCP connection to
// 127.0.0.1:<port> with the same poll/limited-poll retry discipline as the
// pipe connector, and, on success, writes the 16-byte nonce to the stream as
// a single message before returning it.
func Connect(cfg config.Config) (net.Conn, error) {
	port, nonce, err := ParseRendezvousFile(cfg.Target)
	if err != nil {
		return nil, err
	}
	winlog.Debugf("assuan: port %d, nonce length %d", port, len(nonce))

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	conn, err := connectWithRetry(addr, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Write(nonce); err != nil {
		conn.Close()
		return nil, &batonerr.AssuanConnectionError{Err: err}
	}
	winlog.Debugf("assuan: nonce sent successfully")

	return conn, nil
}

func connectWithRetry(addr string, cfg config.Config) (net.Conn, error) {
	maxAttempts := uint32(^uint32(0))
	if cfg.LimitedPoll {
		maxAttempts = maxPollAttempts
	}

	var attempts uint32
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			winlog.Debugf("assuan: connected to TCP socket at %s", addr)
			return conn, nil
		}

		if !cfg.Poll {
			return nil, &batonerr.AssuanConnectionError{Err: err}
		}

		attempts++
		if attempts >= maxAttempts {
			return nil, &batonerr.PollingLimitError{Attempts: attempts}
		}

		winlog.Debugf("assuan: connection attempt %d failed: %s, retrying in %s", attempts, err, pollInterval)
		time.Sleep(pollInterval)
	}
}
