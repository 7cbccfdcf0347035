// Package relay pumps bytes between the process's stdin/stdout and a peer
// byte stream (a named pipe or an Assuan TCP connection) until both
// directions have stopped, honoring the per-direction early-exit policies in
// config.Config.
package relay

import (
	"errors"
	"io"
	"net"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/winlog"
)

// BufferSize is the fixed block size used by both pumps, matching the
// default Windows pipe buffer. It is not configurable.
const BufferSize = 32 * 1024

// exitFunc is process termination, indirected so tests can observe it
// instead of actually killing the test binary.
var exitFunc = os.Exit

// State holds the two monotone termination flags shared by the pumps.
// Once a flag is set it is never cleared.
type State struct {
	stdinDone int32
	peerDone  int32
}

func (s *State) setStdinDone() { atomic.StoreInt32(&s.stdinDone, 1) }
func (s *State) setPeerDone()  { atomic.StoreInt32(&s.peerDone, 1) }

// PeerDone reports whether the peer-reading pump has observed EOF or a
// broken-pipe condition.
func (s *State) PeerDone() bool { return atomic.LoadInt32(&s.peerDone) != 0 }

// StdinDone reports whether the stdin-reading pump has observed EOF.
func (s *State) StdinDone() bool { return atomic.LoadInt32(&s.stdinDone) != 0 }

// BrokenPipeClass reports whether err indicates the peer end of the pipe or
// socket has closed: io.ErrClosedPipe-class errors, raw OS code 109
// (ERROR_BROKEN_PIPE), raw OS code 233 (ERROR_PIPE_NOT_CONNECTED), a TCP
// connection reset (the Assuan branch's equivalent signal), or net.ErrClosed.
func BrokenPipeClass(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return false
	}
	if errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, net.ErrClosed) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == 109 || errno == 233 {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return BrokenPipeClass(opErr.Err)
	}

	return false
}

// Run drives the two pumps until termination. Pump A (stdin -> peer) runs
// on a dedicated goroutine; Pump B (peer -> stdout) runs on the calling
// goroutine, the thread that is actually "done" when Run returns. Run
// returns a non-nil error only for a non-terminal, non-broken-pipe failure
// observed by Pump B.
func Run(peerReader io.Reader, peerWriter io.Writer, cfg config.Config) error {
	state := &State{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		stdinToPeer(peerWriter, cfg, state)
	}()

	err := peerToStdout(peerReader, cfg, state)

	if !cfg.ExitOnPipeEOF {
		<-done
	}

	return err
}

func stdinToPeer(peer io.Writer, cfg config.Config, state *State) {
	buf := make([]byte, BufferSize)
	stdin := os.Stdin

	for {
		if state.PeerDone() {
			winlog.Debugf("relay: peer closed, stopping stdin reader")
			return
		}

		n, err := stdin.Read(buf)
		if n > 0 {
			winlog.Debugf("relay: read %d bytes from stdin", n)
			if werr := writeAll(peer, buf[:n]); werr != nil {
				if BrokenPipeClass(werr) {
					winlog.Debugf("relay: peer broken while writing")
					state.setPeerDone()
					return
				}
				winlog.Warnf("relay: error writing to peer: %s", werr)
				return
			}
		}

		if err != nil {
			if err == io.EOF {
				winlog.Debugf("relay: EOF on stdin")
				state.setStdinDone()

				if cfg.SendZero {
					winlog.Debugf("relay: sending 0-byte message to peer")
					if _, zerr := peer.Write(nil); zerr != nil {
						winlog.Warnf("relay: failed to send 0-byte message: %s", zerr)
					}
				}

				if cfg.ExitOnStdinEOF {
					winlog.Debugf("relay: exiting immediately on stdin EOF")
					exitFunc(0)
				}
				return
			}

			winlog.Warnf("relay: error reading stdin: %s", err)
			state.setStdinDone()
			return
		}
	}
}

func peerToStdout(peer io.Reader, cfg config.Config, state *State) error {
	buf := make([]byte, BufferSize)
	stdout := os.Stdout

	for {
		n, err := peer.Read(buf)
		if n > 0 {
			winlog.Debugf("relay: read %d bytes from peer", n)
			// os.File.Write issues the syscall directly; Go does not
			// buffer os.Stdout, so the write below already is the flush.
			if _, werr := stdout.Write(buf[:n]); werr != nil {
				return werr
			}
		}

		if err != nil {
			if err == io.EOF || BrokenPipeClass(err) {
				winlog.Debugf("relay: EOF or broken pipe on peer")
				state.setPeerDone()

				if cfg.ExitOnPipeEOF {
					winlog.Debugf("relay: exiting immediately on peer EOF")
					exitFunc(0)
				}
				return nil
			}
			return err
		}
	}
}

// writeAll retries short writes until buf is fully written or an error
// occurs, giving the relay write_all semantics within each direction.
func writeAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
