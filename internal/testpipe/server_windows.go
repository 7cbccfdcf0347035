//go:build windows

// Package testpipe starts a throwaway named-pipe server so the pipeclient
// package can be exercised against a real Windows pipe instead of a fake. It has no production caller: baton never creates a pipe itself.
package testpipe

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/windows"
)

// Server is a single-instance named pipe server for tests. It accepts
// exactly one client connection and returns it from Accept as a Conn, an
// io.ReadWriteCloser over that connection.
type Server struct {
	mu     sync.Mutex
	addr   string
	handle windows.Handle
	closed bool
}

// NewServer creates the named pipe but does not wait for a client. The pipe
// is visible to clients as soon as NewServer returns, so a "pipe does not
// exist yet" window lasts until this call, not until Accept.
func NewServer(address string) (*Server, error) {
	lpName, err := windows.UTF16PtrFromString(address)
	if err != nil {
		return nil, fmt.Errorf("testpipe.NewServer(): %w", err)
	}

	mode := uint32(windows.PIPE_ACCESS_DUPLEX | windows.FILE_FLAG_OVERLAPPED | windows.FILE_FLAG_FIRST_PIPE_INSTANCE)
	handle, err := windows.CreateNamedPipe(lpName, mode, windows.PIPE_TYPE_BYTE, 1, 4096, 4096, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("testpipe.NewServer(): CreateNamedPipe: %w", err)
	}

	return &Server{addr: address, handle: handle}, nil
}

// Accept blocks until a client connects and returns a Conn wrapping the
// accepted instance.
func (s *Server) Accept() (*Conn, error) {
	event, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("testpipe.Server.Accept(): CreateEvent: %w", err)
	}
	defer windows.CloseHandle(event)

	overlapped := &windows.Overlapped{HEvent: event}
	err = windows.ConnectNamedPipe(s.handle, overlapped)
	if err != nil && err != windows.ERROR_PIPE_CONNECTED {
		if err != windows.ERROR_IO_PENDING {
			return nil, fmt.Errorf("testpipe.Server.Accept(): ConnectNamedPipe: %w", err)
		}
		if _, err = windows.WaitForSingleObject(event, windows.INFINITE); err != nil {
			return nil, fmt.Errorf("testpipe.Server.Accept(): WaitForSingleObject: %w", err)
		}
		var transferred uint32
		if err = windows.GetOverlappedResult(s.handle, overlapped, &transferred, true); err != nil {
			return nil, fmt.Errorf("testpipe.Server.Accept(): GetOverlappedResult: %w", err)
		}
	}

	return &Conn{handle: s.handle}, nil
}

// Close tears down the pipe instance. Safe to call after Accept.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	windows.DisconnectNamedPipe(s.handle)
	return windows.CloseHandle(s.handle)
}

// Conn is the server-side end of one accepted connection.
type Conn struct {
	handle windows.Handle
}

func (c *Conn) Read(b []byte) (int, error) {
	event, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return 0, err
	}
	defer windows.CloseHandle(event)
	overlapped := &windows.Overlapped{HEvent: event}

	var n uint32
	err = windows.ReadFile(c.handle, b, &n, overlapped)
	if err == windows.ERROR_IO_PENDING {
		if _, waitErr := windows.WaitForSingleObject(event, windows.INFINITE); waitErr != nil {
			return 0, waitErr
		}
		err = windows.GetOverlappedResult(c.handle, overlapped, &n, true)
	}
	if err == windows.ERROR_BROKEN_PIPE {
		return int(n), io.EOF
	}
	return int(n), err
}

func (c *Conn) Write(b []byte) (int, error) {
	event, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return 0, err
	}
	defer windows.CloseHandle(event)
	overlapped := &windows.Overlapped{HEvent: event}

	var n uint32
	err = windows.WriteFile(c.handle, b, &n, overlapped)
	if err == windows.ERROR_IO_PENDING {
		if _, waitErr := windows.WaitForSingleObject(event, windows.INFINITE); waitErr != nil {
			return 0, waitErr
		}
		err = windows.GetOverlappedResult(c.handle, overlapped, &n, true)
	}
	return int(n), err
}

func (c *Conn) Close() error {
	return windows.CloseHandle(c.handle)
}
