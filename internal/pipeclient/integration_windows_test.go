//go:build windows

package pipeclient

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/testpipe"
)

var pipeCounter int32

func uniquePipeName(t *testing.T) string {
	t.Helper()
	n := atomic.AddInt32(&pipeCounter, 1)
	return fmt.Sprintf(`\\.\pipe\baton-pipeclient-test-%d-%d`, time.Now().UnixNano(), n)
}

// TestConnectHappyPath covers the pipe-already-exists case: Connect succeeds
// on the first CreateFile attempt and bytes written by the resulting Client
// arrive at the server.
func TestConnectHappyPath(t *testing.T) {
	addr := uniquePipeName(t)
	server, err := testpipe.NewServer(addr)
	require.NoError(t, err)
	defer server.Close()

	accepted := make(chan *testpipe.Conn, 1)
	go func() {
		conn, acceptErr := server.Accept()
		require.NoError(t, acceptErr)
		accepted <- conn
	}()

	client, err := Connect(config.Config{Target: addr})
	require.NoError(t, err)
	defer client.Close()

	conn := <-accepted
	defer conn.Close()

	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 4)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	require.Equal(t, "ping", string(buf))
}

// TestConnectWaitsForLateAppearingPipe covers the case where the server does
// not exist yet when Connect is first called, so polling must retry past
// ERROR_FILE_NOT_FOUND until the server shows up.
func TestConnectWaitsForLateAppearingPipe(t *testing.T) {
	addr := uniquePipeName(t)

	type result struct {
		client *Client
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := Connect(config.Config{Target: addr, Poll: true})
		done <- result{c, err}
	}()

	time.Sleep(250 * time.Millisecond)

	server, err := testpipe.NewServer(addr)
	require.NoError(t, err)
	defer server.Close()

	accepted := make(chan *testpipe.Conn, 1)
	go func() {
		conn, acceptErr := server.Accept()
		require.NoError(t, acceptErr)
		accepted <- conn
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		defer res.client.Close()
	case <-time.After(5 * time.Second):
		t.Fatal("Connect did not return after the pipe appeared")
	}

	conn := <-accepted
	conn.Close()
}
