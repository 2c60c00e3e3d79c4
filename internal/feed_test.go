package internal

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialLoopback connects a Feed to a loopback listener and returns the accepted remote side.
// Closing the remote side delivers a real EOF to the feed.
func dialLoopback(t *testing.T, readTimeout time.Duration) (*Feed, net.Conn) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	addr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)

	feed, err := Dial(context.Background(), addr.IP.String(), addr.Port, readTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })

	remote, ok := <-accepted
	require.True(t, ok, "accept failed")

	return feed, remote
}

func TestFeedReadLine(t *testing.T) {
	feed, remote := dialLoopback(t, time.Second)

	_, err := remote.Write([]byte("*8D4840D6202CC371C32CE0576098;\n*0000;\n"))
	require.NoError(t, err)
	require.NoError(t, remote.Close())

	line, err := feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*8D4840D6202CC371C32CE0576098;\n", line)

	line, err = feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*0000;\n", line)

	_, err = feed.ReadLine()
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestFeedTimeoutKeepsPartialLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	feed := NewFeed(server, 100*time.Millisecond)

	written := make(chan struct{})
	go func() {
		_, _ = client.Write([]byte("*8D4840D6"))
		close(written)
	}()

	_, err := feed.ReadLine()
	require.ErrorIs(t, err, ErrNoData)
	<-written

	go func() {
		_, _ = client.Write([]byte("202CC371C32CE0576098;\n"))
	}()

	line, err := feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*8D4840D6202CC371C32CE0576098;\n", line)
}

func TestFeedNoDataIsNotFatal(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	feed := NewFeed(server, 20*time.Millisecond)

	for range 3 {
		_, err := feed.ReadLine()
		assert.ErrorIs(t, err, ErrNoData)
	}
}

func TestFeedFlushesUnterminatedTail(t *testing.T) {
	feed, remote := dialLoopback(t, time.Second)

	_, err := remote.Write([]byte("*8D4840D6;"))
	require.NoError(t, err)
	require.NoError(t, remote.Close())

	line, err := feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*8D4840D6;", line)

	_, err = feed.ReadLine()
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestFeedDropsOverlongLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	feed := NewFeed(server, 50*time.Millisecond)
	garbage := strings.Repeat("A", maxLineLength)

	// two unterminated writes, each within the cap on its own but not together
	for range 2 {
		written := make(chan struct{})
		go func() {
			_, _ = client.Write([]byte(garbage))
			close(written)
		}()

		_, err := feed.ReadLine()
		require.ErrorIs(t, err, ErrNoData)
		<-written
	}

	assert.Empty(t, feed.partial, "the dropped fragment is not kept")

	go func() {
		_, _ = client.Write([]byte(garbage + "\n*8D4840D6;\n"))
	}()

	_, err := feed.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)

	line, err := feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*8D4840D6;\n", line, "the feed recovers at the next line")
}

func TestFeedDropsOverlongTerminatedLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	feed := NewFeed(server, time.Second)

	go func() {
		_, _ = client.Write([]byte("*" + strings.Repeat("0", maxLineLength) + ";\n*0000;\n"))
	}()

	_, err := feed.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)

	line, err := feed.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "*0000;\n", line)
}

func TestDialRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	_, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	_, err = Dial(context.Background(), "127.0.0.1", portNum, time.Second)
	assert.Error(t, err)
}
