package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultReadTimeout bounds every feed read so ingestion never stalls the loop.
	DefaultReadTimeout = 50 * time.Millisecond
	// dialTimeout bounds the initial connection attempt.
	dialTimeout = 5 * time.Second
	// maxLineLength bounds a buffered line. A Mode S line is at most about 32 bytes.
	maxLineLength = 128
)

var (
	// ErrNoData means the read deadline passed without a complete line. Not an error.
	ErrNoData = errors.New("no data before read deadline")
	// ErrFeedClosed means the remote side closed the connection. The session cannot continue.
	ErrFeedClosed = errors.New("feed closed by remote")
	// ErrLineTooLong means a line exceeded maxLineLength and was dropped. The feed stays usable.
	ErrLineTooLong = errors.New("feed line too long")
)

// Feed reads newline-terminated frames from a demodulator's raw output port.
type Feed struct {
	conn     net.Conn
	reader   *bufio.Reader
	timeout  time.Duration
	partial  []byte // bytes of a line interrupted by the read deadline
	overlong bool   // the current line was dropped, skip to its end
}

// Dial connects to host:port. There is no reconnect: when the connection drops the feed
// reports ErrFeedClosed and the session ends.
func Dial(ctx context.Context, host string, port int, readTimeout time.Duration) (*Feed, error) {
	dialer := net.Dialer{Timeout: dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return NewFeed(conn, readTimeout), nil
}

func NewFeed(conn net.Conn, readTimeout time.Duration) *Feed {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	return &Feed{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		timeout: readTimeout,
	}
}

// ReadLine returns the next complete line including its terminator.
// It returns ErrNoData when the deadline passes first and ErrFeedClosed once the remote side
// has closed the connection and everything buffered has been handed out. A line longer than
// maxLineLength is dropped and reported once as ErrLineTooLong.
func (f *Feed) ReadLine() (string, error) {
	if err := f.conn.SetReadDeadline(time.Now().Add(f.timeout)); err != nil {
		return "", fmt.Errorf("feed.ReadLine: %w", err)
	}

	chunk, err := f.reader.ReadBytes('\n')
	if err == nil {
		return f.take(chunk)
	}

	var netErr net.Error
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		f.keep(chunk)
		return "", ErrNoData
	case errors.Is(err, io.EOF):
		if f.overlong || len(f.partial)+len(chunk) > 0 {
			return f.take(chunk)
		}
		return "", ErrFeedClosed
	default:
		return "", fmt.Errorf("feed.ReadLine: %w", err)
	}
}

// keep buffers an unterminated chunk, dropping it once the line grows past maxLineLength.
func (f *Feed) keep(chunk []byte) {
	if f.overlong {
		return
	}

	if len(f.partial)+len(chunk) > maxLineLength {
		f.partial = f.partial[:0]
		f.overlong = true

		return
	}

	f.partial = append(f.partial, chunk...)
}

func (f *Feed) take(chunk []byte) (string, error) {
	defer func() {
		f.partial = f.partial[:0]
		f.overlong = false
	}()

	if f.overlong || len(f.partial)+len(chunk) > maxLineLength {
		return "", ErrLineTooLong
	}

	return string(append(f.partial, chunk...)), nil
}

func (f *Feed) Close() error {
	if err := f.conn.Close(); err != nil {
		return fmt.Errorf("feed.Close: %w", err)
	}

	return nil
}
