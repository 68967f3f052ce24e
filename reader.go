package resp

import (
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"time"
)

var crlfBytes = []byte(CRLF)

// deadlineConn is the slice of net.Conn the reader needs: raw reads plus
// per-read deadline control. TCP and unix stream sockets both satisfy it.
type deadlineConn interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// Reader buffers bytes received from the socket but not yet consumed by the
// protocol layer.
//
// The buffer grows only at the tail (socket reads) and shrinks only at the
// head (ReadExact, ReadLine), so it always holds a strict prefix of the
// unconsumed stream.
type Reader struct {
	conn    deadlineConn
	buf     []byte
	timeout time.Duration
}

// NewReader wraps conn. The reader starts with no timeout: reads wait
// indefinitely until SetTimeout configures a bound.
func NewReader(conn deadlineConn) *Reader {
	return &Reader{conn: conn}
}

// SetTimeout configures the per-read bound. Zero or negative means reads
// wait indefinitely for data.
func (r *Reader) SetTimeout(d time.Duration) { r.timeout = d }

// Timeout returns the configured per-read bound.
func (r *Reader) Timeout() time.Duration { return r.timeout }

// ReadExact returns exactly n bytes, drawing buffered bytes first and then
// reading the deficit straight from the socket. The deficit reads bypass the
// buffer so large payloads are not copied twice.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	if len(r.buf) > 0 {
		take := min(n, len(r.buf))
		out = append(out, r.buf[:take]...)
		r.consume(take)
	}
	for len(out) < n {
		chunk := make([]byte, n-len(out))
		m, err := r.read(chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk[:m]...)
	}
	return out, nil
}

// ReadLine returns and consumes bytes up to and including the next CRLF,
// pulling fixed-size chunks from the socket until a terminator appears.
func (r *Reader) ReadLine() ([]byte, error) {
	for {
		if i := bytes.Index(r.buf, crlfBytes); i >= 0 {
			line := append([]byte(nil), r.buf[:i+2]...)
			r.consume(i + 2)
			return line, nil
		}
		chunk := make([]byte, readChunkSize)
		m, err := r.read(chunk)
		if err != nil {
			return nil, err
		}
		r.buf = append(r.buf, chunk[:m]...)
	}
}

// consume drops n bytes from the front of the buffer.
func (r *Reader) consume(n int) {
	r.buf = r.buf[n:]
	if len(r.buf) == 0 {
		r.buf = nil
	}
}

// read performs one raw socket read bounded by the configured timeout. The
// deadline is the readiness wait: the runtime parks the read until data
// arrives or the deadline fires. End-of-stream is reported as a connection
// reset, never as an empty read, because the caller cannot otherwise tell
// "no data yet" from "peer gone".
func (r *Reader) read(p []byte) (int, error) {
	deadline := time.Time{}
	if r.timeout > 0 {
		deadline = time.Now().Add(r.timeout)
	}
	if err := r.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}

	n, err := r.conn.Read(p)
	if n > 0 {
		return n, nil
	}
	switch {
	case err == nil:
		return 0, nil
	case errors.Is(err, io.EOF):
		return 0, ErrConnectionReset
	case isTimeout(err):
		return 0, &TimeoutError{Op: "read", Duration: r.timeout}
	default:
		return 0, err
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
