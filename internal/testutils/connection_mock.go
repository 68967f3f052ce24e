package testutils

import (
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"time"
)

// ConnMock is a net.Conn with a scripted read side. Each fragment is served
// by at most one Read call, so tests can exercise partial delivery and line
// terminators split across reads.
//
// When the script runs out, Read reports io.EOF, or, after Stall, blocks
// until the read deadline and reports os.ErrDeadlineExceeded the way a real
// socket with no incoming data would.
type ConnMock struct {
	fragments [][]byte
	writeBuf  bytes.Buffer
	deadline  time.Time
	stall     bool
	closed    bool
}

// NewConnMock builds a mock whose reads deliver the given fragments in order.
func NewConnMock(fragments ...string) *ConnMock {
	m := &ConnMock{}
	for _, f := range fragments {
		m.fragments = append(m.fragments, []byte(f))
	}
	return m
}

// Stall makes the mock block on the deadline instead of reporting EOF once
// the scripted fragments are exhausted.
func (m *ConnMock) Stall() *ConnMock {
	m.stall = true
	return m
}

func (m *ConnMock) Read(b []byte) (int, error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	if len(m.fragments) > 0 {
		frag := m.fragments[0]
		n := copy(b, frag)
		if n < len(frag) {
			m.fragments[0] = frag[n:]
		} else {
			m.fragments = m.fragments[1:]
		}
		return n, nil
	}
	if m.stall {
		if m.deadline.IsZero() {
			return 0, errors.New("testutils: read with no deadline would block forever")
		}
		time.Sleep(time.Until(m.deadline))
		return 0, os.ErrDeadlineExceeded
	}
	return 0, io.EOF
}

func (m *ConnMock) Write(b []byte) (int, error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	return m.writeBuf.Write(b)
}

// Written returns everything written to the mock so far.
func (m *ConnMock) Written() []byte {
	return m.writeBuf.Bytes()
}

// Deadline returns the most recent read deadline set on the mock.
func (m *ConnMock) Deadline() time.Time {
	return m.deadline
}

func (m *ConnMock) Close() error {
	m.closed = true
	return nil
}

func (m *ConnMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6379}
}

func (m *ConnMock) SetDeadline(t time.Time) error {
	m.deadline = t
	return nil
}

func (m *ConnMock) SetReadDeadline(t time.Time) error {
	m.deadline = t
	return nil
}

func (m *ConnMock) SetWriteDeadline(t time.Time) error { return nil }
