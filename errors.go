package resp

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClosed is returned by operations on a Connection that is not
	// connected.
	ErrClosed = errors.New("resp: connection closed")

	// ErrConnectionReset is returned when the peer closes the stream while
	// more bytes were expected. Always fatal to the connection.
	ErrConnectionReset = errors.New("resp: connection reset by peer")
)

// TimeoutError is returned when a connect or read does not complete within
// its configured bound. Safe to retry at a higher level with a fresh
// connection; this transport never retries on its own.
type TimeoutError struct {
	Op       string // "connect" or "read"
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("resp: %s timed out after %s", e.Op, e.Duration)
}

// Timeout reports true, matching the net.Error convention.
func (e *TimeoutError) Timeout() bool { return true }

// ProtocolError is returned when a reply does not follow the wire grammar:
// an unrecognized type tag, a malformed length or integer line, or array
// nesting beyond MaxReplyDepth. It signals stream desynchronization; the
// connection must not be reused.
type ProtocolError struct {
	Tag     byte // offending type tag, zero when the failure is not tag-related
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Tag != 0 {
		return fmt.Sprintf("resp: protocol error: %s (tag %q)", e.Message, e.Tag)
	}
	return "resp: protocol error: " + e.Message
}

// CommandError is a server-reported error reply (the "-" tag). It is not a
// transport fault: Read returns it inside a Reply of kind ReplyError, and
// Reply.Err converts it to this type for callers who prefer error handling.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string { return e.Message }

// ShouldCloseConnection reports whether err poisons the connection. Server
// command errors leave the stream in sync and the connection reusable;
// everything else (timeouts, resets, protocol desync, raw I/O errors) means
// the connection should be discarded.
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}
	var ce *CommandError
	return !errors.As(err, &ce)
}
