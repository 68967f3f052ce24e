package resp

import (
	"net"
	"strconv"
	"time"
)

// Target identifies the server endpoint: a TCP host:port or the filesystem
// path of a unix stream socket.
type Target struct {
	Network string // "tcp" (the default) or "unix"
	Addr    string
}

// TCPTarget builds a TCP target from host and port.
func TCPTarget(host string, port int) Target {
	return Target{Network: "tcp", Addr: net.JoinHostPort(host, strconv.Itoa(port))}
}

// UnixTarget builds a unix stream-socket target from a filesystem path.
func UnixTarget(path string) Target {
	return Target{Network: "unix", Addr: path}
}

// Config carries the connection tunables. The zero value is usable.
type Config struct {
	// ConnectTimeout bounds the dial. Zero or negative means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// ReadTimeout bounds each read. Zero or negative means reads wait
	// indefinitely. Reconfigurable later via Connection.SetTimeout.
	ReadTimeout time.Duration

	// KeepAlive, when non-nil, is applied to TCP connections at dial time.
	KeepAlive *KeepAlive

	// DecodeBulk, when non-nil, transforms each bulk reply payload before
	// it is returned.
	DecodeBulk func([]byte) []byte
}

// Connection is one live session to the server. It owns its socket and read
// buffer exclusively and is not synchronized: callers issue one Write, then
// one Read, never concurrently.
//
// There is no reconnect; after Close, dial a fresh Connection (which starts
// with a fresh, empty buffer).
type Connection struct {
	conn       net.Conn
	reader     *Reader
	target     Target
	keepalive  *KeepAlive
	decodeBulk func([]byte) []byte
}

// Dial connects to a RESP server at a TCP host:port with default
// configuration.
func Dial(addr string) (*Connection, error) {
	return DialTarget(Target{Network: "tcp", Addr: addr}, Config{})
}

// DialTarget connects to target, failing with a TimeoutError when the
// connection does not complete within the connect timeout. Other dial
// failures propagate unchanged.
func DialTarget(target Target, cfg Config) (*Connection, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	network := target.Network
	if network == "" || network == "tcp" {
		// The protocol server historically speaks IPv4 only; pin address
		// resolution to IPv4 records.
		network = "tcp4"
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.Dial(network, target.Addr)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Op: "connect", Duration: timeout}
		}
		return nil, err
	}

	c := &Connection{
		conn:       conn,
		reader:     NewReader(conn),
		target:     target,
		decodeBulk: cfg.DecodeBulk,
	}
	c.reader.SetTimeout(cfg.ReadTimeout)

	if cfg.KeepAlive != nil {
		if err := c.SetKeepAlive(*cfg.KeepAlive); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// Target returns the endpoint this connection was dialed to.
func (c *Connection) Target() Target { return c.target }

// Connected reports whether the connection holds a live socket.
func (c *Connection) Connected() bool { return c.conn != nil }

// Close tears the connection down. Safe to call repeatedly. Errors from
// closing an already-broken socket are suppressed, and the handle is cleared
// on every path, so Connected reports false afterward no matter what.
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	defer func() {
		c.conn = nil
		c.reader = nil
		c.keepalive = nil
	}()
	_ = c.conn.Close()
	return nil
}

// Write encodes cmd and sends it in full. net.Conn completes short writes
// internally and errors whenever fewer bytes than requested went out.
func (c *Connection) Write(cmd Command) error {
	if c.conn == nil {
		return ErrClosed
	}
	_, err := c.conn.Write(cmd.Encode())
	return err
}

// Read decodes one reply, blocking until a full reply has arrived, the read
// timeout fires, or the peer goes away.
func (c *Connection) Read() (Reply, error) {
	if c.conn == nil {
		return Reply{}, ErrClosed
	}
	return DecodeReply(c.reader, c.decodeBulk)
}

// Do writes one command and reads its reply.
func (c *Connection) Do(args ...string) (Reply, error) {
	if err := c.Write(NewCommand(args...)); err != nil {
		return Reply{}, err
	}
	return c.Read()
}

// SetTimeout reconfigures the per-read timeout. Zero or negative means reads
// wait indefinitely.
func (c *Connection) SetTimeout(d time.Duration) {
	if c.reader != nil {
		c.reader.SetTimeout(d)
	}
}

// Timeout returns the configured per-read timeout.
func (c *Connection) Timeout() time.Duration {
	if c.reader == nil {
		return 0
	}
	return c.reader.Timeout()
}
