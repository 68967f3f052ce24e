package resp

import (
	"net"
	"time"
)

// KeepAlive describes TCP keepalive probing: how long the connection may sit
// idle before probing starts, the interval between probes, and how many
// unanswered probes tear the connection down.
type KeepAlive struct {
	Time     time.Duration
	Interval time.Duration
	Probes   int
}

// SetKeepAlive applies ka to the underlying socket. On transports without
// keepalive support (unix sockets) it is a no-op; callers must not assume
// the tuning took effect.
func (c *Connection) SetKeepAlive(ka KeepAlive) error {
	if c.conn == nil {
		return ErrClosed
	}
	tc, ok := c.conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	err := tc.SetKeepAliveConfig(net.KeepAliveConfig{
		Enable:   true,
		Idle:     ka.Time,
		Interval: ka.Interval,
		Count:    ka.Probes,
	})
	if err != nil {
		return err
	}
	c.keepalive = &ka
	return nil
}

// KeepAlive reports the keepalive parameters applied to this connection.
// ok is false when none were applied or the transport has no support.
func (c *Connection) KeepAlive() (ka KeepAlive, ok bool) {
	if c.keepalive == nil {
		return KeepAlive{}, false
	}
	return *c.keepalive, true
}
