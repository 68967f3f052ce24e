// Package resp implements a low-level client transport for RESP, the
// line-oriented, type-tagged request/response protocol spoken by Redis-style
// key-value servers.
//
// The package covers exactly one connection's worth of plumbing: dialing the
// server (TCP or unix socket) with a bounded connect timeout, buffering raw
// socket bytes, encoding commands into the array-of-bulk-strings wire form,
// and decoding replies (including arbitrarily nested arrays) into the Reply
// tagged union.
//
// Basic usage:
//
//	conn, err := resp.Dial("127.0.0.1:6379")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	reply, err := conn.Do("GET", "mykey")
//	if err != nil {
//	    return err
//	}
//	if reply.IsNil() {
//	    // key absent
//	}
//
// A server-reported error (a "-" reply) is a normal outcome, returned as a
// Reply of kind ReplyError rather than as a Go error, so callers can branch
// on expected command failures. Use Reply.Err to convert it when error-style
// handling fits better.
//
// Higher-level client concerns are out of scope here: no pooling, no
// pipelining across commands, no retries, no TLS, no cluster redirection.
// Build those on top.
//
// A Connection is not safe for concurrent use. Callers serialize access:
// one write, then one read.
package resp
