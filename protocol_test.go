package resp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respwire/resp/internal/testutils"
)

func newTestReader(fragments ...string) *Reader {
	return NewReader(testutils.NewConnMock(fragments...))
}

func decodeWire(t *testing.T, wire string) Reply {
	t.Helper()
	reply, err := DecodeReply(newTestReader(wire), nil)
	require.NoError(t, err)
	return reply
}

func TestDecodeStatus(t *testing.T) {
	reply := decodeWire(t, "+OK\r\n")
	assert.Equal(t, Reply{Kind: ReplyStatus, Text: "OK"}, reply)
}

func TestDecodeEmptyStatus(t *testing.T) {
	reply := decodeWire(t, "+\r\n")
	assert.Equal(t, Reply{Kind: ReplyStatus, Text: ""}, reply)
}

func TestDecodeError(t *testing.T) {
	reply := decodeWire(t, "-ERR unknown command 'FOO'\r\n")
	assert.Equal(t, ReplyError, reply.Kind)
	assert.Equal(t, "ERR unknown command 'FOO'", reply.Text)

	// A server error is a reply value, not a transport failure, and does
	// not poison the connection.
	assert.False(t, ShouldCloseConnection(reply.Err()))
}

func TestDecodeInteger(t *testing.T) {
	assert.Equal(t, int64(1000), decodeWire(t, ":1000\r\n").Int)
	assert.Equal(t, int64(-5), decodeWire(t, ":-5\r\n").Int)
	assert.Equal(t, int64(0), decodeWire(t, ":0\r\n").Int)
}

func TestDecodeMalformedInteger(t *testing.T) {
	_, err := DecodeReply(newTestReader(":notanumber\r\n"), nil)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "malformed integer")
}

func TestDecodeBulk(t *testing.T) {
	reply := decodeWire(t, "$6\r\nfoobar\r\n")
	assert.Equal(t, ReplyBulk, reply.Kind)
	assert.Equal(t, []byte("foobar"), reply.Bulk)
}

func TestDecodeBulkWithEmbeddedCRLF(t *testing.T) {
	reply := decodeWire(t, "$8\r\nfoo\r\nbar\r\n")
	assert.Equal(t, []byte("foo\r\nbar"), reply.Bulk)
}

func TestDecodeBulkNil(t *testing.T) {
	// $-1 consumes only the type line: the reader script holds nothing
	// beyond it, so any payload read attempt would fail with a reset.
	reply := decodeWire(t, "$-1\r\n")
	assert.True(t, reply.IsNil())
}

func TestDecodeBulkEmptyConsumesTerminator(t *testing.T) {
	// A zero-length bulk is still followed by exactly two terminator bytes.
	// Decoding the status reply behind it proves they were consumed.
	r := newTestReader("$0\r\n\r\n+OK\r\n")

	first, err := DecodeReply(r, nil)
	require.NoError(t, err)
	assert.Equal(t, ReplyBulk, first.Kind)
	assert.Empty(t, first.Bulk)
	assert.False(t, first.IsNil())

	second, err := DecodeReply(r, nil)
	require.NoError(t, err)
	assert.Equal(t, Reply{Kind: ReplyStatus, Text: "OK"}, second)
}

func TestDecodeBulkFragmented(t *testing.T) {
	r := newTestReader("$6\r\nfo", "oba", "r\r\n")
	reply, err := DecodeReply(r, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("foobar"), reply.Bulk)
}

func TestDecodeBulkHook(t *testing.T) {
	upper := func(b []byte) []byte { return bytes.ToUpper(b) }
	reply, err := DecodeReply(newTestReader("$3\r\nfoo\r\n"), upper)
	require.NoError(t, err)
	assert.Equal(t, []byte("FOO"), reply.Bulk)
}

func TestDecodeArray(t *testing.T) {
	reply := decodeWire(t, "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n")
	require.Equal(t, ReplyArray, reply.Kind)

	got, err := reply.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, got)
}

func TestDecodeArrayEmpty(t *testing.T) {
	reply := decodeWire(t, "*0\r\n")
	assert.Equal(t, ReplyArray, reply.Kind)
	assert.Empty(t, reply.Array)
	assert.False(t, reply.IsNil())
}

func TestDecodeArrayNil(t *testing.T) {
	assert.True(t, decodeWire(t, "*-1\r\n").IsNil())
}

func TestDecodeArrayMixed(t *testing.T) {
	reply := decodeWire(t, "*4\r\n:1\r\n$-1\r\n+OK\r\n*-1\r\n")
	require.Equal(t, ReplyArray, reply.Kind)
	require.Len(t, reply.Array, 4)
	assert.Equal(t, int64(1), reply.Array[0].Int)
	assert.True(t, reply.Array[1].IsNil())
	assert.Equal(t, "OK", reply.Array[2].Text)
	assert.True(t, reply.Array[3].IsNil())
}

func TestDecodeNestedArrays(t *testing.T) {
	wire := "*2\r\n" +
		"*2\r\n:1\r\n:2\r\n" +
		"*1\r\n*1\r\n+deep\r\n"
	reply := decodeWire(t, wire)

	require.Equal(t, ReplyArray, reply.Kind)
	require.Len(t, reply.Array, 2)

	first := reply.Array[0]
	require.Equal(t, ReplyArray, first.Kind)
	assert.Equal(t, int64(1), first.Array[0].Int)
	assert.Equal(t, int64(2), first.Array[1].Int)

	deep := reply.Array[1].Array[0].Array[0]
	assert.Equal(t, Reply{Kind: ReplyStatus, Text: "deep"}, deep)
}

func TestDecodeDepthLimit(t *testing.T) {
	// Nesting at exactly the cap decodes; one level deeper is rejected.
	ok := strings.Repeat("*1\r\n", MaxReplyDepth) + ":1\r\n"
	_, err := DecodeReply(newTestReader(ok), nil)
	require.NoError(t, err)

	tooDeep := strings.Repeat("*1\r\n", MaxReplyDepth+1) + ":1\r\n"
	_, err = DecodeReply(newTestReader(tooDeep), nil)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "depth")
}

func TestDecodeUnknownTag(t *testing.T) {
	r := newTestReader("%5\r\n+OK\r\n")

	_, err := DecodeReply(r, nil)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, byte('%'), pe.Tag)

	// Only the offending line was consumed.
	reply, err := DecodeReply(r, nil)
	require.NoError(t, err)
	assert.Equal(t, Reply{Kind: ReplyStatus, Text: "OK"}, reply)
}

func TestDecodeShortLine(t *testing.T) {
	_, err := DecodeReply(newTestReader("\r\n"), nil)
	var pe *ProtocolError
	assert.ErrorAs(t, err, &pe)
}

func TestDecodeMalformedBulkLength(t *testing.T) {
	for _, wire := range []string{"$abc\r\n", "$-2\r\n", "*xyz\r\n", "*-7\r\n"} {
		_, err := DecodeReply(newTestReader(wire), nil)
		var pe *ProtocolError
		assert.ErrorAs(t, err, &pe, "wire %q", wire)
	}
}

func TestDecodePropagatesReset(t *testing.T) {
	// Peer dies in the middle of a bulk payload.
	_, err := DecodeReply(newTestReader("$6\r\nfoo"), nil)
	assert.ErrorIs(t, err, ErrConnectionReset)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// A command written by the client is itself a valid array reply, so the
	// decoder can read back what the encoder produced.
	wire := NewCommand("LRANGE", "mylist", "0", "-1").Encode()

	reply, err := DecodeReply(newTestReader(string(wire)), nil)
	require.NoError(t, err)

	got, err := reply.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"LRANGE", "mylist", "0", "-1"}, got)
}
