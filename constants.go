package resp

import "time"

// Reply type tags, the first byte of every reply line.
const (
	TagError   = '-'
	TagStatus  = '+'
	TagInteger = ':'
	TagBulk    = '$'
	TagArray   = '*'
)

// CRLF terminates every protocol line. A bulk payload is also followed by
// one CRLF, even when its declared length is zero.
const CRLF = "\r\n"

// DefaultConnectTimeout bounds how long a dial may take when Config leaves
// ConnectTimeout unset.
const DefaultConnectTimeout = 10 * time.Second

// MaxReplyDepth caps array nesting during decode. Replies nested deeper are
// rejected with a ProtocolError instead of growing an unbounded work list.
const MaxReplyDepth = 64

// readChunkSize is how many bytes ReadLine pulls from the socket per attempt
// while scanning for a line terminator.
const readChunkSize = 1024
