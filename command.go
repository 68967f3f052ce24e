package resp

import (
	"bytes"
	"strconv"
)

// Command is one protocol request: an ordered sequence of byte-string
// arguments, e.g. {"SET", "key", "value"}. Arguments are sent verbatim;
// the server sees exactly these bytes.
type Command [][]byte

// NewCommand builds a Command from string arguments.
func NewCommand(args ...string) Command {
	cmd := make(Command, len(args))
	for i, arg := range args {
		cmd[i] = []byte(arg)
	}
	return cmd
}

// Encode serializes the command in the array-of-bulk-strings wire form:
// *<count>CRLF followed by $<len>CRLF<arg>CRLF for each argument.
func (c Command) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte(TagArray)
	buf.WriteString(strconv.Itoa(len(c)))
	buf.WriteString(CRLF)
	for _, arg := range c {
		buf.WriteByte(TagBulk)
		buf.WriteString(strconv.Itoa(len(arg)))
		buf.WriteString(CRLF)
		buf.Write(arg)
		buf.WriteString(CRLF)
	}
	return buf.Bytes()
}
