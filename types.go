package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplyKind discriminates the variants of a decoded reply.
type ReplyKind uint8

const (
	ReplyStatus  ReplyKind = iota // simple string ("+" tag)
	ReplyError                    // server-reported error ("-" tag)
	ReplyInteger                  // 64-bit signed integer (":" tag)
	ReplyBulk                     // length-prefixed byte string ("$" tag)
	ReplyArray                    // sequence of replies ("*" tag)
	ReplyNil                      // null sentinel ("$-1" or "*-1")
)

// Reply is one decoded server reply. Only the field matching Kind is
// meaningful; the others hold their zero value.
type Reply struct {
	Kind  ReplyKind
	Text  string // status or error text
	Int   int64
	Bulk  []byte
	Array []Reply
}

// IsNil reports whether the reply is the null sentinel (declared length or
// count of -1). An empty bulk string or empty array is not nil.
func (r Reply) IsNil() bool { return r.Kind == ReplyNil }

// Err returns the server error as a *CommandError when the reply is an
// error reply, nil otherwise.
func (r Reply) Err() error {
	if r.Kind == ReplyError {
		return &CommandError{Message: r.Text}
	}
	return nil
}

// Strings returns the elements of an array reply as strings. Bulk and
// status elements convert directly, nil elements become empty strings;
// anything else fails.
func (r Reply) Strings() ([]string, error) {
	if r.Kind != ReplyArray {
		return nil, fmt.Errorf("resp: %v reply is not an array", r.Kind)
	}
	out := make([]string, len(r.Array))
	for i, el := range r.Array {
		switch el.Kind {
		case ReplyBulk:
			out[i] = string(el.Bulk)
		case ReplyStatus:
			out[i] = el.Text
		case ReplyNil:
			out[i] = ""
		default:
			return nil, fmt.Errorf("resp: array element %d is a %v, not a string", i, el.Kind)
		}
	}
	return out, nil
}

// String renders the reply for display.
func (r Reply) String() string {
	switch r.Kind {
	case ReplyStatus:
		return r.Text
	case ReplyError:
		return "(error) " + r.Text
	case ReplyInteger:
		return "(integer) " + strconv.FormatInt(r.Int, 10)
	case ReplyBulk:
		return strconv.Quote(string(r.Bulk))
	case ReplyNil:
		return "(nil)"
	case ReplyArray:
		elems := make([]string, len(r.Array))
		for i, el := range r.Array {
			elems[i] = el.String()
		}
		return "[" + strings.Join(elems, ", ") + "]"
	}
	return "(unknown)"
}

func (k ReplyKind) String() string {
	switch k {
	case ReplyStatus:
		return "status"
	case ReplyError:
		return "error"
	case ReplyInteger:
		return "integer"
	case ReplyBulk:
		return "bulk"
	case ReplyArray:
		return "array"
	case ReplyNil:
		return "nil"
	}
	return "unknown"
}
