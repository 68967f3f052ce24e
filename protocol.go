package resp

import (
	"strconv"
	"strings"
)

// DecodeReply reads one complete reply from r.
//
// Array replies are decoded iteratively with an explicit stack of partially
// filled arrays instead of call recursion, so an adversarially nested reply
// cannot exhaust the goroutine stack. Nesting beyond MaxReplyDepth fails with
// a ProtocolError.
//
// decodeBulk, when non-nil, transforms each bulk payload before it lands in
// the Reply (charset normalization and the like). Read failures (timeout,
// reset) propagate unchanged.
func DecodeReply(r *Reader, decodeBulk func([]byte) []byte) (Reply, error) {
	var stack []*pendingArray
	for {
		rep, count, isArray, err := decodeOne(r, decodeBulk)
		if err != nil {
			return Reply{}, err
		}
		if isArray {
			if count > 0 {
				if len(stack) >= MaxReplyDepth {
					return Reply{}, &ProtocolError{Message: "array nesting exceeds depth limit"}
				}
				stack = append(stack, &pendingArray{elems: make([]Reply, 0, count), want: count})
				continue
			}
			rep = Reply{Kind: ReplyArray, Array: []Reply{}}
		}
		// rep is complete; fold it into the enclosing arrays, popping every
		// array it fills up.
		for {
			if len(stack) == 0 {
				return rep, nil
			}
			top := stack[len(stack)-1]
			top.elems = append(top.elems, rep)
			if len(top.elems) < top.want {
				break
			}
			stack = stack[:len(stack)-1]
			rep = Reply{Kind: ReplyArray, Array: top.elems}
		}
	}
}

// pendingArray is an array reply still waiting for elements.
type pendingArray struct {
	elems []Reply
	want  int
}

// decodeOne reads one reply line and decodes every non-array case in full.
// For an array header it returns isArray=true with the declared count and
// lets the caller drive element decoding.
func decodeOne(r *Reader, decodeBulk func([]byte) []byte) (rep Reply, count int, isArray bool, err error) {
	line, err := r.ReadLine()
	if err != nil {
		return Reply{}, 0, false, err
	}
	if len(line) < 3 {
		return Reply{}, 0, false, &ProtocolError{Message: "short reply line"}
	}
	tag, payload := line[0], line[1:len(line)-2]

	switch tag {
	case TagError:
		return Reply{Kind: ReplyError, Text: strings.TrimSpace(string(payload))}, 0, false, nil

	case TagStatus:
		return Reply{Kind: ReplyStatus, Text: strings.TrimSpace(string(payload))}, 0, false, nil

	case TagInteger:
		v, perr := strconv.ParseInt(string(payload), 10, 64)
		if perr != nil {
			return Reply{}, 0, false, &ProtocolError{Message: "malformed integer reply " + strconv.Quote(string(payload))}
		}
		return Reply{Kind: ReplyInteger, Int: v}, 0, false, nil

	case TagBulk:
		n, perr := strconv.Atoi(string(payload))
		if perr != nil || n < -1 {
			return Reply{}, 0, false, &ProtocolError{Message: "malformed bulk length " + strconv.Quote(string(payload))}
		}
		if n == -1 {
			return Reply{Kind: ReplyNil}, 0, false, nil
		}
		data, err := r.ReadExact(n)
		if err != nil {
			return Reply{}, 0, false, err
		}
		// The payload terminator is always present, even for an empty bulk.
		if _, err := r.ReadExact(2); err != nil {
			return Reply{}, 0, false, err
		}
		if decodeBulk != nil {
			data = decodeBulk(data)
		}
		return Reply{Kind: ReplyBulk, Bulk: data}, 0, false, nil

	case TagArray:
		n, perr := strconv.Atoi(string(payload))
		if perr != nil || n < -1 {
			return Reply{}, 0, false, &ProtocolError{Message: "malformed array count " + strconv.Quote(string(payload))}
		}
		if n == -1 {
			return Reply{Kind: ReplyNil}, 0, false, nil
		}
		return Reply{}, n, true, nil

	default:
		return Reply{}, 0, false, &ProtocolError{Tag: tag, Message: "unknown reply type tag"}
	}
}
