package wire

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// maxPointerHops bounds compression-pointer chasing. Each hop must
// land strictly before the pointer that led to it, which already
// rules out cycles; the hop count is a belt-and-suspenders bound
// against pathologically long chains.
const maxPointerHops = 32

const maxNameLength = 255
const maxLabelLength = 63

// Name is an ordered sequence of opaque label byte-strings. The core
// does no charset validation; labels are carried byte-for-byte.
type Name struct {
	Labels [][]byte
}

// NameFromString splits a dot-separated textual name into labels. A
// single trailing dot (the usual FQDN form) is ignored; empty input
// or "." yields the root name (zero labels).
func NameFromString(s string) Name {
	if s == "" || s == "." {
		return Name{}
	}
	s = strings.TrimSuffix(s, ".")
	parts := strings.Split(s, ".")
	labels := make([][]byte, 0, len(parts))
	for _, p := range parts {
		labels = append(labels, []byte(p))
	}
	return Name{Labels: labels}
}

// String renders the name as dot-separated label text for inspection
// and logging. It is not used by the codec to decide equality.
func (n Name) String() string {
	if len(n.Labels) == 0 {
		return "."
	}
	parts := make([]string, len(n.Labels))
	for i, l := range n.Labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ".") + "."
}

// Equal compares two names label-for-label (case-sensitive; this core
// does not implement DNS 0x20 case folding).
func (n Name) Equal(o Name) bool {
	if len(n.Labels) != len(o.Labels) {
		return false
	}
	for i := range n.Labels {
		if !bytes.Equal(n.Labels[i], o.Labels[i]) {
			return false
		}
	}
	return true
}

// wireLength is the exact number of octets this name occupies when
// encoded without compression: each label's length byte plus its
// content, plus the terminating zero octet.
func (n Name) wireLength() int {
	total := 1
	for _, l := range n.Labels {
		total += len(l) + 1
	}
	return total
}

// decodeName reads a name starting at cur's current position,
// following compression pointers as needed. On return, cur.Pos() is
// exactly two bytes past a terminal pointer (for a pointer encountered
// at the top level) or one byte past the terminating zero label —
// i.e. it always advances past the *encoded* bytes of the name, never
// into the jumped-to region.
func decodeName(cur *Cursor) (Name, error) {
	msg := cur.Bytes()
	var labels [][]byte
	pos := cur.Pos()
	jumped := false
	endPos := -1
	hops := 0
	length := 0

	for {
		if pos < 0 || pos >= len(msg) {
			return Name{}, ErrTruncated
		}
		b := msg[pos]

		if b&0xC0 == 0xC0 {
			if pos+1 >= len(msg) {
				return Name{}, ErrTruncated
			}
			ptr := int(binary.BigEndian.Uint16(msg[pos:pos+2]) & 0x3FFF)
			if ptr >= pos {
				return Name{}, ErrMalformedName
			}
			if !jumped {
				endPos = pos + 2
			}
			jumped = true
			hops++
			if hops > maxPointerHops {
				return Name{}, ErrMalformedName
			}
			pos = ptr
			continue
		}

		if b == 0 {
			if !jumped {
				endPos = pos + 1
			}
			break
		}

		if int(b) > maxLabelLength {
			return Name{}, ErrMalformedName
		}

		labelLen := int(b)
		pos++
		if pos+labelLen > len(msg) {
			return Name{}, ErrTruncated
		}
		label := make([]byte, labelLen)
		copy(label, msg[pos:pos+labelLen])
		labels = append(labels, label)
		length += labelLen + 1
		pos += labelLen
	}

	length++ // terminating zero
	if length > maxNameLength {
		return Name{}, ErrMalformedName
	}

	cur.Seek(endPos)
	return Name{Labels: labels}, nil
}

// encodeName writes n without compression, terminated by a zero
// octet, as the codec's encoder always does.
func encodeName(buf *bytes.Buffer, n Name) error {
	if n.wireLength() > maxNameLength {
		return ErrNameTooLong
	}
	for _, l := range n.Labels {
		if len(l) > maxLabelLength {
			return ErrLabelTooLong
		}
		buf.WriteByte(byte(len(l)))
		buf.Write(l)
	}
	buf.WriteByte(0)
	return nil
}
