package wire

import "encoding/binary"

// Cursor is a sequential, big-endian reader over an immutable byte
// buffer. It never copies the backing array; Read/Peek hand back
// sub-slices of it, so callers that need to retain bytes past the
// next Read must copy them first (the record decoder does this for
// RDATA).
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential reading starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Seek moves the cursor to an absolute offset. It does not validate
// the offset; a subsequent Read/Peek past the end fails with
// ErrTruncated.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos+n > len(c.buf) {
		return nil, ErrTruncated
	}
	return c.buf[c.pos : c.pos+n], nil
}

// Read returns the next n bytes and advances the cursor past them.
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// ReadByte reads a single byte and advances the cursor.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16BE reads a big-endian u16 and advances the cursor.
func (c *Cursor) ReadUint16BE() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32BE reads a big-endian u32 and advances the cursor.
func (c *Cursor) ReadUint32BE() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Bytes returns the full underlying buffer, for callers (name
// decoding) that need to jump to arbitrary earlier offsets rather
// than read sequentially.
func (c *Cursor) Bytes() []byte { return c.buf }
