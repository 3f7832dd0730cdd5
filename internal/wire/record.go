package wire

import (
	"bytes"
	"encoding/binary"
)

// RRBody is the per-type RDATA payload of a resource record. The
// concrete type is selected by the record's Type field; unrecognized
// types and OPT both decode to RawBody.
type RRBody interface {
	encode(buf *bytes.Buffer) error
}

// ABody is the 4-byte IPv4 address RDATA of an A record.
type ABody struct{ Addr [4]byte }

func (b *ABody) encode(buf *bytes.Buffer) error { buf.Write(b.Addr[:]); return nil }

// AAAABody is the 16-byte IPv6 address RDATA of an AAAA record.
type AAAABody struct{ Addr [16]byte }

func (b *AAAABody) encode(buf *bytes.Buffer) error { buf.Write(b.Addr[:]); return nil }

// NSBody carries the nsdname of an NS record.
type NSBody struct{ NSDName Name }

func (b *NSBody) encode(buf *bytes.Buffer) error { return encodeName(buf, b.NSDName) }

// CNAMEBody carries the canonical name target.
type CNAMEBody struct{ Target Name }

func (b *CNAMEBody) encode(buf *bytes.Buffer) error { return encodeName(buf, b.Target) }

// MXBody is the mail exchange preference and target name.
type MXBody struct {
	Preference uint16
	Exchange   Name
}

func (b *MXBody) encode(buf *bytes.Buffer) error {
	var p [2]byte
	binary.BigEndian.PutUint16(p[:], b.Preference)
	buf.Write(p[:])
	return encodeName(buf, b.Exchange)
}

// SOABody is the start-of-authority RDATA.
type SOABody struct {
	MName, RName                             Name
	Serial, Refresh, Retry, Expire, Minimum uint32
}

func (b *SOABody) encode(buf *bytes.Buffer) error {
	if err := encodeName(buf, b.MName); err != nil {
		return err
	}
	if err := encodeName(buf, b.RName); err != nil {
		return err
	}
	var nums [20]byte
	binary.BigEndian.PutUint32(nums[0:4], b.Serial)
	binary.BigEndian.PutUint32(nums[4:8], b.Refresh)
	binary.BigEndian.PutUint32(nums[8:12], b.Retry)
	binary.BigEndian.PutUint32(nums[12:16], b.Expire)
	binary.BigEndian.PutUint32(nums[16:20], b.Minimum)
	buf.Write(nums[:])
	return nil
}

// RawBody is an opaque byte stream: used for OPT (never further
// interpreted by the codec) and for any record type this core does
// not assign a named variant to.
type RawBody struct{ Data []byte }

func (b *RawBody) encode(buf *bytes.Buffer) error { buf.Write(b.Data); return nil }

// Record is a single resource record: the common header fields plus
// a type-dispatched RDATA body.
type Record struct {
	Name  Name
	Type  RecordType
	Class RecordClass
	TTL   uint32
	Body  RRBody
}

func decodeRecord(cur *Cursor) (Record, error) {
	var rr Record

	name, err := decodeName(cur)
	if err != nil {
		return rr, err
	}
	rr.Name = name

	typ, err := cur.ReadUint16BE()
	if err != nil {
		return rr, err
	}
	class, err := cur.ReadUint16BE()
	if err != nil {
		return rr, err
	}
	ttl, err := cur.ReadUint32BE()
	if err != nil {
		return rr, err
	}
	rdlength, err := cur.ReadUint16BE()
	if err != nil {
		return rr, err
	}

	rr.Type = RecordType(typ)
	rr.Class = RecordClass(class)
	rr.TTL = ttl

	rdataStart := cur.Pos()
	rdataEnd := rdataStart + int(rdlength)
	if rdataEnd > cur.Len() {
		return rr, ErrTruncated
	}

	body, err := decodeBody(cur, rr.Type, rdataStart, rdataEnd)
	if err != nil {
		return rr, err
	}
	rr.Body = body

	// Structured variants must land exactly on the declared boundary;
	// a mismatch means the RDLENGTH lied about the record's shape.
	if cur.Pos() != rdataEnd {
		return rr, ErrMalformedRR
	}

	return rr, nil
}

// decodeBody dispatches on rr type. Structured variants read through
// cur (so embedded names may use compression pointers); opaque
// variants copy the raw rdlength bytes and seek cur past them.
func decodeBody(cur *Cursor, typ RecordType, start, end int) (RRBody, error) {
	switch typ {
	case TypeA:
		if end-start != 4 {
			return nil, ErrMalformedRR
		}
		b, err := cur.Read(4)
		if err != nil {
			return nil, err
		}
		body := &ABody{}
		copy(body.Addr[:], b)
		return body, nil

	case TypeAAAA:
		if end-start != 16 {
			return nil, ErrMalformedRR
		}
		b, err := cur.Read(16)
		if err != nil {
			return nil, err
		}
		body := &AAAABody{}
		copy(body.Addr[:], b)
		return body, nil

	case TypeNS:
		name, err := decodeName(cur)
		if err != nil {
			return nil, err
		}
		return &NSBody{NSDName: name}, nil

	case TypeCNAME:
		name, err := decodeName(cur)
		if err != nil {
			return nil, err
		}
		return &CNAMEBody{Target: name}, nil

	case TypeMX:
		pref, err := cur.ReadUint16BE()
		if err != nil {
			return nil, err
		}
		name, err := decodeName(cur)
		if err != nil {
			return nil, err
		}
		return &MXBody{Preference: pref, Exchange: name}, nil

	case TypeSOA:
		mname, err := decodeName(cur)
		if err != nil {
			return nil, err
		}
		rname, err := decodeName(cur)
		if err != nil {
			return nil, err
		}
		nums, err := cur.Read(20)
		if err != nil {
			return nil, err
		}
		return &SOABody{
			MName:   mname,
			RName:   rname,
			Serial:  binary.BigEndian.Uint32(nums[0:4]),
			Refresh: binary.BigEndian.Uint32(nums[4:8]),
			Retry:   binary.BigEndian.Uint32(nums[8:12]),
			Expire:  binary.BigEndian.Uint32(nums[12:16]),
			Minimum: binary.BigEndian.Uint32(nums[16:20]),
		}, nil

	default:
		// OPT and anything unrecognized: opaque, exactly rdlength bytes.
		raw, err := cur.Read(end - start)
		if err != nil {
			return nil, err
		}
		data := make([]byte, len(raw))
		copy(data, raw)
		return &RawBody{Data: data}, nil
	}
}

// encodeRecord writes name, type, class, ttl, then recomputes and
// writes rdlength from the actual encoded body size — any length
// carried on the Record value itself is ignored.
func encodeRecord(buf *bytes.Buffer, rr Record) error {
	if err := encodeName(buf, rr.Name); err != nil {
		return err
	}

	var hdr [10]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(rr.Type))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(rr.Class))
	binary.BigEndian.PutUint32(hdr[4:8], rr.TTL)
	// rdlength placeholder written at hdr[8:10] below once known.

	var body bytes.Buffer
	if rr.Body != nil {
		if err := rr.Body.encode(&body); err != nil {
			return err
		}
	}
	binary.BigEndian.PutUint16(hdr[8:10], uint16(body.Len()))

	buf.Write(hdr[:])
	buf.Write(body.Bytes())
	return nil
}
