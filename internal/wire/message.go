package wire

import "bytes"

// Question is a single entry of a message's question section.
type Question struct {
	Name  Name
	Type  RecordType
	Class RecordClass
}

func decodeQuestion(cur *Cursor) (Question, error) {
	var q Question

	name, err := decodeName(cur)
	if err != nil {
		return q, err
	}
	typ, err := cur.ReadUint16BE()
	if err != nil {
		return q, err
	}
	class, err := cur.ReadUint16BE()
	if err != nil {
		return q, err
	}

	q.Name = name
	q.Type = RecordType(typ)
	q.Class = RecordClass(class)
	return q, nil
}

func encodeQuestion(buf *bytes.Buffer, q Question) error {
	if err := encodeName(buf, q.Name); err != nil {
		return err
	}
	var tc [4]byte
	tc[0], tc[1] = byte(q.Type>>8), byte(q.Type)
	tc[2], tc[3] = byte(q.Class>>8), byte(q.Class)
	buf.Write(tc[:])
	return nil
}

// Message is a full decoded DNS packet.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []Record
	Authority  []Record
	Additional []Record
}

// Decode parses a raw DNS message. A query (QR=0) only ever yields
// questions: the answer, authority and additional sections are not
// interpreted and the corresponding header counts are reported as
// zero, so a client cannot smuggle answer-section or OPT-bearing
// additional data into a message this core treats as a query.
func Decode(msg []byte) (*Message, error) {
	if len(msg) < HeaderSize {
		return nil, ErrTruncated
	}

	cur := NewCursor(msg)
	m := &Message{}

	h, err := decodeHeader(cur)
	if err != nil {
		return nil, err
	}
	m.Header = h

	m.Questions = make([]Question, 0, h.QDCount)
	for i := 0; i < int(h.QDCount); i++ {
		q, err := decodeQuestion(cur)
		if err != nil {
			return nil, err
		}
		m.Questions = append(m.Questions, q)
	}

	if !h.QR {
		m.Header.ANCount = 0
		m.Header.NSCount = 0
		m.Header.ARCount = 0
		return m, nil
	}

	m.Answers, err = decodeRecords(cur, int(h.ANCount))
	if err != nil {
		return nil, err
	}
	m.Authority, err = decodeRecords(cur, int(h.NSCount))
	if err != nil {
		return nil, err
	}
	m.Additional, err = decodeRecords(cur, int(h.ARCount))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func decodeRecords(cur *Cursor, count int) ([]Record, error) {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		rr, err := decodeRecord(cur)
		if err != nil {
			return nil, err
		}
		records = append(records, rr)
	}
	return records, nil
}

// Encode serializes m: header, then questions, answers, authority and
// additional records in that order, with each section's count field
// taken from the length of its slice (not from m.Header's counts).
func Encode(m *Message) ([]byte, error) {
	var buf bytes.Buffer

	h := m.Header
	h.QDCount = uint16(len(m.Questions))
	h.ANCount = uint16(len(m.Answers))
	h.NSCount = uint16(len(m.Authority))
	h.ARCount = uint16(len(m.Additional))
	encodeHeader(&buf, h)

	for _, q := range m.Questions {
		if err := encodeQuestion(&buf, q); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Answers {
		if err := encodeRecord(&buf, rr); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Authority {
		if err := encodeRecord(&buf, rr); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Additional {
		if err := encodeRecord(&buf, rr); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
