package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTripA(t *testing.T) {
	rr := Record{
		Name:  NameFromString("example.com"),
		Type:  TypeA,
		Class: ClassIN,
		TTL:   60,
		Body:  &ABody{Addr: [4]byte{1, 2, 3, 4}},
	}

	m := &Message{Header: Header{QR: true, Rcode: RcodeNoError}, Answers: []Record{rr}}
	encoded, err := Encode(m)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Answers, 1)
	require.True(t, rr.Name.Equal(decoded.Answers[0].Name))
	body, ok := decoded.Answers[0].Body.(*ABody)
	require.True(t, ok)
	require.Equal(t, rr.Body.(*ABody).Addr, body.Addr)
}

func TestRecordRDLengthIsRecomputedOnEncode(t *testing.T) {
	rr := Record{
		Name:  NameFromString("example.com"),
		Type:  TypeNS,
		Class: ClassIN,
		TTL:   3600,
		Body:  &NSBody{NSDName: NameFromString("ns1.example.com")},
	}
	m := &Message{Header: Header{QR: true}, Authority: []Record{rr}}
	encoded, err := Encode(m)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Authority, 1)
	body := decoded.Authority[0].Body.(*NSBody)
	require.Equal(t, "ns1.example.com.", body.NSDName.String())
}

func TestDecodeRejectsRDLengthMismatchForStructuredType(t *testing.T) {
	msg := []byte{
		0x00, 0x01,
		0x84, 0x00, // response, authoritative
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x00,
		0x00, 0x00,

		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01, // TYPE A
		0x00, 0x01, // CLASS IN
		0x00, 0x00, 0x00, 0x3c,
		0x00, 0x05, // RDLENGTH 5, but A is always 4
		1, 2, 3, 4, 5,
	}
	_, err := Decode(msg)
	require.ErrorIs(t, err, ErrMalformedRR)
}

func TestOPTBodyIsOpaque(t *testing.T) {
	rr := Record{
		Name:  Name{},
		Type:  TypeOPT,
		Class: RecordClass(4096), // UDP payload size, not a real class
		TTL:   0,
		Body:  &RawBody{Data: []byte{0x00, 0x0a, 0x00, 0x08, 1, 2, 3, 4, 5, 6, 7, 8}},
	}
	m := &Message{Header: Header{QR: true}, Additional: []Record{rr}}
	encoded, err := Encode(m)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Additional, 1)
	require.Equal(t, RecordType(41), decoded.Additional[0].Type)
	require.EqualValues(t, 4096, decoded.Additional[0].Class)
	body := decoded.Additional[0].Body.(*RawBody)
	require.Equal(t, rr.Body.(*RawBody).Data, body.Data)
}
