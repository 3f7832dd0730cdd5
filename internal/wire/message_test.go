package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleQuery(t *testing.T) {
	msg := []byte{
		0x22, 0xa9, // ID
		0x01, 0x00, // flags: RD=1
		0x00, 0x01, // QDCOUNT
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x06, 'g', 'o', 'o', 'g', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01, // TYPE A
		0x00, 0x01, // CLASS IN
	}

	m, err := Decode(msg)
	require.NoError(t, err)
	require.False(t, m.Header.QR)
	require.EqualValues(t, 1, m.Header.QDCount)
	require.Len(t, m.Questions, 1)
	require.Equal(t, "google.com.", m.Questions[0].Name.String())
	require.Equal(t, TypeA, m.Questions[0].Type)
	require.Equal(t, ClassIN, m.Questions[0].Class)
}

func TestDecodeResponseWithAAnswer(t *testing.T) {
	msg := []byte{
		0xd3, 0x8d,
		0x81, 0x80, // response, RD, RA
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x00,
		0x00, 0x00,

		0x06, 'g', 'o', 'o', 'g', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01,
		0x00, 0x01,

		0xc0, 0x0c, // pointer to google.com
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x80, // ttl 128
		0x00, 0x04,
		142, 250, 183, 78,
	}

	m, err := Decode(msg)
	require.NoError(t, err)
	require.True(t, m.Header.QR)
	require.EqualValues(t, 1, m.Header.ANCount)
	require.Len(t, m.Answers, 1)

	body, ok := m.Answers[0].Body.(*ABody)
	require.True(t, ok)
	require.Equal(t, [4]byte{142, 250, 183, 78}, body.Addr)
	require.Equal(t, uint32(128), m.Answers[0].TTL)
	require.Equal(t, "google.com.", m.Answers[0].Name.String())
}

func TestDecodeCNAMEFollowsCompressionPointer(t *testing.T) {
	// Question: pages.github.com CNAME IN. Answer name is a pointer
	// back to the question name; the CNAME's rdata is itself a pointer
	// into the middle of that same question name (the "github.com"
	// suffix), exercising a pointer inside RDATA.
	msg := []byte{
		0x00, 0x01, // ID
		0x81, 0x80, // response, RD, RA
		0x00, 0x01, // QDCOUNT
		0x00, 0x01, // ANCOUNT
		0x00, 0x00,
		0x00, 0x00,

		// offset 12: question name "pages.github.com"
		0x05, 'p', 'a', 'g', 'e', 's',
		0x06, 'g', 'i', 't', 'h', 'u', 'b',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x05, // QTYPE CNAME
		0x00, 0x01, // QCLASS IN

		// offset 34: answer, name = pointer to offset 12
		0xc0, 0x0c,
		0x00, 0x05, // TYPE CNAME
		0x00, 0x01, // CLASS IN
		0x00, 0x00, 0x01, 0x2c, // TTL 300
		0x00, 0x02, // RDLENGTH 2
		0xc0, 0x12, // RDATA: pointer to offset 18 -> "github.com."
	}

	m, err := Decode(msg)
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)
	require.Equal(t, "pages.github.com.", m.Answers[0].Name.String())

	body, ok := m.Answers[0].Body.(*CNAMEBody)
	require.True(t, ok)
	require.Equal(t, "github.com.", body.Target.String())
}
