package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeZeroesOpcodeAAAndTC(t *testing.T) {
	h := Header{
		ID:      0x1234,
		QR:      true,
		Opcode:  2,
		AA:      true,
		TC:      true,
		RD:      true,
		RA:      true,
		Rcode:   RcodeNXDomain,
		QDCount: 1,
	}

	m := &Message{Header: h, Questions: []Question{{Name: NameFromString("x"), Type: TypeA, Class: ClassIN}}}
	encoded, err := Encode(m)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	require.True(t, decoded.Header.QR)
	require.True(t, decoded.Header.RD)
	require.True(t, decoded.Header.RA)
	require.Equal(t, RcodeNXDomain, decoded.Header.Rcode)
	require.False(t, decoded.Header.AA, "encoder always zeroes AA")
	require.False(t, decoded.Header.TC, "encoder always zeroes TC")
	require.Zero(t, decoded.Header.Opcode, "encoder always zeroes Opcode")
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x01})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeQueryZeroesAdditionalSection(t *testing.T) {
	// A query (QR=0) that claims an additional record (e.g. a client
	// trying to smuggle an OPT record into what should be answers) must
	// have its ARCount reported as zero and no additional records
	// surfaced.
	msg := []byte{
		0x00, 0x01,
		0x00, 0x00, // QR=0
		0x00, 0x01, // QDCOUNT
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x01, // ARCOUNT = 1 (should be ignored)

		0x01, 'a', 0x00,
		0x00, 0x01,
		0x00, 0x01,
	}
	m, err := Decode(msg)
	require.NoError(t, err)
	require.EqualValues(t, 0, m.Header.ARCount)
	require.Empty(t, m.Additional)
}
