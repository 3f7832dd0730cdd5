package cookie

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMintIsStableWithinTheSameSecond(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)

	clientIP := net.ParseIP("192.0.2.1").To4()
	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	a := m.Mint(cc, clientIP)
	b := m.Mint(cc, clientIP)
	require.Equal(t, a, b, "same input within the same second must mint the same cookie")
}

func TestVerifyAcceptsMintedCookie(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)

	clientIP := net.ParseIP("192.0.2.1").To4()
	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	sc := m.Mint(cc, clientIP)
	require.True(t, m.Verify(cc, sc, clientIP))
}

func TestVerifyRejectsWrongClientIP(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)

	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	sc := m.Mint(cc, net.ParseIP("192.0.2.1").To4())
	require.False(t, m.Verify(cc, sc, net.ParseIP("192.0.2.2").To4()))
}

func TestVerifyAcceptsPreviousSecretDuringRotation(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)

	clientIP := net.ParseIP("192.0.2.1").To4()
	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	sc := m.Mint(cc, clientIP)
	require.NoError(t, m.rotateSecret())
	require.True(t, m.Verify(cc, sc, clientIP), "cookie minted just before rotation must still verify")
}

func TestClusterSecretPinsMinting(t *testing.T) {
	secret := make([]byte, 16)
	for i := range secret {
		secret[i] = byte(i)
	}

	m1, err := NewManager(Config{ClusterSecret: secret})
	require.NoError(t, err)
	m2, err := NewManager(Config{ClusterSecret: secret})
	require.NoError(t, err)

	clientIP := net.ParseIP("192.0.2.1").To4()
	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	require.Equal(t, m1.Mint(cc, clientIP), m2.Mint(cc, clientIP))
}

func TestParseAndFormatRoundTrip(t *testing.T) {
	var cc [8]byte
	copy(cc[:], []byte("testcook"))
	sc := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	data := Format(cc, sc)
	gotCC, gotSC, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, cc, gotCC)
	require.Equal(t, sc, gotSC)
}

func TestParseClientCookieOnly(t *testing.T) {
	var cc [8]byte
	copy(cc[:], []byte("testcook"))

	gotCC, gotSC, err := Parse(Format(cc, nil))
	require.NoError(t, err)
	require.Equal(t, cc, gotCC)
	require.Empty(t, gotSC)
}

func TestParseRejectsShortData(t *testing.T) {
	_, _, err := Parse([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrTooShort)
}

func TestParseRejectsOversizedServerCookie(t *testing.T) {
	var cc [8]byte
	data := append(cc[:], make([]byte, 40)...)
	_, _, err := Parse(data)
	require.ErrorIs(t, err, ErrServerCookieRange)
}
