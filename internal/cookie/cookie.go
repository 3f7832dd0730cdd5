// Package cookie implements RFC 7873 / RFC 9018 DNS Cookies: a
// lightweight client/server handshake carried in an EDNS0 OPT option
// (code 10) that lets a server recognize a returning client without
// keeping per-client state.
//
// Minting and verification follow BIND 9's SipHash-2-4 construction:
// https://kb.isc.org/docs/aa-01387
package cookie

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/dchest/siphash"
)

const (
	// OptionCode is the EDNS0 option code for COOKIE (RFC 7873 §4).
	OptionCode = 10

	clientCookieSize = 8
	serverCookieSize = 8
	cookieVersion    = 1

	secretRotationInterval = 24 * time.Hour
)

var (
	ErrTooShort          = errors.New("cookie: client cookie missing or too short")
	ErrServerCookieRange = errors.New("cookie: server cookie outside 8-32 byte range")
)

// Config configures a Manager.
type Config struct {
	// ClusterSecret, if 16 bytes or longer, pins the minting secret
	// across a fleet of resolvers instead of generating one at random
	// per process.
	ClusterSecret []byte
}

// Manager mints and verifies server cookies. The zero value is not
// usable; construct with NewManager.
type Manager struct {
	mu             sync.RWMutex
	currentSecret  [16]byte
	previousSecret [16]byte
	useCluster     bool
}

// NewManager returns a ready Manager, generating a random secret
// unless cfg supplies a cluster secret.
func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{}
	if len(cfg.ClusterSecret) >= 16 {
		copy(m.currentSecret[:], cfg.ClusterSecret)
		m.useCluster = true
		return m, nil
	}
	if err := m.rotateSecret(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) rotateSecret() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.useCluster {
		return nil
	}
	m.previousSecret = m.currentSecret
	_, err := rand.Read(m.currentSecret[:])
	return err
}

// RotateSecretPeriodically rotates the minting secret on a fixed
// interval until stop is closed. No-op for cluster-pinned secrets.
func (m *Manager) RotateSecretPeriodically(stop <-chan struct{}) {
	ticker := time.NewTicker(secretRotationInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.rotateSecret()
		case <-stop:
			return
		}
	}
}

// Mint computes the 8-byte server cookie for clientCookie and
// clientIP using the current secret.
func (m *Manager) Mint(clientCookie [8]byte, clientIP []byte) [8]byte {
	m.mu.RLock()
	secret := m.currentSecret
	m.mu.RUnlock()
	return computeServerCookie(secret, clientCookie, clientIP, time.Now())
}

// Verify reports whether serverCookie matches what Mint would have
// produced for clientCookie/clientIP, under either the current or the
// immediately previous secret (to tolerate in-flight rotation).
func (m *Manager) Verify(clientCookie [8]byte, serverCookie [8]byte, clientIP []byte) bool {
	m.mu.RLock()
	current, previous := m.currentSecret, m.previousSecret
	m.mu.RUnlock()

	now := time.Now()
	if subtle.ConstantTimeCompare(serverCookie[:], computeServerCookie(current, clientCookie, clientIP, now)[:]) == 1 {
		return true
	}
	return subtle.ConstantTimeCompare(serverCookie[:], computeServerCookie(previous, clientCookie, clientIP, now)[:]) == 1
}

func computeServerCookie(secret [16]byte, clientCookie [8]byte, clientIP []byte, t time.Time) [8]byte {
	var out [8]byte
	h := siphash.New(secret[:])
	h.Write(clientCookie[:])
	h.Write(clientIP)
	h.Write([]byte{cookieVersion, 0, 0, 0})
	binary.Write(h, binary.BigEndian, uint32(t.Unix()))
	binary.LittleEndian.PutUint64(out[:], h.Sum64())
	return out
}

// Parse splits raw COOKIE option data into its client cookie and
// optional server cookie, per RFC 7873 §4's wire format: an 8-byte
// client cookie optionally followed by an 8-32 byte server cookie.
func Parse(data []byte) (clientCookie [8]byte, serverCookie []byte, err error) {
	if len(data) < clientCookieSize {
		return clientCookie, nil, ErrTooShort
	}
	copy(clientCookie[:], data[:clientCookieSize])
	if len(data) == clientCookieSize {
		return clientCookie, nil, nil
	}
	serverCookie = data[clientCookieSize:]
	if len(serverCookie) < 8 || len(serverCookie) > 32 {
		return clientCookie, nil, ErrServerCookieRange
	}
	return clientCookie, serverCookie, nil
}

// Format assembles raw COOKIE option data from a client cookie and an
// optional server cookie.
func Format(clientCookie [8]byte, serverCookie []byte) []byte {
	out := make([]byte, clientCookieSize+len(serverCookie))
	copy(out, clientCookie[:])
	copy(out[clientCookieSize:], serverCookie)
	return out
}
