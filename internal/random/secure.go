// Package random provides cryptographically secure randomization for DNS
// to prevent cache poisoning attacks.
//
// Attack model: Kaminsky attack and birthday attack variants
// - Attacker floods resolver with spoofed responses
// - Must guess transaction ID (16 bits) to forge a match
// - With 10,000 queries/sec, attacker has ~6 seconds for 50% collision
// - Solution: crypto-strong transaction IDs and server selection
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// TransactionID generates a cryptographically random 16-bit transaction ID.
// NEVER use math/rand for DNS transaction IDs - it's predictable.
func TransactionID() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Proceeding with a predictable ID is a worse failure mode than
		// crashing: it would quietly weaken spoofing resistance.
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return binary.BigEndian.Uint16(buf[:])
}

// IntN returns a uniformly random integer in [0, n) using crypto/rand.
// It panics on n <= 0, which is always a caller bug.
func IntN(n int) int {
	if n <= 0 {
		panic("random.IntN: n must be positive")
	}
	// n is always small here (root server count, NS record count), so
	// the rejection-free modulo bias is not worth guarding against.
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	v := binary.BigEndian.Uint64(buf[:])
	return int(v % uint64(n))
}

// Choice returns a uniformly random element of items.
// It panics if items is empty.
func Choice[T any](items []T) T {
	return items[IntN(len(items))]
}
