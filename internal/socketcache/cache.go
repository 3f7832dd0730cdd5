// Package socketcache holds the process-wide map from upstream
// server address to a connected UDP socket. It is warmed with one
// entry per root server at startup and is never asked to cache a
// transient (non-root) upstream — callers that dial an authoritative
// server close that socket themselves once the query completes.
//
// The locking discipline is the same reader-writer split the teacher
// codebase uses for its sharded record cache (internal/cache in the
// retrieval pack): reads dominate in steady state, writes are rare
// (startup warmup, and replacing a root socket that errored), so a
// single sync.RWMutex over one map is enough — the pack's 256-way
// sharding exists to cut contention on a cache with tens of thousands
// of entries under constant churn, which a 13-entry, write-rarely
// root socket table will never become.
package socketcache

import (
	"net"
	"sync"
	"sync/atomic"
)

// Cache maps an upstream address string ("ip:port") to a connected
// *net.UDPConn.
type Cache struct {
	mu    sync.RWMutex
	conns map[string]*net.UDPConn

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns an empty socket cache.
func New() *Cache {
	return &Cache{conns: make(map[string]*net.UDPConn)}
}

// Get returns the cached connection for addr, if any.
func (c *Cache) Get(addr string) (*net.UDPConn, bool) {
	c.mu.RLock()
	conn, ok := c.conns[addr]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return conn, ok
}

// Put inserts or replaces the cached connection for addr. Callers
// replacing an errored root socket are responsible for closing the
// old one before calling Put — Put does not close what it overwrites.
func (c *Cache) Put(addr string, conn *net.UDPConn) {
	c.mu.Lock()
	c.conns[addr] = conn
	c.mu.Unlock()
}

// Delete removes and returns the cached connection for addr, if any,
// without closing it — the caller decides the socket's fate.
func (c *Cache) Delete(addr string) (*net.UDPConn, bool) {
	c.mu.Lock()
	conn, ok := c.conns[addr]
	if ok {
		delete(c.conns, addr)
	}
	c.mu.Unlock()
	return conn, ok
}

// Len reports the number of cached connections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.conns)
}

// Stats is a point-in-time snapshot of cache access counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.Len(),
	}
}

// Close closes every cached connection and empties the cache.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for addr, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.conns, addr)
	}
	return firstErr
}
