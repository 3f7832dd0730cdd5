// Package upstream sends a single DNS query datagram to a single
// upstream server and returns whatever comes back, or nothing if the
// attempt times out or fails. It owns no retry policy — the resolver
// above it decides what to do with an empty reply.
package upstream

import (
	"log/slog"
	"net"
	"time"

	"github.com/kestreldns/recdns/internal/socketcache"
	"github.com/kestreldns/recdns/internal/wire"
)

// Timeout bounds a single upstream round trip.
const Timeout = 5 * time.Second

// Client issues queries against upstream servers, reusing cached
// sockets for addresses the cache knows about (root servers) and
// dialing a fresh, short-lived socket for everything else.
type Client struct {
	cache *socketcache.Cache
	log   *slog.Logger
}

// New returns a Client backed by cache. cache may be nil, in which
// case every query dials a fresh socket.
func New(cache *socketcache.Cache, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{cache: cache, log: log}
}

// Query sends payload to addr and returns the raw reply bytes. It
// returns a nil slice, not an error, when the upstream does not
// answer in time — callers treat that as "no answer" and synthesize
// SERVFAIL themselves.
func (c *Client) Query(addr *net.UDPAddr, payload []byte) []byte {
	key := addr.String()

	conn, cached := c.lookup(key)
	if conn == nil {
		dialed, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			c.log.Error("dial upstream failed", "addr", key, "error", err)
			return nil
		}
		conn = dialed
		if !cached {
			defer conn.Close()
		}
	}

	if err := conn.SetDeadline(time.Now().Add(Timeout)); err != nil {
		c.log.Error("set deadline failed", "addr", key, "error", err)
		if cached {
			c.evict(key, conn, addr)
		}
		return nil
	}

	if _, err := conn.Write(payload); err != nil {
		c.log.Error("write to upstream failed", "addr", key, "error", err)
		if cached {
			c.evict(key, conn, addr)
		}
		return nil
	}

	bufPtr := wire.GetSmallBuffer()
	defer wire.PutSmallBuffer(bufPtr)
	buf := *bufPtr

	n, err := conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			c.log.Warn("upstream timeout", "addr", key)
		} else {
			c.log.Error("read from upstream failed", "addr", key, "error", err)
		}
		if cached {
			c.evict(key, conn, addr)
		}
		return nil
	}

	reply := make([]byte, n)
	copy(reply, buf[:n])
	return reply
}

// evict closes a cached connection that just errored, removes it from
// the cache, and re-dials and re-caches a fresh socket for addr so a
// root server stays warmed across the failure per spec.md §4.3/§7
// ("socket closed if non-root, replaced if root").
func (c *Client) evict(key string, conn *net.UDPConn, addr *net.UDPAddr) {
	c.cache.Delete(key)
	conn.Close()

	dialed, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		c.log.Error("failed to redial evicted upstream socket", "addr", key, "error", err)
		return
	}
	c.cache.Put(key, dialed)
}

// lookup returns a cached connection for key if the cache has one.
// The second return reports whether the connection is cache-owned
// (and therefore must not be closed by the caller).
func (c *Client) lookup(key string) (*net.UDPConn, bool) {
	if c.cache == nil {
		return nil, false
	}
	conn, ok := c.cache.Get(key)
	return conn, ok
}

// Warm dials and caches a persistent socket for each root server
// address. It is meant to run once at startup; afterward a root
// socket leaves the cache only when Query hits an error on it, and
// evict then re-dials and re-caches a fresh socket for that address.
func (c *Client) Warm(addrs []*net.UDPAddr) {
	if c.cache == nil {
		return
	}
	for _, addr := range addrs {
		conn, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			c.log.Error("failed to warm root socket", "addr", addr.String(), "error", err)
			continue
		}
		c.cache.Put(addr.String(), conn)
	}
}
