// Package resolver implements iterative DNS resolution: starting
// from a random root server, it follows referrals (NS + glue) until
// it reaches an authoritative answer, a terminal rcode, or a bound is
// exceeded.
package resolver

import (
	"context"
	"log/slog"
	"net"

	"github.com/kestreldns/recdns/internal/random"
	"github.com/kestreldns/recdns/internal/upstream"
	"github.com/kestreldns/recdns/internal/wire"
)

const (
	// MaxReferralDepth bounds a single iterative chase (outer or nested).
	MaxReferralDepth = 16
	// MaxNestedDepth bounds how many levels of NS-name-to-address
	// sub-resolution may chain into each other.
	MaxNestedDepth = 8
)

// Config configures a Resolver.
type Config struct {
	RootServers []*net.UDPAddr
}

// Resolver performs iterative resolution against a fixed root hint
// list, sending queries through an upstream.Client.
type Resolver struct {
	cfg    Config
	client *upstream.Client
	log    *slog.Logger
}

// New returns a Resolver that sends queries through client.
func New(cfg Config, client *upstream.Client, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{cfg: cfg, client: client, log: log}
}

// Resolve performs iterative resolution for q and returns the
// response to deliver to the client. It never returns an error: on
// any failure it synthesizes a SERVFAIL response preserving q's id
// and questions, per the contract handlers rely on.
func (r *Resolver) Resolve(ctx context.Context, q *wire.Message) *wire.Message {
	if len(r.cfg.RootServers) == 0 {
		return servfail(q)
	}

	server := random.Choice(r.cfg.RootServers)
	return r.resolveIterative(ctx, q, server, 0, 0)
}

// resolveIterative walks referrals from server for q. referralDepth
// bounds this single chase; nestedDepth is threaded through so that a
// chain of NS-name-to-address sub-resolutions (each of which is
// itself an iterative chase) cannot grow unbounded.
func (r *Resolver) resolveIterative(ctx context.Context, q *wire.Message, server *net.UDPAddr, referralDepth, nestedDepth int) *wire.Message {
	if referralDepth >= MaxReferralDepth {
		r.log.Warn("referral depth exceeded")
		return servfail(q)
	}

	p, ok := r.query(ctx, q, server)
	if !ok {
		return servfail(q)
	}

	if p.Header.Rcode.IsTerminal() {
		return p
	}

	if p.Header.Rcode == wire.RcodeNoError && len(p.Answers) > 0 {
		return p
	}

	nsNames := collectNSNames(p.Authority)
	if len(nsNames) == 0 {
		return p
	}

	if !q.Header.RD {
		return p
	}

	if glueAddr, found := findGlueA(p.Additional, nsNames); found {
		return r.resolveIterative(ctx, q, glueAddr, referralDepth+1, nestedDepth)
	}

	// No glue: spec.md §4.5.8/§9 preserves the original's behavior of
	// returning the current response when additional records are
	// present but none of them is an A record for an NS target name, rather than
	// falling through to nested resolution.
	if len(p.Additional) > 0 {
		return p
	}

	nsName, ok := randomNSName(p.Authority)
	if !ok {
		return p
	}

	addr, ok := r.resolveNested(ctx, nsName, nestedDepth)
	if !ok {
		return p
	}
	return r.resolveIterative(ctx, q, addr, referralDepth+1, nestedDepth)
}

// resolveNested resolves an NS hostname to an address by issuing a
// fresh, recursion-desired A query against a random root and chasing
// its own referrals. nestedDepth bounds how many such sub-resolutions
// may be triggered by one another.
func (r *Resolver) resolveNested(ctx context.Context, name wire.Name, nestedDepth int) (*net.UDPAddr, bool) {
	if nestedDepth >= MaxNestedDepth {
		r.log.Warn("nested resolution depth exceeded")
		return nil, false
	}

	nestedQuery := &wire.Message{
		Header: wire.Header{
			ID:      random.TransactionID(),
			RD:      true,
			QDCount: 1,
		},
		Questions: []wire.Question{{Name: name, Type: wire.TypeA, Class: wire.ClassIN}},
	}

	server := random.Choice(r.cfg.RootServers)
	resp := r.resolveIterative(ctx, nestedQuery, server, 0, nestedDepth+1)
	if resp == nil || len(resp.Answers) == 0 {
		return nil, false
	}

	var addrs [][4]byte
	for _, rr := range resp.Answers {
		if a, ok := rr.Body.(*wire.ABody); ok {
			addrs = append(addrs, a.Addr)
		}
	}
	if len(addrs) == 0 {
		return nil, false
	}

	chosen := random.Choice(addrs)
	return &net.UDPAddr{IP: net.IPv4(chosen[0], chosen[1], chosen[2], chosen[3]), Port: 53}, true
}

// query sends q to server and decodes the reply. The second return
// is false when the upstream produced no usable reply at all (empty
// datagram or undecodable bytes), which the caller treats identically
// to a timeout.
func (r *Resolver) query(ctx context.Context, q *wire.Message, server *net.UDPAddr) (*wire.Message, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	default:
	}

	payload, err := wire.Encode(q)
	if err != nil {
		r.log.Error("failed to encode outgoing query", "error", err)
		return nil, false
	}

	reply := r.client.Query(server, payload)
	if len(reply) == 0 {
		return nil, false
	}

	p, err := wire.Decode(reply)
	if err != nil {
		r.log.Warn("failed to decode upstream reply", "server", server.String(), "error", err)
		return nil, false
	}
	return p, true
}

// servfail synthesizes a SERVFAIL response preserving q's id and
// questions, per spec.md's universal SERVFAIL-synthesis contract.
func servfail(q *wire.Message) *wire.Message {
	return &wire.Message{
		Header: wire.Header{
			ID:      q.Header.ID,
			QR:      true,
			RD:      q.Header.RD,
			Rcode:   wire.RcodeServFail,
			QDCount: uint16(len(q.Questions)),
		},
		Questions: q.Questions,
	}
}

func collectNSNames(authority []wire.Record) []wire.Name {
	var names []wire.Name
	for _, rr := range authority {
		if ns, ok := rr.Body.(*wire.NSBody); ok {
			names = append(names, ns.NSDName)
		}
	}
	return names
}

// findGlueA scans additional for an A record whose owner name is
// among nsNames. AAAA-only additionals do not count as glue — the
// resolver has no IPv6 upstream path.
func findGlueA(additional []wire.Record, nsNames []wire.Name) (*net.UDPAddr, bool) {
	for _, rr := range additional {
		a, ok := rr.Body.(*wire.ABody)
		if !ok {
			continue
		}
		for _, ns := range nsNames {
			if rr.Name.Equal(ns) {
				return &net.UDPAddr{
					IP:   net.IPv4(a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3]),
					Port: 53,
				}, true
			}
		}
	}
	return nil, false
}

// randomNSName picks a uniformly random NS record's target name out
// of authority.
func randomNSName(authority []wire.Record) (wire.Name, bool) {
	var targets []wire.Name
	for _, rr := range authority {
		if ns, ok := rr.Body.(*wire.NSBody); ok {
			targets = append(targets, ns.NSDName)
		}
	}
	if len(targets) == 0 {
		return wire.Name{}, false
	}
	return random.Choice(targets), true
}
