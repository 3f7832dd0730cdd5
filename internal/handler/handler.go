// Package handler implements the per-datagram request pipeline: decode,
// resolve, encode, reply, and record metrics — everything spec.md's
// request handler (C6) does for a single inbound query.
package handler

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/kestreldns/recdns/internal/cookie"
	"github.com/kestreldns/recdns/internal/metrics"
	"github.com/kestreldns/recdns/internal/resolver"
	"github.com/kestreldns/recdns/internal/wire"
)

// RequestTimeout bounds the whole lifetime of one request, from
// decode to reply, beyond the per-upstream-attempt 5s timeout inside
// the resolver.
const RequestTimeout = 20 * time.Second

// Replier sends an encoded response datagram back to a client
// address. *net.UDPConn satisfies this.
type Replier interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
}

// Handler wires a resolver, an optional cookie manager, and a logger
// together to answer one datagram at a time.
type Handler struct {
	resolver *resolver.Resolver
	cookies  *cookie.Manager
	log      *slog.Logger
}

// New returns a Handler. cookies may be nil to disable DNS cookie
// minting entirely.
func New(r *resolver.Resolver, cookies *cookie.Manager, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{resolver: r, cookies: cookies, log: log}
}

// Handle decodes payload, resolves it, and writes the response to
// addr via conn. A payload that fails to decode is dropped silently
// (after logging) per spec.md §4.6 — no reply is sent.
func (h *Handler) Handle(ctx context.Context, conn Replier, payload []byte, addr *net.UDPAddr) {
	start := time.Now()
	metrics.Inbound.Inc()

	q, err := wire.Decode(payload)
	if err != nil {
		h.log.Error("failed to decode inbound datagram", "from", addr.String(), "error", err)
		metrics.Erred.Inc()
		return
	}

	if len(q.Questions) > 0 {
		h.log.Info("received query", "from", addr.String(), "name", q.Questions[0].Name.String(), "type", q.Questions[0].Type.String())
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	resp := h.resolver.Resolve(ctx, q)
	resp.Header.RA = true

	h.attachCookie(q, resp, addr)

	encoded, err := wire.Encode(resp)
	if err != nil {
		h.log.Error("failed to encode response", "error", err)
		return
	}

	if _, err := conn.WriteToUDP(encoded, addr); err != nil {
		h.log.Error("failed to send response", "to", addr.String(), "error", err)
		return
	}

	metrics.Duration.Observe(time.Since(start).Seconds())
	if resp.Header.Rcode != wire.RcodeNoError {
		metrics.Erred.Inc()
	}
	metrics.Served.Inc()
}

// attachCookie mints a server cookie and appends a COOKIE option to
// resp's OPT record when q's additional section holds an OPT record
// with a COOKIE option and cookies are enabled. wire.Decode does not
// decode the additional section of a query (QR=0), so for an inbound
// query q.Additional is empty and no cookie is attached. A malformed
// or absent COOKIE option is treated as "no cookie" and never blocks
// the response.
func (h *Handler) attachCookie(q, resp *wire.Message, addr *net.UDPAddr) {
	if h.cookies == nil {
		return
	}

	opt := findOPT(q.Additional)
	if opt == nil {
		return
	}
	raw, ok := opt.Body.(*wire.RawBody)
	if !ok {
		return
	}
	clientCookie, _, found := extractCookieOption(raw.Data)
	if !found {
		return
	}

	serverCookie := h.cookies.Mint(clientCookie, addr.IP.To4())
	data := cookie.Format(clientCookie, serverCookie[:])

	respOpt := findOPT(resp.Additional)
	if respOpt == nil {
		resp.Additional = append(resp.Additional, wire.Record{
			Type:  wire.TypeOPT,
			Class: wire.RecordClass(4096),
			Body:  &wire.RawBody{Data: encodeCookieOption(data)},
		})
		return
	}
	raw, ok = respOpt.Body.(*wire.RawBody)
	if !ok {
		return
	}
	raw.Data = append(raw.Data, encodeCookieOption(data)...)
}

func findOPT(records []wire.Record) *wire.Record {
	for i := range records {
		if records[i].Type == wire.TypeOPT {
			return &records[i]
		}
	}
	return nil
}

// extractCookieOption scans a raw OPT RDATA stream (a sequence of
// 2-byte option-code, 2-byte option-length, option-data triples) for
// a COOKIE option and returns its client cookie.
func extractCookieOption(data []byte) (clientCookie [8]byte, serverCookie []byte, found bool) {
	pos := 0
	for pos+4 <= len(data) {
		code := uint16(data[pos])<<8 | uint16(data[pos+1])
		length := uint16(data[pos+2])<<8 | uint16(data[pos+3])
		pos += 4
		if pos+int(length) > len(data) {
			return clientCookie, nil, false
		}
		optData := data[pos : pos+int(length)]
		pos += int(length)

		if code == cookie.OptionCode {
			cc, sc, err := cookie.Parse(optData)
			if err != nil {
				return clientCookie, nil, false
			}
			return cc, sc, true
		}
	}
	return clientCookie, nil, false
}

func encodeCookieOption(data []byte) []byte {
	out := make([]byte, 4+len(data))
	out[0] = cookie.OptionCode >> 8
	out[1] = cookie.OptionCode & 0xff
	out[2] = byte(len(data) >> 8)
	out[3] = byte(len(data) & 0xff)
	copy(out[4:], data)
	return out
}
