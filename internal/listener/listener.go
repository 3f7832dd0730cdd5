// Package listener runs the UDP receive loop: it reads datagrams as
// fast as possible and hands each one to the worker pool, so the loop
// itself never blocks on resolution.
package listener

import (
	"context"
	"log/slog"
	"net"

	"github.com/kestreldns/recdns/internal/handler"
	"github.com/kestreldns/recdns/internal/wire"
	"github.com/kestreldns/recdns/internal/workerpool"
)

// Listener owns the bound UDP socket and dispatches inbound datagrams
// to a worker pool.
type Listener struct {
	conn *net.UDPConn
	pool *workerpool.Pool
	h    *handler.Handler
	log  *slog.Logger
}

// New binds addr and returns a ready Listener.
func New(addr string, pool *workerpool.Pool, h *handler.Handler, log *slog.Logger) (*Listener, error) {
	if log == nil {
		log = slog.Default()
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &Listener{conn: conn, pool: pool, h: h, log: log}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr { return l.conn.LocalAddr() }

// Run reads datagrams until ctx is canceled, dispatching each to the
// worker pool. It closes the listening socket and drains the worker
// pool before returning.
func (l *Listener) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.conn.Close()
	}()

	for {
		bufPtr := wire.GetLargeBuffer()
		buf := *bufPtr

		n, addr, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			wire.PutLargeBuffer(bufPtr)
			select {
			case <-ctx.Done():
				return l.pool.Close()
			default:
				l.log.Error("listener read failed", "error", err)
				continue
			}
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		wire.PutLargeBuffer(bufPtr)

		job := workerpool.JobFunc(func(jobCtx context.Context) {
			l.h.Handle(jobCtx, l.conn, payload, addr)
		})
		if err := l.pool.Submit(ctx, job); err != nil {
			l.log.Warn("dropping datagram, worker pool unavailable", "from", addr.String(), "error", err)
		}
	}
}
