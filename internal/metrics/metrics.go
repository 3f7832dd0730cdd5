// Package metrics exposes Prometheus counters and a histogram for
// inbound DNS traffic, served on :8000 via promhttp.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Inbound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inbound_dns_requests",
		Help: "Total DNS requests received from clients.",
	})
	Served = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "served_dns_requests",
		Help: "Total DNS requests answered and delivered to a client.",
	})
	Erred = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "erred_dns_requests",
		Help: "Total DNS requests dropped as undecodable or answered with a non-NOERROR rcode.",
	})
	Duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "duration_dns_request",
		Help:    "Time from receiving a request to sending its response, in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Inbound, Served, Erred, Duration)
}

// Serve starts an HTTP server exposing /metrics on addr (":8000" per
// the deployment default) and blocks until ctx is canceled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		return err
	}
}
