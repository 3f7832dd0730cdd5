package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kestreldns/recdns/internal/config"
	"github.com/kestreldns/recdns/internal/cookie"
	"github.com/kestreldns/recdns/internal/handler"
	"github.com/kestreldns/recdns/internal/listener"
	"github.com/kestreldns/recdns/internal/logging"
	"github.com/kestreldns/recdns/internal/metrics"
	"github.com/kestreldns/recdns/internal/resolver"
	"github.com/kestreldns/recdns/internal/socketcache"
	"github.com/kestreldns/recdns/internal/upstream"
	"github.com/kestreldns/recdns/internal/workerpool"
)

const version = "0.1.0"

var (
	run          = flag.Bool("r", false, "run the resolver")
	port         = flag.Int("p", 53, "UDP listen port")
	threads      = flag.Int("t", 9, "worker pool size")
	printVersion = flag.Bool("v", false, "print version and exit")
	rootHints    = flag.String("root-hints", "root_servers.json", "path to root server hints file")
	metricsAddr  = flag.String("metrics", ":8000", "prometheus metrics listen address")
	enableCookie = flag.Bool("cookies", true, "enable DNS cookie (RFC 7873) minting")
)

func main() {
	flag.Parse()

	if *printVersion {
		fmt.Println("recdns", version)
		os.Exit(0)
	}

	if !*run {
		flag.Usage()
		os.Exit(1)
	}

	log := logging.New(os.Stdout, slog.LevelInfo)

	roots, err := config.LoadRootHints(*rootHints)
	if err != nil {
		log.Error("fatal: failed to load root hints", "error", err)
		os.Exit(1)
	}

	cache := socketcache.New()
	client := upstream.New(cache, log)
	client.Warm(roots)

	var cookies *cookie.Manager
	if *enableCookie {
		cookies, err = cookie.NewManager(cookie.Config{})
		if err != nil {
			log.Error("fatal: failed to init cookie manager", "error", err)
			os.Exit(1)
		}
	}

	r := resolver.New(resolver.Config{RootServers: roots}, client, log)
	h := handler.New(r, cookies, log)
	pool := workerpool.New(workerpool.Config{
		Workers: *threads,
		PanicHandler: func(v any) {
			log.Error("worker panicked, recovering", "panic", v)
		},
	})

	l, err := listener.New(fmt.Sprintf(":%d", *port), pool, h, log)
	if err != nil {
		log.Error("fatal: failed to bind listener", "port", *port, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := metrics.Serve(ctx, *metricsAddr); err != nil {
			log.Error("metrics server stopped", "error", err)
		}
	}()

	go printStats(ctx, pool, log)

	log.Info("resolver started", "addr", l.Addr().String(), "workers", *threads, "roots", len(roots))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	listenerDone := make(chan error, 1)
	go func() { listenerDone <- l.Run(ctx) }()

	<-sigCh
	log.Info("shutting down")
	cancel()
	<-listenerDone
	cache.Close()
	log.Info("shutdown complete")
}

func printStats(ctx context.Context, pool *workerpool.Pool, log *slog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := pool.GetStats()
			log.Info("pool stats", "submitted", stats.Submitted, "completed", stats.Completed,
				"failed", stats.Failed, "queue_depth", stats.QueueDepth)
		}
	}
}
