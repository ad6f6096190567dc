package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/metrics"
	"github.com/cryptonstudio/crypton-tick-engine/providers/udp"
)

type options struct {
	listen        string
	dst           string
	metrics       string
	statsInterval time.Duration
	debug         bool
	config        matching.Config
}

func parseOptions() options {
	opts := options{config: matching.DefaultConfig()}
	var minPrice, maxPrice, maxOrderID uint
	flag.StringVar(&opts.listen, "listen", "0.0.0.0:9000", "UDP address to receive order packets on")
	flag.StringVar(&opts.dst, "dst", "127.0.0.1:9001", "UDP address to send trades to")
	flag.StringVar(&opts.metrics, "metrics", ":9100", "HTTP address to serve metrics on, empty to disable")
	flag.DurationVar(&opts.statsInterval, "stats", 10*time.Second, "Statistics logging interval, zero to disable")
	flag.BoolVar(&opts.debug, "debug", false, "Enable development logging")
	flag.UintVar(&minPrice, "min-price", uint(opts.config.MinPrice), "Lowest accepted price tick")
	flag.UintVar(&maxPrice, "max-price", uint(opts.config.MaxPrice), "Highest accepted price tick")
	flag.UintVar(&maxOrderID, "max-order-id", uint(opts.config.MaxOrderID), "Largest accepted order id")
	flag.IntVar(&opts.config.InboundCapacity, "inbound", opts.config.InboundCapacity, "Inbound queue capacity (power of two)")
	flag.IntVar(&opts.config.OutboundCapacity, "outbound", opts.config.OutboundCapacity, "Outbound queue capacity (power of two)")
	flag.Parse()

	opts.config.MinPrice = uint32(minPrice)
	opts.config.MaxPrice = uint32(maxPrice)
	opts.config.MaxOrderID = uint32(maxOrderID)
	return opts
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	opts := parseOptions()

	logger, err := newLogger(opts.debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(opts, logger); err != nil {
		logger.Fatal("engine failed", zap.Error(err))
	}
}

func run(opts options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create matching engine
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stats := matching.NewStatistics()
	engine, err := matching.NewEngine(opts.config, matching.Handlers{metrics.NewCollector(reg), stats})
	if err != nil {
		return err
	}
	metrics.RegisterQueue(reg, "inbound", engine.Inbound())
	metrics.RegisterQueue(reg, "outbound", engine.Outbound())

	// Create transport
	inConn, err := net.ListenPacket("udp", opts.listen)
	if err != nil {
		return err
	}
	defer inConn.Close()
	dst, err := net.ResolveUDPAddr("udp", opts.dst)
	if err != nil {
		return err
	}
	outConn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return err
	}
	defer outConn.Close()

	receiver := udp.NewReceiver(inConn, engine.Inbound(), logger.Named("receiver"))
	sender := udp.NewSender(outConn, dst, engine.Outbound(), logger.Named("sender"))

	logger.Info("starting engine",
		zap.String("listen", opts.listen),
		zap.String("dst", opts.dst),
		zap.Uint32("min_price", opts.config.MinPrice),
		zap.Uint32("max_price", opts.config.MaxPrice),
		zap.Uint32("max_order_id", opts.config.MaxOrderID),
	)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var wg sync.WaitGroup
	start := func(name string, f func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("worker failed", zap.String("worker", name), zap.Error(err))
				cancel(err)
			}
		}()
	}
	start("receiver", receiver.Run)
	start("engine", engine.Run)
	start("sender", sender.Run)
	if opts.metrics != "" {
		start("metrics", func(ctx context.Context) error {
			return serveMetrics(ctx, opts.metrics, reg, logger)
		})
	}
	if opts.statsInterval > 0 {
		start("stats", func(ctx context.Context) error {
			logStatistics(ctx, opts.statsInterval, stats, receiver, sender, logger)
			return nil
		})
	}

	<-ctx.Done()
	logger.Info("stopping engine")
	wg.Wait()

	if err := context.Cause(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("engine stopped", zap.Any("statistics", stats.Snapshot()))
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
