// cmd/arincbridge/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tamzrod/arinc-bridge/internal/clock"
	"github.com/tamzrod/arinc-bridge/internal/config"
	"github.com/tamzrod/arinc-bridge/internal/metrics"
	"github.com/tamzrod/arinc-bridge/internal/poller"
	"github.com/tamzrod/arinc-bridge/internal/publish"
	"github.com/tamzrod/arinc-bridge/internal/transceiver"
	"github.com/tamzrod/arinc-bridge/internal/writer"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: arincbridge <config.yaml>")
		os.Exit(2)
	}

	if err := run(os.Args[1], logger); err != nil {
		logger.Error("bridge stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfgPath string, logger *slog.Logger) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Shared infrastructure
	// --------------------

	m := metrics.New("arinc")
	promReg := prometheus.NewRegistry()
	if err := m.Register(promReg); err != nil {
		return fmt.Errorf("metrics register: %w", err)
	}
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var pub *publish.Publisher
	if cfg.Bridge.NATS.URL != "" {
		pub, err = publish.Connect(publish.Config{
			URL:           cfg.Bridge.NATS.URL,
			SubjectPrefix: cfg.Bridge.NATS.SubjectPrefix,
		}, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
	}

	drivers, err := openDrivers(cfg.Bridge.Buses)
	if err != nil {
		return err
	}
	defer closeDrivers(drivers, logger)

	var closers []func() error
	defer func() {
		for _, fn := range closers {
			_ = fn()
		}
	}()

	// Pipelines stop before their clients and drivers are closed.
	var wg sync.WaitGroup
	defer func() {
		stop()
		wg.Wait()
	}()

	clk := clock.NewSystem()

	// --------------------
	// Build per-bus pipelines
	// --------------------

	for _, b := range cfg.Bridge.Buses {
		busLog := logger.With("bus", b.ID)

		// ---- poller ----
		p, err := poller.Build(b, drivers[b.ID], drivers[b.TransmitBus()], clk,
			poller.WithMetrics(m),
			poller.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("poller build failed (bus=%s): %w", b.ID, err)
		}

		// ---- writer plan + clients (DATA + STATUS) ----
		plan, err := writer.BuildPlan(b, cfg.Bridge.StatusMemory)
		if err != nil {
			return fmt.Errorf("writer plan failed (bus=%s): %w", b.ID, err)
		}

		clients, closeWriters, err := writer.BuildEndpointClients(b, cfg.Bridge.StatusMemory)
		if err != nil {
			return fmt.Errorf("writer clients failed (bus=%s): %w", b.ID, err)
		}
		closers = append(closers, closeWriters)

		c := &busConsumer{
			busID:      b.ID,
			configured: len(b.Labels),
			data:       writer.New(plan, clients),
			metrics:    m,
			logger:     busLog,
		}
		if sw, enabled := writer.NewBusStatusWriter(plan, clients); enabled {
			c.status = sw
		}
		if pub != nil {
			c.publish = pub
		}

		// ---- channel between poller and consumer ----
		out := make(chan poller.PollResult, 1)

		wg.Add(2)
		go func() {
			defer wg.Done()
			c.run(ctx, out)
		}()
		go func() {
			defer wg.Done()
			p.Run(ctx, out)
		}()

		busLog.Info("bus started",
			"labels", len(b.Labels),
			"transmit", len(b.Transmit.Labels),
			"failure_threshold", b.FailureThreshold,
		)
	}

	// --------------------
	// Metrics endpoint
	// --------------------

	if cfg.Bridge.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(promReg))

		srv := &http.Server{
			Addr:              cfg.Bridge.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("metrics listening", "addr", cfg.Bridge.Metrics.Listen)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// openDrivers opens one transceiver per bus.
func openDrivers(buses []config.BusConfig) (map[string]transceiver.Driver, error) {
	drivers := make(map[string]transceiver.Driver, len(buses))

	for _, b := range buses {
		var (
			d   transceiver.Driver
			err error
		)

		switch b.Transceiver.Kind {
		case config.TransceiverSerial:
			d, err = transceiver.OpenSerial(transceiver.SerialConfig{
				Device:   b.Transceiver.Device,
				BaudRate: b.Transceiver.BaudRate,
				Timeout:  time.Duration(b.Transceiver.TimeoutMs) * time.Millisecond,
			})
		case config.TransceiverLoopback:
			d = transceiver.NewLoopback(b.Transceiver.Echo)
		default:
			err = fmt.Errorf("unknown transceiver kind %q", b.Transceiver.Kind)
		}

		if err != nil {
			closeDrivers(drivers, slog.Default())
			return nil, fmt.Errorf("bus %q: %w", b.ID, err)
		}
		drivers[b.ID] = d
	}

	return drivers, nil
}

func closeDrivers(drivers map[string]transceiver.Driver, logger *slog.Logger) {
	for id, d := range drivers {
		if err := d.Close(); err != nil {
			logger.Warn("transceiver close failed", "bus", id, "err", err)
		}
	}
}
