// cmd/pdpmon/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/pdp-monitor/internal/config"
	"github.com/tamzrod/pdp-monitor/internal/hal/modbushal"
	"github.com/tamzrod/pdp-monitor/internal/logging"
	"github.com/tamzrod/pdp-monitor/internal/writer"
)

func main() {
	resetEnergy := flag.Bool("reset-energy", false, "reset accumulated energy on every panel at start")
	clearFaults := flag.Bool("clear-faults", false, "clear sticky faults on every panel at start")
	once := flag.Bool("once", false, "publish one pass, log the readings and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pdpmon [-reset-energy] [-clear-faults] [-once] <config.yaml>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *resetEnergy, *clearFaults, *once); err != nil {
		fmt.Fprintf(os.Stderr, "pdpmon: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, resetEnergy, clearFaults, once bool) error {
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

	lc := cfg.PDP.Log
	log, err := logging.New(logging.Config{
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// --------------------
	// HAL binding (shared by every panel)
	// --------------------

	src := cfg.PDP.Source
	timeout := time.Duration(src.TimeoutMs) * time.Millisecond

	hal, err := modbushal.New(modbushal.Config{
		Transport:  src.Transport,
		Endpoint:   src.Endpoint,
		Device:     src.Device,
		BaudRate:   src.BaudRate,
		Timeout:    timeout,
		UnitIDBase: src.UnitIDBase,
		Modules:    src.Modules,
	})
	if err != nil {
		return err
	}
	defer hal.Close()

	// --------------------
	// Table + status endpoint clients
	// --------------------

	clients, closeWriters, err := writer.BuildEndpointClients(writer.Endpoints(cfg), timeout)
	if err != nil {
		return fmt.Errorf("endpoint clients failed: %w", err)
	}
	defer closeWriters()

	// --------------------
	// Build per-panel pipelines
	// --------------------

	opts := options{resetEnergy: resetEnergy, clearFaults: clearFaults, once: once}
	pls, err := buildPipelines(cfg, hal, clients, opts, log)
	if err != nil {
		return err
	}

	if once {
		runOnce(pls)
		return nil
	}

	// --------------------
	// Run until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("pdpmon running",
		zap.Int("panels", len(pls)),
		zap.Duration("interval", time.Duration(cfg.PDP.Poll.IntervalMs)*time.Millisecond),
	)
	runUntilDone(ctx, pls)
	log.Info("pdpmon stopped")
	return nil
}
