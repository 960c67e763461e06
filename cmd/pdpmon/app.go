// cmd/pdpmon/app.go
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/pdp-monitor/internal/config"
	"github.com/tamzrod/pdp-monitor/internal/logging"
	"github.com/tamzrod/pdp-monitor/internal/pdp"
	"github.com/tamzrod/pdp-monitor/internal/publisher"
	"github.com/tamzrod/pdp-monitor/internal/status"
	"github.com/tamzrod/pdp-monitor/internal/table"
	"github.com/tamzrod/pdp-monitor/internal/writer"
)

type options struct {
	resetEnergy bool
	clearFaults bool
	once        bool
}

// pipeline is one wired panel.
type pipeline struct {
	id    string
	panel *pdp.Panel
	pub   *publisher.Publisher
	log   *zap.Logger

	// readings mirrors the register table in -once mode only.
	readings *table.MemoryTable
}

// buildPipelines wires every configured panel against an already built HAL
// and endpoint clients. cfg must be validated and normalized.
func buildPipelines(cfg *config.Config, hal pdp.HAL, clients map[string]writer.RegisterWriter, opts options, log *zap.Logger) ([]pipeline, error) {
	interval := time.Duration(cfg.PDP.Poll.IntervalMs) * time.Millisecond
	out := make([]pipeline, 0, len(cfg.PDP.Panels))

	for _, pc := range cfg.PDP.Panels {
		plog := log.With(zap.String("panel", pc.ID), zap.Int("module", pc.Module))

		tracker := status.NewTracker()
		panel := pdp.New(hal, pc.Module, pdp.Reporters{tracker, logging.NewReporter(plog)})
		if panel.Disabled() {
			plog.Error("panel disabled: initialization failed")
		}

		if opts.resetEnergy {
			panel.ResetTotalEnergy()
		}
		if opts.clearFaults {
			panel.ClearStickyFaults()
		}

		cli, ok := clients[pc.Table.Endpoint]
		if !ok {
			return nil, fmt.Errorf("panel %q: no client for table endpoint %s", pc.ID, pc.Table.Endpoint)
		}
		regs := table.NewPanelTable(cli, pc.Table.UnitID, pc.Table.Address)

		pl := pipeline{id: pc.ID, panel: panel, log: plog}

		// Binding publishes once.
		if opts.once {
			pl.readings = table.NewMemoryTable()
			panel.BindTable(table.Fanout{regs, pl.readings})
		} else {
			panel.BindTable(regs)
		}

		var sw writer.StatusWriter
		if w, enabled := writer.NewStatusWriter(writer.BuildStatusPlan(pc), clients); enabled {
			sw = w
		} else {
			plog.Debug("status block disabled")
		}

		pub, err := publisher.New(publisher.Config{PanelID: pc.ID, Interval: interval}, panel, regs, tracker, sw, plog)
		if err != nil {
			return nil, fmt.Errorf("publisher build failed (panel=%s): %w", pc.ID, err)
		}
		pl.pub = pub

		out = append(out, pl)
	}

	return out, nil
}

// runOnce delivers the pass each panel published on bind and logs it.
func runOnce(pls []pipeline) {
	for _, pl := range pls {
		snap := pl.pub.Deliver()
		logReadings(pl, snap)
	}
}

// runUntilDone runs every publisher until ctx is done.
func runUntilDone(ctx context.Context, pls []pipeline) {
	var wg sync.WaitGroup
	for _, pl := range pls {
		wg.Add(1)
		go func(p *publisher.Publisher) {
			defer wg.Done()
			p.Run(ctx)
		}(pl.pub)
	}
	wg.Wait()
}

func logReadings(pl pipeline, snap status.Snapshot) {
	fields := []zap.Field{
		zap.String("type", pl.panel.SmartDashboardType()),
		zap.Uint16("health", snap.Health),
		zap.Float64("temperature", pl.panel.Temperature()),
		zap.Float64("total_power", pl.panel.TotalPower()),
		zap.Float64("total_energy", pl.panel.TotalEnergy()),
	}
	for _, k := range pdp.TableKeys() {
		v, _ := pl.readings.Number(k)
		fields = append(fields, zap.Float64(k, v))
	}
	pl.log.Info("pdp readings", fields...)
}
