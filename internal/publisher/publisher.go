// internal/publisher/publisher.go
package publisher

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
	"github.com/tamzrod/pdp-monitor/internal/status"
	"github.com/tamzrod/pdp-monitor/internal/writer"
)

// Flusher delivers a table after a publish pass.
type Flusher interface {
	Flush() error
}

// Config is the minimal runtime config the publisher needs.
type Config struct {
	PanelID  string
	Interval time.Duration
}

// Publisher is the telemetry loop that owns one panel.
// One goroutine per panel. No overlap. No retries.
type Publisher struct {
	cfg     Config
	panel   *pdp.Panel
	table   Flusher
	tracker *status.Tracker
	status  writer.StatusWriter // nil => status disabled
	log     *zap.Logger
}

// New creates a publisher with immutable config.
// The tracker must be the reporter the panel was built with.
func New(cfg Config, panel *pdp.Panel, table Flusher, tracker *status.Tracker, sw writer.StatusWriter, log *zap.Logger) (*Publisher, error) {
	if cfg.PanelID == "" {
		return nil, errors.New("publisher: panel id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("publisher: interval must be > 0")
	}
	if panel == nil {
		return nil, errors.New("publisher: panel required")
	}
	if tracker == nil {
		return nil, errors.New("publisher: tracker required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{
		cfg:     cfg,
		panel:   panel,
		table:   table,
		tracker: tracker,
		status:  sw,
		log:     log.With(zap.String("panel", cfg.PanelID)),
	}, nil
}

// PublishOnce performs exactly one publish cycle and returns the resulting snapshot.
func (p *Publisher) PublishOnce() status.Snapshot {
	p.panel.PublishToTable()
	return p.Deliver()
}

// Deliver flushes what the panel last published and folds the tracker.
// It reads nothing from the panel.
func (p *Publisher) Deliver() status.Snapshot {
	if p.table != nil {
		if err := p.table.Flush(); err != nil {
			p.log.Warn("table flush failed", zap.Error(err))
		}
	}

	snap, changed := p.tracker.Cycle(p.panel.Disabled())
	if changed {
		p.writeStatus(snap)
	}
	return snap
}

// Tick advances seconds-in-error and delivers the change, if any.
func (p *Publisher) Tick() {
	if snap, changed := p.tracker.Tick(); changed {
		p.writeStatus(snap)
	}
}

// AssertStatus writes the current snapshot unconditionally (identity re-assert on start).
func (p *Publisher) AssertStatus() {
	p.writeStatus(p.tracker.Snapshot())
}

func (p *Publisher) writeStatus(s status.Snapshot) {
	if p.status == nil {
		return
	}
	if err := p.status.WriteStatus(s); err != nil {
		p.log.Warn("status write failed", zap.Error(err))
	}
}
