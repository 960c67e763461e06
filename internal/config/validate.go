// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
	"github.com/tamzrod/pdp-monitor/internal/status"
)

// tableSpan is the register footprint of one panel table:
// every published key is a float32, two registers wide.
var tableSpan = uint16(len(pdp.TableKeys()) * 2)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// SOURCE VALIDATION
	// ------------------------------------------------------------

	src := cfg.PDP.Source
	switch src.Transport {
	case "tcp":
		if src.Endpoint == "" {
			return errors.New("source: endpoint is required for tcp transport")
		}
	case "rtu":
		if src.Device == "" {
			return errors.New("source: device is required for rtu transport")
		}
	default:
		return fmt.Errorf("source: unsupported transport %q (want tcp or rtu)", src.Transport)
	}

	if src.Modules <= 0 {
		return errors.New("source: modules must be > 0")
	}
	if src.TimeoutMs < 0 {
		return errors.New("source: timeout_ms must be >= 0")
	}
	if int(src.UnitIDBase)+src.Modules-1 > 247 {
		return fmt.Errorf(
			"source: unit_id_base=%d with modules=%d exceeds Modbus unit id 247",
			src.UnitIDBase,
			src.Modules,
		)
	}

	if cfg.PDP.Poll.IntervalMs <= 0 {
		return errors.New("poll: interval_ms must be > 0")
	}

	if len(cfg.PDP.Panels) == 0 {
		return errors.New("panels: at least one panel required")
	}

	// ------------------------------------------------------------
	// PANEL VALIDATION
	// ------------------------------------------------------------

	ids := make(map[string]struct{})

	for _, p := range cfg.PDP.Panels {
		if p.ID == "" {
			return errors.New("panel: id is required")
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("panel %q: duplicate id", p.ID)
		}
		ids[p.ID] = struct{}{}

		// module is not range-checked here: a bad module disables the panel at runtime.

		if p.Table.Endpoint == "" {
			return fmt.Errorf("panel %q: table.endpoint is required", p.ID)
		}
		if int(p.Table.Address)+int(tableSpan) > 0x10000 {
			return fmt.Errorf("panel %q: table.address=%d leaves no room for %d registers", p.ID, p.Table.Address, tableSpan)
		}

		// device_name sanity (ASCII only)
		for i := 0; i < len(p.DeviceName); i++ {
			if p.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"panel %q: device_name must contain ASCII characters only",
					p.ID,
				)
			}
		}

		if p.Status != nil && p.Status.Endpoint == "" {
			return fmt.Errorf("panel %q: status.endpoint is required", p.ID)
		}
	}

	// ------------------------------------------------------------
	// STATUS BLOCK VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	// key = endpoint | unit_id | slot
	statusOwner := make(map[string]string)

	for _, p := range cfg.PDP.Panels {
		if p.Status == nil {
			continue
		}

		if (int(p.Status.Slot)+1)*status.SlotsPerPanel > 0x10000 {
			return fmt.Errorf(
				"panel %q: status.slot=%d puts the %d-register block past address 65535",
				p.ID,
				p.Status.Slot,
				status.SlotsPerPanel,
			)
		}

		key := fmt.Sprintf("%s|%d|%d", p.Status.Endpoint, p.Status.UnitID, p.Status.Slot)

		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status slot collision: endpoint=%s unit_id=%d slot=%d used by panels %q and %q",
				p.Status.Endpoint,
				p.Status.UnitID,
				p.Status.Slot,
				prev,
				p.ID,
			)
		}

		statusOwner[key] = p.ID
	}

	// ------------------------------------------------------------
	// TABLE MEMORY GEOMETRY VALIDATION
	// ------------------------------------------------------------

	type span struct {
		start int
		end   int
		panel string
	}

	// key = endpoint | unit_id
	spans := make(map[string][]span)

	for _, p := range cfg.PDP.Panels {
		start := int(p.Table.Address)
		end := start + int(tableSpan) - 1

		key := fmt.Sprintf("%s|%d", p.Table.Endpoint, p.Table.UnitID)

		for _, s := range spans[key] {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"table overlap: endpoint=%s unit_id=%d range=%d-%d of panel %q overlaps panel %q range=%d-%d",
					p.Table.Endpoint,
					p.Table.UnitID,
					start,
					end,
					p.ID,
					s.panel,
					s.start,
					s.end,
				)
			}
		}

		spans[key] = append(spans[key], span{start: start, end: end, panel: p.ID})
	}

	// Status blocks share register space with tables on the same endpoint and unit.
	for _, p := range cfg.PDP.Panels {
		if p.Status == nil {
			continue
		}

		start := int(p.Status.Slot) * status.SlotsPerPanel
		end := start + status.SlotsPerPanel - 1

		key := fmt.Sprintf("%s|%d", p.Status.Endpoint, p.Status.UnitID)

		for _, s := range spans[key] {
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"status overlap: endpoint=%s unit_id=%d status range=%d-%d of panel %q overlaps table of panel %q range=%d-%d",
					p.Status.Endpoint,
					p.Status.UnitID,
					start,
					end,
					p.ID,
					s.panel,
					s.start,
					s.end,
				)
			}
		}
	}

	return nil
}
