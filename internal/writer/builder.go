// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/pdp-monitor/internal/config"
	wmodbus "github.com/tamzrod/pdp-monitor/internal/writer/modbus"
)

// BuildStatusPlan converts one panel config into a status plan.
// Returns nil when the panel did not opt in.
func BuildStatusPlan(p cfg.PanelConfig) *StatusPlan {
	if p.Status == nil {
		return nil
	}
	return &StatusPlan{
		Endpoint:   p.Status.Endpoint,
		UnitID:     p.Status.UnitID,
		BaseSlot:   p.Status.Slot,
		DeviceName: p.DeviceName,
	}
}

// Endpoints returns every unique table and status endpoint, in config order.
func Endpoints(c *cfg.Config) []string {
	seen := map[string]struct{}{}
	var out []string

	add := func(ep string) {
		if _, ok := seen[ep]; ok {
			return
		}
		seen[ep] = struct{}{}
		out = append(out, ep)
	}

	for _, p := range c.PDP.Panels {
		add(p.Table.Endpoint)
		if p.Status != nil {
			add(p.Status.Endpoint)
		}
	}
	return out
}

// BuildEndpointClients creates one TCP client per unique endpoint.
func BuildEndpointClients(endpoints []string, timeout time.Duration) (map[string]RegisterWriter, func() error, error) {
	clients := make(map[string]RegisterWriter)
	var closers []func() error

	for _, endpoint := range endpoints {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			for _, fn := range closers {
				_ = fn()
			}
			return nil, nil, err
		}
		clients[endpoint] = c
		closers = append(closers, c.Close)
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return clients, closeAll, nil
}
