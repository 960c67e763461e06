// internal/publisher/runner.go
package publisher

import (
	"context"
	"time"
)

// Run starts the publish ticker plus a 1 Hz seconds ticker until ctx is done.
// Both tickers are served by this goroutine, so tracker state needs no lock.
func (p *Publisher) Run(ctx context.Context) {
	p.AssertStatus()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PublishOnce()
		case <-secTicker.C:
			p.Tick()
		}
	}
}
