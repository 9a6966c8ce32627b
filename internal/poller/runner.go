// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run drives the poller until ctx is done and emits a PollResult on out
// every publish interval. One goroutine per bus. No overlap.
//
// Each tick drains the receiver, then advances the failure tracker, so a
// tick that received a good word ends with a failure count of one.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	tick := time.NewTicker(p.cfg.TickInterval)
	defer tick.Stop()

	publish := time.NewTicker(p.cfg.PublishInterval)
	defer publish.Stop()

	// A nil channel never fires.
	var transmitC <-chan time.Time
	if p.tx != nil && len(p.cfg.Transmit) > 0 {
		transmit := time.NewTicker(p.cfg.TransmitInterval)
		defer transmit.Stop()
		transmitC = transmit.C
	}

	wasFailed := p.reg.Failed()

	for {
		select {
		case <-ctx.Done():
			return

		case <-tick.C:
			p.DrainOnce()
			failed := p.TickOnce()
			if failed != wasFailed {
				if failed {
					p.logger.Warn("bus failed", "failure_count", p.reg.FailureCount())
				} else {
					p.logger.Info("bus recovered")
				}
				wasFailed = failed
			}

		case <-transmitC:
			if res := p.TransmitOnce(); res.Err != nil {
				p.logger.Warn("transmit failed", "failed", res.Failed, "err", res.Err)
			}

		case <-publish.C:
			select {
			case out <- p.Snapshot():
			case <-ctx.Done():
				return
			}
		}
	}
}
