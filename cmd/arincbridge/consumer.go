// cmd/arincbridge/consumer.go
package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/tamzrod/arinc-bridge/internal/metrics"
	"github.com/tamzrod/arinc-bridge/internal/poller"
	"github.com/tamzrod/arinc-bridge/internal/status"
	"github.com/tamzrod/arinc-bridge/internal/writer"
)

type snapshotPublisher interface {
	Publish(res poller.PollResult) error
}

// busConsumer owns everything downstream of one poller: data delivery,
// NATS fan-out and the bus status block. It runs on its own goroutine.
type busConsumer struct {
	busID      string
	configured int

	data    writer.Writer
	status  writer.StatusWriter // nil = disabled
	publish snapshotPublisher   // nil = disabled

	metrics *metrics.Metrics
	logger  *slog.Logger

	snap status.Snapshot
}

func (c *busConsumer) run(ctx context.Context, in <-chan poller.PollResult) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	c.start()

	for {
		select {
		case <-ctx.Done():
			return
		case res := <-in:
			c.handle(res)
		case <-secTicker.C:
			c.secondTick()
		}
	}
}

// start asserts the full status block before the first snapshot arrives.
func (c *busConsumer) start() {
	c.snap = status.Snapshot{
		Health:           status.HealthUnknown,
		LabelsConfigured: uint16(c.configured),
	}
	c.writeStatus("start")
}

func (c *busConsumer) handle(res poller.PollResult) {
	// --- data delivery ---
	if c.data != nil {
		if err := c.data.Write(res); err != nil {
			c.metrics.DeliveryError(c.busID, metrics.SinkModbus)
			c.logger.Warn("writer error", "err", err)
		}
	}

	if c.publish != nil {
		if err := c.publish.Publish(res); err != nil {
			c.metrics.DeliveryError(c.busID, metrics.SinkNATS)
			c.logger.Warn("publish error", "err", err)
		}
	}

	// --- status update (bus-level truth) ---
	next := c.snap
	next.Health = status.Health(res.Failed, len(res.Labels), res.ValidCount())
	next.FailureCount = status.Clamp16(res.FailureCount)
	next.LabelsConfigured = uint16(len(res.Labels))
	next.LabelsValid = uint16(res.ValidCount())

	// Reset seconds-in-error on recovery.
	if next.Health != status.HealthError {
		next.SecondsInError = 0
	}

	if next != c.snap {
		c.snap = next
		c.writeStatus("update")
	}
}

// secondTick counts seconds while the bus is failed.
func (c *busConsumer) secondTick() {
	if c.snap.Health != status.HealthError || c.snap.SecondsInError == 0xFFFF {
		return
	}
	c.snap.SecondsInError++
	c.writeStatus("seconds tick")
}

func (c *busConsumer) writeStatus(phase string) {
	if c.status == nil {
		return
	}
	if err := c.status.WriteStatus(c.snap); err != nil {
		c.metrics.DeliveryError(c.busID, metrics.SinkStatus)
		c.logger.Warn("status write failed", "phase", phase, "err", err)
	}
}
