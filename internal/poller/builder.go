// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/tamzrod/arinc-bridge/internal/clock"
	cfg "github.com/tamzrod/arinc-bridge/internal/config"
	"github.com/tamzrod/arinc-bridge/internal/registry"
	"github.com/tamzrod/arinc-bridge/internal/transceiver"
)

// Build constructs the registry and poller of one bus.
// The config must be validated and normalized.
// rx is the bus's own receiver; tx is the transmitter selected by
// transmit.to and may be nil when the bus retransmits nothing.
func Build(b cfg.BusConfig, rx transceiver.Receiver, tx transceiver.Transmitter, clk clock.Clock, opts ...Option) (*Poller, error) {
	labels, err := b.LabelConfigs()
	if err != nil {
		return nil, err
	}

	reg, err := registry.New(b.ID, b.FailureThreshold, labels)
	if err != nil {
		return nil, fmt.Errorf("bus %q: %w", b.ID, err)
	}

	transmit, err := b.TransmitLabels()
	if err != nil {
		return nil, err
	}
	if len(transmit) == 0 {
		tx = nil
	}

	return New(
		Config{
			BusID:            b.ID,
			TickInterval:     ms(b.TickIntervalMs),
			DrainLimit:       b.DrainLimit,
			PublishInterval:  ms(b.PublishIntervalMs),
			TransmitInterval: ms(b.Transmit.IntervalMs),
			Transmit:         transmit,
		},
		reg,
		rx,
		tx,
		clk,
		opts...,
	)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
