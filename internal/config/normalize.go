// internal/config/normalize.go
package config

import (
	"math"

	"github.com/tamzrod/arinc-bridge/internal/status"
)

// Defaults applied by Normalize.
const (
	DefaultTickIntervalMs     = 5
	DefaultPublishIntervalMs  = 100
	DefaultTransmitIntervalMs = 50
	DefaultDrainLimit         = 32
	DefaultTimeoutMs          = 1000
	DefaultBaudRate           = 115200
	DefaultFailureThreshold   = 30
	DefaultSubjectPrefix      = "arinc"

	// failureThresholdFactor scales the slowest label's max interval into
	// ticks, so one missed word never fails the bus.
	failureThresholdFactor = 2.5
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Bridge.StatusMemory.TimeoutMs == 0 {
		cfg.Bridge.StatusMemory.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Bridge.NATS.URL != "" && cfg.Bridge.NATS.SubjectPrefix == "" {
		cfg.Bridge.NATS.SubjectPrefix = DefaultSubjectPrefix
	}

	for bi := range cfg.Bridge.Buses {
		b := &cfg.Bridge.Buses[bi]

		if b.TickIntervalMs == 0 {
			b.TickIntervalMs = DefaultTickIntervalMs
		}
		if b.PublishIntervalMs == 0 {
			b.PublishIntervalMs = DefaultPublishIntervalMs
		}
		if b.DrainLimit == 0 {
			b.DrainLimit = DefaultDrainLimit
		}
		if b.Transceiver.TimeoutMs == 0 {
			b.Transceiver.TimeoutMs = DefaultTimeoutMs
		}
		if b.Transceiver.Kind == TransceiverSerial && b.Transceiver.BaudRate == 0 {
			b.Transceiver.BaudRate = DefaultBaudRate
		}
		if len(b.Transmit.Labels) > 0 && b.Transmit.IntervalMs == 0 {
			b.Transmit.IntervalMs = DefaultTransmitIntervalMs
		}
		if b.FailureThreshold == 0 {
			b.FailureThreshold = failureThreshold(b)
		}

		for ti := range b.Targets {
			if b.Targets[ti].TimeoutMs == 0 {
				b.Targets[ti].TimeoutMs = DefaultTimeoutMs
			}
		}

		// ------------------------------------------------------------
		// BUS STATUS BLOCK NORMALIZATION (OPT-IN)
		// ------------------------------------------------------------

		if b.Status == nil {
			continue
		}

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to max 16 characters
		if b.Status.DeviceName == "" {
			b.Status.DeviceName = b.ID
		}
		if len(b.Status.DeviceName) > status.DeviceNameMaxChars {
			b.Status.DeviceName = b.Status.DeviceName[:status.DeviceNameMaxChars]
		}
	}
}

// failureThreshold derives a threshold of 2.5 times the tick count of the
// slowest label's max interval. TickIntervalMs must already be set.
func failureThreshold(b *BusConfig) uint32 {
	var slowest uint32
	for _, l := range b.Labels {
		if l.MaxIntervalMs > slowest {
			slowest = l.MaxIntervalMs
		}
	}
	if slowest == 0 || b.TickIntervalMs <= 0 {
		return DefaultFailureThreshold
	}

	ticks := math.Ceil(failureThresholdFactor * float64(slowest) / float64(b.TickIntervalMs))
	if ticks < 1 {
		return 1
	}
	return uint32(ticks)
}
