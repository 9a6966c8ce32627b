// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
	"github.com/tamzrod/arinc-bridge/internal/registry"
	"github.com/tamzrod/arinc-bridge/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	type span struct {
		start uint32
		end   uint32
		bus   string
	}

	buses := cfg.Bridge.Buses
	if len(buses) == 0 {
		return errors.New("bridge: at least one bus is required")
	}

	busIDs := make(map[string]struct{}, len(buses))
	for _, b := range buses {
		if b.ID == "" {
			return errors.New("bus: id is required")
		}
		if _, dup := busIDs[b.ID]; dup {
			return fmt.Errorf("bus %q: duplicate id", b.ID)
		}
		busIDs[b.ID] = struct{}{}
	}

	// ------------------------------------------------------------
	// PER-BUS VALIDATION
	// ------------------------------------------------------------

	for _, b := range buses {
		switch b.Transceiver.Kind {
		case TransceiverSerial:
			if b.Transceiver.Device == "" {
				return fmt.Errorf("bus %q: serial transceiver requires device", b.ID)
			}
			if b.Transceiver.BaudRate < 0 {
				return fmt.Errorf("bus %q: baud_rate must be >= 0", b.ID)
			}
		case TransceiverLoopback:
		default:
			return fmt.Errorf("bus %q: unknown transceiver kind %q", b.ID, b.Transceiver.Kind)
		}

		if b.TickIntervalMs < 0 || b.PublishIntervalMs < 0 || b.DrainLimit < 0 || b.Transceiver.TimeoutMs < 0 {
			return fmt.Errorf("bus %q: intervals and limits must be >= 0", b.ID)
		}

		if len(b.Labels) == 0 {
			return fmt.Errorf("bus %q: at least one label is required", b.ID)
		}
		if len(b.Labels) > registry.MaxEntries {
			return fmt.Errorf("bus %q: %d labels exceeds %d", b.ID, len(b.Labels), registry.MaxEntries)
		}

		labels := make(map[arinc.Label]struct{}, len(b.Labels))
		for _, l := range b.Labels {
			c, err := l.ToArinc()
			if err != nil {
				return fmt.Errorf("bus %q: %w", b.ID, err)
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("bus %q: %w", b.ID, err)
			}
			if _, dup := labels[c.Label]; dup {
				return fmt.Errorf("bus %q: duplicate label %s", b.ID, c.Label)
			}
			labels[c.Label] = struct{}{}
		}

		// transmit labels must be received on this bus
		if len(b.Transmit.Labels) > 0 {
			tx, err := b.TransmitLabels()
			if err != nil {
				return err
			}
			for _, l := range tx {
				if _, ok := labels[l]; !ok {
					return fmt.Errorf("bus %q: transmit label %s is not defined on the bus", b.ID, l)
				}
			}
			if _, ok := busIDs[b.TransmitBus()]; !ok {
				return fmt.Errorf("bus %q: transmit.to names unknown bus %q", b.ID, b.Transmit.To)
			}
			if b.Transmit.IntervalMs < 0 {
				return fmt.Errorf("bus %q: transmit.interval_ms must be >= 0", b.ID)
			}
		}

		// device_name sanity (ASCII only)
		if b.Status != nil {
			for i := 0; i < len(b.Status.DeviceName); i++ {
				if b.Status.DeviceName[i] > 0x7F {
					return fmt.Errorf("bus %q: device_name must contain ASCII characters only", b.ID)
				}
			}
		}

		for _, t := range b.Targets {
			if t.Endpoint == "" {
				return fmt.Errorf("bus %q: target endpoint is required", b.ID)
			}
		}
	}

	// ------------------------------------------------------------
	// BUS STATUS BLOCK VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	// key = status_unit_id | slot
	statusOwner := make(map[string]string)

	for _, b := range buses {
		if b.Status == nil {
			continue
		}
		if cfg.Bridge.StatusMemory.Endpoint == "" {
			return fmt.Errorf("bus %q: status is set but status_memory.endpoint is empty", b.ID)
		}

		key := fmt.Sprintf("%d|%d", b.Status.UnitID, b.Status.Slot)
		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status slot collision: unit_id=%d slot=%d used by buses %q and %q",
				b.Status.UnitID,
				b.Status.Slot,
				prev,
				b.ID,
			)
		}
		statusOwner[key] = b.ID

		if (uint32(b.Status.Slot)+1)*status.SlotsPerBus > 65536 {
			return fmt.Errorf("bus %q: status slot %d exceeds register space", b.ID, b.Status.Slot)
		}
	}

	// ------------------------------------------------------------
	// DESTINATION MEMORY GEOMETRY VALIDATION
	// ------------------------------------------------------------

	// key = endpoint | unit_id
	spans := make(map[string][]span)

	for _, b := range buses {
		qty := uint32(len(b.Labels)) * status.SlotsPerLabel

		for _, t := range b.Targets {
			start := uint32(t.BaseAddress)
			end := start + qty - 1

			if end > 0xFFFF {
				return fmt.Errorf(
					"bus %q: target %s unit_id=%d range %d-%d exceeds register space",
					b.ID, t.Endpoint, t.UnitID, start, end,
				)
			}

			key := fmt.Sprintf("%s|%d", t.Endpoint, t.UnitID)

			for _, s := range spans[key] {
				// overlap check (inclusive)
				if !(end < s.start || start > s.end) {
					return fmt.Errorf(
						"memory overlap: endpoint=%s unit_id=%d range=%d-%d overlaps with bus=%s range=%d-%d",
						t.Endpoint,
						t.UnitID,
						start,
						end,
						s.bus,
						s.start,
						s.end,
					)
				}
			}

			spans[key] = append(spans[key], span{
				start: start,
				end:   end,
				bus:   b.ID,
			})
		}
	}

	return nil
}
