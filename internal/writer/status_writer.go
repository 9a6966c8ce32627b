// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/arinc-bridge/internal/status"
)

// StatusWriter is the delivery-only contract for bus status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// busStatusWriter is the concrete implementation used by the bridge.
type busStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// NewBusStatusWriter builds a status writer if status is enabled for the bus.
// If plan.Status is nil, status is disabled.
func NewBusStatusWriter(plan Plan, clients map[string]endpointClient) (*busStatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	sp := plan.Status

	return &busStatusWriter{
		plan:     sp,
		cli:      clients[sp.Endpoint],
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
		nameRegs: status.EncodeName(sp.DeviceName),
	}, true
}

// WriteStatus delivers a bus status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *busStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := sw.fullBlockRegs(s)

		if err := sw.cli.WriteRegisters(unitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: only slots that changed
	// ------------------------------------------------------------
	next := status.Encode(s)
	prev := status.Encode(sw.last)

	var errs []string

	for _, slot := range liveSlots {
		if prev[slot.index] == next[slot.index] {
			continue
		}
		if err := sw.cli.WriteRegisters(
			unitID,
			baseAddr+uint16(slot.index),
			[]uint16{next[slot.index]},
		); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot.index, slot.name, err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	sw.last = s
	return nil
}

var liveSlots = []struct {
	index int
	name  string
}{
	{status.SlotHealthCode, "health"},
	{status.SlotFailureCount, "failure_count"},
	{status.SlotSecondsInError, "seconds_in_error"},
	{status.SlotLabelsConfigured, "labels_configured"},
	{status.SlotLabelsValid, "labels_valid"},
}

func (sw *busStatusWriter) baseAddr() uint16 {
	// Each bus owns a fixed SlotsPerBus block.
	return sw.plan.BaseSlot * status.SlotsPerBus
}

func (sw *busStatusWriter) fullBlockRegs(s status.Snapshot) []uint16 {
	regs := status.Encode(s)

	// Name always lives at the end of the block
	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)

	return regs
}
