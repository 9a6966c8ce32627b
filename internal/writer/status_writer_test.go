// internal/writer/status_writer_test.go
package writer

import (
	"testing"

	"github.com/tamzrod/arinc-bridge/internal/status"
)

func statusPlan() Plan {
	return Plan{
		BusID: "adc1",
		Status: &StatusPlan{
			Endpoint:   "status-endpoint",
			UnitID:     1,
			BaseSlot:   2,
			DeviceName: "ADC-1",
		},
	}
}

func TestNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeEndpointClient{}
	plan := statusPlan()

	sw, enabled := NewBusStatusWriter(plan, map[string]endpointClient{"status-endpoint": cli})
	if !enabled {
		t.Fatalf("status writer should be enabled")
	}

	// ---- first write: FULL ASSERT ----
	first := status.Snapshot{Health: status.HealthOK, LabelsConfigured: 4, LabelsValid: 4}

	if err := sw.WriteStatus(first); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	if len(cli.lastRegs) != status.SlotsPerBus {
		t.Fatalf("expected full block write (%d regs), got %d", status.SlotsPerBus, len(cli.lastRegs))
	}
	if cli.lastRegsAddr != 2*status.SlotsPerBus {
		t.Fatalf("unexpected block addr: got=%d want=%d", cli.lastRegsAddr, 2*status.SlotsPerBus)
	}

	expectedNameRegs := status.EncodeName(plan.Status.DeviceName)
	for i := 0; i < status.SlotDeviceNameSlots; i++ {
		slot := status.SlotDeviceNameStart + i
		if cli.lastRegs[slot] != expectedNameRegs[i] {
			t.Fatalf("name slot %d mismatch: got=%d want=%d", slot, cli.lastRegs[slot], expectedNameRegs[i])
		}
	}
	if cli.lastRegs[status.SlotLabelsConfigured] != 4 {
		t.Fatalf("labels_configured not written")
	}

	// ---- second write: INCREMENTAL ONLY ----
	second := first
	second.LabelsValid = 3
	second.Health = status.HealthStale

	before := len(cli.writes)
	if err := sw.WriteStatus(second); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	if got := len(cli.writes) - before; got != 2 {
		t.Fatalf("expected 2 single-slot writes, got %d", got)
	}
	for _, w := range cli.writes[before:] {
		if len(w.regs) != 1 {
			t.Fatalf("incremental update must not re-write the block")
		}
	}

	// ---- unchanged snapshot: nothing to write ----
	before = len(cli.writes)
	if err := sw.WriteStatus(second); err != nil {
		t.Fatalf("unchanged write failed: %v", err)
	}
	if len(cli.writes) != before {
		t.Fatalf("unchanged snapshot should not write")
	}
}

func TestSecondsInErrorResetOnRecovery(t *testing.T) {
	cli := &fakeEndpointClient{}
	plan := statusPlan()

	sw, _ := NewBusStatusWriter(plan, map[string]endpointClient{"status-endpoint": cli})

	// simulate ERROR
	errSnap := status.Snapshot{Health: status.HealthError, FailureCount: 42, SecondsInError: 3}
	if err := sw.WriteStatus(errSnap); err != nil {
		t.Fatalf("error snapshot write failed: %v", err)
	}

	// simulate recovery: only seconds_in_error and failure count change
	okSnap := status.Snapshot{Health: status.HealthError, FailureCount: 42, SecondsInError: 0}
	if err := sw.WriteStatus(okSnap); err != nil {
		t.Fatalf("recovery snapshot write failed: %v", err)
	}

	expectedAddr := plan.Status.BaseSlot*status.SlotsPerBus + status.SlotSecondsInError

	if cli.lastRegsAddr != expectedAddr {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastRegsAddr, expectedAddr)
	}
	if len(cli.lastRegs) != 1 || cli.lastRegs[0] != 0 {
		t.Fatalf("seconds_in_error not reset: %v", cli.lastRegs)
	}
}

func TestFailedIncrementalForcesFullReassert(t *testing.T) {
	cli := &fakeEndpointClient{failAfter: 1}
	plan := statusPlan()

	sw, _ := NewBusStatusWriter(plan, map[string]endpointClient{"status-endpoint": cli})

	if err := sw.WriteStatus(status.Snapshot{Health: status.HealthOK}); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	if err := sw.WriteStatus(status.Snapshot{Health: status.HealthError}); err == nil {
		t.Fatalf("expected incremental failure")
	}

	cli.failAfter = 0
	if err := sw.WriteStatus(status.Snapshot{Health: status.HealthError}); err != nil {
		t.Fatalf("re-assert failed: %v", err)
	}
	if len(cli.lastRegs) != status.SlotsPerBus {
		t.Fatalf("expected full block re-assert, got %d regs", len(cli.lastRegs))
	}
}

func TestStatusDisabled(t *testing.T) {
	if _, enabled := NewBusStatusWriter(Plan{BusID: "adc1"}, nil); enabled {
		t.Fatalf("status writer should be disabled without a status plan")
	}

	sw, _ := NewBusStatusWriter(statusPlan(), map[string]endpointClient{})
	if err := sw.WriteStatus(status.Snapshot{}); err == nil {
		t.Fatalf("expected missing client error")
	}
}
