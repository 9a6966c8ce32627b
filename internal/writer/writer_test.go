// internal/writer/writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
	"github.com/tamzrod/arinc-bridge/internal/poller"
	"github.com/tamzrod/arinc-bridge/internal/registry"
	"github.com/tamzrod/arinc-bridge/internal/status"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	writes []writeCall

	failAfter int // fail every write once this many succeeded; 0 = never
	ok        int

	lastRegs     []uint16
	lastRegsAddr uint16
}

type writeCall struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if f.failAfter > 0 && f.ok >= f.failAfter {
		return errors.New("fake write failure")
	}
	f.ok++

	cp := append([]uint16(nil), regs...)
	f.writes = append(f.writes, writeCall{unitID: unitID, addr: addr, regs: cp})
	f.lastRegs = cp
	f.lastRegsAddr = addr
	return nil
}

// ---- helpers ----

func labelSnapshots(n int) []poller.LabelSnapshot {
	out := make([]poller.LabelSnapshot, n)
	for i := range out {
		out[i] = poller.LabelSnapshot{
			Label: arinc.Label(i),
			Kind:  arinc.KindBNR,
			State: registry.ReceiveState{
				RawWord:     uint32(0x60000000 | i),
				SM:          arinc.SMNormalOperation,
				EngInt:      int32(i * 10),
				Received:    true,
				Fresh:       true,
				NotBabbling: true,
				InBounds:    true,
			},
			Valid: true,
		}
	}
	return out
}

// ---- tests ----

func TestWriter_LabelBlocksAtBaseAddress(t *testing.T) {
	fake := &fakeEndpointClient{}

	plan := Plan{
		BusID: "adc1",
		Targets: []TargetEndpoint{
			{Endpoint: "ep1", UnitID: 2, BaseAddress: 100},
		},
	}

	w := New(plan, map[string]endpointClient{"ep1": fake})

	res := poller.PollResult{BusID: "adc1", Labels: labelSnapshots(3)}
	if err := w.Write(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(fake.writes))
	}
	call := fake.writes[0]
	if call.addr != 100 || call.unitID != 2 {
		t.Fatalf("unexpected write target addr=%d unit=%d", call.addr, call.unitID)
	}
	if len(call.regs) != 3*status.SlotsPerLabel {
		t.Fatalf("expected %d regs, got %d", 3*status.SlotsPerLabel, len(call.regs))
	}

	// label index 2 lives at base + 2*SlotsPerLabel
	second := call.regs[2*status.SlotsPerLabel:]
	if second[status.LabelSlotEngLo] != 20 {
		t.Fatalf("label 2 eng mismatch: got=%d want=20", second[status.LabelSlotEngLo])
	}
	if second[status.LabelSlotRawLo] != 2 || second[status.LabelSlotRawHi] != 0x6000 {
		t.Fatalf("label 2 raw mismatch: %04X%04X", second[status.LabelSlotRawHi], second[status.LabelSlotRawLo])
	}
	if second[status.LabelSlotFlags]&status.FlagValid == 0 {
		t.Fatalf("label 2 should be flagged valid")
	}
}

func TestWriter_ChunksLargeBuses(t *testing.T) {
	fake := &fakeEndpointClient{}

	plan := Plan{
		BusID:   "adc1",
		Targets: []TargetEndpoint{{Endpoint: "ep1", UnitID: 1, BaseAddress: 0}},
	}
	w := New(plan, map[string]endpointClient{"ep1": fake})

	if err := w.Write(poller.PollResult{Labels: labelSnapshots(40)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 40 labels * 8 = 320 regs -> 120 + 120 + 80
	if len(fake.writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(fake.writes))
	}
	wantAddr := []uint16{0, 120, 240}
	for i, w := range fake.writes {
		if w.addr != wantAddr[i] {
			t.Fatalf("write %d addr=%d want %d", i, w.addr, wantAddr[i])
		}
		if len(w.regs) > 123 {
			t.Fatalf("write %d exceeds modbus limit: %d", i, len(w.regs))
		}
	}
}

func TestWriter_ErrorsDoNotStopOtherTargets(t *testing.T) {
	good := &fakeEndpointClient{}
	bad := &fakeEndpointClient{failAfter: 1, ok: 1}

	plan := Plan{
		BusID: "adc1",
		Targets: []TargetEndpoint{
			{Endpoint: "bad", UnitID: 1},
			{Endpoint: "missing", UnitID: 1},
			{Endpoint: "good", UnitID: 1},
		},
	}
	w := New(plan, map[string]endpointClient{"bad": bad, "good": good})

	err := w.Write(poller.PollResult{BusID: "adc1", Labels: labelSnapshots(2)})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if len(good.writes) != 1 {
		t.Fatalf("good target should still be written, got %d writes", len(good.writes))
	}
}

func TestWriter_NoLabelsNoWrites(t *testing.T) {
	fake := &fakeEndpointClient{}
	w := New(Plan{Targets: []TargetEndpoint{{Endpoint: "ep1"}}}, map[string]endpointClient{"ep1": fake})

	if err := w.Write(poller.PollResult{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(fake.writes))
	}
}
