// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/arinc-bridge/internal/poller"
	"github.com/tamzrod/arinc-bridge/internal/status"
)

// maxRegsPerWrite stays under the Modbus limit of 123 registers per
// request and is a whole number of label blocks.
const maxRegsPerWrite = 15 * status.SlotsPerLabel

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type modbusWriter struct {
	plan    Plan
	clients map[string]endpointClient
}

func New(plan Plan, clients map[string]endpointClient) Writer {
	return &modbusWriter{
		plan:    plan,
		clients: clients,
	}
}

// Write delivers every label block of res to every target. Label i lands
// at base_address + i*SlotsPerLabel. A failing target does not stop the
// others; all errors are joined.
func (w *modbusWriter) Write(res poller.PollResult) error {
	if len(res.Labels) == 0 {
		return nil
	}

	regs := make([]uint16, 0, len(res.Labels)*status.SlotsPerLabel)
	for _, l := range res.Labels {
		regs = append(regs, status.EncodeLabel(recordOf(l))...)
	}

	var errs []string

	for _, tgt := range w.plan.Targets {
		cli := w.clients[tgt.Endpoint]
		if cli == nil {
			errs = append(errs, fmt.Sprintf(
				"writer: missing client for endpoint %s",
				tgt.Endpoint,
			))
			continue
		}

		for off := 0; off < len(regs); off += maxRegsPerWrite {
			end := off + maxRegsPerWrite
			if end > len(regs) {
				end = len(regs)
			}
			addr := tgt.BaseAddress + uint16(off)

			if err := cli.WriteRegisters(tgt.UnitID, addr, regs[off:end]); err != nil {
				errs = append(errs, fmt.Sprintf(
					"writer: bus=%s ep=%s unit=%d addr=%d err=%v",
					res.BusID, tgt.Endpoint, tgt.UnitID, addr, err,
				))
				// rest of this target is likely unreachable too
				break
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}

func recordOf(l poller.LabelSnapshot) status.LabelRecord {
	return status.LabelRecord{
		Received:    l.State.Received,
		Fresh:       l.State.Fresh,
		NotBabbling: l.State.NotBabbling,
		InBounds:    l.State.InBounds,
		Valid:       l.Valid,
		SM:          uint8(l.State.SM),
		SDI:         uint8(l.State.SDI),
		EngInt:      l.State.EngInt,
		RawWord:     l.State.RawWord,
		Discrete:    l.State.Discrete,
	}
}
