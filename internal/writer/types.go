// internal/writer/types.go
package writer

import "github.com/tamzrod/arinc-bridge/internal/poller"

// TargetEndpoint is one Modbus memory receiving the label blocks of a bus.
type TargetEndpoint struct {
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
}

// StatusPlan places the bus status block in status memory.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built write plan for one bus.
type Plan struct {
	BusID   string
	Targets []TargetEndpoint
	Status  *StatusPlan // nil = status disabled
}

// Writer writes poll snapshots into targets.
type Writer interface {
	Write(res poller.PollResult) error
}
