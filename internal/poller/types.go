// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
	"github.com/tamzrod/arinc-bridge/internal/registry"
)

// DrainResult counts what happened to the words read from the receiver.
// Counts accumulate between snapshots.
type DrainResult struct {
	Read      int
	OK        int
	Parity    int
	Unmatched int
	Invalid   int

	// LastErr is the last decode failure, if any.
	LastErr error
}

func (d *DrainResult) add(o DrainResult) {
	d.Read += o.Read
	d.OK += o.OK
	d.Parity += o.Parity
	d.Unmatched += o.Unmatched
	d.Invalid += o.Invalid
	if o.LastErr != nil {
		d.LastErr = o.LastErr
	}
}

// TransmitResult counts transmit attempts.
type TransmitResult struct {
	Sent     int
	Declined int
	Failed   int

	Err error // last transmitter error
}

func (t *TransmitResult) add(o TransmitResult) {
	t.Sent += o.Sent
	t.Declined += o.Declined
	t.Failed += o.Failed
	if o.Err != nil {
		t.Err = o.Err
	}
}

// LabelSnapshot is one label's state as seen at snapshot time.
type LabelSnapshot struct {
	Label arinc.Label
	Kind  arinc.Kind
	State registry.ReceiveState

	// Valid is received, fresh, not babbling and in bounds. Discrete labels
	// skip the bounds term.
	Valid bool
}

// PollResult is a copy of one bus taken by its poller goroutine.
// Consumers own it; nothing in it aliases registry memory.
type PollResult struct {
	BusID string
	At    time.Time
	NowMS uint32

	Failed       bool
	FailureCount uint32

	Labels []LabelSnapshot

	Drain    DrainResult
	Transmit TransmitResult
}

// ValidCount returns the number of valid labels.
func (r PollResult) ValidCount() int {
	n := 0
	for _, l := range r.Labels {
		if l.Valid {
			n++
		}
	}
	return n
}
