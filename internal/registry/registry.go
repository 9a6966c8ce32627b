// internal/registry/registry.go

// Package registry holds the per-label receive state of one ARINC429 bus.
//
// A Registry is an ordered table of label configs and their last decoded
// values, plus one bus-wide failure counter. It is not safe for concurrent
// use: one goroutine (the bus poller) owns it, and readers receive copies.
package registry

import (
	"fmt"

	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// MaxEntries bounds the number of labels one registry may hold.
const MaxEntries = 64

// ReceiveState is the mutable state kept for one label.
type ReceiveState struct {
	RawWord  uint32
	SM       arinc.StatusMatrix
	SDI      arinc.SDI
	EngFloat float64
	EngInt   int32
	Discrete uint32

	// LastGoodMS is the clock value of the last successful decode.
	LastGoodMS uint32

	InBounds bool

	// NotBabbling is evaluated at receipt against the previous receipt.
	NotBabbling bool

	// Fresh is only meaningful on copies returned by Latest, where it is
	// computed against the caller's clock.
	Fresh bool

	// Received is set by the first successful decode.
	Received bool
}

// Entry pairs a label config with its state.
type Entry struct {
	Config arinc.LabelConfig
	State  ReceiveState
}

// Registry is the label table of one bus.
type Registry struct {
	name    string
	entries []Entry

	failureCount     uint32
	failureThreshold uint32
}

// New validates cfgs and builds a registry with every state zeroed.
// Entries keep definition order, which is also the dispatch scan order.
func New(name string, failureThreshold uint32, cfgs []arinc.LabelConfig) (*Registry, error) {
	if failureThreshold == 0 {
		return nil, fmt.Errorf("registry %s: %w: failure threshold must be > 0", name, arinc.ErrInvalidConfig)
	}
	if len(cfgs) > MaxEntries {
		return nil, fmt.Errorf("registry %s: %w: %d labels exceeds %d", name, arinc.ErrInvalidConfig, len(cfgs), MaxEntries)
	}

	seen := make(map[arinc.Label]struct{}, len(cfgs))
	entries := make([]Entry, 0, len(cfgs))

	for i := range cfgs {
		c := cfgs[i]
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("registry %s: %w", name, err)
		}
		if _, dup := seen[c.Label]; dup {
			return nil, fmt.Errorf("registry %s: %w: duplicate label %s", name, arinc.ErrInvalidConfig, c.Label)
		}
		seen[c.Label] = struct{}{}
		entries = append(entries, Entry{Config: c})
	}

	return &Registry{
		name:             name,
		entries:          entries,
		failureThreshold: failureThreshold,
	}, nil
}

func (r *Registry) Name() string { return r.name }

func (r *Registry) Len() int { return len(r.entries) }

// Labels returns the configured labels in definition order.
func (r *Registry) Labels() []arinc.Label {
	out := make([]arinc.Label, len(r.entries))
	for i := range r.entries {
		out[i] = r.entries[i].Config.Label
	}
	return out
}

// Entry returns a copy of entry i.
func (r *Registry) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[i], true
}

// lookup scans in definition order.
func (r *Registry) lookup(label arinc.Label) *Entry {
	for i := range r.entries {
		if r.entries[i].Config.Label == label {
			return &r.entries[i]
		}
	}
	return nil
}
