// internal/registry/receive.go
package registry

import (
	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// Receive dispatches one received word to its label entry.
//
// The returned label is the word's label whether or not it matched. An
// unknown label returns ErrNoMatchingLabel and changes nothing. A decode
// failure is returned as is: the entry keeps its previous state and the
// failure counter is not reset.
//
// On success the babbling flag is computed against the previous receipt,
// the state is overwritten, and the bus-wide failure count drops to zero.
func (r *Registry) Receive(word uint32, nowMS uint32) (arinc.Label, error) {
	label := arinc.LabelOf(word)
	if r == nil {
		return label, arinc.ErrInvalidArgument
	}

	e := r.lookup(label)
	if e == nil {
		return label, &arinc.Error{Op: "receive", Label: label, Err: arinc.ErrNoMatchingLabel}
	}

	d, err := arinc.Decode(&e.Config, word)
	if err != nil {
		return label, err
	}

	st := &e.State
	st.NotBabbling = Elapsed(nowMS, st.LastGoodMS) >= e.Config.MinIntervalMS

	st.RawWord = word
	st.SM = d.SM
	st.SDI = d.SDI
	st.EngFloat = d.EngFloat
	st.EngInt = d.EngInt
	st.Discrete = d.Discrete
	// Discrete words carry no engineering value; they are never in bounds.
	st.InBounds = e.Config.Kind != arinc.KindDiscrete && e.Config.InBounds(d.EngFloat)
	st.LastGoodMS = nowMS
	st.Received = true

	r.failureCount = 0
	return label, nil
}
