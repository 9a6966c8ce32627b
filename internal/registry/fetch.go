// internal/registry/fetch.go
package registry

import (
	"github.com/tamzrod/arinc-bridge/internal/arinc"
)

// Latest returns a copy of the label's state with Fresh computed at nowMS.
func (r *Registry) Latest(label arinc.Label, nowMS uint32) (ReceiveState, error) {
	if r == nil {
		return ReceiveState{}, arinc.ErrInvalidArgument
	}
	e := r.lookup(label)
	if e == nil {
		return ReceiveState{}, &arinc.Error{Op: "latest", Label: label, Err: arinc.ErrNoMatchingLabel}
	}

	st := e.State
	st.Fresh = Elapsed(nowMS, st.LastGoodMS) <= e.Config.MaxIntervalMS
	return st, nil
}

// FetchIfValid returns the stored raw word for retransmission when it is
// fresh at nowMS and was not babbling when received. ok=false means do not
// transmit this label this cycle; the cause (unknown label, stale, babbling,
// never received) is deliberately not reported.
func (r *Registry) FetchIfValid(label arinc.Label, nowMS uint32) (word uint32, ok bool) {
	st, err := r.Latest(label, nowMS)
	if err != nil {
		return 0, false
	}
	if !st.Fresh || !st.NotBabbling {
		return 0, false
	}
	return st.RawWord, true
}

// FetchOctal is FetchIfValid keyed by a label in octal notation (1-377).
// Label 0 and invalid octal input decline.
func (r *Registry) FetchOctal(octal uint16, nowMS uint32) (uint32, bool) {
	if octal == 0 {
		return 0, false
	}
	label, err := arinc.FormatLabel(octal)
	if err != nil {
		return 0, false
	}
	return r.FetchIfValid(label, nowMS)
}
