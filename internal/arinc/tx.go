// internal/arinc/tx.go
package arinc

// TxRequest is built per transmit attempt.
type TxRequest struct {
	Config   *LabelConfig
	SM       StatusMatrix
	SDI      SDI
	Value    float64
	Discrete uint32
}

// Encode assembles the word for the request's kind. BCD uses the standard
// three bit most significant character.
func (r TxRequest) Encode() (word uint32, clipped bool, err error) {
	if r.Config == nil {
		return 0, false, ErrInvalidArgument
	}
	switch r.Config.Kind {
	case KindBNR:
		return EncodeBNR(r.Config, r.Value, r.SM, r.SDI, r.Discrete)
	case KindBCD:
		return EncodeBCD(r.Config, r.Value, r.SM, r.SDI, r.Discrete, StdBCDBitsMSC)
	case KindDiscrete:
		word, err = EncodeDiscrete(r.Config, r.Discrete, r.SM, r.SDI)
		return word, false, err
	}
	return 0, false, &Error{Op: "encode", Label: r.Config.Label, Err: ErrUnspecified}
}

// ClassifyBNR maps a derived value onto a BNR status: failure/warning when
// outside [lo, hi], normal operation otherwise.
func ClassifyBNR(v, lo, hi float64) StatusMatrix {
	if v < lo || v > hi {
		return SMFailureWarning
	}
	return SMNormalOperation
}
