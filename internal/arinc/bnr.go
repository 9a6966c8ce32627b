// internal/arinc/bnr.go
package arinc

// Decoded holds the fields extracted from one wire word.
type Decoded struct {
	EngFloat float64
	EngInt   int32
	Discrete uint32
	SM       StatusMatrix
	SDI      SDI
}

// DecodeBNR decodes a two's-complement BNR word. It fails only on an
// invalid config; every raw bit pattern decodes.
func DecodeBNR(cfg *LabelConfig, word uint32) (Decoded, error) {
	if cfg == nil {
		return Decoded{}, ErrInvalidArgument
	}
	if cfg.SigBits < 1 || cfg.SigBits > MaxSigBits {
		return Decoded{}, opError("decode bnr", cfg.Label, ErrInvalidConfig, "sig_bits out of range")
	}

	sig := uint(cfg.SigBits)

	// Field is sig bits plus the sign bit, sign at bit 28.
	field, err := unpackField(word, bnrMaxFieldShift-sig, sig+1)
	if err != nil {
		return Decoded{}, &Error{Op: "decode bnr", Label: cfg.Label, Err: ErrUnspecified}
	}
	if field&(1<<sig) != 0 {
		field |= ^uint32(0) << sig
	}

	var d Decoded
	d.EngFloat = float64(int32(field)) * cfg.Resolution
	d.EngInt = roundHalfAwayInt32(d.EngFloat)

	if cfg.DiscreteBits > 0 {
		d.Discrete, err = unpackField(word, discreteShift, uint(cfg.DiscreteBits))
		if err != nil {
			return Decoded{}, opError("decode bnr", cfg.Label, ErrInvalidConfig, err.Error())
		}
	}

	d.SM = StatusMatrixOf(word)

	// 19/20-bit fields use the SDI bits as data.
	if cfg.SigBits <= StdMaxSigBits {
		d.SDI = SDIOf(word)
	}

	return d, nil
}

// EncodeBNR assembles a BNR word. clipped reports that the value did not
// fit and was saturated to the field extreme; the word is still usable.
func EncodeBNR(cfg *LabelConfig, eng float64, sm StatusMatrix, sdi SDI, discrete uint32) (uint32, bool, error) {
	if cfg == nil {
		return 0, false, ErrInvalidArgument
	}
	if cfg.SigBits < 1 || cfg.SigBits > MaxSigBits {
		return 0, false, opError("encode bnr", cfg.Label, ErrInvalidConfig, "sig_bits out of range")
	}
	if cfg.DiscreteBits > MaxDiscreteBits {
		return 0, false, opError("encode bnr", cfg.Label, ErrInvalidConfig, "discrete_bits out of range")
	}

	raw, clipped := bnrRaw(uint(cfg.SigBits), cfg.Resolution, eng)

	data := raw << (bnrMaxFieldShift - uint(cfg.SigBits))
	switch cfg.SigBits {
	case sigBitsBothSDI:
		data &= bnrMask20
	case sigBitsOneSDI:
		data &= bnrMask19
	default:
		data &= bnrMaskUpTo18
	}

	word := header(cfg.Label, sm, sdi, cfg.SigBits <= StdMaxSigBits) | data

	if cfg.DiscreteBits > 0 {
		d, err := packField(discrete, discreteShift, uint(cfg.DiscreteBits))
		if err != nil {
			return 0, false, opError("encode bnr", cfg.Label, ErrInvalidConfig, err.Error())
		}
		word |= d
	}

	return word, clipped, nil
}

// bnrRaw scales eng to counts and saturates it to the sig-bit two's
// complement range [-2^sig, 2^sig-1]. The result is not sign extended past
// the sign bit when clipped negative.
func bnrRaw(sig uint, resolution, eng float64) (uint32, bool) {
	var scaled float64
	if resolution != 0 {
		scaled = eng / resolution
	}
	raw := uint32(roundHalfAwayInt32(scaled))

	overflow := ^uint32(0) << sig
	if raw&(1<<31) != 0 {
		// Negative: the sign bit and everything above must be ones.
		if raw&overflow != overflow {
			return 1 << sig, true
		}
		return raw, false
	}
	if raw&overflow != 0 {
		return ^uint32(0) >> (32 - sig), true
	}
	return raw, false
}
