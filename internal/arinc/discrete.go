// internal/arinc/discrete.go
package arinc

// DecodeDiscrete extracts the discrete field of a discrete word.
//
// The field is read right-aligned at bit 10 while EncodeDiscrete writes it
// left-aligned at the top of the data region. The two agree only when
// DiscreteBits is 19. Both placements are kept as the bus equipment uses
// them until the intended wire format is confirmed.
func DecodeDiscrete(cfg *LabelConfig, word uint32) (Decoded, error) {
	if cfg == nil {
		return Decoded{}, ErrInvalidArgument
	}
	if err := cfg.validateDiscrete(); err != nil {
		return Decoded{}, err
	}

	bits, err := unpackField(word, discreteShift, uint(cfg.DiscreteBits))
	if err != nil {
		return Decoded{}, &Error{Op: "decode discrete", Label: cfg.Label, Err: ErrUnspecified}
	}

	return Decoded{
		Discrete: bits,
		SM:       StatusMatrixOf(word),
		SDI:      SDIOf(word),
	}, nil
}

// EncodeDiscrete assembles a discrete word with the field shifted fully
// left in the data region.
func EncodeDiscrete(cfg *LabelConfig, discrete uint32, sm StatusMatrix, sdi SDI) (uint32, error) {
	if cfg == nil {
		return 0, ErrInvalidArgument
	}
	if err := cfg.validateDiscrete(); err != nil {
		return 0, err
	}

	width := uint(cfg.DiscreteBits)
	data, err := packField(discrete, discreteMaxFieldShift-width+1, width)
	if err != nil {
		return 0, &Error{Op: "encode discrete", Label: cfg.Label, Err: ErrUnspecified}
	}

	return header(cfg.Label, sm, sdi, true) | data, nil
}

// Decode dispatches on the config kind.
func Decode(cfg *LabelConfig, word uint32) (Decoded, error) {
	if cfg == nil {
		return Decoded{}, ErrInvalidArgument
	}
	switch cfg.Kind {
	case KindBNR:
		return DecodeBNR(cfg, word)
	case KindBCD:
		return DecodeBCD(cfg, word)
	case KindDiscrete:
		return DecodeDiscrete(cfg, word)
	}
	return Decoded{}, &Error{Op: "decode", Label: cfg.Label, Err: ErrUnspecified}
}
