// internal/arinc/config.go
package arinc

import "fmt"

// LabelConfig describes one received or transmitted label. It is defined
// once at startup and never mutated.
type LabelConfig struct {
	Label Label
	Kind  Kind

	// SigBits is the BNR field width without the sign bit (1-20).
	SigBits uint8

	// SigDigits is the BCD digit count (1-5).
	SigDigits uint8

	// Resolution is engineering units per LSB. Zero only for labels that
	// carry no continuous value.
	Resolution float64

	MinValid float64
	MaxValid float64

	// DiscreteBits is the discrete field width (0-19). 0 means unused.
	DiscreteBits uint8

	MinIntervalMS uint32
	MaxIntervalMS uint32
}

// Validate checks the structural invariants for the config's kind.
func (c *LabelConfig) Validate() error {
	if c == nil {
		return ErrInvalidArgument
	}

	if c.DiscreteBits > MaxDiscreteBits {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("discrete_bits %d exceeds %d", c.DiscreteBits, MaxDiscreteBits))
	}
	if c.MaxIntervalMS < c.MinIntervalMS {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("max_interval_ms %d below min_interval_ms %d", c.MaxIntervalMS, c.MinIntervalMS))
	}

	switch c.Kind {
	case KindBNR:
		return c.validateBNR()
	case KindBCD:
		return c.validateBCD()
	case KindDiscrete:
		return c.validateDiscrete()
	}
	return opError("validate", c.Label, ErrInvalidConfig, "unknown kind "+c.Kind.String())
}

func (c *LabelConfig) validateBNR() error {
	if c.SigBits < 1 || c.SigBits > MaxSigBits {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("sig_bits %d outside 1-%d", c.SigBits, MaxSigBits))
	}
	return nil
}

// validateBCD also enforces that the digit field and the discrete field do
// not overlap inside the 19-bit data region.
func (c *LabelConfig) validateBCD() error {
	if c.SigDigits < 1 || c.SigDigits > MaxSigDigits {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("sig_digits %d outside 1-%d", c.SigDigits, MaxSigDigits))
	}
	if int(c.SigDigits)*bcdBitsPerDigit-1+int(c.DiscreteBits) > DataRegionBits {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("%d digits and %d discrete bits overlap", c.SigDigits, c.DiscreteBits))
	}
	return nil
}

func (c *LabelConfig) validateDiscrete() error {
	if c.DiscreteBits < 1 || c.DiscreteBits > MaxDiscreteBits {
		return opError("validate", c.Label, ErrInvalidConfig,
			fmt.Sprintf("discrete_bits %d outside 1-%d", c.DiscreteBits, MaxDiscreteBits))
	}
	return nil
}

// HasBounds reports whether a valid range was configured.
func (c *LabelConfig) HasBounds() bool {
	return c.MinValid != 0 || c.MaxValid != 0
}

// InBounds reports whether v lies inside [MinValid, MaxValid]. Labels
// without configured bounds accept every value.
func (c *LabelConfig) InBounds(v float64) bool {
	if !c.HasBounds() {
		return true
	}
	return ClassifyBNR(v, c.MinValid, c.MaxValid) == SMNormalOperation
}
