// internal/arinc/word.go
package arinc

import "fmt"

// Wire word layout (bit 0 = LSB):
//
//	31     parity (set by the driver on a corrupted word)
//	30-29  status matrix
//	28-10  data / discrete region (19 bits)
//	9-8    SDI, or extra BNR data bits for 19/20 significant bits
//	7-0    label, wire order
const (
	labelMask uint32 = 0xFF

	parityShift = 31

	smShift = 29
	smMask  = 0x3

	sdiShift = 8
	sdiMask  = 0x3

	// discreteShift is where BNR/BCD discretes start, and where the
	// discrete decoder reads from.
	discreteShift = 10

	// DataRegionBits is the width of the data/discrete region.
	DataRegionBits = 19
)

// BNR layout.
const (
	bnrMaxFieldShift = 28

	MaxSigBits     = 20
	StdMaxSigBits  = 18
	sigBitsOneSDI  = 19
	sigBitsBothSDI = 20

	bnrMaskUpTo18 uint32 = 0x1FFFFC00
	bnrMask19     uint32 = 0x1FFFFE00
	bnrMask20     uint32 = 0x1FFFFF00
)

// BCD layout.
const (
	MaxSigDigits    = 5
	bcdBitsPerDigit = 4
	bcdMaxDigit     = 9
	bcdFieldShift   = 10

	bcdFieldMask uint32 = 0x1FFFFC00

	// StdBCDBitsMSC is the width of the most significant character of a
	// standard five digit BCD word.
	StdBCDBitsMSC = 3
)

// Discrete layout.
const (
	MaxDiscreteBits       = 19
	discreteMaxFieldShift = 28
)

// Kind selects the wire format of a label.
type Kind uint8

const (
	KindBNR Kind = iota
	KindBCD
	KindDiscrete
)

func (k Kind) String() string {
	switch k {
	case KindBNR:
		return "bnr"
	case KindBCD:
		return "bcd"
	case KindDiscrete:
		return "discrete"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps config text to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bnr", "BNR":
		return KindBNR, nil
	case "bcd", "BCD":
		return KindBCD, nil
	case "discrete", "DISCRETE", "dis":
		return KindDiscrete, nil
	}
	return 0, fmt.Errorf("%w: unknown message kind %q", ErrInvalidArgument, s)
}

// StatusMatrix is the 2-bit sign/status matrix.
// The same code means different things per Kind.
type StatusMatrix uint8

// BNR status.
const (
	SMFailureWarning  StatusMatrix = 0
	SMNoComputedData  StatusMatrix = 1
	SMFunctionalTest  StatusMatrix = 2
	SMNormalOperation StatusMatrix = 3
)

// BCD sign/status.
const (
	SMBCDPlus           StatusMatrix = 0
	SMBCDNoComputedData StatusMatrix = 1
	SMBCDFunctionalTest StatusMatrix = 2
	SMBCDMinus          StatusMatrix = 3
)

// Discrete status.
const (
	SMDiscreteNormal         StatusMatrix = 0
	SMDiscreteNoComputedData StatusMatrix = 1
	SMDiscreteFunctionalTest StatusMatrix = 2
	SMDiscreteFailureWarning StatusMatrix = 3
)

// SDI is the 2-bit source/destination identifier.
type SDI uint8

// StatusMatrixOf extracts bits 30-29.
func StatusMatrixOf(word uint32) StatusMatrix {
	return StatusMatrix((word >> smShift) & smMask)
}

// SDIOf extracts bits 9-8.
func SDIOf(word uint32) SDI {
	return SDI((word >> sdiShift) & sdiMask)
}

// ParityError reports whether the driver flagged the word (bit 31).
func ParityError(word uint32) bool {
	return word>>parityShift&1 == 1
}

// fieldMask returns a right-aligned mask of width bits.
func fieldMask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return ^uint32(0) >> (32 - width)
}

// unpackField extracts width bits starting at offset.
func unpackField(word uint32, offset, width uint) (uint32, error) {
	if width == 0 || offset+width > 32 {
		return 0, fmt.Errorf("%w: field offset=%d width=%d", ErrInvalidArgument, offset, width)
	}
	return (word >> offset) & fieldMask(width), nil
}

// packField places the low width bits of v at offset. Bits of v beyond
// width are dropped.
func packField(v uint32, offset, width uint) (uint32, error) {
	if width == 0 || offset+width > 32 {
		return 0, fmt.Errorf("%w: field offset=%d width=%d", ErrInvalidArgument, offset, width)
	}
	return (v & fieldMask(width)) << offset, nil
}

// header composes label, SDI and SM.
func header(label Label, sm StatusMatrix, sdi SDI, withSDI bool) uint32 {
	w := uint32(label)
	if withSDI {
		w |= (uint32(sdi) & sdiMask) << sdiShift
	}
	w |= (uint32(sm) & smMask) << smShift
	return w
}
