// internal/arinc/label.go
package arinc

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Label is an 8-bit label in wire bit-order.
// ARINC429 sends the label LSB-first relative to octal notation, so the
// packed octal byte is stored reversed and compared with plain equality.
type Label uint8

// MaxOctalLabel is the largest label in standard octal notation.
const MaxOctalLabel = 377

// FormatLabel converts a label written with octal digits (e.g. 204) into
// wire order. The hundreds digit must be 0-3 and the others 0-7.
func FormatLabel(octal uint16) (Label, error) {
	h := octal / 100
	t := (octal / 10) % 10
	o := octal % 10

	if octal > MaxOctalLabel || h > 3 || t > 7 || o > 7 {
		return 0, fmt.Errorf("%w: label %d is not a valid octal label", ErrInvalidArgument, octal)
	}

	packed := uint8(h<<6 | t<<3 | o)
	return Label(bits.Reverse8(packed)), nil
}

// MustFormatLabel is FormatLabel for compiled-in tables.
func MustFormatLabel(octal uint16) Label {
	l, err := FormatLabel(octal)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseLabel parses a label from config text such as "204" or "0204".
func ParseLabel(s string) (Label, error) {
	s = strings.TrimSpace(s)
	if len(s) > 1 {
		s = strings.TrimLeft(s, "0")
		if s == "" {
			s = "0"
		}
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: label %q: %v", ErrInvalidArgument, s, err)
	}
	return FormatLabel(uint16(n))
}

// LabelOf extracts the wire-order label of a word.
func LabelOf(word uint32) Label {
	return Label(word & labelMask)
}

// Octal returns the label in octal notation digits (inverse of FormatLabel).
func (l Label) Octal() uint16 {
	packed := bits.Reverse8(uint8(l))
	h := uint16(packed>>6) & 0x3
	t := uint16(packed>>3) & 0x7
	o := uint16(packed) & 0x7
	return h*100 + t*10 + o
}

func (l Label) String() string {
	return fmt.Sprintf("%03d", l.Octal())
}
