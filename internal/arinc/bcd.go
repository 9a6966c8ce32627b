// internal/arinc/bcd.go
package arinc

import (
	"fmt"
	"math"
)

// bcdShift right-aligns the configured digits of the data field.
func bcdShift(digits uint8) uint {
	return bcdFieldShift + bcdBitsPerDigit*(MaxSigDigits-uint(digits))
}

// DecodeBCD decodes a BCD word. The value is a magnitude; sign travels in
// the status matrix and is left to the consumer.
func DecodeBCD(cfg *LabelConfig, word uint32) (Decoded, error) {
	if cfg == nil {
		return Decoded{}, ErrInvalidArgument
	}
	if err := cfg.validateBCD(); err != nil {
		return Decoded{}, err
	}

	data := (word & bcdFieldMask) >> bcdShift(cfg.SigDigits)

	value, err := bcdToUint(data, uint(cfg.SigDigits))
	if err != nil {
		return Decoded{}, &Error{Op: "decode bcd", Label: cfg.Label, Err: err}
	}

	var d Decoded
	d.EngFloat = float64(value) * cfg.Resolution
	d.EngInt = roundHalfAwayInt32(d.EngFloat)

	if cfg.DiscreteBits > 0 {
		d.Discrete, err = unpackField(word, discreteShift, uint(cfg.DiscreteBits))
		if err != nil {
			return Decoded{}, opError("decode bcd", cfg.Label, ErrInvalidConfig, err.Error())
		}
	}

	d.SM = StatusMatrixOf(word)
	d.SDI = SDIOf(word)
	return d, nil
}

// bcdToUint consumes nibbles least significant first. Any nibble above 9,
// or bits left after the digit budget, is an invalid message.
func bcdToUint(data uint32, digits uint) (uint32, error) {
	var value uint32
	mult := uint32(1)

	for n := uint(0); data != 0 && n < digits; n++ {
		digit := data & 0xF
		if digit > bcdMaxDigit {
			return 0, fmt.Errorf("%w: bcd digit %d is 0x%X", ErrInvalidMessage, n, digit)
		}
		value += digit * mult
		mult *= 10
		data >>= bcdBitsPerDigit
	}

	if data != 0 {
		return 0, fmt.Errorf("%w: bcd data exceeds %d digits", ErrInvalidMessage, digits)
	}
	return value, nil
}

// EncodeBCD assembles a BCD word. numBitsMSC bounds the width of the most
// significant digit. Negative values are rejected: sign belongs in sm.
func EncodeBCD(cfg *LabelConfig, eng float64, sm StatusMatrix, sdi SDI, discrete uint32, numBitsMSC int) (uint32, bool, error) {
	if cfg == nil {
		return 0, false, ErrInvalidArgument
	}
	if err := cfg.validateBCD(); err != nil {
		return 0, false, err
	}
	if numBitsMSC < 1 || numBitsMSC > bcdBitsPerDigit {
		return 0, false, opError("encode bcd", cfg.Label, ErrInvalidArgument,
			fmt.Sprintf("msc width %d outside 1-%d", numBitsMSC, bcdBitsPerDigit))
	}
	if eng < 0 || math.IsNaN(eng) {
		return 0, false, opError("encode bcd", cfg.Label, ErrInvalidMessageData,
			fmt.Sprintf("value %g must be non-negative", eng))
	}

	digits, clipped := uintToBCD(bcdCounts(cfg.Resolution, eng), uint(cfg.SigDigits), uint(numBitsMSC))

	data := (digits << bcdShift(cfg.SigDigits)) & bcdFieldMask

	word := header(cfg.Label, sm, sdi, true) | data

	if cfg.DiscreteBits > 0 {
		d, err := packField(discrete, discreteShift, uint(cfg.DiscreteBits))
		if err != nil {
			return 0, false, opError("encode bcd", cfg.Label, ErrInvalidConfig, err.Error())
		}
		word |= d
	}

	return word, clipped, nil
}

// bcdCounts is floor(eng/resolution + 0.5) capped at MaxUint32.
func bcdCounts(resolution, eng float64) uint32 {
	if resolution == 0 {
		return 0
	}
	v := math.Floor(eng/resolution + 0.5)
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

// uintToBCD packs value into digits nibbles. On overflow it returns the
// largest representable value: nines below an all-ones MSC.
func uintToBCD(value uint32, digits, mscBits uint) (uint32, bool) {
	mscMax := fieldMask(mscBits)

	var out uint32
	n := uint(0)
	for value > 0 && n < digits {
		digit := value % 10
		if n == digits-1 && digit > mscMax {
			break
		}
		out |= digit << (bcdBitsPerDigit * n)
		value /= 10
		n++
	}

	if value == 0 {
		return out, false
	}

	out = 0
	for n = 0; n < digits; n++ {
		digit := uint32(bcdMaxDigit)
		if n == digits-1 {
			digit = mscMax
		}
		out |= digit << (bcdBitsPerDigit * n)
	}
	return out, true
}
