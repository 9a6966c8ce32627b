// internal/arinc/bcd_test.go
package arinc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bcdConfig(digits uint8, res float64) *LabelConfig {
	return &LabelConfig{
		Label:      MustFormatLabel(235),
		Kind:       KindBCD,
		SigDigits:  digits,
		Resolution: res,
	}
}

func TestEncodeBCD_KnownWord(t *testing.T) {
	cfg := bcdConfig(5, 0.001)

	word, clipped, err := EncodeBCD(cfg, 29.921, SMBCDPlus, 0, 0, StdBCDBitsMSC)
	require.NoError(t, err)
	assert.False(t, clipped)
	assert.Equal(t, uint32(0x0A6484B9), word)

	d, err := DecodeBCD(cfg, word)
	require.NoError(t, err)
	assert.InDelta(t, 29.921, d.EngFloat, 0.0005)
	assert.Equal(t, int32(30), d.EngInt)
}

func TestBCD_RoundTrip(t *testing.T) {
	for digits := uint8(1); digits <= MaxSigDigits; digits++ {
		for _, res := range []float64{1, 0.1, 0.001} {
			cfg := bcdConfig(digits, res)

			maxCounts := 8*math.Pow(10, float64(digits-1)) - 1
			for _, counts := range []float64{0, 1, math.Floor(maxCounts / 2), maxCounts} {
				v := counts * res

				word, clipped, err := EncodeBCD(cfg, v, SMBCDPlus, 0, 0, StdBCDBitsMSC)
				require.NoError(t, err)
				assert.False(t, clipped, "digits=%d res=%g v=%g", digits, res, v)

				d, err := DecodeBCD(cfg, word)
				require.NoError(t, err)
				assert.InDelta(t, v, d.EngFloat, res/2, "digits=%d res=%g", digits, res)
			}
		}
	}
}

func TestBCD_DiscretesBelowDigits(t *testing.T) {
	cfg := bcdConfig(4, 1)
	cfg.DiscreteBits = 4

	word, clipped, err := EncodeBCD(cfg, 1234, SMBCDMinus, 2, 0x5, StdBCDBitsMSC)
	require.NoError(t, err)
	assert.False(t, clipped)
	assert.Equal(t, uint32(0x1234<<14), word&0x1FFFC000)

	d, err := DecodeBCD(cfg, word)
	require.NoError(t, err)
	assert.Equal(t, 1234.0, d.EngFloat)
	assert.Equal(t, uint32(0x5), d.Discrete)
	assert.Equal(t, SMBCDMinus, d.SM)
	assert.Equal(t, SDI(2), d.SDI)
}

func TestEncodeBCD_Clipping(t *testing.T) {
	tests := []struct {
		name   string
		digits uint8
		value  float64
		want   float64
	}{
		{"msc overflow five digits", 5, 99999, 79999},
		{"msc overflow three digits", 3, 850, 799},
		{"more digits than budget", 2, 123, 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bcdConfig(tt.digits, 1)

			word, clipped, err := EncodeBCD(cfg, tt.value, SMBCDPlus, 0, 0, StdBCDBitsMSC)
			require.NoError(t, err)
			assert.True(t, clipped)

			d, err := DecodeBCD(cfg, word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.EngFloat)
		})
	}
}

func TestEncodeBCD_RejectsNegative(t *testing.T) {
	_, _, err := EncodeBCD(bcdConfig(5, 1), -1, SMBCDMinus, 0, 0, StdBCDBitsMSC)
	assert.ErrorIs(t, err, ErrInvalidMessageData)
}

func TestEncodeBCD_RejectsMSCWidth(t *testing.T) {
	for _, msc := range []int{0, 5} {
		_, _, err := EncodeBCD(bcdConfig(5, 1), 1, SMBCDPlus, 0, 0, msc)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestDecodeBCD_InvalidNibble(t *testing.T) {
	cfg := bcdConfig(5, 1)

	_, err := DecodeBCD(cfg, 0xA<<10)
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeBCD(cfg, 0xA0<<10)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestBCDToUint_DigitBudget(t *testing.T) {
	v, err := bcdToUint(0x1234, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234), v)

	_, err = bcdToUint(0x12345, 4)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestBCD_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		digits   uint8
		discrete uint8
	}{
		{"zero digits", 0, 0},
		{"six digits", 6, 0},
		{"discretes overlap digits", 5, 1},
		{"four digits too many discretes", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bcdConfig(tt.digits, 1)
			cfg.DiscreteBits = tt.discrete

			_, err := DecodeBCD(cfg, 0)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			_, _, err = EncodeBCD(cfg, 1, SMBCDPlus, 0, 0, StdBCDBitsMSC)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
