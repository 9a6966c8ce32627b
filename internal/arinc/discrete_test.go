// internal/arinc/discrete_test.go
package arinc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discreteConfig(width uint8) *LabelConfig {
	return &LabelConfig{
		Label:        MustFormatLabel(270),
		Kind:         KindDiscrete,
		DiscreteBits: width,
	}
}

func TestDiscrete_FullWidthRoundTrip(t *testing.T) {
	cfg := discreteConfig(19)

	word, err := EncodeDiscrete(cfg, 0x5A5A5, SMDiscreteNormal, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x5A5A5<<10|1<<8|0x1D), word)

	d, err := DecodeDiscrete(cfg, word)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x5A5A5), d.Discrete)
	assert.Equal(t, SDI(1), d.SDI)
	assert.Zero(t, d.EngFloat)
	assert.Zero(t, d.EngInt)
}

// Encoding left-aligns the field while decoding reads it at bit 10; the
// two only agree for a 19-bit field.
func TestDiscrete_EncodeDecodeAlignmentDiffers(t *testing.T) {
	cfg := discreteConfig(4)

	word, err := EncodeDiscrete(cfg, 0xB, SMDiscreteNormal, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xB<<25), word&0x1FFFFC00, "encoded at the top of the data region")

	d, err := DecodeDiscrete(cfg, word)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d.Discrete, "decoder reads bits 10-13")

	d, err = DecodeDiscrete(cfg, 0xB<<10|uint32(cfg.Label))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xB), d.Discrete)
}

func TestDiscrete_MasksToWidth(t *testing.T) {
	cfg := discreteConfig(2)

	word, err := EncodeDiscrete(cfg, 0xFF, SMDiscreteFailureWarning, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3<<27), word&0x1FFFFC00)
	assert.Equal(t, SMDiscreteFailureWarning, StatusMatrixOf(word))
}

func TestDiscrete_InvalidConfig(t *testing.T) {
	for _, width := range []uint8{0, 20} {
		cfg := discreteConfig(width)

		_, err := DecodeDiscrete(cfg, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)

		_, err = EncodeDiscrete(cfg, 0, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestDecode_Dispatch(t *testing.T) {
	word, err := EncodeDiscrete(discreteConfig(19), 7, SMDiscreteNormal, 0)
	require.NoError(t, err)

	d, err := Decode(discreteConfig(19), word)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), d.Discrete)

	bad := &LabelConfig{Kind: Kind(9)}
	_, err = Decode(bad, 0)
	assert.ErrorIs(t, err, ErrUnspecified)

	_, err = Decode(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTxRequest_Encode(t *testing.T) {
	req := TxRequest{
		Config: bnrConfig(17, 1),
		SM:     SMNormalOperation,
		Value:  1000,
	}
	word, clipped, err := req.Encode()
	require.NoError(t, err)
	assert.False(t, clipped)
	assert.Equal(t, uint32(0x601F40C1), word)

	req = TxRequest{Config: bcdConfig(5, 1), Value: 99999}
	_, clipped, err = req.Encode()
	require.NoError(t, err)
	assert.True(t, clipped)

	req = TxRequest{Config: discreteConfig(19), Discrete: 1}
	word, _, err = req.Encode()
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<10), word&0x1FFFFC00)

	_, _, err = TxRequest{}.Encode()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClassifyBNR(t *testing.T) {
	assert.Equal(t, SMNormalOperation, ClassifyBNR(0, -10, 10))
	assert.Equal(t, SMNormalOperation, ClassifyBNR(10, -10, 10))
	assert.Equal(t, SMFailureWarning, ClassifyBNR(10.01, -10, 10))
	assert.Equal(t, SMFailureWarning, ClassifyBNR(-11, -10, 10))
}

func TestLabelConfig_Validate(t *testing.T) {
	assert.NoError(t, bnrConfig(18, 1).Validate())
	assert.NoError(t, bcdConfig(4, 1).Validate())
	assert.NoError(t, discreteConfig(10).Validate())

	cfg := bnrConfig(12, 1)
	cfg.MinIntervalMS, cfg.MaxIntervalMS = 50, 20
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = bnrConfig(12, 1)
	cfg.DiscreteBits = 20
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	var nilCfg *LabelConfig
	assert.ErrorIs(t, nilCfg.Validate(), ErrInvalidArgument)
}

func TestLabelConfig_InBounds(t *testing.T) {
	cfg := bnrConfig(12, 1)
	assert.True(t, cfg.InBounds(1e9), "no bounds configured")

	cfg.MinValid, cfg.MaxValid = -180, 180
	assert.True(t, cfg.InBounds(179.9))
	assert.False(t, cfg.InBounds(180.1))
}

func TestFieldHelpers(t *testing.T) {
	_, err := unpackField(0, 30, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = packField(0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	v, err := packField(0xFF, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x300), v)

	assert.True(t, ParityError(0x80000000))
	assert.False(t, ParityError(0x7FFFFFFF))
}
