package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis(0)
	require.NoError(t, err)
	assert.Equal(t, AxisVertical, a)

	a, err = ParseAxis(1)
	require.NoError(t, err)
	assert.Equal(t, AxisHorizontal, a)

	_, err = ParseAxis(2)
	assert.ErrorIs(t, err, ErrInvalidAxis)
	assert.Contains(t, err.Error(), "2")
}

func TestParseAxisSource(t *testing.T) {
	names := map[uint32]string{0: "wheel", 1: "finger", 2: "continuous", 3: "wheel tilt"}
	for raw, name := range names {
		s, err := ParseAxisSource(raw)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseAxisSource(4)
	assert.ErrorIs(t, err, ErrInvalidAxisSource)
}

func TestParseButtonState(t *testing.T) {
	s, err := ParseButtonState(0)
	require.NoError(t, err)
	assert.Equal(t, "released", s.String())

	s, err = ParseButtonState(1)
	require.NoError(t, err)
	assert.Equal(t, "pressed", s.String())

	_, err = ParseButtonState(2)
	assert.ErrorIs(t, err, ErrInvalidButtonState)
}

func TestFixed(t *testing.T) {
	tests := []struct {
		in   float64
		want Fixed
	}{
		{0, 0},
		{1, 256},
		{-1, -256},
		{0.5, 128},
		{12.25, 3136},
		{-3.25, -832},
	}
	for _, tt := range tests {
		got := FixedFromFloat(tt.in)
		assert.Equal(t, tt.want, got, "FixedFromFloat(%v)", tt.in)
		assert.Equal(t, tt.in, got.Float())
	}

	assert.Equal(t, Fixed(100*256), FixedFromInt(100))
}

func TestMask(t *testing.T) {
	m := MaskEnter | MaskAxisStop
	assert.True(t, m.Has(MaskEnter))
	assert.False(t, m.Has(MaskEnter|MaskMotion))
	assert.True(t, m.Any(MaskAxisAny))
	assert.False(t, Mask(0).Any(MaskAxisAny))
}
