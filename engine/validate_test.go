package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDecimalPlaces(t *testing.T) {
	tests := []struct {
		raw    string
		places int
		want   bool
	}{
		{"80.620", 3, true},
		{"  80.620\t", 3, true},
		{"８０．６２０", 3, true}, // full-width digits and point
		{"80.62", 3, false},
		{"80.6200", 3, false},
		{"80", 3, false},
		{"80.6.20", 3, false},
		{"abc.def", 3, true}, // shape only; the numeric stage rejects it
		{"90.5", 1, true},
		{"90.50", 1, false},
		{"90.", 1, false},
		{".5", 1, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateDecimalPlaces(tt.raw, tt.places), "%q with %d places", tt.raw, tt.places)
	}
}

func TestValidatedProofStages(t *testing.T) {
	_, err := ValidateProof("80.62", TopProofPlaces)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	p, err := ValidateProof("８０．６２０", TopProofPlaces)
	require.NoError(t, err)
	assert.Equal(t, "80.620", p.String())

	v, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, 80.62, v)

	key, err := p.Key()
	require.NoError(t, err)
	assert.Equal(t, "80.6", key.String())

	h, err := p.Hundredths()
	require.NoError(t, err)
	assert.Equal(t, 20, h)

	for _, raw := range []string{"abc.def", "1e2.000", "--1.000", "0x5.8p0"} {
		p, err := ValidateProof(raw, TopProofPlaces)
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidFormat, raw)
			continue
		}
		_, err = p.Parse()
		assert.ErrorIs(t, err, ErrNotANumber, raw)
	}
}

func TestHundredthsOneTrailingDigit(t *testing.T) {
	p, err := ValidateProof("90.5", BottomProofPlaces)
	require.NoError(t, err)

	h, err := p.Hundredths()
	require.NoError(t, err)
	assert.Equal(t, 5, h)
}

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight(" 100.5 ")
	require.NoError(t, err)
	assert.Equal(t, 100.5, w)

	_, err = ParseWeight("heavy")
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = ParseWeight("NaN")
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = ParseWeight("Inf")
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = ParseWeight("0")
	assert.ErrorIs(t, err, ErrNonPositiveWeight)

	_, err = ParseWeight("-3")
	assert.ErrorIs(t, err, ErrNonPositiveWeight)
}

func TestParseTargetProof(t *testing.T) {
	key, err := ParseTargetProof("90.0")
	require.NoError(t, err)
	assert.Equal(t, "90", key.String())

	key, err = ParseTargetProof("90")
	require.NoError(t, err)
	assert.Equal(t, "90", key.String())

	key, err = ParseTargetProof("90.59")
	require.NoError(t, err)
	assert.Equal(t, "90.5", key.String())

	_, err = ParseTargetProof("9e1")
	assert.ErrorIs(t, err, ErrNotANumber)
}
