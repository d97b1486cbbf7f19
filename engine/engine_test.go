package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/prooftable"
)

func testTable(t *testing.T) *prooftable.Table {
	t.Helper()
	table, err := prooftable.New(map[string]float64{
		"80":    0.10093,
		"80.1":  0.10105,
		"80.6":  0.62345,
		"90":    0.11493,
		"90.5":  0.11566,
		"177.7": 0.24716,
	})
	require.NoError(t, err)
	return table
}

func TestComputeTopFormulaChain(t *testing.T) {
	table := testTable(t)

	result, err := ComputeTop(TopRequest{Weight: 100, Proof: "80.620"}, table)
	require.NoError(t, err)

	// variables, not constants, so the expected chain runs in float64 like the engine
	weight, factor := 100.0, 0.62345
	intermediate := ((weight * factor) / 0.10093) - weight
	hundredths := 20
	water := intermediate/8.33 + float64(hundredths)*0.01*16.0
	newWeight := weight + water*8.34

	assert.Equal(t, models.ModeTop, result.Mode)
	assert.Equal(t, "80.6", result.ProofKey)
	assert.Equal(t, 0.62345, result.ConversionFactor)
	assert.Equal(t, water, result.WaterToAdd)
	require.NotNil(t, result.NewWeight)
	assert.Equal(t, newWeight, *result.NewWeight)
	assert.Nil(t, result.TargetConversionFactor)
}

func TestComputeTopUsesLiteralTrailingDigits(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		proof      string
		hundredths int
	}{
		{"80.600", 0},
		{"80.605", 5},
		{"80.699", 99},
		{"80.197", 97},
	}

	for _, tt := range tests {
		t.Run(tt.proof, func(t *testing.T) {
			result, err := ComputeTop(TopRequest{Weight: 250, Proof: tt.proof}, table)
			require.NoError(t, err)

			factor, err := table.LookupString(result.ProofKey)
			require.NoError(t, err)
			weight := 250.0
			want := (((weight*factor)/0.10093)-weight)/8.33 + float64(tt.hundredths)*0.01*16.0
			assert.Equal(t, want, result.WaterToAdd)
		})
	}
}

func TestComputeTopTruncatesNotRounds(t *testing.T) {
	result, err := ComputeTop(TopRequest{Weight: 100, Proof: "80.197"}, testTable(t))
	require.NoError(t, err)
	assert.Equal(t, "80.1", result.ProofKey)
	assert.Equal(t, 0.10105, result.ConversionFactor)
}

func TestComputeBottom(t *testing.T) {
	result, err := ComputeBottom(BottomRequest{DistWeight: 512.5, DistProof: "90.5"}, testTable(t))
	require.NoError(t, err)

	weight, factor := 512.5, 0.11566
	want := (((weight * factor) / 0.10093) - weight) / 8.33
	assert.Equal(t, models.ModeBottom, result.Mode)
	assert.Equal(t, "90.5", result.ProofKey)
	assert.Equal(t, 0.11566, result.ConversionFactor)
	assert.Equal(t, want, result.WaterToAdd)
	assert.Nil(t, result.NewWeight, "bottom never sets a new weight")
}

func TestComputeVariable(t *testing.T) {
	table := testTable(t)

	result, err := ComputeVariable(VariableRequest{Weight: 1000, CurrentProof: "177.726", TargetProof: "90.0"}, table)
	require.NoError(t, err)

	weight, factor := 1000.0, 0.24716
	hundredths := 26
	water := (((weight*factor)/0.10093)-weight)/8.33 + float64(hundredths)*0.01*16.0
	assert.Equal(t, models.ModeVariable, result.Mode)
	assert.Equal(t, "177.7", result.ProofKey)
	assert.Equal(t, 0.24716, result.ConversionFactor)
	assert.Equal(t, "90", result.TargetProofKey)
	require.NotNil(t, result.TargetConversionFactor)
	assert.Equal(t, 0.11493, *result.TargetConversionFactor)
	assert.NotEqual(t, result.ConversionFactor, *result.TargetConversionFactor)
	assert.Equal(t, water, result.WaterToAdd)
	require.NotNil(t, result.NewWeight)
	assert.Equal(t, weight+water*8.34, *result.NewWeight)
}

func TestComputeErrorsAreDistinct(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name string
		run  func() (*Result, error)
		want error
	}{
		{"top two places", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "80.62"}, table) }, ErrInvalidFormat},
		{"top four places", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "80.6200"}, table) }, ErrInvalidFormat},
		{"top no point", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "80"}, table) }, ErrInvalidFormat},
		{"top letters", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "abc.def"}, table) }, ErrNotANumber},
		{"top missing", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "999.900"}, table) }, ErrProofNotFound},
		{"top zero weight", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 0, Proof: "80.620"}, table) }, ErrNonPositiveWeight},
		{"bottom three places", func() (*Result, error) { return ComputeBottom(BottomRequest{DistWeight: 10, DistProof: "90.500"}, table) }, ErrInvalidFormat},
		{"bottom missing", func() (*Result, error) { return ComputeBottom(BottomRequest{DistWeight: 10, DistProof: "999.9"}, table) }, ErrProofNotFound},
		{"bottom negative weight", func() (*Result, error) { return ComputeBottom(BottomRequest{DistWeight: -1, DistProof: "90.5"}, table) }, ErrNonPositiveWeight},
		{"variable bad target", func() (*Result, error) {
			return ComputeVariable(VariableRequest{Weight: 10, CurrentProof: "177.726", TargetProof: "ninety"}, table)
		}, ErrNotANumber},
		{"variable missing target", func() (*Result, error) {
			return ComputeVariable(VariableRequest{Weight: 10, CurrentProof: "177.726", TargetProof: "42.0"}, table)
		}, ErrProofNotFound},
		{"variable bad current", func() (*Result, error) {
			return ComputeVariable(VariableRequest{Weight: 10, CurrentProof: "177.7", TargetProof: "90.0"}, table)
		}, ErrInvalidFormat},
		{"nil table", func() (*Result, error) { return ComputeTop(TopRequest{Weight: 100, Proof: "80.620"}, nil) }, ErrTableNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.run()
			assert.Nil(t, result, "no partial result on error")
			require.ErrorIs(t, err, tt.want)

			for _, other := range []error{ErrInvalidFormat, ErrNotANumber, ErrProofNotFound, ErrNonPositiveWeight, ErrTableNotReady} {
				if other != tt.want {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestEngineNotReadyUntilTableInstalled(t *testing.T) {
	e := New(nil)
	assert.False(t, e.Ready())

	_, err := e.Top(TopRequest{Weight: 100, Proof: "80.620"})
	assert.ErrorIs(t, err, ErrTableNotReady)
	assert.NotErrorIs(t, err, ErrProofNotFound)
	_, err = e.Bottom(BottomRequest{DistWeight: 100, DistProof: "90.5"})
	assert.ErrorIs(t, err, ErrTableNotReady)
	_, err = e.Variable(VariableRequest{Weight: 100, CurrentProof: "177.726", TargetProof: "90"})
	assert.ErrorIs(t, err, ErrTableNotReady)

	e.SetTable(testTable(t))
	assert.True(t, e.Ready())

	result, err := e.Top(TopRequest{Weight: 100, Proof: "80.620"})
	require.NoError(t, err)
	assert.Equal(t, "80.6", result.ProofKey)
}

func TestEngineConcurrentUse(t *testing.T) {
	e := New(nil)
	table := testTable(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := e.Bottom(BottomRequest{DistWeight: 100, DistProof: "90.5"})
				if err != nil {
					assert.ErrorIs(t, err, ErrTableNotReady)
				}
			}
		}()
	}
	e.SetTable(table)
	wg.Wait()

	_, err := e.Bottom(BottomRequest{DistWeight: 100, DistProof: "90.5"})
	assert.NoError(t, err)
}

func TestKind(t *testing.T) {
	_, err := ComputeTop(TopRequest{Weight: 100, Proof: "999.900"}, testTable(t))
	assert.Equal(t, "proof_not_found", Kind(err))
	assert.Equal(t, "table_not_ready", Kind(ErrTableNotReady))
	assert.Equal(t, "", Kind(nil))
}
