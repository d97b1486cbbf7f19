package formatter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/models"
)

func TestRound(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   string
	}{
		{0.62345, 5, "0.62345"},
		{0.1, 5, "0.10000"},
		{1.0005, 3, "1.001"}, // binary value is below the half; the shown decimal is not
		{2.675, 2, "2.68"},
		{0.004, 2, "0.00"},
		{0.996, 2, "1.00"},
		{-2.5, 0, "-3"},
		{-0.0004, 3, "0.000"},
		{1234.5, 0, "1235"},
		{99.9995, 3, "100.000"},
		{42, 3, "42.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.value, tt.places), "Round(%v, %d)", tt.value, tt.places)
	}
}

func TestFormatKinds(t *testing.T) {
	assert.Equal(t, "0.10093", Format(0.10093, KindConversionFactor))
	assert.Equal(t, "0.24700", Format(0.247, KindConversionFactor))
	assert.Equal(t, "12.346", Format(12.3456, KindWaterVolume))
	assert.Equal(t, "1,235", Format(1234.5, KindWeight))
	assert.Equal(t, "1,234,568", Format(1234567.891, KindWeight))
	assert.Equal(t, "999", Format(999.49, KindWeight))
}

func TestFormatWaterPerMode(t *testing.T) {
	assert.Equal(t, 3, WaterPlaces(models.ModeTop))
	assert.Equal(t, 3, WaterPlaces(models.ModeVariable))
	assert.Equal(t, 2, WaterPlaces(models.ModeBottom))

	assert.Equal(t, "7.125", FormatWater(7.12549, models.ModeTop))
	assert.Equal(t, "7.13", FormatWater(7.12549, models.ModeBottom))
}

func TestRenderLeavesResultUntouched(t *testing.T) {
	newWeight := 1567.4321
	target := 0.11493
	result := &engine.Result{
		Mode:                   models.ModeVariable,
		ConversionFactor:       0.24716,
		WaterToAdd:             68.91234,
		NewWeight:              &newWeight,
		TargetConversionFactor: &target,
	}
	before := *result

	got := Render(result)
	want := Display{
		ConversionFactor:       "0.24716",
		TargetConversionFactor: "0.11493",
		WaterToAdd:             "68.912",
		NewWeight:              "1,567",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, before, *result)
	assert.Equal(t, 1567.4321, *result.NewWeight)
}

func TestRenderBottomHasNoWeight(t *testing.T) {
	got := Render(&engine.Result{Mode: models.ModeBottom, ConversionFactor: 0.11566, WaterToAdd: 17.8})
	assert.Equal(t, "", got.NewWeight)
	assert.Equal(t, "17.80", got.WaterToAdd)
}

func TestRenderEntry(t *testing.T) {
	newWeight := 200.0
	entry := &models.LogEntry{
		Mode:    models.ModeTop,
		Outputs: models.LogOutputs{ConversionFactor: 0.1, WaterToAdd: 3.2, NewWeight: &newWeight},
	}
	got := RenderEntry(entry)
	assert.Equal(t, Display{ConversionFactor: "0.10000", WaterToAdd: "3.200", NewWeight: "200"}, got)
}
