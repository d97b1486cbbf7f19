// Package engine implements the dilution calculators: "top" (second-round water),
// "bottom" (first water from distillate) and "variable" (arbitrary target proof).
//
// Each calculator is a pure function of its request and a loaded proof table. The
// numbers follow the spreadsheet formula chain exactly, with no rounding between
// steps; display rounding belongs to the formatter package.
package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/prooftable"
)

// Spreadsheet constants
const (
	// ReferenceFactor is the conversion factor every dilution is measured against
	ReferenceFactor = 0.10093
	// WaterPoundsPerGallon converts the raw water factor to gallons
	WaterPoundsPerGallon = 8.33
	// NewWeightPoundsPerGallon converts water-to-add back to weight
	NewWeightPoundsPerGallon = 8.34
	// HundredthsStep is the water added per hundredth of proof, before scaling
	HundredthsStep = 0.01
	// HundredthsScale scales the hundredths adjustment
	HundredthsScale = 16.0
)

// TopRequest is a second-round water calculation
type TopRequest struct {
	Weight float64
	Proof  string // exactly three decimal places
}

// BottomRequest is a first-water calculation from distillate
type BottomRequest struct {
	DistWeight float64
	DistProof  string // exactly one decimal place
}

// VariableRequest is a calculation against an arbitrary target proof
type VariableRequest struct {
	Weight       float64
	CurrentProof string // exactly three decimal places
	TargetProof  string
}

// Result holds the unrounded outputs of one calculation
type Result struct {
	Mode             models.Mode
	ProofKey         string
	ConversionFactor float64
	WaterToAdd       float64

	// NewWeight is nil for bottom calculations
	NewWeight *float64

	// Target fields are only set for variable calculations
	TargetProofKey         string
	TargetConversionFactor *float64
}

// rawWaterFactor is ((weight * factor) / 0.10093) - weight
func rawWaterFactor(weight, factor float64) float64 {
	return ((weight * factor) / ReferenceFactor) - weight
}

// ComputeTop runs the top calculation against table
func ComputeTop(req TopRequest, table *prooftable.Table) (*Result, error) {
	if err := checkWeight(req.Weight); err != nil {
		return nil, err
	}
	proof, err := ValidateProof(req.Proof, TopProofPlaces)
	if err != nil {
		return nil, err
	}

	key, factor, water, err := adjustedWater(req.Weight, proof, table)
	if err != nil {
		return nil, err
	}
	newWeight := req.Weight + (water * NewWeightPoundsPerGallon)

	return &Result{
		Mode:             models.ModeTop,
		ProofKey:         key.String(),
		ConversionFactor: factor,
		WaterToAdd:       water,
		NewWeight:        &newWeight,
	}, nil
}

// ComputeBottom runs the bottom calculation against table. It never sets NewWeight.
func ComputeBottom(req BottomRequest, table *prooftable.Table) (*Result, error) {
	if err := checkWeight(req.DistWeight); err != nil {
		return nil, err
	}
	proof, err := ValidateProof(req.DistProof, BottomProofPlaces)
	if err != nil {
		return nil, err
	}

	key, factor, err := lookup(proof, table)
	if err != nil {
		return nil, err
	}
	intermediate := rawWaterFactor(req.DistWeight, factor)

	return &Result{
		Mode:             models.ModeBottom,
		ProofKey:         key.String(),
		ConversionFactor: factor,
		WaterToAdd:       intermediate / WaterPoundsPerGallon,
	}, nil
}

// ComputeVariable runs the variable calculation against table. The current and
// target factors come from two independent lookups.
func ComputeVariable(req VariableRequest, table *prooftable.Table) (*Result, error) {
	if err := checkWeight(req.Weight); err != nil {
		return nil, err
	}
	current, err := ValidateProof(req.CurrentProof, TopProofPlaces)
	if err != nil {
		return nil, err
	}
	targetKey, err := ParseTargetProof(req.TargetProof)
	if err != nil {
		return nil, err
	}

	key, factor, water, err := adjustedWater(req.Weight, current, table)
	if err != nil {
		return nil, err
	}
	targetFactor, err := table.Lookup(targetKey)
	if err != nil {
		return nil, fmt.Errorf("target proof: %w", err)
	}
	newWeight := req.Weight + (water * NewWeightPoundsPerGallon)

	return &Result{
		Mode:                   models.ModeVariable,
		ProofKey:               key.String(),
		ConversionFactor:       factor,
		WaterToAdd:             water,
		NewWeight:              &newWeight,
		TargetProofKey:         targetKey.String(),
		TargetConversionFactor: &targetFactor,
	}, nil
}

// adjustedWater is the shared top/variable chain: lookup, raw water factor,
// then the hundredths adjustment taken from the proof's trailing digits
func adjustedWater(weight float64, proof ValidatedProof, table *prooftable.Table) (prooftable.Key, float64, float64, error) {
	key, factor, err := lookup(proof, table)
	if err != nil {
		return 0, 0, 0, err
	}
	hundredths, err := proof.Hundredths()
	if err != nil {
		return 0, 0, 0, err
	}

	intermediate := rawWaterFactor(weight, factor)
	water := (intermediate / WaterPoundsPerGallon) + (float64(hundredths) * HundredthsStep * HundredthsScale)
	return key, factor, water, nil
}

func lookup(proof ValidatedProof, table *prooftable.Table) (prooftable.Key, float64, error) {
	if table == nil {
		return 0, 0, ErrTableNotReady
	}
	key, err := proof.Key()
	if err != nil {
		return 0, 0, err
	}
	factor, err := table.Lookup(key)
	if err != nil {
		return 0, 0, err
	}
	return key, factor, nil
}

// Engine runs calculations against a table that is installed once it has loaded.
// Until then every call fails with ErrTableNotReady.
type Engine struct {
	table atomic.Pointer[prooftable.Table]
}

// New creates an engine. table may be nil and installed later with SetTable.
func New(table *prooftable.Table) *Engine {
	e := &Engine{}
	if table != nil {
		e.table.Store(table)
	}
	return e
}

// SetTable installs the loaded table
func (e *Engine) SetTable(table *prooftable.Table) {
	e.table.Store(table)
}

// Ready reports whether a table is installed
func (e *Engine) Ready() bool {
	return e.table.Load() != nil
}

// Table returns the installed table, or ErrTableNotReady
func (e *Engine) Table() (*prooftable.Table, error) {
	t := e.table.Load()
	if t == nil {
		return nil, ErrTableNotReady
	}
	return t, nil
}

// Top runs ComputeTop on the installed table
func (e *Engine) Top(req TopRequest) (*Result, error) {
	t, err := e.Table()
	if err != nil {
		return nil, err
	}
	return ComputeTop(req, t)
}

// Bottom runs ComputeBottom on the installed table
func (e *Engine) Bottom(req BottomRequest) (*Result, error) {
	t, err := e.Table()
	if err != nil {
		return nil, err
	}
	return ComputeBottom(req, t)
}

// Variable runs ComputeVariable on the installed table
func (e *Engine) Variable(req VariableRequest) (*Result, error) {
	t, err := e.Table()
	if err != nil {
		return nil, err
	}
	return ComputeVariable(req, t)
}
