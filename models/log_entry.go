package models

import (
	"fmt"
	"time"
)

// Mode identifies which calculator produced a result
type Mode string

const (
	ModeTop      Mode = "top"
	ModeBottom   Mode = "bottom"
	ModeVariable Mode = "variable"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTop, ModeBottom, ModeVariable:
		return m, nil
	}
	return "", fmt.Errorf("unknown calculation mode %q", s)
}

// LogEntry is one recorded calculation. Entries are written once and never updated.
type LogEntry struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Mode       Mode       `json:"mode"`
	OperatorID string     `json:"operatorId,omitempty"`
	Inputs     LogInputs  `json:"inputs"`
	Outputs    LogOutputs `json:"outputs"`
}

// LogInputs are the raw strings the operator entered; only the fields of the
// entry's mode are set
type LogInputs struct {
	Weight       string `json:"weight,omitempty"`
	Proof        string `json:"proof,omitempty"`
	DistWeight   string `json:"distWeight,omitempty"`
	DistProof    string `json:"distProof,omitempty"`
	CurrentProof string `json:"currentProof,omitempty"`
	TargetProof  string `json:"targetProof,omitempty"`
}

// LogOutputs are the unrounded numeric results
type LogOutputs struct {
	ConversionFactor       float64  `json:"conversionFactor"`
	TargetConversionFactor *float64 `json:"targetConversionFactor,omitempty"`
	WaterToAdd             float64  `json:"waterToAdd"`
	NewWeight              *float64 `json:"newWeight,omitempty"`
}

// Owned reports whether the entry belongs to operatorID
func (e *LogEntry) Owned(operatorID string) bool {
	return e.OperatorID == operatorID
}
