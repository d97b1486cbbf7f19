package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RawValue is an input field that keeps exactly the text the client sent.
// In JSON it may be a string or a number literal; a number keeps its literal
// text, so 80.620 stays "80.620" and is not reformatted as 80.62.
type RawValue string

// UnmarshalJSON accepts a JSON string, number or null
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected a string or number, got %s", data)
		}
		*v = RawValue(n.String())
		return nil
	}
}

// String returns the trimmed text
func (v RawValue) String() string {
	return strings.TrimSpace(string(v))
}

// TopForm is the input of a top (second-round water) calculation. Browser
// clients send the proof twice, as proof and as proofText; the text form wins.
type TopForm struct {
	Weight    RawValue `json:"weight"`
	Proof     RawValue `json:"proof"`
	ProofText RawValue `json:"proofText,omitempty"`
}

// ProofString returns the proof as entered
func (f *TopForm) ProofString() string {
	if text := f.ProofText.String(); text != "" {
		return text
	}
	return f.Proof.String()
}

// Validate checks that both fields were entered
func (f *TopForm) Validate() []string {
	var errors []string
	if f.Weight.String() == "" || f.ProofString() == "" {
		errors = append(errors, "Please enter both Weight and Proof")
	}
	return errors
}

// BottomForm is the input of a bottom (first water) calculation. The JSON field
// names match the original client's distWeight / distPF.
type BottomForm struct {
	DistWeight RawValue `json:"distWeight"`
	DistProof  RawValue `json:"distPF"`
}

// Validate checks that both fields were entered
func (f *BottomForm) Validate() []string {
	var errors []string
	if f.DistWeight.String() == "" || f.DistProof.String() == "" {
		errors = append(errors, "Please enter both Dist Weight and Dist PF")
	}
	return errors
}

// VariableForm is the input of a variable-target calculation
type VariableForm struct {
	Weight       RawValue `json:"weight"`
	CurrentProof RawValue `json:"currentProof"`
	TargetProof  RawValue `json:"targetProof"`
}

// Validate checks that every field was entered
func (f *VariableForm) Validate() []string {
	var errors []string
	if f.Weight.String() == "" {
		errors = append(errors, "Weight is required")
	}
	if f.CurrentProof.String() == "" {
		errors = append(errors, "Current proof is required")
	}
	if f.TargetProof.String() == "" {
		errors = append(errors, "Target proof is required")
	}
	return errors
}
