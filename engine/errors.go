package engine

import (
	"errors"

	"github.com/blogem/proof-calc/prooftable"
)

// Failure kinds. Every compute error wraps exactly one of these so callers can
// tell them apart with errors.Is.
var (
	// ErrInvalidFormat means a proof string does not carry the required number of decimal places
	ErrInvalidFormat = errors.New("invalid format")
	// ErrNotANumber means a correctly formatted string is not a plain decimal number
	ErrNotANumber = errors.New("not a number")
	// ErrNonPositiveWeight means a weight parsed but is zero or negative
	ErrNonPositiveWeight = errors.New("weight must be greater than zero")
	// ErrProofNotFound means the table has no entry for the truncated proof
	ErrProofNotFound = prooftable.ErrProofNotFound
	// ErrTableNotReady means a computation was attempted before a table was installed
	ErrTableNotReady = errors.New("proof table not loaded")
)

// Kind names an error for transport (JSON bodies, CLI exit messages)
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrNotANumber):
		return "not_a_number"
	case errors.Is(err, ErrNonPositiveWeight):
		return "non_positive_weight"
	case errors.Is(err, ErrProofNotFound):
		return "proof_not_found"
	case errors.Is(err, ErrTableNotReady):
		return "table_not_ready"
	default:
		return "internal"
	}
}
