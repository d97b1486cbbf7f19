// Package prooftable holds the proof to conversion-factor ("PG conv") table that
// the dilution formulas read from. A Table is built once from an external source
// and is read-only afterwards, so it can be shared between goroutines freely.
package prooftable

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrProofNotFound is returned when the table has no factor for a key.
// There is no interpolation and no fallback value.
var ErrProofNotFound = errors.New("proof not found in table")

// Table maps truncated proofs to conversion factors
type Table struct {
	factors map[Key]float64
}

// New builds a table from raw source keys and factors. Keys are normalized with
// ParseKey; two source keys that normalize to the same Key are rejected.
func New(entries map[string]float64) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("proof table is empty")
	}

	factors := make(map[Key]float64, len(entries))
	seen := make(map[Key]string, len(entries))
	for raw, factor := range entries {
		key, err := ParseKey(raw)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate proof key %q (already defined as %q)", raw, prev)
		}
		if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
			return nil, fmt.Errorf("proof %q has invalid conversion factor %v", raw, factor)
		}
		seen[key] = raw
		factors[key] = factor
	}

	return &Table{factors: factors}, nil
}

// Lookup returns the conversion factor for key
func (t *Table) Lookup(key Key) (float64, error) {
	factor, ok := t.factors[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrProofNotFound, key)
	}
	return factor, nil
}

// LookupString normalizes a source-format key ("80", "80.1") and looks it up
func (t *Table) LookupString(key string) (float64, error) {
	k, err := ParseKey(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProofNotFound, err)
	}
	return t.Lookup(k)
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.factors)
}

// Keys returns all keys in ascending order
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.factors))
	for k := range t.factors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
