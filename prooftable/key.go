package prooftable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned when text cannot be read as a proof key or decimal proof
var ErrMalformedKey = errors.New("malformed proof key")

// Key is a proof truncated to tenths, stored as an integer number of tenths
// (80.1 proof is Key(801)). Working in fixed point keeps lookups free of
// float formatting artifacts such as -0 or exponent notation.
type Key int64

// String renders the key the way the table source writes it: "80" for 80.0 and "80.1" otherwise
func (k Key) String() string {
	n := int64(k)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	whole, tenth := n/10, n%10
	if tenth == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	return fmt.Sprintf("%s%d.%d", sign, whole, tenth)
}

// ParseKey reads a table source key. Accepted forms are "<int>" and "<int>.<digit>";
// "80.0" is accepted and normalizes to the same key as "80".
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasPoint := strings.Cut(s, ".")
	if whole == "" || !isDigits(whole) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}
	if hasPoint && (len(frac) != 1 || !isDigits(frac)) {
		return 0, fmt.Errorf("%w: %q must have at most one decimal place", ErrMalformedKey, s)
	}

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || n > maxWhole {
		return 0, fmt.Errorf("%w: %q is out of range", ErrMalformedKey, s)
	}
	k := n * 10
	if hasPoint {
		k += int64(frac[0] - '0')
	}
	return Key(k), nil
}

// Truncate converts a plain decimal string ("[+-]digits.digits") to the key of its
// value truncated to tenths, floor(value*10)/10. The arithmetic is done on the
// digits, so "80.197" gives 80.1 and "-0.05" gives -0.1.
func Truncate(text string) (Key, error) {
	s := strings.TrimSpace(text)
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, text)
	}
	if (whole != "" && !isDigits(whole)) || (frac != "" && !isDigits(frac)) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, text)
	}

	var n int64
	if whole != "" {
		var err error
		n, err = strconv.ParseInt(whole, 10, 64)
		if err != nil || n > maxWhole {
			return 0, fmt.Errorf("%w: %q is out of range", ErrMalformedKey, text)
		}
	}
	tenths := n * 10
	rest := ""
	if frac != "" {
		tenths += int64(frac[0] - '0')
		rest = frac[1:]
	}

	if negative {
		tenths = -tenths
		// floor moves away from zero when anything below tenths is dropped
		if strings.Trim(rest, "0") != "" {
			tenths--
		}
	}
	return Key(tenths), nil
}

// maxWhole keeps whole*10 inside int64
const maxWhole = (1<<63 - 1) / 10

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
