package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/blogem/proof-calc/prooftable"
)

// Decimal places required on proof inputs
const (
	TopProofPlaces    = 3
	BottomProofPlaces = 1
)

// normalize trims surrounding whitespace and applies NFKC so that full-width
// digits and points ("８０．６２０") compare like their ASCII forms.
func normalize(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(strings.TrimSpace(raw)))
}

// ValidateDecimalPlaces reports whether raw has exactly one decimal point followed
// by exactly places characters. It checks shape only; "abc.def" passes for 3.
func ValidateDecimalPlaces(raw string, places int) bool {
	s := normalize(raw)
	if strings.Count(s, ".") != 1 {
		return false
	}
	_, frac, _ := strings.Cut(s, ".")
	return len([]rune(frac)) == places
}

// ValidatedProof is proof text that passed the decimal-place check. It can only be
// built by ValidateProof, so holding one means the format stage already ran.
type ValidatedProof struct {
	text   string
	places int
}

// ValidateProof runs the format stage on raw
func ValidateProof(raw string, places int) (ValidatedProof, error) {
	if !ValidateDecimalPlaces(raw, places) {
		return ValidatedProof{}, fmt.Errorf("%w: proof %q must have exactly %d decimal place%s", ErrInvalidFormat, raw, places, plural(places))
	}
	return ValidatedProof{text: normalize(raw), places: places}, nil
}

// String returns the normalized proof text
func (p ValidatedProof) String() string {
	return p.text
}

// Parse runs the numeric stage and returns the proof value
func (p ValidatedProof) Parse() (float64, error) {
	return parseDecimal(p.text, "proof")
}

// Key truncates the proof to its table key
func (p ValidatedProof) Key() (prooftable.Key, error) {
	if _, err := p.Parse(); err != nil {
		return 0, err
	}
	return truncate(p.text)
}

// Hundredths returns the integer value of the last two characters of the proof
// text. For a three-place proof these are its hundredths and thousandths digits
// ("80.620" gives 20, "80.600" gives 0, "80.605" gives 5). The digits are sliced
// literally, never recomputed from the float value.
func (p ValidatedProof) Hundredths() (int, error) {
	if _, err := p.Parse(); err != nil {
		return 0, err
	}
	_, frac, _ := strings.Cut(p.text, ".")
	if len(frac) < 2 {
		// one trailing digit past the point reads as "0d"
		frac = "0" + frac
	}
	n, err := strconv.Atoi(frac[len(frac)-2:])
	if err != nil {
		return 0, fmt.Errorf("%w: proof %q", ErrNotANumber, p.text)
	}
	return n, nil
}

// ParseTargetProof reads a target proof, which has no decimal-place requirement
// but must still be a plain decimal number
func ParseTargetProof(raw string) (prooftable.Key, error) {
	s := normalize(raw)
	if _, err := parseDecimal(s, "target proof"); err != nil {
		return 0, err
	}
	return truncate(s)
}

// ParseWeight reads a weight; it must be a finite number greater than zero
func ParseWeight(raw string) (float64, error) {
	s := normalize(raw)
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%w: weight %q", ErrNotANumber, raw)
	}
	return w, checkWeight(w)
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: weight %v", ErrNotANumber, w)
	}
	if w <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveWeight, w)
	}
	return nil
}

// parseDecimal accepts only "[+-]digits[.digits]" with at least one digit. Anything
// strconv would also take (exponents, hex floats, "Inf") is rejected, because the
// table key is derived from the same digits.
func parseDecimal(s, field string) (float64, error) {
	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 {
		return 0, fmt.Errorf("%w: %s %q", ErrNotANumber, field, s)
	}
	whole, frac, _ := strings.Cut(body, ".")
	if whole == "" && frac == "" || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("%w: %s %q", ErrNotANumber, field, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrNotANumber, field, s)
	}
	return v, nil
}

func truncate(s string) (prooftable.Key, error) {
	key, err := prooftable.Truncate(s)
	if err != nil {
		// digits already checked; only an out-of-range magnitude lands here
		return 0, fmt.Errorf("%w: %v", ErrProofNotFound, err)
	}
	return key, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
