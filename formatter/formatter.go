// Package formatter renders calculation results for display.
//
// Values are rounded half away from zero on their shortest round-trip decimal
// form, which is the number a spreadsheet cell shows, so 1.0005 rounds to 1.001
// even though its binary value is slightly below. Formatting happens once at the
// output boundary; the numeric results stored in the log are never rounded.
package formatter

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/models"
)

// Kind selects the display rule for a value
type Kind int

const (
	// KindConversionFactor renders 5 decimal places, trailing zeros kept
	KindConversionFactor Kind = iota
	// KindWaterVolume renders 3 decimal places
	KindWaterVolume
	// KindWeight renders the nearest integer with grouping separators
	KindWeight
)

// Decimal places per kind
const (
	ConversionFactorPlaces  = 5
	WaterVolumePlaces       = 3
	BottomWaterVolumePlaces = 2
)

var printer = message.NewPrinter(language.English)

// Format renders value by kind
func Format(value float64, kind Kind) string {
	switch kind {
	case KindConversionFactor:
		return Round(value, ConversionFactorPlaces)
	case KindWeight:
		return formatWeight(value)
	default:
		return Round(value, WaterVolumePlaces)
	}
}

// WaterPlaces is the display precision of water-to-add for a mode. Bottom results
// show two places, top and variable show three; every caller goes through here.
func WaterPlaces(mode models.Mode) int {
	if mode == models.ModeBottom {
		return BottomWaterVolumePlaces
	}
	return WaterVolumePlaces
}

// FormatWater renders a water-to-add value with its mode's precision
func FormatWater(value float64, mode models.Mode) string {
	return Round(value, WaterPlaces(mode))
}

// Display is the rendered form of an engine result
type Display struct {
	ConversionFactor       string `json:"conversionFactor"`
	TargetConversionFactor string `json:"targetConversionFactor,omitempty"`
	WaterToAdd             string `json:"waterToAdd"`
	NewWeight              string `json:"newWeight,omitempty"`
}

// Render formats every field of a result
func Render(r *engine.Result) Display {
	d := Display{
		ConversionFactor: Format(r.ConversionFactor, KindConversionFactor),
		WaterToAdd:       FormatWater(r.WaterToAdd, r.Mode),
	}
	if r.TargetConversionFactor != nil {
		d.TargetConversionFactor = Format(*r.TargetConversionFactor, KindConversionFactor)
	}
	if r.NewWeight != nil {
		d.NewWeight = Format(*r.NewWeight, KindWeight)
	}
	return d
}

// RenderEntry formats the outputs recorded in a log entry
func RenderEntry(e *models.LogEntry) Display {
	return Render(&engine.Result{
		Mode:                   e.Mode,
		ConversionFactor:       e.Outputs.ConversionFactor,
		WaterToAdd:             e.Outputs.WaterToAdd,
		NewWeight:              e.Outputs.NewWeight,
		TargetConversionFactor: e.Outputs.TargetConversionFactor,
	})
}

func formatWeight(value float64) string {
	rounded := Round(value, 0)
	n, err := strconv.ParseInt(rounded, 10, 64)
	if err != nil {
		// beyond int64; group the digits by hand
		return groupDigits(rounded)
	}
	return printer.Sprintf("%d", n)
}

// Round renders value with exactly places decimals, rounding half away from zero
// on the value's shortest decimal representation
func Round(value float64, places int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	text := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	whole, frac, _ := strings.Cut(text, ".")

	if len(frac) <= places {
		frac += strings.Repeat("0", places-len(frac))
		return withSign(value < 0, whole, frac)
	}

	roundUp := frac[places] >= '5'
	digits := new(big.Int)
	digits.SetString(whole+frac[:places], 10)
	if roundUp {
		digits.Add(digits, big.NewInt(1))
	}

	s := digits.String()
	if len(s) <= places {
		s = strings.Repeat("0", places-len(s)+1) + s
	}
	return withSign(value < 0, s[:len(s)-places], s[len(s)-places:])
}

func withSign(negative bool, whole, frac string) string {
	out := whole
	if frac != "" {
		out += "." + frac
	}
	// a value that rounds to zero is shown without a sign
	if negative && strings.Trim(whole+frac, "0") != "" {
		out = "-" + out
	}
	return out
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
