// Package format projects numeric results and raw expressions into the
// strings the calculator displays.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Single display convention: English grouping, "." decimal point.
var printer = message.NewPrinter(language.English)

// Display glyphs differ from the input glyphs; the internal expression
// representation always keeps the ASCII forms.
var glyphs = strings.NewReplacer(
	"*", "×",
	"/", "÷",
	"-", "−",
)

// Result renders a finite evaluation result.
//
// Integers below 1e15 in magnitude render grouped with no decimal point.
// Magnitudes at or above 1e15, or nonzero magnitudes below 1e-4, render in
// exponential notation with six fractional digits. Everything else rounds
// to 12 significant digits to suppress binary floating-point noise, then
// renders grouped with at most ten fractional digits.
func Result(n float64) string {
	abs := math.Abs(n)

	if abs >= 1e15 || (n != 0 && abs < 1e-4) {
		return strconv.FormatFloat(n, 'e', 6, 64)
	}

	if n == math.Trunc(n) {
		return printer.Sprintf("%.0f", n)
	}

	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(n, 'g', 12, 64), 64)
	if rounded == math.Trunc(rounded) {
		return printer.Sprintf("%.0f", rounded)
	}

	s := printer.Sprintf("%.10f", rounded)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Money renders a currency amount grouped with exactly two fractional digits.
func Money(n float64) string {
	return printer.Sprintf("%.2f", n)
}

// Expression substitutes display glyphs into an input-form expression.
func Expression(s string) string {
	return glyphs.Replace(s)
}

// ParseResult parses a formatted result string back into a float,
// tolerating grouping separators.
func ParseResult(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
