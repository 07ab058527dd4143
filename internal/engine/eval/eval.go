// Package eval evaluates calculator expressions.
//
// Evaluation is a plain tree walk over float64. Numeric failures are not
// errors: factorial of a negative or 0/0 yield NaN, division by zero and
// factorial overflow yield Inf, and the caller classifies the result.
// Only malformed input produces ErrInvalidExpression.
package eval

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/calcdeck/backend/internal/engine/parser"
	"github.com/calcdeck/backend/internal/engine/token"
)

// ErrInvalidExpression reports input outside the calculator vocabulary or
// input that does not parse.
var ErrInvalidExpression = errors.New("invalid expression")

// Evaluate parses and evaluates src. Unmatched open parentheses are closed
// at the end of input before parsing, for both preview and commit.
func Evaluate(src string) (float64, error) {
	balanced := balance(src)

	toks, err := token.Scan(balanced)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	if len(toks) == 0 {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	root, err := parser.Parse(toks)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return walk(root), nil
}

// balance appends closing parentheses for unmatched open ones
func balance(src string) string {
	open := 0
	for _, r := range src {
		switch r {
		case '(':
			open++
		case ')':
			if open > 0 {
				open--
			}
		}
	}
	if open == 0 {
		return src
	}
	return src + strings.Repeat(")", open)
}

func walk(n parser.Node) float64 {
	switch v := n.(type) {
	case parser.Number:
		return v.Value

	case parser.Unary:
		return -walk(v.X)

	case parser.Binary:
		l, r := walk(v.Left), walk(v.Right)
		switch v.Op {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		case "/":
			// IEEE semantics: x/0 is ±Inf, 0/0 is NaN
			return l / r
		case "^":
			return math.Pow(l, r)
		}
		return math.NaN()

	case parser.Call:
		x := walk(v.Arg)
		switch v.Name {
		case "sin":
			return math.Sin(x)
		case "cos":
			return math.Cos(x)
		case "tan":
			return math.Tan(x)
		case "log":
			return math.Log10(x)
		case "ln":
			return math.Log(x)
		case "sqrt":
			return math.Sqrt(x)
		case "abs":
			return math.Abs(x)
		}
		return math.NaN()

	case parser.Factorial:
		return Factorial(walk(v.X))
	}
	return math.NaN()
}

// Factorial computes n! for n rounded to the nearest integer. Negative
// input yields NaN; anything past 170 overflows float64 and yields +Inf.
func Factorial(x float64) float64 {
	n := math.Round(x)
	if n < 0 {
		return math.NaN()
	}
	if n > 170 {
		return math.Inf(1)
	}

	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result
}
