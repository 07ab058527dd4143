package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/calcdeck/backend/internal/engine/eval"
	"github.com/calcdeck/backend/internal/engine/format"
)

// funcPrefixes are the tokens backspace removes atomically, so deleting
// into a function never leaves a dangling bare name.
var funcPrefixes = []string{"sqrt(", "sin(", "cos(", "tan(", "log(", "ln(", "abs("}

// Builder accumulates a calculator expression from discrete input tokens
// and keeps the live result projection current after every edit.
type Builder struct {
	expr      string
	committed string // display-only "expr =" shown after commit or recall
	result    string
	last      *float64
}

// Projection is the display state the UI renders
type Projection struct {
	Expression string `json:"expression"`
	Display    string `json:"display"`
	Result     string `json:"result"`
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{result: "0"}
}

// Expression returns the raw input-form expression
func (b *Builder) Expression() string {
	return b.expr
}

// Result returns the current result/preview string
func (b *Builder) Result() string {
	return b.result
}

// LastAnswer returns the most recently committed result, if any
func (b *Builder) LastAnswer() (float64, bool) {
	if b.last == nil {
		return 0, false
	}
	return *b.last, true
}

// Project returns the current display projection
func (b *Builder) Project() Projection {
	display := format.Expression(b.expr)
	if b.expr == "" && b.committed != "" {
		display = b.committed
	}
	return Projection{
		Expression: b.expr,
		Display:    display,
		Result:     b.result,
	}
}

// InputDigit appends a digit or decimal point. A second point within the
// current numeric segment is rejected. A digit typed right after a commit
// starts a fresh expression instead of extending the stale one.
func (b *Builder) InputDigit(tok string) {
	if !isDigitToken(tok) {
		return
	}

	if b.last != nil && b.expr == "" {
		b.last = nil
	}

	if tok == "." {
		seg := b.expr[strings.LastIndexAny(b.expr, "+-*/^()")+1:]
		if strings.Contains(seg, ".") {
			return
		}
	}

	b.committed = ""
	b.expr += tok
	b.refreshPreview()
}

// InputOperator appends one of the four binary operators. A trailing
// operator is replaced rather than stacked. On an empty expression the
// operator chains from LastAnswer when one exists; otherwise only a
// leading minus is accepted.
func (b *Builder) InputOperator(op string) {
	if op != "+" && op != "-" && op != "*" && op != "/" {
		return
	}
	b.committed = ""

	if b.expr == "" {
		if b.last != nil {
			b.expr = strconv.FormatFloat(*b.last, 'f', -1, 64) + op
			b.last = nil
		} else if op == "-" {
			b.expr = "-"
		}
		b.refreshPreview()
		return
	}

	if r, ok := lastRune(b.expr); ok && isOperator(r) {
		b.expr = b.expr[:len(b.expr)-1] + op
	} else {
		b.expr += op
	}
	b.refreshPreview()
}

// SmartParen is the single context-sensitive parenthesis key: it opens a
// group after nothing, an open paren or an operator, closes one while the
// balance is open, and otherwise starts a new group with an implicit
// multiplication.
func (b *Builder) SmartParen() {
	b.committed = ""

	r, ok := lastRune(b.expr)
	switch {
	case b.expr == "":
		b.expr = "("
	case r == '(' || (ok && isOperator(r)):
		b.expr += "("
	case parenDebt(b.expr) > 0:
		b.expr += ")"
	default:
		b.expr += "*("
	}
	b.refreshPreview()
}

// Backspace removes the last character, or a whole function prefix when
// one ends the expression.
func (b *Builder) Backspace() {
	if b.expr == "" {
		return
	}
	b.committed = ""

	for _, fn := range funcPrefixes {
		if strings.HasSuffix(b.expr, fn) {
			b.expr = b.expr[:len(b.expr)-len(fn)]
			b.refreshPreview()
			return
		}
	}

	_, size := utf8.DecodeLastRuneInString(b.expr)
	b.expr = b.expr[:len(b.expr)-size]
	b.refreshPreview()
}

// ToggleSign negates LastAnswer when the expression is empty and an answer
// exists, else flips the expression's leading sign.
func (b *Builder) ToggleSign() {
	if b.expr == "" {
		if b.last != nil {
			v := -*b.last
			b.last = &v
			b.committed = ""
			b.result = format.Result(v)
		}
		return
	}

	b.committed = ""
	if strings.HasPrefix(b.expr, "-") {
		b.expr = b.expr[1:]
	} else {
		b.expr = "-" + b.expr
	}
	b.refreshPreview()
}

// Clear resets expression, result and LastAnswer
func (b *Builder) Clear() {
	b.expr = ""
	b.committed = ""
	b.result = "0"
	b.last = nil
}

// ApplyFunction applies a scientific function key. With an empty
// expression and a pending answer, the answer seeds the expression first.
func (b *Builder) ApplyFunction(name string) {
	b.committed = ""

	if b.last != nil && b.expr == "" {
		b.expr = strconv.FormatFloat(*b.last, 'f', -1, 64)
		b.last = nil
	}

	switch name {
	case "sin", "cos", "tan", "log", "ln", "sqrt", "abs":
		b.expr += name + "("

	case "pow":
		// Squares the whole accumulated expression, not the last operand.
		if b.expr != "" {
			b.expr = "(" + b.expr + ")^2"
		}

	case "pi", "e":
		sym := "e"
		if name == "pi" {
			sym = "π"
		}
		if r, ok := lastRune(b.expr); ok && !isOperator(r) && r != '(' {
			b.expr += "*"
		}
		b.expr += sym

	case "factorial":
		if b.expr != "" {
			b.expr += "!"
		}

	case "inv":
		if b.expr != "" {
			b.expr = "1/(" + b.expr + ")"
		}
	}

	b.refreshPreview()
}

// Commit outcomes, used as metric labels
const (
	OutcomeOK       = "ok"
	OutcomeNoop     = "noop"
	OutcomeInvalid  = "invalid"
	OutcomeNaN      = "nan"
	OutcomeOverflow = "overflow"
)

// Equals performs the final commit evaluation. On success the result is
// recorded to the ledger and becomes LastAnswer; any failure surfaces as
// "Error" or "Infinity" and resets the expression either way.
func (b *Builder) Equals(ledger *Ledger) string {
	if b.expr == "" {
		return OutcomeNoop
	}

	v, err := eval.Evaluate(b.expr)
	switch {
	case err != nil:
		b.fail("Error")
		return OutcomeInvalid
	case math.IsNaN(v):
		b.fail("Error")
		return OutcomeNaN
	case math.IsInf(v, 0):
		b.fail("Infinity")
		return OutcomeOverflow
	}

	formatted := format.Result(v)
	if ledger != nil {
		ledger.Record(b.expr, formatted)
	}

	b.committed = format.Expression(b.expr) + " ="
	b.expr = ""
	b.last = &v
	b.result = formatted
	return OutcomeOK
}

// restore rewinds the builder to a recalled history entry
func (b *Builder) restore(entry Entry, v float64) {
	b.expr = ""
	b.committed = format.Expression(entry.Expression) + " ="
	b.last = &v
	b.result = entry.Result
}

func (b *Builder) fail(display string) {
	b.expr = ""
	b.committed = ""
	b.last = nil
	b.result = display
}

// refreshPreview re-evaluates after an edit. Errors are expected transient
// states of an incomplete expression: the last good display is kept, and a
// trailing binary operator suppresses evaluation entirely.
func (b *Builder) refreshPreview() {
	if b.expr == "" {
		return
	}
	if r, ok := lastRune(b.expr); ok && isOperator(r) {
		return
	}

	v, err := eval.Evaluate(b.expr)
	if err != nil || math.IsNaN(v) {
		return
	}
	if math.IsInf(v, 0) {
		b.result = "Infinity"
		return
	}
	b.result = format.Result(v)
}

func isDigitToken(tok string) bool {
	if tok == "." {
		return true
	}
	return len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9'
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}

func parenDebt(s string) int {
	open := 0
	for _, r := range s {
		switch r {
		case '(':
			open++
		case ')':
			open--
		}
	}
	return open
}
