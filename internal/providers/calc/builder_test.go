package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(b *Builder, digits string) {
	for _, r := range digits {
		b.InputDigit(string(r))
	}
}

func TestInputDigit(t *testing.T) {
	t.Run("Digits accumulate", func(t *testing.T) {
		b := NewBuilder()
		press(b, "123")
		assert.Equal(t, "123", b.Expression())
		assert.Equal(t, "123", b.Result())
	})

	t.Run("Single decimal point per segment", func(t *testing.T) {
		b := NewBuilder()
		press(b, "1.5")
		b.InputDigit(".")
		assert.Equal(t, "1.5", b.Expression())
	})

	t.Run("New segment allows new point", func(t *testing.T) {
		b := NewBuilder()
		press(b, "1.5")
		b.InputOperator("+")
		press(b, "2.5")
		b.InputDigit(".")
		assert.Equal(t, "1.5+2.5", b.Expression())
	})

	t.Run("Digit after commit starts fresh", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("+")
		press(b, "2")
		b.Equals(nil)
		require.Equal(t, "4", b.Result())

		b.InputDigit("7")
		assert.Equal(t, "7", b.Expression())
		_, hasAnswer := b.LastAnswer()
		assert.False(t, hasAnswer)
	})

	t.Run("Non-token input ignored", func(t *testing.T) {
		b := NewBuilder()
		b.InputDigit("x")
		b.InputDigit("12")
		assert.Equal(t, "", b.Expression())
	})
}

func TestInputOperator(t *testing.T) {
	t.Run("Trailing operator replaced, not stacked", func(t *testing.T) {
		b := NewBuilder()
		press(b, "5")
		b.InputOperator("+")
		b.InputOperator("*")
		assert.Equal(t, "5*", b.Expression())

		// Idempotence of replacement
		b.InputOperator("*")
		assert.Equal(t, "5*", b.Expression())
	})

	t.Run("Leading non-minus operator is a no-op", func(t *testing.T) {
		b := NewBuilder()
		b.InputOperator("+")
		assert.Equal(t, "", b.Expression())
		b.InputOperator("*")
		assert.Equal(t, "", b.Expression())
	})

	t.Run("Leading minus accepted", func(t *testing.T) {
		b := NewBuilder()
		b.InputOperator("-")
		assert.Equal(t, "-", b.Expression())
	})

	t.Run("Operator chains from last answer", func(t *testing.T) {
		b := NewBuilder()
		press(b, "6")
		b.InputOperator("*")
		press(b, "7")
		b.Equals(nil)
		require.Equal(t, "42", b.Result())

		b.InputOperator("+")
		assert.Equal(t, "42+", b.Expression())
		press(b, "8")
		b.Equals(nil)
		assert.Equal(t, "50", b.Result())
	})
}

func TestSmartParen(t *testing.T) {
	t.Run("Open close and implicit multiply", func(t *testing.T) {
		b := NewBuilder()
		b.SmartParen()
		assert.Equal(t, "(", b.Expression())

		b.SmartParen()
		assert.Equal(t, "((", b.Expression())

		b2 := NewBuilder()
		b2.SmartParen()
		press(b2, "5")
		b2.SmartParen()
		assert.Equal(t, "(5)", b2.Expression())

		b2.SmartParen()
		assert.Equal(t, "(5)*(", b2.Expression())
	})

	t.Run("Opens after operator", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("*")
		b.SmartParen()
		assert.Equal(t, "2*(", b.Expression())
	})
}

func TestBackspace(t *testing.T) {
	t.Run("Function prefix removed atomically", func(t *testing.T) {
		b := NewBuilder()
		b.ApplyFunction("sin")
		require.Equal(t, "sin(", b.Expression())
		b.Backspace()
		assert.Equal(t, "", b.Expression())
	})

	t.Run("Prefix mid-expression", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("+")
		b.ApplyFunction("sqrt")
		require.Equal(t, "2+sqrt(", b.Expression())
		b.Backspace()
		assert.Equal(t, "2+", b.Expression())
	})

	t.Run("Single character otherwise", func(t *testing.T) {
		b := NewBuilder()
		press(b, "25")
		b.Backspace()
		assert.Equal(t, "2", b.Expression())
	})

	t.Run("Multi-byte constant removed whole", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.ApplyFunction("pi")
		require.Equal(t, "2*π", b.Expression())
		b.Backspace()
		assert.Equal(t, "2*", b.Expression())
	})

	t.Run("Empty expression is a no-op", func(t *testing.T) {
		b := NewBuilder()
		b.Backspace()
		assert.Equal(t, "", b.Expression())
	})
}

func TestToggleSign(t *testing.T) {
	t.Run("Expression sign flips", func(t *testing.T) {
		b := NewBuilder()
		press(b, "5")
		b.ToggleSign()
		assert.Equal(t, "-5", b.Expression())
		b.ToggleSign()
		assert.Equal(t, "5", b.Expression())
	})

	t.Run("Last answer negates", func(t *testing.T) {
		b := NewBuilder()
		press(b, "3")
		b.Equals(nil)
		b.ToggleSign()

		v, ok := b.LastAnswer()
		require.True(t, ok)
		assert.Equal(t, -3.0, v)
		assert.Equal(t, "-3", b.Result())
	})

	t.Run("Empty with no answer is a no-op", func(t *testing.T) {
		b := NewBuilder()
		b.ToggleSign()
		assert.Equal(t, "", b.Expression())
	})
}

func TestApplyFunction(t *testing.T) {
	t.Run("Trig appends open call", func(t *testing.T) {
		b := NewBuilder()
		b.ApplyFunction("cos")
		assert.Equal(t, "cos(", b.Expression())
	})

	t.Run("Pow wraps the whole expression", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("+")
		press(b, "3")
		b.ApplyFunction("pow")
		assert.Equal(t, "(2+3)^2", b.Expression())
		b.Equals(nil)
		assert.Equal(t, "25", b.Result())
	})

	t.Run("Constants insert implicit multiplication", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.ApplyFunction("pi")
		assert.Equal(t, "2*π", b.Expression())

		b2 := NewBuilder()
		b2.ApplyFunction("e")
		assert.Equal(t, "e", b2.Expression())

		b3 := NewBuilder()
		press(b3, "1")
		b3.InputOperator("+")
		b3.ApplyFunction("pi")
		assert.Equal(t, "1+π", b3.Expression())
	})

	t.Run("Inv wraps as reciprocal", func(t *testing.T) {
		b := NewBuilder()
		press(b, "4")
		b.ApplyFunction("inv")
		assert.Equal(t, "1/(4)", b.Expression())
		b.Equals(nil)
		assert.Equal(t, "0.25", b.Result())
	})

	t.Run("Factorial appends bang", func(t *testing.T) {
		b := NewBuilder()
		press(b, "5")
		b.ApplyFunction("factorial")
		assert.Equal(t, "5!", b.Expression())
		b.Equals(nil)
		assert.Equal(t, "120", b.Result())
	})

	t.Run("Seeds from last answer", func(t *testing.T) {
		b := NewBuilder()
		press(b, "9")
		b.Equals(nil)
		b.ApplyFunction("factorial")
		assert.Equal(t, "9!", b.Expression())
	})
}

func TestEquals(t *testing.T) {
	t.Run("Commit clears expression and sets answer", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("+")
		press(b, "2")
		outcome := b.Equals(nil)

		assert.Equal(t, OutcomeOK, outcome)
		assert.Equal(t, "", b.Expression())
		assert.Equal(t, "4", b.Result())
		v, ok := b.LastAnswer()
		require.True(t, ok)
		assert.Equal(t, 4.0, v)
	})

	t.Run("Commit records history", func(t *testing.T) {
		b := NewBuilder()
		ledger := NewLedger(0)
		press(b, "15800")
		b.Equals(ledger)

		require.Equal(t, 1, ledger.Len())
		entry := ledger.Entries()[0]
		assert.Equal(t, "15800", entry.Expression)
		assert.Equal(t, "15,800", entry.Result)
	})

	t.Run("Unclosed groups balanced at commit", func(t *testing.T) {
		b := NewBuilder()
		b.ApplyFunction("sqrt")
		press(b, "16")
		outcome := b.Equals(nil)
		assert.Equal(t, OutcomeOK, outcome)
		assert.Equal(t, "4", b.Result())
	})

	t.Run("NaN surfaces as Error", func(t *testing.T) {
		b := NewBuilder()
		press(b, "0")
		b.InputOperator("/")
		press(b, "0")
		outcome := b.Equals(nil)

		assert.Equal(t, OutcomeNaN, outcome)
		assert.Equal(t, "Error", b.Result())
		assert.Equal(t, "", b.Expression())
	})

	t.Run("Division by zero surfaces as Infinity", func(t *testing.T) {
		b := NewBuilder()
		press(b, "1")
		b.InputOperator("/")
		press(b, "0")
		outcome := b.Equals(nil)

		assert.Equal(t, OutcomeOverflow, outcome)
		assert.Equal(t, "Infinity", b.Result())
	})

	t.Run("Factorial overflow surfaces as Infinity", func(t *testing.T) {
		b := NewBuilder()
		press(b, "171")
		b.ApplyFunction("factorial")
		outcome := b.Equals(nil)
		assert.Equal(t, OutcomeOverflow, outcome)
		assert.Equal(t, "Infinity", b.Result())
	})

	t.Run("Failures never reach history", func(t *testing.T) {
		b := NewBuilder()
		ledger := NewLedger(0)
		press(b, "1")
		b.InputOperator("/")
		press(b, "0")
		b.Equals(ledger)
		assert.Equal(t, 0, ledger.Len())
	})

	t.Run("Empty expression is a no-op", func(t *testing.T) {
		b := NewBuilder()
		assert.Equal(t, OutcomeNoop, b.Equals(nil))
		assert.Equal(t, "0", b.Result())
	})
}

func TestPreview(t *testing.T) {
	t.Run("Updates after every edit", func(t *testing.T) {
		b := NewBuilder()
		press(b, "2")
		b.InputOperator("+")
		press(b, "3")
		assert.Equal(t, "5", b.Result())
		press(b, "0")
		assert.Equal(t, "32", b.Result())
	})

	t.Run("Trailing operator suppresses evaluation", func(t *testing.T) {
		b := NewBuilder()
		press(b, "8")
		b.InputOperator("-")
		assert.Equal(t, "8", b.Result())
	})

	t.Run("Errors keep last good display", func(t *testing.T) {
		b := NewBuilder()
		press(b, "9")
		require.Equal(t, "9", b.Result())
		b.ApplyFunction("sin")
		press(b, "0")
		b.SmartParen()
		// "9sin(0)" does not parse; display still shows 9
		assert.Equal(t, "9", b.Result())
	})
}

func TestProjection(t *testing.T) {
	t.Run("Display uses glyphs", func(t *testing.T) {
		b := NewBuilder()
		press(b, "3")
		b.InputOperator("*")
		press(b, "4")
		proj := b.Project()
		assert.Equal(t, "3*4", proj.Expression)
		assert.Equal(t, "3×4", proj.Display)
	})

	t.Run("Committed expression shown with equals", func(t *testing.T) {
		b := NewBuilder()
		press(b, "6")
		b.InputOperator("/")
		press(b, "2")
		b.Equals(nil)
		proj := b.Project()
		assert.Equal(t, "6÷2 =", proj.Display)
		assert.Equal(t, "3", proj.Result)
	})

	t.Run("Clear resets everything", func(t *testing.T) {
		b := NewBuilder()
		press(b, "5")
		b.Equals(nil)
		b.Clear()
		proj := b.Project()
		assert.Equal(t, "", proj.Expression)
		assert.Equal(t, "", proj.Display)
		assert.Equal(t, "0", proj.Result)
		_, ok := b.LastAnswer()
		assert.False(t, ok)
	})
}
