package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("Small integers", func(t *testing.T) {
		assert.Equal(t, "4", Result(4))
		assert.Equal(t, "0", Result(0))
		assert.Equal(t, "-12", Result(-12))
	})

	t.Run("Grouped integers", func(t *testing.T) {
		assert.Equal(t, "15,800", Result(15800))
		assert.Equal(t, "1,234,567", Result(1234567))
		assert.Equal(t, "-1,000,000", Result(-1000000))
	})

	t.Run("Fractions", func(t *testing.T) {
		assert.Equal(t, "2.5", Result(2.5))
		assert.Equal(t, "0.001", Result(0.001))
		assert.Equal(t, "-0.5", Result(-0.5))
	})

	t.Run("Floating point noise suppressed", func(t *testing.T) {
		assert.Equal(t, "0.3", Result(0.1+0.2))
		assert.Equal(t, "0.9", Result(0.3*3))
	})

	t.Run("Grouped fraction", func(t *testing.T) {
		assert.Equal(t, "1,234.5", Result(1234.5))
	})

	t.Run("Large magnitude is exponential", func(t *testing.T) {
		assert.Equal(t, "1.000000e+15", Result(1e15))
		assert.Equal(t, "1.234568e+20", Result(1.23456789e20))
	})

	t.Run("Tiny magnitude is exponential", func(t *testing.T) {
		assert.Equal(t, "5.000000e-05", Result(0.00005))
		assert.Equal(t, "-1.000000e-06", Result(-0.000001))
	})

	t.Run("Boundary below exponential threshold", func(t *testing.T) {
		assert.Equal(t, "0.0001", Result(0.0001))
	})
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "15,800.00", Money(15800))
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "1,234.57", Money(1234.567))
	assert.Equal(t, "10.00", Money(10))
}

func TestExpression(t *testing.T) {
	assert.Equal(t, "3×4÷2−1", Expression("3*4/2-1"))
	assert.Equal(t, "sin(2)", Expression("sin(2)"))
	assert.Equal(t, "2×π", Expression("2*π"))
	assert.Equal(t, "", Expression(""))
}

func TestParseResult(t *testing.T) {
	v, err := ParseResult("15,800.00")
	require.NoError(t, err)
	assert.Equal(t, 15800.0, v)

	v, err = ParseResult("4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = ParseResult("1.234568e+20")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.234568e20, v, 1e-9)

	_, err = ParseResult("Error")
	assert.Error(t, err)
}
