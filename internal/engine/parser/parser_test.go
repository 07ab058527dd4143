package parser

import (
	"testing"

	"github.com/calcdeck/backend/internal/engine/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) Node {
	t.Helper()
	toks, err := token.Scan(src)
	require.NoError(t, err)
	n, err := Parse(toks)
	require.NoError(t, err)
	return n
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := token.Scan(src)
	require.NoError(t, err)
	_, err = Parse(toks)
	return err
}

func TestPrecedence(t *testing.T) {
	t.Run("Multiplication over addition", func(t *testing.T) {
		n := parse(t, "2+3*4")
		root, ok := n.(Binary)
		require.True(t, ok)
		assert.Equal(t, "+", root.Op)
		right, ok := root.Right.(Binary)
		require.True(t, ok)
		assert.Equal(t, "*", right.Op)
	})

	t.Run("Parentheses override", func(t *testing.T) {
		n := parse(t, "(2+3)*4")
		root, ok := n.(Binary)
		require.True(t, ok)
		assert.Equal(t, "*", root.Op)
	})

	t.Run("Exponent over multiplication", func(t *testing.T) {
		n := parse(t, "2*3^2")
		root, ok := n.(Binary)
		require.True(t, ok)
		assert.Equal(t, "*", root.Op)
		right, ok := root.Right.(Binary)
		require.True(t, ok)
		assert.Equal(t, "^", right.Op)
	})

	t.Run("Factorial applies to signed operand", func(t *testing.T) {
		n := parse(t, "-1!")
		f, ok := n.(Factorial)
		require.True(t, ok)
		_, ok = f.X.(Unary)
		assert.True(t, ok)
	})

	t.Run("Factorial in product", func(t *testing.T) {
		n := parse(t, "2*3!")
		root, ok := n.(Binary)
		require.True(t, ok)
		assert.Equal(t, "*", root.Op)
		_, ok = root.Right.(Factorial)
		assert.True(t, ok)
	})

	t.Run("Negative exponent", func(t *testing.T) {
		n := parse(t, "2^-3")
		root, ok := n.(Binary)
		require.True(t, ok)
		assert.Equal(t, "^", root.Op)
		_, ok = root.Right.(Unary)
		assert.True(t, ok)
	})
}

func TestFunctions(t *testing.T) {
	n := parse(t, "sqrt(2+2)")
	call, ok := n.(Call)
	require.True(t, ok)
	assert.Equal(t, "sqrt", call.Name)
	_, ok = call.Arg.(Binary)
	assert.True(t, ok)
}

func TestParseErrors(t *testing.T) {
	t.Run("Trailing operator", func(t *testing.T) {
		assert.Error(t, parseErr(t, "2+"))
	})

	t.Run("Leading binary operator", func(t *testing.T) {
		assert.Error(t, parseErr(t, "*2"))
	})

	t.Run("Unclosed group", func(t *testing.T) {
		assert.Error(t, parseErr(t, "(2+3"))
	})

	t.Run("Function without argument list", func(t *testing.T) {
		assert.Error(t, parseErr(t, "sin 5"))
	})

	t.Run("Dangling close paren", func(t *testing.T) {
		assert.Error(t, parseErr(t, "2+3)"))
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Error(t, parseErr(t, ""))
	})
}
