package currency

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/calcdeck/backend/internal/engine/format"
)

// maxInputDigits caps the canonical input string, decimal point excluded
const maxInputDigits = 12

// Conversion is the projection of one conversion result
type Conversion struct {
	Input     string  `json:"input"`      // canonical digit-string
	From      string  `json:"from"`       // e.g. "$ 10.00"
	To        string  `json:"to"`         // e.g. "₦ 15,800.00"
	Rate      float64 `json:"rate"`       // effective rate applied
	FromLabel string  `json:"from_label"` // unit name on the input side
	ToLabel   string  `json:"to_label"`   // unit name on the output side
}

// Converter holds the currency widget state: the current input
// digit-string, the selected pair and the direction flag.
type Converter struct {
	mu      sync.Mutex
	pairs   []Pair
	byID    map[string]Pair
	input   string
	pairID  string
	swapped bool
}

// NewConverter creates a converter over the given pair table. The first
// pair is selected initially.
func NewConverter(pairs []Pair) *Converter {
	byID := make(map[string]Pair, len(pairs))
	for _, p := range pairs {
		byID[p.ID] = p
	}

	c := &Converter{
		pairs: pairs,
		byID:  byID,
		input: "0",
	}
	if len(pairs) > 0 {
		c.pairID = pairs[0].ID
	}
	return c
}

// Pairs returns the pair table
func (c *Converter) Pairs() []Pair {
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Select switches to a pair, resetting direction and input
func (c *Converter) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return fmt.Errorf("unknown pair: %s", id)
	}
	c.pairID = id
	c.swapped = false
	c.input = "0"
	return nil
}

// Swap toggles the conversion direction
func (c *Converter) Swap() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.swapped = !c.swapped
}

// InputDigit appends a digit or decimal point to the canonical input.
// A second decimal point, or a digit past the cap, is ignored.
func (c *Converter) InputDigit(tok string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case tok == ".":
		if strings.Contains(c.input, ".") {
			return
		}
		c.input += "."

	case len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9':
		if digitCount(c.input) >= maxInputDigits {
			return
		}
		if c.input == "0" {
			c.input = tok
		} else {
			c.input += tok
		}
	}
}

// Backspace removes the last character, bottoming out at "0"
func (c *Converter) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.input) <= 1 {
		c.input = "0"
		return
	}
	c.input = c.input[:len(c.input)-1]
}

// Clear resets the input to zero
func (c *Converter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = "0"
}

// State returns the current input, pair and direction
func (c *Converter) State() (input, pairID string, swapped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input, c.pairID, c.swapped
}

// Convert applies the selected pair to the current input. Forward
// direction multiplies by the rate; swapped divides. Both sides render
// grouped with exactly two fractional digits, prefixed by their unit
// symbol. Unparseable input fails.
func (c *Converter) Convert() (Conversion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pair, ok := c.byID[c.pairID]
	if !ok {
		return Conversion{}, fmt.Errorf("no pair selected")
	}

	v, err := strconv.ParseFloat(c.input, 64)
	if err != nil {
		return Conversion{}, fmt.Errorf("invalid input %q", c.input)
	}

	fromSym, toSym := pair.FromSymbol, pair.ToSymbol
	fromName, toName := pair.FromName, pair.ToName
	rate := pair.Rate
	out := v * rate
	if c.swapped {
		fromSym, toSym = toSym, fromSym
		fromName, toName = toName, fromName
		out = v / rate
		rate = 1 / rate
	}

	return Conversion{
		Input:     c.input,
		From:      fromSym + " " + format.Money(v),
		To:        toSym + " " + format.Money(out),
		Rate:      rate,
		FromLabel: fromName,
		ToLabel:   toName,
	}, nil
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
