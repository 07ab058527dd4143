package token

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Kind identifies a token class
type Kind uint8

const (
	Number Kind = iota
	Operator
	LParen
	RParen
	Func
	Const
	Bang
)

// Token is a single tagged token of a calculator expression
type Token struct {
	Kind  Kind
	Text  string
	Value float64 // set for Number and Const
}

// funcs is the full function vocabulary. Identifiers outside this set fail.
var funcs = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"log":  true,
	"ln":   true,
	"sqrt": true,
	"abs":  true,
}

// IsFunc reports whether name belongs to the function vocabulary
func IsFunc(name string) bool {
	return funcs[name]
}

// Scan converts src into tagged tokens. It fails on any character or
// identifier outside the calculator vocabulary.
func Scan(src string) ([]Token, error) {
	runes := []rune(src)
	var toks []Token

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r >= '0' && r <= '9', r == '.':
			j := i
			dots := 0
			for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == '.') {
				if runes[j] == '.' {
					dots++
				}
				j++
			}
			text := string(runes[i:j])
			if dots > 1 {
				return nil, fmt.Errorf("malformed number %q", text)
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed number %q", text)
			}
			toks = append(toks, Token{Kind: Number, Text: text, Value: v})
			i = j

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks = append(toks, Token{Kind: Operator, Text: string(r)})
			i++

		case r == '(':
			toks = append(toks, Token{Kind: LParen, Text: "("})
			i++

		case r == ')':
			toks = append(toks, Token{Kind: RParen, Text: ")"})
			i++

		case r == '!':
			toks = append(toks, Token{Kind: Bang, Text: "!"})
			i++

		case r == 'π':
			toks = append(toks, Token{Kind: Const, Text: "π", Value: math.Pi})
			i++

		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			switch {
			case word == "e":
				toks = append(toks, Token{Kind: Const, Text: "e", Value: math.E})
			case word == "pi":
				toks = append(toks, Token{Kind: Const, Text: "π", Value: math.Pi})
			case funcs[word]:
				toks = append(toks, Token{Kind: Func, Text: word})
			default:
				return nil, fmt.Errorf("unknown identifier %q", word)
			}
			i = j

		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}

	return toks, nil
}
