package currency

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Pair is a fixed exchange-rate relation between two named units.
// Rate is expressed as units of "to" per one unit of "from".
type Pair struct {
	ID         string  `json:"id" yaml:"id"`
	Rate       float64 `json:"rate" yaml:"rate"`
	FromSymbol string  `json:"from_symbol" yaml:"from_symbol"`
	ToSymbol   string  `json:"to_symbol" yaml:"to_symbol"`
	FromName   string  `json:"from_name" yaml:"from_name"`
	ToName     string  `json:"to_name" yaml:"to_name"`
}

type ratesFile struct {
	Pairs []Pair `yaml:"pairs"`
}

// DefaultPairs returns the built-in pair table
func DefaultPairs() []Pair {
	return []Pair{
		{ID: "usd-ngn", Rate: 1580, FromSymbol: "$", ToSymbol: "₦", FromName: "US Dollar", ToName: "Nigerian Naira"},
		{ID: "usd-eur", Rate: 0.92, FromSymbol: "$", ToSymbol: "€", FromName: "US Dollar", ToName: "Euro"},
		{ID: "usd-gbp", Rate: 0.79, FromSymbol: "$", ToSymbol: "£", FromName: "US Dollar", ToName: "British Pound"},
		{ID: "eur-ngn", Rate: 1717.39, FromSymbol: "€", ToSymbol: "₦", FromName: "Euro", ToName: "Nigerian Naira"},
		{ID: "gbp-ngn", Rate: 2000, FromSymbol: "£", ToSymbol: "₦", FromName: "British Pound", ToName: "Nigerian Naira"},
		{ID: "usd-cad", Rate: 1.36, FromSymbol: "$", ToSymbol: "C$", FromName: "US Dollar", ToName: "Canadian Dollar"},
	}
}

// LoadPairs reads a pair table from a YAML file
func LoadPairs(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file: %w", err)
	}

	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rates file: %w", err)
	}
	if len(f.Pairs) == 0 {
		return nil, fmt.Errorf("rates file %s defines no pairs", path)
	}

	for i, p := range f.Pairs {
		if p.ID == "" {
			return nil, fmt.Errorf("pair %d has no id", i)
		}
		if p.Rate <= 0 {
			return nil, fmt.Errorf("pair %s has non-positive rate %v", p.ID, p.Rate)
		}
	}
	return f.Pairs, nil
}
