package currency

import (
	"context"
	"fmt"

	"github.com/calcdeck/backend/internal/infrastructure/logging"
	"github.com/calcdeck/backend/internal/infrastructure/monitoring"
	"github.com/calcdeck/backend/internal/providers/common"
	"github.com/calcdeck/backend/internal/shared/types"
)

// Provider implements the fixed-rate currency converter service
type Provider struct {
	converter *Converter
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewProvider creates a currency provider over the given pair table
func NewProvider(pairs []Pair, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(pairs) == 0 {
		pairs = DefaultPairs()
	}
	return &Provider{
		converter: NewConverter(pairs),
		logger:    logger,
	}
}

// WithMetrics attaches a metrics collector
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "currency",
		Name:        "Currency Service",
		Description: "Fixed-rate currency conversion with pair selection and direction swap",
		Category:    types.CategoryFinance,
		Capabilities: []string{
			"conversion",
			"pair_selection",
			"direction_swap",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "currency.pairs",
			Name:        "List Pairs",
			Description: "List the available currency pairs",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
		{
			ID:          "currency.select",
			Name:        "Select Pair",
			Description: "Select a pair, resetting direction and input",
			Parameters: []types.Parameter{
				{Name: "pair", Type: "string", Description: "Pair id, e.g. usd-ngn", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "currency.input",
			Name:        "Input Digit",
			Description: "Append a digit or decimal point to the amount",
			Parameters: []types.Parameter{
				{Name: "value", Type: "string", Description: "Digit 0-9 or '.'", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "currency.backspace",
			Name:        "Backspace",
			Description: "Remove the last character of the amount",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "currency.clear",
			Name:        "Clear",
			Description: "Reset the amount to zero",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "currency.swap",
			Name:        "Swap Direction",
			Description: "Invert the conversion direction and re-convert",
			Parameters:  []types.Parameter{},
			Returns:     "Conversion",
		},
		{
			ID:          "currency.convert",
			Name:        "Convert",
			Description: "Convert the current amount through the selected pair",
			Parameters:  []types.Parameter{},
			Returns:     "Conversion",
		},
		{
			ID:          "currency.state",
			Name:        "State",
			Description: "Read the converter state",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
	}
}

// Execute routes tool invocations
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	timer := monitoring.NewTimer(p.metrics, toolID)
	result, err := p.execute(toolID, params)
	if result != nil && result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("error")
	}
	return result, err
}

func (p *Provider) execute(toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "currency.pairs":
		pairs := p.converter.Pairs()
		return common.Success(map[string]interface{}{
			"pairs": pairs,
			"count": len(pairs),
		})

	case "currency.select":
		id, ok := common.GetString(params, "pair")
		if !ok {
			return common.Failure("pair parameter required")
		}
		if err := p.converter.Select(id); err != nil {
			return common.Failure(err.Error())
		}
		return p.state()

	case "currency.input":
		value, ok := common.GetString(params, "value")
		if !ok {
			return common.Failure("value parameter required")
		}
		p.converter.InputDigit(value)
		return p.state()

	case "currency.backspace":
		p.converter.Backspace()
		return p.state()

	case "currency.clear":
		p.converter.Clear()
		return p.state()

	case "currency.swap":
		p.converter.Swap()
		return p.convert()

	case "currency.convert":
		return p.convert()

	case "currency.state":
		return p.state()

	default:
		return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) convert() (*types.Result, error) {
	_, pairID, _ := p.converter.State()

	conv, err := p.converter.Convert()
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordConversion(pairID, "invalid")
		}
		// The widget shows a literal "Invalid" marker on unparseable input.
		return common.Success(map[string]interface{}{
			"valid":  false,
			"result": "Invalid",
		})
	}

	if p.metrics != nil {
		p.metrics.RecordConversion(pairID, "ok")
	}
	return common.Success(map[string]interface{}{
		"valid":      true,
		"input":      conv.Input,
		"from":       conv.From,
		"to":         conv.To,
		"result":     conv.To,
		"rate":       conv.Rate,
		"from_label": conv.FromLabel,
		"to_label":   conv.ToLabel,
	})
}

func (p *Provider) state() (*types.Result, error) {
	input, pairID, swapped := p.converter.State()
	return common.Success(map[string]interface{}{
		"input":   input,
		"pair":    pairID,
		"swapped": swapped,
	})
}
