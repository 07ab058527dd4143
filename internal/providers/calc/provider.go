package calc

import (
	"context"
	"fmt"

	"github.com/calcdeck/backend/internal/infrastructure/logging"
	"github.com/calcdeck/backend/internal/infrastructure/monitoring"
	"github.com/calcdeck/backend/internal/providers/common"
	"github.com/calcdeck/backend/internal/shared/types"
	"go.uber.org/zap"
)

// functionNames lists every key calc.function accepts
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"log": true, "ln": true, "sqrt": true, "abs": true,
	"pow": true, "pi": true, "e": true,
	"factorial": true, "inv": true,
}

// Provider implements the calculator service
type Provider struct {
	sessions *Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewProvider creates a calculator provider
func NewProvider(historyLimit int, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		sessions: NewManager(historyLimit),
		logger:   logger,
	}
}

// WithMetrics attaches a metrics collector
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Sessions exposes the session manager for transport handlers
func (p *Provider) Sessions() *Manager {
	return p.sessions
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "calc",
		Name:        "Calculator Service",
		Description: "Scientific calculator with live preview and bounded history",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"expression_building",
			"live_preview",
			"scientific_functions",
			"history",
			"sessions",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	sessionParam := types.Parameter{
		Name: "session_id", Type: "string",
		Description: "Calculator session (defaults to the shared session)",
	}

	return []types.Tool{
		{
			ID:          "calc.input",
			Name:        "Input Digit",
			Description: "Append a digit or decimal point to the expression",
			Parameters: []types.Parameter{
				{Name: "value", Type: "string", Description: "Digit 0-9 or '.'", Required: true},
				sessionParam,
			},
			Returns: "Projection",
		},
		{
			ID:          "calc.operator",
			Name:        "Input Operator",
			Description: "Append a binary operator (+, -, *, /), replacing a trailing one",
			Parameters: []types.Parameter{
				{Name: "value", Type: "string", Description: "Operator character", Required: true},
				sessionParam,
			},
			Returns: "Projection",
		},
		{
			ID:          "calc.paren",
			Name:        "Smart Parenthesis",
			Description: "Open, close or implicitly multiply into a group based on context",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.function",
			Name:        "Apply Function",
			Description: "Apply a scientific function, constant, factorial, square or reciprocal",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "sin, cos, tan, log, ln, sqrt, abs, pow, pi, e, factorial, inv", Required: true},
				sessionParam,
			},
			Returns: "Projection",
		},
		{
			ID:          "calc.sign",
			Name:        "Toggle Sign",
			Description: "Negate the current expression or the last answer",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.backspace",
			Name:        "Backspace",
			Description: "Remove the last character, or a whole function prefix atomically",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.clear",
			Name:        "Clear",
			Description: "Reset expression, result and last answer",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.equals",
			Name:        "Equals",
			Description: "Commit the expression: evaluate, record history, set last answer",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.state",
			Name:        "State",
			Description: "Read the current display projection",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Projection",
		},
		{
			ID:          "calc.history.list",
			Name:        "List History",
			Description: "List committed calculations, newest first",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "array",
		},
		{
			ID:          "calc.history.recall",
			Name:        "Recall History",
			Description: "Restore a history entry as the current answer",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "Entry index, newest first", Required: true},
				sessionParam,
			},
			Returns: "Projection",
		},
		{
			ID:          "calc.history.clear",
			Name:        "Clear History",
			Description: "Empty the history ledger",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "object",
		},
		{
			ID:          "calc.session.create",
			Name:        "Create Session",
			Description: "Create an isolated calculator session",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "calc.session.close",
			Name:        "Close Session",
			Description: "Discard a calculator session",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Session to close", Required: true},
			},
			Returns: "object",
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
	case "calc.input":
		value, ok := common.GetString(params, "value")
		if !ok {
			return common.Failure("value parameter required")
		}
		return projection(p.session(params).InputDigit(value))

	case "calc.operator":
		value, ok := common.GetString(params, "value")
		if !ok {
			return common.Failure("value parameter required")
		}
		return projection(p.session(params).InputOperator(value))

	case "calc.paren":
		return projection(p.session(params).SmartParen())

	case "calc.function":
		name, ok := common.GetString(params, "name")
		if !ok {
			return common.Failure("name parameter required")
		}
		if !functionNames[name] {
			return common.Failure(fmt.Sprintf("unknown function: %s", name))
		}
		return projection(p.session(params).ApplyFunction(name))

	case "calc.sign":
		return projection(p.session(params).ToggleSign())

	case "calc.backspace":
		return projection(p.session(params).Backspace())

	case "calc.clear":
		return projection(p.session(params).Clear())

	case "calc.equals":
		sess := p.session(params)
		proj, outcome := sess.Equals()
		if p.metrics != nil && outcome != OutcomeNoop {
			p.metrics.RecordEvaluation(outcome)
		}
		if outcome != OutcomeOK && outcome != OutcomeNoop {
			p.logger.Debug("evaluation failed",
				zap.String("session", sess.ID),
				zap.String("outcome", outcome),
			)
		}
		return common.Success(map[string]interface{}{
			"expression": proj.Expression,
			"display":    proj.Display,
			"result":     proj.Result,
			"outcome":    outcome,
		})

	case "calc.state":
		return projection(p.session(params).State())

	case "calc.history.list":
		entries := p.session(params).HistoryEntries()
		return common.Success(map[string]interface{}{
			"entries": entries,
			"count":   len(entries),
		})

	case "calc.history.recall":
		index, ok := common.GetInt(params, "index")
		if !ok {
			return common.Failure("index parameter required")
		}
		// Out-of-range recall is a silent no-op: state is returned unchanged.
		proj, recalled := p.session(params).HistoryRecall(index)
		return common.Success(map[string]interface{}{
			"expression": proj.Expression,
			"display":    proj.Display,
			"result":     proj.Result,
			"recalled":   recalled,
		})

	case "calc.history.clear":
		p.session(params).HistoryClear()
		return common.Success(map[string]interface{}{"cleared": true})

	case "calc.session.create":
		sess := p.sessions.Create()
		return common.Success(map[string]interface{}{"session_id": sess.ID})

	case "calc.session.close":
		id, ok := common.GetString(params, "session_id")
		if !ok {
			return common.Failure("session_id parameter required")
		}
		return common.Success(map[string]interface{}{"closed": p.sessions.Close(id)})

	default:
		return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) session(params map[string]interface{}) *Session {
	id, ok := common.GetString(params, "session_id")
	if !ok || id == "" {
		id = DefaultSessionID
	}
	return p.sessions.GetOrCreate(id)
}

func projection(proj Projection) (*types.Result, error) {
	return common.Success(map[string]interface{}{
		"expression": proj.Expression,
		"display":    proj.Display,
		"result":     proj.Result,
	})
}
