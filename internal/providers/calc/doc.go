// Package calc implements the scientific calculator service.
//
// The calculator is organized around three pieces:
//   - Builder: accumulates a textual expression from discrete input tokens
//     (digits, operators, the smart parenthesis key, function keys) and
//     keeps a live preview current after every edit
//   - Ledger: append-only bounded history of committed calculations
//   - Session/Manager: one builder+ledger per session, shared default
//     session for callers that do not manage their own
//
// Evaluation is delegated to internal/engine: a tokenizer, a
// recursive-descent parser and a tree evaluator, so there is no dynamic
// code construction anywhere in the pipeline.
//
// Example Usage:
//
//	p := calc.NewProvider(50, logger)
//	result, err := p.Execute(ctx, "calc.input", map[string]interface{}{"value": "2"}, nil)
package calc
