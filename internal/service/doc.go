// Package service provides the registry routing tool calls to providers.
//
// The registry maintains a catalog of service providers (calculator,
// currency) and routes tool invocations by the tool ID prefix: a call to
// "calc.equals" reaches the provider registered under "calc".
//
// Components:
//   - Registry: Central service catalog
//   - Provider: Interface for service implementations
//   - Service discovery with relevance scoring
//
// Features:
//   - Thread-safe service registration
//   - Category-based filtering
//   - Intent-based discovery with scoring
//   - Tool execution with context passing
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(calcProvider)
//	result, err := registry.Execute(ctx, "calc.equals", params, appCtx)
package service
