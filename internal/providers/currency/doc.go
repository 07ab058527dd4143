// Package currency implements the fixed-rate currency converter service.
//
// The converter is a small independent state machine: a canonical input
// digit-string, a selected pair and a direction flag. Rates are static,
// loaded once at startup from the built-in table or an optional YAML
// override file; there is no live rate fetching.
package currency
