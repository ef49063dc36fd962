package domain

import "errors"

var (
	// ErrProviderUnavailable signals a provider timeout, network failure, or quota exhaustion.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrMalformedResponse signals a provider response that failed JSON or schema parsing.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrValidation signals an input record missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrProviderExhausted signals that every provider in a chain failed.
	ErrProviderExhausted = errors.New("provider chain exhausted")
	// ErrNotFound signals a missing stored resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyProcessed signals a record that already produced metrics.
	ErrAlreadyProcessed = errors.New("record already processed")
)
