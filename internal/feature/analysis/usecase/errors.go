// Package usecase implements the company analysis pipeline: routing, specialist synthesis
// and the orchestrator that streams progress events.
package usecase

import "errors"

var (
	// ErrInvalidLLMResponse is returned when a JSON-mode completion cannot be decoded.
	ErrInvalidLLMResponse = errors.New("invalid llm response")

	// ErrMissingField is returned when a required field is absent from a router response.
	ErrMissingField = errors.New("missing field in llm response")

	// ErrUnknownIntent is returned when the router labels a request with an unsupported intent.
	ErrUnknownIntent = errors.New("unknown intent")
)
