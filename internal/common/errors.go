// Package common defines sentinel errors shared across the vault layers.
// Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Codec-level error: the message carries none of the storable payload kinds.
	ErrUnsupportedContent = errors.New("unsupported content")

	// Dispatch-level error: the contact exchange has not been completed yet.
	ErrRegistrationRequired = errors.New("registration required")

	// Generic internal failure.
	ErrorInternal = errors.New("internal error")
)
