// Package common defines shared sentinel errors used across the portfolio
// service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. Every authentication or authorization failure collapses
	// into this single value so callers cannot tell which sub-check failed.
	ErrorUnauthorized = errors.New("unauthorized")

	// Upload validation errors. These are the one category where detail is
	// intentionally exposed to the editing UI.
	ErrorNoFile          = errors.New("no image file provided")
	ErrorUnsupportedType = errors.New("unsupported image type")
	ErrorFileTooLarge    = errors.New("file too large")
)
