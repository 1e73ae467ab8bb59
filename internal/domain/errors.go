package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the base kind for any construction-time validation
	// failure in this package.
	ErrValidation = errors.New("validation failed")

	// ErrBuildingFormat wraps ErrValidation so callers can still match the
	// generic kind, while the bot can render a specific retry prompt.
	ErrBuildingFormat = fmt.Errorf("%w: building format", ErrValidation)
)
