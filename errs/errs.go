// Package errs defines the error values returned by fitstat packages.
//
// Every sentinel wraps one of the github.com/containerd/errdefs classes, so
// callers can either match the exact condition with errors.Is or branch on the
// broader class with errdefs.IsInvalidArgument, errdefs.IsNotFound and friends.
package errs

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrUnsupportedModel is returned when the input does not belong to a regime
	// the requested statistic is defined for.
	ErrUnsupportedModel = fmt.Errorf("model type not supported for this statistic: %w", errdefs.ErrNotImplemented)

	// ErrDivisionByZero is returned when the denominator of a ratio is exactly zero.
	ErrDivisionByZero = fmt.Errorf("division by zero: %w", errdefs.ErrInvalidArgument)

	// ErrExtraction is returned when data required by a formula cannot be located
	// on the supplied model.
	ErrExtraction = fmt.Errorf("required data not found on model: %w", errdefs.ErrNotFound)

	// ErrCategoryCardinality is returned when a binary-response statistic is given
	// a response with other than two distinct values.
	ErrCategoryCardinality = fmt.Errorf("response must have exactly two distinct values: %w", errdefs.ErrInvalidArgument)

	// ErrInsufficientData is returned when too few observations remain to compute a statistic.
	ErrInsufficientData = fmt.Errorf("not enough observations: %w", errdefs.ErrInvalidArgument)

	// ErrInvalidResponse is returned when response values fall outside the
	// support of the model family.
	ErrInvalidResponse = fmt.Errorf("response values outside family support: %w", errdefs.ErrInvalidArgument)
)

// Frame errors.
var (
	ErrInvalidColumnName = fmt.Errorf("invalid column name: %w", errdefs.ErrInvalidArgument)
	ErrDuplicateColumn   = fmt.Errorf("column already exists: %w", errdefs.ErrAlreadyExists)
	ErrColumnLength      = fmt.Errorf("column length does not match frame: %w", errdefs.ErrInvalidArgument)
)

// Option errors.
var (
	ErrNilNullModel = fmt.Errorf("null model must not be nil: %w", errdefs.ErrInvalidArgument)
	ErrNilLogger    = fmt.Errorf("logger must not be nil: %w", errdefs.ErrInvalidArgument)
)
