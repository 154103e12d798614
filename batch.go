package fitstat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/result"
)

// Statistic is the signature shared by the single-model functions of this
// package, e.g. CV, RMSE or R2.
type Statistic[T any] func(v any, opts ...Option) (T, error)

// Each applies statistic to every model in argument order with the same
// options and returns the results in that order.
//
// Log records of one call carry the same "batch" identifier.
//
// The batch fails as a whole: the first error is returned, annotated with the
// index of the failing model, and no partial results are returned.
//
// Example:
//
//	rmses, err := fitstat.Each[float64]([]any{m1, m2, m3}, fitstat.RMSE)
func Each[T any](models []any, statistic Statistic[T], opts ...Option) ([]T, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("no models provided: %w", errs.ErrInsufficientData)
	}
	if statistic == nil {
		return nil, errors.New("nil statistic")
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	batch := uuid.NewString()
	results := make([]T, len(models))
	for i, m := range models {
		cfg.Logger.Debug("evaluating model", "batch", batch, "index", i, "type", fmt.Sprintf("%T", m))

		r, err := statistic(m, opts...)
		if err != nil {
			cfg.Logger.Error("batch evaluation failed", "batch", batch, "index", i, "error", err)
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		results[i] = r
	}

	return results, nil
}

// R2Each calculates R2 for each model. See Each for the batch semantics.
func R2Each(models []any, opts ...Option) ([]*result.Result, error) {
	return Each[*result.Result](models, R2, opts...)
}

// CODEach calculates COD for each model. See Each for the batch semantics.
func CODEach(models []any, opts ...Option) ([]*result.Result, error) {
	return Each[*result.Result](models, COD, opts...)
}
