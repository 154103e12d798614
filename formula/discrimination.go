package formula

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/internal/pool"
)

// TjurD calculates Tjur's coefficient of discrimination for a binary response.
//
// The two distinct response values are ordered ascending; D is the absolute
// difference between the mean predicted probability of observations in the
// upper category and that of observations in the lower one.
//
// Parameters:
//   - response: Observed outcomes with exactly two distinct values
//   - predicted: Response-scale predictions aligned with response
//
// Returns:
//   - float64: D in [0, 1] for probability predictions
//   - error: ErrExtraction on length mismatch, ErrCategoryCardinality when
//     response does not have exactly two distinct values
func TjurD(response, predicted []float64) (float64, error) {
	if len(response) != len(predicted) {
		return 0, fmt.Errorf("response has %d observations, predictions %d: %w",
			len(response), len(predicted), errs.ErrExtraction)
	}

	categories, release := pool.CloneFloat64(response)
	defer release()
	slices.Sort(categories)
	categories = slices.Compact(categories)
	if len(categories) != 2 {
		return 0, fmt.Errorf("found %d distinct response values: %w", len(categories), errs.ErrCategoryCardinality)
	}

	lower := make([]float64, 0, len(response))
	upper := make([]float64, 0, len(response))
	for i, y := range response {
		if y == categories[0] {
			lower = append(lower, predicted[i])
		} else {
			upper = append(upper, predicted[i])
		}
	}

	return math.Abs(stat.Mean(upper, nil) - stat.Mean(lower, nil)), nil
}
