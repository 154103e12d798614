// Package formula implements the fit and dispersion statistics as pure
// functions over already-aligned vectors.
//
// Inputs are assumed free of missing values; model.Extract produces vectors
// that satisfy this. Every function either returns a finite statistic or an
// error from the errs package, never a silent NaN or infinity, with the single
// exception of the documented NaN slope ratio in MixedRSquared.
package formula

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitstat/errs"
)

// CV calculates the coefficient of variation of x.
//
// Formula: CV = s / x̄, with s the sample standard deviation (n-1 denominator).
//
// Parameters:
//   - x: Observations, at least two
//
// Returns:
//   - float64: The coefficient of variation
//   - error: ErrInsufficientData for fewer than two values, ErrDivisionByZero
//     when the mean is exactly zero
func CV(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, fmt.Errorf("coefficient of variation needs 2 values, got %d: %w", len(x), errs.ErrInsufficientData)
	}

	mean, err := nonZeroMean(x)
	if err != nil {
		return 0, err
	}

	return stat.StdDev(x, nil) / mean, nil
}

// ModelCV calculates the coefficient of variation of a fitted model as its
// RMSE divided by the mean of the response.
func ModelCV(residuals, response []float64) (float64, error) {
	rmse, err := RMSE(residuals)
	if err != nil {
		return 0, err
	}

	mean, err := nonZeroMean(response)
	if err != nil {
		return 0, err
	}

	return rmse / mean, nil
}

func nonZeroMean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errs.ErrInsufficientData
	}

	mean := stat.Mean(x, nil)
	if mean == 0 {
		return 0, fmt.Errorf("mean of dependent variable is zero: %w", errs.ErrDivisionByZero)
	}

	return mean, nil
}

// MSE calculates the mean squared error: Σres² / n.
func MSE(residuals []float64) (float64, error) {
	if len(residuals) == 0 {
		return 0, fmt.Errorf("mean squared error of empty residuals: %w", errs.ErrInsufficientData)
	}

	return floats.Dot(residuals, residuals) / float64(len(residuals)), nil
}

// RMSE calculates the root mean square error: √(Σres² / n).
func RMSE(residuals []float64) (float64, error) {
	mse, err := MSE(residuals)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(mse), nil
}

// NormalizedRMSE calculates the RMSE divided by the range of the observed
// response, max(response) - min(response).
//
// The result is unchanged by adding a constant to the response (range and
// residuals are both shift invariant) but scales with it.
func NormalizedRMSE(residuals, response []float64) (float64, error) {
	rmse, err := RMSE(residuals)
	if err != nil {
		return 0, err
	}
	if len(response) == 0 {
		return 0, fmt.Errorf("normalized RMSE of empty response: %w", errs.ErrInsufficientData)
	}

	spread := floats.Max(response) - floats.Min(response)
	if spread == 0 {
		return 0, fmt.Errorf("range of dependent variable is zero: %w", errs.ErrDivisionByZero)
	}

	return rmse / spread, nil
}

// RSE calculates the residual standard error: √(Σres² / df), with df the
// residual degrees of freedom reported by the fit.
func RSE(residuals []float64, df float64) (float64, error) {
	if len(residuals) == 0 {
		return 0, fmt.Errorf("residual standard error of empty residuals: %w", errs.ErrInsufficientData)
	}
	if df <= 0 || math.IsNaN(df) {
		return 0, fmt.Errorf("residual degrees of freedom %v: %w", df, errs.ErrInsufficientData)
	}

	return math.Sqrt(floats.Dot(residuals, residuals) / df), nil
}
