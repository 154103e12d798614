package formula

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/model"
)

// PseudoRSquared calculates Cox & Snell's and Nagelkerke's pseudo-R² from
// the log-likelihoods of the intercept-only and the full model.
//
// Formulas:
//   - CoxSnell = 1 - exp(2 (llNull - llFull) / n)
//   - Nagelkerke = CoxSnell / (1 - exp(2 llNull / n))
//
// Parameters:
//   - llNull: Log-likelihood of the model refit with every predictor removed
//   - llFull: Log-likelihood of the fitted model
//   - n: Number of observations used by the fit
//
// Returns:
//   - coxSnell, nagelkerke: Both zero when llNull equals llFull
//   - err: ErrInsufficientData for n <= 0, ErrDivisionByZero when llNull is zero
func PseudoRSquared(llNull, llFull float64, n int) (coxSnell, nagelkerke float64, err error) {
	if n <= 0 {
		return 0, 0, fmt.Errorf("pseudo R² with %d observations: %w", n, errs.ErrInsufficientData)
	}

	nf := float64(n)
	coxSnell = 1 - math.Exp(2*(llNull-llFull)/nf)

	maxCoxSnell := 1 - math.Exp(2*llNull/nf)
	if maxCoxSnell == 0 {
		return 0, 0, fmt.Errorf("maximum Cox & Snell R² is zero: %w", errs.ErrDivisionByZero)
	}
	nagelkerke = coxSnell / maxCoxSnell

	return coxSnell, nagelkerke, nil
}

// Line is a least-squares line y = Intercept + Slope*x.
type Line struct {
	Intercept float64
	Slope     float64
	// RSquared is the coefficient of determination of the fit.
	RSquared float64
}

// Estimate returns the value of the line at x.
func (l Line) Estimate(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// String returns a string representation of the line.
func (l Line) String() string {
	return fmt.Sprintf("y = %.4f + %.4f * x (R²: %.4f)", l.Intercept, l.Slope, l.RSquared)
}

// FitLine fits y = a + b*x by ordinary least squares.
func FitLine(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("mismatched data lengths: %d x vs %d y: %w", len(x), len(y), errs.ErrExtraction)
	}
	if len(x) < 2 {
		return Line{}, fmt.Errorf("insufficient data points for regression: %d: %w", len(x), errs.ErrInsufficientData)
	}
	if stat.Variance(x, nil) == 0 {
		return Line{}, fmt.Errorf("predictor is constant: %w", errs.ErrDivisionByZero)
	}
	if stat.Variance(y, nil) == 0 {
		return Line{}, fmt.Errorf("response is constant: %w", errs.ErrDivisionByZero)
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	return Line{
		Intercept: alpha,
		Slope:     beta,
		RSquared:  stat.RSquared(x, y, nil, alpha, beta),
	}, nil
}

// Omega2 calculates 1 - var(residuals)/var(response).
func Omega2(residuals, response []float64) (float64, error) {
	if len(residuals) < 2 || len(response) < 2 {
		return 0, fmt.Errorf("omega² needs 2 observations: %w", errs.ErrInsufficientData)
	}

	vy := stat.Variance(response, nil)
	if vy == 0 {
		return 0, fmt.Errorf("variance of dependent variable is zero: %w", errs.ErrDivisionByZero)
	}

	return 1 - stat.Variance(residuals, nil)/vy, nil
}

// MixedDecomposition is the explained-variance decomposition of a linear
// mixed model against its null model.
type MixedDecomposition struct {
	// Tau00 is the proportional reduction of the random-intercept variance.
	Tau00 float64
	// Tau11 is the proportional reduction of the random-slope variance; NaN
	// when either model lacks a random slope.
	Tau11 float64
	// Total is the proportional reduction of τ00 + σ².
	Total float64
	// Omega2 is 1 - σ²_full / σ²_null.
	Omega2 float64
}

// MixedRSquared compares the variance components of a full linear mixed
// model with those of its null (intercept-only) counterpart.
//
// Formulas:
//   - R2(tau-00) = (τ00_null - τ00_full) / τ00_null
//   - R2(tau-11) = (τ11_null - τ11_full) / τ11_null
//   - R2 = ((τ00_null+σ²_null) - (τ00_full+σ²_full)) / (τ00_null+σ²_null)
//   - O2 = 1 - σ²_full / σ²_null
func MixedRSquared(full, null model.VarianceComponents) (MixedDecomposition, error) {
	if null.Tau00 == 0 {
		return MixedDecomposition{}, fmt.Errorf("random-intercept variance of null model is zero: %w", errs.ErrDivisionByZero)
	}
	if null.Sigma2 == 0 {
		return MixedDecomposition{}, fmt.Errorf("residual variance of null model is zero: %w", errs.ErrDivisionByZero)
	}

	d := MixedDecomposition{
		Tau00:  (null.Tau00 - full.Tau00) / null.Tau00,
		Tau11:  math.NaN(),
		Omega2: 1 - full.Sigma2/null.Sigma2,
	}

	nullTotal := null.Tau00 + null.Sigma2
	if nullTotal == 0 {
		return MixedDecomposition{}, fmt.Errorf("total variance of null model is zero: %w", errs.ErrDivisionByZero)
	}
	d.Total = (nullTotal - (full.Tau00 + full.Sigma2)) / nullTotal

	if full.HasSlope && null.HasSlope {
		if null.Tau11 == 0 {
			return MixedDecomposition{}, fmt.Errorf("random-slope variance of null model is zero: %w", errs.ErrDivisionByZero)
		}
		d.Tau11 = (null.Tau11 - full.Tau11) / null.Tau11
	}

	return d, nil
}
