// Package fitstat computes fit and dispersion statistics of already-fitted
// regression models and numeric vectors.
//
// # Supported Statistics
//
//   - CV: coefficient of variation of a vector, or RMSE over the mean response of a model
//   - RMSE, MSE, RSE: residual error measures, RMSE optionally normalized by the response range
//   - COD: Tjur's coefficient of discrimination for binary-response models
//   - R2: R² and its pseudo and mixed-model variants, chosen by model regime
//
// # Model Regimes
//
// Inputs are classified by model.Classify into one of: raw vector, linear,
// panel, linear mixed, generalized linear, generalized linear mixed. Each
// statistic is defined for a fixed set of regimes and returns
// ErrUnsupportedModel for the rest.
//
// # Basic Usage
//
//	data, _ := frame.New(
//	    frame.Column{Name: "mpg", Values: mpg},
//	    frame.Column{Name: "wt", Values: wt},
//	)
//	lm := model.Linear{
//	    Fit: model.Fit{
//	        Data:         data,
//	        ResponseVar:  "mpg",
//	        FittedValues: fitted,
//	        ResidualDF:   30,
//	    },
//	    RSq:    0.7528,
//	    AdjRSq: 0.7446,
//	}
//
//	rmse, err := fitstat.RMSE(lm, fitstat.WithNormalized())
//	r2, err := fitstat.R2(lm)
//	fmt.Println(r2) // Result{Kind: ols, R2: 0.7528, adj.R2: 0.7446}
//
// # Batch Evaluation
//
// R2Each, CODEach and the generic Each apply a statistic to several models in
// argument order. The first failure aborts the batch; no partial results are
// returned.
package fitstat

import (
	"fmt"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/formula"
	"github.com/arloliu/fitstat/model"
)

// Error values re-exported from the errs package.
var (
	ErrUnsupportedModel    = errs.ErrUnsupportedModel
	ErrDivisionByZero      = errs.ErrDivisionByZero
	ErrExtraction          = errs.ErrExtraction
	ErrCategoryCardinality = errs.ErrCategoryCardinality
	ErrInsufficientData    = errs.ErrInsufficientData
	ErrInvalidResponse     = errs.ErrInvalidResponse
)

// CV calculates the coefficient of variation.
//
// For a raw vector it is the sample standard deviation over the mean. For a
// linear or linear mixed model it is the RMSE over the mean of the response.
// Missing values are ignored. A zero mean returns ErrDivisionByZero.
func CV(v any, opts ...Option) (float64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	b, err := extract(v, cfg, "cv")
	if err != nil {
		return 0, err
	}

	switch b.Regime {
	case model.RegimeRawVector:
		return formula.CV(b.Response)
	case model.RegimeLinear, model.RegimeLinearMixed:
		return formula.ModelCV(b.Residuals, b.Response)
	default:
		return 0, unsupported("cv", b.Regime)
	}
}

// RMSE calculates the root mean square error of a fitted model.
//
// With WithNormalized the RMSE is divided by the range of the observed
// response. Raw vectors are not supported.
func RMSE(v any, opts ...Option) (float64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	b, err := extractFitted(v, cfg, "rmse")
	if err != nil {
		return 0, err
	}

	if cfg.Normalized {
		return formula.NormalizedRMSE(b.Residuals, b.Response)
	}

	return formula.RMSE(b.Residuals)
}

// MSE calculates the mean squared error of a fitted model.
func MSE(v any, opts ...Option) (float64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	b, err := extractFitted(v, cfg, "mse")
	if err != nil {
		return 0, err
	}

	return formula.MSE(b.Residuals)
}

// RSE calculates the residual standard error of a fitted model using the
// residual degrees of freedom the model reports.
func RSE(v any, opts ...Option) (float64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	b, err := extractFitted(v, cfg, "rse")
	if err != nil {
		return 0, err
	}

	return formula.RSE(b.Residuals, b.DF)
}

// extract classifies and extracts v, logging the chosen regime and any
// observations dropped for missingness.
func extract(v any, cfg *Config, statistic string) (model.Bundle, error) {
	b, err := model.Extract(v)
	if err != nil {
		return model.Bundle{}, err
	}

	cfg.Logger.Debug("dispatching statistic", "statistic", statistic, "regime", b.Regime.String(), "n", b.N)
	if b.Dropped > 0 {
		cfg.Logger.Warn("dropped incomplete observations", "statistic", statistic, "dropped", b.Dropped, "kept", b.N)
	}

	return b, nil
}

// extractFitted is extract restricted to fitted-model regimes.
func extractFitted(v any, cfg *Config, statistic string) (model.Bundle, error) {
	b, err := extract(v, cfg, statistic)
	if err != nil {
		return model.Bundle{}, err
	}

	switch b.Regime {
	case model.RegimeLinear, model.RegimeLinearMixed, model.RegimePanel,
		model.RegimeGeneralized, model.RegimeGeneralizedMixed:
		return b, nil
	default:
		return model.Bundle{}, unsupported(statistic, b.Regime)
	}
}

func unsupported(statistic string, regime model.Regime) error {
	return fmt.Errorf("%s of %s model: %w", statistic, regime, errs.ErrUnsupportedModel)
}
