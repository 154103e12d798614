package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitstat/errs"
)

// Bundle is the aligned view of a model that formulas consume.
//
// Response, Fitted and Residuals have the same length and refer to the same
// observations. For RegimeRawVector only Response is set.
type Bundle struct {
	Regime    Regime
	Response  []float64
	Fitted    []float64
	Residuals []float64
	LogLik    float64
	DF        float64
	// N is the number of observations kept.
	N int
	// Dropped is the number of observations removed because at least one of
	// response, fitted value or residual was missing.
	Dropped int
}

// Extract classifies v and returns its aligned bundle.
func Extract(v any) (Bundle, error) {
	regime, err := Classify(v)
	if err != nil {
		return Bundle{}, err
	}

	if regime == RegimeRawVector {
		return extractVector(v)
	}

	m, ok := v.(Model)
	if !ok {
		return Bundle{}, fmt.Errorf("%T: %w", v, errs.ErrUnsupportedModel)
	}

	y, err := m.Response()
	if err != nil {
		return Bundle{}, err
	}
	fitted := m.Fitted()
	res := m.Residuals()
	if len(fitted) != len(y) || len(res) != len(y) {
		return Bundle{}, fmt.Errorf("response has %d observations, fitted %d, residuals %d: %w",
			len(y), len(fitted), len(res), errs.ErrExtraction)
	}

	b := Bundle{
		Regime:    regime,
		Response:  make([]float64, 0, len(y)),
		Fitted:    make([]float64, 0, len(y)),
		Residuals: make([]float64, 0, len(y)),
		LogLik:    m.LogLikelihood(),
		DF:        m.DegreesOfFreedom(),
	}
	for i := range y {
		if math.IsNaN(y[i]) || math.IsNaN(fitted[i]) || math.IsNaN(res[i]) {
			b.Dropped++
			continue
		}
		b.Response = append(b.Response, y[i])
		b.Fitted = append(b.Fitted, fitted[i])
		b.Residuals = append(b.Residuals, res[i])
	}
	b.N = len(b.Response)

	if b.N == 0 {
		return Bundle{}, fmt.Errorf("no complete observations: %w", errs.ErrInsufficientData)
	}

	return b, nil
}

func extractVector(v any) (Bundle, error) {
	var x []float64
	switch vec := v.(type) {
	case []float64:
		x = vec
	case Vector:
		x = vec
	}

	b := Bundle{Regime: RegimeRawVector, Response: make([]float64, 0, len(x))}
	for _, xi := range x {
		if math.IsNaN(xi) {
			b.Dropped++
			continue
		}
		b.Response = append(b.Response, xi)
	}
	b.N = len(b.Response)

	if b.N == 0 {
		return Bundle{}, fmt.Errorf("no non-missing values: %w", errs.ErrInsufficientData)
	}

	return b, nil
}

// Components returns the variance components of a mixed model.
func Components(v any) (VarianceComponents, error) {
	regime, err := Classify(v)
	if err != nil {
		return VarianceComponents{}, err
	}
	if !regime.IsMixed() {
		return VarianceComponents{}, fmt.Errorf("%s model has no variance components: %w", regime, errs.ErrUnsupportedModel)
	}

	return v.(MixedModel).VarianceComponents()
}

// NullLogLikelihood returns the log-likelihood of the intercept-only
// counterpart of a generalized linear model. Models implementing NullRefitter
// are asked to refit themselves; otherwise the closed-form maximum likelihood
// of the intercept-only model for the family is used.
func NullLogLikelihood(v any) (float64, error) {
	regime, err := Classify(v)
	if err != nil {
		return 0, err
	}
	if regime != RegimeGeneralized {
		return 0, fmt.Errorf("null log-likelihood of %s model: %w", regime, errs.ErrUnsupportedModel)
	}

	if r, ok := v.(NullRefitter); ok {
		return r.NullLogLikelihood()
	}

	b, err := Extract(v)
	if err != nil {
		return 0, err
	}

	return InterceptOnlyLogLikelihood(v.(GeneralizedModel).Family(), b.Response)
}

// InterceptOnlyLogLikelihood returns the maximized log-likelihood of an
// intercept-only model of family f fitted to y.
func InterceptOnlyLogLikelihood(f Family, y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, errs.ErrInsufficientData
	}

	mean := stat.Mean(y, nil)
	switch f {
	case Binomial:
		var ll float64
		for _, yi := range y {
			if yi < 0 || yi > 1 {
				return 0, fmt.Errorf("binomial outcome %v: %w", yi, errs.ErrInvalidResponse)
			}
			ll += xlogy(yi, mean) + xlogy(1-yi, 1-mean)
		}

		return ll, nil
	case Poisson:
		var ll float64
		for _, yi := range y {
			if yi < 0 {
				return 0, fmt.Errorf("poisson count %v: %w", yi, errs.ErrInvalidResponse)
			}
			lfact, _ := math.Lgamma(yi + 1)
			ll += xlogy(yi, mean) - mean - lfact
		}

		return ll, nil
	case Gaussian:
		n := float64(len(y))
		_, variance := stat.PopMeanVariance(y, nil)
		if variance == 0 {
			return 0, fmt.Errorf("constant gaussian response: %w", errs.ErrInvalidResponse)
		}

		return -n / 2 * (math.Log(2*math.Pi*variance) + 1), nil
	default:
		return 0, fmt.Errorf("family %s: %w", f, errs.ErrUnsupportedModel)
	}
}

// xlogy returns x*log(y), treating 0*log(0) as 0.
func xlogy(x, y float64) float64 {
	if x == 0 {
		return 0
	}

	return x * math.Log(y)
}
