package model

import (
	"fmt"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/frame"
)

// Vector is a raw numeric vector. NaN entries are treated as missing.
type Vector []float64

// Fit holds the quantities common to linear, panel and linear mixed models.
// The response is resolved from Data by ResponseVar.
type Fit struct {
	// Data is the data the model was fitted on.
	Data *frame.Frame
	// ResponseVar is the name of the dependent variable in Data.
	ResponseVar string
	// FittedValues are the fitted values, one per row of Data. NaN for dropped rows.
	FittedValues []float64
	// ResidualValues are the residuals, one per row of Data. When nil they are
	// derived as response minus fitted.
	ResidualValues []float64
	// ResidualDF is the residual degrees of freedom reported by the fit.
	ResidualDF float64
	// LogLik is the log-likelihood of the fit.
	LogLik float64
}

// Response looks the response variable up in the model data.
func (f Fit) Response() ([]float64, error) {
	if f.ResponseVar == "" {
		return nil, fmt.Errorf("model has no response variable: %w", errs.ErrExtraction)
	}

	return f.Data.Lookup(f.ResponseVar)
}

// Fitted returns the fitted values.
func (f Fit) Fitted() []float64 { return f.FittedValues }

// Residuals returns the residuals, deriving them when not supplied.
func (f Fit) Residuals() []float64 {
	if f.ResidualValues != nil {
		return f.ResidualValues
	}

	y, err := f.Response()
	if err != nil {
		return nil
	}

	return responseResiduals(y, f.FittedValues)
}

// DegreesOfFreedom returns the residual degrees of freedom.
func (f Fit) DegreesOfFreedom() float64 { return f.ResidualDF }

// LogLikelihood returns the log-likelihood.
func (f Fit) LogLikelihood() float64 { return f.LogLik }

// Linear is an ordinary least-squares linear model.
type Linear struct {
	Fit
	// RSq and AdjRSq are the R² and adjusted R² reported by the fit.
	RSq, AdjRSq float64
}

// RSquared returns the reported R² and adjusted R².
func (l Linear) RSquared() (r2, adjusted float64) { return l.RSq, l.AdjRSq }

// Panel is a linear model estimated on panel data.
type Panel struct {
	Fit
	Estimator   Effect
	RSq, AdjRSq float64
}

// RSquared returns the reported R² and adjusted R².
func (p Panel) RSquared() (r2, adjusted float64) { return p.RSq, p.AdjRSq }

// Effect returns the panel estimator.
func (p Panel) Effect() Effect { return p.Estimator }

// LinearMixed is a linear mixed-effects model.
type LinearMixed struct {
	Fit
	// Components is the variance decomposition produced for this model. Nil
	// when it has not been computed.
	Components *VarianceComponents
}

// VarianceComponents returns the variance decomposition.
func (m LinearMixed) VarianceComponents() (VarianceComponents, error) {
	return componentsOf(m.Components)
}

// Generalized is a generalized linear model.
type Generalized struct {
	// Observed is the observed outcome, e.g. 0/1 for a binomial model.
	Observed []float64
	// Predicted are response-scale predictions (probabilities for a binomial
	// model), one per observation. NaN for dropped observations.
	Predicted []float64
	// ResidualValues are response-scale residuals. When nil they are derived
	// as observed minus predicted.
	ResidualValues []float64
	ResidualDF     float64
	LogLik         float64
	Distribution   Family
	LinkFunction   Link
	// Refit, when set, refits the model with every predictor removed and
	// returns the log-likelihood of that fit. When nil the closed-form
	// intercept-only likelihood of Distribution is used.
	Refit func() (float64, error)
}

// Response returns the observed outcome.
func (g Generalized) Response() ([]float64, error) {
	if g.Observed == nil {
		return nil, fmt.Errorf("model has no observed outcome: %w", errs.ErrExtraction)
	}

	return g.Observed, nil
}

// Fitted returns the response-scale predictions.
func (g Generalized) Fitted() []float64 { return g.Predicted }

// Residuals returns response-scale residuals, deriving them when not supplied.
func (g Generalized) Residuals() []float64 {
	if g.ResidualValues != nil {
		return g.ResidualValues
	}

	return responseResiduals(g.Observed, g.Predicted)
}

// DegreesOfFreedom returns the residual degrees of freedom.
func (g Generalized) DegreesOfFreedom() float64 { return g.ResidualDF }

// LogLikelihood returns the log-likelihood.
func (g Generalized) LogLikelihood() float64 { return g.LogLik }

// Family returns the error distribution.
func (g Generalized) Family() Family { return g.Distribution }

// Link returns the link function.
func (g Generalized) Link() Link { return g.LinkFunction }

// NullLogLikelihood returns the log-likelihood of the intercept-only model.
func (g Generalized) NullLogLikelihood() (float64, error) {
	if g.Refit != nil {
		return g.Refit()
	}

	b, err := Extract(g)
	if err != nil {
		return 0, err
	}

	return InterceptOnlyLogLikelihood(g.Distribution, b.Response)
}

// GeneralizedMixed is a generalized linear mixed-effects model.
type GeneralizedMixed struct {
	Generalized
	Components *VarianceComponents
}

// VarianceComponents returns the variance decomposition.
func (m GeneralizedMixed) VarianceComponents() (VarianceComponents, error) {
	return componentsOf(m.Components)
}

func componentsOf(vc *VarianceComponents) (VarianceComponents, error) {
	if vc == nil {
		return VarianceComponents{}, fmt.Errorf("variance components not available: %w", errs.ErrExtraction)
	}

	return *vc, nil
}

// responseResiduals returns y - fitted, or nil when the lengths differ so
// that Extract reports the mismatch.
func responseResiduals(y, fitted []float64) []float64 {
	if len(y) != len(fitted) {
		return nil
	}

	res := make([]float64, len(y))
	for i := range y {
		res[i] = y[i] - fitted[i]
	}

	return res
}
