// Package model classifies fitted models into regimes and extracts the
// quantities fit statistics are computed from.
//
// Model fitting happens elsewhere. A caller describes a fitted model either by
// filling one of the adapter structs in this package (Linear, Panel,
// LinearMixed, Generalized, GeneralizedMixed) or by implementing the matching
// capability interface on its own type. Plain numeric vectors are passed as
// []float64 or Vector.
//
// Missing observations are NaN. Extract drops an observation from response,
// fitted values and residuals together, so the vectors in a Bundle always
// share one index set.
package model

// Model is the capability set shared by every fitted model.
type Model interface {
	// Response returns the observed values of the dependent variable.
	Response() ([]float64, error)
	// Fitted returns the fitted values on the response scale.
	Fitted() []float64
	// Residuals returns response-scale residuals.
	Residuals() []float64
	// DegreesOfFreedom returns the residual degrees of freedom reported by the fit.
	DegreesOfFreedom() float64
	// LogLikelihood returns the log-likelihood of the fit.
	LogLikelihood() float64
}

// LinearModel is a model that reports its own R² and adjusted R².
type LinearModel interface {
	Model
	RSquared() (r2, adjusted float64)
}

// PanelModel is a linear model estimated on panel data.
type PanelModel interface {
	LinearModel
	Effect() Effect
}

// MixedModel is a model with random effects.
type MixedModel interface {
	Model
	// VarianceComponents returns the random-effect variance decomposition.
	VarianceComponents() (VarianceComponents, error)
}

// GeneralizedModel is a model with a non-normal error family or a non-identity link.
type GeneralizedModel interface {
	Model
	Family() Family
	Link() Link
}

// NullRefitter is implemented by models that can be refit with every
// predictor removed. It returns the log-likelihood of the intercept-only fit.
type NullRefitter interface {
	NullLogLikelihood() (float64, error)
}

// VarianceComponents holds the random-effect variance decomposition of a mixed model.
type VarianceComponents struct {
	// Tau00 is the random-intercept variance.
	Tau00 float64
	// Tau11 is the random-slope variance. Only meaningful when HasSlope is set.
	Tau11 float64
	// Sigma2 is the residual variance.
	Sigma2 float64
	// HasSlope reports whether the model has a random slope term.
	HasSlope bool
}
