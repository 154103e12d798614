package model

import (
	"fmt"

	"github.com/arloliu/fitstat/errs"
)

// Classify returns the regime of v.
//
// Capability sets are checked from the most to the least specialized:
// generalized mixed, generalized, linear mixed, panel, linear. A mixed
// GeneralizedModel with a Gaussian family and identity link is a linear mixed
// model, and a non-mixed one that also reports its own R² is a plain linear
// model. Values with no model capability are accepted as raw vectors when
// they are []float64 or Vector; anything else is rejected with
// ErrUnsupportedModel.
//
// Nil pointers to the adapters of this package are rejected. Caller-defined
// model types must not be nil pointers.
func Classify(v any) (Regime, error) {
	if v == nil || isNilAdapter(v) {
		return RegimeUnknown, fmt.Errorf("nil model %T: %w", v, errs.ErrUnsupportedModel)
	}

	_, mixed := v.(MixedModel)
	if g, ok := v.(GeneralizedModel); ok {
		gaussianIdentity := g.Family() == Gaussian && g.Link() == LinkIdentity
		if mixed && !gaussianIdentity {
			return RegimeGeneralizedMixed, nil
		}
		_, linear := v.(LinearModel)
		if !mixed && (!linear || !gaussianIdentity) {
			return RegimeGeneralized, nil
		}
	}
	if mixed {
		return RegimeLinearMixed, nil
	}
	if _, ok := v.(PanelModel); ok {
		return RegimePanel, nil
	}
	if _, ok := v.(LinearModel); ok {
		return RegimeLinear, nil
	}

	switch v.(type) {
	case []float64, Vector:
		return RegimeRawVector, nil
	}

	return RegimeUnknown, fmt.Errorf("%T: %w", v, errs.ErrUnsupportedModel)
}

func isNilAdapter(v any) bool {
	switch m := v.(type) {
	case *Vector:
		return m == nil
	case *Fit:
		return m == nil
	case *Linear:
		return m == nil
	case *Panel:
		return m == nil
	case *LinearMixed:
		return m == nil
	case *Generalized:
		return m == nil
	case *GeneralizedMixed:
		return m == nil
	}

	return false
}
