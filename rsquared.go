package fitstat

import (
	"fmt"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/formula"
	"github.com/arloliu/fitstat/model"
	"github.com/arloliu/fitstat/result"
)

// COD calculates Tjur's coefficient of discrimination of a binary-response
// generalized linear (mixed) model.
//
// The result holds a single "D" entry. Responses with other than two
// distinct values return ErrCategoryCardinality.
func COD(v any, opts ...Option) (*result.Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	b, err := extract(v, cfg, "cod")
	if err != nil {
		return nil, err
	}

	return cod(b)
}

func cod(b model.Bundle) (*result.Result, error) {
	switch b.Regime {
	case model.RegimeGeneralized, model.RegimeGeneralizedMixed:
	default:
		return nil, unsupported("cod", b.Regime)
	}

	d, err := formula.TjurD(b.Response, b.Fitted)
	if err != nil {
		return nil, err
	}

	return result.New(result.KindDiscrimination, result.Entry{Label: result.LabelTjurD, Value: d}), nil
}

// R2 calculates R² or the R² variant appropriate for the model regime.
//
//   - Linear and panel models: the reported R2 and adj.R2
//   - Generalized linear models: CoxSnell and Nagelkerke pseudo-R²
//   - Generalized linear mixed models: Tjur's D, as COD
//   - Linear mixed models: R2 of the response regressed on the fitted values
//     and O2 = 1 - var(residuals)/var(response); with WithNullModel the
//     variance decomposition R2(tau-00), R2(tau-11), R2 and O2 instead
//
// Raw vectors and any other input return ErrUnsupportedModel.
func R2(v any, opts ...Option) (*result.Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	b, err := extract(v, cfg, "r2")
	if err != nil {
		return nil, err
	}

	if cfg.Null != nil {
		if b.Regime != model.RegimeLinearMixed {
			return nil, fmt.Errorf("null model comparison of %s model: %w", b.Regime, errs.ErrUnsupportedModel)
		}

		return mixedNullR2(v, cfg.Null)
	}

	switch b.Regime {
	case model.RegimeLinear, model.RegimePanel:
		r2, adj := v.(model.LinearModel).RSquared()

		return result.New(result.KindOLS,
			result.Entry{Label: result.LabelR2, Value: r2},
			result.Entry{Label: result.LabelAdjR2, Value: adj},
		), nil
	case model.RegimeGeneralized:
		return pseudoR2(v, b)
	case model.RegimeGeneralizedMixed:
		return cod(b)
	case model.RegimeLinearMixed:
		return mixedApproxR2(b)
	default:
		return nil, unsupported("r2", b.Regime)
	}
}

func pseudoR2(v any, b model.Bundle) (*result.Result, error) {
	llNull, err := model.NullLogLikelihood(v)
	if err != nil {
		return nil, err
	}

	coxSnell, nagelkerke, err := formula.PseudoRSquared(llNull, b.LogLik, b.N)
	if err != nil {
		return nil, err
	}

	return result.New(result.KindPseudo,
		result.Entry{Label: result.LabelCoxSnell, Value: coxSnell},
		result.Entry{Label: result.LabelNagelkerke, Value: nagelkerke},
	), nil
}

func mixedApproxR2(b model.Bundle) (*result.Result, error) {
	line, err := formula.FitLine(b.Fitted, b.Response)
	if err != nil {
		return nil, err
	}

	o2, err := formula.Omega2(b.Residuals, b.Response)
	if err != nil {
		return nil, err
	}

	return result.New(result.KindMixedApprox,
		result.Entry{Label: result.LabelR2, Value: line.RSquared},
		result.Entry{Label: result.LabelOmega2, Value: o2},
	), nil
}

func mixedNullR2(full, null any) (*result.Result, error) {
	regime, err := model.Classify(null)
	if err != nil {
		return nil, fmt.Errorf("null model: %w", err)
	}
	if regime != model.RegimeLinearMixed {
		return nil, fmt.Errorf("null model is %s, want %s: %w", regime, model.RegimeLinearMixed, errs.ErrUnsupportedModel)
	}

	fullVC, err := model.Components(full)
	if err != nil {
		return nil, err
	}
	nullVC, err := model.Components(null)
	if err != nil {
		return nil, fmt.Errorf("null model: %w", err)
	}

	d, err := formula.MixedRSquared(fullVC, nullVC)
	if err != nil {
		return nil, err
	}

	return result.New(result.KindMixedNull,
		result.Entry{Label: result.LabelTau00, Value: d.Tau00},
		result.Entry{Label: result.LabelTau11, Value: d.Tau11},
		result.Entry{Label: result.LabelR2, Value: d.Total},
		result.Entry{Label: result.LabelOmega2, Value: d.Omega2},
	), nil
}
