package fitstat

import (
	"math"
	"sync"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/frame"
	"github.com/arloliu/fitstat/logging"
	"github.com/arloliu/fitstat/model"
	"github.com/arloliu/fitstat/result"
)

const tolerance = 1e-9

var nan = math.NaN()

// newLinear returns a linear model whose residuals are [1, -1, 2, -2].
func newLinear(t *testing.T, shift float64) model.Linear {
	t.Helper()

	y := []float64{3, 5, 7, 9}
	fitted := []float64{2, 6, 5, 11}
	for i := range y {
		y[i] += shift
		fitted[i] += shift
	}

	data, err := frame.New(
		frame.Column{Name: "y", Values: y},
		frame.Column{Name: "x", Values: []float64{1, 2, 3, 4}},
	)
	require.NoError(t, err)

	return model.Linear{
		Fit: model.Fit{
			Data:         data,
			ResponseVar:  "y",
			FittedValues: fitted,
			ResidualDF:   2,
			LogLik:       -7.1,
		},
		RSq:    0.8,
		AdjRSq: 0.7,
	}
}

func newMixed(t *testing.T, vc *model.VarianceComponents) model.LinearMixed {
	t.Helper()

	data := frame.MustNew(
		frame.Column{Name: "Reaction", Values: []float64{1, 2, 3, 4, nan}},
		frame.Column{Name: "Days", Values: []float64{0, 1, 2, 3, 4}},
	)

	return model.LinearMixed{
		Fit: model.Fit{
			Data:         data,
			ResponseVar:  "Reaction",
			FittedValues: []float64{1.1, 1.9, 3.2, 3.8, 5},
			ResidualDF:   2,
		},
		Components: vc,
	}
}

func newLogit() model.Generalized {
	predicted := []float64{0.1, 0.3, 0.6, 0.8}

	return model.Generalized{
		Observed:     []float64{0, 0, 1, 1},
		Predicted:    predicted,
		ResidualDF:   2,
		LogLik:       math.Log(0.9) + math.Log(0.7) + math.Log(0.6) + math.Log(0.8),
		Distribution: model.Binomial,
		LinkFunction: model.LinkLogit,
	}
}

func TestCV(t *testing.T) {
	t.Run("vector", func(t *testing.T) {
		x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		cv, err := CV(x)
		require.NoError(t, err)
		require.InDelta(t, stat.StdDev(x, nil)/stat.Mean(x, nil), cv, tolerance)
	})

	t.Run("vector ignores missing", func(t *testing.T) {
		withMissing, err := CV(model.Vector{2, nan, 4, 6})
		require.NoError(t, err)
		complete, err := CV([]float64{2, 4, 6})
		require.NoError(t, err)
		require.InDelta(t, complete, withMissing, tolerance)
	})

	t.Run("linear model", func(t *testing.T) {
		cv, err := CV(newLinear(t, 0))
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt(2.5)/6, cv, tolerance)
	})

	t.Run("linear mixed model", func(t *testing.T) {
		cv, err := CV(newMixed(t, nil))
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt(0.025)/2.5, cv, tolerance)
	})

	t.Run("zero mean", func(t *testing.T) {
		_, err := CV([]float64{-2, 0, 2})
		require.ErrorIs(t, err, ErrDivisionByZero)
		require.Contains(t, err.Error(), "mean of dependent variable is zero")
		require.True(t, errdefs.IsInvalidArgument(err))

		_, err = CV(newLinear(t, -6))
		require.ErrorIs(t, err, ErrDivisionByZero)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := CV(newLogit())
		require.ErrorIs(t, err, ErrUnsupportedModel)
		require.Contains(t, err.Error(), "model type not supported for this statistic")

		_, err = CV("mpg")
		require.ErrorIs(t, err, ErrUnsupportedModel)
	})
}

func TestResidualErrors(t *testing.T) {
	lm := newLinear(t, 0)

	mse, err := MSE(lm)
	require.NoError(t, err)
	require.InDelta(t, 2.5, mse, tolerance)

	rmse, err := RMSE(lm)
	require.NoError(t, err)
	require.GreaterOrEqual(t, rmse, 0.0)
	require.InDelta(t, mse, rmse*rmse, tolerance)

	rse, err := RSE(lm)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(5), rse, tolerance)

	nrmse, err := RMSE(lm, WithNormalized())
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(2.5)/6, nrmse, tolerance)

	for _, m := range []any{newMixed(t, nil), newLogit(), model.Panel{Fit: lm.Fit}} {
		rmse, err := RMSE(m)
		require.NoError(t, err)
		mse, err := MSE(m)
		require.NoError(t, err)
		require.InDelta(t, mse, rmse*rmse, tolerance)
	}
}

func TestNormalizedRMSE_Shift(t *testing.T) {
	base, err := RMSE(newLinear(t, 0), WithNormalized())
	require.NoError(t, err)

	shifted, err := RMSE(newLinear(t, 250), WithNormalized())
	require.NoError(t, err)
	require.InDelta(t, base, shifted, tolerance)
}

func TestResidualErrors_Unsupported(t *testing.T) {
	for name, fn := range map[string]Statistic[float64]{"rmse": RMSE, "mse": MSE, "rse": RSE} {
		t.Run(name, func(t *testing.T) {
			_, err := fn([]float64{1, 2, 3})
			require.ErrorIs(t, err, ErrUnsupportedModel)
			require.Contains(t, err.Error(), name)
		})
	}
}

func TestExtractionErrors(t *testing.T) {
	lm := newLinear(t, 0)
	lm.ResponseVar = "mpg"

	_, err := RMSE(lm)
	require.ErrorIs(t, err, ErrExtraction)
	require.True(t, errdefs.IsNotFound(err))

	_, err = R2(newMixed(t, nil), WithNullModel(newMixed(t, &model.VarianceComponents{Tau00: 1, Sigma2: 1})))
	require.ErrorIs(t, err, ErrExtraction)
}

func TestCOD(t *testing.T) {
	r, err := COD(newLogit())
	require.NoError(t, err)
	require.Equal(t, result.KindDiscrimination, r.Kind())

	d, ok := r.Get(result.LabelTjurD)
	require.True(t, ok)
	require.InDelta(t, 0.5, d, tolerance)

	t.Run("aligned after missing residuals", func(t *testing.T) {
		g := newLogit()
		g.Observed = []float64{0, 0, 1, 1, 1}
		g.Predicted = []float64{0.1, 0.3, 0.6, 0.8, 0.95}
		g.ResidualValues = []float64{-0.1, -0.3, 0.4, 0.2, nan}

		r, err := COD(g)
		require.NoError(t, err)
		d, _ := r.Get(result.LabelTjurD)
		require.InDelta(t, 0.5, d, tolerance)
	})

	t.Run("perfect classifier", func(t *testing.T) {
		g := newLogit()
		g.Predicted = []float64{0, 0, 1, 1}
		r, err := COD(&g)
		require.NoError(t, err)
		d, _ := r.Get(result.LabelTjurD)
		require.InDelta(t, 1.0, d, tolerance)
	})

	t.Run("more than two categories", func(t *testing.T) {
		g := newLogit()
		g.Distribution = model.Poisson
		g.Observed = []float64{0, 1, 2, 3}
		_, err := COD(g)
		require.ErrorIs(t, err, ErrCategoryCardinality)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := COD(newLinear(t, 0))
		require.ErrorIs(t, err, ErrUnsupportedModel)
	})
}

func TestR2_Linear(t *testing.T) {
	lm := newLinear(t, 0)

	for _, m := range []any{lm, model.Panel{Fit: lm.Fit, Estimator: model.EffectWithin, RSq: 0.8, AdjRSq: 0.7}} {
		r, err := R2(m)
		require.NoError(t, err)
		require.Equal(t, result.KindOLS, r.Kind())
		require.Equal(t, []string{"R2", "adj.R2"}, r.Labels())

		r2, _ := r.Get(result.LabelR2)
		adj, _ := r.Get(result.LabelAdjR2)
		require.Equal(t, 0.8, r2)
		require.Equal(t, 0.7, adj)
	}
}

func TestR2_Generalized(t *testing.T) {
	g := newLogit()

	r, err := R2(g)
	require.NoError(t, err)
	require.Equal(t, result.KindPseudo, r.Kind())
	require.Equal(t, []string{"CoxSnell", "Nagelkerke"}, r.Labels())

	llNull := 4 * math.Log(0.5)
	wantCS := 1 - math.Exp(2*(llNull-g.LogLik)/4)
	wantNK := wantCS / (1 - math.Exp(2*llNull/4))

	cs, _ := r.Get(result.LabelCoxSnell)
	nk, _ := r.Get(result.LabelNagelkerke)
	require.InDelta(t, wantCS, cs, tolerance)
	require.InDelta(t, wantNK, nk, tolerance)

	t.Run("null equals full", func(t *testing.T) {
		g := newLogit()
		g.Refit = func() (float64, error) { return g.LogLik, nil }

		r, err := R2(g)
		require.NoError(t, err)
		cs, _ := r.Get(result.LabelCoxSnell)
		nk, _ := r.Get(result.LabelNagelkerke)
		require.InDelta(t, 0, cs, tolerance)
		require.InDelta(t, 0, nk, tolerance)
	})
}

func TestR2_GeneralizedMixed(t *testing.T) {
	glmm := model.GeneralizedMixed{Generalized: newLogit()}

	r, err := R2(glmm)
	require.NoError(t, err)
	require.Equal(t, result.KindDiscrimination, r.Kind())

	d, _ := r.Get(result.LabelTjurD)
	require.InDelta(t, 0.5, d, tolerance)
}

func TestR2_LinearMixed(t *testing.T) {
	lmm := newMixed(t, nil)

	r, err := R2(lmm)
	require.NoError(t, err)
	require.Equal(t, result.KindMixedApprox, r.Kind())
	require.Equal(t, []string{"R2", "O2"}, r.Labels())

	y := []float64{1, 2, 3, 4}
	fitted := []float64{1.1, 1.9, 3.2, 3.8}
	residuals := []float64{-0.1, 0.1, -0.2, 0.2}
	corr := stat.Correlation(fitted, y, nil)

	r2, _ := r.Get(result.LabelR2)
	o2, _ := r.Get(result.LabelOmega2)
	require.InDelta(t, corr*corr, r2, tolerance)
	require.InDelta(t, 1-stat.Variance(residuals, nil)/stat.Variance(y, nil), o2, tolerance)
}

func TestR2_GaussianIdentityMixed(t *testing.T) {
	lmm := newMixed(t, &model.VarianceComponents{Tau00: 1, Sigma2: 2})
	y, err := lmm.Response()
	require.NoError(t, err)

	glmm := model.GeneralizedMixed{
		Generalized: model.Generalized{
			Observed:     y,
			Predicted:    lmm.FittedValues,
			ResidualDF:   lmm.ResidualDF,
			Distribution: model.Gaussian,
			LinkFunction: model.LinkIdentity,
		},
		Components: lmm.Components,
	}

	got, err := R2(glmm)
	require.NoError(t, err)
	want, err := R2(lmm)
	require.NoError(t, err)
	require.Equal(t, result.KindMixedApprox, got.Kind())
	require.Equal(t, want.String(), got.String())

	cv, err := CV(glmm)
	require.NoError(t, err)
	wantCV, err := CV(lmm)
	require.NoError(t, err)
	require.InDelta(t, wantCV, cv, tolerance)

	_, err = COD(glmm)
	require.ErrorIs(t, err, errs.ErrUnsupportedModel)

	null := newMixed(t, &model.VarianceComponents{Tau00: 2, Sigma2: 4})
	r, err := R2(glmm, WithNullModel(null))
	require.NoError(t, err)
	require.Equal(t, result.KindMixedNull, r.Kind())
}

func TestNilPointerModel(t *testing.T) {
	inputs := []any{(*model.Linear)(nil), (*model.LinearMixed)(nil), (*model.Generalized)(nil)}
	for _, m := range inputs {
		_, err := RMSE(m)
		require.ErrorIs(t, err, errs.ErrUnsupportedModel)

		_, err = R2(m)
		require.ErrorIs(t, err, errs.ErrUnsupportedModel)
	}
}

func TestR2_NullModel(t *testing.T) {
	full := newMixed(t, &model.VarianceComponents{Tau00: 1, Sigma2: 2})
	null := newMixed(t, &model.VarianceComponents{Tau00: 2, Sigma2: 4})

	r, err := R2(full, WithNullModel(null))
	require.NoError(t, err)
	require.Equal(t, result.KindMixedNull, r.Kind())
	require.Equal(t, []string{"R2(tau-00)", "R2(tau-11)", "R2", "O2"}, r.Labels())

	tau00, _ := r.Get(result.LabelTau00)
	tau11, ok := r.Get(result.LabelTau11)
	total, _ := r.Get(result.LabelR2)
	o2, _ := r.Get(result.LabelOmega2)
	require.InDelta(t, 0.5, tau00, tolerance)
	require.True(t, ok)
	require.True(t, math.IsNaN(tau11))
	require.InDelta(t, 0.5, total, tolerance)
	require.InDelta(t, 0.5, o2, tolerance)
	require.Contains(t, r.String(), "R2(tau-11): NA")

	t.Run("equal components", func(t *testing.T) {
		vc := &model.VarianceComponents{Tau00: 0.8, Tau11: 0.3, Sigma2: 1.2, HasSlope: true}
		r, err := R2(newMixed(t, vc), WithNullModel(newMixed(t, vc)))
		require.NoError(t, err)

		tau00, _ := r.Get(result.LabelTau00)
		tau11, _ := r.Get(result.LabelTau11)
		require.InDelta(t, 0, tau00, tolerance)
		require.InDelta(t, 0, tau11, tolerance)
	})

	t.Run("null model on non-mixed primary", func(t *testing.T) {
		_, err := R2(newLinear(t, 0), WithNullModel(null))
		require.ErrorIs(t, err, ErrUnsupportedModel)
	})

	t.Run("null model of another regime", func(t *testing.T) {
		_, err := R2(full, WithNullModel(newLinear(t, 0)))
		require.ErrorIs(t, err, ErrUnsupportedModel)
	})

	t.Run("nil null model", func(t *testing.T) {
		_, err := R2(full, WithNullModel(nil))
		require.ErrorIs(t, err, errs.ErrNilNullModel)
	})
}

func TestR2_Unsupported(t *testing.T) {
	_, err := R2([]float64{1, 2, 3})
	require.ErrorIs(t, err, ErrUnsupportedModel)
	require.True(t, errdefs.IsNotImplemented(err))

	_, err = R2(struct{}{})
	require.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestR2Each(t *testing.T) {
	lm := newLinear(t, 0)
	glm := newLogit()
	glmm := model.GeneralizedMixed{Generalized: newLogit()}

	t.Run("preserves order", func(t *testing.T) {
		results, err := R2Each([]any{lm, glm, glmm})
		require.NoError(t, err)
		require.Len(t, results, 3)
		require.Equal(t, result.KindOLS, results[0].Kind())
		require.Equal(t, result.KindPseudo, results[1].Kind())
		require.Equal(t, result.KindDiscrimination, results[2].Kind())

		single, err := R2(glm)
		require.NoError(t, err)
		require.Equal(t, single.Entries(), results[1].Entries())
	})

	t.Run("unsupported model fails whole batch", func(t *testing.T) {
		results, err := R2Each([]any{lm, []float64{1, 2, 3}, glm})
		require.ErrorIs(t, err, ErrUnsupportedModel)
		require.Contains(t, err.Error(), "model 1")
		require.Nil(t, results)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := R2Each(nil)
		require.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestEach(t *testing.T) {
	rmses, err := Each[float64]([]any{newLinear(t, 0), newLinear(t, 10), newLogit()}, RMSE)
	require.NoError(t, err)
	require.Len(t, rmses, 3)
	require.InDelta(t, math.Sqrt(2.5), rmses[0], tolerance)
	require.InDelta(t, rmses[0], rmses[1], tolerance)

	results, err := CODEach([]any{newLogit(), model.GeneralizedMixed{Generalized: newLogit()}})
	require.NoError(t, err)
	require.Len(t, results, 2)

	_, err = Each[float64]([]any{newLinear(t, 0)}, nil)
	require.Error(t, err)
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
	errs  []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record(&l.debug, msg) }
func (l *recordingLogger) Info(string, ...any)        {}
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record(&l.warns, msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record(&l.errs, msg) }

func (l *recordingLogger) record(dst *[]string, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, msg)
}

func TestWithLogger(t *testing.T) {
	logger := &recordingLogger{}

	_, err := RMSE(newMixed(t, nil), WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []string{"dispatching statistic"}, logger.debug)
	require.Equal(t, []string{"dropped incomplete observations"}, logger.warns)

	_, err = R2Each([]any{newLinear(t, 0), "x"}, WithLogger(logger))
	require.Error(t, err)
	require.Equal(t, []string{"batch evaluation failed"}, logger.errs)

	_, err = RMSE(newLinear(t, 0), WithLogger(nil))
	require.ErrorIs(t, err, errs.ErrNilLogger)
}

type batchLogger struct {
	logging.NoOpLogger
	batches []string
}

func (l *batchLogger) Debug(msg string, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "batch" {
			l.batches = append(l.batches, args[i+1].(string))
		}
	}
}

func TestEachBatchIdentifier(t *testing.T) {
	logger := &batchLogger{}

	_, err := Each[float64]([]any{newLinear(t, 0), newLinear(t, 1)}, RMSE, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, logger.batches, 2)
	require.Equal(t, logger.batches[0], logger.batches[1])
	require.NotEmpty(t, logger.batches[0])

	_, err = Each[float64]([]any{newLinear(t, 0)}, RMSE, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, logger.batches, 3)
	require.NotEqual(t, logger.batches[0], logger.batches[2])
}
