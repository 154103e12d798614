package model

// Regime identifies which family of formulas applies to an input.
type Regime int

const (
	// RegimeUnknown is the zero value. Classify never returns it with a nil error.
	RegimeUnknown Regime = iota
	// RegimeRawVector is a plain numeric vector.
	RegimeRawVector
	// RegimeLinear is an ordinary least-squares linear model.
	RegimeLinear
	// RegimeLinearMixed is a linear mixed-effects model.
	RegimeLinearMixed
	// RegimeGeneralized is a generalized linear model.
	RegimeGeneralized
	// RegimeGeneralizedMixed is a generalized linear mixed-effects model.
	RegimeGeneralizedMixed
	// RegimePanel is a panel (fixed or random effects) linear model.
	RegimePanel
)

var regimeNames = map[Regime]string{
	RegimeRawVector:        "vector",
	RegimeLinear:           "linear",
	RegimeLinearMixed:      "linear-mixed",
	RegimeGeneralized:      "generalized",
	RegimeGeneralizedMixed: "generalized-mixed",
	RegimePanel:            "panel",
}

// String returns the string representation of the regime.
func (r Regime) String() string {
	if name, ok := regimeNames[r]; ok {
		return name
	}

	return "unknown"
}

// IsMixed reports whether the regime carries random-effect variance components.
func (r Regime) IsMixed() bool {
	return r == RegimeLinearMixed || r == RegimeGeneralizedMixed
}

// Family is the error distribution of a generalized linear model.
type Family int

const (
	Binomial Family = iota + 1
	Poisson
	Gaussian
)

func (f Family) String() string {
	switch f {
	case Binomial:
		return "binomial"
	case Poisson:
		return "poisson"
	case Gaussian:
		return "gaussian"
	default:
		return "unknown"
	}
}

// Link is the link function of a generalized linear model.
type Link int

const (
	LinkIdentity Link = iota + 1
	LinkLogit
	LinkProbit
	LinkLog
)

func (l Link) String() string {
	switch l {
	case LinkIdentity:
		return "identity"
	case LinkLogit:
		return "logit"
	case LinkProbit:
		return "probit"
	case LinkLog:
		return "log"
	default:
		return "unknown"
	}
}

// Effect is the estimator of a panel model.
type Effect int

const (
	EffectWithin Effect = iota + 1
	EffectRandom
	EffectPooling
	EffectFirstDifference
)

func (e Effect) String() string {
	switch e {
	case EffectWithin:
		return "within"
	case EffectRandom:
		return "random"
	case EffectPooling:
		return "pooling"
	case EffectFirstDifference:
		return "fd"
	default:
		return "unknown"
	}
}
