// Package result packages computed statistics as labeled, ordered results.
package result

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the formula family that produced a Result.
type Kind int

const (
	// KindOLS holds the R² and adjusted R² reported by a linear or panel model.
	KindOLS Kind = iota + 1
	// KindPseudo holds Cox & Snell's and Nagelkerke's pseudo-R².
	KindPseudo
	// KindDiscrimination holds Tjur's coefficient of discrimination.
	KindDiscrimination
	// KindMixedApprox holds the R² and Ω² approximation for a linear mixed model.
	KindMixedApprox
	// KindMixedNull holds the variance decomposition against a null model.
	KindMixedNull
)

var kindNames = map[Kind]string{
	KindOLS:            "ols",
	KindPseudo:         "pseudo",
	KindDiscrimination: "discrimination",
	KindMixedApprox:    "mixed-approx",
	KindMixedNull:      "mixed-null",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Canonical statistic labels.
const (
	LabelR2         = "R2"
	LabelAdjR2      = "adj.R2"
	LabelTau00      = "R2(tau-00)"
	LabelTau11      = "R2(tau-11)"
	LabelOmega2     = "O2"
	LabelCoxSnell   = "CoxSnell"
	LabelNagelkerke = "Nagelkerke"
	LabelTjurD      = "D"
)

// Entry is one labeled statistic. A NaN Value means the statistic is not
// defined for the model, e.g. R2(tau-11) without a random slope.
type Entry struct {
	Label string
	Value float64
}

// Missing reports whether the entry holds no value.
func (e Entry) Missing() bool {
	return math.IsNaN(e.Value)
}

// Result is an immutable, ordered set of statistics tagged with the kind of
// formula that produced them.
type Result struct {
	kind    Kind
	entries []Entry
}

// New creates a result of kind k from entries, keeping their order.
func New(k Kind, entries ...Entry) *Result {
	return &Result{kind: k, entries: append([]Entry(nil), entries...)}
}

// Kind returns the formula family of the result.
func (r *Result) Kind() Kind {
	return r.kind
}

// Entries returns a copy of the entries in order.
func (r *Result) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Labels returns the entry labels in order.
func (r *Result) Labels() []string {
	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}

	return labels
}

// Len returns the number of entries.
func (r *Result) Len() int {
	return len(r.entries)
}

// Get returns the value for label. The second return value is false when the
// label is absent; a present but missing entry returns NaN and true.
func (r *Result) Get(label string) (float64, bool) {
	for _, e := range r.entries {
		if e.Label == label {
			return e.Value, true
		}
	}

	return math.NaN(), false
}

// String returns a string representation of the result, rendering missing
// values as NA.
func (r *Result) String() string {
	if r == nil {
		return "Result{nil}"
	}

	var sb strings.Builder
	sb.WriteString("Result{Kind: ")
	sb.WriteString(r.kind.String())
	for _, e := range r.entries {
		sb.WriteString(", ")
		sb.WriteString(e.Label)
		sb.WriteString(": ")
		if e.Missing() {
			sb.WriteString("NA")
		} else {
			fmt.Fprintf(&sb, "%.4f", e.Value)
		}
	}
	sb.WriteString("}")

	return sb.String()
}
