// Package analyze wraps the language-model API that produces the literary
// analysis report for an uploaded document.
package analyze

import "context"

// Options are the client-selected analysis dimensions. The zero value means
// "no explicit selection", in which case every section is produced.
type Options struct {
	CharacterAnalysis     bool `json:"characterAnalysis"`
	PlotAnalysis          bool `json:"plotAnalysis"`
	ThematicAnalysis      bool `json:"thematicAnalysis"`
	ReadabilityAssessment bool `json:"readabilityAssessment"`
	SentimentAnalysis     bool `json:"sentimentAnalysis"`
	StyleConsistency      bool `json:"styleConsistency"`
}

// None reports whether no dimension was requested.
func (o Options) None() bool {
	return !o.CharacterAnalysis && !o.PlotAnalysis && !o.ThematicAnalysis &&
		!o.ReadabilityAssessment && !o.SentimentAnalysis && !o.StyleConsistency
}

// Result is the generated report.
type Result struct {
	Summary string `json:"summary"`
}

// Analyzer produces a formatted analysis report for the given text.
// A single attempt is made; upstream failures propagate unchanged.
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts Options) (*Result, error)
}
