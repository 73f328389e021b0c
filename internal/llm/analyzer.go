// Package llm implements the risk-analysis collaborator boundary. Given the
// raw text of an insurance policy it produces a structured risk assessment:
// an overall score and level, an executive summary, flagged clauses, and
// recommendations.
//
// The boundary owns sanitization: whatever the upstream model returns is
// clamped and defaulted here so that stored analyses always satisfy the data
// model invariants (score in [0,100], three-value risk enums). On any upstream
// failure the boundary substitutes a fixed neutral default instead of
// propagating the error, so the analysis pipeline is never blocked by the
// collaborator.
package llm

import (
	"context"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// Result is a structured risk assessment for one policy document.
type Result struct {
	RiskScore       int                `json:"riskScore"`
	RiskLevel       string             `json:"riskLevel"`
	Summary         string             `json:"summary"`
	FlaggedClauses  domain.ClauseList  `json:"flaggedClauses"`
	Recommendations string             `json:"recommendations"`
}

// Analyzer is the contract consumed by the analysis pipeline.
// Implementations must return a sanitized Result; they may return an error
// only when no usable result (not even a default) can be produced.
type Analyzer interface {
	Analyze(ctx context.Context, policyText string) (Result, error)
}

// DefaultResult is the fixed neutral assessment substituted when the upstream
// model fails or returns garbage.
func DefaultResult() Result {
	return Result{
		RiskScore:      50,
		RiskLevel:      domain.RiskMedium,
		Summary:        "Unable to complete automated analysis. Please review your policy manually or try uploading again.",
		FlaggedClauses: domain.ClauseList{},
		Recommendations: "We recommend having a qualified insurance professional review your policy to identify " +
			"any potential concerns or coverage gaps.",
	}
}

// Sanitize clamps and defaults a raw model result so it satisfies the data
// model invariants regardless of what the upstream returned.
func Sanitize(r Result) Result {
	if r.RiskScore < 0 {
		r.RiskScore = 0
	}
	if r.RiskScore > 100 {
		r.RiskScore = 100
	}
	if !domain.ValidRiskLevel(r.RiskLevel) {
		r.RiskLevel = domain.RiskMedium
	}
	if r.Summary == "" {
		r.Summary = "Analysis completed successfully."
	}
	if r.Recommendations == "" {
		r.Recommendations = "Please review your policy carefully and consult with an insurance professional if you have questions."
	}
	if r.FlaggedClauses == nil {
		r.FlaggedClauses = domain.ClauseList{}
	}
	for i := range r.FlaggedClauses {
		c := &r.FlaggedClauses[i]
		if c.Title == "" {
			c.Title = "Policy Clause"
		}
		if c.Summary == "" {
			c.Summary = "No summary available"
		}
		if !domain.ValidRiskLevel(c.RiskLevel) {
			c.RiskLevel = domain.RiskMedium
		}
		if c.Category == "" {
			c.Category = "general"
		}
	}
	return r
}
