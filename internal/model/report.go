package model

import "time"

// Report is the complete governance evaluation of one page
type Report struct {
	RunID       string    `json:"run_id"`
	Subject     string    `json:"subject"`  // Pathname, or file name when absent
	Location    string    `json:"location"` // Manifest path or scanned URL
	EvaluatedAt time.Time `json:"evaluated_at"`
	Fingerprint string    `json:"fingerprint"` // Version id of the disclaimer
	Publishable bool      `json:"publishable"` // Gate passed and no structural errors

	Page       PageMeta         `json:"page"`
	Disclaimer Disclaimer       `json:"disclaimer"`
	Staleness  Staleness        `json:"staleness"`
	Validation ValidationResult `json:"validation"`
	Status     DisclaimerStatus `json:"status"`
	Integrity  IntegrityResult  `json:"integrity"`
	Gate       GateResult       `json:"gate"`

	Links []LinkResult `json:"links,omitempty"` // Optional source link audit
	Brief *Brief       `json:"brief,omitempty"` // Optional reviewer brief (never affects the decision)
}

// ReasonStructuralErrors blocks a page the gate passed when its disclaimer
// still has validation errors
const ReasonStructuralErrors = "STRUCTURAL_ERRORS"

// StructuralErrors returns the validation errors that block publication.
// Staleness is excluded; the gate reports it as STALE_DATA_WARNING.
func (r *Report) StructuralErrors() []Issue {
	var out []Issue
	for _, issue := range r.Validation.Errors {
		if issue.Code != CodeStaleDataError {
			out = append(out, issue)
		}
	}
	return out
}

// IsPublishable reports whether the page may go live: the gate passed and
// the disclaimer is structurally valid
func (r *Report) IsPublishable() bool {
	return r.Gate.CanPublish && len(r.StructuralErrors()) == 0
}

// DecisionReasons returns the codes behind IsPublishable
func (r *Report) DecisionReasons() []string {
	if r.Gate.CanPublish && len(r.StructuralErrors()) > 0 {
		return []string{ReasonStructuralErrors}
	}
	return r.Gate.ReasonCodes
}

// Brief contains an optional LLM-written reviewer brief
type Brief struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
