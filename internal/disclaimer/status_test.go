package disclaimer

import (
	"testing"

	"github.com/ppiankov/govgate/internal/model"
)

func TestStatusAt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.Disclaimer)
		status model.StatusLevel
		review bool
	}{
		{"valid", func(d *model.Disclaimer) {}, model.StatusValid, false},
		{"stale warning", func(d *model.Disclaimer) { d.LastUpdated = daysAgo(31) }, model.StatusWarning, false},
		{"stale error", func(d *model.Disclaimer) { d.LastUpdated = daysAgo(95) }, model.StatusError, false},
		{"validation error", func(d *model.Disclaimer) { d.Limitations = nil }, model.StatusError, false},
		{"high risk without token", func(d *model.Disclaimer) { d.ApprovalToken = "" }, model.StatusWarning, true},
		{"warning only", func(d *model.Disclaimer) { d.Sources[0].AccessDate = "" }, model.StatusWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDisclaimer()
			tt.mutate(&d)

			got := StatusAt(d, fixedNow)
			if got.Status != tt.status {
				t.Errorf("expected status %s, got %s (%s)", tt.status, got.Status, got.Message)
			}
			if got.RequiresReview != tt.review {
				t.Errorf("expected requiresReview=%v, got %v", tt.review, got.RequiresReview)
			}
			if !got.HasHighRiskClaims {
				t.Error("performance claims are high risk")
			}
		})
	}
}

func TestStatusAt_RequiredFields(t *testing.T) {
	d := validDisclaimer()
	if !StatusAt(d, fixedNow).HasRequiredFields {
		t.Error("expected required fields present")
	}

	d.Sources = nil
	if StatusAt(d, fixedNow).HasRequiredFields {
		t.Error("expected required fields missing without sources")
	}
}

func TestStatusAt_CompetitorIsNotHighRisk(t *testing.T) {
	d := validDisclaimer()
	d.ClaimTypes = []model.ClaimType{model.ClaimCompetitor}
	d.ApprovalToken = ""

	got := StatusAt(d, fixedNow)
	if got.HasHighRiskClaims {
		t.Error("competitor claims alone are not high risk for status purposes")
	}
	if got.RequiresReview {
		t.Error("expected no review requirement")
	}
}
