package gate

import (
	"testing"

	"github.com/ppiankov/govgate/internal/model"
)

func TestDetectHighRiskClaim(t *testing.T) {
	tests := []struct {
		name  string
		page  model.PageType
		flags model.ContentFlags
		want  bool
	}{
		{"pricing page", model.PagePricing, model.ContentFlags{}, true},
		{"research page", model.PageResearch, model.ContentFlags{}, true},
		{"comparison page", model.PageComparison, model.ContentFlags{}, true},
		{"service page", model.PageService, model.ContentFlags{}, false},
		{"performance claims", model.PageService, model.ContentFlags{HasPerformanceClaims: true}, true},
		{"roi estimates", model.PageCity, model.ContentFlags{HasROIEstimates: true}, true},
		{"ai claims on hub", model.PageAIGeoHub, model.ContentFlags{HasAIClaims: true}, true},
		{"ai claims elsewhere", model.PageTool, model.ContentFlags{HasAIClaims: true}, false},
		{"competitor on industry", model.PageIndustry, model.ContentFlags{HasCompetitorComparison: true}, false},
		{"case study metrics only", model.PageCaseStudy, model.ContentFlags{HasCaseStudyMetrics: true}, false},
		{"market data", model.PageCore, model.ContentFlags{HasMarketData: true, HasDataset: true}, false},
		{"unknown page type", model.PageType("landing"), model.ContentFlags{}, false},
		{"mixed case page type", model.PageType("Pricing"), model.ContentFlags{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := model.PageMeta{PageType: tt.page, Pathname: "/x", ContentFlags: tt.flags}
			if got := DetectHighRiskClaim(meta); got != tt.want {
				t.Errorf("DetectHighRiskClaim = %v, want %v", got, tt.want)
			}
			if got := DetectHighRiskClaimFromPage(tt.page, "/x", tt.flags); got != tt.want {
				t.Errorf("DetectHighRiskClaimFromPage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequiresApproval(t *testing.T) {
	tests := []struct {
		claims []model.ClaimType
		want   bool
	}{
		{nil, false},
		{[]model.ClaimType{model.ClaimPricing, model.ClaimMarket, model.ClaimDataset}, false},
		{[]model.ClaimType{model.ClaimPerformance}, true},
		{[]model.ClaimType{model.ClaimROI}, true},
		{[]model.ClaimType{model.ClaimAI}, true},
		{[]model.ClaimType{model.ClaimPricing, model.ClaimCompetitor}, true},
	}

	for _, tt := range tests {
		if got := RequiresApproval(tt.claims); got != tt.want {
			t.Errorf("RequiresApproval(%v) = %v, want %v", tt.claims, got, tt.want)
		}
	}
}
