// Package gate decides whether a page may be published. It combines the
// page's risk classification with the disclaimer's claim types, approval
// token and required fields, and stops at the first blocking condition.
package gate

import "github.com/ppiankov/govgate/internal/model"

// highRiskPageTypes always need review regardless of content flags
var highRiskPageTypes = map[model.PageType]bool{
	model.PagePricing:    true,
	model.PageResearch:   true,
	model.PageComparison: true,
}

// DetectHighRiskClaim classifies a page as high-risk from its type and content flags.
// Case-study metrics alone are medium-risk and handled by the integrity checker.
func DetectHighRiskClaim(meta model.PageMeta) bool {
	pageType := model.ParsePageType(string(meta.PageType))

	switch {
	case highRiskPageTypes[pageType]:
		return true
	case meta.HasPerformanceClaims || meta.HasROIEstimates:
		return true
	case meta.HasAIClaims && pageType == model.PageAIGeoHub:
		return true
	case meta.HasCompetitorComparison && pageType == model.PageComparison:
		return true
	}
	return false
}

// DetectHighRiskClaimFromPage is DetectHighRiskClaim for callers holding loose values
func DetectHighRiskClaimFromPage(pageType model.PageType, pathname string, flags model.ContentFlags) bool {
	return DetectHighRiskClaim(model.PageMeta{
		PageType:     pageType,
		Pathname:     pathname,
		ContentFlags: flags,
	})
}

// RequiresApproval reports whether any claim type needs a reviewer's approval token
func RequiresApproval(claims []model.ClaimType) bool {
	return model.HasAnyClaim(claims, model.ApprovalClaims)
}
