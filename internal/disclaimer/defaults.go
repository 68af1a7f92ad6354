package disclaimer

import "github.com/ppiankov/govgate/internal/model"

// DefaultLimitations returns the stock limitations for a set of claim types.
// Sets accumulate in a fixed order and are not deduplicated; when no claim
// type matches a single generic caveat is returned.
func DefaultLimitations(claimTypes []model.ClaimType) []string {
	var limitations []string

	if model.HasClaim(claimTypes, model.ClaimPricing) {
		limitations = append(limitations,
			"Pricing ranges are estimates and may vary based on project scope, industry, and specific requirements.",
			"Actual pricing will be determined after consultation and project assessment.",
		)
	}

	if model.HasAnyClaim(claimTypes, []model.ClaimType{model.ClaimMarket, model.ClaimDataset}) {
		limitations = append(limitations,
			"Benchmarks are based on aggregated data and may not reflect individual results.",
			"Market conditions and industry trends can change rapidly.",
		)
	}

	if model.HasClaim(claimTypes, model.ClaimCompetitor) {
		limitations = append(limitations,
			"Comparisons are based on publicly available information and may not reflect current features or pricing.",
			"Feature sets and capabilities may change over time.",
		)
	}

	if model.HasAnyClaim(claimTypes, []model.ClaimType{model.ClaimPerformance, model.ClaimROI}) {
		limitations = append(limitations,
			"Results are not guaranteed and may vary based on individual circumstances.",
			"Past performance does not guarantee future results.",
		)
	}

	if model.HasClaim(claimTypes, model.ClaimAI) {
		limitations = append(limitations,
			"AI platform capabilities and features are subject to change.",
			"Actual performance may vary based on use case, content quality, and platform updates.",
		)
	}

	if len(limitations) == 0 {
		limitations = append(limitations, "Data is provided for informational purposes only and accuracy is not guaranteed.")
	}

	return limitations
}

// NoGuaranteeDisclaimer returns the one-line no-guarantee notice for a set of claim types
func NoGuaranteeDisclaimer(claimTypes []model.ClaimType) string {
	switch {
	case model.HasAnyClaim(claimTypes, []model.ClaimType{model.ClaimPerformance, model.ClaimROI}):
		return "Results are not guaranteed and may vary based on individual circumstances. Past performance does not guarantee future results."
	case model.HasClaim(claimTypes, model.ClaimPricing):
		return "Pricing is subject to change without notice. Actual pricing will be determined after consultation."
	default:
		return "Results are not guaranteed and may vary based on individual circumstances."
	}
}
