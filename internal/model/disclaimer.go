package model

// ClaimType categorizes a factual claim made on a page
type ClaimType string

const (
	ClaimPricing     ClaimType = "pricing"     // Price ranges and estimates
	ClaimMarket      ClaimType = "market"      // Market size, trends, benchmarks
	ClaimCompetitor  ClaimType = "competitor"  // Comparisons with named competitors
	ClaimDataset     ClaimType = "dataset"     // Figures derived from a dataset
	ClaimAI          ClaimType = "ai-claims"   // Claims about AI platforms and visibility
	ClaimPerformance ClaimType = "performance" // Results and performance outcomes
	ClaimROI         ClaimType = "roi"         // Return-on-investment estimates
)

// AllClaimTypes lists every known claim type in declaration order
var AllClaimTypes = []ClaimType{
	ClaimPricing, ClaimMarket, ClaimCompetitor, ClaimDataset, ClaimAI, ClaimPerformance, ClaimROI,
}

// Known reports whether c is one of the declared claim types
func (c ClaimType) Known() bool {
	for _, k := range AllClaimTypes {
		if c == k {
			return true
		}
	}
	return false
}

// Claim type groups. Each rule in the governance engine keys off one of these.
var (
	// SourceRequiredClaims need at least one data source
	SourceRequiredClaims = []ClaimType{ClaimPerformance, ClaimROI, ClaimAI, ClaimDataset, ClaimMarket}

	// MethodologyClaims need a methodology summary of at least MinMethodologyWords
	MethodologyClaims = []ClaimType{ClaimPerformance, ClaimROI, ClaimAI, ClaimDataset}

	// HighRiskClaims mark a disclaimer as needing review
	HighRiskClaims = []ClaimType{ClaimPerformance, ClaimROI, ClaimAI}

	// ApprovalClaims require an authorized approval token before publishing
	ApprovalClaims = []ClaimType{ClaimPerformance, ClaimROI, ClaimAI, ClaimCompetitor}

	// FabricationClaims without sources are flagged as fabricated-data risk
	FabricationClaims = []ClaimType{ClaimPerformance, ClaimROI}
)

const (
	MinMethodologyWords      = 100 // Hard floor for MethodologyClaims
	AdvisoryMethodologyWords = 50  // Below this a warning is raised for other claims
	MinApprovalTokenLength   = 8   // Structural minimum for any approval token
	FallbackApprovalTokenLen = 16  // Required length when no allowlist is configured
)

// SourceType classifies where a data source comes from
type SourceType string

const (
	SourceInternal    SourceType = "internal"
	SourceExternal    SourceType = "external"
	SourceThirdParty  SourceType = "third_party"
	SourceProprietary SourceType = "proprietary"
)

// DataSource is a single attribution for the data behind a claim
type DataSource struct {
	Name       string     `json:"name" yaml:"name"`
	URL        string     `json:"url,omitempty" yaml:"url,omitempty"`
	Type       SourceType `json:"type" yaml:"type"`
	AccessDate string     `json:"access_date,omitempty" yaml:"access_date,omitempty"` // ISO 8601 date
}

// Disclaimer is the governance record authored alongside a page.
// A changed disclaimer is a new version; values are never mutated in place.
type Disclaimer struct {
	Sources            []DataSource `json:"sources" yaml:"sources"`
	LastUpdated        string       `json:"lastUpdated" yaml:"lastUpdated"` // ISO 8601 datetime
	MethodologySummary string       `json:"methodologySummary" yaml:"methodologySummary"`
	MethodologyURL     string       `json:"methodologyUrl,omitempty" yaml:"methodologyUrl,omitempty"`
	Limitations        []string     `json:"limitations" yaml:"limitations"`
	ClaimTypes         []ClaimType  `json:"claimTypes" yaml:"claimTypes"`
	ComplianceRefs     []string     `json:"complianceRefs,omitempty" yaml:"complianceRefs,omitempty"`
	ApprovalToken      string       `json:"approvalToken,omitempty" yaml:"approvalToken,omitempty"`
}

// HasAnyClaim reports whether the disclaimer declares any claim type in set
func (d Disclaimer) HasAnyClaim(set []ClaimType) bool {
	return HasAnyClaim(d.ClaimTypes, set)
}

// HasAnyClaim reports whether claims intersects set
func HasAnyClaim(claims []ClaimType, set []ClaimType) bool {
	for _, c := range claims {
		for _, s := range set {
			if c == s {
				return true
			}
		}
	}
	return false
}

// HasClaim reports whether claims contains c
func HasClaim(claims []ClaimType, c ClaimType) bool {
	return HasAnyClaim(claims, []ClaimType{c})
}

// RequiresSources reports whether the declared claims make sources mandatory.
// Pricing on its own is treated as an estimate and may omit sources.
func (d Disclaimer) RequiresSources() bool {
	return d.HasAnyClaim(SourceRequiredClaims)
}

// RequiresMethodology reports whether the declared claims need a full methodology
func (d Disclaimer) RequiresMethodology() bool {
	return d.HasAnyClaim(MethodologyClaims)
}

// StaleLevel is derived from the age of a disclaimer; it is never stored
type StaleLevel string

const (
	StaleCurrent StaleLevel = "current" // under 30 days
	StaleWarning StaleLevel = "warning" // 30 to 89 days
	StaleError   StaleLevel = "error"   // 90 days or more, or an unreadable date
)

const (
	StaleWarningDays  = 30
	StaleErrorDays    = 90
	StaleCriticalDays = 180 // Only changes the message, not the level
)
