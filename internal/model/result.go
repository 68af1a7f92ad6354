package model

// Issue is a single validation finding. Errors block, warnings never do.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Validation issue codes
const (
	CodeStaleDataWarning        = "STALE_DATA_WARNING"
	CodeStaleDataError          = "STALE_DATA_ERROR"
	CodeMissingDataSources      = "MISSING_DATA_SOURCES"
	CodeInvalidSourceName       = "INVALID_SOURCE_NAME"
	CodeInvalidSourceType       = "INVALID_SOURCE_TYPE"
	CodeInvalidSourceURL        = "INVALID_SOURCE_URL"
	CodeMissingAccessDate       = "MISSING_ACCESS_DATE"
	CodeInvalidAccessDate       = "INVALID_ACCESS_DATE"
	CodeInvalidLastUpdated      = "INVALID_LAST_UPDATED"
	CodeMissingMethodology      = "MISSING_METHODOLOGY"
	CodeInsufficientMethodology = "INSUFFICIENT_METHODOLOGY"
	CodeShortMethodology        = "SHORT_METHODOLOGY"
	CodeInvalidMethodologyURL   = "INVALID_METHODOLOGY_URL"
	CodeMissingLimitations      = "MISSING_LIMITATIONS"
	CodeEmptyLimitation         = "EMPTY_LIMITATION"
	CodeNoClaimTypes            = "NO_CLAIM_TYPES"
	CodeInvalidClaimType        = "INVALID_CLAIM_TYPE"
	CodeEmptyComplianceRef      = "EMPTY_COMPLIANCE_REF"
	CodeInvalidApprovalToken    = "INVALID_APPROVAL_TOKEN"
)

// Staleness is the age of a disclaimer relative to a point in time
type Staleness struct {
	Level           StaleLevel `json:"stale_level"`
	DaysSinceUpdate int        `json:"days_since_update"`
	Message         string     `json:"message"`
}

// ValidationResult is the structural validation outcome of a disclaimer
type ValidationResult struct {
	OK         bool       `json:"ok"`
	Warnings   []Issue    `json:"warnings"`
	Errors     []Issue    `json:"errors"`
	StaleLevel StaleLevel `json:"stale_level"`
}

// StatusLevel summarizes a disclaimer for dashboards
type StatusLevel string

const (
	StatusValid   StatusLevel = "valid"
	StatusWarning StatusLevel = "warning"
	StatusError   StatusLevel = "error"
)

// DisclaimerStatus is the derived summary of a disclaimer
type DisclaimerStatus struct {
	Status            StatusLevel `json:"status"`
	StaleLevel        StaleLevel  `json:"stale_level"`
	HasRequiredFields bool        `json:"has_required_fields"`
	HasHighRiskClaims bool        `json:"has_high_risk_claims"`
	RequiresReview    bool        `json:"requires_review"`
	Message           string      `json:"message"`
}

// CheckStatus is the outcome of one integrity check
type CheckStatus string

const (
	CheckPass    CheckStatus = "pass"
	CheckFail    CheckStatus = "fail"
	CheckWarning CheckStatus = "warning"
)

// Integrity check names
const (
	CheckSourceAttribution       = "source_attribution"
	CheckSourceURLFormat         = "source_url_format"
	CheckMethodologyCompleteness = "methodology_completeness"
	CheckLimitationsPresent      = "limitations_present"
	CheckDataFreshness           = "data_freshness"
	CheckProofAttribution        = "proof_attribution"
)

// IntegrityCheck is a single semantic check result
type IntegrityCheck struct {
	Check   string      `json:"check"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
}

// IntegrityResult aggregates the semantic checks of a disclaimer
type IntegrityResult struct {
	Valid                 bool             `json:"valid"`
	Checks                []IntegrityCheck `json:"checks"`
	HasFabricatedDataRisk bool             `json:"has_fabricated_data_risk"`
	HasMissingAttribution bool             `json:"has_missing_attribution"`
	HasStaleData          bool             `json:"has_stale_data"`
}

// Failed returns the checks with status fail
func (r IntegrityResult) Failed() []IntegrityCheck {
	var failed []IntegrityCheck
	for _, c := range r.Checks {
		if c.Status == CheckFail {
			failed = append(failed, c)
		}
	}
	return failed
}

// Gate reason codes
const (
	ReasonMissingApprovalToken    = "MISSING_APPROVAL_TOKEN"
	ReasonInvalidApprovalToken    = "INVALID_APPROVAL_TOKEN"
	ReasonHighRiskClaimsDetected  = "HIGH_RISK_CLAIMS_DETECTED"
	ReasonApprovalTokenValid      = "APPROVAL_TOKEN_VALID"
	ReasonStaleDataWarning        = "STALE_DATA_WARNING"
	ReasonMissingDataSources      = "MISSING_DATA_SOURCES"
	ReasonMissingLimitations      = "MISSING_LIMITATIONS"
	ReasonMissingMethodology      = "MISSING_METHODOLOGY"
	ReasonInsufficientMethodology = "INSUFFICIENT_METHODOLOGY"
	ReasonAllChecksPassed         = "ALL_CHECKS_PASSED"
)

// GateResult is the publish decision for one page
type GateResult struct {
	CanPublish       bool     `json:"can_publish"`
	RequiresApproval bool     `json:"requires_approval"`
	ApprovalToken    string   `json:"approval_token,omitempty"`
	ReasonCodes      []string `json:"reason_codes"`
	Warnings         []string `json:"warnings"`
}

// HasReason reports whether code is among the result's reason codes
func (g GateResult) HasReason(code string) bool {
	for _, c := range g.ReasonCodes {
		if c == code {
			return true
		}
	}
	return false
}

// TokenCheck is the outcome of approval token validation
type TokenCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
