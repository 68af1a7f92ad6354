package disclaimer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/govgate/internal/model"
)

var knownSourceTypes = map[model.SourceType]bool{
	model.SourceInternal:    true,
	model.SourceExternal:    true,
	model.SourceThirdParty:  true,
	model.SourceProprietary: true,
}

// Validate checks the structure of a disclaimer against the current time
func Validate(d model.Disclaimer) model.ValidationResult {
	return ValidateAt(d, time.Now())
}

// ValidateAt checks the structure of a disclaimer and reports every finding
// in one pass. OK is true iff there are no errors; warnings never block.
func ValidateAt(d model.Disclaimer, now time.Time) model.ValidationResult {
	v := &validation{}

	// 1. Staleness
	staleness := CheckStalenessAt(d.LastUpdated, now)
	switch staleness.Level {
	case model.StaleWarning:
		v.warn(model.CodeStaleDataWarning, staleness.Message, "lastUpdated")
	case model.StaleError:
		v.fail(model.CodeStaleDataError, staleness.Message, "lastUpdated")
	}

	// 2. Data sources
	if len(d.Sources) == 0 {
		if d.RequiresSources() {
			v.fail(model.CodeMissingDataSources, "At least one data source is required for the declared claim types", "sources")
		}
	}
	for i, source := range d.Sources {
		v.checkSource(i, source)
	}

	// 3. Last updated format
	if _, ok := ParseISO8601(d.LastUpdated); !ok {
		v.fail(model.CodeInvalidLastUpdated, "lastUpdated must be a valid ISO 8601 datetime", "lastUpdated")
	}

	// 4. Methodology
	v.checkMethodology(d)

	// 5. Limitations
	if len(d.Limitations) == 0 {
		v.fail(model.CodeMissingLimitations, "At least one limitation must be listed", "limitations")
	}
	for i, limitation := range d.Limitations {
		if strings.TrimSpace(limitation) == "" {
			v.fail(model.CodeEmptyLimitation, fmt.Sprintf("Limitation %d cannot be empty", i+1), fmt.Sprintf("limitations[%d]", i))
		}
	}

	// 6. Claim types
	if len(d.ClaimTypes) == 0 {
		v.warn(model.CodeNoClaimTypes, "No claim types specified. Consider adding claim types for better governance.", "claimTypes")
	}
	for i, ct := range d.ClaimTypes {
		if !ct.Known() {
			v.fail(model.CodeInvalidClaimType, fmt.Sprintf("Unknown claim type %q", string(ct)), fmt.Sprintf("claimTypes[%d]", i))
		}
	}

	// 7. Compliance references
	for i, ref := range d.ComplianceRefs {
		if strings.TrimSpace(ref) == "" {
			v.warn(model.CodeEmptyComplianceRef, fmt.Sprintf("Compliance reference %d is empty", i+1), fmt.Sprintf("complianceRefs[%d]", i))
		}
	}

	// 8. Approval token format
	if d.ApprovalToken != "" && utf8.RuneCountInString(strings.TrimSpace(d.ApprovalToken)) < model.MinApprovalTokenLength {
		v.fail(model.CodeInvalidApprovalToken,
			fmt.Sprintf("Approval token must be at least %d characters", model.MinApprovalTokenLength), "approvalToken")
	}

	return model.ValidationResult{
		OK:         len(v.errors) == 0,
		Warnings:   v.warnings,
		Errors:     v.errors,
		StaleLevel: staleness.Level,
	}
}

// validation accumulates findings for a single Validate call
type validation struct {
	warnings []model.Issue
	errors   []model.Issue
}

func (v *validation) warn(code, message, field string) {
	v.warnings = append(v.warnings, model.Issue{Code: code, Message: message, Field: field})
}

func (v *validation) fail(code, message, field string) {
	v.errors = append(v.errors, model.Issue{Code: code, Message: message, Field: field})
}

func (v *validation) checkSource(i int, source model.DataSource) {
	n := i + 1
	field := fmt.Sprintf("sources[%d]", i)

	if strings.TrimSpace(source.Name) == "" {
		v.fail(model.CodeInvalidSourceName, fmt.Sprintf("Data source %d must have a name", n), field+".name")
	}

	if source.Type == "" {
		v.fail(model.CodeInvalidSourceType, fmt.Sprintf("Data source %d must have a type", n), field+".type")
	} else if !knownSourceTypes[source.Type] {
		v.fail(model.CodeInvalidSourceType, fmt.Sprintf("Data source %d has unknown type %q", n, string(source.Type)), field+".type")
	}

	if source.URL != "" && !IsHTTPURL(source.URL) {
		v.fail(model.CodeInvalidSourceURL, fmt.Sprintf("Data source %d has invalid URL", n), field+".url")
	}

	if strings.TrimSpace(source.AccessDate) == "" {
		v.warn(model.CodeMissingAccessDate, fmt.Sprintf("Data source %d should have access date", n), field+".access_date")
	} else if _, ok := ParseISO8601(source.AccessDate); !ok {
		v.fail(model.CodeInvalidAccessDate, fmt.Sprintf("Data source %d has invalid access date format", n), field+".access_date")
	}
}

func (v *validation) checkMethodology(d model.Disclaimer) {
	required := d.RequiresMethodology()
	words := WordCount(d.MethodologySummary)

	switch {
	case words == 0 && required:
		v.fail(model.CodeMissingMethodology, "Methodology summary is required for high-risk claim types", "methodologySummary")
	case required && words < model.MinMethodologyWords:
		v.fail(model.CodeInsufficientMethodology,
			fmt.Sprintf("Methodology summary must be at least %d words for high-risk claim types (currently %d words)", model.MinMethodologyWords, words),
			"methodologySummary")
	case !required && len(d.ClaimTypes) > 0 && words < model.AdvisoryMethodologyWords:
		v.warn(model.CodeShortMethodology,
			fmt.Sprintf("Methodology summary is short (%d words). Consider adding more detail.", words),
			"methodologySummary")
	}

	if d.MethodologyURL != "" && !IsHTTPURL(d.MethodologyURL) {
		v.fail(model.CodeInvalidMethodologyURL, "methodologyUrl must be an http or https URL", "methodologyUrl")
	}
}
