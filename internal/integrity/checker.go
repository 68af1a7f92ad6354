// Package integrity runs semantic content checks on top of a structurally
// valid disclaimer: attribution, methodology depth, limitations, proof of
// case-study metrics and data freshness.
package integrity

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/govgate/internal/disclaimer"
	"github.com/ppiankov/govgate/internal/model"
)

// Context carries page-level facts the disclaimer alone cannot express
type Context struct {
	HasCaseStudyMetrics  bool
	HasPerformanceClaims bool
	HasROIEstimates      bool
}

// ContextFromPage derives a check context from page metadata
func ContextFromPage(meta model.PageMeta) Context {
	return Context{
		HasCaseStudyMetrics:  meta.HasCaseStudyMetrics,
		HasPerformanceClaims: meta.HasPerformanceClaims,
		HasROIEstimates:      meta.HasROIEstimates,
	}
}

// Checker runs content integrity checks. The zero value is ready to use.
type Checker struct {
	// Now returns the current time; nil means time.Now
	Now func() time.Time
}

// NewChecker creates a checker reading the wall clock
func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Check runs every integrity check and derives the risk flags.
// Output order is fixed: attribution, source URLs, methodology, limitations,
// freshness, then proof attribution when the page carries case-study metrics.
func (c *Checker) Check(d model.Disclaimer, ctx Context) model.IntegrityResult {
	var checks []model.IntegrityCheck

	checks = append(checks, checkSourceAttribution(d)...)
	checks = append(checks, checkMethodology(d)...)
	checks = append(checks, checkLimitations(d.Limitations)...)

	staleness := disclaimer.CheckStalenessAt(d.LastUpdated, c.now())
	checks = append(checks, checkFreshness(staleness))

	if ctx.HasCaseStudyMetrics {
		checks = append(checks, checkProofAttribution(d))
	}

	valid := true
	for _, check := range checks {
		if check.Status == model.CheckFail {
			valid = false
			break
		}
	}

	noSources := len(d.Sources) == 0
	return model.IntegrityResult{
		Valid:                 valid,
		Checks:                checks,
		HasFabricatedDataRisk: noSources && d.HasAnyClaim(model.FabricationClaims),
		HasMissingAttribution: noSources && len(d.ClaimTypes) > 0,
		HasStaleData:          staleness.Level != model.StaleCurrent,
	}
}

// Check runs the integrity checks against the wall clock
func Check(d model.Disclaimer, ctx Context) model.IntegrityResult {
	return NewChecker().Check(d, ctx)
}

func checkSourceAttribution(d model.Disclaimer) []model.IntegrityCheck {
	var results []model.IntegrityCheck

	switch {
	case len(d.Sources) == 0 && d.RequiresSources():
		results = append(results, model.IntegrityCheck{
			Check:   model.CheckSourceAttribution,
			Status:  model.CheckFail,
			Message: "High-risk claim types require at least one data source",
			Field:   "sources",
		})
	case len(d.Sources) == 0 && len(d.ClaimTypes) > 0:
		results = append(results, model.IntegrityCheck{
			Check:   model.CheckSourceAttribution,
			Status:  model.CheckWarning,
			Message: "Consider adding data sources for better traceability",
			Field:   "sources",
		})
	default:
		results = append(results, model.IntegrityCheck{
			Check:   model.CheckSourceAttribution,
			Status:  model.CheckPass,
			Message: fmt.Sprintf("Data sources provided (%d source(s))", len(d.Sources)),
		})
	}

	for i, source := range d.Sources {
		if source.URL == "" {
			continue
		}
		if msg := sourceURLProblem(source.URL); msg != "" {
			results = append(results, model.IntegrityCheck{
				Check:   model.CheckSourceURLFormat,
				Status:  model.CheckFail,
				Message: fmt.Sprintf("Source %d %s", i+1, msg),
				Field:   fmt.Sprintf("sources[%d].url", i),
			})
		}
	}

	return results
}

// sourceURLProblem describes why raw is not a usable source link, or returns ""
func sourceURLProblem(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return "URL is invalid"
	}
	if scheme := strings.ToLower(parsed.Scheme); scheme != "http" && scheme != "https" {
		return "URL must use HTTP or HTTPS"
	}
	if parsed.Host == "" {
		return "URL is invalid"
	}
	return ""
}

func checkMethodology(d model.Disclaimer) []model.IntegrityCheck {
	required := d.RequiresMethodology()
	words := disclaimer.WordCount(d.MethodologySummary)

	if words == 0 {
		if required {
			return []model.IntegrityCheck{{
				Check:   model.CheckMethodologyCompleteness,
				Status:  model.CheckFail,
				Message: "Methodology summary is required for high-risk claim types",
				Field:   "methodologySummary",
			}}
		}
		return []model.IntegrityCheck{{
			Check:   model.CheckMethodologyCompleteness,
			Status:  model.CheckWarning,
			Message: "Methodology summary recommended for better transparency",
			Field:   "methodologySummary",
		}}
	}

	if required {
		if words < model.MinMethodologyWords {
			return []model.IntegrityCheck{{
				Check:  model.CheckMethodologyCompleteness,
				Status: model.CheckFail,
				Message: fmt.Sprintf("Methodology summary must be at least %d words for high-risk claims (currently %d words)",
					model.MinMethodologyWords, words),
				Field: "methodologySummary",
			}}
		}
		return []model.IntegrityCheck{{
			Check:   model.CheckMethodologyCompleteness,
			Status:  model.CheckPass,
			Message: fmt.Sprintf("Methodology summary is sufficient (%d words)", words),
		}}
	}

	if words < model.AdvisoryMethodologyWords {
		return []model.IntegrityCheck{{
			Check:   model.CheckMethodologyCompleteness,
			Status:  model.CheckWarning,
			Message: fmt.Sprintf("Methodology summary is short (%d words). Consider adding more detail.", words),
			Field:   "methodologySummary",
		}}
	}
	return []model.IntegrityCheck{{
		Check:   model.CheckMethodologyCompleteness,
		Status:  model.CheckPass,
		Message: fmt.Sprintf("Methodology summary is adequate (%d words)", words),
	}}
}

func checkLimitations(limitations []string) []model.IntegrityCheck {
	if len(limitations) == 0 {
		return []model.IntegrityCheck{{
			Check:   model.CheckLimitationsPresent,
			Status:  model.CheckFail,
			Message: "At least one limitation must be listed",
			Field:   "limitations",
		}}
	}

	empty := 0
	for _, l := range limitations {
		if strings.TrimSpace(l) == "" {
			empty++
		}
	}
	if empty > 0 {
		return []model.IntegrityCheck{{
			Check:   model.CheckLimitationsPresent,
			Status:  model.CheckFail,
			Message: fmt.Sprintf("%d empty limitation(s) found", empty),
			Field:   "limitations",
		}}
	}

	return []model.IntegrityCheck{{
		Check:   model.CheckLimitationsPresent,
		Status:  model.CheckPass,
		Message: fmt.Sprintf("Limitations provided (%d limitation(s))", len(limitations)),
	}}
}

func checkFreshness(staleness model.Staleness) model.IntegrityCheck {
	switch staleness.Level {
	case model.StaleError:
		return model.IntegrityCheck{
			Check:   model.CheckDataFreshness,
			Status:  model.CheckFail,
			Message: staleness.Message,
			Field:   "lastUpdated",
		}
	case model.StaleWarning:
		return model.IntegrityCheck{
			Check:   model.CheckDataFreshness,
			Status:  model.CheckWarning,
			Message: staleness.Message,
			Field:   "lastUpdated",
		}
	default:
		return model.IntegrityCheck{
			Check:   model.CheckDataFreshness,
			Status:  model.CheckPass,
			Message: staleness.Message,
		}
	}
}

// checkProofAttribution requires case-study metrics to point at a case study
// or client source, or to carry a reviewer's approval token
func checkProofAttribution(d model.Disclaimer) model.IntegrityCheck {
	attributed := false
	for _, s := range d.Sources {
		name := strings.ToLower(s.Name)
		if strings.Contains(name, "case study") || strings.Contains(name, "client") || strings.Contains(s.URL, "case-studies") {
			attributed = true
			break
		}
	}

	switch {
	case attributed:
		return model.IntegrityCheck{
			Check:   model.CheckProofAttribution,
			Status:  model.CheckPass,
			Message: "Case study has source attribution",
		}
	case d.ApprovalToken != "":
		return model.IntegrityCheck{
			Check:   model.CheckProofAttribution,
			Status:  model.CheckPass,
			Message: "Case study has approval token",
		}
	default:
		return model.IntegrityCheck{
			Check:   model.CheckProofAttribution,
			Status:  model.CheckFail,
			Message: "Case study metrics require source attribution or approval token",
			Field:   "sources",
		}
	}
}
