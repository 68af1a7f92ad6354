package gate

import (
	"fmt"
	"time"

	"github.com/ppiankov/govgate/internal/disclaimer"
	"github.com/ppiankov/govgate/internal/model"
)

// Gate makes publish decisions. It holds no mutable state and is safe for
// concurrent use.
type Gate struct {
	Allowlist Allowlist
	// Now returns the current time; nil means time.Now
	Now func() time.Time
}

// New creates a gate backed by the given allowlist, which may be nil
func New(allowlist Allowlist) *Gate {
	return &Gate{Allowlist: allowlist}
}

func (g *Gate) now() time.Time {
	if g == nil || g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Gate) allowlist() Allowlist {
	if g == nil {
		return nil
	}
	return g.Allowlist
}

// ValidateApprovalToken checks token against the gate's allowlist
func (g *Gate) ValidateApprovalToken(token string) model.TokenCheck {
	return ValidateApprovalToken(token, g.allowlist())
}

// Publish decides whether a page may go live. Checks run in a fixed order
// and the first blocking condition ends evaluation with a single reason.
func (g *Gate) Publish(d model.Disclaimer, meta model.PageMeta) model.GateResult {
	var reasons []string
	warnings := []string{}

	// 1. Risk classification
	isHighRisk := DetectHighRiskClaim(meta)
	needsApproval := RequiresApproval(d.ClaimTypes)
	gated := isHighRisk || needsApproval

	// 2. Approval token
	if gated {
		if d.ApprovalToken == "" {
			return model.GateResult{
				RequiresApproval: true,
				ReasonCodes:      []string{model.ReasonMissingApprovalToken, model.ReasonHighRiskClaimsDetected},
				Warnings:         []string{"High-risk claims detected. Approval token required before publishing."},
			}
		}

		check := g.ValidateApprovalToken(d.ApprovalToken)
		if !check.Valid {
			return model.GateResult{
				RequiresApproval: true,
				ApprovalToken:    d.ApprovalToken,
				ReasonCodes:      []string{model.ReasonInvalidApprovalToken, model.ReasonHighRiskClaimsDetected},
				Warnings:         []string{check.Message},
			}
		}
		reasons = append(reasons, model.ReasonApprovalTokenValid)
	}

	// 3. Staleness never blocks on its own
	staleness := disclaimer.CheckStalenessAt(d.LastUpdated, g.now())
	if staleness.Level == model.StaleError {
		reasons = append(reasons, model.ReasonStaleDataWarning)
		if staleness.DaysSinceUpdate < 0 {
			warnings = append(warnings, "Last updated date is missing or unreadable. Update recommended before publishing.")
		} else {
			warnings = append(warnings, fmt.Sprintf("Data is %d days old. Update recommended before publishing.", staleness.DaysSinceUpdate))
		}
	}

	blocked := func(code, message string) model.GateResult {
		return model.GateResult{
			RequiresApproval: gated,
			ApprovalToken:    d.ApprovalToken,
			ReasonCodes:      []string{code},
			Warnings:         append(warnings, message),
		}
	}

	// 4. Sources
	if len(d.Sources) == 0 && d.RequiresSources() {
		return blocked(model.ReasonMissingDataSources, "Data sources are required for high-risk claim types")
	}

	// 5. Limitations
	if len(d.Limitations) == 0 {
		return blocked(model.ReasonMissingLimitations, "At least one limitation must be listed")
	}

	// 6. Methodology
	if d.RequiresMethodology() {
		words := disclaimer.WordCount(d.MethodologySummary)
		if words == 0 {
			return blocked(model.ReasonMissingMethodology, "Methodology summary is required for high-risk claim types")
		}
		if words < model.MinMethodologyWords {
			return blocked(model.ReasonInsufficientMethodology,
				fmt.Sprintf("Methodology summary must be at least %d words (currently %d words)", model.MinMethodologyWords, words))
		}
	}

	// 7. Publishable
	return model.GateResult{
		CanPublish:       true,
		RequiresApproval: gated,
		ApprovalToken:    d.ApprovalToken,
		ReasonCodes:      append(reasons, model.ReasonAllChecksPassed),
		Warnings:         warnings,
	}
}

// Publish evaluates a page against the wall clock with the given allowlist
func Publish(d model.Disclaimer, meta model.PageMeta, allowlist Allowlist) model.GateResult {
	return New(allowlist).Publish(d, meta)
}
