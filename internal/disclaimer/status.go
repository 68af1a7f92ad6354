package disclaimer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/govgate/internal/model"
)

// Status summarizes a disclaimer against the current time
func Status(d model.Disclaimer) model.DisclaimerStatus {
	return StatusAt(d, time.Now())
}

// StatusAt summarizes a disclaimer against now
func StatusAt(d model.Disclaimer, now time.Time) model.DisclaimerStatus {
	result := ValidateAt(d, now)
	staleness := CheckStalenessAt(d.LastUpdated, now)

	hasRequiredFields := len(d.Sources) > 0 &&
		strings.TrimSpace(d.LastUpdated) != "" &&
		len(d.Limitations) > 0
	hasHighRisk := d.HasAnyClaim(model.HighRiskClaims)
	requiresReview := hasHighRisk && d.ApprovalToken == ""

	status := model.StatusValid
	message := "Disclaimer is valid"
	switch {
	case len(result.Errors) > 0 || staleness.Level == model.StaleError:
		status = model.StatusError
		message = fmt.Sprintf("Disclaimer has %d error(s)", len(result.Errors))
	case len(result.Warnings) > 0 || staleness.Level == model.StaleWarning || requiresReview:
		status = model.StatusWarning
		message = fmt.Sprintf("Disclaimer has %d warning(s)", len(result.Warnings))
		if requiresReview {
			message += " and high-risk claims awaiting review"
		}
	}

	return model.DisclaimerStatus{
		Status:            status,
		StaleLevel:        staleness.Level,
		HasRequiredFields: hasRequiredFields,
		HasHighRiskClaims: hasHighRisk,
		RequiresReview:    requiresReview,
		Message:           message,
	}
}
