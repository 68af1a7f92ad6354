package disclaimer

import (
	"strings"
	"time"

	"github.com/ppiankov/govgate/internal/model"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// daysAgo formats an RFC 3339 timestamp exactly n days before fixedNow
func daysAgo(n int) string {
	return fixedNow.Add(-time.Duration(n) * 24 * time.Hour).Format(time.RFC3339)
}

// words builds a methodology text with exactly n words
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("sample ", n))
}

// validDisclaimer returns a disclaimer that passes every structural check
func validDisclaimer() model.Disclaimer {
	return model.Disclaimer{
		Sources: []model.DataSource{
			{Name: "Client case study", URL: "https://example.com/case-studies/acme", Type: model.SourceInternal, AccessDate: "2025-06-01"},
		},
		LastUpdated:        daysAgo(2),
		MethodologySummary: words(120),
		Limitations:        []string{"Results vary by market."},
		ClaimTypes:         []model.ClaimType{model.ClaimPerformance},
		ApprovalToken:      "approved-token-0001",
	}
}

func hasCode(issues []model.Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
