// Package llm writes optional reviewer briefs for governance reports. A
// brief is produced after the publish decision and never changes it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/govgate/internal/disclaimer"
	"github.com/ppiankov/govgate/internal/integrity"
	"github.com/ppiankov/govgate/internal/model"
)

// ErrCitationLeak is returned when a model cites a URL outside the allowlist
var ErrCitationLeak = errors.New("citation leak")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a reviewer brief in strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for a brief
type SummarizeRequest struct {
	Report model.Report

	// EvidenceURLs is the only set of URLs the model may cite
	EvidenceURLs []string

	// Prompt overrides the default prompt when set
	Prompt string

	Model     string
	MaxTokens int
}

// SummarizeResponse contains the model output
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", or "" for disabled
	Provider string

	Model   string
	APIKey  string
	BaseURL string // Custom endpoint; Ollama defaults to its OpenAI-compatible API

	Timeout int // seconds

	// StrictEvidence rejects any cited URL outside the evidence list
	StrictEvidence bool

	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns the disabled default
func DefaultConfig() Config {
	return Config{
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      800,
	}
}

// EvidenceURLs collects the citable URLs of a report: source URLs and the
// methodology URL, deduplicated in order. Non-http(s) URLs are never citable.
func EvidenceURLs(report model.Report) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[raw] || !integrity.ValidateSourceURL(raw).Valid {
			return
		}
		seen[raw] = true
		urls = append(urls, raw)
	}

	for _, s := range report.Disclaimer.Sources {
		add(s.URL)
	}
	add(report.Disclaimer.MethodologyURL)
	return urls
}

// BuildPrompt constructs the default strict-evidence prompt
func BuildPrompt(report model.Report, evidenceURLs []string) string {
	d := report.Disclaimer

	var b strings.Builder
	fmt.Fprintf(&b, `You are writing a brief for a human reviewer of a governance disclaimer attached to a published page. The publish decision below was made by fixed rules; you do not change it and you do not judge whether any claim is true.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite sources beyond this list.
3. Describe what the disclaimer documents and what it is missing.
4. Never say a claim "is true" or "is false".

Page:
- Subject: %s
- Page type: %s
- Claim types: %s
- Sources: %d
- Limitations: %d
- Methodology words: %d
- Data age: %d days (%s)

Decision:
- Can publish: %t
- Reason codes: %s
`,
		joinURLs(evidenceURLs),
		report.Subject,
		report.Page.PageType,
		joinClaims(d.ClaimTypes),
		len(d.Sources),
		len(d.Limitations),
		disclaimer.WordCount(d.MethodologySummary),
		report.Staleness.DaysSinceUpdate, report.Staleness.Level,
		report.IsPublishable(),
		strings.Join(report.DecisionReasons(), ", "),
	)

	if failed := report.Integrity.Failed(); len(failed) > 0 {
		b.WriteString("\nFailed integrity checks:\n")
		for _, c := range failed {
			fmt.Fprintf(&b, "- %s: %s\n", c.Check, c.Message)
		}
	}

	b.WriteString("\nWrite 3-4 sentences telling the reviewer what to look at before approving, focusing on attribution and methodology.")
	return b.String()
}

const maxPromptURLs = 20

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	var b strings.Builder
	for i, u := range urls {
		if i >= maxPromptURLs {
			fmt.Fprintf(&b, "\n... and %d more URLs", len(urls)-maxPromptURLs)
			break
		}
		fmt.Fprintf(&b, "\n- %s", u)
	}
	return b.String()
}

func joinClaims(claims []model.ClaimType) string {
	if len(claims) == 0 {
		return "(none)"
	}
	names := make([]string, len(claims))
	for i, c := range claims {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
