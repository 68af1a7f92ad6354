package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/govgate/internal/model"
)

// Summarizer produces reviewer briefs. Failures degrade into warnings on the
// brief; they never fail an evaluation.
type Summarizer struct {
	provider Provider
	config   Config
	logger   *zap.Logger
}

// NewSummarizer creates a summarizer. A disabled provider yields a summarizer
// whose IsEnabled is false.
func NewSummarizer(config Config, logger *zap.Logger) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{provider: provider, config: config, logger: logger}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

func (s *Summarizer) log() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// GenerateBrief writes a reviewer brief for a finished report. It returns
// nil, nil when disabled.
func (s *Summarizer) GenerateBrief(ctx context.Context, report model.Report) (*model.Brief, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	brief := &model.Brief{
		Provider:       s.provider.Name(),
		Model:          s.config.Model,
		StrictEvidence: s.config.StrictEvidence,
	}

	if !s.provider.IsAvailable(ctx) {
		s.log().Warn("LLM provider not available", zap.String("provider", brief.Provider))
		brief.Warnings = append(brief.Warnings, fmt.Sprintf("LLM provider %s is not available; brief skipped", brief.Provider))
		return brief, nil
	}
	brief.Enabled = true

	evidence := EvidenceURLs(report)
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:       report,
		EvidenceURLs: evidence,
		Model:        s.config.Model,
		MaxTokens:    s.config.MaxTokens,
	})
	if err != nil {
		s.log().Warn("brief generation failed", zap.String("provider", brief.Provider), zap.Error(err))
		if errors.Is(err, ErrCitationLeak) {
			brief.Warnings = append(brief.Warnings, fmt.Sprintf("Brief rejected: %v", err))
		} else {
			brief.Warnings = append(brief.Warnings, fmt.Sprintf("Brief generation failed: %v", err))
		}
		return brief, nil
	}

	brief.Model = resp.Model
	brief.SummaryMD = resp.Summary
	brief.Warnings = append(brief.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	if s.config.StrictEvidence {
		brief.Warnings = append(brief.Warnings,
			fmt.Sprintf("Verified %d citations against %d evidence URLs", len(resp.CitedURLs), len(evidence)))
	}

	s.log().Debug("brief generated",
		zap.String("provider", brief.Provider),
		zap.String("model", brief.Model),
		zap.Int("tokens", resp.TokensUsed))
	return brief, nil
}

// RenderSeparateMarkdown renders a brief as its own Markdown document, or ""
// when there is nothing to render
func RenderSeparateMarkdown(brief *model.Brief) string {
	if brief == nil || !brief.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Reviewer Brief\n\n")
	b.WriteString("> **GENERATED CONTENT.** The publish decision was determined independently of this brief.\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Provider | %s |\n", brief.Provider)
	fmt.Fprintf(&b, "| Model | %s |\n", brief.Model)
	fmt.Fprintf(&b, "| Strict Evidence Mode | %t |\n\n", brief.StrictEvidence)

	if brief.SummaryMD == "" {
		b.WriteString("_No summary generated._\n")
	} else {
		b.WriteString(brief.SummaryMD)
		b.WriteString("\n")
	}

	if len(brief.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range brief.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
