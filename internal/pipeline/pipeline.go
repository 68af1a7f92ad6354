// Package pipeline evaluates manifests and published pages end to end: the
// disclaimer rules, the integrity checks and the publish gate, then the
// optional link audit and reviewer brief.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/govgate/internal/cache"
	"github.com/ppiankov/govgate/internal/disclaimer"
	"github.com/ppiankov/govgate/internal/extract"
	"github.com/ppiankov/govgate/internal/gate"
	"github.com/ppiankov/govgate/internal/integrity"
	"github.com/ppiankov/govgate/internal/linkcheck"
	"github.com/ppiankov/govgate/internal/llm"
	"github.com/ppiankov/govgate/internal/manifest"
	"github.com/ppiankov/govgate/internal/model"
)

// Pipeline orchestrates governance evaluation
type Pipeline struct {
	config     *model.Config
	allowlist  gate.Allowlist
	fetcher    *Fetcher
	extractor  *extract.PageExtractor
	links      *linkcheck.Checker // nil when the link audit is disabled
	summarizer *llm.Summarizer    // nil when briefs are disabled
	renderer   *Renderer
	logger     *zap.Logger

	// Now returns the evaluation time; nil means time.Now
	Now func() time.Time
}

// NewPipeline creates a pipeline. A provider that fails to initialize
// disables briefs with a warning instead of failing.
func NewPipeline(cfg *model.Config, allowlist gate.Allowlist, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var links *linkcheck.Checker
	if cfg.LinkCheck.Enabled {
		links = linkcheck.NewChecker(cfg, cache.New(cfg.Cache), logger)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg), logger)
		if err != nil {
			logger.Warn("LLM provider disabled", zap.Error(err))
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		config:    cfg,
		allowlist: allowlist,
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		extractor:  extract.NewPageExtractor(),
		links:      links,
		summarizer: summarizer,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		logger:     logger,
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}

// Evaluate runs every governance check on a manifest. All checks in one
// report see the same evaluation time.
func (p *Pipeline) Evaluate(ctx context.Context, m *manifest.Manifest, location string) (*model.Report, error) {
	if m == nil {
		return nil, fmt.Errorf("evaluate: nil manifest")
	}

	now := p.now()
	clock := func() time.Time { return now }
	d := m.Disclaimer

	fingerprint, err := disclaimer.Fingerprint(d)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	// 1. Structural validation and status
	report := &model.Report{
		RunID:       uuid.NewString(),
		Subject:     m.Subject(),
		Location:    location,
		EvaluatedAt: now,
		Fingerprint: fingerprint,
		Page:        m.Page,
		Disclaimer:  d,
		Staleness:   disclaimer.CheckStalenessAt(d.LastUpdated, now),
		Validation:  disclaimer.ValidateAt(d, now),
		Status:      disclaimer.StatusAt(d, now),
	}

	// 2. Content integrity
	checker := &integrity.Checker{Now: clock}
	report.Integrity = checker.Check(d, integrity.ContextFromPage(m.Page))

	// 3. Publish gate
	g := &gate.Gate{Allowlist: p.allowlist, Now: clock}
	report.Gate = g.Publish(d, m.Page)

	// 4. Decision: the gate plus structural validity
	report.Publishable = report.IsPublishable()

	p.logger.Debug("evaluated",
		zap.String("subject", report.Subject),
		zap.String("fingerprint", fingerprint),
		zap.Bool("publishable", report.Publishable),
		zap.Strings("reasons", report.DecisionReasons()))

	// 5. Source link audit (advisory)
	if p.links != nil {
		report.Links = p.links.Check(ctx, d.Sources)
	}

	// 6. Reviewer brief (after the decision, never affects it)
	if p.summarizer.IsEnabled() {
		brief, err := p.summarizer.GenerateBrief(ctx, *report)
		if err != nil {
			p.logger.Warn("brief generation failed", zap.Error(err))
		} else {
			report.Brief = brief
		}
	}

	return report, nil
}

// EvaluateFile loads and evaluates one manifest file
func (p *Pipeline) EvaluateFile(ctx context.Context, path string) (*model.Report, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(ctx, m, path)
}

// ScanURL fetches a published page and evaluates its embedded manifest
func (p *Pipeline) ScanURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	m, err := p.extractor.Extract(fetched.HTML, fetched.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return p.Evaluate(ctx, m, fetched.FinalURL)
}

// RenderReport writes the requested report files and prints a summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}

		if md := llm.RenderSeparateMarkdown(report.Brief); md != "" {
			briefPath := strings.TrimSuffix(mdPath, ".md") + ".brief.md"
			if err := writeFile(briefPath, []byte(md)); err != nil {
				p.logger.Warn("failed to write brief", zap.String("path", briefPath), zap.Error(err))
			} else if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote Brief: %s\n", briefPath)
			}
		}
	}

	p.renderer.RenderSummary(os.Stdout, report)
	return nil
}
