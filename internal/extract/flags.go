package extract

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/govgate/internal/model"
)

// FlagDetector infers content flags from a page's visible text
type FlagDetector struct {
	patterns map[string]*regexp.Regexp
}

// Flag names, matching the manifest's content flag keys
const (
	FlagPricing              = "hasPricing"
	FlagMarketData           = "hasMarketData"
	FlagCompetitorComparison = "hasCompetitorComparison"
	FlagDataset              = "hasDataset"
	FlagAIClaims             = "hasAIClaims"
	FlagPerformanceClaims    = "hasPerformanceClaims"
	FlagROIEstimates         = "hasROIEstimates"
	FlagCaseStudyMetrics     = "hasCaseStudyMetrics"
)

var defaultKeywords = map[string][]string{
	FlagPricing: {
		`pricing`, `price`, `per month`, `per year`, `/mo`, `starting at`, `\$\s?\d`, `€\s?\d`, `£\s?\d`,
	},
	FlagMarketData: {
		`market size`, `market share`, `industry average`, `industry benchmark`, `cagr`, `market growth`,
	},
	FlagCompetitorComparison: {
		`vs\.?`, `versus`, `compared to`, `alternative to`, `alternatives`, `competitors?`,
	},
	FlagDataset: {
		`dataset`, `data set`, `respondents`, `we surveyed`, `sample of \d`, `survey of \d`,
	},
	FlagAIClaims: {
		`chatgpt`, `gemini`, `perplexity`, `ai overviews?`, `ai search`, `generative engine`, `llms?`, `copilot`,
	},
	FlagPerformanceClaims: {
		`\d+(\.\d+)?\s?%\s(increase|more|growth|faster|higher|lift)`, `\d+x\s(more|faster)`,
		`increased? (traffic|conversions|leads|rankings)`, `doubled`, `tripled`,
	},
	FlagROIEstimates: {
		`roi`, `return on investment`, `payback period`, `pays for itself`,
	},
	FlagCaseStudyMetrics: {
		`case study`, `our client`, `client saw`, `client results`,
	},
}

// NewFlagDetector creates a detector with the default keyword sets
func NewFlagDetector() *FlagDetector {
	return NewFlagDetectorWithKeywords(defaultKeywords)
}

// NewFlagDetectorWithKeywords creates a detector from per-flag regular
// expressions. Each expression matches case-insensitively on word boundaries.
func NewFlagDetectorWithKeywords(keywords map[string][]string) *FlagDetector {
	d := &FlagDetector{patterns: make(map[string]*regexp.Regexp, len(keywords))}
	for flag, words := range keywords {
		if len(words) == 0 {
			continue
		}
		d.patterns[flag] = regexp.MustCompile(`(?i)(^|[^\pL\pN])(` + strings.Join(words, "|") + `)($|[^\pL\pN])`)
	}
	return d
}

// Detect parses htmlContent and reports which flags its visible text triggers
func (d *FlagDetector) Detect(htmlContent string) (model.ContentFlags, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return model.ContentFlags{}, fmt.Errorf("parse html: %w", err)
	}
	return d.DetectText(visibleText(doc)), nil
}

// DetectText reports which flags plain text triggers
func (d *FlagDetector) DetectText(text string) model.ContentFlags {
	match := func(flag string) bool {
		re, ok := d.patterns[flag]
		return ok && re.MatchString(text)
	}

	return model.ContentFlags{
		HasPricing:              match(FlagPricing),
		HasMarketData:           match(FlagMarketData),
		HasCompetitorComparison: match(FlagCompetitorComparison),
		HasDataset:              match(FlagDataset),
		HasAIClaims:             match(FlagAIClaims),
		HasPerformanceClaims:    match(FlagPerformanceClaims),
		HasROIEstimates:         match(FlagROIEstimates),
		HasCaseStudyMetrics:     match(FlagCaseStudyMetrics),
	}
}

// DetectContentFlags runs the default detector over an HTML page
func DetectContentFlags(htmlContent string) (model.ContentFlags, error) {
	return NewFlagDetector().Detect(htmlContent)
}
