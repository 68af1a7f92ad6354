package model

import "strings"

// PageType classifies a page by template. Decoded values are kept as
// authored; ParsePageType maps them onto a known type for classification.
type PageType string

const (
	PagePricing             PageType = "pricing"
	PageResearch            PageType = "research"
	PageTool                PageType = "tool"
	PageComparison          PageType = "comparison"
	PageAIGeoHub            PageType = "ai-geo-hub"
	PageCaseStudy           PageType = "case-study"
	PageService             PageType = "service"
	PageIndustry            PageType = "industry"
	PageCity                PageType = "city"
	PageCityService         PageType = "city-service"
	PageCityIndustryService PageType = "city-industry-service"
	PageCore                PageType = "core"
	PageOther               PageType = "other"
)

var knownPageTypes = []PageType{
	PagePricing, PageResearch, PageTool, PageComparison, PageAIGeoHub, PageCaseStudy,
	PageService, PageIndustry, PageCity, PageCityService, PageCityIndustryService,
	PageCore, PageOther,
}

// ParsePageType maps s onto a known page type; anything unrecognized is PageOther
func ParsePageType(s string) PageType {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, pt := range knownPageTypes {
		if string(pt) == s {
			return pt
		}
	}
	return PageOther
}

// Known reports whether p is one of the recognized page types
func (p PageType) Known() bool {
	for _, pt := range knownPageTypes {
		if pt == p {
			return true
		}
	}
	return false
}

// ContentFlags describe what kinds of claims a page's content carries
type ContentFlags struct {
	HasPricing              bool `json:"hasPricing,omitempty" yaml:"hasPricing,omitempty"`
	HasMarketData           bool `json:"hasMarketData,omitempty" yaml:"hasMarketData,omitempty"`
	HasCompetitorComparison bool `json:"hasCompetitorComparison,omitempty" yaml:"hasCompetitorComparison,omitempty"`
	HasDataset              bool `json:"hasDataset,omitempty" yaml:"hasDataset,omitempty"`
	HasAIClaims             bool `json:"hasAIClaims,omitempty" yaml:"hasAIClaims,omitempty"`
	HasPerformanceClaims    bool `json:"hasPerformanceClaims,omitempty" yaml:"hasPerformanceClaims,omitempty"`
	HasROIEstimates         bool `json:"hasROIEstimates,omitempty" yaml:"hasROIEstimates,omitempty"`
	HasCaseStudyMetrics     bool `json:"hasCaseStudyMetrics,omitempty" yaml:"hasCaseStudyMetrics,omitempty"`
}

// Merge returns the union of two flag sets; a true flag is never cleared
func (f ContentFlags) Merge(o ContentFlags) ContentFlags {
	return ContentFlags{
		HasPricing:              f.HasPricing || o.HasPricing,
		HasMarketData:           f.HasMarketData || o.HasMarketData,
		HasCompetitorComparison: f.HasCompetitorComparison || o.HasCompetitorComparison,
		HasDataset:              f.HasDataset || o.HasDataset,
		HasAIClaims:             f.HasAIClaims || o.HasAIClaims,
		HasPerformanceClaims:    f.HasPerformanceClaims || o.HasPerformanceClaims,
		HasROIEstimates:         f.HasROIEstimates || o.HasROIEstimates,
		HasCaseStudyMetrics:     f.HasCaseStudyMetrics || o.HasCaseStudyMetrics,
	}
}

// PageMeta is supplied per publish check and never persisted
type PageMeta struct {
	PageType     PageType `json:"pageType" yaml:"pageType"`
	Pathname     string   `json:"pathname" yaml:"pathname"`
	ContentFlags `yaml:",inline"`
}
