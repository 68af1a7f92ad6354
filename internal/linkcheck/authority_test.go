package linkcheck

import (
	"testing"

	"github.com/ppiankov/govgate/internal/model"
)

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://www.census.gov/data/tables.html", model.TierPrimary},
		{"https://www.bls.gov/cpi/", model.TierPrimary},
		{"https://data.europa.eu/en", model.TierPrimary},
		{"https://stats.oecd.org", model.TierPrimary},
		{"https://mit.edu/research", model.TierPrimary},
		{"https://www.ox.ac.uk/", model.TierPrimary},
		{"https://www.gartner.com/en/newsroom", model.TierSecondary},
		{"https://www.statista.com/statistics/1", model.TierSecondary},
		{"https://blog.example.com/post", model.TierTertiary},
		{"https://governance.example.com", model.TierTertiary},
		{"not a url", model.TierUnknown},
		{"https://", model.TierUnknown},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestAuthorityClassifier_Config(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		PrimaryDomains:   []string{" Example-Stats.org ", ""},
		SecondaryDomains: []string{".industry.example"},
		DomainMap: map[string]string{
			"www.gartner.com":  "primary",
			"blog.census.gov":  "Tertiary",
			"research.example": "2",
		},
	})

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://data.example-stats.org/series", model.TierPrimary},
		{"https://news.industry.example/", model.TierSecondary},
		{"https://www.gartner.com/en", model.TierPrimary},
		{"https://blog.census.gov/post", model.TierTertiary},
		{"https://research.example/report", model.TierSecondary},
		{"https://www.statista.com/", model.TierTertiary},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
