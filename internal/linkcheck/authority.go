package linkcheck

import (
	"net/url"
	"strings"

	"github.com/ppiankov/govgate/internal/model"
)

// AuthorityClassifier assigns source hosts to authority tiers
type AuthorityClassifier struct {
	domainMap map[string]model.AuthorityTier
	primary   []string
	secondary []string
}

// NewAuthorityClassifier builds a classifier; nil config uses the defaults
func NewAuthorityClassifier(cfg *model.AuthorityConfig) *AuthorityClassifier {
	if cfg == nil {
		cfg = &model.DefaultConfig().Authority
	}

	a := &AuthorityClassifier{
		domainMap: make(map[string]model.AuthorityTier, len(cfg.DomainMap)),
		primary:   normalizeDomains(cfg.PrimaryDomains),
		secondary: normalizeDomains(cfg.SecondaryDomains),
	}
	for domain, tier := range cfg.DomainMap {
		a.domainMap[strings.ToLower(domain)] = model.ParseAuthorityTier(strings.ToLower(strings.TrimSpace(tier)))
	}
	return a
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.Trim(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Classify returns the tier for rawURL's host. Explicit mappings win, then
// primary and secondary domain suffixes, then academic and government TLDs.
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return model.TierUnknown
	}

	if tier, ok := a.domainMap[host]; ok {
		return tier
	}
	if matchesAny(host, a.primary) {
		return model.TierPrimary
	}
	if matchesAny(host, a.secondary) {
		return model.TierSecondary
	}
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}
	return model.TierTertiary
}

// matchesAny reports whether host equals a domain or is a subdomain of one
func matchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
