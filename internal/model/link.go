package model

import "time"

// AuthorityTier represents the classification of a source host
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, academic, official statistics
	TierSecondary AuthorityTier = 2 // Industry analysts, major publishers
	TierTertiary  AuthorityTier = 3 // Blogs, vendor pages, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// ParseAuthorityTier converts a tier name or number to an AuthorityTier
func ParseAuthorityTier(s string) AuthorityTier {
	switch s {
	case "primary", "1":
		return TierPrimary
	case "secondary", "2":
		return TierSecondary
	default:
		return TierTertiary
	}
}

// LinkResult is the reachability audit of one data source URL.
// It is advisory and never feeds the publish decision.
type LinkResult struct {
	Source       string        `json:"source"` // DataSource name
	URL          string        `json:"url"`
	IsAccessible bool          `json:"is_accessible"`
	StatusCode   int           `json:"status_code,omitempty"`
	LastModified *time.Time    `json:"last_modified,omitempty"`
	IsDead       bool          `json:"is_dead"`                // 404, 410, or network failure
	RedirectURL  string        `json:"redirect_url,omitempty"` // If redirected
	Disallowed   bool          `json:"disallowed,omitempty"`   // robots.txt forbids checking
	Authority    AuthorityTier `json:"authority"`
	Cached       bool          `json:"cached,omitempty"`
	Error        string        `json:"error,omitempty"`
}
