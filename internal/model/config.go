package model

import "time"

// Config is the complete govgate configuration
type Config struct {
	Governance   GovernanceConfig   `yaml:"governance" mapstructure:"governance"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LinkCheck    LinkCheckConfig    `yaml:"link_check" mapstructure:"link_check"`
	Authority    AuthorityConfig    `yaml:"authority" mapstructure:"authority"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// GovernanceConfig holds operator-supplied governance settings
type GovernanceConfig struct {
	// ApprovalTokens is the allowlist of authorized approval tokens.
	// Empty means unconfigured: tokens of FallbackApprovalTokenLen or more are accepted.
	ApprovalTokens []string `yaml:"approval_tokens" mapstructure:"approval_tokens"`
}

// HTTPConfig controls page fetching and link checks
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of link check results
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir,omitempty" mapstructure:"disk_dir"` // Empty disables the disk layer
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	Workers     int `yaml:"workers" mapstructure:"workers"`           // Manifests evaluated in parallel
	LinkWorkers int `yaml:"link_workers" mapstructure:"link_workers"` // Source URLs checked in parallel
}

// RateLimitingConfig controls per-host request rate for link checks
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LinkCheckConfig controls the optional source link audit
type LinkCheckConfig struct {
	Enabled       bool `yaml:"enabled" mapstructure:"enabled"`
	RespectRobots bool `yaml:"respect_robots" mapstructure:"respect_robots"`
	MaxRetries    int  `yaml:"max_retries" mapstructure:"max_retries"`
}

// AuthorityConfig maps source hosts to authority tiers
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
}

// LLMConfig controls the optional reviewer brief
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "", openai, ollama
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "govgate/0.1 (+https://github.com/ppiankov/govgate)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:     4,
			LinkWorkers: 8,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		LinkCheck: LinkCheckConfig{
			Enabled:       false,
			RespectRobots: true,
			MaxRetries:    3,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov", "census.gov", "bls.gov", "europa.eu", "oecd.org", "worldbank.org",
			},
			SecondaryDomains: []string{
				"gartner.com", "forrester.com", "statista.com", "mckinsey.com",
				"hubspot.com", "semrush.com", "ahrefs.com", "moz.com",
			},
		},
		LLM: LLMConfig{
			Timeout:        30,
			StrictEvidence: true,
			MaxTokens:      800,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
