package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/govgate/internal/model"
)

// Flags shared by check, scan and batch
var (
	checkLinks  bool
	noCache     bool
	noFooter    bool
	noFail      bool
	insecureTLS bool
	httpTimeout time.Duration
	userAgent   string
	httpProxy   string
	httpsProxy  string
	briefOn     bool
	llmProvider string
	llmModel    string
)

func addEvaluationFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&checkLinks, "check-links", false, "audit source URL reachability (advisory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the link check cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&noFail, "no-fail", false, "exit 0 even when a page is blocked")
	cmd.Flags().BoolVar(&briefOn, "brief", false, "generate an LLM reviewer brief")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama); default from config")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name; default from config")
}

func addHTTPFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&httpTimeout, "http-timeout", 0, "per-request HTTP timeout (default from config)")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY)")
}

// buildConfig loads configuration and applies command-line overrides
func buildConfig() (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if checkLinks {
		cfg.LinkCheck.Enabled = true
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if httpTimeout > 0 {
		cfg.HTTP.Timeout = httpTimeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	cfg.Output.Verbose = verbose

	if !briefOn {
		cfg.LLM.Provider = ""
		return cfg, nil
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	cfg.LLM.StrictEvidence = true
	if strings.EqualFold(cfg.LLM.Provider, "openai") && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return cfg, nil
}
