package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/govgate/internal/gate"
	"github.com/ppiankov/govgate/internal/model"
)

// Version is set at build time
var Version = "0.1.0"

// ErrBlocked is returned when at least one evaluated page may not be published
var ErrBlocked = errors.New("publish blocked")

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "govgate",
	Short: "govgate - Governance disclaimer checks and publish gate",
	Long: `govgate checks the governance disclaimers attached to content pages and
decides whether each page may be published.

It validates sources, methodology, limitations and data freshness, flags
high-risk claims, and requires an authorized approval token before
high-risk content goes live.

govgate checks attribution and disclosure. It does not decide whether a
claim is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps a command error to a process exit code: 0 on success,
// 1 when a page is blocked, 2 for any other failure
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrBlocked):
		return 1
	default:
		return 2
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("govgate v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.govgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds a console logger on stderr; verbose enables debug level
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".govgate"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindEnv maps GOVGATE_* variables onto config keys, plus the conventional
// names for secrets and the approval token allowlist
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("GOVGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("governance.approval_tokens", "GOVGATE_GOVERNANCE_APPROVAL_TOKENS", "GOVERNANCE_APPROVAL_TOKENS")
	_ = v.BindEnv("llm.api_key", "GOVGATE_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.base_url", "GOVGATE_LLM_BASE_URL", "OLLAMA_BASE_URL")
	_ = v.BindEnv("http.http_proxy", "GOVGATE_HTTP_HTTP_PROXY", "HTTP_PROXY")
	_ = v.BindEnv("http.https_proxy", "GOVGATE_HTTP_HTTPS_PROXY", "HTTPS_PROXY")
	_ = v.BindEnv("http.no_proxy", "GOVGATE_HTTP_NO_PROXY", "NO_PROXY")
	_ = v.BindEnv("llm.provider")
	_ = v.BindEnv("llm.model")
	_ = v.BindEnv("link_check.enabled")
	_ = v.BindEnv("concurrency.workers")
}

// loadConfig layers the config file and environment over the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// allowlistFrom builds the approval token allowlist from configuration
func allowlistFrom(cfg *model.Config) gate.StaticAllowlist {
	var tokens []string
	for _, t := range cfg.Governance.ApprovalTokens {
		tokens = append(tokens, strings.Split(t, ",")...)
	}
	return gate.NewStaticAllowlist(tokens)
}
