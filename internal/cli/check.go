package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/govgate/internal/manifest"
	"github.com/ppiankov/govgate/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <manifest|dir|list>...",
	Short: "Check governance manifests and decide whether each page may publish",
	Long: `Check evaluates one or more page manifests (YAML or JSON). Each manifest
holds the page metadata and its governance disclaimer.

For every page it:
- Validates the disclaimer structure and data freshness
- Runs content integrity checks
- Applies the publish gate, including approval tokens for high-risk claims

The command exits 1 when any page is blocked, so it can guard a CI job.

Example:
  govgate check content/pricing.yaml
  govgate check content/ --check-links
  govgate check content/research.yaml --json report.json --md report.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (single manifest only)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (single manifest only)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout")
	addEvaluationFlags(checkCmd)
	addHTTPFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	var paths []string
	for _, arg := range args {
		expanded, err := manifest.Expand(arg)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", arg, err)
		}
		paths = append(paths, expanded...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no manifests found")
	}
	if len(paths) > 1 && (outJSON != "" || outMD != "") {
		return fmt.Errorf("--json and --md need a single manifest; use 'govgate batch' for many")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	allowlist := allowlistFrom(cfg)
	if allowlist.Len() == 0 {
		logger.Warn("approval token allowlist not configured; tokens are checked by format only")
	}

	p := pipeline.NewPipeline(cfg, allowlist, logger)

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking %d manifest(s)\n\n", len(paths))
	}

	blocked := 0
	for _, path := range paths {
		report, err := p.EvaluateFile(ctx, path)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}

		jsonPath, mdPath := "", ""
		if len(paths) == 1 {
			jsonPath, mdPath = outJSON, outMD
		}
		if err := p.RenderReport(report, jsonPath, mdPath, verbose); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		if !report.IsPublishable() {
			blocked++
		}
		logger.Debug("checked", zap.String("path", path), zap.Bool("publishable", report.IsPublishable()))
	}

	if blocked > 0 && !noFail {
		return fmt.Errorf("%w: %d of %d page(s)", ErrBlocked, blocked, len(paths))
	}
	return nil
}
