package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/govgate/internal/pipeline"
)

var scanTimeout time.Duration

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Check the governance manifest embedded in a published page",
	Long: `Scan fetches a published page, reads the manifest embedded in a
<script type="application/vnd.govgate+json"> element, and runs the same
checks as 'govgate check'.

Content flags detected in the visible page text are merged into the
declared ones, so a page that talks about ROI or performance gains is
treated as high-risk even when its manifest says otherwise.

Example:
  govgate scan https://example.com/pricing
  govgate scan https://example.com/research --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	addEvaluationFlags(scanCmd)
	addHTTPFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", scanTimeout)
		fmt.Fprintf(os.Stderr, "Link audit: %v\n", cfg.LinkCheck.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, allowlistFrom(cfg), logger)

	report, err := p.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Page type: %s\n", report.Page.PageType)
		fmt.Fprintf(os.Stderr, "✓ Fingerprint: %s\n", report.Fingerprint)
		if report.Brief != nil && report.Brief.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated brief using %s/%s\n", report.Brief.Provider, report.Brief.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !report.IsPublishable() && !noFail {
		return fmt.Errorf("%w: %s", ErrBlocked, report.Subject)
	}
	return nil
}
