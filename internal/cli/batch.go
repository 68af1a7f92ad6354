package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/govgate/internal/manifest"
	"github.com/ppiankov/govgate/internal/pipeline"
	"github.com/ppiankov/govgate/internal/worker"
)

var (
	workers      int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list>",
	Short: "Check many manifests in parallel and write a report for each",
	Long: `Batch evaluates every manifest under a directory, or every path listed
in a file (one per line, # for comments), with a pool of workers:
- Each manifest is checked independently; one failure never stops the rest
- A JSON and a Markdown report are written per page
- The command exits 1 when any page is blocked

Example:
  govgate batch content/
  govgate batch manifests.txt --workers 8 --output-dir ./governance-reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./govgate-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	addEvaluationFlags(batchCmd)
	addHTTPFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}

	paths, err := manifest.Expand(input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  govgate Batch Check\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Manifests:    %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Link audit:   %v\n", cfg.LinkCheck.Enabled)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  Brief:        %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if len(paths) == 0 {
		return fmt.Errorf("no manifests found in %s", input)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, allowlistFrom(cfg), logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, logger)
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	results := processor.Process(ctx, paths)

	used := make(map[string]bool)
	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := uniqueSlug(used, reportSlug(result.Report.Subject))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		renderer.RenderSummary(os.Stderr, result.Report)
	}

	summary := worker.Summarize(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:        %d manifests\n", summary.Total)
	fmt.Fprintf(os.Stderr, "  Publishable:  %d\n", summary.Publishable)
	fmt.Fprintf(os.Stderr, "  Blocked:      %d\n", summary.Blocked)
	fmt.Fprintf(os.Stderr, "  Failed:       %d\n", summary.Failed)
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if summary.Failed > 0 {
		return fmt.Errorf("%d manifest(s) could not be evaluated", summary.Failed)
	}
	if summary.Blocked > 0 && !noFail {
		return fmt.Errorf("%w: %d of %d page(s)", ErrBlocked, summary.Blocked, summary.Total)
	}
	return nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)

// reportSlug turns a page subject into a file name stem
func reportSlug(subject string) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	s = slugUnsafe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		s = "index"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// uniqueSlug appends the lowest free counter when slug is already taken
func uniqueSlug(used map[string]bool, slug string) string {
	candidate := slug
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
	used[candidate] = true
	return candidate
}
