package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/govgate/internal/model"
)

// Evaluator produces a governance report for one manifest file
type Evaluator interface {
	EvaluateFile(ctx context.Context, path string) (*model.Report, error)
}

// BatchResult is the outcome for one manifest in a batch
type BatchResult struct {
	Path     string
	Report   *model.Report
	Error    error
	Duration time.Duration
}

// Blocked reports whether the page was evaluated and may not be published
func (r *BatchResult) Blocked() bool {
	return r.Error == nil && r.Report != nil && !r.Report.IsPublishable()
}

// BatchProcessor evaluates many manifests concurrently
type BatchProcessor struct {
	evaluator Evaluator
	pool      *Pool
	logger    *zap.Logger
}

// NewBatchProcessor creates a processor; a nil logger discards output
func NewBatchProcessor(evaluator Evaluator, workers int, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		evaluator: evaluator,
		pool:      NewPool(workers),
		logger:    logger,
	}
}

// Process evaluates every path. Results keep input order and a failure on
// one path never stops the others.
func (b *BatchProcessor) Process(ctx context.Context, paths []string) []*BatchResult {
	b.logger.Debug("batch started", zap.Int("manifests", len(paths)), zap.Int("workers", b.pool.Workers()))

	results := Map(ctx, b.pool, paths, func(ctx context.Context, path string) *BatchResult {
		start := time.Now()
		result := &BatchResult{Path: path}

		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}

		result.Report, result.Error = b.evaluator.EvaluateFile(ctx, path)
		result.Duration = time.Since(start)

		if result.Error != nil {
			b.logger.Warn("manifest failed", zap.String("path", path), zap.Error(result.Error))
		} else {
			b.logger.Debug("manifest evaluated",
				zap.String("path", path),
				zap.Bool("publishable", result.Report.IsPublishable()),
				zap.Strings("reasons", result.Report.DecisionReasons()),
				zap.Duration("took", result.Duration))
		}
		return result
	})

	summary := Summarize(results)
	b.logger.Info("batch finished",
		zap.Int("total", summary.Total),
		zap.Int("publishable", summary.Publishable),
		zap.Int("blocked", summary.Blocked),
		zap.Int("failed", summary.Failed))

	return results
}

// Summary counts batch outcomes
type Summary struct {
	Total       int `json:"total"`
	Publishable int `json:"publishable"`
	Blocked     int `json:"blocked"`
	Failed      int `json:"failed"`
}

// Summarize tallies batch results
func Summarize(results []*BatchResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Error != nil || r.Report == nil:
			s.Failed++
		case r.Report.IsPublishable():
			s.Publishable++
		default:
			s.Blocked++
		}
	}
	return s
}
