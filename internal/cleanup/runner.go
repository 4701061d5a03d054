// Package cleanup clears stale Motion task ids from Notion pages, one page
// at a time.
package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lucendex/phantomclear/internal/notion"
)

type PageClient interface {
	ClearRichText(ctx context.Context, pageID, property string) (*notion.Response, error)
}

type Reporter interface {
	Begin(task ClearTask)
	Result(res Result)
	Finish(summary Summary)
}

type Runner struct {
	client   PageClient
	pacer    *Pacer
	reporter Reporter
	metrics  *Metrics
	logger   *zap.Logger
}

func NewRunner(client PageClient, pacer *Pacer, reporter Reporter, metrics *Metrics, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if pacer == nil {
		pacer = NewPacer(DefaultDelay)
	}
	return &Runner{
		client:   client,
		pacer:    pacer,
		reporter: reporter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run clears every task in order. Per-page failures are reported and never
// stop the loop.
func (r *Runner) Run(ctx context.Context, tasks []ClearTask) Summary {
	summary := Summary{
		Total:   len(tasks),
		Results: make([]Result, 0, len(tasks)),
	}

	r.logger.Info("starting phantom id cleanup",
		zap.Int("tasks", len(tasks)),
		zap.Duration("delay", r.pacer.Delay()))

	for _, task := range tasks {
		r.reporter.Begin(task)

		res := r.clear(ctx, task)
		if res.Outcome == OutcomeCleared {
			summary.Cleared++
		}
		summary.Results = append(summary.Results, res)
		r.reporter.Result(res)

		if err := r.pacer.Wait(ctx); err != nil {
			r.logger.Warn("cleanup interrupted", zap.Error(err))
			break
		}
	}

	r.logger.Info("phantom id cleanup finished",
		zap.Int("cleared", summary.Cleared),
		zap.Int("total", summary.Total))
	r.reporter.Finish(summary)

	return summary
}

func (r *Runner) clear(ctx context.Context, task ClearTask) Result {
	log := r.logger.With(
		zap.String("page_id", task.RecordID),
		zap.String("stale_motion_id", task.StaleReferenceID))

	start := time.Now()
	resp, err := r.client.ClearRichText(ctx, task.RecordID, MotionTaskIDProperty)
	latencyMs := float64(time.Since(start).Milliseconds())

	res := Result{Task: task}
	switch {
	case err != nil:
		res.Outcome = OutcomeError
		res.Err = err
		log.Error("clear request failed", zap.Error(err))
	case resp.OK():
		res.Outcome = OutcomeCleared
		res.StatusCode = resp.StatusCode
		log.Debug("cleared motion task id", zap.Float64("latency_ms", latencyMs))
	default:
		res.Outcome = OutcomeFailed
		res.StatusCode = resp.StatusCode
		res.Snippet = snippet(resp.Body)
		fields := []zap.Field{zap.Int("status", resp.StatusCode)}
		if apiErr := notion.DecodeError(resp); apiErr != nil {
			fields = append(fields, zap.String("code", apiErr.Code), zap.String("message", apiErr.Message))
		}
		log.Warn("notion rejected page update", fields...)
	}

	r.metrics.observe(res.Outcome, latencyMs)
	return res
}

func snippet(body []byte) string {
	runes := []rune(string(body))
	if len(runes) > SnippetLength {
		runes = runes[:SnippetLength]
	}
	return string(runes)
}
