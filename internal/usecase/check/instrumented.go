package check

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/metrics"
)

// InstrumentedChecker wraps a Checker with logging and Prometheus metrics.
// The inner service stays free of observability concerns.
type InstrumentedChecker struct {
	inner  Checker
	logger *zap.Logger
}

// NewInstrumentedChecker wraps a checker with observability.
func NewInstrumentedChecker(inner Checker, logger *zap.Logger) *InstrumentedChecker {
	return &InstrumentedChecker{inner: inner, logger: logger}
}

// Check delegates to the inner checker and records duration, outcome status
// and the risk tier of the best match.
func (c *InstrumentedChecker) Check(
	ctx context.Context, corpusName, query string, topK int,
) (Outcome, error) {
	start := time.Now()

	out, err := c.inner.Check(ctx, corpusName, query, topK)

	duration := time.Since(start)
	metrics.CheckDuration.WithLabelValues(corpusName).Observe(duration.Seconds())

	if err != nil {
		metrics.CheckRequestsTotal.WithLabelValues(corpusName, "error").Inc()
		c.logger.Error("Similarity check failed",
			zap.String("corpus", corpusName),
			zap.Int("top_k", topK),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Outcome{}, err
	}

	metrics.CheckRequestsTotal.WithLabelValues(corpusName, "success").Inc()
	metrics.CorpusSize.WithLabelValues(corpusName).Set(float64(out.CorpusSize))

	fields := []zap.Field{
		zap.String("corpus", corpusName),
		zap.String("corpus_revision", out.CorpusRevision),
		zap.Int("corpus_size", out.CorpusSize),
		zap.Int("top_k", topK),
		zap.Int("matches", len(out.Report.Matches())),
		zap.Duration("duration", duration),
	}
	if best, ok := out.Report.BestScore(); ok {
		metrics.CheckRiskTierTotal.WithLabelValues(corpusName, string(out.Tier)).Inc()
		fields = append(fields,
			zap.Float64("best_score", best),
			zap.String("risk_tier", string(out.Tier)),
		)
	}
	c.logger.Debug("Similarity check completed", fields...)

	return out, nil
}
