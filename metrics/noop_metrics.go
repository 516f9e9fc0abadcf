package metrics

import (
	"context"
	"time"
)

type noopMetrics struct{}

func (*noopMetrics) ProcessCount(inc int64, processor string) {}

func (*noopMetrics) ProcessLatency(ctx context.Context, duration time.Duration, processor string) {
}

func (*noopMetrics) PrimesFoundCount(inc int64, processor string) {}

func (*noopMetrics) TaskCount(inc int64, taskKind string) {}

func (*noopMetrics) PoolStealCount(inc int64) {}

func NewNoopMetrics() MetricHandle {
	var n noopMetrics
	return &n
}
