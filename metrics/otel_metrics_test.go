package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupOTel(t *testing.T) (*otelMetrics, *metric.ManualReader) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	m, err := NewOTelMetrics()
	require.NoError(t, err)
	return m, reader
}

// gatherNonZeroCounterMetrics maps metric name to encoded attribute set to
// value, leaving out zero values.
func gatherNonZeroCounterMetrics(ctx context.Context, t *testing.T, rd *metric.ManualReader) map[string]map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, rd.Collect(ctx, &rm))

	results := make(map[string]map[string]int64)
	encoder := attribute.DefaultEncoder()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			values := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				if dp.Value == 0 {
					continue
				}
				values[dp.Attributes.Encoded(encoder)] = dp.Value
			}
			if len(values) > 0 {
				results[m.Name] = values
			}
		}
	}
	return results
}

func gatherHistogramMetrics(ctx context.Context, t *testing.T, rd *metric.ManualReader) map[string]map[string]metricdata.HistogramDataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, rd.Collect(ctx, &rm))

	results := make(map[string]map[string]metricdata.HistogramDataPoint[int64])
	encoder := attribute.DefaultEncoder()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			hist, ok := m.Data.(metricdata.Histogram[int64])
			if !ok {
				continue
			}
			points := make(map[string]metricdata.HistogramDataPoint[int64])
			for _, dp := range hist.DataPoints {
				if dp.Count == 0 {
					continue
				}
				points[dp.Attributes.Encoded(encoder)] = dp
			}
			if len(points) > 0 {
				results[m.Name] = points
			}
		}
	}
	return results
}

func TestProcessCount(t *testing.T) {
	tests := []struct {
		name     string
		f        func(m *otelMetrics)
		expected map[string]int64
	}{
		{
			name: "processor_parallel",
			f: func(m *otelMetrics) {
				m.ProcessCount(3, ProcessorParallel)
			},
			expected: map[string]int64{"processor=parallel": 3},
		},
		{
			name: "processor_sequential",
			f: func(m *otelMetrics) {
				m.ProcessCount(2, ProcessorSequential)
				m.ProcessCount(5, ProcessorSequential)
			},
			expected: map[string]int64{"processor=sequential": 7},
		},
		{
			name: "both_processors",
			f: func(m *otelMetrics) {
				m.ProcessCount(1, ProcessorSequential)
				m.ProcessCount(4, ProcessorParallel)
			},
			expected: map[string]int64{"processor=sequential": 1, "processor=parallel": 4},
		},
		{
			name: "unknown_processor_ignored",
			f: func(m *otelMetrics) {
				m.ProcessCount(4, "gpu")
			},
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			m, rd := setupOTel(t)

			tc.f(m)

			metrics := gatherNonZeroCounterMetrics(ctx, t, rd)
			got, ok := metrics["primes/process_count"]
			if tc.expected == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPrimesFoundAndTaskCount(t *testing.T) {
	ctx := context.Background()
	m, rd := setupOTel(t)

	m.PrimesFoundCount(25, ProcessorParallel)
	m.TaskCount(8, TaskKindLeaf)
	m.TaskCount(7, TaskKindSplit)
	m.PoolStealCount(2)

	metrics := gatherNonZeroCounterMetrics(ctx, t, rd)
	assert.Equal(t, map[string]int64{"processor=parallel": 25}, metrics["primes/primes_found_count"])
	assert.Equal(t, map[string]int64{"task_kind=leaf": 8, "task_kind=split": 7}, metrics["primes/task_count"])
	assert.Equal(t, map[string]int64{"": 2}, metrics["pool/steal_count"])
}

func TestProcessLatency(t *testing.T) {
	ctx := context.Background()
	m, rd := setupOTel(t)

	m.ProcessLatency(ctx, 300*time.Microsecond, ProcessorSequential)
	m.ProcessLatency(ctx, 700*time.Microsecond, ProcessorSequential)
	m.ProcessLatency(ctx, time.Millisecond, "unknown")

	metrics := gatherHistogramMetrics(ctx, t, rd)
	points, ok := metrics["primes/process_latency"]
	require.True(t, ok)
	require.Len(t, points, 1)
	dp := points["processor=sequential"]
	assert.Equal(t, uint64(2), dp.Count)
	assert.Equal(t, int64(1000), dp.Sum)
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()

	assert.NotPanics(t, func() {
		m.ProcessCount(1, ProcessorParallel)
		m.ProcessLatency(context.Background(), time.Second, ProcessorParallel)
		m.PrimesFoundCount(1, ProcessorParallel)
		m.TaskCount(1, TaskKindLeaf)
		m.PoolStealCount(1)
	})
}
