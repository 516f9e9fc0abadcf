package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"go-prime/cfg"
	"go-prime/logger"
	"go-prime/metrics"
	"go-prime/prime"
	"go-prime/timer"

	"github.com/jacobsa/timeutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"leb.io/hrff"
)

func runPrimes(cmd *cobra.Command, c *cfg.Config, limit int) error {
	if err := logger.Init(c.Logging); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown := metrics.SetupOTelMetricExporters(ctx, c)
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Warnf("Error while shutting down metrics: %v", err)
		}
	}()

	metricHandle, err := metrics.NewOTelMetrics()
	if err != nil {
		logger.Warnf("Falling back to no-op metrics: %v", err)
		return run(cmd.OutOrStdout(), c, limit, metrics.NewNoopMetrics(), timeutil.RealClock())
	}
	return run(cmd.OutOrStdout(), c, limit, metricHandle, timeutil.RealClock())
}

func run(out io.Writer, c *cfg.Config, limit int, metricHandle metrics.MetricHandle, clock timeutil.Clock) error {
	if c.Output.PrintConfig {
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("error while printing config: %w", err)
		}
		_ = enc.Close()
	}

	sw := timer.NewStopwatch(clock)
	sw.Start()
	sw.Stage("setup")
	proc, err := newProcessor(c, metricHandle)
	if err != nil {
		return err
	}
	if closer, ok := proc.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Infof("Params limit=%d processor=%s threshold=%d parallelism=%d scheduler=%s",
		limit, c.Processor.Kind, c.Processor.Threshold, c.Processor.Parallelism, c.Processor.Scheduler)

	sw.Stage("process")
	before := sw.Elapsed()
	result, err := proc.Process(limit)
	if err != nil {
		return fmt.Errorf("processing limit %d: %w", limit, err)
	}
	elapsed := sw.Elapsed() - before

	sw.Stage("report")
	fmt.Fprintf(out, "%.3f millis.\n", float64(elapsed)/float64(time.Millisecond))
	fmt.Fprintf(out, "Found %d prime numbers with limit %d in %.3f seconds.\n", result.Len(), limit, elapsed.Seconds())
	found := hrff.Int64{V: int64(result.Len()), U: "primes"}
	if elapsed > 0 {
		rate := hrff.Float64{V: float64(limit) * float64(time.Second) / float64(elapsed), U: "candidates/sec"}
		fmt.Fprintf(out, "Summary %h at %h\n", found, rate)
	} else {
		fmt.Fprintf(out, "Summary %h\n", found)
	}
	if c.Output.PrintPrimes {
		for _, p := range result.Sorted() {
			fmt.Fprintln(out, p)
		}
	}
	for _, s := range sw.Stages() {
		logger.Debugf("stage %s: %v", s.Name, s.Duration)
	}
	return nil
}

func newProcessor(c *cfg.Config, metricHandle metrics.MetricHandle) (prime.Processor, error) {
	switch c.Processor.Kind {
	case cfg.ParallelProcessor:
		return prime.NewParallelProcessor(c.Processor.Threshold,
			prime.WithParallelism(c.Processor.Parallelism),
			prime.WithScheduler(c.Processor.Scheduler),
			prime.WithMetrics(metricHandle))
	case cfg.SequentialProcessor:
		return prime.NewSequentialProcessor(prime.WithMetrics(metricHandle)), nil
	default:
		return nil, fmt.Errorf("unsupported processor type %q", c.Processor.Kind)
	}
}
