package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"go-prime/cfg"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	config *cfg.Config
	limit  int
	calls  int
}

func execute(t *testing.T, args ...string) (*captured, error) {
	t.Helper()
	got := &captured{}
	rootCmd, err := NewRootCmd(func(_ *cobra.Command, c *cfg.Config, limit int) error {
		got.config = c
		got.limit = limit
		got.calls++
		return nil
	})
	require.NoError(t, err)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&discard{})
	rootCmd.SetErr(&discard{})
	return got, rootCmd.Execute()
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }

func TestDefaults(t *testing.T) {
	got, err := execute(t, "100")

	require.NoError(t, err)
	assert.Equal(t, 100, got.limit)
	assert.Equal(t, cfg.SequentialProcessor, got.config.Processor.Kind)
	assert.Equal(t, cfg.DefaultThreshold, got.config.Processor.Threshold)
	assert.Equal(t, 0, got.config.Processor.Parallelism)
	assert.Equal(t, cfg.WorkStealingScheduler, got.config.Processor.Scheduler)
	assert.Equal(t, cfg.InfoLogSeverity, got.config.Logging.Severity)
	assert.Equal(t, cfg.TextLogFormat, got.config.Logging.Format)
	assert.Equal(t, 512, got.config.Logging.LogRotate.MaxFileSizeMb)
	assert.Equal(t, 10, got.config.Logging.LogRotate.BackupFileCount)
	assert.True(t, got.config.Logging.LogRotate.Compress)
}

func TestPositionalArgs(t *testing.T) {
	tests := []struct {
		name                string
		args                []string
		expectedKind        cfg.ProcessorKind
		expectedThreshold   int
		expectedParallelism int
	}{
		{
			name:              "sequential",
			args:              []string{"30", "s"},
			expectedKind:      cfg.SequentialProcessor,
			expectedThreshold: cfg.DefaultThreshold,
		},
		{
			name:              "parallel_default_threshold",
			args:              []string{"30", "m"},
			expectedKind:      cfg.ParallelProcessor,
			expectedThreshold: cfg.DefaultThreshold,
		},
		{
			name:              "parallel_threshold",
			args:              []string{"30", "m", "5"},
			expectedKind:      cfg.ParallelProcessor,
			expectedThreshold: 5,
		},
		{
			name:                "parallel_threshold_parallelism",
			args:                []string{"30", "m", "5", "4"},
			expectedKind:        cfg.ParallelProcessor,
			expectedThreshold:   5,
			expectedParallelism: 4,
		},
		{
			name:                "positional_overrides_flags",
			args:                []string{"--processor=s", "--threshold=9", "--parallelism=2", "30", "m", "5", "4"},
			expectedKind:        cfg.ParallelProcessor,
			expectedThreshold:   5,
			expectedParallelism: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := execute(t, tc.args...)

			require.NoError(t, err)
			assert.Equal(t, 30, got.limit)
			assert.Equal(t, tc.expectedKind, got.config.Processor.Kind)
			assert.Equal(t, tc.expectedThreshold, got.config.Processor.Threshold)
			assert.Equal(t, tc.expectedParallelism, got.config.Processor.Parallelism)
		})
	}
}

func TestFlags(t *testing.T) {
	got, err := execute(t, "--processor=parallel", "--scheduler=spawn", "--threshold=64", "--log-severity=debug", "--log-format=json", "--print-primes", "1000")

	require.NoError(t, err)
	assert.Equal(t, cfg.ParallelProcessor, got.config.Processor.Kind)
	assert.Equal(t, cfg.SpawnScheduler, got.config.Processor.Scheduler)
	assert.Equal(t, 64, got.config.Processor.Threshold)
	assert.Equal(t, cfg.DebugLogSeverity, got.config.Logging.Severity)
	assert.Equal(t, cfg.JSONLogFormat, got.config.Logging.Format)
	assert.True(t, got.config.Output.PrintPrimes)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
processor:
  kind: m
  threshold: 7
  scheduler: spawn
logging:
  severity: warning
metrics:
  prometheus-port: 9100
`), 0644))

	got, err := execute(t, "--config-file="+path, "--threshold=11", "500")

	require.NoError(t, err)
	assert.Equal(t, 500, got.limit)
	assert.Equal(t, cfg.ParallelProcessor, got.config.Processor.Kind)
	assert.Equal(t, 11, got.config.Processor.Threshold)
	assert.Equal(t, cfg.SpawnScheduler, got.config.Processor.Scheduler)
	assert.Equal(t, cfg.WarningLogSeverity, got.config.Logging.Severity)
	assert.Equal(t, int64(9100), got.config.Metrics.PrometheusPort)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "no_args", args: nil, errContains: "accepts between 1 and 4 arg(s)"},
		{name: "too_many_args", args: []string{"1", "m", "2", "3", "4"}, errContains: "accepts between 1 and 4 arg(s)"},
		{name: "limit_not_integer", args: []string{"ten"}, errContains: `argument "ten" at index 0 must be an integer`},
		{name: "threshold_not_integer", args: []string{"10", "m", "x"}, errContains: `argument "x" at index 2 must be an integer`},
		{name: "unsupported_type", args: []string{"10", "q"}, errContains: "unsupported processor type q"},
		{name: "zero_threshold", args: []string{"10", "m", "0"}, errContains: cfg.ThresholdInvalidValueError},
		{name: "negative_parallelism", args: []string{"10", "m", "5", "-1"}, errContains: cfg.ParallelismInvalidValueError},
		{name: "bad_severity", args: []string{"--log-severity=loud", "10"}, errContains: "invalid log severity level"},
		{name: "missing_config_file", args: []string{"--config-file=/does/not/exist.yaml", "10"}, errContains: "error while reading the config file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := execute(t, tc.args...)

			assert.ErrorContains(t, err, tc.errContains)
			assert.Zero(t, got.calls)
		})
	}
}
