package cfg

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultThreshold is the range width below which a task stops splitting.
	DefaultThreshold = 1000
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Output OutputConfig `yaml:"output"`

	Processor ProcessorConfig `yaml:"processor"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath string `yaml:"file-path"`

	Format LogFormat `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type OutputConfig struct {
	PrintConfig bool `yaml:"print-config"`

	PrintPrimes bool `yaml:"print-primes"`
}

type ProcessorConfig struct {
	Kind ProcessorKind `yaml:"kind"`

	Parallelism int `yaml:"parallelism"`

	Scheduler SchedulerKind `yaml:"scheduler"`

	Threshold int `yaml:"threshold"`
}

// BindFlags registers every config flag on flagSet and binds it to the
// matching key of a fresh viper instance.
func BindFlags(flagSet *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	bindings := []struct {
		key  string
		flag string
	}{
		{"logging.file-path", "log-file"},
		{"logging.format", "log-format"},
		{"logging.log-rotate.backup-file-count", "log-rotate-backup-file-count"},
		{"logging.log-rotate.compress", "log-rotate-compress"},
		{"logging.log-rotate.max-file-size-mb", "log-rotate-max-file-size-mb"},
		{"logging.severity", "log-severity"},
		{"metrics.prometheus-port", "prometheus-port"},
		{"output.print-config", "print-config"},
		{"output.print-primes", "print-primes"},
		{"processor.kind", "processor"},
		{"processor.parallelism", "parallelism"},
		{"processor.scheduler", "scheduler"},
		{"processor.threshold", "threshold"},
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs that can be parsed by fluentd. When not provided, logs are written to stderr.")

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. 0 value means all backup files are retained.")

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	flagSet.StringP("log-severity", "", "INFO", "Specifies the logging severity expressed as one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]")

	flagSet.Int64P("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port and a path of /metrics. 0 disables the endpoint.")

	flagSet.BoolP("print-config", "", false, "Print the effective configuration as YAML before processing.")

	flagSet.BoolP("print-primes", "", false, "Print every prime found, in increasing order, to stdout.")

	flagSet.StringP("processor", "", string(SequentialProcessor), "The processor to run: 'sequential' (or 's') or 'parallel' (or 'm').")

	flagSet.IntP("parallelism", "", 0, "Number of workers used by the parallel processor. 0 means the number of CPUs.")

	flagSet.StringP("scheduler", "", string(WorkStealingScheduler), "The worker pool used by the parallel processor: 'work-stealing' or 'spawn'.")

	flagSet.IntP("threshold", "", DefaultThreshold, "The largest range a parallel task processes without splitting.")

	for _, b := range bindings {
		if err := v.BindPFlag(b.key, flagSet.Lookup(b.flag)); err != nil {
			return nil, err
		}
	}
	return v, nil
}
