package cfg

import (
	"errors"
	"fmt"
)

const (
	ThresholdInvalidValueError   = "the value of threshold for processor can't be less than 1"
	ParallelismInvalidValueError = "the value of parallelism for processor can't be negative"
	PrometheusPortInvalidError   = "the value of prometheus-port must be between 0 and 65535"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return errors.New("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return errors.New("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidProcessorConfig(config *ProcessorConfig) error {
	if config.Threshold < 1 {
		return errors.New(ThresholdInvalidValueError)
	}
	if config.Parallelism < 0 {
		return errors.New(ParallelismInvalidValueError)
	}
	return nil
}

func isValidMetricsConfig(config *MetricsConfig) error {
	if config.PrometheusPort < 0 || config.PrometheusPort > 65535 {
		return errors.New(PrometheusPortInvalidError)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidProcessorConfig(&config.Processor); err != nil {
		return fmt.Errorf("error parsing processor config: %w", err)
	}

	if err = isValidMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("error parsing metrics config: %w", err)
	}

	return nil
}
