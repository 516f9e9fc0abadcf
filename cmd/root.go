package cmd

import (
	"fmt"
	"os"
	"strconv"

	"go-prime/cfg"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunFn receives the validated configuration and the limit to process.
type RunFn func(cmd *cobra.Command, c *cfg.Config, limit int) error

// NewRootCmd builds the primes command. run is invoked once the positional
// arguments, flags and config file have been merged and validated.
func NewRootCmd(run RunFn) (*cobra.Command, error) {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "primes [flags] LIMIT [s|m] [THRESHOLD] [PARALLELISM]",
		Short: "Find the prime numbers below a limit",
		Long: `primes finds every prime number in [0, LIMIT), either with a single
sequential scan (s) or by recursively splitting the range over a pool of
workers (m). THRESHOLD is the widest range a worker scans without splitting
and PARALLELISM the number of workers. Positional arguments take precedence
over the equivalent flags.`,
		Args:         cobra.RangeArgs(1, 4),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Path to a YAML config file. Explicit flags take precedence over it.")

	v, err := cfg.BindFlags(rootCmd.PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(v, configFile)
		if err != nil {
			return err
		}
		limit, err := applyArgs(c, args)
		if err != nil {
			return err
		}
		if err := cfg.ValidateConfig(c); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return run(cmd, c, limit)
	}
	return rootCmd, nil
}

func loadConfig(v *viper.Viper, configFile string) (*cfg.Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	var c cfg.Config
	err := v.Unmarshal(&c, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return nil, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return &c, nil
}

// applyArgs folds LIMIT [s|m] [THRESHOLD] [PARALLELISM] into c and returns
// the limit.
func applyArgs(c *cfg.Config, args []string) (int, error) {
	limit, err := intArg(args, 0)
	if err != nil {
		return 0, err
	}
	if len(args) > 1 {
		if err := c.Processor.Kind.UnmarshalText([]byte(args[1])); err != nil {
			return 0, err
		}
	}
	if len(args) > 2 {
		if c.Processor.Threshold, err = intArg(args, 2); err != nil {
			return 0, err
		}
	}
	if len(args) > 3 {
		if c.Processor.Parallelism, err = intArg(args, 3); err != nil {
			return 0, err
		}
	}
	return limit, nil
}

func intArg(args []string, index int) (int, error) {
	v, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("argument %q at index %d must be an integer: %w", args[index], index, err)
	}
	return v, nil
}

// Execute runs the primes command and exits non-zero on failure.
func Execute() {
	rootCmd, err := NewRootCmd(runPrimes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
