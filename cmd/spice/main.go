// Command spice filters images with the spice convolution engine.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice/convolve"
	"github.com/wbrown/spice/internal/config"
)

// settings holds the effective configuration once the root command's
// pre-run hook has merged the config file and flags.
var settings = config.Default()

// opencvExecutor is set by executor_opencv.go when built with -tags opencv.
var opencvExecutor convolve.Executor[float32]

var rootCmd = &cobra.Command{
	Use:               "spice",
	Short:             "Convolve, blur and threshold images",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("workers", 0, "Parallel workers, 0 for GOMAXPROCS")
	rootCmd.PersistentFlags().String("format", "uint8", "Output sample format: uint8 or uint16")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the config file, applies explicitly set flags on top
// and installs the logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("method") != nil && flags.Changed("method") {
		cfg.Method, _ = flags.GetString("method")
	}
	if flags.Lookup("sigma") != nil && flags.Changed("sigma") {
		cfg.Sigma, _ = flags.GetFloat64("sigma")
	}
	if flags.Lookup("radius") != nil && flags.Changed("radius") {
		cfg.Radius, _ = flags.GetInt("radius")
	}
	if flags.Lookup("threshold") != nil && flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetFloat64("threshold")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("settings", "method", cfg.Method, "sigma", cfg.Sigma,
		"radius", cfg.Radius, "threshold", cfg.Threshold,
		"workers", cfg.Workers, "format", cfg.Format)

	settings = cfg
	return nil
}

// newConvolver returns a float32 convolver for the configured method.
func newConvolver(cfg config.Config) (*convolve.Convolver[float32], error) {
	cv := convolve.NewConvolver[float32](cfg.Workers)
	if cfg.Method == config.MethodOpenCV {
		if opencvExecutor == nil {
			return nil, fmt.Errorf("method %q needs a build with -tags opencv", cfg.Method)
		}
		cv.Executor = opencvExecutor
		slog.Debug("using OpenCV executor")
	}
	return cv, nil
}
