package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucendex/phantomclear/internal/cleanup"
	"github.com/lucendex/phantomclear/internal/envfile"
	"github.com/lucendex/phantomclear/internal/notion"
	"github.com/lucendex/phantomclear/internal/report"
)

var (
	// Set at build time via -ldflags
	version   = "dev"
	buildTime = "unknown"
)

const apiKeyEnv = "NOTION_API_KEY"

var errMissingCredential = errors.New(apiKeyEnv + " not set")

type options struct {
	envFile     string
	metricsFile string
	delay       time.Duration
	delaySet    bool
	verbose     bool
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errMissingCredential) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "phantomclear",
		Short: "Clear phantom Motion task ids from Notion pages",
		Long: `Clears the "Motion Task ID" property on a fixed set of Notion pages whose
Motion task no longer exists, so the next sync recreates them in Motion.

NOTION_API_KEY is read from the environment or from the env file.`,
		Version:       fmt.Sprintf("%s, build %s", version, buildTime),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.delaySet = cmd.Flags().Changed("delay")
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "KEY=VALUE file loaded into the environment (missing file is skipped)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	flags.DurationVar(&opts.delay, "delay", cleanup.DefaultDelay, "pause between Notion requests")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	logger, err := buildLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tasks := cleanup.PhantomTasks()
	console := report.NewConsole(stdout)
	console.Start(len(tasks))

	if err := envfile.Load(opts.envFile); err != nil {
		logger.Warn("failed to load env file", zap.String("path", opts.envFile), zap.Error(err))
	}

	apiKey := getEnv(apiKeyEnv, "")
	if apiKey == "" {
		report.MissingCredential(stderr, apiKeyEnv)
		return errMissingCredential
	}

	delay, err := resolveDelay(opts)
	if err != nil {
		return err
	}

	client := notion.NewClient(apiKey, notion.WithBaseURL(getEnv("NOTION_API_URL", notion.DefaultBaseURL)))
	metrics := cleanup.NewMetrics()
	runner := cleanup.NewRunner(client, cleanup.NewPacer(delay), console, metrics, logger)

	summary := runner.Run(ctx, tasks)

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			logger.Error("failed to write metrics", zap.Error(err))
		}
	}

	if summary.Cleared < summary.Total {
		logger.Warn("some pages were not cleared",
			zap.Int("failed", summary.Total-summary.Cleared))
	}
	return nil
}

// resolveDelay prefers the --delay flag, then PHANTOMCLEAR_DELAY.
func resolveDelay(opts *options) (time.Duration, error) {
	if opts.delaySet {
		return opts.delay, nil
	}
	raw := getEnv("PHANTOMCLEAR_DELAY", "")
	if raw == "" {
		return opts.delay, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid PHANTOMCLEAR_DELAY: %w", err)
	}
	return d, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// getEnv retrieves environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
