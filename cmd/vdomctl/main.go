package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	dir         string
	logLevel    string
	noColor     bool
	errorFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "vdomctl",
		Short: "Render and stream virtual DOM scenes",
		Long: `vdomctl plays scene files through the virtual DOM reconciler.

A scene is a YAML file holding a sequence of trees. Each tree is
reconciled against the previous one and the resulting host mutations
can be printed, stored as snapshots, or streamed to browsers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.noColor || g.errorFormat != errors.OutputText {
				errors.DisableColors()
			} else {
				errors.EnableColors()
			}
			return errors.SetOutputFormat(g.errorFormat)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (default from "+config.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored error output")
	rootCmd.PersistentFlags().StringVar(&g.errorFormat, "error-format", errors.OutputText, "Error output format: text, compact or json")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		snapshotCmd(g),
		configCmd(g),
		errorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and builds the logger for a command.
func (g *globals) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(g.dir)
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	return cfg, logger, nil
}

// openStore returns the snapshot store selected by the configuration.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	if cfg.UsesS3() {
		s3cfg := cfg.Snapshot.S3
		client, err := snapshot.NewS3Client(ctx, s3cfg.Region, s3cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return snapshot.NewS3Store(client, s3cfg.Bucket, s3cfg.Prefix), nil
	}
	store, err := snapshot.NewDiskStore(cfg.SnapshotPath())
	if err != nil {
		return nil, err
	}
	return store, nil
}
