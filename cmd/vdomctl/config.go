package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
)

func configCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage " + config.ConfigFileName,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigFileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(g.dir) && !force {
				return errors.New("E022").
					WithDetail(config.ConfigFileName + " already exists in " + g.dir).
					WithSuggestion("Pass --force to overwrite it")
			}
			path := filepath.Join(g.dir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "log.level         %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "render.pretty     %t\n", cfg.Render.Pretty)
			fmt.Fprintf(out, "serve.addr        %s\n", cfg.Serve.Addr)
			fmt.Fprintf(out, "serve.interval    %s\n", cfg.Interval())
			fmt.Fprintf(out, "metrics.enabled   %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "metrics.namespace %s\n", cfg.Metrics.Namespace)
			if cfg.UsesS3() {
				fmt.Fprintf(out, "snapshot.s3       s3://%s/%s (%s)\n",
					cfg.Snapshot.S3.Bucket, cfg.Snapshot.S3.Prefix, cfg.Snapshot.S3.Region)
			} else {
				fmt.Fprintf(out, "snapshot.dir      %s\n", cfg.SnapshotPath())
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
