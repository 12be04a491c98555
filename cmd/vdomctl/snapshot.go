package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

func snapshotCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect stored snapshots",
		Long: `Inspect snapshots saved by 'vdomctl render --save'.

Snapshots are read from snapshot.dir, or from snapshot.s3 when a
bucket is configured.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshot IDs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.setup(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ids, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a snapshot's HTML (default: the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.setup(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var id string
			if len(args) == 1 {
				id = args[0]
			} else if id, err = snapshot.Latest(cmd.Context(), store); err != nil {
				return err
			}
			if id == "" {
				return errors.New("E041").WithDetail("the store is empty")
			}

			f, err := snapshot.Open(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "== %s (%s, seq %d) ==\n", id, f.Type, f.Seq)
			fmt.Fprintln(out, f.HTML)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
