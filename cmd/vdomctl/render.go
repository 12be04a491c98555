package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/scene"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

type renderOptions struct {
	mutations bool
	pretty    bool
	last      bool
	save      bool
}

func renderCmd(g *globals) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Play a scene and print the HTML of every frame",
		Long: `Play every frame of a scene through the reconciler and print the
container's HTML after each one.

Examples:
  vdomctl render list.yaml
  vdomctl render list.yaml --mutations
  vdomctl render list.yaml --last --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			p, err := scene.NewPlayer(s, logger)
			if err != nil {
				return err
			}

			htmlCfg := host.HTMLConfig{
				Pretty: cfg.Render.Pretty || opts.pretty,
				Indent: cfg.Render.Indent,
			}
			if err := playAll(cmd, p, htmlCfg, opts); err != nil {
				return err
			}

			if !opts.save {
				return nil
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			id, err := snapshot.Save(cmd.Context(), store, p.Snapshot())
			if err != nil {
				return err
			}
			logger.Info("snapshot saved", "scene", s.Name, "id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.mutations, "mutations", "m", false, "Print the host mutations of each frame")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent the HTML output")
	cmd.Flags().BoolVar(&opts.last, "last", false, "Print only the final frame")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store a snapshot of the final tree")

	return cmd
}

func playAll(cmd *cobra.Command, p *scene.Player, htmlCfg host.HTMLConfig, opts renderOptions) error {
	out := cmd.OutOrStdout()
	s := p.Scene()
	for !p.Done() {
		i := p.Next()
		f, err := p.Step(cmd.Context())
		if err != nil {
			return fmt.Errorf("frame %s: %w", s.FrameName(i), err)
		}
		if opts.last && !p.Done() {
			continue
		}

		fmt.Fprintf(out, "== %s ==\n", s.FrameName(i))
		if opts.mutations {
			writeMutations(out, f)
		}
		html, err := p.HTML(htmlCfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, html)
	}
	return nil
}

func writeMutations(w io.Writer, f *protocol.Frame) {
	if f == nil {
		fmt.Fprintln(w, "-- no changes")
		return
	}
	for _, m := range f.Mutations {
		fmt.Fprintf(w, "-- %s\n", m)
	}
}
