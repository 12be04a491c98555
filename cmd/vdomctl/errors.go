package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `List every error code vdomctl and the reconciler report, or print
the full explanation of a single code.

Examples:
  vdomctl errors
  vdomctl errors E003`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				tmpl, ok := errors.GetTemplate(args[0])
				if !ok {
					return errors.Newf(errors.CategoryCLI, "unknown error code %q", args[0]).
						WithSuggestion("Run 'vdomctl errors' to list every code")
				}
				fmt.Fprintf(out, "%s (%s): %s\n\n%s\n", args[0], tmpl.Category, tmpl.Message, tmpl.Explanation)
				return nil
			}
			for _, code := range errors.GetAllCodes() {
				tmpl, _ := errors.GetTemplate(code)
				fmt.Fprintf(out, "%s  %-10s %s\n", code, tmpl.Category, tmpl.Message)
			}
			return nil
		},
	}
}
