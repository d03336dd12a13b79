package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayers/pkg/formdoc"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report routing hints and tab data that splitting would silently ignore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := a.loadBundle(cmd.Context())
			if err != nil {
				return err
			}
			violations := formdoc.Lint(bundle)
			if len(violations) == 0 {
				return nil
			}
			lines := make([]string, len(violations))
			for i, v := range violations {
				lines[i] = v.String()
			}
			fmt.Fprintln(cmd.ErrOrStderr(), strings.Join(lines, "\n"))
			return fmt.Errorf("lint: %d violation(s)", len(violations))
		},
	}
}
