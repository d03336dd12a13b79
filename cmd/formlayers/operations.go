package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayers/pkg/openapi"
	"github.com/goliatone/go-formlayers/pkg/source"
)

func newOperationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operations of the --openapi document usable with --operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(a.input.openapi) == "" {
				return errors.New("--openapi is required")
			}
			src, err := source.Parse(a.input.openapi)
			if err != nil {
				return err
			}
			doc, err := a.loader().Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			refs, err := openapi.Operations(cmd.Context(), doc.Raw(), a.input.openapiOptions()...)
			if err != nil {
				return err
			}
			var b strings.Builder
			for _, ref := range refs {
				fmt.Fprintf(&b, "%s\t%s %s\n", ref.ID, ref.Method, ref.Path)
			}
			return a.write(cmd, []byte(b.String()))
		},
	}
}
