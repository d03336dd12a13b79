package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/subset"
)

type extraction struct {
	Schema       layers.Schema       `json:"schema" yaml:"schema"`
	Presentation layers.Presentation `json:"uiSchema" yaml:"uiSchema"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		fields  []string
		aliases map[string]string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print a form reduced to --field names, optionally borrowing hints through --alias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(fields) == 0 {
				return errors.New("at least one --field is required")
			}
			bundle, err := a.loadBundle(cmd.Context())
			if err != nil {
				return err
			}
			out := extraction{
				Schema:       subset.ExtractSchema(fields, bundle.Schema),
				Presentation: subset.ExtractPresentation(fields, bundle.Presentation, subset.AliasesFrom(aliases)),
			}
			payload, err := encode(a.cfg.Format, out)
			if err != nil {
				return err
			}
			return a.write(cmd, payload)
		},
	}
	cmd.Flags().StringSliceVar(&fields, "field", nil, "field names to keep (repeatable or comma separated)")
	cmd.Flags().StringToStringVar(&aliases, "alias", nil, "field=key pairs taking presentation hints from key")
	return cmd
}
