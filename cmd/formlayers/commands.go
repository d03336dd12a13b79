package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayers/internal/browse"
	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/render"
	"github.com/goliatone/go-formlayers/pkg/visibility/expr"
)

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split",
		Short: "Print the full tab tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			payload, err := encode(a.cfg.Format, root)
			if err != nil {
				return err
			}
			return a.write(cmd, payload)
		},
	}
}

func newTabsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "Print the tab outline with field names, marking the active path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			return a.write(cmd, []byte(outline(root)))
		},
	}
}

func newMaterializeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize",
		Short: "Print the sub-forms along --path, or along the active path when omitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := a.loadBundle(cmd.Context())
			if err != nil {
				return err
			}
			root := bundle.Split()

			forms := root.ActiveSubForms()
			if len(a.path) > 0 {
				if forms, err = root.Materialize(a.path); err != nil {
					return err
				}
			}
			payload, err := encode(a.cfg.Format, forms)
			if err != nil {
				return err
			}
			return a.write(cmd, payload)
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		rendererName string
		valuesPath   string
		themeName    string
		themeVariant string
		templateDir  string
		templateName string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the tab bars of the active path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			values, err := a.loadValues(cmd.Context(), valuesPath)
			if err != nil {
				return err
			}

			options := []render.Option{
				render.WithEvaluator(expr.New()),
				render.WithThemeSelector(newConfigThemeSelector(a.cfg.Theme)),
			}
			if templateDir != "" {
				if templateName == "" {
					return errors.New("--template is required with --templates")
				}
				options = append(options, render.WithTemplatesDir(templateDir, templateName))
			}
			registry, err := render.NewDefaultRegistry(options...)
			if err != nil {
				return err
			}
			if rendererName == "" {
				rendererName = a.cfg.Renderer
			}
			renderer, err := registry.Get(rendererName)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
			}
			if themeName == "" {
				themeName = a.cfg.Theme.Name
			}
			if themeVariant == "" {
				themeVariant = a.cfg.Theme.Variant
			}

			out, err := renderer.Render(root.ActiveSubForms(), render.RenderOptions{
				Values:       values,
				ThemeName:    themeName,
				ThemeVariant: themeVariant,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("rendered", zap.String("renderer", renderer.Name()), zap.Int("bytes", len(out)))
			return a.write(cmd, out)
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "", "renderer name: html or text (default from config)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON or YAML form values for tab visibility rules")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name (default from config)")
	cmd.Flags().StringVar(&themeVariant, "variant", "", "theme variant (default from config)")
	cmd.Flags().StringVar(&templateDir, "templates", "", "directory holding a custom pongo2 template")
	cmd.Flags().StringVar(&templateName, "template", "", "template file name inside --templates")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Navigate the tabs interactively and print the chosen sub-forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			session, err := browse.New(root, browse.WithDriver(browse.NewSurveyDriver(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			path, err := session.Run(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Debug("browse finished", zap.Strings("path", path))

			payload, err := encode(a.cfg.Format, root.ActiveSubForms())
			if err != nil {
				return err
			}
			return a.write(cmd, payload)
		},
	}
}

// outline lists every tab indented by depth. Tabs on the active path are
// marked with "*" and required fields carry a trailing "*".
func outline(root *layers.Node) string {
	active := root.ActivePath()
	var b strings.Builder
	root.Walk(func(path []string, node *layers.Node) bool {
		label := "(root)"
		marker := " "
		if depth := len(path); depth > 0 {
			label = strings.Repeat("  ", depth-1) + tabName(path, root)
			if depth <= len(active) && strings.Join(active[:depth], "/") == strings.Join(path, "/") {
				marker = "*"
			}
		}
		fmt.Fprintf(&b, "%s %s: %s\n", marker, label, fieldList(node.Schema()))
		return true
	})
	return b.String()
}

func tabName(path []string, root *layers.Node) string {
	node := root
	for _, id := range path[:len(path)-1] {
		node, _ = node.Child(id)
	}
	id := path[len(path)-1]
	for _, tab := range node.Tabs() {
		if tab.ID == id && tab.Name != "" && tab.Name != id {
			return fmt.Sprintf("%s (%s)", tab.Name, id)
		}
	}
	return id
}

func fieldList(s layers.Schema) string {
	names := s.Names()
	if len(names) == 0 {
		return "-"
	}
	for i, name := range names {
		if s.IsRequired(name) {
			names[i] = name + "*"
		}
	}
	return strings.Join(names, ", ")
}
