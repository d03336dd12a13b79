package render

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/visibility"
)

const (
	// HTMLName is the registry name of the HTML tab renderer.
	HTMLName = "html"
	// TextName is the registry name of the plain-text outline renderer.
	TextName = "text"
)

// Renderer converts an active chain of sub-forms into bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(forms []layers.SubForm, options RenderOptions) ([]byte, error)
}

// TabRenderer renders one tab bar per materialized level through a pongo2
// template.
type TabRenderer struct {
	name        string
	contentType string
	template    *pongo2.Template
	evaluator   visibility.Evaluator
	selector    theme.ThemeSelector
	tokenPrefix string
}

var _ Renderer = (*TabRenderer)(nil)

// New constructs the HTML tab renderer.
func New(options ...Option) (*TabRenderer, error) {
	return newTabRenderer(config{
		name:        HTMLName,
		contentType: "text/html; charset=utf-8",
		templateFS:  TemplatesFS(),
		template:    "tabs.html.tpl",
	}, options)
}

// NewText constructs a renderer that prints the tab bars as an indented
// outline with the active tab in brackets.
func NewText(options ...Option) (*TabRenderer, error) {
	return newTabRenderer(config{
		name:        TextName,
		contentType: "text/plain; charset=utf-8",
		templateFS:  TemplatesFS(),
		template:    "tabs.txt.tpl",
	}, options)
}

func newTabRenderer(cfg config, options []Option) (*TabRenderer, error) {
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	tpl, err := compile(cfg)
	if err != nil {
		return nil, err
	}
	return &TabRenderer{
		name:        cfg.name,
		contentType: cfg.contentType,
		template:    tpl,
		evaluator:   cfg.evaluator,
		selector:    cfg.selector,
		tokenPrefix: cfg.tokenPrefix,
	}, nil
}

func compile(cfg config) (*pongo2.Template, error) {
	var loaders []pongo2.TemplateLoader
	if cfg.templateFS != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templateFS))
	}
	set := pongo2.NewSet("formlayers-"+cfg.name, loaders...)

	if cfg.source != "" {
		tpl, err := set.FromString(cfg.source)
		if err != nil {
			return nil, fmt.Errorf("render: parse template string: %w", err)
		}
		return tpl, nil
	}
	if cfg.templateFS == nil {
		return nil, fmt.Errorf("render: no template configured")
	}
	if _, err := fs.Stat(cfg.templateFS, cfg.template); err != nil {
		return nil, fmt.Errorf("render: template %q: %w", cfg.template, err)
	}
	tpl, err := set.FromFile(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", cfg.template, err)
	}
	return tpl, nil
}

// Name returns the registry identifier.
func (r *TabRenderer) Name() string {
	return r.name
}

// ContentType reports the media type of rendered output.
func (r *TabRenderer) ContentType() string {
	return r.contentType
}

// Render emits one tab bar per level of forms. Tabs whose visibility rule
// evaluates false are left out; when the active tab of a level is hidden the
// levels below it are not rendered.
func (r *TabRenderer) Render(forms []layers.SubForm, options RenderOptions) ([]byte, error) {
	if r == nil || r.template == nil {
		return nil, fmt.Errorf("render: renderer is not initialised")
	}

	levels, err := r.levels(forms, visibility.Context{Values: options.Values, Extras: options.Extras})
	if err != nil {
		return nil, err
	}
	style, err := themeStyle(r.selector, r.tokenPrefix, options)
	if err != nil {
		return nil, err
	}

	out, err := r.template.ExecuteBytes(pongo2.Context{
		"levels": levels,
		"style":  style,
	})
	if err != nil {
		return nil, fmt.Errorf("render: execute %s template: %w", r.name, err)
	}
	return out, nil
}

func (r *TabRenderer) levels(forms []layers.SubForm, ctx visibility.Context) ([]map[string]any, error) {
	levels := make([]map[string]any, 0, len(forms))
	var parent []string
	for depth, form := range forms {
		visible, err := visibility.Filter(r.evaluator, parent, form.Tabs, ctx)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}

		activeShown := false
		tabs := make([]map[string]any, 0, len(visible))
		for _, tab := range visible {
			active := tab.ID == form.ActiveTab
			activeShown = activeShown || active
			tabPath := append(append([]string(nil), parent...), tab.ID)
			tabs = append(tabs, map[string]any{
				"id":     tab.ID,
				"name":   tabLabel(tab),
				"active": active,
				"anchor": "tab-" + strings.Join(tabPath, "-"),
				"path":   strings.Join(tabPath, ","),
				"icon":   tabIcon(tab),
			})
		}
		if len(tabs) > 0 {
			levels = append(levels, map[string]any{
				"depth":  depth,
				"indent": strings.Repeat("  ", depth),
				"tabs":   tabs,
			})
		}

		if form.ActiveTab == "" || !activeShown {
			break
		}
		parent = append(parent, form.ActiveTab)
	}
	return levels, nil
}

func tabLabel(tab layers.Tab) string {
	if name := strings.TrimSpace(tab.Name); name != "" {
		return name
	}
	return tab.ID
}

func tabIcon(tab layers.Tab) string {
	raw, ok := tab.Extra["icon"].(string)
	if !ok {
		return ""
	}
	return sanitizeIcon(raw)
}
