package render

import (
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlayers/pkg/visibility"
)

// RenderOptions carry per-request data that does not belong to the tree.
type RenderOptions struct {
	// Values and Extras feed tab visibility rules.
	Values map[string]any
	Extras map[string]any
	// ThemeName and ThemeVariant are passed to the theme selector.
	ThemeName    string
	ThemeVariant string
}

// Option configures a TabRenderer.
type Option func(*config)

type config struct {
	name        string
	contentType string
	template    string
	templateFS  fs.FS
	source      string
	evaluator   visibility.Evaluator
	selector    theme.ThemeSelector
	tokenPrefix string
}

// WithName overrides the registry name.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithTemplatesFS loads the named template from files instead of the
// built-in bundle.
func WithTemplatesFS(files fs.FS, name string) Option {
	return func(cfg *config) {
		if files == nil || strings.TrimSpace(name) == "" {
			return
		}
		cfg.templateFS = files
		cfg.template = name
		cfg.source = ""
	}
}

// WithTemplatesDir loads the named template from a directory on disk.
func WithTemplatesDir(dir, name string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(dir) == "" {
			return
		}
		WithTemplatesFS(os.DirFS(dir), name)(cfg)
	}
}

// WithTemplateString renders with inline template content.
func WithTemplateString(content string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(content) != "" {
			cfg.source = content
		}
	}
}

// WithEvaluator enables visibility rules on tabs.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = eval
	}
}

// WithThemeSelector resolves theme tokens for every render.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		cfg.selector = selector
	}
}

// WithTokenPrefix sets the prefix of generated CSS custom properties.
func WithTokenPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.tokenPrefix = strings.Trim(strings.TrimSpace(prefix), "-")
	}
}
