package main

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlayers/internal/config"
)

// configThemeSelector serves the single theme declared in the config file.
type configThemeSelector struct {
	manifest *theme.Manifest
}

func newConfigThemeSelector(cfg config.ThemeConfig) theme.ThemeSelector {
	if len(cfg.Tokens) == 0 {
		return nil
	}
	tokens := make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		tokens[key] = value
	}
	return &configThemeSelector{manifest: &theme.Manifest{
		Name:    cfg.Name,
		Version: "config",
		Tokens:  tokens,
	}}
}

func (s *configThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("theme %q is not configured", name)
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}
