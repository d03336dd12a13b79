package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const defaultTokenPrefix = "formlayers"

var tokenNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// themeStyle resolves the selected theme and renders its tokens as a CSS
// declaration list, sorted by property name.
func themeStyle(selector theme.ThemeSelector, prefix string, options RenderOptions) (string, error) {
	if selector == nil {
		return "", nil
	}
	selection, err := selector.Select(options.ThemeName, options.ThemeVariant)
	if err != nil {
		return "", fmt.Errorf("render: select theme %q: %w", options.ThemeName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return "", nil
	}
	return cssVariables(prefix, selection.Manifest.Tokens), nil
}

func cssVariables(prefix string, tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	if prefix == "" {
		prefix = defaultTokenPrefix
	}

	declarations := make([]string, 0, len(tokens))
	for key, value := range tokens {
		name := strings.Trim(tokenNameSanitizer.ReplaceAllString(strings.ReplaceAll(key, ".", "-"), ""), "-")
		value = strings.TrimSpace(strings.NewReplacer(";", "", "{", "", "}", "").Replace(value))
		if name == "" || value == "" {
			continue
		}
		declarations = append(declarations, fmt.Sprintf("--%s-%s: %s", prefix, strings.ToLower(name), value))
	}
	sort.Strings(declarations)
	return strings.Join(declarations, "; ")
}
