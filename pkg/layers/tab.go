package layers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tab describes how a layer is presented. Extra carries arbitrary metadata
// supplied with the tab data (icons, visibility rules, badges).
type Tab struct {
	ID    string
	Name  string
	Extra map[string]any
}

// legacyTabIDKey is accepted on input for tab data written for the original
// "tabID" convention.
const legacyTabIDKey = "tabID"

// MarshalJSON writes the tab as a flat object: id, name and extra metadata.
func (t Tab) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.asMap())
}

// UnmarshalJSON accepts {"id": ..., "name": ..., ...} or the legacy "tabID" key.
func (t *Tab) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("layers: decode tab: %w", err)
	}
	return t.fromMap(raw)
}

// MarshalYAML mirrors MarshalJSON.
func (t Tab) MarshalYAML() (any, error) {
	return t.asMap(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (t *Tab) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("layers: decode tab (line %d): %w", value.Line, err)
	}
	return t.fromMap(raw)
}

func (t Tab) asMap() map[string]any {
	out := make(map[string]any, len(t.Extra)+2)
	for key, value := range t.Extra {
		out[key] = value
	}
	out["id"] = t.ID
	out["name"] = t.Name
	return out
}

func (t *Tab) fromMap(raw map[string]any) error {
	if raw == nil {
		return errors.New("layers: tab must be an object")
	}
	id := strings.TrimSpace(readString(raw, "id"))
	if id == "" {
		id = strings.TrimSpace(readString(raw, legacyTabIDKey))
	}
	if id == "" {
		return errors.New("layers: tab id is required")
	}

	out := Tab{ID: id, Name: readString(raw, "name")}
	for key, value := range raw {
		switch key {
		case "id", "name", legacyTabIDKey:
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[key] = value
	}
	*t = out
	return nil
}

// resolveTabs returns one descriptor per non-default layer, taken from tabData
// when an entry with the same id exists.
func resolveTabs(ids []string, tabData []Tab) []Tab {
	tabs := make([]Tab, 0, len(ids))
	for _, id := range ids {
		if id == DefaultLayer {
			continue
		}
		tabs = append(tabs, lookupTab(id, tabData))
	}
	return tabs
}

func lookupTab(id string, tabData []Tab) Tab {
	for _, tab := range tabData {
		if tab.ID == id {
			return tab
		}
	}
	return Tab{ID: id, Name: id}
}

func readString(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}
