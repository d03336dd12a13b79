package formdoc

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/source"
)

// Bundle is everything needed to split one form into tabs.
type Bundle struct {
	ID           string              `json:"id,omitempty" yaml:"id,omitempty"`
	Schema       layers.Schema       `json:"schema" yaml:"schema"`
	Presentation layers.Presentation `json:"uiSchema,omitempty" yaml:"uiSchema,omitempty"`
	Tabs         []layers.Tab        `json:"tabData,omitempty" yaml:"tabData,omitempty"`
}

// Split builds the tab tree for the bundle.
func (b Bundle) Split() *layers.Node {
	return layers.Split(b.Schema, b.Presentation, b.Tabs)
}

type bundleFile struct {
	ID       string              `json:"id" yaml:"id"`
	Schema   *layers.Schema      `json:"schema" yaml:"schema"`
	UISchema layers.Presentation `json:"uiSchema" yaml:"uiSchema"`
	TabData  []layers.Tab        `json:"tabData" yaml:"tabData"`
}

func (f bundleFile) bundle(location string) (Bundle, error) {
	if f.Schema == nil {
		return Bundle{}, &DocumentError{Source: location, Message: "schema is required"}
	}
	return Bundle{
		ID:           strings.TrimSpace(f.ID),
		Schema:       *f.Schema,
		Presentation: f.UISchema,
		Tabs:         f.TabData,
	}, nil
}

// Parse decodes a single bundle from JSON or YAML.
func Parse(raw []byte) (Bundle, error) {
	return parseBundle(raw, "")
}

// ParseDocument decodes the bundle held by doc.
func ParseDocument(doc source.Document) (Bundle, error) {
	return parseBundle(doc.Raw(), doc.Location())
}

func parseBundle(raw []byte, location string) (Bundle, error) {
	if err := checkPayload(raw, location); err != nil {
		return Bundle{}, err
	}
	var file bundleFile
	if err := decode(raw, &file); err != nil {
		return Bundle{}, &DocumentError{Source: location, Message: "parse bundle", Err: err}
	}
	return file.bundle(location)
}

// ParseSchema decodes a standalone property schema.
func ParseSchema(raw []byte) (layers.Schema, error) {
	if err := checkPayload(raw, ""); err != nil {
		return layers.Schema{}, err
	}
	var s layers.Schema
	if err := decode(raw, &s); err != nil {
		return layers.Schema{}, &DocumentError{Message: "parse schema", Err: err}
	}
	return s, nil
}

// ParsePresentation decodes a standalone presentation schema.
func ParsePresentation(raw []byte) (layers.Presentation, error) {
	if err := checkPayload(raw, ""); err != nil {
		return nil, err
	}
	var p layers.Presentation
	if err := decode(raw, &p); err != nil {
		return nil, &DocumentError{Message: "parse uiSchema", Err: err}
	}
	return p, nil
}

// ParseTabs decodes a standalone list of tab descriptors.
func ParseTabs(raw []byte) ([]layers.Tab, error) {
	if err := checkPayload(raw, ""); err != nil {
		return nil, err
	}
	var tabs []layers.Tab
	if err := decode(raw, &tabs); err != nil {
		return nil, &DocumentError{Message: "parse tabData", Err: err}
	}
	return tabs, nil
}

// decode reads JSON with encoding/json and everything else as YAML. JSON is
// not always valid YAML (escaped slashes, surrogate pairs), so the YAML parser
// only sees payloads the JSON scanner rejects.
func decode(raw []byte, out any) error {
	if json.Valid(raw) {
		return json.Unmarshal(raw, out)
	}
	return yaml.Unmarshal(raw, out)
}

func checkPayload(raw []byte, location string) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return &DocumentError{Source: location, Message: "document is empty"}
	}
	return nil
}
