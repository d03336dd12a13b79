package layers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"cogentcore.org/core/base/ordmap"
	"gopkg.in/yaml.v3"
)

const (
	keyProperties = "properties"
	keyRequired   = "required"
)

// Schema is the semantic half of a form description. Properties keep their
// declaration order, which drives tab order downstream. Every keyword other
// than "properties" and "required" is kept verbatim in Keywords.
type Schema struct {
	Properties *ordmap.Map[string, any]
	Required   []string
	Keywords   map[string]any
}

// Field describes a single property when building schemas in code.
type Field struct {
	Name       string
	Definition any
	Required   bool
}

// NewSchema returns an empty schema ready for Add calls.
func NewSchema() Schema {
	return Schema{
		Properties: ordmap.New[string, any](),
		Required:   []string{},
	}
}

// SchemaOf builds a schema holding fields in the given order.
func SchemaOf(fields ...Field) Schema {
	s := NewSchema()
	for _, field := range fields {
		s.Add(field.Name, field.Definition, field.Required)
	}
	return s
}

// Add appends a property, replacing the definition in place when the name is
// already declared.
func (s *Schema) Add(name string, definition any, required bool) {
	if s.Properties == nil {
		s.Properties = ordmap.New[string, any]()
	}
	s.Properties.Add(name, definition)
	if required && !slices.Contains(s.Required, name) {
		s.Required = append(s.Required, name)
	}
}

// Len reports the number of declared properties.
func (s Schema) Len() int {
	if s.Properties == nil {
		return 0
	}
	return len(s.Properties.Order)
}

// Names returns property names in declaration order.
func (s Schema) Names() []string {
	if s.Properties == nil {
		return nil
	}
	names := make([]string, 0, len(s.Properties.Order))
	for _, kv := range s.Properties.Order {
		names = append(names, kv.Key)
	}
	return names
}

// Definition returns the definition declared for name.
func (s Schema) Definition(name string) (any, bool) {
	if s.Properties == nil {
		return nil, false
	}
	return s.Properties.ValueByKeyTry(name)
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Clone returns a deep, independent copy of the schema.
func (s Schema) Clone() Schema {
	out := Schema{
		Required: slices.Clone(s.Required),
		Keywords: clone(s.Keywords),
	}
	if s.Properties != nil {
		out.Properties = ordmap.New[string, any]()
		for _, kv := range s.Properties.Order {
			out.Properties.Add(kv.Key, clone(kv.Value))
		}
	}
	return out
}

// MarshalJSON writes keywords in lexical order followed by "required" and the
// properties in declaration order.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	member := func(key string, value any) error {
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		encodedValue, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("layers: encode %q: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
		return nil
	}

	for _, key := range keywordNames(s.Keywords) {
		if err := member(key, s.Keywords[key]); err != nil {
			return nil, err
		}
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	if err := member(keyRequired, required); err != nil {
		return nil, err
	}

	if !first {
		buf.WriteByte(',')
	}
	buf.WriteString(`"properties":{`)
	if s.Properties != nil {
		for idx, kv := range s.Properties.Order {
			encodedKey, err := json.Marshal(kv.Key)
			if err != nil {
				return nil, err
			}
			encodedValue, err := json.Marshal(kv.Value)
			if err != nil {
				return nil, fmt.Errorf("layers: encode property %q: %w", kv.Key, err)
			}
			if idx > 0 {
				buf.WriteByte(',')
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			buf.Write(encodedValue)
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the token stream so property order survives.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', "schema"); err != nil {
		return err
	}

	out := Schema{Properties: ordmap.New[string, any]()}
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return err
		}
		switch key {
		case keyProperties:
			if err := expectDelim(dec, '{', keyProperties); err != nil {
				return err
			}
			for dec.More() {
				name, err := objectKey(dec)
				if err != nil {
					return err
				}
				var definition any
				if err := dec.Decode(&definition); err != nil {
					return fmt.Errorf("layers: decode property %q: %w", name, err)
				}
				out.Properties.Add(name, definition)
			}
			if _, err := dec.Token(); err != nil {
				return fmt.Errorf("layers: decode properties: %w", err)
			}
		case keyRequired:
			var required []string
			if err := dec.Decode(&required); err != nil {
				return fmt.Errorf("layers: required must be a list of names: %w", err)
			}
			out.Required = required
		default:
			var keyword any
			if err := dec.Decode(&keyword); err != nil {
				return fmt.Errorf("layers: decode keyword %q: %w", key, err)
			}
			if out.Keywords == nil {
				out.Keywords = make(map[string]any)
			}
			out.Keywords[key] = keyword
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("layers: decode schema: %w", err)
	}

	*s = out
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim, what string) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("layers: decode %s: %w", what, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("layers: %s must be an object", what)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("layers: decode schema: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("layers: unexpected token %v", tok)
	}
	return key, nil
}

// UnmarshalYAML decodes a schema mapping, keeping property declaration order.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) > 0 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("layers: schema must be an object (line %d)", value.Line)
	}

	out := Schema{Properties: ordmap.New[string, any]()}
	for idx := 0; idx+1 < len(value.Content); idx += 2 {
		key, node := value.Content[idx], value.Content[idx+1]
		switch key.Value {
		case keyProperties:
			if node.Kind != yaml.MappingNode {
				return fmt.Errorf("layers: properties must be an object (line %d)", node.Line)
			}
			for p := 0; p+1 < len(node.Content); p += 2 {
				var definition any
				if err := node.Content[p+1].Decode(&definition); err != nil {
					return fmt.Errorf("layers: decode property %q: %w", node.Content[p].Value, err)
				}
				out.Properties.Add(node.Content[p].Value, definition)
			}
		case keyRequired:
			var required []string
			if err := node.Decode(&required); err != nil {
				return fmt.Errorf("layers: required must be a list of names (line %d): %w", node.Line, err)
			}
			out.Required = required
		default:
			var keyword any
			if err := node.Decode(&keyword); err != nil {
				return fmt.Errorf("layers: decode keyword %q: %w", key.Value, err)
			}
			if out.Keywords == nil {
				out.Keywords = make(map[string]any)
			}
			out.Keywords[key.Value] = keyword
		}
	}

	*s = out
	return nil
}

// MarshalYAML mirrors MarshalJSON ordering.
func (s Schema) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range keywordNames(s.Keywords) {
		if err := appendYAMLMember(root, key, s.Keywords[key]); err != nil {
			return nil, err
		}
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	if err := appendYAMLMember(root, keyRequired, required); err != nil {
		return nil, err
	}

	properties := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if s.Properties != nil {
		for _, kv := range s.Properties.Order {
			if err := appendYAMLMember(properties, kv.Key, kv.Value); err != nil {
				return nil, err
			}
		}
	}
	root.Content = append(root.Content, yamlKey(keyProperties), properties)
	return root, nil
}

func appendYAMLMember(parent *yaml.Node, key string, value any) error {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return fmt.Errorf("layers: encode %q: %w", key, err)
	}
	parent.Content = append(parent.Content, yamlKey(key), &node)
	return nil
}

func yamlKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func keywordNames(keywords map[string]any) []string {
	names := make([]string, 0, len(keywords))
	for key := range keywords {
		if key == keyProperties || key == keyRequired {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
