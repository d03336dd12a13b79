package layers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the subtree for inspection and debugging.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.document())
}

// MarshalYAML mirrors MarshalJSON.
func (n *Node) MarshalYAML() (any, error) {
	return n.document(), nil
}

func (c childNodes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, tab := range c.tabs {
		key, err := json.Marshal(tab.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.children[tab.ID])
		if err != nil {
			return nil, fmt.Errorf("layers: encode tab %q: %w", tab.ID, err)
		}
		if idx > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c childNodes) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tab := range c.tabs {
		if err := appendYAMLMember(out, tab.ID, c.children[tab.ID]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
