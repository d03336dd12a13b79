package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxRefHops bounds local $ref chains followed while reading property order.
const maxRefHops = 16

// declaredOrder reads the property names of an operation's request body
// schema straight from the document so their source order survives. It
// returns nil when the schema cannot be located through local references.
func declaredOrder(root *yaml.Node, ref OperationRef, mediaType string) []string {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	node := lookup(doc, "paths", ref.Path)
	node = resolve(doc, node)
	node = lookup(node, strings.ToLower(ref.Method), "requestBody")
	node = resolve(doc, node)
	node = lookup(node, "content", mediaType, "schema")
	node = resolve(doc, node)
	node = lookup(node, "properties")
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	names := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		names = append(names, node.Content[i].Value)
	}
	return names
}

// documentNode parses raw into a node tree. JSON documents are read with
// encoding/json since some JSON escapes are not valid YAML.
func documentNode(raw []byte) (*yaml.Node, error) {
	if !json.Valid(raw) {
		var root yaml.Node
		if err := yaml.Unmarshal(raw, &root); err != nil {
			return nil, err
		}
		return &root, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return jsonNode(dec)
}

func jsonNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch value := tok.(type) {
	case json.Delim:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if value == '{' {
			node.Kind, node.Tag = yaml.MappingNode, "!!map"
		}
		for dec.More() {
			if node.Kind == yaml.MappingNode {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(key)})
			}
			child, err := jsonNode(dec)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return node, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(value)}, nil
	}
}

func lookup(node *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		node = next
	}
	return node
}

// resolve follows local "#/..." references starting at node.
func resolve(doc, node *yaml.Node) *yaml.Node {
	for hops := 0; node != nil && hops < maxRefHops; hops++ {
		target := lookup(node, "$ref")
		if target == nil {
			return node
		}
		pointer, ok := strings.CutPrefix(target.Value, "#/")
		if !ok {
			return nil
		}
		segments := strings.Split(pointer, "/")
		for i, segment := range segments {
			segments[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(segment)
		}
		node = lookup(doc, segments...)
	}
	if node != nil && lookup(node, "$ref") != nil {
		return nil
	}
	return node
}
