package layers

// Node is one level of the tab tree. It owns the untagged fields of its level
// and one child per tab found at that level.
type Node struct {
	tabs         []Tab
	schema       Schema
	presentation Presentation
	children     map[string]*Node
	active       string
}

// Split is the entry point: it normalizes both documents and partitions the
// schema into a tree of tabs. tabData supplies tab descriptors by id; layers
// without a matching entry are named after their id and unused entries are
// ignored. The input documents are never modified.
func Split(s Schema, p Presentation, tabData []Tab) *Node {
	return build(NormalizeSchema(s), NormalizePresentation(p), tabData)
}

func build(s Schema, p Presentation, tabData []Tab) *Node {
	ids := DistinctLayers(s, p)
	stripped := StripOneLevel(p)

	node := &Node{
		presentation: stripped,
		children:     make(map[string]*Node, len(ids)),
		active:       DefaultLayer,
	}

	hasDefault := false
	for _, id := range ids {
		layerSchema := ExtractForLayer(id, s, p)
		if id == DefaultLayer {
			node.schema = layerSchema
			hasDefault = true
			continue
		}
		node.children[id] = build(layerSchema, stripped, tabData)
		if node.active == DefaultLayer {
			node.active = id
		}
	}
	if !hasDefault {
		node.schema = ExtractForLayer(DefaultLayer, s, p)
	}
	node.tabs = resolveTabs(ids, tabData)
	return node
}

// Tabs returns the descriptors of the node's child tabs in display order.
func (n *Node) Tabs() []Tab {
	out := make([]Tab, len(n.tabs))
	copy(out, n.tabs)
	return out
}

// Schema returns the fields rendered directly at this level.
func (n *Node) Schema() Schema {
	return n.schema
}

// Presentation returns the presentation schema scoped to this level, with the
// routing ids of enclosing levels consumed.
func (n *Node) Presentation() Presentation {
	return n.presentation
}

// Child returns the node for tab id.
func (n *Node) Child(id string) (*Node, bool) {
	child, ok := n.children[id]
	return child, ok
}

// Children returns child nodes in tab order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.tabs))
	for _, tab := range n.tabs {
		out = append(out, n.children[tab.ID])
	}
	return out
}

// Active returns the selected child tab id, or DefaultLayer when the node has
// no selection.
func (n *Node) Active() string {
	return n.active
}

// Depth counts the levels of the tree rooted at n, n included.
func (n *Node) Depth() int {
	deepest := 0
	for _, child := range n.children {
		if depth := child.Depth(); depth > deepest {
			deepest = depth
		}
	}
	return deepest + 1
}

// Fields lists every field in the subtree: the node's own fields first, then
// each child's in tab order.
func (n *Node) Fields() []string {
	fields := n.schema.Names()
	for _, child := range n.Children() {
		fields = append(fields, child.Fields()...)
	}
	return fields
}

// Walk visits n and its descendants depth-first in tab order. path holds the
// tab ids leading to the visited node. Returning false skips the node's
// children.
func (n *Node) Walk(fn func(path []string, node *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func([]string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for _, tab := range n.tabs {
		childPath := append(append([]string(nil), path...), tab.ID)
		n.children[tab.ID].walk(childPath, fn)
	}
}

type nodeDocument struct {
	Tabs         []Tab            `json:"tabs" yaml:"tabs"`
	Active       string           `json:"activeTab" yaml:"activeTab"`
	Schema       Schema           `json:"schema" yaml:"schema"`
	Presentation Presentation     `json:"uiSchema" yaml:"uiSchema"`
	Children     *childNodes      `json:"children,omitempty" yaml:"children,omitempty"`
}

// childNodes encodes a node's children as an object keyed by tab id, in tab
// order.
type childNodes struct {
	tabs     []Tab
	children map[string]*Node
}

func (n *Node) document() nodeDocument {
	doc := nodeDocument{
		Tabs:         n.Tabs(),
		Active:       n.active,
		Schema:       n.schema,
		Presentation: n.presentation,
	}
	if len(n.children) > 0 {
		doc.Children = &childNodes{tabs: n.tabs, children: n.children}
	}
	return doc
}
