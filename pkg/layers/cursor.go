package layers

import "slices"

// SubForm is a renderable level of the active chain.
type SubForm struct {
	Tabs         []Tab        `json:"tabs" yaml:"tabs"`
	Schema       Schema       `json:"schema" yaml:"schema"`
	Presentation Presentation `json:"uiSchema" yaml:"uiSchema"`
	// ActiveTab is empty for the last level when the path ends there.
	ActiveTab string `json:"activeTab" yaml:"activeTab"`
}

// SetActivePath selects tabs from the root down. path[i] becomes the active
// tab of the node at depth i. When path is shorter than the selected chain,
// the existing selection below it is kept and appended to the returned path.
// Selecting DefaultLayer at some depth clears that node's selection and
// drops any ids after it. The tree is left untouched when path names an
// unknown tab.
func (n *Node) SetActivePath(path []string) ([]string, error) {
	if err := n.checkPath(path); err != nil {
		return nil, err
	}
	return n.setActivePath(slices.Clone(path), 0), nil
}

func (n *Node) setActivePath(path []string, depth int) []string {
	if depth == len(path) {
		if n.active == DefaultLayer {
			return path
		}
		return n.children[n.active].setActivePath(append(path, n.active), depth+1)
	}

	id := path[depth]
	if id == DefaultLayer {
		n.active = DefaultLayer
		return path[:depth+1]
	}
	n.active = id
	return n.children[id].setActivePath(path, depth+1)
}

func (n *Node) checkPath(path []string) error {
	node := n
	for depth, id := range path {
		if id == DefaultLayer {
			return nil
		}
		child, ok := node.children[id]
		if !ok {
			return &UnknownLayerError{Path: slices.Clone(path[:depth+1]), Layer: id}
		}
		node = child
	}
	return nil
}

// ActivePath reads the selected chain without changing it.
func (n *Node) ActivePath() []string {
	var path []string
	for node := n; node.active != DefaultLayer; node = node.children[node.active] {
		path = append(path, node.active)
	}
	return path
}

// Materialize turns path into one SubForm per level visited, starting at the
// root. Descent stops when the path is exhausted or names DefaultLayer, so
// the result holds between 1 and len(path)+1 entries.
func (n *Node) Materialize(path []string) ([]SubForm, error) {
	if err := n.checkPath(path); err != nil {
		return nil, err
	}
	return n.materialize(path), nil
}

// ActiveSubForms materializes the current selection.
func (n *Node) ActiveSubForms() []SubForm {
	return n.materialize(n.ActivePath())
}

func (n *Node) materialize(path []string) []SubForm {
	forms := make([]SubForm, 0, len(path)+1)
	node := n
	for depth := 0; ; depth++ {
		if depth == len(path) {
			return append(forms, node.subForm(""))
		}
		tab := path[depth]
		forms = append(forms, node.subForm(tab))
		if tab == DefaultLayer {
			return forms
		}
		node = node.children[tab]
	}
}

func (n *Node) subForm(activeTab string) SubForm {
	return SubForm{
		Tabs:         n.Tabs(),
		Schema:       n.schema,
		Presentation: n.presentation,
		ActiveTab:    activeTab,
	}
}
