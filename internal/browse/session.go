// Package browse walks a layer tree interactively: each step lists the fields
// of the current level and lets the user open a tab, go back or finish. Every
// move is applied to the tree through SetActivePath.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayers/pkg/layers"
)

const (
	backOption = "< back"
	doneOption = "done"
)

// Session drives navigation over one tree.
type Session struct {
	root   *layers.Node
	driver PromptDriver
}

// Option configures a Session.
type Option func(*Session)

// WithDriver replaces the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// New constructs a Session over root.
func New(root *layers.Node, options ...Option) (*Session, error) {
	if root == nil {
		return nil, errors.New("browse: tree is nil")
	}
	s := &Session{root: root}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run starts at the root, preselecting each level's active tab. Picking
// "done" commits the current level and returns the resulting active path,
// which extends below it when deeper tabs were selected earlier.
func (s *Session) Run(ctx context.Context) ([]string, error) {
	var path []string
	for {
		node, err := s.nodeAt(path)
		if err != nil {
			return nil, err
		}
		if err := s.driver.Info(ctx, describe(path, node)); err != nil {
			return nil, err
		}

		tabs := node.Tabs()
		options := make([]string, 0, len(tabs)+2)
		defaultIndex := -1
		for i, tab := range tabs {
			options = append(options, label(tab))
			if tab.ID == node.Active() {
				defaultIndex = i
			}
		}
		if len(path) > 0 {
			options = append(options, backOption)
		}
		options = append(options, doneOption)

		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      prompt(path),
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         "open a tab to see its fields",
		})
		if err != nil {
			return nil, err
		}

		switch {
		case choice >= 0 && choice < len(tabs):
			next := append(append([]string(nil), path...), tabs[choice].ID)
			if _, err := s.root.SetActivePath(next); err != nil {
				return nil, err
			}
			path = next
		case choice >= 0 && options[choice] == backOption:
			path = path[:len(path)-1]
		case choice >= 0 && options[choice] == doneOption:
			return s.root.SetActivePath(path)
		default:
			return nil, fmt.Errorf("browse: invalid selection %d", choice)
		}
	}
}

func (s *Session) nodeAt(path []string) (*layers.Node, error) {
	node := s.root
	for depth, id := range path {
		child, ok := node.Child(id)
		if !ok {
			return nil, &layers.UnknownLayerError{Path: append([]string(nil), path[:depth]...), Layer: id}
		}
		node = child
	}
	return node, nil
}

func describe(path []string, node *layers.Node) string {
	fields := node.Schema().Names()
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", prompt(path))
	if len(fields) == 0 {
		b.WriteString("(no fields)")
	} else {
		for i, name := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			if node.Schema().IsRequired(name) {
				b.WriteByte('*')
			}
		}
	}
	return b.String()
}

func prompt(path []string) string {
	if len(path) == 0 {
		return "form"
	}
	return "form / " + strings.Join(path, " / ")
}

func label(tab layers.Tab) string {
	if name := strings.TrimSpace(tab.Name); name != "" && name != tab.ID {
		return fmt.Sprintf("%s (%s)", name, tab.ID)
	}
	return tab.ID
}
