// Package formlayers wires loading, parsing and splitting of tabbed forms.
// The tree itself lives in pkg/layers; this package offers the shortcuts a
// host application needs to go from a document location to a layer tree.
package formlayers

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formlayers/internal/loader"
	"github.com/goliatone/go-formlayers/pkg/formdoc"
	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/openapi"
	"github.com/goliatone/go-formlayers/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return loader.New(source.NewLoaderOptions(options...))
}

// LoadBundle fetches and parses a bundle document holding schema, uiSchema
// and tabData together.
func LoadBundle(ctx context.Context, l source.Loader, src source.Source) (formdoc.Bundle, error) {
	doc, err := load(ctx, l, src)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	return formdoc.ParseDocument(doc)
}

// LoadParts builds a bundle from separate documents. ui and tabs may be nil.
func LoadParts(ctx context.Context, l source.Loader, schema, ui, tabs source.Source) (formdoc.Bundle, error) {
	if schema == nil {
		return formdoc.Bundle{}, errors.New("formlayers: schema source is required")
	}

	var bundle formdoc.Bundle
	doc, err := load(ctx, l, schema)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	if bundle.Schema, err = formdoc.ParseSchema(doc.Raw()); err != nil {
		return formdoc.Bundle{}, fmt.Errorf("formlayers: %s: %w", doc.Location(), err)
	}

	if ui != nil {
		if doc, err = load(ctx, l, ui); err != nil {
			return formdoc.Bundle{}, err
		}
		if bundle.Presentation, err = formdoc.ParsePresentation(doc.Raw()); err != nil {
			return formdoc.Bundle{}, fmt.Errorf("formlayers: %s: %w", doc.Location(), err)
		}
	}

	if tabs != nil {
		if doc, err = load(ctx, l, tabs); err != nil {
			return formdoc.Bundle{}, err
		}
		if bundle.Tabs, err = formdoc.ParseTabs(doc.Raw()); err != nil {
			return formdoc.Bundle{}, fmt.Errorf("formlayers: %s: %w", doc.Location(), err)
		}
	}
	return bundle, nil
}

// LoadOperation builds a bundle from the request body of an OpenAPI operation.
func LoadOperation(ctx context.Context, l source.Loader, src source.Source, operationID string, opts ...openapi.Option) (formdoc.Bundle, error) {
	doc, err := load(ctx, l, src)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	return openapi.Bundle(ctx, doc, operationID, opts...)
}

// SplitBundle loads a bundle document and splits it into a layer tree.
func SplitBundle(ctx context.Context, l source.Loader, src source.Source) (*layers.Node, error) {
	bundle, err := LoadBundle(ctx, l, src)
	if err != nil {
		return nil, err
	}
	return bundle.Split(), nil
}

func load(ctx context.Context, l source.Loader, src source.Source) (source.Document, error) {
	if l == nil {
		l = NewLoader()
	}
	if src == nil {
		return source.Document{}, errors.New("formlayers: source is required")
	}
	doc, err := l.Load(ctx, src)
	if err != nil {
		return source.Document{}, fmt.Errorf("formlayers: load %s: %w", src.Location(), err)
	}
	return doc, nil
}
