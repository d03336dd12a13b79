package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	formlayers "github.com/goliatone/go-formlayers"
	"github.com/goliatone/go-formlayers/pkg/formdoc"
	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/openapi"
	"github.com/goliatone/go-formlayers/pkg/source"
)

// inputFlags select where the form comes from: a bundle, separate documents
// or an OpenAPI operation.
type inputFlags struct {
	bundle       string
	forms        string
	form         string
	schema       string
	ui           string
	tabs         string
	openapi      string
	operation    string
	extension    string
	externalRefs bool
	noValidate   bool
}

func (f *inputFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.bundle, "bundle", "", "bundle document with schema, uiSchema and tabData (file or URL)")
	flags.StringVar(&f.schema, "schema", "", "schema document (file or URL)")
	flags.StringVar(&f.ui, "ui", "", "uiSchema document (file or URL)")
	flags.StringVar(&f.tabs, "tabs", "", "tab data document (file or URL)")
	flags.StringVar(&f.openapi, "openapi", "", "OpenAPI document (file or URL)")
	flags.StringVar(&f.operation, "operation", "", "operation id used with --openapi")
	flags.StringVar(&f.forms, "forms", "", "directory of bundle documents")
	flags.StringVar(&f.form, "form", "", "form id used with --forms (optional when the directory holds one form)")
	flags.StringVar(&f.extension, "openapi-extension", openapi.DefaultExtension, "vendor extension holding presentation hints")
	flags.BoolVar(&f.externalRefs, "openapi-external-refs", false, "follow references to other documents")
	flags.BoolVar(&f.noValidate, "openapi-no-validate", false, "skip OpenAPI document validation")
}

func (f *inputFlags) openapiOptions() []openapi.Option {
	options := []openapi.Option{openapi.WithExtension(f.extension)}
	if f.externalRefs {
		options = append(options, openapi.WithExternalRefs())
	}
	if f.noValidate {
		options = append(options, openapi.WithoutValidation())
	}
	return options
}

func (a *app) loader() source.Loader {
	options := []source.LoaderOption{
		source.WithLogger(a.logger),
		source.WithMaxBodyBytes(a.cfg.Loader.MaxBytes),
	}
	if a.cfg.Loader.AllowHTTP {
		options = append(options, source.WithHTTPFallback(a.cfg.Loader.Timeout))
	}
	return formlayers.NewLoader(options...)
}

func (a *app) loadBundle(ctx context.Context) (formdoc.Bundle, error) {
	in := a.input
	l := a.loader()

	switch {
	case in.bundle != "":
		src, err := source.Parse(in.bundle)
		if err != nil {
			return formdoc.Bundle{}, err
		}
		return formlayers.LoadBundle(ctx, l, src)
	case in.openapi != "":
		if strings.TrimSpace(in.operation) == "" {
			return formdoc.Bundle{}, errors.New("--operation is required with --openapi")
		}
		src, err := source.Parse(in.openapi)
		if err != nil {
			return formdoc.Bundle{}, err
		}
		return formlayers.LoadOperation(ctx, l, src, in.operation, in.openapiOptions()...)
	case in.forms != "":
		return loadStoredForm(in.forms, in.form)
	case in.schema != "":
		schema, err := source.Parse(in.schema)
		if err != nil {
			return formdoc.Bundle{}, err
		}
		ui, err := optionalSource(in.ui)
		if err != nil {
			return formdoc.Bundle{}, err
		}
		tabs, err := optionalSource(in.tabs)
		if err != nil {
			return formdoc.Bundle{}, err
		}
		return formlayers.LoadParts(ctx, l, schema, ui, tabs)
	default:
		return formdoc.Bundle{}, errors.New("one of --bundle, --forms, --schema or --openapi is required")
	}
}

func loadStoredForm(dir, id string) (formdoc.Bundle, error) {
	store, err := formdoc.LoadFS(os.DirFS(dir))
	if err != nil {
		return formdoc.Bundle{}, err
	}
	if store.Empty() {
		return formdoc.Bundle{}, fmt.Errorf("no forms found in %s", dir)
	}
	ids := store.IDs()
	if id == "" {
		if len(ids) > 1 {
			return formdoc.Bundle{}, fmt.Errorf("--form is required, available: %s", strings.Join(ids, ", "))
		}
		id = ids[0]
	}
	bundle, ok := store.Form(id)
	if !ok {
		return formdoc.Bundle{}, fmt.Errorf("form %q not found, available: %s", id, strings.Join(ids, ", "))
	}
	return bundle, nil
}

func optionalSource(raw string) (source.Source, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return source.Parse(raw)
}

// loadTree splits the input and applies --path when given.
func (a *app) loadTree(ctx context.Context) (*layers.Node, error) {
	bundle, err := a.loadBundle(ctx)
	if err != nil {
		return nil, err
	}
	root := bundle.Split()
	a.logger.Debug("form split",
		zap.Int("fields", len(root.Fields())),
		zap.Int("depth", root.Depth()))

	if len(a.path) > 0 {
		active, err := root.SetActivePath(a.path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("active path set", zap.Strings("path", active))
	}
	return root, nil
}

// loadValues reads a JSON or YAML object used by visibility rules.
func (a *app) loadValues(ctx context.Context, raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	src, err := source.Parse(raw)
	if err != nil {
		return nil, err
	}
	doc, err := a.loader().Load(ctx, src)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	decode := yaml.Unmarshal
	if json.Valid(doc.Raw()) {
		decode = json.Unmarshal
	}
	if err := decode(doc.Raw(), &values); err != nil {
		return nil, fmt.Errorf("decode values %s: %w", doc.Location(), err)
	}
	return values, nil
}
