package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlayers/pkg/formdoc"
	"github.com/goliatone/go-formlayers/pkg/layers"
	"github.com/goliatone/go-formlayers/pkg/source"
)

// ErrOperationNotFound is returned when no operation carries the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// OperationRef identifies one operation of a document.
type OperationRef struct {
	ID     string
	Method string
	Path   string
}

// Operations lists the operations of raw ordered by path then method.
// Operations without an operationId are keyed "method:path".
func Operations(ctx context.Context, raw []byte, opts ...Option) ([]OperationRef, error) {
	options := newOptions(opts...)
	spec, err := load(ctx, raw, options)
	if err != nil {
		return nil, err
	}
	var refs []OperationRef
	for _, entry := range operations(spec) {
		refs = append(refs, entry.ref)
	}
	return refs, nil
}

// FromOperation converts the request body of operationID into a schema and a
// presentation document.
func FromOperation(ctx context.Context, raw []byte, operationID string, opts ...Option) (layers.Schema, layers.Presentation, error) {
	options := newOptions(opts...)
	spec, err := load(ctx, raw, options)
	if err != nil {
		return layers.Schema{}, nil, err
	}
	entry, err := findOperation(spec, operationID)
	if err != nil {
		return layers.Schema{}, nil, err
	}
	return convert(raw, entry, options)
}

// Bundle converts operationID of doc into a form bundle. Tab descriptors are
// read from the operation-level "<extension>-tabs" list.
func Bundle(ctx context.Context, doc source.Document, operationID string, opts ...Option) (formdoc.Bundle, error) {
	options := newOptions(opts...)
	raw := doc.Raw()
	spec, err := load(ctx, raw, options)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	entry, err := findOperation(spec, operationID)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	schema, presentation, err := convert(raw, entry, options)
	if err != nil {
		return formdoc.Bundle{}, err
	}
	tabs, err := operationTabs(entry.op, options.Extension+"-tabs")
	if err != nil {
		return formdoc.Bundle{}, fmt.Errorf("openapi: %s: %w", doc.Location(), err)
	}
	return formdoc.Bundle{
		ID:           entry.ref.ID,
		Schema:       schema,
		Presentation: presentation,
		Tabs:         tabs,
	}, nil
}

type operationEntry struct {
	ref OperationRef
	op  *openapi3.Operation
}

func load(ctx context.Context, raw []byte, options Options) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = options.AllowExternalRefs

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func operations(spec *openapi3.T) []operationEntry {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	var entries []operationEntry
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			entries = append(entries, operationEntry{
				ref: OperationRef{ID: id, Method: strings.ToUpper(method), Path: path},
				op:  op,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ref.Path != entries[j].ref.Path {
			return entries[i].ref.Path < entries[j].ref.Path
		}
		return entries[i].ref.Method < entries[j].ref.Method
	})
	return entries
}

func findOperation(spec *openapi3.T, operationID string) (operationEntry, error) {
	for _, entry := range operations(spec) {
		if entry.ref.ID == operationID {
			return entry, nil
		}
	}
	return operationEntry{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func convert(raw []byte, entry operationEntry, options Options) (layers.Schema, layers.Presentation, error) {
	mediaType, body := requestSchema(entry.op, options.MediaTypes)
	if body == nil || body.Value == nil {
		return layers.Schema{}, nil, fmt.Errorf("openapi: operation %q has no request body schema", entry.ref.ID)
	}

	keywords, err := toMap(body.Value)
	if err != nil {
		return layers.Schema{}, nil, fmt.Errorf("openapi: operation %q: %w", entry.ref.ID, err)
	}
	delete(keywords, "properties")
	delete(keywords, "required")

	var order []string
	if root, err := documentNode(raw); err == nil {
		order = declaredOrder(root, entry.ref, mediaType)
	}

	schema := layers.NewSchema()
	presentation := layers.Presentation{}
	for _, name := range propertyNames(body.Value.Properties, order) {
		prop := body.Value.Properties[name]
		var definition map[string]any
		if prop != nil && prop.Value != nil {
			definition, err = toMap(prop.Value)
			if err != nil {
				return layers.Schema{}, nil, fmt.Errorf("openapi: property %q: %w", name, err)
			}
			if hints := presentationHints(prop.Value.Extensions[options.Extension]); len(hints) > 0 {
				presentation[name] = hints
			}
			delete(definition, options.Extension)
		}
		if definition == nil {
			definition = map[string]any{}
		}
		schema.Add(name, definition, false)
	}
	for _, name := range body.Value.Required {
		if _, ok := schema.Definition(name); ok {
			schema.Required = append(schema.Required, name)
		}
	}
	if len(keywords) > 0 {
		schema.Keywords = keywords
	}
	return schema, presentation, nil
}

func requestSchema(op *openapi3.Operation, mediaTypes []string) (string, *openapi3.SchemaRef) {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return "", nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mediaType, mt.Schema
		}
	}
	return "", nil
}

// propertyNames returns the declared order followed by any remaining names in
// lexical order.
func propertyNames(props openapi3.Schemas, order []string) []string {
	names := make([]string, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, name := range order {
		if _, ok := props[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	var rest []string
	for name := range props {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// presentationHints maps an x-formgen object onto presentation keys: "tab"
// becomes the routing tag, "label" becomes "ui:title", keys already carrying
// the "ui:" prefix pass through and the rest gain it.
func presentationHints(raw any) map[string]any {
	ext, ok := raw.(map[string]any)
	if !ok || len(ext) == 0 {
		return nil
	}
	hints := make(map[string]any, len(ext))
	for key, value := range ext {
		switch {
		case key == "tab":
			hints[layers.TabKey] = value
		case key == "label":
			hints["ui:title"] = value
		case strings.HasPrefix(key, "ui:"):
			hints[key] = value
		default:
			hints["ui:"+key] = value
		}
	}
	return hints
}

func operationTabs(op *openapi3.Operation, key string) ([]layers.Tab, error) {
	if op == nil || op.Extensions == nil {
		return nil, nil
	}
	value, ok := op.Extensions[key]
	if !ok || value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	var tabs []layers.Tab
	if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return tabs, nil
}

func toMap(schema *openapi3.Schema) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return out, nil
}
