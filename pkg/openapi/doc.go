// Package openapi derives tabbed form input from OpenAPI 3 documents. The
// request body schema of an operation becomes a layers.Schema with properties
// in declaration order, and each property's x-formgen object becomes its
// presentation entry, where "tab" routes the field to a layer.
package openapi
