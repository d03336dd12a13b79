// Package formdoc parses form bundles: a property schema, its presentation
// schema ("uiSchema") and tab descriptors ("tabData") stored together in one
// JSON or YAML document. Stores collect bundles from a filesystem so hosts can
// look forms up by id.
package formdoc
