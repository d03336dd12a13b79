// Package render turns a materialized active chain of layers.SubForm values
// into tab bars. Templates run on pongo2; tab icons are sanitized with
// bluemonday and theme tokens are exposed as CSS custom properties.
package render
