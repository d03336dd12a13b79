package openapi

// DefaultExtension is the vendor extension read for presentation hints.
const DefaultExtension = "x-formgen"

// Options tunes how documents are loaded and converted.
type Options struct {
	// Extension names the property-level vendor extension holding hints.
	Extension string
	// Validate runs kin-openapi validation before conversion.
	Validate bool
	// AllowExternalRefs lets the loader follow references to other documents.
	AllowExternalRefs bool
	// MediaTypes lists request-body content types in lookup order.
	MediaTypes []string
}

// Option mutates Options.
type Option func(*Options)

// WithExtension overrides the vendor extension name.
func WithExtension(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Extension = name
		}
	}
}

// WithoutValidation skips document validation.
func WithoutValidation() Option {
	return func(o *Options) {
		o.Validate = false
	}
}

// WithExternalRefs allows references to external documents.
func WithExternalRefs() Option {
	return func(o *Options) {
		o.AllowExternalRefs = true
	}
}

// WithMediaTypes overrides the request-body content types consulted.
func WithMediaTypes(types ...string) Option {
	return func(o *Options) {
		if len(types) > 0 {
			o.MediaTypes = append([]string(nil), types...)
		}
	}
}

func newOptions(opts ...Option) Options {
	options := Options{
		Extension: DefaultExtension,
		Validate:  true,
		MediaTypes: []string{
			"application/json",
			"application/x-www-form-urlencoded",
			"multipart/form-data",
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
