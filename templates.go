package formlayers

import (
	"io/fs"

	"github.com/goliatone/go-formlayers/pkg/render"
)

// EmbeddedTemplates exposes the built-in tab bar templates so callers can
// copy or extend them and pass the result back through render.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
