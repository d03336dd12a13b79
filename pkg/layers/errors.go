package layers

import (
	"fmt"
	"strings"
)

// UnknownLayerError reports a cursor path naming a tab that does not exist
// below the node reached so far.
type UnknownLayerError struct {
	// Path is the prefix up to and including the unknown id.
	Path  []string
	Layer string
}

func (e *UnknownLayerError) Error() string {
	return fmt.Sprintf("layers: unknown tab %q at %q", e.Layer, strings.Join(e.Path, "/"))
}
