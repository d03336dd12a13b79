package formdoc

import (
	"fmt"
	"strings"
)

// DocumentError reports a malformed bundle document.
type DocumentError struct {
	Source  string
	Message string
	Err     error
}

func (e *DocumentError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid document"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if strings.TrimSpace(e.Source) == "" {
		return "formdoc: " + msg
	}
	return fmt.Sprintf("formdoc: %s (%s)", msg, e.Source)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
