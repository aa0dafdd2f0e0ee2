package schema

import "fmt"

// SchemaError reports a malformed or self-contradictory configuration
// document. It is fatal to loading that one document only.
type SchemaError struct {
	Document string // "controller" or "binds"
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s schema: %s", e.Document, e.Reason)
}

func schemaErrorf(document, format string, args ...any) *SchemaError {
	return &SchemaError{Document: document, Reason: fmt.Sprintf(format, args...)}
}
