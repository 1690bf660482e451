// Package rendering lays generated documents out as paginated PDFs and plain-text transcripts.
package rendering

import (
	"fmt"
	"strings"
)

// TemplateError reports a template name outside Templates.
type TemplateError struct {
	Name string
}

func (e *TemplateError) Error() string {
	names := make([]string, len(Templates))
	for i, t := range Templates {
		names[i] = string(t)
	}
	return fmt.Sprintf("unknown template %q (want %s)", e.Name, strings.Join(names, ", "))
}

// RenderError wraps a failure to produce or write a document.
type RenderError struct {
	Template Template
	Cause    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s PDF: %v", e.Template, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
