// Package rendering renders analysis results into the plain-text report.
package rendering

import (
	"errors"
	"fmt"
)

// ErrNothingToRender is returned when a report is requested for a nil result.
var ErrNothingToRender = errors.New("no analysis to render")

// TemplateError means the embedded report template could not be loaded or run.
// It points at a build problem, not at the analysis data.
type TemplateError struct {
	Template string
	Stage    string // read, parse or execute
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("report template %s: %s failed: %v", e.Template, e.Stage, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// SaveError is a failure writing a rendered report to disk.
type SaveError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("saving report to %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("saving report to %q: %s", e.Path, e.Message)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
