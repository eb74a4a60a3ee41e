// Package diag defines the structured diagnostic record used across the
// evaluator: one origin-anchored type merging a code-carrying error shape
// with a field/severity-carrying validation shape.
package diag

import "strings"

// Stable, contract-visible diagnostic messages. Tests assert on these exact
// strings.
const (
	MsgDuplicateDeclaration = "Duplicate build argument declaration."
	MsgUnusedOverride       = "Build argument has no effect."
)

// Err is a structured diagnostic: an origin identifying the site the user
// can act on, a short title, a longer message, and an optional ordered list
// of sub-errors (e.g. the prior declaration site in a duplicate-declaration
// report).
type Err struct {
	Origin  OriginLike
	Title   string
	Message string
	Sub     []*Err
}

// OriginLike is satisfied by gnvalue.Origin without diag importing gnvalue,
// keeping this package a leaf dependency with zero external imports.
type OriginLike interface {
	String() string
	IsZero() bool
}

// New constructs an Err. Construction is always total; there is no failure
// mode for building a diagnostic.
func New(origin OriginLike, title, message string) *Err {
	return &Err{Origin: origin, Title: title, Message: message}
}

// WithSub appends sub-errors and returns e for chaining.
func (e *Err) WithSub(sub ...*Err) *Err {
	e.Sub = append(e.Sub, sub...)
	return e
}

// Error implements the error interface.
func (e *Err) Error() string {
	var b strings.Builder
	b.WriteString(e.Title)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if !e.Origin.IsZero() {
		b.WriteString(" (at ")
		b.WriteString(e.Origin.String())
		b.WriteString(")")
	}
	for _, s := range e.Sub {
		b.WriteString("\n  caused by: ")
		b.WriteString(s.Error())
	}
	return b.String()
}

// Unwrap exposes sub-errors to errors.Is/errors.As via the Go 1.20+
// multi-error unwrap convention.
func (e *Err) Unwrap() []error {
	errs := make([]error, len(e.Sub))
	for i, s := range e.Sub {
		errs[i] = s
	}
	return errs
}
