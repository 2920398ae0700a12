// Package diag defines the positioned diagnostics reported for Runa source
// code and helpers for carrying several of them in one error value.
package diag

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/runa-lang/runa/token"
)

// Error is a single diagnostic tied to a source location.
type Error struct {
	Loc token.Location
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error: %s: %s", e.Loc, e.Msg)
}

// Errorf builds a diagnostic at the given location.
func Errorf(loc token.Location, format string, args ...any) *Error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// Join combines diagnostics, in order, into one error value. It returns nil
// for an empty list.
func Join(errs []*Error) error {
	if len(errs) == 0 {
		return nil
	}
	combined := &multierror.Error{ErrorFormat: listFormat}
	for _, e := range errs {
		combined = multierror.Append(combined, e)
	}
	return combined
}

// listFormat renders each diagnostic on its own line. The diagnostics carry
// their own locations, so the default bulleted summary would only add noise.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// List recovers the ordered diagnostics from an error produced by Join. A
// nil error yields a nil slice; an unrelated error yields a one-element
// slice with an unpositioned diagnostic so callers can always range over
// the result.
func List(err error) []*Error {
	if err == nil {
		return nil
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		if diag, ok := err.(*Error); ok {
			return []*Error{diag}
		}
		return []*Error{{Msg: err.Error()}}
	}
	out := make([]*Error, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		if diag, ok := e.(*Error); ok {
			out = append(out, diag)
		} else {
			out = append(out, &Error{Msg: e.Error()})
		}
	}
	return out
}
