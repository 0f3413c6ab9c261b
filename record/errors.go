/*
Copyright © 2026 the rrtmio authors.
This file is part of rrtmio.

rrtmio is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rrtmio is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rrtmio.  If not, see <http://www.gnu.org/licenses/>.
*/

package record

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. The typed errors below unwrap to one of these, so callers
// can use errors.Is regardless of where in a file the problem occurred.
var (
	// ErrFieldOverflow means a value cannot be written within its
	// field width at the field's precision.
	ErrFieldOverflow = errors.New("field overflow")

	// ErrOutOfRange means a value violates a declared bound or is not
	// one of a flag's allowed choices.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownField means a field name is not declared by a record type.
	ErrUnknownField = errors.New("unknown field")

	// ErrMalformedField means the text in a column span cannot be read
	// as the field's type.
	ErrMalformedField = errors.New("malformed field")

	// ErrUnexpectedEOF means the input ended, or reached its terminator
	// record, in the middle of the grammar.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrUnknownRecordType means a line's discriminator does not match the
	// record type expected at that position.
	ErrUnknownRecordType = errors.New("unknown record type")

	// ErrUnsupported means the input selects a mode of the solver that
	// this package does not read or write.
	ErrUnsupported = errors.New("unsupported")
)

// Location identifies where in a file an error occurred. Line and the
// column span are 1-based; zero means unknown.
type Location struct {
	Record string
	Field  string
	Line   int
	Start  int
	End    int
}

func (l Location) String() string {
	var parts []string
	if l.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", l.Line))
	}
	if l.Start > 0 {
		parts = append(parts, fmt.Sprintf("columns %d-%d", l.Start, l.End))
	}
	if l.Record != "" {
		parts = append(parts, "record "+l.Record)
	}
	if l.Field != "" {
		parts = append(parts, "field "+l.Field)
	}
	return strings.Join(parts, ", ")
}

func (l Location) format(op string, err error, reason string) string {
	s := op
	if loc := l.String(); loc != "" {
		s += " (" + loc + ")"
	}
	s += ": " + err.Error()
	if reason != "" {
		s += ": " + reason
	}
	return s
}

// SchemaError reports a value that cannot be represented in its declared
// field format. It is a caller bug.
type SchemaError struct {
	Location
	Err    error
	Reason string
}

func (e *SchemaError) Error() string { return e.format("record: invalid value", e.Err, e.Reason) }

// Unwrap returns the error kind.
func (e *SchemaError) Unwrap() error { return e.Err }

// FormatError reports a value that cannot be emitted within its field
// width. It is a caller bug.
type FormatError struct {
	Location
	Err    error
	Reason string
}

func (e *FormatError) Error() string { return e.format("record: cannot format", e.Err, e.Reason) }

// Unwrap returns the error kind.
func (e *FormatError) Unwrap() error { return e.Err }

// ParseError reports input that does not conform to the record grammar.
// Text holds the offending column text, if any.
type ParseError struct {
	Location
	Err    error
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	reason := e.Reason
	if e.Text != "" {
		if reason != "" {
			reason += " "
		}
		reason += fmt.Sprintf("%q", e.Text)
	}
	return e.format("record: cannot parse", e.Err, reason)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error { return e.Err }

// fieldError is the location-free error returned by the field codec.
// Record-level operations attach a Location to it.
type fieldError struct {
	err    error
	reason string
}

func (e *fieldError) Error() string {
	if e.reason == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.reason
}

func (e *fieldError) Unwrap() error { return e.err }

func errorf(kind error, format string, args ...interface{}) error {
	return &fieldError{err: kind, reason: fmt.Sprintf(format, args...)}
}

// splitFieldError returns the kind and reason of an error returned by the
// field codec.
func splitFieldError(err error) (error, string) {
	var fe *fieldError
	if errors.As(err, &fe) {
		return fe.err, fe.reason
	}
	return err, ""
}
