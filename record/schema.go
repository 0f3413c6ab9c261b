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
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Schema describes one record type: an ordered list of non-overlapping
// fields. Schemas are immutable once defined and safe for concurrent use.
type Schema struct {
	Name   string
	Fields []Field

	width  int
	byName map[string]int
}

// Define returns a schema for the record type name. It panics if the
// field layout is invalid, because schemas are static tables and a bad
// one is a programming error.
func Define(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSchema returns a schema for the record type name, or an error if the
// fields are unordered, overlapping, unnamed or duplicated.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		Name:   name,
		Fields: fields,
		byName: make(map[string]int, len(fields)),
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("record: schema %s has no fields", name)
	}
	end := 0
	for i, f := range fields {
		switch {
		case f.Kind < Literal || f.Kind > Exponent:
			return nil, fmt.Errorf("record: schema %s field %d has invalid kind", name, i)
		case f.Start < 1 || f.Width < 1:
			return nil, fmt.Errorf("record: schema %s field %s has invalid span %d+%d", name, f.Name, f.Start, f.Width)
		case f.Start <= end:
			return nil, fmt.Errorf("record: schema %s field %s starts at column %d, before the end of the previous field (%d)",
				name, f.Name, f.Start, end)
		case f.Kind == Literal && len(f.Text) != f.Width:
			return nil, fmt.Errorf("record: schema %s literal %q is not %d columns wide", name, f.Text, f.Width)
		case f.Kind.real() && f.Decimals >= f.Width:
			return nil, fmt.Errorf("record: schema %s field %s has %d decimals in %d columns", name, f.Name, f.Decimals, f.Width)
		}
		end = f.End()
		if f.Kind == Literal {
			continue
		}
		if f.Name == "" {
			return nil, fmt.Errorf("record: schema %s field %d has no name", name, i)
		}
		if _, ok := s.byName[f.Name]; ok {
			return nil, fmt.Errorf("record: schema %s has duplicate field %s", name, f.Name)
		}
		s.byName[f.Name] = i
	}
	s.width = end
	return s, nil
}

// Repeat defines a record of consecutive fields starting at column 1, one
// per name, each formatted like proto.
func Repeat(record string, names []string, proto Field) *Schema {
	fields := make([]Field, len(names))
	for i, n := range names {
		f := proto
		f.Name = n
		f.Start = 1 + i*proto.Width
		fields[i] = f
	}
	return Define(record, fields...)
}

// Width returns the number of columns a record of s occupies.
func (s *Schema) Width() int { return s.width }

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Quantize returns a copy of v whose real values are rounded to the
// precision of their fields.
func (s *Schema) Quantize(v Values) Values {
	o := make(Values, len(v))
	for name, val := range v {
		o[name] = val
		f, ok := s.Field(name)
		if !ok || !f.Kind.real() {
			continue
		}
		if x, err := cast.ToFloat64E(val); err == nil {
			o[name] = f.Quantize(x)
		}
	}
	return o
}

// Values holds the field values of one record, keyed by field name.
type Values map[string]interface{}

// Float returns the named value as a float64.
func (v Values) Float(name string) float64 { return cast.ToFloat64(v[name]) }

// Int returns the named value as an int.
func (v Values) Int(name string) int { return cast.ToInt(v[name]) }

// String returns the named value as a string.
func (v Values) String(name string) string { return cast.ToString(v[name]) }

// Validate checks that value can be written to the field name of record
// type s: that it lies within the field's declared range and, formatted
// with the field's numeric style, fits the field's width. It returns a
// *SchemaError.
func Validate(s *Schema, name string, value interface{}) error {
	f, ok := s.Field(name)
	if !ok {
		return &SchemaError{Location: Location{Record: s.Name, Field: name}, Err: ErrUnknownField}
	}
	if err := f.Check(value); err != nil {
		kind, reason := splitFieldError(err)
		return &SchemaError{Location: location(s, f, 0), Err: kind, Reason: reason}
	}
	return nil
}

// Encode writes v as one record of type s, exactly s.Width() columns wide.
// line is the 1-based line the record will occupy and is only used in
// errors. Fields missing from v are left blank. Values that do not fit
// their field return a *FormatError; values outside a field's range
// return a *SchemaError. Nothing is truncated.
func Encode(s *Schema, v Values, line int) (string, error) {
	if !s.hasAll(v) {
		var unknown []string
		for name := range v {
			if _, ok := s.byName[name]; !ok {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		return "", &SchemaError{
			Location: Location{Record: s.Name, Field: unknown[0], Line: line},
			Err:      ErrUnknownField,
		}
	}
	buf := []byte(strings.Repeat(" ", s.width))
	for _, f := range s.Fields {
		val, ok := v[f.Name]
		if f.Kind != Literal && !ok {
			continue
		}
		text, err := f.Format(val)
		if err != nil {
			kind, reason := splitFieldError(err)
			loc := location(s, f, line)
			if kind == ErrFieldOverflow {
				return "", &FormatError{Location: loc, Err: kind, Reason: reason}
			}
			return "", &SchemaError{Location: loc, Err: kind, Reason: reason}
		}
		copy(buf[f.Start-1:], text)
	}
	return string(buf), nil
}

func (s *Schema) hasAll(v Values) bool {
	for name := range v {
		if _, ok := s.byName[name]; !ok {
			return false
		}
	}
	return true
}

// Decode reads one record of type s from line, the text of 1-based line
// lineNo. Lines shorter than the record are read as if padded with
// blanks, and columns past the record are ignored, as in Fortran
// formatted input. Errors are *ParseErrors citing the field's columns.
func Decode(s *Schema, line string, lineNo int) (Values, error) {
	if len(line) < s.width {
		line += strings.Repeat(" ", s.width-len(line))
	}
	v := make(Values, len(s.byName))
	for _, f := range s.Fields {
		text := line[f.Start-1 : f.End()]
		x, err := f.Parse(text)
		if err != nil {
			kind, reason := splitFieldError(err)
			return nil, &ParseError{Location: location(s, f, lineNo), Err: kind, Text: text, Reason: reason}
		}
		if f.Kind != Literal {
			v[f.Name] = x
		}
	}
	return v, nil
}

func location(s *Schema, f Field, line int) Location {
	return Location{Record: s.Name, Field: f.Name, Line: line, Start: f.Start, End: f.End()}
}
