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
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind is the semantic type of a field, which determines how its value is
// written to and read from its columns.
type Kind int

// Field kinds. Columns between declared fields are blank on output and
// ignored on input, like Fortran nX edit descriptors.
const (
	// Literal is fixed text, such as the '$' that starts an input file.
	// It discriminates record types.
	Literal Kind = iota + 1

	// Label is free text, left-justified and blank-padded (Aw).
	Label

	// Integer is a right-justified integer (Iw). An Integer field with
	// Choices is a flag.
	Integer

	// Fixed is a fixed-point real written with an explicit decimal
	// point (Fw.d).
	Fixed

	// ImpliedDecimal is a fixed-point real written as zero-padded
	// digits without a decimal point. The last Decimals digits are the
	// fractional part.
	ImpliedDecimal

	// Exponent is a real in scientific notation with one digit before
	// the decimal point and a two-digit exponent (ESw.d).
	Exponent
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Label:
		return "label"
	case Integer:
		return "integer"
	case Fixed:
		return "fixed"
	case ImpliedDecimal:
		return "implied decimal"
	case Exponent:
		return "exponent"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) numeric() bool { return k == Integer || k.real() }

func (k Kind) real() bool { return k == Fixed || k == ImpliedDecimal || k == Exponent }

// Range is an inclusive bound on a numeric field. ExclusiveMin excludes
// Min itself, for quantities that must be strictly positive.
type Range struct {
	Min, Max     float64
	ExclusiveMin bool
}

func (r *Range) contains(v float64) bool {
	if r.ExclusiveMin && v <= r.Min {
		return false
	}
	return v >= r.Min && v <= r.Max
}

func (r *Range) String() string {
	lo := "["
	if r.ExclusiveMin {
		lo = "("
	}
	return fmt.Sprintf("%s%g, %g]", lo, r.Min, r.Max)
}

// Field describes one position-addressed field of a record.
type Field struct {
	// Name is the field name used in Values and error messages.
	Name string

	// Start is the first column of the field, 1-based and inclusive.
	Start int

	// Width is the number of columns the field occupies.
	Width int

	Kind Kind

	// Decimals is the number of digits after the decimal point of
	// real kinds.
	Decimals int

	// Units documents the physical units of the value.
	Units string

	// Range, if not nil, bounds numeric values.
	Range *Range

	// Choices, if not empty, lists the allowed values of an Integer field.
	Choices []int

	// Text is the content of a Literal field.
	Text string
}

// Lit returns a Literal field holding text starting at column start.
func Lit(start int, text string) Field {
	return Field{Name: "marker", Start: start, Width: len(text), Kind: Literal, Text: text}
}

// Text returns a Label field.
func Text(name string, start, width int) Field {
	return Field{Name: name, Start: start, Width: width, Kind: Label}
}

// Int returns an Integer field.
func Int(name string, start, width int) Field {
	return Field{Name: name, Start: start, Width: width, Kind: Integer}
}

// Real returns a Fixed field (Fortran Fw.d).
func Real(name string, start, width, decimals int) Field {
	return Field{Name: name, Start: start, Width: width, Kind: Fixed, Decimals: decimals}
}

// Implied returns an ImpliedDecimal field.
func Implied(name string, start, width, decimals int) Field {
	return Field{Name: name, Start: start, Width: width, Kind: ImpliedDecimal, Decimals: decimals}
}

// Sci returns an Exponent field (Fortran ESw.d).
func Sci(name string, start, width, decimals int) Field {
	return Field{Name: name, Start: start, Width: width, Kind: Exponent, Decimals: decimals}
}

// Within returns a copy of f bounded to [min, max].
func (f Field) Within(min, max float64) Field {
	f.Range = &Range{Min: min, Max: max}
	return f
}

// AtLeast returns a copy of f bounded below by min.
func (f Field) AtLeast(min float64) Field {
	return f.Within(min, math.Inf(1))
}

// Positive returns a copy of f that only accepts values greater than zero.
func (f Field) Positive() Field {
	f.Range = &Range{Min: 0, Max: math.Inf(1), ExclusiveMin: true}
	return f
}

// OneOf returns a copy of f that only accepts the given values.
func (f Field) OneOf(choices ...int) Field {
	f.Choices = choices
	return f
}

// In returns a copy of f with the given units.
func (f Field) In(units string) Field {
	f.Units = units
	return f
}

// End returns the last column of the field, 1-based and inclusive.
func (f Field) End() int { return f.Start + f.Width - 1 }

// Descriptor returns the Fortran edit descriptor equivalent to f.
func (f Field) Descriptor() string {
	switch f.Kind {
	case Literal:
		return fmt.Sprintf("'%s'", f.Text)
	case Label:
		return fmt.Sprintf("A%d", f.Width)
	case Integer:
		return fmt.Sprintf("I%d", f.Width)
	case Fixed, ImpliedDecimal:
		return fmt.Sprintf("F%d.%d", f.Width, f.Decimals)
	case Exponent:
		return fmt.Sprintf("ES%d.%d", f.Width, f.Decimals)
	}
	return "?"
}

// Check reports whether v can be written to f: that it has the right
// type, lies within f's range or choices, and fits f's width at f's
// precision.
func (f Field) Check(v interface{}) error {
	_, err := f.Format(v)
	return err
}

// Format returns v written in exactly f.Width columns.
func (f Field) Format(v interface{}) (string, error) {
	switch f.Kind {
	case Literal:
		return f.Text, nil
	case Label:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", errorf(ErrMalformedField, "%v", err)
		}
		if strings.ContainsAny(s, "\r\n") {
			return "", errorf(ErrMalformedField, "line break in %q", s)
		}
		if len(s) > f.Width {
			return "", errorf(ErrFieldOverflow, "%q needs %d columns, have %d", s, len(s), f.Width)
		}
		return s + strings.Repeat(" ", f.Width-len(s)), nil
	case Integer:
		i, err := toInt(v)
		if err != nil {
			return "", err
		}
		if err := f.checkInt(i); err != nil {
			return "", err
		}
		s := strconv.Itoa(i)
		if len(s) > f.Width {
			return "", errorf(ErrFieldOverflow, "%s needs %d columns, have %d", s, len(s), f.Width)
		}
		return leftPad(s, f.Width), nil
	case Fixed, ImpliedDecimal, Exponent:
		x, err := toFloat(v)
		if err != nil {
			return "", err
		}
		if err := f.checkReal(x); err != nil {
			return "", err
		}
		s, err := f.formatReal(x)
		if err != nil {
			return "", err
		}
		return leftPad(s, f.Width), nil
	}
	return "", errorf(ErrUnknownField, "field %s has no kind", f.Name)
}

// Parse reads the value of f from text, which must be the content of
// f's columns. Reals are returned as float64, integers as int and labels
// as string.
func (f Field) Parse(text string) (interface{}, error) {
	switch f.Kind {
	case Literal:
		if text != f.Text {
			return nil, errorf(ErrUnknownRecordType, "expected %q", f.Text)
		}
		return f.Text, nil
	case Label:
		return strings.TrimRight(text, " "), nil
	case Integer:
		i, err := parseInt(text)
		if err != nil {
			return nil, err
		}
		if err := f.checkInt(i); err != nil {
			return nil, err
		}
		return i, nil
	case Fixed, ImpliedDecimal, Exponent:
		x, err := parseReal(text, f.Decimals)
		if err != nil {
			return nil, err
		}
		if err := f.checkReal(x); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, errorf(ErrUnknownField, "field %s has no kind", f.Name)
}

// Quantize rounds x to the precision f can carry. Values of other kinds
// are returned unchanged.
func (f Field) Quantize(x float64) float64 {
	if !f.Kind.real() || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	format := byte('f')
	if f.Kind == Exponent {
		format = 'E'
	}
	q, err := strconv.ParseFloat(strconv.FormatFloat(x, format, f.Decimals, 64), 64)
	if err != nil {
		return x
	}
	return q
}

func (f Field) checkInt(i int) error {
	if len(f.Choices) > 0 {
		for _, c := range f.Choices {
			if c == i {
				return nil
			}
		}
		return errorf(ErrOutOfRange, "%d is not one of %v", i, f.Choices)
	}
	if f.Range != nil && !f.Range.contains(float64(i)) {
		return errorf(ErrOutOfRange, "%d is outside %v", i, f.Range)
	}
	return nil
}

func (f Field) checkReal(x float64) error {
	if f.Range != nil && !f.Range.contains(x) {
		return errorf(ErrOutOfRange, "%g is outside %v", x, f.Range)
	}
	return nil
}

// formatReal writes x without padding and checks that the text fits and
// reads back as exactly x.
func (f Field) formatReal(x float64) (string, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", errorf(ErrFieldOverflow, "%v has no fixed-width form", x)
	}
	var s string
	switch f.Kind {
	case Fixed:
		s = strconv.FormatFloat(x, 'f', f.Decimals, 64)
		if f.Decimals == 0 {
			s += "."
		}
	case ImpliedDecimal:
		s = impliedDigits(x, f.Decimals, f.Width)
	case Exponent:
		s = strconv.FormatFloat(x, 'E', f.Decimals, 64)
		if e := strings.IndexByte(s, 'E'); len(s)-e-2 > 2 {
			return "", errorf(ErrFieldOverflow, "exponent of %s needs three digits", s)
		}
	}
	if len(s) > f.Width {
		return "", errorf(ErrFieldOverflow, "%s needs %d columns, have %d", s, len(s), f.Width)
	}
	if back, err := parseReal(s, f.Decimals); err != nil || back != x {
		return "", errorf(ErrFieldOverflow, "%v written as %s loses precision", x, s)
	}
	return s, nil
}

// impliedDigits writes x as digits without a decimal point, zero-padded
// to width.
func impliedDigits(x float64, decimals, width int) string {
	s := strconv.FormatFloat(math.Abs(x), 'f', decimals, 64)
	s = strings.Replace(s, ".", "", 1)
	sign := ""
	if x < 0 {
		sign = "-"
	}
	if n := width - len(sign) - len(s); n > 0 {
		s = strings.Repeat("0", n) + s
	}
	return sign + s
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func toInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return 0, errorf(ErrMalformedField, "%v is not an integer", x)
		}
	case float32:
		if float64(x) != math.Trunc(float64(x)) {
			return 0, errorf(ErrMalformedField, "%v is not an integer", x)
		}
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, errorf(ErrMalformedField, "%v", err)
	}
	return i, nil
}

func toFloat(v interface{}) (float64, error) {
	x, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errorf(ErrMalformedField, "%v", err)
	}
	return x, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseInt reads an Iw field. Blank fields are zero.
func parseInt(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	digits := s
	if s[0] == '+' || s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || !allDigits(digits) {
		return 0, errorf(ErrMalformedField, "not an integer")
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errorf(ErrMalformedField, "%v", err)
	}
	return i, nil
}

// parseReal reads a real the way Fortran formatted input does: blank
// fields are zero, the exponent may be introduced by E, D or just its
// sign, and when the mantissa has no decimal point its last decimals
// digits are the fractional part.
func parseReal(text string, decimals int) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	mant, exp := s, ""
	if i := strings.IndexAny(s[1:], "EeDd+-"); i >= 0 {
		i++
		mant, exp = s[:i], s[i:]
		switch exp[0] {
		case 'E', 'e', 'D', 'd':
			exp = exp[1:]
		}
		digits := exp
		if digits != "" && (digits[0] == '+' || digits[0] == '-') {
			digits = digits[1:]
		}
		if digits == "" || !allDigits(digits) {
			return 0, errorf(ErrMalformedField, "bad exponent")
		}
	}

	sign := ""
	switch mant[0] {
	case '-':
		sign = "-"
		mant = mant[1:]
	case '+':
		mant = mant[1:]
	}
	intPart, frac := mant, ""
	point := strings.IndexByte(mant, '.')
	if point >= 0 {
		intPart, frac = mant[:point], mant[point+1:]
	}
	if intPart+frac == "" || !allDigits(intPart) || !allDigits(frac) {
		return 0, errorf(ErrMalformedField, "not a number")
	}
	if point < 0 && decimals > 0 {
		if len(intPart) < decimals {
			intPart = strings.Repeat("0", decimals-len(intPart)) + intPart
		}
		intPart, frac = intPart[:len(intPart)-decimals], intPart[len(intPart)-decimals:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if frac == "" {
		frac = "0"
	}
	num := sign + intPart + "." + frac
	if exp != "" {
		num += "e" + exp
	}
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, errorf(ErrMalformedField, "%v", err)
	}
	return x, nil
}
