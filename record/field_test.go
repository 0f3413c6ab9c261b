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
	"math"
	"testing"
)

func TestFieldFormat(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		v    interface{}
		want string
		err  error
	}{
		{name: "implied", f: Implied("x", 1, 6, 3), v: 12.345, want: "012345"},
		{name: "implied negative", f: Implied("x", 1, 6, 3), v: -1.5, want: "-01500"},
		{name: "fixed", f: Real("x", 1, 10, 3), v: 288.0, want: "   288.000"},
		{name: "fixed negative", f: Real("x", 1, 7, 2), v: -12.5, want: " -12.50"},
		{name: "fixed zero decimals", f: Real("x", 1, 4, 0), v: 5.0, want: "  5."},
		{name: "exponent", f: Sci("x", 1, 10, 3), v: 2.5e22, want: " 2.500E+22"},
		{name: "exponent zero", f: Sci("x", 1, 10, 3), v: 0.0, want: " 0.000E+00"},
		{name: "exponent negative", f: Sci("x", 1, 10, 3), v: -1.25e-5, want: "-1.250E-05"},
		{name: "wide exponent", f: Sci("x", 1, 15, 7), v: 1.2345678e3, want: "  1.2345678E+03"},
		{name: "int", f: Int("x", 1, 5), v: 38, want: "   38"},
		{name: "int from float", f: Int("x", 1, 3), v: 7.0, want: "  7"},
		{name: "negative int", f: Int("x", 1, 3), v: -1, want: " -1"},
		{name: "label", f: Text("x", 1, 6), v: "CCL4", want: "CCL4  "},
		{name: "literal", f: Lit(1, "$"), want: "$"},
		{name: "flag", f: Int("x", 1, 1).OneOf(0, 1), v: 1, want: "1"},

		{name: "int overflow", f: Int("x", 1, 3), v: 1000, err: ErrFieldOverflow},
		{name: "fixed overflow", f: Real("x", 1, 10, 4), v: 1.0e6, err: ErrFieldOverflow},
		{name: "fixed precision", f: Real("x", 1, 10, 3), v: 288.0001, err: ErrFieldOverflow},
		{name: "exponent precision", f: Sci("x", 1, 10, 3), v: 2.5001e22, err: ErrFieldOverflow},
		{name: "three digit exponent", f: Sci("x", 1, 11, 3), v: 1e100, err: ErrFieldOverflow},
		{name: "implied overflow", f: Implied("x", 1, 6, 3), v: 1234.5, err: ErrFieldOverflow},
		{name: "label overflow", f: Text("x", 1, 3), v: "ABCD", err: ErrFieldOverflow},
		{name: "nan", f: Real("x", 1, 10, 3), v: math.NaN(), err: ErrFieldOverflow},
		{name: "infinity", f: Sci("x", 1, 10, 3), v: math.Inf(1), err: ErrFieldOverflow},
		{name: "below range", f: Real("x", 1, 10, 3).AtLeast(0), v: -1.0, err: ErrOutOfRange},
		{name: "above range", f: Real("x", 1, 5, 3).Within(0, 1), v: 1.5, err: ErrOutOfRange},
		{name: "not positive", f: Real("x", 1, 10, 4).Positive(), v: 0.0, err: ErrOutOfRange},
		{name: "not a choice", f: Int("x", 1, 1).OneOf(0, 1), v: 2, err: ErrOutOfRange},
		{name: "fractional int", f: Int("x", 1, 3), v: 1.5, err: ErrMalformedField},
		{name: "not a number", f: Real("x", 1, 10, 3), v: "abc", err: ErrMalformedField},
		{name: "line break", f: Text("x", 1, 10), v: "a\nb", err: ErrMalformedField},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have, err := test.f.Format(test.v)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("want error %v but have %v (%q)", test.err, err, have)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if have != test.want {
				t.Errorf("want %q but have %q", test.want, have)
			}
			if len(have) != test.f.Width {
				t.Errorf("width: want %d but have %d", test.f.Width, len(have))
			}
		})
	}
}

func TestFieldParse(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		text string
		want interface{}
		err  error
	}{
		{name: "implied", f: Implied("x", 1, 6, 3), text: "012345", want: 12.345},
		{name: "implied in fixed field", f: Real("x", 1, 10, 3), text: "       288", want: 0.288},
		{name: "short implied", f: Real("x", 1, 10, 3), text: "         5", want: 0.005},
		{name: "explicit point", f: Real("x", 1, 10, 3), text: "   288.000", want: 288.0},
		{name: "more decimals than declared", f: Real("x", 1, 10, 3), text: "  288.1234", want: 288.1234},
		{name: "blank real", f: Real("x", 1, 10, 3), text: "          ", want: 0.0},
		{name: "e exponent", f: Sci("x", 1, 10, 3), text: " 2.500E+22", want: 2.5e22},
		{name: "lower e", f: Sci("x", 1, 10, 3), text: " 2.500e+22", want: 2.5e22},
		{name: "d exponent", f: Sci("x", 1, 10, 3), text: " 2.500D+22", want: 2.5e22},
		{name: "sign exponent", f: Sci("x", 1, 10, 3), text: "  2.500+22", want: 2.5e22},
		{name: "negative sign exponent", f: Sci("x", 1, 10, 3), text: " 1.250-05", want: 1.25e-5},
		{name: "implied mantissa", f: Sci("x", 1, 10, 3), text: "   2500E22", want: 2.5e22},
		{name: "fixed in exponent field", f: Sci("x", 1, 10, 3), text: "    1013.0", want: 1013.0},
		{name: "negative", f: Real("x", 1, 7, 2), text: " -12.50", want: -12.5},
		{name: "int", f: Int("x", 1, 5), text: "   38", want: 38},
		{name: "blank int", f: Int("x", 1, 5), text: "     ", want: 0},
		{name: "signed int", f: Int("x", 1, 3), text: " -1", want: -1},
		{name: "label", f: Text("x", 1, 10), text: "CCL4      ", want: "CCL4"},
		{name: "label leading blanks", f: Text("x", 1, 10), text: "  CCL4    ", want: "  CCL4"},
		{name: "literal", f: Lit(1, "$"), text: "$", want: "$"},

		{name: "embedded blank", f: Real("x", 1, 10, 3), text: "  28 8.000", err: ErrMalformedField},
		{name: "letters", f: Real("x", 1, 10, 3), text: "  abc     ", err: ErrMalformedField},
		{name: "two points", f: Real("x", 1, 10, 3), text: "  2.8.8   ", err: ErrMalformedField},
		{name: "bad exponent", f: Sci("x", 1, 10, 3), text: "  2.500E+ ", err: ErrMalformedField},
		{name: "lone sign", f: Real("x", 1, 10, 3), text: "         -", err: ErrMalformedField},
		{name: "bad int", f: Int("x", 1, 3), text: " 1a", err: ErrMalformedField},
		{name: "real in int", f: Int("x", 1, 3), text: "1.0", err: ErrMalformedField},
		{name: "out of range", f: Real("x", 1, 5, 3).Within(0, 1), text: "1.500", err: ErrOutOfRange},
		{name: "not a choice", f: Int("x", 1, 1).OneOf(0, 1), text: "3", err: ErrOutOfRange},
		{name: "wrong literal", f: Lit(1, "$"), text: "%", err: ErrUnknownRecordType},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have, err := test.f.Parse(test.text)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("want error %v but have %v (%v)", test.err, err, have)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if have != test.want {
				t.Errorf("want %v (%T) but have %v (%T)", test.want, test.want, have, have)
			}
		})
	}
}

func TestFieldRoundTrip(t *testing.T) {
	fields := []Field{
		Real("f", 1, 10, 4), Real("f", 1, 7, 2), Implied("i", 1, 8, 3),
		Sci("e", 1, 10, 3), Sci("e", 1, 15, 7),
	}
	values := []float64{0, 1, -1, 0.5, 12.25, 0.75, -3.75, 100.5}
	for _, f := range fields {
		for _, v := range values {
			text, err := f.Format(v)
			if err != nil {
				t.Errorf("%s %v: %v", f.Descriptor(), v, err)
				continue
			}
			back, err := f.Parse(text)
			if err != nil {
				t.Errorf("%s %q: %v", f.Descriptor(), text, err)
				continue
			}
			if back.(float64) != v {
				t.Errorf("%s: want %v but have %v (%q)", f.Descriptor(), v, back, text)
			}
		}
	}
}

func TestFieldQuantize(t *testing.T) {
	tests := []struct {
		f    Field
		v    float64
		want float64
	}{
		{f: Real("x", 1, 10, 3), v: 288.0001, want: 288.0},
		{f: Real("x", 1, 10, 3), v: 288.0006, want: 288.001},
		{f: Sci("x", 1, 10, 3), v: 2.50049e22, want: 2.5e22},
		{f: Int("x", 1, 3), v: 1.7, want: 1.7},
	}
	for _, test := range tests {
		have := test.f.Quantize(test.v)
		if have != test.want {
			t.Errorf("%s: want %v but have %v", test.f.Descriptor(), test.want, have)
		}
		if test.f.Kind.real() {
			if _, err := test.f.Format(have); err != nil {
				t.Errorf("quantized value does not format: %v", err)
			}
			if again := test.f.Quantize(have); again != have {
				t.Errorf("not idempotent: %v then %v", have, again)
			}
		}
	}
}

func TestDescriptor(t *testing.T) {
	tests := map[string]Field{
		"'$'":    Lit(1, "$"),
		"A79":    Text("t", 2, 79),
		"I5":     Int("n", 6, 5),
		"F10.4":  Real("p", 1, 10, 4),
		"F6.3":   Implied("p", 1, 6, 3),
		"ES15.7": Sci("p", 1, 15, 7),
	}
	for want, f := range tests {
		if have := f.Descriptor(); have != want {
			t.Errorf("want %s but have %s", want, have)
		}
	}
}
