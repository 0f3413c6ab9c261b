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

package rrtmio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/rrtmio/record"
)

func TestQuantize(t *testing.T) {
	p := &Profile{
		Header: Header{Title: "ROUGH  ", SurfaceTemperature: 287.65432},
		Layers: []Layer{{
			Pressure:    1012.987654321,
			Temperature: 287.123456,
			AltitudeTop: 0.123456,
			PressureTop: 999.99999,
			Gases:       map[Gas]float64{H2O: 2.123456e22, O3: 0, SO2: 3.333333e12},
			Broadening:  1.99999e25,
		}},
		CrossSections: []string{"CCL4"},
	}
	p.Header.Emissivity[0] = 0.98765
	p.Layers[0].CrossSections = map[string]float64{"CCL4": 1.0000001e15}

	q, err := Quantize(p)
	if err != nil {
		t.Fatal(err)
	}
	want := &Profile{
		Header: Header{Title: "ROUGH", SurfaceTemperature: 287.654, NumMolecules: 9},
		Layers: []Layer{{
			Pressure:      1012.9877,
			Temperature:   287.1235,
			AltitudeTop:   0.12,
			PressureTop:   1000.0,
			Gases:         map[Gas]float64{H2O: 2.123e22, SO2: 3.333e12},
			Broadening:    2.0e25,
			CrossSections: map[string]float64{"CCL4": 1.0e15},
		}},
		CrossSections: []string{"CCL4"},
	}
	want.Header.Emissivity[0] = 0.988
	if !reflect.DeepEqual(q, want) {
		t.Errorf("%v", pretty.Diff(want, q))
	}
	if p.Layers[0].Pressure != 1012.987654321 {
		t.Error("input was modified")
	}

	text, err := Encode(q)
	if err != nil {
		t.Fatal(err)
	}
	q2, err := Decode(text)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(q, q2) {
		t.Errorf("round trip differs: %v", pretty.Diff(q, q2))
	}
	q3, err := Quantize(q)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(q, q3) {
		t.Errorf("not idempotent: %v", pretty.Diff(q, q3))
	}
}

func TestQuantizeErrors(t *testing.T) {
	if _, err := Quantize(&Profile{Header: Header{Form: 3}}); !errors.Is(err, record.ErrOutOfRange) {
		t.Errorf("want out of range but have %v", err)
	}
	p := testCase()
	p.Layers[0].Gases["XX"] = 1
	if _, err := Quantize(p); !errors.Is(err, record.ErrUnknownField) {
		t.Errorf("want unknown field but have %v", err)
	}
}

func TestQuantizeTrimsNames(t *testing.T) {
	p := testCase()
	p.Header.NumMolecules = 0
	p.CrossSections = []string{"F11 ", "CCL4"}
	p.Layers[1].CrossSections = map[string]float64{"F11 ": 2.5e14}
	if _, err := Encode(p); !errors.Is(err, record.ErrMalformedField) {
		t.Fatalf("want malformed field but have %v", err)
	}

	q, err := Quantize(p)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"F11", "CCL4"}; !reflect.DeepEqual(q.CrossSections, want) {
		t.Errorf("want %q but have %q", want, q.CrossSections)
	}
	if q.Header.NumMolecules != 7 {
		t.Errorf("want NMOL 7 but have %d", q.Header.NumMolecules)
	}
	text, err := Encode(q)
	if err != nil {
		t.Fatal(err)
	}
	q2, err := Decode(text)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(q, q2) {
		t.Errorf("round trip differs: %v", pretty.Diff(q, q2))
	}
}
