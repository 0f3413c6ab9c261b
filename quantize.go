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
	"fmt"
	"strings"

	"github.com/spatialmodel/rrtmio/record"
)

// Quantize returns a copy of p with every real value rounded to the
// precision of the field it is written to, so that Encode accepts it as
// long as the values are in range. The copy is also in the form Decode
// returns: zero amounts are dropped, gas maps are never nil, NumMolecules
// is set and labels have no trailing blanks, so Decode(Encode(q)) equals q.
func Quantize(p *Profile) (*Profile, error) {
	if p == nil {
		return nil, fmt.Errorf("rrtmio: nil profile")
	}
	if err := checkForm(p); err != nil {
		return nil, err
	}
	if p.Atmosphere != nil {
		q := &Profile{Header: quantizeHeader(p.Header), Atmosphere: quantizeAtmosphere(p.Atmosphere)}
		q.Header.Form = 0
		q.Header.NumMolecules = 0
		return q, nil
	}
	if err := record.Validate(recLayers, "IFORM", p.Header.Form); err != nil {
		return nil, err
	}
	hasXS := len(p.CrossSections) > 0
	if hasXS {
		if err := record.Validate(recXSForm, "IFRMX", p.CrossSectionForm); err != nil {
			return nil, err
		}
	}

	nmol, err := numMolecules(p)
	if err != nil {
		return nil, err
	}

	q := &Profile{Header: quantizeHeader(p.Header)}
	if hasXS {
		q.CrossSections = trimNames(p.CrossSections)
		q.CrossSectionForm = p.CrossSectionForm
	}
	q.Header.NumMolecules = nmol

	gas := amountField(p.Header.Form)
	xs := amountField(p.CrossSectionForm)
	if p.Layers != nil {
		q.Layers = make([]Layer, len(p.Layers))
	}
	for i, l := range p.Layers {
		ql := &q.Layers[i]
		setLayer(ql, recLayer[p.Header.Form].Quantize(layerValues(l)))
		ql.Gases = make(map[Gas]float64, len(l.Gases))
		for g, a := range l.Gases {
			if a = gas.Quantize(a); a != 0 {
				ql.Gases[g] = a
			}
		}
		ql.Broadening = gas.Quantize(l.Broadening)
		if !hasXS {
			continue
		}
		ql.CrossSections = make(map[string]float64, len(l.CrossSections))
		for name, a := range l.CrossSections {
			if a = xs.Quantize(a); a != 0 {
				ql.CrossSections[strings.TrimRight(name, " ")] = a
			}
		}
		ql.CrossSectionBroadening = xs.Quantize(l.CrossSectionBroadening)
	}
	return q, nil
}

func quantizeHeader(h Header) Header {
	h.Title = strings.TrimRight(h.Title, " ")
	tbound, _ := recSurface.Field("TBOUND")
	h.SurfaceTemperature = tbound.Quantize(h.SurfaceTemperature)
	for i, x := range h.Emissivity {
		f, _ := recSurface.Field(emissivityName(i))
		h.Emissivity[i] = f.Quantize(x)
	}
	return h
}

func trimNames(names []string) []string {
	o := make([]string, len(names))
	for i, n := range names {
		o[i] = strings.TrimRight(n, " ")
	}
	return o
}

// quantizeReals rounds x to the precision of f. Empty input gives nil.
func quantizeReals(f record.Field, x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	o := make([]float64, len(x))
	for i, v := range x {
		o[i] = f.Quantize(v)
	}
	return o
}

// quantizeAtmosphere returns a copy of a holding only what Encode writes,
// rounded to the precision it is written with.
func quantizeAtmosphere(a *Atmosphere) *Atmosphere {
	field := func(s *record.Schema, name string) record.Field {
		f, _ := s.Field(name)
		return f
	}
	q := &Atmosphere{
		Model:        a.Model,
		NoPrint:      a.NoPrint,
		NumMolecules: a.NumMolecules,
		Punch:        a.Punch,
		Units:        a.Units,
		EarthRadius:  field(recAtmosphere, "RE").Quantize(a.EarthRadius),
		CO2:          field(recAtmosphere, "CO2MX").Quantize(a.CO2),
		Bottom:       field(recColumn, "HBOUND").Quantize(a.Bottom),
		Top:          field(recColumn, "HTOA").Quantize(a.Top),
		Boundaries:   quantizeReals(boundaryField, a.Boundaries),
	}
	if len(q.Boundaries) > 0 {
		q.PressureBoundaries = a.PressureBoundaries
	} else {
		q.Spacing = Spacing{
			Ratio:             field(recSpacing, "AVTRAT").Quantize(a.Spacing.Ratio),
			TemperatureBottom: field(recSpacing, "TDIFF1").Quantize(a.Spacing.TemperatureBottom),
			TemperatureTop:    field(recSpacing, "TDIFF2").Quantize(a.Spacing.TemperatureTop),
			AltitudeBottom:    field(recSpacing, "ALTD1").Quantize(a.Spacing.AltitudeBottom),
			AltitudeTop:       field(recSpacing, "ALTD2").Quantize(a.Spacing.AltitudeTop),
		}
	}

	amount := amountField(0)
	if a.Model == 0 {
		q.ProfileName = strings.TrimRight(a.ProfileName, " ")
	}
	if len(a.Levels) > 0 {
		q.Levels = make([]Level, len(a.Levels))
	}
	for i, l := range a.Levels {
		q.Levels[i] = Level{
			Altitude:        field(recLevel, "ZM").Quantize(l.Altitude),
			Pressure:        field(recLevel, "PM").Quantize(l.Pressure),
			Temperature:     field(recLevel, "TM").Quantize(l.Temperature),
			PressureUnit:    strings.TrimRight(l.PressureUnit, " "),
			TemperatureUnit: strings.TrimRight(l.TemperatureUnit, " "),
			Units:           strings.TrimRight(l.Units, " "),
			Amounts:         quantizeReals(amount, l.Amounts),
		}
	}

	if len(a.CrossSections) == 0 {
		return q
	}
	q.CrossSections = trimNames(a.CrossSections)
	q.CrossSectionBins = a.CrossSectionBins
	xp := a.CrossSectionProfile
	if xp == nil {
		return q
	}
	q.CrossSectionProfile = &CrossSectionProfile{
		Pressure: xp.Pressure,
		Title:    strings.TrimRight(xp.Title, " "),
	}
	if len(xp.Levels) > 0 {
		q.CrossSectionProfile.Levels = make([]CrossSectionLevel, len(xp.Levels))
	}
	for i, l := range xp.Levels {
		q.CrossSectionProfile.Levels[i] = CrossSectionLevel{
			Coordinate: field(recXSLevel, "ZORP").Quantize(l.Coordinate),
			Units:      strings.TrimRight(l.Units, " "),
			Amounts:    quantizeReals(amount, l.Amounts),
		}
	}
	return q
}
