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
	"sort"
	"strings"

	"github.com/spatialmodel/rrtmio/record"
)

// Encode writes p as the text of an INPUT_RRTM file, ending with the '%'
// terminator. Every field is written in exactly its declared columns. A
// value that cannot be written in its columns at full precision is a
// *record.FormatError and a value outside its field's range is a
// *record.SchemaError; nothing is truncated or rounded. Use Quantize
// first to round a profile to the precision of the format.
//
// Decode(Encode(p)) equals p only for a profile in the form Quantize
// returns. Otherwise nil maps come back empty, a zero NumMolecules comes
// back as the value Encode derived, zero amounts are dropped and labels
// lose their trailing blanks.
func Encode(p *Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("rrtmio: nil profile")
	}
	e := new(encoder)
	if err := e.profile(p); err != nil {
		return "", err
	}
	return e.b.String(), nil
}

type encoder struct {
	b    strings.Builder
	line int
}

// write encodes v as the next line.
func (e *encoder) write(s *record.Schema, v record.Values) error {
	e.line++
	text, err := record.Encode(s, v, e.line)
	if err != nil {
		return err
	}
	e.b.WriteString(text)
	e.b.WriteByte('\n')
	return nil
}

func (e *encoder) profile(p *Profile) error {
	if err := checkForm(p); err != nil {
		return err
	}
	h := p.Header
	if a := p.Atmosphere; a != nil {
		if err := e.header(h, 1, len(a.CrossSections) > 0); err != nil {
			return err
		}
		if err := e.atmosphere(a); err != nil {
			return err
		}
		return e.write(terminator, nil)
	}

	nmol, err := numMolecules(p)
	if err != nil {
		return err
	}
	hasXS := len(p.CrossSections) > 0
	if err := e.header(h, 0, hasXS); err != nil {
		return err
	}
	if err := e.write(recLayers, record.Values{
		"IFORM":  h.Form,
		"NLAYRS": len(p.Layers),
		"NMOL":   nmol,
	}); err != nil {
		return err
	}

	slots := amountSlots(nmol, "WKL", "WBROAD")
	for _, l := range p.Layers {
		if err := e.write(recLayer[h.Form], layerValues(l)); err != nil {
			return err
		}
		x := make([]float64, len(slots))
		for g, a := range l.Gases {
			x[slotOf(g.Index())] = a
		}
		x[7] = l.Broadening
		if err := e.amounts(gasRun, amountField(h.Form), slots, x); err != nil {
			return err
		}
	}

	if hasXS {
		if err := e.crossSections(p); err != nil {
			return err
		}
	}
	return e.write(terminator, nil)
}

// checkForm makes sure a profile uses only one of the two layer forms.
func checkForm(p *Profile) error {
	if p.Atmosphere == nil || len(p.Layers) == 0 && len(p.CrossSections) == 0 {
		return nil
	}
	f, _ := recControl.Field("IATM")
	return &record.SchemaError{
		Location: record.Location{Record: recControl.Name, Field: f.Name, Line: 2, Start: f.Start, End: f.End()},
		Err:      record.ErrMalformedField,
		Reason:   "a profile with an atmosphere cannot also have user layers or cross sections",
	}
}

// header writes records 1.1 to 1.4.
func (e *encoder) header(h Header, iatm int, hasXS bool) error {
	ixsect := 0
	if hasXS {
		ixsect = 1
	}
	if err := e.write(recTitle, record.Values{"CXID": h.Title}); err != nil {
		return err
	}
	if err := e.write(recControl, record.Values{
		"IATM":    iatm,
		"IXSECT":  ixsect,
		"ISCAT":   h.Scattering,
		"NUMANGS": h.Angles,
		"IOUT":    h.Output,
		"ICLD":    h.Clouds,
	}); err != nil {
		return err
	}
	v := record.Values{
		"TBOUND":   h.SurfaceTemperature,
		"IEMIS":    h.EmissivityFlag,
		"IREFLECT": h.ReflectFlag,
	}
	for i, x := range h.Emissivity {
		v[emissivityName(i)] = x
	}
	return e.write(recSurface, v)
}

// slotOf returns the amount slot of 0-based molecule index m.
func slotOf(m int) int {
	if m < 7 {
		return m
	}
	return m + 1
}

// numMolecules returns NMOL for p, checking that every gas in every layer
// is known and within NMOL.
func numMolecules(p *Profile) (int, error) {
	nmol := p.Header.NumMolecules
	highest := MinMolecules
	for i, l := range p.Layers {
		for _, g := range sortedGases(l.Gases) {
			m := g.Index()
			if m < 0 {
				return 0, &record.SchemaError{
					Location: record.Location{Record: gasRun.FirstRecord, Field: string(g)},
					Err:      record.ErrUnknownField,
					Reason:   fmt.Sprintf("layer %d has unknown gas %q", i+1, g),
				}
			}
			if m+1 > highest {
				highest = m + 1
			}
			if nmol != 0 && m >= nmol {
				return 0, &record.SchemaError{
					Location: record.Location{Record: gasRun.FirstRecord, Field: string(g)},
					Err:      record.ErrOutOfRange,
					Reason:   fmt.Sprintf("layer %d has gas %s, which needs NMOL >= %d but NMOL is %d", i+1, g, m+1, nmol),
				}
			}
		}
	}
	if nmol == 0 {
		nmol = highest
	}
	return nmol, nil
}

func sortedGases(m map[Gas]float64) []Gas {
	o := make([]Gas, 0, len(m))
	for g := range m {
		o = append(o, g)
	}
	sort.Slice(o, func(i, j int) bool { return o[i] < o[j] })
	return o
}

func sortedNames(m map[string]float64) []string {
	o := make([]string, 0, len(m))
	for n := range m {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}

// amounts writes a continued run of values x of the form f with the
// given field names.
func (e *encoder) amounts(run record.Continuation, f record.Field, names []string, x []float64) error {
	it := run.Iter(len(names))
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		v := make(record.Values, ch.Len())
		for i := ch.Lo; i < ch.Hi; i++ {
			v[names[i]] = x[i]
		}
		if err := e.write(record.Repeat(ch.Record, names[ch.Lo:ch.Hi], f), v); err != nil {
			return err
		}
	}
	return nil
}

// names writes a continued run of cross-section names and returns the
// index of each name. A name must not be blank or repeated and must not
// end in a blank, which Decode would drop. A name that starts a line must
// not start with '%', or the line would read as the terminator.
func (e *encoder) names(run record.Continuation, names []string) (map[string]int, error) {
	n := len(names)
	index := make(map[string]int, n)
	fields := indexed("XSNAME", n)
	it := run.Iter(n)
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		s := record.Repeat(ch.Record, fields[ch.Lo:ch.Hi], record.Text("", 0, 10))
		v := make(record.Values, ch.Len())
		for i := ch.Lo; i < ch.Hi; i++ {
			name := names[i]
			var reason string
			switch _, dup := index[name]; {
			case strings.TrimSpace(name) == "":
				reason = "is blank"
			case dup:
				reason = "is repeated"
			case i == ch.Lo && strings.HasPrefix(name, "%"):
				reason = "starts a line with the terminator %"
			case strings.TrimRight(name, " ") != name:
				reason = "ends in a blank"
			}
			if reason != "" {
				f, _ := s.Field(fields[i])
				return nil, &record.SchemaError{
					Location: record.Location{Record: s.Name, Field: f.Name, Line: e.line + 1, Start: f.Start, End: f.End()},
					Err:      record.ErrMalformedField,
					Reason:   fmt.Sprintf("cross-section name %q %s", name, reason),
				}
			}
			index[name] = i
			v[fields[i]] = name
		}
		if err := e.write(s, v); err != nil {
			return nil, err
		}
	}
	return index, nil
}

func (e *encoder) crossSections(p *Profile) error {
	n := len(p.CrossSections)
	if err := e.write(recXSCount, record.Values{"IXMOLS": n}); err != nil {
		return err
	}
	index, err := e.names(nameRun, p.CrossSections)
	if err != nil {
		return err
	}
	if err := e.write(recXSForm, record.Values{"IFRMX": p.CrossSectionForm}); err != nil {
		return err
	}

	slots := amountSlots(n, "XAMNT", "WBRODX")
	for li, l := range p.Layers {
		if err := e.write(recLayerEcho[p.Header.Form], layerValues(l)); err != nil {
			return err
		}
		x := make([]float64, len(slots))
		for _, name := range sortedNames(l.CrossSections) {
			m, ok := index[name]
			if !ok {
				return &record.SchemaError{
					Location: record.Location{Record: xsRun.FirstRecord, Field: name, Line: e.line + 1},
					Err:      record.ErrUnknownField,
					Reason:   fmt.Sprintf("layer %d has an amount of %q, which is not a cross section of the profile", li+1, name),
				}
			}
			x[slotOf(m)] = l.CrossSections[name]
		}
		x[7] = l.CrossSectionBroadening
		if err := e.amounts(xsRun, amountField(p.CrossSectionForm), slots, x); err != nil {
			return err
		}
	}
	return nil
}

// atmosphere writes records 3.1 to 3.8.2.
func (e *encoder) atmosphere(a *Atmosphere) error {
	if a.Model != 0 && len(a.Levels) > 0 {
		f, _ := recAtmosphere.Field("MODEL")
		return &record.SchemaError{
			Location: record.Location{Record: recAtmosphere.Name, Field: f.Name, Line: e.line + 1, Start: f.Start, End: f.End()},
			Err:      record.ErrMalformedField,
			Reason:   fmt.Sprintf("MODEL=%d selects a standard atmosphere but %d levels are given", a.Model, len(a.Levels)),
		}
	}
	bnd, ibmax := "ZBND", len(a.Boundaries)
	if a.PressureBoundaries {
		bnd, ibmax = "PBND", -ibmax
	}
	if err := e.write(recAtmosphere, record.Values{
		"MODEL":  a.Model,
		"IBMAX":  ibmax,
		"NOPRNT": a.NoPrint,
		"NMOL":   a.NumMolecules,
		"IPUNCH": a.Punch,
		"MUNITS": a.Units,
		"RE":     a.EarthRadius,
		"CO2MX":  a.CO2,
	}); err != nil {
		return err
	}
	if err := e.write(recColumn, record.Values{"HBOUND": a.Bottom, "HTOA": a.Top}); err != nil {
		return err
	}
	var err error
	if ibmax == 0 {
		err = e.write(recSpacing, record.Values{
			"AVTRAT": a.Spacing.Ratio,
			"TDIFF1": a.Spacing.TemperatureBottom,
			"TDIFF2": a.Spacing.TemperatureTop,
			"ALTD1":  a.Spacing.AltitudeBottom,
			"ALTD2":  a.Spacing.AltitudeTop,
		})
	} else {
		err = e.amounts(boundaryRun, boundaryField, indexed(bnd, len(a.Boundaries)), a.Boundaries)
	}
	if err != nil {
		return err
	}

	if a.Model == 0 {
		if err := e.write(recLevels, record.Values{"IMMAX": len(a.Levels), "HMOD": a.ProfileName}); err != nil {
			return err
		}
		vmol := indexed("VMOL", a.NumMolecules)
		for i, l := range a.Levels {
			if err := e.write(recLevel, record.Values{
				"ZM":     l.Altitude,
				"PM":     l.Pressure,
				"TM":     l.Temperature,
				"JCHARP": l.PressureUnit,
				"JCHART": l.TemperatureUnit,
				"JCHAR":  l.Units,
			}); err != nil {
				return err
			}
			if len(l.Amounts) != a.NumMolecules {
				return e.countError(vmolRun, fmt.Sprintf("level %d has %d amounts but NMOL is %d", i+1, len(l.Amounts), a.NumMolecules))
			}
			if err := e.amounts(vmolRun, amountField(0), vmol, l.Amounts); err != nil {
				return err
			}
		}
	}

	n := len(a.CrossSections)
	xp := a.CrossSectionProfile
	if n == 0 {
		if xp != nil {
			return &record.SchemaError{
				Location: record.Location{Record: recXSProfile.Name, Line: e.line + 1},
				Err:      record.ErrMalformedField,
				Reason:   "a cross-section profile needs cross sections",
			}
		}
		return nil
	}
	iprfl := 1
	if xp != nil {
		iprfl = 0
	}
	if err := e.write(recXSAtmosphere, record.Values{
		"IXMOLS": n,
		"IPRFL":  iprfl,
		"IXSBIN": a.CrossSectionBins,
	}); err != nil {
		return err
	}
	if _, err := e.names(atmNameRun, a.CrossSections); err != nil {
		return err
	}
	if xp == nil {
		return nil
	}

	izorp := 0
	if xp.Pressure {
		izorp = 1
	}
	if err := e.write(recXSProfile, record.Values{
		"LAYX":   len(xp.Levels),
		"IZORP":  izorp,
		"XTITLE": xp.Title,
	}); err != nil {
		return err
	}
	denx := indexed("DENX", n)
	for i, l := range xp.Levels {
		if err := e.write(recXSLevel, record.Values{"ZORP": l.Coordinate, "JCHARX": l.Units}); err != nil {
			return err
		}
		if len(l.Amounts) != n {
			return e.countError(densityRun, fmt.Sprintf("cross-section level %d has %d amounts but there are %d cross sections", i+1, len(l.Amounts), n))
		}
		if err := e.amounts(densityRun, amountField(0), denx, l.Amounts); err != nil {
			return err
		}
	}
	return nil
}

// countError reports a run whose length does not match its count field.
func (e *encoder) countError(run record.Continuation, reason string) error {
	return &record.SchemaError{
		Location: record.Location{Record: run.FirstRecord, Line: e.line + 1},
		Err:      record.ErrMalformedField,
		Reason:   reason,
	}
}
