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
	"strings"

	"github.com/spatialmodel/rrtmio/record"
)

// Decode parses the text of an INPUT_RRTM file. Lines before the first
// line that starts with '$' are ignored, as are lines after the '%'
// terminator. Decode returns either a complete profile or an error that
// unwraps to one of the record.Err values and carries the line and
// columns at fault.
func Decode(text string) (*Profile, error) {
	d := &decoder{lines: record.NewLines(text, '%')}
	p, err := d.profile()
	if err != nil {
		return nil, err
	}
	return p, nil
}

type decoder struct {
	lines *record.Lines
}

// read decodes the next line as a record of type s.
func (d *decoder) read(s *record.Schema) (record.Values, int, error) {
	line, n, err := d.lines.Next(s.Name)
	if err != nil {
		return nil, 0, err
	}
	v, err := record.Decode(s, line, n)
	return v, n, err
}

func (d *decoder) profile() (*Profile, error) {
	if err := d.start(); err != nil {
		return nil, err
	}
	p := new(Profile)
	h := &p.Header

	v, _, err := d.read(recTitle)
	if err != nil {
		return nil, err
	}
	h.Title = v.String("CXID")

	if v, _, err = d.read(recControl); err != nil {
		return nil, err
	}
	atm := v.Int("IATM") == 1
	hasXS := v.Int("IXSECT") == 1
	h.Scattering = v.Int("ISCAT")
	h.Angles = v.Int("NUMANGS")
	h.Output = v.Int("IOUT")
	h.Clouds = v.Int("ICLD")

	if v, _, err = d.read(recSurface); err != nil {
		return nil, err
	}
	h.SurfaceTemperature = v.Float("TBOUND")
	h.EmissivityFlag = v.Int("IEMIS")
	h.ReflectFlag = v.Int("IREFLECT")
	for i := range h.Emissivity {
		h.Emissivity[i] = v.Float(emissivityName(i))
	}

	if atm {
		if p.Atmosphere, err = d.atmosphere(hasXS); err != nil {
			return nil, err
		}
	} else if err := d.layers(p, hasXS); err != nil {
		return nil, err
	}
	if err := d.terminator(); err != nil {
		return nil, err
	}
	return p, nil
}

// layers reads records 2.1 to 2.2.5.
func (d *decoder) layers(p *Profile, hasXS bool) error {
	h := &p.Header
	v, _, err := d.read(recLayers)
	if err != nil {
		return err
	}
	h.Form = v.Int("IFORM")
	h.NumMolecules = v.Int("NMOL")
	nlayrs := v.Int("NLAYRS")

	slots := amountSlots(h.NumMolecules, "WKL", "WBROAD")
	p.Layers = make([]Layer, nlayrs)
	for i := range p.Layers {
		l := &p.Layers[i]
		if v, _, err = d.read(recLayer[h.Form]); err != nil {
			return err
		}
		setLayer(l, v)
		x, err := d.amounts(gasRun, amountField(h.Form), slots)
		if err != nil {
			return err
		}
		l.Gases = make(map[Gas]float64)
		for j, a := range x {
			switch m := slotMolecule(j); {
			case m < 0:
				l.Broadening = a
			case a != 0:
				l.Gases[Gases[m]] = a
			}
		}
	}
	if hasXS {
		return d.crossSections(p)
	}
	return nil
}

// atmosphere reads records 3.1 to 3.8.2.
func (d *decoder) atmosphere(hasXS bool) (*Atmosphere, error) {
	a := new(Atmosphere)
	v, _, err := d.read(recAtmosphere)
	if err != nil {
		return nil, err
	}
	a.Model = v.Int("MODEL")
	ibmax := v.Int("IBMAX")
	a.NoPrint = v.Int("NOPRNT")
	a.NumMolecules = v.Int("NMOL")
	a.Punch = v.Int("IPUNCH")
	a.Units = v.Int("MUNITS")
	a.EarthRadius = v.Float("RE")
	a.CO2 = v.Float("CO2MX")

	if v, _, err = d.read(recColumn); err != nil {
		return nil, err
	}
	a.Bottom = v.Float("HBOUND")
	a.Top = v.Float("HTOA")

	switch {
	case ibmax == 0:
		if v, _, err = d.read(recSpacing); err != nil {
			return nil, err
		}
		a.Spacing = Spacing{
			Ratio:             v.Float("AVTRAT"),
			TemperatureBottom: v.Float("TDIFF1"),
			TemperatureTop:    v.Float("TDIFF2"),
			AltitudeBottom:    v.Float("ALTD1"),
			AltitudeTop:       v.Float("ALTD2"),
		}
	case ibmax > 0:
		a.Boundaries, err = d.amounts(boundaryRun, boundaryField, indexed("ZBND", ibmax))
	default:
		a.PressureBoundaries = true
		a.Boundaries, err = d.amounts(boundaryRun, boundaryField, indexed("PBND", -ibmax))
	}
	if err != nil {
		return nil, err
	}

	if a.Model == 0 {
		if v, _, err = d.read(recLevels); err != nil {
			return nil, err
		}
		a.ProfileName = v.String("HMOD")
		a.Levels = make([]Level, v.Int("IMMAX"))
		vmol := indexed("VMOL", a.NumMolecules)
		for i := range a.Levels {
			l := &a.Levels[i]
			if v, _, err = d.read(recLevel); err != nil {
				return nil, err
			}
			l.Altitude = v.Float("ZM")
			l.Pressure = v.Float("PM")
			l.Temperature = v.Float("TM")
			l.PressureUnit = v.String("JCHARP")
			l.TemperatureUnit = v.String("JCHART")
			l.Units = v.String("JCHAR")
			if l.Amounts, err = d.amounts(vmolRun, amountField(0), vmol); err != nil {
				return nil, err
			}
		}
	}

	if !hasXS {
		return a, nil
	}
	if v, _, err = d.read(recXSAtmosphere); err != nil {
		return nil, err
	}
	n := v.Int("IXMOLS")
	a.CrossSectionBins = v.Int("IXSBIN")
	user := v.Int("IPRFL") == 0
	if a.CrossSections, err = d.names(atmNameRun, n); err != nil {
		return nil, err
	}
	if !user {
		return a, nil
	}

	if v, _, err = d.read(recXSProfile); err != nil {
		return nil, err
	}
	xp := &CrossSectionProfile{
		Pressure: v.Int("IZORP") == 1,
		Title:    v.String("XTITLE"),
		Levels:   make([]CrossSectionLevel, v.Int("LAYX")),
	}
	denx := indexed("DENX", n)
	for i := range xp.Levels {
		l := &xp.Levels[i]
		if v, _, err = d.read(recXSLevel); err != nil {
			return nil, err
		}
		l.Coordinate = v.Float("ZORP")
		l.Units = v.String("JCHARX")
		if l.Amounts, err = d.amounts(densityRun, amountField(0), denx); err != nil {
			return nil, err
		}
	}
	a.CrossSectionProfile = xp
	return a, nil
}

// start skips to the first line that starts with '$'.
func (d *decoder) start() error {
	for {
		line, ok := d.lines.Peek()
		if !ok {
			return &record.ParseError{
				Location: record.Location{Record: recTitle.Name, Line: d.lines.LineNo()},
				Err:      record.ErrUnexpectedEOF,
				Reason:   "no line starts with $",
			}
		}
		if strings.HasPrefix(line, "$") {
			return nil
		}
		d.lines.Skip()
	}
}

// amounts reads a continued run of values of the form f with the given
// field names.
func (d *decoder) amounts(run record.Continuation, f record.Field, names []string) ([]float64, error) {
	o := make([]float64, len(names))
	it := run.Iter(len(names))
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		v, _, err := d.read(record.Repeat(ch.Record, names[ch.Lo:ch.Hi], f))
		if err != nil {
			return nil, err
		}
		for i := ch.Lo; i < ch.Hi; i++ {
			o[i] = v.Float(names[i])
		}
	}
	return o, nil
}

// names reads a continued run of n cross-section names.
func (d *decoder) names(run record.Continuation, n int) ([]string, error) {
	fields := indexed("XSNAME", n)
	o := make([]string, n)
	seen := make(map[string]bool, n)
	it := run.Iter(n)
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		s := record.Repeat(ch.Record, fields[ch.Lo:ch.Hi], record.Text("", 0, 10))
		v, line, err := d.read(s)
		if err != nil {
			return nil, err
		}
		for i := ch.Lo; i < ch.Hi; i++ {
			name := v.String(fields[i])
			f, _ := s.Field(fields[i])
			if name == "" || seen[name] {
				return nil, &record.ParseError{
					Location: record.Location{Record: s.Name, Field: f.Name, Line: line, Start: f.Start, End: f.End()},
					Err:      record.ErrMalformedField,
					Reason:   "cross-section names must be unique and not blank",
					Text:     name,
				}
			}
			seen[name] = true
			o[i] = name
		}
	}
	return o, nil
}

func (d *decoder) crossSections(p *Profile) error {
	v, _, err := d.read(recXSCount)
	if err != nil {
		return err
	}
	n := v.Int("IXMOLS")
	if p.CrossSections, err = d.names(nameRun, n); err != nil {
		return err
	}

	if v, _, err = d.read(recXSForm); err != nil {
		return err
	}
	p.CrossSectionForm = v.Int("IFRMX")

	slots := amountSlots(n, "XAMNT", "WBRODX")
	for i := range p.Layers {
		l := &p.Layers[i]
		// The echo of the layer line carries nothing that 2.1.1 did not.
		if _, _, err := d.lines.Next(recLayerEcho[0].Name); err != nil {
			return err
		}
		x, err := d.amounts(xsRun, amountField(p.CrossSectionForm), slots)
		if err != nil {
			return err
		}
		l.CrossSections = make(map[string]float64)
		for j, a := range x {
			switch m := slotMolecule(j); {
			case m < 0:
				l.CrossSectionBroadening = a
			case m < n && a != 0:
				l.CrossSections[p.CrossSections[m]] = a
			}
		}
	}
	return nil
}

// terminator checks that the next line is the '%' record.
func (d *decoder) terminator() error {
	if d.lines.AtTerminator() {
		return nil
	}
	line, n, err := d.lines.Next(terminator.Name)
	if err != nil {
		return err
	}
	_, err = record.Decode(terminator, line, n)
	return err
}

func unsupported(s *record.Schema, field string, line int, reason string) error {
	f, _ := s.Field(field)
	return &record.ParseError{
		Location: record.Location{Record: s.Name, Field: field, Line: line, Start: f.Start, End: f.End()},
		Err:      record.ErrUnsupported,
		Reason:   reason,
	}
}

func setLayer(l *Layer, v record.Values) {
	l.Pressure = v.Float("PAVE")
	l.Temperature = v.Float("TAVE")
	l.AltitudeBottom = v.Float("ALTZ(L-1)")
	l.PressureBottom = v.Float("PZ(L-1)")
	l.TemperatureBottom = v.Float("TZ(L-1)")
	l.AltitudeTop = v.Float("ALTZ(L)")
	l.PressureTop = v.Float("PZ(L)")
	l.TemperatureTop = v.Float("TZ(L)")
}

func layerValues(l Layer) record.Values {
	return record.Values{
		"PAVE":      l.Pressure,
		"TAVE":      l.Temperature,
		"ALTZ(L-1)": l.AltitudeBottom,
		"PZ(L-1)":   l.PressureBottom,
		"TZ(L-1)":   l.TemperatureBottom,
		"ALTZ(L)":   l.AltitudeTop,
		"PZ(L)":     l.PressureTop,
		"TZ(L)":     l.TemperatureTop,
	}
}
