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

	"github.com/ctessum/unit"
	"github.com/spatialmodel/rrtmio/record"
)

// Result is the content of an OUTPUT_RRTM file: the broadband fluxes and,
// when IOUT is 99, the fluxes in each band.
type Result struct {
	Bands []BandFlux
}

// BandFlux holds the fluxes in one spectral interval.
type BandFlux struct {
	// Low and High bound the interval [cm-1].
	Low, High float64

	// Levels holds one entry per level in file order, from the top of
	// the atmosphere down.
	Levels []LevelFlux
}

// LevelFlux holds the fluxes at one level.
type LevelFlux struct {
	Level int

	// Pressure [hPa].
	Pressure float64

	// Upward, Downward and Net fluxes [W/m2].
	Upward   float64
	Downward float64
	Net      float64

	// HeatingRate [K/day].
	HeatingRate float64
}

var wattPerMeter2 = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3}

// NetFluxUnit returns the net flux as a dimensioned value.
func (l LevelFlux) NetFluxUnit() *unit.Unit { return unit.New(l.Net, wattPerMeter2) }

// HeatingRateUnit returns the heating rate as a dimensioned value [K/s].
func (l LevelFlux) HeatingRateUnit() *unit.Unit {
	return unit.New(l.HeatingRate/86400, unit.Dimensions{unit.TemperatureDim: 1, unit.TimeDim: -1})
}

// PressurePa returns the level pressure as a dimensioned value.
func (l LevelFlux) PressurePa() *unit.Unit { return unit.New(l.Pressure*100, unit.Pascal) }

const (
	headingText = " LEVEL    PRESSURE   UPWARD FLUX   DOWNWARD FLUX    NET FLUX       HEATING RATE"
	unitsText   = "             mb          W/m2          W/m2           W/m2          degree/day"
)

var (
	// (1X,'Wavenumbers: ',F6.1,' - ',F6.1,' cm-1')
	recBand = record.Define("band",
		record.Lit(1, " Wavenumbers: "),
		record.Real("LOW", 15, 6, 1).AtLeast(0).In("cm-1"),
		record.Lit(21, " - "),
		record.Real("HIGH", 24, 6, 1).AtLeast(0).In("cm-1"),
		record.Lit(30, " cm-1"),
	)

	// The heading and units lines are identified by one word each; the
	// rest of their text is not read.
	recHeading    = record.Define("heading", record.Lit(2, "LEVEL"))
	recUnits      = record.Define("units", record.Lit(14, "mb"))
	recHeadingOut = record.Define("heading", record.Lit(1, headingText))
	recUnitsOut   = record.Define("units", record.Lit(1, unitsText))

	// (1X,I3,3X,F11.6,4X,1P,2(G12.6,2X),G13.6,3X,G16.9,0P), written with
	// ES edit descriptors in place of G so the text reads back exactly.
	recFluxLevel = record.Define("level",
		record.Int("LEVEL", 2, 3).Within(0, 999),
		record.Real("PRESSURE", 8, 11, 6).AtLeast(0).In("hPa"),
		record.Sci("UPWARD FLUX", 23, 12, 5).In("W/m2"),
		record.Sci("DOWNWARD FLUX", 37, 12, 5).In("W/m2"),
		record.Sci("NET FLUX", 51, 13, 6).In("W/m2"),
		record.Sci("HEATING RATE", 67, 16, 9).In("K/day"),
	)

	recBlockEnd = record.Define("end of block", record.Lit(1, "0"))
)

// DecodeResult parses the text of an OUTPUT_RRTM file. Blank lines between
// blocks are skipped. A file without any block, or that ends inside a
// block, is an error that unwraps to record.ErrUnexpectedEOF.
func DecodeResult(text string) (*Result, error) {
	lines := record.NewLines(text, 0)
	d := &decoder{lines: lines}

	r := new(Result)
	for {
		for {
			line, ok := lines.Peek()
			if !ok || strings.TrimSpace(line) != "" {
				break
			}
			lines.Skip()
		}
		if lines.Done() {
			break
		}
		v, _, err := d.read(recBand)
		if err != nil {
			return nil, err
		}
		b := BandFlux{Low: v.Float("LOW"), High: v.Float("HIGH")}
		if _, _, err := d.read(recHeading); err != nil {
			return nil, err
		}
		if _, _, err := d.read(recUnits); err != nil {
			return nil, err
		}
		for {
			line, ok := lines.Peek()
			if ok && strings.HasPrefix(line, "0") {
				lines.Skip()
				break
			}
			v, _, err := d.read(recFluxLevel)
			if err != nil {
				return nil, err
			}
			b.Levels = append(b.Levels, LevelFlux{
				Level:       v.Int("LEVEL"),
				Pressure:    v.Float("PRESSURE"),
				Upward:      v.Float("UPWARD FLUX"),
				Downward:    v.Float("DOWNWARD FLUX"),
				Net:         v.Float("NET FLUX"),
				HeatingRate: v.Float("HEATING RATE"),
			})
		}
		r.Bands = append(r.Bands, b)
	}
	if len(r.Bands) == 0 {
		return nil, &record.ParseError{
			Location: record.Location{Record: recBand.Name, Line: lines.LineNo()},
			Err:      record.ErrUnexpectedEOF,
			Reason:   "no flux table",
		}
	}
	return r, nil
}

// EncodeResult writes r in the layout of an OUTPUT_RRTM file.
func EncodeResult(r *Result) (string, error) {
	if r == nil {
		return "", fmt.Errorf("rrtmio: nil result")
	}
	e := new(encoder)
	for _, band := range r.Bands {
		if err := e.write(recBand, record.Values{"LOW": band.Low, "HIGH": band.High}); err != nil {
			return "", err
		}
		if err := e.write(recHeadingOut, nil); err != nil {
			return "", err
		}
		if err := e.write(recUnitsOut, nil); err != nil {
			return "", err
		}
		for _, l := range band.Levels {
			if err := e.write(recFluxLevel, record.Values{
				"LEVEL":         l.Level,
				"PRESSURE":      l.Pressure,
				"UPWARD FLUX":   l.Upward,
				"DOWNWARD FLUX": l.Downward,
				"NET FLUX":      l.Net,
				"HEATING RATE":  l.HeatingRate,
			}); err != nil {
				return "", err
			}
		}
		if err := e.write(recBlockEnd, nil); err != nil {
			return "", err
		}
	}
	return e.b.String(), nil
}
