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

import "github.com/ctessum/unit"

// Profile is the content of an INPUT_RRTM file. The layers are either
// supplied by the user (IATM=0), in Layers and CrossSections, or computed
// by the solver from an atmosphere description (IATM=1), in Atmosphere.
type Profile struct {
	Header Header

	// Atmosphere, if not nil, holds records 3.1 to 3.8.2 and the profile
	// has no user layers.
	Atmosphere *Atmosphere

	// Layers holds the layers in file order.
	Layers []Layer

	// CrossSections names the cross-section molecules (XSNAME) in file
	// order. If it is empty, the file has no cross-section records.
	CrossSections []string

	// CrossSectionForm is IFRMX: 0 writes cross-section amounts as ES10.3,
	// 1 as ES15.7.
	CrossSectionForm int
}

// Header holds the scalar case parameters of an INPUT_RRTM file.
type Header struct {
	// Title is the case identifier of record 1.1 (CXID).
	Title string

	// Scattering is ISCAT: 0 for no scattering, 1 or 2 for DISORT.
	Scattering int

	// Angles is NUMANGS, the number of quadrature angles.
	Angles int

	// Output is IOUT: -1, 0, a band number from 1 to 16, or 99 for all
	// bands.
	Output int

	// Clouds is ICLD: 0 for clear sky, 1 or 2 to read IN_CLD_RRTM.
	Clouds int

	// SurfaceTemperature is TBOUND [K].
	SurfaceTemperature float64

	// EmissivityFlag is IEMIS and ReflectFlag is IREFLECT.
	EmissivityFlag int
	ReflectFlag    int

	// Emissivity holds the surface emissivity in each band (SEMISS).
	Emissivity [16]float64

	// Form is IFORM: 0 writes the layer records as F10.4 and ES10.3,
	// 1 as ES15.7.
	Form int

	// NumMolecules is NMOL, the number of gases given for each layer.
	// If zero, Encode uses the smallest valid value that covers the gases
	// present.
	NumMolecules int
}

// Layer is one user-supplied layer (records 2.1.1 to 2.1.3 and 2.2.3 to
// 2.2.5).
type Layer struct {
	// Pressure (PAVE) [hPa] and Temperature (TAVE) [K] are layer averages.
	Pressure    float64
	Temperature float64

	// Boundary altitudes [km], pressures [hPa] and temperatures [K].
	// Bottom is level L-1 and Top is level L.
	AltitudeBottom    float64
	PressureBottom    float64
	TemperatureBottom float64
	AltitudeTop       float64
	PressureTop       float64
	TemperatureTop    float64

	// Gases holds the column amount of each gas (WKL), in molecules/cm2
	// or as a volume mixing ratio. A missing gas has an amount of zero.
	Gases map[Gas]float64

	// Broadening is WBROAD, the column amount of broadening gases.
	Broadening float64

	// CrossSections holds the amount of each cross-section molecule
	// (XAMNT), keyed by name. It is only used when the profile has
	// cross sections.
	CrossSections map[string]float64

	// CrossSectionBroadening is WBRODX.
	CrossSectionBroadening float64
}

// Thickness returns the layer thickness [km].
func (l Layer) Thickness() float64 { return l.AltitudeTop - l.AltitudeBottom }

// PressurePa returns the layer pressure as a dimensioned value.
func (l Layer) PressurePa() *unit.Unit { return unit.New(l.Pressure*100, unit.Pascal) }

// TemperatureK returns the layer temperature as a dimensioned value.
func (l Layer) TemperatureK() *unit.Unit { return unit.New(l.Temperature, unit.Kelvin) }

// ThicknessM returns the layer thickness as a dimensioned value.
func (l Layer) ThicknessM() *unit.Unit { return unit.New(l.Thickness()*1000, unit.Meter) }

// Atmosphere describes a column whose layers the solver computes (IATM=1).
type Atmosphere struct {
	// Model is MODEL: 0 for a user-supplied level profile in Levels, or
	// 1 to 6 for a standard atmosphere.
	Model int

	// NoPrint is NOPRNT, Punch is IPUNCH and Units is MUNITS.
	NoPrint int
	Punch   int
	Units   int

	// NumMolecules is NMOL.
	NumMolecules int

	// EarthRadius is RE [km]; zero selects the solver default.
	EarthRadius float64

	// CO2 is CO2MX, the CO2 mixing ratio [ppmv]; zero selects the solver
	// default.
	CO2 float64

	// Bottom is HBOUND and Top is HTOA, the altitudes [km] of the column
	// boundaries.
	Bottom float64
	Top    float64

	// Boundaries, if not empty, are the layer boundaries of record 3.3B:
	// altitudes [km], or pressures [hPa] if PressureBoundaries is set.
	// Otherwise Spacing (record 3.3A) controls the automatic layering.
	Boundaries         []float64
	PressureBoundaries bool
	Spacing            Spacing

	// ProfileName is HMOD and Levels holds records 3.5 and 3.6.1. They
	// are only used when Model is 0.
	ProfileName string
	Levels      []Level

	// CrossSections names the cross-section molecules of record 3.7.1.
	// If it is empty, the file has no cross-section records.
	CrossSections []string

	// CrossSectionBins is IXSBIN.
	CrossSectionBins int

	// CrossSectionProfile holds records 3.8 to 3.8.2. If it is nil, the
	// solver uses its standard cross-section profiles (IPRFL=1).
	CrossSectionProfile *CrossSectionProfile
}

// Spacing is record 3.3A, the automatic layering parameters.
type Spacing struct {
	Ratio float64 // AVTRAT

	// Temperature [K] and altitude [km] differences allowed across a
	// layer at the bottom and top of the column.
	TemperatureBottom float64 // TDIFF1
	TemperatureTop    float64 // TDIFF2
	AltitudeBottom    float64 // ALTD1
	AltitudeTop       float64 // ALTD2
}

// Level is one level of a user-supplied atmosphere.
type Level struct {
	Altitude    float64 // ZM [km]
	Pressure    float64 // PM
	Temperature float64 // TM

	// PressureUnit (JCHARP) and TemperatureUnit (JCHART) are the unit
	// codes of Pressure and Temperature. Blank means hPa and K.
	PressureUnit    string
	TemperatureUnit string

	// Units is JCHAR, one unit code per molecule.
	Units string

	// Amounts holds VMOL, one value for each of the NumMolecules
	// molecules.
	Amounts []float64
}

// CrossSectionProfile is a user-supplied cross-section profile.
type CrossSectionProfile struct {
	// Pressure is IZORP: false if the levels are given by altitude [km],
	// true if by pressure [hPa].
	Pressure bool

	// Title is XTITLE.
	Title string

	Levels []CrossSectionLevel
}

// CrossSectionLevel is one level of a cross-section profile.
type CrossSectionLevel struct {
	Coordinate float64 // ZORP

	// Units is JCHARX, one unit code per cross section.
	Units string

	// Amounts holds DENX, one value for each cross section.
	Amounts []float64
}
