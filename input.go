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

	"github.com/spatialmodel/rrtmio/record"
)

// Record types of INPUT_RRTM, with column layouts taken from the
// solver's formatted reads.
var (
	recTitle = record.Define("1.1",
		record.Lit(1, "$"),
		record.Text("CXID", 2, 79),
	)

	// (49X,I1,19X,I1,12X,I1,I2,2X,I3,4X,I1)
	recControl = record.Define("1.2",
		record.Int("IATM", 50, 1).OneOf(0, 1),
		record.Int("IXSECT", 70, 1).OneOf(0, 1),
		record.Int("ISCAT", 83, 1).OneOf(0, 1, 2),
		record.Int("NUMANGS", 84, 2).Within(0, 4),
		record.Int("IOUT", 88, 3).OneOf(-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 99),
		record.Int("ICLD", 95, 1).OneOf(0, 1, 2),
	)

	// (F10.3,1X,I1,2X,I1,16F5.3)
	recSurface = record.Define("1.4", append([]record.Field{
		record.Real("TBOUND", 1, 10, 3).AtLeast(0).In("K"),
		record.Int("IEMIS", 12, 1).OneOf(0, 1, 2),
		record.Int("IREFLECT", 15, 1).OneOf(0, 1),
	}, emissivityFields()...)...)

	// (1X,I1,I3,I5)
	recLayers = record.Define("2.1",
		record.Int("IFORM", 2, 1).OneOf(0, 1),
		record.Int("NLAYRS", 3, 3).Within(1, maxLayers),
		record.Int("NMOL", 6, 5).Within(MinMolecules, MaxMolecules),
	)

	// recLayer is record 2.1.1 by IFORM. The boundary altitudes sit in
	// columns the solver skips.
	recLayer = [2]*record.Schema{
		layerSchema("2.1.1", record.Real("PAVE", 1, 10, 4), 0),
		layerSchema("2.1.1", record.Sci("PAVE", 1, 15, 7), 5),
	}

	// recLayerEcho is record 2.2.3, which repeats the layer line before
	// each layer's cross-section amounts.
	recLayerEcho = [2]*record.Schema{
		layerSchema("2.2.3", record.Real("PAVE", 1, 10, 4), 0),
		layerSchema("2.2.3", record.Sci("PAVE", 1, 15, 7), 5),
	}

	// (I5)
	recXSCount = record.Define("2.2",
		record.Int("IXMOLS", 1, 5).Within(1, maxCrossSections),
	)

	// (1X,I1)
	recXSForm = record.Define("2.2.2",
		record.Int("IFRMX", 2, 1).OneOf(0, 1),
	)

	terminator = record.Define("terminator", record.Lit(1, "%"))
)

// Record types read when the solver computes the layers (IATM=1).
var (
	// (I5,5X,I5,5X,I5,I5,I5,3X,I2,F10.3,20X,F10.3)
	recAtmosphere = record.Define("3.1",
		record.Int("MODEL", 1, 5).Within(0, 6),
		record.Int("IBMAX", 11, 5).Within(-maxLayers-1, maxLayers+1),
		record.Int("NOPRNT", 21, 5),
		record.Int("NMOL", 26, 5).Within(1, MaxMolecules),
		record.Int("IPUNCH", 31, 5),
		record.Int("MUNITS", 39, 2),
		record.Real("RE", 41, 10, 3).AtLeast(0).In("km"),
		record.Real("CO2MX", 71, 10, 3).AtLeast(0).In("ppmv"),
	)

	// (2F10.3)
	recColumn = record.Define("3.2",
		record.Real("HBOUND", 1, 10, 3).In("km"),
		record.Real("HTOA", 11, 10, 3).In("km"),
	)

	// (5F10.3)
	recSpacing = record.Define("3.3A",
		record.Real("AVTRAT", 1, 10, 3),
		record.Real("TDIFF1", 11, 10, 3).In("K"),
		record.Real("TDIFF2", 21, 10, 3).In("K"),
		record.Real("ALTD1", 31, 10, 3).In("km"),
		record.Real("ALTD2", 41, 10, 3).In("km"),
	)

	// (I5,3A8)
	recLevels = record.Define("3.4",
		record.Int("IMMAX", 1, 5).Positive(),
		record.Text("HMOD", 6, 24),
	)

	// (3F10.3,5X,A1,A1,3X,28A1)
	recLevel = record.Define("3.5",
		record.Real("ZM", 1, 10, 3).In("km"),
		record.Real("PM", 11, 10, 3).AtLeast(0),
		record.Real("TM", 21, 10, 3).AtLeast(0),
		record.Text("JCHARP", 36, 1),
		record.Text("JCHART", 37, 1),
		record.Text("JCHAR", 41, 28),
	)

	// (3I5)
	recXSAtmosphere = record.Define("3.7",
		record.Int("IXMOLS", 1, 5).Within(1, maxCrossSections),
		record.Int("IPRFL", 6, 5).OneOf(0, 1),
		record.Int("IXSBIN", 11, 5).OneOf(0, 1),
	)

	// (2I5,A50)
	recXSProfile = record.Define("3.8",
		record.Int("LAYX", 1, 5).Positive(),
		record.Int("IZORP", 6, 5).OneOf(0, 1),
		record.Text("XTITLE", 11, 50),
	)

	// (F10.3,5X,35A1)
	recXSLevel = record.Define("3.8.1",
		record.Real("ZORP", 1, 10, 3),
		record.Text("JCHARX", 16, 35),
	)

	// boundaryField is one (8F10.3) layer boundary of record 3.3B.
	boundaryField = record.Real("", 0, 10, 3)
)

const (
	// maxLayers is MXLAY in the solver.
	maxLayers = 203

	// maxCrossSections is MAXXSEC in the solver.
	maxCrossSections = 35
)

// Continued runs: (8E10.3) amounts, (8F10.3) boundaries and
// (7A10,(/,8A10)) names.
var (
	gasRun  = record.Continuation{First: 8, Rest: 8, FirstRecord: "2.1.2", RestRecord: "2.1.3"}
	xsRun   = record.Continuation{First: 8, Rest: 8, FirstRecord: "2.2.4", RestRecord: "2.2.5"}
	nameRun = record.Continuation{First: 7, Rest: 8, FirstRecord: "2.2.1", RestRecord: "2.2.1"}

	boundaryRun = record.Continuation{First: 8, Rest: 8, FirstRecord: "3.3B", RestRecord: "3.3B"}
	vmolRun     = record.Continuation{First: 8, Rest: 8, FirstRecord: "3.6.1", RestRecord: "3.6.2"}
	atmNameRun  = record.Continuation{First: 7, Rest: 8, FirstRecord: "3.7.1", RestRecord: "3.7.1"}
	densityRun  = record.Continuation{First: 8, Rest: 8, FirstRecord: "3.8.2", RestRecord: "3.8.2"}
)

func emissivityFields() []record.Field {
	o := make([]record.Field, 16)
	for i := range o {
		o[i] = record.Real(emissivityName(i), 16+5*i, 5, 3).Within(0, 1)
	}
	return o
}

func emissivityName(i int) string { return fmt.Sprintf("SEMISS(%d)", i+1) }

// indexed returns the field names name(1) to name(n).
func indexed(name string, n int) []string {
	o := make([]string, n)
	for i := range o {
		o[i] = fmt.Sprintf("%s(%d)", name, i+1)
	}
	return o
}

// layerSchema returns the layout of a layer line whose PAVE field is pave.
// Every field after PAVE is shifted right by shift columns.
func layerSchema(name string, pave record.Field, shift int) *record.Schema {
	return record.Define(name,
		pave.Positive().In("hPa"),
		record.Real("TAVE", 11+shift, 10, 4).Positive().In("K"),
		record.Real("ALTZ(L-1)", 37+shift, 7, 2).In("km"),
		record.Real("PZ(L-1)", 44+shift, 8, 3).AtLeast(0).In("hPa"),
		record.Real("TZ(L-1)", 52+shift, 7, 2).AtLeast(0).In("K"),
		record.Real("ALTZ(L)", 59+shift, 7, 2).In("km"),
		record.Real("PZ(L)", 66+shift, 8, 3).AtLeast(0).In("hPa"),
		record.Real("TZ(L)", 74+shift, 7, 2).AtLeast(0).In("K"),
	)
}

// amountField is the format of a gas or cross-section amount by IFORM or
// IFRMX.
func amountField(form int) record.Field {
	if form == 1 {
		return record.Sci("", 0, 15, 7).AtLeast(0)
	}
	return record.Sci("", 0, 10, 3).AtLeast(0)
}

// amountSlots returns the names of the amounts of a layer in the order
// they are written: seven molecules, the broadening amount, then the
// molecules from the eighth on. The first seven slots are always present.
func amountSlots(n int, molecule, broadening string) []string {
	if n < 7 {
		n = 7
	}
	o := make([]string, 0, n+1)
	for m := 1; m <= n; m++ {
		if m == 8 {
			o = append(o, broadening)
		}
		o = append(o, fmt.Sprintf("%s(%d)", molecule, m))
	}
	if n == 7 {
		o = append(o, broadening)
	}
	return o
}

// slotMolecule returns the 0-based molecule index held by amount slot i,
// or -1 for the broadening slot.
func slotMolecule(i int) int {
	switch {
	case i < 7:
		return i
	case i == 7:
		return -1
	default:
		return i - 1
	}
}
