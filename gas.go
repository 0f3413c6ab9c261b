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

import "fmt"

// Gas is a HITRAN molecule that the solver carries as a layer amount.
type Gas string

// The gases in HITRAN order. The first seven are always present in a
// profile; the rest are read when NMOL is large enough to reach them.
const (
	H2O    Gas = "H2O"
	CO2    Gas = "CO2"
	O3     Gas = "O3"
	N2O    Gas = "N2O"
	CO     Gas = "CO"
	CH4    Gas = "CH4"
	O2     Gas = "O2"
	NO     Gas = "NO"
	SO2    Gas = "SO2"
	NO2    Gas = "NO2"
	NH3    Gas = "NH3"
	HNO3   Gas = "HNO3"
	OH     Gas = "OH"
	HF     Gas = "HF"
	HCl    Gas = "HCl"
	HBr    Gas = "HBr"
	HI     Gas = "HI"
	ClO    Gas = "ClO"
	OCS    Gas = "OCS"
	H2CO   Gas = "H2CO"
	HOCl   Gas = "HOCl"
	N2     Gas = "N2"
	HCN    Gas = "HCN"
	CH3Cl  Gas = "CH3Cl"
	H2O2   Gas = "H2O2"
	C2H2   Gas = "C2H2"
	C2H6   Gas = "C2H6"
	PH3    Gas = "PH3"
	COF2   Gas = "COF2"
	SF6    Gas = "SF6"
	H2S    Gas = "H2S"
	HCOOH  Gas = "HCOOH"
	HO2    Gas = "HO2"
	AtomO  Gas = "O"
	ClONO2 Gas = "ClONO2"
	NOPlus Gas = "NO+"
	HOBr   Gas = "HOBr"
	C2H4   Gas = "C2H4"
)

// Gases lists every gas in HITRAN order. The position of a gas in this
// list is its molecule number minus one.
var Gases = []Gas{
	H2O, CO2, O3, N2O, CO, CH4, O2, NO, SO2, NO2, NH3, HNO3, OH, HF, HCl, HBr,
	HI, ClO, OCS, H2CO, HOCl, N2, HCN, CH3Cl, H2O2, C2H2, C2H6, PH3, COF2, SF6,
	H2S, HCOOH, HO2, AtomO, ClONO2, NOPlus, HOBr, C2H4,
}

// MinMolecules and MaxMolecules bound NMOL.
const (
	MinMolecules = 7
	MaxMolecules = 38
)

var gasIndex = func() map[Gas]int {
	m := make(map[Gas]int, len(Gases))
	for i, g := range Gases {
		m[g] = i
	}
	return m
}()

// Index returns the 0-based HITRAN position of g, or -1 if g is not a
// known gas.
func (g Gas) Index() int {
	i, ok := gasIndex[g]
	if !ok {
		return -1
	}
	return i
}

// ParseGas returns the gas with the given name.
func ParseGas(name string) (Gas, error) {
	g := Gas(name)
	if g.Index() < 0 {
		return "", fmt.Errorf("rrtmio: unknown gas %q", name)
	}
	return g, nil
}
