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

// Package rrtmio reads and writes the fixed-column text files of the RRTM
// longwave radiative transfer model.
//
// Decode and Encode translate between a Profile and the INPUT_RRTM file:
// the case header, then either one block of records per user-supplied
// layer (IATM=0) with the gas amounts continued over as many lines as
// NMOL requires, or an Atmosphere from which the solver computes the
// layers (IATM=1), then optional cross-section records and the '%'
// terminator. DecodeCloud and EncodeCloud do the same for IN_CLD_RRTM,
// and DecodeResult reads the flux and heating-rate tables of OUTPUT_RRTM.
//
// Every function is stateless and safe for concurrent use. Errors carry
// the record type, field, line and columns at fault; see package record.
package rrtmio
