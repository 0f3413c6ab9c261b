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

// Package record reads and writes fixed-column text records of the kind
// produced by Fortran formatted I/O.
//
// A Schema lists the Fields of one record type by column span. Encode
// writes every field in exactly its declared width and fails rather than
// truncate; Decode reads the columns back following the Fortran input
// rules (blank is zero, implied decimal point, E, D or bare-sign
// exponents). Every error carries the record type, field, line and
// column span, and unwraps to one of the Err values so callers can use
// errors.Is.
package record
