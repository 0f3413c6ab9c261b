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

package record

import "fmt"

// Continuation describes a run of repeated fields that is split over
// consecutive lines when it exceeds one line's capacity: First fields go
// on the first line, which has record type FirstRecord, and up to Rest
// fields go on each following line, of record type RestRecord. This is
// Fortran format reversion, e.g. (8E10.3) read into more than 8 items.
type Continuation struct {
	First, Rest             int
	FirstRecord, RestRecord string
}

// Chunk is one physical line of a continued run: its record type, its
// 0-based line offset within the run, and the half-open range [Lo, Hi)
// of field indices it carries.
type Chunk struct {
	Record string
	Line   int
	Lo, Hi int
}

// Len returns the number of fields in the chunk.
func (c Chunk) Len() int { return c.Hi - c.Lo }

// Iterator walks the chunks of a run. A run is complete only when all of
// its declared fields have been consumed.
type Iterator struct {
	c    Continuation
	n    int
	next int
	line int
}

// Iter returns an iterator over the chunks of a run of n fields.
// It panics if either line capacity is less than one.
func (c Continuation) Iter(n int) *Iterator {
	if c.First < 1 || c.Rest < 1 {
		panic(fmt.Sprintf("record: invalid continuation capacity %d/%d", c.First, c.Rest))
	}
	return &Iterator{c: c, n: n}
}

// Next returns the next chunk, or false when every field has been
// assigned to a line.
func (it *Iterator) Next() (Chunk, bool) {
	if it.next >= it.n {
		return Chunk{}, false
	}
	capacity, rec := it.c.Rest, it.c.RestRecord
	if it.line == 0 {
		capacity, rec = it.c.First, it.c.FirstRecord
	}
	hi := it.next + capacity
	if hi > it.n {
		hi = it.n
	}
	ch := Chunk{Record: rec, Line: it.line, Lo: it.next, Hi: hi}
	it.next = hi
	it.line++
	return ch, true
}

// Remaining returns the number of fields not yet assigned to a line.
func (it *Iterator) Remaining() int { return it.n - it.next }

// Chunks returns all chunks of a run of n fields.
func (c Continuation) Chunks(n int) []Chunk {
	var o []Chunk
	it := c.Iter(n)
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		o = append(o, ch)
	}
	return o
}

// Lines returns the number of lines a run of n fields occupies.
func (c Continuation) Lines(n int) int { return len(c.Chunks(n)) }
