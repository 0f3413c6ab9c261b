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

import "strings"

// Lines is a cursor over the lines of a text file. It is not safe for
// concurrent use; each decode call creates its own.
type Lines struct {
	lines []string
	next  int

	// Terminator, if not zero, is the column-1 character of the line
	// that ends the grammar. Next will not step onto that line.
	Terminator byte
}

// NewLines splits text into lines, removing carriage returns before line
// feeds. A final line feed does not start an extra empty line.
func NewLines(text string, terminator byte) *Lines {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Lines{lines: lines, Terminator: terminator}
}

// Next returns the next line and its 1-based number. record names the
// record type expected on that line and is used in errors. It returns a
// *ParseError wrapping ErrUnexpectedEOF if the input is exhausted or the
// next line is the terminator.
func (l *Lines) Next(record string) (string, int, error) {
	if l.Done() {
		return "", 0, &ParseError{
			Location: Location{Record: record, Line: l.next + 1},
			Err:      ErrUnexpectedEOF,
			Reason:   "input ends before record " + record,
		}
	}
	if l.AtTerminator() {
		return "", 0, &ParseError{
			Location: Location{Record: record, Line: l.next + 1},
			Err:      ErrUnexpectedEOF,
			Reason:   "terminator reached before record " + record,
		}
	}
	line := l.lines[l.next]
	l.next++
	return line, l.next, nil
}

// Peek returns the next line without consuming it.
func (l *Lines) Peek() (string, bool) {
	if l.Done() {
		return "", false
	}
	return l.lines[l.next], true
}

// Skip consumes the next line.
func (l *Lines) Skip() {
	if !l.Done() {
		l.next++
	}
}

// AtTerminator reports whether the next line is the terminator.
func (l *Lines) AtTerminator() bool {
	line, ok := l.Peek()
	return ok && l.Terminator != 0 && len(line) > 0 && line[0] == l.Terminator
}

// Done reports whether all lines have been consumed.
func (l *Lines) Done() bool { return l.next >= len(l.lines) }

// LineNo returns the 1-based number of the next line.
func (l *Lines) LineNo() int { return l.next + 1 }
