// seehuhn.de/go/fealayout - a feature-definition compiler for OpenType fonts
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package anchor contains the Anchor table used by mark-attachment and
// cursive-attachment GPOS lookups.
package anchor

import "seehuhn.de/go/postscript/funit"

// Format distinguishes the three shapes an Anchor table can take.
type Format uint8

const (
	// FormatCoord is a plain (x, y) anchor (OpenType AnchorFormat1).
	FormatCoord Format = 1
	// FormatContour is an (x, y) anchor tied to an outline point index,
	// for hinted anchors that must track point movement (AnchorFormat2).
	FormatContour Format = 2
)

// Table is an OpenType "Anchor Table". The zero value (a nil *Table) is the
// Null anchor variant: "no attachment point here".
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#anchor-tables
type Table struct {
	X, Y funit.Int16

	// Contour is the outline point index used by FormatContour anchors; it
	// is ignored for FormatCoord.
	Contour uint16

	Format Format
}

// IsEmpty reports whether a is the Null anchor.
func (a *Table) IsEmpty() bool {
	return a == nil
}

// EncodeLen returns the number of bytes needed to encode the table. Null
// anchors (a nil pointer) encode to zero bytes; callers are responsible for
// only storing an offset when EncodeLen is non-zero.
func (a *Table) EncodeLen() int {
	if a == nil {
		return 0
	}
	if a.Format == FormatContour {
		return 8
	}
	return 6
}

// Encode returns the binary representation of the table.
func (a *Table) Encode() []byte {
	if a == nil {
		return nil
	}
	if a.Format == FormatContour {
		buf := make([]byte, 8)
		buf[1] = 2
		buf[2] = byte(a.X >> 8)
		buf[3] = byte(a.X)
		buf[4] = byte(a.Y >> 8)
		buf[5] = byte(a.Y)
		buf[6] = byte(a.Contour >> 8)
		buf[7] = byte(a.Contour)
		return buf
	}
	buf := make([]byte, 6)
	buf[1] = 1
	buf[2] = byte(a.X >> 8)
	buf[3] = byte(a.X)
	buf[4] = byte(a.Y >> 8)
	buf[5] = byte(a.Y)
	return buf
}

// Coord returns a plain coordinate anchor.
func Coord(x, y funit.Int16) *Table {
	return &Table{X: x, Y: y, Format: FormatCoord}
}

// Contour returns an outline-point anchor.
func Contour(x, y funit.Int16, point uint16) *Table {
	return &Table{X: x, Y: y, Contour: point, Format: FormatContour}
}
