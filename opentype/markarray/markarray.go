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

// Package markarray contains the MarkArray table shared by the
// mark-to-base, mark-to-ligature and mark-to-mark GPOS lookup types.
package markarray

import "seehuhn.de/go/fealayout/opentype/anchor"

// Record is a single entry of a MarkArray table: the mark-attachment
// class a mark glyph belongs to, together with the anchor point on the
// mark glyph used when attaching it to a base.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#mark-array-table
type Record struct {
	Class  uint16
	Anchor *anchor.Table
}

// EncodeLen returns the number of bytes needed to encode a MarkArray
// holding these records (not counting the anchor tables themselves, which
// are stored at offsets from the MarkArray and encoded separately).
func EncodeLen(records []Record) int {
	return 2 + 4*len(records)
}
