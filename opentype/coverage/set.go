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

package coverage

import "seehuhn.de/go/fealayout/glyph"

// Set is a set of glyph IDs, for use where coverage indices are not
// otherwise meaningful (for example GSUB type 1, where the replacement
// glyph is computed from a shared delta rather than looked up by index).
type Set map[glyph.ID]bool

// ToTable converts the set into a Table, assigning indices in increasing
// glyph-ID order.
func (set Set) ToTable() Table {
	glyphs := make([]glyph.ID, 0, len(set))
	for gid := range set {
		glyphs = append(glyphs, gid)
	}
	return New(glyphs)
}
