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

package classdef

import (
	"testing"

	"seehuhn.de/go/fealayout/glyph"
)

func TestNumClasses(t *testing.T) {
	cases := []struct {
		table Table
		want  int
	}{
		{Table{}, 1},
		{Table{5: 0}, 1},
		{Table{5: 2, 6: 1}, 3},
	}
	for _, c := range cases {
		if got := c.table.NumClasses(); got != c.want {
			t.Errorf("Table(%v).NumClasses() = %d, want %d", c.table, got, c.want)
		}
	}
}

func TestEncodeLenMatchesEncode(t *testing.T) {
	cases := []Table{
		{},
		{10: 1, 11: 1, 12: 2},
		{10: 1, 500: 2, 900: 1},
	}
	for _, table := range cases {
		if got, want := table.EncodeLen(), len(table.Encode()); got != want {
			t.Errorf("Table(%v): EncodeLen() = %d, len(Encode()) = %d", table, got, want)
		}
	}
}

func TestBuilder2RejectsConflictingClass(t *testing.T) {
	b := NewBuilder2()
	if !b.CanAdd([]glyph.ID{1, 2}, []glyph.ID{10}) {
		t.Fatalf("CanAdd should succeed on an empty builder")
	}
	b.Add([]glyph.ID{1, 2}, []glyph.ID{10})

	if b.CanAdd([]glyph.ID{2, 3}, []glyph.ID{20}) {
		t.Errorf("CanAdd should reject reassigning glyph 2 to a different side-1 class")
	}
}

func TestBuilder2ReusesIdenticalSet(t *testing.T) {
	b := NewBuilder2()
	c1a, c2a := b.Add([]glyph.ID{1, 2}, []glyph.ID{10})
	c1b, c2b := b.Add([]glyph.ID{2, 1}, []glyph.ID{10})
	if c1a != c1b || c2a != c2b {
		t.Errorf("Add with the same sets (different order) should reuse class ids, got (%d,%d) then (%d,%d)", c1a, c2a, c1b, c2b)
	}
}

func TestBuilder2NumClassesCountsImplicitZero(t *testing.T) {
	b := NewBuilder2()
	n1, n2 := b.NumClasses()
	if n1 != 1 {
		t.Errorf("empty Builder2 side 1 NumClasses = %d, want 1 (implicit class 0)", n1)
	}
	if n2 != 0 {
		t.Errorf("empty Builder2 side 2 NumClasses = %d, want 0", n2)
	}

	b.Add([]glyph.ID{1}, []glyph.ID{2})
	n1, n2 = b.NumClasses()
	if n1 != 2 {
		t.Errorf("side 1 NumClasses after one Add = %d, want 2", n1)
	}
	if n2 != 1 {
		t.Errorf("side 2 NumClasses after one Add = %d, want 1", n2)
	}
}

func TestBuilder2TablesReflectAssignedClasses(t *testing.T) {
	b := NewBuilder2()
	class1, class2 := b.Add([]glyph.ID{5, 6}, []glyph.ID{20})
	t1, t2 := b.Tables()
	if t1[5] != class1 || t1[6] != class1 {
		t.Errorf("side 1 table = %v, want both glyphs mapped to class %d", t1, class1)
	}
	if t2[20] != class2 {
		t.Errorf("side 2 table = %v, want glyph 20 mapped to class %d", t2, class2)
	}
}
