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

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fealayout/glyph"
)

func TestNewAssignsAscendingIndices(t *testing.T) {
	table := New([]glyph.ID{30, 10, 20})
	want := Table{10: 0, 20: 1, 30: 2}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestNewDeduplicates(t *testing.T) {
	table := New([]glyph.ID{5, 5, 3})
	if len(table) != 2 {
		t.Fatalf("len(table) = %d, want 2", len(table))
	}
}

func TestGlyphsRoundTrip(t *testing.T) {
	in := []glyph.ID{7, 3, 9, 1}
	table := New(in)
	got := table.Glyphs()
	want := []glyph.ID{1, 3, 7, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected glyph order (-want +got):\n%s", diff)
	}
}

func TestEncodeLenMatchesEncode(t *testing.T) {
	cases := [][]glyph.ID{
		nil,
		{5},
		{1, 2, 3, 4}, // contiguous: format 2 wins
		{1, 100, 300}, // sparse: format 1 wins
	}
	for _, glyphs := range cases {
		table := New(glyphs)
		want := table.EncodeLen()
		got := len(table.Encode())
		if got != want {
			t.Errorf("New(%v): EncodeLen() = %d, len(Encode()) = %d", glyphs, want, got)
		}
	}
}

func TestEncodeChoosesFormat2ForContiguousRange(t *testing.T) {
	table := New([]glyph.ID{4, 5, 6, 7})
	data := table.Encode()
	if len(data) < 2 || data[1] != 2 {
		t.Fatalf("Encode() format byte = %d, want 2", data[1])
	}
}

func TestEncodeChoosesFormat1ForSparseGlyphs(t *testing.T) {
	table := New([]glyph.ID{1, 1000, 2000, 3000, 4000})
	data := table.Encode()
	if len(data) < 2 || data[1] != 1 {
		t.Fatalf("Encode() format byte = %d, want 1", data[1])
	}
}
