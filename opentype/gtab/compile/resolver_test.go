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

package compile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandNameRangeAlpha(t *testing.T) {
	names, ok := expandNameRange("glyphA", "glyphD")
	if !ok {
		t.Fatalf("expandNameRange returned ok=false")
	}
	want := []string{"glyphA", "glyphB", "glyphC", "glyphD"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("unexpected expansion (-want +got):\n%s", diff)
	}
}

func TestExpandNameRangeNumericZeroPadded(t *testing.T) {
	names, ok := expandNameRange("cid00008", "cid00011")
	if !ok {
		t.Fatalf("expandNameRange returned ok=false")
	}
	want := []string{"cid00008", "cid00009", "cid00010", "cid00011"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("unexpected expansion (-want +got):\n%s", diff)
	}
}

func TestExpandNameRangeRejectsBackwardsRange(t *testing.T) {
	if _, ok := expandNameRange("glyphD", "glyphA"); ok {
		t.Errorf("expandNameRange should reject a backwards range")
	}
	if _, ok := expandNameRange("cid9", "cid3"); ok {
		t.Errorf("expandNameRange should reject a backwards numeric range")
	}
}

func TestExpandNameRangeRejectsMismatchedShapes(t *testing.T) {
	if _, ok := expandNameRange("glyphA", "glyph99"); ok {
		t.Errorf("expandNameRange should reject mixing alpha and numeric middles")
	}
	if _, ok := expandNameRange("foo", "bar"); ok {
		t.Errorf("expandNameRange should reject names with no shared affix structure")
	}
}

func TestExpandNameRangeRejectsDigitAdjacentToLetterDiff(t *testing.T) {
	// "A1.hi" and "B1.hi" look like they differ only in a single leading
	// letter, but that letter sits right next to a matching digit ("1"):
	// the diff window must extend outward to absorb it, turning the
	// would-be letter range "A"-"B" into the mixed, unexpandable range
	// "A1"-"B1".
	if _, ok := expandNameRange("A1.hi", "B1.hi"); ok {
		t.Errorf("expandNameRange should reject a range differing in a letter adjacent to a digit")
	}
}

func TestResolveRangeCID(t *testing.T) {
	glyphs := newFakeGlyphMap()
	glyphs.byCID[10] = 100
	glyphs.byCID[11] = 101
	glyphs.byCID[12] = 102

	r := newResolver(glyphs)
	cid10, cid12 := uint32(10), uint32(12)
	node := GlyphOrClassNode{
		IsRange:    true,
		RangeStart: &GlyphOrClassNode{CID: &cid10},
		RangeEnd:   &GlyphOrClassNode{CID: &cid12},
	}

	var diags List
	set := r.resolveRange(node, &diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	want := []uint16{100, 101, 102}
	if len(set.IDs()) != len(want) {
		t.Fatalf("got %d glyphs, want %d", len(set.IDs()), len(want))
	}
	for i, id := range set.IDs() {
		if uint16(id) != want[i] {
			t.Errorf("set.IDs()[%d] = %d, want %d", i, id, want[i])
		}
	}
}

func TestResolveRangeSkipsMissingGlyphsWithWarning(t *testing.T) {
	glyphs := newFakeGlyphMap("glyphA", "glyphC")
	r := newResolver(glyphs)
	node := GlyphOrClassNode{
		IsRange:    true,
		RangeStart: &GlyphOrClassNode{GlyphName: "glyphA"},
		RangeEnd:   &GlyphOrClassNode{GlyphName: "glyphC"},
	}

	var diags List
	set := r.resolveRange(node, &diags)
	if diags.HasErrors() {
		t.Fatalf("missing glyphs inside a range should warn, not error: %v", diags)
	}
	if len(diags) != 1 || diags[0].Severity != Warning {
		t.Fatalf("expected exactly one warning diagnostic, got %v", diags)
	}
	if len(set.IDs()) != 2 {
		t.Fatalf("expected the two present glyphs, got %d", len(set.IDs()))
	}
}
