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

	"seehuhn.de/go/fealayout/opentype/gtab"
)

func scalarValue(v int16) *ValueRecordNode {
	return &ValueRecordNode{Scalar: true, ScalarValue: v}
}

func TestCompileSinglePositioning(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "b")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("kern"),
				Items: []FeatureItem{
					&Rule{
						Kind:   RuleGposSingle,
						Target: []GlyphOrClassNode{glyphNode("a")},
						Value1: scalarValue(50),
					},
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if out.GPOS == nil || len(out.GPOS.Lookups) != 1 {
		t.Fatalf("expected one GPOS lookup, got %+v", out.GPOS)
	}
	sub, ok := out.GPOS.Lookups[0].Subtables[0].(*gtab.Gpos1_2)
	if !ok {
		t.Fatalf("Subtables[0] = %T, want *gtab.Gpos1_2", out.GPOS.Lookups[0].Subtables[0])
	}
	if len(sub.Adjust) != 1 || *sub.Adjust[0].XAdvance != 50 {
		t.Errorf("unexpected adjust values: %+v", sub.Adjust)
	}
}

func TestCompileSinglePositioningVerticalWarns(t *testing.T) {
	glyphs := newFakeGlyphMap("a")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("vkrn"),
				Items: []FeatureItem{
					&Rule{
						Kind:   RuleGposSingle,
						Target: []GlyphOrClassNode{glyphNode("a")},
						Value1: scalarValue(30),
					},
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	sub := out.GPOS.Lookups[0].Subtables[0].(*gtab.Gpos1_2)
	if sub.Adjust[0].XAdvance == nil || *sub.Adjust[0].XAdvance != 30 {
		t.Fatalf("expected XAdvance=30 even in a vertical feature, got %+v", sub.Adjust[0])
	}
	if sub.Adjust[0].YAdvance != nil {
		t.Errorf("expected YAdvance unset, got %v", *sub.Adjust[0].YAdvance)
	}

	foundWarning := false
	for _, d := range diags {
		if d.Severity == Warning {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected a warning about the vertical bare value record")
	}
}

func TestCompileSinglePositioningSplitsExpensiveGroup(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "b", "c", "d", "e", "f", "g")
	classGlyphs := []GlyphOrClassNode{
		glyphNode("a"), glyphNode("b"), glyphNode("c"),
		glyphNode("d"), glyphNode("e"), glyphNode("f"),
	}
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("kern"),
				Items: []FeatureItem{
					&Rule{
						Kind:   RuleGposSingle,
						Target: []GlyphOrClassNode{{InlineGlyphs: classGlyphs}},
						Value1: scalarValue(100),
					},
					&Rule{
						Kind:   RuleGposSingle,
						Target: []GlyphOrClassNode{glyphNode("g")},
						Value1: scalarValue(10),
					},
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	subs := out.GPOS.Lookups[0].Subtables
	if len(subs) != 2 {
		t.Fatalf("len(Subtables) = %d, want 2 (a split-out format-1 group plus a format-2 bucket)", len(subs))
	}

	big, ok := subs[0].(*gtab.Gpos1_1)
	if !ok {
		t.Fatalf("Subtables[0] = %T, want *gtab.Gpos1_1 (the 6-glyph group is expensive enough to split out)", subs[0])
	}
	if len(big.Cov) != 6 || big.Adjust.XAdvance == nil || *big.Adjust.XAdvance != 100 {
		t.Errorf("unexpected split-out subtable: cov size %d, adjust %+v", len(big.Cov), big.Adjust)
	}

	small, ok := subs[1].(*gtab.Gpos1_2)
	if !ok {
		t.Fatalf("Subtables[1] = %T, want *gtab.Gpos1_2 (the lone glyph stays in the format-2 bucket)", subs[1])
	}
	if len(small.Adjust) != 1 || *small.Adjust[0].XAdvance != 10 {
		t.Errorf("unexpected bucket subtable: %+v", small.Adjust)
	}
}

func TestCompileMarkToBase(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "acutecomb")
	tree := &File{
		Items: []TopLevelItem{
			&MarkClassDef{
				Name:   "top",
				Glyphs: GlyphSetNode{Glyphs: []GlyphOrClassNode{glyphNode("acutecomb")}},
				Anchor: AnchorNode{HasCoords: true, X: 250, Y: 500},
			},
			&FeatureBlock{
				Tag: gtab.MustTag("mark"),
				Items: []FeatureItem{
					&Rule{
						Kind:      RuleGposMarkToBase,
						Base:      glyphNode("a"),
						MarkClass: "top",
						EntryAnchor: &AnchorNode{HasCoords: true, X: 300, Y: 700},
					},
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if out.GPOS == nil || len(out.GPOS.Lookups) != 1 {
		t.Fatalf("expected one GPOS lookup, got %+v", out.GPOS)
	}
	sub, ok := out.GPOS.Lookups[0].Subtables[0].(*gtab.Gpos4_1)
	if !ok {
		t.Fatalf("Subtables[0] = %T, want *gtab.Gpos4_1", out.GPOS.Lookups[0].Subtables[0])
	}
	if len(sub.MarkArray) != 1 {
		t.Fatalf("len(MarkArray) = %d, want 1", len(sub.MarkArray))
	}
	if sub.MarkArray[0].Anchor == nil || sub.MarkArray[0].Anchor.X != 250 {
		t.Errorf("mark anchor = %+v, want X=250", sub.MarkArray[0].Anchor)
	}
	if len(sub.BaseArray) != 1 || len(sub.BaseArray[0]) != 1 {
		t.Fatalf("BaseArray = %+v, want one base row with one class column", sub.BaseArray)
	}
	if sub.BaseArray[0][0] == nil || sub.BaseArray[0][0].X != 300 {
		t.Errorf("base anchor = %+v, want X=300", sub.BaseArray[0][0])
	}
}

func TestCompileMarkToBaseUndefinedClassErrors(t *testing.T) {
	glyphs := newFakeGlyphMap("a")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("mark"),
				Items: []FeatureItem{
					&Rule{
						Kind:        RuleGposMarkToBase,
						Base:        glyphNode("a"),
						MarkClass:   "undefined",
						EntryAnchor: &AnchorNode{HasCoords: true, X: 0, Y: 0},
					},
				},
			},
		},
	}

	_, diags := Compile(tree, Options{Glyphs: glyphs})
	if !diags.HasErrors() {
		t.Errorf("expected an error for the undefined mark class")
	}
}
