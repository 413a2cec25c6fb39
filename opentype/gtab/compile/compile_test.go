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

	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/coverage"
	"seehuhn.de/go/fealayout/opentype/gtab"
)

// fakeGlyphMap is a minimal [GlyphMap] backed by an explicit name table,
// for tests that need a font's glyph set without loading a real font.
type fakeGlyphMap struct {
	byName map[string]glyph.ID
	byCID  map[uint32]glyph.ID
}

func newFakeGlyphMap(names ...string) *fakeGlyphMap {
	m := &fakeGlyphMap{byName: map[string]glyph.ID{}, byCID: map[uint32]glyph.ID{}}
	for i, n := range names {
		m.byName[n] = glyph.ID(i + 1)
	}
	return m
}

func (m *fakeGlyphMap) GlyphID(name string) (glyph.ID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *fakeGlyphMap) CIDToGID(cid uint32) (glyph.ID, bool) {
	id, ok := m.byCID[cid]
	return id, ok
}

func glyphNode(name string) GlyphOrClassNode {
	return GlyphOrClassNode{GlyphName: name}
}

func singleSubRule(target, repl string) *Rule {
	return &Rule{
		Kind:        RuleGsubSingle,
		Target:      []GlyphOrClassNode{glyphNode(target)},
		Replacement: []GlyphOrClassNode{glyphNode(repl)},
	}
}

func TestCompileSingleSubstitutionFeature(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "b", "a.sc", "b.sc")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("smcp"),
				Items: []FeatureItem{
					singleSubRule("a", "a.sc"),
					singleSubRule("b", "b.sc"),
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if out.GPOS != nil {
		t.Fatalf("expected no GPOS table, got %+v", out.GPOS)
	}
	if out.GSUB == nil {
		t.Fatalf("expected a GSUB table")
	}
	if len(out.GSUB.Lookups) != 1 {
		t.Fatalf("len(Lookups) = %d, want 1", len(out.GSUB.Lookups))
	}

	lookup := out.GSUB.Lookups[0]
	if lookup.Meta.LookupType != gsubLookupTypeSingle {
		t.Errorf("LookupType = %d, want %d", lookup.Meta.LookupType, gsubLookupTypeSingle)
	}
	if len(lookup.Subtables) != 1 {
		t.Fatalf("len(Subtables) = %d, want 1 (both rules should merge)", len(lookup.Subtables))
	}

	sub, ok := lookup.Subtables[0].(*gtab.Gsub1_1)
	if !ok {
		t.Fatalf("Subtables[0] = %T, want *gtab.Gsub1_1 (uniform +2 delta)", lookup.Subtables[0])
	}
	if sub.Delta != 2 {
		t.Errorf("Delta = %d, want 2", sub.Delta)
	}

	if len(out.GSUB.Features) != 1 || out.GSUB.Features[0].Tag != gtab.MustTag("smcp") {
		t.Fatalf("Features = %+v, want one smcp entry", out.GSUB.Features)
	}

	wantCov := coverage.New([]glyph.ID{1, 2}) // "a", "b"
	if diff := cmp.Diff(wantCov, sub.Cov); diff != "" {
		t.Errorf("coverage mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileSubtableBreakSplitsLookup(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "b", "a.sc", "b.sc")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("smcp"),
				Items: []FeatureItem{
					singleSubRule("a", "a.sc"),
					&SubtableStmt{},
					singleSubRule("b", "b.sc"),
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if len(out.GSUB.Lookups[0].Subtables) != 2 {
		t.Fatalf("len(Subtables) = %d, want 2 (explicit subtable; break)", len(out.GSUB.Lookups[0].Subtables))
	}
}

func TestCompileUndefinedGlyphReportsError(t *testing.T) {
	glyphs := newFakeGlyphMap("a")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag:   gtab.MustTag("test"),
				Items: []FeatureItem{singleSubRule("a", "missing")},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if !diags.HasErrors() {
		t.Fatalf("expected an error diagnostic for the missing glyph")
	}
	if out != nil {
		t.Fatalf("expected nil output when compilation has errors, got %+v", out)
	}
}

func TestCompileLigatureSubstitution(t *testing.T) {
	glyphs := newFakeGlyphMap("f", "i", "fi")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("liga"),
				Items: []FeatureItem{
					&Rule{
						Kind:        RuleGsubLigature,
						Target:      []GlyphOrClassNode{glyphNode("f"), glyphNode("i")},
						Replacement: []GlyphOrClassNode{glyphNode("fi")},
					},
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	lookup := out.GSUB.Lookups[0]
	if lookup.Meta.LookupType != gsubLookupTypeLigature {
		t.Fatalf("LookupType = %d, want %d", lookup.Meta.LookupType, gsubLookupTypeLigature)
	}
	sub, ok := lookup.Subtables[0].(*gtab.Gsub4_1)
	if !ok {
		t.Fatalf("Subtables[0] = %T, want *gtab.Gsub4_1", lookup.Subtables[0])
	}
	if len(sub.Repl) != 1 || len(sub.Repl[0]) != 1 {
		t.Fatalf("unexpected ligature set shape: %+v", sub.Repl)
	}
	lig := sub.Repl[0][0]
	if len(lig.In) != 1 || lig.In[0] != 2 || lig.Out != 3 {
		t.Errorf("ligature = %+v, want In=[2] (i) Out=3 (fi)", lig)
	}
}

func TestCompileReservedFeatureWarns(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "b")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag:   gtab.AALT,
				Items: []FeatureItem{singleSubRule("a", "b")},
			},
		},
	}

	_, diags := Compile(tree, Options{Glyphs: glyphs})
	found := false
	for _, d := range diags {
		if d.Severity == Warning {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning diagnostic for the aalt feature, got %v", diags)
	}
}
