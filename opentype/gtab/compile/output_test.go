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

func TestCompileDefaultScopeAppliesToAllDeclaredLanguageSystems(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "a.sc")
	tree := &File{
		Items: []TopLevelItem{
			&LanguageSystemDecl{Script: gtab.MustTag("latn"), Language: gtab.LangDFLT},
			&LanguageSystemDecl{Script: gtab.MustTag("cyrl"), Language: gtab.LangDFLT},
			&FeatureBlock{
				Tag:   gtab.MustTag("smcp"),
				Items: []FeatureItem{singleSubRule("a", "a.sc")},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}

	latn := out.GSUB.Scripts[gtab.MustTag("latn")]
	cyrl := out.GSUB.Scripts[gtab.MustTag("cyrl")]
	if latn == nil || cyrl == nil {
		t.Fatalf("expected both latn and cyrl scripts, got %+v", out.GSUB.Scripts)
	}
	if latn.DefaultLanguageSystem == nil || len(latn.DefaultLanguageSystem.Features) != 1 {
		t.Errorf("latn default language system = %+v, want one feature", latn.DefaultLanguageSystem)
	}
	if cyrl.DefaultLanguageSystem == nil || len(cyrl.DefaultLanguageSystem.Features) != 1 {
		t.Errorf("cyrl default language system = %+v, want one feature", cyrl.DefaultLanguageSystem)
	}

	// Both scripts should point at the exact same Feature entry (same
	// lookup-index list), since the rule was identical in each.
	if latn.DefaultLanguageSystem.Features[0] != cyrl.DefaultLanguageSystem.Features[0] {
		t.Errorf("expected the deduplicated feature index to be shared across scripts")
	}
	if len(out.GSUB.Features) != 1 {
		t.Errorf("len(Features) = %d, want 1 (deduplicated)", len(out.GSUB.Features))
	}
}

func TestCompileExplicitScriptLanguageScope(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "a.sc", "b", "b.sc")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("smcp"),
				Items: []FeatureItem{
					&ScriptStmt{Script: gtab.MustTag("latn")},
					singleSubRule("a", "a.sc"),
					&LanguageStmt{Language: gtab.MustTag("TRK"), ExcludeDflt: true},
					// A lookupflag change forces rule b into a separate
					// lookup, so the default and TRK language systems end
					// up pointing at genuinely different feature entries.
					&LookupFlagStmt{IgnoreMarks: true},
					singleSubRule("b", "b.sc"),
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}

	latn := out.GSUB.Scripts[gtab.MustTag("latn")]
	if latn == nil {
		t.Fatalf("expected a latn script entry")
	}
	if latn.DefaultLanguageSystem == nil || len(latn.DefaultLanguageSystem.Features) != 1 {
		t.Fatalf("latn default language system = %+v, want the first rule's feature only", latn.DefaultLanguageSystem)
	}

	trk := latn.Languages[gtab.MustTag("TRK")]
	if trk == nil || len(trk.Features) != 1 {
		t.Fatalf("TRK language system = %+v, want exactly the second rule's feature (exclude_dflt)", trk)
	}
	if trk.Features[0] == latn.DefaultLanguageSystem.Features[0] {
		t.Errorf("exclude_dflt language system should not share the default's feature entry")
	}
}

func TestCompileRequiredFeature(t *testing.T) {
	glyphs := newFakeGlyphMap("a", "a.sc")
	tree := &File{
		Items: []TopLevelItem{
			&FeatureBlock{
				Tag: gtab.MustTag("ccmp"),
				Items: []FeatureItem{
					&ScriptStmt{Script: gtab.MustTag("latn")},
					&LanguageStmt{Language: gtab.MustTag("TRK"), Required: true},
					singleSubRule("a", "a.sc"),
				},
			},
		},
	}

	out, diags := Compile(tree, Options{Glyphs: glyphs})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	trk := out.GSUB.Scripts[gtab.MustTag("latn")].Languages[gtab.MustTag("TRK")]
	if trk == nil {
		t.Fatalf("expected a TRK language system")
	}
	if trk.Required == gtab.NoRequiredFeature {
		t.Errorf("expected ccmp to be registered as the required feature")
	}
	if out.GSUB.Features[trk.Required].Tag != gtab.MustTag("ccmp") {
		t.Errorf("required feature tag = %s, want ccmp", out.GSUB.Features[trk.Required].Tag)
	}
}
