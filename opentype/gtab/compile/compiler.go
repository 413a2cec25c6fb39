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

// Package compile turns a parsed feature-definition source file into
// structured GSUB and GPOS layout tables, ready for a downstream
// byte-serializer to assemble into a complete OpenType font.
package compile

import (
	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/gtab"
)

// VarStore lets a caller thread variable-font deltas through value
// records and anchors produced from designspace-aware sources. A
// stationary (non-variable) compile simply omits it.
type VarStore interface {
	Add(deltas []int16) gtab.VariationIndex
}

// Options configures one call to [Compile].
type Options struct {
	// Glyphs maps the glyph names and CIDs used in the source to glyph
	// IDs in the target font; it is the compiler's only way to turn
	// source-level names into binary-layout-table glyph references.
	Glyphs GlyphMap

	// DefaultLanguageSystems lists the script/language pairs declared by
	// the source's `languagesystem` statements. Compile also accepts this
	// as an input (rather than deriving it solely from the AST) so a
	// caller can pre-seed defaults when a source omits them entirely.
	DefaultLanguageSystems []gtab.ScriptLang

	// VarStore is carried in Options, but no compile step calls it: the
	// AST has no form for a value that varies across the font's design
	// space, and resolved value records leave VarIndex empty.
	VarStore VarStore
}

// Output is the result of a successful compile: the structured GSUB
// and/or GPOS tables built from the source. A nil field means the source
// defined no rules for that table.
type Output struct {
	GSUB *gtab.Table
	GPOS *gtab.Table
}

// compiler holds all mutable state accumulated while walking one source
// file: the glyph/anchor/mark-class resolver, the growing lookup lists,
// and the per-feature language-system registrations that [buildOutput]
// turns into the final Script/Feature lists.
type compiler struct {
	opts     Options
	resolver *resolver
	reg      *lookupRegistry
	diags    List

	languageSystems []gtab.ScriptLang

	featureRegs     map[gtab.Tag]*featureReg
	featureOrder    []gtab.Tag
	requiredFeature map[langSysKey]gtab.Tag

	markAttachClasses []markAttachClassSet
	markFilterSets    []map[glyph.ID]bool

	// pendingMarkFilteringSet is the mark-filtering-set index named by
	// the most recent lookupflag statement, carried on every rule until
	// the next lookupflag (which replaces or clears it).
	pendingMarkFilteringSet *uint16
}

// Compile builds GSUB and GPOS layout tables from tree using the glyph
// map and defaults in opts. It returns every diagnostic produced along
// the way; when any diagnostic has [Error] severity, out is nil.
func Compile(tree *File, opts Options) (out *Output, diags List) {
	c := &compiler{
		opts:            opts,
		resolver:        newResolver(opts.Glyphs),
		reg:             newLookupRegistry(),
		languageSystems: append([]gtab.ScriptLang(nil), opts.DefaultLanguageSystems...),
		featureRegs:     map[gtab.Tag]*featureReg{},
		requiredFeature: map[langSysKey]gtab.Tag{},
	}

	for _, item := range tree.Items {
		c.compileTopLevelItem(item)
	}

	if c.diags.HasErrors() {
		return nil, c.diags
	}
	return c.buildOutput(), c.diags
}

func (c *compiler) compileTopLevelItem(item TopLevelItem) {
	switch n := item.(type) {
	case *LanguageSystemDecl:
		c.languageSystems = append(c.languageSystems, gtab.ScriptLang{Script: n.Script, Language: n.Language})

	case *GlyphClassDef:
		set := c.resolver.resolveGlyphSet(n.Set, &c.diags)
		c.resolver.defineClass(n.Name, set)

	case *MarkClassDef:
		glyphs := c.resolver.resolveGlyphSet(n.Glyphs, &c.diags)
		c.resolver.addMarkClassGlyphs(n.Name, glyphs, &n.Anchor)

	case *AnchorDef:
		c.resolver.defineAnchor(n.Name, &n.Anchor)

	case *FeatureBlock:
		c.compileFeatureBlock(n)

	case *LookupBlockDef:
		// A standalone top-level lookup block: compiled and named, but
		// not registered against any feature until referenced by a
		// `lookup name;` statement inside a feature block.
		var flags gtab.LookupFlags
		scope := newFeatureScope()
		dummy := newFeatureReg(gtab.Tag{})
		for _, sub := range n.Items {
			c.compileFeatureItem(sub, gtab.Tag{}, dummy, scope, &flags)
		}
		c.reg.finishNamed(n.Name)
	}
}
