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

import "seehuhn.de/go/fealayout/opentype/gtab"

// Range is a byte range into the original source, attached to every AST
// node so diagnostics can point back at it. The lexer and parser that
// produce this tree live outside this package; this module only ever reads
// Range, GlyphOrClassNode, AnchorNode and the statement types below, never
// constructs source positions itself.
type Range struct {
	Start, End int
}

// File is the root of a parsed feature-definition source: a flat sequence
// of top-level items in source order. A `feature ... { ... }` or
// `lookup name { ... }` block is itself one TopLevelItem whose Items field
// holds its own nested statements.
type File struct {
	Items []TopLevelItem
}

// TopLevelItem is implemented by every statement that can appear outside
// any feature or lookup block.
type TopLevelItem interface {
	topLevelItem()
	Pos() Range
}

// FeatureItem is implemented by every statement that can appear inside a
// `feature` block (and, for LookupRef/LookupFlag/Subtable/rules, inside a
// named `lookup` block too).
type FeatureItem interface {
	featureItem()
	Pos() Range
}

type base struct{ Range Range }

func (b base) Pos() Range { return b.Range }

// LanguageSystemDecl is a top-level `languagesystem script language;`.
type LanguageSystemDecl struct {
	base
	Script, Language gtab.Tag
}

func (*LanguageSystemDecl) topLevelItem() {}

// GlyphClassDef is a top-level (or feature-local) `@name = [ ... ];`.
type GlyphClassDef struct {
	base
	Name string
	Set  GlyphSetNode
}

func (*GlyphClassDef) topLevelItem() {}
func (*GlyphClassDef) featureItem()  {}

// MarkClassDef is a top-level `markClass [ glyphs ] <anchor ...> @name;`.
// A single AST node covers one (glyphs, anchor) pair; repeated
// declarations with the same Name extend the class.
type MarkClassDef struct {
	base
	Name   string
	Glyphs GlyphSetNode
	Anchor AnchorNode
}

func (*MarkClassDef) topLevelItem() {}
func (*MarkClassDef) featureItem()  {}

// AnchorDef is a top-level `anchorDef x y name;` (or contour-point form).
type AnchorDef struct {
	base
	Name   string
	Anchor AnchorNode
}

func (*AnchorDef) topLevelItem() {}

// FeatureBlock is a top-level `feature tag { ... } tag;`.
type FeatureBlock struct {
	base
	Tag   gtab.Tag
	Items []FeatureItem
}

func (*FeatureBlock) topLevelItem() {}

// LookupBlockDef is a `lookup name { ... } name;`, either at top level or
// nested inside a FeatureBlock.
type LookupBlockDef struct {
	base
	Name  string
	Items []FeatureItem
}

func (*LookupBlockDef) topLevelItem() {}
func (*LookupBlockDef) featureItem()  {}

// LookupRef is a bare `lookup name;` inside a feature block, binding a
// previously-defined named lookup to the enclosing feature/script/
// language scope without opening a new block.
type LookupRef struct {
	base
	Name string
}

func (*LookupRef) featureItem() {}

// ScriptStmt is a `script tag;` inside a feature block.
type ScriptStmt struct {
	base
	Script gtab.Tag
}

func (*ScriptStmt) featureItem() {}

// LanguageStmt is a `language tag [exclude_dflt|include_dflt] [required];`
// inside a feature block.
type LanguageStmt struct {
	base
	Language     gtab.Tag
	ExcludeDflt  bool
	Required     bool
}

func (*LanguageStmt) featureItem() {}

// LookupFlagStmt is a `lookupflag ...;` inside a feature or lookup block.
type LookupFlagStmt struct {
	base
	// Literal, if NumberSet is true, is the raw flag value from a bare
	// integer literal lookupflag statement.
	NumberSet bool
	Literal   uint16

	RightToLeft      bool
	IgnoreBaseGlyphs bool
	IgnoreLigatures  bool
	IgnoreMarks      bool

	// MarkAttachClass, if non-nil, names the glyph class used with
	// `MarkAttachmentType`.
	MarkAttachClass *GlyphSetNode
	// MarkFilterSet, if non-nil, names the glyph class used with
	// `UseMarkFilteringSet`.
	MarkFilterSet *GlyphSetNode
}

func (*LookupFlagStmt) featureItem() {}

// SubtableStmt is a bare `subtable;` inside a feature or lookup block.
type SubtableStmt struct{ base }

func (*SubtableStmt) featureItem() {}

// RuleKind identifies which of the GSUB/GPOS statement shapes a Rule node
// carries; some of these are intentionally left unimplemented and reported
// via an "unsupported-rule-type" warning.
type RuleKind int

const (
	RuleGsubSingle RuleKind = iota
	RuleGsubMultiple
	RuleGsubAlternate
	RuleGsubLigature
	RuleGposSingle
	RuleGposPair
	RuleGposPairEnum // `enum pos @class glyph <v>;` - explicit per-pair expansion
	RuleGposCursive
	RuleGposMarkToBase
	RuleGposMarkToLigature
	RuleGposMarkToMark
	RuleUnsupported // contextual/chaining/reverse-chaining and anything else
)

// Rule is a single substitution or positioning statement inside a feature
// or (named/anonymous) lookup block.
type Rule struct {
	base
	Kind RuleKind

	// Target/Replacement are used by the GSUB rule kinds.
	Target      []GlyphOrClassNode
	Replacement []GlyphOrClassNode

	// RuleGposSingle uses Target plus Value1; the pair kinds use
	// First/Second and Value1/Value2.
	First, Second         GlyphOrClassNode
	Value1, Value2        *ValueRecordNode

	// Cursive uses Target plus EntryAnchor/ExitAnchor. Mark-to-base and
	// mark-to-mark rules have only one anchor to place (on the base or
	// mark2 glyph) and reuse EntryAnchor for it.
	EntryAnchor, ExitAnchor *AnchorNode

	// Mark-to-X rules.
	MarkClass     string // the @markclass referenced by the rule
	Base          GlyphOrClassNode
	LigComponents []MarkToLigComponent // one per ligature component, RuleGposMarkToLigature only

	// UnsupportedDescription is a short human-readable label for
	// RuleUnsupported rules, used verbatim in the resulting diagnostic.
	UnsupportedDescription string
}

func (*Rule) featureItem() {}

// MarkToLigComponent is one ligature component's mark-attachment anchors
// in a mark-to-ligature rule: a component may attach marks of more than
// one mark class.
type MarkToLigComponent struct {
	Classes []MarkToLigClassAnchor
}

// MarkToLigClassAnchor pairs a mark class name with the anchor on this
// ligature component for that class.
type MarkToLigClassAnchor struct {
	MarkClass string
	Anchor    *AnchorNode
}

// GlyphSetNode is a literal glyph class `[ a b c ]`, possibly containing
// ranges and references to named classes; it is what GlyphClassDef,
// mark-class, and lookupflag-class references all carry.
type GlyphSetNode struct {
	Range  Range
	Glyphs []GlyphOrClassNode
}

// GlyphOrClassNode is a single element of the AST: a bare glyph name, a
// CID, a named-class reference, an inline class, or a range.
type GlyphOrClassNode struct {
	Range Range

	// exactly one of the following is set.
	GlyphName  string // bare glyph name
	CID        *uint32
	ClassName  string // `@name` reference
	InlineGlyphs []GlyphOrClassNode // `[ ... ]` nested literal class

	// Range expressions: RangeStart/RangeEnd hold either GlyphName or CID
	// forms (mutually exclusive with GlyphName/CID/ClassName above).
	IsRange    bool
	RangeStart *GlyphOrClassNode
	RangeEnd   *GlyphOrClassNode
}

// AnchorNode is the unresolved, source-level form of an anchor
// expression: either a named reference, an explicit coordinate (with
// optional contour point), or the null anchor `<anchor NULL>`.
type AnchorNode struct {
	Range Range

	IsNull bool
	Name   string // non-empty for `<anchor name>` references

	HasCoords  bool
	X, Y       int16
	HasContour bool
	Contour    uint16
}

// ValueRecordNode is the unresolved, source-level form of a GPOS value
// record.
type ValueRecordNode struct {
	Range Range

	// Empty is true for the explicit empty value record `<NULL>`.
	Empty bool

	// Scalar is true for a bare integer literal (x-advance only, modulo
	// Open Question (a)).
	Scalar      bool
	ScalarValue int16

	// Full is true for the `<xPla yPla xAdv yAdv>` four-tuple form.
	Full                                   bool
	XPlacement, YPlacement, XAdvance, YAdvance int16

	// Named is true for a reserved, not-yet-implemented named-record
	// reference.
	Named     bool
	NamedName string
}
