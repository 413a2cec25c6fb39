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

// Package gtab holds the structured, not-yet-serialized representation of
// OpenType "GSUB" and "GPOS" tables: lookups, subtables, and the
// script/feature/lookup index structures that select them. Values of these
// types are the output of this module's compiler; turning them into the
// final table bytes is the job of a downstream serializer.
package gtab

// LookupIndex enumerates lookups. It is used as an index into a
// [LookupList], and is the payload of a [LookupId].
type LookupIndex uint16

// LookupList contains the information of an OpenType "Lookup List Table".
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table-and-lookup-list-table
type LookupList []*LookupTable

// LookupTable represents a lookup table inside a "GSUB" or "GPOS" table.
type LookupTable struct {
	Meta *LookupMetaInfo

	// Subtables holds the subtables in application order. A subtable break
	// in the source (the `subtable;` statement) shows up as an extra,
	// separately-built entry here even when two consecutive entries have
	// identical contents.
	Subtables []Subtable
}

// LookupMetaInfo contains the information associated with a [LookupTable]
// that is not specific to any one subtable.
type LookupMetaInfo struct {
	// LookupType identifies the type of the lookups inside a lookup table.
	// Different numbering schemes are used for GSUB and GPOS tables.
	LookupType uint16

	LookupFlags LookupFlags

	// MarkFilteringSet is only meaningful when LookupFlags has
	// UseMarkFilteringSet set; it names one of the caller's mark glyph
	// sets (by small integer id, see the compile package's
	// mark-filter-set registry).
	MarkFilteringSet uint16
}

// LookupFlags contains bits which modify application of a lookup to a
// glyph string.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookupFlags
type LookupFlags uint16

// Bit values for LookupFlags.
const (
	// RightToLeft indicates that for GPOS lookup type 3 (cursive
	// attachment), the last glyph in the sequence (rather than the first)
	// is positioned on the baseline.
	RightToLeft LookupFlags = 0x0001

	// IgnoreBaseGlyphs indicates that the lookup ignores glyphs which are
	// classified as base glyphs in the GDEF table.
	IgnoreBaseGlyphs LookupFlags = 0x0002

	// IgnoreLigatures indicates that the lookup ignores glyphs which are
	// classified as ligatures in the GDEF table.
	IgnoreLigatures LookupFlags = 0x0004

	// IgnoreMarks indicates that the lookup ignores glyphs which are
	// classified as marks in the GDEF table.
	IgnoreMarks LookupFlags = 0x0008

	// UseMarkFilteringSet indicates that the lookup ignores all glyphs
	// classified as marks, except for those in the mark filtering set
	// named by LookupMetaInfo.MarkFilteringSet.
	UseMarkFilteringSet LookupFlags = 0x0010

	// MarkAttachTypeMask, if not zero, skips over all marks that are not
	// of the given mark-attachment class, stored in the flag's high byte.
	MarkAttachTypeMask LookupFlags = 0xFF00
)

// MarkAttachClass extracts the mark-attachment class id from the flag
// word's high byte.
func (f LookupFlags) MarkAttachClass() uint8 {
	return uint8(f >> 8)
}

// WithMarkAttachClass returns f with its high byte set to id.
func (f LookupFlags) WithMarkAttachClass(id uint8) LookupFlags {
	return f&^MarkAttachTypeMask | LookupFlags(id)<<8
}

// Subtable is implemented by every GSUB/GPOS subtable shape this module
// produces (Gsub1_1, Gsub1_2, ..., Gpos6_1). It is a sealed interface: the
// unexported method means only this package's own types satisfy it, a
// tagged-union shape in place of inheritance-style dispatch.
type Subtable interface {
	isSubtable()
}

// LookupId identifies a finished lookup by table and index. Once assigned
// by the lookup registry it is stable for the rest of compilation.
type LookupId struct {
	isGsub bool
	index  LookupIndex
}

// GposLookupId returns the LookupId of the i-th GPOS lookup.
func GposLookupId(i LookupIndex) LookupId { return LookupId{isGsub: false, index: i} }

// GsubLookupId returns the LookupId of the i-th GSUB lookup.
func GsubLookupId(i LookupIndex) LookupId { return LookupId{isGsub: true, index: i} }

// IsGsub reports whether the id refers to a GSUB lookup (as opposed to
// GPOS).
func (id LookupId) IsGsub() bool { return id.isGsub }

// Index returns the id's index into its table's lookup vector.
func (id LookupId) Index() LookupIndex { return id.index }
