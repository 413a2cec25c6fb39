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

package gtab

import (
	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/coverage"
)

// Gsub1_1 is a Single Substitution GSUB subtable (type 1, format 1): every
// glyph in Cov is replaced by itself plus Delta. All pairs sharing this
// subtable therefore share one i16 delta.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#12-single-substitution-format-1
type Gsub1_1 struct {
	Cov   coverage.Table
	Delta int16
}

func (*Gsub1_1) isSubtable() {}

// Gsub1_2 is a Single Substitution GSUB subtable (type 1, format 2): each
// glyph in Cov has its own, unrelated replacement.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#12-single-substitution-format-2
type Gsub1_2 struct {
	Cov                coverage.Table
	SubstituteGlyphIDs []glyph.ID // indexed by coverage index
}

func (*Gsub1_2) isSubtable() {}

// Gsub2_1 is a Multiple Substitution GSUB subtable (type 2, format 1):
// each glyph in Cov is replaced by a (possibly empty) sequence of glyphs.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#21-multiple-substitution-format-1
type Gsub2_1 struct {
	Cov  coverage.Table
	Repl [][]glyph.ID // indexed by coverage index
}

func (*Gsub2_1) isSubtable() {}

// Gsub3_1 is an Alternate Substitution GSUB subtable (type 3, format 1):
// each glyph in Cov has a set of alternate glyphs a shaper may choose
// among.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#31-alternate-substitution-format-1
type Gsub3_1 struct {
	Cov        coverage.Table
	Alternates [][]glyph.ID // indexed by coverage index
}

func (*Gsub3_1) isSubtable() {}

// Gsub4_1 is a Ligature Substitution GSUB subtable (type 4, format 1):
// each glyph in Cov starts one or more ligature sequences.
//
// The order of entries in a LigatureSet defines shaper preference; longer
// sequences are tried first.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#41-ligature-substitution-format-1
type Gsub4_1 struct {
	Cov  coverage.Table
	Repl [][]Ligature // indexed by coverage index
}

func (*Gsub4_1) isSubtable() {}

// Ligature represents one substitution of a glyph sequence into a single
// glyph, within a [Gsub4_1] subtable.
type Ligature struct {
	// In is the sequence of component glyphs following the first glyph
	// (which is implied by the LigatureSet's coverage index).
	In []glyph.ID

	// Out is the glyph that replaces the whole sequence.
	Out glyph.ID
}
