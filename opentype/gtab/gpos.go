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
	"seehuhn.de/go/fealayout/opentype/anchor"
	"seehuhn.de/go/fealayout/opentype/classdef"
	"seehuhn.de/go/fealayout/opentype/coverage"
)

// Gpos1_1 is a Single Adjustment Positioning Subtable (GPOS type 1, format
// 1). It specifies one adjustment applied to every glyph in Cov.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#single-adjustment-positioning-format-1-single-positioning-value
type Gpos1_1 struct {
	Cov    coverage.Table
	Adjust *ValueRecord
}

func (*Gpos1_1) isSubtable() {}

// Gpos1_2 is a Single Adjustment Positioning Subtable (GPOS type 1, format
// 2): each glyph in Cov has its own value record.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#single-adjustment-positioning-format-2-array-of-positioning-values
type Gpos1_2 struct {
	Cov    coverage.Table
	Adjust []*ValueRecord // indexed by coverage index
}

func (*Gpos1_2) isSubtable() {}

// PairAdjust represents one PairValueRecord: the value records applied to
// the first and (optionally) second glyph of a pair.
type PairAdjust struct {
	First, Second *ValueRecord
}

// Gpos2_1 is a Pair Adjustment Positioning Subtable (format 1): an
// explicit map from glyph pairs to adjustments, one PairSet per first
// glyph.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#pair-adjustment-positioning-format-1-adjustments-for-glyph-pairs
type Gpos2_1 map[glyph.Pair]*PairAdjust

func (Gpos2_1) isSubtable() {}

// Gpos2_2 is a Pair Adjustment Positioning Subtable (format 2): pairs are
// adjusted based on the glyph classes of the two glyphs, so the table size
// is independent of the number of distinct glyph pairs.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#pair-adjustment-positioning-format-2-class-pair-adjustment
type Gpos2_2 struct {
	Cov            coverage.Table
	Class1, Class2 classdef.Table
	Adjust         [][]*PairAdjust // indexed by class1 index, then class2 index
}

func (*Gpos2_2) isSubtable() {}

// EntryExitRecord holds the entry and exit anchors of one glyph in a
// [Gpos3_1] cursive-attachment subtable.
type EntryExitRecord struct {
	Entry, Exit *anchor.Table
}

// Gpos3_1 is a Cursive Attachment Positioning subtable (format 1): the
// exit anchor of one glyph aligns with the entry anchor of the next.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#cursive-attachment-positioning-format1-cursive-attachment
type Gpos3_1 struct {
	Cov     coverage.Table
	Records []EntryExitRecord // indexed by coverage index
}

func (*Gpos3_1) isSubtable() {}
