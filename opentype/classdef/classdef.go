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

// Package classdef contains utilities to construct and encode OpenType
// "Class Definition" tables.
package classdef

import (
	"sort"

	"seehuhn.de/go/fealayout/glyph"
)

// Table maps glyph IDs to small-integer class values.  Glyphs not present
// in the map belong to class 0.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table
type Table map[glyph.ID]uint16

// NumClasses returns one more than the largest class value used, i.e. the
// number of distinct classes including implicit class 0.
func (table Table) NumClasses() int {
	max := uint16(0)
	for _, class := range table {
		if class > max {
			max = class
		}
	}
	return int(max) + 1
}

// EncodeLen returns the number of bytes needed to encode the table.
func (table Table) EncodeLen() int {
	return len(table.encode())
}

// Encode returns the binary representation of the table, choosing whichever
// of format 1 (a per-glyph array over a contiguous glyph range) or format 2
// (an explicit list of class ranges) is smaller.
func (table Table) Encode() []byte {
	return table.encode()
}

func (table Table) encode() []byte {
	type rng struct {
		start, end glyph.ID
		class      uint16
	}

	glyphs := make([]glyph.ID, 0, len(table))
	for gid := range table {
		glyphs = append(glyphs, gid)
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i] < glyphs[j] })

	var ranges []rng
	for _, gid := range glyphs {
		class := table[gid]
		if n := len(ranges); n > 0 && ranges[n-1].end+1 == gid && ranges[n-1].class == class {
			ranges[n-1].end = gid
			continue
		}
		ranges = append(ranges, rng{gid, gid, class})
	}

	format2Len := 4 + 6*len(ranges)

	var format1Len int
	var startGlyph glyph.ID
	if len(glyphs) > 0 {
		startGlyph = glyphs[0]
		span := int(glyphs[len(glyphs)-1]) - int(startGlyph) + 1
		format1Len = 6 + 2*span
	} else {
		format1Len = 6
	}

	if format1Len <= format2Len {
		buf := make([]byte, format1Len)
		buf[1] = 1
		span := 0
		if len(glyphs) > 0 {
			span = int(glyphs[len(glyphs)-1]) - int(startGlyph) + 1
		}
		buf[2] = byte(startGlyph >> 8)
		buf[3] = byte(startGlyph)
		buf[4] = byte(span >> 8)
		buf[5] = byte(span)
		for gid, class := range table {
			i := int(gid - startGlyph)
			buf[6+2*i] = byte(class >> 8)
			buf[6+2*i+1] = byte(class)
		}
		return buf
	}

	buf := make([]byte, format2Len)
	buf[1] = 2
	buf[2] = byte(len(ranges) >> 8)
	buf[3] = byte(len(ranges))
	for i, r := range ranges {
		p := 4 + 6*i
		buf[p] = byte(r.start >> 8)
		buf[p+1] = byte(r.start)
		buf[p+2] = byte(r.end >> 8)
		buf[p+3] = byte(r.end)
		buf[p+4] = byte(r.class >> 8)
		buf[p+5] = byte(r.class)
	}
	return buf
}
