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

// Package coverage contains utilities to construct and encode OpenType
// "Coverage" tables.
package coverage

import (
	"sort"

	"seehuhn.de/go/fealayout/glyph"
)

// Table represents an OpenType "Coverage Table".  The table maps a glyph ID
// to a coverage index (the order in which glyphs are enumerated); the
// coverage index is what subtables use to find the associated per-glyph
// data (value records, pair sets, class rows, ...).
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
type Table map[glyph.ID]int

// Glyphs returns the glyphs in the coverage table, sorted by coverage
// index.
func (table Table) Glyphs() []glyph.ID {
	glyphs := make([]glyph.ID, len(table))
	for gid, idx := range table {
		glyphs[idx] = gid
	}
	return glyphs
}

// New builds a coverage table from a set of glyph IDs, assigning coverage
// indices in increasing glyph-ID order.  This is the form every subtable
// builder in this module produces: glyph ids are always known as a set
// first, and the coverage index is purely a consequence of sorting it.
func New(glyphs []glyph.ID) Table {
	sorted := append([]glyph.ID(nil), glyphs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	table := make(Table, len(sorted))
	for _, gid := range sorted {
		if _, ok := table[gid]; !ok {
			table[gid] = len(table)
		}
	}
	return table
}

// EncodeLen returns the number of bytes needed to encode the table.
func (table Table) EncodeLen() int {
	glyphs := table.Glyphs()
	n := len(glyphs)

	numRanges := 0
	for i := 0; i < n; {
		j := i + 1
		for j < n && glyphs[j] == glyphs[j-1]+1 {
			j++
		}
		numRanges++
		i = j
	}
	format1Len := 4 + 2*n
	format2Len := 4 + 6*numRanges
	if format1Len <= format2Len {
		return format1Len
	}
	return format2Len
}

// Encode returns the binary representation of the table, choosing whichever
// of format 1 (a plain glyph list) or format 2 (a run-length encoded list
// of ranges) is smaller.
func (table Table) Encode() []byte {
	glyphs := table.Glyphs()
	n := len(glyphs)

	var asRanges [][3]int // first, last, startCoverageIndex
	for i := 0; i < n; {
		j := i + 1
		for j < n && glyphs[j] == glyphs[j-1]+1 {
			j++
		}
		asRanges = append(asRanges, [3]int{int(glyphs[i]), int(glyphs[j-1]), i})
		i = j
	}

	format1Len := 4 + 2*n
	format2Len := 4 + 6*len(asRanges)
	if format1Len <= format2Len {
		buf := make([]byte, format1Len)
		buf[1] = 1
		buf[2] = byte(n >> 8)
		buf[3] = byte(n)
		for i, gid := range glyphs {
			buf[4+2*i] = byte(gid >> 8)
			buf[4+2*i+1] = byte(gid)
		}
		return buf
	}

	buf := make([]byte, format2Len)
	buf[1] = 2
	buf[2] = byte(len(asRanges) >> 8)
	buf[3] = byte(len(asRanges))
	for i, rng := range asRanges {
		p := 4 + 6*i
		buf[p] = byte(rng[0] >> 8)
		buf[p+1] = byte(rng[0])
		buf[p+2] = byte(rng[1] >> 8)
		buf[p+3] = byte(rng[1])
		buf[p+4] = byte(rng[2] >> 8)
		buf[p+5] = byte(rng[2])
	}
	return buf
}
