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

package classdef

import (
	"sort"

	"seehuhn.de/go/fealayout/glyph"
)

// sideBuilder accumulates one side of a class-pair accumulator: a ClassDef
// under construction where each glyph may be added to at most one class,
// and inserting the same glyph set twice reuses the earlier class id.
type sideBuilder struct {
	implicitZero bool // side 1 treats class 0 as "everything else"
	table        Table
	setID        map[string]uint16
	next         uint16
}

func newSideBuilder(implicitZero bool) *sideBuilder {
	start := uint16(0)
	if implicitZero {
		start = 1
	}
	return &sideBuilder{
		implicitZero: implicitZero,
		table:        Table{},
		setID:        map[string]uint16{},
		next:         start,
	}
}

func setKey(glyphs []glyph.ID) string {
	sorted := append([]glyph.ID(nil), glyphs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	buf := make([]byte, 0, 2*len(sorted))
	for _, gid := range sorted {
		buf = append(buf, byte(gid>>8), byte(gid))
	}
	return string(buf)
}

// canAdd reports whether glyphs can become a (possibly new) class in this
// ClassDef without reassigning any glyph that already has a different
// class.
func (b *sideBuilder) canAdd(glyphs []glyph.ID) bool {
	if _, ok := b.setID[setKey(glyphs)]; ok {
		return true
	}
	for _, gid := range glyphs {
		if class, ok := b.table[gid]; ok {
			_ = class
			return false
		}
	}
	return true
}

// add registers glyphs as a class, reusing the existing id if this exact
// set was added before, and returns the class id.
func (b *sideBuilder) add(glyphs []glyph.ID) uint16 {
	key := setKey(glyphs)
	if class, ok := b.setID[key]; ok {
		return class
	}
	class := b.next
	b.next++
	b.setID[key] = class
	for _, gid := range glyphs {
		b.table[gid] = class
	}
	return class
}

// Builder2 accumulates a pair of ClassDef tables in lock step, as used by
// the pair-positioning class-pair subtable builder: side 1 carries an
// implicit "class 0 = everything else", side 2 does not.
type Builder2 struct {
	side1 *sideBuilder
	side2 *sideBuilder
}

// NewBuilder2 returns an empty class-pair accumulator.
func NewBuilder2() *Builder2 {
	return &Builder2{
		side1: newSideBuilder(true),
		side2: newSideBuilder(false),
	}
}

// CanAdd reports whether both sides of the pair can accept the given glyph
// sets as classes without conflicting with a glyph already committed to a
// different class.
func (b *Builder2) CanAdd(side1, side2 []glyph.ID) bool {
	return b.side1.canAdd(side1) && b.side2.canAdd(side2)
}

// Add commits both sides' classes and returns their class ids.
func (b *Builder2) Add(side1, side2 []glyph.ID) (class1, class2 uint16) {
	return b.side1.add(side1), b.side2.add(side2)
}

// Tables returns the two accumulated ClassDef tables.
func (b *Builder2) Tables() (class1, class2 Table) {
	return b.side1.table, b.side2.table
}

// NumClasses returns the number of side-1 and side-2 classes, including the
// implicit class 0 on side 1.
func (b *Builder2) NumClasses() (n1, n2 int) {
	return int(b.side1.next), int(b.side2.next)
}
