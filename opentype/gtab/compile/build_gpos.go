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
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/anchor"
	"seehuhn.de/go/fealayout/opentype/classdef"
	"seehuhn.de/go/fealayout/opentype/coverage"
	"seehuhn.de/go/fealayout/opentype/gtab"
	"seehuhn.de/go/postscript/funit"
)

const (
	gposLookupTypeSingle   = 1
	gposLookupTypePair     = 2
	gposLookupTypeCursive  = 3
	gposLookupTypeMarkBase = 4
	gposLookupTypeMarkLig  = 5
	gposLookupTypeMarkMark = 6
)

// newSubtableCost is, in bytes, the approximate fixed overhead of emitting
// a group of single-positioning glyphs as its own format-1 subtable
// rather than folding it into the shared format-2 bucket for its value
// format.
const newSubtableCost = 10

// buildGposSingle implements `position target <value>;`.
func (c *compiler) buildGposSingle(n *Rule, vertical bool, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) != 1 {
		c.diags.errorf(n.Range, "single positioning expects exactly one target class")
		return nil
	}
	targets := c.resolver.resolve(n.Target[0], &c.diags)
	v := c.resolveValueRecord(n.Value1, vertical, &c.diags)
	if targets.Len() == 0 || v == nil {
		return nil
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypeSingle, flags, mfs)
	var acc *singlePosAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*singlePosAccum)
	}
	if acc == nil {
		acc = newSinglePosAccum()
		c.reg.appendSubtable(acc)
	}
	for _, g := range targets.IDs() {
		acc.set(g, v)
	}
	return &id
}

type singlePosAccum struct {
	order  []glyph.ID
	values map[glyph.ID]*gtab.ValueRecord
}

func newSinglePosAccum() *singlePosAccum {
	return &singlePosAccum{values: map[glyph.ID]*gtab.ValueRecord{}}
}

func (a *singlePosAccum) set(g glyph.ID, v *gtab.ValueRecord) {
	if _, ok := a.values[g]; !ok {
		a.order = append(a.order, g)
	}
	a.values[g] = v
}

func (a *singlePosAccum) isSubtable() {}

// valueGroup is every glyph sharing one identical value record, a
// candidate for packing as its own format-1 subtable.
type valueGroup struct {
	value  *gtab.ValueRecord
	glyphs []glyph.ID
}

// valueRecordSize approximates the encoded byte size of a value record:
// 2 bytes per present field.
func valueRecordSize(v *gtab.ValueRecord) int {
	n := 0
	if v.XPlacement != nil {
		n++
	}
	if v.YPlacement != nil {
		n++
	}
	if v.XAdvance != nil {
		n++
	}
	if v.YAdvance != nil {
		n++
	}
	return 2 * n
}

// format2Bucket accumulates the glyphs that share a value format but not
// necessarily identical values, destined for one format-2 subtable.
type format2Bucket struct {
	glyphs []glyph.ID
	values map[glyph.ID]*gtab.ValueRecord
}

// freezeSubtables groups the accumulated glyphs by identical value
// record; a group expensive enough to justify its own format-1 subtable
// is emitted as one, everything else is folded into a per-value-format
// format-2 bucket. Output subtables are ordered by decreasing coverage
// size, ties broken by first glyph id.
func (a *singlePosAccum) freezeSubtables() []gtab.Subtable {
	glyphs := append([]glyph.ID(nil), a.order...)
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i] < glyphs[j] })

	var groups []*valueGroup
	for _, g := range glyphs {
		v := a.values[g]
		var found *valueGroup
		for _, gr := range groups {
			if gr.value.Equal(v) {
				found = gr
				break
			}
		}
		if found == nil {
			groups = append(groups, &valueGroup{value: v, glyphs: []glyph.ID{g}})
		} else {
			found.glyphs = append(found.glyphs, g)
		}
	}

	var subtables []gtab.Subtable
	buckets := map[gtab.ValueFormat]*format2Bucket{}
	var bucketOrder []gtab.ValueFormat

	for _, gr := range groups {
		if len(gr.glyphs)*valueRecordSize(gr.value) > newSubtableCost {
			cov := coverage.New(gr.glyphs)
			subtables = append(subtables, &gtab.Gpos1_1{Cov: cov, Adjust: gr.value})
			continue
		}

		format := gr.value.Format()
		b, ok := buckets[format]
		if !ok {
			b = &format2Bucket{values: map[glyph.ID]*gtab.ValueRecord{}}
			buckets[format] = b
			bucketOrder = append(bucketOrder, format)
		}
		b.glyphs = append(b.glyphs, gr.glyphs...)
		for _, g := range gr.glyphs {
			b.values[g] = gr.value
		}
	}

	for _, format := range bucketOrder {
		b := buckets[format]
		cov := coverage.New(b.glyphs)
		adjust := make([]*gtab.ValueRecord, len(cov.Glyphs()))
		for i, g := range cov.Glyphs() {
			adjust[i] = b.values[g]
		}
		subtables = append(subtables, &gtab.Gpos1_2{Cov: cov, Adjust: adjust})
	}

	sort.SliceStable(subtables, func(i, j int) bool {
		ci, cj := singlePosCoverage(subtables[i]), singlePosCoverage(subtables[j])
		if len(ci) != len(cj) {
			return len(ci) > len(cj)
		}
		return ci.Glyphs()[0] < cj.Glyphs()[0]
	})

	return subtables
}

func singlePosCoverage(st gtab.Subtable) coverage.Table {
	switch s := st.(type) {
	case *gtab.Gpos1_1:
		return s.Cov
	case *gtab.Gpos1_2:
		return s.Cov
	}
	return nil
}

// buildGposPair implements both the specific-pair and class-pair forms of
// `position first second <v1> [<v2>];`, plus `enum position @class glyph
// <v>;` which forces a full cross-product expansion into specific pairs
// even when one side is a class.
func (c *compiler) buildGposPair(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	firsts := c.resolver.resolve(n.First, &c.diags)
	seconds := c.resolver.resolve(n.Second, &c.diags)
	v1 := c.resolveValueRecord(n.Value1, false, &c.diags)
	v2 := c.resolveValueRecord(n.Value2, false, &c.diags)
	if firsts.Len() == 0 || seconds.Len() == 0 {
		return nil
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypePair, flags, mfs)

	explicit := n.Kind == RuleGposPairEnum || (firsts.Len() == 1 && seconds.Len() == 1)
	if explicit {
		var acc *pairGlyphAccum
		if mayMerge {
			acc, _ = c.lastSubtable(id).(*pairGlyphAccum)
		}
		if acc == nil {
			acc = newPairGlyphAccum()
			c.reg.appendSubtable(acc)
		}
		for _, f := range firsts.IDs() {
			for _, s := range seconds.IDs() {
				acc.add(glyph.Pair{Left: f, Right: s}, v1, v2)
			}
		}
		return &id
	}

	var acc *pairClassAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*pairClassAccum)
	}
	if acc == nil || !acc.builder.CanAdd(firsts.IDs(), seconds.IDs()) {
		acc = newPairClassAccum()
		c.reg.appendSubtable(acc)
	}
	acc.add(firsts.IDs(), seconds.IDs(), v1, v2)
	return &id
}

// pairGlyphAccum accumulates specific glyph-pair adjustments; the first
// value recorded for a given pair wins.
type pairGlyphAccum struct {
	order []glyph.Pair
	seen  map[glyph.Pair]*gtab.PairAdjust
}

func newPairGlyphAccum() *pairGlyphAccum {
	return &pairGlyphAccum{seen: map[glyph.Pair]*gtab.PairAdjust{}}
}

func (a *pairGlyphAccum) add(p glyph.Pair, v1, v2 *gtab.ValueRecord) {
	if _, ok := a.seen[p]; ok {
		return
	}
	a.order = append(a.order, p)
	a.seen[p] = &gtab.PairAdjust{First: v1, Second: v2}
}

func (a *pairGlyphAccum) isSubtable() {}

func (a *pairGlyphAccum) freezeSubtables() []gtab.Subtable {
	out := make(gtab.Gpos2_1, len(a.seen))
	for p, adj := range a.seen {
		out[p] = adj
	}
	return []gtab.Subtable{&out}
}

// pairClassAccum accumulates class-pair adjustments via a
// [classdef.Builder2]; (class1, class2) combinations keep the value
// record from their first occurrence.
type pairClassAccum struct {
	builder *classdef.Builder2
	order   [][2]uint16
	adjust  map[[2]uint16]*gtab.PairAdjust
}

func newPairClassAccum() *pairClassAccum {
	return &pairClassAccum{builder: classdef.NewBuilder2(), adjust: map[[2]uint16]*gtab.PairAdjust{}}
}

func (a *pairClassAccum) add(first, second []glyph.ID, v1, v2 *gtab.ValueRecord) {
	c1, c2 := a.builder.Add(first, second)
	key := [2]uint16{c1, c2}
	if _, ok := a.adjust[key]; ok {
		return
	}
	a.order = append(a.order, key)
	a.adjust[key] = &gtab.PairAdjust{First: v1, Second: v2}
}

func (a *pairClassAccum) isSubtable() {}

func (a *pairClassAccum) freezeSubtables() []gtab.Subtable {
	cls1, cls2 := a.builder.Tables()
	n1, n2 := a.builder.NumClasses()

	cov := coverage.New(maps.Keys(cls1))

	grid := make([][]*gtab.PairAdjust, n1)
	for i := range grid {
		grid[i] = make([]*gtab.PairAdjust, n2)
	}
	for key, adj := range a.adjust {
		grid[key[0]][key[1]] = adj
	}
	return []gtab.Subtable{&gtab.Gpos2_2{Cov: cov, Class1: cls1, Class2: cls2, Adjust: grid}}
}

// buildGposCursive implements `position cursive target <entry> <exit>;`.
func (c *compiler) buildGposCursive(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) != 1 {
		c.diags.errorf(n.Range, "cursive positioning expects exactly one target class")
		return nil
	}
	targets := c.resolver.resolve(n.Target[0], &c.diags)
	entryX, entryY, entryContour, entryHasContour, entryNull, entryOk := c.resolver.resolveAnchor(n.EntryAnchor, &c.diags)
	exitX, exitY, exitContour, exitHasContour, exitNull, exitOk := c.resolver.resolveAnchor(n.ExitAnchor, &c.diags)
	if targets.Len() == 0 || !entryOk || !exitOk {
		return nil
	}

	var entry, exit *anchor.Table
	if !entryNull {
		entry = anchorFromParts(entryX, entryY, entryContour, entryHasContour)
	}
	if !exitNull {
		exit = anchorFromParts(exitX, exitY, exitContour, exitHasContour)
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypeCursive, flags, mfs)
	var acc *cursiveAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*cursiveAccum)
	}
	if acc == nil {
		acc = newCursiveAccum()
		c.reg.appendSubtable(acc)
	}
	for _, g := range targets.IDs() {
		acc.set(g, entry, exit)
	}
	return &id
}

func anchorFromParts(x, y int16, contour uint16, hasContour bool) *anchor.Table {
	if hasContour {
		return anchor.Contour(funit.Int16(x), funit.Int16(y), contour)
	}
	return anchor.Coord(funit.Int16(x), funit.Int16(y))
}

type cursiveAccum struct {
	order   []glyph.ID
	records map[glyph.ID]gtab.EntryExitRecord
}

func newCursiveAccum() *cursiveAccum {
	return &cursiveAccum{records: map[glyph.ID]gtab.EntryExitRecord{}}
}

func (a *cursiveAccum) set(g glyph.ID, entry, exit *anchor.Table) {
	if _, ok := a.records[g]; !ok {
		a.order = append(a.order, g)
	}
	a.records[g] = gtab.EntryExitRecord{Entry: entry, Exit: exit}
}

func (a *cursiveAccum) isSubtable() {}

func (a *cursiveAccum) freezeSubtables() []gtab.Subtable {
	glyphs := append([]glyph.ID(nil), a.order...)
	cov := coverage.New(glyphs)
	recs := make([]gtab.EntryExitRecord, len(cov.Glyphs()))
	for i, g := range cov.Glyphs() {
		recs[i] = a.records[g]
	}
	return []gtab.Subtable{&gtab.Gpos3_1{Cov: cov, Records: recs}}
}
