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
	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/anchor"
	"seehuhn.de/go/fealayout/opentype/coverage"
	"seehuhn.de/go/fealayout/opentype/gtab"
	"seehuhn.de/go/fealayout/opentype/markarray"
)

// markListAccum is the MarkCoverage/MarkArray half shared by all three
// mark-attachment subtable formats: it assigns each referenced mark class
// a class index the first time it is used within this subtable, and
// records one anchor per (mark glyph) using that class, forming a shared
// MarkList class-id registry scoped to the subtable.
type markListAccum struct {
	order      []glyph.ID
	classIndex map[string]uint16
	marks      map[glyph.ID]markarray.Record
}

func newMarkListAccum() *markListAccum {
	return &markListAccum{classIndex: map[string]uint16{}, marks: map[glyph.ID]markarray.Record{}}
}

// addMarkClass resolves markClassName against the compiler's mark-class
// registry, assigns it a class index within this accumulator, and records
// each of its glyphs' anchors. It reports a conflict if a glyph was
// already registered under a different class.
func (c *compiler) addMarkClass(acc *markListAccum, markClassName string, rng Range, diags *List) (classID uint16, ok bool) {
	mc := c.resolver.requireMarkClass(markClassName, rng, diags)
	if mc == nil {
		return 0, false
	}
	id, known := acc.classIndex[markClassName]
	if !known {
		id = uint16(len(acc.classIndex))
		acc.classIndex[markClassName] = id
	}
	for _, g := range mc.glyphs {
		srcAnchor := mc.anchors[g]
		x, y, contour, hasContour, isNull, anchorOk := c.resolver.resolveAnchor(srcAnchor, diags)
		if !anchorOk {
			continue
		}
		var at *anchor.Table
		if !isNull {
			at = anchorFromParts(x, y, contour, hasContour)
		}
		if existing, already := acc.marks[g]; already && existing.Class != id {
			diags.errorf(rng, "glyph is used in more than one mark class within the same lookup")
			continue
		}
		if _, already := acc.marks[g]; !already {
			acc.order = append(acc.order, g)
		}
		acc.marks[g] = markarray.Record{Class: id, Anchor: at}
	}
	return id, true
}

func (acc *markListAccum) coverageAndArray() (coverage.Table, []markarray.Record) {
	glyphs := append([]glyph.ID(nil), acc.order...)
	cov := coverage.New(glyphs)
	arr := make([]markarray.Record, len(cov.Glyphs()))
	for i, g := range cov.Glyphs() {
		arr[i] = acc.marks[g]
	}
	return cov, arr
}

// buildGposMarkToBase implements `position base base <anchor> mark
// @markclass;`.
func (c *compiler) buildGposMarkToBase(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	bases := c.resolver.resolve(n.Base, &c.diags)
	if bases.Len() == 0 {
		return nil
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypeMarkBase, flags, mfs)
	var acc *markToBaseAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*markToBaseAccum)
	}
	if acc == nil {
		acc = newMarkToBaseAccum()
		c.reg.appendSubtable(acc)
	}

	classID, ok := c.addMarkClass(acc.marks, n.MarkClass, n.Range, &c.diags)
	if !ok {
		return &id
	}
	baseAnchorX, baseAnchorY, baseContour, baseHasContour, baseNull, baseOk := c.resolver.resolveAnchor(n.EntryAnchor, &c.diags)
	if !baseOk {
		return &id
	}
	var baseAnchor *anchor.Table
	if !baseNull {
		baseAnchor = anchorFromParts(baseAnchorX, baseAnchorY, baseContour, baseHasContour)
	}
	for _, g := range bases.IDs() {
		acc.setBase(g, classID, baseAnchor)
	}
	return &id
}

type markToBaseAccum struct {
	marks        *markListAccum
	baseOrder    []glyph.ID
	baseAnchors  map[glyph.ID]map[uint16]*anchor.Table
	isMarkToMark bool
}

func newMarkToBaseAccum() *markToBaseAccum {
	return &markToBaseAccum{marks: newMarkListAccum(), baseAnchors: map[glyph.ID]map[uint16]*anchor.Table{}}
}

func newMarkToMarkAccum() *markToBaseAccum {
	acc := newMarkToBaseAccum()
	acc.isMarkToMark = true
	return acc
}

func (a *markToBaseAccum) setBase(g glyph.ID, classID uint16, at *anchor.Table) {
	if _, ok := a.baseAnchors[g]; !ok {
		a.baseOrder = append(a.baseOrder, g)
		a.baseAnchors[g] = map[uint16]*anchor.Table{}
	}
	if _, ok := a.baseAnchors[g][classID]; !ok {
		a.baseAnchors[g][classID] = at
	}
}

func (a *markToBaseAccum) isSubtable() {}

func (a *markToBaseAccum) freezeSubtables() []gtab.Subtable {
	markCov, markArr := a.marks.coverageAndArray()
	numClasses := len(a.marks.classIndex)

	baseGlyphs := append([]glyph.ID(nil), a.baseOrder...)
	baseCov := coverage.New(baseGlyphs)
	baseArr := make([][]*anchor.Table, len(baseCov.Glyphs()))
	for i, g := range baseCov.Glyphs() {
		row := make([]*anchor.Table, numClasses)
		for cls, at := range a.baseAnchors[g] {
			if int(cls) < numClasses {
				row[cls] = at
			}
		}
		baseArr[i] = row
	}
	if a.isMarkToMark {
		return []gtab.Subtable{&gtab.Gpos6_1{Mark1Cov: markCov, Mark2Cov: baseCov, Mark1Array: markArr, Mark2Array: baseArr}}
	}
	return []gtab.Subtable{&gtab.Gpos4_1{MarkCov: markCov, BaseCov: baseCov, MarkArray: markArr, BaseArray: baseArr}}
}

// buildGposMarkToMark implements `position mark base <anchor> mark
// @markclass;` where the "base" is itself a mark glyph (Mark-to-Mark
// Attachment).
func (c *compiler) buildGposMarkToMark(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	bases := c.resolver.resolve(n.Base, &c.diags)
	if bases.Len() == 0 {
		return nil
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypeMarkMark, flags, mfs)
	var acc *markToBaseAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*markToBaseAccum)
	}
	if acc == nil {
		acc = newMarkToMarkAccum()
		c.reg.appendSubtable(acc)
	}

	classID, ok := c.addMarkClass(acc.marks, n.MarkClass, n.Range, &c.diags)
	if !ok {
		return &id
	}
	x, y, contour, hasContour, isNull, anchorOk := c.resolver.resolveAnchor(n.EntryAnchor, &c.diags)
	if !anchorOk {
		return &id
	}
	var mark2Anchor *anchor.Table
	if !isNull {
		mark2Anchor = anchorFromParts(x, y, contour, hasContour)
	}
	for _, g := range bases.IDs() {
		acc.setBase(g, classID, mark2Anchor)
	}
	return &id
}

// buildGposMarkToLigature implements `position ligature lig <anchor> mark
// @class1 ligComponent <anchor> mark @class2 ...;`: each ligature
// component may carry its own anchor per mark class.
func (c *compiler) buildGposMarkToLigature(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	ligs := c.resolver.resolve(n.Base, &c.diags)
	if ligs.Len() == 0 || len(n.LigComponents) == 0 {
		return nil
	}

	id, mayMerge := c.openOrContinue(false, gposLookupTypeMarkLig, flags, mfs)
	var acc *markToLigAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*markToLigAccum)
	}
	if acc == nil {
		acc = newMarkToLigAccum()
		c.reg.appendSubtable(acc)
	}

	numComponents := len(n.LigComponents)
	perComponent := make([]map[uint16]*anchor.Table, numComponents)
	for i, comp := range n.LigComponents {
		perComponent[i] = map[uint16]*anchor.Table{}
		for _, ca := range comp.Classes {
			classID, ok := c.addMarkClass(acc.marks, ca.MarkClass, n.Range, &c.diags)
			if !ok {
				continue
			}
			x, y, contour, hasContour, isNull, anchorOk := c.resolver.resolveAnchor(ca.Anchor, &c.diags)
			if !anchorOk {
				continue
			}
			if !isNull {
				perComponent[i][classID] = anchorFromParts(x, y, contour, hasContour)
			}
		}
	}

	for _, g := range ligs.IDs() {
		acc.setLigature(g, perComponent)
	}
	return &id
}

type markToLigAccum struct {
	marks    *markListAccum
	ligOrder []glyph.ID
	ligData  map[glyph.ID][]map[uint16]*anchor.Table
}

func newMarkToLigAccum() *markToLigAccum {
	return &markToLigAccum{marks: newMarkListAccum(), ligData: map[glyph.ID][]map[uint16]*anchor.Table{}}
}

func (a *markToLigAccum) setLigature(g glyph.ID, perComponent []map[uint16]*anchor.Table) {
	if _, ok := a.ligData[g]; ok {
		return
	}
	a.ligOrder = append(a.ligOrder, g)
	a.ligData[g] = perComponent
}

func (a *markToLigAccum) isSubtable() {}

func (a *markToLigAccum) freezeSubtables() []gtab.Subtable {
	markCov, markArr := a.marks.coverageAndArray()
	numClasses := len(a.marks.classIndex)

	ligGlyphs := append([]glyph.ID(nil), a.ligOrder...)
	ligCov := coverage.New(ligGlyphs)
	ligArr := make([][][]*anchor.Table, len(ligCov.Glyphs()))
	for i, g := range ligCov.Glyphs() {
		components := a.ligData[g]
		rows := make([][]*anchor.Table, len(components))
		for ci, comp := range components {
			row := make([]*anchor.Table, numClasses)
			for cls, at := range comp {
				if int(cls) < numClasses {
					row[cls] = at
				}
			}
			rows[ci] = row
		}
		ligArr[i] = rows
	}
	return []gtab.Subtable{&gtab.Gpos5_1{MarkCov: markCov, LigCov: ligCov, MarkArray: markArr, LigArray: ligArr}}
}
