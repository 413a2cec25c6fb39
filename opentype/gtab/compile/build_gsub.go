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

	"seehuhn.de/go/fealayout/glyph"
	"seehuhn.de/go/fealayout/opentype/coverage"
	"seehuhn.de/go/fealayout/opentype/gtab"
)

const (
	gsubLookupTypeSingle    = 1
	gsubLookupTypeMultiple  = 2
	gsubLookupTypeAlternate = 3
	gsubLookupTypeLigature  = 4
)

// buildRule dispatches one rule statement to the builder for its kind,
// folding it into the currently open lookup when possible and opening a
// new lookup or subtable otherwise. A nil return
// means the rule produced no lookup, either because it is unsupported or
// because it failed to resolve.
func (c *compiler) buildRule(n *Rule, tag gtab.Tag, flags gtab.LookupFlags, markFilteringSet uint16) *gtab.LookupId {
	switch n.Kind {
	case RuleGsubSingle:
		return c.buildGsubSingle(n, flags, markFilteringSet)
	case RuleGsubMultiple:
		return c.buildGsubMultiple(n, flags, markFilteringSet)
	case RuleGsubAlternate:
		return c.buildGsubAlternate(n, flags, markFilteringSet)
	case RuleGsubLigature:
		return c.buildGsubLigature(n, flags, markFilteringSet)
	case RuleGposSingle:
		return c.buildGposSingle(n, tag.IsVertical(), flags, markFilteringSet)
	case RuleGposPair, RuleGposPairEnum:
		return c.buildGposPair(n, flags, markFilteringSet)
	case RuleGposCursive:
		return c.buildGposCursive(n, flags, markFilteringSet)
	case RuleGposMarkToBase:
		return c.buildGposMarkToBase(n, flags, markFilteringSet)
	case RuleGposMarkToLigature:
		return c.buildGposMarkToLigature(n, flags, markFilteringSet)
	case RuleGposMarkToMark:
		return c.buildGposMarkToMark(n, flags, markFilteringSet)
	default:
		desc := n.UnsupportedDescription
		if desc == "" {
			desc = "rule"
		}
		c.diags.warnf(n.Range, "unsupported %s, skipped", desc)
		return nil
	}
}

// openOrContinue returns the lookup a new subtable-worth of rule data
// belongs in, plus whether the caller may try to merge into the lookup's
// last subtable (false when the lookup was just opened, or when an
// explicit `subtable;` break is pending).
func (c *compiler) openOrContinue(isGsub bool, lookupType uint16, flags gtab.LookupFlags, markFilteringSet uint16) (id gtab.LookupId, mayMerge bool) {
	brk := c.reg.takeSubtableBreak()
	if c.reg.needsNewLookup(isGsub, lookupType, flags, markFilteringSet) {
		return c.reg.startLookup(isGsub, lookupType, flags, markFilteringSet), false
	}
	return c.reg.current.id, !brk
}

// lastSubtable returns the last subtable of id's lookup, or nil if there
// is none yet.
func (c *compiler) lastSubtable(id gtab.LookupId) gtab.Subtable {
	t := c.reg.table(id)
	if len(t.Subtables) == 0 {
		return nil
	}
	return t.Subtables[len(t.Subtables)-1]
}

func (c *compiler) resolveSingle(n GlyphOrClassNode, diags *List) glyph.ID {
	set := c.resolver.resolve(n, diags)
	if set.Len() == 0 {
		return 0
	}
	return set.IDs()[0]
}

// buildGsubSingle implements `substitute target by replacement;`, for
// both single-glyph and parallel-class forms.
func (c *compiler) buildGsubSingle(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) != 1 || len(n.Replacement) != 1 {
		c.diags.errorf(n.Range, "single substitution expects exactly one target and one replacement class")
		return nil
	}
	targets := c.resolver.resolve(n.Target[0], &c.diags)
	repls := c.resolver.resolve(n.Replacement[0], &c.diags)
	if targets.Len() == 0 {
		return nil
	}
	if repls.Len() != 1 && repls.Len() != targets.Len() {
		c.diags.errorf(n.Range, "replacement class size (%d) does not match target class size (%d)", repls.Len(), targets.Len())
		return nil
	}

	pairs := map[glyph.ID]glyph.ID{}
	for i, g := range targets.IDs() {
		if repls.Len() == 1 {
			pairs[g] = repls.IDs()[0]
		} else {
			pairs[g] = repls.IDs()[i]
		}
	}

	id, mayMerge := c.openOrContinue(true, gsubLookupTypeSingle, flags, mfs)
	var acc *singleSubAccum
	if mayMerge {
		acc, _ = c.lastSubtable(id).(*singleSubAccum)
	}
	if acc == nil {
		acc = newSingleSubAccum()
		c.reg.appendSubtable(acc)
	}
	for g, repl := range pairs {
		acc.set(g, repl)
	}
	return &id
}

// singleSubAccum accumulates single-substitution pairs before freezing
// into whichever of [gtab.Gsub1_1] (one shared i16 delta) or [gtab.Gsub1_2]
// (an explicit per-glyph list) is smaller: when every accumulated pair
// shares the same (replacement - target) delta, a format-1 subtable says
// the same thing in a fixed 6 bytes regardless of how many glyphs it
// covers.
type singleSubAccum struct {
	order []glyph.ID
	repl  map[glyph.ID]glyph.ID
}

func newSingleSubAccum() *singleSubAccum {
	return &singleSubAccum{repl: map[glyph.ID]glyph.ID{}}
}

func (a *singleSubAccum) set(g, repl glyph.ID) {
	if _, ok := a.repl[g]; !ok {
		a.order = append(a.order, g)
	}
	a.repl[g] = repl
}

func (a *singleSubAccum) isSubtable() {}

func (a *singleSubAccum) freezeSubtables() []gtab.Subtable {
	glyphs := append([]glyph.ID(nil), a.order...)
	cov := coverage.New(glyphs)
	sorted := cov.Glyphs()

	sameDelta := true
	var delta int16
	for i, g := range sorted {
		d := int16(int32(a.repl[g]) - int32(g))
		if i == 0 {
			delta = d
		} else if d != delta {
			sameDelta = false
			break
		}
	}
	if sameDelta && len(sorted) > 0 {
		return []gtab.Subtable{&gtab.Gsub1_1{Cov: cov, Delta: delta}}
	}

	out := make([]glyph.ID, len(sorted))
	for i, g := range sorted {
		out[i] = a.repl[g]
	}
	return []gtab.Subtable{&gtab.Gsub1_2{Cov: cov, SubstituteGlyphIDs: out}}
}

// buildGsubMultiple implements `substitute target by g1 g2 ...;`.
func (c *compiler) buildGsubMultiple(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) != 1 {
		c.diags.errorf(n.Range, "multiple substitution expects exactly one target glyph")
		return nil
	}
	target := c.resolveSingle(n.Target[0], &c.diags)
	var repl []glyph.ID
	for _, r := range n.Replacement {
		repl = append(repl, c.resolveSingle(r, &c.diags))
	}

	id, mayMerge := c.openOrContinue(true, gsubLookupTypeMultiple, flags, mfs)
	if mayMerge {
		if st, ok := c.lastSubtable(id).(*multiSubAccum); ok {
			st.set(target, repl)
			return &id
		}
	}
	acc := newMultiSubAccum()
	acc.set(target, repl)
	c.reg.appendSubtable(acc)
	return &id
}

// multiSubAccum accumulates multiple-substitution entries before they are
// frozen into a [gtab.Gsub2_1] (coverage order is only known once every
// target glyph for this subtable has been seen).
type multiSubAccum struct {
	repl map[glyph.ID][]glyph.ID
}

func newMultiSubAccum() *multiSubAccum { return &multiSubAccum{repl: map[glyph.ID][]glyph.ID{}} }

func (a *multiSubAccum) set(target glyph.ID, repl []glyph.ID) {
	if _, ok := a.repl[target]; !ok {
		a.repl[target] = repl
	}
}

func (a *multiSubAccum) isSubtable() {}

// freezeSubtables is called during output assembly to turn every
// multiSubAccum (and the analogous alternate/ligature-substitution
// accumulators) still present in a lookup into its final coverage-ordered
// subtable form.
func (a *multiSubAccum) freezeSubtables() []gtab.Subtable {
	var glyphs []glyph.ID
	for g := range a.repl {
		glyphs = append(glyphs, g)
	}
	cov := coverage.New(glyphs)
	out := make([][]glyph.ID, len(cov.Glyphs()))
	for i, g := range cov.Glyphs() {
		out[i] = a.repl[g]
	}
	return []gtab.Subtable{&gtab.Gsub2_1{Cov: cov, Repl: out}}
}

// buildGsubAlternate implements `substitute target from [alternates];`.
func (c *compiler) buildGsubAlternate(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) != 1 || len(n.Replacement) != 1 {
		c.diags.errorf(n.Range, "alternate substitution expects one target glyph and one alternate class")
		return nil
	}
	target := c.resolveSingle(n.Target[0], &c.diags)
	alts := c.resolver.resolve(n.Replacement[0], &c.diags)

	id, mayMerge := c.openOrContinue(true, gsubLookupTypeAlternate, flags, mfs)
	if mayMerge {
		if st, ok := c.lastSubtable(id).(*altSubAccum); ok {
			st.set(target, alts.IDs())
			return &id
		}
	}
	acc := newAltSubAccum()
	acc.set(target, alts.IDs())
	c.reg.appendSubtable(acc)
	return &id
}

type altSubAccum struct {
	alts map[glyph.ID][]glyph.ID
}

func newAltSubAccum() *altSubAccum { return &altSubAccum{alts: map[glyph.ID][]glyph.ID{}} }

func (a *altSubAccum) set(target glyph.ID, alts []glyph.ID) {
	if _, ok := a.alts[target]; !ok {
		a.alts[target] = alts
	}
}

func (a *altSubAccum) isSubtable() {}

func (a *altSubAccum) freezeSubtables() []gtab.Subtable {
	var glyphs []glyph.ID
	for g := range a.alts {
		glyphs = append(glyphs, g)
	}
	cov := coverage.New(glyphs)
	out := make([][]glyph.ID, len(cov.Glyphs()))
	for i, g := range cov.Glyphs() {
		out[i] = a.alts[g]
	}
	return []gtab.Subtable{&gtab.Gsub3_1{Cov: cov, Alternates: out}}
}

// buildGsubLigature implements `substitute g1 g2 ... by lig;`.
func (c *compiler) buildGsubLigature(n *Rule, flags gtab.LookupFlags, mfs uint16) *gtab.LookupId {
	if len(n.Target) < 2 || len(n.Replacement) != 1 {
		c.diags.errorf(n.Range, "ligature substitution expects at least two target glyphs and one replacement glyph")
		return nil
	}
	var comp []glyph.ID
	for _, t := range n.Target {
		comp = append(comp, c.resolveSingle(t, &c.diags))
	}
	out := c.resolveSingle(n.Replacement[0], &c.diags)

	id, mayMerge := c.openOrContinue(true, gsubLookupTypeLigature, flags, mfs)
	if mayMerge {
		if st, ok := c.lastSubtable(id).(*ligSubAccum); ok {
			st.add(comp, out)
			return &id
		}
	}
	acc := newLigSubAccum()
	acc.add(comp, out)
	c.reg.appendSubtable(acc)
	return &id
}

// ligSubAccum accumulates ligature rules keyed by their first component
// glyph. freezeSubtables puts longer (more specific) component sequences
// first, keeping declaration order among sequences of equal length, so the
// first matching entry at apply time is the most specific one.
type ligSubAccum struct {
	order   []glyph.ID
	byFirst map[glyph.ID][]gtab.Ligature
}

func newLigSubAccum() *ligSubAccum {
	return &ligSubAccum{byFirst: map[glyph.ID][]gtab.Ligature{}}
}

func (a *ligSubAccum) add(comp []glyph.ID, out glyph.ID) {
	first := comp[0]
	if _, ok := a.byFirst[first]; !ok {
		a.order = append(a.order, first)
	}
	a.byFirst[first] = append(a.byFirst[first], gtab.Ligature{In: comp[1:], Out: out})
}

func (a *ligSubAccum) isSubtable() {}

func (a *ligSubAccum) freezeSubtables() []gtab.Subtable {
	glyphs := append([]glyph.ID(nil), a.order...)
	cov := coverage.New(glyphs)
	out := make([][]gtab.Ligature, len(cov.Glyphs()))
	for i, g := range cov.Glyphs() {
		ligs := append([]gtab.Ligature(nil), a.byFirst[g]...)
		sort.SliceStable(ligs, func(x, y int) bool { return len(ligs[x].In) > len(ligs[y].In) })
		out[i] = ligs
	}
	return []gtab.Subtable{&gtab.Gsub4_1{Cov: cov, Repl: out}}
}
