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
	"seehuhn.de/go/fealayout/opentype/gtab"
)

// maxMarkAttachClasses is the largest number of distinct
// MarkAttachmentType classes this compiler accepts: the field is 8 bits
// wide in LookupFlags, but a compiler following common practice caps
// itself well below that to keep the class set meaningful.
const maxMarkAttachClasses = 15

// markAttachClassSet is one MarkAttachmentType class registered so far:
// the glyphs it covers, plus the 1-based class index assigned to it.
type markAttachClassSet struct {
	glyphs map[glyph.ID]bool
	id     uint16
}

// resolveLookupFlags turns a lookupflag statement into the runtime
// [gtab.LookupFlags] bitset, registering any MarkAttachmentType glyph set
// referenced along the way and reporting an error when it overlaps a
// previously registered class or when the class budget is exhausted.
func (c *compiler) resolveLookupFlags(n *LookupFlagStmt, diags *List) gtab.LookupFlags {
	// A lookupflag statement replaces whatever mark-filtering-set was
	// carried by the previous one; the set named here (if any) then
	// stays in effect for every rule until the next lookupflag.
	c.pendingMarkFilteringSet = nil

	if n == nil {
		return 0
	}
	if n.NumberSet {
		return gtab.LookupFlags(n.Literal)
	}

	var flags gtab.LookupFlags
	if n.RightToLeft {
		flags |= gtab.RightToLeft
	}
	if n.IgnoreBaseGlyphs {
		flags |= gtab.IgnoreBaseGlyphs
	}
	if n.IgnoreLigatures {
		flags |= gtab.IgnoreLigatures
	}
	if n.IgnoreMarks {
		flags |= gtab.IgnoreMarks
	}

	if n.MarkAttachClass != nil {
		set := c.resolver.classRef(*n.MarkAttachClass, diags)
		id, ok := c.registerMarkAttachClass(set, n.MarkAttachClass.Range, diags)
		if ok {
			flags |= gtab.LookupFlags(id) << 8
		}
	}

	if n.MarkFilterSet != nil {
		set := c.resolver.classRef(*n.MarkFilterSet, diags)
		idx := c.registerMarkFilterSet(set)
		flags |= gtab.UseMarkFilteringSet
		c.pendingMarkFilteringSet = &idx
	}

	return flags
}

// registerMarkAttachClass assigns a 1-based class index to set; when an
// identical glyph set was registered before, it reuses that index;
// overlapping-but-not-identical sets are rejected.
func (c *compiler) registerMarkAttachClass(set *GlyphSet, rng Range, diags *List) (uint16, bool) {
	glyphs := map[glyph.ID]bool{}
	for _, g := range set.IDs() {
		glyphs[g] = true
	}

	for _, existing := range c.markAttachClasses {
		if setsEqual(existing.glyphs, glyphs) {
			return existing.id, true
		}
		if setsOverlap(existing.glyphs, glyphs) {
			diags.errorf(rng, "MarkAttachmentType glyph class overlaps a previously defined class")
			return 0, false
		}
	}

	if len(c.markAttachClasses) >= maxMarkAttachClasses {
		diags.errorf(rng, "too many distinct MarkAttachmentType classes (max %d)", maxMarkAttachClasses)
		return 0, false
	}

	id := uint16(len(c.markAttachClasses) + 1)
	c.markAttachClasses = append(c.markAttachClasses, markAttachClassSet{glyphs: glyphs, id: id})
	return id, true
}

// registerMarkFilterSet interns set into the compiler's mark-filtering-set
// table, returning its index. Identical sets (by glyph membership) share
// one index.
func (c *compiler) registerMarkFilterSet(set *GlyphSet) uint16 {
	glyphs := map[glyph.ID]bool{}
	for _, g := range set.IDs() {
		glyphs[g] = true
	}
	for i, existing := range c.markFilterSets {
		if setsEqual(existing, glyphs) {
			return uint16(i)
		}
	}
	c.markFilterSets = append(c.markFilterSets, glyphs)
	return uint16(len(c.markFilterSets) - 1)
}

func setsEqual(a, b map[glyph.ID]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for g := range a {
		if !b[g] {
			return false
		}
	}
	return true
}

func setsOverlap(a, b map[glyph.ID]bool) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for g := range small {
		if big[g] {
			return true
		}
	}
	return false
}
