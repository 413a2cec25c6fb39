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

import "seehuhn.de/go/fealayout/opentype/gtab"

// lookupRegistry owns the growing GSUB and GPOS lookup lists and decides,
// rule by rule, whether the current rule belongs in the lookup that is
// already open or needs a fresh one: a new lookup
// is required whenever the table (GSUB/GPOS), lookup type, lookup flags,
// or mark-filtering-set of the incoming rule differs from those of the
// lookup currently being built.
type lookupRegistry struct {
	gsubLookups []*gtab.LookupTable
	gposLookups []*gtab.LookupTable

	// named maps a `lookup name { ... }` block to the LookupId it was
	// assigned, so that a later bare `lookup name;` reference can bind
	// the same lookup into another feature/script/language scope.
	named map[string]gtab.LookupId

	current *openLookup
}

// openLookup describes the lookup currently accepting new subtables.
type openLookup struct {
	id               gtab.LookupId
	lookupType       uint16
	flags            gtab.LookupFlags
	markFilteringSet uint16

	// subtableBreakPending is set by a `subtable;` statement: the next
	// subtable-builder flush must start a fresh subtable even if it
	// otherwise could have merged into the last one.
	subtableBreakPending bool
}

func newLookupRegistry() *lookupRegistry {
	return &lookupRegistry{named: map[string]gtab.LookupId{}}
}

// needsNewLookup reports whether a rule with the given shape needs a new
// lookup, i.e. cannot be folded into the currently open lookup.
func (reg *lookupRegistry) needsNewLookup(isGsub bool, lookupType uint16, flags gtab.LookupFlags, markFilteringSet uint16) bool {
	c := reg.current
	if c == nil {
		return true
	}
	return c.id.IsGsub() != isGsub ||
		c.lookupType != lookupType ||
		c.flags != flags ||
		c.markFilteringSet != markFilteringSet
}

// startLookup closes whatever lookup is currently open and opens a new
// one, returning its id.
func (reg *lookupRegistry) startLookup(isGsub bool, lookupType uint16, flags gtab.LookupFlags, markFilteringSet uint16) gtab.LookupId {
	reg.finishCurrent()

	meta := &gtab.LookupMetaInfo{LookupType: lookupType, LookupFlags: flags, MarkFilteringSet: markFilteringSet}
	lt := &gtab.LookupTable{Meta: meta}

	var id gtab.LookupId
	if isGsub {
		reg.gsubLookups = append(reg.gsubLookups, lt)
		id = gtab.GsubLookupId(gtab.LookupIndex(len(reg.gsubLookups) - 1))
	} else {
		reg.gposLookups = append(reg.gposLookups, lt)
		id = gtab.GposLookupId(gtab.LookupIndex(len(reg.gposLookups) - 1))
	}

	reg.current = &openLookup{id: id, lookupType: lookupType, flags: flags, markFilteringSet: markFilteringSet}
	return id
}

// currentTable returns the [gtab.LookupTable] backing the currently open
// lookup, or nil if none is open.
func (reg *lookupRegistry) currentTable() *gtab.LookupTable {
	if reg.current == nil {
		return nil
	}
	return reg.table(reg.current.id)
}

func (reg *lookupRegistry) table(id gtab.LookupId) *gtab.LookupTable {
	if id.IsGsub() {
		return reg.gsubLookups[id.Index()]
	}
	return reg.gposLookups[id.Index()]
}

// addSubtableBreak records an explicit `subtable;` statement against the
// currently open lookup.
func (reg *lookupRegistry) addSubtableBreak() {
	if reg.current != nil {
		reg.current.subtableBreakPending = true
	}
}

// takeSubtableBreak reports and clears whether a subtable break is
// pending for the currently open lookup.
func (reg *lookupRegistry) takeSubtableBreak() bool {
	if reg.current == nil {
		return false
	}
	pending := reg.current.subtableBreakPending
	reg.current.subtableBreakPending = false
	return pending
}

// appendSubtable appends a finished subtable to the currently open
// lookup.
func (reg *lookupRegistry) appendSubtable(st gtab.Subtable) {
	t := reg.currentTable()
	if t == nil {
		return
	}
	t.Subtables = append(t.Subtables, st)
}

// finishCurrent closes the currently open lookup without naming it.
func (reg *lookupRegistry) finishCurrent() {
	reg.current = nil
}

// finishNamed closes the currently open lookup, recording its id under
// name so a later `lookup name;` reference resolves to the same LookupId.
func (reg *lookupRegistry) finishNamed(name string) gtab.LookupId {
	var id gtab.LookupId
	if reg.current != nil {
		id = reg.current.id
		reg.named[name] = id
	}
	reg.finishCurrent()
	return id
}

// lookup resolves a previously named lookup block.
func (reg *lookupRegistry) lookup(name string) (gtab.LookupId, bool) {
	id, ok := reg.named[name]
	return id, ok
}
