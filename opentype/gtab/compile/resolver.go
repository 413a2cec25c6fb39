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
	"strconv"

	"seehuhn.de/go/fealayout/glyph"
)

// GlyphMap is the glyph-name/CID to glyph-ID mapping a font supplies to
// the compiler.
type GlyphMap interface {
	// GlyphID looks up a glyph by its source-level name.
	GlyphID(name string) (glyph.ID, bool)
	// CIDToGID looks up a glyph by CID, for CID-keyed fonts. Implementations
	// for name-keyed fonts may always return (0, false).
	CIDToGID(cid uint32) (glyph.ID, bool)
}

// GlyphSet is an ordered, duplicate-free set of glyph IDs: the result of
// resolving any glyph-name, CID, class-reference, range, or inline-class
// AST node.
type GlyphSet struct {
	ids  []glyph.ID
	seen map[glyph.ID]bool
}

func newGlyphSet() *GlyphSet {
	return &GlyphSet{seen: map[glyph.ID]bool{}}
}

func (s *GlyphSet) add(id glyph.ID) {
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
}

func (s *GlyphSet) addAll(other *GlyphSet) {
	for _, id := range other.ids {
		s.add(id)
	}
}

// IDs returns the glyphs of the set in first-seen order, the order a
// feature-definition source lists them matters for GSUB/GPOS coverage
// position.
func (s *GlyphSet) IDs() []glyph.ID {
	return s.ids
}

func (s *GlyphSet) Len() int { return len(s.ids) }

// resolver turns AST glyph/anchor/class references into resolved data,
// tracking the named-class, mark-class and anchorDef registries a source
// file builds up as it is walked top to bottom.
type resolver struct {
	glyphs GlyphMap

	namedClasses map[string]*GlyphSet
	anchorDefs   map[string]*AnchorNode
	markClasses  map[string]*markClass
}

// markClass accumulates the (glyph, anchor) pairs of a markClass
// definition; a single name may be declared more than once to add more
// glyphs.
type markClass struct {
	name    string
	glyphs  []glyph.ID
	anchors map[glyph.ID]*AnchorNode
}

func newResolver(glyphs GlyphMap) *resolver {
	return &resolver{
		glyphs:       glyphs,
		namedClasses: map[string]*GlyphSet{},
		anchorDefs:   map[string]*AnchorNode{},
		markClasses:  map[string]*markClass{},
	}
}

func (r *resolver) defineClass(name string, set *GlyphSet) {
	r.namedClasses[name] = set
}

func (r *resolver) defineAnchor(name string, a *AnchorNode) {
	r.anchorDefs[name] = a
}

func (r *resolver) addMarkClassGlyphs(name string, glyphs *GlyphSet, anchor *AnchorNode) {
	mc := r.markClasses[name]
	if mc == nil {
		mc = &markClass{name: name, anchors: map[glyph.ID]*AnchorNode{}}
		r.markClasses[name] = mc
	}
	for _, g := range glyphs.IDs() {
		if _, ok := mc.anchors[g]; !ok {
			mc.glyphs = append(mc.glyphs, g)
		}
		mc.anchors[g] = anchor
	}
}

// resolveAnchor resolves a source-level anchor expression, following a
// named reference through anchorDef if necessary. isNull true (with ok
// true) represents the OpenType Null anchor.
func (r *resolver) resolveAnchor(n *AnchorNode, diags *List) (x, y int16, contour uint16, hasContour bool, isNull bool, ok bool) {
	if n == nil || n.IsNull {
		return 0, 0, 0, false, true, true
	}
	if n.Name != "" {
		def, found := r.anchorDefs[n.Name]
		if !found {
			diags.errorf(n.Range, "undefined anchor %q", n.Name)
			return 0, 0, 0, false, false, false
		}
		return r.resolveAnchor(def, diags)
	}
	return n.X, n.Y, n.Contour, n.HasContour, false, true
}

// resolveGlyphSet resolves every element of a literal glyph class,
// collecting them in source order with duplicates removed.
func (r *resolver) resolveGlyphSet(n GlyphSetNode, diags *List) *GlyphSet {
	out := newGlyphSet()
	for _, g := range n.Glyphs {
		out.addAll(r.resolve(g, diags))
	}
	return out
}

// resolve resolves a single glyph/class/range AST node to a GlyphSet; a
// bare glyph name resolves to a singleton set.
func (r *resolver) resolve(n GlyphOrClassNode, diags *List) *GlyphSet {
	switch {
	case n.IsRange:
		return r.resolveRange(n, diags)
	case n.ClassName != "":
		set, ok := r.namedClasses[n.ClassName]
		if !ok {
			diags.errorf(n.Range, "undefined glyph class @%s", n.ClassName)
			return newGlyphSet()
		}
		return set
	case n.InlineGlyphs != nil:
		out := newGlyphSet()
		for _, g := range n.InlineGlyphs {
			out.addAll(r.resolve(g, diags))
		}
		return out
	case n.CID != nil:
		return r.resolveCID(*n.CID, n.Range, diags)
	default:
		return r.resolveName(n.GlyphName, n.Range, diags)
	}
}

func (r *resolver) resolveName(name string, rng Range, diags *List) *GlyphSet {
	out := newGlyphSet()
	id, ok := r.glyphs.GlyphID(name)
	if !ok {
		diags.errorf(rng, "glyph %q not found in font", name)
		return out
	}
	out.add(id)
	return out
}

func (r *resolver) resolveCID(cid uint32, rng Range, diags *List) *GlyphSet {
	out := newGlyphSet()
	id, ok := r.glyphs.CIDToGID(cid)
	if !ok {
		diags.errorf(rng, "CID %d not found in font", cid)
		return out
	}
	out.add(id)
	return out
}

// resolveRange resolves a `start - end` range node. CID ranges expand
// numerically; glyph-name ranges use [expandNameRange]'s diff-range
// algorithm. Glyphs missing from the font are reported individually and
// skipped; the rest of the range is still produced even when it is only
// partially covered by the font.
func (r *resolver) resolveRange(n GlyphOrClassNode, diags *List) *GlyphSet {
	out := newGlyphSet()
	start, end := n.RangeStart, n.RangeEnd
	if start == nil || end == nil {
		diags.errorf(n.Range, "malformed range")
		return out
	}

	if start.CID != nil && end.CID != nil {
		lo, hi := *start.CID, *end.CID
		if lo >= hi {
			diags.errorf(n.Range, "range start CID %d is not less than end CID %d", lo, hi)
			return out
		}
		for cid := lo; cid <= hi; cid++ {
			id, ok := r.glyphs.CIDToGID(cid)
			if !ok {
				diags.errorf(n.Range, "CID %d not found in font, skipped", cid)
				continue
			}
			out.add(id)
		}
		return out
	}

	if start.GlyphName != "" && end.GlyphName != "" {
		names, ok := expandNameRange(start.GlyphName, end.GlyphName)
		if !ok {
			diags.errorf(n.Range, "cannot expand range %s - %s", start.GlyphName, end.GlyphName)
			return out
		}
		for _, name := range names {
			id, ok := r.glyphs.GlyphID(name)
			if !ok {
				diags.warnf(n.Range, "glyph %q not found in font, skipped", name)
				continue
			}
			out.add(id)
		}
		return out
	}

	diags.errorf(n.Range, "range endpoints must both be glyph names or both be CIDs")
	return out
}

// expandNameRange implements the "diff range" algorithm: it strips the
// longest common prefix and suffix off both names, and expands what
// remains either as an alphabetic single-letter run (both letters of the
// same case) or as a (possibly zero-padded) decimal counter. It reports
// ok=false when the names differ in length, when the remainders don't fit
// either shape, or when they run in the wrong direction.
func expandNameRange(start, end string) (names []string, ok bool) {
	if len(start) != len(end) {
		return nil, false
	}
	prefixLen := commonPrefixLen(start, end)
	suffixLen := commonSuffixLen(start[prefixLen:], end[prefixLen:])

	// A prefix/suffix boundary that merely happens to land next to a
	// matching digit byte is not genuinely outside the varying middle:
	// extend the diff window outward to absorb any such adjacent digits,
	// so e.g. "A1.hi"-"B1.hi" diffs at "A1"-"B1", not just "A"-"B".
	totalLen := min(len(start), len(end))
	for prefixLen > 0 && prefixLen+suffixLen < totalLen && isDigitByte(start[prefixLen-1]) {
		prefixLen--
	}
	for suffixLen > 0 && prefixLen+suffixLen < totalLen && isDigitByte(start[len(start)-suffixLen]) {
		suffixLen--
	}

	midStart := start[prefixLen : len(start)-suffixLen]
	midEnd := end[prefixLen : len(end)-suffixLen]
	prefix := start[:prefixLen]
	suffix := start[len(start)-suffixLen:]

	if midStart == "" || midEnd == "" {
		return nil, false
	}

	if isAllDigits(midStart) && isAllDigits(midEnd) {
		return expandNumericMid(prefix, suffix, midStart, midEnd)
	}

	if len(midStart) == 1 && len(midEnd) == 1 && isAlpha(midStart[0]) && isAlpha(midEnd[0]) {
		lo, hi := midStart[0], midEnd[0]
		if (lo >= 'A' && lo <= 'Z') != (hi >= 'A' && hi <= 'Z') {
			return nil, false
		}
		if lo > hi {
			return nil, false
		}
		for c := lo; c <= hi; c++ {
			names = append(names, prefix+string(c)+suffix)
		}
		return names, true
	}

	return nil, false
}

func expandNumericMid(prefix, suffix, midStart, midEnd string) ([]string, bool) {
	lo, err1 := strconv.Atoi(midStart)
	hi, err2 := strconv.Atoi(midEnd)
	if err1 != nil || err2 != nil || lo > hi {
		return nil, false
	}
	width := len(midStart)
	var names []string
	for i := lo; i <= hi; i++ {
		names = append(names, prefix+zeroPad(i, width)+suffix)
	}
	return names, true
}

func zeroPad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// classRef resolves a `@name` glyph-class reference used outside a
// GlyphOrClassNode context (for lookupflag mark-attachment and
// mark-filtering-set classes).
func (r *resolver) classRef(n GlyphSetNode, diags *List) *GlyphSet {
	return r.resolveGlyphSet(n, diags)
}

func (r *resolver) requireMarkClass(name string, rng Range, diags *List) *markClass {
	mc, ok := r.markClasses[name]
	if !ok {
		diags.errorf(rng, "undefined mark class @%s", name)
		return nil
	}
	return mc
}
