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

// langSysKey identifies one script/language pair a feature can be
// registered against.
type langSysKey struct{ Script, Language gtab.Tag }

// langSysAccum is the ordered, duplicate-free list of lookups one feature
// contributes to one language system.
type langSysAccum struct {
	lookups []gtab.LookupId
	seen    map[gtab.LookupId]bool
}

func (a *langSysAccum) add(id gtab.LookupId) {
	if a.seen == nil {
		a.seen = map[gtab.LookupId]bool{}
	}
	if a.seen[id] {
		return
	}
	a.seen[id] = true
	a.lookups = append(a.lookups, id)
}

// featureReg accumulates, for one feature tag, the lookups registered for
// every language system the feature was used in.
type featureReg struct {
	tag     gtab.Tag
	entries map[langSysKey]*langSysAccum
}

func newFeatureReg(tag gtab.Tag) *featureReg {
	return &featureReg{tag: tag, entries: map[langSysKey]*langSysAccum{}}
}

func (f *featureReg) accum(key langSysKey) *langSysAccum {
	a, ok := f.entries[key]
	if !ok {
		a = &langSysAccum{}
		f.entries[key] = a
	}
	return a
}

// featureScope tracks the current script/language cursor while walking
// the statements of one feature block. explicit is
// false until the first `script`/`language` statement is seen; while
// false, rules apply to every language system declared at the top of the
// file via `languagesystem` (AFDKO default-scope semantics).
type featureScope struct {
	explicit bool
	script   gtab.Tag
	language gtab.Tag
}

func newFeatureScope() *featureScope {
	return &featureScope{}
}

// targets returns the langSysKeys a rule registered under the current
// scope should be added to.
func (s *featureScope) targets(languageSystems []gtab.ScriptLang) []langSysKey {
	if !s.explicit {
		if len(languageSystems) == 0 {
			return []langSysKey{{Script: gtab.ScriptDFLT, Language: gtab.LangDFLT}}
		}
		keys := make([]langSysKey, len(languageSystems))
		for i, sl := range languageSystems {
			keys[i] = langSysKey{Script: sl.Script, Language: sl.Language}
		}
		return keys
	}
	return []langSysKey{{Script: s.script, Language: s.language}}
}

func (c *compiler) compileFeatureBlock(fb *FeatureBlock) {
	reg := c.featureRegs[fb.Tag]
	if reg == nil {
		reg = newFeatureReg(fb.Tag)
		c.featureRegs[fb.Tag] = reg
		c.featureOrder = append(c.featureOrder, fb.Tag)
	}

	scope := newFeatureScope()
	var flags gtab.LookupFlags

	c.checkReservedFeature(fb)

	for _, item := range fb.Items {
		c.compileFeatureItem(item, fb.Tag, reg, scope, &flags)
	}
	c.reg.finishCurrent()
}

func (c *compiler) compileFeatureItem(item FeatureItem, tag gtab.Tag, reg *featureReg, scope *featureScope, flags *gtab.LookupFlags) {
	switch n := item.(type) {
	case *GlyphClassDef:
		set := c.resolver.resolveGlyphSet(n.Set, &c.diags)
		c.resolver.defineClass(n.Name, set)

	case *MarkClassDef:
		glyphs := c.resolver.resolveGlyphSet(n.Glyphs, &c.diags)
		c.resolver.addMarkClassGlyphs(n.Name, glyphs, &n.Anchor)

	case *ScriptStmt:
		if tag == gtab.AALT || tag == gtab.SIZE {
			c.diags.errorf(n.Range, "script statements are not allowed inside feature %q", tag.String())
			return
		}
		scope.explicit = true
		scope.script = n.Script
		c.enterLanguage(reg, scope, gtab.LangDFLT, false)

	case *LanguageStmt:
		if tag == gtab.AALT || tag == gtab.SIZE {
			c.diags.errorf(n.Range, "language statements are not allowed inside feature %q", tag.String())
			return
		}
		scope.explicit = true
		c.enterLanguage(reg, scope, n.Language, n.ExcludeDflt)
		if n.Required {
			key := langSysKey{Script: scope.script, Language: scope.language}
			c.requiredFeature[key] = tag
		}

	case *LookupFlagStmt:
		*flags = c.resolveLookupFlags(n, &c.diags)

	case *SubtableStmt:
		c.reg.addSubtableBreak()

	case *LookupRef:
		id, ok := c.reg.lookup(n.Name)
		if !ok {
			c.diags.errorf(n.Range, "undefined lookup %q", n.Name)
			return
		}
		c.registerLookup(tag, reg, scope, id)

	case *LookupBlockDef:
		if tag.String() == "aalt" {
			c.diags.errorf(n.Range, "named lookup blocks are not allowed inside feature \"aalt\"")
			return
		}
		c.reg.finishCurrent()
		var nestedFlags gtab.LookupFlags
		nestedScope := newFeatureScope()
		*nestedScope = *scope
		for _, sub := range n.Items {
			c.compileFeatureItem(sub, tag, reg, nestedScope, &nestedFlags)
		}
		id := c.reg.finishNamed(n.Name)
		c.registerLookup(tag, reg, scope, id)

	case *Rule:
		var markFilteringSet uint16
		if c.pendingMarkFilteringSet != nil {
			markFilteringSet = *c.pendingMarkFilteringSet
		}
		id := c.buildRule(n, tag, *flags, markFilteringSet)
		if id != nil {
			c.registerLookup(tag, reg, scope, *id)
		}
	}
}

// registerLookup adds id to every language system the current scope
// targets.
func (c *compiler) registerLookup(tag gtab.Tag, reg *featureReg, scope *featureScope, id gtab.LookupId) {
	for _, key := range scope.targets(c.languageSystems) {
		reg.accum(key).add(id)
	}
}

// enterLanguage moves scope onto language under the current script,
// inheriting the lookups already registered for the script's own "dflt"
// language system unless excludeDflt is set (default-language
// inheritance). A `script s;` statement calls this with language set to
// dflt, since it acts as `language dflt;` under s.
func (c *compiler) enterLanguage(reg *featureReg, scope *featureScope, language gtab.Tag, excludeDflt bool) {
	scope.language = language
	if excludeDflt {
		return
	}
	key := langSysKey{Script: scope.script, Language: language}
	dflt := langSysKey{Script: scope.script, Language: gtab.LangDFLT}
	for _, id := range reg.accum(dflt).lookups {
		reg.accum(key).add(id)
	}
}

// checkReservedFeature warns when "aalt" or "size" is compiled as an
// ordinary feature: these two feature tags have special, shaping-engine-level
// meanings that this module's general rule-to-lookup pipeline does not
// implement.
func (c *compiler) checkReservedFeature(fb *FeatureBlock) {
	switch fb.Tag.String() {
	case "aalt":
		c.diags.warnf(fb.Range, "feature \"aalt\" (all alternates) is compiled as an ordinary feature, without alternate-aggregation across other features")
	case "size":
		c.diags.warnf(fb.Range, "feature \"size\" (optical size parameters) is compiled as an ordinary feature, without its special design-size parameter block")
	}
}
