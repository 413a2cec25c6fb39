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
	"strings"

	"seehuhn.de/go/fealayout/opentype/gtab"
)

// freezable is implemented by the mutable accumulator types the rule
// builders append to a lookup while it is still open; buildOutput
// replaces every one of them with its final, coverage-ordered subtable(s)
// before the table is handed to the caller. Most accumulators freeze to
// exactly one subtable; singlePosAccum can split into several.
type freezable interface {
	freezeSubtables() []gtab.Subtable
}

func freezeLookups(lookups []*gtab.LookupTable) {
	for _, lt := range lookups {
		var out []gtab.Subtable
		for _, st := range lt.Subtables {
			if f, ok := st.(freezable); ok {
				out = append(out, f.freezeSubtables()...)
			} else {
				out = append(out, st)
			}
		}
		lt.Subtables = out
	}
}

// buildOutput assembles the final [Output] from the compiler's lookup
// registry and per-feature language-system registrations. A table (GSUB or
// GPOS) is omitted entirely when the source defined no lookups for it.
func (c *compiler) buildOutput() *Output {
	freezeLookups(c.reg.gsubLookups)
	freezeLookups(c.reg.gposLookups)

	return &Output{
		GSUB: c.buildTable(true),
		GPOS: c.buildTable(false),
	}
}

func (c *compiler) buildTable(isGsub bool) *gtab.Table {
	lookups := c.reg.gposLookups
	if isGsub {
		lookups = c.reg.gsubLookups
	}
	if len(lookups) == 0 {
		return nil
	}

	tags := append([]gtab.Tag(nil), c.featureOrder...)
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })

	type featureKey struct {
		tag     gtab.Tag
		indices string
	}
	featureCache := map[featureKey]gtab.FeatureIndex{}
	var featureList gtab.FeatureList
	scripts := gtab.ScriptList{}

	for _, tag := range tags {
		reg := c.featureRegs[tag]
		keys := make([]langSysKey, 0, len(reg.entries))
		for k := range reg.entries {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Script != keys[j].Script {
				return keys[i].Script.Less(keys[j].Script)
			}
			return keys[i].Language.Less(keys[j].Language)
		})

		for _, key := range keys {
			accum := reg.entries[key]
			var indices []gtab.LookupIndex
			for _, id := range accum.lookups {
				if id.IsGsub() == isGsub {
					indices = append(indices, id.Index())
				}
			}
			isRequired := c.requiredFeature[key] == tag
			if len(indices) == 0 && !isRequired {
				continue
			}

			fk := featureKey{tag: tag, indices: indexKey(indices)}
			idx, ok := featureCache[fk]
			if !ok {
				idx = gtab.FeatureIndex(len(featureList))
				featureList = append(featureList, &gtab.Feature{Tag: tag, Lookups: indices})
				featureCache[fk] = idx
			}

			s := scripts[key.Script]
			if s == nil {
				s = &gtab.Script{Languages: map[gtab.Tag]*gtab.LanguageSystem{}}
				scripts[key.Script] = s
			}

			var ls *gtab.LanguageSystem
			if key.Language == gtab.LangDFLT {
				if s.DefaultLanguageSystem == nil {
					s.DefaultLanguageSystem = &gtab.LanguageSystem{Required: gtab.NoRequiredFeature}
				}
				ls = s.DefaultLanguageSystem
			} else {
				ls = s.Languages[key.Language]
				if ls == nil {
					ls = &gtab.LanguageSystem{Required: gtab.NoRequiredFeature}
					s.Languages[key.Language] = ls
				}
			}

			ls.Features = append(ls.Features, idx)
			if isRequired {
				ls.Required = idx
			}
		}
	}

	if len(featureList) == 0 {
		return nil
	}

	return &gtab.Table{Lookups: lookups, Features: featureList, Scripts: scripts}
}

func indexKey(idx []gtab.LookupIndex) string {
	var b strings.Builder
	for _, i := range idx {
		b.WriteByte(byte(i >> 8))
		b.WriteByte(byte(i))
	}
	return b.String()
}
