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

package gtab

// FeatureIndex enumerates entries of a [FeatureList]. The sentinel
// NoRequiredFeature (0xFFFF) marks a language system with no required
// feature, matching OpenType's own sentinel value.
type FeatureIndex uint16

// NoRequiredFeature is the FeatureIndex sentinel meaning "no required
// feature for this language system".
const NoRequiredFeature FeatureIndex = 0xFFFF

// Feature is one entry of a [FeatureList]: a feature tag together with
// the lookups it selects in this table (GSUB or GPOS; a feature using
// both gets one Feature entry per table).
type Feature struct {
	Tag     Tag
	Lookups []LookupIndex
}

// FeatureList is an OpenType "Feature List Table". Entries are
// deduplicated by (tag, lookup list) during output assembly: two language
// systems that select the exact same feature share one entry.
type FeatureList []*Feature

// LanguageSystem is an OpenType "LangSys Table": the required feature (if
// any) and the complete list of features, for one script/language pair.
type LanguageSystem struct {
	Required FeatureIndex // NoRequiredFeature if none
	Features []FeatureIndex
}

// Script is an OpenType "Script Table": an optional default language
// system (selected by the `dflt` language tag) plus any number of
// explicitly named language systems.
type Script struct {
	DefaultLanguageSystem *LanguageSystem
	Languages             map[Tag]*LanguageSystem
}

// ScriptList is an OpenType "Script List Table".
type ScriptList map[Tag]*Script

// Table is the structured, not-yet-serialized representation of a
// complete GSUB or GPOS table: its lookups, the feature list that names
// which lookups each feature selects, and the script list that selects
// features by script/language. Assembling these into the final table bytes
// (offsets, header fields) is the job of a downstream byte-serializer and
// is out of scope for this module.
type Table struct {
	Lookups  LookupList
	Features FeatureList
	Scripts  ScriptList
}
