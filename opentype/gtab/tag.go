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

// Tag is a four-byte ASCII identifier, as used throughout OpenType for
// scripts, languages, and features.
type Tag [4]byte

// Reserved tags with special treatment in OpenType layout tables.
var (
	ScriptDFLT = MustTag("DFLT")
	LangDFLT   = MustTag("dflt")
	AALT       = MustTag("aalt")
	SIZE       = MustTag("size")
)

// Vertical-writing feature tags; a bare scalar value record inside one of
// these features still sets XAdvance, but draws a warning.
var verticalFeatures = map[Tag]bool{
	MustTag("vert"): true,
	MustTag("vkrn"): true,
	MustTag("vpal"): true,
	MustTag("vhal"): true,
}

// IsVertical reports whether t is one of the feature tags conventionally
// applied to vertical text.
func (t Tag) IsVertical() bool {
	return verticalFeatures[t]
}

// NewTag builds a Tag from a string, space-padding it to four bytes as
// OpenType requires.
func NewTag(s string) (Tag, bool) {
	if len(s) == 0 || len(s) > 4 {
		return Tag{}, false
	}
	var t Tag
	copy(t[:], "    ")
	copy(t[:], s)
	return t, true
}

// MustTag is like NewTag but panics on an invalid tag; it is meant for
// tags that are fixed at compile time (package-level constants), not for
// parsing untrusted input.
func MustTag(s string) Tag {
	t, ok := NewTag(s)
	if !ok {
		panic("gtab: invalid tag " + s)
	}
	return t
}

// String returns the tag's four characters.
func (t Tag) String() string {
	return string(t[:])
}

// Less reports whether t sorts before other in the total lexicographic
// order FeatureKey relies on for deterministic iteration.
func (t Tag) Less(other Tag) bool {
	return string(t[:]) < string(other[:])
}

// FeatureKey is the triple (feature, script, language) used to index the
// compiled feature table. Ordering is total and lexicographic over the
// three tags in that order, which is what makes feature-index assembly
// deterministic.
type FeatureKey struct {
	Feature  Tag
	Script   Tag
	Language Tag
}

// NewFeatureKey builds the key (feature, DFLT, dflt) that every feature
// block starts from before any script/language statement narrows it.
func NewFeatureKey(feature Tag) FeatureKey {
	return FeatureKey{Feature: feature, Script: ScriptDFLT, Language: LangDFLT}
}

// WithScript returns a copy of k with its script replaced.
func (k FeatureKey) WithScript(script Tag) FeatureKey {
	k.Script = script
	return k
}

// WithLanguage returns a copy of k with its language replaced.
func (k FeatureKey) WithLanguage(language Tag) FeatureKey {
	k.Language = language
	return k
}

// Less implements the total lexicographic order over (feature, script,
// language).
func (k FeatureKey) Less(other FeatureKey) bool {
	if k.Feature != other.Feature {
		return k.Feature.Less(other.Feature)
	}
	if k.Script != other.Script {
		return k.Script.Less(other.Script)
	}
	return k.Language.Less(other.Language)
}

// ScriptLang is a script/language pair, as declared by a source file's
// top-level `languagesystem script language;` statements.
type ScriptLang struct {
	Script, Language Tag
}
