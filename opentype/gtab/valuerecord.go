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

import "seehuhn.de/go/postscript/funit"

// ValueFormat is the bitset of which ValueRecord fields are present, as
// used by GPOS value records.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#value-record
type ValueFormat uint16

// Bit values for ValueFormat.
const (
	XPlacement ValueFormat = 1 << iota
	YPlacement
	XAdvance
	YAdvance
	XPlaDevice
	YPlaDevice
	XAdvDevice
	YAdvDevice
)

// VariationIndex names an entry in an externally-provided variation store;
// it is only meaningful when that field's value came from a variable-font
// delta expression.
type VariationIndex struct {
	OuterIndex, InnerIndex uint16
}

// VarStore is the externally-provided builder that resolves a variable
// scalar into a shared set of per-instance deltas, returning the index a
// ValueRecord or Anchor uses to reference it. Variation/instancing stores
// are treated as an external collaborator; this is the narrow interface
// this module needs from one.
type VarStore interface {
	Add(deltas []int16) VariationIndex
}

// ValueRecord is a sparse set of GPOS positioning adjustments. A field is
// "present" when its pointer is non-nil; the Format method derives the
// value-format bitset from exactly that.
type ValueRecord struct {
	XPlacement, YPlacement *int16
	XAdvance, YAdvance     *int16

	// VarIndex holds one VariationIndex per present field that was
	// resolved from a variable scalar, in the same order as the four
	// fields above, omitting absent fields. Callers that never supply a
	// VarStore never populate this and may ignore it.
	VarIndex []VariationIndex
}

// Format returns the bitset of fields present in r. A nil receiver (the
// empty value record) has format 0.
func (r *ValueRecord) Format() ValueFormat {
	if r == nil {
		return 0
	}
	var f ValueFormat
	if r.XPlacement != nil {
		f |= XPlacement
	}
	if r.YPlacement != nil {
		f |= YPlacement
	}
	if r.XAdvance != nil {
		f |= XAdvance
	}
	if r.YAdvance != nil {
		f |= YAdvance
	}
	return f
}

// Equal reports whether r and other have identical fields.
func (r *ValueRecord) Equal(other *ValueRecord) bool {
	if r.Format() != other.Format() {
		return false
	}
	return int16Eq(r.XPlacement, other.XPlacement) &&
		int16Eq(r.YPlacement, other.YPlacement) &&
		int16Eq(r.XAdvance, other.XAdvance) &&
		int16Eq(r.YAdvance, other.YAdvance)
}

func int16Eq(a, b *int16) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FormatCompatible reports whether r and other share the same value
// format, regardless of the actual field values.
func (r *ValueRecord) FormatCompatible(other *ValueRecord) bool {
	return r.Format() == other.Format()
}

// XAdvanceRecord builds a value record holding only an x-advance, the
// shape produced when a bare integer literal is resolved.
func XAdvanceRecord(dx funit.Int16) *ValueRecord {
	v := int16(dx)
	return &ValueRecord{XAdvance: &v}
}
