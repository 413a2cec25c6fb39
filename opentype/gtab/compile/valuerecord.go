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

// resolveValueRecord turns a source-level value record into the runtime
// [gtab.ValueRecord]. A bare scalar value record always sets XAdvance,
// even inside a vertical feature, since the grammar gives it no way to
// say which axis was meant; a warning flags the ambiguity.
func (c *compiler) resolveValueRecord(n *ValueRecordNode, vertical bool, diags *List) *gtab.ValueRecord {
	if n == nil || n.Empty {
		return nil
	}

	if n.Named {
		diags.warnf(n.Range, "named value record %q not implemented, ignored", n.NamedName)
		return nil
	}

	if n.Scalar {
		v := n.ScalarValue
		if vertical {
			diags.warnf(n.Range, "bare value record in vertical feature interpreted as x-advance")
		}
		return &gtab.ValueRecord{XAdvance: &v}
	}

	if n.Full {
		// All four fields of a <a b c d> value record are syntactically
		// present regardless of value, so an explicit 0 must still set
		// the field: the format is presence-based, not value-based.
		xPlacement, yPlacement, xAdvance, yAdvance := n.XPlacement, n.YPlacement, n.XAdvance, n.YAdvance
		return &gtab.ValueRecord{
			XPlacement: &xPlacement,
			YPlacement: &yPlacement,
			XAdvance:   &xAdvance,
			YAdvance:   &yAdvance,
		}
	}

	return nil
}
