// seehuhn.de/go/fealayout - a feature-definition compiler for OpenType fonts
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

import (
	"seehuhn.de/go/fealayout/opentype/anchor"
	"seehuhn.de/go/fealayout/opentype/coverage"
	"seehuhn.de/go/fealayout/opentype/markarray"
)

// Gpos5_1 is a Mark-to-Ligature Attachment Positioning Subtable (format
// 1): each ligature component may carry its own anchor per mark class.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#lookup-type-5-mark-to-ligature-attachment-positioning-subtable
type Gpos5_1 struct {
	MarkCov   coverage.Table
	LigCov    coverage.Table
	MarkArray []markarray.Record  // indexed by mark coverage index
	LigArray  [][][]*anchor.Table // indexed by (ligature coverage index, component, mark class)
}

func (*Gpos5_1) isSubtable() {}
