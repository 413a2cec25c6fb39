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

package markarray

import (
	"testing"

	"seehuhn.de/go/fealayout/opentype/anchor"
)

func TestEncodeLen(t *testing.T) {
	cases := []struct {
		records []Record
		want    int
	}{
		{nil, 2},
		{[]Record{{Class: 0, Anchor: anchor.Coord(0, 0)}}, 6},
		{[]Record{
			{Class: 0, Anchor: anchor.Coord(0, 0)},
			{Class: 1, Anchor: anchor.Coord(1, 1)},
			{Class: 2, Anchor: anchor.Coord(2, 2)},
		}, 14},
	}
	for _, c := range cases {
		if got := EncodeLen(c.records); got != c.want {
			t.Errorf("EncodeLen(%d records) = %d, want %d", len(c.records), got, c.want)
		}
	}
}
