// Copyright (C) 2022-2025, VigilantDoomer
//
// This file is part of VigilantFBSP program.
//
// VigilantFBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantFBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantFBSP.  If not, see <https://www.gnu.org/licenses/>.

// brush
package main

// Compile flags of brush sides and faces
const (
	C_SOLID       = 0x00000001
	C_TRANSLUCENT = 0x00000002
	C_STRUCTURAL  = 0x00000004
	C_HINT        = 0x00000008
	C_NODRAW      = 0x00000010
	C_AREAPORTAL  = 0x00002000
	C_ANTIPORTAL  = 0x00004000
	C_SKIP        = 0x00008000
	C_DETAIL      = 0x08000000
)

// Names under which compile flags appear in level descriptions
var compileFlagNames = map[string]int{
	"solid":       C_SOLID,
	"translucent": C_TRANSLUCENT,
	"structural":  C_STRUCTURAL,
	"hint":        C_HINT,
	"nodraw":      C_NODRAW,
	"areaportal":  C_AREAPORTAL,
	"antiportal":  C_ANTIPORTAL,
	"skip":        C_SKIP,
	"detail":      C_DETAIL,
}

type Side struct {
	PlaneNum     int
	CompileFlags int
	Winding      *Winding // nil if side got clipped away
	VisibleHull  *Winding // nil if side is not drawn
}

// Brush is a convex solid bounded by its sides' planes
type Brush struct {
	EntityNum int
	BrushNum  int
	Detail    bool
	Sides     []Side
}

// CreateBrushWindings computes each side's winding by cutting the base
// winding of its plane with every other side. Returns false if brush has
// less than three sides left with non-empty windings (it is not a solid)
func (b *Brush) CreateBrushWindings(planes *PlaneTable) bool {
	valid := 0
	for i := range b.Sides {
		side := &b.Sides[i]
		plane := planes.Plane(side.PlaneNum)
		w := BaseWindingForPlane(plane.Normal, plane.Dist)
		for j := range b.Sides {
			if w == nil {
				break
			}
			if i == j {
				continue
			}
			if b.Sides[j].PlaneNum == (side.PlaneNum ^ 1) {
				// back side clipaway
				w = nil
				break
			}
			// keep what is behind the other side
			clip := planes.Plane(b.Sides[j].PlaneNum ^ 1)
			w = w.ChopInPlace(clip.Normal, clip.Dist, 0)
		}
		side.Winding = w
		side.VisibleHull = nil
		if w != nil {
			valid++
			if side.CompileFlags&C_NODRAW == 0 {
				side.VisibleHull = w.Copy()
			}
		}
	}
	return valid >= 3
}

// Bounds of all side windings
func (b *Brush) Bounds() MinMax {
	mm := ClearBounds()
	for i := range b.Sides {
		if b.Sides[i].Winding != nil {
			b.Sides[i].Winding.ExtendBounds(&mm)
		}
	}
	return mm
}
