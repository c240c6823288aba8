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

// diffgeometry.go
package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Windings (convex polygons) and the floating point geometry the face BSP
// needs from them: classification against a plane, clipping, area and
// bounds.

// Tolerance for "is this point on the plane" decisions
const ON_EPSILON = 0.1

// Base tolerance for clipping. Face tree builder uses twice this value
const CLIP_EPSILON = 0.1

// Half-size of the square produced by BaseWindingForPlane
const MAX_WORLD_COORD = 65536

const (
	SIDE_FRONT = iota
	SIDE_BACK
	SIDE_ON
	SIDE_CROSS
)

// Winding is a convex polygon, an ordered sequence of coplanar points
type Winding struct {
	p []mgl64.Vec3
}

func NewWinding(points ...mgl64.Vec3) *Winding {
	w := &Winding{p: make([]mgl64.Vec3, len(points))}
	copy(w.p, points)
	return w
}

func (w *Winding) NumPoints() int {
	return len(w.p)
}

// Points returns the underlying point slice. Callers must not modify it
func (w *Winding) Points() []mgl64.Vec3 {
	return w.p
}

func (w *Winding) Copy() *Winding {
	return NewWinding(w.p...)
}

// Area of convex polygon, computed as a sum of fan triangles
func (w *Winding) Area() float64 {
	total := 0.0
	for i := 2; i < len(w.p); i++ {
		d1 := w.p[i-1].Sub(w.p[0])
		d2 := w.p[i].Sub(w.p[0])
		total += 0.5 * d1.Cross(d2).Len()
	}
	return total
}

func (w *Winding) ExtendBounds(mm *MinMax) {
	for _, v := range w.p {
		mm.AddPoint(v)
	}
}

// OnPlaneSide tells whether the winding lies in front, behind, on, or across
// the plane given by normal and dist
func (w *Winding) OnPlaneSide(normal mgl64.Vec3, dist float64) int {
	front := false
	back := false
	for _, v := range w.p {
		d := v.Dot(normal) - dist
		if d < -ON_EPSILON {
			if front {
				return SIDE_CROSS
			}
			back = true
			continue
		}
		if d > ON_EPSILON {
			if back {
				return SIDE_CROSS
			}
			front = true
			continue
		}
	}
	if back {
		return SIDE_BACK
	}
	if front {
		return SIDE_FRONT
	}
	return SIDE_ON
}

// classifyPoints computes signed distances and sides of every point, with
// the first entry repeated at the end so that edges can be walked without
// modulo arithmetic
func (w *Winding) classifyPoints(normal mgl64.Vec3, dist,
	epsilon float64) ([]float64, []int, [3]int) {
	var counts [3]int
	n := len(w.p)
	dists := make([]float64, n+1)
	sides := make([]int, n+1)
	for i, v := range w.p {
		d := v.Dot(normal) - dist
		dists[i] = d
		if d > epsilon {
			sides[i] = SIDE_FRONT
		} else if d < -epsilon {
			sides[i] = SIDE_BACK
		} else {
			sides[i] = SIDE_ON
		}
		counts[sides[i]]++
	}
	sides[n] = sides[0]
	dists[n] = dists[0]
	return dists, sides, counts
}

// splitPoint computes where edge p1-p2 crosses the plane. Coordinates on
// axis of an axial plane are set to the plane distance exactly, to avoid
// drift accumulating with repeated splits
func splitPoint(p1, p2, normal mgl64.Vec3, dist, d1, d2 float64) mgl64.Vec3 {
	var mid mgl64.Vec3
	dot := d1 / (d1 - d2)
	for j := 0; j < 3; j++ {
		if normal[j] == 1 {
			mid[j] = dist
		} else if normal[j] == -1 {
			mid[j] = -dist
		} else {
			mid[j] = p1[j] + dot*(p2[j]-p1[j])
		}
	}
	return mid
}

// ClipEpsilonStrict splits the winding by plane into front and back parts.
// Strict variant: when every point lies within epsilon of the plane, both
// results are nil, as the winding is virtually identical to the plane. A
// fragment with less than three points is dropped too
func (w *Winding) ClipEpsilonStrict(normal mgl64.Vec3, dist,
	epsilon float64) (*Winding, *Winding) {
	dists, sides, counts := w.classifyPoints(normal, dist, epsilon)

	if counts[SIDE_FRONT] == 0 && counts[SIDE_BACK] == 0 {
		return nil, nil
	}
	if counts[SIDE_FRONT] == 0 {
		return nil, w.Copy()
	}
	if counts[SIDE_BACK] == 0 {
		return w.Copy(), nil
	}

	n := len(w.p)
	f := make([]mgl64.Vec3, 0, n+4)
	b := make([]mgl64.Vec3, 0, n+4)
	for i := 0; i < n; i++ {
		p1 := w.p[i]
		if sides[i] == SIDE_ON {
			f = append(f, p1)
			b = append(b, p1)
			continue
		}
		if sides[i] == SIDE_FRONT {
			f = append(f, p1)
		} else {
			b = append(b, p1)
		}
		if sides[i+1] == SIDE_ON || sides[i+1] == sides[i] {
			continue
		}
		mid := splitPoint(p1, w.p[(i+1)%n], normal, dist, dists[i], dists[i+1])
		f = append(f, mid)
		b = append(b, mid)
	}

	var front, back *Winding
	if len(f) >= 3 {
		front = &Winding{p: f}
	}
	if len(b) >= 3 {
		back = &Winding{p: b}
	}
	return front, back
}

// ChopInPlace keeps the part of winding in front of the plane. Returns nil if
// nothing is left; the winding is returned unchanged if it lies entirely in
// front
func (w *Winding) ChopInPlace(normal mgl64.Vec3, dist, epsilon float64) *Winding {
	dists, sides, counts := w.classifyPoints(normal, dist, epsilon)
	if counts[SIDE_FRONT] == 0 {
		return nil
	}
	if counts[SIDE_BACK] == 0 {
		return w
	}
	n := len(w.p)
	f := make([]mgl64.Vec3, 0, n+4)
	for i := 0; i < n; i++ {
		p1 := w.p[i]
		if sides[i] == SIDE_ON {
			f = append(f, p1)
			continue
		}
		if sides[i] == SIDE_FRONT {
			f = append(f, p1)
		}
		if sides[i+1] == SIDE_ON || sides[i+1] == sides[i] {
			continue
		}
		f = append(f, splitPoint(p1, w.p[(i+1)%n], normal, dist, dists[i], dists[i+1]))
	}
	if len(f) < 3 {
		return nil
	}
	w.p = f
	return w
}

// BaseWindingForPlane creates a huge square lying on the plane, to be cut
// down by other planes
func BaseWindingForPlane(normal mgl64.Vec3, dist float64) *Winding {
	x := -1
	max := -1.0
	for i := 0; i < 3; i++ {
		v := math.Abs(normal[i])
		if v > max {
			x = i
			max = v
		}
	}
	if x == -1 {
		Log.Panic("BaseWindingForPlane: no axis found\n")
	}

	var vup mgl64.Vec3
	switch x {
	case 0, 1:
		vup[2] = 1
	case 2:
		vup[0] = 1
	}
	v := vup.Dot(normal)
	vup = vup.Sub(normal.Mul(v)).Normalize()

	org := normal.Mul(dist)
	vright := vup.Cross(normal)

	vup = vup.Mul(MAX_WORLD_COORD)
	vright = vright.Mul(MAX_WORLD_COORD)

	return NewWinding(
		org.Sub(vright).Add(vup),
		org.Add(vright).Add(vup),
		org.Add(vright).Sub(vup),
		org.Sub(vright).Sub(vup),
	)
}

// MinMax is an axis-aligned bounding box
type MinMax struct {
	Mins mgl64.Vec3
	Maxs mgl64.Vec3
}

// ClearBounds returns a box that contains nothing, so that the first
// AddPoint sets it to the point
func ClearBounds() MinMax {
	inf := math.Inf(1)
	return MinMax{
		Mins: mgl64.Vec3{inf, inf, inf},
		Maxs: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (mm *MinMax) AddPoint(v mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if v[i] < mm.Mins[i] {
			mm.Mins[i] = v[i]
		}
		if v[i] > mm.Maxs[i] {
			mm.Maxs[i] = v[i]
		}
	}
}

// Valid is false for cleared box that had no points added
func (mm *MinMax) Valid() bool {
	for i := 0; i < 3; i++ {
		if mm.Mins[i] > mm.Maxs[i] {
			return false
		}
	}
	return true
}

func (mm *MinMax) Contains(v mgl64.Vec3, epsilon float64) bool {
	for i := 0; i < 3; i++ {
		if v[i] < mm.Mins[i]-epsilon || v[i] > mm.Maxs[i]+epsilon {
			return false
		}
	}
	return true
}
