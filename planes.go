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

// planes
package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane table. Each plane is stored together with its flip, as adjacent pair
// (2k, 2k+1), so that planeNum ^ 1 always gives the opposite facing plane and
// planeNum &^ 1 a canonical one. For axial planes, the even member faces the
// positive direction of axis.

const (
	PLANE_X = iota
	PLANE_Y
	PLANE_Z
	PLANE_NON_AXIAL
)

const NORMAL_EPSILON = 0.00001

const DIST_EPSILON = 0.01

// Plane is immutable once registered
type Plane struct {
	Normal mgl64.Vec3
	Dist   float64
	Type   int
}

func PlaneTypeForNormal(normal mgl64.Vec3) int {
	if normal[0] == 1.0 || normal[0] == -1.0 {
		return PLANE_X
	}
	if normal[1] == 1.0 || normal[1] == -1.0 {
		return PLANE_Y
	}
	if normal[2] == 1.0 || normal[2] == -1.0 {
		return PLANE_Z
	}
	return PLANE_NON_AXIAL
}

type PlaneTable struct {
	planes []Plane
	// buckets by integer part of |dist|, holding indices of even planes
	hash map[int][]int
}

func NewPlaneTable() *PlaneTable {
	return &PlaneTable{
		planes: make([]Plane, 0, 64),
		hash:   make(map[int][]int),
	}
}

func (pt *PlaneTable) Len() int {
	return len(pt.planes)
}

func (pt *PlaneTable) Plane(planeNum int) *Plane {
	return &pt.planes[planeNum]
}

func (p *Plane) equal(normal mgl64.Vec3, dist float64) bool {
	return math.Abs(p.Normal[0]-normal[0]) < NORMAL_EPSILON &&
		math.Abs(p.Normal[1]-normal[1]) < NORMAL_EPSILON &&
		math.Abs(p.Normal[2]-normal[2]) < NORMAL_EPSILON &&
		math.Abs(p.Dist-dist) < DIST_EPSILON
}

// SnapPlane makes near-axial normals exactly axial, and near-integer
// distances exactly integer
func SnapPlane(normal mgl64.Vec3, dist float64) (mgl64.Vec3, float64) {
	for i := 0; i < 3; i++ {
		if math.Abs(normal[i]-1) < NORMAL_EPSILON {
			normal = mgl64.Vec3{}
			normal[i] = 1
			break
		}
		if math.Abs(normal[i]+1) < NORMAL_EPSILON {
			normal = mgl64.Vec3{}
			normal[i] = -1
			break
		}
	}
	if r := math.Round(dist); math.Abs(dist-r) < DIST_EPSILON {
		dist = r
	}
	return normal, dist
}

func planeHashKey(dist float64) int {
	return int(math.Floor(math.Abs(dist)))
}

// FindFloatPlane returns the number of plane with given normal and dist,
// registering it (and its flip) if there is none yet. The normal must be of
// unit length
func (pt *PlaneTable) FindFloatPlane(normal mgl64.Vec3, dist float64) int {
	normal, dist = SnapPlane(normal, dist)
	key := planeHashKey(dist)
	for k := key - 1; k <= key+1; k++ {
		for _, idx := range pt.hash[k] {
			if pt.planes[idx].equal(normal, dist) {
				return idx
			}
			if pt.planes[idx+1].equal(normal, dist) {
				return idx + 1
			}
		}
	}
	return pt.createNewFloatPlane(normal, dist)
}

func (pt *PlaneTable) createNewFloatPlane(normal mgl64.Vec3, dist float64) int {
	if normal.Len() < 0.5 {
		Log.Panic("FindFloatPlane: bad normal (%v)\n", normal)
	}
	typ := PlaneTypeForNormal(normal)
	p := Plane{Normal: normal, Dist: dist, Type: typ}
	flip := Plane{Normal: normal.Mul(-1), Dist: -dist, Type: typ}

	idx := len(pt.planes)
	ret := idx
	if typ < PLANE_NON_AXIAL && (normal[0] < 0 || normal[1] < 0 || normal[2] < 0) {
		// positive facing axial plane goes first
		p, flip = flip, p
		ret = idx + 1
	}
	pt.planes = append(pt.planes, p, flip)
	key := planeHashKey(dist)
	pt.hash[key] = append(pt.hash[key], idx)
	return ret
}
