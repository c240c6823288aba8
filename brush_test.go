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
package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestCreateBrushWindingsBox(t *testing.T) {
	planes := NewPlaneTable()
	b := boxBrush(planes, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{100, 50, 20}, 0)

	areas := map[int]float64{}
	for _, s := range b.Sides {
		require.NotNil(t, s.Winding)
		require.NotNil(t, s.VisibleHull)
		require.NotSame(t, s.Winding, s.VisibleHull)
		require.Equal(t, 4, s.Winding.NumPoints())

		plane := planes.Plane(s.PlaneNum)
		require.Equal(t, SIDE_ON, s.Winding.OnPlaneSide(plane.Normal, plane.Dist))
		areas[plane.Type] += s.Winding.Area()
	}
	require.InDelta(t, 2*50*20, areas[PLANE_X], 1e-6)
	require.InDelta(t, 2*100*20, areas[PLANE_Y], 1e-6)
	require.InDelta(t, 2*100*50, areas[PLANE_Z], 1e-6)

	bounds := b.Bounds()
	require.Equal(t, mgl64.Vec3{0, 0, 0}, bounds.Mins)
	require.Equal(t, mgl64.Vec3{100, 50, 20}, bounds.Maxs)
}

func TestCreateBrushWindingsNodraw(t *testing.T) {
	planes := NewPlaneTable()
	b := boxBrush(planes, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}, C_NODRAW)
	for _, s := range b.Sides {
		require.NotNil(t, s.Winding)
		require.Nil(t, s.VisibleHull)
	}
}

func TestCreateBrushWindingsWedge(t *testing.T) {
	planes := NewPlaneTable()
	b := &Brush{}
	for i := 0; i < 3; i++ {
		var normal mgl64.Vec3
		normal[i] = 1
		b.Sides = append(b.Sides, Side{PlaneNum: planes.FindFloatPlane(normal, 100)})
		normal[i] = -1
		b.Sides = append(b.Sides, Side{PlaneNum: planes.FindFloatPlane(normal, 0)})
	}
	// x + y <= 150 cuts a corner off the box
	diag := mgl64.Vec3{1, 1, 0}.Normalize()
	b.Sides = append(b.Sides, Side{
		PlaneNum: planes.FindFloatPlane(diag, diag.Dot(mgl64.Vec3{100, 50, 0})),
	})

	require.True(t, b.CreateBrushWindings(planes))

	for _, s := range b.Sides {
		require.NotNil(t, s.Winding)
	}
	require.InDelta(t, 50*100, b.Sides[0].Winding.Area(), 1e-6)  // +x
	require.InDelta(t, 50*100, b.Sides[2].Winding.Area(), 1e-6)  // +y
	require.InDelta(t, 100*100, b.Sides[1].Winding.Area(), 1e-6) // -x
	require.InDelta(t, 10000-1250, b.Sides[4].Winding.Area(), 1e-6)
	require.InDelta(t, 50*math.Sqrt2*100, b.Sides[6].Winding.Area(), 1e-6)
	require.Equal(t, 5, b.Sides[4].Winding.NumPoints())
}

func TestCreateBrushWindingsNoVolume(t *testing.T) {
	planes := NewPlaneTable()
	b := &Brush{}
	for i := 0; i < 3; i++ {
		var normal mgl64.Vec3
		normal[i] = 1
		dist := 100.0
		if i == 0 {
			dist = 0 // paper thin along x
		}
		b.Sides = append(b.Sides, Side{PlaneNum: planes.FindFloatPlane(normal, dist)})
		normal[i] = -1
		b.Sides = append(b.Sides, Side{PlaneNum: planes.FindFloatPlane(normal, 0)})
	}

	require.False(t, b.CreateBrushWindings(planes))
	for _, s := range b.Sides {
		require.Nil(t, s.Winding)
		require.Nil(t, s.VisibleHull)
	}
}
