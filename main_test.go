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
	"os"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/encoding/json"
)

func TestMain(m *testing.M) {
	config = DefaultConfig()
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal
	logs.SetLogger(func(e logs.Entry) {})
	os.Exit(m.Run())
}

// boxBrush registers planes of an axis-aligned box and computes its windings
func boxBrush(planes *PlaneTable, mins, maxs mgl64.Vec3, flags int) *Brush {
	b := &Brush{}
	for i := 0; i < 3; i++ {
		var normal mgl64.Vec3
		normal[i] = 1
		b.Sides = append(b.Sides, Side{
			PlaneNum:     planes.FindFloatPlane(normal, maxs[i]),
			CompileFlags: flags,
		})
		normal[i] = -1
		b.Sides = append(b.Sides, Side{
			PlaneNum:     planes.FindFloatPlane(normal, -mins[i]),
			CompileFlags: flags,
		})
	}
	if !b.CreateBrushWindings(planes) {
		panic("box brush has no volume")
	}
	return b
}

// squareFace makes a face out of an axis-aligned square lying on z = height,
// with corners at (x0, y0) and (x1, y1), registered on the +z plane
func squareFace(store *FaceStore, planes *PlaneTable, x0, y0, x1, y1,
	height float64) *Face {
	f := store.AllocBspFace()
	f.w = NewWinding(
		mgl64.Vec3{x0, y0, height},
		mgl64.Vec3{x1, y0, height},
		mgl64.Vec3{x1, y1, height},
		mgl64.Vec3{x0, y1, height},
	)
	f.PlaneNum = planes.FindFloatPlane(mgl64.Vec3{0, 0, 1}, height)
	return f
}

// verticalFace makes a face on plane x = at, spanning y and z ranges
func verticalFace(store *FaceStore, planes *PlaneTable, at, y0, y1, z0,
	z1 float64) *Face {
	f := store.AllocBspFace()
	f.w = NewWinding(
		mgl64.Vec3{at, y0, z0},
		mgl64.Vec3{at, y1, z0},
		mgl64.Vec3{at, y1, z1},
		mgl64.Vec3{at, y0, z1},
	)
	f.PlaneNum = planes.FindFloatPlane(mgl64.Vec3{1, 0, 0}, at)
	return f
}

// linkFaces chains faces in the order given and returns the head
func linkFaces(faces ...*Face) *Face {
	for i := 0; i+1 < len(faces); i++ {
		faces[i].next = faces[i+1]
	}
	if len(faces) == 0 {
		return nil
	}
	return faces[0]
}

func noBlockOptions() BSPOptions {
	opts := DefaultBSPOptions()
	opts.BlockSize = [3]float64{0, 0, 0}
	return opts
}
