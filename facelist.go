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

// facelist
package main

// Face records and the builders that turn brush sides into face lists for
// the face BSP.

// Default split priorities. Hint faces are picked as partitions early, detail
// faces late
const (
	HINT_PRIORITY       = 1000
	ANTIPORTAL_PRIORITY = 1000
	AREAPORTAL_PRIORITY = 1000
	DETAIL_PRIORITY     = -1000
)

type PriorityWeights struct {
	Hint       int
	Antiportal int
	Areaportal int
	Detail     int
}

func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{
		Hint:       HINT_PRIORITY,
		Antiportal: ANTIPORTAL_PRIORITY,
		Areaportal: AREAPORTAL_PRIORITY,
		Detail:     DETAIL_PRIORITY,
	}
}

// Priority sums weights of priority-bearing flags present in compileFlags
func (pw PriorityWeights) Priority(compileFlags int) int {
	priority := 0
	if compileFlags&C_HINT != 0 {
		priority += pw.Hint
	}
	if compileFlags&C_ANTIPORTAL != 0 {
		priority += pw.Antiportal
	}
	if compileFlags&C_AREAPORTAL != 0 {
		priority += pw.Areaportal
	}
	if compileFlags&C_DETAIL != 0 {
		priority += pw.Detail
	}
	return priority
}

// BSPOptions is everything from configuration the face BSP is allowed to see
type BSPOptions struct {
	BlockSize [3]float64 // <= 0 disables forced splits on that axis
	DeepBSP   bool       // include detail brushes in face lists
	// Use area and balance weighted scoring instead of the default
	AlternateSplitWeights bool
	Priorities            PriorityWeights
}

func DefaultBSPOptions() BSPOptions {
	return BSPOptions{
		BlockSize:  [3]float64{1024, 1024, 1024},
		Priorities: DefaultPriorityWeights(),
	}
}

type Face struct {
	w            *Winding
	PlaneNum     int
	CompileFlags int
	Priority     int
	next         *Face
	freed        bool
}

func (f *Face) Winding() *Winding {
	return f.w
}

func (f *Face) Next() *Face {
	return f.next
}

// FaceStore allocates face records and keeps count of those not yet freed,
// so that leaks can be detected after a tree build
type FaceStore struct {
	allocated int
	freed     int
}

func (s *FaceStore) AllocBspFace() *Face {
	s.allocated++
	return new(Face)
}

func (s *FaceStore) FreeBspFace(f *Face) {
	if f.freed {
		Log.Panic("FreeBspFace: face on plane %d freed twice\n", f.PlaneNum)
	}
	f.w = nil
	f.next = nil
	f.freed = true
	s.freed++
}

func (s *FaceStore) Allocated() int {
	return s.allocated
}

func (s *FaceStore) Freed() int {
	return s.freed
}

// Live is the number of allocated faces not freed yet
func (s *FaceStore) Live() int {
	return s.allocated - s.freed
}

// FreeFaceList frees every face of the list
func (s *FaceStore) FreeFaceList(list *Face) {
	var next *Face
	for f := list; f != nil; f = next {
		next = f.next
		s.FreeBspFace(f)
	}
}

func CountFaceList(list *Face) int {
	c := 0
	for ; list != nil; list = list.next {
		c++
	}
	return c
}

// WindingSelector picks which of the side's polygons goes into the face list
type WindingSelector func(s *Side) *Winding

func StructuralWinding(s *Side) *Winding {
	return s.Winding
}

func VisibleWinding(s *Side) *Winding {
	return s.VisibleHull
}

// MakeBSPFaceList creates a face per eligible brush side. Faces are
// prepended, so list order is the reverse of brush/side order
func MakeBSPFaceList(store *FaceStore, brushes []*Brush, opts BSPOptions,
	selector WindingSelector) *Face {
	var flist *Face
	for _, b := range brushes {
		if !opts.DeepBSP && b.Detail {
			continue
		}

		for i := range b.Sides {
			s := &b.Sides[i]
			w := selector(s)
			if w == nil {
				continue
			}
			if s.CompileFlags&C_SKIP != 0 {
				continue
			}

			f := store.AllocBspFace()
			f.w = w.Copy()
			f.PlaneNum = s.PlaneNum &^ 1
			f.CompileFlags = s.CompileFlags
			if b.Detail {
				f.CompileFlags |= C_DETAIL
			}
			f.Priority = opts.Priorities.Priority(f.CompileFlags)

			f.next = flist
			flist = f
		}
	}
	return flist
}

// MakeStructuralBSPFaceList gets structural brush faces
func MakeStructuralBSPFaceList(store *FaceStore, brushes []*Brush, opts BSPOptions) *Face {
	return MakeBSPFaceList(store, brushes, opts, StructuralWinding)
}

// MakeVisibleBSPFaceList gets visible brush faces
func MakeVisibleBSPFaceList(store *FaceStore, brushes []*Brush, opts BSPOptions) *Face {
	return MakeBSPFaceList(store, brushes, opts, VisibleWinding)
}
