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
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// State of a single face BSP build. Plane usage counters live here rather
// than in the plane table, so they start at zero with every build
type faceBSPWork struct {
	store      *FaceStore
	planes     *PlaneTable
	blockSize  [3]float64
	scoreSplit SplitScoreFunc
	counters   []int // per plane number, grows as planes get registered
	stats      FaceBSPStats
}

func (w *faceBSPWork) planeCounter(planeNum int) *int {
	for planeNum >= len(w.counters) {
		w.counters = append(w.counters, 0)
	}
	return &w.counters[planeNum]
}

// FaceBSP builds the tree from the list of faces. The list is consumed: every
// face on it is freed by the time this returns
func FaceBSP(store *FaceStore, planes *PlaneTable, list *Face, opts BSPOptions) *Tree {
	start := time.Now()
	Log.Verbose(1, "--- FaceBSP ---\n")

	tree := AllocTree()
	tree.ID = uuid.NewString()

	count := 0
	for face := list; face != nil; face = face.next {
		face.w.ExtendBounds(&tree.MinMax)
		count++
	}
	Log.Verbose(1, "%9d faces\n", count)

	w := &faceBSPWork{
		store:      store,
		planes:     planes,
		blockSize:  opts.BlockSize,
		scoreSplit: SplitScoreFuncFromOption(opts.AlternateSplitWeights),
		counters:   make([]int, planes.Len()),
	}
	w.stats.Faces = count

	tree.HeadNode = AllocNode()
	tree.HeadNode.MinMax = tree.MinMax

	w.buildFaceTree(tree.HeadNode, list)

	tree.Stats = w.stats
	Log.Verbose(1, "%9d leafs\n", w.stats.Leafs)

	logs.WithTag("build_id", tree.ID).
		WithTag("faces", count).
		WithTag("leafs", w.stats.Leafs).
		WithTag("split_faces", w.stats.SplitFaces).
		WithTag("forced_splits", w.stats.ForcedSplits).
		WithTag("leaf_faces", w.stats.LeafFaces).
		Debug("face bsp built")
	instrumentFaceBSP(tree.Stats, time.Since(start))
	return tree
}

// buildFaceTree recursively splits the list on face planes until every
// sublist is exhausted. Leaves hold no faces
func (w *faceBSPWork) buildFaceTree(node *Node, list *Face) {
	choice := w.selectSplitPlaneNum(node, list)

	if choice.PlaneNum == PLANENUM_LEAF {
		node.PlaneNum = PLANENUM_LEAF
		node.HasStructuralChildren = false
		w.stats.Leafs++
		// only non-empty if no face scored above the sentinel
		w.stats.LeafFaces += CountFaceList(list)
		w.store.FreeFaceList(list)
		return
	}

	node.PlaneNum = choice.PlaneNum
	node.CompileFlags = choice.CompileFlags
	node.HasStructuralChildren = choice.CompileFlags&C_DETAIL == 0 && !node.Opaque
	plane := w.planes.Plane(choice.PlaneNum)

	childLists := w.partitionFaceList(choice.PlaneNum, list)

	for i := 0; i < 2; i++ {
		node.Children[i] = AllocNode()
		node.Children[i].Parent = node
		node.Children[i].MinMax = node.MinMax
	}

	// only axial planes tighten the boxes, others leave children with
	// parent's box
	for i := 0; i < 3; i++ {
		if plane.Normal[i] == 1 {
			node.Children[0].MinMax.Mins[i] = plane.Dist
			node.Children[1].MinMax.Maxs[i] = plane.Dist
			break
		}
		if plane.Normal[i] == -1 {
			node.Children[0].MinMax.Maxs[i] = -plane.Dist
			node.Children[1].MinMax.Mins[i] = -plane.Dist
			break
		}
	}

	for i := 0; i < 2; i++ {
		w.buildFaceTree(node.Children[i], childLists[i])
		node.HasStructuralChildren = node.HasStructuralChildren ||
			node.Children[i].HasStructuralChildren
	}
}

// partitionFaceList distributes the list between front and back of the
// plane, splitting the faces that cross it. Faces are prepended, so each
// child list comes out in reverse order. Faces on the plane itself are freed
func (w *faceBSPWork) partitionFaceList(planeNum int, list *Face) [2]*Face {
	plane := w.planes.Plane(planeNum)
	var childLists [2]*Face
	var next *Face
	for split := list; split != nil; split = next {
		next = split.next

		// don't split by identical plane
		if split.PlaneNum == planeNum {
			w.store.FreeBspFace(split)
			continue
		}

		switch split.w.OnPlaneSide(plane.Normal, plane.Dist) {
		case SIDE_CROSS:
			// strict: if no winding is left, the plane was virtually
			// identical and we don't split by it
			front, back := split.w.ClipEpsilonStrict(plane.Normal, plane.Dist,
				CLIP_EPSILON*2)
			if front != nil {
				childLists[0] = w.newFragment(split, front, childLists[0])
			}
			if back != nil {
				childLists[1] = w.newFragment(split, back, childLists[1])
			}
			w.store.FreeBspFace(split)
			w.stats.SplitFaces++
		case SIDE_FRONT:
			split.next = childLists[0]
			childLists[0] = split
		case SIDE_BACK:
			split.next = childLists[1]
			childLists[1] = split
		default:
			// SIDE_ON: coplanar with partition, yet on a different plane
			// number. Belongs to neither side
			w.store.FreeBspFace(split)
		}
	}
	return childLists
}

// newFragment makes a face out of a piece of orig and prepends it to list
func (w *faceBSPWork) newFragment(orig *Face, fragment *Winding, list *Face) *Face {
	f := w.store.AllocBspFace()
	f.w = fragment
	f.PlaneNum = orig.PlaneNum
	f.Priority = orig.Priority
	f.CompileFlags = orig.CompileFlags
	f.next = list
	return f
}
