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

	"github.com/go-gl/mathgl/mgl64"
)

// To divide the node, this routine must decide which face plane is the best
// partition. Unlike the seg-based nodebuilders, higher score is better here.

// Score no candidate can be worse than. If the best score is still this after
// all faces were tried, node becomes a leaf
const NO_CANDIDATE_SCORE = -99999

// Base score of perfectly balanced partition in the weighted mode
const WEIGHTED_BASE_SCORE = 20000

// Cost per face a partition would have to split
const SPLIT_FACTOR = 5

// Bonus for axis-aligned partition in the simple mode
const AXIAL_BONUS = 5

// Multiplier of face area in the weighted mode
const AREA_FACTOR = 10

// What was decided for the node
type splitChoice struct {
	PlaneNum     int // PLANENUM_LEAF when node shall be a leaf
	CompileFlags int
}

// How the other faces relate to a partition candidate
type splitCounts struct {
	front  int
	back   int
	splits int
	facing int
}

// SplitScoreFunc rates a partition candidate. Higher is better
type SplitScoreFunc func(w *faceBSPWork, split *Face, plane *Plane, c splitCounts) int

func SplitScoreFuncFromOption(alternateSplitWeights bool) SplitScoreFunc {
	if alternateSplitWeights {
		return SplitScore_weighted
	}
	return SplitScore_simple
}

// SplitScore_simple favors planes many faces lie on, axial planes, and those
// splitting few faces. Balance is ignored
func SplitScore_simple(w *faceBSPWork, split *Face, plane *Plane, c splitCounts) int {
	value := SPLIT_FACTOR*c.facing - SPLIT_FACTOR*c.splits
	if plane.Type < PLANE_NON_AXIAL {
		value += AXIAL_BONUS
	}
	return value
}

// SplitScore_weighted favors balanced partitions with big faces on them,
// and planes that were not used as partitions yet
func SplitScore_weighted(w *faceBSPWork, split *Face, plane *Plane, c splitCounts) int {
	sizeBias := split.w.Area()

	balance := c.front - c.back
	if balance < 0 {
		balance = -balance
	}
	value := WEIGHTED_BASE_SCORE - balance
	// a plane used sometime in the past is worse
	value -= *w.planeCounter(split.PlaneNum)
	// many other faces on this plane - want to get it in quickly
	value -= c.facing
	value -= c.splits * SPLIT_FACTOR
	return int(float64(value) + sizeBias*AREA_FACTOR)
}

// selectSplitPlaneNum finds the best partition plane for this node
func (w *faceBSPWork) selectSplitPlaneNum(node *Node, list *Face) splitChoice {
	choice := splitChoice{PlaneNum: PLANENUM_LEAF}

	// if it is crossing a block boundary, force a split
	if planeNum, ok := w.blockSplitPlaneNum(&node.MinMax); ok {
		w.stats.ForcedSplits++
		choice.PlaneNum = planeNum
		return choice
	}

	bestValue := NO_CANDIDATE_SCORE
	bestSplit := list
	for split := list; split != nil; split = split.next {
		plane := w.planes.Plane(split.PlaneNum)
		c := countSplitSides(split, plane, list)
		value := w.scoreSplit(w, split, plane, c)
		value += split.Priority // hints go first
		if value > bestValue {
			bestValue = value
			bestSplit = split
		}
	}

	// nothing, we have a leaf
	if bestValue == NO_CANDIDATE_SCORE {
		return choice
	}

	choice.PlaneNum = bestSplit.PlaneNum
	choice.CompileFlags = bestSplit.CompileFlags
	*w.planeCounter(choice.PlaneNum)++
	return choice
}

// blockSplitPlaneNum returns the axial plane at the first block boundary
// strictly inside the box, for the first axis that has one
func (w *faceBSPWork) blockSplitPlaneNum(mm *MinMax) (int, bool) {
	for i := 0; i < 3; i++ {
		blockSize := w.blockSize[i]
		if blockSize <= 0 {
			continue
		}
		var normal mgl64.Vec3
		normal[i] = 1
		dist := blockSize * (math.Floor(mm.Mins[i]/blockSize) + 1)
		for ; dist < mm.Maxs[i]; dist += blockSize {
			// plane distance gets snapped, and may end up on the box edge
			planeNum := w.planes.FindFloatPlane(normal, dist)
			planeDist := w.planes.Plane(planeNum).Dist
			if mm.Mins[i] < planeDist && planeDist < mm.Maxs[i] {
				return planeNum, true
			}
		}
	}
	return PLANENUM_LEAF, false
}

// countSplitSides classifies every face of the list, split itself included,
// against the plane of split
func countSplitSides(split *Face, plane *Plane, list *Face) splitCounts {
	var c splitCounts
	for check := list; check != nil; check = check.next {
		if check.PlaneNum == split.PlaneNum {
			c.facing++
			continue
		}
		switch check.w.OnPlaneSide(plane.Normal, plane.Dist) {
		case SIDE_CROSS:
			c.splits++
		case SIDE_FRONT:
			c.front++
		case SIDE_BACK:
			c.back++
		default:
			c.facing++
		}
	}
	return c
}
