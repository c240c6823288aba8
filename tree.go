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

// tree
package main

// Plane number of leaf nodes
const PLANENUM_LEAF = -1

type Node struct {
	PlaneNum     int      // PLANENUM_LEAF for leaves
	Children     [2]*Node // front, back. Both nil for leaves
	Parent       *Node
	MinMax       MinMax
	CompileFlags int // those of the face that gave the partition plane
	Opaque       bool
	// Any descendant split is non-detail, and node itself is not opaque
	HasStructuralChildren bool
}

func AllocNode() *Node {
	return &Node{PlaneNum: PLANENUM_LEAF, MinMax: ClearBounds()}
}

func (n *Node) IsLeaf() bool {
	return n.PlaneNum == PLANENUM_LEAF
}

// Counters gathered while the tree was being built
type FaceBSPStats struct {
	Faces        int `json:"faces"` // faces in the input list
	Leafs        int `json:"leafs"`
	SplitFaces   int `json:"split_faces"`   // faces that had to be clipped in two
	ForcedSplits int `json:"forced_splits"` // partitions placed at block boundaries
	// Faces that reached a leaf because none of them could partition it
	LeafFaces int `json:"leaf_faces"`
}

type Tree struct {
	ID       string // identifies the build in logs and reports
	HeadNode *Node
	MinMax   MinMax
	Stats    FaceBSPStats
}

func AllocTree() *Tree {
	return &Tree{MinMax: ClearBounds()}
}

// Walk visits nodes depth-first, parent first, front child before back
func (t *Tree) Walk(visit func(n *Node)) {
	walkNodes(t.HeadNode, visit)
}

func walkNodes(n *Node, visit func(n *Node)) {
	if n == nil {
		return
	}
	visit(n)
	walkNodes(n.Children[0], visit)
	walkNodes(n.Children[1], visit)
}

// CountNodes returns the number of internal nodes and leaves
func (t *Tree) CountNodes() (int, int) {
	nodes := 0
	leafs := 0
	t.Walk(func(n *Node) {
		if n.IsLeaf() {
			leafs++
		} else {
			nodes++
		}
	})
	return nodes, leafs
}

func HeightOfNodes(node *Node) int {
	if node == nil || node.IsLeaf() {
		return 0
	}
	fHeight := HeightOfNodes(node.Children[0]) + 1
	bHeight := HeightOfNodes(node.Children[1]) + 1
	if fHeight < bHeight {
		return bHeight
	}
	return fHeight
}
