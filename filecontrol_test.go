// Copyright (C) 2025, VigilantDoomer
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
	"path/filepath"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func writeLevelFile(t *testing.T, dir string) string {
	name := filepath.Join(dir, "box.json")
	require.NoError(t, os.WriteFile(name, []byte(boxLevelJSON), 0644))
	return name
}

func TestFileControlReport(t *testing.T) {
	dir := t.TempDir()
	input := writeLevelFile(t, dir)
	reportName := filepath.Join(dir, "box.report.json")

	fc := FileControl{}
	defer fc.Shutdown()

	f, err := fc.OpenInputFile(input)
	require.NoError(t, err)
	level, err := LoadLevel(f, FORMAT_JSON)
	require.NoError(t, err)

	store := new(FaceStore)
	opts := DefaultBSPOptions()
	tree := FaceBSP(store, level.Planes,
		MakeStructuralBSPFaceList(store, level.Brushes, opts), opts)
	nodes, leafs := tree.CountNodes()

	_, err = fc.OpenReportFile(reportName)
	require.NoError(t, err)
	require.NoError(t, fc.WriteReport(buildReport{
		ID:     tree.ID,
		Input:  input,
		Stats:  tree.Stats,
		Nodes:  nodes,
		Leafs:  leafs,
		Height: HeightOfNodes(tree.HeadNode),
	}))
	require.True(t, fc.Success())

	data, err := os.ReadFile(reportName)
	require.NoError(t, err)
	var report buildReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, tree.ID, report.ID)
	require.Equal(t, 6, report.Nodes)
	require.Equal(t, 7, report.Stats.Leafs)
	require.Nil(t, report.Mins)

	// shutting down after success leaves the report alone
	fc.Shutdown()
	_, err = os.Stat(reportName)
	require.NoError(t, err)
}

func TestFileControlShutdownRemovesReport(t *testing.T) {
	dir := t.TempDir()
	input := writeLevelFile(t, dir)
	reportName := filepath.Join(dir, "partial.json")

	fc := FileControl{}
	_, err := fc.OpenInputFile(input)
	require.NoError(t, err)
	_, err = fc.OpenReportFile(reportName)
	require.NoError(t, err)
	require.NoError(t, fc.WriteReport(map[string]int{"nodes": 1}))

	fc.Shutdown()
	_, err = os.Stat(reportName)
	require.True(t, os.IsNotExist(err))
}

func TestFileControlMissingInput(t *testing.T) {
	fc := FileControl{}
	defer fc.Shutdown()
	_, err := fc.OpenInputFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.Equal(t, ErrTypeFile, errors.Type(err))
}
