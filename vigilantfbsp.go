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

// -- This file is where the program entry is.
// VigilantFBSP builds the face BSP tree of a brush level: faces of
// structural brush sides are used as partition candidates, level is split
// at block boundaries first, and the resulting tree is reported.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// What ends up in the report file
type buildReport struct {
	ID        string       `json:"id"`
	Input     string       `json:"input"`
	FaceList  string       `json:"face_list"`
	BlockSize [3]float64   `json:"block_size"`
	Stats     FaceBSPStats `json:"stats"`
	Nodes     int          `json:"nodes"`
	Leafs     int          `json:"leafs"`
	Height    int          `json:"height"`
	Mins      *[3]float64  `json:"mins,omitempty"` // absent when tree is empty
	Maxs      *[3]float64  `json:"maxs,omitempty"`
	Seconds   float64      `json:"seconds"`
}

func main() {
	if !run() {
		os.Exit(1)
	}
}

func run() bool {
	timeStart := time.Now()

	config = DefaultConfig()
	cl, err := config.FromCommandLine()
	if cl.Version {
		fmt.Printf("%s %s\n", PROGRAM_NAME, VERSION)
		return true
	}
	SetupLogs(config.LogLevel, config.LogIndent, config.VerbosityLevel)
	if err != nil {
		logs.WithTag("input", config.InputFileName).Error(err)
		return false
	}
	if err := validateConfig(config); err != nil {
		logs.WithTag("input", config.InputFileName).Error(err)
		return false
	}
	config.InputFileName, _ = filepath.Abs(config.InputFileName)

	mainFileControl := FileControl{}
	defer mainFileControl.Shutdown()

	format, err := LevelFormatFromFileName(config.InputFileName)
	if err != nil {
		logs.WithTag("input", config.InputFileName).Error(err)
		return false
	}
	f, err := mainFileControl.OpenInputFile(config.InputFileName)
	if err != nil {
		logs.WithTag("input", config.InputFileName).Error(err)
		return false
	}
	level, err := LoadLevel(f, format)
	if err != nil {
		logs.WithTag("file", config.InputFileName).Error(err)
		return false
	}
	Log.Printf("Loaded %d brushes from %s\n", len(level.Brushes),
		config.InputFileName)

	opts := config.BSPOptions()
	store := new(FaceStore)
	var list *Face
	faceListName := "structural"
	if config.FaceList == FACELIST_VISIBLE {
		faceListName = "visible"
		list = MakeVisibleBSPFaceList(store, level.Brushes, opts)
	} else {
		list = MakeStructuralBSPFaceList(store, level.Brushes, opts)
	}

	tree := FaceBSP(store, level.Planes, list, opts)
	if store.Live() != 0 {
		Log.Error("%d faces were not freed after the build\n", store.Live())
	}

	nodes, leafs := tree.CountNodes()
	height := HeightOfNodes(tree.HeadNode)
	Log.Printf("Face BSP %s: %d nodes, %d leafs, height %d\n", tree.ID, nodes,
		leafs, height)
	if tree.MinMax.Valid() {
		Log.Printf("Bounds (%g %g %g) - (%g %g %g)\n",
			tree.MinMax.Mins[0], tree.MinMax.Mins[1], tree.MinMax.Mins[2],
			tree.MinMax.Maxs[0], tree.MinMax.Maxs[1], tree.MinMax.Maxs[2])
	}

	if config.ReportFileName != "" {
		report := buildReport{
			ID:        tree.ID,
			Input:     config.InputFileName,
			FaceList:  faceListName,
			BlockSize: opts.BlockSize,
			Stats:     tree.Stats,
			Nodes:     nodes,
			Leafs:     leafs,
			Height:    height,
			Seconds:   time.Since(timeStart).Seconds(),
		}
		if tree.MinMax.Valid() {
			mins := [3]float64(tree.MinMax.Mins)
			maxs := [3]float64(tree.MinMax.Maxs)
			report.Mins = &mins
			report.Maxs = &maxs
		}
		if _, err := mainFileControl.OpenReportFile(config.ReportFileName); err != nil {
			logs.WithTag("input", config.InputFileName).Error(err)
			return false
		}
		if err := mainFileControl.WriteReport(report); err != nil {
			logs.WithTag("input", config.InputFileName).Error(err)
			return false
		}
	}

	if config.MetricsFileName != "" {
		if err := WriteMetrics(config.MetricsFileName); err != nil {
			logs.WithTag("file", config.MetricsFileName).Error(err)
			return false
		}
	}

	if !mainFileControl.Success() {
		return false
	}
	Log.Printf("Total time: %s\n", time.Since(timeStart))
	return true
}
