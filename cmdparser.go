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
	"fmt"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Options as user sees them on the command line and in environment
type commandLine struct {
	Input                 string `cli:""        env:"FACEBSP_INPUT"                   help:"Level description file (.json, .yaml or .yml)."`
	Report                string `cli:""        env:"FACEBSP_REPORT"                  help:"Write a JSON report of the build to this file."`
	Metrics               string `cli:""        env:"FACEBSP_METRICS"                 help:"Write prometheus metrics to this file."`
	BlockSize             string `cli:""        env:"FACEBSP_BLOCK_SIZE"              help:"Forced split block size: one value, or three comma separated values for x,y,z. 0 disables."`
	DeepBSP               bool   `cli:""        env:"FACEBSP_DEEP_BSP"                help:"Let detail brushes take part in the BSP."`
	AlternateSplitWeights bool   `cli:""        env:"FACEBSP_ALTERNATE_SPLIT_WEIGHTS" help:"Score partitions by balance and face area."`
	Visible               bool   `cli:""        env:"FACEBSP_VISIBLE"                 help:"Build from visible hulls instead of structural windings."`
	HintPriority          int    `cli:",hidden" env:"FACEBSP_HINT_PRIORITY"           help:"Split priority of hint faces."`
	AntiportalPriority    int    `cli:",hidden" env:"FACEBSP_ANTIPORTAL_PRIORITY"     help:"Split priority of antiportal faces."`
	AreaportalPriority    int    `cli:",hidden" env:"FACEBSP_AREAPORTAL_PRIORITY"     help:"Split priority of areaportal faces."`
	DetailPriority        int    `cli:",hidden" env:"FACEBSP_DETAIL_PRIORITY"         help:"Split priority of detail faces."`
	LogLevel              string `cli:""        env:"FACEBSP_LOG_LEVEL"               help:"Log level (debug|info|warning|error)."`
	LogIndent             bool   `cli:""        env:"FACEBSP_LOG_INDENT"              help:"Indent logs."`
	Verbosity             int    `cli:""        env:"FACEBSP_VERBOSITY"               help:"Verbosity of progress output."`
	Version               bool   `cli:""        env:"-"                               help:"Show version."`
	Help                  bool   `cli:""        env:"-"                               help:"Show help."`
}

func (c *ProgramConfig) toCommandLine() commandLine {
	return commandLine{
		Input:                 c.InputFileName,
		Report:                c.ReportFileName,
		Metrics:               c.MetricsFileName,
		BlockSize:             formatBlockSize(c.BlockSize),
		DeepBSP:               c.DeepBSP,
		AlternateSplitWeights: c.AlternateSplitWeights,
		Visible:               c.FaceList == FACELIST_VISIBLE,
		HintPriority:          c.Priorities.Hint,
		AntiportalPriority:    c.Priorities.Antiportal,
		AreaportalPriority:    c.Priorities.Areaportal,
		DetailPriority:        c.Priorities.Detail,
		LogLevel:              c.LogLevel,
		LogIndent:             c.LogIndent,
		Verbosity:             c.VerbosityLevel,
	}
}

// FromCommandLine overrides config values with those specified by user.
// Returns the parsed command line for the caller to act on -version
func (c *ProgramConfig) FromCommandLine() (commandLine, error) {
	cl := c.toCommandLine()
	cli.Register().
		Help("Builds a face BSP tree out of brushes of a level description.").
		Options(&cl)
	cli.Load()
	return cl, c.applyCommandLine(cl)
}

func (c *ProgramConfig) applyCommandLine(cl commandLine) error {
	blockSize, err := parseBlockSize(cl.BlockSize)
	if err != nil {
		return err
	}
	c.InputFileName = cl.Input
	c.ReportFileName = cl.Report
	c.MetricsFileName = cl.Metrics
	c.BlockSize = blockSize
	c.DeepBSP = cl.DeepBSP
	c.AlternateSplitWeights = cl.AlternateSplitWeights
	c.FaceList = FACELIST_STRUCTURAL
	if cl.Visible {
		c.FaceList = FACELIST_VISIBLE
	}
	c.Priorities = PriorityWeights{
		Hint:       cl.HintPriority,
		Antiportal: cl.AntiportalPriority,
		Areaportal: cl.AreaportalPriority,
		Detail:     cl.DetailPriority,
	}
	c.LogLevel = cl.LogLevel
	c.LogIndent = cl.LogIndent
	c.VerbosityLevel = cl.Verbosity
	return nil
}

// parseBlockSize accepts either a single value used for all three axes, or
// three comma separated values
func parseBlockSize(s string) ([3]float64, error) {
	var res [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return res, errors.New("block size needs one or three values").
			WithType(ErrTypeConfig).
			WithTag("block_size", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return res, errors.New("invalid block size").
				WithType(ErrTypeConfig).
				WithTag("block_size", s).
				Wrap(err)
		}
		res[i] = v
	}
	if len(parts) == 1 {
		res[1] = res[0]
		res[2] = res[0]
	}
	return res, nil
}

func formatBlockSize(bs [3]float64) string {
	if bs[0] == bs[1] && bs[1] == bs[2] {
		return strconv.FormatFloat(bs[0], 'g', -1, 64)
	}
	return fmt.Sprintf("%g,%g,%g", bs[0], bs[1], bs[2])
}
