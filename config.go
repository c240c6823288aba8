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
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const VERSION = "0.1a"

const PROGRAM_NAME = "vigilantfbsp"

const (
	FACELIST_STRUCTURAL = iota
	FACELIST_VISIBLE
)

const ErrTypeConfig = "config_error"

type ProgramConfig struct {
	InputFileName   string
	ReportFileName  string // optional JSON report of the build
	MetricsFileName string // optional prometheus textfile
	// Forced partitions at multiples of these, per axis. Zero or negative
	// disables the axis
	BlockSize             [3]float64
	DeepBSP               bool // detail brushes take part in the BSP
	AlternateSplitWeights bool
	FaceList              int // FACELIST_STRUCTURAL or FACELIST_VISIBLE
	Priorities            PriorityWeights
	LogLevel              string
	LogIndent             bool
	VerbosityLevel        int
}

var config *ProgramConfig

func DefaultConfig() *ProgramConfig {
	return &ProgramConfig{
		BlockSize:             [3]float64{1024, 1024, 1024},
		DeepBSP:               false,
		AlternateSplitWeights: false,
		FaceList:              FACELIST_STRUCTURAL,
		Priorities:            DefaultPriorityWeights(),
		LogLevel:              logs.InfoLevel.String(),
		VerbosityLevel:        0,
	}
}

// BSPOptions is the part of config the face BSP builder depends on
func (c *ProgramConfig) BSPOptions() BSPOptions {
	return BSPOptions{
		BlockSize:             c.BlockSize,
		DeepBSP:               c.DeepBSP,
		AlternateSplitWeights: c.AlternateSplitWeights,
		Priorities:            c.Priorities,
	}
}

func validateConfig(c *ProgramConfig) error {
	if c.InputFileName == "" {
		return errors.New("you must specify an input file").
			WithType(ErrTypeConfig)
	}
	if c.VerbosityLevel < 0 {
		return errors.New("verbosity can't be negative").
			WithType(ErrTypeConfig).
			WithTag("verbosity", c.VerbosityLevel)
	}
	for i, bs := range c.BlockSize {
		if bs > 0 && bs < 1 {
			return errors.New("block size must be at least 1 unit, or 0 to disable").
				WithType(ErrTypeConfig).
				WithTag("axis", i).
				WithTag("block_size", bs)
		}
	}
	if c.FaceList != FACELIST_STRUCTURAL && c.FaceList != FACELIST_VISIBLE {
		return errors.New("unknown face list kind").
			WithType(ErrTypeConfig).
			WithTag("face_list", c.FaceList)
	}
	if c.ReportFileName != "" && c.ReportFileName == c.InputFileName {
		return errors.New("report file can't be the input file").
			WithType(ErrTypeConfig).
			WithTag("file", c.ReportFileName)
	}
	return nil
}
