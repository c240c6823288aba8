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
	"io"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

const ErrTypeLevelParse = "level_parse_error"

const (
	FORMAT_JSON = iota
	FORMAT_YAML
)

// Level description as it is written in the input file. A brush is given
// either as a box, as a list of planes, or both (planes then cut the box)
type levelDescription struct {
	Brushes []brushDescription `json:"brushes" yaml:"brushes"`
}

type brushDescription struct {
	Entity int               `json:"entity" yaml:"entity"`
	Detail bool              `json:"detail" yaml:"detail"`
	Flags  []string          `json:"flags"  yaml:"flags"` // applied to every side
	Box    *boxDescription   `json:"box"    yaml:"box"`
	Sides  []sideDescription `json:"sides"  yaml:"sides"`
}

type boxDescription struct {
	Mins [3]float64 `json:"mins" yaml:"mins"`
	Maxs [3]float64 `json:"maxs" yaml:"maxs"`
}

type sideDescription struct {
	Normal [3]float64 `json:"normal" yaml:"normal"`
	Dist   float64    `json:"dist"   yaml:"dist"`
	Flags  []string   `json:"flags"  yaml:"flags"`
}

// Level is what face BSP gets to work with: the plane table and brushes whose
// sides reference it
type Level struct {
	Planes  *PlaneTable
	Brushes []*Brush
	MinMax  MinMax
}

func LevelFormatFromFileName(fileName string) (int, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return FORMAT_JSON, nil
	case ".yaml", ".yml":
		return FORMAT_YAML, nil
	}
	return 0, errors.New("unsupported level file extension").
		WithType(ErrTypeLevelParse).
		WithTag("file", fileName)
}

// LoadLevel reads level description and creates brushes with windings out of
// it. Brushes that turn out to have no volume are dropped with a warning
func LoadLevel(r io.Reader, format int) (*Level, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("reading level description failed").
			WithType(ErrTypeLevelParse).
			Wrap(err)
	}

	var desc levelDescription
	switch format {
	case FORMAT_JSON:
		err = json.Unmarshal(data, &desc)
	case FORMAT_YAML:
		err = yaml.Unmarshal(data, &desc)
	default:
		return nil, errors.New("unknown level format").
			WithType(ErrTypeLevelParse).
			WithTag("format", format)
	}
	if err != nil {
		return nil, errors.New("decoding level description failed").
			WithType(ErrTypeLevelParse).
			Wrap(err)
	}

	level := &Level{
		Planes:  NewPlaneTable(),
		Brushes: make([]*Brush, 0, len(desc.Brushes)),
		MinMax:  ClearBounds(),
	}
	for i, bd := range desc.Brushes {
		b, err := level.createBrush(i, bd)
		if err != nil {
			return nil, err
		}
		if !b.CreateBrushWindings(level.Planes) {
			logs.Warn(errors.New("brush has no volume, removed").
				WithTag("brush", i).
				WithTag("entity", bd.Entity))
			continue
		}
		bounds := b.Bounds()
		level.MinMax.AddPoint(bounds.Mins)
		level.MinMax.AddPoint(bounds.Maxs)
		level.Brushes = append(level.Brushes, b)
		instrumentLevelBrush(b.Detail)
	}
	Log.Verbose(1, "Loaded %d brushes, %d planes\n", len(level.Brushes),
		level.Planes.Len())
	return level, nil
}

func (l *Level) createBrush(brushNum int, bd brushDescription) (*Brush, error) {
	brushFlags, unknown := parseCompileFlags(bd.Flags)
	if unknown != "" {
		return nil, errors.New("unknown compile flag").
			WithType(ErrTypeLevelParse).
			WithTag("brush", brushNum).
			WithTag("flag", unknown)
	}

	b := &Brush{
		EntityNum: bd.Entity,
		BrushNum:  brushNum,
		Detail:    bd.Detail || brushFlags&C_DETAIL != 0,
	}
	sides := make([]sideDescription, 0, len(bd.Sides)+6)
	if bd.Box != nil {
		boxSides, badAxis := boxToSides(bd.Box)
		if badAxis >= 0 {
			return nil, errors.New("box mins must be less than maxs").
				WithType(ErrTypeLevelParse).
				WithTag("brush", brushNum).
				WithTag("axis", badAxis)
		}
		sides = append(sides, boxSides...)
	}
	sides = append(sides, bd.Sides...)
	if len(sides) < 4 {
		return nil, errors.New("brush needs at least four sides").
			WithType(ErrTypeLevelParse).
			WithTag("brush", brushNum).
			WithTag("sides", len(sides))
	}

	for j, sd := range sides {
		normal := mgl64.Vec3(sd.Normal)
		length := normal.Len()
		if length < 0.5 {
			return nil, errors.New("side normal is degenerate").
				WithType(ErrTypeLevelParse).
				WithTag("brush", brushNum).
				WithTag("side", j)
		}
		flags, unknown := parseCompileFlags(sd.Flags)
		if unknown != "" {
			return nil, errors.New("unknown compile flag").
				WithType(ErrTypeLevelParse).
				WithTag("brush", brushNum).
				WithTag("side", j).
				WithTag("flag", unknown)
		}
		b.Sides = append(b.Sides, Side{
			PlaneNum: l.Planes.FindFloatPlane(normal.Mul(1/length),
				sd.Dist/length),
			CompileFlags: flags | brushFlags,
		})
	}
	return b, nil
}

// boxToSides returns six axial sides of the box, or the first axis along
// which the box is empty
func boxToSides(box *boxDescription) ([]sideDescription, int) {
	sides := make([]sideDescription, 0, 6)
	for i := 0; i < 3; i++ {
		if box.Mins[i] >= box.Maxs[i] {
			return nil, i
		}
		var normal [3]float64
		normal[i] = 1
		sides = append(sides, sideDescription{Normal: normal, Dist: box.Maxs[i]})
		normal[i] = -1
		sides = append(sides, sideDescription{Normal: normal, Dist: -box.Mins[i]})
	}
	return sides, -1
}

// parseCompileFlags returns the flag mask and the first name it didn't
// recognize, if any
func parseCompileFlags(names []string) (int, string) {
	flags := 0
	for _, name := range names {
		flag, ok := compileFlagNames[strings.ToLower(name)]
		if !ok {
			return 0, name
		}
		flags |= flag
	}
	return flags, ""
}
