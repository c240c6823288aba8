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

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const ErrTypeFile = "file_error"

// Controls lifetime of the level description file and the report file -
// ensures they are closed by the end of program, regardless of success and
// failure. A report file left over from a failed run is removed, so that it
// can't be mistaken for a report of a successful one
type FileControl struct {
	success        bool
	fin            *os.File
	freport        *os.File
	inputFileName  string
	reportFileName string
}

func (fc *FileControl) OpenInputFile(inputFileName string) (*os.File, error) {
	fc.inputFileName = inputFileName
	var err error
	fc.fin, err = os.Open(inputFileName)
	if err != nil {
		fc.fin = nil
		return nil, errors.New("couldn't open level file").
			WithType(ErrTypeFile).
			WithTag("file", inputFileName).
			Wrap(err)
	}
	return fc.fin, nil
}

func (fc *FileControl) OpenReportFile(reportFileName string) (*os.File, error) {
	fc.reportFileName = reportFileName
	var err error
	fc.freport, err = os.OpenFile(reportFileName, os.O_CREATE|os.O_RDWR|os.O_TRUNC,
		0644)
	if err != nil {
		fc.freport = nil
		return nil, errors.New("couldn't create report file").
			WithType(ErrTypeFile).
			WithTag("file", reportFileName).
			Wrap(err)
	}
	return fc.freport, nil
}

// WriteReport encodes report as JSON into the report file, which must have
// been opened with OpenReportFile
func (fc *FileControl) WriteReport(report any) error {
	if fc.freport == nil {
		Log.Panic("Sanity check failed: report file is not open.\n")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.New("encoding report failed").
			WithType(ErrTypeFile).
			Wrap(err)
	}
	data = append(data, '\n')
	if _, err := fc.freport.Write(data); err != nil {
		return errors.New("writing report failed").
			WithType(ErrTypeFile).
			WithTag("file", fc.reportFileName).
			Wrap(err)
	}
	return nil
}

// Success closes all files. Returns false if any of them couldn't be closed
func (fc *FileControl) Success() bool {
	if fc.fin == nil {
		Log.Panic("Sanity check failed: descriptor invalid.\n")
	}
	ok := true
	if err := fc.fin.Close(); err != nil {
		Log.Error("Couldn't close level file '%s': %s\n", fc.inputFileName,
			err.Error())
		ok = false
	}
	fc.fin = nil
	if fc.freport != nil {
		if err := fc.freport.Close(); err != nil {
			Log.Error("Couldn't close report file '%s': %s\n", fc.reportFileName,
				err.Error())
			ok = false
		} else {
			Log.Printf("Written report file %s\n", fc.reportFileName)
		}
		fc.freport = nil
	}
	fc.success = true
	return ok
}

// Ensures we close all files when program exits. Incomplete report file is
// deleted at this moment
func (fc *FileControl) Shutdown() {
	if fc.success {
		return
	}
	if fc.fin != nil {
		if err := fc.fin.Close(); err != nil {
			Log.Error("Couldn't close level file '%s': %s\n", fc.inputFileName,
				err.Error())
		}
		fc.fin = nil
	}
	if fc.freport != nil {
		errReport := fc.freport.Close()
		fc.freport = nil
		if errReport != nil {
			Log.Error("Couldn't close report file '%s': %s\n", fc.reportFileName,
				errReport.Error())
			return
		}
		if err := os.Remove(fc.reportFileName); err != nil {
			Log.Error("Couldn't delete incomplete report file '%s': %s\n",
				fc.reportFileName, err.Error())
		}
	}
}
