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

// Central log of the program
package main

import (
	"fmt"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
)

// MyLogger keeps printf-style calls for the progress output, and turns them
// into structured log entries
type MyLogger struct {
	verbosityLevel int
}

func CreateLogger() *MyLogger {
	return new(MyLogger)
}

var Log = CreateLogger()

// SetupLogs configures the log sink: level, encoder and verbosity used by
// Verbose
func SetupLogs(logLevel string, indent bool, verbosityLevel int) {
	logs.SetLevel(logs.ParseLevel(logLevel))
	logs.Encoder = json.Marshal
	if indent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal
	Log.verbosityLevel = verbosityLevel
}

func logLine(s string, a ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(s, a...), "\n")
}

// Your generic printf to let user see things
func (log *MyLogger) Printf(s string, a ...interface{}) {
	logs.WithTag("program", PROGRAM_NAME).Info(logLine(s, a...))
}

// Does NOT interrupt execution of the program
func (log *MyLogger) Error(s string, a ...interface{}) {
	logs.WithTag("program", PROGRAM_NAME).Error(errors.New(logLine(s, a...)))
}

// Stuff users only want to see when they asked for it with -verbosity
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if verbosityLevel <= log.verbosityLevel {
		logs.WithTag("program", PROGRAM_NAME).
			WithTag("verbosity", verbosityLevel).
			Info(logLine(s, a...))
	}
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it
func (log *MyLogger) Panic(s string, a ...interface{}) {
	panic(fmt.Sprintf(s, a...))
}
