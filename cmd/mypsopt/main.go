// Copyright (c) 2026 The myps Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Command mypsopt parses a raw IC10 ISA source file and runs the
// optimizer only, with no HLL front end.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"myps/internal/compile"
	"myps/internal/optimize"
)

var cli struct {
	File string `arg:"" type:"existingfile" help:"ISA source file to optimize."`

	NoRegAlloc        bool `help:"Don't run register allocation (liveness -> interference -> coloring)."`
	KeepComments      bool `help:"Keep trailing comments instead of stripping them."`
	KeepEmpty         bool `help:"Keep empty/no-op lines instead of eliminating them."`
	KeepEmptyComments bool `help:"Keep empty lines that carry only a comment when other empty lines are eliminated."`
	KeepRegAliases    bool `help:"Keep alias directives naming a register, leaving references to them symbolic."`
	KeepDevAliases    bool `help:"Keep alias directives naming a device, leaving references to them symbolic."`
	KeepDefines       bool `help:"Keep define directives, leaving references to them symbolic."`
	KeepTags          bool `help:"Keep tag directives instead of resolving jumps to line numbers."`

	Verbose bool `short:"v" help:"Raise the log level to Debug."`
}

func (c *cli) optimizeConfig() optimize.Config {
	return optimize.Config{
		RemoveComments:      !c.KeepComments,
		RemoveEmpty:         !c.KeepEmpty,
		RemoveEmptyComments: !c.KeepEmptyComments,
		RemoveRegAliases:    !c.KeepRegAliases,
		RemoveDevAliases:    !c.KeepDevAliases,
		RemoveDefines:       !c.KeepDefines,
		RemoveTags:          !c.KeepTags,
		OptimizeRegisters:   !c.NoRegAlloc,
	}
}

func main() {
	kong.Parse(&cli,
		kong.Name("mypsopt"),
		kong.Description("Runs the IC10 ISA optimizer over a raw source file."),
	)

	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	source, err := os.ReadFile(cli.File)
	if err != nil {
		fatal(errors.Wrap(err, "reading source file"))
	}

	prog, err := compile.CompileISA(string(source), cli.optimizeConfig())
	if err != nil {
		fatal(err)
	}

	if err := compile.Fprint(os.Stdout, prog); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
