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

// Package compile wires internal/grammar, internal/lower and
// internal/optimize into two pipelines (HLL source -> ISA, and raw
// ISA -> optimized ISA), using a staged, debug-logged orchestration
// shape (parse -> lower -> codegen) as a pure in-memory transform: no
// process state is persisted across a call.
package compile

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"myps/internal/ast"
	"myps/internal/grammar"
	"myps/internal/lower"
	"myps/internal/optimize"
)

// Options bundles the knobs both entry points accept: the HLL block
// builder's indent width and the optimizer's gate flags. mypsopt's
// flow never touches IndentSize; myps's flow always runs IndentSize
// and optimize.Config together.
type Options struct {
	IndentSize int
	Optimize   optimize.Config
}

// CompileHLL runs the full myps pipeline: parse HLL source to an Item
// tree, validate if/elif/else chain structure, lower to a flat
// Program, then optimize it per opts.Optimize.
func CompileHLL(source string, opts Options) (*ast.Program, error) {
	log := logrus.WithField("stage", "parse")
	log.Debugf("parsing %d bytes of HLL source (indent size %d)", len(source), opts.IndentSize)
	root, err := grammar.ParseHLL(source, opts.IndentSize)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HLL source")
	}

	log = logrus.WithField("stage", "chains")
	if err := grammar.ValidateChains(root); err != nil {
		return nil, errors.Wrap(err, "validating if/elif/else chains")
	}
	log.Debug("chain validation passed")

	log = logrus.WithField("stage", "lower")
	prog, err := lower.Lower(root)
	if err != nil {
		return nil, errors.Wrap(err, "lowering HLL to ISA")
	}
	log.Debugf("lowered to %d lines", prog.Len())

	return optimizeStage(prog, opts.Optimize)
}

// CompileISA runs mypsopt's pipeline: parse raw ISA source, then
// optimize it per cfg. There is no HLL front end in this path — a
// human or another tool already produced valid ISA source.
func CompileISA(source string, cfg optimize.Config) (*ast.Program, error) {
	log := logrus.WithField("stage", "parse")
	log.Debugf("parsing %d bytes of ISA source", len(source))
	prog, err := grammar.ParseISA(source)
	if err != nil {
		return nil, errors.Wrap(err, "parsing ISA source")
	}
	log.Debugf("parsed %d lines", prog.Len())

	return optimizeStage(prog, cfg)
}

func optimizeStage(prog *ast.Program, cfg optimize.Config) (*ast.Program, error) {
	log := logrus.WithField("stage", "optimize")
	if cfg.OptimizeRegisters {
		log.Debug("running register allocation (liveness -> interference -> coloring)")
	}
	out, err := optimize.Optimize(prog, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "optimizing program")
	}
	log.Debugf("emitting %d lines", out.Len())
	return out, nil
}
