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
package optimize

import (
	"myps/internal/ast"
	"myps/internal/regalloc"
)

// Optimize runs the full pass pipeline over prog, in order, each step
// gated by cfg. It mutates prog in place and returns it. Register
// allocation (liveness -> interference -> color -> rewrite) runs
// first when enabled, since it is itself the first pass of the
// optimizer rather than a separate pre-step.
func Optimize(prog *ast.Program, cfg Config) (*ast.Program, error) {
	if cfg.OptimizeRegisters {
		regalloc.Allocate(prog)
	}
	if cfg.RemoveComments {
		stripComments(prog)
	}

	tags := tagBindings(prog)
	aliases := buildAliasTable(prog)
	reduceDirectives(prog, cfg)

	if err := substituteArgs(prog, cfg, aliases, tags); err != nil {
		return nil, err
	}

	if cfg.RemoveEmpty {
		if err := eliminateEmptyLines(prog, cfg); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// stripComments drops every line's trailing comment unconditionally.
// It has no effect on line count or operand resolution, so it is safe
// to apply wherever convenient; done right after register allocation,
// before the directive passes, since nothing later depends on comments.
func stripComments(prog *ast.Program) {
	for i := range prog.Lines {
		prog.Lines[i].Comment = nil
	}
}
