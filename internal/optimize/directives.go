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
	"myps/internal/alias"
	"myps/internal/ast"
)

// buildAliasTable scans prog for Define/Alias directive lines and
// builds an alias.Table reflecting them. HLL-lowered programs only
// ever carry Alias lines (internal/lower never emits Define — a `def`
// statement is a pure compile-time binding); raw ISA source parsed by
// internal/grammar's ParseISA can carry both, since a human author can
// write either directive by hand. Scanning here works uniformly across
// both origins.
func buildAliasTable(prog *ast.Program) *alias.Table {
	t := alias.New()
	for _, line := range prog.Lines {
		s := line.Stmt
		switch s.Op {
		case ast.OpDefine:
			if val := s.Args[1].Num; val.Kind == ast.NumLit {
				t.Insert(s.Args[0].Str, ast.AliasNum(val.Lit))
			}
		case ast.OpAlias:
			switch s.Args[1].Kind {
			case ast.KReg:
				t.Insert(s.Args[0].Str, ast.AliasReg(s.Args[1].Reg))
			case ast.KDev:
				t.Insert(s.Args[0].Str, ast.AliasDev(s.Args[1].Dev))
			}
		}
	}
	return t
}

// tagBindings collects tag name -> line-index bindings before any
// directive gets replaced, since removing a tag line would otherwise
// erase the binding it records.
func tagBindings(prog *ast.Program) map[string]int {
	m := map[string]int{}
	for i, line := range prog.Lines {
		if line.Stmt.IsTag() {
			m[line.Stmt.TagName()] = i
		}
	}
	return m
}

// reduceDirectives replaces Define/Alias/Tag statements with Empty,
// keeping their comment, per the corresponding remove flag.
func reduceDirectives(prog *ast.Program, cfg Config) {
	for i := range prog.Lines {
		s := prog.Lines[i].Stmt
		remove := false
		switch s.Op {
		case ast.OpDefine:
			remove = cfg.RemoveDefines
		case ast.OpAlias:
			switch s.Args[1].Kind {
			case ast.KReg:
				remove = cfg.RemoveRegAliases
			case ast.KDev:
				remove = cfg.RemoveDevAliases
			}
		case ast.OpTag:
			remove = cfg.RemoveTags
		}
		if remove {
			prog.Lines[i].Stmt = ast.EmptyStmt()
		}
	}
}
