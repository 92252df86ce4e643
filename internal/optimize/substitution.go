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

// substituteArgs implements pass 3: for each remaining statement's
// args, replace a symbolic reference naming an alias/tag whose class
// is being removed with its resolved literal/register/device/line
// number. In this ast, an alias-kind register or device reference only
// ever shows up wrapped in a Num (KReg/KDev args always carry an
// already-resolved literal token, per internal/grammar's coercion) —
// so the only symbolic shapes are Arg::Num naming an alias and
// Arg::LineAbs naming a tag.
func substituteArgs(prog *ast.Program, cfg Config, aliases *alias.Table, tags map[string]int) error {
	var err error
	prog.ForEachArg(func(_, _ int, arg *ast.Arg) {
		if err != nil {
			return
		}
		switch arg.Kind {
		case ast.KNum:
			if arg.Num.Kind != ast.NumAlias {
				return
			}
			err = substituteNumAlias(arg, cfg, aliases)
		case ast.KLineAbs:
			if !arg.LineAbs.IsTag || !cfg.RemoveTags {
				return
			}
			if n, ok := tags[arg.LineAbs.Tag]; ok {
				arg.LineAbs = ast.LineAbsLit(n)
			}
		}
	})
	return err
}

func substituteNumAlias(arg *ast.Arg, cfg Config, aliases *alias.Table) error {
	name := arg.Num.Alias
	a, ok := aliases.Get(name)
	if !ok {
		return ast.NewError(ast.ErrUnknown, 0, 0, "undefined alias %q", name)
	}
	switch a.Kind {
	case ast.AliasNumK:
		if cfg.RemoveDefines {
			arg.Num = ast.NumLiteral(a.Num)
		}
	case ast.AliasRegK:
		if cfg.RemoveRegAliases {
			arg.Num = ast.NumRegister(a.Reg)
		}
	case ast.AliasDevK:
		if cfg.RemoveDevAliases {
			arg.Num = devAsNum(a.Dev)
		}
	}
	return nil
}

// devAsNum folds a device into the Num shape an instruction's numeric
// hash/index argument expects, mirroring internal/lower/expr.go's
// helper of the same name and purpose: an indirect device carries its
// addressing register through NumReg, a direct one is its literal
// index.
func devAsNum(d ast.DevBase) ast.Num {
	if idx, ok := d.IndirectRegIndex(); ok {
		return ast.NumRegister(ast.RegLiteral(idx, 0, ast.NoFix()))
	}
	return ast.NumLiteral(float64(d.Index))
}
