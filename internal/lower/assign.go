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
package lower

import (
	"myps/internal/ast"
	"myps/internal/grammar"
)

// lowerHllStmt dispatches an HLL leaf statement to its lowering rule.
func (t *Translator) lowerHllStmt(s ast.HllStmt) ([]ast.Line, error) {
	switch v := s.(type) {
	case ast.AsnStmt:
		return t.lowerAsn(v)
	case ast.SelfAsnStmt:
		return t.lowerSelfAsn(v)
	case ast.FixStmt:
		return t.lowerFix(v)
	case ast.MipsStmt:
		return t.lowerMips(v)
	case ast.EmptyHllStmt:
		return nil, nil
	default:
		return nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown statement type %T", s)
	}
}

// lowerFix declares names as Fixed-lifetime registers without
// assigning them: each name gets a fresh
// register whose fix mode is Fixed, so liveness treats it as live for
// the whole program regardless of where it is actually read/written.
// Each declaration emits an `alias name, r` line recording the binding
// in the output itself, not only in the translator's alias table — a
// later `a = expr` assignment then reuses the same register rather
// than allocating a fresh one (lowerAsnVar looks the name up first).
func (t *Translator) lowerFix(s ast.FixStmt) ([]ast.Line, error) {
	var out []ast.Line
	for _, name := range s.Names {
		if grammar.IsReservedName(name) {
			return nil, ast.NewError(ast.ErrReserved, 0, 0, "%q is a reserved register/device spelling", name)
		}
		r := t.freshReg(ast.Fixed())
		t.Aliases.Insert(name, ast.AliasReg(r))
		out = append(out, ast.NewLine(ast.NewStmt(ast.OpAlias, ast.ArgStr(name), ast.ArgReg(r))))
	}
	return out, nil
}

// lowerAsn lowers a (possibly parallel) assignment. A parallel
// assignment `a = x, b = y` lowers each pair independently in source
// order — the rhs expressions are not all evaluated before any lv is
// written, unlike a simultaneous-swap semantics.
func (t *Translator) lowerAsn(s ast.AsnStmt) ([]ast.Line, error) {
	var out []ast.Line
	for i := range s.Lvs {
		lines, err := t.lowerAsnPair(s.Lvs[i], s.Rvs[i], s.IsDefine)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func (t *Translator) lowerAsnPair(lv ast.Lv, rhs ast.Expr, isDefine bool) ([]ast.Line, error) {
	if isDefine {
		return t.lowerDefine(lv, rhs)
	}
	switch l := lv.(type) {
	case ast.VarLv:
		return t.lowerAsnVar(l, rhs)
	case ast.DeviceParamLv:
		return t.lowerAsnDeviceParam(l, rhs)
	case ast.NetworkParamLv:
		return t.lowerAsnNetworkParam(l, rhs)
	default:
		return nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown lvalue type %T", lv)
	}
}

// lowerDefine lowers `def name = expr`: the rhs must reduce to a
// literal at compile time; nothing is emitted, only the alias table
// grows.
func (t *Translator) lowerDefine(lv ast.Lv, rhs ast.Expr) ([]ast.Line, error) {
	varLv, ok := lv.(ast.VarLv)
	if !ok {
		return nil, ast.NewError(ast.ErrAsn, 0, 0, "def target must be a plain name")
	}
	lit, ok := rhs.(ast.LitExpr)
	if !ok {
		if h, ok := rhs.(ast.HashLitExpr); ok {
			num, _, err := t.lowerExpr(nil, h)
			if err != nil {
				return nil, err
			}
			t.Aliases.Insert(varLv.Name, ast.AliasNum(num.Lit))
			return nil, nil
		}
		return nil, ast.NewError(ast.ErrAsn, 0, 0, "def %q's right-hand side must reduce to a literal", varLv.Name)
	}
	t.Aliases.Insert(varLv.Name, ast.AliasNum(lit.Value))
	return nil, nil
}

// lowerAsnVar lowers `var = expr`. Three cases:
//   - rhs is a bare device reference: emit `alias name, d`, record a
//     device alias; no register is allocated.
//   - var already names a register alias: lower the rhs with that
//     register pinned as dest, so no extra `move` is needed unless the
//     rhs produced zero instructions (a pure literal/alias read).
//   - var is unaliased: allocate a fresh register, lower the rhs into
//     it the same way, and record the new alias.
func (t *Translator) lowerAsnVar(lv ast.VarLv, rhs ast.Expr) ([]ast.Line, error) {
	if grammar.IsReservedName(lv.Name) {
		return nil, ast.NewError(ast.ErrReserved, 0, 0, "%q is a reserved register/device spelling", lv.Name)
	}
	if dev, isDev, err := t.tryDeviceRef(rhs); err != nil {
		return nil, err
	} else if isDev {
		t.Aliases.Insert(lv.Name, ast.AliasDev(dev))
		return []ast.Line{ast.NewLine(ast.NewStmt(ast.OpAlias, ast.ArgStr(lv.Name), ast.ArgDev(dev)))}, nil
	}

	var dest ast.RegBase
	if a, ok := t.Aliases.Get(lv.Name); ok && a.Kind == ast.AliasRegK {
		dest = a.Reg
	} else {
		dest = t.freshReg(ast.NoFix())
		t.Aliases.Insert(lv.Name, ast.AliasReg(dest))
	}

	num, lines, err := t.lowerExpr(&dest, rhs)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(dest), ast.ArgNum(num))))
	}
	return lines, nil
}

// tryDeviceRef reports whether rhs is a bare device-valued reference
// (a literal device token or a name aliased to a device). Anything
// else — including a sub-expression that merely contains a device
// read such as `d0.Setting` — is not a device reference itself.
func (t *Translator) tryDeviceRef(rhs ast.Expr) (ast.DevBase, bool, error) {
	v, ok := rhs.(ast.VarExpr)
	if !ok {
		if dr, ok := rhs.(ast.DeviceRefExpr); ok {
			return t.resolveDevNum(dr.Dev)
		}
		return ast.DevBase{}, false, nil
	}
	if d, ok := grammar.ParseDevToken(v.Name); ok {
		return d, true, nil
	}
	if a, ok := t.Aliases.Get(v.Name); ok && a.Kind == ast.AliasDevK {
		return a.Dev, true, nil
	}
	return ast.DevBase{}, false, nil
}

// resolveDevNum resolves a Num known to hold a device reference
// (DeviceRefExpr's Dev field — carried as a Num for uniformity with
// DeviceParamLv/NetworkParamLv, though no HLL syntax currently builds
// a DeviceRefExpr with a register-kind Num).
func (t *Translator) resolveDevNum(n ast.Num) (ast.DevBase, bool, error) {
	switch n.Kind {
	case ast.NumAlias:
		d, err := t.Aliases.TryGetDevBase(n.Alias)
		if err != nil {
			return ast.DevBase{}, false, err
		}
		return d, true, nil
	default:
		return ast.DevBase{}, false, ast.NewError(ast.ErrKind, 0, 0, "expected a device reference")
	}
}

func (t *Translator) lowerAsnDeviceParam(lv ast.DeviceParamLv, rhs ast.Expr) ([]ast.Line, error) {
	dev, err := t.resolveDevBase(lv.Dev)
	if err != nil {
		return nil, err
	}
	num, lines, err := t.lowerExpr(nil, rhs)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpS, ast.ArgDev(dev), ast.ArgStr(lv.Param), ast.ArgNum(num))))
	return lines, nil
}

func (t *Translator) lowerAsnNetworkParam(lv ast.NetworkParamLv, rhs ast.Expr) ([]ast.Line, error) {
	hash, err := t.resolveDevBase(lv.Hash)
	if err != nil {
		return nil, err
	}
	// The mode keyword only selects an aggregation function on the
	// read side (`lb`); `sb` broadcasts to every device matching the
	// hash regardless of mode, so it is validated but not emitted.
	if _, ok := batchModes[lv.Mode]; !ok {
		return nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown batch mode %q", lv.Mode)
	}
	num, lines, err := t.lowerExpr(nil, rhs)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpSb, ast.ArgNum(devAsNum(hash)), ast.ArgStr(lv.Param), ast.ArgNum(num))))
	return lines, nil
}

// resolveDevBase resolves an l-value's device/hash base, which the
// grammar always hands over as an unresolved Num alias reference (see
// internal/grammar's LvFromCST).
func (t *Translator) resolveDevBase(n ast.Num) (ast.DevBase, error) {
	if n.Kind != ast.NumAlias {
		return ast.DevBase{}, ast.NewError(ast.ErrKind, 0, 0, "expected a device name")
	}
	if d, ok := grammar.ParseDevToken(n.Alias); ok {
		return d, nil
	}
	return t.Aliases.TryGetDevBase(n.Alias)
}

// lowerSelfAsn lowers `lhs op= rhs` by rewriting it into an equivalent
// `lhs = lhs op rhs` and reusing lowerAsnVar. `lhs` must already be
// register-aliased — a self-assignment can't be the first mention of
// a name since there is no prior value to combine with.
func (t *Translator) lowerSelfAsn(s ast.SelfAsnStmt) ([]ast.Line, error) {
	if a, ok := t.Aliases.Get(s.Lhs); !ok || a.Kind != ast.AliasRegK {
		return nil, ast.NewError(ast.ErrAsn, 0, 0, "%q is not a register variable, cannot self-assign", s.Lhs)
	}
	combined := ast.BinaryExpr{Op: s.Op, L: ast.VarExpr{Name: s.Lhs}, R: s.Rhs}
	return t.lowerAsnVar(ast.VarLv{Name: s.Lhs}, combined)
}

// lowerMips passes a raw ISA statement through, resolving any Num
// operand that names an alias (internal/grammar's convert.go produces
// an unresolved Num::Alias for any bareword argument, since it has no
// access to the translator's alias table at parse time).
func (t *Translator) lowerMips(s ast.MipsStmt) ([]ast.Line, error) {
	resolved, err := t.resolveMipsArgs(s.Inner)
	if err != nil {
		return nil, err
	}
	return []ast.Line{ast.NewLine(resolved)}, nil
}

func (t *Translator) resolveMipsArgs(stmt ast.Stmt) (ast.Stmt, error) {
	args := make([]ast.Arg, len(stmt.Args))
	for i, a := range stmt.Args {
		if a.Kind == ast.KNum && a.Num.Kind == ast.NumAlias {
			resolved, err := t.resolveAliasNum(a.Num.Alias)
			if err != nil {
				return ast.Stmt{}, err
			}
			a = ast.ArgNum(resolved)
		}
		args[i] = a
	}
	return ast.NewStmt(stmt.Op, args...), nil
}

func (t *Translator) resolveAliasNum(name string) (ast.Num, error) {
	a, ok := t.Aliases.Get(name)
	if !ok {
		return ast.Num{}, ast.NewError(ast.ErrUnknown, 0, 0, "undefined alias %q", name)
	}
	switch a.Kind {
	case ast.AliasNumK:
		return ast.NumLiteral(a.Num), nil
	case ast.AliasRegK:
		return ast.NumRegister(a.Reg), nil
	default:
		return ast.Num{}, ast.NewError(ast.ErrKind, 0, 0, "%q is a device, not a number", name)
	}
}
