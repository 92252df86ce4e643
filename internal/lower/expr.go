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
	"hash/crc32"
	"math"

	"myps/internal/ast"
	"myps/internal/grammar"
)

// lowerExpr takes an optional destination register and produces the
// Num the expression's value lives in once the returned instructions
// have executed. Pure
// literals and already-resident values (Lit, Var resolving to a
// register or literal alias) are returned as a zero-instruction Num;
// the caller decides whether a `move` into dest is actually needed
// (see assign.go's var = expr rule).
func (t *Translator) lowerExpr(dest *ast.RegBase, expr ast.Expr) (ast.Num, []ast.Line, error) {
	switch e := expr.(type) {
	case ast.LitExpr:
		return ast.NumLiteral(e.Value), nil, nil

	case ast.HashLitExpr:
		return ast.NumLiteral(float64(int32(crc32.ChecksumIEEE([]byte(e.Name))))), nil, nil

	case ast.VarExpr:
		return t.lowerVarRef(e.Name)

	case ast.UnaryExpr:
		return t.lowerUnary(dest, e)

	case ast.BinaryExpr:
		return t.lowerBinary(dest, e)

	case ast.TernaryExpr:
		return t.lowerTernary(dest, e)

	case ast.DeviceRefExpr:
		// A bare device value used where a number is expected has no
		// lowering (devices aren't numbers); callers that allow a
		// device-valued rhs (assign.go's `var = dev`) special-case
		// DeviceRefExpr before ever calling lowerExpr.
		return ast.Num{}, nil, ast.NewError(ast.ErrKind, 0, 0, "a device cannot be used as a number")

	case ast.DeviceParamExpr:
		return t.lowerDeviceParamRead(dest, e)

	case ast.SlotReadExpr:
		return t.lowerSlotRead(dest, e)

	case ast.ReagentReadExpr:
		return t.lowerReagentRead(dest, e)

	case ast.NetworkReadExpr:
		return t.lowerNetworkRead(dest, e)

	default:
		return ast.Num{}, nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown expression type %T", expr)
	}
}

// lowerVarRef resolves a bare name: a user/prelude alias, or (when no
// alias exists) a literal register token used directly, e.g. a `mips`
// line referencing `r5` without ever aliasing it.
func (t *Translator) lowerVarRef(name string) (ast.Num, []ast.Line, error) {
	if a, ok := t.Aliases.Get(name); ok {
		switch a.Kind {
		case ast.AliasNumK:
			return ast.NumLiteral(a.Num), nil, nil
		case ast.AliasRegK:
			return ast.NumRegister(a.Reg), nil, nil
		default:
			return ast.Num{}, nil, ast.NewError(ast.ErrKind, 0, 0, "%q is a device, not a number", name)
		}
	}
	if r, ok := grammar.ParseRegToken(name); ok {
		return ast.NumRegister(r), nil, nil
	}
	return ast.Num{}, nil, ast.NewError(ast.ErrUnknown, 0, 0, "undefined name %q", name)
}

// resolveDevExpr resolves an Expr known to name a device (the Dev/Hash
// field of an access-chain expression, always a bare VarExpr per
// internal/grammar's exprFromAccess) into a DevBase. Devices are never
// computed values in this ISA — only literal tokens or
// previously-aliased names — so no instructions are needed.
func (t *Translator) resolveDevExpr(e ast.Expr) (ast.DevBase, error) {
	v, ok := e.(ast.VarExpr)
	if !ok {
		return ast.DevBase{}, ast.NewError(ast.ErrKind, 0, 0, "device reference must be a name")
	}
	if d, ok := grammar.ParseDevToken(v.Name); ok {
		return d, nil
	}
	return t.Aliases.TryGetDevBase(v.Name)
}

func (t *Translator) lowerUnary(dest *ast.RegBase, e ast.UnaryExpr) (ast.Num, []ast.Line, error) {
	xNum, lines, err := t.lowerExpr(nil, e.X)
	if err != nil {
		return ast.Num{}, nil, err
	}
	r := t.destOrFresh(dest)
	switch e.Op {
	case ast.OpNeg1:
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpSub, ast.ArgReg(r), ast.ArgNum(ast.NumLiteral(0)), ast.ArgNum(xNum))))
	case ast.OpNot1:
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpNor, ast.ArgReg(r), ast.ArgNum(xNum), ast.ArgNum(xNum))))
	default:
		return ast.Num{}, nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown unary operator %q", e.Op)
	}
	return ast.NumRegister(r), lines, nil
}

// binaryOpcodes maps a surface binary operator to the ISA instruction
// computing it. `nor` is deliberately absent: it is a front-end error
// in expression position, even though it is a perfectly valid opcode
// when written directly via `mips nor ...`.
var binaryOpcodes = map[string]ast.Opcode{
	ast.OpAdd2: ast.OpAdd, ast.OpSub2: ast.OpSub, ast.OpMul2: ast.OpMul,
	ast.OpDiv2: ast.OpDiv, ast.OpMod2: ast.OpMod,
	ast.OpAnd2: ast.OpAnd, ast.OpOr2: ast.OpOr, ast.OpXor2: ast.OpXor,
	ast.OpEq2: ast.OpSeq, ast.OpNe2: ast.OpSne,
	ast.OpGe2: ast.OpSge, ast.OpGt2: ast.OpSgt,
	ast.OpLe2: ast.OpSle, ast.OpLt2: ast.OpSlt,
}

func (t *Translator) lowerBinary(dest *ast.RegBase, e ast.BinaryExpr) (ast.Num, []ast.Line, error) {
	if e.Op == ast.OpNor2 {
		return ast.Num{}, nil, ast.NewError(ast.ErrKind, 0, 0, "%q cannot appear in an expression", ast.OpNor2)
	}
	if e.Op == ast.OpPow2 {
		return t.lowerPow(dest, e)
	}
	op, ok := binaryOpcodes[e.Op]
	if !ok {
		return ast.Num{}, nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown binary operator %q", e.Op)
	}
	lNum, lLines, err := t.lowerExpr(nil, e.L)
	if err != nil {
		return ast.Num{}, nil, err
	}
	rNum, rLines, err := t.lowerExpr(nil, e.R)
	if err != nil {
		return ast.Num{}, nil, err
	}
	if lNum.Kind == ast.NumLit && rNum.Kind == ast.NumLit {
		if folded, ok := foldBinary(op, lNum.Lit, rNum.Lit); ok {
			return ast.NumLiteral(folded), nil, nil
		}
	}
	lines := append(lLines, rLines...)
	r := t.destOrFresh(dest)
	lines = append(lines, ast.NewLine(ast.NewStmt(op, ast.ArgReg(r), ast.ArgNum(lNum), ast.ArgNum(rNum))))
	return ast.NumRegister(r), lines, nil
}

// foldBinary evaluates op on two compile-time-literal operands,
// letting a later move/alias carry the result instead of an
// instruction computing it. Mirrors the real instruction's arithmetic:
// the logical ops treat any nonzero operand as true, matching IC10's
// own and/or/xor rather than bitwise semantics.
func foldBinary(op ast.Opcode, a, b float64) (float64, bool) {
	switch op {
	case ast.OpAdd:
		return a + b, true
	case ast.OpSub:
		return a - b, true
	case ast.OpMul:
		return a * b, true
	case ast.OpDiv:
		return a / b, true
	case ast.OpMod:
		return math.Mod(a, b), true
	case ast.OpAnd:
		return boolNum(a != 0 && b != 0), true
	case ast.OpOr:
		return boolNum(a != 0 || b != 0), true
	case ast.OpXor:
		return boolNum((a != 0) != (b != 0)), true
	case ast.OpSeq:
		return boolNum(a == b), true
	case ast.OpSne:
		return boolNum(a != b), true
	case ast.OpSge:
		return boolNum(a >= b), true
	case ast.OpSgt:
		return boolNum(a > b), true
	case ast.OpSle:
		return boolNum(a <= b), true
	case ast.OpSlt:
		return boolNum(a < b), true
	default:
		return 0, false
	}
}

func boolNum(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// lowerPow lowers `a ** b` into the three-instruction
// `log r, a; mul r, b, r; exp r, r` sequence: IC10 has no native
// exponentiation operator, so this computes a**b as exp(b * log(a)).
func (t *Translator) lowerPow(dest *ast.RegBase, e ast.BinaryExpr) (ast.Num, []ast.Line, error) {
	aNum, aLines, err := t.lowerExpr(nil, e.L)
	if err != nil {
		return ast.Num{}, nil, err
	}
	bNum, bLines, err := t.lowerExpr(nil, e.R)
	if err != nil {
		return ast.Num{}, nil, err
	}
	lines := append(aLines, bLines...)
	r := t.destOrFresh(dest)
	lines = append(lines,
		ast.NewLine(ast.NewStmt(ast.OpLog, ast.ArgReg(r), ast.ArgNum(aNum))),
		ast.NewLine(ast.NewStmt(ast.OpMul, ast.ArgReg(r), ast.ArgNum(bNum), ast.ArgNum(ast.NumRegister(r)))),
		ast.NewLine(ast.NewStmt(ast.OpExp, ast.ArgReg(r), ast.ArgNum(ast.NumRegister(r)))),
	)
	return ast.NumRegister(r), lines, nil
}

// lowerTernary lowers `cond ? then : else` into IC10's `select`
// instruction: `select r, cond, then, else`.
func (t *Translator) lowerTernary(dest *ast.RegBase, e ast.TernaryExpr) (ast.Num, []ast.Line, error) {
	condNum, condLines, err := t.lowerExpr(nil, e.Cond)
	if err != nil {
		return ast.Num{}, nil, err
	}
	thenNum, thenLines, err := t.lowerExpr(nil, e.Then)
	if err != nil {
		return ast.Num{}, nil, err
	}
	elseNum, elseLines, err := t.lowerExpr(nil, e.Else)
	if err != nil {
		return ast.Num{}, nil, err
	}
	lines := append(condLines, thenLines...)
	lines = append(lines, elseLines...)
	r := t.destOrFresh(dest)
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpSelect, ast.ArgReg(r), ast.ArgNum(condNum), ast.ArgNum(thenNum), ast.ArgNum(elseNum))))
	return ast.NumRegister(r), lines, nil
}

func (t *Translator) lowerDeviceParamRead(dest *ast.RegBase, e ast.DeviceParamExpr) (ast.Num, []ast.Line, error) {
	dev, err := t.resolveDevExpr(e.Dev)
	if err != nil {
		return ast.Num{}, nil, err
	}
	r := t.destOrFresh(dest)
	line := ast.NewLine(ast.NewStmt(ast.OpL, ast.ArgReg(r), ast.ArgDev(dev), ast.ArgStr(e.Param)))
	return ast.NumRegister(r), []ast.Line{line}, nil
}

func (t *Translator) lowerSlotRead(dest *ast.RegBase, e ast.SlotReadExpr) (ast.Num, []ast.Line, error) {
	dev, err := t.resolveDevExpr(e.Dev)
	if err != nil {
		return ast.Num{}, nil, err
	}
	idxNum, idxLines, err := t.lowerExpr(nil, e.Index)
	if err != nil {
		return ast.Num{}, nil, err
	}
	r := t.destOrFresh(dest)
	idxLines = append(idxLines, ast.NewLine(ast.NewStmt(ast.OpLs, ast.ArgReg(r), ast.ArgDev(dev), ast.ArgNum(idxNum), ast.ArgStr(e.Field))))
	return ast.NumRegister(r), idxLines, nil
}

func (t *Translator) lowerReagentRead(dest *ast.RegBase, e ast.ReagentReadExpr) (ast.Num, []ast.Line, error) {
	dev, err := t.resolveDevExpr(e.Dev)
	if err != nil {
		return ast.Num{}, nil, err
	}
	modeNum, modeLines, err := t.lowerExpr(nil, e.Mode)
	if err != nil {
		return ast.Num{}, nil, err
	}
	r := t.destOrFresh(dest)
	modeLines = append(modeLines, ast.NewLine(ast.NewStmt(ast.OpLr, ast.ArgReg(r), ast.ArgDev(dev), ast.ArgNum(modeNum), ast.ArgStr(e.Field))))
	return ast.NumRegister(r), modeLines, nil
}

// batchModes maps the `h.mode.P` surface keyword to `lb`'s numeric
// batch-mode operand (Average/Sum/Minimum/Maximum, in that fixed
// order per the real IC10 instruction set).
var batchModes = map[string]float64{
	"avg": 0, "average": 0,
	"sum": 1,
	"min": 2, "minimum": 2,
	"max": 3, "maximum": 3,
}

func (t *Translator) lowerNetworkRead(dest *ast.RegBase, e ast.NetworkReadExpr) (ast.Num, []ast.Line, error) {
	hash, err := t.resolveDevExpr(e.Hash)
	if err != nil {
		return ast.Num{}, nil, err
	}
	mode, ok := batchModes[e.Mode]
	if !ok {
		return ast.Num{}, nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown batch mode %q", e.Mode)
	}
	r := t.destOrFresh(dest)
	line := ast.NewLine(ast.NewStmt(ast.OpLb, ast.ArgReg(r), ast.ArgNum(devAsNum(hash)), ast.ArgStr(e.Param), ast.ArgNum(ast.NumLiteral(mode))))
	return ast.NumRegister(r), []ast.Line{line}, nil
}

// devAsNum folds a device-reference operand into the Num an `lb`
// instruction's hash argument expects. `lb` addresses devices by their
// network hash, held in the same Num slot other instructions use for
// registers/literals. An indirect device carries its addressing
// register through NumReg; a direct device is carried as its literal
// index.
func devAsNum(d ast.DevBase) ast.Num {
	if idx, ok := d.IndirectRegIndex(); ok {
		return ast.NumRegister(ast.RegLiteral(idx, 0, ast.NoFix()))
	}
	return ast.NumLiteral(float64(d.Index))
}

// destOrFresh returns dest if the caller pinned one, otherwise
// allocates a fresh register with no fix mode, the minimal
// single-point lifetime default.
func (t *Translator) destOrFresh(dest *ast.RegBase) ast.RegBase {
	if dest != nil {
		return *dest
	}
	return t.freshReg(ast.NoFix())
}
