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
package grammar

import (
	"myps/internal/ast"
)

// LvFromCST disambiguates an assignment target's base-plus-segments
// chain into VarLv, DeviceParamLv, or NetworkParamLv. Unlike an
// r-value access chain, an l-value's device/hash base is
// itself an unresolved name, not a sub-expression: DeviceParamLv and
// NetworkParamLv carry it as a Num alias reference, resolved against
// the alias table during lowering.
func LvFromCST(l *LvCST) (ast.Lv, error) {
	switch len(l.Segments) {
	case 0:
		return ast.VarLv{Name: l.Base}, nil
	case 1:
		seg := l.Segments[0]
		if seg.Index != nil {
			return nil, ast.NewError(ast.ErrParse, 0, 0, "%q.%s[..] is not a valid assignment target", l.Base, seg.Name)
		}
		return ast.DeviceParamLv{Dev: ast.NumAliasRef(l.Base), Param: seg.Name}, nil
	case 2:
		seg0, seg1 := l.Segments[0], l.Segments[1]
		if seg0.Index != nil || seg1.Index != nil {
			return nil, ast.NewError(ast.ErrParse, 0, 0, "%q has an indexed segment, not a valid assignment target", l.Base)
		}
		return ast.NetworkParamLv{Hash: ast.NumAliasRef(l.Base), Mode: seg0.Name, Param: seg1.Name}, nil
	default:
		return nil, ast.NewError(ast.ErrParse, 0, 0, "assignment target %q has too many segments", l.Base)
	}
}

// BuildMipsStmt converts an embedded `mips <opcode> <args...>` line
// into an ast.MipsStmt, reusing the ISA statement dictionary the same
// way convert.go's BuildStmt does.
func BuildMipsStmt(line int, m *MipsStmtCST) (ast.HllStmt, error) {
	stmt, err := BuildStmt(line, &StmtCST{Opcode: m.Opcode, Args: m.Args})
	if err != nil {
		return nil, err
	}
	return ast.MipsStmt{Inner: stmt}, nil
}

// BuildDefStmt converts `def name = expr` into an AsnStmt with
// IsDefine set; the rhs must reduce to a literal, a constraint
// enforced at lowering, not here.
func BuildDefStmt(d *DefStmtCST) (ast.HllStmt, error) {
	rhs, err := ExprFromCST(d.Rhs)
	if err != nil {
		return nil, err
	}
	return ast.AsnStmt{Lvs: []ast.Lv{ast.VarLv{Name: d.Name}}, Rvs: []ast.Expr{rhs}, IsDefine: true}, nil
}

// BuildFixStmt converts `fix a, b, c`.
func BuildFixStmt(f *FixStmtCST) (ast.HllStmt, error) {
	return ast.FixStmt{Names: f.Names}, nil
}

// BuildSelfAsnStmt converts `lhs op= rhs`, normalizing the operator
// symbol to one of BinaryExpr's canonical spellings.
func BuildSelfAsnStmt(s *SelfAsnCST) (ast.HllStmt, error) {
	rhs, err := ExprFromCST(s.Rhs)
	if err != nil {
		return nil, err
	}
	op := selfAsnOp(s)
	return ast.SelfAsnStmt{Op: op, Lhs: s.Lhs, Rhs: rhs}, nil
}

func selfAsnOp(s *SelfAsnCST) string {
	if s.OpSym != nil {
		switch *s.OpSym {
		case "+=":
			return ast.OpAdd2
		case "-=":
			return ast.OpSub2
		case "*=":
			return ast.OpMul2
		case "/=":
			return ast.OpDiv2
		case "%=":
			return ast.OpMod2
		}
	}
	return *s.OpWord
}

// BuildAsnStmt converts a (possibly parallel) plain assignment
// `lv = rv [, lv = rv ...]`.
func BuildAsnStmt(a *AsnStmtCST) (ast.HllStmt, error) {
	lvs := make([]ast.Lv, len(a.Pairs))
	rvs := make([]ast.Expr, len(a.Pairs))
	for i, pair := range a.Pairs {
		lv, err := LvFromCST(pair.Lv)
		if err != nil {
			return nil, err
		}
		rv, err := ExprFromCST(pair.Rv)
		if err != nil {
			return nil, err
		}
		lvs[i] = lv
		rvs[i] = rv
	}
	return ast.AsnStmt{Lvs: lvs, Rvs: rvs}, nil
}

// BuildLeafStmt converts the non-branch-header alternatives of an
// HLLLineCST (Def/Fix/Mips/SelfAsn/Asn) into an ast.HllStmt. Callers
// must check BuildBranch first; a line is never both.
func BuildLeafStmt(line int, h *HLLLineCST) (ast.HllStmt, error) {
	switch {
	case h.Def != nil:
		return BuildDefStmt(h.Def)
	case h.Fix != nil:
		return BuildFixStmt(h.Fix)
	case h.Mips != nil:
		return BuildMipsStmt(line, h.Mips)
	case h.SelfAsn != nil:
		return BuildSelfAsnStmt(h.SelfAsn)
	case h.Asn != nil:
		return BuildAsnStmt(h.Asn)
	default:
		return nil, ast.NewError(ast.ErrParse, line, 0, "line is a branch header, not a statement")
	}
}

// BuildBranch converts the branch-header alternatives of an
// HLLLineCST (Loop/While/If/Elif/Else/For/TagHdr) into an ast.Branch.
// The second return value is false when the line is a leaf statement
// instead. If/Elif/Else branches get their ChainID filled in later by
// the chain-ID validation pass (chain.go), not here.
func BuildBranch(h *HLLLineCST) (ast.Branch, bool, error) {
	switch {
	case h.Loop != nil:
		return ast.LoopBranch{}, true, nil
	case h.While != nil:
		cond, err := ExprFromCST(h.While.Cond)
		if err != nil {
			return nil, true, err
		}
		return ast.WhileBranch{Cond: cond}, true, nil
	case h.If != nil:
		cond, err := ExprFromCST(h.If.Cond)
		if err != nil {
			return nil, true, err
		}
		return ast.IfBranch{Cond: cond}, true, nil
	case h.Elif != nil:
		cond, err := ExprFromCST(h.Elif.Cond)
		if err != nil {
			return nil, true, err
		}
		return ast.ElifBranch{Cond: cond}, true, nil
	case h.Else != nil:
		return ast.ElseBranch{}, true, nil
	case h.For != nil:
		start, err := ExprFromCST(h.For.Start)
		if err != nil {
			return nil, true, err
		}
		end, err := ExprFromCST(h.For.End)
		if err != nil {
			return nil, true, err
		}
		var step ast.Expr
		if h.For.Step != nil {
			step, err = ExprFromCST(h.For.Step)
			if err != nil {
				return nil, true, err
			}
		}
		return ast.ForBranch{Var: h.For.Var, Start: start, End: end, Step: step}, true, nil
	case h.TagHdr != nil:
		return ast.TagBranch{Name: h.TagHdr.Name}, true, nil
	default:
		return nil, false, nil
	}
}
