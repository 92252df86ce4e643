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
	"strconv"

	"myps/internal/ast"
)

// ExprFromCST flattens the nested precedence-ladder CST (ExprCST down
// through PrimaryCST, cst.go) into an ast.Expr tree. Every binary tier
// folds left-associatively except PowExprCST, which recurses on its
// own Right field to stay right-associative.
func ExprFromCST(e *ExprCST) (ast.Expr, error) {
	cond, err := orExprFromCST(e.Cond)
	if err != nil {
		return nil, err
	}
	if e.Then == nil {
		return cond, nil
	}
	thenExpr, err := ExprFromCST(e.Then)
	if err != nil {
		return nil, err
	}
	elseExpr, err := ExprFromCST(e.Else)
	if err != nil {
		return nil, err
	}
	return ast.TernaryExpr{Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

func orExprFromCST(o *OrExprCST) (ast.Expr, error) {
	left, err := andExprFromCST(o.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range o.Ops {
		right, err := andExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func andExprFromCST(a *AndExprCST) (ast.Expr, error) {
	left, err := eqExprFromCST(a.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range a.Ops {
		right, err := eqExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func eqExprFromCST(eq *EqExprCST) (ast.Expr, error) {
	left, err := relExprFromCST(eq.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range eq.Ops {
		right, err := relExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func relExprFromCST(r *RelExprCST) (ast.Expr, error) {
	left, err := addExprFromCST(r.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range r.Ops {
		right, err := addExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func addExprFromCST(a *AddExprCST) (ast.Expr, error) {
	left, err := mulExprFromCST(a.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range a.Ops {
		right, err := mulExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func mulExprFromCST(m *MulExprCST) (ast.Expr, error) {
	left, err := powExprFromCST(m.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range m.Ops {
		right, err := powExprFromCST(op.Right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op.Operator, L: left, R: right}
	}
	return left, nil
}

func powExprFromCST(p *PowExprCST) (ast.Expr, error) {
	left, err := unaryExprFromCST(p.Left)
	if err != nil {
		return nil, err
	}
	if p.Right == nil {
		return left, nil
	}
	right, err := powExprFromCST(p.Right)
	if err != nil {
		return nil, err
	}
	return ast.BinaryExpr{Op: ast.OpPow2, L: left, R: right}, nil
}

func unaryExprFromCST(u *UnaryExprCST) (ast.Expr, error) {
	primary, err := primaryFromCST(u.Primary)
	if err != nil {
		return nil, err
	}
	switch {
	case u.Neg:
		return ast.UnaryExpr{Op: ast.OpNeg1, X: primary}, nil
	case u.Not:
		return ast.UnaryExpr{Op: ast.OpNot1, X: primary}, nil
	default:
		return primary, nil
	}
}

func primaryFromCST(p *PrimaryCST) (ast.Expr, error) {
	switch {
	case p.Paren != nil:
		return ExprFromCST(p.Paren)
	case p.Hash != nil:
		return ast.HashLitExpr{Name: p.Hash.Name}, nil
	case p.Number != nil:
		v, err := strconv.ParseFloat(*p.Number, 64)
		if err != nil {
			return nil, ast.NewError(ast.ErrNumeric, 0, 0, "bad numeric literal %q: %s", *p.Number, err)
		}
		return ast.LitExpr{Value: v}, nil
	case p.Access != nil:
		return exprFromAccess(p.Access)
	default:
		return nil, ast.NewError(ast.ErrParse, 0, 0, "empty primary expression")
	}
}

// exprFromAccess disambiguates a bare-identifier-plus-segments chain
// into one of VarExpr/DeviceParamExpr/SlotReadExpr/ReagentReadExpr/
// NetworkReadExpr. It never resolves aliases itself; that is
// lowering's job.
func exprFromAccess(a *AccessCST) (ast.Expr, error) {
	base := ast.Expr(ast.VarExpr{Name: a.Base})
	switch len(a.Segments) {
	case 0:
		return base, nil
	case 1:
		seg := a.Segments[0]
		if seg.Index != nil {
			return nil, ast.NewError(ast.ErrParse, 0, 0, "bare indexed segment %q.%s[..] needs a trailing field", a.Base, seg.Name)
		}
		return ast.DeviceParamExpr{Dev: base, Param: seg.Name}, nil
	case 2:
		seg0, seg1 := a.Segments[0], a.Segments[1]
		if seg1.Index != nil {
			return nil, ast.NewError(ast.ErrParse, 0, 0, "trailing segment %q.%s cannot itself be indexed", a.Base, seg1.Name)
		}
		if seg0.Index != nil {
			idx, err := ExprFromCST(seg0.Index)
			if err != nil {
				return nil, err
			}
			switch seg0.Name {
			case "Slots":
				return ast.SlotReadExpr{Dev: base, Index: idx, Field: seg1.Name}, nil
			case "Reagents":
				return ast.ReagentReadExpr{Dev: base, Mode: idx, Field: seg1.Name}, nil
			default:
				return nil, ast.NewError(ast.ErrParse, 0, 0, "unknown indexed access %q.%s[..]", a.Base, seg0.Name)
			}
		}
		return ast.NetworkReadExpr{Hash: base, Mode: seg0.Name, Param: seg1.Name}, nil
	default:
		return nil, ast.NewError(ast.ErrParse, 0, 0, "access chain on %q has too many segments", a.Base)
	}
}
