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
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"myps/internal/ast"
	"myps/internal/isa"
)

var (
	regPattern      = regexp.MustCompile(`^(r+)([0-9]+)$`)
	reservedPattern = regexp.MustCompile(`^(r[0-9]+|d[0-9]+|db)$`)
)

// parseRegToken decodes "sp", "ra", "r3", "rr7" (indirect) into a
// RegBase. fix is left None; callers that need Fixed/Scoped set it
// afterward (the grammar layer has no lifetime information).
func parseRegToken(tok string) (ast.RegBase, bool) {
	switch tok {
	case "sp":
		return ast.SP(), true
	case "ra":
		return ast.RA(), true
	}
	m := regPattern.FindStringSubmatch(tok)
	if m == nil {
		return ast.RegBase{}, false
	}
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return ast.RegBase{}, false
	}
	return ast.RegLiteral(idx, len(m[1])-1, ast.NoFix()), true
}

// parseDevToken decodes "db", "d3", "dr5" (indirect) into a DevBase.
func parseDevToken(tok string) (ast.DevBase, bool) {
	if tok == "db" {
		return ast.DB(), true
	}
	if !strings.HasPrefix(tok, "d") {
		return ast.DevBase{}, false
	}
	rest := tok[1:]
	indirections := 0
	for len(rest) > 0 && rest[0] == 'r' {
		indirections++
		rest = rest[1:]
	}
	if rest == "" {
		return ast.DevBase{}, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return ast.DevBase{}, false
	}
	return ast.DevLiteral(idx, indirections), true
}

// ParseRegToken exports parseRegToken for internal/lower, which needs
// to recognize a literal register spelling used directly as an
// expression or assignment rhs (e.g. `var = r5`) without duplicating
// the token grammar.
func ParseRegToken(tok string) (ast.RegBase, bool) { return parseRegToken(tok) }

// ParseDevToken exports parseDevToken for internal/lower, for the same
// reason as ParseRegToken.
func ParseDevToken(tok string) (ast.DevBase, bool) { return parseDevToken(tok) }

// IsReservedName reports whether name is a raw register/device literal
// spelling, which the HLL grammar forbids as an l-value name.
func IsReservedName(name string) bool {
	return reservedPattern.MatchString(name) || name == "sp" || name == "ra"
}

func argText(a *ArgCST) string {
	if a.Number != nil {
		return *a.Number
	}
	return *a.Ident
}

// coerceArg converts a raw CST operand into a typed ast.Arg according
// to the dictionary's expected kind for that position.
func coerceArg(want ast.ArgKind, a *ArgCST, line int) (ast.Arg, error) {
	text := argText(a)
	switch want {
	case ast.KReg:
		if r, ok := parseRegToken(text); ok {
			return ast.ArgReg(r), nil
		}
		return ast.Arg{}, ast.NewError(ast.ErrKind, line, 0, "expected register operand, got %q", text)
	case ast.KDev:
		if d, ok := parseDevToken(text); ok {
			return ast.ArgDev(d), nil
		}
		return ast.Arg{}, ast.NewError(ast.ErrKind, line, 0, "expected device operand, got %q", text)
	case ast.KDevOrReg:
		if r, ok := parseRegToken(text); ok {
			return ast.ArgReg(r), nil
		}
		if d, ok := parseDevToken(text); ok {
			return ast.ArgDev(d), nil
		}
		return ast.Arg{}, ast.NewError(ast.ErrKind, line, 0, "expected register or device operand, got %q", text)
	case ast.KNum:
		if a.Number != nil {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return ast.Arg{}, ast.NewError(ast.ErrNumeric, line, 0, "bad numeric literal %q: %s", text, err)
			}
			return ast.ArgNum(ast.NumLiteral(v)), nil
		}
		if r, ok := parseRegToken(text); ok {
			return ast.ArgNum(ast.NumRegister(r)), nil
		}
		return ast.ArgNum(ast.NumAliasRef(text)), nil
	case ast.KLineAbs:
		if a.Number != nil {
			v, err := strconv.Atoi(strings.TrimSuffix(text, ".0"))
			if err != nil {
				return ast.Arg{}, ast.NewError(ast.ErrNumeric, line, 0, "bad line number %q: %s", text, err)
			}
			return ast.ArgLineAbs(ast.LineAbsLit(v)), nil
		}
		return ast.ArgLineAbs(ast.LineAbsTag(text)), nil
	case ast.KLineRel:
		v, err := strconv.Atoi(text)
		if err != nil {
			return ast.Arg{}, ast.NewError(ast.ErrNumeric, line, 0, "bad relative offset %q: %s", text, err)
		}
		return ast.ArgLineRel(v), nil
	default: // KStr
		return ast.ArgStr(text), nil
	}
}

// BuildStmt converts a StmtCST into an ast.Stmt, validating arity and
// argument kinds against the statement dictionary.
func BuildStmt(line int, s *StmtCST) (ast.Stmt, error) {
	op, ok := ast.OpcodeByName(s.Opcode)
	if !ok {
		return ast.Stmt{}, ast.NewError(ast.ErrUnknown, line, 0, "unknown opcode %q", s.Opcode)
	}
	entry, err := isa.Lookup(op)
	if err != nil {
		return ast.Stmt{}, errors.WithMessage(err, "building statement")
	}
	if len(s.Args) != entry.Arity() {
		return ast.Stmt{}, ast.NewError(ast.ErrArity, line, 0,
			"%s expects %d operands, got %d", entry.Name, entry.Arity(), len(s.Args))
	}
	args := make([]ast.Arg, len(s.Args))
	for i, want := range entry.Args {
		arg, err := coerceArg(want, s.Args[i], line)
		if err != nil {
			return ast.Stmt{}, err
		}
		args[i] = arg
	}
	return ast.NewStmt(op, args...), nil
}
