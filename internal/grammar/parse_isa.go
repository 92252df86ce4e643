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
	"strings"

	"myps/internal/ast"
)

// ParseISA parses a flat ISA source file (the optimizer tool's input)
// into a Program. Unlike HLL source, ISA lines carry no block
// structure: indentation is cosmetic and ignored.
func ParseISA(source string) (*ast.Program, error) {
	rawLines := strings.Split(source, "\n")
	lines := make([]ast.Line, 0, len(rawLines))
	for i, raw := range rawLines {
		lineNo := i + 1
		if i == len(rawLines)-1 && strings.TrimSpace(raw) == "" {
			continue // trailing newline produces no phantom final line
		}
		body, comment := splitComment(raw)
		trimmed := strings.TrimSpace(body)
		if trimmed == "" {
			line := ast.NewLine(ast.EmptyStmt())
			if comment != nil {
				line = ast.NewLineComment(ast.EmptyStmt(), *comment)
			}
			lines = append(lines, line)
			continue
		}
		cst, err := ParseISALine(trimmed)
		if err != nil {
			return nil, ast.NewError(ast.ErrParse, lineNo, 0, "%s", err)
		}
		stmt, err := buildIsaStmt(lineNo, cst)
		if err != nil {
			return nil, err
		}
		line := ast.NewLine(stmt)
		if comment != nil {
			line = ast.NewLineComment(stmt, *comment)
		}
		lines = append(lines, line)
	}
	return ast.NewProgram(lines...), nil
}

func buildIsaStmt(lineNo int, cst *ISALineCST) (ast.Stmt, error) {
	if cst.Tag != nil {
		return ast.TagStmt(cst.Tag.Name), nil
	}
	return BuildStmt(lineNo, cst.Stmt)
}
