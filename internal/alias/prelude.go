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
package alias

import "myps/internal/ast"

// prelude is the immutable built-in alias set: the self-device marker,
// the two fixed registers, and the batch/read mode constants. It is a
// package-level constant map, logically immutable and distinct from
// the user alias table, never mutated after init — no process-wide
// singleton with mutable state is introduced.
var prelude = map[string]ast.Alias{
	"db": ast.AliasDev(ast.DB()),
	"sp": ast.AliasReg(ast.SP()),
	"ra": ast.AliasReg(ast.RA()),

	"average":  ast.AliasNum(0),
	"sum":      ast.AliasNum(1),
	"min":      ast.AliasNum(2),
	"max":      ast.AliasNum(3),

	"contents": ast.AliasNum(0),
	"required": ast.AliasNum(1),
	"recipe":   ast.AliasNum(2),

	"horizontal": ast.AliasNum(20),
	"vertical":   ast.AliasNum(21),
}
