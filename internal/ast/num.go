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
package ast

import "strconv"

type NumKind int

const (
	NumLit NumKind = iota
	NumReg
	NumAlias
)

// Num is a resolved or not-yet-resolved numeric operand: a literal, a
// register holding a value, or a name that must be resolved against
// the alias table. Aliases are resolved lazily.
type Num struct {
	Kind  NumKind
	Lit   float64
	Reg   RegBase
	Alias string
}

func NumLiteral(v float64) Num       { return Num{Kind: NumLit, Lit: v} }
func NumRegister(r RegBase) Num      { return Num{Kind: NumReg, Reg: r} }
func NumAliasRef(name string) Num    { return Num{Kind: NumAlias, Alias: name} }
func (n Num) IsResolved() bool       { return n.Kind != NumAlias }

func (n Num) String() string {
	switch n.Kind {
	case NumLit:
		return strconv.FormatFloat(n.Lit, 'g', -1, 64)
	case NumReg:
		return n.Reg.String()
	default:
		return n.Alias
	}
}
