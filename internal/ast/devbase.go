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

import (
	"fmt"
	"strings"
)

type DevKind int

const (
	DevDB DevKind = iota
	DevLit
)

// DevBase is a device operand: the self-device marker "db", or a
// literal index with an indirection count ("d r…rN" syntax). An
// indirect device aliases to the register that addresses it for
// liveness purposes.
type DevBase struct {
	Kind         DevKind
	Index        int
	Indirections int
}

func DB() DevBase { return DevBase{Kind: DevDB} }

func DevLiteral(index, indirections int) DevBase {
	return DevBase{Kind: DevLit, Index: index, Indirections: indirections}
}

func (d DevBase) IsIndirect() bool { return d.Kind == DevLit && d.Indirections > 0 }

// IndirectRegIndex returns the register index an indirect device
// operand aliases to, and whether the device is indirect at all.
func (d DevBase) IndirectRegIndex() (int, bool) {
	if !d.IsIndirect() {
		return 0, false
	}
	return d.Index, true
}

func (d DevBase) String() string {
	switch d.Kind {
	case DevDB:
		return "db"
	default:
		return fmt.Sprintf("d%s%d", strings.Repeat("r", d.Indirections), d.Index)
	}
}

func (d DevBase) Equal(o DevBase) bool {
	return d.Kind == o.Kind && d.Index == o.Index && d.Indirections == o.Indirections
}
