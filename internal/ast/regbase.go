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

	"myps/internal/utils"
)

// RegKind tags the three register-base variants.
type RegKind int

const (
	RegSP RegKind = iota
	RegRA
	RegLit
)

// FixKind tags a register's liveness-scope policy.
type FixKind int

const (
	FixNone FixKind = iota
	FixFixed
	FixScoped
)

// FixMode is a register's lifetime policy: None (minimal, single-point),
// Fixed (lives the whole program), or Scoped(s, e) (inclusive line range).
// Invariant: for Scoped, Start <= End.
type FixMode struct {
	Kind  FixKind
	Start int
	End   int
}

func NoFix() FixMode { return FixMode{Kind: FixNone} }
func Fixed() FixMode { return FixMode{Kind: FixFixed} }

func ScopedFix(s, e int) FixMode {
	utils.Assert(s <= e, "ast: Scoped fix mode requires start(%d) <= end(%d)", s, e)
	return FixMode{Kind: FixScoped, Start: s, End: e}
}

// Widen returns the wider of two fix modes seen for the same register
// index at different sites; the widest bound wins per the spec's
// invariant.
func (f FixMode) Widen(other FixMode) FixMode {
	switch {
	case f.Kind == FixFixed || other.Kind == FixFixed:
		return Fixed()
	case f.Kind == FixScoped && other.Kind == FixScoped:
		return ScopedFix(utils.MinInt(f.Start, other.Start), utils.MaxInt(f.End, other.End))
	case f.Kind == FixScoped:
		return f
	case other.Kind == FixScoped:
		return other
	default:
		return NoFix()
	}
}

// Shift translates a Scoped fix mode by delta lines, leaving None/Fixed
// untouched. Used when concatenating a child block's lines into a
// parent's coordinate system.
func (f FixMode) Shift(delta int) FixMode {
	if f.Kind != FixScoped {
		return f
	}
	return ScopedFix(f.Start+delta, f.End+delta)
}

// RegBase is a register operand: the stack pointer, the return address,
// or a literal virtual/physical index with indirection count and fix
// mode. Indirections > 0 spells "r…rN" — the register is addressed
// indirectly through register N.
type RegBase struct {
	Kind         RegKind
	Index        int
	Indirections int
	Fix          FixMode
}

func SP() RegBase { return RegBase{Kind: RegSP, Index: 16} }
func RA() RegBase { return RegBase{Kind: RegRA, Index: 17} }

func RegLiteral(index, indirections int, fix FixMode) RegBase {
	return RegBase{Kind: RegLit, Index: index, Indirections: indirections, Fix: fix}
}

func (r RegBase) IsLit() bool { return r.Kind == RegLit }

func (r RegBase) String() string {
	switch r.Kind {
	case RegSP:
		return "sp"
	case RegRA:
		return "ra"
	default:
		return fmt.Sprintf("%sr%d", strings.Repeat("r", r.Indirections), r.Index)
	}
}

// Equal compares two register bases by value (index + kind), ignoring
// fix mode — fix mode is metadata about a lifetime, not identity.
func (r RegBase) Equal(o RegBase) bool {
	return r.Kind == o.Kind && r.Index == o.Index && r.Indirections == o.Indirections
}
