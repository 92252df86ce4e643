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

// Package alias implements the name -> Alias table, layered over a
// constant built-in prelude: a constant map distinct from the user
// alias table, consulted when a lookup misses the user table.
package alias

import (
	"strings"

	"github.com/pkg/errors"

	"myps/internal/ast"
)

// Table is the in-progress alias table the translator owns. Lookups
// fall back to the immutable prelude only for prelude keys; the
// case-insensitive fallback applies only to built-ins, never to
// user-defined names.
type Table struct {
	m map[string]ast.Alias
}

func New() *Table {
	return &Table{m: make(map[string]ast.Alias)}
}

// Insert is an unconditional insert; later definitions shadow earlier
// ones. Returns the previous value, if any.
func (t *Table) Insert(name string, a ast.Alias) (ast.Alias, bool) {
	prev, ok := t.m[name]
	t.m[name] = a
	return prev, ok
}

// Get looks up name, falling back to the built-in prelude
// case-insensitively when name isn't a user-defined alias.
func (t *Table) Get(name string) (ast.Alias, bool) {
	if a, ok := t.m[name]; ok {
		return a, true
	}
	if a, ok := prelude[strings.ToLower(name)]; ok {
		return a, true
	}
	return ast.Alias{}, false
}

// Contains reports whether name resolves at all (user table or prelude).
func (t *Table) Contains(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// TryGetRegBase resolves name and requires it to be a register alias;
// errors with ErrUnknown if name is undefined, ErrKind if it is
// another kind of alias.
func (t *Table) TryGetRegBase(name string) (ast.RegBase, error) {
	a, ok := t.Get(name)
	if !ok {
		return ast.RegBase{}, ast.NewError(ast.ErrUnknown, 0, 0, "undefined alias %q", name)
	}
	if a.Kind != ast.AliasRegK {
		return ast.RegBase{}, errors.Wrapf(
			ast.NewError(ast.ErrKind, 0, 0, "alias %q is a %s, not a register", name, a.KindName()),
			"TryGetRegBase")
	}
	return a.Reg, nil
}

// TryGetDevBase resolves name and requires it to be a device alias;
// errors with ErrUnknown if name is undefined, ErrKind if it is
// another kind of alias.
func (t *Table) TryGetDevBase(name string) (ast.DevBase, error) {
	a, ok := t.Get(name)
	if !ok {
		return ast.DevBase{}, ast.NewError(ast.ErrUnknown, 0, 0, "undefined alias %q", name)
	}
	if a.Kind != ast.AliasDevK {
		return ast.DevBase{}, errors.Wrapf(
			ast.NewError(ast.ErrKind, 0, 0, "alias %q is a %s, not a device", name, a.KindName()),
			"TryGetDevBase")
	}
	return a.Dev, nil
}

// TryGetNum resolves name and requires it to be a numeric alias.
func (t *Table) TryGetNum(name string) (float64, error) {
	a, ok := t.Get(name)
	if !ok {
		return 0, ast.NewError(ast.ErrUnknown, 0, 0, "undefined alias %q", name)
	}
	if a.Kind != ast.AliasNumK {
		return 0, errors.Wrapf(
			ast.NewError(ast.ErrKind, 0, 0, "alias %q is a %s, not a number", name, a.KindName()),
			"TryGetNum")
	}
	return a.Num, nil
}

// Names returns the user-defined alias names (prelude excluded).
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.m))
	for n := range t.m {
		names = append(names, n)
	}
	return names
}
