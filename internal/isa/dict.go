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

// Package isa is the statement dictionary: a compile-time table
// associating each opcode with its arity, positional argument kinds,
// and a human-readable signature for error messages.
package isa

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"myps/internal/ast"
)

// Entry describes one opcode's shape.
type Entry struct {
	Name string
	Args []ast.ArgKind
}

func (e Entry) Arity() int { return len(e.Args) }

func (e Entry) Signature() string {
	parts := make([]string, len(e.Args))
	for i, k := range e.Args {
		parts[i] = k.String()
	}
	return e.Name + " " + strings.Join(parts, " ")
}

// Dict is the authoritative opcode table. Any add/remove is an ABI
// change: it changes what programs parse and how they print.
var Dict = buildDict()

func e(op ast.Opcode, kinds ...ast.ArgKind) Entry {
	return Entry{Name: op.String(), Args: kinds}
}

func buildDict() map[ast.Opcode]Entry {
	reg, dev, num, line, rel, str := ast.KReg, ast.KDev, ast.KNum, ast.KLineAbs, ast.KLineRel, ast.KStr
	d := map[ast.Opcode]Entry{
		// Device I/O
		ast.OpL:  e(ast.OpL, reg, dev, str),
		ast.OpS:  e(ast.OpS, dev, str, num),
		ast.OpLs: e(ast.OpLs, reg, dev, num, str),
		ast.OpLr: e(ast.OpLr, reg, dev, num, str),
		ast.OpLb: e(ast.OpLb, reg, num, str, num),
		ast.OpSb: e(ast.OpSb, num, str, num),
		ast.OpLd: e(ast.OpLd, reg, num),
		ast.OpSd: e(ast.OpSd, num, num),

		// Absolute branches
		ast.OpJ:    e(ast.OpJ, line),
		ast.OpJr:   e(ast.OpJr, rel),
		ast.OpJal:  e(ast.OpJal, line),
		ast.OpBeq:  e(ast.OpBeq, num, num, line),
		ast.OpBne:  e(ast.OpBne, num, num, line),
		ast.OpBlt:  e(ast.OpBlt, num, num, line),
		ast.OpBle:  e(ast.OpBle, num, num, line),
		ast.OpBgt:  e(ast.OpBgt, num, num, line),
		ast.OpBge:  e(ast.OpBge, num, num, line),
		ast.OpBeqz: e(ast.OpBeqz, num, line),
		ast.OpBnez: e(ast.OpBnez, num, line),
		ast.OpBltz: e(ast.OpBltz, num, line),
		ast.OpBlez: e(ast.OpBlez, num, line),
		ast.OpBgtz: e(ast.OpBgtz, num, line),
		ast.OpBgez: e(ast.OpBgez, num, line),
		ast.OpBdns: e(ast.OpBdns, dev, line),
		ast.OpBdse: e(ast.OpBdse, dev, line),
		ast.OpBap:  e(ast.OpBap, num, num, num, line),
		ast.OpBna:  e(ast.OpBna, num, num, num, line),
		ast.OpBapz: e(ast.OpBapz, num, num, line),
		ast.OpBnaz: e(ast.OpBnaz, num, num, line),

		// Relative branches
		ast.OpBreq:  e(ast.OpBreq, num, num, rel),
		ast.OpBrne:  e(ast.OpBrne, num, num, rel),
		ast.OpBrlt:  e(ast.OpBrlt, num, num, rel),
		ast.OpBrle:  e(ast.OpBrle, num, num, rel),
		ast.OpBrgt:  e(ast.OpBrgt, num, num, rel),
		ast.OpBrge:  e(ast.OpBrge, num, num, rel),
		ast.OpBreqz: e(ast.OpBreqz, num, rel),
		ast.OpBrnez: e(ast.OpBrnez, num, rel),
		ast.OpBrltz: e(ast.OpBrltz, num, rel),
		ast.OpBrlez: e(ast.OpBrlez, num, rel),
		ast.OpBrgtz: e(ast.OpBrgtz, num, rel),
		ast.OpBrgez: e(ast.OpBrgez, num, rel),
		ast.OpBrdns: e(ast.OpBrdns, dev, rel),
		ast.OpBrdse: e(ast.OpBrdse, dev, rel),
		ast.OpBrap:  e(ast.OpBrap, num, num, num, rel),
		ast.OpBrna:  e(ast.OpBrna, num, num, num, rel),
		ast.OpBrapz: e(ast.OpBrapz, num, num, rel),
		ast.OpBrnaz: e(ast.OpBrnaz, num, num, rel),

		// Select
		ast.OpSelect: e(ast.OpSelect, reg, num, num, num),

		// Math
		ast.OpAdd:   e(ast.OpAdd, reg, num, num),
		ast.OpSub:   e(ast.OpSub, reg, num, num),
		ast.OpMul:   e(ast.OpMul, reg, num, num),
		ast.OpDiv:   e(ast.OpDiv, reg, num, num),
		ast.OpMod:   e(ast.OpMod, reg, num, num),
		ast.OpAbs:   e(ast.OpAbs, reg, num),
		ast.OpCeil:  e(ast.OpCeil, reg, num),
		ast.OpFloor: e(ast.OpFloor, reg, num),
		ast.OpRound: e(ast.OpRound, reg, num),
		ast.OpTrunc: e(ast.OpTrunc, reg, num),
		ast.OpExp:   e(ast.OpExp, reg, num),
		ast.OpLog:   e(ast.OpLog, reg, num),
		ast.OpSqrt:  e(ast.OpSqrt, reg, num),
		ast.OpMin:   e(ast.OpMin, reg, num, num),
		ast.OpMax:   e(ast.OpMax, reg, num, num),
		ast.OpRand:  e(ast.OpRand, reg),

		// Logic / relational
		ast.OpAnd:  e(ast.OpAnd, reg, num, num),
		ast.OpOr:   e(ast.OpOr, reg, num, num),
		ast.OpXor:  e(ast.OpXor, reg, num, num),
		ast.OpNor:  e(ast.OpNor, reg, num, num),
		ast.OpNot:  e(ast.OpNot, reg, num),
		ast.OpSeq:  e(ast.OpSeq, reg, num, num),
		ast.OpSge:  e(ast.OpSge, reg, num, num),
		ast.OpSgt:  e(ast.OpSgt, reg, num, num),
		ast.OpSle:  e(ast.OpSle, reg, num, num),
		ast.OpSlt:  e(ast.OpSlt, reg, num, num),
		ast.OpSne:  e(ast.OpSne, reg, num, num),
		ast.OpSeqz: e(ast.OpSeqz, reg, num),
		ast.OpSgez: e(ast.OpSgez, reg, num),
		ast.OpSgtz: e(ast.OpSgtz, reg, num),
		ast.OpSlez: e(ast.OpSlez, reg, num),
		ast.OpSltz: e(ast.OpSltz, reg, num),
		ast.OpSnez: e(ast.OpSnez, reg, num),
		ast.OpSap:  e(ast.OpSap, reg, num, num, num),
		ast.OpSna:  e(ast.OpSna, reg, num, num, num),
		ast.OpSapz: e(ast.OpSapz, reg, num, num),
		ast.OpSnaz: e(ast.OpSnaz, reg, num, num),
		ast.OpSdns: e(ast.OpSdns, reg, dev),
		ast.OpSdse: e(ast.OpSdse, reg, dev),

		// Stack
		ast.OpPush: e(ast.OpPush, num),
		ast.OpPop:  e(ast.OpPop, reg),
		ast.OpPeek: e(ast.OpPeek, reg),

		// Misc
		ast.OpYield:  e(ast.OpYield),
		ast.OpSleep:  e(ast.OpSleep, num),
		ast.OpHcf:    e(ast.OpHcf),
		ast.OpMove:   e(ast.OpMove, reg, num),
		ast.OpAlias:  e(ast.OpAlias, str, ast.KDevOrReg),
		ast.OpDefine: e(ast.OpDefine, str, num),
		ast.OpLabel:  e(ast.OpLabel, str, num),
	}
	return d
}

// Lookup returns the dictionary entry for op, or an Unknown error if
// op isn't a real opcode (Tag/Empty are pseudo-opcodes with no entry).
func Lookup(op ast.Opcode) (Entry, error) {
	entry, ok := Dict[op]
	if !ok {
		return Entry{}, errors.Wrapf(ast.NewError(ast.ErrUnknown, 0, 0, "unknown opcode %q", op.String()), "statement dictionary lookup")
	}
	return entry, nil
}

// Check validates a Stmt's arity and argument kinds against the
// dictionary, producing structured Arity/Kind errors.
func Check(line int, s ast.Stmt) error {
	if s.IsTag() || s.IsEmpty() {
		return nil
	}
	entry, err := Lookup(s.Op)
	if err != nil {
		return errors.WithMessage(err, fmt.Sprintf("line %d", line))
	}
	if len(s.Args) != entry.Arity() {
		return ast.NewError(ast.ErrArity, line, 0,
			"%s expects %d operands (%s), got %d", entry.Name, entry.Arity(), entry.Signature(), len(s.Args))
	}
	for i, want := range entry.Args {
		if !kindMatches(want, s.Args[i].Kind) {
			return ast.NewError(ast.ErrKind, line, 0,
				"%s operand %d: expected %s, got %s", entry.Name, i+1, want, s.Args[i].Kind)
		}
	}
	return nil
}

// kindMatches allows KDevOrReg to accept either a device or register
// argument (used by `alias name, <dev-or-reg>`), and allows a KNum
// slot to additionally accept a register argument, since Num already
// folds RegBase in as one of its variants at the AST level — but a
// bare Arg{Kind: KReg} can appear where KNum is expected when built
// directly by the lowering translator before being wrapped as Num.
func kindMatches(want, got ast.ArgKind) bool {
	if want == got {
		return true
	}
	if want == ast.KDevOrReg {
		return got == ast.KDev || got == ast.KReg
	}
	if want == ast.KNum && got == ast.KReg {
		return true
	}
	return false
}
