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

// Opcode enumerates every IC10 instruction this compiler knows about,
// plus the two pseudo-opcodes Tag and Empty. Arity and argument kinds
// for each live in internal/isa's dictionary, not here — this file
// only names the instruction space.
type Opcode int

const (
	OpInvalid Opcode = iota

	// Device I/O
	OpL
	OpS
	OpLs
	OpLr
	OpLb
	OpSb
	OpLd
	OpSd

	// Branches (absolute)
	OpJ
	OpJr
	OpJal
	OpBeq
	OpBne
	OpBlt
	OpBle
	OpBgt
	OpBge
	OpBeqz
	OpBnez
	OpBltz
	OpBlez
	OpBgtz
	OpBgez
	OpBdns
	OpBdse
	OpBap
	OpBna
	OpBapz
	OpBnaz

	// Branches (relative)
	OpBreq
	OpBrne
	OpBrlt
	OpBrle
	OpBrgt
	OpBrge
	OpBreqz
	OpBrnez
	OpBrltz
	OpBrlez
	OpBrgtz
	OpBrgez
	OpBrdns
	OpBrdse
	OpBrap
	OpBrna
	OpBrapz
	OpBrnaz

	// Select
	OpSelect

	// Math
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAbs
	OpCeil
	OpFloor
	OpRound
	OpTrunc
	OpExp
	OpLog
	OpSqrt
	OpMin
	OpMax
	OpRand

	// Logic / relational
	OpAnd
	OpOr
	OpXor
	OpNor
	OpNot
	OpSeq
	OpSge
	OpSgt
	OpSle
	OpSlt
	OpSne
	OpSeqz
	OpSgez
	OpSgtz
	OpSlez
	OpSltz
	OpSnez
	OpSap
	OpSna
	OpSapz
	OpSnaz
	OpSdns
	OpSdse

	// Stack
	OpPush
	OpPop
	OpPeek

	// Misc
	OpYield
	OpSleep
	OpHcf
	OpMove
	OpAlias
	OpDefine
	OpLabel

	// Pseudo-opcodes
	OpTag
	OpEmpty
)

var opcodeNames = map[Opcode]string{
	OpL: "l", OpS: "s", OpLs: "ls", OpLr: "lr", OpLb: "lb", OpSb: "sb", OpLd: "ld", OpSd: "sd",
	OpJ: "j", OpJr: "jr", OpJal: "jal",
	OpBeq: "beq", OpBne: "bne", OpBlt: "blt", OpBle: "ble", OpBgt: "bgt", OpBge: "bge",
	OpBeqz: "beqz", OpBnez: "bnez", OpBltz: "bltz", OpBlez: "blez", OpBgtz: "bgtz", OpBgez: "bgez",
	OpBdns: "bdns", OpBdse: "bdse", OpBap: "bap", OpBna: "bna", OpBapz: "bapz", OpBnaz: "bnaz",
	OpBreq: "breq", OpBrne: "brne", OpBrlt: "brlt", OpBrle: "brle", OpBrgt: "brgt", OpBrge: "brge",
	OpBreqz: "breqz", OpBrnez: "brnez", OpBrltz: "brltz", OpBrlez: "brlez", OpBrgtz: "brgtz", OpBrgez: "brgez",
	OpBrdns: "brdns", OpBrdse: "brdse", OpBrap: "brap", OpBrna: "brna", OpBrapz: "brapz", OpBrnaz: "brnaz",
	OpSelect: "select",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpAbs: "abs", OpCeil: "ceil", OpFloor: "floor", OpRound: "round", OpTrunc: "trunc",
	OpExp: "exp", OpLog: "log", OpSqrt: "sqrt", OpMin: "min", OpMax: "max", OpRand: "rand",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNor: "nor", OpNot: "not",
	OpSeq: "seq", OpSge: "sge", OpSgt: "sgt", OpSle: "sle", OpSlt: "slt", OpSne: "sne",
	OpSeqz: "seqz", OpSgez: "sgez", OpSgtz: "sgtz", OpSlez: "slez", OpSltz: "sltz", OpSnez: "snez",
	OpSap: "sap", OpSna: "sna", OpSapz: "sapz", OpSnaz: "snaz", OpSdns: "sdns", OpSdse: "sdse",
	OpPush: "push", OpPop: "pop", OpPeek: "peek",
	OpYield: "yield", OpSleep: "sleep", OpHcf: "hcf", OpMove: "move",
	OpAlias: "alias", OpDefine: "define", OpLabel: "label",
	OpTag: "tag", OpEmpty: "",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "<invalid>"
}

// OpcodeByName reverses opcodeNames; used by internal/grammar when
// turning a CST token into an Opcode.
func OpcodeByName(name string) (Opcode, bool) {
	for op, n := range opcodeNames {
		if n == name && op != OpEmpty {
			return op, true
		}
	}
	return OpInvalid, false
}

// relBranchOpposite maps each "s…" comparator to the branch instruction
// testing the opposite sense ("seq → brne", "sge → brlt", ...).
var relBranchOpposite = map[Opcode]Opcode{
	OpSeq: OpBrne, OpSge: OpBrlt, OpSgt: OpBrle, OpSle: OpBrgt, OpSlt: OpBrge, OpSne: OpBreq,
	OpSeqz: OpBrnez, OpSgez: OpBrltz, OpSgtz: OpBrlez, OpSlez: OpBrgtz, OpSltz: OpBrgez, OpSnez: OpBreqz,
	OpSap: OpBrna, OpSna: OpBrap, OpSapz: OpBrnaz, OpSnaz: OpBrapz, OpSdns: OpBrdse, OpSdse: OpBrdns,
}

// OppositeBranch reports the relative-branch opcode testing the
// opposite sense of a comparator opcode, and whether one exists.
func OppositeBranch(comparator Opcode) (Opcode, bool) {
	op, ok := relBranchOpposite[comparator]
	return op, ok
}

// IsComparator reports whether op is one of the "s…" comparator family
// eligible for condition folding.
func IsComparator(op Opcode) bool {
	_, ok := relBranchOpposite[op]
	return ok
}
