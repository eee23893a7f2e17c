package core

// BuildDefaultInstructionSet returns the RV64IM-shaped instruction model
// set this estimator ships by default. It is the default, not the only
// legal set: a caller may build and pass its own *Set to New if its trace
// uses a different typeId scheme.
func BuildDefaultInstructionSet() *Set {
	s := NewSet()

	rs1rs2 := arithRS1RS2()
	add := func(typeID int32, name string, fn func() TimeFunc) {
		s.Add(typeID, name, fn())
	}
	// register-register ALU ops: both operands gate dispatch.
	for typeID, name := range map[int32]string{
		0: "add", 1: "sub", 2: "xor", 3: "or", 4: "and",
		5: "slt", 6: "sltu", 7: "sll", 8: "srl", 9: "sra",
		56: "subw", 57: "addw",
	} {
		s.Add(typeID, name, rs1rs2)
	}

	// register-immediate ALU ops and CSR read-modify-write forms: only
	// rs1 gates dispatch.
	rs1 := arithRS1()
	for typeID, name := range map[int32]string{
		10: "addi", 11: "xori", 12: "ori", 13: "andi",
		14: "slti", 15: "sltiu", 16: "slli", 17: "srli", 18: "srai",
		29: "csrrw", 30: "csrrs", 31: "csrrc",
		55: "addiw", 58: "slliw", 59: "sraiw", 65: "srliw",
	} {
		s.Add(typeID, name, rs1)
	}

	// ops with no register source at all: immediate-only ALU forms and
	// CSR immediate variants.
	noSrc := arith0()
	for typeID, name := range map[int32]string{
		19: "auipc", 20: "lui",
		32: "csrrwi", 33: "csrrsi", 34: "csrrci",
	} {
		s.Add(typeID, name, noSrc)
	}

	mul := mulTimeFunc()
	for typeID, name := range map[int32]string{
		21: "mul", 22: "mulh", 23: "mulhu", 24: "mulhsu", 61: "mulw",
	} {
		s.Add(typeID, name, mul)
	}

	div := divTimeFunc()
	for typeID, name := range map[int32]string{
		25: "div", 27: "rem", 60: "divw", 63: "remw",
	} {
		s.Add(typeID, name, div)
	}

	divu := divUTimeFunc()
	for typeID, name := range map[int32]string{
		26: "divu", 28: "remu", 62: "divuw", 64: "remuw",
	} {
		s.Add(typeID, name, divu)
	}

	store := storeTimeFunc()
	for typeID, name := range map[int32]string{
		35: "sb", 36: "sh", 37: "sw", 54: "sd",
	} {
		s.Add(typeID, name, store)
	}

	load := loadTimeFunc()
	for typeID, name := range map[int32]string{
		38: "lw", 39: "lh", 40: "lhu", 41: "lb", 42: "lbu", 52: "ld", 53: "lwu",
	} {
		s.Add(typeID, name, load)
	}

	branch := branchTimeFunc()
	for typeID, name := range map[int32]string{
		43: "beq", 44: "bne", 45: "blt", 46: "bge", 47: "bltu", 48: "bgeu",
	} {
		s.Add(typeID, name, branch)
	}

	add(49, "_def", defTimeFunc)
	add(50, "jal", jumpTimeFunc)
	add(51, "jalr", jumpRTimeFunc)

	return s
}

// DefTypeID is the typeId UnknownInstruction callers conventionally fall
// back to: a generic ALU-shaped time function with no operand
// dependencies and no register or clobber publish, registered under the
// "_def" mnemonic.
const DefTypeID int32 = 49
