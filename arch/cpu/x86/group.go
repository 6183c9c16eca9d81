package x86

// group1Mnemonics maps the ModR/M reg field of the 80/81/82/83 opcodes to
// an ALU mnemonic (spec.md §4.5 group 1).
var group1Mnemonics = [8]Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}

func group1Byte(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(group1Mnemonics[mm.Reg])
	return addOperands(ctx, rm, NewImmediateOperand(uint64(v), Imm8))
}

func group1Full(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(group1Mnemonics[mm.Reg])
	return addOperands(ctx, rm, NewImmediateOperand(v, immKindFor(ctx.operandSize)))
}

func group1SignExtended(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(group1Mnemonics[mm.Reg])
	return addOperands(ctx, rm, NewSignedImmediateOperand(int64(int8(v)), Imm8))
}

// group2Mnemonics maps the reg field of C0/C1/D0/D1/D2/D3 to a shift/rotate
// mnemonic (spec.md §4.5 group 2). Reg 6 is the undocumented SHL/SAL alias
// and decodes to the same SHL mnemonic as reg 4.
var group2Mnemonics = [8]Mnemonic{ROL, ROR, RCL, RCR, SHL, SHR, SHL, SAR}

func group2ImmHandler(byteOnly bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, groupWidth(ctx, byteOnly), rmOptions{})
		if err != nil {
			return err
		}
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(group2Mnemonics[mm.Reg])
		return addOperands(ctx, rm, NewImmediateOperand(uint64(v), Imm8))
	}
}

func group2OneHandler(byteOnly bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, groupWidth(ctx, byteOnly), rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(group2Mnemonics[mm.Reg])
		return addOperands(ctx, rm, NewImmediateOperand(1, Imm8))
	}
}

func group2ClHandler(byteOnly bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, groupWidth(ctx, byteOnly), rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(group2Mnemonics[mm.Reg])
		return addOperands(ctx, rm, NewRegisterOperand(CL))
	}
}

func groupWidth(ctx *decodeContext, byteOnly bool) width {
	if byteOnly {
		return width8
	}
	return ctx.width()
}

// handleGroup3 implements F6/F7 (spec.md §4.5 group 3): reg 0 means TEST
// and additionally carries an immediate, unlike the unary reg 2-7 forms;
// reg 1 has no assigned mnemonic and is rejected.
func handleGroup3(byteOnly bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		w := groupWidth(ctx, byteOnly)
		rm, err := ctx.rmOperand(mm, w, rmOptions{})
		if err != nil {
			return err
		}

		switch mm.Reg {
		case 0:
			if byteOnly {
				v, err := ctx.readByte()
				if err != nil {
					return err
				}
				ctx.setOpcode(TEST)
				return addOperands(ctx, rm, NewImmediateOperand(uint64(v), Imm8))
			}
			v, err := ctx.readOperandSized()
			if err != nil {
				return err
			}
			ctx.setOpcode(TEST)
			return addOperands(ctx, rm, NewImmediateOperand(v, immKindFor(ctx.operandSize)))
		case 1:
			return ctx.fail(KindInvalidOpcode, "invalid group 3 reg field %d", mm.Reg)
		case 2:
			ctx.setOpcode(NOT)
		case 3:
			ctx.setOpcode(NEG)
		case 4:
			ctx.setOpcode(MUL)
		case 5:
			ctx.setOpcode(IMUL)
		case 6:
			ctx.setOpcode(DIV)
		case 7:
			ctx.setOpcode(IDIV)
		}
		return ctx.addOperand(rm)
	}
}

// handleGroup4 implements FE (spec.md §4.5 group 4): byte INC/DEC only.
func handleGroup4(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	switch mm.Reg {
	case 0:
		ctx.setOpcode(INC)
	case 1:
		ctx.setOpcode(DEC)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid group 4 reg field %d", mm.Reg)
	}
	return ctx.addOperand(rm)
}

// handleGroup5 implements FF (spec.md §4.5 group 5): INC/DEC/CALL/JMP
// (near and far indirect)/PUSH, all on an Ev operand.
func handleGroup5(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}

	switch mm.Reg {
	case 0, 1, 6:
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
		if err != nil {
			return err
		}
		if mm.Reg == 0 {
			ctx.setOpcode(INC)
		} else if mm.Reg == 1 {
			ctx.setOpcode(DEC)
		} else {
			ctx.setOpcode(PUSH)
		}
		return ctx.addOperand(rm)
	case 2:
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(CALL)
		ctx.near = true
		return ctx.addOperand(rm)
	case 3:
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true, dontDereference: true})
		if err != nil {
			return err
		}
		ctx.setOpcode(CALL)
		ctx.near = false
		return ctx.addOperand(rm)
	case 4:
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(JMP)
		ctx.near = true
		return ctx.addOperand(rm)
	case 5:
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true, dontDereference: true})
		if err != nil {
			return err
		}
		ctx.setOpcode(JMP)
		ctx.near = false
		return ctx.addOperand(rm)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid group 5 reg field %d", mm.Reg)
	}
}

// group11Handler implements C6/C7 (spec.md §4.5 group 1A's MOV-immediate
// sibling, often numbered group 11): the only legal reg field is 0, MOV
// Eb/Ev,Ib/Iz.
func group11Handler(byteOnly bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		if mm.Reg != 0 {
			return ctx.fail(KindInvalidOpcode, "invalid group 11 reg field %d", mm.Reg)
		}
		w := groupWidth(ctx, byteOnly)
		rm, err := ctx.rmOperand(mm, w, rmOptions{})
		if err != nil {
			return err
		}
		if byteOnly {
			v, err := ctx.readByte()
			if err != nil {
				return err
			}
			ctx.setOpcode(MOV)
			return addOperands(ctx, rm, NewImmediateOperand(uint64(v), Imm8))
		}
		v, err := ctx.readOperandSized()
		if err != nil {
			return err
		}
		ctx.setOpcode(MOV)
		return addOperands(ctx, rm, NewImmediateOperand(v, immKindFor(ctx.operandSize)))
	}
}

// group6Mnemonics maps the 0F 00 reg field. This decoder's group 6 only
// recognizes four of the six real-Intel slots (SLDT, LTR, VERR, VERW) and
// keeps their real reg indices (3, 4, 5) rather than compacting them; reg
// 1 (STR) and reg 2 (LLDT) are out of scope and rejected.
var group6Mnemonics = [8]Mnemonic{SLDT, Invalid, Invalid, LTR, VERR, VERW, Invalid, Invalid}

func handleGroup6(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	m := group6Mnemonics[mm.Reg]
	if m == Invalid {
		return ctx.fail(KindInvalidOpcode, "invalid group 6 reg field %d", mm.Reg)
	}
	rm, err := ctx.rmOperand(mm, width16, rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(m)
	return ctx.addOperand(rm)
}

// group7Mnemonics maps the 0F 01 reg field. Reg 5 has no assigned
// mnemonic in real Intel encoding and reg 7 (INVLPG) is out of this
// decoder's scope, so both are rejected.
var group7Mnemonics = [8]Mnemonic{SGDT, SIDT, LGDT, LIDT, SMSW, Invalid, LMSW, Invalid}

func handleGroup7(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	m := group7Mnemonics[mm.Reg]
	if m == Invalid {
		return ctx.fail(KindInvalidOpcode, "invalid group 7 reg field %d", mm.Reg)
	}
	// SGDT/SIDT/LGDT/LIDT are Ms (memory-only, address reported rather
	// than dereferenced, tagged with the pseudo-descriptor's encoded
	// width); SMSW/LMSW accept either a register or memory.
	memoryOnly := mm.Reg <= 3
	rm, err := ctx.rmOperand(mm, width16, rmOptions{dontDereference: memoryOnly, mustBeMemory: memoryOnly})
	if err != nil {
		return err
	}
	if memoryOnly {
		descriptorKind := ImmPseudoDescriptor6
		if ctx.operandSize == Int32 {
			descriptorKind = ImmPseudoDescriptor10
		}
		rm = rm.WithAccessKind(descriptorKind)
	}
	ctx.setOpcode(m)
	return ctx.addOperand(rm)
}

// group8Mnemonics maps the 0F BA reg field (spec.md §4.5 group 8). Reg
// 0-3 have no assigned bit-test mnemonic and are rejected.
var group8Mnemonics = [8]Mnemonic{Invalid, Invalid, Invalid, Invalid, BT, BTS, BTR, BTC}

func handleGroup8(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	m := group8Mnemonics[mm.Reg]
	if m == Invalid {
		return ctx.fail(KindInvalidOpcode, "invalid group 8 reg field %d", mm.Reg)
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(m)
	return addOperands(ctx, rm, NewImmediateOperand(uint64(v), Imm8))
}
