package x86

// primaryTable dispatches the first non-prefix byte of an instruction
// (spec.md §4.3, the one-byte opcode map). It is populated once in init()
// rather than built lazily, the same static-table discipline register.go
// and categories.go follow. A nil entry means the byte never reaches
// primary dispatch as an opcode (it is a prefix consumed by
// collectPrefixes) or is simply undefined in this decoder's scope; either
// way dispatchPrimary treats nil as ErrInvalidOpcode.
var primaryTable [256]func(*decodeContext) error

func init() {
	aluBases := [8]uint8{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	aluMnemonics := [8]Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}
	for i, base := range aluBases {
		m := aluMnemonics[i]
		primaryTable[base+0] = aluEbGb(m)
		primaryTable[base+1] = aluEvGv(m)
		primaryTable[base+2] = aluGbEb(m)
		primaryTable[base+3] = aluGvEv(m)
		primaryTable[base+4] = aluALIb(m)
		primaryTable[base+5] = aluEaxIz(m)
	}
	// Row 6/7 of the first four ALU blocks are segment push/pop; row 6 of
	// the last four is a segment-override prefix (never reaches here) and
	// row 7 is a single-byte BCD adjust.
	primaryTable[0x06] = pushSegHandler(ES)
	primaryTable[0x07] = popSegHandler(ES)
	primaryTable[0x0E] = pushSegHandler(CS)
	// 0x0F is the two-byte escape, assigned below.
	primaryTable[0x16] = pushSegHandler(SS)
	primaryTable[0x17] = popSegHandler(SS)
	primaryTable[0x1E] = pushSegHandler(DS)
	primaryTable[0x1F] = popSegHandler(DS)
	primaryTable[0x27] = simple(DAA)
	primaryTable[0x2F] = simple(DAS)
	primaryTable[0x37] = simple(AAA)
	primaryTable[0x3F] = simple(AAS)

	primaryTable[0x0F] = dispatchSecondary

	for r := uint8(0); r < 8; r++ {
		reg := r
		primaryTable[0x40+reg] = incRegHandler(reg)
		primaryTable[0x48+reg] = decRegHandler(reg)
		primaryTable[0x50+reg] = pushRegHandler(reg)
		primaryTable[0x58+reg] = popRegHandler(reg)
		primaryTable[0x91+reg] = xchgAccHandler(reg) // 0x90 itself is NOP
	}

	primaryTable[0x60] = simple(PUSHA)
	primaryTable[0x61] = simple(POPA)
	primaryTable[0x62] = handleBound
	primaryTable[0x63] = handleArpl

	primaryTable[0x68] = handlePushIz
	primaryTable[0x69] = handleImulGvEvIz
	primaryTable[0x6A] = handlePushIb
	primaryTable[0x6B] = handleImulGvEvIb
	primaryTable[0x6C] = stringOpHandler(INS)
	primaryTable[0x6D] = stringOpHandler(INS)
	primaryTable[0x6E] = stringOpHandler(OUTS)
	primaryTable[0x6F] = stringOpHandler(OUTS)

	jccMnemonics := [16]Mnemonic{JO, JNO, JB, JNB, JZ, JNZ, JBE, JNBE, JS, JNS, JP, JNP, JL, JNL, JLE, JNLE}
	for i, m := range jccMnemonics {
		primaryTable[0x70+uint8(i)] = jccRel8Handler(m)
	}

	primaryTable[0x80] = group1Byte
	primaryTable[0x81] = group1Full
	primaryTable[0x82] = group1Byte // undocumented alias of 0x80
	primaryTable[0x83] = group1SignExtended

	primaryTable[0x84] = testEbGb
	primaryTable[0x85] = testEvGv
	primaryTable[0x86] = xchgEbGb
	primaryTable[0x87] = xchgEvGv
	primaryTable[0x88] = movEbGb
	primaryTable[0x89] = movEvGv
	primaryTable[0x8A] = movGbEb
	primaryTable[0x8B] = movGvEv
	primaryTable[0x8C] = movEwSw
	primaryTable[0x8D] = handleLea
	primaryTable[0x8E] = movSwEw
	primaryTable[0x8F] = handleGroup1A

	primaryTable[0x90] = simple(NOP)
	primaryTable[0x98] = handleCbwCwde
	primaryTable[0x99] = handleCwdCdq
	primaryTable[0x9A] = handleCallFar
	primaryTable[0x9B] = simple(WAIT)
	primaryTable[0x9C] = simple(PUSHF)
	primaryTable[0x9D] = simple(POPF)
	primaryTable[0x9E] = simple(SAHF)
	primaryTable[0x9F] = simple(LAHF)

	primaryTable[0xA0] = handleMovOffset(true, false)
	primaryTable[0xA1] = handleMovOffset(false, false)
	primaryTable[0xA2] = handleMovOffset(true, true)
	primaryTable[0xA3] = handleMovOffset(false, true)
	primaryTable[0xA4] = stringOpHandler(MOVS)
	primaryTable[0xA5] = stringOpHandler(MOVS)
	primaryTable[0xA6] = stringOpHandler(CMPS)
	primaryTable[0xA7] = stringOpHandler(CMPS)
	primaryTable[0xA8] = handleTestALIb
	primaryTable[0xA9] = handleTestEaxIz
	primaryTable[0xAA] = stringOpHandler(STOS)
	primaryTable[0xAB] = stringOpHandler(STOS)
	primaryTable[0xAC] = stringOpHandler(LODS)
	primaryTable[0xAD] = stringOpHandler(LODS)
	primaryTable[0xAE] = stringOpHandler(SCAS)
	primaryTable[0xAF] = stringOpHandler(SCAS)

	for r := uint8(0); r < 8; r++ {
		reg := r
		primaryTable[0xB0+reg] = movRegIbHandler(reg)
		primaryTable[0xB8+reg] = movRegIvHandler(reg)
	}

	primaryTable[0xC0] = group2ImmHandler(true)
	primaryTable[0xC1] = group2ImmHandler(false)
	primaryTable[0xC2] = handleRetNearIw
	primaryTable[0xC3] = handleRetNear
	primaryTable[0xC4] = farLoadHandler(LES, ES)
	primaryTable[0xC5] = farLoadHandler(LDS, DS)
	primaryTable[0xC6] = group11Handler(true)
	primaryTable[0xC7] = group11Handler(false)
	primaryTable[0xC8] = handleEnter
	primaryTable[0xC9] = simple(LEAVE)
	primaryTable[0xCA] = handleRetFarIw
	primaryTable[0xCB] = handleRetFar
	primaryTable[0xCC] = handleInt3
	primaryTable[0xCD] = handleIntIb
	primaryTable[0xCE] = simple(INTO)
	primaryTable[0xCF] = simple(IRET)

	primaryTable[0xD0] = group2OneHandler(true)
	primaryTable[0xD1] = group2OneHandler(false)
	primaryTable[0xD2] = group2ClHandler(true)
	primaryTable[0xD3] = group2ClHandler(false)
	primaryTable[0xD4] = handleAamAad(AAM)
	primaryTable[0xD5] = handleAamAad(AAD)
	primaryTable[0xD7] = simple(XLAT)

	primaryTable[0xD8] = x87D8
	primaryTable[0xD9] = x87D9
	primaryTable[0xDA] = x87DA
	primaryTable[0xDB] = x87DB
	primaryTable[0xDC] = x87DC
	primaryTable[0xDD] = x87DD
	primaryTable[0xDE] = x87DE
	primaryTable[0xDF] = x87DF

	primaryTable[0xE0] = loopHandler(LOOPNE)
	primaryTable[0xE1] = loopHandler(LOOPE)
	primaryTable[0xE2] = loopHandler(LOOP)
	primaryTable[0xE3] = loopHandler(JCXZ)
	primaryTable[0xE4] = portImmHandler(IN, true)
	primaryTable[0xE5] = portImmHandler(IN, false)
	primaryTable[0xE6] = portImmHandler(OUT, true)
	primaryTable[0xE7] = portImmHandler(OUT, false)
	primaryTable[0xE8] = handleCallNear
	primaryTable[0xE9] = handleJmpNear
	primaryTable[0xEA] = handleJmpFar
	primaryTable[0xEB] = handleJmpShort
	primaryTable[0xEC] = portDxHandler(IN, true)
	primaryTable[0xED] = portDxHandler(IN, false)
	primaryTable[0xEE] = portDxHandler(OUT, true)
	primaryTable[0xEF] = portDxHandler(OUT, false)

	primaryTable[0xF4] = simple(HLT)
	primaryTable[0xF5] = simple(CMC)
	primaryTable[0xF6] = handleGroup3(true)
	primaryTable[0xF7] = handleGroup3(false)
	primaryTable[0xF8] = simple(CLC)
	primaryTable[0xF9] = simple(STC)
	primaryTable[0xFA] = simple(CLI)
	primaryTable[0xFB] = simple(STI)
	primaryTable[0xFC] = simple(CLD)
	primaryTable[0xFD] = simple(STD)
	primaryTable[0xFE] = handleGroup4
	primaryTable[0xFF] = handleGroup5
}

// dispatchPrimary looks up and runs the handler for the first non-prefix
// byte b.
func dispatchPrimary(ctx *decodeContext, b uint8) error {
	h := primaryTable[b]
	if h == nil {
		return ctx.fail(KindInvalidOpcode, "invalid opcode byte 0x%02X", b)
	}
	return h(ctx)
}

// --- ALU block (0x00-0x3D) ---

func aluEbGb(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, width8, rmOptions{})
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, width8)
		ctx.setOpcode(m)
		return addOperands(ctx, rm, reg)
	}
}

func aluEvGv(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, ctx.width())
		ctx.setOpcode(m)
		return addOperands(ctx, rm, reg)
	}
}

func aluGbEb(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, width8)
		rm, err := ctx.rmOperand(mm, width8, rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, reg, rm)
	}
}

func aluGvEv(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, ctx.width())
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, reg, rm)
	}
}

func aluALIb(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, NewRegisterOperand(AL), NewImmediateOperand(uint64(v), Imm8))
	}
}

func aluEaxIz(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readOperandSized()
		if err != nil {
			return err
		}
		acc := accumulator(ctx.width())
		kind := immKindFor(ctx.operandSize)
		ctx.setOpcode(m)
		return addOperands(ctx, NewRegisterOperand(acc), NewImmediateOperand(v, kind))
	}
}

func accumulator(w width) Register {
	return decodeRegister(0, w)
}

func immKindFor(s Size) ImmKind {
	if s == Int32 {
		return Imm32
	}
	return Imm16
}

func addOperands(ctx *decodeContext, ops ...Operand) error {
	for _, op := range ops {
		if err := ctx.addOperand(op); err != nil {
			return err
		}
	}
	return nil
}

func simple(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(m)
		return nil
	}
}

func pushSegHandler(s Segment) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(PUSH)
		return ctx.addOperand(NewSegmentOperand(s))
	}
}

func popSegHandler(s Segment) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(POP)
		return ctx.addOperand(NewSegmentOperand(s))
	}
}

func incRegHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(INC)
		return ctx.addOperand(NewRegisterOperand(decodeRegister(reg, ctx.width())))
	}
}

func decRegHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(DEC)
		return ctx.addOperand(NewRegisterOperand(decodeRegister(reg, ctx.width())))
	}
}

func pushRegHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(PUSH)
		return ctx.addOperand(NewRegisterOperand(decodeRegister(reg, ctx.width())))
	}
}

func popRegHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(POP)
		return ctx.addOperand(NewRegisterOperand(decodeRegister(reg, ctx.width())))
	}
}

func xchgAccHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(XCHG)
		return addOperands(ctx,
			NewRegisterOperand(accumulator(ctx.width())),
			NewRegisterOperand(decodeRegister(reg, ctx.width())))
	}
}

func handleBound(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true})
	if err != nil {
		return err
	}
	ctx.setOpcode(BOUND)
	return addOperands(ctx, reg, rm)
}

func handleArpl(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width16, rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, width16)
	ctx.setOpcode(ARPL)
	return addOperands(ctx, rm, reg)
}

func handlePushIz(ctx *decodeContext) error {
	v, err := ctx.readOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(PUSH)
	return ctx.addOperand(NewImmediateOperand(v, immKindFor(ctx.operandSize)))
}

func handlePushIb(ctx *decodeContext) error {
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(PUSH)
	return ctx.addOperand(NewSignedImmediateOperand(int64(int8(v)), Imm8))
}

func handleImulGvEvIz(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readSignedOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(IMUL)
	return addOperands(ctx, reg, rm, NewSignedImmediateOperand(v, immKindFor(ctx.operandSize)))
}

func handleImulGvEvIb(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(IMUL)
	return addOperands(ctx, reg, rm, NewSignedImmediateOperand(int64(int8(v)), Imm8))
}

func stringOpHandler(m Mnemonic) func(*decodeContext) error {
	return simple(m)
}

func jccRel8Handler(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return ctx.addOperand(NewSignedImmediateOperand(int64(int8(v)), ImmRel8))
	}
}

func testEbGb(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, width8)
	ctx.setOpcode(TEST)
	return addOperands(ctx, rm, reg)
}

func testEvGv(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	ctx.setOpcode(TEST)
	return addOperands(ctx, rm, reg)
}

func xchgEbGb(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, width8)
	ctx.setOpcode(XCHG)
	return addOperands(ctx, rm, reg)
}

func xchgEvGv(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	ctx.setOpcode(XCHG)
	return addOperands(ctx, rm, reg)
}

func movEbGb(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, width8)
	ctx.setOpcode(MOV)
	return addOperands(ctx, rm, reg)
}

func movEvGv(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	ctx.setOpcode(MOV)
	return addOperands(ctx, rm, reg)
}

func movGbEb(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, width8)
	rm, err := ctx.rmOperand(mm, width8, rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(MOV)
	return addOperands(ctx, reg, rm)
}

func movGvEv(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(MOV)
	return addOperands(ctx, reg, rm)
}

func movEwSw(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width16, rmOptions{})
	if err != nil {
		return err
	}
	seg, err := ctx.segmentOperand(mm)
	if err != nil {
		return err
	}
	ctx.setOpcode(MOV)
	return addOperands(ctx, rm, seg)
}

func movSwEw(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	seg, err := ctx.segmentOperand(mm)
	if err != nil {
		return err
	}
	rm, err := ctx.rmOperand(mm, width16, rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(MOV)
	return addOperands(ctx, seg, rm)
}

func handleLea(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true, dontDereference: true})
	if err != nil {
		return err
	}
	ctx.setOpcode(LEA)
	return addOperands(ctx, reg, rm)
}

func handleGroup1A(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Reg != 0 {
		return ctx.fail(KindInvalidOpcode, "invalid group 1A reg field %d", mm.Reg)
	}
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(POP)
	return ctx.addOperand(rm)
}

func handleCbwCwde(ctx *decodeContext) error {
	if ctx.operandSize == Int32 {
		ctx.setOpcode(CWDE)
	} else {
		ctx.setOpcode(CBW)
	}
	return nil
}

func handleCwdCdq(ctx *decodeContext) error {
	if ctx.operandSize == Int32 {
		ctx.setOpcode(CDQ)
	} else {
		ctx.setOpcode(CWD)
	}
	return nil
}

func handleCallFar(ctx *decodeContext) error {
	op, err := ctx.readFarPointer()
	if err != nil {
		return err
	}
	ctx.setOpcode(CALL)
	ctx.near = false
	return ctx.addOperand(op)
}

// handleMovOffset implements the A0-A3 "moffs" forms: a direct,
// non-ModR/M memory operand addressed by a raw address-sized literal.
func handleMovOffset(byteOnly, toMemory bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		var addr uint64
		var err error
		if ctx.addressSize == Int16 {
			var v uint16
			v, err = ctx.readUint16()
			addr = uint64(v)
		} else {
			var v uint32
			v, err = ctx.readUint32()
			addr = uint64(v)
		}
		if err != nil {
			return err
		}
		addrKind := Imm16
		if ctx.addressSize == Int32 {
			addrKind = Imm32
		}
		mem := NewIndirectOperand(NewImmediateOperand(addr, addrKind), ctx.operandSize, ctx.effectiveSegment(false))
		acc := NewRegisterOperand(accumulator(groupWidth(ctx, byteOnly)))
		ctx.setOpcode(MOV)
		if toMemory {
			return addOperands(ctx, mem, acc)
		}
		return addOperands(ctx, acc, mem)
	}
}

func handleTestALIb(ctx *decodeContext) error {
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(TEST)
	return addOperands(ctx, NewRegisterOperand(AL), NewImmediateOperand(uint64(v), Imm8))
}

func handleTestEaxIz(ctx *decodeContext) error {
	v, err := ctx.readOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(TEST)
	return addOperands(ctx, NewRegisterOperand(accumulator(ctx.width())), NewImmediateOperand(v, immKindFor(ctx.operandSize)))
}

func movRegIbHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(MOV)
		return addOperands(ctx, NewRegisterOperand(decodeRegister(reg, width8)), NewImmediateOperand(uint64(v), Imm8))
	}
}

func movRegIvHandler(reg uint8) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readOperandSized()
		if err != nil {
			return err
		}
		ctx.setOpcode(MOV)
		return addOperands(ctx, NewRegisterOperand(decodeRegister(reg, ctx.width())), NewImmediateOperand(v, immKindFor(ctx.operandSize)))
	}
}

func handleRetNear(ctx *decodeContext) error {
	ctx.setOpcode(RET)
	ctx.near = true
	return nil
}

func handleRetNearIw(ctx *decodeContext) error {
	v, err := ctx.readUint16()
	if err != nil {
		return err
	}
	ctx.setOpcode(RET)
	ctx.near = true
	return ctx.addOperand(NewImmediateOperand(uint64(v), Imm16))
}

func handleRetFar(ctx *decodeContext) error {
	ctx.setOpcode(RET)
	ctx.near = false
	return nil
}

func handleRetFarIw(ctx *decodeContext) error {
	v, err := ctx.readUint16()
	if err != nil {
		return err
	}
	ctx.setOpcode(RET)
	ctx.near = false
	return ctx.addOperand(NewImmediateOperand(uint64(v), Imm16))
}

func farLoadHandler(m Mnemonic, _ Segment) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, ctx.width())
		rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true, dontDereference: true})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, reg, rm)
	}
}

func handleEnter(ctx *decodeContext) error {
	size, err := ctx.readUint16()
	if err != nil {
		return err
	}
	level, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(ENTER)
	return addOperands(ctx, NewImmediateOperand(uint64(size), Imm16), NewImmediateOperand(uint64(level), Imm8))
}

func handleInt3(ctx *decodeContext) error {
	ctx.setOpcode(INT)
	return ctx.addOperand(NewImmediateOperand(3, Imm8))
}

func handleIntIb(ctx *decodeContext) error {
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(INT)
	return ctx.addOperand(NewImmediateOperand(uint64(v), Imm8))
}

func handleAamAad(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return ctx.addOperand(NewImmediateOperand(uint64(v), Imm8))
	}
}

func loopHandler(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		ctx.near = true
		return ctx.addOperand(NewSignedImmediateOperand(int64(int8(v)), ImmRel8))
	}
}

func portImmHandler(m Mnemonic, al bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readByte()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		port := NewImmediateOperand(uint64(v), Imm8)
		acc := NewRegisterOperand(accumulatorForPort(ctx, al))
		if m == IN {
			return addOperands(ctx, acc, port)
		}
		return addOperands(ctx, port, acc)
	}
}

func portDxHandler(m Mnemonic, al bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		ctx.setOpcode(m)
		dx := NewRegisterOperand(DX)
		acc := NewRegisterOperand(accumulatorForPort(ctx, al))
		if m == IN {
			return addOperands(ctx, acc, dx)
		}
		return addOperands(ctx, dx, acc)
	}
}

func accumulatorForPort(ctx *decodeContext, al bool) Register {
	if al {
		return AL
	}
	return accumulator(ctx.width())
}

func handleCallNear(ctx *decodeContext) error {
	v, err := ctx.readSignedOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(CALL)
	ctx.near = true
	return ctx.addOperand(NewSignedImmediateOperand(v, relKindFor(ctx.operandSize)))
}

func handleJmpNear(ctx *decodeContext) error {
	v, err := ctx.readSignedOperandSized()
	if err != nil {
		return err
	}
	ctx.setOpcode(JMP)
	ctx.near = true
	return ctx.addOperand(NewSignedImmediateOperand(v, relKindFor(ctx.operandSize)))
}

func handleJmpShort(ctx *decodeContext) error {
	v, err := ctx.readByte()
	if err != nil {
		return err
	}
	ctx.setOpcode(JMP)
	ctx.near = true
	return ctx.addOperand(NewSignedImmediateOperand(int64(int8(v)), ImmRel8))
}

func handleJmpFar(ctx *decodeContext) error {
	op, err := ctx.readFarPointer()
	if err != nil {
		return err
	}
	ctx.setOpcode(JMP)
	ctx.near = false
	return ctx.addOperand(op)
}

func relKindFor(s Size) ImmKind {
	if s == Int32 {
		return ImmRel32
	}
	return ImmRel16
}
