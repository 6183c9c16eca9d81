package x86

// secondaryTable dispatches the byte following a 0x0F escape (spec.md
// §4.4, the two-byte opcode map). Populated once in init(), mirroring
// primaryTable.
var secondaryTable [256]func(*decodeContext) error

func init() {
	secondaryTable[0x00] = handleGroup6
	secondaryTable[0x01] = handleGroup7
	secondaryTable[0x02] = lxGvEwHandler(LAR)
	secondaryTable[0x03] = lxGvEwHandler(LSL)
	secondaryTable[0x06] = simple(CLTS)

	secondaryTable[0x20] = movControlHandler(true, true)
	secondaryTable[0x21] = movControlHandler(false, true)
	secondaryTable[0x22] = movControlHandler(true, false)
	secondaryTable[0x23] = movControlHandler(false, false)

	jccMnemonics := [16]Mnemonic{JO, JNO, JB, JNB, JZ, JNZ, JBE, JNBE, JS, JNS, JP, JNP, JL, JNL, JLE, JNLE}
	for i, m := range jccMnemonics {
		secondaryTable[0x80+uint8(i)] = jccRelvHandler(m)
	}

	setccMnemonics := [16]Mnemonic{SETO, SETNO, SETB, SETNB, SETZ, SETNZ, SETBE, SETNBE, SETS, SETNS, SETP, SETNP, SETL, SETNL, SETLE, SETNLE}
	for i, m := range setccMnemonics {
		secondaryTable[0x90+uint8(i)] = setccHandler(m)
	}

	secondaryTable[0xA0] = pushSegHandler(FS)
	secondaryTable[0xA1] = popSegHandler(FS)
	secondaryTable[0xA3] = bitOpEvGvHandler(BT, false)
	secondaryTable[0xA4] = shiftDoubleHandler(SHLD, true)
	secondaryTable[0xA5] = shiftDoubleHandler(SHLD, false)
	secondaryTable[0xA8] = pushSegHandler(GS)
	secondaryTable[0xA9] = popSegHandler(GS)
	secondaryTable[0xAB] = bitOpEvGvHandler(BTS, true)
	secondaryTable[0xAC] = shiftDoubleHandler(SHRD, true)
	secondaryTable[0xAD] = shiftDoubleHandler(SHRD, false)
	secondaryTable[0xAF] = imulGvEvHandler
	secondaryTable[0xB2] = farLoadHandler(LSS, SS)
	secondaryTable[0xB3] = bitOpEvGvHandler(BTR, true)
	secondaryTable[0xB4] = farLoadHandler(LFS, FS)
	secondaryTable[0xB5] = farLoadHandler(LGS, GS)
	secondaryTable[0xB6] = extendHandler(MOVZX, width8)
	secondaryTable[0xB7] = extendHandler(MOVZX, width16)
	secondaryTable[0xBA] = handleGroup8
	secondaryTable[0xBB] = bitOpEvGvHandler(BTC, true)
	secondaryTable[0xBC] = bsxHandler(BSF)
	secondaryTable[0xBD] = bsxHandler(BSR)
	secondaryTable[0xBE] = extendHandler(MOVSX, width8)
	// 0xBF decodes as MOVSX Gv,Ew, matching real IA-32 encoding - not the
	// BSF duplicate some secondary tables list at this slot.
	secondaryTable[0xBF] = extendHandler(MOVSX, width16)
}

func dispatchSecondary(ctx *decodeContext) error {
	b, err := ctx.readByte()
	if err != nil {
		return err
	}
	h := secondaryTable[b]
	if h == nil {
		return ctx.fail(KindInvalidOpcode, "invalid two-byte opcode 0x0F 0x%02X", b)
	}
	return h(ctx)
}

func lxGvEwHandler(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, ctx.width())
		rm, err := ctx.rmOperand(mm, width16, rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, reg, rm)
	}
}

// movControlHandler implements 0F20-0F23: MOV to/from control or debug
// registers. toReg selects direction (true: Rd<-Cd/Dd), control selects
// the register family.
func movControlHandler(control, toReg bool) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		var special Operand
		var err2 error
		if control {
			special, err2 = ctx.controlRegisterOperand(mm)
		} else {
			special, err2 = ctx.debugRegisterOperand(mm)
		}
		if err2 != nil {
			return err2
		}
		gpr, err := ctx.rmOperand(mm, width32, rmOptions{mustBeRegister: true})
		if err != nil {
			return err
		}
		ctx.setOpcode(MOV)
		if toReg {
			return addOperands(ctx, gpr, special)
		}
		return addOperands(ctx, special, gpr)
	}
}

func jccRelvHandler(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		v, err := ctx.readSignedOperandSized()
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		ctx.near = true
		return ctx.addOperand(NewSignedImmediateOperand(v, relKindFor(ctx.operandSize)))
	}
}

func setccHandler(m Mnemonic) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		rm, err := ctx.rmOperand(mm, width8, rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return ctx.addOperand(rm)
	}
}

// bitOpEvGvHandler implements the BT/BTS/BTR/BTC Ev,Gv forms. The bool
// argument is false for BT and true for BTS/BTR/BTC at the call sites, but
// it is ignored: every form decodes to the same Ev,Gv operand pair.
func bitOpEvGvHandler(m Mnemonic, _ bool) func(*decodeContext) error {
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

func shiftDoubleHandler(m Mnemonic, immediate bool) func(*decodeContext) error {
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
		if immediate {
			v, err := ctx.readByte()
			if err != nil {
				return err
			}
			return addOperands(ctx, rm, reg, NewImmediateOperand(uint64(v), Imm8))
		}
		return addOperands(ctx, rm, reg, NewRegisterOperand(CL))
	}
}

func imulGvEvHandler(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	reg := ctx.regOperand(mm, ctx.width())
	rm, err := ctx.rmOperand(mm, ctx.width(), rmOptions{})
	if err != nil {
		return err
	}
	ctx.setOpcode(IMUL)
	return addOperands(ctx, reg, rm)
}

func extendHandler(m Mnemonic, srcWidth width) func(*decodeContext) error {
	return func(ctx *decodeContext) error {
		mm, err := ctx.readModRM()
		if err != nil {
			return err
		}
		reg := ctx.regOperand(mm, ctx.width())
		rm, err := ctx.rmOperand(mm, srcWidth, rmOptions{})
		if err != nil {
			return err
		}
		ctx.setOpcode(m)
		return addOperands(ctx, reg, rm)
	}
}

func bsxHandler(m Mnemonic) func(*decodeContext) error {
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
