package x86

// x87.go implements the eight D8-DF floating-point escape maps (spec.md
// §4.6). Each map branches on ModR/M.Mod: mod==3 addresses the FPU
// register stack directly and is dispatched by the full (reg,rm) pair
// since several maps assign unrelated operations to what would otherwise
// look like a uniform reg-selects-op table; mod!=3 addresses a typed
// memory operand and is dispatched by reg alone.

func st(i uint8) Operand { return NewFloatingPointStackOperand(i) }

// memOperand reads the r/m operand for mod!=3 cases and tags it with the
// x87 access format kind so an external renderer can tell a single-real
// load from a packed-BCD one even though both arrive as an
// OperandIndirect (the tag is carried in Operand.IndirectKind).
func (ctx *decodeContext) memOperand(mm modRM, kind ImmKind) (Operand, error) {
	op, err := ctx.rmOperand(mm, ctx.width(), rmOptions{mustBeMemory: true})
	if err != nil {
		return Operand{}, err
	}
	return op.WithAccessKind(kind), nil
}

// aluMnemonics8 is the D8/DC/DE arithmetic reg-field table.
var aluMnemonics8 = [8]Mnemonic{FADD, FMUL, FCOM, FCOMP, FSUB, FSUBR, FDIV, FDIVR}

// reversedAluMnemonics8 is DC/DE's register-form table: FSUB/FSUBR and
// FDIV/FDIVR swap meaning relative to aluMnemonics8 when ST(i) is the
// destination, a long-standing quirk of the real x87 encoding.
var reversedAluMnemonics8 = [8]Mnemonic{FADD, FMUL, FCOM, FCOMP, FSUBR, FSUB, FDIVR, FDIV}

func x87D8(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	m := aluMnemonics8[mm.Reg]
	if mm.Mod == 3 {
		ctx.setOpcode(m)
		return addOperands(ctx, st(0), st(mm.RM))
	}
	mem, err := ctx.memOperand(mm, ImmSingle)
	if err != nil {
		return err
	}
	ctx.setOpcode(m)
	return addOperands(ctx, st(0), mem)
}

func x87D9(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		return x87D9Register(ctx, mm)
	}

	switch mm.Reg {
	case 0:
		mem, err := ctx.memOperand(mm, ImmSingle)
		if err != nil {
			return err
		}
		ctx.setOpcode(FLD)
		return ctx.addOperand(mem)
	case 2:
		mem, err := ctx.memOperand(mm, ImmSingle)
		if err != nil {
			return err
		}
		ctx.setOpcode(FST)
		return ctx.addOperand(mem)
	case 3:
		mem, err := ctx.memOperand(mm, ImmSingle)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTP)
		return ctx.addOperand(mem)
	case 4:
		kind := ImmFloatingEnvironment14
		if ctx.operandSize == Int32 {
			kind = ImmFloatingEnvironment28
		}
		mem, err := ctx.memOperand(mm, kind)
		if err != nil {
			return err
		}
		ctx.setOpcode(FLDENV)
		return ctx.addOperand(mem)
	case 5:
		mem, err := ctx.memOperand(mm, ImmByteByte)
		if err != nil {
			return err
		}
		ctx.setOpcode(FLDCW)
		return ctx.addOperand(mem)
	case 6:
		kind := ImmFloatingEnvironment14
		if ctx.operandSize == Int32 {
			kind = ImmFloatingEnvironment28
		}
		mem, err := ctx.memOperand(mm, kind)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTENV)
		return ctx.addOperand(mem)
	case 7:
		mem, err := ctx.memOperand(mm, ImmByteByte)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTCW)
		return ctx.addOperand(mem)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid d9 memory reg field %d", mm.Reg)
	}
}

func x87D9Register(ctx *decodeContext, mm modRM) error {
	switch mm.Reg {
	case 0:
		ctx.setOpcode(FLD)
		return ctx.addOperand(st(mm.RM))
	case 1:
		ctx.setOpcode(FXCH)
		return ctx.addOperand(st(mm.RM))
	case 2:
		if mm.RM == 0 {
			ctx.setOpcode(FNOP)
			return nil
		}
	case 4:
		switch mm.RM {
		case 0:
			ctx.setOpcode(FCHS)
			return nil
		case 1:
			ctx.setOpcode(FABS)
			return nil
		case 4:
			ctx.setOpcode(FTST)
			return nil
		case 5:
			ctx.setOpcode(FXAM)
			return nil
		}
	case 5:
		constants := [8]Mnemonic{FLD1, FLDL2T, FLDL2E, FLDPI, FLDLG2, FLDLN2, FLDZ, Invalid}
		m := constants[mm.RM]
		if m != Invalid {
			ctx.setOpcode(m)
			return nil
		}
	case 6:
		ops := [8]Mnemonic{F2XM1, FYL2X, FPTAN, FPATAN, FXTRACT, FPREM1, FDECSTP, FINCSTP}
		ctx.setOpcode(ops[mm.RM])
		return nil
	case 7:
		ops := [8]Mnemonic{FPREM, Invalid, FSQRT, FSINCOS, FRNDINT, FSCALE, FSIN, FCOS}
		m := ops[mm.RM]
		if m != Invalid {
			ctx.setOpcode(m)
			return nil
		}
	}
	return ctx.fail(KindInvalidOpcode, "invalid d9 register form (reg=%d rm=%d)", mm.Reg, mm.RM)
}

var fcmovMnemonics = [4]Mnemonic{FCMOVB, FCMOVE, FCMOVBE, FCMOVU}

func x87DA(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		if mm.Reg < 4 {
			ctx.setOpcode(fcmovMnemonics[mm.Reg])
			return addOperands(ctx, st(0), st(mm.RM))
		}
		if mm.Reg == 5 && mm.RM == 1 {
			ctx.setOpcode(FUCOMPP)
			return nil
		}
		return ctx.fail(KindInvalidOpcode, "invalid da register form (reg=%d rm=%d)", mm.Reg, mm.RM)
	}

	intMnemonics := [8]Mnemonic{FIADD, FIMUL, FICOM, FICOMP, FISUB, FISUBR, FIDIV, FIDIVR}
	mem, err := ctx.memOperand(mm, ImmInt32)
	if err != nil {
		return err
	}
	ctx.setOpcode(intMnemonics[mm.Reg])
	return addOperands(ctx, st(0), mem)
}

var fcmovnMnemonics = [4]Mnemonic{FCMOVNB, FCMOVNE, FCMOVNBE, FCMOVNU}

func x87DB(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		switch {
		case mm.Reg < 4:
			ctx.setOpcode(fcmovnMnemonics[mm.Reg])
			return addOperands(ctx, st(0), st(mm.RM))
		case mm.Reg == 4 && mm.RM == 2:
			ctx.setOpcode(FCLEX)
			return nil
		case mm.Reg == 4 && mm.RM == 3:
			ctx.setOpcode(FINIT)
			return nil
		case mm.Reg == 5:
			ctx.setOpcode(FUCOMI)
			return addOperands(ctx, st(0), st(mm.RM))
		case mm.Reg == 6:
			ctx.setOpcode(FCOMI)
			return addOperands(ctx, st(0), st(mm.RM))
		}
		return ctx.fail(KindInvalidOpcode, "invalid db register form (reg=%d rm=%d)", mm.Reg, mm.RM)
	}

	switch mm.Reg {
	case 0:
		mem, err := ctx.memOperand(mm, ImmInt32)
		if err != nil {
			return err
		}
		ctx.setOpcode(FILD)
		return ctx.addOperand(mem)
	case 1:
		mem, err := ctx.memOperand(mm, ImmInt32)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTTP)
		return ctx.addOperand(mem)
	case 2:
		mem, err := ctx.memOperand(mm, ImmInt32)
		if err != nil {
			return err
		}
		ctx.setOpcode(FIST)
		return ctx.addOperand(mem)
	case 3:
		mem, err := ctx.memOperand(mm, ImmInt32)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTP)
		return ctx.addOperand(mem)
	case 5:
		mem, err := ctx.memOperand(mm, ImmExtendedReal)
		if err != nil {
			return err
		}
		ctx.setOpcode(FLD)
		return ctx.addOperand(mem)
	case 7:
		mem, err := ctx.memOperand(mm, ImmExtendedReal)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTP)
		return ctx.addOperand(mem)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid db memory reg field %d", mm.Reg)
	}
}

func x87DC(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		ctx.setOpcode(reversedAluMnemonics8[mm.Reg])
		return addOperands(ctx, st(mm.RM), st(0))
	}
	mem, err := ctx.memOperand(mm, ImmDouble)
	if err != nil {
		return err
	}
	ctx.setOpcode(aluMnemonics8[mm.Reg])
	return addOperands(ctx, st(0), mem)
}

func x87DD(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		switch mm.Reg {
		case 0:
			ctx.setOpcode(FFREE)
			return ctx.addOperand(st(mm.RM))
		case 2:
			ctx.setOpcode(FST)
			return ctx.addOperand(st(mm.RM))
		case 3:
			ctx.setOpcode(FSTP)
			return ctx.addOperand(st(mm.RM))
		case 4:
			ctx.setOpcode(FUCOM)
			return addOperands(ctx, st(mm.RM), st(0))
		case 5:
			ctx.setOpcode(FUCOMP)
			return ctx.addOperand(st(mm.RM))
		default:
			return ctx.fail(KindInvalidOpcode, "invalid dd register form (reg=%d rm=%d)", mm.Reg, mm.RM)
		}
	}

	switch mm.Reg {
	case 0:
		mem, err := ctx.memOperand(mm, ImmDouble)
		if err != nil {
			return err
		}
		ctx.setOpcode(FLD)
		return ctx.addOperand(mem)
	case 1:
		mem, err := ctx.memOperand(mm, ImmInt64)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTTP)
		return ctx.addOperand(mem)
	case 2:
		mem, err := ctx.memOperand(mm, ImmDouble)
		if err != nil {
			return err
		}
		ctx.setOpcode(FST)
		return ctx.addOperand(mem)
	case 3:
		mem, err := ctx.memOperand(mm, ImmDouble)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTP)
		return ctx.addOperand(mem)
	case 4:
		kind := ImmFloatingState94
		if ctx.operandSize == Int32 {
			kind = ImmFloatingState108
		}
		mem, err := ctx.memOperand(mm, kind)
		if err != nil {
			return err
		}
		ctx.setOpcode(FRSTOR)
		return ctx.addOperand(mem)
	case 6:
		kind := ImmFloatingState94
		if ctx.operandSize == Int32 {
			kind = ImmFloatingState108
		}
		mem, err := ctx.memOperand(mm, kind)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSAVE)
		return ctx.addOperand(mem)
	case 7:
		mem, err := ctx.memOperand(mm, ImmByteByte)
		if err != nil {
			return err
		}
		ctx.setOpcode(FSTSW)
		return ctx.addOperand(mem)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid dd memory reg field %d", mm.Reg)
	}
}

func x87DE(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		if mm.Reg == 3 && mm.RM == 1 {
			ctx.setOpcode(FCOMPP)
			return nil
		}
		pMnemonics := [8]Mnemonic{FADDP, FMULP, Invalid, Invalid, FSUBRP, FSUBP, FDIVRP, FDIVP}
		m := pMnemonics[mm.Reg]
		if m == Invalid {
			return ctx.fail(KindInvalidOpcode, "invalid de register form (reg=%d rm=%d)", mm.Reg, mm.RM)
		}
		ctx.setOpcode(m)
		return addOperands(ctx, st(mm.RM), st(0))
	}

	intMnemonics := [8]Mnemonic{FIADD, FIMUL, FICOM, FICOMP, FISUB, FISUBR, FIDIV, FIDIVR}
	mem, err := ctx.memOperand(mm, ImmInt16)
	if err != nil {
		return err
	}
	ctx.setOpcode(intMnemonics[mm.Reg])
	return addOperands(ctx, st(0), mem)
}

func x87DF(ctx *decodeContext) error {
	mm, err := ctx.readModRM()
	if err != nil {
		return err
	}
	if mm.Mod == 3 {
		switch {
		case mm.Reg == 4 && mm.RM == 0:
			ctx.setOpcode(FSTSW)
			return ctx.addOperand(NewRegisterOperand(AX))
		case mm.Reg == 5:
			ctx.setOpcode(FUCOMIP)
			return addOperands(ctx, st(0), st(mm.RM))
		case mm.Reg == 6:
			ctx.setOpcode(FCOMIP)
			return addOperands(ctx, st(0), st(mm.RM))
		}
		return ctx.fail(KindInvalidOpcode, "invalid df register form (reg=%d rm=%d)", mm.Reg, mm.RM)
	}

	switch mm.Reg {
	case 0:
		mem, err := ctx.memOperand(mm, ImmInt16)
		if err != nil {
			return err
		}
		ctx.setOpcode(FILD)
		return ctx.addOperand(mem)
	case 1:
		mem, err := ctx.memOperand(mm, ImmInt16)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTTP)
		return ctx.addOperand(mem)
	case 2:
		mem, err := ctx.memOperand(mm, ImmInt16)
		if err != nil {
			return err
		}
		ctx.setOpcode(FIST)
		return ctx.addOperand(mem)
	case 3:
		mem, err := ctx.memOperand(mm, ImmInt16)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTP)
		return ctx.addOperand(mem)
	case 4:
		mem, err := ctx.memOperand(mm, ImmPackedBCD)
		if err != nil {
			return err
		}
		ctx.setOpcode(FBLD)
		return ctx.addOperand(mem)
	case 5:
		mem, err := ctx.memOperand(mm, ImmInt64)
		if err != nil {
			return err
		}
		ctx.setOpcode(FILD)
		return ctx.addOperand(mem)
	case 6:
		mem, err := ctx.memOperand(mm, ImmPackedBCD)
		if err != nil {
			return err
		}
		ctx.setOpcode(FBSTP)
		return ctx.addOperand(mem)
	case 7:
		mem, err := ctx.memOperand(mm, ImmInt64)
		if err != nil {
			return err
		}
		ctx.setOpcode(FISTP)
		return ctx.addOperand(mem)
	default:
		return ctx.fail(KindInvalidOpcode, "invalid df memory reg field %d", mm.Reg)
	}
}
