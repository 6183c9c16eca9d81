package x86

// modRM holds the three decoded fields of a ModR/M byte (spec.md §4.7).
type modRM struct {
	Mod uint8
	Reg uint8
	RM  uint8
}

func decodeModRMByte(b uint8) modRM {
	return modRM{
		Mod: (b >> 6) & 0x03,
		Reg: (b >> 3) & 0x07,
		RM:  b & 0x07,
	}
}

// readModRM reads the ModR/M byte on first demand and returns the cached
// value afterwards - spec.md invariant I5 ("read at most once") and
// property P7.
func (ctx *decodeContext) readModRM() (modRM, error) {
	if ctx.modrmRead {
		return ctx.modrm, nil
	}
	b, err := ctx.readByte()
	if err != nil {
		return modRM{}, err
	}
	ctx.modrm = decodeModRMByte(b)
	ctx.modrmRead = true
	return ctx.modrm, nil
}

// rmOptions configures how the r/m field of a ModR/M byte resolves to an
// Operand, mirroring spec.md C5's slot-targeted flags.
type rmOptions struct {
	mustBeMemory   bool // C5 MustBeMemory
	mustBeRegister bool // symmetric counterpart, raises ExpectedRegister
	dontDereference bool // C5 DontDereference: return the address, not Indirect(address)
}

// regOperand returns the ModR/M reg field as a Register of width w
// (spec.md §4.7: "the operand slot chosen for the ModR/M field is reg via
// regOperand").
func (ctx *decodeContext) regOperand(m modRM, w width) Operand {
	return NewRegisterOperand(decodeRegister(m.Reg, w))
}

// segmentOperand returns the ModR/M reg field interpreted as a segment
// register (Sw), rejecting out-of-range encodings per C6.
func (ctx *decodeContext) segmentOperand(m modRM) (Operand, error) {
	seg, ok := decodeSegment(m.Reg)
	if !ok {
		return Operand{}, ctx.fail(KindInvalidSegment, "invalid segment register")
	}
	return NewSegmentOperand(seg), nil
}

// controlRegisterOperand returns the ModR/M reg field as CR0-CR3 (spec.md
// C5: "rejects reg>3").
func (ctx *decodeContext) controlRegisterOperand(m modRM) (Operand, error) {
	if m.Reg > 3 {
		return Operand{}, ctx.fail(KindInvalidControlRegister, "invalid control register")
	}
	return NewRegisterOperand(Register(uint8(CR0) + m.Reg)), nil
}

// debugRegisterOperand returns the ModR/M reg field as DR0-DR7.
func (ctx *decodeContext) debugRegisterOperand(m modRM) (Operand, error) {
	return NewRegisterOperand(Register(uint8(DR0) + m.Reg)), nil
}

// rmOperand materializes the ModR/M r/m field under the effective address
// size, applying opts (spec.md §4.7 and C5).
func (ctx *decodeContext) rmOperand(m modRM, w width, opts rmOptions) (Operand, error) {
	if m.Mod == 3 {
		if opts.mustBeMemory {
			return Operand{}, ctx.fail(KindExpectedMemory, "expected memory operand")
		}
		return NewRegisterOperand(decodeRegister(m.RM, w)), nil
	}

	if opts.mustBeRegister {
		return Operand{}, ctx.fail(KindExpectedRegister, "expected register operand")
	}

	inner, stackDefault, err := ctx.decodeAddress(m)
	if err != nil {
		return Operand{}, err
	}

	if opts.dontDereference {
		return inner, nil
	}

	return NewIndirectOperand(inner, ctx.operandSize, ctx.effectiveSegment(stackDefault)), nil
}

// effectiveSegment applies the explicit segment override when present,
// otherwise falls back to SS for BP/EBP/ESP-based addressing and DS
// otherwise - the classic real-mode/protected-mode default-segment rule
// the teacher's CPU.defaultToSS implements for 16-bit addressing, extended
// here to the 32-bit SIB base cases that trigger the same default.
func (ctx *decodeContext) effectiveSegment(stackDefault bool) Segment {
	if ctx.segmentOverride != SegNone {
		return ctx.segmentOverride
	}
	if stackDefault {
		return SS
	}
	return DS
}

// decodeAddress builds the address-expression Operand tree for a memory
// form of the r/m field (mod != 3), under the current address size, and
// reports whether SS is the implied default segment for this form.
func (ctx *decodeContext) decodeAddress(m modRM) (Operand, bool, error) {
	var inner Operand
	var stackDefault bool
	var err error

	if ctx.addressSize == Int16 {
		inner, stackDefault, err = ctx.decodeAddress16(m)
	} else if m.RM == 4 {
		inner, stackDefault, err = ctx.decodeSIB(m.Mod)
	} else {
		inner, stackDefault, err = ctx.decodeAddress32(m)
	}
	if err != nil {
		return Operand{}, false, err
	}

	// mod==0 forms take no trailing displacement (its special
	// absolute-address forms - 16-bit rm==6, 32-bit rm==5, and SIB
	// base==5 - already read theirs); mod==1/mod==2 forms add one.
	switch m.Mod {
	case 1:
		disp, err := ctx.readByte()
		if err != nil {
			return Operand{}, false, err
		}
		dispOp := NewSignedImmediateOperand(int64(int8(disp)), Imm8)
		inner = NewAdditionOperand(inner, dispOp)
	case 2:
		dispOp, err := ctx.readAddressSizedDisplacement()
		if err != nil {
			return Operand{}, false, err
		}
		inner = NewAdditionOperand(inner, dispOp)
	}

	return inner, stackDefault, nil
}

// readAddressSizedDisplacement reads a mod==2 displacement whose width is
// the *address* size, not the operand size (spec.md §4.7: "an address-size
// displacement if mod==2").
func (ctx *decodeContext) readAddressSizedDisplacement() (Operand, error) {
	if ctx.addressSize == Int16 {
		v, err := ctx.readUint16()
		if err != nil {
			return Operand{}, err
		}
		return NewSignedImmediateOperand(int64(int16(v)), Imm16), nil
	}
	v, err := ctx.readUint32()
	if err != nil {
		return Operand{}, err
	}
	return NewSignedImmediateOperand(int64(int32(v)), Imm32), nil
}

// decodeAddress16 implements the eight classic 16-bit addressing forms
// (spec.md §4.7: "the eight classic [BX+SI]..[BX] forms, with rm==6 &&
// mod==0 replaced by a 16-bit displacement").
func (ctx *decodeContext) decodeAddress16(m modRM) (Operand, bool, error) {
	reg16 := func(r Register) Operand { return NewRegisterOperand(r) }

	switch m.RM {
	case 0:
		return NewAdditionOperand(reg16(BX), reg16(SI)), false, nil
	case 1:
		return NewAdditionOperand(reg16(BX), reg16(DI)), false, nil
	case 2:
		return NewAdditionOperand(reg16(BP), reg16(SI)), true, nil
	case 3:
		return NewAdditionOperand(reg16(BP), reg16(DI)), true, nil
	case 4:
		return reg16(SI), false, nil
	case 5:
		return reg16(DI), false, nil
	case 6:
		if m.Mod == 0 {
			v, err := ctx.readUint16()
			if err != nil {
				return Operand{}, false, err
			}
			return NewImmediateOperand(uint64(v), Imm16), false, nil
		}
		return reg16(BP), true, nil
	default: // 7
		return reg16(BX), false, nil
	}
}

// decodeAddress32 handles the non-SIB 32-bit addressing forms: a single
// GPR base, or (rm==5, mod==0) an absolute disp32.
func (ctx *decodeContext) decodeAddress32(m modRM) (Operand, bool, error) {
	if m.RM == 5 && m.Mod == 0 {
		v, err := ctx.readUint32()
		if err != nil {
			return Operand{}, false, err
		}
		return NewImmediateOperand(uint64(v), Imm32), false, nil
	}
	base := decodeRegister(m.RM, width32)
	return NewRegisterOperand(base), base == EBP, nil
}

// decodeSIB implements the SIB byte (spec.md §4.7's SIB bullet list). The
// displacement-size rule for base==5 follows real IA-32 encoding (mod
// governs disp8/disp32/no-disp) rather than the literal "scale field"
// wording in spec.md §4.7 - see DESIGN.md for why: §6 requires the ModR/M
// and SIB decode to be "bit-exact to Intel's documented encoding", and
// real SIB.scale==3 is a perfectly valid x8 scale, not an error, so only
// mod can be the field spec.md meant.
func (ctx *decodeContext) decodeSIB(mod uint8) (Operand, bool, error) {
	sib, err := ctx.readByte()
	if err != nil {
		return Operand{}, false, err
	}
	scale := (sib >> 6) & 0x03
	index := (sib >> 3) & 0x07
	base := sib & 0x07

	hasIndex := index != 4
	var scaleOperand Operand
	if hasIndex {
		scaleOperand = NewScaleOperand(NewRegisterOperand(decodeRegister(index, width32)), 1<<scale)
	}

	noBase := base == 5 && mod == 0
	var baseOperand Operand
	stackDefault := false
	if noBase {
		v, err := ctx.readUint32()
		if err != nil {
			return Operand{}, false, err
		}
		baseOperand = NewImmediateOperand(uint64(v), Imm32)
	} else {
		baseReg := decodeRegister(base, width32)
		baseOperand = NewRegisterOperand(baseReg)
		stackDefault = baseReg == ESP || baseReg == EBP
	}

	switch {
	case !noBase && hasIndex:
		return NewAdditionOperand(baseOperand, scaleOperand), stackDefault, nil
	case hasIndex: // noBase: pure disp32 + scaled index
		return NewAdditionOperand(baseOperand, scaleOperand), stackDefault, nil
	default:
		return baseOperand, stackDefault, nil
	}
}
