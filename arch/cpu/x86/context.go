package x86

import "github.com/retroenv/ia32dis/log"

// decodeContext carries the mutable state of a single Disassemble call:
// the prefix bytes collected so far, the cached ModR/M byte, and the
// operands assembled by the opcode handlers, in the call order spec.md §5
// requires (component G, "a fluent builder that appends operands in call
// order"). One decodeContext is stack-owned per Disassemble call and never
// escapes the package.
type decodeContext struct {
	decoder *Decoder
	source  ByteSource

	startAddress uint32

	operandSize Size
	addressSize Size

	operandSizeSeen bool
	addressSizeSeen bool
	segmentSeen     bool
	lockSeen        bool
	repeatSeen      bool

	segmentOverride Segment
	locked          bool
	repeat          Repeat

	modrm     modRM
	modrmRead bool

	opcode       Mnemonic
	near         bool
	operandCount int
	operands     [3]Operand
}

func newDecodeContext(d *Decoder, src ByteSource) *decodeContext {
	return &decodeContext{
		decoder:      d,
		source:       src,
		startAddress: src.Address(),
		operandSize:  d.defaultSize,
		addressSize:  d.defaultSize,
		opcode:       Invalid,
	}
}

// readByte pulls the next byte from the source, translating a source error
// into a DecodeError of KindTruncated (spec.md I2).
func (ctx *decodeContext) readByte() (uint8, error) {
	b, err := ctx.source.NextByte()
	if err != nil {
		return 0, newDecodeError(KindTruncated, "truncated: %v", err)
	}
	return b, nil
}

func (ctx *decodeContext) readUint16() (uint16, error) {
	lo, err := ctx.readByte()
	if err != nil {
		return 0, err
	}
	hi, err := ctx.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (ctx *decodeContext) readUint32() (uint32, error) {
	lo, err := ctx.readUint16()
	if err != nil {
		return 0, err
	}
	hi, err := ctx.readUint16()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// readOperandSized reads a width-2 or width-4 little-endian value
// depending on the effective operand size, for the many Iz/Ez/Gz/Ev
// encodings whose width tracks the 0x66 override.
func (ctx *decodeContext) readOperandSized() (uint64, error) {
	if ctx.operandSize == Int16 {
		v, err := ctx.readUint16()
		return uint64(v), err
	}
	v, err := ctx.readUint32()
	return uint64(v), err
}

func (ctx *decodeContext) readSignedOperandSized() (int64, error) {
	if ctx.operandSize == Int16 {
		v, err := ctx.readUint16()
		return int64(int16(v)), err
	}
	v, err := ctx.readUint32()
	return int64(int32(v)), err
}

// readFarPointer reads a raw Ap operand: an operand-sized offset followed
// by a 16-bit segment selector (spec.md §4.3's far JMP/CALL forms).
func (ctx *decodeContext) readFarPointer() (Operand, error) {
	var offset uint64
	var kind ImmKind
	if ctx.operandSize == Int16 {
		v, err := ctx.readUint16()
		if err != nil {
			return Operand{}, err
		}
		offset, kind = uint64(v), ImmPtr1616
	} else {
		v, err := ctx.readUint32()
		if err != nil {
			return Operand{}, err
		}
		offset, kind = uint64(v), ImmPtr1632
	}
	seg, err := ctx.readUint16()
	if err != nil {
		return Operand{}, err
	}
	return NewCallOperand(seg, offset, kind), nil
}

func (ctx *decodeContext) fail(kind ErrorKind, format string, args ...any) error {
	ctx.logf("decode error", log.String("detail", newDecodeError(kind, format, args...).Error()))
	return newDecodeError(kind, format, args...)
}

func (ctx *decodeContext) logf(msg string, fields ...log.Field) {
	if ctx.decoder == nil || ctx.decoder.logger == nil {
		return
	}
	ctx.decoder.logger.Debug(msg, toAnySlice(fields)...)
}

func toAnySlice(fields []log.Field) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

// width returns the decode width (8/16/32-bit GPR table) that corresponds
// to the current operand size, for opcodes whose register operand always
// tracks it (as opposed to fixed 8-bit forms).
func (ctx *decodeContext) width() width {
	return widthOf(ctx.operandSize)
}

// setOpcode records the decoded mnemonic. Each opcode handler calls this
// exactly once.
func (ctx *decodeContext) setOpcode(m Mnemonic) {
	ctx.opcode = m
}

// addOperand appends op as the next operand, enforcing the three-operand
// ceiling of spec.md C1.
func (ctx *decodeContext) addOperand(op Operand) error {
	if ctx.operandCount >= len(ctx.operands) {
		return ctx.fail(KindInvalidOpcode, "too many operands")
	}
	ctx.operands[ctx.operandCount] = op
	ctx.operandCount++
	return nil
}

// finish validates the fully-assembled instruction against spec.md's
// cross-cutting constraints (I4, C2, C3, C4) and produces the immutable
// result.
func (ctx *decodeContext) finish() (DecodedInstruction, error) {
	if ctx.opcode == Invalid {
		return DecodedInstruction{}, ctx.fail(KindInvalidOpcode, "invalid opcode")
	}
	if ctx.locked && !isLockable(ctx.opcode) {
		return DecodedInstruction{}, ctx.fail(KindInvalidPrefixUse, "lock prefix not valid for %s", ctx.opcode)
	}
	if ctx.locked && ctx.operandCount > 0 && ctx.operands[0].Kind == OperandRegister {
		return DecodedInstruction{}, ctx.fail(KindExpectedMemory, "lock prefix requires a memory destination")
	}
	if !repLegal(ctx.repeat, ctx.opcode) {
		return DecodedInstruction{}, ctx.fail(KindInvalidPrefixUse, "%s prefix not valid for %s", ctx.repeat, ctx.opcode)
	}

	return DecodedInstruction{
		Address:      ctx.startAddress,
		Opcode:       ctx.opcode,
		Locked:       ctx.locked,
		Near:         ctx.near,
		Repeat:       ctx.repeat,
		OperandCount: ctx.operandCount,
		Operands:     ctx.operands,
	}, nil
}
