package x86

import (
	"testing"

	"github.com/retroenv/ia32dis/assert"
)

func TestDecodeModRMByte(t *testing.T) {
	m := decodeModRMByte(0xC1) // 11 000 001
	assert.Equal(t, uint8(3), m.Mod)
	assert.Equal(t, uint8(0), m.Reg)
	assert.Equal(t, uint8(1), m.RM)
}

func TestReadModRM_ReadsOnce(t *testing.T) {
	src := newSource(0xC1, 0xFF)
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)

	first, err := ctx.readModRM()
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), first.Mod)

	second, err := ctx.readModRM()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.pos)
}

func TestRmOperand_RegisterForm(t *testing.T) {
	src := newSource()
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)
	mm := modRM{Mod: 3, Reg: 0, RM: 1}

	op, err := ctx.rmOperand(mm, width32, rmOptions{})
	assert.NoError(t, err)
	assert.Equal(t, OperandRegister, op.Kind)
	assert.Equal(t, ECX, op.Register)
}

func TestRmOperand_MustBeMemoryRejectsRegisterForm(t *testing.T) {
	src := newSource()
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)
	mm := modRM{Mod: 3, Reg: 0, RM: 1}

	_, err := ctx.rmOperand(mm, width32, rmOptions{mustBeMemory: true})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrExpectedMemory)
}

func TestRmOperand_MustBeRegisterRejectsMemoryForm(t *testing.T) {
	src := newSource(0x00) // disp mod==0, rm==0 -> [eax]
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)
	mm := modRM{Mod: 0, Reg: 0, RM: 0}

	_, err := ctx.rmOperand(mm, width32, rmOptions{mustBeRegister: true})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrExpectedRegister)
}

func TestEffectiveSegment_OverrideWins(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, newSource())
	ctx.segmentOverride = FS
	assert.Equal(t, FS, ctx.effectiveSegment(true))
}

func TestEffectiveSegment_StackDefault(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, newSource())
	assert.Equal(t, SS, ctx.effectiveSegment(true))
	assert.Equal(t, DS, ctx.effectiveSegment(false))
}

func TestDecodeAddress16_BPBasedDefaultsToSS(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int16}, newSource())
	ctx.addressSize = Int16
	mm := modRM{Mod: 1, Reg: 0, RM: 2} // [bp+si+disp8]

	_, stackDefault, err := ctx.decodeAddress16(mm)
	assert.NoError(t, err)
	assert.True(t, stackDefault)
}

func TestDecodeAddress16_DisplacementOnlyForm(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int16}, newSource(0x34, 0x12))
	ctx.addressSize = Int16
	mm := modRM{Mod: 0, Reg: 0, RM: 6}

	op, stackDefault, err := ctx.decodeAddress16(mm)
	assert.NoError(t, err)
	assert.False(t, stackDefault)
	assert.Equal(t, OperandImmediate, op.Kind)
	assert.Equal(t, uint64(0x1234), op.Immediate)
}

func TestDecodeSIB_NoBaseAbsoluteDisp32(t *testing.T) {
	// SIB with base==5, mod==0: scale=1 (00), index=none(100), base=101
	src := newSource(0x25, 0x78, 0x56, 0x34, 0x12)
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)

	op, stackDefault, err := ctx.decodeSIB(0)
	assert.NoError(t, err)
	assert.False(t, stackDefault)
	assert.Equal(t, OperandImmediate, op.Kind)
	assert.Equal(t, uint64(0x12345678), op.Immediate)
}

func TestDecodeSIB_EBPBaseWithScale8(t *testing.T) {
	// scale=11(x8), index=000(eax), base=101(ebp); mod==1 so base==5 means
	// a real EBP base with a following disp8, not the no-base special case.
	src := newSource(0xC5)
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, src)

	op, stackDefault, err := ctx.decodeSIB(1)
	assert.NoError(t, err)
	assert.True(t, stackDefault)
	assert.Equal(t, OperandAddition, op.Kind)
	assert.Equal(t, EBP, op.Left.Register)
	assert.Equal(t, uint8(8), op.Right.Scale)
}

func TestSegmentOperand_RejectsOutOfRange(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, newSource())
	_, err := ctx.segmentOperand(modRM{Reg: 6})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSegmentRegister)
}

func TestControlRegisterOperand_RejectsAboveThree(t *testing.T) {
	ctx := newDecodeContext(&Decoder{defaultSize: Int32}, newSource())
	_, err := ctx.controlRegisterOperand(modRM{Reg: 4})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidControlRegister)
}
