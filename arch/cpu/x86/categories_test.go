package x86

import (
	"testing"

	"github.com/retroenv/ia32dis/assert"
)

func TestIsLockable(t *testing.T) {
	lockable := []Mnemonic{ADD, ADC, AND, BTC, BTR, BTS, DEC, INC, NEG, NOT, OR, SBB, SUB, XOR, XCHG}
	for _, m := range lockable {
		assert.True(t, isLockable(m), m.String())
	}

	notLockable := []Mnemonic{MOV, CMP, TEST, JMP, CALL, LEA}
	for _, m := range notLockable {
		assert.False(t, isLockable(m), m.String())
	}
}

func TestRepLegal_NoRepeatAlwaysLegal(t *testing.T) {
	assert.True(t, repLegal(RepeatNone, MOV))
	assert.True(t, repLegal(RepeatNone, ADD))
}

func TestRepLegal_RepeatEqual(t *testing.T) {
	for _, m := range []Mnemonic{INS, OUTS, MOVS, LODS, STOS, CMPS, SCAS} {
		assert.True(t, repLegal(RepeatEqual, m), m.String())
	}
	assert.False(t, repLegal(RepeatEqual, MOV))
}

func TestRepLegal_RepeatNotEqual(t *testing.T) {
	assert.True(t, repLegal(RepeatNotEqual, CMPS))
	assert.True(t, repLegal(RepeatNotEqual, SCAS))
	assert.False(t, repLegal(RepeatNotEqual, MOVS))
	assert.False(t, repLegal(RepeatNotEqual, STOS))
}
