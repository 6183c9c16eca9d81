package x86

import "github.com/retroenv/ia32dis/set"

// lockableMnemonics contains every mnemonic a LOCK prefix may legally
// precede (spec.md C3). Modeled on the teacher's categories.go, which
// keeps exactly this kind of instruction-name membership table as a
// set.Set[string] built with set.NewFromSlice; generalized here to
// set.Set[Mnemonic] so membership checks compare the closed enum directly
// instead of its lowercase string rendering.
var lockableMnemonics = set.NewFromSlice([]Mnemonic{
	ADD, ADC, AND, BTC, BTR, BTS, DEC, INC, NEG, NOT, OR, SBB, SUB, XOR, XCHG,
})

// repMnemonics contains the string-op mnemonics REP/REPE may legally
// precede (spec.md C4).
var repMnemonics = set.NewFromSlice([]Mnemonic{
	INS, OUTS, MOVS, LODS, STOS, CMPS, SCAS,
})

// repneMnemonics contains the string-op mnemonics REPNE may legally
// precede (spec.md C4: "REPNE only for CMPS,SCAS").
var repneMnemonics = set.NewFromSlice([]Mnemonic{
	CMPS, SCAS,
})

// isLockable reports whether m may be preceded by a legal LOCK prefix.
func isLockable(m Mnemonic) bool {
	return lockableMnemonics.Contains(m)
}

// repLegal reports whether the given repeat prefix is legal for m.
func repLegal(r Repeat, m Mnemonic) bool {
	switch r {
	case RepeatEqual:
		return repMnemonics.Contains(m)
	case RepeatNotEqual:
		return repneMnemonics.Contains(m)
	default:
		return true
	}
}
