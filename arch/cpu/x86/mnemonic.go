package x86

// Mnemonic is a closed enumeration of the IA-32 instruction names this
// decoder produces. It never carries operand information - that lives on
// DecodedInstruction.Operands.
type Mnemonic uint16

// Mnemonic constants, grouped the way the primary/secondary/group tables
// dispatch to them. Invalid is the zero value: a freshly constructed
// decodeContext starts with Opcode == Invalid and finish() rejects it.
const (
	Invalid Mnemonic = iota

	// Group 1 ALU block (0x00-0x3D and 80/81/83 Ev,I forms).
	ADD
	OR
	ADC
	SBB
	AND
	SUB
	XOR
	CMP

	// Data movement.
	MOV
	LEA
	XCHG

	// Stack.
	PUSH
	POP
	PUSHA
	POPA
	PUSHF
	POPF

	// Increment/decrement.
	INC
	DEC

	// Control flow.
	JMP
	CALL
	RET
	INT
	INTO
	IRET
	LOOP
	LOOPE
	LOOPNE
	JCXZ

	// Conditional jumps (0x70-0x7F and 0F 0x80-0x8F).
	JO
	JNO
	JB
	JNB
	JZ
	JNZ
	JBE
	JNBE
	JS
	JNS
	JP
	JNP
	JL
	JNL
	JLE
	JNLE

	// Byte set-on-condition (0F 0x90-0x9F).
	SETO
	SETNO
	SETB
	SETNB
	SETZ
	SETNZ
	SETBE
	SETNBE
	SETS
	SETNS
	SETP
	SETNP
	SETL
	SETNL
	SETLE
	SETNLE

	// Shift/rotate group 2.
	ROL
	ROR
	RCL
	RCR
	SHL
	SHR
	SAR

	// Unary group 3.
	TEST
	NOT
	NEG
	MUL
	IMUL
	DIV
	IDIV

	// String operations.
	MOVS
	CMPS
	STOS
	LODS
	SCAS
	INS
	OUTS

	// Single-byte flag/system/BCD operations.
	CLC
	STC
	CLI
	STI
	CLD
	STD
	CMC
	HLT
	WAIT
	NOP
	SAHF
	LAHF
	DAA
	DAS
	AAA
	AAS
	AAM
	AAD
	XLAT
	BOUND
	ARPL
	ENTER
	LEAVE
	CBW
	CWDE
	CWD
	CDQ

	// Bit operations (0F map).
	BT
	BTS
	BTR
	BTC
	BSF
	BSR
	SHLD
	SHRD

	// Sign/zero extension.
	MOVZX
	MOVSX

	// Protected-mode system instructions.
	LAR
	LSL
	CLTS
	SLDT
	LTR
	VERR
	VERW
	SGDT
	SIDT
	LGDT
	LIDT
	SMSW
	LMSW

	// Far-pointer loads.
	LDS
	LES
	LSS
	LFS
	LGS

	// Port I/O.
	IN
	OUT

	// FPU conditional moves (P6+, encoded under the DA/DB escapes).
	FCMOVB
	FCMOVE
	FCMOVBE
	FCMOVU
	FCMOVNB
	FCMOVNE
	FCMOVNBE
	FCMOVNU

	// FPU arithmetic.
	FADD
	FADDP
	FIADD
	FMUL
	FMULP
	FIMUL
	FCOM
	FCOMP
	FCOMPP
	FICOM
	FICOMP
	FSUB
	FSUBP
	FISUB
	FSUBR
	FSUBRP
	FISUBR
	FDIV
	FDIVP
	FIDIV
	FDIVR
	FDIVRP
	FIDIVR

	// FPU load/store.
	FLD
	FILD
	FBLD
	FST
	FSTP
	FIST
	FISTP
	FISTTP
	FBSTP
	FXCH

	// FPU environment/control.
	FLDENV
	FSTENV
	FRSTOR
	FSAVE
	FSTSW
	FSTCW
	FLDCW
	FCLEX
	FINIT
	FNOP
	FFREE

	// FPU constant loads.
	FLD1
	FLDL2T
	FLDL2E
	FLDPI
	FLDLG2
	FLDLN2
	FLDZ

	// FPU transcendental and misc arithmetic.
	F2XM1
	FYL2X
	FPTAN
	FPATAN
	FXTRACT
	FPREM
	FPREM1
	FDECSTP
	FINCSTP
	FSQRT
	FSINCOS
	FRNDINT
	FSCALE
	FSIN
	FCOS
	FCHS
	FABS
	FTST
	FXAM

	// FPU comparison.
	FUCOM
	FUCOMP
	FUCOMPP
	FCOMI
	FCOMIP
	FUCOMI
	FUCOMIP

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	Invalid:  "(invalid)",
	ADD:      "add",
	OR:       "or",
	ADC:      "adc",
	SBB:      "sbb",
	AND:      "and",
	SUB:      "sub",
	XOR:      "xor",
	CMP:      "cmp",
	MOV:      "mov",
	LEA:      "lea",
	XCHG:     "xchg",
	PUSH:     "push",
	POP:      "pop",
	PUSHA:    "pusha",
	POPA:     "popa",
	PUSHF:    "pushf",
	POPF:     "popf",
	INC:      "inc",
	DEC:      "dec",
	JMP:      "jmp",
	CALL:     "call",
	RET:      "ret",
	INT:      "int",
	INTO:     "into",
	IRET:     "iret",
	LOOP:     "loop",
	LOOPE:    "loope",
	LOOPNE:   "loopne",
	JCXZ:     "jcxz",
	JO:       "jo",
	JNO:      "jno",
	JB:       "jb",
	JNB:      "jnb",
	JZ:       "jz",
	JNZ:      "jnz",
	JBE:      "jbe",
	JNBE:     "jnbe",
	JS:       "js",
	JNS:      "jns",
	JP:       "jp",
	JNP:      "jnp",
	JL:       "jl",
	JNL:      "jnl",
	JLE:      "jle",
	JNLE:     "jnle",
	SETO:     "seto",
	SETNO:    "setno",
	SETB:     "setb",
	SETNB:    "setnb",
	SETZ:     "setz",
	SETNZ:    "setnz",
	SETBE:    "setbe",
	SETNBE:   "setnbe",
	SETS:     "sets",
	SETNS:    "setns",
	SETP:     "setp",
	SETNP:    "setnp",
	SETL:     "setl",
	SETNL:    "setnl",
	SETLE:    "setle",
	SETNLE:   "setnle",
	ROL:      "rol",
	ROR:      "ror",
	RCL:      "rcl",
	RCR:      "rcr",
	SHL:      "shl",
	SHR:      "shr",
	SAR:      "sar",
	TEST:     "test",
	NOT:      "not",
	NEG:      "neg",
	MUL:      "mul",
	IMUL:     "imul",
	DIV:      "div",
	IDIV:     "idiv",
	MOVS:     "movs",
	CMPS:     "cmps",
	STOS:     "stos",
	LODS:     "lods",
	SCAS:     "scas",
	INS:      "ins",
	OUTS:     "outs",
	CLC:      "clc",
	STC:      "stc",
	CLI:      "cli",
	STI:      "sti",
	CLD:      "cld",
	STD:      "std",
	CMC:      "cmc",
	HLT:      "hlt",
	WAIT:     "wait",
	NOP:      "nop",
	SAHF:     "sahf",
	LAHF:     "lahf",
	DAA:      "daa",
	DAS:      "das",
	AAA:      "aaa",
	AAS:      "aas",
	AAM:      "aam",
	AAD:      "aad",
	XLAT:     "xlat",
	BOUND:    "bound",
	ARPL:     "arpl",
	ENTER:    "enter",
	LEAVE:    "leave",
	CBW:      "cbw",
	CWDE:     "cwde",
	CWD:      "cwd",
	CDQ:      "cdq",
	BT:       "bt",
	BTS:      "bts",
	BTR:      "btr",
	BTC:      "btc",
	BSF:      "bsf",
	BSR:      "bsr",
	SHLD:     "shld",
	SHRD:     "shrd",
	MOVZX:    "movzx",
	MOVSX:    "movsx",
	LAR:      "lar",
	LSL:      "lsl",
	CLTS:     "clts",
	SLDT:     "sldt",
	LTR:      "ltr",
	VERR:     "verr",
	VERW:     "verw",
	SGDT:     "sgdt",
	SIDT:     "sidt",
	LGDT:     "lgdt",
	LIDT:     "lidt",
	SMSW:     "smsw",
	LMSW:     "lmsw",
	LDS:      "lds",
	LES:      "les",
	LSS:      "lss",
	LFS:      "lfs",
	LGS:      "lgs",
	IN:       "in",
	OUT:      "out",
	FCMOVB:   "fcmovb",
	FCMOVE:   "fcmove",
	FCMOVBE:  "fcmovbe",
	FCMOVU:   "fcmovu",
	FCMOVNB:  "fcmovnb",
	FCMOVNE:  "fcmovne",
	FCMOVNBE: "fcmovnbe",
	FCMOVNU:  "fcmovnu",
	FADD:     "fadd",
	FADDP:    "faddp",
	FIADD:    "fiadd",
	FMUL:     "fmul",
	FMULP:    "fmulp",
	FIMUL:    "fimul",
	FCOM:     "fcom",
	FCOMP:    "fcomp",
	FCOMPP:   "fcompp",
	FICOM:    "ficom",
	FICOMP:   "ficomp",
	FSUB:     "fsub",
	FSUBP:    "fsubp",
	FISUB:    "fisub",
	FSUBR:    "fsubr",
	FSUBRP:   "fsubrp",
	FISUBR:   "fisubr",
	FDIV:     "fdiv",
	FDIVP:    "fdivp",
	FIDIV:    "fidiv",
	FDIVR:    "fdivr",
	FDIVRP:   "fdivrp",
	FIDIVR:   "fidivr",
	FLD:      "fld",
	FILD:     "fild",
	FBLD:     "fbld",
	FST:      "fst",
	FSTP:     "fstp",
	FIST:     "fist",
	FISTP:    "fistp",
	FISTTP:   "fisttp",
	FBSTP:    "fbstp",
	FXCH:     "fxch",
	FLDENV:   "fldenv",
	FSTENV:   "fstenv",
	FRSTOR:   "frstor",
	FSAVE:    "fsave",
	FSTSW:    "fstsw",
	FSTCW:    "fstcw",
	FLDCW:    "fldcw",
	FCLEX:    "fclex",
	FINIT:    "finit",
	FNOP:     "fnop",
	FFREE:    "ffree",
	FLD1:     "fld1",
	FLDL2T:   "fldl2t",
	FLDL2E:   "fldl2e",
	FLDPI:    "fldpi",
	FLDLG2:   "fldlg2",
	FLDLN2:   "fldln2",
	FLDZ:     "fldz",
	F2XM1:    "f2xm1",
	FYL2X:    "fyl2x",
	FPTAN:    "fptan",
	FPATAN:   "fpatan",
	FXTRACT:  "fxtract",
	FPREM:    "fprem",
	FPREM1:   "fprem1",
	FDECSTP:  "fdecstp",
	FINCSTP:  "fincstp",
	FSQRT:    "fsqrt",
	FSINCOS:  "fsincos",
	FRNDINT:  "frndint",
	FSCALE:   "fscale",
	FSIN:     "fsin",
	FCOS:     "fcos",
	FCHS:     "fchs",
	FABS:     "fabs",
	FTST:     "ftst",
	FXAM:     "fxam",
	FUCOM:    "fucom",
	FUCOMP:   "fucomp",
	FUCOMPP:  "fucompp",
	FCOMI:    "fcomi",
	FCOMIP:   "fcomip",
	FUCOMI:   "fucomi",
	FUCOMIP:  "fucomip",
}

// String returns the lowercase mnemonic text, matching the teacher's
// convention of lowercased Instruction.Name values.
func (m Mnemonic) String() string {
	if int(m) < len(mnemonicNames) && mnemonicNames[m] != "" {
		return mnemonicNames[m]
	}
	return "(unknown)"
}
