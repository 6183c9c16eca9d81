// Package x86 implements a streaming decoder for the IA-32 instruction
// set: prefixes, the one-byte and 0F two-byte opcode maps, the eight
// D8-DF x87 floating-point escape maps, ModR/M and SIB addressing, and
// the instruction "groups" whose operation is selected by the ModR/M reg
// field rather than the opcode byte itself.
//
// This package decodes only - it never executes an instruction, never
// loads a file format, and never renders an instruction to text. Its one
// external dependency is a ByteSource: a single-pass, non-rewindable
// producer of bytes and the address of the next one.
//
// # Basic usage
//
//	d, err := x86.New(x86.Int32)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	inst, err := d.Disassemble(src)
//	if err != nil {
//		var decodeErr *x86.DecodeError
//		if errors.As(err, &decodeErr) {
//			log.Printf("decode failed: %s (%d)", decodeErr, decodeErr.Kind)
//		}
//		return err
//	}
//
//	fmt.Println(inst.Opcode, inst.OperandCount)
//
// # Scope
//
// Supported: real-mode and 32-bit protected-mode encodings, the LOCK and
// REP/REPE/REPNE prefixes and their legality constraints, segment and
// operand/address-size overrides.
//
// Out of scope: 64-bit mode, REX/VEX/EVEX prefixes, SSE/AVX, undocumented
// opcodes, instruction encoding, timing, and emulation.
package x86
