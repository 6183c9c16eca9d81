package x86

// ByteSource is the decoder's only collaborator: a single-pass producer of
// bytes plus the current address (spec.md §4.1). Implementations live
// outside this package - a file reader, a memory-mapped image, a network
// stream. The decoder never peeks or rewinds; NextByte is called exactly
// once per consumed byte, in order.
type ByteSource interface {
	// NextByte returns the next byte in the stream and advances past it.
	// It returns ErrTruncated (or an error that wraps it) when the stream
	// is exhausted.
	NextByte() (uint8, error)

	// Address reports the address of the byte that the *next* call to
	// NextByte will return, so PC-relative operands can be rebased by the
	// caller after decoding completes.
	Address() uint32
}
