package x86

import "github.com/retroenv/ia32dis/log"

// Options configures a Decoder. It follows the teacher's functional-options
// pattern (an Options struct with unexported fields plus Option funcs), generalized
// here to the single option this package currently needs.
type Options struct {
	logger *log.Logger
}

// Option mutates Options during New.
type Option func(*Options)

// WithLogger attaches a logger used for Debug-level traces of exceptional
// or structural decode steps (duplicate-prefix detection, invalid-opcode
// rejection). The default Decoder has no logger and never logs.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// Decoder turns a byte stream into DecodedInstruction values, one
// instruction per Disassemble call (spec.md §1). A Decoder holds only its
// configuration - the default operand/address size and an optional
// logger - so it carries no per-instruction state between calls and is
// not safe for concurrent use from multiple goroutines against the same
// ByteSource (the ByteSource itself is the shared, ordered resource).
type Decoder struct {
	defaultSize Size
	logger      *log.Logger
}

// New creates a Decoder whose operand and address sizes default to
// defaultSize until toggled by a 0x66/0x67 prefix on a given instruction
// (spec.md §4.2).
func New(defaultSize Size, opts ...Option) (*Decoder, error) {
	if defaultSize != Int16 && defaultSize != Int32 {
		return nil, newDecodeError(KindInvalidOpcode, "invalid default size %d", defaultSize)
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{
		defaultSize: defaultSize,
		logger:      o.logger,
	}, nil
}

// Disassemble decodes exactly one instruction from src: it collects
// prefixes, dispatches the opcode (recursing through the secondary,
// group and x87 maps as needed), and validates the assembled instruction
// against the prefix-legality constraints before returning it.
func (d *Decoder) Disassemble(src ByteSource) (DecodedInstruction, error) {
	ctx := newDecodeContext(d, src)

	opcodeByte, err := collectPrefixes(ctx)
	if err != nil {
		return DecodedInstruction{}, err
	}

	if err := dispatchPrimary(ctx, opcodeByte); err != nil {
		return DecodedInstruction{}, err
	}

	return ctx.finish()
}
