package x86

// OperandKind discriminates the cases of Operand. spec.md §9 calls out that
// the source's class-per-variant hierarchy "should become a single tagged
// sum" in a systems language - OperandKind is that sum's tag.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandSegment
	OperandImmediate
	OperandCall
	OperandAddition
	OperandScale
	OperandIndirect
	OperandFloatingPointStack
)

// Operand is the single tagged-sum operand type spec.md §3 describes.
// Only the fields relevant to Kind are meaningful; the rest are zero.
// Operand is a value type and is safe to copy - Addition/Scale/Indirect
// nest through pointers so the struct stays fixed-size.
type Operand struct {
	Kind OperandKind

	// OperandRegister
	Register Register

	// OperandSegment
	Segment Segment

	// OperandImmediate / ImmKind also tags the access width carried by
	// OperandIndirect.
	Immediate    uint64
	ImmediateNeg bool // true if Immediate is a sign-extended negative value
	ImmKind      ImmKind

	// OperandCall: far pointer literal (segment:offset).
	CallSegment uint16
	CallOffset  uint64

	// OperandAddition / OperandScale: symbolic sum / SIB scaled index.
	Left  *Operand
	Right *Operand
	Scale uint8 // 1, 2, 4 or 8 - only meaningful for OperandScale

	// OperandIndirect: dereference of Inner under the given access size
	// and effective segment (the override segment if one was given,
	// otherwise the implied SS or DS default). IndirectKind further classifies
	// the memory access format for the x87 operand shapes that aren't a
	// plain operand-size load/store (single/double/extended real, packed
	// BCD, environment/state images); it is ImmNone for every ordinary
	// GPR-width memory operand.
	Inner           *Operand
	IndirectSize    Size
	IndirectSegment Segment
	IndirectKind    ImmKind

	// OperandFloatingPointStack: ST(i), 0 <= FPIndex <= 7.
	FPIndex uint8
}

// NewRegisterOperand builds a Register operand.
func NewRegisterOperand(r Register) Operand {
	return Operand{Kind: OperandRegister, Register: r}
}

// NewSegmentOperand builds a Segment operand.
func NewSegmentOperand(s Segment) Operand {
	return Operand{Kind: OperandSegment, Segment: s}
}

// NewImmediateOperand builds an unsigned Immediate operand of the given
// kind.
func NewImmediateOperand(value uint64, kind ImmKind) Operand {
	return Operand{Kind: OperandImmediate, Immediate: value, ImmKind: kind}
}

// NewSignedImmediateOperand builds a sign-extended Immediate operand -
// used for displacements and relative branch targets.
func NewSignedImmediateOperand(value int64, kind ImmKind) Operand {
	if value < 0 {
		return Operand{Kind: OperandImmediate, Immediate: uint64(-value), ImmediateNeg: true, ImmKind: kind}
	}
	return Operand{Kind: OperandImmediate, Immediate: uint64(value), ImmKind: kind}
}

// NewCallOperand builds a far pointer literal operand.
func NewCallOperand(segment uint16, offset uint64, kind ImmKind) Operand {
	return Operand{Kind: OperandCall, CallSegment: segment, CallOffset: offset, ImmKind: kind}
}

// NewAdditionOperand builds the symbolic sum of two operands.
func NewAdditionOperand(left, right Operand) Operand {
	return Operand{Kind: OperandAddition, Left: &left, Right: &right}
}

// NewScaleOperand builds a SIB-derived index*scale operand.
func NewScaleOperand(index Operand, scale uint8) Operand {
	return Operand{Kind: OperandScale, Left: &index, Scale: scale}
}

// NewIndirectOperand wraps inner as a memory dereference. Per spec.md §4.7,
// Indirect never nests inside another Indirect - it is always the
// outermost wrapper, which callers (only modrm.go) are responsible for.
func NewIndirectOperand(inner Operand, size Size, segment Segment) Operand {
	return Operand{Kind: OperandIndirect, Inner: &inner, IndirectSize: size, IndirectSegment: segment}
}

// WithAccessKind returns a copy of o with IndirectKind set to a
// non-default access format - the x87 memory forms whose operand isn't
// a plain operand-size GPR-width load/store (spec.md §4.6), and Group 7's
// pseudo-descriptor operand, which is an undereferenced address rather
// than an OperandIndirect.
func (o Operand) WithAccessKind(kind ImmKind) Operand {
	o.IndirectKind = kind
	return o
}

// NewFloatingPointStackOperand builds an ST(i) operand.
func NewFloatingPointStackOperand(index uint8) Operand {
	return Operand{Kind: OperandFloatingPointStack, FPIndex: index}
}

// Equal reports whether two operands are structurally/value equal,
// matching spec.md P10's "operand equality is value-based" requirement.
func (o Operand) Equal(other Operand) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case OperandNone:
		return true
	case OperandRegister:
		return o.Register == other.Register
	case OperandSegment:
		return o.Segment == other.Segment
	case OperandImmediate:
		return o.Immediate == other.Immediate && o.ImmediateNeg == other.ImmediateNeg && o.ImmKind == other.ImmKind
	case OperandCall:
		return o.CallSegment == other.CallSegment && o.CallOffset == other.CallOffset && o.ImmKind == other.ImmKind
	case OperandAddition:
		return o.Left.Equal(*other.Left) && o.Right.Equal(*other.Right)
	case OperandScale:
		return o.Scale == other.Scale && o.Left.Equal(*other.Left)
	case OperandIndirect:
		return o.IndirectSize == other.IndirectSize &&
			o.IndirectSegment == other.IndirectSegment &&
			o.IndirectKind == other.IndirectKind &&
			o.Inner.Equal(*other.Inner)
	case OperandFloatingPointStack:
		return o.FPIndex == other.FPIndex
	default:
		return false
	}
}
