package x86

// collectPrefixes reads prefix bytes until it hits the first byte that
// isn't one, enforcing spec.md I3 ("each prefix category may appear at
// most once; a repeat within a category is an error") across the five
// categories: operand-size override, address-size override, segment
// override, LOCK, and the REP/REPNE pair. It returns the first non-prefix
// byte, which the caller dispatches as the opcode byte.
func collectPrefixes(ctx *decodeContext) (uint8, error) {
	for {
		b, err := ctx.readByte()
		if err != nil {
			return 0, err
		}

		switch b {
		case 0x66:
			if ctx.operandSizeSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate operand-size prefix")
			}
			ctx.operandSizeSeen = true
			ctx.operandSize = toggleSize(ctx.decoder.defaultSize)

		case 0x67:
			if ctx.addressSizeSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate address-size prefix")
			}
			ctx.addressSizeSeen = true
			ctx.addressSize = toggleSize(ctx.decoder.defaultSize)

		case 0x26, 0x2E, 0x36, 0x3E, 0x64, 0x65:
			if ctx.segmentSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate segment override prefix")
			}
			ctx.segmentSeen = true
			ctx.segmentOverride = segmentOverrideFor(b)

		case 0xF0:
			if ctx.lockSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate lock prefix")
			}
			ctx.lockSeen = true
			ctx.locked = true

		case 0xF2:
			if ctx.repeatSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate repeat prefix")
			}
			ctx.repeatSeen = true
			ctx.repeat = RepeatNotEqual

		case 0xF3:
			if ctx.repeatSeen {
				return 0, ctx.fail(KindMultiplePrefix, "duplicate repeat prefix")
			}
			ctx.repeatSeen = true
			ctx.repeat = RepeatEqual

		default:
			return b, nil
		}
	}
}

// toggleSize flips between 16-bit and 32-bit, the effect both the 0x66
// and 0x67 override prefixes have on their respective size relative to
// the decoder's configured default.
func toggleSize(defaultSize Size) Size {
	if defaultSize == Int16 {
		return Int32
	}
	return Int16
}

func segmentOverrideFor(b uint8) Segment {
	switch b {
	case 0x26:
		return ES
	case 0x2E:
		return CS
	case 0x36:
		return SS
	case 0x3E:
		return DS
	case 0x64:
		return FS
	default: // 0x65
		return GS
	}
}
