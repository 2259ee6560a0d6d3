package xfile

// PointerKind classifies a resolved sentinel pointer field, per §4.2.
type PointerKind int

const (
	PointerNull PointerKind = iota
	PointerInlineFollow
	PointerAbsolute
)

// Pointer is the resolved form of a raw 32-bit sentinel pointer field. Raw
// sentinel values never survive past resolution; only this sum type does.
type Pointer struct {
	Kind PointerKind
	// Off holds the pointee's absolute stream offset for PointerAbsolute,
	// and the cursor position the pointee starts at for PointerInlineFollow.
	Off uint32
}

func (p Pointer) IsNull() bool { return p.Kind == PointerNull }

const (
	sentinelNull  = 0x00000000
	sentinelFollow = 0xFFFFFFFF
	blockShift    = 29
	blockMask     = 0x1FFFFFFF
	numBlocks     = 7
)

// ResolvePointer classifies raw against the sentinel rules in §4.2, given
// the stream's current cursor (for inline-follow) and the file's 7-entry
// block-size table (for block-relative offsets).
func ResolvePointer(raw uint32, cursor int64, blockSizes [numBlocks]uint32) (Pointer, error) {
	switch raw {
	case sentinelNull:
		return Pointer{Kind: PointerNull}, nil
	case sentinelFollow:
		return Pointer{Kind: PointerInlineFollow, Off: uint32(cursor)}, nil
	default:
		block := (raw - 1) >> blockShift
		offset := (raw - 1) & blockMask
		if block >= numBlocks {
			return Pointer{}, newErr(KindBadOffset, cursor, "sentinel pointer 0x%08x selects block %d, max %d", raw, block, numBlocks-1)
		}
		var abs uint64
		for i := uint32(0); i < block; i++ {
			abs += uint64(blockSizes[i])
		}
		abs += uint64(offset)
		return Pointer{Kind: PointerAbsolute, Off: uint32(abs)}, nil
	}
}

// WithPointer resolves raw against ctx's current cursor and block table,
// then, for an Absolute pointer, seeks the stream there, runs decode, and
// restores the prior cursor position on return (§4.2 "by convention").
// For InlineFollow, decode runs at the current cursor with no seek. For
// Null, decode never runs and the zero value of T is returned.
func WithPointer[T any](ctx *Context, raw uint32, decode func(*Context) (T, error)) (T, error) {
	var zero T
	ptr, err := ResolvePointer(raw, ctx.Stream.Pos(), ctx.BlockSizes)
	if err != nil {
		return zero, err
	}
	switch ptr.Kind {
	case PointerNull:
		return zero, nil
	case PointerInlineFollow:
		return decode(ctx)
	case PointerAbsolute:
		prior := ctx.Stream.Pos()
		if err := ctx.Stream.Seek(int64(ptr.Off)); err != nil {
			return zero, err
		}
		v, err := decode(ctx)
		if serr := ctx.Stream.Seek(prior); serr != nil && err == nil {
			err = serr
		}
		return v, err
	default:
		return zero, newErr(KindBrokenInvariant, ctx.Stream.Pos(), "unreachable pointer kind %d", ptr.Kind)
	}
}
