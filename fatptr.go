package xfile

// This file implements the four canonical fat-pointer / flex-array idioms
// from §3(c) and §4.4 as generic readers, parametrized over a per-element
// decode function. The teacher's struct-unpack style (structUnpack in
// helper.go) reads one fixed layout at a time; here each element itself may
// recursively resolve further sentinel pointers, so the element decoder is
// a callback rather than a reflection-driven unpack.

// ReadArrayCountFirstU32 decodes `(u32 count, sentinel ptr to T[count])`:
// the count precedes the pointer field in the raw struct.
func ReadArrayCountFirstU32[T any](ctx *Context, count uint32, ptrRaw uint32, decode func(*Context) (T, error)) ([]T, error) {
	return WithPointer(ctx, ptrRaw, func(ctx *Context) ([]T, error) {
		return readN(ctx, count, decode)
	})
}

// ReadArrayCountLastU32 decodes `(sentinel ptr to T[count], u32 count)`:
// the pointer field precedes the count in the raw struct, but the count is
// still known by the time the pointee is resolved (callers read the count
// field first regardless of on-disk order, since raw structs are read
// whole before any pointer is walked).
func ReadArrayCountLastU32[T any](ctx *Context, ptrRaw uint32, count uint32, decode func(*Context) (T, error)) ([]T, error) {
	return ReadArrayCountFirstU32(ctx, count, ptrRaw, decode)
}

// ReadArrayCountLastU8 is ReadArrayCountLastU32 with an 8-bit count, used
// for small polygon-vertex lists.
func ReadArrayCountLastU8[T any](ctx *Context, ptrRaw uint32, count uint8, decode func(*Context) (T, error)) ([]T, error) {
	return ReadArrayCountFirstU32(ctx, uint32(count), ptrRaw, decode)
}

// ReadFlexArrayU16 decodes an inline flexible array: a u16 count read by
// the caller, followed immediately by count elements with no pointer
// indirection at all.
func ReadFlexArrayU16[T any](ctx *Context, count uint16, decode func(*Context) (T, error)) ([]T, error) {
	return readN(ctx, uint32(count), decode)
}

// ReadFlexArrayU32 is ReadFlexArrayU16 with a 32-bit count.
func ReadFlexArrayU32[T any](ctx *Context, count uint32, decode func(*Context) (T, error)) ([]T, error) {
	return readN(ctx, count, decode)
}

func readN[T any](ctx *Context, count uint32, decode func(*Context) (T, error)) ([]T, error) {
	out := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := decode(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadStringPtr decodes a fat pointer to a single NUL-terminated C string
// (used for the script-string table itself and for bare name fields).
func ReadStringPtr(ctx *Context, ptrRaw uint32) (string, error) {
	return WithPointer(ctx, ptrRaw, func(ctx *Context) (string, error) {
		return ctx.Stream.ReadCString()
	})
}
