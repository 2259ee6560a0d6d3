package xfile

// readScriptStringTable decodes the per-file script-string table once,
// from the AssetList's `strings` fat pointer: a count-first-u32 array of
// sentinel pointers, each to a NUL-terminated C string (§4.3, §6).
// Index 0 is the empty string by convention.
func readScriptStringTable(ctx *Context, count uint32, ptrRaw uint32) ([]string, error) {
	strs, err := ReadArrayCountFirstU32(ctx, count, ptrRaw, func(ctx *Context) (string, error) {
		r, err := ctx.Stream.ReadU32()
		if err != nil {
			return "", err
		}
		return ReadStringPtr(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return strs, nil
}
