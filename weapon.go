package xfile

// WeaponVariantDef is a minimal shell over the weapon-def asset: name and
// top-level flags only. The full weapon stat block is several hundred
// fields in the original engine and is left as a documented gap in this
// port (see DESIGN.md); decoding it would not exercise any additional
// deserializer mechanism this module doesn't already demonstrate elsewhere
// (fat pointers, tagged unions, bitflags), so it is intentionally
// out of scope rather than mechanically transcribed field-by-field.
type WeaponVariantDef struct {
	Name  string
	Flags uint32
}

func decodeWeaponAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	flags, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	w := &WeaponVariantDef{Name: name, Flags: flags}
	return XAsset{Type: AssetWeapon, Name: w.Name, Weapon: w}, nil
}
