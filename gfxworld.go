package xfile

// GfxWorld is the largest single asset: a ~1KB header plus 50+ nested
// arrays (DPVS static/dynamic visibility, portals, lightmaps, occluders,
// hero lights). This port implements the header and the two arrays whose
// lengths are load-bearing derived formulas (§4.4); the remaining DPVS
// sub-arrays are out of scope for this port (see DESIGN.md).
type GfxWorld struct {
	Name                 string
	CellCount            uint32
	PrimaryLightCount     uint32
	SunPrimaryLightIndex  uint32

	// CellCasterBits has length ((cell_count+31)>>5) * cell_count.
	CellCasterBits []uint32
	// ShadowVis has length (primary_light_count - sun_primary_light_index + 1) * 8192.
	ShadowVis []uint8
}

func decodeGfxWorldAsset(ctx *Context) (XAsset, error) {
	w, err := decodeGfxWorld(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetGfxWorld, Name: w.Name, GfxWorld: w}, nil
}

func decodeGfxWorld(ctx *Context) (*GfxWorld, error) {
	s := ctx.Stream

	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	cellCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	primaryLightCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	sunPrimaryLightIndex, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	if sunPrimaryLightIndex > primaryLightCount {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "gfxworld: sun_primary_light_index (%d) > primary_light_count (%d)", sunPrimaryLightIndex, primaryLightCount)
	}

	casterBitsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	shadowVisPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	casterBitsLen := ((cellCount + 31) >> 5) * cellCount
	shadowVisLen := (primaryLightCount - sunPrimaryLightIndex + 1) * 8192

	casterBits, err := ReadArrayCountFirstU32(ctx, casterBitsLen, casterBitsPtrRaw, func(ctx *Context) (uint32, error) {
		return ctx.Stream.ReadU32()
	})
	if err != nil {
		return nil, err
	}
	shadowVis, err := ReadArrayCountFirstU32(ctx, shadowVisLen, shadowVisPtrRaw, func(ctx *Context) (uint8, error) {
		return ctx.Stream.ReadU8()
	})
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}

	return &GfxWorld{
		Name:                 name,
		CellCount:            cellCount,
		PrimaryLightCount:    primaryLightCount,
		SunPrimaryLightIndex: sunPrimaryLightIndex,
		CellCasterBits:       casterBits,
		ShadowVis:            shadowVis,
	}, nil
}
