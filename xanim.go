package xfile

// XAnimParts is an animation clip. Bone counts partition into ten "parts"
// (the engine's grouping of bones by blend category); the compressed
// keyframe stream's index width is picked by the frame count and its
// translation encoding by the small_trans flag, rather than stored
// directly (§4.4).
type XAnimParts struct {
	Name           string
	Framerate      float32
	Frequency      float32
	NumFrames      uint16
	PartBoneCounts [10]uint8
	SmallTrans     bool
	IndexBytes     int // 1 if NumFrames < 256, else 2 (u8 vs u16 keyframe index)
	Translations   []Vec3
	DeltaQuats     []Vec4 // len 1 if NumFrames == 0 (frame-0 pair only), else NumFrames
}

func decodeXAnimPartsAsset(ctx *Context) (XAsset, error) {
	a, err := decodeXAnimParts(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetXAnimParts, Name: a.Name, XAnimParts: a}, nil
}

func decodeXAnimParts(ctx *Context) (*XAnimParts, error) {
	s := ctx.Stream

	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	framerate, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	frequency, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	numFrames, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	flags, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	const flagSmallTrans = 0x1
	if flags&^flagSmallTrans != 0 {
		return nil, newErr(KindBadBitflags, s.Pos(), "xanimparts flags 0x%x", flags)
	}
	smallTrans := flags&flagSmallTrans != 0

	var partBoneCounts [10]uint8
	for i := range partBoneCounts {
		b, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		partBoneCounts[i] = b
	}

	indexBytes := 2
	if numFrames < 256 {
		indexBytes = 1
	}

	totalBones := uint32(0)
	for _, c := range partBoneCounts {
		totalBones += uint32(c)
	}

	translationsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	translations, err := WithPointer(ctx, translationsPtrRaw, func(ctx *Context) ([]Vec3, error) {
		return ReadFlexArrayU32(ctx, totalBones, func(ctx *Context) (Vec3, error) {
			if smallTrans {
				var v Vec3
				for i := range v {
					b, err := ctx.Stream.ReadI8()
					if err != nil {
						return v, err
					}
					v[i] = float32(b)
				}
				return v, nil
			}
			return readVec3(ctx.Stream)
		})
	})
	if err != nil {
		return nil, err
	}

	deltaQuatsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	quatCount := uint32(numFrames)
	if numFrames == 0 {
		quatCount = 1 // frame-0 pair only
	}
	deltaQuats, err := WithPointer(ctx, deltaQuatsPtrRaw, func(ctx *Context) ([]Vec4, error) {
		return ReadFlexArrayU32(ctx, quatCount, func(ctx *Context) (Vec4, error) {
			return readVec4(ctx.Stream)
		})
	})
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}

	return &XAnimParts{
		Name:           name,
		Framerate:      framerate,
		Frequency:      frequency,
		NumFrames:      numFrames,
		PartBoneCounts: partBoneCounts,
		SmallTrans:     smallTrans,
		IndexBytes:     indexBytes,
		Translations:   translations,
		DeltaQuats:     deltaQuats,
	}, nil
}
