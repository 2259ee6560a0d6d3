package xfile

// FxElemVisualsKind tags the element-visuals union: a single handle, an
// array of handles, or an array of mark-visual pairs (decals). The arm is
// selected by this kind byte, read from the stream ahead of the payload;
// the element's elem type and visual count do not select it.
type FxElemVisualsKind uint8

const (
	FxVisualSingle FxElemVisualsKind = iota
	FxVisualArray
	FxVisualMarkPairArray
	fxElemVisualsKindMax
)

// FxMarkVisualPair is one decal mark/visual pair.
type FxMarkVisualPair struct {
	MarkMaterial   string
	VisualMaterial string
}

// FxElemVisuals is the tagged union over an element's visual payload.
type FxElemVisuals struct {
	Kind      FxElemVisualsKind
	Handle    string
	Handles   []string
	MarkPairs []FxMarkVisualPair
}

func decodeFxElemVisuals(ctx *Context) (FxElemVisuals, error) {
	s := ctx.Stream
	kindRaw, err := s.ReadU8()
	if err != nil {
		return FxElemVisuals{}, err
	}
	if FxElemVisualsKind(kindRaw) >= fxElemVisualsKindMax {
		return FxElemVisuals{}, newErr(KindBadFromPrimitive, s.Pos(), "fx elem visuals kind %d", kindRaw)
	}
	kind := FxElemVisualsKind(kindRaw)
	switch kind {
	case FxVisualSingle:
		handleRaw, err := s.ReadU32()
		if err != nil {
			return FxElemVisuals{}, err
		}
		handle, err := ReadStringPtr(ctx, handleRaw)
		return FxElemVisuals{Kind: kind, Handle: handle}, err
	case FxVisualArray:
		count, err := s.ReadU8()
		if err != nil {
			return FxElemVisuals{}, err
		}
		handles, err := ReadFlexArrayU16(ctx, uint16(count), func(ctx *Context) (string, error) {
			r, err := ctx.Stream.ReadU32()
			if err != nil {
				return "", err
			}
			return ReadStringPtr(ctx, r)
		})
		return FxElemVisuals{Kind: kind, Handles: handles}, err
	case FxVisualMarkPairArray:
		count, err := s.ReadU8()
		if err != nil {
			return FxElemVisuals{}, err
		}
		pairs, err := ReadFlexArrayU16(ctx, uint16(count), func(ctx *Context) (FxMarkVisualPair, error) {
			markRaw, err := ctx.Stream.ReadU32()
			if err != nil {
				return FxMarkVisualPair{}, err
			}
			visRaw, err := ctx.Stream.ReadU32()
			if err != nil {
				return FxMarkVisualPair{}, err
			}
			mark, err := ReadStringPtr(ctx, markRaw)
			if err != nil {
				return FxMarkVisualPair{}, err
			}
			vis, err := ReadStringPtr(ctx, visRaw)
			return FxMarkVisualPair{MarkMaterial: mark, VisualMaterial: vis}, err
		})
		return FxElemVisuals{Kind: kind, MarkPairs: pairs}, err
	default:
		return FxElemVisuals{}, newErr(KindBadFromPrimitive, s.Pos(), "fx elem visuals kind %d", kindRaw)
	}
}

// FxElemDef is one emitter definition within an effect.
type FxElemDef struct {
	ElemType uint8
	Visuals  FxElemVisuals
	SpawnRate float32
	Life      float32
}

func decodeFxElemDef(ctx *Context) (FxElemDef, error) {
	s := ctx.Stream
	elemType, err := s.ReadU8()
	if err != nil {
		return FxElemDef{}, err
	}
	spawnRate, err := s.ReadF32()
	if err != nil {
		return FxElemDef{}, err
	}
	life, err := s.ReadF32()
	if err != nil {
		return FxElemDef{}, err
	}
	visuals, err := decodeFxElemVisuals(ctx)
	if err != nil {
		return FxElemDef{}, err
	}
	return FxElemDef{ElemType: elemType, Visuals: visuals, SpawnRate: spawnRate, Life: life}, nil
}

// FxEffectDefFlags are the bitflags on FxEffectDefRaw.flags (fx.rs
// FxEffectDefFlags).
type FxEffectDefFlags uint8

const (
	FxEffectDefNeedsLighting  FxEffectDefFlags = 0x01
	FxEffectDefIsSeeThruDecal FxEffectDefFlags = 0x02
	fxEffectDefFlagsKnown     FxEffectDefFlags = FxEffectDefNeedsLighting | FxEffectDefIsSeeThruDecal
)

// FxEffectDef is the top-level particle/decal effect asset (FxEffectDefRaw,
// 60 bytes; fx.rs). `elem_defs` has no count field of its own — its length
// is the sum of the three elem_def_count_* fields.
type FxEffectDef struct {
	Name                 string
	Flags                FxEffectDefFlags
	EfPriority           uint8
	TotalSize            int32
	MsecLoopingLife      int32
	ElemDefCountLooping  int32
	ElemDefCountOneShot  int32
	ElemDefCountEmission int32
	ElemDefs             []FxElemDef
	BoundingBoxDim       Vec3
	BoundingSphere       Vec4
}

func decodeFxAsset(ctx *Context) (XAsset, error) {
	fx, err := decodeFxEffectDef(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetFx, Name: fx.Name, Fx: fx}, nil
}

func decodeFxEffectDef(ctx *Context) (*FxEffectDef, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	flagsRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if flagsRaw&^uint8(fxEffectDefFlagsKnown) != 0 {
		return nil, newErr(KindBadBitflags, s.Pos(), "fxeffectdef flags 0x%x", flagsRaw)
	}
	efPriority, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadExact(2); err != nil { // reserved
		return nil, err
	}
	totalSize, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	msecLoopingLife, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	elemDefCountLooping, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	elemDefCountOneShot, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	elemDefCountEmission, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	elemDefsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	boundingBoxDim, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	boundingSphere, err := readVec4(s)
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	elemDefCount := uint32(elemDefCountLooping) + uint32(elemDefCountOneShot) + uint32(elemDefCountEmission)
	elemDefs, err := ReadArrayCountFirstU32(ctx, elemDefCount, elemDefsPtrRaw, decodeFxElemDef)
	if err != nil {
		return nil, err
	}

	return &FxEffectDef{
		Name: name, Flags: FxEffectDefFlags(flagsRaw), EfPriority: efPriority,
		TotalSize: totalSize, MsecLoopingLife: msecLoopingLife,
		ElemDefCountLooping: elemDefCountLooping, ElemDefCountOneShot: elemDefCountOneShot,
		ElemDefCountEmission: elemDefCountEmission, ElemDefs: elemDefs,
		BoundingBoxDim: boundingBoxDim, BoundingSphere: boundingSphere,
	}, nil
}
