package xfile

const maxLods = 4

// XModelLodRampType is the on-wire lod_ramp_type tag.
type XModelLodRampType uint8

const (
	XModelLodRampRigid XModelLodRampType = iota
	XModelLodRampSkinned
	xModelLodRampCount
)

// DObjAnimMat is one bone's base animation matrix: rotation as a quaternion
// plus translation and a blend weight (DObjAnimMatRaw, 32 bytes; xmodel.rs).
type DObjAnimMat struct {
	Quat        Vec4
	Trans       Vec3
	TransWeight float32
}

func decodeDObjAnimMat(ctx *Context) (DObjAnimMat, error) {
	s := ctx.Stream
	quat, err := readVec4(s)
	if err != nil {
		return DObjAnimMat{}, err
	}
	trans, err := readVec3(s)
	if err != nil {
		return DObjAnimMat{}, err
	}
	transWeight, err := s.ReadF32()
	if err != nil {
		return DObjAnimMat{}, err
	}
	return DObjAnimMat{Quat: quat, Trans: trans, TransWeight: transWeight}, nil
}

// XModelLodInfo describes one level of detail's surface range and
// streaming allocation (XModelLodInfoRaw, 32 bytes; xmodel.rs). `lod` and
// `smc_alloc_bits` both carry invariants enforced at decode time.
type XModelLodInfo struct {
	Dist            float32
	NumSurfs        uint16
	SurfIndex       uint16
	PartBits        [5]int32
	Lod             uint8
	SmcIndexPlusOne uint8
	SmcAllocBits    uint8
}

func decodeXModelLodInfo(ctx *Context) (XModelLodInfo, error) {
	s := ctx.Stream
	dist, err := s.ReadF32()
	if err != nil {
		return XModelLodInfo{}, err
	}
	numSurfs, err := s.ReadU16()
	if err != nil {
		return XModelLodInfo{}, err
	}
	surfIndex, err := s.ReadU16()
	if err != nil {
		return XModelLodInfo{}, err
	}
	var partBits [5]int32
	for i := range partBits {
		v, err := s.ReadI32()
		if err != nil {
			return XModelLodInfo{}, err
		}
		partBits[i] = v
	}
	lod, err := s.ReadU8()
	if err != nil {
		return XModelLodInfo{}, err
	}
	if lod > maxLods {
		return XModelLodInfo{}, newErr(KindBrokenInvariant, s.Pos(), "xmodel lod info lod %d > %d", lod, maxLods)
	}
	smcIndexPlusOne, err := s.ReadU8()
	if err != nil {
		return XModelLodInfo{}, err
	}
	smcAllocBits, err := s.ReadU8()
	if err != nil {
		return XModelLodInfo{}, err
	}
	if smcAllocBits != 0 && (smcAllocBits < 4 || smcAllocBits > 9) {
		return XModelLodInfo{}, newErr(KindBrokenInvariant, s.Pos(), "xmodel lod info smc_alloc_bits %d != 0, 4..=9", smcAllocBits)
	}
	if _, err := s.ReadExact(1); err != nil { // unused
		return XModelLodInfo{}, err
	}
	return XModelLodInfo{
		Dist: dist, NumSurfs: numSurfs, SurfIndex: surfIndex, PartBits: partBits,
		Lod: lod, SmcIndexPlusOne: smcIndexPlusOne, SmcAllocBits: smcAllocBits,
	}, nil
}

// XModelCollTri is one collision triangle stored as plane/edge vectors
// (XModelCollTriRaw, 48 bytes; xmodel.rs).
type XModelCollTri struct {
	Plane Vec4
	SVec  Vec4
	TVec  Vec4
}

func decodeXModelCollTri(ctx *Context) (XModelCollTri, error) {
	s := ctx.Stream
	plane, err := readVec4(s)
	if err != nil {
		return XModelCollTri{}, err
	}
	svec, err := readVec4(s)
	if err != nil {
		return XModelCollTri{}, err
	}
	tvec, err := readVec4(s)
	if err != nil {
		return XModelCollTri{}, err
	}
	return XModelCollTri{Plane: plane, SVec: svec, TVec: tvec}, nil
}

// XModelCollSurf is one collision surface: its owned triangles, bounding
// box, and bone binding (XModelCollSurfRaw, 44 bytes; xmodel.rs).
type XModelCollSurf struct {
	CollTris  []XModelCollTri
	Mins      Vec3
	Maxs      Vec3
	BoneIdx   int32
	Contents  int32
	SurfFlags int32
}

func decodeXModelCollSurf(ctx *Context) (XModelCollSurf, error) {
	s := ctx.Stream
	collTrisPtrRaw, err := s.ReadU32()
	if err != nil {
		return XModelCollSurf{}, err
	}
	collTrisCount, err := s.ReadU32()
	if err != nil {
		return XModelCollSurf{}, err
	}
	mins, err := readVec3(s)
	if err != nil {
		return XModelCollSurf{}, err
	}
	maxs, err := readVec3(s)
	if err != nil {
		return XModelCollSurf{}, err
	}
	boneIdx, err := s.ReadI32()
	if err != nil {
		return XModelCollSurf{}, err
	}
	contents, err := s.ReadI32()
	if err != nil {
		return XModelCollSurf{}, err
	}
	surfFlags, err := s.ReadI32()
	if err != nil {
		return XModelCollSurf{}, err
	}
	collTris, err := ReadArrayCountLastU32(ctx, collTrisPtrRaw, collTrisCount, decodeXModelCollTri)
	if err != nil {
		return XModelCollSurf{}, err
	}
	return XModelCollSurf{
		CollTris: collTris, Mins: mins, Maxs: maxs, BoneIdx: boneIdx,
		Contents: contents, SurfFlags: surfFlags,
	}, nil
}

// XBoneInfo is one bone's local bounding box and collision-map binding
// (XBoneInfoRaw, 44 bytes; xmodel.rs).
type XBoneInfo struct {
	Bounds        [2]Vec3
	Offset        Vec3
	RadiusSquared float32
	Collmap       uint8
}

func decodeXBoneInfo(ctx *Context) (XBoneInfo, error) {
	s := ctx.Stream
	var bounds [2]Vec3
	for i := range bounds {
		v, err := readVec3(s)
		if err != nil {
			return XBoneInfo{}, err
		}
		bounds[i] = v
	}
	offset, err := readVec3(s)
	if err != nil {
		return XBoneInfo{}, err
	}
	radiusSquared, err := s.ReadF32()
	if err != nil {
		return XBoneInfo{}, err
	}
	collmap, err := s.ReadU8()
	if err != nil {
		return XBoneInfo{}, err
	}
	if _, err := s.ReadExact(3); err != nil { // pad
		return XBoneInfo{}, err
	}
	return XBoneInfo{Bounds: bounds, Offset: offset, RadiusSquared: radiusSquared, Collmap: collmap}, nil
}

// XModelHighMipBounds bounds the region a model's top mip level covers, used
// to decide when to stream in higher-detail textures
// (XModelHighMipBoundsRaw, 16 bytes; xmodel.rs).
type XModelHighMipBounds struct {
	Center        Vec3
	HimipRadiusSq float32
}

func decodeXModelHighMipBounds(ctx *Context) (XModelHighMipBounds, error) {
	s := ctx.Stream
	center, err := readVec3(s)
	if err != nil {
		return XModelHighMipBounds{}, err
	}
	himipRadiusSq, err := s.ReadF32()
	if err != nil {
		return XModelHighMipBounds{}, err
	}
	return XModelHighMipBounds{Center: center, HimipRadiusSq: himipRadiusSq}, nil
}

// XModelStreamInfo is a single sentinel pointer to a per-surface array of
// high-mip bounds (XModelStreamInfoRaw, 4 bytes; xmodel.rs). Unlike the
// model's other arrays, its length isn't stored in the struct itself — it's
// the model's own numsurfs, passed in by the caller.
type XModelStreamInfo struct {
	HighMipBounds []XModelHighMipBounds
}

// decodeXModelStreamInfo resolves the sentinel pointer already read as part
// of the parent XModelRaw into its per-surface bounds array.
func decodeXModelStreamInfo(ctx *Context, ptrRaw uint32, numSurfs uint8) (XModelStreamInfo, error) {
	bounds, err := ReadArrayCountFirstU32(ctx, uint32(numSurfs), ptrRaw, decodeXModelHighMipBounds)
	if err != nil {
		return XModelStreamInfo{}, err
	}
	return XModelStreamInfo{HighMipBounds: bounds}, nil
}

// XModel is the cooked form of a skinned/rigid model asset (XModelRaw, 252
// bytes; xmodel.rs). Every field is decoded in the original deserializer's
// own order: name, then the per-bone arrays sized by num_bones/
// num_root_bones, then surfaces and their materials, then the fixed
// lod_info table, then collision and physics data.
type XModel struct {
	Name                  string
	NumBones              uint8
	NumRootBones          uint8
	NumSurfs              uint8
	LodRampType           XModelLodRampType
	BoneNames             []string
	ParentList            []uint8
	Quats                 []int16
	Trans                 []float32
	PartClassification    []uint8
	BaseMat               []DObjAnimMat
	Surfs                 []*XSurface
	MaterialHandles       []*Material
	LodInfo               [maxLods]XModelLodInfo
	LoadDistAutoGenerated bool
	CollSurfs             []XModelCollSurf
	Contents              int32
	BoneInfo              []XBoneInfo
	Radius                float32
	Mins                  Vec3
	Maxs                  Vec3
	NumLods               int16
	CollLod               int16
	StreamInfo            XModelStreamInfo
	MemUsage              int32
	Flags                 int32
	Bad                   bool
	PhysPreset            *PhysPreset
	Collmaps              []Collmap
	PhysConstraints       *PhysConstraints
}

func decodeXModelAsset(ctx *Context) (XAsset, error) {
	m, err := decodeXModel(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetXModel, Name: m.Name, XModel: m}, nil
}

// decodeXModel implements the XModel contract from §4.4: read the raw
// struct's fixed header, then walk every sentinel pointer and fixed-size
// sub-array in exactly the order the original deserializer does, enforcing
// P8 along the way (num_bones >= num_root_bones; lod_ramp_type < COUNT;
// each lod_info.lod <= MAX_LODS and smc_alloc_bits in {0} ∪ [4,9];
// num_lods/coll_lod <= MAX_LODS).
func decodeXModel(ctx *Context) (*XModel, error) {
	s := ctx.Stream

	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	numBones, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	numRootBones, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	numSurfs, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	lodRampTypeRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	boneNamesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	parentListPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	quatsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	transPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	partClassificationPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	baseMatPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	surfsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	materialHandlesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	// lod_info is a fixed inline array of four entries, not behind a
	// pointer.
	var lodInfo [maxLods]XModelLodInfo
	for i := range lodInfo {
		li, err := decodeXModelLodInfo(ctx)
		if err != nil {
			return nil, err
		}
		lodInfo[i] = li
	}

	loadDistAutoGenerated, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadExact(3); err != nil { // pad
		return nil, err
	}
	collSurfsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	collSurfsCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	contents, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	boneInfoPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	radius, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	mins, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	maxs, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	numLods, err := s.ReadI16()
	if err != nil {
		return nil, err
	}
	collLod, err := s.ReadI16()
	if err != nil {
		return nil, err
	}
	streamInfoPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	memUsage, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	flags, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	badRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadExact(3); err != nil { // pad_2
		return nil, err
	}
	physPresetPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	collmapsCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	collmapsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	physConstraintsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	if numBones < numRootBones {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "xmodel num_bones (%d) < num_root_bones (%d)", numBones, numRootBones)
	}
	if XModelLodRampType(lodRampTypeRaw) >= xModelLodRampCount {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "xmodel lod_ramp_type (%d) >= COUNT", lodRampTypeRaw)
	}
	if numLods > maxLods {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "xmodel num_lods (%d) > %d", numLods, maxLods)
	}
	if collLod > maxLods {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "xmodel coll_lod (%d) > %d", collLod, maxLods)
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}

	boneNames, err := WithPointer(ctx, boneNamesPtrRaw, func(ctx *Context) ([]string, error) {
		return ReadFlexArrayU32(ctx, uint32(numBones), func(ctx *Context) (string, error) {
			idx, err := ctx.Stream.ReadU16()
			if err != nil {
				return "", err
			}
			return ctx.ResolveString(idx)
		})
	})
	if err != nil {
		return nil, err
	}

	nonRootBones := uint32(numBones) - uint32(numRootBones)
	parentList, err := ReadArrayCountFirstU32(ctx, nonRootBones, parentListPtrRaw, func(ctx *Context) (uint8, error) {
		return ctx.Stream.ReadU8()
	})
	if err != nil {
		return nil, err
	}
	quats, err := ReadArrayCountFirstU32(ctx, nonRootBones*4, quatsPtrRaw, func(ctx *Context) (int16, error) {
		return ctx.Stream.ReadI16()
	})
	if err != nil {
		return nil, err
	}
	trans, err := ReadArrayCountFirstU32(ctx, nonRootBones*4, transPtrRaw, func(ctx *Context) (float32, error) {
		return ctx.Stream.ReadF32()
	})
	if err != nil {
		return nil, err
	}
	partClassification, err := ReadArrayCountFirstU32(ctx, uint32(numBones), partClassificationPtrRaw, func(ctx *Context) (uint8, error) {
		return ctx.Stream.ReadU8()
	})
	if err != nil {
		return nil, err
	}
	baseMat, err := ReadArrayCountFirstU32(ctx, uint32(numBones), baseMatPtrRaw, decodeDObjAnimMat)
	if err != nil {
		return nil, err
	}
	surfs, err := ReadArrayCountFirstU32(ctx, uint32(numSurfs), surfsPtrRaw, func(ctx *Context) (*XSurface, error) {
		return decodeXSurface(ctx)
	})
	if err != nil {
		return nil, err
	}

	// material_handles is an array of numsurfs sentinel pointers, each
	// independently nullable; null entries are dropped rather than kept
	// as nil, matching the original's Option<Box<Material>>...flatten().
	materialHandlesRaw, err := ReadArrayCountFirstU32(ctx, uint32(numSurfs), materialHandlesPtrRaw, func(ctx *Context) (*Material, error) {
		matPtrRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return nil, err
		}
		return WithPointer(ctx, matPtrRaw, decodeMaterial)
	})
	if err != nil {
		return nil, err
	}
	materialHandles := make([]*Material, 0, len(materialHandlesRaw))
	for _, m := range materialHandlesRaw {
		if m != nil {
			materialHandles = append(materialHandles, m)
		}
	}

	collSurfs, err := ReadArrayCountLastU32(ctx, collSurfsPtrRaw, collSurfsCount, decodeXModelCollSurf)
	if err != nil {
		return nil, err
	}
	boneInfo, err := ReadArrayCountFirstU32(ctx, uint32(numBones), boneInfoPtrRaw, decodeXBoneInfo)
	if err != nil {
		return nil, err
	}
	streamInfo, err := decodeXModelStreamInfo(ctx, streamInfoPtrRaw, numSurfs)
	if err != nil {
		return nil, err
	}
	physPreset, err := WithPointer(ctx, physPresetPtrRaw, decodePhysPreset)
	if err != nil {
		return nil, err
	}
	collmaps, err := ReadArrayCountFirstU32(ctx, collmapsCount, collmapsPtrRaw, decodeCollmap)
	if err != nil {
		return nil, err
	}
	physConstraints, err := WithPointer(ctx, physConstraintsPtrRaw, decodePhysConstraints)
	if err != nil {
		return nil, err
	}

	return &XModel{
		Name: name, NumBones: numBones, NumRootBones: numRootBones, NumSurfs: numSurfs,
		LodRampType: XModelLodRampType(lodRampTypeRaw), BoneNames: boneNames,
		ParentList: parentList, Quats: quats, Trans: trans, PartClassification: partClassification,
		BaseMat: baseMat, Surfs: surfs, MaterialHandles: materialHandles, LodInfo: lodInfo,
		LoadDistAutoGenerated: loadDistAutoGenerated != 0, CollSurfs: collSurfs, Contents: contents,
		BoneInfo: boneInfo, Radius: radius, Mins: mins, Maxs: maxs, NumLods: numLods,
		CollLod: collLod, StreamInfo: streamInfo, MemUsage: memUsage, Flags: flags,
		Bad: badRaw != 0, PhysPreset: physPreset, Collmaps: collmaps, PhysConstraints: physConstraints,
	}, nil
}
