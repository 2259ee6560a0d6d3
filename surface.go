package xfile

// XSurfaceVertexInfo holds the four vertex-count buckets that size the
// blend-weight and tension arrays; the formulas are exact arithmetic, not
// an approximation (§4.4, §8 P9). Unlike a flexible array, `verts_blend`
// and `tension_data` are each resolved through their own Ptr32 sentinel
// field — XSurfaceVertexInfoRaw is 16 bytes: 4 counts + 2 pointers
// (xmodel.rs XSurfaceVertexInfoRaw).
type XSurfaceVertexInfo struct {
	VertCounts   [4]int16
	BlendWeights []uint16
	Tension      []float32
}

func decodeXSurfaceVertexInfo(ctx *Context) (XSurfaceVertexInfo, error) {
	s := ctx.Stream
	var vc [4]int16
	for i := range vc {
		v, err := s.ReadI16()
		if err != nil {
			return XSurfaceVertexInfo{}, err
		}
		vc[i] = v
	}
	vertsBlendPtrRaw, err := s.ReadU32()
	if err != nil {
		return XSurfaceVertexInfo{}, err
	}
	tensionDataPtrRaw, err := s.ReadU32()
	if err != nil {
		return XSurfaceVertexInfo{}, err
	}

	blendLen := uint32(uint16(vc[0])) + 3*uint32(uint16(vc[1])) + 5*uint32(uint16(vc[2])) + 7*uint32(uint16(vc[3]))
	tensionLen := 12 * (uint32(uint16(vc[0])) + uint32(uint16(vc[1])) + uint32(uint16(vc[2])) + uint32(uint16(vc[3])))

	blendWeights, err := ReadArrayCountFirstU32(ctx, blendLen, vertsBlendPtrRaw, func(ctx *Context) (uint16, error) {
		return ctx.Stream.ReadU16()
	})
	if err != nil {
		return XSurfaceVertexInfo{}, err
	}
	tension, err := ReadArrayCountFirstU32(ctx, tensionLen, tensionDataPtrRaw, func(ctx *Context) (float32, error) {
		return ctx.Stream.ReadF32()
	})
	if err != nil {
		return XSurfaceVertexInfo{}, err
	}

	return XSurfaceVertexInfo{VertCounts: vc, BlendWeights: blendWeights, Tension: tension}, nil
}

// GfxColor is a packed RGBA byte color.
type GfxColor [4]uint8

// UnitVec is a packed-byte unit vector (normal/tangent), one component per
// axis plus a W/handedness byte.
type UnitVec [4]uint8

// GfxPackedVertex is one rigid/skinned vertex in compact GPU-upload form
// (GfxPackedVertexRaw, 32 bytes; xmodel.rs).
type GfxPackedVertex struct {
	XYZ          Vec3
	BinormalSign float32
	Color        GfxColor
	TexCoord     uint32
	Normal       UnitVec
	Tangent      UnitVec
}

func decodeGfxPackedVertex(ctx *Context) (GfxPackedVertex, error) {
	s := ctx.Stream
	xyz, err := readVec3(s)
	if err != nil {
		return GfxPackedVertex{}, err
	}
	binormalSign, err := s.ReadF32()
	if err != nil {
		return GfxPackedVertex{}, err
	}
	colorB, err := s.ReadExact(4)
	if err != nil {
		return GfxPackedVertex{}, err
	}
	var color GfxColor
	copy(color[:], colorB)
	texCoord, err := s.ReadU32()
	if err != nil {
		return GfxPackedVertex{}, err
	}
	normalB, err := s.ReadExact(4)
	if err != nil {
		return GfxPackedVertex{}, err
	}
	var normal UnitVec
	copy(normal[:], normalB)
	tangentB, err := s.ReadExact(4)
	if err != nil {
		return GfxPackedVertex{}, err
	}
	var tangent UnitVec
	copy(tangent[:], tangentB)
	return GfxPackedVertex{
		XYZ: xyz, BinormalSign: binormalSign, Color: color,
		TexCoord: texCoord, Normal: normal, Tangent: tangent,
	}, nil
}

// XSurfaceCollisionAabb is a 16-bit-quantized axis-aligned bounding box
// (XSurfaceCollisionAabb, 12 bytes).
type XSurfaceCollisionAabb struct {
	Mins [3]uint16
	Maxs [3]uint16
}

func decodeXSurfaceCollisionAabb(s *Stream) (XSurfaceCollisionAabb, error) {
	var a XSurfaceCollisionAabb
	for i := range a.Mins {
		v, err := s.ReadU16()
		if err != nil {
			return a, err
		}
		a.Mins[i] = v
	}
	for i := range a.Maxs {
		v, err := s.ReadU16()
		if err != nil {
			return a, err
		}
		a.Maxs[i] = v
	}
	return a, nil
}

// XSurfaceCollisionNode is one BVH node in a surface's collision tree
// (XSurfaceCollisionNodeRaw, 16 bytes).
type XSurfaceCollisionNode struct {
	Aabb           XSurfaceCollisionAabb
	ChildBeginIndex uint16
	ChildCount      uint16
}

func decodeXSurfaceCollisionNode(ctx *Context) (XSurfaceCollisionNode, error) {
	s := ctx.Stream
	aabb, err := decodeXSurfaceCollisionAabb(s)
	if err != nil {
		return XSurfaceCollisionNode{}, err
	}
	childBegin, err := s.ReadU16()
	if err != nil {
		return XSurfaceCollisionNode{}, err
	}
	childCount, err := s.ReadU16()
	if err != nil {
		return XSurfaceCollisionNode{}, err
	}
	return XSurfaceCollisionNode{Aabb: aabb, ChildBeginIndex: childBegin, ChildCount: childCount}, nil
}

// XSurfaceCollisionLeaf is one BVH leaf (XSurfaceCollisionLeafRaw, 2 bytes).
type XSurfaceCollisionLeaf struct {
	TriangleBeginIndex uint16
}

func decodeXSurfaceCollisionLeaf(ctx *Context) (XSurfaceCollisionLeaf, error) {
	v, err := ctx.Stream.ReadU16()
	return XSurfaceCollisionLeaf{TriangleBeginIndex: v}, err
}

// XSurfaceCollisionTree is a per-vertex-list BVH used for fast surface
// collision queries (XSurfaceCollisionTreeRaw, 40 bytes).
type XSurfaceCollisionTree struct {
	Trans Vec3
	Scale Vec3
	Nodes []XSurfaceCollisionNode
	Leafs []XSurfaceCollisionLeaf
}

func decodeXSurfaceCollisionTree(ctx *Context) (*XSurfaceCollisionTree, error) {
	s := ctx.Stream
	trans, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	scale, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	nodesCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	nodesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	leafsCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	leafsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	nodes, err := ReadArrayCountFirstU32(ctx, nodesCount, nodesPtrRaw, decodeXSurfaceCollisionNode)
	if err != nil {
		return nil, err
	}
	leafs, err := ReadArrayCountFirstU32(ctx, leafsCount, leafsPtrRaw, decodeXSurfaceCollisionLeaf)
	if err != nil {
		return nil, err
	}
	return &XSurfaceCollisionTree{Trans: trans, Scale: scale, Nodes: nodes, Leafs: leafs}, nil
}

// XRigidVertList groups a contiguous vertex/triangle range under one bone,
// with an optional collision BVH (XRigidVertListRaw, 12 bytes).
type XRigidVertList struct {
	BoneOffset    uint16
	VertCount     uint16
	TriOffset     uint16
	TriCount      uint16
	CollisionTree *XSurfaceCollisionTree
}

func decodeXRigidVertList(ctx *Context) (XRigidVertList, error) {
	s := ctx.Stream
	boneOffset, err := s.ReadU16()
	if err != nil {
		return XRigidVertList{}, err
	}
	vertCount, err := s.ReadU16()
	if err != nil {
		return XRigidVertList{}, err
	}
	triOffset, err := s.ReadU16()
	if err != nil {
		return XRigidVertList{}, err
	}
	triCount, err := s.ReadU16()
	if err != nil {
		return XRigidVertList{}, err
	}
	collTreePtrRaw, err := s.ReadU32()
	if err != nil {
		return XRigidVertList{}, err
	}
	collTree, err := WithPointer(ctx, collTreePtrRaw, decodeXSurfaceCollisionTree)
	if err != nil {
		return XRigidVertList{}, err
	}
	return XRigidVertList{
		BoneOffset: boneOffset, VertCount: vertCount, TriOffset: triOffset,
		TriCount: triCount, CollisionTree: collTree,
	}, nil
}

// XSurfaceFlags are the bitflags on XSurfaceRaw.flags; only two bits are
// ever set by the tool that produces FastFiles.
type XSurfaceFlags uint16

const (
	XSurfaceFlagSkinned  XSurfaceFlags = 0x02
	XSurfaceFlagDeformed XSurfaceFlags = 0x80
	xSurfaceFlagsKnown   XSurfaceFlags = XSurfaceFlagSkinned | XSurfaceFlagDeformed
)

// XSurface is one renderable mesh surface within a model LOD
// (XSurfaceRaw, 68 bytes; xmodel.rs). `vb0`/`index_buffer` are never
// serialized by the original writer (dead fields kept only for layout) and
// are never resolved here either.
type XSurface struct {
	TileMode      uint8
	VertListCount uint8
	Flags         XSurfaceFlags
	VertCount     uint16
	TriCount      uint16
	BaseTriIndex  uint16
	BaseVertIndex uint16
	TriIndices    []uint16
	VertexInfo    XSurfaceVertexInfo
	Verts0        []GfxPackedVertex
	VertList      []XRigidVertList
	PartBits      [5]int32
}

func decodeXSurface(ctx *Context) (*XSurface, error) {
	s := ctx.Stream
	tileMode, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	vertListCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	flagsRaw, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	if flagsRaw&^uint16(xSurfaceFlagsKnown) != 0 {
		return nil, newErr(KindBadBitflags, s.Pos(), "xsurface flags 0x%x", flagsRaw)
	}
	vertCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	triCount, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	baseTriIndex, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	baseVertIndex, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	triIndicesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	vertexInfo, err := decodeXSurfaceVertexInfo(ctx)
	if err != nil {
		return nil, err
	}
	verts0PtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // vb0, never serialized
		return nil, err
	}
	vertListPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU32(); err != nil { // index_buffer, never serialized
		return nil, err
	}
	var partBits [5]int32
	for i := range partBits {
		v, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		partBits[i] = v
	}

	verts0, err := ReadArrayCountFirstU32(ctx, uint32(vertCount), verts0PtrRaw, decodeGfxPackedVertex)
	if err != nil {
		return nil, err
	}
	vertList, err := ReadArrayCountFirstU32(ctx, uint32(vertListCount), vertListPtrRaw, decodeXRigidVertList)
	if err != nil {
		return nil, err
	}
	triIndices, err := ReadArrayCountFirstU32(ctx, uint32(triCount)*3, triIndicesPtrRaw, func(ctx *Context) (uint16, error) {
		return ctx.Stream.ReadU16()
	})
	if err != nil {
		return nil, err
	}

	return &XSurface{
		TileMode: tileMode, VertListCount: vertListCount, Flags: XSurfaceFlags(flagsRaw),
		VertCount: vertCount, TriCount: triCount, BaseTriIndex: baseTriIndex,
		BaseVertIndex: baseVertIndex, TriIndices: triIndices, VertexInfo: vertexInfo,
		Verts0: verts0, VertList: vertList, PartBits: partBits,
	}, nil
}
