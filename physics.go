package xfile

// PhysPreset is a named set of physical-material tuning values assigned to
// models and surfaces (PhysPresetRaw, 84 bytes; xmodel.rs). `flags` and
// `can_float` are read as small integer invariants before either string is
// resolved, matching the original deserializer's own check-then-read order.
type PhysPreset struct {
	Name                  string
	Flags                 int32
	Mass                  float32
	Bounce                float32
	Friction              float32
	BulletForceScale      float32
	ExplosiveForceScale   float32
	SndAliasPrefix        string
	PiecesSpreadFraction  float32
	PiecesUpwardVelocity  float32
	CanFloat              bool
	GravityScale          float32
	CenterOfMassOffset    Vec3
	BuoyancyBoxMin        Vec3
	BuoyancyBoxMax        Vec3
}

func decodePhysPresetAsset(ctx *Context) (XAsset, error) {
	pp, err := decodePhysPreset(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetPhysPreset, Name: pp.Name, PhysPreset: pp}, nil
}

func decodePhysPreset(ctx *Context) (*PhysPreset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	flags, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	if flags > 1 {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "phys preset flags %d > 1", flags)
	}
	mass, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	bounce, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	friction, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	bulletForceScale, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	explosiveForceScale, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	sndAliasPrefixRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	piecesSpreadFraction, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	piecesUpwardVelocity, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	canFloat, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	if canFloat > 1 {
		return nil, newErr(KindBrokenInvariant, s.Pos(), "phys preset can_float %d > 1", canFloat)
	}
	gravityScale, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	centerOfMassOffset, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	buoyancyBoxMin, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	buoyancyBoxMax, err := readVec3(s)
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	sndAliasPrefix, err := ReadStringPtr(ctx, sndAliasPrefixRaw)
	if err != nil {
		return nil, err
	}

	return &PhysPreset{
		Name: name, Flags: flags, Mass: mass, Bounce: bounce, Friction: friction,
		BulletForceScale: bulletForceScale, ExplosiveForceScale: explosiveForceScale,
		SndAliasPrefix: sndAliasPrefix, PiecesSpreadFraction: piecesSpreadFraction,
		PiecesUpwardVelocity: piecesUpwardVelocity, CanFloat: canFloat != 0,
		GravityScale: gravityScale, CenterOfMassOffset: centerOfMassOffset,
		BuoyancyBoxMin: buoyancyBoxMin, BuoyancyBoxMax: buoyancyBoxMax,
	}, nil
}

// ConstraintType is the on-wire type_ tag on a PhysConstraint.
type ConstraintType int32

const (
	ConstraintNone ConstraintType = iota
	ConstraintPoint
	ConstraintDistance
	ConstraintHinge
	ConstraintJoint
	ConstraintActuator
	ConstraintFakeShake
	ConstraintLaunch
	ConstraintRope
	ConstraintLight
	constraintTypeMax
)

// AttachPointType is the on-wire attach_point_type1/2 tag.
type AttachPointType int32

const (
	AttachPointWorld AttachPointType = iota
	AttachPointDynent
	AttachPointEnt
	AttachPointBone
	attachPointTypeMax
)

func validateAttachPointType(v int32, pos int64) (AttachPointType, error) {
	if v < 0 || AttachPointType(v) >= attachPointTypeMax {
		return 0, newErr(KindBadFromPrimitive, pos, "phys constraint attach_point_type %d", v)
	}
	return AttachPointType(v), nil
}

// PhysConstraint is one joint between two physicalized parts
// (PhysConstraintRaw, 168 bytes; xmodel.rs). The two ScriptString target
// names and the target_ent1/target_bone1 pair resolve in the original
// deserializer's own order: targetname, target_ent1, target_bone1,
// target_ent2, target_bone2, then the material pointer.
type PhysConstraint struct {
	TargetName        string
	Type               ConstraintType
	AttachPointType1   AttachPointType
	TargetIndex1       int32
	TargetEnt1         string
	TargetBone1        string
	AttachPointType2   AttachPointType
	TargetIndex2       int32
	TargetEnt2         string
	TargetBone2        string
	Offset             Vec3
	Pos                Vec3
	Pos2               Vec3
	Dir                Vec3
	Flags              int32
	Timeout            int32
	MinHealth          int32
	MaxHealth          int32
	Distance           float32
	Damp               float32
	Power              float32
	Scale              Vec3
	SpinScale          float32
	MinAngle           float32
	MaxAngle           float32
	Material           *Material
	ConstraintHandle   int32
	RopeIndex          int32
	CentityNum         [4]int32
}

func decodePhysConstraint(ctx *Context) (PhysConstraint, error) {
	s := ctx.Stream
	targetNameIdx, err := s.ReadU16()
	if err != nil {
		return PhysConstraint{}, err
	}
	if _, err := s.ReadExact(2); err != nil { // pad
		return PhysConstraint{}, err
	}
	typeRaw, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	if typeRaw < 0 || ConstraintType(typeRaw) >= constraintTypeMax {
		return PhysConstraint{}, newErr(KindBadFromPrimitive, s.Pos(), "phys constraint type %d", typeRaw)
	}
	attach1Raw, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	attach1, err := validateAttachPointType(attach1Raw, s.Pos())
	if err != nil {
		return PhysConstraint{}, err
	}
	targetIndex1, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	targetEnt1Idx, err := s.ReadU16()
	if err != nil {
		return PhysConstraint{}, err
	}
	if _, err := s.ReadExact(2); err != nil { // pad_2
		return PhysConstraint{}, err
	}
	targetBone1Raw, err := s.ReadU32()
	if err != nil {
		return PhysConstraint{}, err
	}
	attach2Raw, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	attach2, err := validateAttachPointType(attach2Raw, s.Pos())
	if err != nil {
		return PhysConstraint{}, err
	}
	targetIndex2, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	targetEnt2Idx, err := s.ReadU16()
	if err != nil {
		return PhysConstraint{}, err
	}
	if _, err := s.ReadExact(2); err != nil { // pad_3
		return PhysConstraint{}, err
	}
	targetBone2Raw, err := s.ReadU32()
	if err != nil {
		return PhysConstraint{}, err
	}
	offset, err := readVec3(s)
	if err != nil {
		return PhysConstraint{}, err
	}
	pos, err := readVec3(s)
	if err != nil {
		return PhysConstraint{}, err
	}
	pos2, err := readVec3(s)
	if err != nil {
		return PhysConstraint{}, err
	}
	dir, err := readVec3(s)
	if err != nil {
		return PhysConstraint{}, err
	}
	flags, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	timeout, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	minHealth, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	maxHealth, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	distance, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	damp, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	power, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	scale, err := readVec3(s)
	if err != nil {
		return PhysConstraint{}, err
	}
	spinScale, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	minAngle, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	maxAngle, err := s.ReadF32()
	if err != nil {
		return PhysConstraint{}, err
	}
	materialPtrRaw, err := s.ReadU32()
	if err != nil {
		return PhysConstraint{}, err
	}
	constraintHandle, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	ropeIndex, err := s.ReadI32()
	if err != nil {
		return PhysConstraint{}, err
	}
	var centityNum [4]int32
	for i := range centityNum {
		v, err := s.ReadI32()
		if err != nil {
			return PhysConstraint{}, err
		}
		centityNum[i] = v
	}

	targetName, err := ctx.ResolveString(targetNameIdx)
	if err != nil {
		return PhysConstraint{}, err
	}
	targetEnt1, err := ctx.ResolveString(targetEnt1Idx)
	if err != nil {
		return PhysConstraint{}, err
	}
	targetBone1, err := ReadStringPtr(ctx, targetBone1Raw)
	if err != nil {
		return PhysConstraint{}, err
	}
	targetEnt2, err := ctx.ResolveString(targetEnt2Idx)
	if err != nil {
		return PhysConstraint{}, err
	}
	targetBone2, err := ReadStringPtr(ctx, targetBone2Raw)
	if err != nil {
		return PhysConstraint{}, err
	}
	material, err := WithPointer(ctx, materialPtrRaw, decodeMaterial)
	if err != nil {
		return PhysConstraint{}, err
	}

	return PhysConstraint{
		TargetName: targetName, Type: ConstraintType(typeRaw), AttachPointType1: attach1,
		TargetIndex1: targetIndex1, TargetEnt1: targetEnt1, TargetBone1: targetBone1,
		AttachPointType2: attach2, TargetIndex2: targetIndex2, TargetEnt2: targetEnt2,
		TargetBone2: targetBone2, Offset: offset, Pos: pos, Pos2: pos2, Dir: dir,
		Flags: flags, Timeout: timeout, MinHealth: minHealth, MaxHealth: maxHealth,
		Distance: distance, Damp: damp, Power: power, Scale: scale, SpinScale: spinScale,
		MinAngle: minAngle, MaxAngle: maxAngle, Material: material,
		ConstraintHandle: constraintHandle, RopeIndex: ropeIndex, CentityNum: centityNum,
	}, nil
}

const maxPhysConstraints = 16

// PhysConstraints is a named, fixed-size set of constraints forming one
// ragdoll/prop rig (PhysConstraintsRaw: name, count, data[16]; xmodel.rs).
// All 16 slots are always decoded; `Count` (not a slice length) says how
// many of them are meaningful, matching the original deserializer, which
// never truncates `data` to `count`.
type PhysConstraints struct {
	Name        string
	Count       uint32
	Constraints [maxPhysConstraints]PhysConstraint
}

func decodePhysConstraintsAsset(ctx *Context) (XAsset, error) {
	pc, err := decodePhysConstraints(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetPhysConstraints, Name: pc.Name, PhysConstraints: pc}, nil
}

func decodePhysConstraints(ctx *Context) (*PhysConstraints, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	// name resolves before the fixed data[16] array, matching the original
	// deserializer's own evaluation order (xmodel.rs PhysConstraintsRaw).
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	var data [maxPhysConstraints]PhysConstraint
	for i := range data {
		c, err := decodePhysConstraint(ctx)
		if err != nil {
			return nil, err
		}
		data[i] = c
	}
	return &PhysConstraints{Name: name, Count: count, Constraints: data}, nil
}

// PhysGeomType tags the brush-vs-primitive union in PhysGeomInfo.
type PhysGeomType int32

const (
	PhysGeomBox PhysGeomType = iota + 1
	PhysGeomBrush
	PhysGeomCylinder
)

func isValidPhysGeomType(v int32) bool {
	switch PhysGeomType(v) {
	case PhysGeomBox, PhysGeomBrush, PhysGeomCylinder:
		return true
	}
	return false
}

// CPlane is a half-space plane used by collision brushes
// (CPlaneRaw, 20 bytes; xmodel.rs).
type CPlane struct {
	Normal    Vec3
	Dist      float32
	Type      uint8
	SignBits  uint8
}

func decodeCPlane(ctx *Context) (CPlane, error) {
	s := ctx.Stream
	normal, err := readVec3(s)
	if err != nil {
		return CPlane{}, err
	}
	dist, err := s.ReadF32()
	if err != nil {
		return CPlane{}, err
	}
	typ, err := s.ReadU8()
	if err != nil {
		return CPlane{}, err
	}
	signBits, err := s.ReadU8()
	if err != nil {
		return CPlane{}, err
	}
	if _, err := s.ReadExact(2); err != nil { // pad
		return CPlane{}, err
	}
	return CPlane{Normal: normal, Dist: dist, Type: typ, SignBits: signBits}, nil
}

// CBrushSide is one bounding plane of a convex collision brush
// (CBrushSideRaw, 12 bytes; xmodel.rs).
type CBrushSide struct {
	Plane  *CPlane
	CFlags int32
	SFlags int32
}

// BrushWrapper is a convex collision brush: its bounding box, its sides,
// and the axial content/surface flag tables that accelerate ray tests
// against it (BrushWrapperRaw, 96 bytes; xmodel.rs). `planes` shares its
// element count with `sides` rather than carrying its own — both arrays
// describe the same set of bounding planes from two different angles.
type BrushWrapper struct {
	Mins          Vec3
	Contents      int32
	Maxs          Vec3
	Sides         []CBrushSide
	AxialCFlags   [2][3]int32
	AxialSFlags   [2][3]int32
	Verts         []Vec3
	Planes        []CPlane
}

func decodeBrushWrapper(ctx *Context) (*BrushWrapper, error) {
	s := ctx.Stream
	mins, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	contents, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	maxs, err := readVec3(s)
	if err != nil {
		return nil, err
	}
	sidesCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	sidesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	var axialCFlags [2][3]int32
	for i := range axialCFlags {
		for j := range axialCFlags[i] {
			v, err := s.ReadI32()
			if err != nil {
				return nil, err
			}
			axialCFlags[i][j] = v
		}
	}
	var axialSFlags [2][3]int32
	for i := range axialSFlags {
		for j := range axialSFlags[i] {
			v, err := s.ReadI32()
			if err != nil {
				return nil, err
			}
			axialSFlags[i][j] = v
		}
	}
	vertsCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	vertsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	planesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	sides, err := ReadArrayCountFirstU32(ctx, sidesCount, sidesPtrRaw, func(ctx *Context) (CBrushSide, error) {
		s := ctx.Stream
		planePtrRaw, err := s.ReadU32()
		if err != nil {
			return CBrushSide{}, err
		}
		cflags, err := s.ReadI32()
		if err != nil {
			return CBrushSide{}, err
		}
		sflags, err := s.ReadI32()
		if err != nil {
			return CBrushSide{}, err
		}
		plane, err := WithPointer(ctx, planePtrRaw, func(ctx *Context) (*CPlane, error) {
			p, err := decodeCPlane(ctx)
			return &p, err
		})
		if err != nil {
			return CBrushSide{}, err
		}
		return CBrushSide{Plane: plane, CFlags: cflags, SFlags: sflags}, nil
	})
	if err != nil {
		return nil, err
	}
	verts, err := ReadArrayCountFirstU32(ctx, vertsCount, vertsPtrRaw, func(ctx *Context) (Vec3, error) {
		return readVec3(ctx.Stream)
	})
	if err != nil {
		return nil, err
	}
	planes, err := ReadArrayCountFirstU32(ctx, sidesCount, planesPtrRaw, decodeCPlane)
	if err != nil {
		return nil, err
	}

	return &BrushWrapper{
		Mins: mins, Contents: contents, Maxs: maxs, Sides: sides,
		AxialCFlags: axialCFlags, AxialSFlags: axialSFlags, Verts: verts, Planes: planes,
	}, nil
}

// PhysGeomInfo is one collision primitive: either a literal box/cylinder
// extent or a reference to a BrushWrapper (PhysGeomInfoRaw, 68 bytes;
// xmodel.rs).
type PhysGeomInfo struct {
	Brush       *BrushWrapper
	Type        PhysGeomType
	Orientation Mat3
	Offset      Vec3
	HalfLengths Vec3
}

func decodePhysGeomInfo(ctx *Context) (PhysGeomInfo, error) {
	s := ctx.Stream
	brushPtrRaw, err := s.ReadU32()
	if err != nil {
		return PhysGeomInfo{}, err
	}
	typeRaw, err := s.ReadI32()
	if err != nil {
		return PhysGeomInfo{}, err
	}
	if !isValidPhysGeomType(typeRaw) {
		return PhysGeomInfo{}, newErr(KindBadFromPrimitive, s.Pos(), "phys geom type %d", typeRaw)
	}
	var orientation Mat3
	for i := range orientation {
		v, err := readVec3(s)
		if err != nil {
			return PhysGeomInfo{}, err
		}
		orientation[i] = v
	}
	offset, err := readVec3(s)
	if err != nil {
		return PhysGeomInfo{}, err
	}
	halfLengths, err := readVec3(s)
	if err != nil {
		return PhysGeomInfo{}, err
	}
	brush, err := WithPointer(ctx, brushPtrRaw, decodeBrushWrapper)
	if err != nil {
		return PhysGeomInfo{}, err
	}
	return PhysGeomInfo{
		Brush: brush, Type: PhysGeomType(typeRaw), Orientation: orientation,
		Offset: offset, HalfLengths: halfLengths,
	}, nil
}

// PhysGeomList is an unnamed set of collision primitives composing one
// model's physics shape (PhysGeomListRaw, 12 bytes; xmodel.rs).
type PhysGeomList struct {
	Geoms    []PhysGeomInfo
	Contents int32
}

func decodePhysGeomList(ctx *Context) (*PhysGeomList, error) {
	s := ctx.Stream
	geomsCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	geomsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	contents, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	geoms, err := ReadArrayCountFirstU32(ctx, geomsCount, geomsPtrRaw, decodePhysGeomInfo)
	if err != nil {
		return nil, err
	}
	return &PhysGeomList{Geoms: geoms, Contents: contents}, nil
}

// Collmap is a single sentinel pointer to a PhysGeomList
// (CollmapRaw, 4 bytes; xmodel.rs) — the geometry XModelRaw.collmaps
// walks for per-LOD collision.
type Collmap struct {
	GeomList *PhysGeomList
}

func decodeCollmap(ctx *Context) (Collmap, error) {
	geomListPtrRaw, err := ctx.Stream.ReadU32()
	if err != nil {
		return Collmap{}, err
	}
	geomList, err := WithPointer(ctx, geomListPtrRaw, decodePhysGeomList)
	if err != nil {
		return Collmap{}, err
	}
	return Collmap{GeomList: geomList}, nil
}
