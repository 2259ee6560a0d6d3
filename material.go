package xfile

// MtlArg is the on-wire arg_type tag on a shader argument (§4.4;
// techset.rs MtlArg). Contiguous 0..=7, so a bound check suffices.
type MtlArg uint8

const (
	MtlArgMaterialVertexConst MtlArg = iota
	MtlArgLiteralVertexConst
	MtlArgMaterialPixelSampler
	MtlArgCodeVertexConst
	MtlArgCodePixelSampler
	MtlArgCodePixelConst
	MtlArgMaterialPrimEnd
	MtlArgLiteralPixelConst
	mtlArgMax
)

// MaterialArgumentCodeConst unpacks the raw u32 payload for a code-const
// argument: a constant-table index plus a row range, bit-cast (not read
// from the stream) rather than resolved through a pointer.
type MaterialArgumentCodeConst struct {
	Index     uint16
	FirstRow  uint8
	RowCount  uint8
}

func materialArgumentCodeConstFromU32(u uint32) MaterialArgumentCodeConst {
	return MaterialArgumentCodeConst{
		Index:    uint16(u & 0xFFFF),
		FirstRow: uint8((u >> 16) & 0xFF),
		RowCount: uint8((u >> 24) & 0xFF),
	}
}

// ShaderArg is a tagged union over the shader-argument payload kinds
// (MaterialShaderArgumentRaw, 8 bytes; §4.4), grounded on techset.rs's
// MaterialShaderArgumentRaw/MaterialArgumentDef.
type ShaderArg struct {
	ArgType      MtlArg
	Dest         uint16
	LiteralConst float32
	CodeConst    MaterialArgumentCodeConst
	CodeSampler  uint32
	NameHash     uint32
}

// decodeShaderArg reads the fixed 8-byte MaterialShaderArgumentRaw, then,
// only for the two literal-const kinds, an extra trailing f32 that the raw
// `u` field is just a placeholder for (the original writer stores an
// "unreal" pointer there and appends the real value right after).
func decodeShaderArg(s *Stream) (ShaderArg, error) {
	argTypeRaw, err := s.ReadU16()
	if err != nil {
		return ShaderArg{}, err
	}
	if MtlArg(argTypeRaw) >= mtlArgMax {
		return ShaderArg{}, newErr(KindBrokenInvariant, s.Pos(), "material shader arg arg_type %d > 7", argTypeRaw)
	}
	argType := MtlArg(argTypeRaw)
	dest, err := s.ReadU16()
	if err != nil {
		return ShaderArg{}, err
	}
	u, err := s.ReadU32()
	if err != nil {
		return ShaderArg{}, err
	}
	arg := ShaderArg{ArgType: argType, Dest: dest}
	switch argType {
	case MtlArgLiteralPixelConst, MtlArgLiteralVertexConst:
		v, err := s.ReadF32()
		if err != nil {
			return ShaderArg{}, err
		}
		arg.LiteralConst = v
	case MtlArgCodePixelConst, MtlArgCodeVertexConst:
		arg.CodeConst = materialArgumentCodeConstFromU32(u)
	case MtlArgCodePixelSampler:
		arg.CodeSampler = u
	case MtlArgMaterialVertexConst, MtlArgMaterialPixelSampler, MtlArgMaterialPrimEnd:
		arg.NameHash = u
	}
	return arg, nil
}

// MaterialPass is one render pass within a technique (MaterialPassRaw, 20
// bytes): three shader-stage references plus a flat argument list whose
// length is the sum of three on-disk sub-counts, gated by a non-null `args`
// flag that is not itself a pointer or count (techset.rs MaterialPassRaw).
type MaterialPass struct {
	VertexDecl   uint32
	VertexShader uint32
	PixelShader  uint32
	Args         []ShaderArg
}

func decodeMaterialPass(ctx *Context) (MaterialPass, error) {
	s := ctx.Stream
	vertexDecl, err := s.ReadU32()
	if err != nil {
		return MaterialPass{}, err
	}
	vertexShader, err := s.ReadU32()
	if err != nil {
		return MaterialPass{}, err
	}
	pixelShader, err := s.ReadU32()
	if err != nil {
		return MaterialPass{}, err
	}
	perPrim, err := s.ReadU8()
	if err != nil {
		return MaterialPass{}, err
	}
	perObj, err := s.ReadU8()
	if err != nil {
		return MaterialPass{}, err
	}
	stable, err := s.ReadU8()
	if err != nil {
		return MaterialPass{}, err
	}
	if _, err := s.ReadU8(); err != nil { // custom_sampler_flags
		return MaterialPass{}, err
	}
	argsGate, err := s.ReadU32()
	if err != nil {
		return MaterialPass{}, err
	}

	pass := MaterialPass{VertexDecl: vertexDecl, VertexShader: vertexShader, PixelShader: pixelShader}
	if argsGate != 0 {
		total := uint32(perPrim) + uint32(perObj) + uint32(stable)
		args, err := readN(ctx, total, func(ctx *Context) (ShaderArg, error) {
			return decodeShaderArg(ctx.Stream)
		})
		if err != nil {
			return MaterialPass{}, err
		}
		pass.Args = args
	}
	return pass, nil
}

// MaterialTechnique is an ordered list of passes for one render technique
// (MaterialTechniqueRaw, 8 bytes). `passes` is a flexible array and is part
// of the struct itself, so the original deserializer resolves it before
// `name` — the reverse of declared field order.
type MaterialTechnique struct {
	Name   string
	Flags  uint16
	Passes []MaterialPass
}

func decodeMaterialTechnique(ctx *Context) (*MaterialTechnique, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	flags, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	numPasses, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	passes, err := ReadFlexArrayU16(ctx, numPasses, decodeMaterialPass)
	if err != nil {
		return nil, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	return &MaterialTechnique{Name: name, Flags: flags, Passes: passes}, nil
}

const maxTechniques = 130

// MaterialTechniqueSet holds up to 130 techniques bound to a material, one
// per render-pass category (MaterialTechniqueSetRaw, 528 bytes).
type MaterialTechniqueSet struct {
	Name             string
	WorldVertFormat  uint8
	TechsetFlags     uint16
	Techniques       [maxTechniques]*MaterialTechnique // nil entries are unused slots
}

func decodeTechniqueSetAsset(ctx *Context) (XAsset, error) {
	ts, err := decodeMaterialTechniqueSet(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetTechniqueSet, Name: ts.Name, TechniqueSet: ts}, nil
}

func decodeMaterialTechniqueSet(ctx *Context) (*MaterialTechniqueSet, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	worldVertFormat, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadU8(); err != nil { // unused
		return nil, err
	}
	techsetFlags, err := s.ReadU16()
	if err != nil {
		return nil, err
	}

	ts := &MaterialTechniqueSet{WorldVertFormat: worldVertFormat, TechsetFlags: techsetFlags}
	ptrs := [maxTechniques]uint32{}
	for i := range ptrs {
		ptrRaw, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		ptrs[i] = ptrRaw
	}
	for i, ptrRaw := range ptrs {
		tech, err := WithPointer(ctx, ptrRaw, decodeMaterialTechnique)
		if err != nil {
			return nil, err
		}
		ts.Techniques[i] = tech
	}
	ts.Name, err = ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// MaterialInfo is the 40-byte fixed header embedded at the front of every
// Material (MaterialInfoRaw).
type MaterialInfo struct {
	Name                     string
	GameFlags                uint32
	SortKey                  uint8
	TextureAtlasRowCount     uint8
	TextureAtlasColumnCount  uint8
	DrawSurf                 uint64
	SurfaceTypeBits          uint32
	LayeredSurfaceTypes      uint32
	HashIndex                uint16
}

func decodeMaterialInfo(ctx *Context) (MaterialInfo, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return MaterialInfo{}, err
	}
	gameFlags, err := s.ReadU32()
	if err != nil {
		return MaterialInfo{}, err
	}
	if _, err := s.ReadU8(); err != nil { // pad
		return MaterialInfo{}, err
	}
	sortKey, err := s.ReadU8()
	if err != nil {
		return MaterialInfo{}, err
	}
	atlasRows, err := s.ReadU8()
	if err != nil {
		return MaterialInfo{}, err
	}
	atlasCols, err := s.ReadU8()
	if err != nil {
		return MaterialInfo{}, err
	}
	if _, err := s.ReadExact(4); err != nil { // pad2
		return MaterialInfo{}, err
	}
	drawSurf, err := s.ReadU64()
	if err != nil {
		return MaterialInfo{}, err
	}
	surfaceTypeBits, err := s.ReadU32()
	if err != nil {
		return MaterialInfo{}, err
	}
	layeredSurfaceTypes, err := s.ReadU32()
	if err != nil {
		return MaterialInfo{}, err
	}
	hashIndex, err := s.ReadU16()
	if err != nil {
		return MaterialInfo{}, err
	}
	if _, err := s.ReadExact(6); err != nil { // unused
		return MaterialInfo{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return MaterialInfo{}, err
	}
	return MaterialInfo{
		Name:                    name,
		GameFlags:               gameFlags,
		SortKey:                 sortKey,
		TextureAtlasRowCount:    atlasRows,
		TextureAtlasColumnCount: atlasCols,
		DrawSurf:                drawSurf,
		SurfaceTypeBits:         surfaceTypeBits,
		LayeredSurfaceTypes:     layeredSurfaceTypes,
		HashIndex:               hashIndex,
	}, nil
}

// MaterialConstantDef is one named shader constant.
type MaterialConstantDef struct {
	NameHash uint32
	Name     [12]byte
	Literal  Vec4
}

func decodeMaterialConstantDef(ctx *Context) (MaterialConstantDef, error) {
	s := ctx.Stream
	nameHash, err := s.ReadU32()
	if err != nil {
		return MaterialConstantDef{}, err
	}
	var name [12]byte
	b, err := s.ReadExact(12)
	if err != nil {
		return MaterialConstantDef{}, err
	}
	copy(name[:], b)
	literal, err := readVec4(s)
	if err != nil {
		return MaterialConstantDef{}, err
	}
	return MaterialConstantDef{NameHash: nameHash, Name: name, Literal: literal}, nil
}

// GfxStateBits is one pair of D3D render-state load masks.
type GfxStateBits struct {
	LoadBits [2]uint32
}

func decodeGfxStateBits(ctx *Context) (GfxStateBits, error) {
	s := ctx.Stream
	a, err := s.ReadU32()
	if err != nil {
		return GfxStateBits{}, err
	}
	b, err := s.ReadU32()
	if err != nil {
		return GfxStateBits{}, err
	}
	return GfxStateBits{LoadBits: [2]uint32{a, b}}, nil
}

// MaterialTextureDefInfo is the resolved form of MaterialTextureDefRaw's
// single embedded pointer: WATER_MAP semantic resolves it as a Water
// block, every other semantic resolves it as a GfxImage.
type MaterialTextureDefInfo struct {
	Water *Water
	Image *GfxImage
}

// MaterialTextureDef names the semantic (diffuse, normal, specular, ...)
// and the referenced resource; the referenced resource decodes inline
// through the single embedded pointer rather than by name lookup
// (techset.rs MaterialTextureDefRaw, 16 bytes).
type MaterialTextureDef struct {
	NameHash        uint32
	NameStart       rune
	NameEnd         rune
	SamplerState    uint8
	Semantic        GfxImageSemantic
	IsMatureContent bool
	Info            MaterialTextureDefInfo
}

func decodeMaterialTextureDef(ctx *Context) (MaterialTextureDef, error) {
	s := ctx.Stream
	nameHash, err := s.ReadU32()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	nameStartRaw, err := s.ReadI8()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	nameEndRaw, err := s.ReadI8()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	samplerState, err := s.ReadU8()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	semanticRaw, err := s.ReadU8()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	if !isValidGfxImageSemantic(semanticRaw) {
		return MaterialTextureDef{}, newErr(KindBadFromPrimitive, s.Pos(), "material texture def semantic %d", semanticRaw)
	}
	isMature, err := s.ReadU8()
	if err != nil {
		return MaterialTextureDef{}, err
	}
	if _, err := s.ReadExact(3); err != nil { // pad
		return MaterialTextureDef{}, err
	}
	uPtrRaw, err := s.ReadU32()
	if err != nil {
		return MaterialTextureDef{}, err
	}

	nameStart := rune(nameStartRaw)
	if !isValidUnicodeScalar(nameStart) {
		return MaterialTextureDef{}, newErr(KindBadChar, s.Pos(), "material texture def name_start 0x%x", nameStartRaw)
	}
	nameEnd := rune(nameEndRaw)
	if !isValidUnicodeScalar(nameEnd) {
		return MaterialTextureDef{}, newErr(KindBadChar, s.Pos(), "material texture def name_end 0x%x", nameEndRaw)
	}

	semantic := GfxImageSemantic(semanticRaw)
	var info MaterialTextureDefInfo
	if semantic == SemanticWaterMap {
		w, err := WithPointer(ctx, uPtrRaw, decodeWater)
		if err != nil {
			return MaterialTextureDef{}, err
		}
		info.Water = w
	} else {
		img, err := WithPointer(ctx, uPtrRaw, decodeGfxImage)
		if err != nil {
			return MaterialTextureDef{}, err
		}
		info.Image = img
	}

	return MaterialTextureDef{
		NameHash:        nameHash,
		NameStart:       nameStart,
		NameEnd:         nameEnd,
		SamplerState:    samplerState,
		Semantic:        semantic,
		IsMatureContent: isMature != 0,
		Info:            info,
	}, nil
}

// Complex is a single-precision complex number used by Water's FFT tables.
type Complex struct {
	Real float32
	Imag float32
}

// Water is the FFT ocean-simulation payload a WATER_MAP texture slot
// resolves to instead of a GfxImage (techset.rs WaterRaw, 68 bytes). The
// h0/w_term tables are sized by M*N and gated by a null check on their own
// sentinel pointer rather than the usual paired-count fat-pointer idiom.
type Water struct {
	M             int32
	N             int32
	Lx            float32
	Ly            float32
	Gravity       float32
	WindVelocity  float32
	WindDir       Vec2
	Amplitude     float32
	CodeConstant  Vec4
	H0            []Complex
	WTerm         []float32
	Image         *GfxImage
}

func decodeWater(ctx *Context) (*Water, error) {
	s := ctx.Stream
	if _, err := s.ReadU32(); err != nil { // writable
		return nil, err
	}
	h0PtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	wTermPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	m, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	n, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	lx, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	ly, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	gravity, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	windVel, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	windDir, err := readVec2(s)
	if err != nil {
		return nil, err
	}
	amplitude, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	codeConstant, err := readVec4(s)
	if err != nil {
		return nil, err
	}
	imagePtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	count := uint32(m) * uint32(n)
	h0, err := WithPointer(ctx, h0PtrRaw, func(ctx *Context) ([]Complex, error) {
		return readN(ctx, count, func(ctx *Context) (Complex, error) {
			re, err := ctx.Stream.ReadF32()
			if err != nil {
				return Complex{}, err
			}
			im, err := ctx.Stream.ReadF32()
			return Complex{Real: re, Imag: im}, err
		})
	})
	if err != nil {
		return nil, err
	}
	wTerm, err := WithPointer(ctx, wTermPtrRaw, func(ctx *Context) ([]float32, error) {
		return readN(ctx, count, func(ctx *Context) (float32, error) {
			return ctx.Stream.ReadF32()
		})
	})
	if err != nil {
		return nil, err
	}
	image, err := WithPointer(ctx, imagePtrRaw, decodeGfxImage)
	if err != nil {
		return nil, err
	}

	return &Water{
		M: m, N: n, Lx: lx, Ly: ly, Gravity: gravity, WindVelocity: windVel,
		WindDir: windDir, Amplitude: amplitude, CodeConstant: codeConstant,
		H0: h0, WTerm: wTerm, Image: image,
	}, nil
}

// Material binds a technique set, a shader-constant table, a state-bits
// table, and a texture-def table to a surface shader (MaterialRaw, 192
// bytes; techset.rs).
type Material struct {
	Info             MaterialInfo
	StateBitsEntry   [130]uint8
	Textures         []MaterialTextureDef
	Constants        []MaterialConstantDef
	StateBits        []GfxStateBits
	StateFlags       uint8
	CameraRegion     uint8
	MaxStreamedMips  uint8
	TechniqueSet     *MaterialTechniqueSet
}

func decodeMaterialAsset(ctx *Context) (XAsset, error) {
	m, err := decodeMaterial(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetMaterial, Name: m.Info.Name, Material: m}, nil
}

func decodeMaterial(ctx *Context) (*Material, error) {
	s := ctx.Stream
	info, err := decodeMaterialInfo(ctx)
	if err != nil {
		return nil, err
	}
	var stateBitsEntry [130]uint8
	b, err := s.ReadExact(130)
	if err != nil {
		return nil, err
	}
	copy(stateBitsEntry[:], b)
	textureCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	constantCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	stateBitsCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	stateFlags, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	cameraRegion, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	maxStreamedMips, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	techSetPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	textureTablePtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	constantTablePtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	stateBitsTablePtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	techSet, err := WithPointer(ctx, techSetPtrRaw, decodeMaterialTechniqueSet)
	if err != nil {
		return nil, err
	}
	textures, err := ReadArrayCountFirstU32(ctx, uint32(textureCount), textureTablePtrRaw, decodeMaterialTextureDef)
	if err != nil {
		return nil, err
	}
	constants, err := ReadArrayCountFirstU32(ctx, uint32(constantCount), constantTablePtrRaw, decodeMaterialConstantDef)
	if err != nil {
		return nil, err
	}
	stateBits, err := ReadArrayCountFirstU32(ctx, uint32(stateBitsCount), stateBitsTablePtrRaw, decodeGfxStateBits)
	if err != nil {
		return nil, err
	}

	return &Material{
		Info:            info,
		StateBitsEntry:  stateBitsEntry,
		Textures:        textures,
		Constants:       constants,
		StateBits:       stateBits,
		StateFlags:      stateFlags,
		CameraRegion:    cameraRegion,
		MaxStreamedMips: maxStreamedMips,
		TechniqueSet:    techSet,
	}, nil
}
