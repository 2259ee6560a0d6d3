package xfile

// GfxImageMapType is the on-wire map_type tag (§6; original source
// techset.rs MapType). Values are sparse, not a contiguous range, so
// validity is a set membership check rather than a `< max` bound.
type GfxImageMapType uint8

const (
	MapTypeUnknown         GfxImageMapType = 0x00
	MapTypeTwoDimensional  GfxImageMapType = 0x03
	MapTypeThreeDimensional GfxImageMapType = 0x04
	MapTypeCube            GfxImageMapType = 0x05
)

func isValidGfxImageMapType(v uint8) bool {
	switch GfxImageMapType(v) {
	case MapTypeUnknown, MapTypeTwoDimensional, MapTypeThreeDimensional, MapTypeCube:
		return true
	}
	return false
}

// GfxImageSemantic is the on-wire semantic tag shared with
// MaterialTextureDef.semantic (techset.rs Semantic).
type GfxImageSemantic uint8

const (
	SemanticIdle        GfxImageSemantic = 0x00
	SemanticFunction     GfxImageSemantic = 0x01
	SemanticColorMap     GfxImageSemantic = 0x02
	SemanticNormalMap    GfxImageSemantic = 0x05
	SemanticSpecularMap  GfxImageSemantic = 0x08
	SemanticWaterMap     GfxImageSemantic = 0x0B
	SemanticUnknown0C    GfxImageSemantic = 0x0C
	SemanticUnknown0D    GfxImageSemantic = 0x0D
	SemanticUnknown0E    GfxImageSemantic = 0x0E
	SemanticUnknown10    GfxImageSemantic = 0x10
	SemanticUnknown11    GfxImageSemantic = 0x11
	SemanticColor7       GfxImageSemantic = 0x13
	SemanticColor15      GfxImageSemantic = 0x1B
)

func isValidGfxImageSemantic(v uint8) bool {
	switch GfxImageSemantic(v) {
	case SemanticIdle, SemanticFunction, SemanticColorMap, SemanticNormalMap,
		SemanticSpecularMap, SemanticWaterMap, SemanticUnknown0C, SemanticUnknown0D,
		SemanticUnknown0E, SemanticUnknown10, SemanticUnknown11, SemanticColor7, SemanticColor15:
		return true
	}
	return false
}

// GfxImageCategory is the on-wire category tag (techset.rs ImgCategory).
type GfxImageCategory uint8

const (
	ImgCategoryUnknown      GfxImageCategory = 0x00
	ImgCategoryOne          GfxImageCategory = 0x01
	ImgCategoryTwo          GfxImageCategory = 0x02
	ImgCategoryLoadFromFile GfxImageCategory = 0x03
	ImgCategoryWater        GfxImageCategory = 0x05
	ImgCategoryRenderTarget GfxImageCategory = 0x06
)

func isValidGfxImageCategory(v uint8) bool {
	switch GfxImageCategory(v) {
	case ImgCategoryUnknown, ImgCategoryOne, ImgCategoryTwo, ImgCategoryLoadFromFile,
		ImgCategoryWater, ImgCategoryRenderTarget:
		return true
	}
	return false
}

// GfxImageLoadDef is an opaque, driver-format resource blob: level count,
// format, and flags describing data this module never decodes further
// (GPU resource creation is out of scope, §1). Unlike a regular
// sentinel-pointer field, `resource` is a flexible-array-u32 tail stored
// directly after the fixed part of the struct it belongs to, not behind
// its own pointer.
type GfxImageLoadDef struct {
	LevelCount uint8
	Flags      uint8
	Format     int32
	Resource   []byte
}

func decodeGfxImageLoadDef(ctx *Context) (*GfxImageLoadDef, error) {
	s := ctx.Stream
	levelCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	flags, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadExact(2); err != nil { // pad
		return nil, err
	}
	format, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	resourceLen, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	resource, err := s.ReadExact(int(resourceLen))
	if err != nil {
		return nil, err
	}
	return &GfxImageLoadDef{
		LevelCount: levelCount,
		Flags:      flags,
		Format:     format,
		Resource:   append([]byte(nil), resource...),
	}, nil
}

// Picmip is the optional mip-bias override collapsed from a no_picmip
// bool flag (§4.4 "no_picmip collapses into Option<Picmip>").
type Picmip struct {
	Platform [2]uint8
}

// CardMemory is a per-platform pair of GPU-memory footprint counters.
type CardMemory struct {
	Platform [2]uint32
}

// GfxImage is the cooked form of a texture asset: the full fixed-size
// control block (§6 GfxImageRaw, 52 bytes) plus whichever of the two
// sentinel pointers it carries (name, and texture/load-def). `pixels` is
// never resolved — uploaded pixel data is a GPU-resource concern this
// module never decodes, per §1 Non-goals.
type GfxImage struct {
	Name              string
	MapType           GfxImageMapType
	Semantic          GfxImageSemantic
	Category          GfxImageCategory
	DelayLoadPixels   bool
	Picmip            *Picmip
	Track             uint8
	CardMemory        CardMemory
	Width             uint16
	Height            uint16
	Depth             uint16
	LevelCount        uint8
	Streaming         bool
	BaseSize          uint32
	LoadedSize        uint32
	SkippedMipLevels  uint8
	Hash              uint32
	LoadDef           *GfxImageLoadDef
}

func decodeImageAsset(ctx *Context) (XAsset, error) {
	img, err := decodeGfxImage(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetImage, Name: img.Name, Image: img}, nil
}

// decodeGfxImage reads the 52-byte GfxImageRaw control block in declared
// field order, then resolves its two sentinel pointers (name, texture) in
// the order the original deserializer does (name before texture).
func decodeGfxImage(ctx *Context) (*GfxImage, error) {
	s := ctx.Stream

	texturePtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	mapTypeRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if !isValidGfxImageMapType(mapTypeRaw) {
		return nil, newErr(KindBadFromPrimitive, s.Pos(), "gfximage map_type %d", mapTypeRaw)
	}
	semanticRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if !isValidGfxImageSemantic(semanticRaw) {
		return nil, newErr(KindBadFromPrimitive, s.Pos(), "gfximage semantic %d", semanticRaw)
	}
	categoryRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if !isValidGfxImageCategory(categoryRaw) {
		return nil, newErr(KindBadFromPrimitive, s.Pos(), "gfximage category %d", categoryRaw)
	}
	delayLoadPixels, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	picmip0, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	picmip1, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	noPicmip, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	track, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	cardMem0, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	cardMem1, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	width, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	height, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	depth, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	levelCount, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	streaming, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	baseSize, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	pixelsPtrRaw, err := s.ReadU32() // never resolved, §1 Non-goals
	if err != nil {
		return nil, err
	}
	_ = pixelsPtrRaw
	loadedSize, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	skippedMipLevels, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := s.ReadExact(3); err != nil { // pad
		return nil, err
	}
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	hash, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}

	// The texture union always resolves through the load-def arm: the
	// map/volmap/cubemap arms are a render-backend concern this module
	// never constructs (§1 Non-goals), so the sentinel is read as a
	// GfxImageLoadDefRaw exactly as the original GfxTextureRaw decoder does.
	loadDef, err := WithPointer(ctx, texturePtrRaw, func(ctx *Context) (*GfxImageLoadDef, error) {
		return decodeGfxImageLoadDef(ctx)
	})
	if err != nil {
		return nil, err
	}

	var picmip *Picmip
	if noPicmip == 0 {
		picmip = &Picmip{Platform: [2]uint8{picmip0, picmip1}}
	}

	return &GfxImage{
		Name:             name,
		MapType:          GfxImageMapType(mapTypeRaw),
		Semantic:         GfxImageSemantic(semanticRaw),
		Category:         GfxImageCategory(categoryRaw),
		DelayLoadPixels:  delayLoadPixels != 0,
		Picmip:           picmip,
		Track:            track,
		CardMemory:       CardMemory{Platform: [2]uint32{cardMem0, cardMem1}},
		Width:            width,
		Height:           height,
		Depth:            depth,
		LevelCount:       levelCount,
		Streaming:        streaming != 0,
		BaseSize:         baseSize,
		LoadedSize:       loadedSize,
		SkippedMipLevels: skippedMipLevels,
		Hash:             hash,
		LoadDef:          loadDef,
	}, nil
}
