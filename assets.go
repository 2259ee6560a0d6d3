package xfile

// XAssetType is the asset-kind discriminator read from each AssetList
// entry. The declared domain has 45 values; only about 30 are ever
// actually emitted by the tool that produces FastFiles, but the dispatcher
// must still recognize all 45 so that an unrecognized value is reliably a
// corrupt file rather than a kind nobody got around to wiring (§4.5).
type XAssetType uint32

const (
	AssetPhysPreset XAssetType = iota
	AssetPhysConstraints
	AssetDestructibleDef
	AssetXAnimParts
	AssetXModel
	AssetMaterial
	AssetTechniqueSet
	AssetImage
	AssetSound
	AssetSoundPatch
	AssetClipMap
	AssetClipMapPVS
	AssetComWorld
	AssetGameWorldSp
	AssetGameWorldMp
	AssetMapEnts
	AssetGfxWorld
	AssetLightDef
	AssetUIMap
	AssetFont
	AssetMenuFile
	AssetMenu
	AssetLocalizeEntry
	AssetWeapon
	AssetSndDriverGlobals
	AssetFx
	AssetImpactFx
	AssetAIType
	AssetMPType
	AssetMPBody
	AssetMPHead
	AssetCharacter
	AssetXModelAlias
	AssetRawFile
	AssetStringTable
	AssetLeaderboard
	AssetStructuredDataDefs
	AssetTracer
	AssetVehicle
	AssetAddonMapEnts
	AssetGlasses
	AssetEmblemSet
	AssetPackIndex
	AssetXGlobals
	AssetDdl
	assetTypeCount
)

var assetTypeNames = [assetTypeCount]string{
	"physpreset", "physconstraints", "destructibledef", "xanimparts", "xmodel",
	"material", "techniqueset", "image", "sound", "soundpatch", "clipmap_sp",
	"clipmap_mp", "comworld", "gameworld_sp", "gameworld_mp", "mapents",
	"gfxworld", "lightdef", "ui_map", "font", "menufile", "menu",
	"localize_entry", "weapon", "snddriverglobals", "fx", "impactfx", "aitype",
	"mptype", "mpbody", "mphead", "character", "xmodelalias", "rawfile",
	"stringtable", "leaderboard", "structureddatadefs", "tracer", "vehicle",
	"addon_mapents", "glasses", "emblemset", "packindex", "xglobals", "ddl",
}

func (t XAssetType) String() string {
	if t < assetTypeCount {
		return assetTypeNames[t]
	}
	return "unknown"
}

// XAsset is a tagged union over every decoded asset kind: exactly one of
// the fields is non-nil, selected by Type. This mirrors the "tagged sums,
// not trait objects" guidance in DESIGN NOTES — no payload is boxed behind
// an interface beyond this single selector struct.
type XAsset struct {
	Type XAssetType
	Name string

	PhysPreset       *PhysPreset
	PhysConstraints  *PhysConstraints
	DestructibleDef  *DestructibleDef
	XAnimParts       *XAnimParts
	XModel           *XModel
	Material         *Material
	TechniqueSet     *MaterialTechniqueSet
	Image            *GfxImage
	Sound            *SndBank
	RawFile          *RawFile
	StringTable      *StringTable
	LocalizeEntry    *LocalizeEntry
	PackIndex        *PackIndex
	MapEnts          *MapEnts
	XGlobals         *XGlobals
	Glasses          *Glasses
	EmblemSet        *EmblemSet
	Font             *Font
	MenuList         *MenuList
	Fx               *FxEffectDef
	GfxWorld         *GfxWorld
	PathData         *PathData
	SndDriverGlobals *SndDriverGlobals
	Weapon           *WeaponVariantDef
}

// decodeAssetFunc decodes one asset body once its sentinel pointer has
// already been classified as non-null by the caller.
type decodeAssetFunc func(ctx *Context) (XAsset, error)

var assetDecoders map[XAssetType]decodeAssetFunc

func init() {
	assetDecoders = map[XAssetType]decodeAssetFunc{
		AssetXModel:           decodeXModelAsset,
		AssetXAnimParts:       decodeXAnimPartsAsset,
		AssetMaterial:         decodeMaterialAsset,
		AssetTechniqueSet:     decodeTechniqueSetAsset,
		AssetImage:            decodeImageAsset,
		AssetSound:            decodeSoundAsset,
		AssetMenuFile:         decodeMenuListAsset,
		AssetMenu:             decodeMenuListAsset,
		AssetFx:               decodeFxAsset,
		AssetRawFile:          decodeRawFileAsset,
		AssetStringTable:      decodeStringTableAsset,
		AssetLocalizeEntry:    decodeLocalizeEntryAsset,
		AssetPackIndex:        decodePackIndexAsset,
		AssetMapEnts:          decodeMapEntsAsset,
		AssetXGlobals:         decodeXGlobalsAsset,
		AssetGlasses:          decodeGlassesAsset,
		AssetEmblemSet:        decodeEmblemSetAsset,
		AssetFont:             decodeFontAsset,
		AssetPhysPreset:       decodePhysPresetAsset,
		AssetPhysConstraints:  decodePhysConstraintsAsset,
		AssetDestructibleDef:  decodeDestructibleDefAsset,
		AssetSndDriverGlobals: decodeSndDriverGlobalsAsset,
		AssetGfxWorld:         decodeGfxWorldAsset,
		AssetWeapon:           decodeWeaponAsset,
	}
}

// decodeAsset dispatches on t, the way the teacher's ParseDataDirectories
// dispatches on ImageDirectoryEntry via its funcMaps table. Asset kinds
// with no registered decoder are either out of range (fatal, §4.5) or one
// of the kinds this module intentionally leaves unimplemented (KindTodo,
// matching the original source's own unreached match arms — see
// SPEC_FULL.md "Named-but-not-implemented asset kinds").
func decodeAsset(ctx *Context, t XAssetType) (XAsset, error) {
	if t >= assetTypeCount {
		return XAsset{}, newErr(KindBadFromPrimitive, ctx.Stream.Pos(), "asset type %d out of range", uint32(t))
	}
	if fn, ok := assetDecoders[t]; ok {
		return fn(ctx)
	}
	return XAsset{}, newErr(KindTodo, ctx.Stream.Pos(), "asset kind %s has no decoder in this port", t)
}
