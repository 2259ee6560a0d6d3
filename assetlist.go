package xfile

// assetDescriptor is one (asset-type, sentinel-pointer) pair popped from
// the AssetList's `assets` fat pointer (§6).
type assetDescriptor struct {
	Type    XAssetType
	DataRaw uint32
}

// xAssetList is the 16-byte control block: two fat pointers, strings and
// assets (§6). It is read once at the start of Deserializer.Parse.
type xAssetList struct {
	StringCount uint32
	StringsRaw  uint32
	AssetCount  uint32
	AssetsRaw   uint32
}

func readXAssetList(s *Stream) (xAssetList, error) {
	var al xAssetList
	var err error
	if al.StringCount, err = s.ReadU32(); err != nil {
		return al, err
	}
	if al.StringsRaw, err = s.ReadU32(); err != nil {
		return al, err
	}
	if al.AssetCount, err = s.ReadU32(); err != nil {
		return al, err
	}
	if al.AssetsRaw, err = s.ReadU32(); err != nil {
		return al, err
	}
	return al, nil
}

func readAssetDescriptor(ctx *Context) (assetDescriptor, error) {
	s := ctx.Stream
	typeRaw, err := s.ReadU32()
	if err != nil {
		return assetDescriptor{}, err
	}
	if XAssetType(typeRaw) >= assetTypeCount {
		return assetDescriptor{}, newErr(KindBadFromPrimitive, s.Pos(), "asset type %d", typeRaw)
	}
	dataRaw, err := s.ReadU32()
	if err != nil {
		return assetDescriptor{}, err
	}
	return assetDescriptor{Type: XAssetType(typeRaw), DataRaw: dataRaw}, nil
}
