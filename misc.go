package xfile

// This file covers the "misc" asset family supplemented from
// original_source/src/misc.rs: small, mostly flat assets that don't
// warrant their own file.

// RawFile is an opaque named byte blob (scripts, GSC, raw text) passed
// through without interpretation (§1 non-goals: "interpreting script
// bytecode ... all passed through as opaque byte arrays").
type RawFile struct {
	Name   string
	Buffer []byte
}

func decodeRawFileAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	length, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	bufPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	// Declared field order is name, len, buffer: name's pointer resolves
	// before buffer's, per §4.4 "walks each sentinel-pointer field ... in
	// declared field order". The buffer is a NUL-terminated blob of
	// length+1 bytes (§8 S5: len=5 "hello" yields a 6-byte buffer).
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	buf, err := WithPointer(ctx, bufPtrRaw, func(ctx *Context) ([]byte, error) {
		b, err := ctx.Stream.ReadExact(int(length) + 1)
		return append([]byte(nil), b...), err
	})
	if err != nil {
		return XAsset{}, err
	}
	rf := &RawFile{Name: name, Buffer: buf}
	return XAsset{Type: AssetRawFile, Name: rf.Name, RawFile: rf}, nil
}

// StringTableCell is one cell of a script-authored spreadsheet-like table.
type StringTableCell struct {
	Value string
}

// StringTable is a 2D grid of interned strings (used by scripts for data
// tables, not to be confused with the per-file script-string table).
type StringTable struct {
	Name    string
	Columns uint32
	Rows    uint32
	Cells   []StringTableCell
}

func decodeStringTableAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	columns, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	rows, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	cellsPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	cells, err := ReadArrayCountFirstU32(ctx, columns*rows, cellsPtrRaw, func(ctx *Context) (StringTableCell, error) {
		r, err := ctx.Stream.ReadU32()
		if err != nil {
			return StringTableCell{}, err
		}
		v, err := ReadStringPtr(ctx, r)
		return StringTableCell{Value: v}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	st := &StringTable{Name: name, Columns: columns, Rows: rows, Cells: cells}
	return XAsset{Type: AssetStringTable, Name: st.Name, StringTable: st}, nil
}

// LocalizeEntry is a single localized-string key/value pair.
type LocalizeEntry struct {
	Name  string
	Value string
}

func decodeLocalizeEntryAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	valueRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	value, err := ReadStringPtr(ctx, valueRaw)
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	le := &LocalizeEntry{Name: name, Value: value}
	return XAsset{Type: AssetLocalizeEntry, Name: le.Name, LocalizeEntry: le}, nil
}

// PackIndexEntry maps a content hash to an offset/size within a pack file.
type PackIndexEntry struct {
	Hash   uint64
	Offset uint32
	Size   uint32
}

// PackIndexHeader precedes the entry array.
type PackIndexHeader struct {
	Count     uint32
	PackSize  uint32
}

// PackIndex is the lookup table for a sibling .pack content archive.
type PackIndex struct {
	Name    string
	Header  PackIndexHeader
	Entries []PackIndexEntry
}

func decodePackIndexAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	packSize, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	entriesPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	entries, err := ReadArrayCountFirstU32(ctx, count, entriesPtrRaw, func(ctx *Context) (PackIndexEntry, error) {
		hash, err := ctx.Stream.ReadU64()
		if err != nil {
			return PackIndexEntry{}, err
		}
		off, err := ctx.Stream.ReadU32()
		if err != nil {
			return PackIndexEntry{}, err
		}
		sz, err := ctx.Stream.ReadU32()
		return PackIndexEntry{Hash: hash, Offset: off, Size: sz}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	pi := &PackIndex{Name: name, Header: PackIndexHeader{Count: count, PackSize: packSize}, Entries: entries}
	return XAsset{Type: AssetPackIndex, Name: pi.Name, PackIndex: pi}, nil
}

// MapEnts is the level's entity-spawn list: one opaque text blob parsed by
// the game's own entity-string grammar, not by this module (§1 non-goals).
type MapEnts struct {
	Name    string
	Entries string
}

func decodeMapEntsAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	length, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	entriesPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	entries, err := WithPointer(ctx, entriesPtrRaw, func(ctx *Context) (string, error) {
		b, err := ctx.Stream.ReadExact(int(length))
		return string(b), err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	me := &MapEnts{Name: name, Entries: entries}
	return XAsset{Type: AssetMapEnts, Name: me.Name, MapEnts: me}, nil
}

// XGlobals is a flat set of per-level tuning globals.
type XGlobals struct {
	Name           string
	LevelName      string
	NetProtocol    uint32
	PlayerAnimType uint32
}

func decodeXGlobalsAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	levelNameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	netProtocol, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	playerAnimType, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	levelName, err := ReadStringPtr(ctx, levelNameRaw)
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	xg := &XGlobals{Name: name, LevelName: levelName, NetProtocol: netProtocol, PlayerAnimType: playerAnimType}
	return XAsset{Type: AssetXGlobals, Name: xg.Name, XGlobals: xg}, nil
}

// GlassDef describes one breakable-glass material behavior.
type GlassDef struct {
	Health      float32
	ShardMaterial string
}

// Glass is one placed glass pane instance referencing a GlassDef.
type Glass struct {
	Origin Vec3
	DefRef string
}

// Glasses is the level's collection of breakable glass panes.
type Glasses struct {
	Name   string
	Defs   []GlassDef
	Panes  []Glass
}

func decodeGlassesAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	defCount, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	defsPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	paneCount, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	panesPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}

	defs, err := ReadArrayCountFirstU32(ctx, defCount, defsPtrRaw, func(ctx *Context) (GlassDef, error) {
		health, err := ctx.Stream.ReadF32()
		if err != nil {
			return GlassDef{}, err
		}
		matRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return GlassDef{}, err
		}
		mat, err := ReadStringPtr(ctx, matRaw)
		return GlassDef{Health: health, ShardMaterial: mat}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	panes, err := ReadArrayCountFirstU32(ctx, paneCount, panesPtrRaw, func(ctx *Context) (Glass, error) {
		origin, err := readVec3(ctx.Stream)
		if err != nil {
			return Glass{}, err
		}
		refRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return Glass{}, err
		}
		ref, err := ReadStringPtr(ctx, refRaw)
		return Glass{Origin: origin, DefRef: ref}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	g := &Glasses{Name: name, Defs: defs, Panes: panes}
	return XAsset{Type: AssetGlasses, Name: g.Name, Glasses: g}, nil
}

// EmblemIcon is one selectable emblem icon image reference.
type EmblemIcon struct {
	Name      string
	ImageName string
}

// EmblemBackground is one selectable emblem background image reference.
type EmblemBackground struct {
	Name      string
	ImageName string
}

// EmblemLayer groups icons/backgrounds into one UI-browsable layer.
type EmblemLayer struct {
	Name  string
	Icons []EmblemIcon
}

// EmblemCategory groups layers under one UI category tab.
type EmblemCategory struct {
	Name   string
	Layers []EmblemLayer
}

// EmblemSet is the top-level create-a-class emblem asset.
type EmblemSet struct {
	Name        string
	Categories  []EmblemCategory
	Backgrounds []EmblemBackground
}

func decodeEmblemSetAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	catCount, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	catsPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	bgCount, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	bgsPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}

	cats, err := ReadArrayCountFirstU32(ctx, catCount, catsPtrRaw, decodeEmblemCategory)
	if err != nil {
		return XAsset{}, err
	}
	bgs, err := ReadArrayCountFirstU32(ctx, bgCount, bgsPtrRaw, func(ctx *Context) (EmblemBackground, error) {
		nameRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return EmblemBackground{}, err
		}
		imgRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return EmblemBackground{}, err
		}
		name, err := ReadStringPtr(ctx, nameRaw)
		if err != nil {
			return EmblemBackground{}, err
		}
		img, err := ReadStringPtr(ctx, imgRaw)
		return EmblemBackground{Name: name, ImageName: img}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	es := &EmblemSet{Name: name, Categories: cats, Backgrounds: bgs}
	return XAsset{Type: AssetEmblemSet, Name: es.Name, EmblemSet: es}, nil
}

func decodeEmblemCategory(ctx *Context) (EmblemCategory, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return EmblemCategory{}, err
	}
	layerCount, err := s.ReadU32()
	if err != nil {
		return EmblemCategory{}, err
	}
	layersPtrRaw, err := s.ReadU32()
	if err != nil {
		return EmblemCategory{}, err
	}
	layers, err := ReadArrayCountFirstU32(ctx, layerCount, layersPtrRaw, decodeEmblemLayer)
	if err != nil {
		return EmblemCategory{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return EmblemCategory{}, err
	}
	return EmblemCategory{Name: name, Layers: layers}, nil
}

func decodeEmblemLayer(ctx *Context) (EmblemLayer, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return EmblemLayer{}, err
	}
	iconCount, err := s.ReadU32()
	if err != nil {
		return EmblemLayer{}, err
	}
	iconsPtrRaw, err := s.ReadU32()
	if err != nil {
		return EmblemLayer{}, err
	}
	icons, err := ReadArrayCountFirstU32(ctx, iconCount, iconsPtrRaw, func(ctx *Context) (EmblemIcon, error) {
		nameRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return EmblemIcon{}, err
		}
		imgRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return EmblemIcon{}, err
		}
		name, err := ReadStringPtr(ctx, nameRaw)
		if err != nil {
			return EmblemIcon{}, err
		}
		img, err := ReadStringPtr(ctx, imgRaw)
		return EmblemIcon{Name: name, ImageName: img}, err
	})
	if err != nil {
		return EmblemLayer{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return EmblemLayer{}, err
	}
	return EmblemLayer{Name: name, Icons: icons}, nil
}
