package xfile

// ItemTypeDataKind is the family tag on ItemDef's type-specific payload:
// text, image, blank-button, or owner-draw, further sub-tagged by an
// item-type int within each family (§4.4).
type ItemTypeDataKind uint8

const (
	ItemTypeData_Text ItemTypeDataKind = iota
	ItemTypeData_Image
	ItemTypeData_BlankButton
	ItemTypeData_OwnerDraw
	itemTypeDataKindMax
)

// ItemTypeData is the tagged union over an ItemDef's per-kind payload.
type ItemTypeData struct {
	Kind          ItemTypeDataKind
	ItemType      uint8 // sub-tag within Kind's family
	TextFont      string
	ImageMaterial string
	OwnerDrawType uint32
}

func decodeItemTypeData(ctx *Context) (ItemTypeData, error) {
	s := ctx.Stream
	kindRaw, err := s.ReadU8()
	if err != nil {
		return ItemTypeData{}, err
	}
	if ItemTypeDataKind(kindRaw) >= itemTypeDataKindMax {
		return ItemTypeData{}, newErr(KindBadFromPrimitive, s.Pos(), "item type-data kind %d", kindRaw)
	}
	kind := ItemTypeDataKind(kindRaw)
	itemType, err := s.ReadU8()
	if err != nil {
		return ItemTypeData{}, err
	}
	switch kind {
	case ItemTypeData_Text:
		fontRaw, err := s.ReadU32()
		if err != nil {
			return ItemTypeData{}, err
		}
		font, err := ReadStringPtr(ctx, fontRaw)
		return ItemTypeData{Kind: kind, ItemType: itemType, TextFont: font}, err
	case ItemTypeData_Image:
		matRaw, err := s.ReadU32()
		if err != nil {
			return ItemTypeData{}, err
		}
		mat, err := ReadStringPtr(ctx, matRaw)
		return ItemTypeData{Kind: kind, ItemType: itemType, ImageMaterial: mat}, err
	case ItemTypeData_BlankButton:
		return ItemTypeData{Kind: kind, ItemType: itemType}, nil
	case ItemTypeData_OwnerDraw:
		t, err := s.ReadU32()
		return ItemTypeData{Kind: kind, ItemType: itemType, OwnerDrawType: t}, err
	default:
		return ItemTypeData{}, newErr(KindBadFromPrimitive, s.Pos(), "item type-data kind %d", kindRaw)
	}
}

// WindowDef is the geometry/visual shell shared by MenuDef and ItemDef.
type WindowDef struct {
	Name   string
	Rect   [4]float32 // x, y, w, h
	Style  uint32
	Border uint32
}

func decodeWindowDef(ctx *Context) (WindowDef, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return WindowDef{}, err
	}
	var rect [4]float32
	for i := range rect {
		f, err := s.ReadF32()
		if err != nil {
			return WindowDef{}, err
		}
		rect[i] = f
	}
	style, err := s.ReadU32()
	if err != nil {
		return WindowDef{}, err
	}
	border, err := s.ReadU32()
	if err != nil {
		return WindowDef{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return WindowDef{}, err
	}
	return WindowDef{Name: name, Rect: rect, Style: style, Border: border}, nil
}

// ItemDef is one menu control. The raw back-pointer to the owning MenuDef
// is never followed as a real pointer (§9 "Cycles") and is not stored:
// decodeItemParent only checks it, and ItemDef has no parent field. A
// true cyclic back-reference would need shared identity this decoder does
// not reconstruct, so per §7/§9/S7 that case is a deliberate Todo,
// matching the original source's own open question.
type ItemDef struct {
	Window     WindowDef
	TypeData   ItemTypeData
	Visibility *ExpressionStatement
	Children   []*ItemDef
}

// decodeItemParent implements the exact authoritative policy from §9: the
// sentinel must be null (no parent) or the inline-follow marker (meaning
// "parent already seen elsewhere, not to be re-read here"); any other
// value is the acknowledged open question, surfaced as KindTodo.
func decodeItemParent(ctx *Context, parentRaw uint32) error {
	if parentRaw == sentinelNull || parentRaw == sentinelFollow {
		return nil
	}
	return newErr(KindTodo, ctx.Stream.Pos(), "ItemDef: fix recursion.")
}

func decodeItemDef(ctx *Context) (*ItemDef, error) {
	s := ctx.Stream
	window, err := decodeWindowDef(ctx)
	if err != nil {
		return nil, err
	}
	typeData, err := decodeItemTypeData(ctx)
	if err != nil {
		return nil, err
	}
	parentRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if err := decodeItemParent(ctx, parentRaw); err != nil {
		return nil, err
	}
	visPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	visibility, err := WithPointer(ctx, visPtrRaw, decodeExpressionStatement)
	if err != nil {
		return nil, err
	}
	numChildren, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	childrenPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	children, err := ReadArrayCountLastU8(ctx, childrenPtrRaw, numChildren, func(ctx *Context) (*ItemDef, error) {
		return decodeItemDef(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &ItemDef{Window: window, TypeData: typeData, Visibility: visibility, Children: children}, nil
}

// MenuDef is one named menu screen: its own window shell plus an array of
// items.
type MenuDef struct {
	Window WindowDef
	Items  []*ItemDef
}

func decodeMenuDef(ctx *Context) (*MenuDef, error) {
	s := ctx.Stream
	window, err := decodeWindowDef(ctx)
	if err != nil {
		return nil, err
	}
	numItems, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	itemsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	items, err := ReadArrayCountLastU32(ctx, itemsPtrRaw, uint32(numItems), func(ctx *Context) (*ItemDef, error) {
		return decodeItemDef(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &MenuDef{Window: window, Items: items}, nil
}

// MenuList is the top-level asset: a named set of menus loaded together.
type MenuList struct {
	Name  string
	Menus []*MenuDef
}

func decodeMenuListAsset(ctx *Context) (XAsset, error) {
	ml, err := decodeMenuList(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetMenuFile, Name: ml.Name, MenuList: ml}, nil
}

func decodeMenuList(ctx *Context) (*MenuList, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	menusPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	menus, err := ReadArrayCountFirstU32(ctx, count, menusPtrRaw, func(ctx *Context) (*MenuDef, error) {
		return decodeMenuDef(ctx)
	})
	if err != nil {
		return nil, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	return &MenuList{Name: name, Menus: menus}, nil
}
