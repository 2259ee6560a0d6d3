package xfile

// DestructiblePiece is one breakable fragment of a destructible model.
type DestructiblePiece struct {
	ModelName string
	// impact_damage_scael is a verbatim field-name misspelling in the
	// original source (§9 open question 3): the field's position and size
	// are preserved; the on-disk meaning is unambiguous.
	ImpactDamageScael float32
	Health            float32
}

// DestructibleDef is a named collection of destructible pieces.
type DestructibleDef struct {
	Name   string
	Pieces []DestructiblePiece
}

func decodeDestructibleDefAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	piecesPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	pieces, err := ReadArrayCountFirstU32(ctx, count, piecesPtrRaw, func(ctx *Context) (DestructiblePiece, error) {
		modelRaw, err := ctx.Stream.ReadU32()
		if err != nil {
			return DestructiblePiece{}, err
		}
		impactDamageScael, err := ctx.Stream.ReadF32()
		if err != nil {
			return DestructiblePiece{}, err
		}
		health, err := ctx.Stream.ReadF32()
		if err != nil {
			return DestructiblePiece{}, err
		}
		model, err := ReadStringPtr(ctx, modelRaw)
		return DestructiblePiece{ModelName: model, ImpactDamageScael: impactDamageScael, Health: health}, err
	})
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	dd := &DestructibleDef{Name: name, Pieces: pieces}
	return XAsset{Type: AssetDestructibleDef, Name: dd.Name, DestructibleDef: dd}, nil
}
