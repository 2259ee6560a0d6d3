package xfile

// FontGlyph maps one code point to its location in the font's glyph atlas.
type FontGlyph struct {
	CodePoint rune
	X0, Y0    uint16
	X1, Y1    uint16
}

func decodeFontGlyph(ctx *Context) (FontGlyph, error) {
	s := ctx.Stream
	cp, err := s.ReadU32()
	if err != nil {
		return FontGlyph{}, err
	}
	r := rune(cp)
	if r < 0 || !isValidUnicodeScalar(r) {
		return FontGlyph{}, newErr(KindBadChar, s.Pos(), "font glyph code point 0x%x", cp)
	}
	x0, err := s.ReadU16()
	if err != nil {
		return FontGlyph{}, err
	}
	y0, err := s.ReadU16()
	if err != nil {
		return FontGlyph{}, err
	}
	x1, err := s.ReadU16()
	if err != nil {
		return FontGlyph{}, err
	}
	y1, err := s.ReadU16()
	if err != nil {
		return FontGlyph{}, err
	}
	return FontGlyph{CodePoint: r, X0: x0, Y0: y0, X1: x1, Y1: y1}, nil
}

func isValidUnicodeScalar(r rune) bool {
	if r > 0x10FFFF {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false // surrogate halves are not valid scalar values
	}
	return true
}

// Font is a bitmap font asset: a name, its backing glyph-atlas image, and
// the glyph table.
type Font struct {
	Name      string
	ImageName string
	Glyphs    []FontGlyph
}

func decodeFontAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	imageRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	count, err := s.ReadU16()
	if err != nil {
		return XAsset{}, err
	}
	glyphsPtrRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	glyphs, err := ReadArrayCountLastU32(ctx, glyphsPtrRaw, uint32(count), decodeFontGlyph)
	if err != nil {
		return XAsset{}, err
	}
	imageName, err := ReadStringPtr(ctx, imageRaw)
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	f := &Font{Name: name, ImageName: imageName, Glyphs: glyphs}
	return XAsset{Type: AssetFont, Name: f.Name, Font: f}, nil
}
