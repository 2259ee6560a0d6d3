package xfile

import "encoding/binary"

// Platform identifies the target the FastFile was built for. Only the
// endianness it implies is load-bearing for THE CORE; anything beyond that
// (Xbox360/PS3 layout divergence) is an open question the source itself
// leaves unresolved, see DESIGN.md.
type Platform int

const (
	PlatformPC Platform = iota
	PlatformMacOS
	PlatformXbox360
	PlatformPS3
	PlatformWii
)

func (p Platform) String() string {
	switch p {
	case PlatformPC:
		return "pc"
	case PlatformMacOS:
		return "macos"
	case PlatformXbox360:
		return "xbox360"
	case PlatformPS3:
		return "ps3"
	case PlatformWii:
		return "wii"
	default:
		return "unknown"
	}
}

// ByteOrder returns the wire byte order for p. PC and macOS are assumed to
// share little-endian PC layout (open question, unverified by the source).
func (p Platform) ByteOrder() (binary.ByteOrder, error) {
	switch p {
	case PlatformPC, PlatformMacOS:
		return binary.LittleEndian, nil
	case PlatformXbox360, PlatformPS3:
		return binary.BigEndian, nil
	case PlatformWii:
		return nil, newErr(KindUnsupportedPlatform, -1, "wii is not supported")
	default:
		return nil, newErr(KindUnsupportedPlatform, -1, "unknown platform %d", int(p))
	}
}

func oppositeByteOrder(b binary.ByteOrder) binary.ByteOrder {
	if b == binary.LittleEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
