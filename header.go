package xfile

import (
	"bytes"
	"encoding/binary"
)

// Version is the only engine version THE CORE understands.
const Version uint32 = 0x000001D9

var magicPrefix = []byte("IWff")

// Header is the 12-byte file header: magic, compression byte, suffix, and
// version. It is read once, validated, and discarded — it never appears in
// the cooked asset graph.
type Header struct {
	Compressed byte // 'u' (PC/zlib) or '0' (console/zlib)
	Version    uint32
}

// ReadHeader validates and parses the 12-byte header per §4.6 step 1 and
// §6. platform decides which endianness the version field is expected
// under; a version that only matches under the opposite endianness is
// reported as WrongEndiannessForPlatform rather than a generic mismatch.
func ReadHeader(buf []byte, platform Platform) (*Header, binary.ByteOrder, error) {
	if platform == PlatformWii {
		return nil, nil, newErr(KindUnsupportedPlatform, -1, "wii is not supported")
	}
	if len(buf) < 12 {
		return nil, nil, newErr(KindIO, 0, "header requires 12 bytes, got %d", len(buf))
	}
	if !bytes.Equal(buf[0:4], magicPrefix) {
		return nil, nil, newErr(KindBadHeaderMagic, 0, "observed %q", buf[0:8])
	}
	compressed := buf[4]
	if compressed != 'u' && compressed != '0' {
		return nil, nil, newErr(KindBadHeaderMagic, 0, "observed %q", buf[0:8])
	}
	if !bytes.Equal(buf[5:8], []byte("100")) {
		return nil, nil, newErr(KindBadHeaderMagic, 0, "observed %q", buf[0:8])
	}

	order, err := platform.ByteOrder()
	if err != nil {
		return nil, nil, err
	}
	version := order.Uint32(buf[8:12])
	if version == Version {
		return &Header{Compressed: compressed, Version: version}, order, nil
	}

	flipped := oppositeByteOrder(order).Uint32(buf[8:12])
	if flipped == Version {
		return nil, nil, newErr(KindWrongEndiannessForPlatform, 8, "version read as 0x%x under %s, matches under the opposite endianness", version, platform)
	}
	return nil, nil, newErr(KindWrongVersion, 8, "observed 0x%08x", version)
}

// XFile is the 36-byte control block: overall size accounting plus the
// 7-entry block-size table used to resolve Absolute sentinel pointers.
type XFile struct {
	Size         uint32
	ExternalSize uint32
	BlockSize    [numBlocks]uint32
}

// ReadXFile reads the XFile control block from s and stashes nothing into
// ctx itself — callers are expected to copy BlockSize into a Context.
func ReadXFile(s *Stream) (*XFile, error) {
	xf := &XFile{}
	var err error
	if xf.Size, err = s.ReadU32(); err != nil {
		return nil, err
	}
	if xf.ExternalSize, err = s.ReadU32(); err != nil {
		return nil, err
	}
	for i := range xf.BlockSize {
		if xf.BlockSize[i], err = s.ReadU32(); err != nil {
			return nil, err
		}
	}
	return xf, nil
}
