package xfile

import (
	"encoding/binary"
	"testing"
)

func buildHeader(magicByte byte, compressed byte, version uint32, order binary.ByteOrder) []byte {
	buf := make([]byte, 12)
	buf[0] = magicByte
	copy(buf[1:4], "Wff")
	buf[4] = compressed
	copy(buf[5:8], "100")
	order.PutUint32(buf[8:12], version)
	return buf
}

func TestReadHeaderAccept(t *testing.T) {
	buf := buildHeader('I', 'u', Version, binary.LittleEndian)
	hdr, order, err := ReadHeader(buf, PlatformPC)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if hdr.Version != Version || order != binary.LittleEndian {
		t.Errorf("unexpected header %+v order=%v", hdr, order)
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	buf := buildHeader('I', 'u', Version, binary.LittleEndian)
	buf[0] = 0x00
	_, _, err := ReadHeader(buf, PlatformPC)
	if !IsKind(err, KindBadHeaderMagic) {
		t.Fatalf("expected KindBadHeaderMagic, got %v", err)
	}
}

func TestReadHeaderWrongEndianness(t *testing.T) {
	buf := buildHeader('I', 'u', Version, binary.BigEndian)
	_, _, err := ReadHeader(buf, PlatformPC)
	if !IsKind(err, KindWrongEndiannessForPlatform) {
		t.Fatalf("expected KindWrongEndiannessForPlatform, got %v", err)
	}
}

func TestReadHeaderWrongVersion(t *testing.T) {
	buf := buildHeader('I', 'u', 0xDEAD, binary.LittleEndian)
	_, _, err := ReadHeader(buf, PlatformPC)
	if !IsKind(err, KindWrongVersion) {
		t.Fatalf("expected KindWrongVersion, got %v", err)
	}
}

func TestReadHeaderWiiUnsupported(t *testing.T) {
	buf := buildHeader('I', 'u', Version, binary.LittleEndian)
	_, _, err := ReadHeader(buf, PlatformWii)
	if !IsKind(err, KindUnsupportedPlatform) {
		t.Fatalf("expected KindUnsupportedPlatform, got %v", err)
	}
}
