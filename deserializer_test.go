package xfile

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"
)

func buildMinimalFastFile(t *testing.T) []byte {
	t.Helper()
	order := binary.LittleEndian

	payload := make([]byte, 0, 64)
	// XFile: size, external_size, 7 block sizes, all zero.
	payload = append(payload, make([]byte, 36)...)
	// XAssetList: string_count=0, strings_ptr=0(null), asset_count=0, assets_ptr=0xFFFFFFFF (inline-follow, zero elements).
	tmp := make([]byte, 4)
	order.PutUint32(tmp, 0)
	payload = append(payload, tmp...) // string_count
	payload = append(payload, tmp...) // strings_ptr (null)
	payload = append(payload, tmp...) // asset_count
	order.PutUint32(tmp, sentinelFollow)
	payload = append(payload, tmp...) // assets_ptr (inline-follow, zero assets follow)

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("compress payload: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zlib writer: %v", err)
	}

	buf := buildHeader('I', 'u', Version, order)
	buf = append(buf, compressed.Bytes()...)
	return buf
}

func TestParseMinimalFastFile(t *testing.T) {
	buf := buildMinimalFastFile(t)
	d, err := NewBytes(buf, &Options{Platform: PlatformPC})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	if err := d.Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assets, err := d.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("expected zero assets, got %d", len(assets))
	}
}

func TestParseBadMagicFastFile(t *testing.T) {
	buf := buildMinimalFastFile(t)
	buf[0] = 0x00
	d, _ := NewBytes(buf, &Options{Platform: PlatformPC})
	err := d.Parse()
	if !IsKind(err, KindBadHeaderMagic) {
		t.Fatalf("expected KindBadHeaderMagic, got %v", err)
	}
}
