package xfile

import (
	"encoding/binary"
	"testing"
)

// TestDecodeRawFileInlineFollow is scenario S5: name and buffer are both
// inline-follow, and the buffer length field is the string length without
// its NUL terminator, so "hello\0" is 6 bytes for len=5.
func TestDecodeRawFileInlineFollow(t *testing.T) {
	order := binary.LittleEndian
	buf := make([]byte, 0, 12+3+6)
	tmp := make([]byte, 4)

	order.PutUint32(tmp, sentinelFollow)
	buf = append(buf, tmp...) // name sentinel
	order.PutUint32(tmp, 5)
	buf = append(buf, tmp...) // len
	order.PutUint32(tmp, sentinelFollow)
	buf = append(buf, tmp...) // buffer sentinel

	buf = append(buf, []byte("hi\x00")...)
	buf = append(buf, []byte("hello\x00")...)

	ctx := &Context{Stream: NewStream(buf, order)}
	asset, err := decodeRawFileAsset(ctx)
	if err != nil {
		t.Fatalf("decodeRawFileAsset failed: %v", err)
	}
	if asset.RawFile.Name != "hi" {
		t.Errorf("name = %q, want %q", asset.RawFile.Name, "hi")
	}
	if string(asset.RawFile.Buffer) != "hello\x00" {
		t.Errorf("buffer = %q, want %q", asset.RawFile.Buffer, "hello\x00")
	}
}
