package xfile

import (
	"encoding/binary"
	"testing"
)

// xmodelBytes builds a minimal, otherwise-all-null 252-byte XModelRaw
// buffer (every sentinel pointer null, every count zero, every lod_info
// entry zero — which is itself a valid lod_info, since lod=0 and
// smc_alloc_bits=0 both satisfy the invariant) and lets the caller
// override specific fields by absolute byte offset.
func xmodelBytes(overrides map[int][]byte) []byte {
	buf := make([]byte, 252)
	for off, b := range overrides {
		copy(buf[off:], b)
	}
	return buf
}

func TestDecodeXModelBoneInvariant(t *testing.T) {
	buf := xmodelBytes(map[int][]byte{
		4: {1}, // num_bones
		5: {2}, // num_root_bones
	})
	ctx := &Context{Stream: NewStream(buf, binary.LittleEndian)}
	_, err := decodeXModel(ctx)
	if !IsKind(err, KindBrokenInvariant) {
		t.Fatalf("expected KindBrokenInvariant for num_bones < num_root_bones, got %v", err)
	}
}

func TestDecodeXModelLodInvariant(t *testing.T) {
	numLods := make([]byte, 2)
	binary.LittleEndian.PutUint16(numLods, 5)
	buf := xmodelBytes(map[int][]byte{
		216: numLods, // num_lods (i16)
	})
	ctx := &Context{Stream: NewStream(buf, binary.LittleEndian)}
	_, err := decodeXModel(ctx)
	if !IsKind(err, KindBrokenInvariant) {
		t.Fatalf("expected KindBrokenInvariant for num_lods > 4, got %v", err)
	}
}

func TestDecodeXModelLodInfoSmcAllocBitsInvariant(t *testing.T) {
	buf := xmodelBytes(map[int][]byte{
		40 + 30: {2}, // lod_info[0].smc_alloc_bits: neither 0 nor in [4,9]
	})
	ctx := &Context{Stream: NewStream(buf, binary.LittleEndian)}
	_, err := decodeXModel(ctx)
	if !IsKind(err, KindBrokenInvariant) {
		t.Fatalf("expected KindBrokenInvariant for smc_alloc_bits out of range, got %v", err)
	}
}

func TestDecodeXModelAccept(t *testing.T) {
	buf := xmodelBytes(nil)
	ctx := &Context{Stream: NewStream(buf, binary.LittleEndian)}
	m, err := decodeXModel(ctx)
	if err != nil {
		t.Fatalf("decodeXModel failed: %v", err)
	}
	if m.NumBones != 0 || len(m.Surfs) != 0 || len(m.MaterialHandles) != 0 {
		t.Errorf("unexpected model %+v", m)
	}
	for _, li := range m.LodInfo {
		if li.Lod != 0 || li.SmcAllocBits != 0 {
			t.Errorf("unexpected lod info %+v", li)
		}
	}
}
