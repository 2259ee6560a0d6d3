package xfile

import "testing"

func TestResolvePointer(t *testing.T) {
	blockSizes := [numBlocks]uint32{10, 20, 30, 0, 0, 0, 0}

	tests := []struct {
		name   string
		raw    uint32
		cursor int64
		want   Pointer
	}{
		{"null", 0, 123, Pointer{Kind: PointerNull}},
		{"inline follow", 0xFFFFFFFF, 42, Pointer{Kind: PointerInlineFollow, Off: 42}},
		{"block 0 offset 5", (0 << blockShift) | 6, 0, Pointer{Kind: PointerAbsolute, Off: 5}},
		{"block 1 offset 0", (1 << blockShift) | 1, 0, Pointer{Kind: PointerAbsolute, Off: 10}},
		{"block 2 offset 3", (uint32(2) << blockShift) | 4, 0, Pointer{Kind: PointerAbsolute, Off: 33}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePointer(tt.raw, tt.cursor, blockSizes)
			if err != nil {
				t.Fatalf("ResolvePointer(0x%x) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePointer(0x%x) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolvePointerBadBlock(t *testing.T) {
	var blockSizes [numBlocks]uint32
	raw := (uint32(7) << blockShift) | 1 // block index 7 is out of [0,6]
	if _, err := ResolvePointer(raw, 0, blockSizes); !IsKind(err, KindBadOffset) {
		t.Fatalf("expected KindBadOffset, got %v", err)
	}
}
