package xfile

import (
	"encoding/binary"
	"testing"
)

func TestDecodeXSurfaceVertexInfoLengths(t *testing.T) {
	vc := [4]int16{2, 3, 1, 0}
	blendLen := uint32(uint16(vc[0])) + 3*uint32(uint16(vc[1])) + 5*uint32(uint16(vc[2])) + 7*uint32(uint16(vc[3]))
	tensionLen := 12 * (uint32(uint16(vc[0])) + uint32(uint16(vc[1])) + uint32(uint16(vc[2])) + uint32(uint16(vc[3])))

	buf := make([]byte, 0, 16+blendLen*2+tensionLen*4)
	for _, v := range vc {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v))
		buf = append(buf, b...)
	}
	sentinelFollow := make([]byte, 4)
	binary.LittleEndian.PutUint32(sentinelFollow, 0xFFFFFFFF)
	buf = append(buf, sentinelFollow...) // verts_blend: inline-follow
	buf = append(buf, sentinelFollow...) // tension_data: inline-follow
	buf = append(buf, make([]byte, blendLen*2)...)
	buf = append(buf, make([]byte, tensionLen*4)...)

	ctx := &Context{Stream: NewStream(buf, binary.LittleEndian)}
	info, err := decodeXSurfaceVertexInfo(ctx)
	if err != nil {
		t.Fatalf("decodeXSurfaceVertexInfo failed: %v", err)
	}
	if uint32(len(info.BlendWeights)) != blendLen {
		t.Errorf("blend weights len = %d, want %d", len(info.BlendWeights), blendLen)
	}
	if uint32(len(info.Tension)) != tensionLen {
		t.Errorf("tension len = %d, want %d", len(info.Tension), tensionLen)
	}
}
