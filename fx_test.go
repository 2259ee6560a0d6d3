package xfile

import (
	"encoding/binary"
	"testing"
)

// TestDecodeFxEffectDefBadBitflags is scenario S6: flags carries an
// undeclared bit and must fail with KindBadBitflags.
func TestDecodeFxEffectDefBadBitflags(t *testing.T) {
	order := binary.LittleEndian
	buf := make([]byte, 0, 60)
	u32 := make([]byte, 4)

	order.PutUint32(u32, 0) // name sentinel (null)
	buf = append(buf, u32...)
	buf = append(buf, 0x04) // flags: undeclared bit
	buf = append(buf, 0)    // ef_priority
	buf = append(buf, 0, 0) // reserved

	order.PutUint32(u32, 0) // total_size
	buf = append(buf, u32...)
	order.PutUint32(u32, 0) // msec_looping_life
	buf = append(buf, u32...)
	order.PutUint32(u32, 0) // elem_def_count_looping
	buf = append(buf, u32...)
	order.PutUint32(u32, 0) // elem_def_count_one_shot
	buf = append(buf, u32...)
	order.PutUint32(u32, 0) // elem_def_count_emission
	buf = append(buf, u32...)
	order.PutUint32(u32, 0) // elem_defs sentinel (null)
	buf = append(buf, u32...)
	buf = append(buf, make([]byte, 12)...) // bounding_box_dim
	buf = append(buf, make([]byte, 16)...) // bounding_sphere

	ctx := &Context{Stream: NewStream(buf, order)}
	_, err := decodeFxEffectDef(ctx)
	if !IsKind(err, KindBadBitflags) {
		t.Fatalf("expected KindBadBitflags, got %v", err)
	}
}
