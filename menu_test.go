package xfile

import "testing"

func TestDecodeItemParent(t *testing.T) {
	ctx := &Context{Stream: NewStream(nil, nil)}

	if err := decodeItemParent(ctx, sentinelNull); err != nil {
		t.Errorf("null parent should be accepted, got %v", err)
	}
	if err := decodeItemParent(ctx, sentinelFollow); err != nil {
		t.Errorf("inline-follow parent should be accepted, got %v", err)
	}
	err := decodeItemParent(ctx, 0x12345678)
	if !IsKind(err, KindTodo) {
		t.Fatalf("expected KindTodo for any other sentinel, got %v", err)
	}
}
