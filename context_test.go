package xfile

import "testing"

func TestContextStringScope(t *testing.T) {
	ctx := &Context{Stream: NewStream(nil, nil), Strings: []string{"", "outer"}}

	ctx.PushStrings([]string{"", "inner"})
	got, err := ctx.ResolveString(1)
	if err != nil || got != "inner" {
		t.Fatalf("expected inner scope to resolve \"inner\", got %q, %v", got, err)
	}

	if err := ctx.PopStrings(); err != nil {
		t.Fatalf("PopStrings failed: %v", err)
	}
	got, err = ctx.ResolveString(1)
	if err != nil || got != "outer" {
		t.Fatalf("expected outer scope restored, got %q, %v", got, err)
	}

	if err := ctx.PopStrings(); err == nil {
		t.Fatalf("expected error popping with no matching push")
	}
}

func TestContextResolveStringOutOfRange(t *testing.T) {
	ctx := &Context{Stream: NewStream(nil, nil), Strings: []string{""}}
	if _, err := ctx.ResolveString(5); !IsKind(err, KindBrokenInvariant) {
		t.Fatalf("expected KindBrokenInvariant, got %v", err)
	}
}
