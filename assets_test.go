package xfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAssetOutOfRangeType(t *testing.T) {
	ctx := &Context{Stream: NewStream(nil, nil)}
	_, err := decodeAsset(ctx, XAssetType(999))
	assert.True(t, IsKind(err, KindBadFromPrimitive))
}

func TestDecodeAssetTodoForUnimplementedKind(t *testing.T) {
	ctx := &Context{Stream: NewStream(nil, nil)}
	_, err := decodeAsset(ctx, AssetComWorld)
	assert.True(t, IsKind(err, KindTodo))
}

func TestXAssetTypeString(t *testing.T) {
	assert.Equal(t, "xmodel", AssetXModel.String())
	assert.Equal(t, "unknown", XAssetType(999).String())
}
