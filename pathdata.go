package xfile

// PathNode is one navigation-graph node. The node array is deliberately
// sized node_count+128: a 128-slot tail the engine reserves as runtime
// scratch space, not part of the authored graph (§4.4).
type PathNode struct {
	Origin Vec3
	Type   uint8
}

// PathKDTreeNodeKind selects between the two kd-tree union arms.
type PathKDTreeNodeKind uint8

const (
	PathKDTreeLeaf PathKDTreeNodeKind = iota
	PathKDTreeInternal
	pathKDTreeNodeKindMax
)

// PathKDTreeNode is a tagged union: a leaf holds a flat list of node
// indices; an internal node holds two child offsets.
type PathKDTreeNode struct {
	Kind        PathKDTreeNodeKind
	LeafIndices []uint16
	Children    [2]uint32
}

func decodePathKDTreeNode(ctx *Context) (PathKDTreeNode, error) {
	s := ctx.Stream
	kindRaw, err := s.ReadU8()
	if err != nil {
		return PathKDTreeNode{}, err
	}
	if PathKDTreeNodeKind(kindRaw) >= pathKDTreeNodeKindMax {
		return PathKDTreeNode{}, newErr(KindBadFromPrimitive, s.Pos(), "path kd-tree node kind %d", kindRaw)
	}
	kind := PathKDTreeNodeKind(kindRaw)
	switch kind {
	case PathKDTreeLeaf:
		count, err := s.ReadU16()
		if err != nil {
			return PathKDTreeNode{}, err
		}
		indices, err := ReadFlexArrayU16(ctx, count, func(ctx *Context) (uint16, error) {
			return ctx.Stream.ReadU16()
		})
		return PathKDTreeNode{Kind: kind, LeafIndices: indices}, err
	case PathKDTreeInternal:
		var children [2]uint32
		for i := range children {
			c, err := s.ReadU32()
			if err != nil {
				return PathKDTreeNode{}, err
			}
			children[i] = c
		}
		return PathKDTreeNode{Kind: kind, Children: children}, nil
	default:
		return PathKDTreeNode{}, newErr(KindBadFromPrimitive, s.Pos(), "path kd-tree node kind %d", kindRaw)
	}
}

// PathData is the AI navigation network for a level.
type PathData struct {
	Nodes      []PathNode // len == node_count + 128
	Chains     []uint16
	Overlaps   []uint16
	KDTreeRoot []PathKDTreeNode
}

func decodePathData(ctx *Context) (*PathData, error) {
	s := ctx.Stream
	nodeCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	nodesPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	chainCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	chainsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	overlapCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	overlapsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	kdCount, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	kdPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	nodes, err := ReadArrayCountFirstU32(ctx, nodeCount+128, nodesPtrRaw, func(ctx *Context) (PathNode, error) {
		origin, err := readVec3(ctx.Stream)
		if err != nil {
			return PathNode{}, err
		}
		typ, err := ctx.Stream.ReadU8()
		return PathNode{Origin: origin, Type: typ}, err
	})
	if err != nil {
		return nil, err
	}
	chains, err := ReadArrayCountFirstU32(ctx, chainCount, chainsPtrRaw, func(ctx *Context) (uint16, error) {
		return ctx.Stream.ReadU16()
	})
	if err != nil {
		return nil, err
	}
	overlaps, err := ReadArrayCountFirstU32(ctx, overlapCount, overlapsPtrRaw, func(ctx *Context) (uint16, error) {
		return ctx.Stream.ReadU16()
	})
	if err != nil {
		return nil, err
	}
	kdTree, err := ReadArrayCountFirstU32(ctx, kdCount, kdPtrRaw, decodePathKDTreeNode)
	if err != nil {
		return nil, err
	}

	return &PathData{Nodes: nodes, Chains: chains, Overlaps: overlaps, KDTreeRoot: kdTree}, nil
}
