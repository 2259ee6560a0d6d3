package xfile

// OperandKind tags an ExpressionRpn token as a constant (further sub-tagged
// by value type) or a command index.
type OperandKind uint8

const (
	OperandConstInt OperandKind = iota
	OperandConstFloat
	OperandConstString
	OperandCommand
	operandKindMax
)

// Operand is one reverse-Polish token in a menu expression.
type Operand struct {
	Kind       OperandKind
	Int        int32
	Float      float32
	Str        string
	CommandIdx uint16
}

func decodeOperand(ctx *Context) (Operand, error) {
	s := ctx.Stream
	kindRaw, err := s.ReadU8()
	if err != nil {
		return Operand{}, err
	}
	if OperandKind(kindRaw) >= operandKindMax {
		return Operand{}, newErr(KindBadFromPrimitive, s.Pos(), "operand kind %d", kindRaw)
	}
	kind := OperandKind(kindRaw)
	switch kind {
	case OperandConstInt:
		v, err := s.ReadI32()
		return Operand{Kind: kind, Int: v}, err
	case OperandConstFloat:
		v, err := s.ReadF32()
		return Operand{Kind: kind, Float: v}, err
	case OperandConstString:
		idx, err := s.ReadU16()
		if err != nil {
			return Operand{}, err
		}
		str, err := ctx.ResolveString(idx)
		return Operand{Kind: kind, Str: str}, err
	case OperandCommand:
		idx, err := s.ReadU16()
		return Operand{Kind: kind, CommandIdx: idx}, err
	default:
		return Operand{}, newErr(KindBadFromPrimitive, s.Pos(), "operand kind %d", kindRaw)
	}
}

// ExpressionRpn is a reverse-Polish token stream implementing one
// visibility/value expression attached to a menu item or window.
type ExpressionRpn struct {
	Tokens []Operand
}

func decodeExpressionRpn(ctx *Context) (ExpressionRpn, error) {
	count, err := ctx.Stream.ReadU16()
	if err != nil {
		return ExpressionRpn{}, err
	}
	tokens, err := ReadFlexArrayU16(ctx, count, decodeOperand)
	if err != nil {
		return ExpressionRpn{}, err
	}
	return ExpressionRpn{Tokens: tokens}, nil
}

// ExpressionStatement holds an expression's compiled RPN form; no
// authored source text is read or kept.
type ExpressionStatement struct {
	Rpn ExpressionRpn
}

func decodeExpressionStatement(ctx *Context) (*ExpressionStatement, error) {
	rpn, err := decodeExpressionRpn(ctx)
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{Rpn: rpn}, nil
}
