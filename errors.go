package xfile

import "fmt"

// Kind enumerates the closed set of ways deserialization can fail, per the
// error taxonomy: a flat sum, never a grab-bag of ad-hoc strings.
type Kind int

const (
	KindIO Kind = iota
	KindInflate
	KindNotInflated
	KindBadHeaderMagic
	KindWrongVersion
	KindWrongEndiannessForPlatform
	KindUnsupportedPlatform
	KindBadOffset
	KindInvalidSeek
	KindBadFromPrimitive
	KindBadBitflags
	KindBadChar
	KindBrokenInvariant
	KindTodo
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindInflate:
		return "Inflate"
	case KindNotInflated:
		return "NotInflated"
	case KindBadHeaderMagic:
		return "BadHeaderMagic"
	case KindWrongVersion:
		return "WrongVersion"
	case KindWrongEndiannessForPlatform:
		return "WrongEndiannessForPlatform"
	case KindUnsupportedPlatform:
		return "UnsupportedPlatform"
	case KindBadOffset:
		return "BadOffset"
	case KindInvalidSeek:
		return "InvalidSeek"
	case KindBadFromPrimitive:
		return "BadFromPrimitive"
	case KindBadBitflags:
		return "BadBitflags"
	case KindBadChar:
		return "BadChar"
	case KindBrokenInvariant:
		return "BrokenInvariant"
	case KindTodo:
		return "Todo"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Error is the only error type this package ever returns. It carries enough
// to reproduce a diagnostic without needing to re-run the deserializer.
type Error struct {
	Kind   Kind
	Offset int64 // absolute stream offset at the time of failure, -1 if n/a
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		if e.Cause != nil {
			return fmt.Sprintf("xfile: %s at offset 0x%x: %s: %v", e.Kind, e.Offset, e.Msg, e.Cause)
		}
		return fmt.Sprintf("xfile: %s at offset 0x%x: %s", e.Kind, e.Offset, e.Msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("xfile: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("xfile: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func newErr(kind Kind, offset int64, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind Kind, offset int64, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	xe, ok := err.(*Error)
	return ok && xe.Kind == kind
}
